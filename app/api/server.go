package api

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"koronvoice/app/config"
	"koronvoice/app/service/conversation"
	"koronvoice/app/service/personality"
	"koronvoice/app/service/speech"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/samber/do"
)

var _ do.Shutdownable = (*Server)(nil)

const shutdownTimeout = 10 * time.Second

//go:embed static
var staticFS embed.FS

// Chatter is the conversation surface the HTTP layer needs.
type Chatter interface {
	Chat(ctx context.Context, message string) (*conversation.ChatResult, error)
	Reset() personality.Snapshot
	Snapshot() personality.Snapshot
}

// Synthesizer turns a reply into MP3 audio.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

type Server struct {
	cfg      *config.Config
	app      *fiber.App
	chat     Chatter
	speech   Synthesizer
	validate *validator.Validate

	stopOnce sync.Once
	stopErr  error
}

func New(di *do.Injector) (*Server, error) {
	cfg := do.MustInvoke[*config.Config](di)
	chat := do.MustInvoke[*conversation.Service](di)
	synth := do.MustInvoke[*speech.Service](di)

	return NewServer(cfg, chat, synth)
}

func NewServer(cfg *config.Config, chat Chatter, synth Synthesizer) (*Server, error) {
	static, err := fs.Sub(staticFS, "static")
	if err != nil {
		return nil, fmt.Errorf("failed to open static files: %w", err)
	}

	s := &Server{
		cfg:      cfg,
		chat:     chat,
		speech:   synth,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}

	app := fiber.New(fiber.Config{
		AppName:               "koronvoice",
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler,
	})

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))
	app.Use(accessLog)

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	group := app.Group("/api")
	group.Post("/chat", s.handleChat)
	group.Post("/synthesize", s.handleSynthesize)
	group.Post("/reset", s.handleReset)
	group.Get("/personality", s.handlePersonality)

	app.Use("/", filesystem.New(filesystem.Config{
		Root:  http.FS(static),
		Index: "index.html",
	}))

	s.app = app

	return s, nil
}

// Run serves HTTP until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Server.Host, s.cfg.Server.Port)

	errCh := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "addr", addr)
		errCh <- s.app.Listen(addr)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen %s: %w", addr, err)
		}
		return nil
	case <-ctx.Done():
	}

	return s.Shutdown()
}

func (s *Server) Shutdown() error {
	s.stopOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := s.app.ShutdownWithContext(ctx); err != nil {
			s.stopErr = fmt.Errorf("failed to shutdown HTTP server: %w", err)
		}
	})

	return s.stopErr
}

func accessLog(c *fiber.Ctx) error {
	start := time.Now()

	err := c.Next()

	slog.Debug("HTTP request",
		"method", c.Method(),
		"path", c.Path(),
		"status", c.Response().StatusCode(),
		"duration", time.Since(start),
		"request_id", c.Locals("requestid"),
		"error", err,
	)

	return err
}
