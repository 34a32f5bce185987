package conversation

import (
	"context"
	"fmt"
	"koronvoice/app/client/llm"
	"koronvoice/app/config"
	"koronvoice/app/service/personality"
	"koronvoice/app/util/errcode"
	"log/slog"
	"strings"
	"sync"

	"github.com/samber/do"
	"github.com/samber/oops"
	"github.com/tmc/langchaingo/llms"
)

var _ do.Shutdownable = (*Service)(nil)

// ChatModel is the chat provider contract. *llm.Client satisfies it.
type ChatModel interface {
	GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error)
}

type ChatResult struct {
	Reply       string               `json:"reply"`
	Personality personality.Snapshot `json:"personality"`
	Debug       []string             `json:"debug"`
}

// Service owns the personality counters and the conversation window. All
// stateful calls are serialized by mu, including the provider round trip.
type Service struct {
	cfg   *config.Config
	model ChatModel

	mu       sync.Mutex
	resolver *personality.Resolver
	window   Window
}

func New(di *do.Injector) (*Service, error) {
	cfg := do.MustInvoke[*config.Config](di)

	return NewService(cfg, do.MustInvoke[*llm.Client](di))
}

func NewService(cfg *config.Config, model ChatModel) (*Service, error) {
	defs, err := personality.DefaultDefinitions()
	if err != nil {
		return nil, oops.In("conversation").Wrapf(err, "failed to load personality definitions")
	}

	return &Service{
		cfg:      cfg,
		model:    model,
		resolver: personality.NewResolver(defs, cfg.Personality.Increment),
	}, nil
}

// Chat scores the message, asks the provider for a reply in the current
// personality's voice and records the exchange. A provider failure leaves the
// counters and the window as they were before the call.
func (s *Service) Chat(ctx context.Context, message string) (*ChatResult, error) {
	if strings.TrimSpace(message) == "" {
		return nil, oops.
			In("conversation").
			Code(errcode.Validation).
			Public("message is empty").
			New("message is empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	savedPoints := s.resolver.Points()
	savedMessages := s.window.Messages()

	update := s.resolver.Update(message)
	variant, current := s.resolver.Current()

	s.window.SyncSystemPrompt(current.Prompt)
	s.window.Append(RoleUser, message)

	reply, err := s.generateReply(ctx)
	if err != nil {
		s.resolver.Restore(savedPoints)
		s.window.restore(savedMessages)

		return nil, oops.
			In("conversation").
			Code(errcode.Provider).
			With("personality", variant).
			Wrapf(err, "AI response error")
	}

	s.window.Append(RoleAssistant, reply)
	s.window.Truncate()

	slog.Info("Replied to message",
		"personality", variant,
		"changes", update.Changes,
		"window", s.window.Len(),
	)

	return &ChatResult{
		Reply:       reply,
		Personality: s.resolver.Snapshot(),
		Debug:       update.Changes,
	}, nil
}

func (s *Service) generateReply(ctx context.Context) (string, error) {
	if s.cfg.OpenAI.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.OpenAI.Timeout)
		defer cancel()
	}

	aiResponse, err := s.model.GenerateContent(
		ctx,
		toMessageContent(s.window.Messages()),
		llms.WithMaxTokens(s.cfg.OpenAI.MaxTokens),
		llms.WithTemperature(s.cfg.OpenAI.Temperature),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create chat completion: %w", err)
	}

	if len(aiResponse.Choices) == 0 {
		return "", fmt.Errorf("no chat completion found")
	}

	return strings.TrimSpace(aiResponse.Choices[0].Content), nil
}

// Reset zeroes every counter and empties the window.
func (s *Service) Reset() personality.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.resolver.Reset()
	s.window.Clear()

	slog.Info("Personality reset", "telegram", true)

	return s.resolver.Snapshot()
}

func (s *Service) Snapshot() personality.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.resolver.Snapshot()
}

// History returns a copy of the current window.
func (s *Service) History() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.window.Messages()
}

func (s *Service) Shutdown() error {
	return nil
}

func toMessageContent(messages []Message) []llms.MessageContent {
	result := make([]llms.MessageContent, 0, len(messages))

	for _, msg := range messages {
		var role llms.ChatMessageType

		switch msg.Role {
		case RoleSystem:
			role = llms.ChatMessageTypeSystem
		case RoleUser:
			role = llms.ChatMessageTypeHuman
		case RoleAssistant:
			role = llms.ChatMessageTypeAI
		default:
			continue
		}

		result = append(result, llms.TextParts(role, msg.Content))
	}

	return result
}
