package speech

import (
	"context"
	"koronvoice/app/client/gtts"
	"koronvoice/app/config"
	"koronvoice/app/util/errcode"
	"log/slog"
	"strings"

	"github.com/samber/do"
	"github.com/samber/oops"
)

// Synthesizer turns text into MP3 audio.
type Synthesizer interface {
	Synthesize(ctx context.Context, text, language string) ([]byte, error)
}

type Service struct {
	cfg      *config.Config
	provider Synthesizer
}

func New(di *do.Injector) (*Service, error) {
	cfg := do.MustInvoke[*config.Config](di)

	return NewService(cfg, do.MustInvoke[*gtts.Client](di)), nil
}

func NewService(cfg *config.Config, provider Synthesizer) *Service {
	return &Service{
		cfg:      cfg,
		provider: provider,
	}
}

// Synthesize returns MP3 audio of text spoken in the configured language.
func (s *Service) Synthesize(ctx context.Context, text string) ([]byte, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, oops.
			In("speech").
			Code(errcode.Validation).
			Public("text is empty").
			New("text is empty")
	}

	audio, err := s.provider.Synthesize(ctx, text, s.cfg.Speech.Language)
	if err != nil {
		return nil, oops.
			In("speech").
			Code(errcode.Provider).
			With("text_length", len([]rune(text))).
			Wrapf(err, "speech synthesis error")
	}

	slog.Debug("Synthesized reply", "bytes", len(audio))

	return audio, nil
}
