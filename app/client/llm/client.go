package llm

import (
	"context"
	"fmt"
	"koronvoice/app/config"
	"log/slog"
	"net/http"

	"github.com/samber/do"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// Client is the chat provider: an OpenAI-compatible completion endpoint
// reached through langchaingo.
type Client struct {
	cfg config.OpenAI
	llm *openai.LLM
}

func NewClient(di *do.Injector) (*Client, error) {
	cfg := do.MustInvoke[*config.Config](di)

	return New(cfg.OpenAI)
}

func New(cfg config.OpenAI) (*Client, error) {
	opts := []openai.Option{
		openai.WithToken(cfg.Token),
		openai.WithModel(cfg.Model),
		openai.WithHTTPClient(&http.Client{
			Timeout: cfg.Timeout,
		}),
		openai.WithCallback(LogCallbackHandler{}),
	}

	if cfg.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
	}

	model, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create openai client: %w", err)
	}

	slog.Debug("Chat provider configured",
		"model", cfg.Model,
		"base_url", cfg.BaseURL,
	)

	return &Client{
		cfg: cfg,
		llm: model,
	}, nil
}

func (c *Client) GenerateContent(
	ctx context.Context,
	messages []llms.MessageContent,
	options ...llms.CallOption,
) (*llms.ContentResponse, error) {
	if c.cfg.LegacyMaxTokens {
		options = append(options, openai.WithLegacyMaxTokensField())
	}

	return c.llm.GenerateContent(ctx, messages, options...)
}
