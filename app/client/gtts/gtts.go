package gtts

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"koronvoice/app/config"
	"log/slog"
	"net/url"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/samber/do"
)

const (
	// maxChunkRunes is the longest text the endpoint accepts per request.
	maxChunkRunes = 100
	userAgent     = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"
	referer       = "https://translate.google.com/"
)

// Client fetches MP3 speech from the Google Translate TTS endpoint.
type Client struct {
	cfg  config.Speech
	http *fiber.Client
}

func NewClient(di *do.Injector) (*Client, error) {
	cfg := do.MustInvoke[*config.Config](di)

	return New(cfg.Speech), nil
}

func New(cfg config.Speech) *Client {
	return &Client{
		cfg: cfg,
		http: &fiber.Client{
			UserAgent: userAgent,
		},
	}
}

// Synthesize splits text into endpoint-sized chunks and concatenates the
// returned MP3 streams.
func (c *Client) Synthesize(ctx context.Context, text, language string) ([]byte, error) {
	chunks := splitText(text, maxChunkRunes)
	if len(chunks) == 0 {
		return nil, fmt.Errorf("nothing to synthesize")
	}

	var audio bytes.Buffer

	for i, chunk := range chunks {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		data, err := c.fetch(chunk, language, i, len(chunks))
		if err != nil {
			return nil, fmt.Errorf("chunk %d/%d: %w", i+1, len(chunks), err)
		}

		audio.Write(data)
	}

	slog.Debug("Speech synthesized",
		"chunks", len(chunks),
		"bytes", audio.Len(),
		"language", language,
	)

	return audio.Bytes(), nil
}

func (c *Client) fetch(text, language string, idx, total int) ([]byte, error) {
	query := url.Values{}
	query.Set("ie", "UTF-8")
	query.Set("client", "tw-ob")
	query.Set("tl", language)
	query.Set("q", text)
	query.Set("ttsspeed", "1")
	query.Set("total", strconv.Itoa(total))
	query.Set("idx", strconv.Itoa(idx))
	query.Set("textlen", strconv.Itoa(len([]rune(text))))

	agent := c.http.Get(c.cfg.BaseURL)
	agent.QueryString(query.Encode())
	agent.Referer(referer)

	if c.cfg.Timeout > 0 {
		agent.Timeout(c.cfg.Timeout)
	}

	if err := agent.Parse(); err != nil {
		fiber.ReleaseAgent(agent)
		return nil, fmt.Errorf("invalid tts url: %w", err)
	}

	code, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return nil, fmt.Errorf("tts request failed: %w", errors.Join(errs...))
	}

	if code != fiber.StatusOK {
		return nil, fmt.Errorf("tts returned status %d", code)
	}

	if len(body) == 0 {
		return nil, fmt.Errorf("tts returned empty audio")
	}

	return body, nil
}
