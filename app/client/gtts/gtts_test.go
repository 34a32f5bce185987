package gtts

import (
	"context"
	"koronvoice/app/config"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitText(t *testing.T) {
	long := strings.Repeat("あ", 150)

	tests := []struct {
		name  string
		text  string
		limit int
		want  []string
	}{
		{name: "empty", text: "   ", limit: 10, want: nil},
		{name: "short", text: " こんにちは ", limit: 10, want: []string{"こんにちは"}},
		{name: "exact", text: "abcde", limit: 5, want: []string{"abcde"}},
		{name: "space boundary", text: "hello world again", limit: 12, want: []string{"hello world", "again"}},
		{name: "punct boundary", text: "こんにちは。元気ですか", limit: 8, want: []string{"こんにちは。", "元気ですか"}},
		{name: "hard cut", text: long, limit: 100, want: []string{strings.Repeat("あ", 100), strings.Repeat("あ", 50)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, splitText(tt.text, tt.limit))
		})
	}
}

func TestSplitText_RespectsLimit(t *testing.T) {
	text := strings.Repeat("今日は いい天気ですね、", 40)

	chunks := splitText(text, maxChunkRunes)
	require.NotEmpty(t, chunks)

	for _, chunk := range chunks {
		assert.LessOrEqual(t, len([]rune(chunk)), maxChunkRunes)
		assert.NotEmpty(t, chunk)
	}
}

func TestClient_Synthesize(t *testing.T) {
	var (
		mu      sync.Mutex
		queries []map[string]string
	)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		mu.Lock()
		queries = append(queries, map[string]string{
			"q":      q.Get("q"),
			"tl":     q.Get("tl"),
			"client": q.Get("client"),
			"idx":    q.Get("idx"),
			"total":  q.Get("total"),
		})
		mu.Unlock()

		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		assert.Equal(t, referer, r.Header.Get("Referer"))

		w.Header().Set("Content-Type", "audio/mpeg")
		_, _ = w.Write([]byte("mp3[" + q.Get("idx") + "]"))
	}))
	defer server.Close()

	client := New(config.Speech{
		BaseURL:  server.URL,
		Language: "ja",
		Timeout:  5 * time.Second,
	})

	text := strings.Repeat("あ", 150)

	audio, err := client.Synthesize(context.Background(), text, "ja")
	require.NoError(t, err)
	assert.Equal(t, "mp3[0]mp3[1]", string(audio))

	require.Len(t, queries, 2)
	assert.Equal(t, strings.Repeat("あ", 100), queries[0]["q"])
	assert.Equal(t, "ja", queries[0]["tl"])
	assert.Equal(t, "tw-ob", queries[0]["client"])
	assert.Equal(t, "2", queries[1]["total"])
	assert.Equal(t, "1", queries[1]["idx"])
}

func TestClient_SynthesizeErrors(t *testing.T) {
	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer failing.Close()

	empty := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer empty.Close()

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()

	tests := []struct {
		name    string
		baseURL string
		ctx     context.Context
		text    string
		errText string
	}{
		{name: "bad status", baseURL: failing.URL, ctx: context.Background(), text: "こんにちは", errText: "status 503"},
		{name: "empty body", baseURL: empty.URL, ctx: context.Background(), text: "こんにちは", errText: "empty audio"},
		{name: "blank text", baseURL: empty.URL, ctx: context.Background(), text: " ", errText: "nothing to synthesize"},
		{name: "cancelled", baseURL: empty.URL, ctx: cancelled, text: "こんにちは", errText: "context canceled"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := New(config.Speech{BaseURL: tt.baseURL, Language: "ja", Timeout: 5 * time.Second})

			_, err := client.Synthesize(tt.ctx, tt.text, "ja")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errText)
		})
	}
}
