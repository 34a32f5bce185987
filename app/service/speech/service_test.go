package speech

import (
	"context"
	"errors"
	"koronvoice/app/config"
	"koronvoice/app/util/errcode"
	"testing"

	"github.com/samber/oops"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSynthesizer struct {
	audio    []byte
	err      error
	text     string
	language string
	calls    int
}

func (f *fakeSynthesizer) Synthesize(_ context.Context, text, language string) ([]byte, error) {
	f.calls++
	f.text = text
	f.language = language

	return f.audio, f.err
}

func testConfig() *config.Config {
	return &config.Config{
		Speech: config.Speech{Language: "ja"},
	}
}

func TestService_Synthesize(t *testing.T) {
	provider := &fakeSynthesizer{audio: []byte("ID3")}
	svc := NewService(testConfig(), provider)

	audio, err := svc.Synthesize(context.Background(), "  こんにちは  ")
	require.NoError(t, err)

	assert.Equal(t, []byte("ID3"), audio)
	assert.Equal(t, "こんにちは", provider.text)
	assert.Equal(t, "ja", provider.language)
}

func TestService_SynthesizeEmpty(t *testing.T) {
	provider := &fakeSynthesizer{}
	svc := NewService(testConfig(), provider)

	_, err := svc.Synthesize(context.Background(), " \n ")
	require.Error(t, err)

	oopsErr, ok := oops.AsOops(err)
	require.True(t, ok)
	assert.Equal(t, errcode.Validation, oopsErr.Code())
	assert.Zero(t, provider.calls)
}

func TestService_SynthesizeProviderError(t *testing.T) {
	svc := NewService(testConfig(), &fakeSynthesizer{err: errors.New("tts returned status 503")})

	_, err := svc.Synthesize(context.Background(), "こんにちは")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "speech synthesis error")
	assert.Contains(t, err.Error(), "status 503")

	oopsErr, ok := oops.AsOops(err)
	require.True(t, ok)
	assert.Equal(t, errcode.Provider, oopsErr.Code())
}
