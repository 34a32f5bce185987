package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/samber/oops"
	"gopkg.in/yaml.v3"
)

const defaultPath = "config.yaml"

type Config struct {
	Log         Log         `yaml:"log"`
	Server      Server      `yaml:"server"`
	OpenAI      OpenAI      `yaml:"openai"`
	Speech      Speech      `yaml:"speech"`
	Personality Personality `yaml:"personality"`
}

type Server struct {
	// HTTP listen host
	Host string `yaml:"host" example:"0.0.0.0"`
	// HTTP listen port
	Port int `yaml:"port" example:"5000" validate:"min=1,max=65535"`
}

type OpenAI struct {
	// OpenAI base url, empty means the official API
	BaseURL string `yaml:"base_url" example:"https://openrouter.ai/api/v1"`
	// OpenAI token
	Token string `yaml:"token" example:"sk-proj-abc123456789DEF789ghi012JKL345mno678PQR901stu234VWX" validate:"required"`
	// OpenAI model
	Model string `yaml:"model" example:"gpt-3.5-turbo" validate:"required"`
	// Max output tokens per reply
	MaxTokens int `yaml:"max_tokens" example:"150" validate:"min=1"`
	// Sampling temperature
	Temperature float64 `yaml:"temperature" example:"0.8" validate:"min=0,max=2"`
	// Request timeout
	Timeout time.Duration `yaml:"timeout" example:"30s" validate:"min=0"`
	// Send max_tokens instead of max_completion_tokens, for older compatible APIs
	LegacyMaxTokens bool `yaml:"legacy_max_tokens" example:"false"`
}

type Speech struct {
	// Google Translate TTS endpoint
	BaseURL string `yaml:"base_url" example:"https://translate.google.com/translate_tts" validate:"required,url"`
	// Language code passed to the TTS endpoint
	Language string `yaml:"language" example:"ja" validate:"required"`
	// Request timeout per chunk
	Timeout time.Duration `yaml:"timeout" example:"30s" validate:"min=0"`
}

type Personality struct {
	// Points added by a matching keyword category
	Increment int `yaml:"increment" example:"5" validate:"min=1"`
}

type Log struct {
	// Minimal level: debug, info, warn, error
	Level string `yaml:"level" example:"debug" validate:"omitempty,oneof=debug info warn error"`
	// Telegram logging config
	Telegram TelegramLog `yaml:"telegram"`
}

type TelegramLog struct {
	// Chat bot token, obtain it via BotFather
	Token string `yaml:"token" example:"1234567890:ABCdefGHIjklMNopQRstUVwxyZ-123456789"`
	// Chat ID to send messages to
	ChatID string `yaml:"chat_id" example:"1001234567890"`
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, oops.Errorf("failed to load .env file: %w", err)
	}

	return LoadFile(defaultPath)
}

// LoadFile reads the YAML config at path (a missing file yields defaults),
// applies environment overrides and validates the result.
func LoadFile(path string) (*Config, error) {
	var result Config

	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, oops.Errorf("failed to read config file: %w", err)
	}

	if len(data) > 0 {
		if err = yaml.Unmarshal(data, &result); err != nil {
			return nil, oops.Errorf("failed to parse YAML config: %w", err)
		}
	}

	if err = applyEnv(&result); err != nil {
		return nil, err
	}

	applyDefaults(&result)

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(result); err != nil {
		return nil, oops.Errorf("failed to validate config: %w", err)
	}

	return &result, nil
}

func applyEnv(cfg *Config) error {
	if value := os.Getenv("OPENAI_API_KEY"); value != "" {
		cfg.OpenAI.Token = value
	}
	if value := os.Getenv("OPENAI_BASE_URL"); value != "" {
		cfg.OpenAI.BaseURL = value
	}
	if value := os.Getenv("OPENAI_MODEL"); value != "" {
		cfg.OpenAI.Model = value
	}
	if value := os.Getenv("PORT"); value != "" {
		port, err := strconv.Atoi(value)
		if err != nil {
			return oops.Errorf("failed to parse PORT %q: %w", value, err)
		}
		cfg.Server.Port = port
	}

	return nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 5000
	}
	if cfg.OpenAI.Model == "" {
		cfg.OpenAI.Model = "gpt-3.5-turbo"
	}
	if cfg.OpenAI.MaxTokens == 0 {
		cfg.OpenAI.MaxTokens = 150
	}
	if cfg.OpenAI.Temperature == 0 {
		cfg.OpenAI.Temperature = 0.8
	}
	if cfg.OpenAI.Timeout == 0 {
		cfg.OpenAI.Timeout = 30 * time.Second
	}
	if cfg.Speech.BaseURL == "" {
		cfg.Speech.BaseURL = "https://translate.google.com/translate_tts"
	}
	if cfg.Speech.Language == "" {
		cfg.Speech.Language = "ja"
	}
	if cfg.Speech.Timeout == 0 {
		cfg.Speech.Timeout = 30 * time.Second
	}
	if cfg.Personality.Increment == 0 {
		cfg.Personality.Increment = 5
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "debug"
	}
}
