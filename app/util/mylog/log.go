package mylog

import (
	"context"
	"koronvoice/app/config"
	"log/slog"
	"os"

	"github.com/phsym/console-slog"
	slogmulti "github.com/samber/slog-multi"
	slogtelegram "github.com/samber/slog-telegram/v2"
)

func Preinit() {
	slog.SetDefault(slog.New(console.NewHandler(os.Stderr, &console.HandlerOptions{
		AddSource: true,
		Level:     slog.LevelDebug,
	})))
}

func Init(cfg *config.Config) error {
	level := ParseLevel(cfg.Log.Level)

	router := slogmulti.Router()

	router = router.Add(console.NewHandler(os.Stderr, &console.HandlerOptions{
		AddSource: true,
		Level:     level,
	}))

	if cfg.Log.Telegram.Token != "" {
		router = router.Add(
			slogtelegram.Option{
				Level:     slog.LevelDebug,
				Token:     cfg.Log.Telegram.Token,
				Username:  cfg.Log.Telegram.ChatID,
				AddSource: true,
			}.NewTelegramHandler(),
			isTelegramRecord,
		)
	}

	slog.SetDefault(slog.New(router.Handler()))

	return nil
}

// ParseLevel maps a config level name to slog, falling back to debug.
func ParseLevel(name string) slog.Level {
	switch name {
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelDebug
	}
}

func isTelegramRecord(_ context.Context, r slog.Record) bool {
	hasTelegram := false

	r.Attrs(func(attr slog.Attr) bool {
		if attr.Key == "telegram" {
			hasTelegram = true
			return false
		}

		return true
	})

	return r.Level == slog.LevelError || hasTelegram
}
