package main

import (
	"context"
	"koronvoice/app/api"
	"koronvoice/app/client/gtts"
	"koronvoice/app/client/llm"
	"koronvoice/app/config"
	"koronvoice/app/service/conversation"
	"koronvoice/app/service/speech"
	"koronvoice/app/util/mylog"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2/log"
	"github.com/samber/do"
	"golang.org/x/sync/errgroup"
)

func main() {
	di := do.New()
	defer di.Shutdown()
	defer log.Info("Waiting for services to finish...")

	mylog.Preinit()

	appCtx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	do.ProvideValue(di, appCtx)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}
	do.ProvideValue(di, cfg)

	if err = mylog.Init(cfg); err != nil {
		log.Fatalf("logging init failed: %v", err)
	}

	do.Provide(di, llm.NewClient)
	do.Provide(di, gtts.NewClient)
	do.Provide(di, conversation.New)
	do.Provide(di, speech.New)
	do.Provide(di, api.New)

	server := do.MustInvoke[*api.Server](di)

	slog.Info("Service started", "telegram", true)

	group, groupCtx := errgroup.WithContext(appCtx)
	group.Go(func() error {
		return server.Run(groupCtx)
	})
	group.Go(func() error {
		<-groupCtx.Done()
		log.Info("Shutting down...")
		return nil
	})

	if err = group.Wait(); err != nil {
		slog.Error("Service failed", "error", err)
	}
}
