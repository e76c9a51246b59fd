package main

import (
	"context"
	"os"

	"go.uber.org/zap"

	"github.com/evgenshkuropat/shiftmate-bot/internal/app"
	"github.com/evgenshkuropat/shiftmate-bot/internal/config"
	"github.com/evgenshkuropat/shiftmate-bot/internal/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// No logger yet; report and exit.
		_, _ = os.Stderr.WriteString("config error: " + err.Error() + "\n")
		os.Exit(2)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		_, _ = os.Stderr.WriteString("logger init error: " + err.Error() + "\n")
		os.Exit(2)
	}
	// Flush on exit; sync errors are harmless on most platforms.
	defer func() { _ = log.Sync() }()

	application, err := app.New(cfg, log)
	if err != nil {
		log.Fatal("app init failed", zap.Error(err))
	}

	if err := application.Run(context.Background()); err != nil {
		log.Fatal("app run failed", zap.Error(err))
	}
}
