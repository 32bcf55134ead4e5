package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shomer-bot/internal/analytics"
	"shomer-bot/internal/audit"
	"shomer-bot/internal/bot"
	"shomer-bot/internal/config"
	"shomer-bot/internal/storage"
	"shomer-bot/internal/weather"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger, err := config.BuildLogger(cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	store, err := storage.New(cfg.DatabasePath)
	if err != nil {
		logger.Fatal("storage init failed", zap.Error(err))
	}
	defer store.Close()
	if err := store.Migrate(); err != nil {
		logger.Fatal("migrations failed", zap.Error(err))
	}

	auditLogger := audit.NewLogger(store, logger)
	analyticsService := analytics.New(store)
	weatherClient := weather.NewClient(weather.Config{
		GeocodeURL:  cfg.Weather.GeocodeURL,
		ForecastURL: cfg.Weather.ForecastURL,
		Timeout:     time.Duration(cfg.Weather.TimeoutSeconds) * time.Second,
	}, logger)

	botSvc, err := bot.New(cfg, logger, store, auditLogger, analyticsService, weatherClient)
	if err != nil {
		logger.Fatal("bot init failed", zap.Error(err))
	}

	runCtx, cancelRun := context.WithCancel(context.Background())
	defer cancelRun()

	if err := botSvc.Start(runCtx); err != nil {
		logger.Fatal("bot start failed", zap.Error(err))
	}
	logger.Info("bot started")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	logger.Info("shutdown requested")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	botSvc.Close(ctx)
}
