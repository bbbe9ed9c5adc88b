package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/apvc-club/stake-reservations/app"
	"github.com/apvc-club/stake-reservations/config"
	"github.com/apvc-club/stake-reservations/internal/observability"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	configFile := flag.String("config", "config.yaml", "Path to the configuration file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	obs := observability.New(cfg.Log.Level)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application, err := app.NewApp(ctx, cfg, obs)
	if err != nil {
		log.Fatalf("failed to initialize app: %v", err)
	}

	if err := application.Run(ctx); err != nil {
		obs.Logger.Error("Application stopped with error", slog.Any("error", err))
	}

	application.Close(context.Background())
	obs.Logger.Info("Application shut down gracefully")
}
