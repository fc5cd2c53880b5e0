package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"trade-insights/internal/engine"
	"trade-insights/internal/fetch"
	"trade-insights/internal/logger"
	"trade-insights/internal/results"
	"trade-insights/internal/server"
	"trade-insights/internal/store"

	"github.com/joho/godotenv"
)

func must(err error) {
	if err != nil {
		log.Fatal(err)
	}
}

func main() {
	_ = godotenv.Load()
	must(logger.Init())

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}
	cfg, err := store.LoadConfig(configPath)
	must(err)

	ctx := context.Background()

	var resultStore *results.Store
	if cfg.Results.Enabled {
		resultStore, err = results.NewStore(cfg.Results.DSN)
		if err != nil {
			logger.ErrorWithErr(ctx, "result store unavailable, continuing without persistence", err)
			resultStore = nil
		}
	}

	eng := engine.New(cfg)
	fetcher := fetch.NewClient(fetch.WithTimeout(30 * time.Second))
	srv := server.New(cfg, eng, fetcher, resultStore).HTTPServer()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info(ctx, "server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	<-sigc
	logger.Info(ctx, "shutting down")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.ErrorWithErr(shutdownCtx, "server shutdown failed", err)
	}
	_ = logger.Shutdown(shutdownCtx)
}
