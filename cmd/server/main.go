package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	httpapi "hero-chess/internal/api/http"
	"hero-chess/internal/api/ws"
	"hero-chess/internal/config"
	"hero-chess/internal/room"
)

func main() {
	cfg := initConfig()
	logger := initLogger(cfg)
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("received signal, shutting down", "signal", sig.String())
		cancel()
	}()

	registry := room.NewRegistry(logger)
	registry.StartReaper(ctx, cfg.RoomTTL, cfg.ReapInterval)

	hub := ws.NewHub(logger)
	wsHandler := ws.NewHandler(registry, hub, logger)
	router := httpapi.NewRouter(wsHandler, cfg)

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: router,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info("listening", "addr", cfg.HTTPAddr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func initConfig() *config.Config {
	baseDir, err := os.Getwd()
	if err != nil {
		panic(err)
	}
	return config.MustLoad(filepath.Join(baseDir, "config.yml"))
}

func initLogger(cfg *config.Config) *slog.Logger {
	level := slog.LevelInfo
	if cfg.LogLevel == "debug" {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}
