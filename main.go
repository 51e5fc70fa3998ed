package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"

	"github.com/gin-gonic/gin"
	"github.com/krau/depthmap/config"
	"github.com/krau/depthmap/onnx"
	"github.com/krau/depthmap/service"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cfg := config.C()
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()})))
	slog.Info("Starting depthmap")

	if err := service.Init(ctx, cfg); err != nil {
		slog.Error("Failed to initialize service", slog.String("error", err.Error()))
		return
	}
	defer onnx.Destroy()
	defer func() {
		if err := service.Close(); err != nil {
			slog.Error("Failed to release models", slog.String("error", err.Error()))
		}
	}()

	gin.SetMode(gin.ReleaseMode)
	r := service.NewRouter()

	addr := cfg.Host + ":" + cfg.Port
	slog.Info("Listening on", slog.String("address", addr))
	go func() {
		if err := r.Run(addr); err != nil {
			slog.Error("Server error", slog.String("error", err.Error()))
			cancel()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")
}
