package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/krau/depthmap/backend"
	"github.com/krau/depthmap/config"
	"github.com/krau/depthmap/depth"
)

// Init loads cfg.PoolSize models into the pool.
func Init(ctx context.Context, cfg config.Config) error {
	authToken = cfg.Token

	b, err := backend.Open(cfg.Backend, cfg.ModelFile, cfg.Libonnx, cfg.GPUDeviceID)
	if err != nil {
		return fmt.Errorf("failed to open backend: %w", err)
	}

	opts := depth.Options{
		ModelDir:   cfg.ModelDir,
		ModelFile:  cfg.ModelFile,
		DisableGPU: cfg.DisableGPU,
		Threads:    cfg.Threads,
		ColorMap:   depth.ColorMapOptions{Normalize: cfg.Normalize},
		Observe:    observeInference,
	}

	models := make([]Estimator, 0, cfg.PoolSize)
	for i := 0; i < cfg.PoolSize; i++ {
		if err := ctx.Err(); err != nil {
			closeAll(models)
			return err
		}
		m, err := depth.NewModel(b, opts)
		if err != nil {
			closeAll(models)
			return fmt.Errorf("failed to load model %d: %w", i, err)
		}
		models = append(models, m)
	}
	SetPool(models...)
	slog.Info("Model pool ready", slog.Int("size", len(models)))
	return nil
}

// SetPool replaces the pool with models.
func SetPool(models ...Estimator) {
	pool := make(chan Estimator, len(models))
	for _, m := range models {
		pool <- m
	}
	modelPool = pool
}

// Close waits for every pooled model to be returned and releases it.
func Close() error {
	if modelPool == nil {
		return nil
	}
	pool := modelPool
	modelPool = nil

	models := make([]Estimator, 0, cap(pool))
	for len(models) < cap(pool) {
		models = append(models, <-pool)
	}
	return closeAll(models)
}

func closeAll(models []Estimator) error {
	var errs []error
	for _, m := range models {
		if err := m.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
