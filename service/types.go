package service

import (
	"context"
	"image"

	"github.com/krau/depthmap/depth"
)

// Estimator is the part of *depth.Model the handlers use.
type Estimator interface {
	Estimate(ctx context.Context, img image.Image) (*depth.Result, error)
	InferImage(ctx context.Context, img image.Image) (*image.NRGBA, error)
	Close() error
}

var (
	modelPool chan Estimator
	// authToken enables bearer authentication when non-empty.
	authToken string
)
