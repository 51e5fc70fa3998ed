//go:build !tflite

package tflite

import (
	"errors"

	"github.com/krau/depthmap/depth"
)

// ErrNotBuilt is returned when the binary was built without the tflite tag.
var ErrNotBuilt = errors.New("tflite: built without tflite support (rebuild with -tags tflite)")

type Backend struct{}

var _ depth.Backend = Backend{}

func (Backend) Name() string                  { return "tflite" }
func (Backend) GPUSupported() bool            { return false }
func (Backend) GPUOptions() map[string]string { return nil }

func (Backend) Open([]byte, depth.Delegate) (depth.Engine, error) {
	return nil, ErrNotBuilt
}
