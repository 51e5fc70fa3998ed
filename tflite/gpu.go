//go:build tflite && tflite_gpu

package tflite

import (
	"errors"

	"github.com/mattn/go-tflite/delegates"
	"github.com/mattn/go-tflite/delegates/gpu/gl"
)

// newGPUDelegate builds an OpenGL delegate with the library defaults.
func newGPUDelegate() (delegates.Delegater, error) {
	d := gl.New(nil)
	if d == nil {
		return nil, errors.New("tflite: cannot create GPU delegate")
	}
	return d, nil
}
