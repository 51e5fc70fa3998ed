//go:build tflite && !tflite_gpu

package tflite

import (
	"errors"

	"github.com/mattn/go-tflite/delegates"
)

func newGPUDelegate() (delegates.Delegater, error) {
	return nil, errors.New("tflite: built without GPU delegate (rebuild with -tags tflite,tflite_gpu)")
}
