// Package backend picks the inference runtime for a model file.
package backend

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/krau/depthmap/depth"
	"github.com/krau/depthmap/onnx"
	"github.com/krau/depthmap/tflite"
)

const (
	Auto   = "auto"
	ONNX   = "onnx"
	TFLite = "tflite"
)

// Resolve maps a backend name to a concrete one. auto is decided by the
// model file extension.
func Resolve(name, modelFile string) (string, error) {
	switch strings.ToLower(name) {
	case "", Auto:
		switch strings.ToLower(filepath.Ext(modelFile)) {
		case ".onnx":
			return ONNX, nil
		case ".tflite", "":
			return TFLite, nil
		default:
			return "", fmt.Errorf("cannot infer backend for %q", modelFile)
		}
	case ONNX:
		return ONNX, nil
	case TFLite:
		return TFLite, nil
	default:
		return "", fmt.Errorf("unknown backend %q", name)
	}
}

// Open returns a ready backend. libonnx and deviceID only matter for ONNX.
func Open(name, modelFile, libonnx string, deviceID int) (depth.Backend, error) {
	resolved, err := Resolve(name, modelFile)
	if err != nil {
		return nil, err
	}
	if resolved == ONNX {
		return onnx.NewBackend(libonnx, deviceID)
	}
	return tflite.Backend{}, nil
}
