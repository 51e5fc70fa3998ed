package onnx

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLibPathExplicit(t *testing.T) {
	assert.Equal(t, "/opt/ort/libonnxruntime.so.1.23.2", LibPath("/opt/ort/libonnxruntime.so.1.23.2"))
}

func TestLibPathDefault(t *testing.T) {
	path := LibPath("")
	switch runtime.GOOS {
	case "linux":
		assert.Contains(t, path, "libonnxruntime.so")
	case "darwin":
		assert.Equal(t, "/usr/local/lib/libonnxruntime.dylib", path)
	case "windows":
		assert.Equal(t, "onnxruntime.dll", path)
	default:
		assert.Empty(t, path)
	}
}
