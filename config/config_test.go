package config

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	c, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
	assert.Equal(t, "optimized_pydnet++.tflite", c.ModelFile)
	assert.Equal(t, 4, c.Threads)
}

func TestParseOverrides(t *testing.T) {
	c, err := Parse([]byte(`
port = "9000"
model_file = "pydnet.onnx"
backend = "onnx"
disable_gpu = true
normalize = true
pool_size = 0
log_level = "DEBUG"
`))
	require.NoError(t, err)
	assert.Equal(t, "9000", c.Port)
	assert.Equal(t, "pydnet.onnx", c.ModelFile)
	assert.Equal(t, "onnx", c.Backend)
	assert.True(t, c.DisableGPU)
	assert.True(t, c.Normalize)
	assert.Equal(t, 1, c.PoolSize)
	assert.Equal(t, "0.0.0.0", c.Host)
	assert.Equal(t, slog.LevelDebug, c.SlogLevel())
}

func TestParseInvalid(t *testing.T) {
	_, err := Parse([]byte(`threads = "many"`))
	assert.Error(t, err)
}
