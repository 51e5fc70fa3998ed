package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProbeTFLite(t *testing.T) {
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"probe", "--backend", "tflite", "--threads", "2"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "tflite: cpu(2 threads)\n", out.String())
}

func TestRenderMissingImage(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"render", filepath.Join(t.TempDir(), "frame.png")})

	assert.Error(t, cmd.Execute())
}

func TestFlagsOptions(t *testing.T) {
	f := &flags{model: "models/pydnet.onnx", threads: 3, cpu: true, normalize: true}
	opts := f.options()
	assert.Equal(t, filepath.Join("models", "pydnet.onnx"), opts.ModelPath())
	assert.True(t, opts.DisableGPU)
	assert.True(t, opts.ColorMap.Normalize)
	assert.Equal(t, 3, opts.Threads)
}

func TestOutputPath(t *testing.T) {
	assert.Equal(t, "depth.png", outputPath("depth.png", false, false))
	assert.Equal(t, "depth.json", outputPath("depth.png", false, true))
	assert.Equal(t, "frame.out", outputPath("frame.out", true, true))
	assert.Equal(t, "frame.png", outputPath("frame.png", true, false))
}
