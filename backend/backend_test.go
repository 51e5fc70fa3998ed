package backend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	cases := []struct {
		name, file, want string
	}{
		{"auto", "optimized_pydnet++.tflite", TFLite},
		{"", "pydnet.ONNX", ONNX},
		{"auto", "model", TFLite},
		{"onnx", "optimized_pydnet++.tflite", ONNX},
		{"TFLite", "pydnet.onnx", TFLite},
	}
	for _, tc := range cases {
		got, err := Resolve(tc.name, tc.file)
		require.NoError(t, err, "%s %s", tc.name, tc.file)
		assert.Equal(t, tc.want, got, "%s %s", tc.name, tc.file)
	}
}

func TestResolveErrors(t *testing.T) {
	_, err := Resolve("auto", "weights.pt")
	assert.Error(t, err)
	_, err = Resolve("coreml", "pydnet.tflite")
	assert.Error(t, err)
}
