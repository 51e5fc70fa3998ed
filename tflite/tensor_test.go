package tflite

import (
	"testing"

	"github.com/krau/depthmap/depth"
	"github.com/stretchr/testify/assert"
)

func TestSameDims(t *testing.T) {
	want := [4]int{1, depth.InputHeight, depth.InputWidth, 1}
	cases := []struct {
		dims []int
		ok   bool
	}{
		{[]int{1, 448, 640, 1}, true},
		{[]int{1, 640, 448, 1}, false},
		{[]int{1, 448, 640}, false},
		{[]int{1, 448, 640, 1, 1}, false},
		{nil, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.ok, sameDims(tc.dims, want), "%v", tc.dims)
	}
}

func TestCheckFloat32(t *testing.T) {
	assert.NoError(t, checkFloat32("output", true))
	assert.EqualError(t, checkFloat32("output", false), "output tensor is not float32")
}

func TestCheckCopied(t *testing.T) {
	assert.NoError(t, checkCopied("output", 6, 6))
	// a non-float tensor yields a nil slice, so nothing is copied
	assert.ErrorIs(t, checkCopied("output", copy(make([]float32, 6), []float32(nil)), 6), depth.ErrShapeMismatch)
	assert.ErrorIs(t, checkCopied("output", 4, 6), depth.ErrShapeMismatch)
}
