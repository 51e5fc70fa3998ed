package tflite

import (
	"fmt"

	"github.com/krau/depthmap/depth"
)

func sameDims(d []int, s [4]int) bool {
	if len(d) != 4 {
		return false
	}
	for i := range d {
		if d[i] != s[i] {
			return false
		}
	}
	return true
}

func checkFloat32(name string, ok bool) error {
	if !ok {
		return fmt.Errorf("%s tensor is not float32", name)
	}
	return nil
}

// checkCopied catches short tensors: Float32s returns nil for other types
// and copy then moves nothing.
func checkCopied(name string, n, want int) error {
	if n != want {
		return fmt.Errorf("%w: copied %d of %d %s values", depth.ErrShapeMismatch, n, want, name)
	}
	return nil
}
