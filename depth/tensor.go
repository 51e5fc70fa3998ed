package depth

import (
	"errors"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

var (
	ErrClosed        = errors.New("depth: model closed")
	ErrShapeMismatch = errors.New("depth: shape mismatch")
	ErrOutOfBounds   = errors.New("depth: crop out of bounds")
)

// Tensor is a dense NHWC float32 buffer.
type Tensor struct {
	Shape [4]int
	Data  []float32
}

// NewTensor allocates a zeroed tensor of shape (1, h, w, c).
func NewTensor(h, w, c int) Tensor {
	return Tensor{
		Shape: [4]int{1, h, w, c},
		Data:  make([]float32, h*w*c),
	}
}

func (t Tensor) Height() int   { return t.Shape[1] }
func (t Tensor) Width() int    { return t.Shape[2] }
func (t Tensor) Channels() int { return t.Shape[3] }

// Len is the element count implied by Shape.
func (t Tensor) Len() int {
	return t.Shape[0] * t.Shape[1] * t.Shape[2] * t.Shape[3]
}

func (t Tensor) check(h, w, c int) error {
	if t.Shape != [4]int{1, h, w, c} {
		return fmt.Errorf("%w: got %v, want [1 %d %d %d]", ErrShapeMismatch, t.Shape, h, w, c)
	}
	if len(t.Data) != h*w*c {
		return fmt.Errorf("%w: %d values for shape %v", ErrShapeMismatch, len(t.Data), t.Shape)
	}
	return nil
}

// PixelsToTensor converts img into a (1, H, W, 3) tensor of RGB values in [0,1].
// Alpha is dropped.
func PixelsToTensor(img image.Image) Tensor {
	src := imaging.Clone(img)
	w, h := src.Rect.Dx(), src.Rect.Dy()
	t := NewTensor(h, w, 3)

	i := 0
	for y := 0; y < h; y++ {
		row := src.Pix[y*src.Stride : y*src.Stride+w*4]
		for x := 0; x < w; x++ {
			p := row[x*4 : x*4+4 : x*4+4]
			t.Data[i] = float32(p[0]) / 255
			t.Data[i+1] = float32(p[1]) / 255
			t.Data[i+2] = float32(p[2]) / 255
			i += 3
		}
	}
	return t
}

// Flatten copies the single channel of a (1, h, w, 1) tensor into a
// row-major slice where pixel (r, c) lands at r*w + c.
func Flatten(out Tensor, h, w int) ([]float32, error) {
	if err := out.check(h, w, 1); err != nil {
		return nil, err
	}
	flat := make([]float32, h*w)
	for r := 0; r < h; r++ {
		for c := 0; c < w; c++ {
			flat[r*w+c] = out.Data[r*w+c]
		}
	}
	return flat, nil
}
