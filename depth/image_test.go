package depth

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCropTopLeft(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 800, 600))
	img.SetNRGBA(0, 0, color.NRGBA{R: 9, A: 255})
	img.SetNRGBA(639, 447, color.NRGBA{G: 9, A: 255})
	img.SetNRGBA(640, 447, color.NRGBA{B: 9, A: 255})

	out, err := Crop(img, InputWidth, InputHeight)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, InputWidth, InputHeight), out.Bounds())
	assert.Equal(t, color.NRGBA{R: 9, A: 255}, out.NRGBAAt(0, 0))
	assert.Equal(t, color.NRGBA{G: 9, A: 255}, out.NRGBAAt(639, 447))
}

func TestCropOffsetOrigin(t *testing.T) {
	img := image.NewNRGBA(image.Rect(5, 7, 15, 17))
	img.SetNRGBA(5, 7, color.NRGBA{R: 1, G: 2, B: 3, A: 255})

	out, err := Crop(img, 4, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, out.Bounds().Dx())
	assert.Equal(t, color.NRGBA{R: 1, G: 2, B: 3, A: 255}, out.NRGBAAt(0, 0))
}

func TestCropTooSmall(t *testing.T) {
	for _, r := range []image.Rectangle{
		image.Rect(0, 0, 639, 448),
		image.Rect(0, 0, 640, 447),
		image.Rect(0, 0, 448, 640),
	} {
		_, err := Crop(image.NewNRGBA(r), InputWidth, InputHeight)
		assert.ErrorIs(t, err, ErrOutOfBounds, "%v", r)
	}
}

func TestColorsToImage(t *testing.T) {
	img, err := ColorsToImage([]uint32{0xFF102030, 0x80A0B0C0}, 2, 1)
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 0xFF}, img.NRGBAAt(0, 0))
	assert.Equal(t, color.NRGBA{R: 0xA0, G: 0xB0, B: 0xC0, A: 0x80}, img.NRGBAAt(1, 0))

	_, err = ColorsToImage([]uint32{1, 2, 3}, 2, 1)
	assert.ErrorIs(t, err, ErrShapeMismatch)
}

func TestRotateClockwise(t *testing.T) {
	// 3 wide, 2 tall:
	//   a b c
	//   d e f
	// clockwise:
	//   d a
	//   e b
	//   f c
	src := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	mark := func(v uint8) color.NRGBA { return color.NRGBA{R: v, A: 255} }
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			src.SetNRGBA(x, y, mark(uint8(y*3+x+1)))
		}
	}

	out := Rotate(src)
	require.Equal(t, image.Rect(0, 0, 2, 3), out.Bounds())
	assert.Equal(t, mark(4), out.NRGBAAt(0, 0))
	assert.Equal(t, mark(1), out.NRGBAAt(1, 0))
	assert.Equal(t, mark(5), out.NRGBAAt(0, 1))
	assert.Equal(t, mark(2), out.NRGBAAt(1, 1))
	assert.Equal(t, mark(6), out.NRGBAAt(0, 2))
	assert.Equal(t, mark(3), out.NRGBAAt(1, 2))
}
