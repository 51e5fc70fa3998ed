package depth

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// Fixed network input size of PyDNet++.
const (
	InputWidth  = 640
	InputHeight = 448
)

// Crop cuts a w×h region from the top-left corner of img. Unlike
// imaging.Crop it refuses to clamp: a source smaller than the region is an
// error.
func Crop(img image.Image, w, h int) (*image.NRGBA, error) {
	b := img.Bounds()
	if b.Dx() < w || b.Dy() < h {
		return nil, fmt.Errorf("%w: %dx%d source, %dx%d region", ErrOutOfBounds, b.Dx(), b.Dy(), w, h)
	}
	return imaging.Crop(img, image.Rect(b.Min.X, b.Min.Y, b.Min.X+w, b.Min.Y+h)), nil
}

// ColorsToImage lays out row-major ARGB values as a w×h image.
func ColorsToImage(colors []uint32, w, h int) (*image.NRGBA, error) {
	if len(colors) != w*h {
		return nil, fmt.Errorf("%w: %d colors for %dx%d", ErrShapeMismatch, len(colors), w, h)
	}
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i, c := range colors {
		p := img.Pix[i*4 : i*4+4 : i*4+4]
		p[0] = uint8(c >> 16)
		p[1] = uint8(c >> 8)
		p[2] = uint8(c)
		p[3] = uint8(c >> 24)
	}
	return img, nil
}

// Rotate turns img 90 degrees clockwise.
func Rotate(img image.Image) *image.NRGBA {
	return imaging.Rotate270(img)
}
