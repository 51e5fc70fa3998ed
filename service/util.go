package service

import (
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"

	_ "github.com/gen2brain/avif"
	_ "golang.org/x/image/webp"
)

func decodeImage(r io.Reader) (image.Image, error) {
	img, _, err := image.Decode(r)
	return img, err
}
