package assets

import (
	"bytes"
	_ "embed"
	"fmt"
	"image"
	"image/png"
)

// CameraOffPNG contains the raw PNG bytes of the overlay placeholder shown
// while the overlay slot has no live stream. It is preview-only and is never
// drawn into an exported photo.
//
//go:embed camera_off.png
var CameraOffPNG []byte

// CameraOffImage decodes the embedded placeholder into an image.Image.
func CameraOffImage() (image.Image, error) {
	if len(CameraOffPNG) == 0 {
		return nil, fmt.Errorf("embedded camera_off.png is empty")
	}
	img, err := png.Decode(bytes.NewReader(CameraOffPNG))
	if err != nil {
		return nil, err
	}
	return img, nil
}
