package images

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func gradient(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 40, A: 255})
		}
	}
	return img
}

func TestEncodePNGRoundTrips(t *testing.T) {
	src := gradient(16, 12)
	data := EncodePNG(src)
	if len(data) == 0 {
		t.Fatal("empty PNG data")
	}
	decoded, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.Bounds() != src.Bounds() {
		t.Fatalf("bounds = %v, want %v", decoded.Bounds(), src.Bounds())
	}
}

func TestEncodePNGNil(t *testing.T) {
	if data := EncodePNG(nil); data != nil {
		t.Fatalf("EncodePNG(nil) = %d bytes, want nil", len(data))
	}
}

func TestScaleToFitPreservesAspect(t *testing.T) {
	src := gradient(200, 100)
	out := ScaleToFit(src, 50, 50)
	b := out.Bounds()
	if b.Dx() != 50 || b.Dy() != 25 {
		t.Fatalf("scaled to %dx%d, want 50x25", b.Dx(), b.Dy())
	}
}

func TestScaleToFitReturnsOriginalWhenSmaller(t *testing.T) {
	src := gradient(30, 20)
	if out := ScaleToFit(src, 50, 50); out != image.Image(src) {
		t.Fatal("small image should be returned unchanged")
	}
}

func TestScaleToFitTallImage(t *testing.T) {
	src := gradient(100, 400)
	out := ScaleToFit(src, 80, 80)
	b := out.Bounds()
	if b.Dx() != 20 || b.Dy() != 80 {
		t.Fatalf("scaled to %dx%d, want 20x80", b.Dx(), b.Dy())
	}
}

func TestToRGBAPassThrough(t *testing.T) {
	src := gradient(8, 8)
	if ToRGBA(src) != src {
		t.Fatal("RGBA input should pass through without copying")
	}
}

func TestToRGBAConverts(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 8, 6))
	out := ToRGBA(src)
	if out == nil || out.Bounds().Dx() != 8 || out.Bounds().Dy() != 6 {
		t.Fatalf("unexpected conversion result: %v", out)
	}
}
