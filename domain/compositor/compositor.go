// Package compositor provides the pure, synchronous frame composition pipeline:
// viewport-matched cover cropping of raw device frames and picture-in-picture
// overlay placement with a soft drop shadow and rounded clipping. Every function
// here is side-effect free; callers own all surfaces passed in and returned.
package compositor

import (
	"errors"
	"image"
	"math"

	"golang.org/x/image/draw"
)

// Layout constants in preview-layout pixels. CompositeOverlay multiplies each by
// the base-surface scale so exported pixels match what the live preview showed.
const (
	// OverlayWidthRatio is the overlay width as a fraction of the base width.
	OverlayWidthRatio = 0.25
	// OverlayMarginPx separates the overlay from the left/right/top edges.
	OverlayMarginPx = 20.0
	// OverlayBottomMarginPx is larger than the side margins so a bottom-anchored
	// overlay clears the on-screen capture controls.
	OverlayBottomMarginPx = 100.0
	// OverlayCornerRadiusPx rounds the overlay clip path.
	OverlayCornerRadiusPx = 16.0

	shadowBlurPx    = 24.0
	shadowOffsetYPx = 8.0
	shadowMaxAlpha  = 115 // ~0.45 opacity
)

var errEmptyFrame = errors.New("compositor: empty source frame")

// CaptureFrame crops a raw device frame to the viewport aspect ratio (cover fit,
// centered) and returns it as a new surface. The output keeps the cropped
// region's native resolution, clamped so it is never smaller than the viewport:
// the export neither upsamples beyond native pixels nor downsamples below them.
// When flip is set the result is mirrored horizontally, matching the preview of
// a front-facing device.
func CaptureFrame(frame image.Image, viewportW, viewportH int, flip bool) (*image.RGBA, error) {
	if frame == nil {
		return nil, errEmptyFrame
	}
	b := frame.Bounds()
	nativeW, nativeH := b.Dx(), b.Dy()
	if nativeW <= 0 || nativeH <= 0 {
		return nil, errEmptyFrame
	}
	if viewportW <= 0 || viewportH <= 0 {
		return nil, errors.New("compositor: invalid viewport")
	}

	crop := coverCrop(nativeW, nativeH, viewportW, viewportH).Add(b.Min)

	scale := math.Max(
		float64(crop.Dx())/float64(viewportW),
		float64(crop.Dy())/float64(viewportH),
	)
	if scale < 1 {
		scale = 1
	}
	outW := int(math.Round(float64(viewportW) * scale))
	outH := int(math.Round(float64(viewportH) * scale))

	out := image.NewRGBA(image.Rect(0, 0, outW, outH))
	if outW == crop.Dx() && outH == crop.Dy() {
		draw.Copy(out, image.Point{}, frame, crop, draw.Src, nil)
	} else {
		draw.CatmullRom.Scale(out, out.Bounds(), frame, crop, draw.Src, nil)
	}
	if flip {
		mirrorHorizontal(out)
	}
	return out, nil
}

// coverCrop returns the centered source rectangle (origin at 0,0) that matches
// the viewport aspect ratio. If the source is wider than the viewport ratio the
// width is cropped and the full height kept; otherwise the height is cropped
// and the full width kept.
func coverCrop(nativeW, nativeH, viewportW, viewportH int) image.Rectangle {
	nativeRatio := float64(nativeW) / float64(nativeH)
	viewRatio := float64(viewportW) / float64(viewportH)
	if nativeRatio > viewRatio {
		cropW := int(math.Round(float64(nativeH) * viewRatio))
		if cropW < 1 {
			cropW = 1
		}
		x0 := (nativeW - cropW) / 2
		return image.Rect(x0, 0, x0+cropW, nativeH)
	}
	cropH := int(math.Round(float64(nativeW) / viewRatio))
	if cropH < 1 {
		cropH = 1
	}
	y0 := (nativeH - cropH) / 2
	return image.Rect(0, y0, nativeW, y0+cropH)
}

// mirrorHorizontal flips the image around its vertical axis in place.
func mirrorHorizontal(img *image.RGBA) {
	b := img.Bounds()
	w := b.Dx()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := img.Pix[(y-b.Min.Y)*img.Stride : (y-b.Min.Y)*img.Stride+w*4]
		for x := 0; x < w/2; x++ {
			l := x * 4
			r := (w - 1 - x) * 4
			row[l], row[r] = row[r], row[l]
			row[l+1], row[r+1] = row[r+1], row[l+1]
			row[l+2], row[r+2] = row[r+2], row[l+2]
			row[l+3], row[r+3] = row[r+3], row[l+3]
		}
	}
}

// OverlayRect computes the overlay destination rectangle on a base surface of
// the given size, for a preview laid out at baseViewportW, together with the
// scaled corner radius. The same formulas drive the composited export and the
// live-preview geometry so both agree pixel for pixel.
func OverlayRect(baseW, baseH, baseViewportW int, corner Corner) (image.Rectangle, float64) {
	scale := float64(baseW) / float64(baseViewportW)
	overlayW := OverlayWidthRatio * float64(baseW)
	overlayH := overlayW * float64(baseH) / float64(baseW)
	margin := OverlayMarginPx * scale
	bottomMargin := OverlayBottomMarginPx * scale
	radius := OverlayCornerRadiusPx * scale

	var x, y float64
	switch corner {
	case TopLeft:
		x, y = margin, margin
	case TopRight:
		x, y = float64(baseW)-margin-overlayW, margin
	case BottomLeft:
		x, y = margin, float64(baseH)-bottomMargin-overlayH
	case BottomRight:
		x, y = float64(baseW)-margin-overlayW, float64(baseH)-bottomMargin-overlayH
	}
	x0 := int(math.Round(x))
	y0 := int(math.Round(y))
	return image.Rect(x0, y0, x0+int(math.Round(overlayW)), y0+int(math.Round(overlayH))), radius
}

// CompositeOverlay draws overlay onto a copy of base as a picture-in-picture
// inset anchored at the given corner. The overlay is clipped to a rounded
// rectangle and casts a soft drop shadow; there is no stroked border. The
// shadow is painted first, then the clipped overlay, matching what the live
// preview displays. Callers must not invoke this without an overlay frame.
func CompositeOverlay(base, overlay *image.RGBA, baseViewportW int, corner Corner) (*image.RGBA, error) {
	if base == nil || overlay == nil {
		return nil, errEmptyFrame
	}
	if baseViewportW <= 0 {
		return nil, errors.New("compositor: invalid base viewport width")
	}
	baseW, baseH := base.Bounds().Dx(), base.Bounds().Dy()
	if baseW <= 0 || baseH <= 0 {
		return nil, errEmptyFrame
	}

	out := image.NewRGBA(image.Rect(0, 0, baseW, baseH))
	draw.Copy(out, image.Point{}, base, base.Bounds(), draw.Src, nil)

	dst, radius := OverlayRect(baseW, baseH, baseViewportW, corner)
	scale := float64(baseW) / float64(baseViewportW)
	mask := roundedRectMask(dst.Dx(), dst.Dy(), radius)

	shadowOffset := int(math.Round(shadowOffsetYPx * scale))
	drawShadow(out, mask, dst.Min.Add(image.Pt(0, shadowOffset)), shadowBlurPx*scale)

	scaled := image.NewRGBA(image.Rect(0, 0, dst.Dx(), dst.Dy()))
	draw.CatmullRom.Scale(scaled, scaled.Bounds(), overlay, overlay.Bounds(), draw.Src, nil)
	draw.DrawMask(out, dst, scaled, image.Point{}, mask, image.Point{}, draw.Over)
	return out, nil
}
