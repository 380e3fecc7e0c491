package compositor

import (
	"image"
	"math"
)

// roundedRectMask builds an alpha mask for a w×h rounded rectangle. Corner
// coverage falls off over one pixel so the clip edge stays smooth at any scale.
func roundedRectMask(w, h int, radius float64) *image.Alpha {
	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	if w <= 0 || h <= 0 {
		return mask
	}
	maxR := math.Min(float64(w), float64(h)) / 2
	if radius > maxR {
		radius = maxR
	}
	if radius < 0 {
		radius = 0
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			mask.Pix[y*mask.Stride+x] = roundedRectCoverage(float64(x)+0.5, float64(y)+0.5, float64(w), float64(h), radius)
		}
	}
	return mask
}

// roundedRectCoverage returns 0..255 coverage for the pixel centered at (px,py).
func roundedRectCoverage(px, py, w, h, radius float64) uint8 {
	// Distance to the nearest corner circle center; pixels outside the corner
	// squares are fully inside.
	cx := px
	if px < radius {
		cx = radius
	} else if px > w-radius {
		cx = w - radius
	}
	cy := py
	if py < radius {
		cy = radius
	} else if py > h-radius {
		cy = h - radius
	}
	dx, dy := px-cx, py-cy
	dist := math.Hypot(dx, dy)
	cov := radius + 0.5 - dist
	if cov >= 1 {
		return 255
	}
	if cov <= 0 {
		return 0
	}
	return uint8(cov * 255)
}

// drawShadow blends a blurred, black silhouette of mask onto dst at pos. blur
// is the blur extent in destination pixels; it is approximated with three box
// blur passes, which is close enough to a gaussian for a soft UI shadow.
func drawShadow(dst *image.RGBA, mask *image.Alpha, pos image.Point, blur float64) {
	r := int(math.Round(blur / 3))
	if r < 1 {
		r = 1
	}
	pad := 3 * r
	mw, mh := mask.Bounds().Dx(), mask.Bounds().Dy()
	sil := image.NewAlpha(image.Rect(0, 0, mw+2*pad, mh+2*pad))
	for y := 0; y < mh; y++ {
		copy(sil.Pix[(y+pad)*sil.Stride+pad:(y+pad)*sil.Stride+pad+mw], mask.Pix[y*mask.Stride:y*mask.Stride+mw])
	}
	for i := 0; i < 3; i++ {
		boxBlurAlpha(sil, r)
	}
	blendBlack(dst, sil, pos.Sub(image.Pt(pad, pad)), shadowMaxAlpha)
}

// boxBlurAlpha runs one horizontal and one vertical box blur pass of radius r
// in place, using running sums.
func boxBlurAlpha(img *image.Alpha, r int) {
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	if w == 0 || h == 0 || r < 1 {
		return
	}
	win := 2*r + 1
	tmp := make([]uint8, w)
	for y := 0; y < h; y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+w]
		sum := 0
		for x := -r; x <= r; x++ {
			sum += int(row[clampIndex(x, w)])
		}
		for x := 0; x < w; x++ {
			tmp[x] = uint8(sum / win)
			sum += int(row[clampIndex(x+r+1, w)]) - int(row[clampIndex(x-r, w)])
		}
		copy(row, tmp)
	}
	col := make([]uint8, h)
	for x := 0; x < w; x++ {
		sum := 0
		for y := -r; y <= r; y++ {
			sum += int(img.Pix[clampIndex(y, h)*img.Stride+x])
		}
		for y := 0; y < h; y++ {
			col[y] = uint8(sum / win)
			sum += int(img.Pix[clampIndex(y+r+1, h)*img.Stride+x]) - int(img.Pix[clampIndex(y-r, h)*img.Stride+x])
		}
		for y := 0; y < h; y++ {
			img.Pix[y*img.Stride+x] = col[y]
		}
	}
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// blendBlack alpha-blends black onto dst wherever the silhouette has coverage,
// scaling coverage by maxAlpha.
func blendBlack(dst *image.RGBA, sil *image.Alpha, pos image.Point, maxAlpha uint8) {
	db := dst.Bounds()
	sw, sh := sil.Bounds().Dx(), sil.Bounds().Dy()
	for sy := 0; sy < sh; sy++ {
		dy := pos.Y + sy
		if dy < db.Min.Y || dy >= db.Max.Y {
			continue
		}
		for sx := 0; sx < sw; sx++ {
			dx := pos.X + sx
			if dx < db.Min.X || dx >= db.Max.X {
				continue
			}
			cov := sil.Pix[sy*sil.Stride+sx]
			if cov == 0 {
				continue
			}
			a := uint32(cov) * uint32(maxAlpha) / 255
			if a == 0 {
				continue
			}
			i := dst.PixOffset(dx, dy)
			inv := 255 - a
			dst.Pix[i] = uint8(uint32(dst.Pix[i]) * inv / 255)
			dst.Pix[i+1] = uint8(uint32(dst.Pix[i+1]) * inv / 255)
			dst.Pix[i+2] = uint8(uint32(dst.Pix[i+2]) * inv / 255)
			dst.Pix[i+3] = uint8(a + uint32(dst.Pix[i+3])*inv/255)
		}
	}
}
