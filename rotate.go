package refraction

import (
	"image"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

// rotateExpand rotates src counter-clockwise by deg degrees about its
// center. The result is grown to hold every rotated corner; uncovered
// pixels stay transparent.
func rotateExpand(src *image.RGBA, deg int) *image.RGBA {
	sin, cos := sincosDeg(deg)
	sb := src.Bounds()
	w, h := float64(sb.Dx()), float64(sb.Dy())
	nw, nh := expandedSize(w, h, sin, cos)

	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	if sb.Empty() || nw == 0 || nh == 0 {
		return dst
	}
	cx, cy := w/2, h/2
	dcx, dcy := float64(nw)/2, float64(nh)/2
	// y grows downward, so a counter-clockwise turn on screen maps
	// (dx, dy) to (dx cos + dy sin, -dx sin + dy cos).
	s2d := f64.Aff3{
		cos, sin, dcx - cx*cos - cy*sin,
		-sin, cos, dcy + cx*sin - cy*cos,
	}
	draw.NearestNeighbor.Transform(dst, s2d, src, sb, draw.Src, nil)
	return dst
}

// sincosDeg is exact on quarter turns so that 90° multiples map pixel
// centers onto pixel centers.
func sincosDeg(deg int) (sin, cos float64) {
	switch ((deg % 360) + 360) % 360 {
	case 0:
		return 0, 1
	case 90:
		return 1, 0
	case 180:
		return 0, -1
	case 270:
		return -1, 0
	}
	return math.Sincos(float64(deg) * math.Pi / 180)
}

func expandedSize(w, h, sin, cos float64) (int, int) {
	const eps = 1e-9
	ew := math.Abs(w*cos) + math.Abs(h*sin)
	eh := math.Abs(w*sin) + math.Abs(h*cos)
	return int(math.Ceil(ew - eps)), int(math.Ceil(eh - eps))
}

// opaqueBounds returns the tightest rectangle holding every pixel with
// non-zero alpha, or an empty rectangle.
func opaqueBounds(img *image.RGBA) image.Rectangle {
	b := img.Bounds()
	minX, minY := b.Max.X, b.Max.Y
	maxX, maxY := b.Min.X, b.Min.Y
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := img.Pix[img.PixOffset(b.Min.X, y):]
		for x := b.Min.X; x < b.Max.X; x++ {
			if row[(x-b.Min.X)*4+3] == 0 {
				continue
			}
			minX = min(minX, x)
			minY = min(minY, y)
			maxX = max(maxX, x+1)
			maxY = max(maxY, y+1)
		}
	}
	if minX >= maxX || minY >= maxY {
		return image.Rectangle{}
	}
	return image.Rect(minX, minY, maxX, maxY)
}

func crop(img *image.RGBA, r image.Rectangle) *image.RGBA {
	if r == img.Bounds() && r.Min == (image.Point{}) {
		return img
	}
	out := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	draw.Draw(out, out.Bounds(), img, r.Min, draw.Src)
	return out
}
