package refraction

import (
	"cmp"
	"fmt"
	"image"
	"image/color"
	"math"
	"slices"

	"github.com/ericpauley/go-quantize/quantize"
	"golang.org/x/image/draw"
	"gonum.org/v1/gonum/floats"
)

const (
	// DefaultPaletteSize is the palette size used when none is given.
	DefaultPaletteSize = 16
	// ThumbnailSize bounds the longest side of the image quantized by
	// DominantColor.
	ThumbnailSize = 100
)

type samplerOptions struct {
	quantizer draw.Quantizer
	thumbnail int
}

// SamplerOption configures DominantColor.
type SamplerOption func(*samplerOptions)

// WithQuantizer replaces the default median cut quantizer.
func WithQuantizer(q draw.Quantizer) SamplerOption {
	return func(o *samplerOptions) {
		if q != nil {
			o.quantizer = q
		}
	}
}

// WithThumbnailSize changes the downscale bound. Values <= 0 disable
// downscaling.
func WithThumbnailSize(n int) SamplerOption {
	return func(o *samplerOptions) {
		o.thumbnail = n
	}
}

// DefaultQuantizer is the histogram median cut used by DominantColor unless
// WithQuantizer overrides it. Each palette entry is the mean of its box.
var DefaultQuantizer draw.Quantizer = quantize.MedianCutQuantizer{Aggregation: quantize.Mean}

func defaultSamplerOptions() samplerOptions {
	return samplerOptions{quantizer: DefaultQuantizer, thumbnail: ThumbnailSize}
}

type paletteCount struct {
	count int
	index int
}

// DominantColor returns the most frequent color after reducing img to a
// palette of at most paletteSize colors.
//
// The image is downscaled to at most ThumbnailSize pixels on its longest
// side first. Unlike a thumbnail-in-place sampler, img itself is never
// modified; the downscaled copy is private.
//
// Among palette entries with equal pixel counts the one with the higher
// palette index wins. Results are deterministic for a fixed quantizer and
// input.
func DominantColor(img image.Image, paletteSize int, opts ...SamplerOption) (RGBColor, error) {
	o := defaultSamplerOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if paletteSize <= 0 {
		paletteSize = DefaultPaletteSize
	}
	paletteSize = min(paletteSize, 256)
	if img.Bounds().Empty() {
		return RGBColor{}, ErrEmptyImage
	}

	small := thumbnail(img, o.thumbnail)
	palette := o.quantizer.Quantize(make(color.Palette, 0, paletteSize), small)
	if len(palette) == 0 {
		return RGBColor{}, ErrPaletteUnavailable
	}
	if len(palette) > paletteSize {
		palette = palette[:paletteSize]
	}

	paletted := image.NewPaletted(small.Bounds(), palette)
	draw.Draw(paletted, paletted.Bounds(), small, small.Bounds().Min, draw.Src)

	counts := make([]int, len(palette))
	for _, idx := range paletted.Pix {
		counts[idx]++
	}
	ranked := make([]paletteCount, 0, len(counts))
	for i, n := range counts {
		if n > 0 {
			ranked = append(ranked, paletteCount{count: n, index: i})
		}
	}
	if len(ranked) == 0 {
		return RGBColor{}, ErrPaletteUnavailable
	}
	slices.SortFunc(ranked, func(a, b paletteCount) int {
		if c := cmp.Compare(b.count, a.count); c != 0 {
			return c
		}
		return cmp.Compare(b.index, a.index)
	})
	return RGBColorFrom(palette[ranked[0].index]), nil
}

// thumbnail returns img scaled down, preserving aspect ratio, so that its
// longest side is at most size. Smaller images are returned as an RGBA copy
// at their own resolution.
func thumbnail(img image.Image, size int) *image.RGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if size <= 0 || max(w, h) <= size {
		out := image.NewRGBA(image.Rect(0, 0, w, h))
		draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
		return out
	}
	scale := float64(size) / float64(max(w, h))
	tw := max(1, int(math.Round(float64(w)*scale)))
	th := max(1, int(math.Round(float64(h)*scale)))
	out := image.NewRGBA(image.Rect(0, 0, tw, th))
	draw.CatmullRom.Scale(out, out.Bounds(), img, b, draw.Src, nil)
	return out
}

// AverageColor returns the per-channel arithmetic mean of img at full
// resolution. Alpha is ignored and each mean is rounded half to even.
//
// Pixels are read one row at a time, so memory stays proportional to the
// image width.
func AverageColor(img image.Image) (RGBColor, error) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 {
		return RGBColor{}, ErrEmptyImage
	}
	rs := make([]float64, w)
	gs := make([]float64, w)
	bs := make([]float64, w)
	var sum [3]float64
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for i := range w {
			c := color.NRGBAModel.Convert(img.At(b.Min.X+i, y)).(color.NRGBA)
			rs[i], gs[i], bs[i] = float64(c.R), float64(c.G), float64(c.B)
		}
		// Row sums are integers below 2^53, so the totals stay exact.
		sum[0] += floats.Sum(rs)
		sum[1] += floats.Sum(gs)
		sum[2] += floats.Sum(bs)
	}
	n := float64(w) * float64(h)
	return RGBColor{
		R: channel(sum[0] / n),
		G: channel(sum[1] / n),
		B: channel(sum[2] / n),
	}, nil
}

func channel(v float64) uint8 {
	return uint8(max(0, min(255, math.RoundToEven(v))))
}

// Sample picks the background color for t.
func Sample(img image.Image, t BackgroundType, paletteSize int, opts ...SamplerOption) (RGBColor, error) {
	switch t {
	case BackgroundDominant:
		return DominantColor(img, paletteSize, opts...)
	case BackgroundAverage:
		return AverageColor(img)
	}
	return RGBColor{}, fmt.Errorf("refraction: unknown background type %d", int(t))
}
