package refraction

import (
	"fmt"
	"image"
	"math"

	"github.com/gogpu/gg"
	"golang.org/x/image/draw"
)

// ShapeConfig describes one shape. It is consumed once by NewShape and never
// mutated afterwards.
type ShapeConfig struct {
	Kind     ShapeKind
	Box      BoundBox
	Rotation Rotation
	Color    RGBAColor
}

// Shape is a rasterized primitive together with its derived geometry.
// A Shape is immutable once NewShape returns it and exclusively owns its
// pixel buffer.
type Shape struct {
	config ShapeConfig
	sizes  Sizes
	center Point
	box    BoundBox
	img    *image.RGBA
}

// NewShape sizes, fills and optionally rotates the shape described by cfg.
//
// The box must have integral width and height; otherwise
// ErrNonIntegerDimension is returned before anything is drawn. A rotation
// that leaves no visible pixel fails with ErrEmptyRotatedBounds.
func NewShape(cfg ShapeConfig) (*Shape, error) {
	fill, ok := cfg.Kind.fill()
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrUnknownShapeKind, cfg.Kind)
	}
	sizes, err := sizesOf(cfg.Box)
	if err != nil {
		return nil, err
	}
	s := &Shape{
		config: cfg,
		sizes:  sizes,
		// Half-extent in the shape's own frame, not the box midpoint.
		center: Point{X: float64(sizes.W) / 2, Y: float64(sizes.H) / 2},
		box:    cfg.Box,
	}

	s.img, err = rasterize(sizes, cfg.Color, fill)
	if err != nil {
		return nil, fmt.Errorf("refraction: fill %v: %w", cfg.Kind, err)
	}
	if err := s.rotate(); err != nil {
		return nil, err
	}

	Logger().Debug("shape built",
		"kind", cfg.Kind.String(),
		"rotation", cfg.Rotation.String(),
		"w", s.sizes.W, "h", s.sizes.H)
	return s, nil
}

// MaxShapeSide bounds each side of a shape's box. A rotated buffer grows by
// at most a factor of sqrt(2), so its pixel count still fits an int.
const MaxShapeSide = 1 << 15

func sizesOf(b BoundBox) (Sizes, error) {
	w, h := b.Width(), b.Height()
	if w < 0 || h < 0 {
		return Sizes{}, fmt.Errorf("%w: %+v", ErrInvertedBox, b)
	}
	if !integral(w) || !integral(h) {
		return Sizes{}, fmt.Errorf("%w: %gx%g", ErrNonIntegerDimension, w, h)
	}
	if w > MaxShapeSide || h > MaxShapeSide {
		return Sizes{}, fmt.Errorf("%w: %gx%g exceeds %d", ErrShapeTooLarge, w, h, MaxShapeSide)
	}
	return Sizes{W: int(w), H: int(h)}, nil
}

func integral(v float64) bool {
	return !math.IsInf(v, 0) && v == math.Trunc(v)
}

// rasterize draws one shape onto a transparent buffer of the given size.
// The drawing context lives only for the duration of the fill.
func rasterize(s Sizes, col RGBAColor, fill fillFunc) (*image.RGBA, error) {
	if s.Empty() {
		return image.NewRGBA(image.Rect(0, 0, s.W, s.H)), nil
	}
	dc := gg.NewContext(s.W, s.H)
	defer func() {
		_ = dc.Close()
	}()

	dc.SetColor(col.NRGBA())
	fill(dc, float64(s.W), float64(s.H))
	if err := dc.Fill(); err != nil {
		return nil, err
	}
	return toRGBA(dc.Image()), nil
}

func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out
}

// rotate turns the filled buffer and re-derives sizes and bounding box.
// The new box is centered on the pre-rotation center, not on the centroid
// of the rotated content.
func (s *Shape) rotate() error {
	deg, ok := s.config.Rotation.Degrees()
	if !ok {
		return nil
	}
	rotated := rotateExpand(s.img, deg)
	content := opaqueBounds(rotated)
	if content.Empty() {
		return fmt.Errorf("%w: %v rotated by %d°", ErrEmptyRotatedBounds, s.config.Kind, deg)
	}
	s.img = crop(rotated, content)
	s.sizes = Sizes{W: content.Dx(), H: content.Dy()}

	hw, hh := float64(s.sizes.W)/2, float64(s.sizes.H)/2
	s.box = BoundBox{
		TopLeft:     Point{X: s.center.X - hw, Y: s.center.Y - hh},
		BottomRight: Point{X: s.center.X + hw, Y: s.center.Y + hh},
	}
	return nil
}

func (s *Shape) Config() ShapeConfig { return s.config }
func (s *Shape) Kind() ShapeKind     { return s.config.Kind }
func (s *Shape) Sizes() Sizes        { return s.sizes }
func (s *Shape) Center() Point       { return s.center }

// BoundingBox is the configured box for unrotated shapes. After a rotation
// it is the recovered content box expressed in the shape's own frame,
// centered on Center.
func (s *Shape) BoundingBox() BoundBox { return s.box }

// Image returns the shape's pixel buffer. Its bounds start at the origin and
// match Sizes. Callers must not modify it.
func (s *Shape) Image() *image.RGBA { return s.img }

// Placement is the top-left corner, in canvas coordinates, at which the
// buffer is composited.
func (s *Shape) Placement() Point {
	if _, ok := s.config.Rotation.Degrees(); !ok {
		return s.config.Box.TopLeft
	}
	return s.config.Box.TopLeft.Add(s.box.TopLeft)
}
