package refraction

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Point is a real-valued coordinate.
type Point struct {
	X, Y float64
}

func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// BoundBox is an axis-aligned box delimited by its top-left and
// bottom-right corners.
type BoundBox struct {
	TopLeft     Point
	BottomRight Point
}

func Box(x0, y0, x1, y1 float64) BoundBox {
	return BoundBox{TopLeft: Pt(x0, y0), BottomRight: Pt(x1, y1)}
}

func (b BoundBox) Width() float64 {
	return b.BottomRight.X - b.TopLeft.X
}

func (b BoundBox) Height() float64 {
	return b.BottomRight.Y - b.TopLeft.Y
}

// Midpoint returns the geometric center of the box in the box's own
// coordinate frame.
func (b BoundBox) Midpoint() Point {
	return Point{
		X: (b.TopLeft.X + b.BottomRight.X) / 2,
		Y: (b.TopLeft.Y + b.BottomRight.Y) / 2,
	}
}

// Sizes holds pixel dimensions derived from a BoundBox.
type Sizes struct {
	W, H int
}

func (s Sizes) Empty() bool {
	return s.W <= 0 || s.H <= 0
}

// RGBColor is an opaque 8-bit color.
type RGBColor struct {
	R, G, B uint8
}

func (c RGBColor) RGBA() (r, g, b, a uint32) {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}.RGBA()
}

// Colorful converts c into go-colorful space.
func (c RGBColor) Colorful() colorful.Color {
	col, _ := colorful.MakeColor(color.RGBA{R: c.R, G: c.G, B: c.B, A: 255})
	return col
}

func (c RGBColor) Hex() string {
	return c.Colorful().Hex()
}

func (c RGBColor) String() string {
	return fmt.Sprintf("RGBColor(%d, %d, %d)", c.R, c.G, c.B)
}

// RGBColorFrom converts any color to straight (non-premultiplied) RGB,
// dropping alpha.
func RGBColorFrom(c color.Color) RGBColor {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return RGBColor{R: n.R, G: n.G, B: n.B}
}

// RGBAColor is an 8-bit RGB color with a float alpha in [0, 1], the
// convention used by the gg drawing backend.
type RGBAColor struct {
	R, G, B uint8
	A       float64
}

// Opaque returns c with full alpha.
func Opaque(c RGBColor) RGBAColor {
	return RGBAColor{R: c.R, G: c.G, B: c.B, A: 1}
}

// NRGBA returns the straight-alpha form of c. Alpha outside [0, 1] is clamped.
func (c RGBAColor) NRGBA() color.NRGBA {
	a := max(0, min(1, c.A))
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(math.Round(a * 255))}
}

func (c RGBAColor) RGBA() (r, g, b, a uint32) {
	return c.NRGBA().RGBA()
}

// ShapeKind is the closed set of supported primitives.
type ShapeKind int

const (
	KindEllipse ShapeKind = iota
	KindRectangle
	KindTriangle
)

func (k ShapeKind) String() string {
	switch k {
	case KindEllipse:
		return "ellipse"
	case KindRectangle:
		return "rectangle"
	case KindTriangle:
		return "triangle"
	default:
		return fmt.Sprintf("ShapeKind(%d)", int(k))
	}
}

// Rotation is an optional angle in whole degrees. The zero value means no
// rotation; Rotate(0) is a real rotation that still runs the rotate step.
type Rotation struct {
	degrees int
	set     bool
}

// NoRotation leaves the filled shape untouched.
var NoRotation = Rotation{}

// Rotate returns a counter-clockwise rotation by deg degrees.
func Rotate(deg int) Rotation {
	return Rotation{degrees: deg, set: true}
}

// Degrees reports the angle and whether one is set.
func (r Rotation) Degrees() (int, bool) {
	return r.degrees, r.set
}

func (r Rotation) String() string {
	if !r.set {
		return "none"
	}
	return fmt.Sprintf("%d°", r.degrees)
}

// BackgroundType selects the sampler that picks a canvas background.
type BackgroundType int

const (
	BackgroundDominant BackgroundType = iota
	BackgroundAverage
)

func (t BackgroundType) String() string {
	switch t {
	case BackgroundAverage:
		return "average"
	default:
		return "dominant"
	}
}

// ParseBackgroundType accepts "dominant" or "average" in any case.
func ParseBackgroundType(s string) (BackgroundType, error) {
	switch strings.ToLower(s) {
	case "dominant":
		return BackgroundDominant, nil
	case "average":
		return BackgroundAverage, nil
	}
	return 0, fmt.Errorf("unknown background type %q", s)
}
