package refraction

import "github.com/gogpu/gg"

// fillFunc adds the outline of a shape spanning [0,0]-[w,h] to the current
// path of dc. The pipeline fills it.
type fillFunc func(dc *gg.Context, w, h float64)

func (k ShapeKind) fill() (fillFunc, bool) {
	switch k {
	case KindEllipse:
		return fillEllipse, true
	case KindRectangle:
		return fillRectangle, true
	case KindTriangle:
		return fillTriangle, true
	}
	return nil, false
}

func fillEllipse(dc *gg.Context, w, h float64) {
	dc.DrawEllipse(w/2, h/2, w/2, h/2)
}

func fillRectangle(dc *gg.Context, w, h float64) {
	dc.DrawRectangle(0, 0, w, h)
}

// fillTriangle draws an isosceles triangle with its apex at the middle of
// the top edge and its base along the bottom edge.
func fillTriangle(dc *gg.Context, w, h float64) {
	dc.MoveTo(w/2, 0)
	dc.LineTo(w, h)
	dc.LineTo(0, h)
	dc.ClosePath()
}

// ShapeFactory builds a shape on demand. Canvas invokes its factories once
// per render.
type ShapeFactory func() (*Shape, error)

func NewEllipse(box BoundBox, rot Rotation, col RGBAColor) (*Shape, error) {
	return NewShape(ShapeConfig{Kind: KindEllipse, Box: box, Rotation: rot, Color: col})
}

func NewRectangle(box BoundBox, rot Rotation, col RGBAColor) (*Shape, error) {
	return NewShape(ShapeConfig{Kind: KindRectangle, Box: box, Rotation: rot, Color: col})
}

func NewTriangle(box BoundBox, rot Rotation, col RGBAColor) (*Shape, error) {
	return NewShape(ShapeConfig{Kind: KindTriangle, Box: box, Rotation: rot, Color: col})
}

func EllipseFactory(box BoundBox, rot Rotation, col RGBAColor) ShapeFactory {
	return func() (*Shape, error) { return NewEllipse(box, rot, col) }
}

func RectangleFactory(box BoundBox, rot Rotation, col RGBAColor) ShapeFactory {
	return func() (*Shape, error) { return NewRectangle(box, rot, col) }
}

func TriangleFactory(box BoundBox, rot Rotation, col RGBAColor) ShapeFactory {
	return func() (*Shape, error) { return NewTriangle(box, rot, col) }
}

// FactoryFor returns the deferred constructor for kind.
func FactoryFor(kind ShapeKind, box BoundBox, rot Rotation, col RGBAColor) ShapeFactory {
	cfg := ShapeConfig{Kind: kind, Box: box, Rotation: rot, Color: col}
	return func() (*Shape, error) { return NewShape(cfg) }
}
