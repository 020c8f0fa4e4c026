package refraction

import "errors"

var (
	// ErrNonIntegerDimension reports a box whose width or height is not a
	// whole number of pixels.
	ErrNonIntegerDimension = errors.New("refraction: bounding box dimension is not integral")
	// ErrEmptyRotatedBounds reports a rotated shape with no visible content.
	ErrEmptyRotatedBounds = errors.New("refraction: rotated shape has empty bounds")
	// ErrPaletteUnavailable reports a quantizer that produced no palette.
	ErrPaletteUnavailable = errors.New("refraction: quantized image has no palette")

	ErrInvertedBox      = errors.New("refraction: bounding box corners are inverted")
	ErrUnknownShapeKind = errors.New("refraction: unknown shape kind")
	ErrEmptyImage       = errors.New("refraction: image has no pixels")
	ErrShapeTooLarge    = errors.New("refraction: bounding box is too large")
)
