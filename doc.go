// Package refraction composes simple geometric shapes onto a raster canvas
// over a background color sampled from a source image.
//
// # Shapes
//
// A Shape is built once from an immutable ShapeConfig by a fixed pipeline:
// the size is derived from the bounding box, the shape is filled onto a
// transparent buffer of that size by the gg drawing backend, and, when a
// Rotation is set, the buffer is rotated counter-clockwise with an
// expand-to-fit canvas and the bounding box is recomputed around the
// original center.
//
//	s, err := refraction.NewEllipse(refraction.Box(0, 0, 40, 20),
//	    refraction.Rotate(30), refraction.RGBAColor{R: 200, A: 1})
//
// # Colors
//
// DominantColor reduces an image to a small palette and returns the most
// frequent entry; AverageColor returns the per-channel mean. Canvas uses
// one of them, selected by BackgroundType, to fill its background.
//
// # Coordinates
//
// Origin at the top-left, x grows right, y grows down. Rotation angles are
// whole degrees, positive is counter-clockwise on screen.
package refraction
