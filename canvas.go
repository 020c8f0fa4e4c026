package refraction

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"math/rand/v2"
	"runtime"
	"time"

	"golang.org/x/image/draw"
	"golang.org/x/sync/errgroup"
)

// CanvasConfig describes one composition.
type CanvasConfig struct {
	// Size of the output. Zero means the size of the source image.
	Size image.Point
	// Shapes are built concurrently and composited in slice order.
	Shapes []ShapeFactory
	// Background selects the sampler for the background fill.
	Background BackgroundType
	// Seed makes Canvas.Rand deterministic when set.
	Seed *uint64
}

// ErrorPolicy decides what a canvas does with a shape that fails to build.
type ErrorPolicy int

const (
	// PolicyAbort fails the whole render on the first shape error.
	PolicyAbort ErrorPolicy = iota
	// PolicySkip logs the error and leaves the shape out.
	PolicySkip
)

type canvasOptions struct {
	paletteSize int
	workers     int
	policy      ErrorPolicy
	sampler     []SamplerOption
}

// CanvasOption configures a Canvas.
type CanvasOption func(*canvasOptions)

// WithPaletteSize sets the palette size used for a dominant background.
func WithPaletteSize(n int) CanvasOption {
	return func(o *canvasOptions) { o.paletteSize = n }
}

// WithWorkers bounds how many shapes are built at once. n <= 0 means
// GOMAXPROCS.
func WithWorkers(n int) CanvasOption {
	return func(o *canvasOptions) { o.workers = n }
}

func WithErrorPolicy(p ErrorPolicy) CanvasOption {
	return func(o *canvasOptions) { o.policy = p }
}

// WithSamplerOptions forwards options to DominantColor.
func WithSamplerOptions(opts ...SamplerOption) CanvasOption {
	return func(o *canvasOptions) { o.sampler = append(o.sampler, opts...) }
}

// Canvas composes shapes over a background sampled from a source image.
//
// Shapes are placed at Shape.Placement; the canvas applies no layout of its
// own.
type Canvas struct {
	source image.Image
	config CanvasConfig
	opts   canvasOptions
	rng    *rand.Rand

	background RGBColor
	shapes     []*Shape
}

func NewCanvas(source image.Image, cfg CanvasConfig, opts ...CanvasOption) *Canvas {
	o := canvasOptions{paletteSize: DefaultPaletteSize}
	for _, opt := range opts {
		opt(&o)
	}
	if o.workers <= 0 {
		o.workers = runtime.GOMAXPROCS(0)
	}
	seed := uint64(time.Now().UnixNano())
	if cfg.Seed != nil {
		seed = *cfg.Seed
	}
	return &Canvas{
		source: source,
		config: cfg,
		opts:   o,
		rng:    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// Rand returns the canvas's random source for caller-side layout. It is
// deterministic when CanvasConfig.Seed is set and is not safe for
// concurrent use.
func (c *Canvas) Rand() *rand.Rand { return c.rng }

// Add appends factories to the composition. It must not be called during
// Render.
func (c *Canvas) Add(factories ...ShapeFactory) {
	c.config.Shapes = append(c.config.Shapes, factories...)
}

// Background returns the color chosen by the last Render.
func (c *Canvas) Background() RGBColor { return c.background }

// Shapes returns the shapes composited by the last Render, in order.
func (c *Canvas) Shapes() []*Shape { return c.shapes }

func (c *Canvas) size() image.Point {
	if c.config.Size.X > 0 && c.config.Size.Y > 0 {
		return c.config.Size
	}
	return c.source.Bounds().Size()
}

// Render samples the background, builds every shape and composites them.
func (c *Canvas) Render() (*image.RGBA, error) {
	bg, err := Sample(c.source, c.config.Background, c.opts.paletteSize, c.opts.sampler...)
	if err != nil {
		return nil, fmt.Errorf("refraction: %v background: %w", c.config.Background, err)
	}
	c.background = bg
	Logger().Debug("background selected", "type", c.config.Background.String(), "color", bg.Hex())

	shapes, err := c.build()
	if err != nil {
		return nil, err
	}
	c.shapes = shapes

	size := c.size()
	out := image.NewRGBA(image.Rect(0, 0, size.X, size.Y))
	draw.Draw(out, out.Bounds(), image.NewUniform(color.RGBA{R: bg.R, G: bg.G, B: bg.B, A: 255}), image.Point{}, draw.Src)
	for _, s := range shapes {
		at := s.Placement()
		origin := image.Pt(int(math.Round(at.X)), int(math.Round(at.Y)))
		img := s.Image()
		draw.Draw(out, img.Bounds().Add(origin), img, image.Point{}, draw.Over)
	}
	return out, nil
}

// build runs the factories on a bounded worker group. Results and errors
// are stored by factory index so neither compositing order nor the reported
// error depends on scheduling.
func (c *Canvas) build() ([]*Shape, error) {
	results := make([]*Shape, len(c.config.Shapes))
	errs := make([]error, len(c.config.Shapes))
	var g errgroup.Group
	g.SetLimit(c.opts.workers)
	for i, factory := range c.config.Shapes {
		g.Go(func() error {
			results[i], errs[i] = factory()
			return nil
		})
	}
	_ = g.Wait()

	shapes := make([]*Shape, 0, len(results))
	for i, s := range results {
		if err := errs[i]; err != nil {
			if c.opts.policy != PolicySkip {
				return nil, fmt.Errorf("refraction: shape %d: %w", i, err)
			}
			Logger().Warn("shape skipped", "index", i, "err", err)
			continue
		}
		shapes = append(shapes, s)
	}
	return shapes, nil
}
