package utils

import (
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
)

func TestParsePaletteMethod(t *testing.T) {
	for _, m := range []PaletteMethod{PaletteMethodDominantColor, PaletteMethodKMeans} {
		got, err := ParsePaletteMethod(m.String())
		if err != nil || got != m {
			t.Errorf("ParsePaletteMethod(%q) = %v, %v", m.String(), got, err)
		}
	}
	if _, err := ParsePaletteMethod("octree"); err == nil {
		t.Errorf("accepted unknown method")
	}
}

func TestSortPaletteByBrightness(t *testing.T) {
	p := []colorful.Color{
		{R: 1, G: 1, B: 1},
		{R: 0, G: 0, B: 0},
		{R: 0.5, G: 0.5, B: 0.5},
	}
	SortPaletteByBrightness(p)
	if p[0] != (colorful.Color{}) || p[2] != (colorful.Color{R: 1, G: 1, B: 1}) {
		t.Errorf("unexpected order %v", p)
	}
}

func TestSelectDiverseWeightedColors(t *testing.T) {
	cands := []weightedColor{
		{Col: colorful.Color{R: 0.1, G: 0.1, B: 0.1}, Weight: 1},
		{Col: colorful.Color{R: 0.9, G: 0.1, B: 0.1}, Weight: 5},
		{Col: colorful.Color{R: 0.88, G: 0.1, B: 0.1}, Weight: 4},
		{Col: colorful.Color{R: 0.1, G: 0.1, B: 0.9}, Weight: 2},
	}
	got := SelectDiverseWeightedColors(cands, 3)
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	if got[0] != cands[1].Col {
		t.Errorf("first = %v, want heaviest %v", got[0], cands[1].Col)
	}
	for _, c := range got {
		if c == cands[2].Col {
			t.Errorf("near-duplicate of the heaviest color was selected")
		}
	}
	if SelectDiverseWeightedColors(cands, 0) != nil {
		t.Errorf("k=0 should return nil")
	}
	if n := len(SelectDiverseWeightedColors(cands, 10)); n != len(cands) {
		t.Errorf("k>len: got %d colors", n)
	}
}

func blocks() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 40, 40))
	for y := range 40 {
		for x := range 40 {
			c := color.RGBA{R: 230, G: 30, B: 30, A: 255}
			if x >= 30 {
				c = color.RGBA{R: 20, G: 30, B: 220, A: 255}
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestQuantizerBounds(t *testing.T) {
	for _, q := range []Quantizer{DominantColorQuantizer, KMeansQuantizer} {
		t.Run(q.Method.String(), func(t *testing.T) {
			p := q.Quantize(make(color.Palette, 0, 3), blocks())
			if len(p) == 0 || len(p) > 3 {
				t.Fatalf("len(palette) = %d, want 1..3", len(p))
			}
			for _, c := range p {
				if _, _, _, a := c.RGBA(); a != 0xffff {
					t.Errorf("palette color %v is not opaque", c)
				}
			}
		})
	}
}

func TestExtractPaletteEmpty(t *testing.T) {
	if p := ExtractKMeansPalette(image.NewRGBA(image.Rectangle{}), 4); p != nil {
		t.Errorf("empty image gave %v", p)
	}
	if p := ExtractPalette(blocks(), 0, PaletteMethodDominantColor); p != nil {
		t.Errorf("k=0 gave %v", p)
	}
}

func TestRandomBoxes(t *testing.T) {
	bounds := image.Pt(120, 80)
	a := RandomBoxes(42, 50, bounds, 5, 30)
	b := RandomBoxes(42, 50, bounds, 5, 30)
	if len(a) != 50 {
		t.Fatalf("len = %d", len(a))
	}
	frame := image.Rectangle{Max: bounds}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("box %d differs between runs: %v vs %v", i, a[i], b[i])
		}
		if !a[i].In(frame) {
			t.Errorf("box %v outside %v", a[i], frame)
		}
		if w, h := a[i].Dx(), a[i].Dy(); w < 5 || w > 30 || h < 5 || h > 30 {
			t.Errorf("box %v has side outside [5, 30]", a[i])
		}
	}
	if RandomBoxes(1, 0, bounds, 1, 2) != nil {
		t.Errorf("n=0 should return nil")
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	palette := []color.Color{color.RGBA{R: 255, A: 255}, colorful.Color{G: 1}}
	name := filepath.Join(dir, "palette.png")
	if err := SavePalette(palette, 8, name); err != nil {
		t.Fatal(err)
	}
	img, err := LoadImage(name)
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Size() != image.Pt(16, 8) {
		t.Errorf("size = %v", img.Bounds().Size())
	}
	if r, g, _, _ := img.At(12, 4).RGBA(); r != 0 || g != 0xffff {
		t.Errorf("second swatch = %v", img.At(12, 4))
	}
	if err := SavePalette(nil, 8, name); err == nil {
		t.Errorf("empty palette accepted")
	}

	if err := SaveImages([]*image.RGBA{blocks(), blocks()}, dir, "shape"); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadImage(filepath.Join(dir, "shape_01.png")); err != nil {
		t.Errorf("second image not written: %v", err)
	}
	if _, err := LoadImage(filepath.Join(dir, "missing.png")); err == nil {
		t.Errorf("missing file loaded")
	}
}

func TestReadImage(t *testing.T) {
	name := filepath.Join(t.TempDir(), "blocks.png")
	if err := SaveImage(blocks(), name); err != nil {
		t.Fatal(err)
	}
	if got := ReadImage(name).Bounds(); got != blocks().Bounds() {
		t.Errorf("bounds = %v, want %v", got, blocks().Bounds())
	}

	defer func() {
		if recover() == nil {
			t.Errorf("ReadImage did not panic on a missing file")
		}
	}()
	ReadImage(filepath.Join(t.TempDir(), "missing.png"))
}
