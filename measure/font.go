package measure

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"tflow/markup"
	"tflow/page"
)

// Font measures boxes in pixels laying text out with proportional font.
// Box height is compared to number of wrapped lines multiplied by line
// height.
type Font struct {
	dc           *gg.Context
	face         font.Face
	size         float64
	spacing      float64
	measurements int
}

// NewFont loads font face. Empty path selects embedded Go Regular font,
// otherwise TrueType file is loaded. Spacing is line height relative to font
// height.
func NewFont(path string, size, spacing float64) (*Font, error) {
	if size <= 0 {
		return nil, fmt.Errorf("bad font size %g", size)
	}
	if spacing <= 0 {
		spacing = 1
	}

	dc := gg.NewContext(1, 1)
	f := &Font{dc: dc, size: size, spacing: spacing}
	if len(path) == 0 {
		parsed, err := opentype.Parse(goregular.TTF)
		if err != nil {
			return nil, fmt.Errorf("unable to parse embedded font: %w", err)
		}
		face, err := opentype.NewFace(parsed, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
		if err != nil {
			return nil, fmt.Errorf("unable to create embedded font face: %w", err)
		}
		f.face = face
		dc.SetFontFace(face)
		return f, nil
	}
	face, err := gg.LoadFontFace(path, size)
	if err != nil {
		return nil, fmt.Errorf("unable to load font '%s': %w", path, err)
	}
	f.face = face
	dc.SetFontFace(face)
	return f, nil
}

// Close releases font face.
func (f *Font) Close() error {
	return f.face.Close()
}

// Capacity implements flow.Oracle.
func (f *Font) Capacity(b *page.Box) float64 {
	return b.Height
}

// Assign implements flow.Oracle.
func (f *Font) Assign(b *page.Box, content string) {
	b.Content = content
}

// Extent implements flow.Oracle, it returns height of the wrapped content in
// pixels.
func (f *Font) Extent(b *page.Box) float64 {
	f.measurements++
	return float64(len(f.Lines(b))) * f.LineHeight()
}

// Measurements returns number of Extent calls so far.
func (f *Font) Measurements() int {
	return f.measurements
}

// LineHeight returns distance between baselines of two lines.
func (f *Font) LineHeight() float64 {
	return f.dc.FontHeight() * f.spacing
}

// Lines returns visible content of the box wrapped to its width.
func (f *Font) Lines(b *page.Box) []string {
	var lines []string
	for _, block := range markup.Blocks(b.Content) {
		if len(block) == 0 {
			lines = append(lines, "")
			continue
		}
		lines = append(lines, f.dc.WordWrap(block, b.Width)...)
	}
	return lines
}

// Render draws box with its content. Box outline is gray, lines which do not
// fit are drawn below the box edge in red.
func (f *Font) Render(b *page.Box) image.Image {
	lines := f.Lines(b)
	lh := f.LineHeight()
	w := int(math.Ceil(max(b.Width, 1)))
	h := int(math.Ceil(max(b.Height, float64(len(lines))*lh, 1)))

	dc := gg.NewContext(w, h)
	dc.SetColor(color.White)
	dc.Clear()
	dc.SetFontFace(f.face)

	for i, line := range lines {
		y := float64(i)*lh + f.dc.FontHeight()
		if float64(i+1)*lh > b.Height {
			dc.SetRGB(0.8, 0, 0)
		} else {
			dc.SetRGB(0, 0, 0)
		}
		dc.DrawString(line, 0, y)
	}

	dc.SetRGB(0.6, 0.6, 0.6)
	dc.SetLineWidth(1)
	dc.DrawRectangle(0.5, 0.5, max(b.Width-1, 0), max(b.Height-1, 0))
	dc.Stroke()
	return dc.Image()
}
