// Package measure provides oracles layout uses to learn how much space
// content takes in a box.
package measure

import (
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"

	"tflow/markup"
	"tflow/page"
)

// Grid measures boxes as grids of monospace cells: box width is in columns,
// height is in rows. Text is wrapped at spaces, words wider than a row are
// broken hard.
type Grid struct {
	measurements int
}

// NewGrid creates grid oracle.
func NewGrid() *Grid {
	return &Grid{}
}

// Capacity implements flow.Oracle.
func (g *Grid) Capacity(b *page.Box) float64 {
	return b.Height
}

// Assign implements flow.Oracle.
func (g *Grid) Assign(b *page.Box, content string) {
	b.Content = content
}

// Extent implements flow.Oracle, it returns number of rows content occupies.
func (g *Grid) Extent(b *page.Box) float64 {
	g.measurements++
	return float64(len(g.Lines(b)))
}

// Measurements returns number of Extent calls so far.
func (g *Grid) Measurements() int {
	return g.measurements
}

// Lines returns visible content of the box wrapped to its width.
func (g *Grid) Lines(b *page.Box) []string {
	width := max(int(b.Width), 1)

	var lines []string
	for _, block := range markup.Blocks(b.Content) {
		lines = append(lines, wrapCells(block, width)...)
	}
	return lines
}

func wrapCells(block string, width int) []string {
	if len(block) == 0 {
		return []string{""}
	}

	var (
		lines []string
		line  strings.Builder
		used  int
	)
	for word := range strings.FieldsSeq(block) {
		ww := runewidth.StringWidth(word)
		if line.Len() > 0 && used+1+ww <= width {
			line.WriteByte(' ')
			line.WriteString(word)
			used += 1 + ww
			continue
		}
		if line.Len() > 0 {
			lines = append(lines, line.String())
			line.Reset()
		}
		for ww > width {
			head := runewidth.Truncate(word, width, "")
			if len(head) == 0 {
				// single rune wider than the row
				_, size := utf8.DecodeRuneInString(word)
				head = word[:size]
			}
			lines = append(lines, head)
			word = word[len(head):]
			ww = runewidth.StringWidth(word)
		}
		line.WriteString(word)
		used = ww
	}
	if line.Len() > 0 {
		lines = append(lines, line.String())
	}
	return lines
}
