package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"tflow/config"
	"tflow/page"
)

// Liner wraps content of a box into lines the way oracle sees it.
type Liner interface {
	Lines(b *page.Box) []string
}

// Console prints laid out boxes. In boxes mode boxes are drawn with borders
// and placed side by side as long as row fits into width columns.
func Console(w io.Writer, mode config.ConsoleMode, boxes []*page.Box, liner Liner, width int) error {
	switch mode {
	case config.ConsoleModeNone:
		return nil
	case config.ConsoleModePlain:
		return plain(w, boxes, liner)
	case config.ConsoleModeBoxes:
		return framed(w, boxes, liner, width)
	default:
		return fmt.Errorf("unsupported console mode %v", mode)
	}
}

func plain(w io.Writer, boxes []*page.Box, liner Liner) error {
	for i, b := range boxes {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "== %s ==\n", b); err != nil {
			return err
		}
		for _, l := range liner.Lines(b) {
			if _, err := fmt.Fprintln(w, l); err != nil {
				return err
			}
		}
	}
	return nil
}

func framed(w io.Writer, boxes []*page.Box, liner Liner, width int) error {
	r := lipgloss.NewRenderer(w)
	frame := r.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	title := r.NewStyle().Bold(true)

	var (
		rows    []string
		row     []string
		rowSize int
	)
	for _, b := range boxes {
		block := frame.Render(lipgloss.JoinVertical(lipgloss.Left,
			title.Render(b.String()), strings.Join(liner.Lines(b), "\n")))
		size := lipgloss.Width(block)
		if len(row) > 0 && rowSize+size > width {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row, rowSize = nil, 0
		}
		row = append(row, block)
		rowSize += size
	}
	if len(row) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	if len(rows) == 0 {
		return nil
	}
	_, err := fmt.Fprintln(w, lipgloss.JoinVertical(lipgloss.Left, rows...))
	return err
}
