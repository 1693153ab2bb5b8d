// Package debug has helpers producing human readable dumps for debug reports.
package debug

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// DefaultTextLimit is number of runes TextBlock keeps from a long value.
const DefaultTextLimit = 256

// TreeWriter accumulates indented lines.
type TreeWriter struct {
	w     *strings.Builder
	limit int
}

func NewTreeWriter() *TreeWriter {
	return &TreeWriter{
		w:     &strings.Builder{},
		limit: DefaultTextLimit,
	}
}

// WithTextLimit changes number of runes kept by TextBlock, 0 keeps everything.
func (tw *TreeWriter) WithTextLimit(limit int) *TreeWriter {
	tw.limit = limit
	return tw
}

func (tw *TreeWriter) String() string {
	return tw.w.String()
}

func (tw *TreeWriter) indent(depth int) {
	for range depth {
		tw.w.WriteString("  ")
	}
}

func (tw *TreeWriter) Line(depth int, format string, args ...any) {
	tw.indent(depth)
	fmt.Fprintf(tw.w, format, args...)
	tw.w.WriteByte('\n')
}

// TextBlock writes quoted value, long values are shortened to the text limit
// and followed by total rune count.
func (tw *TreeWriter) TextBlock(depth int, label, value string) {
	tw.indent(depth)
	tw.w.WriteString(label)
	tw.w.WriteString(": ")
	tw.w.WriteString(encodeText(value, tw.limit))
	tw.w.WriteByte('\n')
}

func encodeText(raw string, limit int) string {
	if raw == "" {
		return raw
	}
	count := utf8.RuneCountInString(raw)
	if limit <= 0 || count <= limit {
		return strconv.Quote(raw)
	}
	cut := 0
	for i := 0; i < limit; i++ {
		_, size := utf8.DecodeRuneInString(raw[cut:])
		cut += size
	}
	return strconv.Quote(raw[:cut]) + fmt.Sprintf("... (%d runes)", count)
}
