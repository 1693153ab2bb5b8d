package debug

import (
	"strings"
	"testing"
)

func TestNewTreeWriter(t *testing.T) {
	tw := NewTreeWriter()
	if tw == nil {
		t.Fatal("NewTreeWriter() returned nil")
	}
	if tw.w == nil {
		t.Error("TreeWriter builder is nil")
	}
	if tw.limit != DefaultTextLimit {
		t.Errorf("limit = %d, want %d", tw.limit, DefaultTextLimit)
	}
}

func TestTreeWriter_Line(t *testing.T) {
	tests := []struct {
		name   string
		depth  int
		format string
		args   []any
		want   string
	}{
		{name: "no depth", depth: 0, format: "test", want: "test\n"},
		{name: "depth 1", depth: 1, format: "indented", want: "  indented\n"},
		{name: "depth 2", depth: 2, format: "double indent", want: "    double indent\n"},
		{name: "with formatting", depth: 1, format: "value: %d", args: []any{42}, want: "  value: 42\n"},
		{name: "multiple args", depth: 0, format: "%s = %d", args: []any{"count", 5}, want: "count = 5\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tw := NewTreeWriter()
			tw.Line(tt.depth, tt.format, tt.args...)
			if got := tw.String(); got != tt.want {
				t.Errorf("Line() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTreeWriter_TextBlock(t *testing.T) {
	tests := []struct {
		name  string
		limit int
		value string
		want  string
	}{
		{name: "empty", limit: 10, value: "", want: "  Content: \n"},
		{name: "short", limit: 10, value: "<b>Hi</b>", want: "  Content: \"<b>Hi</b>\"\n"},
		{name: "quoted newline", limit: 10, value: "a\nb", want: "  Content: \"a\\nb\"\n"},
		{name: "shortened", limit: 3, value: "abcdef", want: "  Content: \"abc\"... (6 runes)\n"},
		{name: "multibyte", limit: 2, value: "ёжик", want: "  Content: \"ёж\"... (4 runes)\n"},
		{name: "no limit", limit: 0, value: "abcdef", want: "  Content: \"abcdef\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tw := NewTreeWriter().WithTextLimit(tt.limit)
			tw.TextBlock(1, "Content", tt.value)
			if got := tw.String(); got != tt.want {
				t.Errorf("TextBlock() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTreeWriter_Accumulates(t *testing.T) {
	tw := NewTreeWriter()
	tw.Line(0, "root")
	tw.Line(1, "child %d", 1)
	tw.TextBlock(2, "Text", "x")

	lines := strings.Split(strings.TrimSuffix(tw.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3: %q", len(lines), tw.String())
	}
	if lines[2] != `    Text: "x"` {
		t.Errorf("third line = %q", lines[2])
	}
}
