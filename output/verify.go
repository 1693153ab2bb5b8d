package output

import (
	"fmt"
	"slices"
	"strings"

	"tflow/markup"
)

// Verification summarizes text conservation check.
type Verification struct {
	Words    int
	Placed   int
	Leftover int
	// Marked is set when truncation marker was found at the end of the last
	// fragment.
	Marked bool
}

// Complete reports whether all words were placed into containers.
func (v *Verification) Complete() bool {
	return v.Leftover == 0
}

// MismatchError tells where fragments stopped following original text.
type MismatchError struct {
	Pos      int
	Expected string
	Actual   string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("text differs at word %d: expected %q, got %q", e.Pos, e.Expected, e.Actual)
}

// Verify checks that visible words of fragments followed by words of leftover
// text are exactly the visible words of the original. Marker appended to the
// last fragment is not part of the text. When fragments end with marker but
// leftover is not known (no manifest was written) words following placed ones
// are counted as left over.
func Verify(original string, fragments []string, leftover, marker string) (*Verification, error) {
	want := slices.Collect(markup.Words(original))
	rest := slices.Collect(markup.Words(leftover))

	var placed []string
	for _, f := range fragments {
		placed = slices.AppendSeq(placed, markup.Words(f))
	}

	v := &Verification{Words: len(want)}
	if m := strings.Fields(marker); len(m) > 0 && len(placed) >= len(m) {
		// marker glued to the last word is not recognized
		body, tail := placed[:len(placed)-len(m)], placed[len(placed)-len(m):]
		if slices.Equal(tail, m) && (len(rest) > 0 || len(placed) > len(want) || truncated(body, placed, want)) {
			placed = body
			v.Marked = true
		}
	}
	v.Placed = len(placed)
	v.Leftover = len(rest)
	if v.Marked && len(rest) == 0 {
		v.Leftover = max(len(want)-len(placed), 0)
		want = want[:len(want)-v.Leftover]
	}

	got := append(placed, rest...)
	for i := range max(len(want), len(got)) {
		var w, g string
		if i < len(want) {
			w = want[i]
		}
		if i < len(got) {
			g = got[i]
		}
		if w != g {
			return v, &MismatchError{Pos: i, Expected: w, Actual: g}
		}
	}
	return v, nil
}

// truncated reports whether body is a proper beginning of the text while
// placed words including marker are not the text itself.
func truncated(body, placed, want []string) bool {
	return len(body) < len(want) && slices.Equal(body, want[:len(body)]) && !slices.Equal(placed, want)
}
