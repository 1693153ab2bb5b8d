package flow

import (
	"strings"

	"go.uber.org/zap"
)

// appendMarker fits truncation marker into the last container by dropping
// trailing words of its content until content plus marker fits the resting
// capacity. Dropped words go back in front of leftover text.
func (r *run[C]) appendMarker(c C, content, leftover string) (string, string) {
	capacity := r.oracle.Capacity(c)
	marker := r.settings.Marker

	content, dropped := splitTail(content)
	for len(content) > 0 && !r.fits(c, capacity, r.balance(content)+marker) {
		i := max(strings.LastIndexByte(content, ' '), 0)
		// space may belong to attribute value, tag head goes with the rest of it
		head, tail := splitTail(content[:i])
		dropped = tail + content[i:] + dropped
		content = head
	}

	final := r.balance(content) + marker
	r.oracle.Assign(c, final)
	r.log.Debug("Truncation marker appended", zap.Int("dropped", len(dropped)), zap.Int("leftover", len(leftover)))
	return final, joinWords(dropped, leftover)
}

// balance closes elements left open after trimming by words dropped closing
// tags added on the cut.
func (r *run[C]) balance(content string) string {
	return closeTags(content, r.settings.Scanner.Unclosed(content))
}

// splitTail separates trailing spaces and partial tag from content, the two
// parts concatenated give content back.
func splitTail(content string) (string, string) {
	kept, partial := dropPartialTag(content)
	trimmed := strings.TrimRight(kept, " ")
	return trimmed, kept[len(trimmed):] + partial
}

// joinWords concatenates text pieces keeping exactly one space between them.
func joinWords(parts ...string) string {
	var b strings.Builder
	for _, p := range parts {
		p = strings.Trim(p, " ")
		if len(p) == 0 {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(p)
	}
	return b.String()
}
