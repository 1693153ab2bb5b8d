package flow

import (
	"regexp"
	"slices"
	"strings"
)

// Tag is a markup element left open at a cut.
type Tag struct {
	Name string
	// Token is the opening tag as it is used to reopen the element.
	Token string
}

// Closing returns closing tag for the element.
func (t Tag) Closing() string {
	return "</" + t.Name + ">"
}

// TagScanner finds elements which are opened but not closed in a fragment.
// Result is ordered outermost first.
type TagScanner interface {
	Unclosed(fragment string) []Tag
}

var (
	tagPattern = regexp.MustCompile(`(<([A-Za-z][A-Za-z0-9]*)[^>]*?>)|<\/([A-Za-z][A-Za-z0-9]*)[^>]*?>`)
	// only these exact spellings are treated as void elements
	bareVoidTags = []string{"<br>", "<hr>"}
)

// PositionalScanner trusts input markup to be properly nested: every closing
// tag pops the most recent open element whatever its name is. Self-closing
// tokens and bare <br> and <hr> are never pushed. Any other void element
// (<img ...>, <BR>, <br class="x">) is treated as an open element, which is a
// known limitation kept for output compatibility, use markup.StrictScanner
// when this matters.
type PositionalScanner struct{}

// Unclosed implements TagScanner.
func (PositionalScanner) Unclosed(fragment string) []Tag {
	var stack []Tag
	for _, m := range tagPattern.FindAllStringSubmatch(fragment, -1) {
		token := m[0]
		switch {
		case strings.HasPrefix(token, "</"):
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		case strings.HasSuffix(token, "/>"), slices.Contains(bareVoidTags, token):
		default:
			stack = append(stack, Tag{Name: m[2], Token: token})
		}
	}
	return stack
}

// dropPartialTag removes tag cut in half at the end of committed text and
// returns it separately.
func dropPartialTag(text string) (string, string) {
	lt := strings.LastIndexByte(text, '<')
	if lt < 0 || lt < strings.LastIndexByte(text, '>') {
		return text, ""
	}
	return text[:lt], text[lt:]
}

// closeTags appends closing tags for unclosed elements, innermost first.
func closeTags(text string, open []Tag) string {
	var b strings.Builder
	b.WriteString(text)
	for i := len(open) - 1; i >= 0; i-- {
		b.WriteString(open[i].Closing())
	}
	return b.String()
}

// repairTags makes committed text well formed at the cut: a partially
// committed tag is moved to pending text, elements left open are closed at the
// end of committed text and reopened at the start of pending one.
func repairTags(s Stream, scanner TagScanner) (Stream, []Tag) {
	committed, partial := dropPartialTag(s.Committed)
	if len(partial) > 0 {
		// the space the cut was made at is gone unless partial kept it
		if !strings.HasSuffix(partial, " ") {
			partial += " "
		}
		s = Stream{Committed: committed, Pending: partial + s.Pending}
	}

	open := scanner.Unclosed(s.Committed)
	if len(open) == 0 {
		return s, nil
	}

	var reopen strings.Builder
	for _, t := range open {
		reopen.WriteString(t.Token)
	}
	return Stream{Committed: closeTags(s.Committed, open), Pending: reopen.String() + s.Pending}, open
}
