// Package markup understands just enough of HTML to keep fragments well formed
// and to extract the visible text oracles measure.
package markup

import (
	"io"
	"slices"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/html"
	"go.uber.org/zap"

	"tflow/flow"
)

var voidElements = []string{
	"area", "base", "br", "col", "embed", "hr", "img", "input",
	"link", "meta", "param", "source", "track", "wbr",
}

// IsVoid reports whether element never has content and closing tag.
func IsVoid(name string) bool {
	return slices.Contains(voidElements, strings.ToLower(name))
}

// StrictScanner finds unclosed elements using real HTML tokenizer. Unlike
// flow.PositionalScanner it matches closing tags by name, so mismatched
// closers do not corrupt the stack, and knows all void elements in any
// letter case.
type StrictScanner struct {
	log *zap.Logger
}

// NewStrictScanner creates scanner, log may be nil.
func NewStrictScanner(log *zap.Logger) *StrictScanner {
	if log == nil {
		log = zap.NewNop()
	}
	return &StrictScanner{log: log.Named("markup")}
}

// Unclosed implements flow.TagScanner.
func (s *StrictScanner) Unclosed(fragment string) []flow.Tag {
	var (
		stack []flow.Tag
		token strings.Builder
		name  string
	)

	l := html.NewLexer(parse.NewInputString(fragment))
	for {
		tt, _ := l.Next()
		switch tt {
		case html.ErrorToken:
			if err := l.Err(); err != nil && err != io.EOF {
				s.log.Debug("Markup tokenizer stopped", zap.Error(err))
			}
			return stack

		case html.StartTagToken:
			name = strings.ToLower(string(l.Text()))
			token.Reset()
			token.WriteString("<" + name)

		case html.AttributeToken:
			token.WriteString(" " + strings.ToLower(string(l.Text())))
			if val := l.AttrVal(); len(val) > 0 {
				token.WriteString("=" + string(val))
			}

		case html.StartTagCloseToken:
			if IsVoid(name) {
				continue
			}
			token.WriteByte('>')
			stack = append(stack, flow.Tag{Name: name, Token: token.String()})

		case html.StartTagVoidToken:
			// <x/> has no content to close

		case html.EndTagToken:
			closing := strings.ToLower(string(l.Text()))
			i := len(stack) - 1
			for ; i >= 0 && stack[i].Name != closing; i-- {
			}
			if i < 0 {
				s.log.Debug("Unmatched closing tag ignored", zap.String("tag", closing))
				continue
			}
			stack = stack[:i]
		}
	}
}
