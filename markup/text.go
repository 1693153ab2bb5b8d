package markup

import (
	"iter"
	"slices"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/html"
	xhtml "golang.org/x/net/html"
)

var blockElements = []string{
	"p", "div", "h1", "h2", "h3", "h4", "h5", "h6", "li", "ul", "ol",
	"blockquote", "pre", "table", "tr", "section", "article", "header", "footer",
}

// paragraphs accumulates visible text, collapsing whitespace.
type paragraphs struct {
	done    []string
	current strings.Builder
	space   bool
}

func (p *paragraphs) text(s string) {
	for _, r := range s {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\f' {
			p.space = p.current.Len() > 0
			continue
		}
		if p.space {
			p.current.WriteByte(' ')
			p.space = false
		}
		p.current.WriteRune(r)
	}
}

// flush ends current paragraph, empty one is kept only when forced (line
// break).
func (p *paragraphs) flush(force bool) {
	if p.current.Len() > 0 || force {
		p.done = append(p.done, p.current.String())
	}
	p.current.Reset()
	p.space = false
}

// Blocks returns visible text of the fragment split into paragraphs. Entities
// are unescaped and whitespace is collapsed, <br> ends a line, block elements
// start new paragraphs. Comments and content of script and style elements are
// not visible.
func Blocks(content string) []string {
	var (
		p      paragraphs
		hidden bool
	)

	l := html.NewLexer(parse.NewInputString(content))
	for {
		tt, data := l.Next()
		switch tt {
		case html.ErrorToken:
			p.flush(false)
			return p.done

		case html.TextToken:
			if !hidden {
				p.text(xhtml.UnescapeString(string(data)))
			}

		case html.StartTagToken:
			switch name := strings.ToLower(string(l.Text())); {
			case name == "br":
				p.flush(true)
			case name == "script" || name == "style":
				hidden = true
			case slices.Contains(blockElements, name):
				p.flush(false)
			}

		case html.EndTagToken:
			switch name := strings.ToLower(string(l.Text())); {
			case name == "script" || name == "style":
				hidden = false
			case slices.Contains(blockElements, name):
				p.flush(false)
			}
		}
	}
}

// Words yields visible words of the fragment in order.
func Words(content string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, block := range Blocks(content) {
			for w := range strings.FieldsSeq(block) {
				if !yield(w) {
					return
				}
			}
		}
	}
}
