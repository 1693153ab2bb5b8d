package markup

import (
	"reflect"
	"slices"
	"testing"

	"go.uber.org/zap/zaptest"

	"tflow/flow"
)

func TestStrictScanner_Unclosed(t *testing.T) {
	tests := []struct {
		name     string
		fragment string
		want     []flow.Tag
	}{
		{"plain text", "Hello world", nil},
		{"single open", "<b>Hello", []flow.Tag{{Name: "b", Token: "<b>"}}},
		{"attributes", `<p class="a"><i>x`, []flow.Tag{{Name: "p", Token: `<p class="a">`}, {Name: "i", Token: "<i>"}}},
		{"upper case", "<EM>x", []flow.Tag{{Name: "em", Token: "<em>"}}},
		{"upper case void", "<p>a<BR>b", []flow.Tag{{Name: "p", Token: "<p>"}}},
		{"void with attributes", `a<img src="x">b`, nil},
		{"self closing", "a<br/>b", nil},
		{"mismatched closer ignored", "<b>x</i>", []flow.Tag{{Name: "b", Token: "<b>"}}},
		{"closer pops nested", "<div><p>a</div>", nil},
		{"comment", "<!-- <b> --> x", nil},
	}

	s := NewStrictScanner(zaptest.NewLogger(t))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Unclosed(tt.fragment)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Unclosed(%q) = %+v, want %+v", tt.fragment, got, tt.want)
			}
		})
	}
}

func TestStrictScanner_NilLogger(t *testing.T) {
	if got := NewStrictScanner(nil).Unclosed("<i>x"); len(got) != 1 {
		t.Errorf("Unclosed() = %+v", got)
	}
}

func TestIsVoid(t *testing.T) {
	for name, want := range map[string]bool{"br": true, "IMG": true, "Wbr": true, "b": false, "p": false} {
		if got := IsVoid(name); got != want {
			t.Errorf("IsVoid(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestBlocks(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{"empty", "", nil},
		{"collapse", "Hello   world\n", []string{"Hello world"}},
		{"leading space", "  lead", []string{"lead"}},
		{"inline markup", "a <b>b</b> text", []string{"a b text"}},
		{"paragraphs", "<p>One</p><p>Two</p>", []string{"One", "Two"}},
		{"block after text", "word<p>next", []string{"word", "next"}},
		{"line break", "a<br>b", []string{"a", "b"}},
		{"empty line", "a<br><br>b", []string{"a", "", "b"}},
		{"entities", "Fish &amp; chips", []string{"Fish & chips"}},
		{"script hidden", "x<script>var a</script>y", []string{"xy"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Blocks(tt.content)
			if !slices.Equal(got, tt.want) {
				t.Errorf("Blocks(%q) = %q, want %q", tt.content, got, tt.want)
			}
		})
	}
}

func TestWords(t *testing.T) {
	got := slices.Collect(Words("<p>a  b</p>c<br>d"))
	if want := []string{"a", "b", "c", "d"}; !slices.Equal(got, want) {
		t.Errorf("Words() = %q, want %q", got, want)
	}

	// early stop
	var first []string
	for w := range Words("x y z") {
		first = append(first, w)
		break
	}
	if !slices.Equal(first, []string{"x"}) {
		t.Errorf("Words() with break = %q", first)
	}
}

func TestStrictScanner_OuterCloserClosesInner(t *testing.T) {
	fragment := "<b>bold <i>both</b> tail"
	if got := NewStrictScanner(nil).Unclosed(fragment); len(got) != 0 {
		t.Errorf("strict Unclosed() = %+v, want none", got)
	}
	// positional scanner pops <i> and keeps <b>
	if got := (flow.PositionalScanner{}).Unclosed(fragment); !reflect.DeepEqual(got, []flow.Tag{{Name: "b", Token: "<b>"}}) {
		t.Errorf("positional Unclosed() = %+v", got)
	}
}
