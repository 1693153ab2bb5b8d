package flow

import (
	"reflect"
	"testing"
)

func TestPositionalScanner_Unclosed(t *testing.T) {
	tests := []struct {
		name     string
		fragment string
		want     []Tag
	}{
		{"plain text", "Hello world", nil},
		{"single open", "<b>Hello", []Tag{{Name: "b", Token: "<b>"}}},
		{"closed inner", "<p><b>x</b> y", []Tag{{Name: "p", Token: "<p>"}}},
		{"attributes kept", `<p class="a"><i>x`, []Tag{{Name: "p", Token: `<p class="a">`}, {Name: "i", Token: "<i>"}}},
		{"bare void", "a<br>b<hr>c", nil},
		{"self closing", `a<br/>b<img src="x"/>`, nil},
		{"upper case void is pushed", "<p>a<BR>b", []Tag{{Name: "p", Token: "<p>"}, {Name: "BR", Token: "<BR>"}}},
		{"closing pops by position", "<b>x</i>", nil},
		{"closing on empty stack", "</b>x", nil},
		{"comment ignored", "<!-- c --><b>", []Tag{{Name: "b", Token: "<b>"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PositionalScanner{}.Unclosed(tt.fragment)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Unclosed(%q) = %+v, want %+v", tt.fragment, got, tt.want)
			}
		})
	}
}

func TestDropPartialTag(t *testing.T) {
	tests := []struct {
		in, text, partial string
	}{
		{"plain", "plain", ""},
		{"x <span", "x ", "<span"},
		{"<b>x</b>", "<b>x</b>", ""},
		{"<b>x</", "<b>x", "</"},
		{"a > b", "a > b", ""},
	}
	for _, tt := range tests {
		text, partial := dropPartialTag(tt.in)
		if text != tt.text || partial != tt.partial {
			t.Errorf("dropPartialTag(%q) = %q, %q, want %q, %q", tt.in, text, partial, tt.text, tt.partial)
		}
	}
}

func TestRepairTags(t *testing.T) {
	tests := []struct {
		name   string
		in     Stream
		want   Stream
		reopen int
	}{
		{
			name: "nothing open",
			in:   Stream{Committed: "<b>x</b> y", Pending: "z"},
			want: Stream{Committed: "<b>x</b> y", Pending: "z"},
		},
		{
			name:   "bold reopened",
			in:     Stream{Committed: "<b>Hello", Pending: "world</b> foo"},
			want:   Stream{Committed: "<b>Hello</b>", Pending: "<b>world</b> foo"},
			reopen: 1,
		},
		{
			name:   "nested closed innermost first",
			in:     Stream{Committed: "<div><p>a", Pending: "b</p></div>"},
			want:   Stream{Committed: "<div><p>a</p></div>", Pending: "<div><p>b</p></div>"},
			reopen: 2,
		},
		{
			name: "partial tag moved",
			in:   Stream{Committed: "x <span", Pending: `class="a">y</span>`},
			want: Stream{Committed: "x ", Pending: `<span class="a">y</span>`},
		},
		{
			name: "partial tag ending with space",
			in:   Stream{Committed: `x <span class="a `, Pending: `b">y</span>`},
			want: Stream{Committed: "x ", Pending: `<span class="a b">y</span>`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, open := repairTags(tt.in, PositionalScanner{})
			if got != tt.want {
				t.Errorf("repairTags() = %+v, want %+v", got, tt.want)
			}
			if len(open) != tt.reopen {
				t.Errorf("repairTags() reopened %d tags, want %d", len(open), tt.reopen)
			}
			if rest := (PositionalScanner{}).Unclosed(got.Committed); len(rest) != 0 {
				t.Errorf("committed text left unbalanced: %+v", rest)
			}
		})
	}
}

func TestTag_Closing(t *testing.T) {
	if got := (Tag{Name: "em", Token: "<em class=x>"}).Closing(); got != "</em>" {
		t.Errorf("Closing() = %q", got)
	}
}
