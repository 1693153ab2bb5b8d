package flow

import (
	"slices"
	"testing"
)

func TestAppendMarker(t *testing.T) {
	tests := []struct {
		name         string
		capacity     float64
		content      string
		leftover     string
		wantContent  string
		wantLeftover string
	}{
		{
			name:         "drops words until marker fits",
			capacity:     10,
			content:      "cccc dddd",
			leftover:     "eeee ffff",
			wantContent:  "cccc ...",
			wantLeftover: "dddd eeee ffff",
		},
		{
			name:         "rebalances markup after trimming",
			capacity:     8,
			content:      "a <b>b c</b>",
			leftover:     "rest",
			wantContent:  "a <b>b</b> ...",
			wantLeftover: "c</b> rest",
		},
		{
			name:         "marker alone when nothing fits",
			capacity:     2,
			content:      "aa bb",
			leftover:     "cc",
			wantContent:  " ...",
			wantLeftover: "aa bb cc",
		},
		{
			name:         "keeps tag split inside attribute value",
			capacity:     9,
			content:      `aaaa <span class="c d">cccc</span>`,
			leftover:     "dddd eeee",
			wantContent:  "aaaa ...",
			wantLeftover: `<span class="c d">cccc</span> dddd eeee`,
		},
		{
			name:         "returns partial tag to leftover",
			capacity:     20,
			content:      "aa <i",
			leftover:     `class="x">bb</i>`,
			wantContent:  "aa ...",
			wantLeftover: `<i class="x">bb</i>`,
		},
		{
			name:         "no double space before marker",
			capacity:     20,
			content:      "aa ",
			leftover:     "bb",
			wantContent:  "aa ...",
			wantLeftover: "bb",
		},
		{
			name:         "room for marker already",
			capacity:     20,
			content:      "aa",
			leftover:     "bb",
			wantContent:  "aa ...",
			wantLeftover: "bb",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRun(t, &runeOracle{}, DefaultSettings[*box]())
			b := &box{name: "b", capacity: tt.capacity}

			content, leftover := r.appendMarker(b, tt.content, tt.leftover)
			if content != tt.wantContent {
				t.Errorf("content = %q, want %q", content, tt.wantContent)
			}
			if leftover != tt.wantLeftover {
				t.Errorf("leftover = %q, want %q", leftover, tt.wantLeftover)
			}
			if b.content != content {
				t.Errorf("container holds %q, want %q", b.content, content)
			}
			got := append(words(content), words(leftover)...)
			want := append(words(tt.content+" "+tt.leftover), "...")
			slices.Sort(got)
			slices.Sort(want)
			if !slices.Equal(got, want) {
				t.Errorf("words %q, want %q", got, want)
			}
		})
	}
}

func TestJoinWords(t *testing.T) {
	tests := []struct {
		parts []string
		want  string
	}{
		{nil, ""},
		{[]string{"", ""}, ""},
		{[]string{"", "a"}, "a"},
		{[]string{" a ", " b"}, "a b"},
		{[]string{"a", "", "b c"}, "a b c"},
	}
	for _, tt := range tests {
		if got := joinWords(tt.parts...); got != tt.want {
			t.Errorf("joinWords(%q) = %q, want %q", tt.parts, got, tt.want)
		}
	}
}
