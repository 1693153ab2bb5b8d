package output

import (
	"errors"
	"testing"
)

func TestVerify(t *testing.T) {
	const original = "<p>aaaa <b>bbbb</b> cccc</p> dddd eeee"

	tests := []struct {
		name         string
		fragments    []string
		leftover     string
		marker       string
		wantPlaced   int
		wantLeftover int
		wantMarked   bool
		wantErr      bool
	}{
		{
			name:       "complete",
			fragments:  []string{"<p>aaaa <b>bbbb</b></p>", "<p><b></b> cccc</p> dddd eeee"},
			wantPlaced: 5,
		},
		{
			name:         "leftover with marker",
			fragments:    []string{"<p>aaaa <b>bbbb</b> ...</p>"},
			leftover:     "<p><b></b> cccc</p> dddd eeee",
			marker:       " ...",
			wantPlaced:   2,
			wantLeftover: 3,
			wantMarked:   true,
		},
		{
			name:         "leftover without marker",
			fragments:    []string{"<p>aaaa</p>", "<p><b>bbbb</b></p>"},
			leftover:     "cccc dddd eeee",
			wantPlaced:   2,
			wantLeftover: 3,
		},
		{
			name:       "marker word is not stripped when text is complete",
			fragments:  []string{"<p>aaaa <b>bbbb</b> cccc</p> dddd eeee"},
			marker:     " eeee",
			wantPlaced: 5,
		},
		{
			name:         "marker without known leftover",
			fragments:    []string{"<p>aaaa</p>", "<p><b>bbbb</b> ...</p>"},
			marker:       " ...",
			wantPlaced:   2,
			wantLeftover: 3,
			wantMarked:   true,
		},
		{
			name:       "marker without known leftover after lost word",
			fragments:  []string{"<p>aaaa</p>", "cccc ..."},
			marker:     " ...",
			wantPlaced: 3,
			wantErr:    true,
		},
		{
			name:       "lost word",
			fragments:  []string{"<p>aaaa</p>", "cccc dddd eeee"},
			wantPlaced: 4,
			wantErr:    true,
		},
		{
			name:       "extra word",
			fragments:  []string{"<p>aaaa <b>bbbb</b> cccc</p> dddd eeee ffff"},
			wantPlaced: 6,
			wantErr:    true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := Verify(original, tt.fragments, tt.leftover, tt.marker)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Verify() error = %v, wantErr %v", err, tt.wantErr)
			}
			if v.Words != 5 || v.Placed != tt.wantPlaced || v.Leftover != tt.wantLeftover || v.Marked != tt.wantMarked {
				t.Errorf("Verify() = %+v", v)
			}
			if v.Complete() != (tt.wantLeftover == 0) {
				t.Errorf("Complete() = %v", v.Complete())
			}
		})
	}
}

func TestVerify_MismatchError(t *testing.T) {
	_, err := Verify("one two three", []string{"one three"}, "", "")
	var me *MismatchError
	if !errors.As(err, &me) {
		t.Fatalf("Verify() error = %v, want MismatchError", err)
	}
	if me.Pos != 1 || me.Expected != "two" || me.Actual != "three" {
		t.Errorf("MismatchError = %+v", me)
	}
	if me.Error() != `text differs at word 1: expected "two", got "three"` {
		t.Errorf("Error() = %q", me.Error())
	}
}
