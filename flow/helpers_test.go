package flow

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"testing"
	"unicode/utf8"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

// box is a container measuring visible runes of its content.
type box struct {
	name     string
	capacity float64
	content  string
	removed  bool
}

func (b *box) String() string { return b.name }

var anyTag = regexp.MustCompile(`<[^>]*>`)

func visible(s string) string {
	return anyTag.ReplaceAllString(s, "")
}

// runeOracle treats one visible rune as one unit of extent.
type runeOracle struct {
	assigned int
	measured int
}

func (o *runeOracle) Capacity(b *box) float64 { return b.capacity }

func (o *runeOracle) Assign(b *box, content string) {
	o.assigned++
	b.content = content
}

func (o *runeOracle) Extent(b *box) float64 {
	o.measured++
	return float64(utf8.RuneCountInString(visible(b.content)))
}

// shelf keeps boxes in order the way page.Sheet does.
type shelf struct {
	boxes      []*box
	clones     int
	failClone  bool
	failRemove bool
}

func (s *shelf) Clone(t *box) (*box, error) {
	if s.failClone {
		return nil, errors.New("out of paper")
	}
	s.clones++
	return &box{name: fmt.Sprintf("%s-%d", t.name, s.clones), capacity: t.capacity}, nil
}

func (s *shelf) Attach(b, _ *box) error {
	s.boxes = append(s.boxes, b)
	return nil
}

func (s *shelf) Destroy(b *box) error {
	if s.failRemove {
		return errors.New("glued")
	}
	b.removed = true
	return nil
}

func boxes(capacities ...float64) []*box {
	out := make([]*box, 0, len(capacities))
	for i, c := range capacities {
		out = append(out, &box{name: fmt.Sprintf("box%d", i+1), capacity: c})
	}
	return out
}

func testLogger(t *testing.T) *zap.Logger {
	t.Helper()
	return zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1)))
}

// newRun returns run for exercising step functions directly.
func newRun(t *testing.T, oracle *runeOracle, settings Settings[*box]) *run[*box] {
	t.Helper()
	return &run[*box]{Engine: New[*box](oracle, &shelf{}, settings, testLogger(t))}
}

func words(s string) []string {
	return strings.Fields(visible(s))
}
