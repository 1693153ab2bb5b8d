// Package page keeps containers text is laid out into.
package page

import (
	"errors"
	"fmt"
	"slices"
)

// Box is a fixed size container. Size is expressed in units of the oracle
// measuring it: cells for grid, pixels for font.
type Box struct {
	Name    string
	Width   float64
	Height  float64
	Content string
	// Template boxes are cloned when preset boxes are exhausted.
	Template bool
	// Origin is name of the template box was cloned from, empty for preset
	// boxes.
	Origin  string
	Removed bool
}

// Generated reports whether box was cloned from template.
func (b *Box) Generated() bool {
	return b.Origin != ""
}

func (b *Box) String() string {
	if b == nil {
		return "<nil Box>"
	}
	return fmt.Sprintf("%s[%gx%g]", b.Name, b.Width, b.Height)
}

// Sheet is an ordered collection of boxes. It implements
// flow.Provider[*Box].
type Sheet struct {
	boxes  []*Box
	clones map[string]int
}

// NewSheet creates sheet with boxes in the given order.
func NewSheet(boxes ...*Box) (*Sheet, error) {
	s := &Sheet{clones: make(map[string]int)}
	for _, b := range boxes {
		if err := s.Add(b); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Add appends box to the sheet, box names must be unique.
func (s *Sheet) Add(b *Box) error {
	if b == nil {
		return errors.New("nil box")
	}
	if s.Lookup(b.Name) != nil {
		return fmt.Errorf("duplicate box name %q", b.Name)
	}
	s.boxes = append(s.boxes, b)
	return nil
}

// Lookup returns box by name or nil.
func (s *Sheet) Lookup(name string) *Box {
	if i := slices.IndexFunc(s.boxes, func(b *Box) bool { return b.Name == name }); i >= 0 {
		return s.boxes[i]
	}
	return nil
}

// Boxes returns all boxes on the sheet in order.
func (s *Sheet) Boxes() []*Box {
	return slices.Clone(s.boxes)
}

// Presets returns boxes which are neither templates nor clones.
func (s *Sheet) Presets() []*Box {
	var out []*Box
	for _, b := range s.boxes {
		if !b.Template && !b.Generated() {
			out = append(out, b)
		}
	}
	return out
}

// Template returns first template box or nil when sheet has none.
func (s *Sheet) Template() *Box {
	if i := slices.IndexFunc(s.boxes, func(b *Box) bool { return b.Template }); i >= 0 {
		return s.boxes[i]
	}
	return nil
}

// Clone creates new empty box of the template size named after template and
// clone sequence number. Clone is not on the sheet until attached.
func (s *Sheet) Clone(template *Box) (*Box, error) {
	if template == nil || !slices.Contains(s.boxes, template) {
		return nil, fmt.Errorf("template %v is not on the sheet", template)
	}
	s.clones[template.Name]++
	n := s.clones[template.Name]
	return &Box{
		Name:   fmt.Sprintf("%s-%d", template.Name, n),
		Width:  template.Width,
		Height: template.Height,
		Origin: template.Name,
	}, nil
}

// Attach inserts box after anchor and boxes cloned from anchor earlier, so
// clones keep their creation order.
func (s *Sheet) Attach(b, anchor *Box) error {
	i := slices.Index(s.boxes, anchor)
	if i < 0 {
		return fmt.Errorf("anchor %v is not on the sheet", anchor)
	}
	if s.Lookup(b.Name) != nil {
		return fmt.Errorf("duplicate box name %q", b.Name)
	}
	for i++; i < len(s.boxes) && s.boxes[i].Origin == anchor.Name; i++ {
	}
	s.boxes = slices.Insert(s.boxes, i, b)
	return nil
}

// Destroy takes box off the sheet.
func (s *Sheet) Destroy(b *Box) error {
	i := slices.Index(s.boxes, b)
	if i < 0 {
		return fmt.Errorf("box %v is not on the sheet", b)
	}
	s.boxes = slices.Delete(s.boxes, i, i+1)
	b.Removed = true
	return nil
}
