package page

import (
	"slices"
	"testing"
)

func names(boxes []*Box) []string {
	out := make([]string, 0, len(boxes))
	for _, b := range boxes {
		out = append(out, b.Name)
	}
	return out
}

func newTestSheet(t *testing.T) (*Sheet, *Box) {
	t.Helper()
	tpl := &Box{Name: "page", Width: 40, Height: 20, Template: true}
	s, err := NewSheet(
		&Box{Name: "intro", Width: 40, Height: 5},
		tpl,
		&Box{Name: "footer", Width: 40, Height: 2},
	)
	if err != nil {
		t.Fatalf("NewSheet() error = %v", err)
	}
	return s, tpl
}

func TestSheet_Queries(t *testing.T) {
	s, tpl := newTestSheet(t)

	if got := names(s.Presets()); !slices.Equal(got, []string{"intro", "footer"}) {
		t.Errorf("Presets() = %v", got)
	}
	if s.Template() != tpl {
		t.Errorf("Template() = %v", s.Template())
	}
	if s.Lookup("footer") == nil || s.Lookup("missing") != nil {
		t.Error("Lookup() misbehaves")
	}
}

func TestSheet_CloneAndAttach(t *testing.T) {
	s, tpl := newTestSheet(t)

	for range 3 {
		c, err := s.Clone(tpl)
		if err != nil {
			t.Fatalf("Clone() error = %v", err)
		}
		if err := s.Attach(c, tpl); err != nil {
			t.Fatalf("Attach() error = %v", err)
		}
	}

	want := []string{"intro", "page", "page-1", "page-2", "page-3", "footer"}
	if got := names(s.Boxes()); !slices.Equal(got, want) {
		t.Errorf("Boxes() = %v, want %v", got, want)
	}

	c := s.Lookup("page-2")
	if !c.Generated() || c.Origin != "page" || c.Width != 40 || c.Height != 20 || c.Template {
		t.Errorf("unexpected clone %+v", c)
	}
	if got := names(s.Presets()); !slices.Equal(got, []string{"intro", "footer"}) {
		t.Errorf("clones counted as presets: %v", got)
	}
}

func TestSheet_Destroy(t *testing.T) {
	s, tpl := newTestSheet(t)

	if err := s.Destroy(tpl); err != nil {
		t.Fatalf("Destroy() error = %v", err)
	}
	if !tpl.Removed || s.Template() != nil {
		t.Error("template still on the sheet")
	}
	if err := s.Destroy(tpl); err == nil {
		t.Error("expected error destroying box twice")
	}
	if _, err := s.Clone(tpl); err == nil {
		t.Error("expected error cloning removed template")
	}
}

func TestSheet_Errors(t *testing.T) {
	if _, err := NewSheet(&Box{Name: "a"}, &Box{Name: "a"}); err == nil {
		t.Error("expected duplicate name error")
	}
	if _, err := NewSheet(nil); err == nil {
		t.Error("expected nil box error")
	}

	s, _ := newTestSheet(t)
	stray := &Box{Name: "stray"}
	if err := s.Attach(&Box{Name: "x"}, stray); err == nil {
		t.Error("expected error attaching to unknown anchor")
	}
	if err := s.Attach(&Box{Name: "intro"}, s.Lookup("intro")); err == nil {
		t.Error("expected duplicate name error on attach")
	}
}

func TestBox_String(t *testing.T) {
	b := &Box{Name: "intro", Width: 40, Height: 5.5}
	if got := b.String(); got != "intro[40x5.5]" {
		t.Errorf("String() = %q", got)
	}
	var nb *Box
	if got := nb.String(); got != "<nil Box>" {
		t.Errorf("nil String() = %q", got)
	}
}
