// Package flow threads a single block of markup text through a sequence of
// fixed capacity containers: text flows into the first container, overflow
// moves on to the next one and so on. Cuts happen only at word boundaries and
// markup stays balanced on both sides of every cut.
package flow

import (
	"unicode/utf8"
)

// Oracle measures containers. Layout never assumes measurement is free: every
// Extent call follows an Assign of the candidate content.
type Oracle[C any] interface {
	// Capacity returns the resting extent available in the container.
	Capacity(c C) float64
	// Assign writes candidate content into the container.
	Assign(c C, content string)
	// Extent returns the extent occupied by the content assigned last.
	Extent(c C) float64
}

// Provider creates and removes containers on behalf of the layout.
type Provider[C any] interface {
	Clone(template C) (C, error)
	// Attach places a freshly cloned container after anchor and the clones
	// attached to it earlier.
	Attach(c, anchor C) error
	Destroy(c C) error
}

// Hooks are optional observers invoked synchronously while layout progresses.
// They must not re-enter the engine.
type Hooks[C any] struct {
	LayoutStarted     func(containers []C, text string)
	LayoutFinished    func(containers []C, leftover string)
	ContainerStarted  func(c C, pending string)
	ContainerFinished func(c C, pending string)
	ContainerRemoved  func(c C)
	TemplateRemoved   func(template C)
	CloneCreated      func(clone C, pending string)
}

// Settings is immutable configuration of the layout run.
type Settings[C comparable] struct {
	// Template is cloned when preset containers are exhausted, zero value
	// means no cloning.
	Template               C
	RemoveUnusedTemplate   bool
	RemoveUnusedContainers bool
	// Marker is appended to the last container when text did not fit, empty
	// string turns it off.
	Marker string
	// MaxClones limits number of generated containers, 0 means no limit.
	MaxClones int
	Scanner   TagScanner
	Hooks     Hooks[C]
}

// DefaultSettings returns settings with removal of unused containers and
// template turned on and " ..." as truncation marker.
func DefaultSettings[C comparable]() Settings[C] {
	return Settings[C]{
		RemoveUnusedTemplate:   true,
		RemoveUnusedContainers: true,
		Marker:                 " ...",
		Scanner:                PositionalScanner{},
	}
}

// Stream is the text being laid out: Committed is assigned to the current
// container, Pending waits for the following ones. Step functions take a
// stream and return a new one.
type Stream struct {
	Committed string
	Pending   string
}

// advance moves n leading runes of Pending to the end of Committed.
func (s Stream) advance(n int) Stream {
	i := headOffset(s.Pending, n)
	return Stream{Committed: s.Committed + s.Pending[:i], Pending: s.Pending[i:]}
}

// retreat moves n trailing runes of Committed to the front of Pending.
func (s Stream) retreat(n int) Stream {
	i := tailOffset(s.Committed, n)
	return Stream{Committed: s.Committed[:i], Pending: s.Committed[i:] + s.Pending}
}

// headOffset returns byte offset just past the first n runes of s.
func headOffset(s string, n int) int {
	i := 0
	for ; n > 0 && i < len(s); n-- {
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
	}
	return i
}

// tailOffset returns byte offset where the last n runes of s start.
func tailOffset(s string, n int) int {
	i := len(s)
	for ; n > 0 && i > 0; n-- {
		_, size := utf8.DecodeLastRuneInString(s[:i])
		i -= size
	}
	return i
}

// Result describes finished layout.
type Result[C any] struct {
	// Containers are laid out containers in order, including generated ones.
	Containers []C
	// Fragments holds final content of every laid out container.
	Fragments []string
	// Leftover is text which did not fit anywhere.
	Leftover     string
	Clones       int
	Measurements int
}

func (r *Result[C]) add(c C, content string) {
	r.Containers = append(r.Containers, c)
	r.Fragments = append(r.Fragments, content)
}

// Complete reports whether all text has been placed.
func (r *Result[C]) Complete() bool {
	return r != nil && len(r.Leftover) == 0
}

func (h Hooks[C]) layoutStarted(containers []C, text string) {
	if h.LayoutStarted != nil {
		h.LayoutStarted(containers, text)
	}
}

func (h Hooks[C]) layoutFinished(containers []C, leftover string) {
	if h.LayoutFinished != nil {
		h.LayoutFinished(containers, leftover)
	}
}

func (h Hooks[C]) containerStarted(c C, pending string) {
	if h.ContainerStarted != nil {
		h.ContainerStarted(c, pending)
	}
}

func (h Hooks[C]) containerFinished(c C, pending string) {
	if h.ContainerFinished != nil {
		h.ContainerFinished(c, pending)
	}
}

func (h Hooks[C]) containerRemoved(c C) {
	if h.ContainerRemoved != nil {
		h.ContainerRemoved(c)
	}
}

func (h Hooks[C]) templateRemoved(c C) {
	if h.TemplateRemoved != nil {
		h.TemplateRemoved(c)
	}
}

func (h Hooks[C]) cloneCreated(c C, pending string) {
	if h.CloneCreated != nil {
		h.CloneCreated(c, pending)
	}
}
