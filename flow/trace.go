package flow

import (
	"fmt"
	"unicode/utf8"

	"tflow/utils/debug"
)

// EventKind names layout notification.
type EventKind string

const (
	EventLayoutStarted     EventKind = "layout-started"
	EventLayoutFinished    EventKind = "layout-finished"
	EventContainerStarted  EventKind = "container-started"
	EventContainerFinished EventKind = "container-finished"
	EventContainerRemoved  EventKind = "container-removed"
	EventTemplateRemoved   EventKind = "template-removed"
	EventCloneCreated      EventKind = "clone-created"
)

// Event is a single recorded notification. Text is the text passed along
// with the notification (pending or leftover one), Containers is set for
// layout wide events only.
type Event[C any] struct {
	Kind       EventKind
	Container  C
	Containers []C
	Text       string
}

// Trace records layout notifications in order they were fired.
type Trace[C any] struct {
	Events []Event[C]
}

// Hooks returns hooks recording events into trace and then calling next.
func (t *Trace[C]) Hooks(next Hooks[C]) Hooks[C] {
	return Hooks[C]{
		LayoutStarted: func(containers []C, text string) {
			t.Events = append(t.Events, Event[C]{Kind: EventLayoutStarted, Containers: containers, Text: text})
			next.layoutStarted(containers, text)
		},
		LayoutFinished: func(containers []C, leftover string) {
			t.Events = append(t.Events, Event[C]{Kind: EventLayoutFinished, Containers: containers, Text: leftover})
			next.layoutFinished(containers, leftover)
		},
		ContainerStarted: func(c C, pending string) {
			t.Events = append(t.Events, Event[C]{Kind: EventContainerStarted, Container: c, Text: pending})
			next.containerStarted(c, pending)
		},
		ContainerFinished: func(c C, pending string) {
			t.Events = append(t.Events, Event[C]{Kind: EventContainerFinished, Container: c, Text: pending})
			next.containerFinished(c, pending)
		},
		ContainerRemoved: func(c C) {
			t.Events = append(t.Events, Event[C]{Kind: EventContainerRemoved, Container: c})
			next.containerRemoved(c)
		},
		TemplateRemoved: func(c C) {
			t.Events = append(t.Events, Event[C]{Kind: EventTemplateRemoved, Container: c})
			next.templateRemoved(c)
		},
		CloneCreated: func(c C, pending string) {
			t.Events = append(t.Events, Event[C]{Kind: EventCloneCreated, Container: c, Text: pending})
			next.cloneCreated(c, pending)
		},
	}
}

// Count returns number of recorded events of the given kind.
func (t *Trace[C]) Count(kind EventKind) int {
	n := 0
	for _, e := range t.Events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

// String returns readable dump of the trace for debug report.
func (t *Trace[C]) String() string {
	tw := debug.NewTreeWriter()
	tw.Line(0, "Layout trace (%d events)", len(t.Events))
	for i, e := range t.Events {
		switch e.Kind {
		case EventLayoutStarted, EventLayoutFinished:
			tw.Line(1, "[%d] %s containers[%d] text[%d runes]", i, e.Kind, len(e.Containers), utf8.RuneCountInString(e.Text))
		case EventContainerRemoved, EventTemplateRemoved:
			tw.Line(1, "[%d] %s %v", i, e.Kind, e.Container)
		default:
			tw.Line(1, "[%d] %s %v text[%d runes]", i, e.Kind, e.Container, utf8.RuneCountInString(e.Text))
		}
	}
	return tw.String()
}

// String returns readable dump of the result for debug report.
func (r *Result[C]) String() string {
	if r == nil {
		return "<nil Result>"
	}
	tw := debug.NewTreeWriter()
	tw.Line(0, "Layout result: containers[%d] clones[%d] measurements[%d]", len(r.Containers), r.Clones, r.Measurements)
	for i, c := range r.Containers {
		tw.Line(1, "Container[%d] %s", i, fmt.Sprint(c))
		tw.TextBlock(2, "Content", r.Fragments[i])
	}
	tw.TextBlock(1, "Leftover", r.Leftover)
	return tw.String()
}
