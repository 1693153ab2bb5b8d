package flow

import (
	"fmt"

	"go.uber.org/zap"
)

// Engine lays text out into containers. It keeps no state between runs, so it
// may be reused sequentially; concurrent runs over the same containers must be
// serialized by the caller.
type Engine[C comparable] struct {
	oracle   Oracle[C]
	provider Provider[C]
	settings Settings[C]
	log      *zap.Logger
}

// New creates layout engine. Provider may be nil when no template is
// configured, removals are then only reported to hooks.
func New[C comparable](oracle Oracle[C], provider Provider[C], settings Settings[C], log *zap.Logger) *Engine[C] {
	if log == nil {
		log = zap.NewNop()
	}
	if provider == nil {
		provider = nopProvider[C]{}
	}
	if settings.Scanner == nil {
		settings.Scanner = PositionalScanner{}
	}
	return &Engine[C]{
		oracle:   oracle,
		provider: provider,
		settings: settings,
		log:      log.Named("flow"),
	}
}

// run holds state of a single Flow call.
type run[C comparable] struct {
	*Engine[C]
	measurements int
}

// Flow distributes text over preset containers in order, then over clones of
// the template while text remains. Unused containers are removed according to
// settings. Text which could not be placed is returned as Result.Leftover,
// the only error source is the provider.
func (e *Engine[C]) Flow(containers []C, text string) (*Result[C], error) {
	r := &run[C]{Engine: e}
	res := &Result[C]{}
	hooks := e.settings.Hooks

	hooks.layoutStarted(containers, text)

	pending := text
	for _, c := range containers {
		if len(pending) > 0 {
			var content string
			content, pending = r.layout(c, pending)
			res.add(c, content)
			continue
		}
		if e.settings.RemoveUnusedContainers {
			hooks.containerRemoved(c)
			if err := e.provider.Destroy(c); err != nil {
				return nil, fmt.Errorf("unable to remove unused container: %w", err)
			}
		}
	}

	var zero C
	if template := e.settings.Template; template != zero {
		var err error
		if pending, err = r.cloneAndLayout(template, pending, res); err != nil {
			return nil, err
		}
		if e.settings.RemoveUnusedTemplate {
			hooks.templateRemoved(template)
			if err := e.provider.Destroy(template); err != nil {
				return nil, fmt.Errorf("unable to remove template: %w", err)
			}
		}
	}

	if last := len(res.Containers) - 1; len(pending) > 0 && len(e.settings.Marker) > 0 && last >= 0 {
		res.Fragments[last], pending = r.appendMarker(res.Containers[last], res.Fragments[last], pending)
	}

	res.Leftover = pending
	res.Measurements = r.measurements
	e.log.Debug("Layout finished",
		zap.Int("containers", len(res.Containers)),
		zap.Int("clones", res.Clones),
		zap.Int("leftover", len(res.Leftover)),
		zap.Int("measurements", res.Measurements))

	hooks.layoutFinished(res.Containers, res.Leftover)
	return res, nil
}

// cloneAndLayout generates containers from template while there is text
// left. Generation stops early when a clone could not take any text, every
// following clone would fail the same way.
func (r *run[C]) cloneAndLayout(template C, pending string, res *Result[C]) (string, error) {
	for len(pending) > 0 {
		if r.settings.MaxClones > 0 && res.Clones >= r.settings.MaxClones {
			r.log.Warn("Clones limit reached, text left", zap.Int("limit", r.settings.MaxClones), zap.Int("leftover", len(pending)))
			break
		}

		clone, err := r.provider.Clone(template)
		if err != nil {
			return pending, fmt.Errorf("unable to clone template: %w", err)
		}
		if err := r.provider.Attach(clone, template); err != nil {
			return pending, fmt.Errorf("unable to attach cloned container: %w", err)
		}
		res.Clones++
		r.settings.Hooks.cloneCreated(clone, pending)

		before := len(pending)
		var content string
		content, pending = r.layout(clone, pending)
		res.add(clone, content)

		if len(pending) >= before {
			r.log.Warn("Generated container did not take any text, cloning stopped", zap.Any("container", clone), zap.Int("leftover", len(pending)))
			break
		}
	}
	return pending, nil
}

// layout fits as much of pending text as possible into a single container and
// returns committed content and remaining text.
func (r *run[C]) layout(c C, pending string) (string, string) {
	r.settings.Hooks.containerStarted(c, pending)

	capacity := r.oracle.Capacity(c)
	if capacity < 1 {
		r.log.Debug("Container has no capacity, skipping", zap.Any("container", c))
		r.settings.Hooks.containerFinished(c, pending)
		return "", pending
	}

	measured := r.measurements
	s, fits := r.search(c, capacity, pending)
	if len(s.Pending) > 0 {
		s = r.alignWords(c, capacity, s, fits)
	}
	var open []Tag
	if len(s.Pending) > 0 {
		s, open = repairTags(s, r.settings.Scanner)
	}
	r.oracle.Assign(c, s.Committed)

	r.log.Debug("Container laid out",
		zap.Any("container", c),
		zap.Int("committed", len(s.Committed)),
		zap.Int("pending", len(s.Pending)),
		zap.Int("reopened", len(open)),
		zap.Int("measurements", r.measurements-measured))

	r.settings.Hooks.containerFinished(c, s.Pending)
	return s.Committed, s.Pending
}

type nopProvider[C any] struct{}

func (nopProvider[C]) Clone(template C) (C, error) {
	var zero C
	return zero, fmt.Errorf("no container provider to clone %v", template)
}

func (nopProvider[C]) Attach(C, C) error { return nil }

func (nopProvider[C]) Destroy(C) error { return nil }
