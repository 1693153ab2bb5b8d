package flow

import (
	"strings"
	"unicode/utf8"
)

// fits assigns content to the container and reports whether it stays within
// capacity.
func (r *run[C]) fits(c C, capacity float64, content string) bool {
	r.oracle.Assign(c, content)
	r.measurements++
	return r.oracle.Extent(c) <= capacity
}

// search looks for the cut in pending text. It starts with everything
// assigned and then moves a step of runes back and forth, halving the step
// unconditionally after every move, so it needs at most log2(n) measurements
// and lands close to the boundary without guaranteeing the exact one.
// Returned flag tells whether the committed part fits.
func (r *run[C]) search(c C, capacity float64, pending string) (Stream, bool) {
	s := Stream{Committed: pending}
	fits := r.fits(c, capacity, s.Committed)
	for step := utf8.RuneCountInString(pending) / 2; ; step /= 2 {
		if fits && len(s.Pending) == 0 {
			// container absorbs everything
			break
		}
		if step < 1 {
			break
		}
		if fits {
			s = s.advance(step)
		} else {
			s = s.retreat(step)
		}
		fits = r.fits(c, capacity, s.Committed)
	}
	return s, fits
}

// alignWords moves the cut found by search to a space. A word split by the cut
// is first pulled whole into the container, then whole words are added while
// the container has room and removed while it overflows.
func (r *run[C]) alignWords(c C, capacity float64, s Stream, fits bool) Stream {
	if !strings.HasSuffix(s.Committed, " ") && !strings.HasPrefix(s.Pending, " ") {
		end := strings.IndexByte(s.Pending, ' ')
		if end < 0 {
			end = len(s.Pending)
		}
		s = Stream{Committed: s.Committed + s.Pending[:end], Pending: s.Pending[end:]}
		fits = r.fits(c, capacity, s.Committed)
	}

	for fits {
		i := strings.IndexByte(s.Pending, ' ')
		if i < 0 {
			// unsplittable run is never forced in
			break
		}
		s = Stream{Committed: s.Committed + s.Pending[:i+1], Pending: s.Pending[i+1:]}
		fits = r.fits(c, capacity, s.Committed)
	}

	// A word wider than the container empties committed text completely, stop
	// there even if the oracle claims empty content overflows.
	for !fits && len(s.Committed) > 0 {
		i := max(strings.LastIndexByte(s.Committed, ' '), 0)
		s = Stream{Committed: s.Committed[:i], Pending: s.Committed[i:] + s.Pending}
		fits = r.fits(c, capacity, s.Committed)
	}

	s.Pending = strings.TrimPrefix(s.Pending, " ")
	return s
}
