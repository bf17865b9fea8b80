package googlebooks

import (
	"context"
	"errors"
)

// Iterator walks a search's result set from index 0, fetching pages as
// needed. Iterators created from the same Search share its page cache but
// track their own positions, so iteration can be restarted cheaply by
// creating a new one.
//
// Usage follows the bufio.Scanner pattern:
//
//	it := search.Iterate()
//	for it.Next(ctx) {
//		vol := it.Volume()
//		...
//	}
//	if err := it.Err(); err != nil {
//		...
//	}
type Iterator struct {
	search  *Search
	index   int
	current *Volume
	err     error
	done    bool
}

// Iterate returns a fresh iterator positioned at the first result.
func (s *Search) Iterate() *Iterator {
	return &Iterator{search: s}
}

// Next advances to the next volume. It returns false when the result set
// is exhausted or an error occurred; the two cases are distinguished by
// Err.
func (it *Iterator) Next(ctx context.Context) bool {
	if it.done {
		return false
	}

	volume, err := it.search.Get(ctx, it.index)
	if err != nil {
		it.done = true
		it.current = nil
		if !errors.Is(err, ErrNotFound) {
			it.err = err
		}
		return false
	}

	it.current = volume
	it.index++
	return true
}

// Volume returns the volume produced by the most recent successful call
// to Next.
func (it *Iterator) Volume() *Volume {
	return it.current
}

// Err returns the first non-exhaustion error encountered by Next, if any.
func (it *Iterator) Err() error {
	return it.err
}
