// Package search provides the debounced-lookup wrapper used by every
// autocomplete-style input: remote calls are issued only once the query has
// been stable for a quiet period, and only the newest query's result is ever
// applied.
package search

import (
	"context"
	"sync"
	"time"
)

// DefaultQuietPeriod is how long input must be stable before a lookup fires.
const DefaultQuietPeriod = 280 * time.Millisecond

// LookupFunc performs the remote query.
type LookupFunc[T any] func(ctx context.Context, query string) ([]T, error)

// Result is delivered to the apply callback once a lookup settles. Query is
// the text the result belongs to, so callers can double-check freshness.
type Result[T any] struct {
	Query string
	Items []T
	Err   error
}

// Debouncer wraps a LookupFunc with delay, supersede and stale-discard
// semantics. Queries race only against newer queries: every call to Query
// bumps a sequence number, and a lookup result is dropped unless its
// sequence is still the latest when it returns (last write wins).
type Debouncer[T any] struct {
	lookup LookupFunc[T]
	apply  func(Result[T])
	quiet  time.Duration

	mu     sync.Mutex
	seq    uint64
	timer  *time.Timer
	cancel context.CancelFunc
}

// NewDebouncer builds a Debouncer delivering settled results to apply. A
// non-positive quiet period falls back to DefaultQuietPeriod. The apply
// callback runs on the lookup goroutine (or synchronously for empty
// queries), never with internal locks held.
func NewDebouncer[T any](quiet time.Duration, lookup LookupFunc[T], apply func(Result[T])) *Debouncer[T] {
	if quiet <= 0 {
		quiet = DefaultQuietPeriod
	}
	return &Debouncer[T]{lookup: lookup, apply: apply, quiet: quiet}
}

// Query registers new input text. An empty query resolves synchronously to
// an empty result without any remote call; anything else (re)arms the quiet
// timer. A query issued while a previous lookup is in flight supersedes it:
// the old context is cancelled and its result, if it arrives anyway, is
// discarded.
func (d *Debouncer[T]) Query(text string) {
	d.mu.Lock()
	d.seq++
	seq := d.seq
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}

	if text == "" {
		d.mu.Unlock()
		d.apply(Result[T]{Query: ""})
		return
	}

	d.timer = time.AfterFunc(d.quiet, func() { d.fire(seq, text) })
	d.mu.Unlock()
}

// Close cancels any pending timer and in-flight lookup. Results settled
// after Close are discarded.
func (d *Debouncer[T]) Close() {
	d.mu.Lock()
	d.seq++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.mu.Unlock()
}

func (d *Debouncer[T]) fire(seq uint64, text string) {
	d.mu.Lock()
	if seq != d.seq {
		d.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	d.cancel = cancel
	d.mu.Unlock()

	items, err := d.lookup(ctx, text)

	d.mu.Lock()
	stale := seq != d.seq
	if !stale && d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.mu.Unlock()

	if stale || ctx.Err() != nil {
		return
	}
	d.apply(Result[T]{Query: text, Items: items, Err: err})
}
