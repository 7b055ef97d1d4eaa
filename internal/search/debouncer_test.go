package search

import (
	"context"
	"sync"
	"testing"
	"time"
)

// collector gathers applied results for assertions.
type collector struct {
	mu      sync.Mutex
	results []Result[string]
}

func (c *collector) apply(r Result[string]) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.results = append(c.results, r)
}

func (c *collector) snapshot() []Result[string] {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Result[string], len(c.results))
	copy(out, c.results)
	return out
}

func (c *collector) waitFor(t *testing.T, n int) []Result[string] {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if got := c.snapshot(); len(got) >= n {
			return got
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %d results, have %v", n, c.snapshot())
	return nil
}

func TestDebouncerCoalescesRapidTyping(t *testing.T) {
	var mu sync.Mutex
	var calls []string
	lookup := func(ctx context.Context, q string) ([]string, error) {
		mu.Lock()
		calls = append(calls, q)
		mu.Unlock()
		return []string{q + "-hit"}, nil
	}

	c := &collector{}
	d := NewDebouncer(30*time.Millisecond, lookup, c.apply)
	defer d.Close()

	d.Query("a")
	d.Query("ab")
	d.Query("abc")

	got := c.waitFor(t, 1)
	if len(got) != 1 || got[0].Query != "abc" {
		t.Fatalf("results = %v, want single result for abc", got)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(calls) != 1 || calls[0] != "abc" {
		t.Errorf("remote calls = %v, want exactly [abc]", calls)
	}
}

func TestDebouncerEmptyQueryIsSynchronousAndFree(t *testing.T) {
	called := false
	lookup := func(ctx context.Context, q string) ([]string, error) {
		called = true
		return nil, nil
	}

	c := &collector{}
	d := NewDebouncer(10*time.Millisecond, lookup, c.apply)
	defer d.Close()

	d.Query("")

	got := c.snapshot()
	if len(got) != 1 || got[0].Query != "" || len(got[0].Items) != 0 {
		t.Fatalf("results = %v, want one empty result delivered synchronously", got)
	}

	time.Sleep(30 * time.Millisecond)
	if called {
		t.Error("empty query triggered a remote call")
	}
}

func TestDebouncerDiscardsStaleResponse(t *testing.T) {
	release := make(chan struct{})
	lookup := func(ctx context.Context, q string) ([]string, error) {
		if q == "slow" {
			select {
			case <-release:
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
		return []string{q + "-hit"}, nil
	}

	c := &collector{}
	d := NewDebouncer(10*time.Millisecond, lookup, c.apply)
	defer d.Close()

	d.Query("slow")
	time.Sleep(30 * time.Millisecond) // let the slow lookup start
	d.Query("fast")
	close(release)

	got := c.waitFor(t, 1)
	time.Sleep(30 * time.Millisecond) // give the stale result a chance to leak
	got = c.snapshot()

	for _, r := range got {
		if r.Query == "slow" && r.Err == nil {
			t.Fatalf("stale slow result was applied: %v", got)
		}
	}
	last := got[len(got)-1]
	if last.Query != "fast" || len(last.Items) != 1 || last.Items[0] != "fast-hit" {
		t.Fatalf("final result = %+v, want fast-hit", last)
	}
}

func TestDebouncerCloseSuppressesPending(t *testing.T) {
	lookup := func(ctx context.Context, q string) ([]string, error) {
		return []string{q}, nil
	}

	c := &collector{}
	d := NewDebouncer(20*time.Millisecond, lookup, c.apply)

	d.Query("abandoned")
	d.Close()

	time.Sleep(60 * time.Millisecond)
	if got := c.snapshot(); len(got) != 0 {
		t.Errorf("results after Close = %v, want none", got)
	}
}
