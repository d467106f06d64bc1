// Package cache provides the process-local TTL cache cells that back the
// catalog and exchange-rate read paths. A cell holds a single snapshot value;
// refreshes swap the whole snapshot so readers never observe a partial update.
package cache

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// PopulateFunc loads a fresh value from the source of truth.
type PopulateFunc[T any] func(ctx context.Context) (T, error)

// Cell is a single-value cache with a TTL. The zero state (never populated)
// always triggers a populate on first Get. Concurrent misses for the same cell
// are coalesced through singleflight so the source sees one fetch per stale
// window.
type Cell[T any] struct {
	name string
	ttl  time.Duration

	mu        sync.RWMutex
	value     T
	fetchedAt time.Time

	sf  singleflight.Group
	now func() time.Time
}

// Option configures a Cell.
type Option[T any] func(*Cell[T])

// WithClock overrides the cell's time source. Used by tests to drive TTL
// expiry deterministically.
func WithClock[T any](now func() time.Time) Option[T] {
	return func(c *Cell[T]) {
		c.now = now
	}
}

// NewCell creates an empty cell. name labels the cell in metrics and
// singleflight keys.
func NewCell[T any](name string, ttl time.Duration, opts ...Option[T]) *Cell[T] {
	c := &Cell[T]{
		name: name,
		ttl:  ttl,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name returns the cell's label.
func (c *Cell[T]) Name() string {
	return c.name
}

// Get returns the cached value when fresh, otherwise populates, stores the
// result with a new fetch timestamp and returns it. A populate failure is
// returned to the caller unchanged; the previous value (if any) stays in
// place for the next attempt.
func (c *Cell[T]) Get(ctx context.Context, populate PopulateFunc[T]) (T, error) {
	if v, ok := c.fresh(); ok {
		cellHits.WithLabelValues(c.name).Inc()
		return v, nil
	}
	cellMisses.WithLabelValues(c.name).Inc()

	res, err, _ := c.sf.Do(c.name, func() (interface{}, error) {
		// Another caller may have repopulated while we waited on the flight.
		if v, ok := c.fresh(); ok {
			return v, nil
		}
		v, err := populate(ctx)
		if err != nil {
			return nil, err
		}
		c.store(v)
		return v, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return res.(T), nil
}

// Refresh repopulates immediately regardless of TTL state. Safe to call
// concurrently with Get: readers see either the old or the new snapshot.
func (c *Cell[T]) Refresh(ctx context.Context, populate PopulateFunc[T]) (T, error) {
	v, err := populate(ctx)
	if err != nil {
		var zero T
		return zero, err
	}
	c.store(v)
	cellRefreshes.WithLabelValues(c.name).Inc()
	return v, nil
}

// Invalidate marks the cell stale without clearing the value, so a concurrent
// reader racing the next repopulation still sees the old snapshot rather than
// an empty one.
func (c *Cell[T]) Invalidate() {
	c.mu.Lock()
	c.fetchedAt = time.Time{}
	c.mu.Unlock()
}

func (c *Cell[T]) fresh() (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.fetchedAt.IsZero() || c.now().Sub(c.fetchedAt) >= c.ttl {
		var zero T
		return zero, false
	}
	return c.value, true
}

func (c *Cell[T]) store(v T) {
	c.mu.Lock()
	c.value = v
	c.fetchedAt = c.now()
	c.mu.Unlock()
}
