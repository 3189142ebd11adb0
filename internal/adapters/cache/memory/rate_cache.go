// Package memory provides in-process implementations of cache ports.
package memory

import (
	"sync"
	"time"

	"github.com/SscSPs/subscription_tracker/internal/core/domain"
	"github.com/SscSPs/subscription_tracker/internal/core/ports/repositories"
	"github.com/SscSPs/subscription_tracker/internal/platform/metrics"
)

// DefaultRateTTL is how long a fetched snapshot counts as fresh.
const DefaultRateTTL = time.Hour

// RateCache keeps one snapshot per base currency behind a single RWMutex.
// Entries are never evicted; expired ones remain readable through GetStale.
type RateCache struct {
	mu        sync.RWMutex
	snapshots map[domain.CurrencyCode]domain.RateSnapshot
	ttl       time.Duration
	now       func() time.Time
	metrics   *metrics.Registry
}

var _ repositories.RateCache = (*RateCache)(nil)

// Option configures a RateCache.
type Option func(*RateCache)

// WithClock replaces the wall clock, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(c *RateCache) { c.now = now }
}

// WithMetrics records hit, miss and stale lookups.
func WithMetrics(m *metrics.Registry) Option {
	return func(c *RateCache) { c.metrics = m }
}

// NewRateCache creates an empty cache. A non-positive ttl uses DefaultRateTTL.
func NewRateCache(ttl time.Duration, opts ...Option) *RateCache {
	if ttl <= 0 {
		ttl = DefaultRateTTL
	}
	c := &RateCache{
		snapshots: make(map[domain.CurrencyCode]domain.RateSnapshot),
		ttl:       ttl,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// TTL returns the configured freshness window.
func (c *RateCache) TTL() time.Duration {
	return c.ttl
}

// Get returns the snapshot for base only while it is fresh.
func (c *RateCache) Get(base domain.CurrencyCode) (domain.RateSnapshot, bool) {
	c.mu.RLock()
	snap, ok := c.snapshots[base]
	c.mu.RUnlock()

	if !ok {
		c.metrics.RecordCacheLookup("miss")
		return domain.RateSnapshot{}, false
	}
	if c.now().Sub(snap.FetchedAt) >= c.ttl {
		c.metrics.RecordCacheLookup("expired")
		return domain.RateSnapshot{}, false
	}
	c.metrics.RecordCacheLookup("hit")
	return snap.WithSource(domain.RateSourceCache), true
}

// Put stores a copy of snapshot, replacing any previous one for the same base.
func (c *RateCache) Put(snapshot domain.RateSnapshot) {
	stored := snapshot.WithSource(snapshot.Source)
	c.mu.Lock()
	c.snapshots[snapshot.Base] = stored
	c.mu.Unlock()
}

// GetStale returns the last stored snapshot for base regardless of age.
func (c *RateCache) GetStale(base domain.CurrencyCode) (domain.RateSnapshot, bool) {
	c.mu.RLock()
	snap, ok := c.snapshots[base]
	c.mu.RUnlock()

	if !ok {
		return domain.RateSnapshot{}, false
	}
	c.metrics.RecordCacheLookup("stale")
	return snap.WithSource(domain.RateSourceStale), true
}

// Len returns the number of cached bases.
func (c *RateCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.snapshots)
}
