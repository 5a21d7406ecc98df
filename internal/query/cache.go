package query

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/schoolsharthi/webclient/internal/metrics"
)

// ErrSuperseded reports that a newer filter key was issued for the same view
// while this fetch was in flight. The result is correct data for its own key
// but must not be shown: the last-issued filter wins, regardless of which
// response arrives first.
var ErrSuperseded = errors.New("query: result superseded by a newer filter")

// Cache keeps list payloads keyed by (resource, active filters) and forces a
// refetch after every mutation. There are no optimistic updates anywhere:
// mutations invalidate, the next read refetches.
type Cache struct {
	ttl     time.Duration
	disk    *DiskStore
	metrics *metrics.Collector
	logger  *slog.Logger

	mu         sync.Mutex
	entries    map[string]entry
	byResource map[string]map[string]struct{}
	views      map[string]*viewState

	stop chan struct{}
	done chan struct{}
}

type entry struct {
	payload   []byte
	fetchedAt time.Time
}

// viewState remembers the last filter key a view asked for, whether served
// from cache or issued upstream. A completed fetch compares against it to
// detect that it was superseded while in flight.
type viewState struct {
	latestKey string
}

type CacheOptions struct {
	TTL     time.Duration
	Disk    *DiskStore
	Metrics *metrics.Collector
	Logger  *slog.Logger
}

func NewCache(opts CacheOptions) *Cache {
	if opts.TTL == 0 {
		opts.TTL = time.Minute
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	c := &Cache{
		ttl:        opts.TTL,
		disk:       opts.Disk,
		metrics:    opts.Metrics,
		logger:     opts.Logger,
		entries:    make(map[string]entry),
		byResource: make(map[string]map[string]struct{}),
		views:      make(map[string]*viewState),
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
	}
	go c.janitor()
	return c
}

// Close stops the expiry janitor. Owned timers do not outlive their owner.
func (c *Cache) Close() {
	close(c.stop)
	<-c.done
}

// Fetch returns the cached payload for key, or runs fetch and caches the
// marshaled result. view names the page slot the result is destined for;
// concurrent fetches for the same view race under last-issued-wins.
func (c *Cache) Fetch(ctx context.Context, view string, key Key, fetch func(context.Context) (any, error)) (json.RawMessage, error) {
	ks := key.String()

	c.mu.Lock()
	if e, ok := c.entries[ks]; ok && time.Since(e.fetchedAt) < c.ttl {
		c.track(view, ks)
		c.mu.Unlock()
		if c.metrics != nil {
			c.metrics.RecordCacheHit()
		}
		return e.payload, nil
	}
	if c.disk != nil {
		if payload, fetchedAt, ok := c.disk.Load(ks); ok && time.Since(fetchedAt) < c.ttl {
			c.put(key, ks, payload, fetchedAt)
			c.track(view, ks)
			c.mu.Unlock()
			if c.metrics != nil {
				c.metrics.RecordCacheHit()
			}
			return payload, nil
		}
	}
	c.track(view, ks)
	c.mu.Unlock()

	if c.metrics != nil {
		c.metrics.RecordCacheMiss()
	}

	result, err := fetch(ctx)
	if err != nil {
		return nil, err
	}
	payload, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("query: encode result: %w", err)
	}

	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	// The payload is valid for its own key either way; only the view
	// assignment is stale.
	c.put(key, ks, payload, now)
	if c.disk != nil {
		if derr := c.disk.Save(ks, key.Resource, payload, now); derr != nil {
			c.logger.Warn("cache disk save failed", "key", ks, "error", derr)
		}
	}

	if vs := c.views[view]; vs != nil && vs.latestKey != ks {
		if c.metrics != nil {
			c.metrics.RecordStaleDiscard()
		}
		c.logger.Debug("stale fetch discarded", "view", view, "key", ks)
		return nil, ErrSuperseded
	}
	return payload, nil
}

// Invalidate drops every cached list of the given resources. Callers run it
// after each successful delete/toggle/approve/upload so the next read shows
// server state, never a locally patched list.
func (c *Cache) Invalidate(resources ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, res := range resources {
		for ks := range c.byResource[res] {
			delete(c.entries, ks)
		}
		delete(c.byResource, res)
		if c.disk != nil {
			if err := c.disk.DeleteResource(res); err != nil {
				c.logger.Warn("cache disk invalidate failed", "resource", res, "error", err)
			}
		}
	}
}

// put and track assume c.mu is held.

func (c *Cache) put(key Key, ks string, payload []byte, fetchedAt time.Time) {
	c.entries[ks] = entry{payload: payload, fetchedAt: fetchedAt}
	keys, ok := c.byResource[key.Resource]
	if !ok {
		keys = make(map[string]struct{})
		c.byResource[key.Resource] = keys
	}
	keys[ks] = struct{}{}
}

func (c *Cache) track(view, ks string) {
	if view == "" {
		return
	}
	vs, ok := c.views[view]
	if !ok {
		vs = &viewState{}
		c.views[view] = vs
	}
	vs.latestKey = ks
}

func (c *Cache) janitor() {
	defer close(c.done)
	ticker := time.NewTicker(c.ttl)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.expire()
		case <-c.stop:
			return
		}
	}
}

func (c *Cache) expire() {
	cutoff := time.Now().Add(-c.ttl)

	c.mu.Lock()
	for ks, e := range c.entries {
		if e.fetchedAt.Before(cutoff) {
			delete(c.entries, ks)
		}
	}
	c.mu.Unlock()

	if c.disk != nil {
		if err := c.disk.DeleteOlderThan(cutoff); err != nil {
			c.logger.Warn("cache disk expire failed", "error", err)
		}
	}
}
