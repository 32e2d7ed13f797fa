// Package query is a small cache-aware fetch orchestrator.
//
// Results are cached per Key and served without a request while younger
// than the freshness window. Concurrent fetches of one key share a single
// request. Whichever fetch resolves last overwrites the cached value.
// A caller whose context ends before the shared fetch resolves gets
// ctx.Err() and never sees the result; the fetch itself keeps running and
// still fills the cache. Mutations invalidate whole key families.
package query

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/taskboard/internal/logging"
	"golang.org/x/sync/singleflight"
)

// Key identifies one cached result. Family groups keys for invalidation;
// Scope and Params must capture every argument that changes the result.
type Key struct {
	Family string
	Scope  string
	Params string
}

func (k Key) String() string {
	return strings.Join([]string{k.Family, k.Scope, k.Params}, "\x00")
}

// State is a snapshot of one key.
type State struct {
	Loading   bool
	HasData   bool
	Err       error
	UpdatedAt time.Time
}

type entry struct {
	data      any
	hasData   bool
	err       error
	updatedAt time.Time
	inflight  int
	// bumped by Invalidate; a fetch that started under an older generation
	// stores its data as already stale
	gen uint64
}

type Client struct {
	mu        sync.Mutex
	entries   map[Key]*entry
	group     singleflight.Group
	staleTime time.Duration
	// bumped by Clear; a fetch that started under an older epoch belongs to
	// a previous session and its result is not stored
	epoch uint64
	now   func() time.Time
	log       logging.Logger
}

// NewClient builds a cache with the given freshness window. A zero window
// makes every Fetch hit the network.
func NewClient(staleTime time.Duration, log logging.Logger) *Client {
	if log == nil {
		log = logging.Nop{}
	}
	return &Client{
		entries:   make(map[Key]*entry),
		staleTime: staleTime,
		now:       time.Now,
		log:       log,
	}
}

func (c *Client) entryLocked(key Key) *entry {
	e, ok := c.entries[key]
	if !ok {
		e = &entry{}
		c.entries[key] = e
	}
	return e
}

func (c *Client) freshLocked(e *entry) bool {
	return e.hasData && e.err == nil && !e.updatedAt.IsZero() && c.now().Sub(e.updatedAt) < c.staleTime
}

// Fetch returns the cached value for key while it is fresh, and otherwise
// runs fn (shared with concurrent callers of the same key).
func Fetch[T any](ctx context.Context, c *Client, key Key, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T

	c.mu.Lock()
	e := c.entryLocked(key)
	if c.freshLocked(e) {
		if v, ok := e.data.(T); ok {
			c.mu.Unlock()
			return v, nil
		}
	}
	gen, epoch := e.gen, c.epoch
	c.mu.Unlock()

	// fetches started after an invalidation or a clear do not join older flights
	flight := key.String() + "\x00" + strconv.FormatUint(epoch, 10) + "\x00" + strconv.FormatUint(gen, 10)
	ch := c.group.DoChan(flight, func() (any, error) {
		return c.run(ctx, key, epoch, gen, func(ctx context.Context) (any, error) {
			return fn(ctx)
		})
	})

	select {
	case <-ctx.Done():
		c.log.Debug(ctx, "fetch abandoned by caller", "key", key.Family, "scope", key.Scope)
		return zero, ctx.Err()
	case r := <-ch:
		if r.Err != nil {
			return zero, r.Err
		}
		v, ok := r.Val.(T)
		if !ok {
			return zero, nil
		}
		return v, nil
	}
}

func (c *Client) run(ctx context.Context, key Key, epoch, gen uint64, fn func(ctx context.Context) (any, error)) (any, error) {
	c.mu.Lock()
	e := c.entryLocked(key)
	e.inflight++
	c.mu.Unlock()

	v, err := fn(context.WithoutCancel(ctx))

	c.mu.Lock()
	defer c.mu.Unlock()
	e.inflight--
	if epoch != c.epoch {
		c.log.Debug(ctx, "dropping result fetched before clear", "key", key.Family, "scope", key.Scope)
		return v, err
	}
	if err != nil {
		e.err = err
		c.log.Debug(ctx, "fetch failed", "key", key.Family, "scope", key.Scope, "error", err)
		return nil, err
	}
	e.data, e.hasData, e.err = v, true, nil
	if gen == e.gen {
		e.updatedAt = c.now()
	} else {
		e.updatedAt = time.Time{}
	}
	return v, nil
}

func (c *Client) State(key Key) State {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return State{}
	}
	return State{Loading: e.inflight > 0, HasData: e.hasData, Err: e.err, UpdatedAt: e.updatedAt}
}

// Invalidate drops the cached data of every key in the given families.
// Fetches already in flight for those keys still complete but their
// results are stored as stale.
func (c *Client) Invalidate(families ...string) {
	if len(families) == 0 {
		return
	}
	set := make(map[string]struct{}, len(families))
	for _, f := range families {
		set[f] = struct{}{}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for k, e := range c.entries {
		if _, ok := set[k.Family]; !ok {
			continue
		}
		e.data, e.hasData, e.err, e.updatedAt = nil, false, nil, time.Time{}
		e.gen++
	}
}

// Clear empties the cache, e.g. when the session ends. Fetches still in
// flight complete for their callers but their results are discarded.
func (c *Client) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.epoch++
	c.entries = make(map[Key]*entry)
}
