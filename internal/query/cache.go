// Package query keeps remote resources in a shared, deduplicating cache and
// runs writes that invalidate it.
package query

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

// Status is the load state of a cached resource.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusSuccess
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return "idle"
	}
}

// Resource is a point-in-time snapshot of one cache entry.
type Resource struct {
	Key       string
	Status    Status
	Value     any
	Err       error
	Stale     bool
	Fetching  bool
	UpdatedAt time.Time
	// Seq is the issue sequence of the fetch whose result is shown.
	Seq uint64
}

// Value extracts the typed payload of a resource.
func Value[T any](r Resource) (T, bool) {
	v, ok := r.Value.(T)
	return v, ok
}

// Fetcher loads the value stored under key.
type Fetcher func(ctx context.Context, key string) (any, error)

// Matcher selects cache keys for invalidation.
type Matcher interface {
	Match(key string) bool
}

// MatchFunc adapts a predicate to a Matcher.
type MatchFunc func(key string) bool

func (f MatchFunc) Match(key string) bool { return f(key) }

// Exact matches a single key.
func Exact(key string) Matcher {
	return MatchFunc(func(k string) bool { return k == key })
}

// Prefix matches key p and every key nested below it ("/api/events" matches
// "/api/events/3/participants" but not "/api/eventsx").
func Prefix(p string) Matcher {
	p = strings.TrimSuffix(p, "/")
	return MatchFunc(func(k string) bool {
		return k == p || strings.HasPrefix(k, p+"/")
	})
}

// Options configures a Cache.
type Options struct {
	Size   int
	Logger zerolog.Logger
	Now    func() time.Time
}

const DefaultSize = 128

type entry struct {
	res        Resource
	gen        uint64
	appliedSeq uint64
	inflight   int
	observers  map[int]func(Resource)
}

// Cache is a session-wide table of remote resources keyed by request path.
// Concurrent loads of one key share a single fetch and results are applied
// in issue order, so a slow early response never overwrites a newer one.
type Cache struct {
	fetch Fetcher
	log   zerolog.Logger
	now   func() time.Time

	mu      sync.Mutex
	entries *lru.Cache[string, *entry]
	// pinned holds entries with observers or fetches in flight. The LRU may
	// drop them from its table, but they stay reachable here until released.
	pinned  map[string]*entry
	seq     uint64
	nextObs int

	group singleflight.Group
	wg    sync.WaitGroup
}

// NewCache creates a cache that loads missing keys with fetch.
func NewCache(fetch Fetcher, opts Options) (*Cache, error) {
	if fetch == nil {
		return nil, fmt.Errorf("query: nil fetcher")
	}
	if opts.Size <= 0 {
		opts.Size = DefaultSize
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	c := &Cache{fetch: fetch, log: opts.Logger, now: opts.Now, pinned: map[string]*entry{}}
	entries, err := lru.NewWithEvict(opts.Size, func(key string, e *entry) {
		if e.referenced() {
			return
		}
		c.log.Debug().Str("key", key).Msg("cache entry evicted")
	})
	if err != nil {
		return nil, fmt.Errorf("query: create table: %w", err)
	}
	c.entries = entries
	return c, nil
}

func (e *entry) referenced() bool {
	return len(e.observers) > 0 || e.inflight > 0
}

// lookupLocked finds the live entry for key without creating one.
func (c *Cache) lookupLocked(key string) (*entry, bool) {
	if e, ok := c.pinned[key]; ok {
		return e, true
	}
	return c.entries.Peek(key)
}

// entryLocked returns the entry for key, creating an idle one if needed.
func (c *Cache) entryLocked(key string) *entry {
	if e, ok := c.entries.Get(key); ok {
		return e
	}
	if e, ok := c.pinned[key]; ok {
		return e
	}
	e := &entry{
		res:       Resource{Key: key, Status: StatusIdle},
		observers: map[int]func(Resource){},
	}
	c.entries.Add(key, e)
	return e
}

// releaseLocked unpins e once nothing references it. An entry the LRU
// already dropped is handed back to it as the most recently used.
func (c *Cache) releaseLocked(key string, e *entry) {
	if e.referenced() || c.pinned[key] != e {
		return
	}
	delete(c.pinned, key)
	if !c.entries.Contains(key) {
		c.entries.Add(key, e)
	}
}

// keysLocked lists every live key, pinned ones included.
func (c *Cache) keysLocked() []string {
	keys := c.entries.Keys()
	for key := range c.pinned {
		if !c.entries.Contains(key) {
			keys = append(keys, key)
		}
	}
	return keys
}

// Peek returns the current snapshot for key without fetching.
func (c *Cache) Peek(key string) Resource {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.lookupLocked(key); ok {
		return e.res
	}
	return Resource{Key: key, Status: StatusIdle}
}

// Load returns the cached value for key, fetching it when absent, failed or
// stale. Callers loading the same key concurrently share one fetch. If ctx
// ends first, the current snapshot is returned and the fetch carries on.
func (c *Cache) Load(ctx context.Context, key string) Resource {
	c.mu.Lock()
	e := c.entryLocked(key)
	if e.res.Status == StatusSuccess && !e.res.Stale {
		res := e.res
		c.mu.Unlock()
		return res
	}
	gen := e.gen
	c.mu.Unlock()

	ch := c.start(ctx, key, gen)
	select {
	case r := <-ch:
		return r.Val.(Resource)
	case <-ctx.Done():
		return c.Peek(key)
	}
}

// start joins or launches the fetch for key at generation gen.
func (c *Cache) start(ctx context.Context, key string, gen uint64) <-chan singleflight.Result {
	fetchCtx := context.WithoutCancel(ctx)
	return c.group.DoChan(fmt.Sprintf("%s#%d", key, gen), func() (any, error) {
		c.mu.Lock()
		c.seq++
		seq := c.seq
		e := c.entryLocked(key)
		e.inflight++
		c.pinned[key] = e
		if e.res.Status != StatusSuccess {
			e.res.Status = StatusLoading
		}
		e.res.Fetching = true
		snap, obs := e.res, observersOf(e)
		c.mu.Unlock()
		c.notify(obs, snap)

		c.log.Debug().Str("key", key).Uint64("seq", seq).Uint64("gen", gen).Msg("fetch issued")
		v, err := c.fetch(fetchCtx, key)
		return c.apply(e, key, seq, gen, v, err), nil
	})
}

// apply records a fetch result if it is newer than what the entry shows.
func (c *Cache) apply(e *entry, key string, seq, gen uint64, v any, err error) Resource {
	c.mu.Lock()
	cur, ok := c.lookupLocked(key)
	if !ok || cur != e {
		c.mu.Unlock()
		c.log.Debug().Str("key", key).Uint64("seq", seq).Msg("result for evicted entry dropped")
		return result(key, seq, v, err, c.now())
	}

	e.inflight--
	e.res.Fetching = e.inflight > 0
	c.releaseLocked(key, e)
	if seq <= e.appliedSeq {
		applied := e.appliedSeq
		snap, obs := e.res, observersOf(e)
		c.mu.Unlock()
		c.log.Debug().Str("key", key).Uint64("seq", seq).Uint64("applied", applied).Msg("out-of-order result discarded")
		c.notify(obs, snap)
		return snap
	}

	e.appliedSeq = seq
	e.res.Seq = seq
	e.res.Stale = gen != e.gen
	if err != nil {
		e.res.Status = StatusError
		e.res.Err = err
		c.log.Warn().Err(err).Str("key", key).Msg("fetch failed")
	} else {
		e.res.Status = StatusSuccess
		e.res.Value = v
		e.res.Err = nil
		e.res.UpdatedAt = c.now()
	}
	snap, obs := e.res, observersOf(e)
	c.mu.Unlock()

	c.notify(obs, snap)
	return snap
}

func result(key string, seq uint64, v any, err error, now time.Time) Resource {
	if err != nil {
		return Resource{Key: key, Status: StatusError, Err: err, Seq: seq}
	}
	return Resource{Key: key, Status: StatusSuccess, Value: v, UpdatedAt: now, Seq: seq}
}

// Invalidate marks every entry selected by m as stale and refetches, in the
// background, those that currently have observers. It returns the matched keys.
func (c *Cache) Invalidate(ctx context.Context, m Matcher) []string {
	type target struct {
		key string
		gen uint64
	}

	c.mu.Lock()
	var matched []string
	var refetch []target
	for _, key := range c.keysLocked() {
		if !m.Match(key) {
			continue
		}
		e, _ := c.lookupLocked(key)
		e.gen++
		e.res.Stale = true
		matched = append(matched, key)
		if len(e.observers) > 0 {
			refetch = append(refetch, target{key, e.gen})
		}
	}
	c.mu.Unlock()

	for _, t := range refetch {
		c.wg.Add(1)
		go func(t target) {
			defer c.wg.Done()
			<-c.start(ctx, t.key, t.gen)
		}(t)
	}
	if len(matched) > 0 {
		c.log.Debug().Strs("keys", matched).Int("refetching", len(refetch)).Msg("cache invalidated")
	}
	return matched
}

// Observe registers fn to receive every snapshot published for key. The
// returned cancel func detaches it; no snapshot is delivered afterwards.
func (c *Cache) Observe(key string, fn func(Resource)) (cancel func()) {
	c.mu.Lock()
	e := c.entryLocked(key)
	c.nextObs++
	id := c.nextObs
	e.observers[id] = fn
	c.pinned[key] = e
	c.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			delete(e.observers, id)
			c.releaseLocked(key, e)
			c.mu.Unlock()
		})
	}
}

// Wait blocks until background refetches started by Invalidate finish.
func (c *Cache) Wait() {
	c.wg.Wait()
}

// Len reports the number of live entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.keysLocked())
}

type observer struct {
	e  *entry
	id int
	fn func(Resource)
}

func observersOf(e *entry) []observer {
	obs := make([]observer, 0, len(e.observers))
	for id, fn := range e.observers {
		obs = append(obs, observer{e: e, id: id, fn: fn})
	}
	return obs
}

// notify delivers r to observers that are still attached.
func (c *Cache) notify(obs []observer, r Resource) {
	for _, o := range obs {
		c.mu.Lock()
		_, live := o.e.observers[o.id]
		c.mu.Unlock()
		if live {
			o.fn(r)
		}
	}
}
