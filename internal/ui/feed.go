package ui

import (
	"context"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"greenpath/internal/query"
)

// resourceMsg reports that the cached resource under key changed.
type resourceMsg struct {
	key string
	// fromFeed marks messages produced by the observer feed, which must be
	// re-armed after each delivery.
	fromFeed bool
}

// feed turns cache observer callbacks, which run on fetch goroutines, into
// Bubble Tea messages. Changes to the same key coalesce until the UI reads
// them.
type feed struct {
	mu      sync.Mutex
	pending map[string]struct{}
	order   []string
	signal  chan struct{}
}

func newFeed() *feed {
	return &feed{
		pending: map[string]struct{}{},
		signal:  make(chan struct{}, 1),
	}
}

func (f *feed) push(key string) {
	f.mu.Lock()
	if _, ok := f.pending[key]; !ok {
		f.pending[key] = struct{}{}
		f.order = append(f.order, key)
	}
	f.mu.Unlock()
	select {
	case f.signal <- struct{}{}:
	default:
	}
}

// next waits for the first pending change.
func (f *feed) next() tea.Cmd {
	return func() tea.Msg {
		for {
			f.mu.Lock()
			if len(f.order) > 0 {
				key := f.order[0]
				f.order = f.order[1:]
				delete(f.pending, key)
				more := len(f.order) > 0
				f.mu.Unlock()
				if more {
					select {
					case f.signal <- struct{}{}:
					default:
					}
				}
				return resourceMsg{key: key, fromFeed: true}
			}
			f.mu.Unlock()
			<-f.signal
		}
	}
}

// watcher keeps one cache observer per key and remembers the last snapshot
// the UI accepted.
type watcher struct {
	cache   *query.Cache
	feed    *feed
	cancels map[string]func()
	current map[string]query.Resource
}

func newWatcher(cache *query.Cache) *watcher {
	return &watcher{
		cache:   cache,
		feed:    newFeed(),
		cancels: map[string]func(){},
		current: map[string]query.Resource{},
	}
}

// watch observes key and returns a command that loads it.
func (w *watcher) watch(key string) tea.Cmd {
	if _, ok := w.cancels[key]; !ok {
		w.cancels[key] = w.cache.Observe(key, func(query.Resource) { w.feed.push(key) })
	}
	return loadCmd(w.cache, key)
}

// unwatch detaches from key. Results that arrive later are ignored.
func (w *watcher) unwatch(key string) {
	if cancel, ok := w.cancels[key]; ok {
		cancel()
		delete(w.cancels, key)
	}
}

func (w *watcher) close() {
	for key := range w.cancels {
		w.unwatch(key)
	}
}

// refresh reads the snapshot for key. Snapshots older than the one already
// shown are ignored, so a late response never replaces newer data.
func (w *watcher) refresh(key string) (query.Resource, bool) {
	if _, ok := w.cancels[key]; !ok {
		return query.Resource{}, false
	}
	r := w.cache.Peek(key)
	if cur, ok := w.current[key]; ok && r.Seq < cur.Seq {
		return cur, false
	}
	w.current[key] = r
	return r, true
}

func (w *watcher) get(key string) query.Resource {
	if r, ok := w.current[key]; ok {
		return r
	}
	return query.Resource{Key: key, Status: query.StatusIdle}
}

const loadTimeout = 30 * time.Second

func loadCmd(cache *query.Cache, key string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()
		r := cache.Load(ctx, key)
		return resourceMsg{key: r.Key}
	}
}

// retryCmd marks key stale and fetches it again.
func retryCmd(cache *query.Cache, key string) tea.Cmd {
	return func() tea.Msg {
		cache.Invalidate(context.Background(), query.Exact(key))
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()
		cache.Load(ctx, key)
		return resourceMsg{key: key}
	}
}
