package screens

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/rentadmin/internal/client/listview"
	"github.com/dmitrijs2005/rentadmin/internal/client/reconcile"
	"github.com/dmitrijs2005/rentadmin/internal/logging"
)

// listScreen is the shared machinery of the users and properties screens:
// the whole collection is fetched and filtered, sorted and paged locally.
type listScreen[T any] struct {
	fetch  func(ctx context.Context) ([]T, error)
	view   *listview.View[T]
	search *listview.Search[T]
	logger logging.Logger

	mu     sync.Mutex
	gen    uint64
	closed bool
	loaded bool
}

func newListScreen[T any](cfg listview.Config[T], fetch func(ctx context.Context) ([]T, error), debounce time.Duration, logger logging.Logger) *listScreen[T] {
	if logger == nil {
		logger = logging.Nop{}
	}
	if debounce <= 0 {
		debounce = listview.DebounceDelay
	}
	v := listview.New(cfg)
	return &listScreen[T]{
		fetch:  fetch,
		view:   v,
		search: listview.NewSearch(v, debounce),
		logger: logger,
	}
}

// Load fetches the full collection. A response that lost the race to a
// newer Load, or that arrives after Close, is dropped.
func (l *listScreen[T]) Load(ctx context.Context) error {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return ErrClosed
	}
	l.gen++
	gen := l.gen
	l.mu.Unlock()

	items, err := l.fetch(ctx)

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed || gen != l.gen {
		l.logger.Debug(ctx, "dropping stale list response", "generation", gen)
		return nil
	}
	if err != nil {
		return err
	}
	l.view.SetItems(items)
	l.loaded = true
	return nil
}

func (l *listScreen[T]) Loaded() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loaded
}

func (l *listScreen[T]) Page() listview.Page[T] {
	return l.view.Current()
}

func (l *listScreen[T]) Sort(key string) (listview.Sort, error) {
	return l.view.ToggleSort(key)
}

func (l *listScreen[T]) SetPageSize(n int) error {
	return l.view.SetPageSize(n)
}

func (l *listScreen[T]) SetPage(n int) int {
	return l.view.SetPage(n)
}

func (l *listScreen[T]) NextPage() int {
	return l.view.NextPage()
}

func (l *listScreen[T]) PrevPage() int {
	return l.view.PrevPage()
}

// Type feeds the search box; the effective query follows after the debounce.
func (l *listScreen[T]) Type(input string) {
	l.search.Type(input)
}

// Search applies q immediately.
func (l *listScreen[T]) Search(q string) {
	l.search.Type(q)
	l.search.Commit()
}

func (l *listScreen[T]) Query() string {
	return l.view.Query()
}

func (l *listScreen[T]) Items() []T {
	return l.view.Items()
}

func (l *listScreen[T]) Close() {
	l.mu.Lock()
	l.closed = true
	l.mu.Unlock()
	l.search.Close()
}

func (l *listScreen[T]) mutate(ctx context.Context, local func([]T) []T, remote func(context.Context) error, fallback reconcile.Fallback[T]) error {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return ErrClosed
	}
	gen := l.gen
	l.mu.Unlock()
	return reconcile.Apply(ctx, liveStore[T]{l: l, gen: gen}, local, remote, fallback)
}

func (l *listScreen[T]) refetch() reconcile.Fallback[T] {
	return reconcile.Refetch(l.fetch)
}

// liveStore writes to the view only while the screen is open and no Load
// has started since gen. A fallback that finishes after Close or after a
// newer Load leaves the view alone.
type liveStore[T any] struct {
	l   *listScreen[T]
	gen uint64
}

func (s liveStore[T]) Items() []T {
	return s.l.view.Items()
}

func (s liveStore[T]) SetItems(items []T) {
	s.l.mu.Lock()
	defer s.l.mu.Unlock()
	if s.l.closed || s.gen != s.l.gen {
		return
	}
	s.l.view.SetItems(items)
}
