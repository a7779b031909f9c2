// Package listview is the client-side filter/sort/paginate engine behind
// the users and properties screens. The full collection is fetched once;
// every change of query, filter, sort or page size recomputes the view.
package listview

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
)

var (
	ErrInvalidPageSize = errors.New("invalid page size")
	ErrUnknownSortKey  = errors.New("unknown sort key")
)

// PageSizes are the selectable page sizes.
var PageSizes = []int{10, 25, 50, 100}

const DefaultPageSize = 10

type SortDir int

const (
	SortNone SortDir = iota
	SortAsc
	SortDesc
)

func (d SortDir) String() string {
	switch d {
	case SortAsc:
		return "asc"
	case SortDesc:
		return "desc"
	default:
		return "none"
	}
}

type Sort struct {
	Key string
	Dir SortDir
}

// Config describes how items of type T are searched and ordered.
type Config[T any] struct {
	// Match reports whether item matches the lower-cased, trimmed query.
	Match func(item T, query string) bool
	// Compare holds one three-way comparison per sort key.
	Compare map[string]func(a, b T) int
}

// Page is one computed slice of the view.
type Page[T any] struct {
	Items     []T
	Page      int
	PageCount int
	PageSize  int
	// Total counts items after filtering, before pagination.
	Total int
	Sort  Sort
}

type View[T any] struct {
	mu       sync.Mutex
	cfg      Config[T]
	items    []T
	query    string
	filters  map[string]func(T) bool
	sort     Sort
	page     int
	pageSize int
}

func New[T any](cfg Config[T]) *View[T] {
	return &View[T]{
		cfg:      cfg,
		filters:  map[string]func(T) bool{},
		page:     1,
		pageSize: DefaultPageSize,
	}
}

// SetItems replaces the collection, keeping server order.
func (v *View[T]) SetItems(items []T) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.items = slices.Clone(items)
}

// Items returns a copy of the collection in server order.
func (v *View[T]) Items() []T {
	v.mu.Lock()
	defer v.mu.Unlock()
	return slices.Clone(v.items)
}

// Update applies fn to the collection under the lock.
func (v *View[T]) Update(fn func(items []T) []T) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.items = fn(v.items)
}

func (v *View[T]) SetQuery(q string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	q = strings.ToLower(strings.TrimSpace(q))
	if q != v.query {
		v.query = q
		v.page = 1
	}
}

func (v *View[T]) Query() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.query
}

// SetFilter installs a named predicate; nil removes it.
func (v *View[T]) SetFilter(name string, pred func(T) bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if pred == nil {
		delete(v.filters, name)
	} else {
		v.filters[name] = pred
	}
	v.page = 1
}

// ToggleSort cycles key asc -> desc -> none. Selecting another key starts
// it at asc.
func (v *View[T]) ToggleSort(key string) (Sort, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if _, ok := v.cfg.Compare[key]; !ok {
		return v.sort, fmt.Errorf("%w: %q", ErrUnknownSortKey, key)
	}
	switch {
	case v.sort.Key != key || v.sort.Dir == SortNone:
		v.sort = Sort{Key: key, Dir: SortAsc}
	case v.sort.Dir == SortAsc:
		v.sort.Dir = SortDesc
	default:
		v.sort = Sort{}
	}
	return v.sort, nil
}

func (v *View[T]) SetPageSize(n int) error {
	if !slices.Contains(PageSizes, n) {
		return fmt.Errorf("%w: %d (one of %v)", ErrInvalidPageSize, n, PageSizes)
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	v.pageSize = n
	v.page = 1
	return nil
}

// SetPage moves to page n, clamped to the valid range, and returns the
// page actually selected.
func (v *View[T]) SetPage(n int) int {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.page = clamp(n, pageCount(len(v.filtered()), v.pageSize))
	return v.page
}

func (v *View[T]) NextPage() int {
	v.mu.Lock()
	p := v.page
	v.mu.Unlock()
	return v.SetPage(p + 1)
}

func (v *View[T]) PrevPage() int {
	v.mu.Lock()
	p := v.page
	v.mu.Unlock()
	return v.SetPage(p - 1)
}

// Current computes the visible page.
func (v *View[T]) Current() Page[T] {
	v.mu.Lock()
	defer v.mu.Unlock()

	rows := v.filtered()
	v.sortRows(rows)

	count := pageCount(len(rows), v.pageSize)
	v.page = clamp(v.page, count)

	from := (v.page - 1) * v.pageSize
	to := min(from+v.pageSize, len(rows))
	return Page[T]{
		Items:     rows[from:to],
		Page:      v.page,
		PageCount: count,
		PageSize:  v.pageSize,
		Total:     len(rows),
		Sort:      v.sort,
	}
}

func (v *View[T]) filtered() []T {
	out := make([]T, 0, len(v.items))
	names := make([]string, 0, len(v.filters))
	for n := range v.filters {
		names = append(names, n)
	}
	slices.Sort(names)

next:
	for _, it := range v.items {
		if v.query != "" && v.cfg.Match != nil && !v.cfg.Match(it, v.query) {
			continue
		}
		for _, n := range names {
			if !v.filters[n](it) {
				continue next
			}
		}
		out = append(out, it)
	}
	return out
}

func (v *View[T]) sortRows(rows []T) {
	if v.sort.Dir == SortNone {
		return
	}
	cmp := v.cfg.Compare[v.sort.Key]
	if v.sort.Dir == SortDesc {
		slices.SortStableFunc(rows, func(a, b T) int { return cmp(b, a) })
		return
	}
	slices.SortStableFunc(rows, cmp)
}

func pageCount(total, size int) int {
	if total == 0 {
		return 1
	}
	return (total + size - 1) / size
}

func clamp(page, count int) int {
	return max(1, min(page, count))
}

// Contains is a case-insensitive substring test for Match implementations.
func Contains(field, query string) bool {
	return strings.Contains(strings.ToLower(field), query)
}
