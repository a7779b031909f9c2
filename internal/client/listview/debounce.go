package listview

import (
	"sync"
	"time"
)

// DebounceDelay separates the search input from the effective query.
const DebounceDelay = 350 * time.Millisecond

// Debouncer runs only the last function passed to Trigger, once delay has
// passed without another Trigger. Each Trigger, Flush and Stop bumps seq, so
// a timer that fired while its successor was being armed does nothing.
type Debouncer struct {
	mu      sync.Mutex
	delay   time.Duration
	timer   *time.Timer
	pending func()
	seq     uint64
}

func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.seq++
	seq := d.seq
	d.pending = fn
	d.timer = time.AfterFunc(d.delay, func() { d.fire(seq) })
}

func (d *Debouncer) fire(seq uint64) {
	d.mu.Lock()
	if seq != d.seq {
		d.mu.Unlock()
		return
	}
	fn := d.take()
	d.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// take clears the pending function and returns it. d.mu must be held.
func (d *Debouncer) take() func() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.seq++
	fn := d.pending
	d.pending = nil
	return fn
}

// Flush runs the pending function now, if any.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	fn := d.take()
	d.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// Stop drops the pending function.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.take()
}

// Search pairs the immediate input with a debounced query on a View.
type Search[T any] struct {
	mu    sync.Mutex
	input string
	view  *View[T]
	deb   *Debouncer
}

func NewSearch[T any](view *View[T], delay time.Duration) *Search[T] {
	return &Search[T]{view: view, deb: NewDebouncer(delay)}
}

// Type records the immediate input; the view's query follows after the delay.
func (s *Search[T]) Type(input string) {
	s.mu.Lock()
	s.input = input
	s.mu.Unlock()
	s.deb.Trigger(func() { s.view.SetQuery(input) })
}

// Commit applies the current input right away.
func (s *Search[T]) Commit() {
	s.deb.Flush()
}

func (s *Search[T]) Input() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.input
}

func (s *Search[T]) Close() {
	s.deb.Stop()
}
