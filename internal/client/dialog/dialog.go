// Package dialog implements the confirmation dialog used before destructive
// actions. The dialog is closed, open and idle, or open and busy while its
// confirm action runs; a busy dialog ignores every way of dismissing it.
package dialog

import (
	"context"
	"errors"
	"sync"
)

var (
	ErrNotOpen     = errors.New("dialog is not open")
	ErrAlreadyOpen = errors.New("dialog is already open")
	ErrBusy        = errors.New("dialog is busy")
)

type State int

const (
	Closed State = iota
	Idle
	Busy
)

func (s State) String() string {
	switch s {
	case Idle:
		return "open"
	case Busy:
		return "busy"
	default:
		return "closed"
	}
}

// Focus is the element that holds keyboard focus while the dialog is open.
type Focus int

const (
	FocusConfirm Focus = iota
	FocusCancel
	FocusContainer
)

type Key int

const (
	KeyTab Key = iota
	KeyShiftTab
	KeyEscape
)

type Options struct {
	Title        string
	Message      string
	ConfirmLabel string
	CancelLabel  string
	Destructive  bool
	InitialFocus Focus
	OnConfirm    func(ctx context.Context) error
}

type Confirm struct {
	mu    sync.Mutex
	state State
	focus Focus
	opts  Options
	err   error
}

func New() *Confirm {
	return &Confirm{}
}

func (d *Confirm) Open(opts Options) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state != Closed {
		return ErrAlreadyOpen
	}
	if opts.ConfirmLabel == "" {
		opts.ConfirmLabel = "Confirm"
	}
	if opts.CancelLabel == "" {
		opts.CancelLabel = "Cancel"
	}
	d.opts = opts
	d.focus = opts.InitialFocus
	d.err = nil
	d.state = Idle
	return nil
}

// Confirm runs OnConfirm. The dialog closes on success; on failure it goes
// back to idle and keeps the error so the admin can retry or cancel.
func (d *Confirm) Confirm(ctx context.Context) error {
	d.mu.Lock()
	switch d.state {
	case Closed:
		d.mu.Unlock()
		return ErrNotOpen
	case Busy:
		d.mu.Unlock()
		return ErrBusy
	}
	d.state = Busy
	d.err = nil
	action := d.opts.OnConfirm
	d.mu.Unlock()

	var err error
	if action != nil {
		err = action(ctx)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if err != nil {
		d.state = Idle
		d.err = err
		return err
	}
	d.close()
	return nil
}

// Cancel closes an idle dialog. It reports whether the dialog closed.
func (d *Confirm) Cancel() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state != Idle {
		return false
	}
	d.close()
	return true
}

// Backdrop is a click outside the dialog.
func (d *Confirm) Backdrop() bool {
	return d.Cancel()
}

// HandleKey applies Escape and the Tab focus trap.
func (d *Confirm) HandleKey(k Key) bool {
	if k == KeyEscape {
		return d.Cancel()
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state == Closed {
		return false
	}
	switch {
	case d.focus == FocusContainer && k == KeyTab:
		d.focus = FocusConfirm
	case d.focus == FocusContainer && k == KeyShiftTab:
		d.focus = FocusCancel
	case d.focus == FocusConfirm:
		d.focus = FocusCancel
	default:
		d.focus = FocusConfirm
	}
	return true
}

func (d *Confirm) close() {
	d.state = Closed
	d.opts = Options{}
	d.focus = FocusConfirm
	d.err = nil
}

func (d *Confirm) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

func (d *Confirm) Focus() Focus {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.focus
}

// Err is the error of the last failed confirm, cleared on retry or close.
func (d *Confirm) Err() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.err
}

// ActionsEnabled is false while the confirm action is in flight.
func (d *Confirm) ActionsEnabled() bool {
	return d.State() == Idle
}

func (d *Confirm) Options() Options {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.opts
}
