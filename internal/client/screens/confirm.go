// Package screens holds the console's stateful views. Each screen owns its
// fetched data and local state, guards it with a mutex, and drops responses
// that arrive after it was closed or after a newer request was started.
package screens

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/rentadmin/internal/client/dialog"
)

var (
	ErrCanceled = errors.New("canceled")
	ErrClosed   = errors.New("screen is closed")
)

// Confirmer shows a confirmation dialog for opts and reports whether the
// admin confirmed. A true result means opts.OnConfirm ran and succeeded.
type Confirmer func(ctx context.Context, opts dialog.Options) (bool, error)

func confirm(ctx context.Context, c Confirmer, opts dialog.Options) error {
	ok, err := c(ctx, opts)
	if err != nil {
		return err
	}
	if !ok {
		return ErrCanceled
	}
	return nil
}

// Direct runs OnConfirm without asking. Used when the admin already
// confirmed up front, e.g. with a --yes flag.
func Direct(ctx context.Context, opts dialog.Options) (bool, error) {
	if opts.OnConfirm == nil {
		return true, nil
	}
	if err := opts.OnConfirm(ctx); err != nil {
		return false, err
	}
	return true, nil
}
