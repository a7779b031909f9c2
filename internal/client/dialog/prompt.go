package dialog

import (
	"context"
	"fmt"
	"io"
	"strings"
)

// AskFunc reads one line of input after showing prompt.
type AskFunc func(prompt string) (string, error)

// Prompter renders a Confirm as a y/N question on a line terminal.
type Prompter struct {
	Ask AskFunc
	Out io.Writer
}

// Run opens d with opts and asks until the admin confirms successfully or
// declines. An empty answer picks the focused button. It returns the last
// confirm error when the admin gives up after a failure.
func (p Prompter) Run(ctx context.Context, d *Confirm, opts Options) (bool, error) {
	if err := d.Open(opts); err != nil {
		return false, err
	}
	opts = d.Options()

	for {
		if err := ctx.Err(); err != nil {
			d.Cancel()
			return false, err
		}

		hint := "[y/N]"
		if d.Focus() == FocusConfirm {
			hint = "[Y/n]"
		}
		prompt := fmt.Sprintf("%s (%s/%s) %s: ", p.question(opts), opts.ConfirmLabel, opts.CancelLabel, hint)

		answer, err := p.Ask(prompt)
		if err != nil {
			last := d.Err()
			d.Cancel()
			if last != nil {
				return false, last
			}
			return false, err
		}

		if !p.accepts(answer, d.Focus()) {
			last := d.Err()
			d.Cancel()
			return false, last
		}

		if err := d.Confirm(ctx); err != nil {
			fmt.Fprintf(p.Out, "%s failed: %v\n", opts.ConfirmLabel, err)
			continue
		}
		return true, nil
	}
}

func (p Prompter) question(opts Options) string {
	q := opts.Message
	if opts.Title != "" {
		q = opts.Title + ": " + q
	}
	if opts.Destructive {
		q = "!! " + q
	}
	return q
}

func (p Prompter) accepts(answer string, focus Focus) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	case "":
		return focus == FocusConfirm
	default:
		return false
	}
}
