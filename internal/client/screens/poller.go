package screens

import (
	"context"
	"errors"
	"time"
)

// Poll refreshes the reports screen every interval while auto refresh is
// on, the screen is visible and active, if set, returns true. It returns
// when ctx is done or the screen is closed. A failure is kept for
// RefreshError and passed to onErr, if set.
func (s *ReportsScreen) Poll(ctx context.Context, interval time.Duration, active func() bool, onErr func(error)) {
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}
	t := time.NewTicker(interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if !s.AutoRefreshing() || (active != nil && !active()) {
				s.mu.Lock()
				closed := s.closed
				s.mu.Unlock()
				if closed {
					return
				}
				continue
			}
			err := s.Refresh(ctx)
			switch {
			case errors.Is(err, ErrClosed):
				return
			case err != nil && ctx.Err() == nil:
				s.logger.Warn(ctx, "auto refresh failed", "error", err)
				s.setRefreshError(err)
				if onErr != nil {
					onErr(err)
				}
			}
		}
	}
}
