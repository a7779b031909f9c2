package cli

import (
	"context"

	"github.com/dmitrijs2005/rentadmin/internal/client/client"
)

func (a *App) getStatus() string {
	switch st := a.session.Snapshot(); {
	case st.Loading:
		return "(...) "
	case st.Authenticated && a.reports.RefreshError() != nil:
		return "(signed in, reports stale) "
	case st.Authenticated:
		return "(signed in) "
	default:
		return "(signed out) "
	}
}

// Root restores the persisted session, prompts for credentials when there
// is none, starts the reports poller and runs the REPL on stdin.
func (a *App) Root(ctx context.Context) {
	a.println("Rental admin console (type 'help' for commands)")

	if err := a.session.Init(ctx); err != nil {
		a.logger.Warn(ctx, "restore session", "error", err)
	}
	if !a.isLoggedIn() {
		_ = a.Login(ctx)
	}

	pollCtx, stop := context.WithCancel(ctx)
	defer stop()
	go a.reports.Poll(pollCtx, a.config.RefreshInterval, a.isLoggedIn, a.autoRefreshFailed)

	runREPL(ctx, a, a.getStatus, a.reader)
}

// autoRefreshFailed tells the admin that the reports list on screen is no
// longer current.
func (a *App) autoRefreshFailed(err error) {
	a.println("\nReports auto refresh failed:", client.UserMessage(err))
}
