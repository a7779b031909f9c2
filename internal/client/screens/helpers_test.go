package screens

import (
	"context"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/rentadmin/internal/client/client"
	"github.com/dmitrijs2005/rentadmin/internal/client/dialog"
	"github.com/dmitrijs2005/rentadmin/internal/testserver"
	"github.com/stretchr/testify/require"
)

type staticSession struct {
	mu    sync.Mutex
	token string
}

func (s *staticSession) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

func (s *staticSession) Invalidate(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	return nil
}

// backend starts the fake REST backend and returns a client bound to it.
func backend(t *testing.T) (*testserver.Server, *client.HTTPClient) {
	t.Helper()
	srv := testserver.New()
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	c, err := client.NewHTTPClient(ts.URL+"/api", &staticSession{token: srv.IssueToken(time.Hour)}, 5*time.Second)
	require.NoError(t, err)
	return srv, c
}

// confirmer records the dialogs it was shown and answers with yes.
type confirmer struct {
	yes   bool
	shown []dialog.Options
}

func (c *confirmer) confirm(ctx context.Context, opts dialog.Options) (bool, error) {
	c.shown = append(c.shown, opts)
	if !c.yes {
		return false, nil
	}
	return Direct(ctx, opts)
}
