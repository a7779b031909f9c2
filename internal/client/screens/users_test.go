package screens

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/rentadmin/internal/client/models"
	"github.com/dmitrijs2005/rentadmin/internal/client/services"
	"github.com/dmitrijs2005/rentadmin/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedUsers(n int) []models.User {
	users := make([]models.User, n)
	for i := range users {
		role := models.RoleTenant
		if i%2 == 1 {
			role = models.RoleLandlord
		}
		users[i] = models.User{
			ID:          fmt.Sprintf("u%02d", i),
			DisplayName: fmt.Sprintf("User %02d", i),
			Email:       fmt.Sprintf("user%02d@rent.example", i),
			Role:        role,
			Status:      models.UserStatusActive,
			CreatedAt:   time.Date(2026, 1, 1+i, 0, 0, 0, 0, time.UTC),
		}
	}
	return users
}

func userIDs(users []models.User) []string {
	out := make([]string, len(users))
	for i, u := range users {
		out[i] = u.ID
	}
	return out
}

func openUsers(t *testing.T, n int) (*UsersScreen, func() []models.User, func(method, route string, status int)) {
	t.Helper()
	srv, c := backend(t)
	srv.Users = seedUsers(n)

	s := NewUsersScreen(services.NewUserService(c), time.Millisecond, nil)
	t.Cleanup(s.Close)
	require.NoError(t, s.Load(context.Background()))
	fail := func(method, route string, status int) { srv.FailNext(method, route, status, "nope") }
	return s, func() []models.User { return srv.Users }, fail
}

func TestUsersScreen_FilterIsNonDestructive(t *testing.T) {
	s, _, _ := openUsers(t, 30)
	require.NoError(t, s.SetPageSize(50))
	before := userIDs(s.Page().Items)

	s.Search("user 1")
	assert.Equal(t, 10, s.Page().Total)

	s.Search("")
	assert.Equal(t, before, userIDs(s.Page().Items))
}

func TestUsersScreen_RoleAndStatusFilters(t *testing.T) {
	s, _, _ := openUsers(t, 30)
	s.SetPage(3)

	s.FilterRole(models.RoleLandlord)
	p := s.Page()
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 15, p.Total)

	s.FilterStatus(models.UserStatusBanned)
	assert.Zero(t, s.Page().Total)

	s.FilterStatus("")
	s.FilterRole("")
	assert.Equal(t, 30, s.Page().Total)
}

func TestUsersScreen_SortCycleRestoresServerOrder(t *testing.T) {
	s, _, _ := openUsers(t, 5)
	server := userIDs(s.Page().Items)

	_, err := s.Sort("created")
	require.NoError(t, err)
	_, err = s.Sort("created")
	require.NoError(t, err)
	assert.Equal(t, []string{"u04", "u03", "u02", "u01", "u00"}, userIDs(s.Page().Items))

	_, err = s.Sort("created")
	require.NoError(t, err)
	assert.Equal(t, server, userIDs(s.Page().Items))
}

func TestUsersScreen_DeleteConfirmed(t *testing.T) {
	s, serverUsers, _ := openUsers(t, 3)
	c := &confirmer{yes: true}

	require.NoError(t, s.Delete(context.Background(), "u01", c.confirm))
	require.Len(t, c.shown, 1)
	assert.True(t, c.shown[0].Destructive)
	assert.Contains(t, c.shown[0].Message, "User 01")
	assert.Equal(t, []string{"u00", "u02"}, userIDs(s.Items()))
	assert.Equal(t, []string{"u00", "u02"}, userIDs(serverUsers()))
}

func TestUsersScreen_DeleteDeclinedSendsNothing(t *testing.T) {
	s, serverUsers, _ := openUsers(t, 3)

	err := s.Delete(context.Background(), "u01", (&confirmer{}).confirm)
	require.ErrorIs(t, err, ErrCanceled)
	assert.Len(t, s.Items(), 3)
	assert.Len(t, serverUsers(), 3)
}

func TestUsersScreen_FailedDeleteReappears(t *testing.T) {
	s, _, fail := openUsers(t, 3)
	fail(http.MethodDelete, "/users/:id", http.StatusInternalServerError)

	err := s.Delete(context.Background(), "u01", (&confirmer{yes: true}).confirm)
	require.Error(t, err)
	assert.Equal(t, []string{"u00", "u01", "u02"}, userIDs(s.Items()))
}

func TestUsersScreen_BanFailureRestoresRow(t *testing.T) {
	s, _, fail := openUsers(t, 2)
	fail(http.MethodPut, "/users/:id/ban", http.StatusConflict)

	require.Error(t, s.Ban(context.Background(), "u00"))
	assert.Equal(t, models.UserStatusActive, s.Items()[0].Status)

	require.NoError(t, s.Ban(context.Background(), "u00"))
	assert.True(t, s.Items()[0].Banned())
	require.NoError(t, s.Unban(context.Background(), "u00"))
	assert.False(t, s.Items()[0].Banned())
}

func TestUsersScreen_UnknownUser(t *testing.T) {
	s, _, _ := openUsers(t, 1)
	require.ErrorIs(t, s.Ban(context.Background(), "nobody"), common.ErrorNotFound)
}

// blockingUsers lets a test hold List or Delete open.
type blockingUsers struct {
	services.UserService
	mu       sync.Mutex
	users    []models.User
	release  chan struct{}
	entered  chan struct{}
	deleteFn func() error
}

func (b *blockingUsers) List(context.Context) ([]models.User, error) {
	if b.entered != nil {
		b.entered <- struct{}{}
		<-b.release
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]models.User(nil), b.users...), nil
}

func (b *blockingUsers) Delete(context.Context, string) error {
	return b.deleteFn()
}

func TestUsersScreen_RowGoneWhileDeleteInFlight(t *testing.T) {
	svc := &blockingUsers{users: seedUsers(2)}
	s := NewUsersScreen(svc, time.Millisecond, nil)
	require.NoError(t, s.Load(context.Background()))

	var during []models.User
	svc.deleteFn = func() error {
		during = s.Items()
		return nil
	}
	require.NoError(t, s.Delete(context.Background(), "u00", Direct))
	assert.Equal(t, []string{"u01"}, userIDs(during))
}

func TestUsersScreen_ResponseAfterCloseIsDropped(t *testing.T) {
	svc := &blockingUsers{
		users:   seedUsers(2),
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
	s := NewUsersScreen(svc, time.Millisecond, nil)

	done := make(chan error, 1)
	go func() { done <- s.Load(context.Background()) }()
	<-svc.entered
	s.Close()
	close(svc.release)

	require.NoError(t, <-done)
	assert.Empty(t, s.Items())
	assert.False(t, s.Loaded())
	require.True(t, errors.Is(s.Load(context.Background()), ErrClosed))
}

// slowRefetch is a UserService whose Delete always fails and whose second
// List call, the refetch after that failure, blocks until release.
type slowRefetch struct {
	services.UserService
	mu      sync.Mutex
	calls   int
	users   []models.User
	stale   []models.User
	entered chan struct{}
	release chan struct{}
}

func (f *slowRefetch) List(context.Context) ([]models.User, error) {
	f.mu.Lock()
	f.calls++
	n := f.calls
	f.mu.Unlock()
	if n == 2 {
		f.entered <- struct{}{}
		<-f.release
		return f.stale, nil
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.User(nil), f.users...), nil
}

func (f *slowRefetch) Delete(context.Context, string) error {
	return errors.New("storage offline")
}

func (f *slowRefetch) setUsers(users []models.User) {
	f.mu.Lock()
	f.users = users
	f.mu.Unlock()
}

func TestUsersScreen_LateRefetchIsDropped(t *testing.T) {
	tests := []struct {
		name     string
		meantime func(t *testing.T, s *UsersScreen, svc *slowRefetch)
		want     []string
	}{
		{
			name: "screen closed",
			meantime: func(_ *testing.T, s *UsersScreen, _ *slowRefetch) {
				s.Close()
			},
			want: []string{"u01", "u02"},
		},
		{
			name: "newer load",
			meantime: func(t *testing.T, s *UsersScreen, svc *slowRefetch) {
				svc.setUsers(seedUsers(2))
				require.NoError(t, s.Load(context.Background()))
			},
			want: []string{"u00", "u01"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &slowRefetch{
				users:   seedUsers(3),
				stale:   seedUsers(5),
				entered: make(chan struct{}),
				release: make(chan struct{}),
			}
			s := NewUsersScreen(svc, time.Millisecond, nil)
			t.Cleanup(s.Close)
			require.NoError(t, s.Load(context.Background()))

			done := make(chan error, 1)
			go func() { done <- s.Delete(context.Background(), "u00", Direct) }()
			<-svc.entered

			tt.meantime(t, s, svc)
			close(svc.release)

			require.Error(t, <-done)
			assert.ElementsMatch(t, tt.want, userIDs(s.Items()))
		})
	}
}
