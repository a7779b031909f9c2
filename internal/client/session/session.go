// Package session holds the console's single authentication session. The
// token is persisted through the metadata repository on every transition,
// and any 401 from the API drops the session through Invalidate.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/rentadmin/internal/common"
	"github.com/dmitrijs2005/rentadmin/internal/logging"
	"github.com/golang-jwt/jwt/v5"
)

// TokenStore is the durable side of the session.
type TokenStore interface {
	LoadToken(ctx context.Context) (string, error)
	SaveToken(ctx context.Context, token string) error
	ClearToken(ctx context.Context) error
}

type Reason string

const (
	ReasonRestored     Reason = "restored"
	ReasonLogin        Reason = "login"
	ReasonLogout       Reason = "logout"
	ReasonUnauthorized Reason = "unauthorized"
	ReasonExpired      Reason = "expired"
)

// Event is delivered to subscribers after every state change.
type Event struct {
	Authenticated bool
	Reason        Reason
}

type State struct {
	Authenticated bool
	Token         string
	Loading       bool
}

// Store is safe for concurrent use. Listeners are called outside the lock.
type Store struct {
	mu        sync.Mutex
	tokens    TokenStore
	logger    logging.Logger
	now       func() time.Time
	token     string
	loading   bool
	listeners map[int]func(Event)
	nextID    int
}

func NewStore(tokens TokenStore, logger logging.Logger) *Store {
	if logger == nil {
		logger = logging.Nop{}
	}
	return &Store{
		tokens:    tokens,
		logger:    logger,
		now:       time.Now,
		loading:   true,
		listeners: map[int]func(Event){},
	}
}

// Init restores the persisted token. Until it returns, Loading reports true
// and the authentication state should be treated as unknown.
func (s *Store) Init(ctx context.Context) error {
	token, err := s.tokens.LoadToken(ctx)
	if err != nil && !errors.Is(err, common.ErrorNotFound) {
		s.setLoaded("")
		return fmt.Errorf("load session: %w", err)
	}

	if token != "" {
		if err := checkExpiry(token, s.now()); err != nil {
			s.logger.Info(ctx, "discarding persisted session", "reason", err)
			if cerr := s.tokens.ClearToken(ctx); cerr != nil {
				s.logger.Warn(ctx, "clear expired session", "error", cerr)
			}
			s.setLoaded("")
			s.notify(Event{Authenticated: false, Reason: ReasonExpired})
			return nil
		}
	}

	s.setLoaded(token)
	s.notify(Event{Authenticated: token != "", Reason: ReasonRestored})
	return nil
}

func (s *Store) setLoaded(token string) {
	s.mu.Lock()
	s.token = token
	s.loading = false
	s.mu.Unlock()
}

// Login persists token, then marks the session authenticated.
func (s *Store) Login(ctx context.Context, token string) error {
	if common.IsBlank(token) {
		return common.ErrInvalidToken
	}
	if err := s.tokens.SaveToken(ctx, token); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	s.mu.Lock()
	s.token = token
	s.loading = false
	s.mu.Unlock()

	s.notify(Event{Authenticated: true, Reason: ReasonLogin})
	return nil
}

func (s *Store) Logout(ctx context.Context) error {
	return s.drop(ctx, ReasonLogout)
}

// Invalidate is called by the API client on a 401.
func (s *Store) Invalidate(ctx context.Context) error {
	return s.drop(ctx, ReasonUnauthorized)
}

// drop clears memory state even when the durable delete fails, so a
// rejected token is never sent again by this process.
func (s *Store) drop(ctx context.Context, reason Reason) error {
	err := s.tokens.ClearToken(ctx)

	s.mu.Lock()
	was := s.token != ""
	s.token = ""
	s.loading = false
	s.mu.Unlock()

	if was || reason == ReasonLogout {
		s.notify(Event{Authenticated: false, Reason: reason})
	}
	if err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *Store) Authenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.loading && s.token != ""
}

func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return State{Authenticated: !s.loading && s.token != "", Token: s.token, Loading: s.loading}
}

// Subscribe registers fn for every future transition and returns a function
// that removes it.
func (s *Store) Subscribe(fn func(Event)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

func (s *Store) notify(ev Event) {
	s.mu.Lock()
	fns := make([]func(Event), 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(ev)
	}
}

// checkExpiry rejects JWTs whose exp claim has passed. Tokens that are not
// JWTs are opaque to the console and always accepted.
func checkExpiry(token string, now time.Time) error {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil
	}
	if !now.Before(exp.Time) {
		return common.ErrTokenExpired
	}
	return nil
}
