// Package session holds the client's single authoritative identity: the
// bearer token and the user it was confirmed for.
//
// A Session moves between three states:
//
//	Anonymous -> Restoring      Restore found a persisted token
//	Restoring -> Authenticated  the server confirmed it
//	Restoring -> Anonymous      the server rejected it (silently) or was unreachable
//	Anonymous -> Authenticated  Login or Register succeeded
//	*         -> Anonymous      Logout, or Reject of the current token
//
// A Session is passed explicitly to whatever needs a token; nothing in the
// client reads identity from package state.
package session

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/tasktracker/internal/client/models"
	"github.com/dmitrijs2005/tasktracker/internal/common"
	"github.com/dmitrijs2005/tasktracker/internal/logging"
)

type State int

const (
	Anonymous State = iota
	Restoring
	Authenticated
)

func (s State) String() string {
	switch s {
	case Restoring:
		return "restoring"
	case Authenticated:
		return "authenticated"
	default:
		return "anonymous"
	}
}

// API is the part of the REST client the session needs.
type API interface {
	Register(ctx context.Context, name, email, password string) (*models.Session, error)
	Login(ctx context.Context, email, password string) (*models.Session, error)
	Me(ctx context.Context, token string) (*models.User, error)
	UpdateProfile(ctx context.Context, token string, update models.ProfileUpdate) (*models.User, error)
}

// TokenStore persists the token across process restarts.
type TokenStore interface {
	LoadToken(ctx context.Context) (string, error)
	SaveToken(ctx context.Context, token string) error
	ClearToken(ctx context.Context) error
}

type Session struct {
	api    API
	store  TokenStore
	logger logging.Logger

	mu        sync.RWMutex
	state     State
	epoch     uint64
	token     string
	user      models.User
	onSignOut []func()
}

func New(api API, store TokenStore, l logging.Logger) *Session {
	return &Session{api: api, store: store, logger: l.With("module", "session")}
}

func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// User returns the confirmed identity; ok is false unless authenticated.
func (s *Session) User() (user models.User, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user, s.state == Authenticated
}

// Token returns common.ErrNotAuthenticated unless the session is
// authenticated. A token still being restored is not usable yet.
func (s *Session) Token() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state != Authenticated {
		return "", common.ErrNotAuthenticated
	}
	return s.token, nil
}

// OnSignOut registers fn to run after every transition to Anonymous caused
// by Logout or Reject. Listeners run synchronously, outside the lock.
func (s *Session) OnSignOut(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onSignOut = append(s.onSignOut, fn)
}

// Restore confirms a persisted token with the server. An auth rejection
// clears the stored token and returns nil. Any other failure leaves the
// stored token in place for the next attempt and is returned.
func (s *Session) Restore(ctx context.Context) error {
	s.mu.RLock()
	state, epoch := s.state, s.epoch
	s.mu.RUnlock()
	if state != Anonymous {
		return nil
	}

	token, err := s.store.LoadToken(ctx)
	if err != nil || token == "" {
		return err
	}

	s.mu.Lock()
	// Login, Register or Logout ran during the read.
	if s.state != Anonymous || s.epoch != epoch {
		s.mu.Unlock()
		return nil
	}
	s.state = Restoring
	s.mu.Unlock()

	user, err := s.api.Me(ctx, token)

	s.mu.Lock()
	defer s.mu.Unlock()

	// Login, Register or Logout won while we were waiting.
	if s.state != Restoring {
		return nil
	}

	if err != nil {
		s.state = Anonymous
		if common.KindOf(err) == common.KindAuth {
			s.logger.Info(ctx, "stored session rejected")
			if cerr := s.store.ClearToken(ctx); cerr != nil {
				s.logger.Warn(ctx, "failed to clear stored token", "error", cerr)
			}
			return nil
		}
		return err
	}

	s.state = Authenticated
	s.token = token
	s.user = *user
	return nil
}

func (s *Session) Login(ctx context.Context, email, password string) (*models.User, error) {
	if s.State() == Authenticated {
		return nil, common.ErrAlreadyAuthenticated
	}

	res, err := s.api.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return s.authenticate(ctx, res), nil
}

func (s *Session) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	if s.State() == Authenticated {
		return nil, common.ErrAlreadyAuthenticated
	}

	res, err := s.api.Register(ctx, name, email, password)
	if err != nil {
		return nil, err
	}
	return s.authenticate(ctx, res), nil
}

// authenticate keeps the token in memory even if persisting it fails; the
// session then simply does not survive a restart.
func (s *Session) authenticate(ctx context.Context, res *models.Session) *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.SaveToken(ctx, res.Token); err != nil {
		s.logger.Warn(ctx, "failed to persist token", "error", err)
	}

	s.state = Authenticated
	s.epoch++
	s.token = res.Token
	s.user = res.User

	user := res.User
	return &user
}

// UpdateProfile sends only the supplied fields and merges the returned user.
func (s *Session) UpdateProfile(ctx context.Context, update models.ProfileUpdate) (*models.User, error) {
	token, err := s.Token()
	if err != nil {
		return nil, err
	}

	user, err := s.api.UpdateProfile(ctx, token, update)
	if err != nil {
		if common.KindOf(err) == common.KindAuth {
			s.Reject(token)
		}
		return nil, err
	}

	s.mu.Lock()
	if s.state == Authenticated && s.token == token {
		s.user = *user
	}
	s.mu.Unlock()

	return user, nil
}

// Logout discards the identity and the persisted token without a server
// call. The in-memory state is cleared even when the store fails.
func (s *Session) Logout(ctx context.Context) error {
	s.mu.Lock()
	listeners := s.signOutLocked()
	err := s.store.ClearToken(ctx)
	s.mu.Unlock()

	notify(listeners)
	return err
}

// Reject signs out if token is still the current one. It is called when the
// server answers a request made with token with an auth error; a stale
// rejection never affects a newer login.
func (s *Session) Reject(token string) {
	ctx := context.Background()

	s.mu.Lock()
	if s.state != Authenticated || s.token != token {
		s.mu.Unlock()
		return
	}
	listeners := s.signOutLocked()
	if err := s.store.ClearToken(ctx); err != nil {
		s.logger.Warn(ctx, "failed to clear rejected token", "error", err)
	}
	s.mu.Unlock()

	s.logger.Info(ctx, "session rejected by server")
	notify(listeners)
}

func (s *Session) signOutLocked() []func() {
	s.state = Anonymous
	s.epoch++
	s.token = ""
	s.user = models.User{}
	return append([]func(){}, s.onSignOut...)
}

func notify(listeners []func()) {
	for _, fn := range listeners {
		fn()
	}
}
