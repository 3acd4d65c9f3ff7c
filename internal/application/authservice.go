package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/ericfisherdev/sessionpanel/internal/domain/model"
	"github.com/ericfisherdev/sessionpanel/internal/domain/port/driven"
)

// AuthService performs login and logout against the backend and keeps the
// SessionStore and SessionBus subscribers consistent.
type AuthService struct {
	store     driven.SessionStore
	api       driven.AuthAPI
	bus       *SessionBus
	inspector driven.TokenInspector
	logger    *slog.Logger

	mu   sync.RWMutex
	last model.LoginAttempt
}

// NewAuthService creates an AuthService. inspector may be nil, in which case
// SessionView never carries token metadata.
func NewAuthService(
	store driven.SessionStore,
	api driven.AuthAPI,
	bus *SessionBus,
	inspector driven.TokenInspector,
	logger *slog.Logger,
) *AuthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthService{
		store:     store,
		api:       api,
		bus:       bus,
		inspector: inspector,
		logger:    logger,
		last:      model.LoginAttempt{Status: model.StatusIdle},
	}
}

// Login validates the credentials, exchanges them for a token and stores the
// resulting session. The session is stored before the change is published, so
// subscribers that re-read the store observe the new session. Credentials are
// never logged.
func (s *AuthService) Login(ctx context.Context, username, password string) (model.LoginAttempt, error) {
	username = strings.TrimSpace(username)
	if username == "" || strings.TrimSpace(password) == "" {
		return s.finish(model.LoginAttempt{Username: username, Status: model.StatusFailed, Err: model.ErrValidation})
	}

	s.record(model.LoginAttempt{Username: username, Status: model.StatusInFlight})

	token, err := s.api.Login(ctx, username, password)
	if err != nil {
		s.logger.Warn("login failed", "kind", model.ErrorKind(err))
		return s.finish(model.LoginAttempt{Username: username, Status: model.StatusFailed, Err: err})
	}

	if err := s.store.Set(ctx, token, username); err != nil {
		s.logger.Error("failed to store session", "error", err)
		return s.finish(model.LoginAttempt{
			Username: username,
			Status:   model.StatusFailed,
			Err:      fmt.Errorf("storing session: %w", err),
		})
	}

	attempt, _ := s.finish(model.LoginAttempt{Username: username, Status: model.StatusSucceeded})
	s.logger.Info("login succeeded")
	s.bus.Publish(model.SessionChange{LoggedIn: true, Identity: username})

	return attempt, nil
}

// Logout clears the stored session and publishes a logged-out change. It never
// contacts the backend and publishes exactly once per call.
func (s *AuthService) Logout(ctx context.Context) error {
	if err := s.store.Clear(ctx); err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}

	s.record(model.LoginAttempt{Status: model.StatusIdle})
	s.logger.Info("logged out")
	s.bus.Publish(model.SessionChange{LoggedIn: false})

	return nil
}

// Current returns the stored session, or nil when logged out.
func (s *AuthService) Current(ctx context.Context) (*model.Session, error) {
	sess, err := s.store.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading session: %w", err)
	}
	return sess, nil
}

// LastAttempt returns the most recent login attempt, or an idle attempt.
func (s *AuthService) LastAttempt() model.LoginAttempt {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.last
}

// SessionView bundles what the login panel needs to render.
type SessionView struct {
	Session     *model.Session
	TokenInfo   *model.TokenInfo // nil for opaque tokens or when logged out
	LastAttempt model.LoginAttempt
}

// View reads the current session and decorates it with token metadata when
// the token can be decoded.
func (s *AuthService) View(ctx context.Context) (SessionView, error) {
	sess, err := s.Current(ctx)
	if err != nil {
		return SessionView{}, err
	}

	view := SessionView{Session: sess, LastAttempt: s.LastAttempt()}
	if sess.LoggedIn() && s.inspector != nil {
		if info, err := s.inspector.Inspect(sess.Token); err == nil {
			view.TokenInfo = &info
		}
	}
	return view, nil
}

func (s *AuthService) record(a model.LoginAttempt) {
	s.mu.Lock()
	s.last = a
	s.mu.Unlock()
}

func (s *AuthService) finish(a model.LoginAttempt) (model.LoginAttempt, error) {
	s.record(a)
	return a, a.Err
}
