package adapter

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/HISP-Uganda/fieldsync/internal/logger"
)

// SessionClient is the process-wide handle to the remote platform. The
// server permits one authenticated identity at a time, so every component
// shares this single client instead of holding engines directly.
//
// All mutating operations take the internal lock for their full duration so
// that a (re)initialize or login is observed as atomic by concurrent
// callers; IsSessionActive and Engine only read the once-set engine field.
type SessionClient struct {
	factory func() (RemoteEngine, error)
	log     *logger.Logger

	mu     sync.RWMutex
	engine RemoteEngine
}

// NewSessionClient builds a SessionClient whose engine is constructed
// lazily by Initialize from cfg.
func NewSessionClient(cfg EngineConfig, log *logger.Logger) *SessionClient {
	return &SessionClient{
		factory: func() (RemoteEngine, error) {
			return NewHTTPRemoteEngine(cfg, log), nil
		},
		log: log,
	}
}

// NewSessionClientWithFactory is the injection seam used by tests and by
// callers that bring their own engine construction.
func NewSessionClientWithFactory(factory func() (RemoteEngine, error), log *logger.Logger) *SessionClient {
	return &SessionClient{factory: factory, log: log}
}

// Initialize establishes the shared remote engine exactly once. Idempotent:
// returns immediately when an engine already exists.
func (s *SessionClient) Initialize(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.engine != nil {
		return nil
	}

	engine, err := s.factory()
	if err != nil {
		return fmt.Errorf("initialize remote engine: %w", err)
	}
	s.engine = engine
	s.log.Debug().Msg("remote engine initialized")
	return nil
}

// Engine returns the shared engine, or nil before Initialize.
func (s *SessionClient) Engine() RemoteEngine {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.engine
}

// Login authenticates the shared session for the given identity.
//
// The engine permits only one authenticated identity, so an existing
// session is logged out first. A known race remains: another process may
// re-bind the session between the logout and the login, which the server
// reports as an "already authenticated" conflict — that conflict is
// resolved by logging out and retrying the login exactly once before the
// failure is propagated.
func (s *SessionClient) Login(ctx context.Context, username, password, serverURL string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.engine == nil {
		engine, err := s.factory()
		if err != nil {
			return "", fmt.Errorf("initialize remote engine: %w", err)
		}
		s.engine = engine
	}

	if s.engine.IsAuthenticated() {
		if err := s.engine.Logout(ctx); err != nil {
			s.log.Warn().Err(err).Msg("forced logout before login failed")
		}
	}

	displayName, err := s.engine.Login(ctx, username, password, serverURL)
	if err == nil {
		return displayName, nil
	}
	if !errors.Is(err, ErrAlreadyAuthenticated) {
		return "", err
	}

	s.log.Warn().Str("username", username).Msg("session conflict on login, retrying once")
	if logoutErr := s.engine.Logout(ctx); logoutErr != nil {
		s.log.Warn().Err(logoutErr).Msg("logout during conflict retry failed")
	}

	displayName, err = s.engine.Login(ctx, username, password, serverURL)
	if err != nil {
		return "", fmt.Errorf("login retry after session conflict: %w", err)
	}
	return displayName, nil
}

// Logout releases the shared session. Tolerates an engine that is already
// logged out or was never initialized.
func (s *SessionClient) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.engine == nil {
		return nil
	}
	if err := s.engine.Logout(ctx); err != nil && !errors.Is(err, ErrNotAuthenticated) {
		return err
	}
	return nil
}

// IsSessionActive reports whether the shared engine holds a live session.
// Pure read, no side effects.
func (s *SessionClient) IsSessionActive() bool {
	s.mu.RLock()
	engine := s.engine
	s.mu.RUnlock()

	return engine != nil && engine.IsAuthenticated()
}

// Drop discards the engine reference so the next use is forced through a
// fresh Initialize. Used by the full data wipe.
func (s *SessionClient) Drop() {
	s.mu.Lock()
	s.engine = nil
	s.mu.Unlock()
}
