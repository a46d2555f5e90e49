package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/golang-jwt/jwt/v5"

	"github.com/me/csvbrowse/internal/store"
	"github.com/me/csvbrowse/pkg/model"
)

// Storage keys. All three must be present for a session to restore;
// any one missing forces re-authentication.
const (
	KeyToken    = "token"
	KeyRole     = "role"
	KeyUsername = "username"
)

// API is the slice of the server API the session manager needs.
type API interface {
	Login(ctx context.Context, username, password string) (string, error)
	Signup(ctx context.Context, username, password string) error
}

// Result reports the outcome of a login or signup attempt. Transport
// and server failures are folded into Err rather than returned as
// errors, so callers always get a presentable message.
type Result struct {
	OK  bool
	Err string
}

// Manager holds the authenticated identity, backed by durable local
// storage. Construct one per client surface; there is no package-level
// singleton.
type Manager struct {
	kv     store.KV
	api    API
	logger *slog.Logger

	mu      sync.RWMutex
	current *model.Session
	token   string
}

// New creates a Manager and synchronously restores any stored session.
// Restore is all-or-nothing: unless token, role, and username are all
// present the manager starts unauthenticated.
func New(kv store.KV, api API, logger *slog.Logger) *Manager {
	m := &Manager{
		kv:     kv,
		api:    api,
		logger: logger.With("component", "session"),
	}
	m.restore()
	return m
}

func (m *Manager) restore() {
	values := make(map[string]string, 3)
	for _, key := range []string{KeyToken, KeyRole, KeyUsername} {
		v, err := m.kv.Get(key)
		if err != nil {
			if !errors.Is(err, store.ErrNotFound) {
				m.logger.Warn("session restore failed", "key", key, "error", err)
			}
			return
		}
		values[key] = v
	}

	m.current = &model.Session{Username: values[KeyUsername], Role: values[KeyRole]}
	m.token = values[KeyToken]
}

// Login authenticates against the server. On success the role is
// decoded from the returned token payload, the session is persisted,
// and the in-memory identity is replaced.
func (m *Manager) Login(ctx context.Context, username, password string) Result {
	token, err := m.api.Login(ctx, username, password)
	if err != nil {
		m.logger.Debug("login failed", "username", username, "error", err)
		return Result{Err: model.ErrorDetail(err, "Login failed")}
	}

	role, err := RoleClaim(token)
	if err != nil {
		m.logger.Debug("token decode failed", "error", err)
		return Result{Err: "Login failed"}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.persist(token, role, username); err != nil {
		// The session still works for this process; it just won't
		// survive a restart.
		m.logger.Warn("persist session", "error", err)
	}
	m.current = &model.Session{Username: username, Role: role}
	m.token = token
	return Result{OK: true}
}

func (m *Manager) persist(token, role, username string) error {
	if err := m.kv.Set(KeyToken, token); err != nil {
		return err
	}
	if err := m.kv.Set(KeyRole, role); err != nil {
		return err
	}
	return m.kv.Set(KeyUsername, username)
}

// Signup creates an account. It does not log in.
func (m *Manager) Signup(ctx context.Context, username, password string) Result {
	if err := m.api.Signup(ctx, username, password); err != nil {
		m.logger.Debug("signup failed", "username", username, "error", err)
		return Result{Err: model.ErrorDetail(err, "Signup failed")}
	}
	return Result{OK: true}
}

// Logout clears durable storage and the in-memory session. It is
// synchronous and has no network effect.
func (m *Manager) Logout() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, key := range []string{KeyToken, KeyRole, KeyUsername} {
		if err := m.kv.Delete(key); err != nil {
			m.logger.Warn("clear session key", "key", key, "error", err)
		}
	}
	m.current = nil
	m.token = ""
}

// Current returns a copy of the active session, or nil when
// unauthenticated.
func (m *Manager) Current() *model.Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.current == nil {
		return nil
	}
	s := *m.current
	return &s
}

// Token returns the cached bearer token ("" when unauthenticated).
// It implements api.TokenSource.
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token
}

// IsAdmin reports whether the cached role is admin. This gates client
// surfaces only; the server independently authorizes every request.
func (m *Manager) IsAdmin() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current != nil && m.current.IsAdmin()
}

// RoleClaim extracts the role claim from a JWT without verifying its
// signature. The decoded role is a UI hint, never a security control.
func RoleClaim(token string) (string, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return "", fmt.Errorf("decode token payload: %w", err)
	}
	role, _ := claims["role"].(string)
	if role == "" {
		return "", errors.New("token payload has no role claim")
	}
	return role, nil
}
