// Package session owns the signed-in user. It persists the token on login
// and registration, restores a stored session at startup, and reacts to
// authentication-expired responses reported by the gateway.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/dmitrijs2005/taskboard/internal/client/models"
	"github.com/dmitrijs2005/taskboard/internal/client/query"
	"github.com/dmitrijs2005/taskboard/internal/client/services"
	"github.com/dmitrijs2005/taskboard/internal/client/tokenstore"
	"github.com/dmitrijs2005/taskboard/internal/logging"
	"github.com/golang-jwt/jwt/v5"
)

// ErrSessionExpired is returned by Restore when the stored token has
// already passed its expiry.
var ErrSessionExpired = errors.New("session expired")

type Manager struct {
	auth   services.AuthService
	users  services.UserService
	tokens tokenstore.Store
	cache  *query.Client
	log    logging.Logger
	now    func() time.Time

	mu        sync.RWMutex
	user      *models.User
	onExpired func(ctx context.Context)
}

// NewManager builds a Manager. cache may be nil.
func NewManager(auth services.AuthService, users services.UserService, tokens tokenstore.Store, cache *query.Client, log logging.Logger) *Manager {
	if log == nil {
		log = logging.Nop{}
	}
	return &Manager{auth: auth, users: users, tokens: tokens, cache: cache, log: log, now: time.Now}
}

// OnExpired sets the view hook run after an authentication-expired
// response has ended the session.
func (m *Manager) OnExpired(f func(ctx context.Context)) {
	m.mu.Lock()
	m.onExpired = f
	m.mu.Unlock()
}

func (m *Manager) Login(ctx context.Context, req models.LoginRequest) (*models.User, error) {
	resp, err := m.auth.Login(ctx, req)
	if err != nil {
		return nil, err
	}
	return m.start(ctx, resp)
}

func (m *Manager) Register(ctx context.Context, req models.SignupRequest) (*models.User, error) {
	resp, err := m.auth.Register(ctx, req)
	if err != nil {
		return nil, err
	}
	return m.start(ctx, resp)
}

func (m *Manager) start(ctx context.Context, resp *models.AuthResponse) (*models.User, error) {
	if err := m.tokens.SetToken(ctx, resp.Token); err != nil {
		return nil, err
	}
	m.setUser(resp.User)
	m.clearCache()
	m.log.Info(ctx, "session started", "user_id", resp.User.ID)
	return resp.User, nil
}

// Logout ends the session locally. The server call is best effort: a
// failure is logged and the local state is cleared anyway.
func (m *Manager) Logout(ctx context.Context) error {
	if err := m.auth.Logout(ctx); err != nil {
		m.log.Warn(ctx, "server logout failed", "error", err)
	}
	m.setUser(nil)
	m.clearCache()
	return m.tokens.Clear(ctx)
}

// Restore resumes a stored session. It returns (nil, nil) when no token
// is stored. A token whose JWT expiry has passed is discarded without a
// request; otherwise the profile is fetched and any failure discards the
// token.
func (m *Manager) Restore(ctx context.Context) (*models.User, error) {
	token, err := m.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}
	if token == "" {
		return nil, nil
	}

	if expired(token, m.now()) {
		m.log.Info(ctx, "stored token expired, discarding")
		if err := m.tokens.Clear(ctx); err != nil {
			return nil, err
		}
		return nil, ErrSessionExpired
	}

	u, err := m.users.Profile(ctx)
	if err != nil {
		m.log.Warn(ctx, "failed to fetch user profile", "error", err)
		if cerr := m.tokens.Clear(ctx); cerr != nil {
			m.log.Error(ctx, "failed to discard token", "error", cerr)
		}
		return nil, err
	}
	m.setUser(u)
	return u, nil
}

// expired reports whether token is a JWT with a past "exp". Opaque tokens
// and tokens without expiry are left for the server to judge.
func expired(token string, now time.Time) bool {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	return claims.ExpiresAt != nil && !now.Before(claims.ExpiresAt.Time)
}

func (m *Manager) Current() *models.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.user == nil {
		return nil
	}
	u := *m.user
	return &u
}

func (m *Manager) IsAuthenticated() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.user != nil
}

// UpdateUser replaces the held user, e.g. after a profile edit.
func (m *Manager) UpdateUser(u *models.User) {
	if u == nil {
		return
	}
	m.setUser(u)
}

// SessionExpired implements gateway.ExpiryHandler. The gateway has already
// purged the token.
func (m *Manager) SessionExpired(ctx context.Context) {
	m.setUser(nil)
	m.clearCache()

	m.mu.RLock()
	f := m.onExpired
	m.mu.RUnlock()
	if f != nil {
		f(ctx)
	}
}

func (m *Manager) setUser(u *models.User) {
	m.mu.Lock()
	m.user = u
	m.mu.Unlock()
}

func (m *Manager) clearCache() {
	if m.cache != nil {
		m.cache.Clear()
	}
}
