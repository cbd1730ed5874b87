package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/bussearch/pkg/cookie"
	"github.com/dmitrymomot/bussearch/pkg/logger"
)

// Manager handles session operations.
type Manager struct {
	store         Store
	transport     Transport
	config        Config
	cookieManager *cookie.Manager
	cookieOptions []cookie.Option
	logger        *slog.Logger
	now           func() time.Time
}

// New creates a session manager. Without WithStore sessions are kept in a
// MemoryStore. Without WithTransport a cookie manager must be supplied.
func New(opts ...Option) *Manager {
	m := &Manager{
		config: DefaultConfig(),
		logger: slog.New(slog.DiscardHandler),
		now:    time.Now,
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.config.TTL <= 0 {
		m.config.TTL = DefaultConfig().TTL
	}

	if m.store == nil {
		m.store = NewMemoryStore(m.config.CleanupInterval)
	}

	if m.transport == nil {
		if m.cookieManager == nil {
			panic("session: cookie manager is required when using default cookie transport")
		}
		m.transport = NewCookieTransport(m.cookieManager, m.config.CookieName, m.config.SecureCookies, m.cookieOptions...)
	}

	m.logger = m.logger.With(logger.Component("session"))

	return m
}

// Get returns the session presented by the request.
func (m *Manager) Get(ctx context.Context, r *http.Request) (*Session, error) {
	st := stateFrom(ctx)
	if st != nil {
		if s := st.get(); s != nil {
			if !s.IsExpired(m.now()) {
				return s, nil
			}
			st.set(nil)
		}
	}

	token, err := m.transport.GetToken(r)
	if err != nil {
		return nil, err
	}

	s, err := m.store.Get(ctx, token)
	if err != nil {
		return nil, err
	}

	if s.IsExpired(m.now()) {
		_ = m.store.Delete(ctx, token)
		return nil, ErrSessionExpired
	}

	if st != nil {
		st.set(s)
	}
	return s, nil
}

// Ensure returns the current session or starts a new one and sends its token.
func (m *Manager) Ensure(ctx context.Context, w http.ResponseWriter, r *http.Request) (*Session, error) {
	s, err := m.Get(ctx, r)
	if err == nil {
		return s, nil
	}
	if !isAbsent(err) {
		// Store unavailable: starting a new session would orphan the old one.
		return nil, err
	}

	token, err := generateToken()
	if err != nil {
		return nil, err
	}

	s = newSession(token, m.now(), m.config.TTL)
	if err := m.store.Save(ctx, s); err != nil {
		return nil, err
	}

	if err := m.transport.SetToken(w, s.Token, m.config.TTL); err != nil {
		_ = m.store.Delete(ctx, s.Token)
		return nil, err
	}

	if st := stateFrom(ctx); st != nil {
		st.set(s)
	}

	m.logger.DebugContext(ctx, "session started", slog.String("id", s.ID.String()))
	return s, nil
}

// GetValue reads key from the current session. A missing session reads as absent.
func (m *Manager) GetValue(ctx context.Context, r *http.Request, key string) (string, bool, error) {
	s, err := m.Get(ctx, r)
	if err != nil {
		if isAbsent(err) {
			return "", false, nil
		}
		return "", false, err
	}
	v, ok := s.Get(key)
	return v, ok, nil
}

// Set stores key in the session, starting one when needed.
func (m *Manager) Set(ctx context.Context, w http.ResponseWriter, r *http.Request, key, value string) error {
	return m.SetFor(ctx, w, r, key, value, 0)
}

// SetFor stores key and makes sure the session lives at least ttl from now,
// pushing back its expiry and the token cookie when it would end sooner.
// Expiry is never shortened.
func (m *Manager) SetFor(ctx context.Context, w http.ResponseWriter, r *http.Request, key, value string, ttl time.Duration) error {
	s, err := m.Ensure(ctx, w, r)
	if err != nil {
		return err
	}
	s.Set(key, value)

	if ttl > 0 {
		if until := m.now().Add(ttl); s.ExpiresAt.Before(until) {
			s.ExpiresAt = until
			if err := m.transport.SetToken(w, s.Token, ttl); err != nil {
				return err
			}
		}
	}
	return m.store.Save(ctx, s)
}

// DeleteValue removes key from the current session, if there is one.
func (m *Manager) DeleteValue(ctx context.Context, r *http.Request, key string) error {
	s, err := m.Get(ctx, r)
	if err != nil {
		if isAbsent(err) {
			return nil
		}
		return err
	}
	if _, ok := s.Get(key); !ok {
		return nil
	}
	s.Delete(key)
	return m.store.Save(ctx, s)
}

func isAbsent(err error) bool {
	return errors.Is(err, ErrSessionNotFound) || errors.Is(err, ErrSessionExpired) || errors.Is(err, ErrInvalidSession)
}

// generateToken creates a 256-bit random token.
func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", errors.Join(ErrTokenGeneration, err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
