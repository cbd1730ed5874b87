package devicesession

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/dmitrymomot/bussearch/pkg/busapi"
	"github.com/dmitrymomot/bussearch/pkg/logger"
)

const (
	DefaultTTL                = 24 * time.Hour
	DefaultApplicationVersion = "1.0.0.0"
	DefaultEquipmentID        = "distribusion"
)

// Creator is the upstream operation the manager depends on.
type Creator interface {
	CreateSession(ctx context.Context, req busapi.SessionRequest) (*busapi.SessionResponse, error)
}

// Manager resolves device sessions.
type Manager struct {
	api          Creator
	ttl          time.Duration
	app          busapi.Application
	skipPrefixes []string
	logger       *slog.Logger
}

type Option func(*Manager)

// WithTTL sets how long a stored session stays valid. Non-positive values are ignored.
func WithTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		if ttl > 0 {
			m.ttl = ttl
		}
	}
}

// WithApplication sets the application descriptor sent on session creation.
// Empty values keep the defaults.
func WithApplication(version, equipmentID string) Option {
	return func(m *Manager) {
		if version != "" {
			m.app.Version = version
		}
		if equipmentID != "" {
			m.app.EquipmentID = equipmentID
		}
	}
}

// WithSkipPrefixes adds path prefixes Middleware never resolves a session for.
func WithSkipPrefixes(prefixes ...string) Option {
	return func(m *Manager) {
		for _, p := range prefixes {
			if p != "" {
				m.skipPrefixes = append(m.skipPrefixes, p)
			}
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

func New(api Creator, opts ...Option) (*Manager, error) {
	if api == nil {
		return nil, ErrNilDependency
	}
	m := &Manager{
		api: api,
		ttl: DefaultTTL,
		app: busapi.Application{
			Version:     DefaultApplicationVersion,
			EquipmentID: DefaultEquipmentID,
		},
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.logger = m.logger.With(logger.Component("devicesession"))
	return m, nil
}

// GetOrCreate returns the stored device session or creates one upstream.
//
// A well-formed stored session is returned unchanged without calling the API.
// Otherwise the API is asked for a new session on behalf of client; a
// successful one is saved to store for the manager's TTL and returned. A
// failing save is logged and the session is still returned.
//
// When the API fails or rejects the request, GetOrCreate returns nil and an
// error matching ErrSessionUnavailable, and nothing is written to store.
func (m *Manager) GetOrCreate(ctx context.Context, store Store, client Client) (*Session, error) {
	s, err := store.Load(ctx)
	if err == nil {
		return &s, nil
	}
	if !errors.Is(err, ErrNoSession) {
		m.logger.WarnContext(ctx, "stored device session unusable", logger.Error(err))
	}

	s, err = m.create(ctx, client)
	if err != nil {
		m.logger.ErrorContext(ctx, "device session unavailable", logger.Error(err))
		return nil, errors.Join(ErrSessionUnavailable, err)
	}

	if err := store.Save(ctx, s, m.ttl); err != nil {
		m.logger.ErrorContext(ctx, "failed to persist device session",
			logger.SessionID(s.SessionID),
			logger.DeviceID(s.DeviceID),
			logger.Error(err),
		)
	}

	m.logger.InfoContext(ctx, "device session created",
		logger.SessionID(s.SessionID),
		logger.DeviceID(s.DeviceID),
	)
	return &s, nil
}

// Current returns the stored device session without creating one.
func (m *Manager) Current(ctx context.Context, store Store) (*Session, bool) {
	s, err := store.Load(ctx)
	if err != nil {
		return nil, false
	}
	return &s, true
}

func (m *Manager) create(ctx context.Context, client Client) (Session, error) {
	resp, err := m.api.CreateSession(ctx, client.sessionRequest(m.app))
	if err != nil {
		return Session{}, err
	}
	if err := resp.Err(); err != nil {
		return Session{}, err
	}

	s := resp.Data.DeviceSession()
	if !s.Valid() {
		return Session{}, errors.Join(busapi.ErrUpstreamUnavailable, errors.New("session response without ids"))
	}
	return s, nil
}
