package devicesession

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrymomot/bussearch/pkg/busapi"
	"github.com/dmitrymomot/bussearch/pkg/session"
)

// SessionKey is the server-side session key holding the device session.
const SessionKey = "ObiletDeviceSession"

// Session identifies a client to the upstream API.
type Session = busapi.DeviceSession

// Store is client-scoped storage for one device session.
type Store interface {
	// Load returns ErrNoSession when nothing is stored and ErrMalformedSession
	// when the stored value cannot be used.
	Load(ctx context.Context) (Session, error)
	Save(ctx context.Context, s Session, ttl time.Duration) error
	Delete(ctx context.Context) error
}

// stored is the persisted form of a device session.
type stored struct {
	SessionID string    `json:"session-id"`
	DeviceID  string    `json:"device-id"`
	ExpiresAt time.Time `json:"expires-at"`
}

// SessionStore keeps the device session in the server-side session of one
// request. It is not safe to reuse across requests.
type SessionStore struct {
	sessions *session.Manager
	w        http.ResponseWriter
	r        *http.Request
	now      func() time.Time
}

func NewSessionStore(sessions *session.Manager, w http.ResponseWriter, r *http.Request) *SessionStore {
	return &SessionStore{sessions: sessions, w: w, r: r, now: time.Now}
}

// WithClock returns a copy of the store using now for expiry checks.
func (s *SessionStore) WithClock(now func() time.Time) *SessionStore {
	c := *s
	c.now = now
	return &c
}

func (s *SessionStore) Load(ctx context.Context) (Session, error) {
	raw, ok, err := s.sessions.GetValue(ctx, s.r, SessionKey)
	if err != nil {
		return Session{}, err
	}
	if !ok {
		return Session{}, ErrNoSession
	}

	var v stored
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return Session{}, errors.Join(ErrMalformedSession, err)
	}
	if !v.ExpiresAt.IsZero() && !s.now().Before(v.ExpiresAt) {
		return Session{}, ErrNoSession
	}

	ds := Session{SessionID: v.SessionID, DeviceID: v.DeviceID}
	if !ds.Valid() {
		return Session{}, ErrMalformedSession
	}
	return ds, nil
}

func (s *SessionStore) Save(ctx context.Context, ds Session, ttl time.Duration) error {
	raw, err := json.Marshal(stored{
		SessionID: ds.SessionID,
		DeviceID:  ds.DeviceID,
		ExpiresAt: s.now().Add(ttl),
	})
	if err != nil {
		return err
	}
	return s.sessions.SetFor(ctx, s.w, s.r, SessionKey, string(raw), ttl)
}

func (s *SessionStore) Delete(ctx context.Context) error {
	return s.sessions.DeleteValue(ctx, s.r, SessionKey)
}
