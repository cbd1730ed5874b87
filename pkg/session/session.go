package session

import (
	"maps"
	"time"

	"github.com/google/uuid"
)

// Session is the server-side state behind a session token.
type Session struct {
	ID        uuid.UUID         `json:"id"`
	Token     string            `json:"token"`
	Data      map[string]string `json:"data,omitempty"`
	ExpiresAt time.Time         `json:"expires_at"`
	CreatedAt time.Time         `json:"created_at"`
}

func newSession(token string, now time.Time, ttl time.Duration) *Session {
	return &Session{
		ID:        uuid.New(),
		Token:     token,
		Data:      make(map[string]string),
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	}
}

// IsExpired reports whether the session has expired at now.
func (s *Session) IsExpired(now time.Time) bool {
	return s != nil && !now.Before(s.ExpiresAt)
}

func (s *Session) Get(key string) (string, bool) {
	if s == nil || s.Data == nil {
		return "", false
	}
	v, ok := s.Data[key]
	return v, ok
}

func (s *Session) Set(key, value string) {
	if s == nil {
		return
	}
	if s.Data == nil {
		s.Data = make(map[string]string)
	}
	s.Data[key] = value
}

func (s *Session) Delete(key string) {
	if s == nil {
		return
	}
	delete(s.Data, key)
}

// clone returns a deep copy so stores never share data maps with callers.
func (s *Session) clone() *Session {
	c := *s
	c.Data = maps.Clone(s.Data)
	return &c
}
