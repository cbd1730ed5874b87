package session

import "context"

// Store persists sessions by token.
type Store interface {
	// Get returns ErrSessionNotFound for unknown tokens. Stores may drop
	// expired sessions early, but expiry is decided by the Manager.
	Get(ctx context.Context, token string) (*Session, error)

	// Save creates or replaces the session. It lives until ExpiresAt.
	Save(ctx context.Context, session *Session) error

	// Delete removes the session. Unknown tokens are not an error.
	Delete(ctx context.Context, token string) error
}
