package session

import (
	"context"
	"sync"
)

type sessionContextKey struct{}

// requestState holds the session resolved for one request.
type requestState struct {
	mu      sync.Mutex
	session *Session
}

func (s *requestState) get() *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session
}

func (s *requestState) set(session *Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = session
}

func withState(ctx context.Context) (context.Context, *requestState) {
	if st := stateFrom(ctx); st != nil {
		return ctx, st
	}
	st := &requestState{}
	return context.WithValue(ctx, sessionContextKey{}, st), st
}

func stateFrom(ctx context.Context) *requestState {
	st, _ := ctx.Value(sessionContextKey{}).(*requestState)
	return st
}

// FromContext returns the session resolved for the request, if any.
func FromContext(ctx context.Context) (*Session, bool) {
	st := stateFrom(ctx)
	if st == nil {
		return nil, false
	}
	s := st.get()
	return s, s != nil
}
