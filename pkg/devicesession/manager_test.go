package devicesession_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/bussearch/pkg/busapi"
	"github.com/dmitrymomot/bussearch/pkg/cookie"
	"github.com/dmitrymomot/bussearch/pkg/devicesession"
	"github.com/dmitrymomot/bussearch/pkg/session"
)

const (
	secret   = "0123456789abcdef0123456789abcdef"
	chromeUA = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.6367.60 Safari/537.36"
)

func newSessions(t *testing.T) (*session.Manager, *session.MemoryStore) {
	t.Helper()
	cookies, err := cookie.New([]string{secret})
	require.NoError(t, err)

	store := session.NewMemoryStore(0)
	t.Cleanup(func() { _ = store.Close() })
	return session.New(session.WithCookieManager(cookies), session.WithStore(store)), store
}

// replay returns a request carrying the cookies set on rec.
func replay(rec *httptest.ResponseRecorder, target string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	return req
}

func TestNew(t *testing.T) {
	t.Parallel()

	_, err := devicesession.New(nil)
	require.ErrorIs(t, err, devicesession.ErrNilDependency)

	mgr, err := devicesession.NewFromConfig(devicesession.Config{TTL: time.Hour}, &mockCreator{})
	require.NoError(t, err)
	assert.NotNil(t, mgr)
}

func TestManager_GetOrCreate(t *testing.T) {
	t.Parallel()

	t.Run("creates and stores a session when none exists", func(t *testing.T) {
		t.Parallel()
		sessions, _ := newSessions(t)
		api := &mockCreator{}
		api.On("CreateSession", mock.Anything, mock.MatchedBy(func(req busapi.SessionRequest) bool {
			return req.Type == busapi.SessionType &&
				req.Connection.IPAddress == "192.0.2.1" &&
				req.Connection.Port == "1234" &&
				req.Browser.Name == "Chrome" &&
				req.Browser.Version == "124.0.6367.60" &&
				req.Application != nil &&
				req.Application.Version == devicesession.DefaultApplicationVersion &&
				req.Application.EquipmentID == devicesession.DefaultEquipmentID
		})).Return(successResponse("s-1", "d-1"), nil).Once()

		mgr, err := devicesession.New(api)
		require.NoError(t, err)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("User-Agent", chromeUA)

		s, err := mgr.GetOrCreate(req.Context(), devicesession.NewSessionStore(sessions, rec, req), devicesession.ClientFromRequest(req))
		require.NoError(t, err)
		assert.Equal(t, "s-1", s.SessionID)
		assert.Equal(t, "d-1", s.DeviceID)

		next := replay(rec, "/")
		stored, ok := mgr.Current(next.Context(), devicesession.NewSessionStore(sessions, httptest.NewRecorder(), next))
		require.True(t, ok)
		assert.Equal(t, *s, *stored)
		api.AssertExpectations(t)
	})

	t.Run("returns the stored session without calling upstream", func(t *testing.T) {
		t.Parallel()
		sessions, _ := newSessions(t)
		api := &mockCreator{}
		api.On("CreateSession", mock.Anything, mock.Anything).Return(successResponse("s-1", "d-1"), nil).Once()
		mgr, err := devicesession.New(api)
		require.NoError(t, err)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		_, err = mgr.GetOrCreate(req.Context(), devicesession.NewSessionStore(sessions, rec, req), devicesession.Client{})
		require.NoError(t, err)

		for range 3 {
			next := replay(rec, "/")
			s, err := mgr.GetOrCreate(next.Context(), devicesession.NewSessionStore(sessions, httptest.NewRecorder(), next), devicesession.Client{})
			require.NoError(t, err)
			assert.Equal(t, "s-1", s.SessionID)
		}
		api.AssertNumberOfCalls(t, "CreateSession", 1)
	})

	t.Run("device ttl outlives a shorter server session ttl", func(t *testing.T) {
		t.Parallel()
		now := time.Now()
		clock := func() time.Time { return now }

		cookies, err := cookie.New([]string{secret})
		require.NoError(t, err)
		backing := session.NewMemoryStore(0)
		t.Cleanup(func() { _ = backing.Close() })
		sessions := session.New(
			session.WithCookieManager(cookies),
			session.WithStore(backing),
			session.WithTTL(time.Hour),
			session.WithClock(clock),
		)

		api := &mockCreator{}
		api.On("CreateSession", mock.Anything, mock.Anything).Return(successResponse("s-1", "d-1"), nil).Once()
		mgr, err := devicesession.New(api, devicesession.WithTTL(24*time.Hour))
		require.NoError(t, err)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		_, err = mgr.GetOrCreate(req.Context(), devicesession.NewSessionStore(sessions, rec, req).WithClock(clock), devicesession.Client{})
		require.NoError(t, err)

		now = now.Add(2 * time.Hour)
		next := replay(rec, "/")
		s, err := mgr.GetOrCreate(next.Context(), devicesession.NewSessionStore(sessions, httptest.NewRecorder(), next).WithClock(clock), devicesession.Client{})
		require.NoError(t, err)
		assert.Equal(t, "s-1", s.SessionID)
		api.AssertNumberOfCalls(t, "CreateSession", 1)
	})

	t.Run("rejected envelope writes nothing", func(t *testing.T) {
		t.Parallel()
		sessions, store := newSessions(t)
		api := &mockCreator{}
		api.On("CreateSession", mock.Anything, mock.Anything).
			Return(&busapi.SessionResponse{Status: "Failed", Message: "invalid partner"}, nil)
		mgr, err := devicesession.New(api)
		require.NoError(t, err)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		s, err := mgr.GetOrCreate(req.Context(), devicesession.NewSessionStore(sessions, rec, req), devicesession.Client{})
		require.Error(t, err)
		assert.Nil(t, s)
		assert.ErrorIs(t, err, devicesession.ErrSessionUnavailable)
		assert.ErrorIs(t, err, busapi.ErrUpstreamRejected)
		assert.Equal(t, 0, store.Len())
		assert.Empty(t, rec.Result().Cookies())
	})

	t.Run("transport failure writes nothing", func(t *testing.T) {
		t.Parallel()
		sessions, store := newSessions(t)
		api := &mockCreator{}
		api.On("CreateSession", mock.Anything, mock.Anything).
			Return(nil, errors.Join(busapi.ErrUpstreamUnavailable, errors.New("connection refused")))
		mgr, err := devicesession.New(api)
		require.NoError(t, err)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		s, err := mgr.GetOrCreate(req.Context(), devicesession.NewSessionStore(sessions, rec, req), devicesession.Client{})
		assert.Nil(t, s)
		assert.ErrorIs(t, err, devicesession.ErrSessionUnavailable)
		assert.ErrorIs(t, err, busapi.ErrUpstreamUnavailable)
		assert.Equal(t, 0, store.Len())
	})

	t.Run("success without ids is unavailable", func(t *testing.T) {
		t.Parallel()
		sessions, store := newSessions(t)
		api := &mockCreator{}
		api.On("CreateSession", mock.Anything, mock.Anything).
			Return(&busapi.SessionResponse{Status: busapi.StatusSuccess}, nil)
		mgr, err := devicesession.New(api)
		require.NoError(t, err)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		_, err = mgr.GetOrCreate(req.Context(), devicesession.NewSessionStore(sessions, rec, req), devicesession.Client{})
		assert.ErrorIs(t, err, devicesession.ErrSessionUnavailable)
		assert.Equal(t, 0, store.Len())
	})

	t.Run("unknown client attributes", func(t *testing.T) {
		t.Parallel()
		sessions, _ := newSessions(t)
		api := &mockCreator{}
		api.On("CreateSession", mock.Anything, mock.MatchedBy(func(req busapi.SessionRequest) bool {
			return req.Connection.IPAddress == devicesession.Unknown &&
				req.Connection.Port == devicesession.Unknown &&
				req.Browser.Name == devicesession.Unknown &&
				req.Browser.Version == devicesession.Unknown
		})).Return(successResponse("s-1", "d-1"), nil).Once()
		mgr, err := devicesession.New(api)
		require.NoError(t, err)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		_, err = mgr.GetOrCreate(req.Context(), devicesession.NewSessionStore(sessions, rec, req), devicesession.Client{})
		require.NoError(t, err)
		api.AssertExpectations(t)
	})

	t.Run("custom application descriptor", func(t *testing.T) {
		t.Parallel()
		sessions, _ := newSessions(t)
		api := &mockCreator{}
		api.On("CreateSession", mock.Anything, mock.MatchedBy(func(req busapi.SessionRequest) bool {
			return req.Application.Version == "2.0" && req.Application.EquipmentID == "kiosk"
		})).Return(successResponse("s-1", "d-1"), nil).Once()
		mgr, err := devicesession.New(api, devicesession.WithApplication("2.0", "kiosk"))
		require.NoError(t, err)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		_, err = mgr.GetOrCreate(req.Context(), devicesession.NewSessionStore(sessions, rec, req), devicesession.Client{})
		require.NoError(t, err)
		api.AssertExpectations(t)
	})
}

func TestSessionStore(t *testing.T) {
	t.Parallel()

	t.Run("empty store", func(t *testing.T) {
		t.Parallel()
		sessions, _ := newSessions(t)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		_, err := devicesession.NewSessionStore(sessions, httptest.NewRecorder(), req).Load(context.Background())
		assert.ErrorIs(t, err, devicesession.ErrNoSession)
	})

	t.Run("expired entry reads as absent", func(t *testing.T) {
		t.Parallel()
		sessions, _ := newSessions(t)
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		ctx := context.Background()

		store := devicesession.NewSessionStore(sessions, rec, req)
		require.NoError(t, store.Save(ctx, devicesession.Session{SessionID: "s", DeviceID: "d"}, time.Minute))

		next := replay(rec, "/")
		later := devicesession.NewSessionStore(sessions, httptest.NewRecorder(), next).
			WithClock(func() time.Time { return time.Now().Add(2 * time.Minute) })
		_, err := later.Load(ctx)
		assert.ErrorIs(t, err, devicesession.ErrNoSession)
	})

	t.Run("malformed entry", func(t *testing.T) {
		t.Parallel()
		sessions, _ := newSessions(t)
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		ctx := context.Background()
		require.NoError(t, sessions.Set(ctx, rec, req, devicesession.SessionKey, "{not json"))

		next := replay(rec, "/")
		_, err := devicesession.NewSessionStore(sessions, httptest.NewRecorder(), next).Load(ctx)
		assert.ErrorIs(t, err, devicesession.ErrMalformedSession)
	})

	t.Run("malformed entry is replaced", func(t *testing.T) {
		t.Parallel()
		sessions, _ := newSessions(t)
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		ctx := context.Background()
		require.NoError(t, sessions.Set(ctx, rec, req, devicesession.SessionKey, `{"session-id":""}`))

		api := &mockCreator{}
		api.On("CreateSession", mock.Anything, mock.Anything).Return(successResponse("s-2", "d-2"), nil).Once()
		mgr, err := devicesession.New(api)
		require.NoError(t, err)

		next := replay(rec, "/")
		s, err := mgr.GetOrCreate(ctx, devicesession.NewSessionStore(sessions, httptest.NewRecorder(), next), devicesession.Client{})
		require.NoError(t, err)
		assert.Equal(t, "s-2", s.SessionID)
	})

	t.Run("delete", func(t *testing.T) {
		t.Parallel()
		sessions, _ := newSessions(t)
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		ctx := context.Background()
		require.NoError(t, devicesession.NewSessionStore(sessions, rec, req).Save(ctx, devicesession.Session{SessionID: "s", DeviceID: "d"}, time.Hour))

		next := replay(rec, "/")
		store := devicesession.NewSessionStore(sessions, httptest.NewRecorder(), next)
		require.NoError(t, store.Delete(ctx))
		_, err := store.Load(ctx)
		assert.ErrorIs(t, err, devicesession.ErrNoSession)
	})
}

func TestClientFromRequest(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "203.0.113.7:50123"
	req.Header.Set("User-Agent", chromeUA)

	c := devicesession.ClientFromRequest(req)
	assert.Equal(t, "203.0.113.7", c.IP)
	assert.Equal(t, "50123", c.Port)
	assert.Equal(t, "Chrome", c.BrowserName)
	assert.Equal(t, "124.0.6367.60", c.BrowserVersion)

	req.Header.Set("User-Agent", "curl/8.0")
	assert.Empty(t, devicesession.ClientFromRequest(req).BrowserName)
}
