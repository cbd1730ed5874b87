package cookie_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/bussearch/pkg/cookie"
)

const (
	secret    = "0123456789abcdef0123456789abcdef"
	newSecret = "fedcba9876543210fedcba9876543210"
)

// roundTrip copies cookies written to rec into a fresh request.
func roundTrip(rec *httptest.ResponseRecorder) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	return req
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("requires a secret", func(t *testing.T) {
		t.Parallel()
		_, err := cookie.New(nil)
		assert.ErrorIs(t, err, cookie.ErrNoSecret)

		_, err = cookie.New([]string{""})
		assert.ErrorIs(t, err, cookie.ErrNoSecret)
	})

	t.Run("rejects short secrets", func(t *testing.T) {
		t.Parallel()
		_, err := cookie.New([]string{"short"})
		assert.ErrorIs(t, err, cookie.ErrSecretTooShort)
	})

	t.Run("from config", func(t *testing.T) {
		t.Parallel()
		m, err := cookie.NewFromConfig(cookie.Config{
			Secrets:  " " + secret + " , " + newSecret,
			Path:     "/app",
			HttpOnly: true,
			Secure:   true,
			SameSite: http.SameSiteStrictMode,
		})
		require.NoError(t, err)

		rec := httptest.NewRecorder()
		m.Set(rec, "a", "b")
		c := rec.Result().Cookies()[0]
		assert.Equal(t, "/app", c.Path)
		assert.True(t, c.Secure)
		assert.True(t, c.HttpOnly)
		assert.Equal(t, http.SameSiteStrictMode, c.SameSite)
	})
}

func TestManager(t *testing.T) {
	t.Parallel()

	m, err := cookie.New([]string{secret})
	require.NoError(t, err)

	t.Run("plain", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		m.Set(rec, "plain", "value", cookie.WithMaxAge(60))
		assert.Equal(t, 60, rec.Result().Cookies()[0].MaxAge)

		v, err := m.Get(roundTrip(rec), "plain")
		require.NoError(t, err)
		assert.Equal(t, "value", v)

		_, err = m.Get(httptest.NewRequest(http.MethodGet, "/", nil), "plain")
		assert.ErrorIs(t, err, cookie.ErrCookieNotFound)
	})

	t.Run("delete expires cookie", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		m.Delete(rec, "plain")
		c := rec.Result().Cookies()[0]
		assert.Equal(t, "plain", c.Name)
		assert.Equal(t, -1, c.MaxAge)
	})

	t.Run("signed", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		m.SetSigned(rec, "signed", "hello")

		v, err := m.GetSigned(roundTrip(rec), "signed")
		require.NoError(t, err)
		assert.Equal(t, "hello", v)
	})

	t.Run("tampered signature", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		m.SetSigned(rec, "signed", "hello")
		value := rec.Result().Cookies()[0].Value

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "signed", Value: value + "x"})
		_, err := m.GetSigned(req, "signed")
		assert.ErrorIs(t, err, cookie.ErrInvalidSignature)

		req = httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "signed", Value: "no-separator"})
		_, err = m.GetSigned(req, "signed")
		assert.ErrorIs(t, err, cookie.ErrInvalidFormat)
	})

	t.Run("encrypted", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		require.NoError(t, m.SetEncrypted(rec, "enc", "token-123"))
		assert.NotContains(t, rec.Result().Cookies()[0].Value, "token-123")

		v, err := m.GetEncrypted(roundTrip(rec), "enc")
		require.NoError(t, err)
		assert.Equal(t, "token-123", v)
	})

	t.Run("encryption uses fresh nonce", func(t *testing.T) {
		t.Parallel()
		a, b := httptest.NewRecorder(), httptest.NewRecorder()
		require.NoError(t, m.SetEncrypted(a, "enc", "same"))
		require.NoError(t, m.SetEncrypted(b, "enc", "same"))
		assert.NotEqual(t, a.Result().Cookies()[0].Value, b.Result().Cookies()[0].Value)
	})

	t.Run("json", func(t *testing.T) {
		t.Parallel()
		type prefs struct {
			Origin int `json:"origin"`
		}
		rec := httptest.NewRecorder()
		require.NoError(t, m.SetJSON(rec, "prefs", prefs{Origin: 349}))

		var got prefs
		require.NoError(t, m.GetJSON(roundTrip(rec), "prefs", &got))
		assert.Equal(t, 349, got.Origin)
	})
}

func TestSecretRotation(t *testing.T) {
	t.Parallel()

	old, err := cookie.New([]string{secret})
	require.NoError(t, err)
	rotated, err := cookie.New([]string{newSecret, secret})
	require.NoError(t, err)
	unrelated, err := cookie.New([]string{newSecret})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	old.SetSigned(rec, "signed", "v")
	require.NoError(t, old.SetEncrypted(rec, "enc", "v"))

	v, err := rotated.GetSigned(roundTrip(rec), "signed")
	require.NoError(t, err)
	assert.Equal(t, "v", v)

	v, err = rotated.GetEncrypted(roundTrip(rec), "enc")
	require.NoError(t, err)
	assert.Equal(t, "v", v)

	_, err = unrelated.GetEncrypted(roundTrip(rec), "enc")
	assert.ErrorIs(t, err, cookie.ErrDecryptionFailed)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "enc", Value: strings.Repeat("A", 4)})
	_, err = rotated.GetEncrypted(req, "enc")
	assert.ErrorIs(t, err, cookie.ErrInvalidFormat)
}
