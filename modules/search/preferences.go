package search

import (
	"errors"
	"net/http"
	"time"

	"github.com/dmitrymomot/bussearch/pkg/busapi"
	"github.com/dmitrymomot/bussearch/pkg/cookie"
	"github.com/dmitrymomot/bussearch/pkg/logger"
)

// PreferencesCookie holds the last search form state.
const PreferencesCookie = "SearchPreferences"

// Preferences is the search form state remembered between visits.
type Preferences struct {
	OriginID        int    `json:"origin_id,omitempty"`
	OriginName      string `json:"origin_name,omitempty"`
	DestinationID   int    `json:"destination_id,omitempty"`
	DestinationName string `json:"destination_name,omitempty"`
	Date            string `json:"date"`
}

// Swap exchanges origin and destination.
func (p *Preferences) Swap() {
	p.OriginID, p.DestinationID = p.DestinationID, p.OriginID
	p.OriginName, p.DestinationName = p.DestinationName, p.OriginName
}

// PreferenceCookies is the signed cookie storage used for preferences.
type PreferenceCookies interface {
	SetJSON(w http.ResponseWriter, name string, v any, opts ...cookie.Option) error
	GetJSON(r *http.Request, name string, dest any) error
	Delete(w http.ResponseWriter, name string)
}

var _ PreferenceCookies = (*cookie.Manager)(nil)

// loadPreferences reads the preference cookie. A missing cookie yields
// defaults with tomorrow's date; an unreadable one is also deleted.
func (s *Service) loadPreferences(w http.ResponseWriter, r *http.Request) Preferences {
	var p Preferences
	err := s.cookies.GetJSON(r, PreferencesCookie, &p)
	switch {
	case err == nil:
	case errors.Is(err, cookie.ErrCookieNotFound):
		p = Preferences{}
	default:
		s.logger.WarnContext(r.Context(), "discarding unreadable search preferences", logger.Error(err))
		s.cookies.Delete(w, PreferencesCookie)
		p = Preferences{}
	}

	if _, err := time.Parse(busapi.DateLayout, p.Date); err != nil {
		p.Date = s.tomorrow().Format(busapi.DateLayout)
	}
	return p
}

func (s *Service) savePreferences(w http.ResponseWriter, p Preferences) error {
	opts := []cookie.Option{
		cookie.WithMaxAge(int(s.prefsMaxAge / time.Second)),
		cookie.WithHTTPOnly(true),
		cookie.WithSameSite(http.SameSiteLaxMode),
	}
	// Secure is only forced on; otherwise the cookie manager default stands.
	if s.secureCookies {
		opts = append(opts, cookie.WithSecure(true))
	}
	return s.cookies.SetJSON(w, PreferencesCookie, p, opts...)
}

func (s *Service) today() time.Time {
	now := s.now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

func (s *Service) tomorrow() time.Time {
	return s.today().AddDate(0, 0, 1)
}
