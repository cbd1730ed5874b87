package busapi

import (
	"cmp"
	"slices"
	"strings"
	"time"
)

// DefaultLocationLanguage is used when a location request has no language.
const DefaultLocationLanguage = "en-EN"

// LocationRequest is the body of location/getbuslocations.
// A nil Data asks for the full catalog.
type LocationRequest struct {
	Data          *string       `json:"data"`
	DeviceSession DeviceSession `json:"device-session"`
	Date          string        `json:"date"`
	Language      string        `json:"language"`
}

// NewLocationRequest builds a request for the given search term.
// An empty or blank term produces a catalog request.
func NewLocationRequest(session DeviceSession, term string, now time.Time) LocationRequest {
	req := LocationRequest{
		DeviceSession: session,
		Date:          now.Format(DateTimeLayout),
		Language:      DefaultLocationLanguage,
	}
	if term = strings.TrimSpace(term); term != "" {
		req.Data = &term
	}
	return req
}

// Query returns the search term or an empty string.
func (r LocationRequest) Query() string {
	if r.Data == nil {
		return ""
	}
	return strings.TrimSpace(*r.Data)
}

// IsSearch reports whether the request carries a free-text term.
func (r LocationRequest) IsSearch() bool {
	return r.Query() != ""
}

// WithoutQuery returns a copy of the request asking for the full catalog.
func (r LocationRequest) WithoutQuery() LocationRequest {
	r.Data = nil
	return r
}

// Location is a stop or city known to the API.
type Location struct {
	ID            int         `json:"id"`
	ParentID      *int        `json:"parent-id"`
	Type          string      `json:"type"`
	Name          string      `json:"name"`
	GeoLocation   GeoLocation `json:"geo-location"`
	TzCode        string      `json:"tz-code"`
	WeatherCode   string      `json:"weather-code"`
	Rank          *int        `json:"rank"`
	ReferenceCode string      `json:"reference-code"`
	Keywords      string      `json:"keywords"`
}

// GeoLocation is the map position of a location.
type GeoLocation struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Zoom      int     `json:"zoom"`
}

// SortByRank orders locations by rank ascending; unranked locations go last.
// The sort is stable so the upstream order is kept among equal ranks.
func SortByRank(locations []Location) {
	slices.SortStableFunc(locations, func(a, b Location) int {
		return cmp.Compare(rankOf(a), rankOf(b))
	})
}

func rankOf(l Location) int {
	if l.Rank == nil {
		return int(^uint(0) >> 1)
	}
	return *l.Rank
}
