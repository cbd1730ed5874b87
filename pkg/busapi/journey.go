package busapi

import (
	"encoding/json"
	"slices"
	"strings"
	"time"
)

const (
	// DateTimeLayout is the request timestamp format expected by the API.
	DateTimeLayout = "2006-01-02T15:04:05"

	// DateLayout is the departure date format expected by the API.
	DateLayout = "2006-01-02"

	// DefaultJourneyLanguage is used when a journey request has no language.
	DefaultJourneyLanguage = "tr-TR"
)

// JourneyRequest is the body of journey/getbusjourneys.
type JourneyRequest struct {
	DeviceSession DeviceSession `json:"device-session"`
	Date          string        `json:"date"`
	Language      string        `json:"language"`
	Data          JourneyQuery  `json:"data"`
}

// JourneyQuery selects journeys between two locations on a date.
type JourneyQuery struct {
	OriginID      int    `json:"origin-id"`
	DestinationID int    `json:"destination-id"`
	DepartureDate string `json:"departure-date"`
}

// NewJourneyRequest builds a journey search for the given departure day.
func NewJourneyRequest(session DeviceSession, originID, destinationID int, departure, now time.Time) JourneyRequest {
	return JourneyRequest{
		DeviceSession: session,
		Date:          now.Format(DateTimeLayout),
		Language:      DefaultJourneyLanguage,
		Data: JourneyQuery{
			OriginID:      originID,
			DestinationID: destinationID,
			DepartureDate: departure.Format(DateLayout),
		},
	}
}

// Journey is a single itinerary option.
type Journey struct {
	ID                       int64         `json:"id"`
	PartnerID                int           `json:"partner-id"`
	PartnerName              string        `json:"partner-name"`
	RouteID                  int           `json:"route-id"`
	BusType                  string        `json:"bus-type"`
	TotalSeats               int           `json:"total-seats"`
	AvailableSeats           int           `json:"available-seats"`
	Detail                   JourneyDetail `json:"journey"`
	Features                 []Feature     `json:"features"`
	OriginLocation           string        `json:"origin-location"`
	DestinationLocation      string        `json:"destination-location"`
	IsActive                 bool          `json:"is-active"`
	OriginLocationID         int           `json:"origin-location-id"`
	DestinationLocationID    int           `json:"destination-location-id"`
	IsPromoted               bool          `json:"is-promoted"`
	CancellationOffset       *int          `json:"cancellation-offset"`
	HasBusShuttle            bool          `json:"has-bus-shuttle"`
	DisableSalesWithoutGovID bool          `json:"disable-sales-without-gov-id"`
	DisplayOffset            string        `json:"display-offset"`
	PartnerRating            *float64      `json:"partner-rating"`
}

// ActiveByDeparture returns the active journeys ordered by departure time.
// The input slice is not modified.
func ActiveByDeparture(journeys []Journey) []Journey {
	out := make([]Journey, 0, len(journeys))
	for _, j := range journeys {
		if j.IsActive {
			out = append(out, j)
		}
	}
	slices.SortStableFunc(out, func(a, b Journey) int {
		return a.Detail.Departure.Compare(b.Detail.Departure.Time)
	})
	return out
}

// JourneyDetail holds schedule and pricing of a journey.
type JourneyDetail struct {
	Kind          string          `json:"kind"`
	Code          string          `json:"code"`
	Stops         []Stop          `json:"stops"`
	Origin        string          `json:"origin"`
	Destination   string          `json:"destination"`
	Departure     Timestamp       `json:"departure"`
	Arrival       Timestamp       `json:"arrival"`
	Currency      string          `json:"currency"`
	Duration      string          `json:"duration"`
	OriginalPrice float64         `json:"original-price"`
	InternetPrice float64         `json:"internet-price"`
	Booking       json.RawMessage `json:"booking,omitempty"`
	BusName       string          `json:"bus-name"`
	Policy        Policy          `json:"policy"`
	Features      []string        `json:"features"`
	Description   string          `json:"description"`
	Available     json.RawMessage `json:"available,omitempty"`
}

// Stop is a point on the journey route.
type Stop struct {
	Name          string     `json:"name"`
	Station       string     `json:"station"`
	Time          *Timestamp `json:"time"`
	IsOrigin      bool       `json:"is-origin"`
	IsDestination bool       `json:"is-destination"`
}

// Policy describes seat-selling restrictions.
type Policy struct {
	MaxSeats         *int `json:"max-seats"`
	MaxSingle        *int `json:"max-single"`
	MaxSingleMales   *int `json:"max-single-males"`
	MaxSingleFemales *int `json:"max-single-females"`
	MixedGenders     bool `json:"mixed-genders"`
	GovID            bool `json:"gov-id"`
	LHT              bool `json:"lht"`
}

// Feature is an amenity offered on the bus.
type Feature struct {
	ID          int    `json:"id"`
	Priority    *int   `json:"priority"`
	Name        string `json:"name"`
	Description string `json:"description"`
	IsPromoted  bool   `json:"is-promoted"`
	BackColor   string `json:"back-color"`
	ForeColor   string `json:"fore-color"`
}

// Timestamp decodes the API's local date-times, which usually carry no zone.
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	DateTimeLayout,
	DateLayout,
}

// UnmarshalJSON accepts RFC 3339 as well as zone-less timestamps.
func (t *Timestamp) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		t.Time = time.Time{}
		return nil
	}

	var lastErr error
	for _, layout := range timestampLayouts {
		parsed, err := time.Parse(layout, s)
		if err == nil {
			t.Time = parsed
			return nil
		}
		lastErr = err
	}
	return lastErr
}

// MarshalJSON writes the zone-less layout used by the API.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Format(DateTimeLayout))
}
