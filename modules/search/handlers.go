package search

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrymomot/bussearch/handler"
	"github.com/dmitrymomot/bussearch/pkg/binder"
	"github.com/dmitrymomot/bussearch/pkg/busapi"
	"github.com/dmitrymomot/bussearch/pkg/devicesession"
	"github.com/dmitrymomot/bussearch/pkg/logger"
)

const (
	locationsFallback = "An error occurred while retrieving bus locations."
	journeysFallback  = "An error occurred while retrieving journeys."
)

// LocationOption is a selectable location.
type LocationOption struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func locationOptions(locations []busapi.Location) []LocationOption {
	out := make([]LocationOption, 0, len(locations))
	for _, l := range locations {
		out = append(out, LocationOption{ID: l.ID, Name: l.Name})
	}
	return out
}

// IndexData is the search form state.
type IndexData struct {
	Preferences Preferences      `json:"preferences"`
	Locations   []LocationOption `json:"locations"`
}

// index returns the saved preferences and the ranked location catalog.
// A failed catalog read still returns the preferences, with a warning.
func (s *Service) index(ctx handler.Context, _ struct{}) handler.Response {
	session, ok := devicesession.FromContext(ctx)
	if !ok {
		return handler.JSONError(ErrSessionUnavailable)
	}

	data := IndexData{
		Preferences: s.loadPreferences(ctx.ResponseWriter(), ctx.Request()),
		Locations:   []LocationOption{},
	}

	resp, err := s.locations.GetAllLocations(ctx, busapi.NewLocationRequest(*session, "", s.now()))
	if err == nil {
		err = resp.Err()
	}
	if err != nil {
		s.logger.WarnContext(ctx, "location catalog unavailable", logger.Error(err))
		return handler.JSON(data, handler.WithJSONMeta(map[string]any{
			"warning": "Failed to retrieve bus locations.",
		}))
	}

	data.Locations = locationOptions(resp.Data)
	return handler.JSON(data, handler.WithJSONMeta(map[string]any{"count": len(data.Locations)}))
}

// LocationQuery is the free-text location search.
type LocationQuery struct {
	Term string `query:"q"`
}

// searchLocations queries upstream for a term, or serves the cached catalog
// when the term is empty.
func (s *Service) searchLocations(ctx handler.Context, req LocationQuery) handler.Response {
	session, ok := devicesession.FromContext(ctx)
	if !ok {
		return handler.JSONError(ErrSessionUnavailable)
	}

	lreq := busapi.NewLocationRequest(*session, req.Term, s.now())
	resp, err := s.locations.Search(ctx, lreq)
	if err == nil {
		err = resp.Err()
	}
	if err != nil {
		s.logger.WarnContext(ctx, "location search failed", slog.String("term", lreq.Query()), logger.Error(err))
		return handler.JSONError(upstreamError(err, locationsFallback))
	}

	locations := resp.Data
	if lreq.IsSearch() {
		locations = append([]busapi.Location(nil), resp.Data...)
		busapi.SortByRank(locations)
	}
	options := locationOptions(locations)
	return handler.JSON(options, handler.WithJSONMeta(map[string]any{
		"count": len(options),
		"query": lreq.Query(),
	}))
}

// JourneyQuery selects journeys between two locations.
type JourneyQuery struct {
	OriginID        int    `query:"origin_id" validate:"required,gt=0"`
	DestinationID   int    `query:"destination_id" validate:"required,gt=0,nefield=OriginID"`
	Date            string `query:"date" validate:"omitempty,datetime=2006-01-02"`
	OriginName      string `query:"origin_name"`
	DestinationName string `query:"destination_name"`
}

// JourneyData is the result of a journey search.
type JourneyData struct {
	Origin        LocationOption   `json:"origin"`
	Destination   LocationOption   `json:"destination"`
	DepartureDate string           `json:"departure_date"`
	Journeys      []busapi.Journey `json:"journeys"`
}

// searchJourneys remembers the query as preferences and returns the active
// journeys ordered by departure. An empty date means tomorrow.
func (s *Service) searchJourneys(ctx handler.Context, req JourneyQuery) handler.Response {
	departure := s.tomorrow()
	if req.Date != "" {
		d, err := time.ParseInLocation(busapi.DateLayout, req.Date, s.now().Location())
		if err != nil {
			return handler.JSONError(binder.FieldErrors{"date": {"must be a date in 2006-01-02 format"}})
		}
		if d.Before(s.today()) {
			return handler.JSONError(binder.FieldErrors{"date": {"cannot be in the past"}})
		}
		departure = d
	}

	session, ok := devicesession.FromContext(ctx)
	if !ok {
		return handler.JSONError(ErrSessionUnavailable)
	}

	prefs := Preferences{
		OriginID:        req.OriginID,
		OriginName:      strings.TrimSpace(req.OriginName),
		DestinationID:   req.DestinationID,
		DestinationName: strings.TrimSpace(req.DestinationName),
		Date:            departure.Format(busapi.DateLayout),
	}
	if err := s.savePreferences(ctx.ResponseWriter(), prefs); err != nil {
		s.logger.WarnContext(ctx, "failed to save search preferences", logger.Error(err))
	}

	resp, err := s.journeys.SearchJourneys(ctx, busapi.NewJourneyRequest(*session, req.OriginID, req.DestinationID, departure, s.now()))
	if err == nil {
		err = resp.Err()
	}
	if err != nil {
		s.logger.WarnContext(ctx, "journey search failed",
			slog.Int("origin_id", req.OriginID),
			slog.Int("destination_id", req.DestinationID),
			logger.Error(err),
		)
		return handler.JSONError(upstreamError(err, journeysFallback))
	}

	journeys := busapi.ActiveByDeparture(resp.Data)
	s.logger.InfoContext(ctx, "journeys found",
		slog.Int("origin_id", req.OriginID),
		slog.Int("destination_id", req.DestinationID),
		slog.Int("count", len(journeys)),
	)

	return handler.JSON(JourneyData{
		Origin:        LocationOption{ID: req.OriginID, Name: orUnknownLocation(prefs.OriginName)},
		Destination:   LocationOption{ID: req.DestinationID, Name: orUnknownLocation(prefs.DestinationName)},
		DepartureDate: prefs.Date,
		Journeys:      journeys,
	}, handler.WithJSONMeta(map[string]any{"count": len(journeys)}))
}

func orUnknownLocation(name string) string {
	if name == "" {
		return "Unknown Location"
	}
	return name
}

// swapLocations exchanges origin and destination in the saved preferences.
func (s *Service) swapLocations(ctx handler.Context, _ struct{}) handler.Response {
	w := ctx.ResponseWriter()
	prefs := s.loadPreferences(w, ctx.Request())
	prefs.Swap()
	if err := s.savePreferences(w, prefs); err != nil {
		return handler.JSONError(err)
	}
	return handler.JSON(prefs, handler.WithJSONMeta(map[string]any{
		"message": "Origin and destination locations have been swapped.",
	}))
}

// DateSelection picks a relative departure date.
type DateSelection struct {
	Type string `query:"type" form:"type" validate:"required"`
}

// setDate sets the saved departure date to today or tomorrow.
func (s *Service) setDate(ctx handler.Context, req DateSelection) handler.Response {
	w := ctx.ResponseWriter()
	prefs := s.loadPreferences(w, ctx.Request())

	var message string
	switch strings.ToLower(strings.TrimSpace(req.Type)) {
	case "today":
		prefs.Date = s.today().Format(busapi.DateLayout)
		message = "Departure date set to today."
	case "tomorrow":
		prefs.Date = s.tomorrow().Format(busapi.DateLayout)
		message = "Departure date set to tomorrow."
	default:
		return handler.JSONError(binder.FieldErrors{"type": {"must be one of: today tomorrow"}})
	}

	if err := s.savePreferences(w, prefs); err != nil {
		return handler.JSONError(err)
	}
	return handler.JSON(prefs, handler.WithJSONMeta(map[string]any{"message": message}))
}

// invalidateCache drops the cached location catalog.
func (s *Service) invalidateCache(ctx handler.Context, _ struct{}) handler.Response {
	if err := s.locations.InvalidateCache(ctx); err != nil {
		s.logger.ErrorContext(ctx, "cache invalidation failed", logger.Error(err))
		return handler.JSONError(ErrCacheInvalidation)
	}
	s.logger.InfoContext(ctx, "location cache invalidated")
	return handler.Empty()
}

// ErrorQuery carries the status of the error page.
type ErrorQuery struct {
	Code int `query:"code"`
}

// errorPage renders a JSON error for the given status, 500 by default.
func (s *Service) errorPage(_ handler.Context, req ErrorQuery) handler.Response {
	code := req.Code
	if code < http.StatusBadRequest || code > 599 {
		code = http.StatusInternalServerError
	}
	text := http.StatusText(code)
	if text == "" {
		text = "Error"
	}
	key := strings.ReplaceAll(strings.ToLower(text), " ", "_")
	return handler.JSONError(handler.NewHTTPError(code, key).WithMessage(text))
}
