package busapi_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/bussearch/pkg/busapi"
	"github.com/dmitrymomot/bussearch/pkg/requestid"
)

type recordedRequest struct {
	Path    string
	Header  http.Header
	Payload map[string]any
}

func newUpstream(t *testing.T, status int, body string) (*httptest.Server, *[]recordedRequest) {
	t.Helper()
	var seen []recordedRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		var payload map[string]any
		_ = json.Unmarshal(raw, &payload)
		seen = append(seen, recordedRequest{Path: r.URL.Path, Header: r.Header.Clone(), Payload: payload})

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &seen
}

func newClient(t *testing.T, baseURL string) *busapi.Client {
	t.Helper()
	c, err := busapi.New(baseURL+"/api", "test-token")
	require.NoError(t, err)
	return c
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("requires token", func(t *testing.T) {
		_, err := busapi.New("https://example.com/api/", "")
		assert.ErrorIs(t, err, busapi.ErrMissingToken)
	})

	t.Run("rejects relative base url", func(t *testing.T) {
		_, err := busapi.New("api/", "token")
		assert.ErrorIs(t, err, busapi.ErrInvalidBaseURL)
	})
}

func TestClient_CreateSession(t *testing.T) {
	t.Parallel()

	t.Run("decodes success envelope", func(t *testing.T) {
		srv, seen := newUpstream(t, http.StatusOK, `{
			"status": "Success",
			"data": {"session-id": "s-1", "device-id": "d-1"},
			"api-request-id": "req-42"
		}`)
		client := newClient(t, srv.URL)

		resp, err := client.CreateSession(context.Background(), busapi.SessionRequest{
			Type:       busapi.SessionType,
			Connection: busapi.Connection{IPAddress: "203.0.113.7", Port: "5117"},
			Browser:    busapi.Browser{Name: "Chrome", Version: "120.0"},
		})
		require.NoError(t, err)
		require.True(t, resp.OK())
		assert.NoError(t, resp.Err())
		assert.Equal(t, busapi.DeviceSession{SessionID: "s-1", DeviceID: "d-1"}, resp.Data.DeviceSession())
		assert.Equal(t, "req-42", resp.APIRequestID)

		require.Len(t, *seen, 1)
		got := (*seen)[0]
		assert.Equal(t, "/api/client/getsession", got.Path)
		assert.Equal(t, "Basic test-token", got.Header.Get("Authorization"))
		assert.Equal(t, "application/json", got.Header.Get("Content-Type"))
		assert.EqualValues(t, 7, got.Payload["type"])
		assert.Equal(t, map[string]any{"ip-address": "203.0.113.7", "port": "5117"}, got.Payload["connection"])
	})

	t.Run("non success status is not a transport error", func(t *testing.T) {
		srv, _ := newUpstream(t, http.StatusOK, `{
			"status": "Failed",
			"data": null,
			"message": "invalid token",
			"user-message": "Please try again later"
		}`)
		client := newClient(t, srv.URL)

		resp, err := client.CreateSession(context.Background(), busapi.SessionRequest{})
		require.NoError(t, err)
		assert.False(t, resp.OK())

		rejErr := resp.Err()
		require.Error(t, rejErr)
		assert.ErrorIs(t, rejErr, busapi.ErrUpstreamRejected)

		var rejected *busapi.RejectedError
		require.ErrorAs(t, rejErr, &rejected)
		assert.Equal(t, "Failed", rejected.Status)
		assert.Equal(t, "Please try again later", rejected.DisplayMessage("fallback"))
	})

	t.Run("envelope on error status code is still decoded", func(t *testing.T) {
		srv, _ := newUpstream(t, http.StatusBadRequest, `{"status": "InvalidModel", "message": "bad input"}`)
		client := newClient(t, srv.URL)

		resp, err := client.CreateSession(context.Background(), busapi.SessionRequest{})
		require.NoError(t, err)
		assert.Equal(t, "InvalidModel", resp.Status)
		assert.ErrorIs(t, resp.Err(), busapi.ErrUpstreamRejected)
	})

	t.Run("garbage body is unavailable", func(t *testing.T) {
		srv, _ := newUpstream(t, http.StatusBadGateway, `<html>bad gateway</html>`)
		client := newClient(t, srv.URL)

		resp, err := client.CreateSession(context.Background(), busapi.SessionRequest{})
		assert.Nil(t, resp)
		assert.ErrorIs(t, err, busapi.ErrUpstreamUnavailable)
	})

	t.Run("connection failure is unavailable", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		baseURL := srv.URL
		srv.Close()

		client := newClient(t, baseURL)
		resp, err := client.CreateSession(context.Background(), busapi.SessionRequest{})
		assert.Nil(t, resp)
		assert.ErrorIs(t, err, busapi.ErrUpstreamUnavailable)
	})

	t.Run("forwards request id", func(t *testing.T) {
		srv, seen := newUpstream(t, http.StatusOK, `{"status": "Success", "data": {"session-id": "s", "device-id": "d"}}`)
		client := newClient(t, srv.URL)

		ctx := requestid.WithContext(context.Background(), "trace-123")
		_, err := client.CreateSession(ctx, busapi.SessionRequest{})
		require.NoError(t, err)
		require.Len(t, *seen, 1)
		assert.Equal(t, "trace-123", (*seen)[0].Header.Get(requestid.Header))
	})
}

func TestClient_SearchLocations(t *testing.T) {
	t.Parallel()

	body := `{
		"status": "Success",
		"data": [
			{"id": 349, "parent-id": 1, "type": "City", "name": "Ankara", "geo-location": {"latitude": 39.9, "longitude": 32.8, "zoom": 12}, "tz-code": "Europe/Istanbul", "rank": 2, "reference-code": "ANK", "keywords": "ankara"},
			{"id": 350, "parent-id": null, "type": "City", "name": "Istanbul", "rank": null}
		]
	}`
	sess := busapi.DeviceSession{SessionID: "s-1", DeviceID: "d-1"}
	now := time.Date(2026, 10, 14, 9, 30, 0, 0, time.UTC)

	t.Run("catalog request sends null data", func(t *testing.T) {
		srv, seen := newUpstream(t, http.StatusOK, body)
		client := newClient(t, srv.URL)

		resp, err := client.SearchLocations(context.Background(), busapi.NewLocationRequest(sess, "  ", now))
		require.NoError(t, err)
		require.Len(t, resp.Data, 2)
		assert.Equal(t, "Ankara", resp.Data[0].Name)
		require.NotNil(t, resp.Data[0].Rank)
		assert.Equal(t, 2, *resp.Data[0].Rank)
		assert.Nil(t, resp.Data[1].ParentID)
		assert.InDelta(t, 39.9, resp.Data[0].GeoLocation.Latitude, 0.0001)

		got := (*seen)[0]
		assert.Equal(t, "/api/location/getbuslocations", got.Path)
		data, present := got.Payload["data"]
		assert.True(t, present)
		assert.Nil(t, data)
		assert.Equal(t, "2026-10-14T09:30:00", got.Payload["date"])
		assert.Equal(t, "en-EN", got.Payload["language"])
		assert.Equal(t, map[string]any{"session-id": "s-1", "device-id": "d-1"}, got.Payload["device-session"])
	})

	t.Run("search request sends term", func(t *testing.T) {
		srv, seen := newUpstream(t, http.StatusOK, body)
		client := newClient(t, srv.URL)

		req := busapi.NewLocationRequest(sess, "ank", now)
		assert.True(t, req.IsSearch())

		_, err := client.SearchLocations(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, "ank", (*seen)[0].Payload["data"])
	})
}

func TestClient_SearchJourneys(t *testing.T) {
	t.Parallel()

	srv, seen := newUpstream(t, http.StatusOK, `{
		"status": "Success",
		"data": [{
			"id": 1001,
			"partner-name": "Metro Turizm",
			"available-seats": 12,
			"origin-location": "Istanbul",
			"destination-location": "Ankara",
			"journey": {
				"origin": "Esenler",
				"destination": "AŞTİ",
				"departure": "2026-10-15T08:30:00",
				"arrival": "2026-10-15T14:00:00",
				"currency": "TRY",
				"internet-price": 450.5,
				"stops": [{"name": "Esenler", "time": "2026-10-15T08:30:00", "is-origin": true}],
				"policy": {"max-seats": 4, "mixed-genders": true}
			},
			"partner-rating": 4.5
		}]
	}`)
	client := newClient(t, srv.URL)

	sess := busapi.DeviceSession{SessionID: "s-1", DeviceID: "d-1"}
	departure := time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)
	resp, err := client.SearchJourneys(context.Background(),
		busapi.NewJourneyRequest(sess, 349, 356, departure, departure.Add(-time.Hour)))
	require.NoError(t, err)
	require.Len(t, resp.Data, 1)

	j := resp.Data[0]
	assert.Equal(t, int64(1001), j.ID)
	assert.Equal(t, 2026, j.Detail.Departure.Year())
	assert.Equal(t, 14, j.Detail.Arrival.Hour())
	assert.InDelta(t, 450.5, j.Detail.InternetPrice, 0.001)
	require.Len(t, j.Detail.Stops, 1)
	require.NotNil(t, j.Detail.Stops[0].Time)
	assert.Equal(t, 8, j.Detail.Stops[0].Time.Hour())
	require.NotNil(t, j.Detail.Policy.MaxSeats)
	assert.Equal(t, 4, *j.Detail.Policy.MaxSeats)

	got := (*seen)[0]
	assert.Equal(t, "/api/journey/getbusjourneys", got.Path)
	assert.Equal(t, "tr-TR", got.Payload["language"])
	assert.Equal(t, map[string]any{
		"origin-id":      float64(349),
		"destination-id": float64(356),
		"departure-date": "2026-10-15",
	}, got.Payload["data"])
}

func TestSortByRank(t *testing.T) {
	t.Parallel()

	rank := func(v int) *int { return &v }
	locations := []busapi.Location{
		{ID: 1, Rank: nil},
		{ID: 2, Rank: rank(3)},
		{ID: 3, Rank: rank(1)},
		{ID: 4, Rank: nil},
		{ID: 5, Rank: rank(3)},
	}

	busapi.SortByRank(locations)

	ids := make([]int, 0, len(locations))
	for _, l := range locations {
		ids = append(ids, l.ID)
	}
	assert.Equal(t, []int{3, 2, 5, 1, 4}, ids)
}

func TestTimestamp(t *testing.T) {
	t.Parallel()

	var ts busapi.Timestamp
	require.NoError(t, json.Unmarshal([]byte(`"2026-10-15T08:30:00+03:00"`), &ts))
	assert.Equal(t, 8, ts.Hour())

	require.NoError(t, json.Unmarshal([]byte(`null`), &ts))
	assert.True(t, ts.IsZero())

	assert.Error(t, json.Unmarshal([]byte(`"yesterday"`), &ts))

	out, err := json.Marshal(busapi.Timestamp{Time: time.Date(2026, 10, 15, 8, 30, 0, 0, time.UTC)})
	require.NoError(t, err)
	assert.Equal(t, `"2026-10-15T08:30:00"`, string(out))
}

func TestActiveByDeparture(t *testing.T) {
	t.Parallel()

	at := func(h int) busapi.JourneyDetail {
		return busapi.JourneyDetail{Departure: busapi.Timestamp{Time: time.Date(2026, 10, 15, h, 0, 0, 0, time.UTC)}}
	}
	journeys := []busapi.Journey{
		{ID: 1, IsActive: true, Detail: at(18)},
		{ID: 2, IsActive: false, Detail: at(6)},
		{ID: 3, IsActive: true, Detail: at(9)},
		{ID: 4, IsActive: true, Detail: at(9)},
	}

	got := busapi.ActiveByDeparture(journeys)

	ids := make([]int64, 0, len(got))
	for _, j := range got {
		ids = append(ids, j.ID)
	}
	assert.Equal(t, []int64{3, 4, 1}, ids)
	assert.Equal(t, int64(1), journeys[0].ID)
}
