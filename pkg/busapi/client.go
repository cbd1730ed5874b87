package busapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrymomot/bussearch/pkg/logger"
	"github.com/dmitrymomot/bussearch/pkg/requestid"
)

const (
	endpointSession   = "client/getsession"
	endpointLocations = "location/getbuslocations"
	endpointJourneys  = "journey/getbusjourneys"

	defaultTimeout = 30 * time.Second

	// maxResponseSize bounds the body read; the full location catalog is a few MB.
	maxResponseSize = 32 << 20
)

// API is the set of upstream operations used by the façade.
type API interface {
	CreateSession(ctx context.Context, req SessionRequest) (*SessionResponse, error)
	SearchLocations(ctx context.Context, req LocationRequest) (*LocationResponse, error)
	SearchJourneys(ctx context.Context, req JourneyRequest) (*JourneyResponse, error)
}

var _ API = (*Client)(nil)

// Client talks to the bus search API over HTTP.
// Every call is a single attempt; there are no retries.
type Client struct {
	baseURL *url.URL
	token   string
	timeout time.Duration
	http    *http.Client
	logger  *slog.Logger
}

// New creates a client for the API rooted at baseURL.
func New(baseURL, token string, opts ...Option) (*Client, error) {
	if token == "" {
		return nil, ErrMissingToken
	}

	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, errors.Join(ErrInvalidBaseURL, err)
	}
	// Endpoints are relative; without a trailing slash the last path segment would be dropped.
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}

	c := &Client{
		baseURL: u,
		token:   token,
		timeout: defaultTimeout,
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		c.http = &http.Client{Timeout: c.timeout}
	}

	return c, nil
}

// CreateSession obtains a new device session.
func (c *Client) CreateSession(ctx context.Context, req SessionRequest) (*SessionResponse, error) {
	return post[*SessionData](ctx, c, endpointSession, req)
}

// SearchLocations returns the full catalog when req has no query,
// otherwise the locations matching it.
func (c *Client) SearchLocations(ctx context.Context, req LocationRequest) (*LocationResponse, error) {
	if req.Language == "" {
		req.Language = DefaultLocationLanguage
	}
	return post[[]Location](ctx, c, endpointLocations, req)
}

// SearchJourneys returns itinerary options for the requested route and day.
func (c *Client) SearchJourneys(ctx context.Context, req JourneyRequest) (*JourneyResponse, error) {
	if req.Language == "" {
		req.Language = DefaultJourneyLanguage
	}
	return post[[]Journey](ctx, c, endpointJourneys, req)
}

// post sends body to endpoint and decodes the envelope.
// Any failure before a decoded envelope is available is ErrUpstreamUnavailable.
func post[T any](ctx context.Context, c *Client, endpoint string, body any) (*Envelope[T], error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, errors.Join(ErrUpstreamUnavailable, fmt.Errorf("marshal request: %w", err))
	}

	target := c.baseURL.ResolveReference(&url.URL{Path: endpoint})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target.String(), bytes.NewReader(payload))
	if err != nil {
		return nil, errors.Join(ErrUpstreamUnavailable, fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Basic "+c.token)
	if id := requestid.FromContext(ctx); id != "" {
		req.Header.Set(requestid.Header, id)
	}

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.WarnContext(ctx, "upstream request failed",
			logger.Endpoint(endpoint),
			logger.Duration(time.Since(started)),
			logger.Error(err),
		)
		return nil, errors.Join(ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, errors.Join(ErrUpstreamUnavailable, fmt.Errorf("read response: %w", err))
	}

	// Non-2xx answers still carry an envelope most of the time; only an undecodable body is a failure.
	var env Envelope[T]
	if err := json.Unmarshal(raw, &env); err != nil || env.Status == "" {
		if err == nil {
			err = errors.New("response has no status")
		}
		c.logger.WarnContext(ctx, "upstream response not decodable",
			logger.Endpoint(endpoint),
			slog.Int("http_status", resp.StatusCode),
			logger.Error(err),
		)
		return nil, errors.Join(ErrUpstreamUnavailable, fmt.Errorf("decode response (HTTP %d): %w", resp.StatusCode, err))
	}

	c.logger.DebugContext(ctx, "upstream request completed",
		logger.Endpoint(endpoint),
		slog.Int("http_status", resp.StatusCode),
		logger.Status(env.Status),
		logger.APIRequestID(env.APIRequestID),
		logger.Duration(time.Since(started)),
	)

	return &env, nil
}
