// Route Variety - Activity Route Explorer with Nearby Points of Interest
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/routevariety

/*
Package backend is the REST client for the activity backend.

The backend owns OAuth, the user's fitness account, activity streams and
POI search. This server never sees the user's credentials; it forwards the
browser's backend session cookie on every call.

Resilience:
  - One round trip per call: no retries, no backoff, no caching
  - A circuit breaker fails fast while the backend is known down
    (5xx and transport failures count; 4xx answers do not)
  - Every call honours the request context and a per-request timeout
  - Outgoing calls share a token bucket so one busy tab cannot exhaust
    the backend's third-party API quota
*/
package backend

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/tomtom215/routevariety/internal/config"
	"github.com/tomtom215/routevariety/internal/logging"
	"github.com/tomtom215/routevariety/internal/metrics"
	"github.com/tomtom215/routevariety/internal/models"
)

// API is the backend surface used by the view controllers.
type API interface {
	// CheckAuthStatus never fails; any error means "not authenticated".
	CheckAuthStatus(ctx context.Context) bool
	GetActivities(ctx context.Context) ([]models.Activity, error)
	GetActivityStream(ctx context.Context, activityID int64) (models.ActivityStream, error)
	FindPOIs(ctx context.Context, route models.ActivityStream) ([]models.POI, error)
}

// maxResponseSize bounds successful response bodies. Long GPS streams are
// the largest payload.
const maxResponseSize = 32 << 20

// Client holds the shared transport and breaker. Use Session to obtain an
// API bound to one browser's cookies.
type Client struct {
	baseURL       string
	loginPath     string
	sessionCookie string
	httpClient    *http.Client
	breaker       *gobreaker.CircuitBreaker[[]byte]
	limiter       *rate.Limiter
}

// NewClient creates a backend client from configuration.
func NewClient(cfg config.BackendConfig) *Client {
	return &Client{
		baseURL:       strings.TrimRight(cfg.URL, "/"),
		loginPath:     cfg.LoginPath,
		sessionCookie: cfg.SessionCookie,
		httpClient:    &http.Client{Timeout: cfg.Timeout},
		breaker:       newBreaker(cfg.Breaker),
		limiter:       newLimiter(cfg.RateLimit, cfg.RateBurst),
	}
}

// newLimiter returns an unlimited limiter when perSecond is not positive.
func newLimiter(perSecond float64, burst int) *rate.Limiter {
	if perSecond <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(perSecond), burst)
}

// LoginURL is the backend OAuth initiation address the login page links to.
func (c *Client) LoginURL() string {
	return c.baseURL + c.loginPath
}

// Session binds the client to the cookies of an incoming browser request.
// Only the configured session cookie is forwarded; when none is configured
// every cookie is.
func (c *Client) Session(r *http.Request) *Session {
	if c.sessionCookie == "" {
		return c.WithCookies(r.Cookies())
	}
	ck, err := r.Cookie(c.sessionCookie)
	if err != nil {
		return c.WithCookies(nil)
	}
	return c.WithCookies([]*http.Cookie{ck})
}

// WithCookies binds the client to an explicit cookie set.
func (c *Client) WithCookies(cookies []*http.Cookie) *Session {
	return &Session{client: c, cookies: cookies}
}

// Session is a Client bound to one browser's backend credentials.
type Session struct {
	client  *Client
	cookies []*http.Cookie
}

var _ API = (*Session)(nil)

// CheckAuthStatus asks the backend whether the forwarded session is logged in.
func (s *Session) CheckAuthStatus(ctx context.Context) bool {
	var status struct {
		Authenticated bool `json:"authenticated"`
	}
	if err := s.do(ctx, "auth_status", http.MethodGet, "/auth/status", nil, &status); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Msg("Auth status check failed, treating as logged out")
		return false
	}
	return status.Authenticated
}

// GetActivities lists the user's recent activities with GPS data.
func (s *Session) GetActivities(ctx context.Context) ([]models.Activity, error) {
	var activities []models.Activity
	if err := s.do(ctx, "get_activities", http.MethodGet, "/api/activities", nil, &activities); err != nil {
		return nil, err
	}
	return activities, nil
}

// GetActivityStream fetches the GPS track of one activity. A null stream
// decodes to an empty one.
func (s *Session) GetActivityStream(ctx context.Context, activityID int64) (models.ActivityStream, error) {
	if activityID <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidActivityID, activityID)
	}
	var resp struct {
		Stream models.ActivityStream `json:"stream"`
	}
	path := fmt.Sprintf("/api/activities/%d/stream", activityID)
	if err := s.do(ctx, "get_activity_stream", http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	if resp.Stream == nil {
		return models.ActivityStream{}, nil
	}
	return resp.Stream, nil
}

// FindPOIs asks the backend for points of interest near route.
func (s *Session) FindPOIs(ctx context.Context, route models.ActivityStream) ([]models.POI, error) {
	payload := struct {
		Route models.ActivityStream `json:"route"`
	}{Route: route}
	var pois []models.POI
	if err := s.do(ctx, "find_pois", http.MethodPost, "/api/pois", payload, &pois); err != nil {
		return nil, err
	}
	return pois, nil
}

// do performs one round trip and decodes a 2xx body into result.
func (s *Session) do(ctx context.Context, op, method, path string, payload, result interface{}) error {
	start := time.Now()
	err := s.roundTrip(ctx, op, method, path, payload, result)
	metrics.RecordBackendRequest(op, time.Since(start), errorType(err))

	logging.Ctx(ctx).Debug().
		Str("op", op).
		Str("path", path).
		Dur("duration", time.Since(start)).
		Err(err).
		Msg("Backend request")
	return err
}

func (s *Session) roundTrip(ctx context.Context, op, method, path string, payload, result interface{}) error {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode %s request: %w", op, err)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.client.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create %s request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, ck := range s.cookies {
		req.AddCookie(ck)
	}

	if err := s.client.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%s request throttled: %w", op, err)
	}

	raw, err := s.client.execute(func() ([]byte, error) {
		resp, err := s.client.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("failed to make %s request: %w", op, err)
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return nil, &StatusError{Op: op, StatusCode: resp.StatusCode, Body: readBodyForError(resp.Body)}
		}
		data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
		if err != nil {
			return nil, fmt.Errorf("failed to read %s response: %w", op, err)
		}
		return data, nil
	})
	if err != nil {
		if isRejected(err) {
			return fmt.Errorf("%s request rejected: %w", op, err)
		}
		return err
	}

	if err := json.Unmarshal(raw, result); err != nil {
		return &DecodeError{Op: op, Err: err}
	}
	return nil
}

// DecodeError is a 2xx answer whose body did not match the expected shape.
type DecodeError struct {
	Op  string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode %s response: %v", e.Op, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// errorType is the error_type metric label for err.
func errorType(err error) string {
	var statusErr *StatusError
	var decodeErr *DecodeError
	switch {
	case err == nil:
		return ""
	case isRejected(err):
		return "breaker_open"
	case errors.As(err, &statusErr):
		return "status"
	case errors.As(err, &decodeErr):
		return "decode"
	default:
		return "transport"
	}
}
