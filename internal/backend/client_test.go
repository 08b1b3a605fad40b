// Route Variety - Activity Route Explorer with Nearby Points of Interest
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/routevariety

package backend

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/routevariety/internal/config"
	"github.com/tomtom215/routevariety/internal/models"
)

func testConfig(url string) config.BackendConfig {
	return config.BackendConfig{
		URL:           url,
		Timeout:       5 * time.Second,
		SessionCookie: "session",
		LoginPath:     "/auth/strava",
		Breaker: config.BreakerConfig{
			MaxRequests:  1,
			Interval:     time.Minute,
			Timeout:      time.Minute,
			MinRequests:  3,
			FailureRatio: 0.6,
		},
	}
}

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *int32) {
	t.Helper()
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		handler(w, r)
	}))
	t.Cleanup(server.Close)
	return NewClient(testConfig(server.URL)), &hits
}

func sessionWithCookie(c *Client) *Session {
	return c.WithCookies([]*http.Cookie{{Name: "session", Value: "abc"}})
}

func TestCheckAuthStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		status   int
		body     string
		expected bool
	}{
		{"authenticated", http.StatusOK, `{"authenticated":true}`, true},
		{"not authenticated", http.StatusOK, `{"authenticated":false}`, false},
		{"server error", http.StatusInternalServerError, `boom`, false},
		{"garbage", http.StatusOK, `not json`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/auth/status" {
					t.Errorf("path = %q, want /auth/status", r.URL.Path)
				}
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			})
			if got := sessionWithCookie(client).CheckAuthStatus(context.Background()); got != tt.expected {
				t.Errorf("CheckAuthStatus() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestCheckAuthStatus_TransportFailure(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	client := NewClient(testConfig(url))
	if client.WithCookies(nil).CheckAuthStatus(context.Background()) {
		t.Error("expected false when backend is unreachable")
	}
}

func TestSession_ForwardsSessionCookie(t *testing.T) {
	t.Parallel()

	cookies := make(chan []*http.Cookie, 1)
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		cookies <- r.Cookies()
		_, _ = io.WriteString(w, `[]`)
	})

	browser := httptest.NewRequest(http.MethodGet, "/activities", nil)
	browser.AddCookie(&http.Cookie{Name: "session", Value: "abc"})
	browser.AddCookie(&http.Cookie{Name: "tracking", Value: "nope"})

	if _, err := client.Session(browser).GetActivities(context.Background()); err != nil {
		t.Fatalf("GetActivities: %v", err)
	}
	got := <-cookies
	if len(got) != 1 || got[0].Name != "session" || got[0].Value != "abc" {
		t.Errorf("forwarded cookies = %v, want only session=abc", got)
	}
}

func TestSession_ForwardsAllCookiesWhenUnconfigured(t *testing.T) {
	t.Parallel()

	cookies := make(chan []*http.Cookie, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookies <- r.Cookies()
		_, _ = io.WriteString(w, `[]`)
	}))
	defer server.Close()

	cfg := testConfig(server.URL)
	cfg.SessionCookie = ""
	client := NewClient(cfg)

	browser := httptest.NewRequest(http.MethodGet, "/", nil)
	browser.AddCookie(&http.Cookie{Name: "a", Value: "1"})
	browser.AddCookie(&http.Cookie{Name: "b", Value: "2"})

	if _, err := client.Session(browser).GetActivities(context.Background()); err != nil {
		t.Fatalf("GetActivities: %v", err)
	}
	if got := <-cookies; len(got) != 2 {
		t.Errorf("forwarded %d cookies, want 2", len(got))
	}
}

func TestGetActivities(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `[{"id":1,"name":"Morning Run","distance":5012.3,"type":"Run","start_date":"2024-05-01T07:30:00Z"}]`)
	})

	activities, err := sessionWithCookie(client).GetActivities(context.Background())
	if err != nil {
		t.Fatalf("GetActivities: %v", err)
	}
	if len(activities) != 1 || activities[0].Name != "Morning Run" || activities[0].ID != 1 {
		t.Errorf("unexpected activities %+v", activities)
	}
}

func TestGetActivities_Unauthorized(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"error":"login required"}`)
	})

	_, err := sessionWithCookie(client).GetActivities(context.Background())
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	var statusErr *StatusError
	if !errors.As(err, &statusErr) || statusErr.StatusCode != 401 {
		t.Fatalf("expected *StatusError 401, got %v", err)
	}
	if !strings.Contains(statusErr.Body, "login required") {
		t.Errorf("Body = %q", statusErr.Body)
	}
}

func TestGetActivityStream(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/activities/42/stream":
			_, _ = io.WriteString(w, `{"stream":[[51.5,-0.12],[51.51,-0.13]]}`)
		case "/api/activities/7/stream":
			_, _ = io.WriteString(w, `{"stream":null}`)
		default:
			http.NotFound(w, r)
		}
	})
	s := sessionWithCookie(client)

	stream, err := s.GetActivityStream(context.Background(), 42)
	if err != nil {
		t.Fatalf("GetActivityStream(42): %v", err)
	}
	want := models.ActivityStream{{51.5, -0.12}, {51.51, -0.13}}
	if len(stream) != 2 || stream[0] != want[0] || stream[1] != want[1] {
		t.Errorf("stream = %v, want %v", stream, want)
	}

	empty, err := s.GetActivityStream(context.Background(), 7)
	if err != nil {
		t.Fatalf("GetActivityStream(7): %v", err)
	}
	if empty == nil || len(empty) != 0 {
		t.Errorf("null stream = %v, want empty non-nil", empty)
	}
}

func TestGetActivityStream_InvalidIDMakesNoRequest(t *testing.T) {
	t.Parallel()

	client, hits := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})

	for _, id := range []int64{0, -5} {
		if _, err := sessionWithCookie(client).GetActivityStream(context.Background(), id); !errors.Is(err, ErrInvalidActivityID) {
			t.Errorf("GetActivityStream(%d) error = %v, want ErrInvalidActivityID", id, err)
		}
	}
	if n := atomic.LoadInt32(hits); n != 0 {
		t.Errorf("backend hit %d times, want 0", n)
	}
}

func TestFindPOIs(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/pois" {
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}
		var body struct {
			Route models.ActivityStream `json:"route"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if len(body.Route) != 2 {
			t.Errorf("route length = %d, want 2", len(body.Route))
		}
		_, _ = io.WriteString(w, `[{"name":"Cafe","type":"restaurant","coords":[51.505,-0.125],"rating":4.5}]`)
	})

	route := models.ActivityStream{{51.5, -0.12}, {51.51, -0.13}}
	pois, err := sessionWithCookie(client).FindPOIs(context.Background(), route)
	if err != nil {
		t.Fatalf("FindPOIs: %v", err)
	}
	if len(pois) != 1 || pois[0].Name != "Cafe" || pois[0].Rating == nil || *pois[0].Rating != 4.5 {
		t.Errorf("unexpected POIs %+v", pois)
	}
}

func TestClient_NeverRetries(t *testing.T) {
	t.Parallel()

	client, hits := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := sessionWithCookie(client).GetActivities(context.Background())
	var statusErr *StatusError
	if !errors.As(err, &statusErr) || statusErr.StatusCode != http.StatusBadGateway {
		t.Fatalf("expected 502 StatusError, got %v", err)
	}
	if n := atomic.LoadInt32(hits); n != 1 {
		t.Errorf("backend hit %d times, want exactly 1", n)
	}
}

func TestClient_RateLimit(t *testing.T) {
	t.Parallel()

	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		_, _ = w.Write([]byte(`[]`))
	}))
	t.Cleanup(server.Close)

	cfg := testConfig(server.URL)
	cfg.RateLimit = 0.5
	cfg.RateBurst = 1
	session := sessionWithCookie(NewClient(cfg))

	if _, err := session.GetActivities(context.Background()); err != nil {
		t.Fatalf("first call: %v", err)
	}

	// The next token is two seconds away, past the deadline.
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := session.GetActivities(ctx)
	if err == nil || !strings.Contains(err.Error(), "throttled") {
		t.Errorf("second call err = %v, want throttled", err)
	}
	if n := atomic.LoadInt32(&hits); n != 1 {
		t.Errorf("backend hit %d times, want 1", n)
	}
}

func TestNewLimiter_Unlimited(t *testing.T) {
	t.Parallel()

	l := newLimiter(0, 0)
	for i := 0; i < 100; i++ {
		if !l.Allow() {
			t.Fatalf("call %d throttled by unlimited limiter", i)
		}
	}
}

func TestClient_BreakerOpensOnServerErrors(t *testing.T) {
	t.Parallel()

	client, hits := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	s := sessionWithCookie(client)

	for i := 0; i < 3; i++ {
		_, _ = s.GetActivities(context.Background())
	}
	if state := client.BreakerState(); state != "open" {
		t.Fatalf("BreakerState() = %q, want open", state)
	}

	_, err := s.GetActivities(context.Background())
	if err == nil || !isRejected(err) {
		t.Fatalf("expected rejected error, got %v", err)
	}
	if n := atomic.LoadInt32(hits); n != 3 {
		t.Errorf("backend hit %d times, want 3", n)
	}
}

func TestClient_BreakerIgnoresClientErrors(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})
	s := sessionWithCookie(client)

	for i := 0; i < 5; i++ {
		_, _ = s.GetActivities(context.Background())
	}
	if state := client.BreakerState(); state != "closed" {
		t.Errorf("BreakerState() = %q, want closed", state)
	}
}

func TestClient_LoginURL(t *testing.T) {
	t.Parallel()

	client := NewClient(testConfig("http://backend.example:5000/"))
	if got := client.LoginURL(); got != "http://backend.example:5000/auth/strava" {
		t.Errorf("LoginURL() = %q", got)
	}
}

func TestReadBodyForError_Truncates(t *testing.T) {
	t.Parallel()

	big := strings.Repeat("x", maxErrorBodySize+100)
	got := readBodyForError(strings.NewReader(big))
	if !strings.HasSuffix(got, "(truncated)") {
		t.Error("expected truncation marker")
	}
	if len(got) > maxErrorBodySize+32 {
		t.Errorf("body length %d exceeds cap", len(got))
	}
}

func TestErrorType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err      error
		expected string
	}{
		{nil, ""},
		{&StatusError{StatusCode: 500}, "status"},
		{&DecodeError{Op: "x", Err: errors.New("bad")}, "decode"},
		{errors.New("dial tcp: refused"), "transport"},
	}
	for _, tt := range tests {
		if got := errorType(tt.err); got != tt.expected {
			t.Errorf("errorType(%v) = %q, want %q", tt.err, got, tt.expected)
		}
	}
}
