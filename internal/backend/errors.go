// Route Variety - Activity Route Explorer with Nearby Points of Interest
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/routevariety

package backend

import (
	"errors"
	"fmt"
	"io"
	"net/http"
)

var (
	// ErrInvalidActivityID is returned without a request for ids <= 0.
	ErrInvalidActivityID = errors.New("invalid activity id")

	// ErrUnauthorized matches a StatusError carrying 401 or 403.
	ErrUnauthorized = errors.New("backend session not authorized")
)

// StatusError is a non-2xx answer from the backend.
type StatusError struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s request failed with status %d: %s", e.Op, e.StatusCode, e.Body)
}

// Is lets errors.Is(err, ErrUnauthorized) hold for 401 and 403.
func (e *StatusError) Is(target error) bool {
	return target == ErrUnauthorized &&
		(e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden)
}

// ServerSide reports a 5xx answer, which counts against the circuit breaker.
func (e *StatusError) ServerSide() bool {
	return e.StatusCode >= 500
}

// maxErrorBodySize limits how much of an error body is kept.
const maxErrorBodySize = 64 * 1024

// readBodyForError reads at most maxErrorBodySize bytes for diagnostics.
func readBodyForError(r io.Reader) string {
	body, err := io.ReadAll(io.LimitReader(r, maxErrorBodySize))
	if err != nil {
		return "(failed to read response body)"
	}
	if len(body) == maxErrorBodySize {
		return string(body) + "\n... (truncated)"
	}
	return string(body)
}
