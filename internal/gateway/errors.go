package gateway

import (
	"encoding/json"
	"errors"
	"net/http"
)

// ErrSessionExpired marks any 401 from the upstream API. The gateway never
// navigates or touches cookies itself; the page layer owns the eviction and
// the redirect to /login.
var ErrSessionExpired = errors.New("session expired")

// APIError is a response the server did answer with, status outside 2xx.
// Its absence in an error chain means the server was never reached.
type APIError struct {
	StatusCode int
	Detail     string
	Body       []byte
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	if txt := http.StatusText(e.StatusCode); txt != "" {
		return txt
	}
	return "request failed"
}

func (e *APIError) Unwrap() error {
	if e.StatusCode == http.StatusUnauthorized {
		return ErrSessionExpired
	}
	return nil
}

// IsUnreachable reports whether err means the server never answered, as
// opposed to answering with an error status.
func IsUnreachable(err error) bool {
	if err == nil {
		return false
	}
	var ae *APIError
	return !errors.As(err, &ae)
}

// UserMessage renders err the way forms surface it: the server's detail
// field, then the HTTP status text, then a generic failure string. Errors
// without a response collapse to a fixed network-error message.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var ae *APIError
	if errors.As(err, &ae) {
		return ae.Error()
	}
	return "network error"
}

func newAPIError(status int, body []byte) *APIError {
	e := &APIError{StatusCode: status, Body: body}

	// FastAPI-style error bodies carry a "detail" field, which may be a
	// plain string or a structured validation payload.
	var probe struct {
		Detail  json.RawMessage `json:"detail"`
		Message string          `json:"message"`
	}
	if json.Unmarshal(body, &probe) == nil {
		if len(probe.Detail) > 0 {
			var s string
			if json.Unmarshal(probe.Detail, &s) == nil {
				e.Detail = s
			} else {
				e.Detail = string(probe.Detail)
			}
		} else if probe.Message != "" {
			e.Detail = probe.Message
		}
	}
	return e
}
