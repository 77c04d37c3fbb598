package utils

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// RequestIDHeader carries the request id in and out of the server.
const RequestIDHeader = "X-Request-ID"

// NewRequestID returns a random UUIDv4 string.
func NewRequestID() string {
	return uuid.NewString()
}

// RequestID reuses a caller-supplied UUID from the request headers, or
// generates a fresh one.
func RequestID(r *http.Request) string {
	if id := strings.TrimSpace(r.Header.Get(RequestIDHeader)); id != "" {
		if _, err := uuid.Parse(id); err == nil {
			return id
		}
	}
	return NewRequestID()
}
