package ai

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"regexp"
	"strings"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// transientStatus matches a retryable HTTP status quoted in an error message,
// as a whole number so "max_tokens 5000" or "id 15023" do not count.
var transientStatus = regexp.MustCompile(`\b(429|500|502|503)\b`)

// StatusError is an HTTP-level failure reported by a backend.
type StatusError struct {
	Backend    string
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s http status %d: %s", e.Backend, e.StatusCode, e.Message)
}

// IsTransient reports whether err is worth retrying on another backend:
// rate limiting, server-side errors and network timeouts.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}

	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode == http.StatusTooManyRequests || se.StatusCode >= 500
	}

	if st, ok := status.FromError(err); ok && st.Code() != codes.OK && st.Code() != codes.Unknown {
		switch st.Code() {
		case codes.ResourceExhausted, codes.Unavailable, codes.Internal, codes.DeadlineExceeded, codes.Aborted:
			return true
		default:
			return false
		}
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	msg := strings.ToLower(err.Error())
	if transientStatus.MatchString(msg) {
		return true
	}
	for _, marker := range []string{"rate limit", "resource exhausted", "resource_exhausted", "server_error", "unavailable"} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
