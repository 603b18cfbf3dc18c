package middlewares

import (
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RequestIDHeader carries the per-request ID to the server.
const RequestIDHeader = "X-Request-ID"

// LoggingTransport is an http.RoundTripper that logs outgoing requests and responses
// using the provided SugaredLogger. It also tags each request with a unique request ID.
type LoggingTransport struct {
	next http.RoundTripper
	log  *zap.SugaredLogger
}

// NewLoggingTransport wraps next. A nil next falls back to http.DefaultTransport.
func NewLoggingTransport(next http.RoundTripper, log *zap.SugaredLogger) *LoggingTransport {
	if next == nil {
		next = http.DefaultTransport
	}
	return &LoggingTransport{next: next, log: log}
}

// RoundTrip implements http.RoundTripper.
func (t *LoggingTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	reqID := uuid.New().String()

	// RoundTrippers must not modify the caller's request
	r = r.Clone(r.Context())
	r.Header.Set(RequestIDHeader, reqID)

	start := time.Now()
	resp, err := t.next.RoundTrip(r)
	duration := time.Since(start)

	t.log.Infow("request",
		"request_id", reqID,
		"method", r.Method,
		"uri", r.URL.RequestURI(),
		"duration", duration,
	)

	if err != nil {
		t.log.Errorw("request failed",
			"request_id", reqID,
			"error", err,
		)
		return nil, err
	}

	t.log.Infow("response",
		"request_id", reqID,
		"status", resp.StatusCode,
		"response_size", strconv.FormatInt(resp.ContentLength, 10)+"B",
	)

	return resp, nil
}
