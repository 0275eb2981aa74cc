package frankfurter

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
)

// Kind classifies a failed upstream interaction. Every kind is terminal for
// the current call; the client never retries on its own.
type Kind string

const (
	// KindTimeout means the upstream did not answer within the configured
	// request timeout.
	KindTimeout Kind = "timeout"

	// KindRemote means the upstream answered with a non-2xx status.
	KindRemote Kind = "remote"

	// KindConnectivity means no HTTP response was received at all
	// (DNS failure, connection refused, broken transport).
	KindConnectivity Kind = "connectivity"
)

// APIError is the error type returned by all [Client] methods. Message is
// written for the calling agent and is safe to surface verbatim.
type APIError struct {
	Kind       Kind
	StatusCode int // 0 unless Kind is KindRemote
	Message    string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return e.Message
}

// classifyStatus maps a non-2xx HTTP status code to a user-facing message.
// It is a pure function so the code → message table can be tested without a
// live upstream.
func classifyStatus(statusCode int) string {
	switch {
	case statusCode == http.StatusNotFound:
		return "requested resource not found; check the currency codes and dates in your parameters"
	case statusCode == http.StatusTooManyRequests:
		return "rate limited by the exchange-rate service; wait a moment and retry"
	case statusCode >= 500:
		return "exchange-rate service is currently degraded; try again later"
	default:
		return fmt.Sprintf("exchange-rate service returned status %d: %s", statusCode, http.StatusText(statusCode))
	}
}

// classifyTransport maps a transport-level failure (no HTTP response) to an
// [APIError]. Deadline and net timeouts become KindTimeout; everything else
// is KindConnectivity.
func classifyTransport(err error) *APIError {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return &APIError{
			Kind:    KindTimeout,
			Message: "request to the exchange-rate service timed out; retry in a moment",
		}
	}
	return &APIError{
		Kind:    KindConnectivity,
		Message: "could not reach the exchange-rate service; check network connectivity",
	}
}
