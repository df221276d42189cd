package resilience

import (
	"errors"
	"net"
	"strings"
	"syscall"

	"github.com/convergent-research/scholarmatch/internal/model"
)

// IsTransient returns true if the error is safe to retry: a catalog timeout,
// a catalog response with a retryable status, a network-level timeout, or a
// dropped connection.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}

	var te *model.UpstreamTimeoutError
	if errors.As(err, &te) {
		return true
	}

	var ue *model.UpstreamError
	if errors.As(err, &ue) {
		return IsTransientHTTPStatus(ue.Status)
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	if errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNABORTED) {
		return true
	}

	// Wrapped transport errors from net/http lose their type.
	msg := strings.ToLower(err.Error())
	for _, p := range []string{
		"connection reset by peer",
		"broken pipe",
		"tls handshake timeout",
		"i/o timeout",
		"server closed idle connection",
	} {
		if strings.Contains(msg, p) {
			return true
		}
	}

	return false
}

// IsTransientHTTPStatus returns true if the HTTP status code indicates a
// transient upstream issue that is safe to retry.
func IsTransientHTTPStatus(statusCode int) bool {
	switch statusCode {
	case 408, // Request Timeout
		429, // Too Many Requests
		500, // Internal Server Error
		502, // Bad Gateway
		503, // Service Unavailable
		504: // Gateway Timeout
		return true
	default:
		return false
	}
}
