// Package resilience classifies upstream generation failures and provides
// retry and circuit-breaker wrappers for module generation calls.
package resilience

import (
	"errors"
	"net"
	"net/http"
	"strings"
	"syscall"
	"time"

	"github.com/sanazindustrial/TCA-IRR-simple-sub003/internal/model"
)

// Classify turns a failed upstream call into the matching model error.
// A 429 becomes a *model.RateLimitError carrying retryAfter; anything else
// becomes a *model.UpstreamError. A nil err stays nil.
func Classify(module model.Module, statusCode int, retryAfter time.Duration, err error) error {
	if err == nil {
		return nil
	}
	var rl *model.RateLimitError
	var ue *model.UpstreamError
	if errors.As(err, &rl) || errors.As(err, &ue) {
		return err
	}
	if statusCode == http.StatusTooManyRequests {
		return &model.RateLimitError{Module: module, RetryAfter: retryAfter, Err: err}
	}
	return &model.UpstreamError{Module: module, StatusCode: statusCode, Err: err}
}

// IsTransient reports whether err is safe to retry: a rate limit, an
// upstream failure with a transient status, or a network-level fault.
// Validation, schema and cancellation errors are never transient.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}

	var ve *model.ValidationError
	var sm *model.SchemaMismatchError
	var ce *model.CancelledError
	if errors.As(err, &ve) || errors.As(err, &sm) || errors.As(err, &ce) {
		return false
	}

	var rl *model.RateLimitError
	if errors.As(err, &rl) {
		return true
	}
	var ue *model.UpstreamError
	if errors.As(err, &ue) && ue.StatusCode > 0 {
		return IsTransientHTTPStatus(ue.StatusCode)
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

	// String-based heuristics for wrapped errors from HTTP clients.
	msg := strings.ToLower(err.Error())
	for _, p := range []string{
		"connection reset by peer",
		"broken pipe",
		"temporary failure in name resolution",
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

// IsTransientHTTPStatus reports whether an HTTP status is worth retrying.
// 529 is the Anthropic API's overloaded status.
func IsTransientHTTPStatus(statusCode int) bool {
	switch statusCode {
	case http.StatusRequestTimeout,
		http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout,
		529:
		return true
	default:
		return false
	}
}

// RetryAfter returns the server-requested delay carried by a rate limit
// error, or zero.
func RetryAfter(err error) time.Duration {
	var rl *model.RateLimitError
	if errors.As(err, &rl) {
		return rl.RetryAfter
	}
	return 0
}
