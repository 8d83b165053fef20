package resilience

import (
	"errors"
	"fmt"
	"net"
	"syscall"
	"testing"
	"time"

	"github.com/sanazindustrial/TCA-IRR-simple-sub003/internal/model"
)

func TestClassify_RateLimit(t *testing.T) {
	err := Classify(model.ModuleRisk, 429, 2*time.Second, errors.New("quota"))
	var rl *model.RateLimitError
	if !errors.As(err, &rl) {
		t.Fatalf("expected RateLimitError, got %T", err)
	}
	if rl.Module != model.ModuleRisk || rl.RetryAfter != 2*time.Second {
		t.Errorf("unexpected rate limit error: %+v", rl)
	}
}

func TestClassify_Upstream(t *testing.T) {
	inner := errors.New("bad gateway")
	err := Classify(model.ModuleGrowth, 502, 0, inner)
	var ue *model.UpstreamError
	if !errors.As(err, &ue) {
		t.Fatalf("expected UpstreamError, got %T", err)
	}
	if ue.StatusCode != 502 {
		t.Errorf("expected status 502, got %d", ue.StatusCode)
	}
	if !errors.Is(err, inner) {
		t.Error("UpstreamError should unwrap to the inner error")
	}
}

func TestClassify_KeepsClassifiedErrors(t *testing.T) {
	orig := &model.RateLimitError{Module: model.ModuleGap}
	wrapped := fmt.Errorf("call: %w", orig)
	if got := Classify(model.ModuleGap, 500, 0, wrapped); got != wrapped {
		t.Errorf("expected already-classified error to pass through, got %v", got)
	}
	if Classify(model.ModuleGap, 500, 0, nil) != nil {
		t.Error("nil error should stay nil")
	}
}

func TestIsTransient_ModelErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"rate limit", &model.RateLimitError{Module: model.ModuleTCA}, true},
		{"upstream 503", &model.UpstreamError{StatusCode: 503, Err: errors.New("x")}, true},
		{"upstream 529", &model.UpstreamError{StatusCode: 529, Err: errors.New("x")}, true},
		{"upstream 400", &model.UpstreamError{StatusCode: 400, Err: errors.New("x")}, false},
		{"validation", &model.ValidationError{Field: "x"}, false},
		{"schema", &model.SchemaMismatchError{Field: "x"}, false},
		{"cancelled", &model.CancelledError{Err: errors.New("i/o timeout")}, false},
		{"nil", nil, false},
	}
	for _, tc := range cases {
		if got := IsTransient(tc.err); got != tc.want {
			t.Errorf("%s: expected %v, got %v", tc.name, tc.want, got)
		}
	}
}

func TestIsTransient_RegularError(t *testing.T) {
	if IsTransient(errors.New("invalid input: missing field")) {
		t.Error("regular error should not be transient")
	}
}

func TestIsTransient_Network(t *testing.T) {
	errs := []error{
		fmt.Errorf("write tcp: %w", syscall.ECONNRESET),
		fmt.Errorf("dial tcp: %w", syscall.ECONNREFUSED),
		&net.DNSError{IsTimeout: true, Err: "timeout"},
		errors.New("TLS handshake timeout"),
		errors.New("read: connection reset by peer"),
	}
	for _, err := range errs {
		if !IsTransient(err) {
			t.Errorf("expected %v to be transient", err)
		}
	}
}

func TestIsTransientHTTPStatus(t *testing.T) {
	for _, code := range []int{408, 429, 500, 502, 503, 504, 529} {
		if !IsTransientHTTPStatus(code) {
			t.Errorf("expected HTTP %d to be transient", code)
		}
	}
	for _, code := range []int{200, 400, 401, 403, 404, 422} {
		if IsTransientHTTPStatus(code) {
			t.Errorf("expected HTTP %d to NOT be transient", code)
		}
	}
}

func TestRetryAfter(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", &model.RateLimitError{RetryAfter: 3 * time.Second})
	if got := RetryAfter(err); got != 3*time.Second {
		t.Errorf("expected 3s, got %v", got)
	}
	if got := RetryAfter(errors.New("x")); got != 0 {
		t.Errorf("expected 0, got %v", got)
	}
}
