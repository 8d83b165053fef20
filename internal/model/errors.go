package model

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

// ValidationError reports a malformed or missing field.
type ValidationError struct {
	Module Module
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Module == "" {
		return fmt.Sprintf("validation: %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("validation: %s.%s: %s", e.Module, e.Field, e.Reason)
}

// SchemaMismatchError reports wrong cardinality or an out-of-range value.
type SchemaMismatchError struct {
	Module   Module
	Field    string
	Expected string
	Actual   string
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("schema mismatch: %s.%s: expected %s, got %s", e.Module, e.Field, e.Expected, e.Actual)
}

// UpstreamError wraps a failed external module generation call.
type UpstreamError struct {
	Module     Module
	StatusCode int
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("upstream: %s: status %d: %v", e.Module, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("upstream: %s: %v", e.Module, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// RateLimitError reports an exhausted upstream quota.
type RateLimitError struct {
	Module     Module
	RetryAfter time.Duration
	Err        error
}

func (e *RateLimitError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("rate limited: %s: retry after %s", e.Module, e.RetryAfter)
	}
	return fmt.Sprintf("rate limited: %s", e.Module)
}

func (e *RateLimitError) Unwrap() error { return e.Err }

// CancelledError reports that the caller aborted the request.
type CancelledError struct {
	Err error
}

func (e *CancelledError) Error() string {
	return fmt.Sprintf("cancelled: %v", e.Err)
}

func (e *CancelledError) Unwrap() error { return e.Err }

// ModuleFailure pairs a module with the error that failed it.
type ModuleFailure struct {
	Module Module
	Err    error
}

// AssemblyError aggregates every module that prevented report assembly.
type AssemblyError struct {
	Failures []ModuleFailure
}

// NewAssemblyError sorts failures into module order. Returns nil when empty.
func NewAssemblyError(failures []ModuleFailure) error {
	if len(failures) == 0 {
		return nil
	}
	order := make(map[Module]int, len(Modules))
	for i, m := range Modules {
		order[m] = i
	}
	sorted := make([]ModuleFailure, len(failures))
	copy(sorted, failures)
	sort.SliceStable(sorted, func(i, j int) bool {
		return order[sorted[i].Module] < order[sorted[j].Module]
	})
	return &AssemblyError{Failures: sorted}
}

func (e *AssemblyError) Error() string {
	parts := make([]string, len(e.Failures))
	for i, f := range e.Failures {
		parts[i] = fmt.Sprintf("%s: %v", f.Module, f.Err)
	}
	return fmt.Sprintf("report assembly failed (%d modules): %s", len(e.Failures), strings.Join(parts, "; "))
}

// Unwrap exposes the per-module errors to errors.Is and errors.As.
func (e *AssemblyError) Unwrap() []error {
	errs := make([]error, len(e.Failures))
	for i, f := range e.Failures {
		errs[i] = f.Err
	}
	return errs
}

// Modules returns the names of the failing modules in report order.
func (e *AssemblyError) Modules() []string {
	names := make([]string, len(e.Failures))
	for i, f := range e.Failures {
		names[i] = string(f.Module)
	}
	return names
}

// ErrMissingModule is wrapped when a module output never arrived.
var ErrMissingModule = errors.New("module output missing")

// Kind names the error class of err for logs and metrics: "validation",
// "schema", "rate_limit", "upstream", "cancelled", "assembly" or "internal".
// Returns "" for nil.
func Kind(err error) string {
	var (
		ve *ValidationError
		se *SchemaMismatchError
		rl *RateLimitError
		ue *UpstreamError
		ce *CancelledError
		ae *AssemblyError
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &ce):
		return "cancelled"
	case errors.As(err, &ae):
		return "assembly"
	case errors.As(err, &ve):
		return "validation"
	case errors.As(err, &se):
		return "schema"
	case errors.As(err, &rl):
		return "rate_limit"
	case errors.As(err, &ue):
		return "upstream"
	default:
		return "internal"
	}
}
