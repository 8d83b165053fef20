// Package generate produces raw module payloads. Each module is fetched from
// an ordered chain of sources; the first source that does not skip decides
// the outcome.
package generate

import (
	"context"
	"encoding/json"

	"github.com/rotisserie/eris"

	"github.com/sanazindustrial/TCA-IRR-simple-sub003/internal/model"
)

// Result is the outcome of one fetch: exactly one of Payload, Err or
// Skipped is set.
type Result struct {
	Payload json.RawMessage
	Err     error
	Skipped bool
	// Source names the strategy that produced the result.
	Source string
}

// Payload returns a successful Result.
func Payload(source string, raw json.RawMessage) Result {
	return Result{Payload: raw, Source: source}
}

// Failed returns a failed Result.
func Failed(source string, err error) Result {
	return Result{Err: err, Source: source}
}

// Skip returns a Result saying the source has nothing for the module.
func Skip(source string) Result {
	return Result{Skipped: true, Source: source}
}

// Source produces the raw payload for one module of a request.
type Source interface {
	Name() string
	Fetch(ctx context.Context, module model.Module, req model.AnalysisRequest) Result
}

// Chain tries sources in order and returns the first result that is not
// skipped. A fully skipped chain fails with model.ErrMissingModule.
type Chain []Source

// Name implements Source.
func (c Chain) Name() string { return "chain" }

// Fetch implements Source.
func (c Chain) Fetch(ctx context.Context, module model.Module, req model.AnalysisRequest) Result {
	for _, s := range c {
		if r := s.Fetch(ctx, module, req); !r.Skipped {
			return r
		}
	}
	return Failed(c.Name(), eris.Wrapf(model.ErrMissingModule, "generate: no source produced %s", module))
}

// RequestSource serves the sub-payload embedded in the request.
type RequestSource struct{}

// Name implements Source.
func (RequestSource) Name() string { return "request" }

// Fetch implements Source.
func (s RequestSource) Fetch(_ context.Context, module model.Module, req model.AnalysisRequest) Result {
	raw, ok := req.Modules[module]
	if !ok || len(raw) == 0 {
		return Skip(s.Name())
	}
	return Payload(s.Name(), raw)
}
