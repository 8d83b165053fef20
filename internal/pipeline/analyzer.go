// Package pipeline runs a comprehensive analysis: resolve the policy, fetch
// the nine module payloads concurrently, validate them and assemble the
// report.
package pipeline

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sanazindustrial/TCA-IRR-simple-sub003/internal/framework"
	"github.com/sanazindustrial/TCA-IRR-simple-sub003/internal/generate"
	"github.com/sanazindustrial/TCA-IRR-simple-sub003/internal/metrics"
	"github.com/sanazindustrial/TCA-IRR-simple-sub003/internal/model"
	"github.com/sanazindustrial/TCA-IRR-simple-sub003/internal/report"
	"github.com/sanazindustrial/TCA-IRR-simple-sub003/internal/schema"
	"github.com/sanazindustrial/TCA-IRR-simple-sub003/internal/store"
	"github.com/sanazindustrial/TCA-IRR-simple-sub003/internal/tracing"
)

// Analyzer orchestrates one analysis per call. It holds no per-request
// state and is safe for concurrent use.
type Analyzer struct {
	registry  *framework.Registry
	source    generate.Source
	cache     store.Cache
	cacheTTL  time.Duration
	assembler *report.Assembler
	metrics   *metrics.Manager
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithCache enables report caching. A nil cache disables it.
func WithCache(c store.Cache, ttl time.Duration) Option {
	return func(a *Analyzer) {
		a.cache = c
		a.cacheTTL = ttl
	}
}

// WithMetrics records analysis outcomes on m.
func WithMetrics(m *metrics.Manager) Option {
	return func(a *Analyzer) { a.metrics = m }
}

// WithAssembler replaces the default report assembler.
func WithAssembler(asm *report.Assembler) Option {
	return func(a *Analyzer) { a.assembler = asm }
}

// New creates an Analyzer that resolves policies from registry and fetches
// module payloads from source.
func New(registry *framework.Registry, source generate.Source, opts ...Option) *Analyzer {
	a := &Analyzer{
		registry:  registry,
		source:    source,
		assembler: report.NewAssembler(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze produces the report for req. Framework and sector are checked
// before any module work. Every module is fetched and validated even when
// others fail, so an *model.AssemblyError names all failing modules at once.
func (a *Analyzer) Analyze(ctx context.Context, req model.AnalysisRequest) (rep *model.Report, err error) {
	start := time.Now()
	ctx, span := tracing.Tracer().Start(ctx, "pipeline.analyze", trace.WithAttributes(
		attribute.String("tca.framework", string(req.Framework)),
		attribute.String("tca.sector", req.Sector),
	))
	outcome := "ok"
	defer func() {
		if err != nil {
			outcome = model.Kind(err)
			span.RecordError(err)
			span.SetStatus(codes.Error, outcome)
		}
		span.SetAttributes(attribute.String("tca.outcome", outcome))
		span.End()
		a.metrics.ObserveAnalysis(outcome, time.Since(start))
	}()

	log := zap.L().With(
		zap.String("framework", string(req.Framework)),
		zap.String("sector", req.Sector),
		zap.String("company", req.CompanyName()),
	)

	policy, err := a.registry.Resolve(req.Framework, req.Sector)
	if err != nil {
		return nil, err
	}

	key := a.cacheKey(req, policy, log)
	if cached := a.lookup(ctx, key, log); cached != nil {
		outcome = "cached"
		span.SetAttributes(attribute.String("tca.report_id", cached.ID))
		return cached, nil
	}

	log.Info("pipeline: starting analysis")
	results := a.fetchAll(ctx, req)
	if ctxErr := ctx.Err(); ctxErr != nil {
		log.Warn("pipeline: analysis cancelled", zap.Error(ctxErr))
		return nil, &model.CancelledError{Err: ctxErr}
	}

	in := validateAll(results)
	rep, err = a.assembler.Assemble(policy, in)
	if err != nil {
		a.recordFailures(err, log)
		return nil, err
	}

	span.SetAttributes(attribute.String("tca.report_id", rep.ID))
	log.Info("pipeline: analysis complete",
		zap.String("report_id", rep.ID),
		zap.Float64("composite", rep.Composite),
		zap.Duration("elapsed", time.Since(start)),
	)

	a.save(ctx, key, rep, log)
	return rep, nil
}

// fetchAll fetches every module concurrently. Each goroutine records only
// its own result and never cancels its siblings.
func (a *Analyzer) fetchAll(ctx context.Context, req model.AnalysisRequest) map[model.Module]generate.Result {
	var (
		mu      sync.Mutex
		results = make(map[model.Module]generate.Result, len(model.Modules))
		g       errgroup.Group
	)
	for _, m := range model.Modules {
		g.Go(func() error {
			ctx, span := tracing.Tracer().Start(ctx, "pipeline.fetch", trace.WithAttributes(
				attribute.String("tca.module", string(m)),
			))
			r := a.source.Fetch(ctx, m, req)
			if r.Err != nil {
				span.RecordError(r.Err)
				span.SetStatus(codes.Error, model.Kind(r.Err))
			}
			span.SetAttributes(attribute.String("tca.source", r.Source))
			span.End()

			mu.Lock()
			results[m] = r
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// validateAll checks every fetched payload against its module schema and
// splits the results into typed outputs and failures.
func validateAll(results map[model.Module]generate.Result) report.Inputs {
	in := report.Inputs{Outputs: make(map[model.Module]model.ModuleOutput, len(results))}
	for _, m := range model.Modules {
		r, ok := results[m]
		switch {
		case !ok:
			continue
		case r.Err != nil:
			in.Failures = append(in.Failures, model.ModuleFailure{Module: m, Err: r.Err})
		case r.Skipped:
			continue
		default:
			out, err := schema.Validate(m, r.Payload)
			if err != nil {
				in.Failures = append(in.Failures, model.ModuleFailure{Module: m, Err: err})
				continue
			}
			in.Outputs[m] = out
		}
	}
	return in
}

func (a *Analyzer) recordFailures(err error, log *zap.Logger) {
	var ae *model.AssemblyError
	if !errors.As(err, &ae) {
		log.Error("pipeline: assembly failed", zap.Error(err))
		return
	}
	for _, f := range ae.Failures {
		kind := model.Kind(f.Err)
		a.metrics.ModuleFailed(string(f.Module), kind)
		log.Warn("pipeline: module failed",
			zap.String("module", string(f.Module)),
			zap.String("kind", kind),
			zap.Error(f.Err),
		)
	}
}

// cacheKey returns "" when caching is disabled or the request cannot be
// keyed; malformed payloads are reported later by schema validation.
func (a *Analyzer) cacheKey(req model.AnalysisRequest, policy framework.Policy, log *zap.Logger) string {
	if a.cache == nil {
		return ""
	}
	key, err := store.Key(req, policy.Fingerprint())
	if err != nil {
		log.Debug("pipeline: request not cacheable", zap.Error(err))
		return ""
	}
	return key
}

func (a *Analyzer) lookup(ctx context.Context, key string, log *zap.Logger) *model.Report {
	if key == "" {
		return nil
	}
	rep, err := a.cache.Get(ctx, key)
	if err != nil {
		a.metrics.CacheLookup("error")
		log.Warn("pipeline: cache lookup failed", zap.Error(err))
		return nil
	}
	if rep == nil {
		a.metrics.CacheLookup("miss")
		return nil
	}
	a.metrics.CacheLookup("hit")
	log.Info("pipeline: serving cached report", zap.String("report_id", rep.ID))
	return rep
}

func (a *Analyzer) save(ctx context.Context, key string, rep *model.Report, log *zap.Logger) {
	if key == "" {
		return
	}
	if err := a.cache.Set(ctx, key, rep, a.cacheTTL); err != nil {
		log.Warn("pipeline: cache store failed", zap.Error(err))
	}
}

// CacheKey exposes the key a request would be cached under with the
// analyzer's current policies.
func (a *Analyzer) CacheKey(req model.AnalysisRequest) (string, error) {
	policy, err := a.registry.Resolve(req.Framework, req.Sector)
	if err != nil {
		return "", err
	}
	return store.Key(req, policy.Fingerprint())
}

// Invalidate drops a cached report. It is a no-op when caching is disabled.
func (a *Analyzer) Invalidate(ctx context.Context, key string) error {
	if a.cache == nil {
		return nil
	}
	return a.cache.Invalidate(ctx, key)
}
