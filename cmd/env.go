package main

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sanazindustrial/TCA-IRR-simple-sub003/internal/framework"
	"github.com/sanazindustrial/TCA-IRR-simple-sub003/internal/generate"
	"github.com/sanazindustrial/TCA-IRR-simple-sub003/internal/metrics"
	"github.com/sanazindustrial/TCA-IRR-simple-sub003/internal/pipeline"
	"github.com/sanazindustrial/TCA-IRR-simple-sub003/internal/report"
	"github.com/sanazindustrial/TCA-IRR-simple-sub003/internal/store"
	"github.com/sanazindustrial/TCA-IRR-simple-sub003/internal/tracing"
	anthropicpkg "github.com/sanazindustrial/TCA-IRR-simple-sub003/pkg/anthropic"
)

// analysisEnv holds the analyzer and the resources it owns, for the
// analyze and serve commands.
type analysisEnv struct {
	Analyzer *pipeline.Analyzer
	Cache    store.Cache // may be nil
	Metrics  *metrics.Manager

	shutdownTracing tracing.ShutdownFunc
}

// Close flushes traces and releases the cache.
func (e *analysisEnv) Close() {
	if e.shutdownTracing != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := e.shutdownTracing(ctx); err != nil {
			zap.L().Warn("tracing: shutdown failed", zap.Error(err))
		}
	}
	if e.Cache != nil {
		_ = e.Cache.Close()
	}
}

// loadRegistry returns the built-in policies, overlaid by the configured
// policy file when one is set.
func loadRegistry() (*framework.Registry, error) {
	if cfg.Frameworks.PolicyFile == "" {
		return framework.NewRegistry(), nil
	}
	reg, err := framework.LoadFile(cfg.Frameworks.PolicyFile)
	if err != nil {
		return nil, eris.Wrap(err, "load framework policies")
	}
	return reg, nil
}

// buildSource chains the request payloads with Claude generation when
// generation is enabled.
func buildSource(m *metrics.Manager) generate.Source {
	chain := generate.Chain{generate.RequestSource{}}
	if cfg.Generate.Enabled {
		client := anthropicpkg.NewClient(anthropicpkg.Options{APIKey: cfg.Anthropic.Key, BaseURL: cfg.Anthropic.BaseURL})
		chain = append(chain, generate.NewAnthropicSource(client, cfg, m))
	}
	return chain
}

// initAnalyzer validates config for mode and wires the analyzer. Callers
// should defer env.Close().
func initAnalyzer(ctx context.Context, mode string) (*analysisEnv, error) {
	if err := cfg.Validate(mode); err != nil {
		return nil, err
	}

	reg, err := loadRegistry()
	if err != nil {
		return nil, err
	}

	shutdown, err := tracing.Init(ctx, cfg.Tracing, report.Version)
	if err != nil {
		return nil, err
	}

	cache, err := store.Open(ctx, cfg.Store)
	if err != nil {
		_ = shutdown(ctx)
		return nil, eris.Wrap(err, "open report cache")
	}

	m := metrics.New()
	analyzer := pipeline.New(reg, buildSource(m),
		pipeline.WithCache(cache, time.Duration(cfg.Cache.TTLMinutes)*time.Minute),
		pipeline.WithMetrics(m),
	)

	zap.L().Info("analyzer ready",
		zap.String("store", cfg.Store.Driver),
		zap.Bool("generate", cfg.Generate.Enabled),
		zap.Bool("tracing", cfg.Tracing.Enabled),
	)

	return &analysisEnv{
		Analyzer:        analyzer,
		Cache:           cache,
		Metrics:         m,
		shutdownTracing: shutdown,
	}, nil
}
