package generate

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sanazindustrial/TCA-IRR-simple-sub003/internal/config"
	"github.com/sanazindustrial/TCA-IRR-simple-sub003/internal/cost"
	"github.com/sanazindustrial/TCA-IRR-simple-sub003/internal/metrics"
	"github.com/sanazindustrial/TCA-IRR-simple-sub003/internal/model"
	"github.com/sanazindustrial/TCA-IRR-simple-sub003/internal/resilience"
	"github.com/sanazindustrial/TCA-IRR-simple-sub003/pkg/anthropic"
)

// AnthropicSource asks Claude for a module payload. Calls share one rate
// limiter, are retried on transient failures and go through a per-module
// circuit breaker.
type AnthropicSource struct {
	client    anthropic.Client
	model     string
	maxTokens int64
	timeout   time.Duration
	limiter   *rate.Limiter
	retry     resilience.RetryConfig
	breakers  *resilience.Breakers
	costs     *cost.Calculator
	metrics   *metrics.Manager
}

// NewAnthropicSource builds the source from configuration. m may be nil.
func NewAnthropicSource(client anthropic.Client, cfg *config.Config, m *metrics.Manager) *AnthropicSource {
	burst := cfg.Generate.Burst
	if burst <= 0 {
		burst = 1
	}
	return &AnthropicSource{
		client:    client,
		model:     cfg.Anthropic.Model,
		maxTokens: cfg.Anthropic.MaxTokens,
		timeout:   time.Duration(cfg.Generate.TimeoutSecs) * time.Second,
		limiter:   rate.NewLimiter(rate.Limit(cfg.Generate.RequestsPerSecond), burst),
		retry:     resilience.FromRetryConfig(cfg.Generate.Retry),
		breakers:  resilience.NewBreakers(resilience.FromBreakerConfig(cfg.Generate.Breaker)),
		costs:     cost.FromConfig(cfg.Pricing),
		metrics:   m,
	}
}

// Name implements Source.
func (s *AnthropicSource) Name() string { return "anthropic" }

// Fetch implements Source.
func (s *AnthropicSource) Fetch(ctx context.Context, module model.Module, req model.AnalysisRequest) Result {
	log := zap.L().With(zap.String("module", string(module)), zap.String("source", s.Name()))

	user, err := UserPrompt(module, req)
	if err != nil {
		return Failed(s.Name(), eris.Wrapf(err, "generate: render prompt for %s", module))
	}
	msg := anthropic.MessageRequest{
		Model:     s.model,
		MaxTokens: s.maxTokens,
		System:    anthropic.BuildCachedSystemBlocks(SystemPrompt(module)),
		Messages:  []anthropic.Message{{Role: "user", Content: user}},
	}

	retry := s.retry
	retry.OnRetry = resilience.RetryLogger(string(module), "create_message")

	start := time.Now()
	resp, err := resilience.DoVal(ctx, retry, func(ctx context.Context) (*anthropic.MessageResponse, error) {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, err
		}
		return resilience.Call(ctx, s.breakers.Get(string(module)), func(ctx context.Context) (*anthropic.MessageResponse, error) {
			return s.call(ctx, module, msg)
		})
	})
	if err != nil {
		err = s.classify(ctx, module, err)
		s.metrics.Generation(string(module), model.Kind(err), 0)
		log.Warn("generate: module generation failed", zap.Duration("elapsed", time.Since(start)), zap.Error(err))
		return Failed(s.Name(), err)
	}

	usd := s.costs.Log(s.model, string(module), resp.Usage)
	s.metrics.Generation(string(module), "ok", usd)

	raw := cleanJSON(resp.Text())
	if !json.Valid([]byte(raw)) {
		return Failed(s.Name(), &model.ValidationError{Module: module, Field: "$", Reason: "generated payload is not valid JSON"})
	}
	log.Debug("generate: module generated", zap.Duration("elapsed", time.Since(start)), zap.Int("bytes", len(raw)))
	return Payload(s.Name(), json.RawMessage(raw))
}

func (s *AnthropicSource) call(ctx context.Context, module model.Module, msg anthropic.MessageRequest) (*anthropic.MessageResponse, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	resp, err := s.client.CreateMessage(ctx, msg)
	if err != nil {
		status, retryAfter := anthropic.StatusOf(err)
		return nil, resilience.Classify(module, status, retryAfter, err)
	}
	return resp, nil
}

// classify maps the final error into the module taxonomy. Caller
// cancellation wins over whatever the call reported.
func (s *AnthropicSource) classify(ctx context.Context, module model.Module, err error) error {
	if ctx.Err() != nil {
		return &model.CancelledError{Err: ctx.Err()}
	}
	if errors.Is(err, resilience.ErrBreakerOpen) {
		return &model.UpstreamError{Module: module, StatusCode: http.StatusServiceUnavailable, Err: err}
	}
	return resilience.Classify(module, 0, 0, err)
}
