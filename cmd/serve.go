package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sanazindustrial/TCA-IRR-simple-sub003/internal/metrics"
	"github.com/sanazindustrial/TCA-IRR-simple-sub003/internal/model"
	"github.com/sanazindustrial/TCA-IRR-simple-sub003/internal/pipeline"
)

// StatusClientClosedRequest is returned when the caller went away before the
// analysis finished.
const StatusClientClosedRequest = 499

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the analysis HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		cfg.Server.Port = resolvePort(servePort, cfg.Server.Port)
		env, err := initAnalyzer(ctx, "serve")
		if err != nil {
			return err
		}
		defer env.Close()

		router := buildRouter(env.Analyzer, env.Metrics, routerOptions{
			CORSOrigins:    cfg.Server.CORSOrigins,
			MaxBodyBytes:   cfg.Server.MaxBodyBytes,
			RequestTimeout: time.Duration(cfg.Server.RequestTimeoutSecs) * time.Second,
		})
		return startServer(ctx, router, cfg.Server.Port)
	},
}

// routerOptions carries the server settings the handlers need.
type routerOptions struct {
	CORSOrigins    []string
	MaxBodyBytes   int64
	RequestTimeout time.Duration
}

// buildRouter wires the HTTP routes. m may be nil.
func buildRouter(analyzer *pipeline.Analyzer, m *metrics.Manager, opts routerOptions) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"X-Cache-Key"},
		MaxAge:         300,
	}))
	r.Use(instrument(m))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if m != nil {
		r.Method(http.MethodGet, "/metrics", m.Handler())
	}

	r.Post("/api/analysis/comprehensive", func(w http.ResponseWriter, r *http.Request) {
		if opts.MaxBodyBytes > 0 {
			r.Body = http.MaxBytesReader(w, r.Body, opts.MaxBodyBytes)
		}
		req, err := readRequest(r.Body, "-")
		if err != nil {
			writeError(w, err)
			return
		}

		ctx := r.Context()
		if opts.RequestTimeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, opts.RequestTimeout)
			defer cancel()
		}

		rep, err := analyzer.Analyze(ctx, req)
		if err != nil {
			zap.L().Warn("serve: analysis failed",
				zap.String("kind", model.Kind(err)),
				zap.String("request_id", middleware.GetReqID(r.Context())),
				zap.Error(err),
			)
			writeError(w, err)
			return
		}
		if key, keyErr := analyzer.CacheKey(req); keyErr == nil {
			w.Header().Set("X-Cache-Key", key)
		}
		writeJSON(w, http.StatusOK, rep)
	})

	r.Delete("/api/reports/cache/{key}", func(w http.ResponseWriter, r *http.Request) {
		key := chi.URLParam(r, "key")
		if err := analyzer.Invalidate(r.Context(), key); err != nil {
			zap.L().Error("serve: cache invalidate failed", zap.String("key", key), zap.Error(err))
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})

	return r
}

// instrument counts requests by route pattern and status.
func instrument(m *metrics.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			route := r.URL.Path
			if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
				route = rc.RoutePattern()
			}
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			m.HTTPRequest(route, strconv.Itoa(status))
		})
	}
}

// statusFor maps an analysis error to its HTTP status. Module failures
// report the most actionable class present: rate limiting, then upstream,
// then payload problems.
func statusFor(err error) int {
	var (
		ve *model.ValidationError
		rl *model.RateLimitError
		ue *model.UpstreamError
		ce *model.CancelledError
		ae *model.AssemblyError
		mb *http.MaxBytesError
	)
	switch {
	case errors.As(err, &ce) && errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.As(err, &ce):
		return StatusClientClosedRequest
	case errors.As(err, &ae):
		switch {
		case errors.As(err, &rl):
			return http.StatusTooManyRequests
		case errors.As(err, &ue):
			return http.StatusBadGateway
		default:
			return http.StatusUnprocessableEntity
		}
	case errors.As(err, &mb):
		return http.StatusRequestEntityTooLarge
	case errors.As(err, &ve):
		return http.StatusBadRequest
	case errors.As(err, &rl):
		return http.StatusTooManyRequests
	case errors.As(err, &ue):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// errorBody builds the error payload: the message, retry guidance for rate
// limits and the failing modules for assembly errors.
func errorBody(err error) model.ErrorResponse {
	body := model.ErrorResponse{Error: err.Error()}

	var rl *model.RateLimitError
	if errors.As(err, &rl) {
		if rl.RetryAfter > 0 {
			body.Details = fmt.Sprintf("upstream quota exhausted for %s; retry after %s", rl.Module, rl.RetryAfter)
		} else {
			body.Details = fmt.Sprintf("upstream quota exhausted for %s; retry later", rl.Module)
		}
	}
	var ae *model.AssemblyError
	if errors.As(err, &ae) {
		body.Modules = ae.Modules()
	}
	if statusFor(err) == http.StatusInternalServerError {
		body.Error = "internal error"
	}
	return body
}

func writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	var rl *model.RateLimitError
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		w.Header().Set("Retry-After", strconv.Itoa(int((rl.RetryAfter+time.Second-1)/time.Second)))
	}
	writeJSON(w, status, errorBody(err))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Warn("serve: write response", zap.Error(err))
	}
}

// resolvePort prefers the flag over the configured port.
func resolvePort(flagPort, cfgPort int) int {
	if flagPort != 0 {
		return flagPort
	}
	return cfgPort
}

// startServer serves h on port until ctx is done, then shuts down
// gracefully.
func startServer(ctx context.Context, h http.Handler, port int) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		zap.L().Info("starting server", zap.Int("port", port))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return eris.Wrap(err, "server listen")
		}
		return nil
	case <-ctx.Done():
	}

	zap.L().Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return eris.Wrap(err, "server shutdown")
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return eris.Wrap(err, "server listen")
	}
	return nil
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
