// Package server exposes the metric registry, its check report and the
// policy menu over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dshills/healthmetrics/internal/menu"
	"github.com/dshills/healthmetrics/internal/registry"
	"github.com/dshills/healthmetrics/internal/schema"
)

// Handler serves the read API. Everything it serves is fixed at
// construction, so it needs no locking.
type Handler struct {
	registry *registry.Registry
	report   *schema.Report
	menu     menu.Tree
	logger   *log.Logger
	metrics  *Metrics
}

// New constructs a Handler. A nil logger discards output; nil metrics
// disables instrumentation.
func New(reg *registry.Registry, report *schema.Report, logger *log.Logger, metrics *Metrics) *Handler {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Handler{
		registry: reg,
		report:   report,
		menu:     menu.PolicyCardMenuMobile(),
		logger:   logger,
		metrics:  metrics,
	}
}

// Register mounts the API routes on r.
func (h *Handler) Register(r chi.Router) {
	r.Get("/healthz", h.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/categories", h.handleCategories)
		r.Get("/categories/{categoryID}/{dataTypeID}", h.handleDataType)
		r.Get("/categories/{categoryID}/{dataTypeID}/metrics/{kind}", h.handleMetric)
		r.Get("/metrics/{metricID}", h.handleLookup)
		r.Get("/check", h.handleCheck)
		r.Get("/export", h.handleExport)
	})
	r.Get("/policy/menu", h.handleMenu)
}

// Router builds the full HTTP handler: middleware, API routes and the
// Prometheus endpoint served from gatherer.
func Router(h *Handler, gatherer prometheus.Gatherer) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(h.instrument)
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "no route for "+r.URL.Path)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method "+r.Method+" not allowed")
	})
	h.Register(r)
	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}
	return r
}

// instrument logs each request and records its metrics under the matched
// route pattern.
func (h *Handler) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		elapsed := time.Since(start)
		h.metrics.ObserveRequest(route, r.Method, strconv.Itoa(status), elapsed)
		h.logger.Debug("request",
			"request_id", middleware.GetReqID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"duration", elapsed.Round(time.Microsecond),
		)
	})
}

// Serve runs an HTTP server on addr until ctx is cancelled, then shuts it
// down gracefully.
func Serve(ctx context.Context, addr string, handler http.Handler, logger *log.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		if err != nil {
			return fmt.Errorf("serving %s: %w", addr, err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	<-errc
	return nil
}
