package endpoint

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/birkland/servefs"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	tracerName = "github.com/birkland/servefs/endpoint"
	spanName   = "servefs.resolve"
)

// ParamFunc extracts the segment to resolve from a request
type ParamFunc func(r *http.Request) string

// Option configures a Handler
type Option func(*Handler)

// WithLogger sets the logger used for refused and failed requests.
// Default: slog.Default()
func WithLogger(logger *slog.Logger) Option {
	return func(h *Handler) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// WithMetrics records every resolution in the given metrics
func WithMetrics(m *Metrics) Option {
	return func(h *Handler) {
		h.metrics = m
	}
}

// WithTracer sets the tracer resolutions are traced with.
// Default: a tracer from the global provider
func WithTracer(tracer trace.Tracer) Option {
	return func(h *Handler) {
		if tracer != nil {
			h.tracer = tracer
		}
	}
}

// Handler serves content from a resolver
type Handler struct {
	res     servefs.Resolver
	param   ParamFunc
	logger  *slog.Logger
	metrics *Metrics
	tracer  trace.Tracer
}

// New creates a Handler that resolves the segment given by param.  A nil
// param resolves the empty segment for every request.
func New(res servefs.Resolver, param ParamFunc, opts ...Option) *Handler {
	h := &Handler{
		res:    res,
		param:  param,
		logger: slog.Default(),
		tracer: otel.Tracer(tracerName),
	}

	for _, opt := range opts {
		opt(h)
	}

	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var segment string
	if h.param != nil {
		segment = h.param(r)
	}

	h.serve(w, r, segment)
}

func (h *Handler) serve(w http.ResponseWriter, r *http.Request, segment string) {
	content, err := h.resolve(r.Context(), segment)
	if err != nil {
		h.logger.Error("could not resolve request",
			"path", r.URL.Path,
			"segment", segment,
			"error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	switch content.Status {
	case servefs.OK:
		if content.ContentType != "" {
			w.Header().Set("Content-Type", content.ContentType)
		} else {
			// Suppresses content sniffing
			w.Header()["Content-Type"] = nil
		}
		w.Header().Set("Content-Length", strconv.Itoa(len(content.Body)))
		w.WriteHeader(http.StatusOK)
		if r.Method != http.MethodHead {
			_, _ = w.Write(content.Body)
		}
	case servefs.NotFound:
		w.WriteHeader(http.StatusNotFound)
	case servefs.Forbidden:
		h.logger.Warn("refused request outside of root",
			"path", r.URL.Path,
			"segment", segment)
		w.WriteHeader(http.StatusForbidden)
	default:
		h.logger.Error("resolver returned no status",
			"path", r.URL.Path,
			"segment", segment,
			"status", content.Status.String())
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func (h *Handler) resolve(ctx context.Context, segment string) (servefs.Content, error) {
	ctx, span := h.tracer.Start(ctx, spanName,
		trace.WithAttributes(attribute.String("servefs.segment", segment)))
	defer span.End()

	start := time.Now()
	content, err := h.res.Resolve(ctx, segment)

	outcome := statusLabel(content.Status)
	if err != nil {
		outcome = "error"
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.SetAttributes(attribute.String("servefs.status", outcome))

	if h.metrics != nil {
		h.metrics.observe(outcome, time.Since(start))
	}

	return content, err
}

func statusLabel(s servefs.Status) string {
	return strings.ToLower(s.String())
}
