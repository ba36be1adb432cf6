// Package telemetry wires Prometheus metrics and OpenTelemetry tracing
// around diagram builds and the HTTP surface.
package telemetry

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"
)

var (
	buildsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "procmap_builds_total",
			Help: "Total number of diagram builds.",
		},
		[]string{"process", "outcome"},
	)
	buildDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "procmap_build_duration_seconds",
			Help:    "Duration of diagram builds.",
			Buckets: prometheus.DefBuckets,
		},
	)
	buildWarnings = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "procmap_build_warnings_total",
			Help: "Recovered per-row anomalies, by kind.",
		},
		[]string{"kind"},
	)
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "procmap_http_requests_total",
			Help: "Total number of HTTP requests received.",
		},
		[]string{"handler", "method", "code"},
	)
	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "procmap_http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"handler", "method"},
	)
)

func init() {
	prometheus.MustRegister(buildsTotal, buildDuration, buildWarnings, httpRequestsTotal, httpRequestDuration)
}

// Init sets up the tracer provider with the stdout exporter.
func Init(serviceName string) {
	if serviceName == "" {
		serviceName = "procmap"
	}
	res, _ := resource.New(
		context.Background(),
		resource.WithAttributes(semconv.ServiceName(serviceName)),
	)
	exp, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
	if err != nil {
		return
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
}

// Tracer returns the procmap tracer.
func Tracer() trace.Tracer {
	return otel.Tracer("procmap")
}

// ObserveBuild records one build's metrics.
func ObserveBuild(process string, dur time.Duration, warningKinds []string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	buildsTotal.WithLabelValues(process, outcome).Inc()
	buildDuration.Observe(dur.Seconds())
	for _, kind := range warningKinds {
		buildWarnings.WithLabelValues(kind).Inc()
	}
}

// WrapHandler applies tracing and Prometheus metrics middleware.
func WrapHandler(name string, next http.Handler) http.Handler {
	h := otelhttp.NewHandler(next, name)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &responseWriter{w, 200}
		h.ServeHTTP(rw, r)
		dur := time.Since(start).Seconds()
		httpRequestsTotal.WithLabelValues(name, r.Method, fmt.Sprintf("%d", rw.status)).Inc()
		httpRequestDuration.WithLabelValues(name, r.Method).Observe(dur)
	})
}

type responseWriter struct {
	http.ResponseWriter
	status int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

// MetricsHandler returns the Prometheus metrics endpoint handler.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
