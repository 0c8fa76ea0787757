package trace

import (
	"context"
	"io"
	"os"
	"strconv"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"
)

const (
	ServiceName    = "astrotrade"
	ServiceVersion = "1.0.0"
)

var (
	tracer         trace.Tracer
	tracerProvider *sdktrace.TracerProvider
	sink           io.Closer
	enabled        bool
)

// Config selects where spans go and how many are kept.
type Config struct {
	// File receives the pretty-printed spans. Empty means stderr.
	File string
	// SampleRatio in (0, 1]. Values outside that range sample everything.
	SampleRatio float64
}

// ConfigFromEnv reads LOG_TRACE_FILE and LOG_TRACE_SAMPLE_RATIO.
func ConfigFromEnv() Config {
	ratio, err := strconv.ParseFloat(os.Getenv("LOG_TRACE_SAMPLE_RATIO"), 64)
	if err != nil {
		ratio = 1
	}
	return Config{File: os.Getenv("LOG_TRACE_FILE"), SampleRatio: ratio}
}

// Setup enables tracing per cfg.
func Setup(cfg Config) error {
	if cfg.File == "" {
		return setup(os.Stderr, cfg.SampleRatio)
	}
	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	if err := setup(f, cfg.SampleRatio); err != nil {
		f.Close()
		return err
	}
	sink = f
	return nil
}

// InitWithWriter enables tracing with every span exported to w.
func InitWithWriter(w io.Writer) error {
	return setup(w, 1)
}

func setup(w io.Writer, ratio float64) error {
	exporter, err := stdouttrace.New(
		stdouttrace.WithWriter(w),
		stdouttrace.WithPrettyPrint(),
	)
	if err != nil {
		return err
	}

	res, err := resource.New(
		context.Background(),
		resource.WithAttributes(
			semconv.ServiceName(ServiceName),
			semconv.ServiceVersion(ServiceVersion),
		),
	)
	if err != nil {
		return err
	}

	sampler := sdktrace.AlwaysSample()
	if ratio > 0 && ratio < 1 {
		sampler = sdktrace.ParentBased(sdktrace.TraceIDRatioBased(ratio))
	}

	tracerProvider = sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sampler),
	)
	otel.SetTracerProvider(tracerProvider)
	tracer = otel.Tracer(ServiceName)
	enabled = true
	return nil
}

// Shutdown flushes pending spans and closes the span file, if any.
func Shutdown(ctx context.Context) error {
	if tracerProvider == nil {
		return nil
	}
	err := tracerProvider.Shutdown(ctx)
	tracerProvider = nil
	enabled = false
	if sink != nil {
		if cerr := sink.Close(); err == nil {
			err = cerr
		}
		sink = nil
	}
	return err
}

func StartSpan(ctx context.Context, spanName string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	if !enabled || tracer == nil {
		return ctx, trace.SpanFromContext(ctx)
	}
	return tracer.Start(ctx, spanName, opts...)
}

func Enabled() bool {
	return enabled
}

// GetTraceFields returns the hex ids of the span in ctx for log correlation.
func GetTraceFields(ctx context.Context) (traceID, spanID string, ok bool) {
	if !enabled {
		return "", "", false
	}
	sc := trace.SpanFromContext(ctx).SpanContext()
	if !sc.IsValid() {
		return "", "", false
	}
	return sc.TraceID().String(), sc.SpanID().String(), true
}
