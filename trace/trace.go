// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package trace wires OpenTelemetry span export behind avalanchego's
// trace.Tracer interface. Spans ship to a Zipkin collector; a
// disabled tracer discards them for the cost of one interface call.
package trace

import (
	"context"
	"time"

	"github.com/ava-labs/avalanchego/trace"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/zipkin"
	"go.opentelemetry.io/otel/sdk/resource"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/embedded"
)

const (
	defaultCollectorEndpoint = "http://localhost:9411/api/v2/spans"

	exportTimeout = 10 * time.Second
	// shutdownTimeout exceeds exportTimeout so in-flight exports can
	// drain before the provider stops.
	shutdownTimeout = 15 * time.Second
)

type Config struct {
	Enabled bool `json:"enabled"`

	// TraceSampleRate is the fraction of spans kept: >=1 samples
	// everything, <=0 nothing.
	TraceSampleRate float64 `json:"traceSampleRate"`

	// CollectorEndpoint is the Zipkin span sink. Empty selects a
	// collector on localhost.
	CollectorEndpoint string `json:"collectorEndpoint"`

	AppName string `json:"appName"`
	Agent   string `json:"agent"`
	Version string `json:"version"`
}

// New returns a tracer for [config]. A disabled config yields a
// tracer that drops every span.
func New(config *Config) (trace.Tracer, error) {
	if !config.Enabled {
		return &noopTracer{
			t: oteltrace.NewNoopTracerProvider().Tracer(config.AppName),
		}, nil
	}

	endpoint := config.CollectorEndpoint
	if endpoint == "" {
		endpoint = defaultCollectorEndpoint
	}
	exporter, err := zipkin.New(endpoint)
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter, sdktrace.WithExportTimeout(exportTimeout)),
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String(config.Agent),
			attribute.String("version", config.Version),
		)),
		sdktrace.WithSampler(sdktrace.TraceIDRatioBased(config.TraceSampleRate)),
	)
	return &tracer{
		Tracer: tp.Tracer(config.AppName),
		tp:     tp,
	}, nil
}

type tracer struct {
	oteltrace.Tracer

	tp *sdktrace.TracerProvider
}

// Close flushes pending spans and stops the provider.
func (t *tracer) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return t.tp.Shutdown(ctx)
}

var _ trace.Tracer = (*noopTracer)(nil)

type noopTracer struct {
	embedded.Tracer

	t oteltrace.Tracer
}

func (n noopTracer) Start(
	ctx context.Context,
	name string,
	opts ...oteltrace.SpanStartOption,
) (context.Context, oteltrace.Span) {
	return n.t.Start(ctx, name, opts...)
}

func (noopTracer) Close() error {
	return nil
}
