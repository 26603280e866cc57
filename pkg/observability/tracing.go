// Package observability provides tracing for searchlink. Logging lives in
// pkg/logger; metrics in pkg/metrics. Tracing is initialized once at process
// start and gated by the connector's trace-enable configuration.
package observability

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var (
	// Global tracer instance
	tracer trace.Tracer

	// Initialization lock
	initOnce sync.Once
)

// TracingConfig contains tracing configuration
type TracingConfig struct {
	ServiceName    string
	ServiceVersion string
	Environment    string
	SamplingRate   float64
	ExporterType   string // "stdout"
	BatchTimeout   time.Duration
	MaxExportBatch int
	MaxQueueSize   int
}

// Initialize sets up the tracing provider. Safe to call multiple times;
// only the first call takes effect.
func Initialize(config TracingConfig) error {
	var err error

	initOnce.Do(func() {
		err = initTracing(config)
	})

	return err
}

// GetTracer returns the global tracer. Before Initialize it returns the
// otel no-op tracer, so span creation is always safe.
func GetTracer() trace.Tracer {
	if tracer == nil {
		return otel.Tracer("searchlink")
	}
	return tracer
}

// Span represents a tracing span with batched attribute recording
type Span struct {
	span       trace.Span
	startTime  time.Time
	attributes []attribute.KeyValue
}

// NewSpan creates a new span
func NewSpan(ctx context.Context, operationName string) (context.Context, *Span) {
	ctx, span := GetTracer().Start(ctx, operationName)

	return ctx, &Span{
		span:      span,
		startTime: time.Now(),
	}
}

// SetAttribute adds an attribute to the span (batched for performance)
func (s *Span) SetAttribute(key string, value interface{}) {
	var attr attribute.KeyValue

	switch v := value.(type) {
	case string:
		attr = attribute.String(key, v)
	case int:
		attr = attribute.Int(key, v)
	case int64:
		attr = attribute.Int64(key, v)
	case float64:
		attr = attribute.Float64(key, v)
	case bool:
		attr = attribute.Bool(key, v)
	default:
		attr = attribute.String(key, fmt.Sprintf("%v", v))
	}

	s.attributes = append(s.attributes, attr)
}

// AddEvent adds an event to the span
func (s *Span) AddEvent(name string, attrs ...attribute.KeyValue) {
	s.span.AddEvent(name, trace.WithAttributes(attrs...))
}

// SetStatus sets the span status
func (s *Span) SetStatus(code codes.Code, description string) {
	s.span.SetStatus(code, description)
}

// End ends the span
func (s *Span) End() {
	if len(s.attributes) > 0 {
		s.span.SetAttributes(s.attributes...)
	}
	s.span.End()
}

// ConnectorTracer provides connector-specific tracing utilities
type ConnectorTracer struct {
	connectorType string
	connectorName string
}

// NewConnectorTracer creates a new connector tracer
func NewConnectorTracer(connectorType, connectorName string) *ConnectorTracer {
	return &ConnectorTracer{
		connectorType: connectorType,
		connectorName: connectorName,
	}
}

// StartSpan starts a connector-specific span
func (ct *ConnectorTracer) StartSpan(ctx context.Context, operation string) (context.Context, *Span) {
	operationName := fmt.Sprintf("%s.%s.%s", ct.connectorType, ct.connectorName, operation)
	ctx, span := NewSpan(ctx, operationName)

	span.SetAttribute("connector.type", ct.connectorType)
	span.SetAttribute("connector.name", ct.connectorName)
	span.SetAttribute("connector.operation", operation)

	return ctx, span
}
