package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics holds the service's metric instruments.
type Metrics struct {
	requestTotal        metric.Int64Counter
	requestDuration     metric.Float64Histogram
	transcriptionTotal  metric.Int64Counter
	transcriptionLength metric.Int64Histogram
	correctionTotal     metric.Int64Counter
	operationDuration   metric.Float64Histogram
	uploadBytes         metric.Int64Histogram
	errorTotal          metric.Int64Counter
}

// NewMetrics creates metric instruments on the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	var m Metrics
	var err error

	if m.requestTotal, err = meter.Int64Counter("http.request.total",
		metric.WithDescription("Total HTTP requests")); err != nil {
		return nil, fmt.Errorf("creating http.request.total: %w", err)
	}
	if m.requestDuration, err = meter.Float64Histogram("http.request.duration",
		metric.WithDescription("HTTP request duration in seconds"),
		metric.WithUnit("s")); err != nil {
		return nil, fmt.Errorf("creating http.request.duration: %w", err)
	}
	if m.transcriptionTotal, err = meter.Int64Counter("transcription.total",
		metric.WithDescription("Total transcription operations")); err != nil {
		return nil, fmt.Errorf("creating transcription.total: %w", err)
	}
	if m.transcriptionLength, err = meter.Int64Histogram("transcription.text_length",
		metric.WithDescription("Length of produced transcripts in characters")); err != nil {
		return nil, fmt.Errorf("creating transcription.text_length: %w", err)
	}
	if m.correctionTotal, err = meter.Int64Counter("correction.total",
		metric.WithDescription("Total grammar correction operations")); err != nil {
		return nil, fmt.Errorf("creating correction.total: %w", err)
	}
	if m.operationDuration, err = meter.Float64Histogram("operation.duration",
		metric.WithDescription("Duration of backend operations in seconds"),
		metric.WithUnit("s")); err != nil {
		return nil, fmt.Errorf("creating operation.duration: %w", err)
	}
	if m.uploadBytes, err = meter.Int64Histogram("upload.bytes",
		metric.WithDescription("Size of uploaded audio files in bytes"),
		metric.WithUnit("By")); err != nil {
		return nil, fmt.Errorf("creating upload.bytes: %w", err)
	}
	if m.errorTotal, err = meter.Int64Counter("error.total",
		metric.WithDescription("Total errors by type and component")); err != nil {
		return nil, fmt.Errorf("creating error.total: %w", err)
	}

	return &m, nil
}

// RecordRequest records a completed HTTP request.
func (m *Metrics) RecordRequest(ctx context.Context, method, route string, status int, duration time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String("method", method),
		attribute.String("route", route),
		attribute.Int("status", status),
	)
	m.requestTotal.Add(ctx, 1, attrs)
	m.requestDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("method", method),
		attribute.String("route", route),
	))
}

// RecordTranscription records a transcription operation and its output size.
func (m *Metrics) RecordTranscription(ctx context.Context, status string, textLength int, duration time.Duration) {
	m.transcriptionTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("status", status)))
	m.operationDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("operation", "transcribe"),
	))
	if status == "ok" {
		m.transcriptionLength.Record(ctx, int64(textLength))
	}
}

// RecordCorrection records a grammar correction operation.
func (m *Metrics) RecordCorrection(ctx context.Context, status string, duration time.Duration) {
	m.correctionTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("status", status)))
	m.operationDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("operation", "correct"),
	))
}

// RecordUpload records the size of a staged upload.
func (m *Metrics) RecordUpload(ctx context.Context, bytes int64) {
	m.uploadBytes.Record(ctx, bytes)
}

// RecordError records an error by type and component.
func (m *Metrics) RecordError(ctx context.Context, errType, component string) {
	m.errorTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("type", errType),
		attribute.String("component", component),
	))
}
