package observability

import (
	"context"
	"testing"
	"time"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func collect(t *testing.T, reader *sdkmetric.ManualReader) metricdata.ResourceMetrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("collect: %v", err)
	}
	return rm
}

func findMetric(rm metricdata.ResourceMetrics, name string) *metricdata.Metrics {
	for _, sm := range rm.ScopeMetrics {
		for i := range sm.Metrics {
			if sm.Metrics[i].Name == name {
				return &sm.Metrics[i]
			}
		}
	}
	return nil
}

func TestMetrics_RecordRequest(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer mp.Shutdown(context.Background()) //nolint:errcheck

	m, err := NewMetrics(mp.Meter("test"))
	if err != nil {
		t.Fatalf("NewMetrics failed: %v", err)
	}

	ctx := context.Background()
	m.RecordRequest(ctx, "POST", "/api/transcribe", 200, 120*time.Millisecond)
	m.RecordRequest(ctx, "POST", "/api/transcribe", 400, 5*time.Millisecond)

	rm := collect(t, reader)
	total := findMetric(rm, "http.request.total")
	if total == nil {
		t.Fatal("http.request.total not recorded")
	}
	sum, ok := total.Data.(metricdata.Sum[int64])
	if !ok {
		t.Fatalf("unexpected data type %T", total.Data)
	}
	var count int64
	for _, dp := range sum.DataPoints {
		count += dp.Value
	}
	if count != 2 {
		t.Errorf("request total = %d, want 2", count)
	}
}

func TestMetrics_RecordTranscriptionLengthOnlyOnSuccess(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer mp.Shutdown(context.Background()) //nolint:errcheck

	m, err := NewMetrics(mp.Meter("test"))
	if err != nil {
		t.Fatalf("NewMetrics failed: %v", err)
	}

	ctx := context.Background()
	m.RecordTranscription(ctx, "ok", 42, time.Second)
	m.RecordTranscription(ctx, "error", 0, time.Second)

	rm := collect(t, reader)
	length := findMetric(rm, "transcription.text_length")
	if length == nil {
		t.Fatal("transcription.text_length not recorded")
	}
	hist, ok := length.Data.(metricdata.Histogram[int64])
	if !ok {
		t.Fatalf("unexpected data type %T", length.Data)
	}
	var samples uint64
	for _, dp := range hist.DataPoints {
		samples += dp.Count
	}
	if samples != 1 {
		t.Errorf("text_length samples = %d, want 1 (errors excluded)", samples)
	}
}

func TestInit_DisabledIsNoOp(t *testing.T) {
	p, err := Init(context.Background(), Config{Enabled: false}, "svc", "dev")
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if p != nil {
		t.Error("expected nil providers when disabled")
	}
	if err := p.Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown on nil providers: %v", err)
	}
}
