package otel

import (
	"context"
	"testing"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/emiliopalmerini/brandkit/internal/infrastructure/config"
	"github.com/emiliopalmerini/brandkit/internal/ports"
)

var (
	_ ports.MetricsExporter = (*Exporter)(nil)
	_ ports.MetricsExporter = (*NoOpExporter)(nil)
)

func TestNew_DisabledIsNoOp(t *testing.T) {
	exp, err := New(context.Background(), ConfigFrom(config.OTel{Enabled: true}))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if _, ok := exp.(*NoOpExporter); !ok {
		t.Errorf("expected no-op exporter without endpoint, got %T", exp)
	}
}

func TestNewExporter_RequiresEndpoint(t *testing.T) {
	if _, err := NewExporter(context.Background(), Config{Enabled: false, Endpoint: "localhost:4317"}); err == nil {
		t.Error("expected error when disabled")
	}
}

func TestExporter_RecordsCounters(t *testing.T) {
	ctx := context.Background()
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	exp, err := newExporter(provider)
	if err != nil {
		t.Fatalf("newExporter failed: %v", err)
	}
	defer exp.Close(ctx)

	_ = exp.RecordPalettePreview(ctx, ports.PaletteEvent{TenantID: "acme", Source: "preview", Blend: "hsl"})
	_ = exp.RecordPalettePreview(ctx, ports.PaletteEvent{TenantID: "acme", Source: "preview", Blend: "hsl"})
	_ = exp.RecordSettingsSaved(ctx, ports.SettingsEvent{TenantID: "acme", BrandingChanged: true, DocumentBytes: 64})

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(ctx, &rm); err != nil {
		t.Fatalf("Collect failed: %v", err)
	}

	totals := map[string]int64{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if sum, ok := m.Data.(metricdata.Sum[int64]); ok {
				for _, dp := range sum.DataPoints {
					totals[m.Name] += dp.Value
				}
			}
		}
	}
	if totals["brandkit_palette_previews_total"] != 2 {
		t.Errorf("expected 2 previews, got %d", totals["brandkit_palette_previews_total"])
	}
	if totals["brandkit_settings_saves_total"] != 1 {
		t.Errorf("expected 1 save, got %d", totals["brandkit_settings_saves_total"])
	}
}
