package otel

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/emiliopalmerini/brandkit/internal/ports"
)

const (
	serviceName    = "brandkit"
	serviceVersion = "1.0.0"
)

// Exporter pushes branding metrics to an OTEL Collector.
type Exporter struct {
	provider      *sdkmetric.MeterProvider
	previewsTotal metric.Int64Counter
	savesTotal    metric.Int64Counter
	documentSize  metric.Int64Histogram
}

// NewExporter creates a new OTEL metrics exporter.
func NewExporter(ctx context.Context, cfg Config) (*Exporter, error) {
	if !cfg.Enabled || cfg.Endpoint == "" {
		return nil, fmt.Errorf("OTEL exporter is disabled or endpoint not configured")
	}

	opts := []otlpmetricgrpc.Option{
		otlpmetricgrpc.WithEndpoint(cfg.Endpoint),
	}
	if cfg.Insecure {
		opts = append(opts, otlpmetricgrpc.WithDialOption(grpc.WithTransportCredentials(insecure.NewCredentials())))
		opts = append(opts, otlpmetricgrpc.WithInsecure())
	}

	exp, err := otlpmetricgrpc.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating OTLP exporter: %w", err)
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(serviceVersion),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exp)),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(provider)

	e, err := newExporter(provider)
	if err != nil {
		_ = provider.Shutdown(ctx)
		return nil, err
	}
	return e, nil
}

// newExporter registers the instruments on provider.
func newExporter(provider *sdkmetric.MeterProvider) (*Exporter, error) {
	meter := provider.Meter(serviceName)

	previewsTotal, err := meter.Int64Counter(
		"brandkit_palette_previews_total",
		metric.WithDescription("Palettes derived from a brand color"),
		metric.WithUnit("{palette}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating previews counter: %w", err)
	}

	savesTotal, err := meter.Int64Counter(
		"brandkit_settings_saves_total",
		metric.WithDescription("Stored settings revisions"),
		metric.WithUnit("{revision}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating saves counter: %w", err)
	}

	documentSize, err := meter.Int64Histogram(
		"brandkit_settings_document_bytes",
		metric.WithDescription("Size of saved settings documents"),
		metric.WithUnit("By"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating document size histogram: %w", err)
	}

	return &Exporter{
		provider:      provider,
		previewsTotal: previewsTotal,
		savesTotal:    savesTotal,
		documentSize:  documentSize,
	}, nil
}

func (e *Exporter) RecordPalettePreview(ctx context.Context, ev ports.PaletteEvent) error {
	e.previewsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("tenant_id", ev.TenantID),
		attribute.String("source", ev.Source),
		attribute.String("blend", ev.Blend),
		attribute.Bool("dark", ev.Dark),
	))
	return nil
}

func (e *Exporter) RecordSettingsSaved(ctx context.Context, ev ports.SettingsEvent) error {
	opt := metric.WithAttributes(
		attribute.String("tenant_id", ev.TenantID),
		attribute.Bool("branding_changed", ev.BrandingChanged),
	)
	e.savesTotal.Add(ctx, 1, opt)
	e.documentSize.Record(ctx, int64(ev.DocumentBytes), opt)
	return nil
}

// Close shuts down the exporter and flushes any pending metrics.
func (e *Exporter) Close(ctx context.Context) error {
	return e.provider.Shutdown(ctx)
}

// New returns the OTLP exporter when configured and a no-op exporter
// otherwise, so callers never branch on availability.
func New(ctx context.Context, cfg Config) (ports.MetricsExporter, error) {
	if !cfg.Enabled || cfg.Endpoint == "" {
		return NewNoOpExporter(), nil
	}
	return NewExporter(ctx, cfg)
}
