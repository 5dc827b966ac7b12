package otel

import (
	"context"

	"github.com/emiliopalmerini/brandkit/internal/ports"
)

// NoOpExporter is a metrics exporter that does nothing.
type NoOpExporter struct{}

// NewNoOpExporter creates a new no-op exporter for graceful degradation.
func NewNoOpExporter() *NoOpExporter {
	return &NoOpExporter{}
}

func (e *NoOpExporter) RecordPalettePreview(ctx context.Context, ev ports.PaletteEvent) error {
	return nil
}

func (e *NoOpExporter) RecordSettingsSaved(ctx context.Context, ev ports.SettingsEvent) error {
	return nil
}

func (e *NoOpExporter) Close(ctx context.Context) error {
	return nil
}
