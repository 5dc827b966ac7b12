package ports_test

import (
	"testing"

	"github.com/emiliopalmerini/brandkit/internal/adapters/otel"
	"github.com/emiliopalmerini/brandkit/internal/adapters/turso"
	"github.com/emiliopalmerini/brandkit/internal/branding"
	"github.com/emiliopalmerini/brandkit/internal/ports"
)

// Compile-time interface conformance checks.
// These verify that concrete adapters properly implement their port interfaces.

func TestSettingsRepositoryConformance(t *testing.T) {
	var _ ports.SettingsRepository = (*turso.SettingsRepository)(nil)
	var _ ports.SettingsRepository = (*branding.MockSettingsRepository)(nil)
}

func TestMetricsExporterConformance(t *testing.T) {
	var _ ports.MetricsExporter = (*otel.Exporter)(nil)
	var _ ports.MetricsExporter = (*otel.NoOpExporter)(nil)
	var _ ports.MetricsExporter = (*branding.MockMetricsExporter)(nil)
}
