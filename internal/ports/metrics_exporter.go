package ports

import "context"

// MetricsExporter exports branding activity to an external observability system.
type MetricsExporter interface {
	// RecordPalettePreview counts one derived palette.
	RecordPalettePreview(ctx context.Context, e PaletteEvent) error
	// RecordSettingsSaved counts one stored settings revision.
	RecordSettingsSaved(ctx context.Context, e SettingsEvent) error
	// Close shuts down the exporter and flushes any pending metrics.
	Close(ctx context.Context) error
}

// PaletteEvent describes a palette derivation.
type PaletteEvent struct {
	TenantID string
	Source   string // "preview", "editor", "random"
	Blend    string
	Dark     bool
}

// SettingsEvent describes a settings save.
type SettingsEvent struct {
	TenantID        string
	BrandingChanged bool
	DocumentBytes   int
}
