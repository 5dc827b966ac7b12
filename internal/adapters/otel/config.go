package otel

import "github.com/emiliopalmerini/brandkit/internal/infrastructure/config"

// Config holds OTEL exporter configuration.
type Config struct {
	Endpoint string
	Enabled  bool
	Insecure bool
}

// ConfigFrom maps the BRANDKIT_OTEL_* settings.
func ConfigFrom(c config.OTel) Config {
	return Config{
		Endpoint: c.Endpoint,
		Enabled:  c.Enabled,
		Insecure: c.Insecure,
	}
}
