package ports

import (
	"context"

	"github.com/emiliopalmerini/brandkit/internal/domain"
)

// SettingsRepository stores one current settings document per tenant plus
// its revision history.
type SettingsRepository interface {
	// Get returns the current document, or nil when the tenant has none.
	Get(ctx context.Context, tenantID string) (domain.Settings, error)
	Save(ctx context.Context, tenantID string, doc domain.Settings) (*domain.SettingsRevision, error)
	ListRevisions(ctx context.Context, tenantID string, limit int) ([]*domain.SettingsRevision, error)
	// GetRevision returns nil when no revision has the id.
	GetRevision(ctx context.Context, id string) (*domain.SettingsRevision, error)
}
