package branding

import (
	"context"
	"sync"
	"time"

	"github.com/emiliopalmerini/brandkit/internal/domain"
	"github.com/emiliopalmerini/brandkit/internal/ports"
)

// MockSettingsRepository is a mock implementation of ports.SettingsRepository for testing.
type MockSettingsRepository struct {
	GetFunc           func(ctx context.Context, tenantID string) (domain.Settings, error)
	SaveFunc          func(ctx context.Context, tenantID string, doc domain.Settings) (*domain.SettingsRevision, error)
	ListRevisionsFunc func(ctx context.Context, tenantID string, limit int) ([]*domain.SettingsRevision, error)
	GetRevisionFunc   func(ctx context.Context, id string) (*domain.SettingsRevision, error)
}

func (m *MockSettingsRepository) Get(ctx context.Context, tenantID string) (domain.Settings, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, tenantID)
	}
	return nil, nil
}

func (m *MockSettingsRepository) Save(ctx context.Context, tenantID string, doc domain.Settings) (*domain.SettingsRevision, error) {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, tenantID, doc)
	}
	return &domain.SettingsRevision{
		ID:        "rev-1",
		TenantID:  tenantID,
		Document:  doc.Clone(),
		CreatedAt: time.Now().UTC(),
	}, nil
}

func (m *MockSettingsRepository) ListRevisions(ctx context.Context, tenantID string, limit int) ([]*domain.SettingsRevision, error) {
	if m.ListRevisionsFunc != nil {
		return m.ListRevisionsFunc(ctx, tenantID, limit)
	}
	return []*domain.SettingsRevision{}, nil
}

func (m *MockSettingsRepository) GetRevision(ctx context.Context, id string) (*domain.SettingsRevision, error) {
	if m.GetRevisionFunc != nil {
		return m.GetRevisionFunc(ctx, id)
	}
	return nil, nil
}

// MockMetricsExporter records events instead of exporting them.
type MockMetricsExporter struct {
	mu       sync.Mutex
	Previews []ports.PaletteEvent
	Saves    []ports.SettingsEvent
}

func (m *MockMetricsExporter) RecordPalettePreview(ctx context.Context, e ports.PaletteEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Previews = append(m.Previews, e)
	return nil
}

func (m *MockMetricsExporter) RecordSettingsSaved(ctx context.Context, e ports.SettingsEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Saves = append(m.Saves, e)
	return nil
}

func (m *MockMetricsExporter) Close(ctx context.Context) error {
	return nil
}
