package turso

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/emiliopalmerini/brandkit/internal/domain"
	"github.com/emiliopalmerini/brandkit/internal/infrastructure/database"
)

const readRetries = 2

type SettingsRepository struct {
	db  *sql.DB
	now func() time.Time
}

func NewSettingsRepository(db *sql.DB) *SettingsRepository {
	return &SettingsRepository{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}
}

func (r *SettingsRepository) Get(ctx context.Context, tenantID string) (domain.Settings, error) {
	doc, err := database.WithRetry(ctx, readRetries, func() (string, error) {
		var doc string
		err := r.db.QueryRowContext(ctx,
			`SELECT document FROM tenant_settings WHERE tenant_id = ?`, tenantID).Scan(&doc)
		return doc, err
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	return decodeDocument(doc)
}

// Save writes the document as the tenant's current settings and appends it to
// the revision history in a single transaction.
func (r *SettingsRepository) Save(ctx context.Context, tenantID string, doc domain.Settings) (*domain.SettingsRevision, error) {
	if doc == nil {
		doc = domain.Settings{}
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode settings: %w", err)
	}

	rev := &domain.SettingsRevision{
		ID:        uuid.NewString(),
		TenantID:  tenantID,
		Document:  doc.Clone(),
		CreatedAt: r.now(),
	}
	createdAt := rev.CreatedAt.Format(time.RFC3339Nano)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO settings_revisions (id, tenant_id, document, created_at) VALUES (?, ?, ?, ?)`,
		rev.ID, tenantID, string(data), createdAt); err != nil {
		return nil, fmt.Errorf("failed to insert revision: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO tenant_settings (tenant_id, document, revision_id, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (tenant_id) DO UPDATE SET
			document = excluded.document,
			revision_id = excluded.revision_id,
			updated_at = excluded.updated_at`,
		tenantID, string(data), rev.ID, createdAt); err != nil {
		return nil, fmt.Errorf("failed to upsert settings: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit settings: %w", err)
	}
	return rev, nil
}

// ListRevisions returns the newest revisions first. A non-positive limit
// returns all of them.
func (r *SettingsRepository) ListRevisions(ctx context.Context, tenantID string, limit int) ([]*domain.SettingsRevision, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, tenant_id, document, created_at
		FROM settings_revisions
		WHERE tenant_id = ?
		ORDER BY rowid DESC
		LIMIT ?`, tenantID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list revisions: %w", err)
	}
	defer rows.Close()

	var revisions []*domain.SettingsRevision
	for rows.Next() {
		rev, err := scanRevision(rows)
		if err != nil {
			return nil, err
		}
		revisions = append(revisions, rev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate revisions: %w", err)
	}
	return revisions, nil
}

func (r *SettingsRepository) GetRevision(ctx context.Context, id string) (*domain.SettingsRevision, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, tenant_id, document, created_at FROM settings_revisions WHERE id = ?`, id)
	rev, err := scanRevision(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return rev, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRevision(s scanner) (*domain.SettingsRevision, error) {
	var (
		rev       domain.SettingsRevision
		doc       string
		createdAt string
	)
	if err := s.Scan(&rev.ID, &rev.TenantID, &doc, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan revision: %w", err)
	}

	settings, err := decodeDocument(doc)
	if err != nil {
		return nil, err
	}
	rev.Document = settings
	rev.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
	return &rev, nil
}

func decodeDocument(doc string) (domain.Settings, error) {
	settings, err := domain.ParseSettings([]byte(doc))
	if err != nil {
		return nil, fmt.Errorf("stored settings are corrupt: %w", err)
	}
	return settings, nil
}
