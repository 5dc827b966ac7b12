// Package branding ties palette derivation to per-tenant settings storage.
package branding

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/emiliopalmerini/brandkit/internal/domain"
	"github.com/emiliopalmerini/brandkit/internal/editor"
	"github.com/emiliopalmerini/brandkit/internal/palette"
	"github.com/emiliopalmerini/brandkit/internal/ports"
)

var (
	// ErrTenantRequired is returned when an operation has no tenant to act on.
	ErrTenantRequired = errors.New("tenant id is required")

	// ErrRevisionNotFound is returned when a revision id is unknown to the tenant.
	ErrRevisionNotFound = errors.New("revision not found")
)

// Update is published to subscribers after every successful save.
type Update struct {
	TenantID   string          `json:"tenantId"`
	RevisionID string          `json:"revisionId"`
	SavedAt    time.Time       `json:"savedAt"`
	Settings   domain.Settings `json:"settings"`
	Palette    palette.Palette `json:"palette"`
}

// Snapshot is a tenant's current settings and the palette derived from them.
type Snapshot struct {
	TenantID string          `json:"tenantId"`
	Settings domain.Settings `json:"settings"`
	Saved    bool            `json:"saved"`
	Palette  palette.Palette `json:"palette"`
}

type Service struct {
	repo     ports.SettingsRepository
	exporter ports.MetricsExporter
	logger   *zap.Logger
	blend    palette.Blend
	interp   palette.Interpolator

	mu     sync.Mutex
	rng    *rand.Rand
	nextID int
	subs   map[int]func(Update)
}

// NewService wires the service. A nil exporter or logger is replaced with a
// no-op.
func NewService(repo ports.SettingsRepository, exporter ports.MetricsExporter, logger *zap.Logger, blend palette.Blend) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if exporter == nil {
		exporter = nopExporter{}
	}
	if blend == "" {
		blend = palette.BlendHSL
	}
	return &Service{
		repo:     repo,
		exporter: exporter,
		logger:   logger,
		blend:    blend,
		interp:   blend.Interpolator(),
		rng:      rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		subs:     map[int]func(Update){},
	}
}

// WithRand replaces the random source, for deterministic tests.
func (s *Service) WithRand(r *rand.Rand) *Service {
	s.mu.Lock()
	s.rng = r
	s.mu.Unlock()
	return s
}

// Blend reports the configured dark-surface interpolation.
func (s *Service) Blend() palette.Blend {
	return s.blend
}

// Interpolator is the function behind Blend.
func (s *Service) Interpolator() palette.Interpolator {
	return s.interp
}

// Preview derives the palette for hex without touching storage.
func (s *Service) Preview(ctx context.Context, tenantID, hex string, dark bool) (palette.Palette, error) {
	base, err := palette.ParseHex(hex)
	if err != nil {
		return palette.Palette{}, err
	}
	s.record(ctx, tenantID, "preview", dark)
	return palette.NewPalette(base, s.interp), nil
}

// RandomColor draws a vivid mid-lightness color.
func (s *Service) RandomColor() palette.RGB {
	s.mu.Lock()
	defer s.mu.Unlock()
	return palette.Random(s.rng)
}

// Random derives the palette for a random color.
func (s *Service) Random(ctx context.Context, tenantID string, dark bool) palette.Palette {
	s.record(ctx, tenantID, "random", dark)
	return palette.NewPalette(s.RandomColor(), s.interp)
}

// Current loads the tenant's settings and derives the palette from the saved
// primary color, falling back to the default preset. It is a read of stored
// state and records no preview metric.
func (s *Service) Current(ctx context.Context, tenantID string) (Snapshot, error) {
	if strings.TrimSpace(tenantID) == "" {
		return Snapshot{}, ErrTenantRequired
	}
	doc, err := s.repo.Get(ctx, tenantID)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to load settings for %s: %w", tenantID, err)
	}
	saved := doc != nil
	if doc == nil {
		doc = domain.Settings{}
	}
	return Snapshot{
		TenantID: tenantID,
		Settings: doc,
		Saved:    saved,
		Palette:  palette.NewPalette(doc.BrandColor(), s.interp),
	}, nil
}

// Editor starts an editor session from a snapshot returned by Current and
// applies the actions in order.
func (s *Service) Editor(ctx context.Context, snap Snapshot, actions ...editor.Action) editor.State {
	saved := ""
	if hex, ok := snap.Settings.PrimaryColor(); ok {
		saved = hex
	}
	st := editor.ReduceAll(editor.New(saved), actions...)
	s.record(ctx, snap.TenantID, "editor", st.Dark)
	return st
}

// SaveSettings validates and stores a full settings document, then notifies
// subscribers.
func (s *Service) SaveSettings(ctx context.Context, tenantID string, doc domain.Settings) (*domain.SettingsRevision, error) {
	if strings.TrimSpace(tenantID) == "" {
		return nil, ErrTenantRequired
	}
	if doc == nil {
		return nil, fmt.Errorf("%w: document must be a JSON object", domain.ErrInvalidSettings)
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	if hex, ok := doc.PrimaryColor(); ok {
		doc.SetPrimaryColor(hex)
	}

	previous, err := s.repo.Get(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings for %s: %w", tenantID, err)
	}
	before, _ := previous.PrimaryColor()
	after, _ := doc.PrimaryColor()

	rev, err := s.repo.Save(ctx, tenantID, doc)
	if err != nil {
		return nil, fmt.Errorf("failed to save settings for %s: %w", tenantID, err)
	}

	size := 0
	if data, err := json.Marshal(doc); err == nil {
		size = len(data)
	}
	if err := s.exporter.RecordSettingsSaved(ctx, ports.SettingsEvent{
		TenantID:        tenantID,
		BrandingChanged: before != after,
		DocumentBytes:   size,
	}); err != nil {
		s.logger.Warn("failed to record settings metric", zap.Error(err))
	}

	s.logger.Info("settings saved",
		zap.String("tenant", tenantID),
		zap.String("revision", rev.ID),
		zap.String("primary_color", after))

	s.publish(Update{
		TenantID:   tenantID,
		RevisionID: rev.ID,
		SavedAt:    rev.CreatedAt,
		Settings:   rev.Document,
		Palette:    palette.NewPalette(doc.BrandColor(), s.interp),
	})
	return rev, nil
}

// SetPrimaryColor stores hex as the tenant's brand color, keeping the rest of
// the document.
func (s *Service) SetPrimaryColor(ctx context.Context, tenantID, hex string) (*domain.SettingsRevision, error) {
	if _, err := palette.ParseHex(hex); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidSettings, err)
	}
	snap, err := s.Current(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	doc := snap.Settings.Clone()
	doc.SetPrimaryColor(hex)
	return s.SaveSettings(ctx, tenantID, doc)
}

// Revisions lists stored revisions, newest first.
func (s *Service) Revisions(ctx context.Context, tenantID string, limit int) ([]*domain.SettingsRevision, error) {
	if strings.TrimSpace(tenantID) == "" {
		return nil, ErrTenantRequired
	}
	revs, err := s.repo.ListRevisions(ctx, tenantID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list revisions for %s: %w", tenantID, err)
	}
	return revs, nil
}

// Restore saves an earlier revision's document as a new revision.
func (s *Service) Restore(ctx context.Context, tenantID, revisionID string) (*domain.SettingsRevision, error) {
	rev, err := s.repo.GetRevision(ctx, revisionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load revision %s: %w", revisionID, err)
	}
	if rev == nil || rev.TenantID != tenantID {
		return nil, fmt.Errorf("%w: %s", ErrRevisionNotFound, revisionID)
	}
	return s.SaveSettings(ctx, tenantID, rev.Document.Clone())
}

// Subscribe registers fn for save notifications and returns a function that
// removes it. fn runs on the saving goroutine and must not block.
func (s *Service) Subscribe(fn func(Update)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *Service) publish(u Update) {
	s.mu.Lock()
	fns := make([]func(Update), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(u)
	}
}

func (s *Service) record(ctx context.Context, tenantID, source string, dark bool) {
	err := s.exporter.RecordPalettePreview(ctx, ports.PaletteEvent{
		TenantID: tenantID,
		Source:   source,
		Blend:    string(s.blend),
		Dark:     dark,
	})
	if err != nil {
		s.logger.Warn("failed to record palette metric", zap.Error(err))
	}
}

type nopExporter struct{}

func (nopExporter) RecordPalettePreview(context.Context, ports.PaletteEvent) error { return nil }
func (nopExporter) RecordSettingsSaved(context.Context, ports.SettingsEvent) error { return nil }
func (nopExporter) Close(context.Context) error                                    { return nil }
