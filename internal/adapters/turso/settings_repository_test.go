package turso_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/emiliopalmerini/brandkit/internal/adapters/turso"
	"github.com/emiliopalmerini/brandkit/internal/domain"
)

func TestSettingsRepository_GetMissing(t *testing.T) {
	repo := turso.NewSettingsRepository(testDB(t))

	got, err := repo.Get(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil settings, got %v", got)
	}
}

func TestSettingsRepository_SaveAndGet(t *testing.T) {
	repo := turso.NewSettingsRepository(testDB(t))
	ctx := context.Background()

	doc := domain.Settings{
		"branding": map[string]any{"primaryColor": "#10b981", "logo": "logo.svg"},
		"features": map[string]any{"beta": true},
	}

	rev, err := repo.Save(ctx, "acme", doc)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if rev.ID == "" || rev.TenantID != "acme" || rev.CreatedAt.IsZero() {
		t.Errorf("unexpected revision: %+v", rev)
	}

	got, err := repo.Get(ctx, "acme")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if diff := cmp.Diff(doc, got); diff != "" {
		t.Errorf("settings mismatch (-want +got):\n%s", diff)
	}
}

func TestSettingsRepository_SaveOverwritesAndKeepsHistory(t *testing.T) {
	repo := turso.NewSettingsRepository(testDB(t))
	ctx := context.Background()

	colors := []string{"#6366f1", "#f43f5e", "#14b8a6"}
	var ids []string
	for _, c := range colors {
		doc := domain.Settings{}
		doc.SetPrimaryColor(c)
		rev, err := repo.Save(ctx, "acme", doc)
		if err != nil {
			t.Fatalf("Save(%s) failed: %v", c, err)
		}
		ids = append(ids, rev.ID)
	}
	if _, err := repo.Save(ctx, "other", domain.Settings{}); err != nil {
		t.Fatalf("Save(other) failed: %v", err)
	}

	current, err := repo.Get(ctx, "acme")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if c, _ := current.PrimaryColor(); c != "#14b8a6" {
		t.Errorf("expected latest color, got %q", c)
	}

	revs, err := repo.ListRevisions(ctx, "acme", 0)
	if err != nil {
		t.Fatalf("ListRevisions failed: %v", err)
	}
	if len(revs) != 3 {
		t.Fatalf("expected 3 revisions, got %d", len(revs))
	}
	for i, rev := range revs {
		if want := ids[len(ids)-1-i]; rev.ID != want {
			t.Errorf("revision %d: expected %s, got %s", i, want, rev.ID)
		}
	}

	limited, err := repo.ListRevisions(ctx, "acme", 2)
	if err != nil {
		t.Fatalf("ListRevisions(2) failed: %v", err)
	}
	if len(limited) != 2 || limited[0].ID != ids[2] {
		t.Errorf("expected 2 newest revisions, got %d", len(limited))
	}
}

func TestSettingsRepository_GetRevision(t *testing.T) {
	repo := turso.NewSettingsRepository(testDB(t))
	ctx := context.Background()

	doc := domain.Settings{}
	doc.SetPrimaryColor("#f59e0b")
	rev, err := repo.Save(ctx, "acme", doc)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := repo.GetRevision(ctx, rev.ID)
	if err != nil {
		t.Fatalf("GetRevision failed: %v", err)
	}
	if got == nil || got.TenantID != "acme" {
		t.Fatalf("unexpected revision: %+v", got)
	}
	if c, _ := got.Document.PrimaryColor(); c != "#f59e0b" {
		t.Errorf("expected stored color, got %q", c)
	}
	if !got.CreatedAt.Equal(rev.CreatedAt) {
		t.Errorf("expected created_at %v, got %v", rev.CreatedAt, got.CreatedAt)
	}

	missing, err := repo.GetRevision(ctx, "does-not-exist")
	if err != nil || missing != nil {
		t.Errorf("expected nil for unknown revision, got %+v (%v)", missing, err)
	}
}

func TestSettingsRepository_RevisionIsSnapshot(t *testing.T) {
	repo := turso.NewSettingsRepository(testDB(t))
	ctx := context.Background()

	doc := domain.Settings{}
	doc.SetPrimaryColor("#000000")
	rev, err := repo.Save(ctx, "acme", doc)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	doc.SetPrimaryColor("#ffffff")

	if c, _ := rev.Document.PrimaryColor(); c != "#000000" {
		t.Errorf("expected revision unaffected by later mutation, got %q", c)
	}
}

func TestNewRepositories(t *testing.T) {
	repos := turso.NewRepositories(testDB(t))
	if repos.Settings == nil {
		t.Fatal("expected settings repository")
	}
}
