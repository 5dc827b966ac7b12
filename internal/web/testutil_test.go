package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/emiliopalmerini/brandkit/internal/adapters/prometheus"
	"github.com/emiliopalmerini/brandkit/internal/branding"
	"github.com/emiliopalmerini/brandkit/internal/domain"
	"github.com/emiliopalmerini/brandkit/internal/palette"
)

// memoryRepo backs the mock repository with a map so handlers can be
// exercised end to end.
func memoryRepo() *branding.MockSettingsRepository {
	var (
		mu      sync.Mutex
		current = map[string]domain.Settings{}
		revs    []*domain.SettingsRevision
		seq     int
	)
	return &branding.MockSettingsRepository{
		GetFunc: func(ctx context.Context, tenantID string) (domain.Settings, error) {
			mu.Lock()
			defer mu.Unlock()
			if doc, ok := current[tenantID]; ok {
				return doc.Clone(), nil
			}
			return nil, nil
		},
		SaveFunc: func(ctx context.Context, tenantID string, doc domain.Settings) (*domain.SettingsRevision, error) {
			mu.Lock()
			defer mu.Unlock()
			seq++
			rev := &domain.SettingsRevision{
				ID:        "rev-" + string(rune('a'+seq-1)),
				TenantID:  tenantID,
				Document:  doc.Clone(),
				CreatedAt: time.Date(2026, 1, 1, 0, 0, seq, 0, time.UTC),
			}
			current[tenantID] = doc.Clone()
			revs = append(revs, rev)
			return rev, nil
		},
		ListRevisionsFunc: func(ctx context.Context, tenantID string, limit int) ([]*domain.SettingsRevision, error) {
			mu.Lock()
			defer mu.Unlock()
			var out []*domain.SettingsRevision
			for _, r := range revs {
				if r.TenantID == tenantID {
					out = append(out, r)
				}
			}
			sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
			if limit > 0 && len(out) > limit {
				out = out[:limit]
			}
			return out, nil
		},
		GetRevisionFunc: func(ctx context.Context, id string) (*domain.SettingsRevision, error) {
			mu.Lock()
			defer mu.Unlock()
			for _, r := range revs {
				if r.ID == id {
					return r, nil
				}
			}
			return nil, nil
		},
	}
}

func newTestServer(t *testing.T) (*Server, *branding.MockMetricsExporter) {
	t.Helper()
	exp := &branding.MockMetricsExporter{}
	svc := branding.NewService(memoryRepo(), exp, nil, palette.BlendHSL)
	s := NewServer(0, "default", svc, prometheus.NewMetrics(), nil)
	t.Cleanup(s.Close)
	return s, exp
}

func do(t *testing.T, s *Server, method, target, body string, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}
