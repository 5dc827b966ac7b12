package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/emiliopalmerini/brandkit/internal/branding"
	"github.com/emiliopalmerini/brandkit/internal/domain"
	"github.com/emiliopalmerini/brandkit/internal/palette"
	"github.com/emiliopalmerini/brandkit/internal/web/templates"
)

const (
	tenantHeader        = "X-Tenant-ID"
	maxSettingsBodySize = 1 << 20
	defaultRevisionPage = 20
	maxRevisionPage     = 100
)

// tenantFrom resolves the tenant from the X-Tenant-ID header, then the
// tenant query parameter, then the configured default.
func (s *Server) tenantFrom(r *http.Request) string {
	if t := strings.TrimSpace(r.Header.Get(tenantHeader)); t != "" {
		return t
	}
	if t := strings.TrimSpace(r.URL.Query().Get("tenant")); t != "" {
		return t
	}
	return s.defaultTenant
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// writeError maps validation failures to 400 and everything else to 500.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
		msg = "internal server error"
	}
	writeJSON(w, status, errorResponse{Success: false, Error: msg})
}

func statusFor(err error) int {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, branding.ErrRevisionNotFound):
		return http.StatusNotFound
	case errors.Is(err, palette.ErrInvalidColor),
		errors.Is(err, domain.ErrInvalidSettings),
		errors.Is(err, branding.ErrTenantRequired):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func parseBool(s string) bool {
	b, _ := strconv.ParseBool(s)
	return b
}

func parseLimit(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return defaultRevisionPage
	}
	return min(n, maxRevisionPage)
}

func tenantQuery(path, tenant string) string {
	return path + "?tenant=" + url.QueryEscape(tenant)
}

// redirect sends HTMX clients an HX-Redirect and browsers a 303.
func redirect(w http.ResponseWriter, r *http.Request, to string) {
	if isHTMX(r) {
		w.Header().Set("HX-Redirect", to)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, to, http.StatusSeeOther)
}

type revisionResponse struct {
	ID        string          `json:"id"`
	TenantID  string          `json:"tenantId"`
	CreatedAt time.Time       `json:"createdAt"`
	Settings  domain.Settings `json:"settings"`
}

func toRevisionResponse(rev *domain.SettingsRevision) revisionResponse {
	return revisionResponse{
		ID:        rev.ID,
		TenantID:  rev.TenantID,
		CreatedAt: rev.CreatedAt,
		Settings:  rev.Document,
	}
}

func buildSwatches(p palette.Palette) []templates.Swatch {
	swatches := p.Swatches()
	out := make([]templates.Swatch, len(swatches))
	for i, sw := range swatches {
		out[i] = templates.Swatch{
			Key:  sw.Key.String(),
			Hex:  sw.Hex,
			HSL:  sw.HSL.CSSValue(),
			Text: sw.Label,
		}
	}
	return out
}

func buildNav(settings domain.Settings, tenant, active string) []templates.NavLink {
	items, err := settings.Navigation()
	if err != nil {
		items = domain.DefaultNavigation()
	}
	links := make([]templates.NavLink, len(items))
	for i, item := range items {
		href := item.Href
		if strings.HasPrefix(href, "/") && !strings.Contains(href, "?") {
			href = tenantQuery(href, tenant)
		}
		links[i] = templates.NavLink{
			Label:  item.Label,
			Href:   href,
			Glyph:  item.Icon.Glyph(),
			Active: item.Href == active,
		}
	}
	return links
}
