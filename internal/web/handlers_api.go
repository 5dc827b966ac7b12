package web

import (
	"io"
	"net/http"

	"github.com/emiliopalmerini/brandkit/internal/domain"
	"github.com/emiliopalmerini/brandkit/internal/palette"
)

type paletteResponse struct {
	Palette  palette.Palette  `json:"palette"`
	Swatches []palette.Swatch `json:"swatches"`
	Mode     string           `json:"mode"`
	CSS      string           `json:"css"`
}

func newPaletteResponse(p palette.Palette, dark bool) paletteResponse {
	mode := palette.SchemeLight
	if dark {
		mode = palette.SchemeDark
	}
	return paletteResponse{
		Palette:  p,
		Swatches: p.Swatches(),
		Mode:     mode,
		CSS:      p.Overrides(dark).CSS(".brand-preview"),
	}
}

func (s *Server) handleAPIPalette(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	dark := parseBool(q.Get("dark"))

	p, err := s.branding.Preview(r.Context(), s.tenantFrom(r), q.Get("color"), dark)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newPaletteResponse(p, dark))
}

func (s *Server) handleAPIRandomPalette(w http.ResponseWriter, r *http.Request) {
	dark := parseBool(r.URL.Query().Get("dark"))
	p := s.branding.Random(r.Context(), s.tenantFrom(r), dark)
	writeJSON(w, http.StatusOK, newPaletteResponse(p, dark))
}

type presetResponse struct {
	Name string      `json:"name"`
	Hex  string      `json:"hex"`
	HSL  palette.HSL `json:"hsl"`
}

func (s *Server) handleAPIPresets(w http.ResponseWriter, r *http.Request) {
	presets := palette.Presets()
	out := make([]presetResponse, len(presets))
	for i, p := range presets {
		out[i] = presetResponse{Name: p.Name(), Hex: p.Hex(), HSL: p.Color().HSL()}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleAPIGetSettings(w http.ResponseWriter, r *http.Request) {
	snap, err := s.branding.Current(r.Context(), s.tenantFrom(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, snap.Settings)
}

type saveSettingsResponse struct {
	Success  bool             `json:"success"`
	Settings domain.Settings  `json:"settings"`
	Revision revisionResponse `json:"revision"`
}

func (s *Server) handleAPISaveSettings(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxSettingsBodySize))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	doc, err := domain.ParseSettings(body)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	rev, err := s.branding.SaveSettings(r.Context(), s.tenantFrom(r), doc)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, saveSettingsResponse{
		Success:  true,
		Settings: rev.Document,
		Revision: toRevisionResponse(rev),
	})
}

func (s *Server) handleAPIRevisions(w http.ResponseWriter, r *http.Request) {
	revs, err := s.branding.Revisions(r.Context(), s.tenantFrom(r), parseLimit(r.URL.Query().Get("limit")))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	out := make([]revisionResponse, len(revs))
	for i, rev := range revs {
		out[i] = toRevisionResponse(rev)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleAPIRestoreRevision(w http.ResponseWriter, r *http.Request) {
	tenant := s.tenantFrom(r)
	id := r.PathValue("id")

	rev, err := s.branding.Restore(r.Context(), tenant, id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if isHTMX(r) {
		redirect(w, r, tenantQuery("/settings", tenant))
		return
	}
	writeJSON(w, http.StatusOK, saveSettingsResponse{
		Success:  true,
		Settings: rev.Document,
		Revision: toRevisionResponse(rev),
	})
}
