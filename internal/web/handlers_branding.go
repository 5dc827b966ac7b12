package web

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/emiliopalmerini/brandkit/internal/editor"
	"github.com/emiliopalmerini/brandkit/internal/palette"
	"github.com/emiliopalmerini/brandkit/internal/web/templates"
)

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	to := "/branding"
	if r.URL.RawQuery != "" {
		to += "?" + r.URL.RawQuery
	}
	http.Redirect(w, r, to, http.StatusFound)
}

// editorActions turns query parameters into editor actions, applied in the
// order reset, preset, random, color, dark.
func (s *Server) editorActions(r *http.Request) ([]editor.Action, string) {
	q := r.URL.Query()
	var (
		actions []editor.Action
		problem string
	)

	if parseBool(q.Get("reset")) {
		actions = append(actions, editor.Reset{})
	}
	if name := q.Get("preset"); name != "" {
		if p, err := palette.ParsePreset(name); err == nil {
			actions = append(actions, editor.ApplyPreset{Preset: p})
		} else {
			problem = err.Error()
		}
	}
	if parseBool(q.Get("random")) {
		actions = append(actions, editor.Randomize{Color: s.branding.RandomColor()})
	}
	if c, ok := q["color"]; ok && len(c) > 0 {
		actions = append(actions, editor.SetInput{Value: c[0]})
	}
	if d := q.Get("dark"); d != "" {
		actions = append(actions, editor.SetDark{Dark: parseBool(d)})
	}
	return actions, problem
}

func (s *Server) handleBranding(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	tenant := s.tenantFrom(r)

	snap, err := s.branding.Current(ctx, tenant)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	actions, problem := s.editorActions(r)
	st := s.branding.Editor(ctx, snap, actions...)
	if problem != "" && st.Error == "" {
		st.Error = problem
	}

	p := st.Palette(s.branding.Interpolator())
	presets := palette.Presets()
	options := make([]templates.PresetOption, len(presets))
	for i, preset := range presets {
		options[i] = templates.PresetOption{
			Name:   preset.Name(),
			Hex:    preset.Hex(),
			Active: preset.Name() == st.Preset || (st.Preset == "" && preset.Hex() == st.Base),
		}
	}

	data := templates.BrandingPageData{
		TenantID:   tenant,
		Nav:        buildNav(snap.Settings, tenant, "/branding"),
		Input:      st.Input,
		InputValid: st.InputValid,
		Error:      st.Error,
		Base:       st.Base,
		SavedBase:  st.SavedBase,
		Preset:     st.Preset,
		Dark:       st.Dark,
		Dirty:      st.Dirty,
		Blend:      string(s.branding.Blend()),
		Swatches:   buildSwatches(p),
		Presets:    options,
		PreviewCSS: p.Overrides(st.Dark).Declarations(),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_ = templates.BrandingPage(data).Render(ctx, w)
}

func (s *Server) handleBrandingSave(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	tenant := s.tenantFrom(r)
	color := strings.TrimSpace(r.FormValue("color"))
	if _, err := s.branding.SetPrimaryColor(r.Context(), tenant, color); err != nil {
		s.writeError(w, r, err)
		return
	}

	redirect(w, r, tenantQuery("/branding", tenant))
}

func (s *Server) handleThemeCSS(w http.ResponseWriter, r *http.Request) {
	snap, err := s.branding.Current(r.Context(), s.tenantFrom(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	_, _ = w.Write([]byte(snap.Palette.Stylesheet(".dark")))
}

func (s *Server) handleSettingsPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	tenant := s.tenantFrom(r)

	snap, err := s.branding.Current(ctx, tenant)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	revs, err := s.branding.Revisions(ctx, tenant, defaultRevisionPage)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	doc, _ := json.MarshalIndent(snap.Settings, "", "  ")
	data := templates.SettingsPageData{
		TenantID:  tenant,
		Nav:       buildNav(snap.Settings, tenant, "/settings"),
		Document:  string(doc),
		Revisions: make([]templates.Revision, 0, len(revs)),
	}
	for _, rev := range revs {
		color, _ := rev.Document.PrimaryColor()
		data.Revisions = append(data.Revisions, templates.Revision{
			ID:        rev.ID,
			Color:     color,
			CreatedAt: rev.CreatedAt.Format(time.RFC3339Nano),
		})
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_ = templates.SettingsPage(data).Render(ctx, w)
}
