package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/emiliopalmerini/brandkit/internal/adapters/prometheus"
	"github.com/emiliopalmerini/brandkit/internal/branding"
	"github.com/emiliopalmerini/brandkit/internal/domain"
	"github.com/emiliopalmerini/brandkit/internal/palette"
)

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t)
	rec := do(t, s, http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Errorf("expected 200 ok, got %d %q", rec.Code, rec.Body.String())
	}
}

func TestIndexRedirectsToBranding(t *testing.T) {
	s, _ := newTestServer(t)
	rec := do(t, s, http.MethodGet, "/?tenant=acme", "")
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/branding?tenant=acme" {
		t.Errorf("unexpected redirect: %d %s", rec.Code, rec.Header().Get("Location"))
	}
}

type paletteBody struct {
	Palette struct {
		Base   string            `json:"base"`
		Text   string            `json:"text"`
		Shades map[string]string `json:"shades"`
		Light  map[string]string `json:"light"`
		Dark   map[string]string `json:"dark"`
	} `json:"palette"`
	Swatches []struct {
		Key   int    `json:"key"`
		Hex   string `json:"hex"`
		Label string `json:"label"`
	} `json:"swatches"`
	Mode string `json:"mode"`
	CSS  string `json:"css"`
}

func TestAPIPalette(t *testing.T) {
	s, exp := newTestServer(t)
	rec := do(t, s, http.MethodGet, "/api/palette?color=%236366F1&dark=true", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var body paletteBody
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body.Palette.Base != "#6366f1" {
		t.Errorf("expected base #6366f1, got %s", body.Palette.Base)
	}
	if body.Palette.Shades["500"] != "#6467f2" || body.Palette.Shades["950"] != "#04052f" {
		t.Errorf("unexpected shades: %v", body.Palette.Shades)
	}
	if len(body.Swatches) != 11 || body.Swatches[0].Key != 50 {
		t.Errorf("expected 11 swatches starting at 50, got %+v", body.Swatches)
	}
	if body.Mode != "dark" || !strings.Contains(body.CSS, "--background: 240 10% 4%;") {
		t.Errorf("expected dark overrides, got mode %s css %q", body.Mode, body.CSS)
	}
	if body.Palette.Light["--primary"] != "239 87% 57%" {
		t.Errorf("unexpected light primary %q", body.Palette.Light["--primary"])
	}
	if len(exp.Previews) != 1 || exp.Previews[0].TenantID != "default" {
		t.Errorf("expected one preview for default tenant, got %+v", exp.Previews)
	}
}

func TestAPIPalette_Invalid(t *testing.T) {
	s, _ := newTestServer(t)
	for _, target := range []string{"/api/palette", "/api/palette?color=red", "/api/palette?color=%23fff"} {
		rec := do(t, s, http.MethodGet, target, "")
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", target, rec.Code)
		}
		var body errorResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil || body.Success || body.Error == "" {
			t.Errorf("%s: unexpected error body %q", target, rec.Body.String())
		}
	}
}

func TestAPIRandomPalette(t *testing.T) {
	s, _ := newTestServer(t)
	rec := do(t, s, http.MethodGet, "/api/palette/random", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body paletteBody
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(body.Palette.Base) != 7 || body.Mode != "light" {
		t.Errorf("unexpected random palette: %+v", body.Palette.Base)
	}
}

func TestAPIPresets(t *testing.T) {
	s, _ := newTestServer(t)
	rec := do(t, s, http.MethodGet, "/api/palette/presets", "")
	var presets []presetResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &presets); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(presets) != 10 || presets[0].Name != "Indigo" || presets[0].Hex != "#6366f1" {
		t.Errorf("unexpected presets: %+v", presets)
	}
}

func TestAPISettings_RoundTrip(t *testing.T) {
	s, exp := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/api/settings", "", "X-Tenant-ID", "acme")
	if rec.Code != http.StatusOK || strings.TrimSpace(rec.Body.String()) != "{}" {
		t.Fatalf("expected empty object, got %d %q", rec.Code, rec.Body.String())
	}

	doc := `{"branding":{"primaryColor":"#F43F5E"},"features":{"beta":true}}`
	rec = do(t, s, http.MethodPost, "/api/settings", doc, "X-Tenant-ID", "acme")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var saved struct {
		Success  bool           `json:"success"`
		Settings map[string]any `json:"settings"`
		Revision struct {
			ID       string `json:"id"`
			TenantID string `json:"tenantId"`
		} `json:"revision"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &saved); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if !saved.Success || saved.Revision.ID == "" || saved.Revision.TenantID != "acme" {
		t.Errorf("unexpected save response: %s", rec.Body.String())
	}
	if saved.Settings["branding"].(map[string]any)["primaryColor"] != "#f43f5e" {
		t.Errorf("expected normalised color, got %v", saved.Settings["branding"])
	}
	if len(exp.Saves) != 1 || exp.Saves[0].TenantID != "acme" {
		t.Errorf("expected one save event, got %+v", exp.Saves)
	}

	rec = do(t, s, http.MethodGet, "/api/settings?tenant=acme", "")
	if !strings.Contains(rec.Body.String(), `"beta":true`) {
		t.Errorf("expected stored document, got %s", rec.Body.String())
	}

	rec = do(t, s, http.MethodGet, "/api/settings", "")
	if strings.TrimSpace(rec.Body.String()) != "{}" {
		t.Errorf("expected default tenant to be isolated, got %s", rec.Body.String())
	}
}

func TestAPISaveSettings_Rejects(t *testing.T) {
	s, exp := newTestServer(t)
	tests := []struct {
		name string
		body string
		want int
	}{
		{"array", `[]`, http.StatusBadRequest},
		{"malformed", `{"branding":`, http.StatusBadRequest},
		{"bad color", `{"branding":{"primaryColor":"indigo"}}`, http.StatusBadRequest},
		{"bad icon", `{"navigation":[{"label":"Home","href":"/","icon":"rocket"}]}`, http.StatusBadRequest},
		{"too large", `{"blob":"` + strings.Repeat("x", maxSettingsBodySize) + `"}`, http.StatusRequestEntityTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, http.MethodPost, "/api/settings", tt.body)
			if rec.Code != tt.want {
				t.Errorf("expected %d, got %d: %s", tt.want, rec.Code, rec.Body.String())
			}
		})
	}
	if len(exp.Saves) != 0 {
		t.Error("expected nothing stored")
	}
}

func TestAPIRevisionsAndRestore(t *testing.T) {
	s, _ := newTestServer(t)
	for _, c := range []string{"#6366f1", "#10b981"} {
		rec := do(t, s, http.MethodPost, "/api/settings?tenant=acme", `{"branding":{"primaryColor":"`+c+`"}}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("save failed: %d", rec.Code)
		}
	}

	rec := do(t, s, http.MethodGet, "/api/settings/revisions?tenant=acme&limit=1", "")
	var revs []revisionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &revs); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(revs) != 1 {
		t.Fatalf("expected limit to apply, got %d", len(revs))
	}
	if c, _ := revs[0].Settings.PrimaryColor(); c != "#10b981" {
		t.Errorf("expected newest revision first, got %s", c)
	}

	rec = do(t, s, http.MethodGet, "/api/settings/revisions?tenant=acme", "")
	if err := json.Unmarshal(rec.Body.Bytes(), &revs); err != nil || len(revs) != 2 {
		t.Fatalf("expected 2 revisions, got %d (%v)", len(revs), err)
	}
	oldest := revs[1].ID

	rec = do(t, s, http.MethodPost, "/api/settings/revisions/"+oldest+"/restore?tenant=acme", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("restore failed: %d %s", rec.Code, rec.Body.String())
	}
	rec = do(t, s, http.MethodGet, "/api/settings?tenant=acme", "")
	if !strings.Contains(rec.Body.String(), "#6366f1") {
		t.Errorf("expected restored color, got %s", rec.Body.String())
	}

	rec = do(t, s, http.MethodPost, "/api/settings/revisions/"+oldest+"/restore?tenant=other", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 for another tenant, got %d", rec.Code)
	}

	rec = do(t, s, http.MethodPost, "/api/settings/revisions/"+oldest+"/restore?tenant=acme", "", "HX-Request", "true")
	if rec.Header().Get("HX-Redirect") != "/settings?tenant=acme" {
		t.Errorf("expected HX-Redirect, got %q", rec.Header().Get("HX-Redirect"))
	}
}

func TestThemeCSS(t *testing.T) {
	s, _ := newTestServer(t)
	rec := do(t, s, http.MethodGet, "/branding/theme.css", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/css") {
		t.Errorf("unexpected content type %s", ct)
	}
	if rec.Header().Get("Cache-Control") != "no-cache" {
		t.Error("expected no-cache")
	}
	css := rec.Body.String()
	for _, want := range []string{":root {", ".dark {", "--primary: 239 87% 57%;", "--background: 240 10% 4%;", "color-scheme: dark;"} {
		if !strings.Contains(css, want) {
			t.Errorf("expected %q in stylesheet", want)
		}
	}
}

func TestBrandingPage(t *testing.T) {
	s, _ := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/branding?tenant=acme&color=%23f43f5e&dark=true", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	html := rec.Body.String()
	for _, want := range []string{"#f43f5e", "preview brand-preview dark", "<code>#6366f1</code>", "Saved color"} {
		if !strings.Contains(html, want) {
			t.Errorf("expected %q in page", want)
		}
	}

	rec = do(t, s, http.MethodGet, "/branding?preset=Nope", "")
	if !strings.Contains(rec.Body.String(), "unknown preset") {
		t.Error("expected preset error to be shown")
	}

	rec = do(t, s, http.MethodGet, "/branding?color=%23zzzzzz", "")
	if !strings.Contains(rec.Body.String(), `aria-invalid="true"`) {
		t.Error("expected invalid input to be flagged")
	}
}

func TestBrandingPage_SingleReadAndPreview(t *testing.T) {
	repo := memoryRepo()
	get := repo.GetFunc
	var gets int
	repo.GetFunc = func(ctx context.Context, tenantID string) (domain.Settings, error) {
		gets++
		return get(ctx, tenantID)
	}
	exp := &branding.MockMetricsExporter{}
	s := NewServer(0, "default", branding.NewService(repo, exp, nil, palette.BlendHSL), prometheus.NewMetrics(), nil)
	t.Cleanup(s.Close)

	if rec := do(t, s, http.MethodGet, "/branding?tenant=acme", ""); rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gets != 1 {
		t.Errorf("expected one settings read per page view, got %d", gets)
	}

	do(t, s, http.MethodGet, "/api/settings?tenant=acme", "")
	do(t, s, http.MethodGet, "/branding/theme.css?tenant=acme", "")

	if len(exp.Previews) != 1 || exp.Previews[0].Source != "editor" {
		t.Errorf("expected a single editor preview, got %+v", exp.Previews)
	}
}

func TestBrandingSave(t *testing.T) {
	s, _ := newTestServer(t)

	rec := do(t, s, http.MethodPost, "/branding?tenant=acme", "color=%2314b8a6",
		"Content-Type", "application/x-www-form-urlencoded")
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/branding?tenant=acme" {
		t.Fatalf("unexpected response: %d %s", rec.Code, rec.Header().Get("Location"))
	}

	rec = do(t, s, http.MethodPost, "/branding?tenant=acme", "color=%23f59e0b",
		"Content-Type", "application/x-www-form-urlencoded", "HX-Request", "true")
	if rec.Header().Get("HX-Redirect") != "/branding?tenant=acme" {
		t.Errorf("expected HX-Redirect, got %q", rec.Header().Get("HX-Redirect"))
	}

	rec = do(t, s, http.MethodGet, "/api/settings?tenant=acme", "")
	if !strings.Contains(rec.Body.String(), "#f59e0b") {
		t.Errorf("expected saved color, got %s", rec.Body.String())
	}

	rec = do(t, s, http.MethodPost, "/branding?tenant=acme", "color=teal",
		"Content-Type", "application/x-www-form-urlencoded")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for invalid color, got %d", rec.Code)
	}
}

func TestSettingsPage(t *testing.T) {
	s, _ := newTestServer(t)
	do(t, s, http.MethodPost, "/api/settings?tenant=acme", `{"branding":{"primaryColor":"#8b5cf6"}}`)

	rec := do(t, s, http.MethodGet, "/settings?tenant=acme", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "#8b5cf6") || !strings.Contains(rec.Body.String(), "Restore") {
		t.Error("expected revision listing")
	}
}

func TestMetricsEndpoint(t *testing.T) {
	s, _ := newTestServer(t)
	do(t, s, http.MethodGet, "/health", "")

	rec := do(t, s, http.MethodGet, "/metrics", "")
	if !strings.Contains(rec.Body.String(), `brandkit_http_requests_total{method="GET",route="GET /health",status="200"} 1`) {
		t.Errorf("expected request counter in metrics output")
	}
}

func TestBrandingWebSocket(t *testing.T) {
	s, _ := newTestServer(t)
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/branding?tenant=acme"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer conn.Close()
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	var hello brandingMessage
	if err := conn.ReadJSON(&hello); err != nil {
		t.Fatalf("read hello failed: %v", err)
	}
	if hello.Type != "hello" || hello.PrimaryColor != "#6366f1" {
		t.Errorf("unexpected hello: %+v", hello)
	}

	// A save for another tenant must not reach this client.
	resp, err := http.Post(ts.URL+"/api/settings?tenant=other", "application/json",
		strings.NewReader(`{"branding":{"primaryColor":"#000000"}}`))
	if err != nil {
		t.Fatalf("post failed: %v", err)
	}
	resp.Body.Close()

	resp, err = http.Post(ts.URL+"/api/settings?tenant=acme", "application/json",
		strings.NewReader(`{"branding":{"primaryColor":"#0ea5e9"}}`))
	if err != nil {
		t.Fatalf("post failed: %v", err)
	}
	resp.Body.Close()

	var update brandingMessage
	if err := conn.ReadJSON(&update); err != nil {
		t.Fatalf("read update failed: %v", err)
	}
	if update.Type != "branding" || update.TenantID != "acme" || update.PrimaryColor != "#0ea5e9" {
		t.Errorf("unexpected update: %+v", update)
	}
	if update.RevisionID == "" || !strings.Contains(update.CSS, ".dark {") {
		t.Errorf("expected revision and stylesheet, got %+v", update)
	}
	if s.Hub().Count() != 1 {
		t.Errorf("expected one tracked connection, got %d", s.Hub().Count())
	}
}
