package templates

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestBrandingPage_RendersSwatchesAndEscapes(t *testing.T) {
	data := BrandingPageData{
		TenantID:   `acme"><script>`,
		Nav:        []NavLink{{Label: "Branding", Href: "/branding", Glyph: "◐", Active: true}},
		Input:      "<b>",
		InputValid: false,
		Error:      "invalid color",
		Base:       "#6366f1",
		SavedBase:  "#6366f1",
		Blend:      "hsl",
		Swatches: []Swatch{
			{Key: "50", Hex: "#f5f6f9", HSL: "230 25% 97%", Text: "#000000"},
			{Key: "950", Hex: "#04052f", HSL: "239 84% 10%", Text: "#ffffff"},
		},
		Presets:    []PresetOption{{Name: "Indigo", Hex: "#6366f1", Active: true}},
		PreviewCSS: "--primary: 239 84% 67%;",
	}

	var buf bytes.Buffer
	if err := BrandingPage(data).Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	html := buf.String()

	for _, want := range []string{
		"<h1>Branding</h1>",
		"background:#f5f6f9;color:#000000",
		"#04052f",
		`aria-invalid="true"`,
		"invalid color",
		`style="--primary: 239 84% 67%;"`,
		`class="active"`,
		`title="Indigo" style="background:#6366f1;"`,
		"disabled>Save",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("expected %q in output", want)
		}
	}
	if strings.Contains(html, "<b>") || strings.Contains(html, `acme"><script>`) {
		t.Error("expected user input to be escaped")
	}
}

func TestBrandingPage_DirtyEnablesSave(t *testing.T) {
	var buf bytes.Buffer
	data := BrandingPageData{TenantID: "acme", InputValid: true, Base: "#f43f5e", SavedBase: "#6366f1", Dirty: true, Dark: true}
	if err := BrandingPage(data).Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	html := buf.String()
	if strings.Contains(html, "disabled>Save") {
		t.Error("expected save enabled for dirty editor")
	}
	if !strings.Contains(html, "preview brand-preview dark") {
		t.Error("expected dark preview class")
	}
	if !strings.Contains(html, "Light mode") {
		t.Error("expected toggle back to light mode")
	}
}

func TestSettingsPage(t *testing.T) {
	var buf bytes.Buffer
	data := SettingsPageData{
		TenantID: "acme",
		Document: `{"branding":{"primaryColor":"#10b981"}}`,
		Revisions: []Revision{
			{ID: "0f8fad5b-d9cb-469f-a165-70867728950e", Color: "#10b981", CreatedAt: "2026-01-02T15:04:05Z"},
		},
	}
	if err := SettingsPage(data).Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	html := buf.String()
	for _, want := range []string{"0f8fad5b<", "Jan 2, 15:04", "&#34;primaryColor&#34;", "/api/settings/revisions/0f8fad5b-d9cb-469f-a165-70867728950e/restore?tenant=acme", `<span class="dot" style="background:#10b981;"></span> #10b981`} {
		if !strings.Contains(html, want) {
			t.Errorf("expected %q in output", want)
		}
	}
}

func TestBrandingPage_LayoutAndLiveReload(t *testing.T) {
	var buf bytes.Buffer
	data := BrandingPageData{
		TenantID: "a b",
		Nav: []NavLink{
			{Label: "Branding", Href: "/branding?tenant=a+b", Glyph: "◐", Active: true},
			{Label: "Settings", Href: "/settings?tenant=a+b", Glyph: "⚙"},
		},
		InputValid: true,
	}
	if err := BrandingPage(data).Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	html := buf.String()
	for _, want := range []string{
		"<!doctype html>",
		"<title>Branding · brandkit</title>",
		`href="/branding/theme.css?tenant=a+b"`,
		`<a href="/branding?tenant=a+b" class="active">◐ Branding</a>`,
		`<a href="/settings?tenant=a+b" class="">⚙ Settings</a>`,
		`encodeURIComponent("a b")`,
		"</main></div></body></html>",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("expected %q in output", want)
		}
	}
	if strings.Contains(html, "aria-invalid") {
		t.Error("expected valid input without aria-invalid")
	}
}

func TestSettingsPage_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := SettingsPage(SettingsPageData{TenantID: "acme", Document: "{}"}).Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !strings.Contains(buf.String(), "No revisions yet.") {
		t.Error("expected empty state")
	}
}

func TestBuildBrandingURL(t *testing.T) {
	if got := buildBrandingURL(""); got != "/branding" {
		t.Errorf("expected bare path, got %s", got)
	}
	if got := buildBrandingURL("a b", "preset", "Indigo"); got != "/branding?preset=Indigo&tenant=a+b" {
		t.Errorf("unexpected url %s", got)
	}
}

func TestRestoreURL(t *testing.T) {
	if got := restoreURL("a b", "rev/1"); got != "/api/settings/revisions/rev%2F1/restore?tenant=a+b" {
		t.Errorf("unexpected url %s", got)
	}
}
