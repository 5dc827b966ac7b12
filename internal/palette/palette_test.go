package palette

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestPresets_AllValid(t *testing.T) {
	presets := Presets()
	if len(presets) != 10 {
		t.Fatalf("expected 10 presets, got %d", len(presets))
	}
	seen := map[string]bool{}
	for _, p := range presets {
		if !IsHex(p.Hex()) {
			t.Errorf("%s: invalid hex %q", p.Name(), p.Hex())
		}
		if seen[p.Name()] {
			t.Errorf("duplicate preset name %s", p.Name())
		}
		seen[p.Name()] = true
	}
	if DefaultPreset.Hex() != "#6366f1" {
		t.Errorf("expected Indigo default, got %s", DefaultPreset.Hex())
	}
}

func TestParsePreset(t *testing.T) {
	p, err := ParsePreset("emerald")
	if err != nil {
		t.Fatalf("ParsePreset failed: %v", err)
	}
	if p != PresetEmerald {
		t.Errorf("expected Emerald, got %s", p)
	}
	if _, err := ParsePreset("chartreuse"); err == nil {
		t.Error("expected error for unknown preset")
	}
}

func TestPreset_UnknownPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for out-of-range preset")
		}
	}()
	_ = Preset(99).Hex()
}

func TestNewPalette_Indigo(t *testing.T) {
	p := NewPalette(PresetIndigo.Color(), nil)

	if p.HSL != (HSL{H: 239, S: 84, L: 67}) {
		t.Errorf("unexpected base HSL %v", p.HSL)
	}
	if p.Text != TextLight {
		t.Errorf("expected white text on indigo, got %s", p.Text)
	}
	if p.Overrides(true)[VarColorScheme] != SchemeDark {
		t.Error("expected dark overrides")
	}
	if p.Overrides(false)[VarColorScheme] != SchemeLight {
		t.Error("expected light overrides")
	}

	swatches := p.Swatches()
	if len(swatches) != len(ShadeKeys) {
		t.Fatalf("expected %d swatches, got %d", len(ShadeKeys), len(swatches))
	}
	if swatches[0].Label != TextDark || swatches[len(swatches)-1].Label != TextLight {
		t.Errorf("expected dark label on 50 and light label on 950, got %s / %s",
			swatches[0].Label, swatches[len(swatches)-1].Label)
	}
}

func TestPalette_Stylesheet(t *testing.T) {
	css := NewPalette(PresetRose.Color(), nil).Stylesheet(".dark")
	if !strings.Contains(css, ":root {") || !strings.Contains(css, ".dark {") {
		t.Errorf("expected both rules:\n%s", css)
	}
	if strings.Index(css, ":root") > strings.Index(css, ".dark") {
		t.Error("expected :root before .dark")
	}
}

func TestPalette_JSONShape(t *testing.T) {
	data, err := json.Marshal(NewPalette(PresetIndigo.Color(), nil))
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	var decoded struct {
		Base   string            `json:"base"`
		HSL    HSL               `json:"hsl"`
		Shades map[string]string `json:"shades"`
		Light  map[string]string `json:"light"`
		Dark   map[string]string `json:"dark"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if decoded.Base != "#6366f1" {
		t.Errorf("expected base #6366f1, got %s", decoded.Base)
	}
	if len(decoded.Shades) != 11 {
		t.Errorf("expected 11 shades, got %d", len(decoded.Shades))
	}
	if decoded.Dark["color-scheme"] != "dark" {
		t.Errorf("expected dark color-scheme, got %q", decoded.Dark["color-scheme"])
	}
}
