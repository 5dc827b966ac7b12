package palette

import (
	"fmt"
	"math/rand/v2"
	"strings"
)

// Preset is one of the named base colors offered by the branding editor.
type Preset int

const (
	PresetIndigo Preset = iota
	PresetBlue
	PresetSky
	PresetTeal
	PresetEmerald
	PresetAmber
	PresetOrange
	PresetRose
	PresetViolet
	PresetSlate

	presetCount
)

// DefaultPreset seeds tenants that have not chosen a color.
const DefaultPreset = PresetIndigo

// Presets returns every preset in display order.
func Presets() []Preset {
	out := make([]Preset, 0, presetCount)
	for p := Preset(0); p < presetCount; p++ {
		out = append(out, p)
	}
	return out
}

// Name is the display name.
func (p Preset) Name() string {
	switch p {
	case PresetIndigo:
		return "Indigo"
	case PresetBlue:
		return "Blue"
	case PresetSky:
		return "Sky"
	case PresetTeal:
		return "Teal"
	case PresetEmerald:
		return "Emerald"
	case PresetAmber:
		return "Amber"
	case PresetOrange:
		return "Orange"
	case PresetRose:
		return "Rose"
	case PresetViolet:
		return "Violet"
	case PresetSlate:
		return "Slate"
	}
	panic(fmt.Sprintf("palette: unknown preset %d", int(p)))
}

// Hex is the preset's base color.
func (p Preset) Hex() string {
	switch p {
	case PresetIndigo:
		return "#6366f1"
	case PresetBlue:
		return "#3b82f6"
	case PresetSky:
		return "#0ea5e9"
	case PresetTeal:
		return "#14b8a6"
	case PresetEmerald:
		return "#10b981"
	case PresetAmber:
		return "#f59e0b"
	case PresetOrange:
		return "#f97316"
	case PresetRose:
		return "#f43f5e"
	case PresetViolet:
		return "#8b5cf6"
	case PresetSlate:
		return "#64748b"
	}
	panic(fmt.Sprintf("palette: unknown preset %d", int(p)))
}

// Color is the parsed base color.
func (p Preset) Color() RGB {
	return MustParseHex(p.Hex())
}

func (p Preset) String() string {
	return p.Name()
}

// ParsePreset matches a preset by name, ignoring case.
func ParsePreset(name string) (Preset, error) {
	for _, p := range Presets() {
		if strings.EqualFold(p.Name(), strings.TrimSpace(name)) {
			return p, nil
		}
	}
	return 0, fmt.Errorf("unknown preset %q", name)
}

const (
	randomSatMin    = 55
	randomSatMax    = 90
	randomLightness = 50
)

// Random draws a base color with a uniform hue, a saturation in [55,90] and
// lightness 50.
func Random(r *rand.Rand) RGB {
	h := r.IntN(360)
	s := randomSatMin + r.IntN(randomSatMax-randomSatMin+1)
	return HSL{H: h, S: s, L: randomLightness}.RGB()
}
