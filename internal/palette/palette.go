// Package palette derives brand color scales and theme overrides from a
// single base color. Everything here is a pure function of its inputs.
package palette

// Swatch is one rendered step of a scale.
type Swatch struct {
	Key   ShadeKey `json:"key"`
	Hex   string   `json:"hex"`
	HSL   HSL      `json:"hsl"`
	Label string   `json:"label"`
}

// Palette bundles everything a preview needs for one base color.
type Palette struct {
	Base  RGB        `json:"base"`
	HSL   HSL        `json:"hsl"`
	Text  string     `json:"text"`
	Scale ShadeScale `json:"shades"`
	Light Overrides  `json:"light"`
	Dark  Overrides  `json:"dark"`
}

// NewPalette derives the scale and both override sets. A nil interp means
// InterpolateHSL.
func NewPalette(base RGB, interp Interpolator) Palette {
	scale := NewShadeScale(base)
	return Palette{
		Base:  base,
		HSL:   base.HSL(),
		Text:  base.ContrastText(),
		Scale: scale,
		Light: CSSOverridesWith(scale, false, interp),
		Dark:  CSSOverridesWith(scale, true, interp),
	}
}

// Overrides returns the set for the requested mode.
func (p Palette) Overrides(dark bool) Overrides {
	if dark {
		return p.Dark
	}
	return p.Light
}

// Swatches lists the scale from lightest to darkest with label colors.
func (p Palette) Swatches() []Swatch {
	out := make([]Swatch, 0, len(ShadeKeys))
	for _, k := range ShadeKeys {
		c := p.Scale.Shade(k)
		out = append(out, Swatch{
			Key:   k,
			Hex:   c.Hex(),
			HSL:   c.HSL(),
			Label: c.ContrastText(),
		})
	}
	return out
}

// Stylesheet renders :root with the light set and selector dark with the
// dark set.
func (p Palette) Stylesheet(darkSelector string) string {
	return p.Light.CSS(":root") + "\n" + p.Dark.CSS(darkSelector)
}
