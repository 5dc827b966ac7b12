package palette

import (
	"fmt"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Interpolator blends a toward b by t in [0,1].
type Interpolator func(a, b RGB, t float64) RGB

// InterpolateHSL lerps hue, saturation and lightness independently. Hue is
// not taken the short way round the wheel; the shades it is used on share a
// single hue, so the two endpoints never straddle 0°.
func InterpolateHSL(a, b RGB, t float64) RGB {
	ha, hb := a.HSL(), b.HSL()
	return hslToRGB(
		lerp(float64(ha.H), float64(hb.H), t),
		lerp(float64(ha.S), float64(hb.S), t),
		lerp(float64(ha.L), float64(hb.L), t),
	)
}

// InterpolateOKLab blends in the OKLab space, which keeps perceived
// lightness even across the blend.
func InterpolateOKLab(a, b RGB, t float64) RGB {
	ca := colorful.Color{R: float64(a.R) / 255, G: float64(a.G) / 255, B: float64(a.B) / 255}
	cb := colorful.Color{R: float64(b.R) / 255, G: float64(b.G) / 255, B: float64(b.B) / 255}
	r, g, bl := ca.BlendOkLab(cb, t).Clamped().RGB255()
	return RGB{R: r, G: g, B: bl}
}

// Blend names an Interpolator for configuration.
type Blend string

const (
	BlendHSL   Blend = "hsl"
	BlendOKLab Blend = "oklab"
)

// ParseBlend accepts "hsl" or "oklab" in any case; empty means hsl.
func ParseBlend(s string) (Blend, error) {
	switch Blend(strings.ToLower(strings.TrimSpace(s))) {
	case "", BlendHSL:
		return BlendHSL, nil
	case BlendOKLab:
		return BlendOKLab, nil
	default:
		return "", fmt.Errorf("unknown blend %q (want hsl or oklab)", s)
	}
}

// Interpolator returns the blend function for b.
func (b Blend) Interpolator() Interpolator {
	switch b {
	case BlendOKLab:
		return InterpolateOKLab
	default:
		return InterpolateHSL
	}
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
