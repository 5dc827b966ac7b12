package palette

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
)

// ErrInvalidColor is returned when a color string is not of the form #rrggbb.
var ErrInvalidColor = errors.New("invalid color format")

var hexPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// RGB is an sRGB color with 8-bit channels.
type RGB struct {
	R, G, B uint8
}

// HSL holds hue in degrees [0,360) and saturation/lightness in percent [0,100].
type HSL struct {
	H int `json:"h"`
	S int `json:"s"`
	L int `json:"l"`
}

// IsHex reports whether s is a six-digit hex color with a leading #.
func IsHex(s string) bool {
	return hexPattern.MatchString(s)
}

// ParseHex parses "#rrggbb" (digits in either case).
func ParseHex(s string) (RGB, error) {
	if !IsHex(s) {
		return RGB{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	return RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// MustParseHex is ParseHex for compile-time constants.
func MustParseHex(s string) RGB {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Hex renders the color as lowercase #rrggbb.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func (c RGB) String() string {
	return c.Hex()
}

// MarshalText encodes the color as its hex form.
func (c RGB) MarshalText() ([]byte, error) {
	return []byte(c.Hex()), nil
}

// UnmarshalText accepts the #rrggbb form only.
func (c *RGB) UnmarshalText(text []byte) error {
	parsed, err := ParseHex(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// HSL converts the color to rounded integer HSL. Achromatic colors get hue 0
// and saturation 0.
func (c RGB) HSL() HSL {
	r := float64(c.R) / 255
	g := float64(c.G) / 255
	b := float64(c.B) / 255

	mx := math.Max(r, math.Max(g, b))
	mn := math.Min(r, math.Min(g, b))
	l := (mx + mn) / 2

	var h, s float64
	if mx != mn {
		d := mx - mn
		if l > 0.5 {
			s = d / (2 - mx - mn)
		} else {
			s = d / (mx + mn)
		}
		switch mx {
		case r:
			h = (g - b) / d
			if g < b {
				h += 6
			}
		case g:
			h = (b-r)/d + 2
		default:
			h = (r-g)/d + 4
		}
		h /= 6
	}

	return HSL{
		H: round(h*360) % 360,
		S: round(s * 100),
		L: round(l * 100),
	}
}

// HexToHSL parses hex and converts it to HSL.
func HexToHSL(hex string) (HSL, error) {
	c, err := ParseHex(hex)
	if err != nil {
		return HSL{}, err
	}
	return c.HSL(), nil
}

// RGB converts back to sRGB. Out-of-range components are wrapped (hue) or
// clamped (saturation, lightness).
func (h HSL) RGB() RGB {
	return hslToRGB(float64(h.H), float64(h.S), float64(h.L))
}

// Hex is shorthand for h.RGB().Hex().
func (h HSL) Hex() string {
	return h.RGB().Hex()
}

// CSSValue renders the triple as "H S% L%", the format used by the design
// tokens of the preview surface.
func (h HSL) CSSValue() string {
	return fmt.Sprintf("%d %d%% %d%%", h.H, h.S, h.L)
}

func (h HSL) String() string {
	return fmt.Sprintf("hsl(%d, %d%%, %d%%)", h.H, h.S, h.L)
}

// HSLToHex converts integer HSL to lowercase #rrggbb.
func HSLToHex(h, s, l int) string {
	return HSL{H: h, S: s, L: l}.Hex()
}

// hslToRGB takes fractional components so interpolated shades are not
// quantized twice.
func hslToRGB(h, s, l float64) RGB {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	s = clamp(s, 0, 100)
	l = clamp(l, 0, 100) / 100

	a := s * math.Min(l, 1-l) / 100
	f := func(n float64) uint8 {
		k := math.Mod(n+h/30, 12)
		v := l - a*math.Max(math.Min(math.Min(k-3, 9-k), 1), -1)
		return uint8(clamp(math.Round(255*v), 0, 255))
	}
	return RGB{R: f(0), G: f(8), B: f(4)}
}

func round(v float64) int {
	return int(math.Round(v))
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
