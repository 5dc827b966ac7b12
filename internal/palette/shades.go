package palette

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// ShadeKey names one step of a shade scale.
type ShadeKey int

const (
	Shade50  ShadeKey = 50
	Shade100 ShadeKey = 100
	Shade200 ShadeKey = 200
	Shade300 ShadeKey = 300
	Shade400 ShadeKey = 400
	Shade500 ShadeKey = 500
	Shade600 ShadeKey = 600
	Shade700 ShadeKey = 700
	Shade800 ShadeKey = 800
	Shade900 ShadeKey = 900
	Shade950 ShadeKey = 950
)

// ShadeKeys lists every key from lightest to darkest.
var ShadeKeys = [...]ShadeKey{
	Shade50, Shade100, Shade200, Shade300, Shade400, Shade500,
	Shade600, Shade700, Shade800, Shade900, Shade950,
}

type shadeStep struct {
	lightness float64
	satScale  float64
	satFloor  float64
}

// Indexed like ShadeKeys. Lightness strictly decreases; the floors keep the
// pale end from washing out to plain grey.
var shadeSteps = [len(ShadeKeys)]shadeStep{
	{lightness: 97, satScale: 0.30, satFloor: 5},
	{lightness: 94, satScale: 0.45, satFloor: 10},
	{lightness: 86, satScale: 0.65, satFloor: 15},
	{lightness: 80, satScale: 0.80, satFloor: 20},
	{lightness: 74, satScale: 0.95, satFloor: 25},
	{lightness: 67, satScale: 1.00},
	{lightness: 57, satScale: 1.04},
	{lightness: 43, satScale: 1.08},
	{lightness: 34, satScale: 1.05},
	{lightness: 25, satScale: 1.02},
	{lightness: 10, satScale: 1.00},
}

func (k ShadeKey) index() (int, bool) {
	for i, key := range ShadeKeys {
		if key == k {
			return i, true
		}
	}
	return 0, false
}

// Valid reports whether k is one of ShadeKeys.
func (k ShadeKey) Valid() bool {
	_, ok := k.index()
	return ok
}

func (k ShadeKey) String() string {
	return strconv.Itoa(int(k))
}

// ParseShadeKey parses "50" … "950".
func ParseShadeKey(s string) (ShadeKey, error) {
	n, err := strconv.Atoi(s)
	if err != nil || !ShadeKey(n).Valid() {
		return 0, fmt.Errorf("unknown shade %q", s)
	}
	return ShadeKey(n), nil
}

// ShadeScale maps every ShadeKey to a color.
type ShadeScale struct {
	colors [len(ShadeKeys)]RGB
}

// NewShadeScale derives the eleven shades of base. The base hue and
// saturation are kept, the base lightness is discarded.
func NewShadeScale(base RGB) ShadeScale {
	hsl := base.HSL()
	var scale ShadeScale
	for i, step := range shadeSteps {
		scale.colors[i] = hslToRGB(float64(hsl.H), shadeSaturation(float64(hsl.S), step), step.lightness)
	}
	return scale
}

// GenerateShadeScale parses base and derives its shade scale.
func GenerateShadeScale(base string) (ShadeScale, error) {
	c, err := ParseHex(base)
	if err != nil {
		return ShadeScale{}, err
	}
	return NewShadeScale(c), nil
}

func shadeSaturation(s float64, step shadeStep) float64 {
	v := s * step.satScale
	// A grey base stays grey.
	if s > 0 {
		v = math.Max(v, step.satFloor)
	}
	return math.Min(100, math.Round(v))
}

// Shade returns the color for k. Unknown keys yield the zero color.
func (s ShadeScale) Shade(k ShadeKey) RGB {
	i, ok := k.index()
	if !ok {
		return RGB{}
	}
	return s.colors[i]
}

// Hex is shorthand for s.Shade(k).Hex().
func (s ShadeScale) Hex(k ShadeKey) string {
	return s.Shade(k).Hex()
}

// Map returns the scale keyed by the decimal shade name.
func (s ShadeScale) Map() map[string]string {
	m := make(map[string]string, len(ShadeKeys))
	for i, k := range ShadeKeys {
		m[k.String()] = s.colors[i].Hex()
	}
	return m
}

// MarshalJSON encodes the scale as {"50":"#…",…}.
func (s ShadeScale) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Map())
}

// UnmarshalJSON requires all eleven keys.
func (s *ShadeScale) UnmarshalJSON(data []byte) error {
	var m map[string]string
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	var out ShadeScale
	for i, k := range ShadeKeys {
		v, ok := m[k.String()]
		if !ok {
			return fmt.Errorf("shade scale: missing key %s", k)
		}
		c, err := ParseHex(v)
		if err != nil {
			return fmt.Errorf("shade scale: key %s: %w", k, err)
		}
		out.colors[i] = c
	}
	*s = out
	return nil
}
