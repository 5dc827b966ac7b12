package palette

import (
	"errors"
	"math/rand/v2"
	"regexp"
	"testing"
)

func TestHexToHSL_Indigo(t *testing.T) {
	got, err := HexToHSL("#6366f1")
	if err != nil {
		t.Fatalf("HexToHSL failed: %v", err)
	}
	want := HSL{H: 239, S: 84, L: 67}
	if got != want {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestHexToHSL_Achromatic(t *testing.T) {
	tests := []struct {
		hex  string
		want HSL
	}{
		{"#000000", HSL{0, 0, 0}},
		{"#ffffff", HSL{0, 0, 100}},
		{"#808080", HSL{0, 0, 50}},
	}
	for _, tt := range tests {
		got, err := HexToHSL(tt.hex)
		if err != nil {
			t.Fatalf("HexToHSL(%s) failed: %v", tt.hex, err)
		}
		if got != tt.want {
			t.Errorf("HexToHSL(%s): expected %v, got %v", tt.hex, tt.want, got)
		}
	}
}

func TestHexToHSL_UppercaseDigits(t *testing.T) {
	upper, err := HexToHSL("#6366F1")
	if err != nil {
		t.Fatalf("HexToHSL failed: %v", err)
	}
	lower, _ := HexToHSL("#6366f1")
	if upper != lower {
		t.Errorf("expected case-insensitive parse, got %v vs %v", upper, lower)
	}
}

func TestParseHex_Invalid(t *testing.T) {
	for _, in := range []string{"", "6366f1", "#6366f", "#6366f1a", "#ggg000", "#63 6f1", "rgb(1,2,3)", "#fff"} {
		_, err := ParseHex(in)
		if err == nil {
			t.Errorf("ParseHex(%q): expected error", in)
			continue
		}
		if !errors.Is(err, ErrInvalidColor) {
			t.Errorf("ParseHex(%q): expected ErrInvalidColor, got %v", in, err)
		}
	}
}

func TestHSLToHex_PrimaryHues(t *testing.T) {
	tests := []struct {
		h, s, l int
		want    string
	}{
		{0, 100, 50, "#ff0000"},
		{120, 100, 50, "#00ff00"},
		{240, 100, 50, "#0000ff"},
		{0, 0, 0, "#000000"},
		{0, 0, 100, "#ffffff"},
		{360, 100, 50, "#ff0000"},
	}
	for _, tt := range tests {
		if got := HSLToHex(tt.h, tt.s, tt.l); got != tt.want {
			t.Errorf("HSLToHex(%d,%d,%d): expected %s, got %s", tt.h, tt.s, tt.l, tt.want, got)
		}
	}
}

func TestHSLToHex_ClampsOutOfRange(t *testing.T) {
	if got := HSLToHex(0, 150, 50); got != "#ff0000" {
		t.Errorf("expected saturation clamp to 100, got %s", got)
	}
	if got := HSLToHex(0, 50, -10); got != "#000000" {
		t.Errorf("expected lightness clamp to 0, got %s", got)
	}
	if got := HSLToHex(-120, 100, 50); got != "#0000ff" {
		t.Errorf("expected hue wrap to 240, got %s", got)
	}
}

// Integer HSL quantizes lightness in steps of 2.55 RGB units, so the bound
// is wider than a single rounding step. 5 is the worst case over every
// 24-bit color; #02e4e6 reaches it.
const roundTripTolerance = 5

func TestRoundTrip_WorstCase(t *testing.T) {
	c := MustParseHex("#02e4e6")
	back := c.HSL().RGB()
	if back.Hex() != "#02dfe3" {
		t.Fatalf("round trip of %s gave %s, want #02dfe3", c.Hex(), back.Hex())
	}
	if d := maxChannelDelta(c, back); d != roundTripTolerance {
		t.Errorf("expected delta %d, got %d", roundTripTolerance, d)
	}
}

func TestRoundTrip_WithinTolerance(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 20000; i++ {
		c := RGB{R: uint8(r.IntN(256)), G: uint8(r.IntN(256)), B: uint8(r.IntN(256))}
		back := c.HSL().RGB()
		if d := maxChannelDelta(c, back); d > roundTripTolerance {
			t.Fatalf("round trip of %s gave %s (delta %d)", c.Hex(), back.Hex(), d)
		}
	}
}

func TestRoundTrip_Presets(t *testing.T) {
	for _, p := range Presets() {
		c := p.Color()
		back, err := ParseHex(HSLToHex(c.HSL().H, c.HSL().S, c.HSL().L))
		if err != nil {
			t.Fatalf("HSLToHex produced invalid hex: %v", err)
		}
		if d := maxChannelDelta(c, back); d > roundTripTolerance {
			t.Errorf("%s: round trip %s -> %s (delta %d)", p.Name(), c.Hex(), back.Hex(), d)
		}
	}
}

func TestHSL_StaysInRange(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 4))
	for i := 0; i < 5000; i++ {
		hsl := RGB{R: uint8(r.IntN(256)), G: uint8(r.IntN(256)), B: uint8(r.IntN(256))}.HSL()
		if hsl.H < 0 || hsl.H >= 360 || hsl.S < 0 || hsl.S > 100 || hsl.L < 0 || hsl.L > 100 {
			t.Fatalf("out of range: %v", hsl)
		}
	}
}

func TestHSL_CSSValue(t *testing.T) {
	if got := (HSL{H: 239, S: 84, L: 67}).CSSValue(); got != "239 84% 67%" {
		t.Errorf("unexpected CSS value %q", got)
	}
}

func TestRGB_TextRoundTrip(t *testing.T) {
	var c RGB
	if err := c.UnmarshalText([]byte("#0EA5E9")); err != nil {
		t.Fatalf("UnmarshalText failed: %v", err)
	}
	if c.Hex() != "#0ea5e9" {
		t.Errorf("expected lowercase #0ea5e9, got %s", c.Hex())
	}
	if err := c.UnmarshalText([]byte("blue")); !errors.Is(err, ErrInvalidColor) {
		t.Errorf("expected ErrInvalidColor, got %v", err)
	}
}

func TestContrastText(t *testing.T) {
	tests := []struct {
		hex  string
		want string
	}{
		{"#ffffff", TextDark},
		{"#000000", TextLight},
		{"#6366f1", TextLight},
		{"#f59e0b", TextDark},
		{"#8c8c8c", TextLight}, // 0.549
		{"#8d8d8d", TextDark},  // 0.553
	}
	for _, tt := range tests {
		got, err := ContrastText(tt.hex)
		if err != nil {
			t.Fatalf("ContrastText(%s) failed: %v", tt.hex, err)
		}
		if got != tt.want {
			t.Errorf("ContrastText(%s): expected %s, got %s", tt.hex, tt.want, got)
		}
	}
}

func TestContrastText_Invalid(t *testing.T) {
	if _, err := ContrastText("#12"); !errors.Is(err, ErrInvalidColor) {
		t.Errorf("expected ErrInvalidColor, got %v", err)
	}
}

var lowerHex = regexp.MustCompile(`^#[0-9a-f]{6}$`)

func TestRandom_ProducesValidHex(t *testing.T) {
	r := rand.New(rand.NewPCG(42, 7))
	for i := 0; i < 1000; i++ {
		c := Random(r)
		if !lowerHex.MatchString(c.Hex()) {
			t.Fatalf("draw %d: %q is not #rrggbb", i, c.Hex())
		}
	}
}

func TestRandom_RawDrawsMatchPattern(t *testing.T) {
	r := rand.New(rand.NewPCG(9, 9))
	for i := 0; i < 1000; i++ {
		h := r.IntN(360)
		s := 55 + r.IntN(36)
		if got := HSLToHex(h, s, 50); !lowerHex.MatchString(got) {
			t.Fatalf("HSLToHex(%d,%d,50) = %q", h, s, got)
		}
	}
}

func TestRandom_SaturationRange(t *testing.T) {
	r := rand.New(rand.NewPCG(5, 5))
	for i := 0; i < 1000; i++ {
		hsl := Random(r).HSL()
		// rounding through RGB can move the re-derived values by a point or two
		if hsl.S < 52 || hsl.S > 93 {
			t.Fatalf("saturation %d outside drawn range", hsl.S)
		}
		if hsl.L < 48 || hsl.L > 52 {
			t.Fatalf("lightness %d, expected ~50", hsl.L)
		}
	}
}

func maxChannelDelta(a, b RGB) int {
	d := func(x, y uint8) int {
		if x > y {
			return int(x - y)
		}
		return int(y - x)
	}
	return max(d(a.R, b.R), d(a.G, b.G), d(a.B, b.B))
}
