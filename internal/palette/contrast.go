package palette

const (
	TextDark  = "#000000"
	TextLight = "#ffffff"

	contrastThreshold = 0.55
)

// Luminance is the perceptual brightness 0.299R+0.587G+0.114B scaled to [0,1].
func (c RGB) Luminance() float64 {
	return (0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)) / 255
}

// ContrastText picks black or white label text for a swatch of color c.
func (c RGB) ContrastText() string {
	if c.Luminance() > contrastThreshold {
		return TextDark
	}
	return TextLight
}

// ContrastText parses hex and picks its label color.
func ContrastText(hex string) (string, error) {
	c, err := ParseHex(hex)
	if err != nil {
		return "", err
	}
	return c.ContrastText(), nil
}
