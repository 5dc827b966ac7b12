package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"math/rand/v2"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/emiliopalmerini/brandkit/internal/palette"
)

var paletteCmd = &cobra.Command{
	Use:   "palette <hex|preset>",
	Short: "Derive a palette from a brand color",
	Long: `Derive the 11-step shade scale and theme overrides for a brand color.

The color may be a hex value (#6366f1) or a preset name (see "brandkit presets").

Examples:
  brandkit palette "#6366f1"       # Shade swatches
  brandkit palette teal --dark     # Include the dark theme overrides
  brandkit palette indigo --css    # Stylesheet with :root and .dark
  brandkit palette --random --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPalette,
}

var (
	paletteDark   bool
	paletteJSON   bool
	paletteCSS    bool
	paletteRandom bool
)

func init() {
	rootCmd.AddCommand(paletteCmd)
	paletteCmd.Flags().BoolVar(&paletteDark, "dark", false, "Show dark mode overrides")
	paletteCmd.Flags().BoolVar(&paletteJSON, "json", false, "Output as JSON")
	paletteCmd.Flags().BoolVar(&paletteCSS, "css", false, "Output a stylesheet")
	paletteCmd.Flags().BoolVar(&paletteRandom, "random", false, "Use a random vivid color")
}

func runPalette(cmd *cobra.Command, args []string) error {
	blend, err := palette.ParseBlend(cfg.PaletteBlend)
	if err != nil {
		return err
	}

	var base palette.RGB
	switch {
	case paletteRandom:
		base = randomColor()
	case len(args) == 1:
		base, err = resolveColor(args[0])
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("a color or --random is required")
	}

	p := palette.NewPalette(base, blend.Interpolator())
	out := cmd.OutOrStdout()

	switch {
	case paletteJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(p)
	case paletteCSS:
		_, err := fmt.Fprint(out, p.Stylesheet(".dark"))
		return err
	}

	printPalette(out, p, paletteDark)
	return nil
}

func randomColor() palette.RGB {
	return palette.Random(rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())))
}

// resolveColor accepts a hex color or a preset name.
func resolveColor(arg string) (palette.RGB, error) {
	if c, err := palette.ParseHex(arg); err == nil {
		return c, nil
	}
	if p, err := palette.ParsePreset(arg); err == nil {
		return p.Color(), nil
	}
	return palette.RGB{}, fmt.Errorf("%w: %q is neither a hex color nor a preset", palette.ErrInvalidColor, arg)
}

func printPalette(w io.Writer, p palette.Palette, dark bool) {
	fmt.Fprintf(w, "Base: %s  hsl(%s)  text: %s\n\n", p.Base.Hex(), p.HSL.CSSValue(), p.Text)
	for _, s := range p.Swatches() {
		fmt.Fprintf(w, "  %4s  %s  %s\n", s.Key, swatch(s), s.HSL.CSSValue())
	}

	mode := "light"
	if dark {
		mode = "dark"
	}
	fmt.Fprintf(w, "\nTheme overrides (%s):\n", mode)
	for _, decl := range strings.Split(p.Overrides(dark).Declarations(), ";") {
		if decl != "" {
			fmt.Fprintf(w, "  %s;\n", decl)
		}
	}
}

// swatch renders the hex value on its own color. fatih/color drops the
// escape codes when output is not a terminal.
func swatch(s palette.Swatch) string {
	bg, _ := palette.ParseHex(s.Hex)
	fg, _ := palette.ParseHex(s.Label)
	c := color.BgRGB(int(bg.R), int(bg.G), int(bg.B)).AddRGB(int(fg.R), int(fg.G), int(fg.B))
	return c.Sprintf(" %s ", s.Hex)
}
