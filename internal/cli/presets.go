package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/emiliopalmerini/brandkit/internal/palette"
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List the preset brand colors",
	RunE:  runPresets,
}

func init() {
	rootCmd.AddCommand(presetsCmd)
}

func runPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tHEX\tSWATCH")
	for _, p := range palette.Presets() {
		c := p.Color()
		marker := ""
		if p == palette.DefaultPreset {
			marker = " (default)"
		}
		fmt.Fprintf(w, "%s%s\t%s\t%s\n", p.Name(), marker, p.Hex(),
			color.BgRGB(int(c.R), int(c.G), int(c.B)).Sprint("      "))
	}
	return w.Flush()
}
