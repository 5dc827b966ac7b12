package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/emiliopalmerini/brandkit/internal/domain"
	"github.com/emiliopalmerini/brandkit/internal/migrate"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage tenant settings",
	Long: `View and update a tenant's settings document.

The tenant defaults to BRANDKIT_DEFAULT_TENANT; use --tenant to pick another.`,
}

var settingsGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Print the current settings document",
	Long: `Print the tenant's current settings document as JSON.

Examples:
  brandkit settings get
  brandkit settings get --yaml --tenant acme`,
	Args: cobra.NoArgs,
	RunE: runSettingsGet,
}

var settingsSetColorCmd = &cobra.Command{
	Use:   "set-color <hex>",
	Short: "Set the brand primary color",
	Long: `Set branding.primaryColor, keeping the rest of the document.

Examples:
  brandkit settings set-color "#0d9488"
  brandkit settings set-color "#e11d48" --tenant acme`,
	Args: cobra.ExactArgs(1),
	RunE: runSettingsSetColor,
}

var settingsImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace the settings document from a file",
	Long: `Replace the tenant's settings with the contents of a JSON or YAML file.

Files ending in .yaml or .yml are read as YAML, everything else as JSON.

Examples:
  brandkit settings import settings.json
  brandkit settings import branding.yaml --tenant acme`,
	Args: cobra.ExactArgs(1),
	RunE: runSettingsImport,
}

var settingsHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "List stored revisions, newest first",
	Args:  cobra.NoArgs,
	RunE:  runSettingsHistory,
}

var settingsRestoreCmd = &cobra.Command{
	Use:   "restore <revision-id>",
	Short: "Save an earlier revision as the current settings",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsRestore,
}

var (
	settingsTenant string
	settingsYAML   bool
	historyLimit   int
)

func init() {
	rootCmd.AddCommand(settingsCmd)
	settingsCmd.AddCommand(settingsGetCmd, settingsSetColorCmd, settingsImportCmd, settingsHistoryCmd, settingsRestoreCmd)

	settingsCmd.PersistentFlags().StringVarP(&settingsTenant, "tenant", "t", "", "Tenant ID (default BRANDKIT_DEFAULT_TENANT)")
	settingsGetCmd.Flags().BoolVar(&settingsYAML, "yaml", false, "Output as YAML")
	settingsHistoryCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Maximum revisions to list")
}

// withApp opens the AppContext, applies pending migrations and runs fn.
func withApp(cmd *cobra.Command, fn func(app *AppContext) error) error {
	ctx := cmd.Context()
	app, err := NewAppContext(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer app.Close()

	if err := migrate.RunAll(ctx, app.DB); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return fn(app)
}

func runSettingsGet(cmd *cobra.Command, args []string) error {
	return withApp(cmd, func(app *AppContext) error {
		snap, err := app.Branding.Current(cmd.Context(), tenantOr(settingsTenant))
		if err != nil {
			return err
		}
		if !snap.Saved {
			fmt.Fprintf(cmd.ErrOrStderr(), "No settings saved for %s\n", snap.TenantID)
		}

		out := cmd.OutOrStdout()
		if settingsYAML {
			enc := yaml.NewEncoder(out)
			enc.SetIndent(2)
			if err := enc.Encode(map[string]any(snap.Settings)); err != nil {
				return err
			}
			return enc.Close()
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(snap.Settings)
	})
}

func runSettingsSetColor(cmd *cobra.Command, args []string) error {
	return withApp(cmd, func(app *AppContext) error {
		rev, err := app.Branding.SetPrimaryColor(cmd.Context(), tenantOr(settingsTenant), args[0])
		if err != nil {
			return err
		}
		hex, _ := rev.Document.PrimaryColor()
		fmt.Fprintf(cmd.OutOrStdout(), "Primary color for %s set to %s (revision %s)\n", rev.TenantID, hex, rev.ID)
		return nil
	})
}

func runSettingsImport(cmd *cobra.Command, args []string) error {
	doc, err := readSettingsFile(args[0])
	if err != nil {
		return err
	}
	return withApp(cmd, func(app *AppContext) error {
		rev, err := app.Branding.SaveSettings(cmd.Context(), tenantOr(settingsTenant), doc)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Imported %s for %s (revision %s)\n", args[0], rev.TenantID, rev.ID)
		return nil
	})
}

// readSettingsFile decodes a JSON or YAML settings file. YAML is converted to
// JSON first so both formats go through the same validation.
func readSettingsFile(path string) (domain.Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		var raw any
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidSettings, err)
		}
		data, err = json.Marshal(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidSettings, err)
		}
	}
	return domain.ParseSettings(data)
}

func runSettingsHistory(cmd *cobra.Command, args []string) error {
	return withApp(cmd, func(app *AppContext) error {
		tenant := tenantOr(settingsTenant)
		revs, err := app.Branding.Revisions(cmd.Context(), tenant, historyLimit)
		if err != nil {
			return err
		}
		if len(revs) == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "No revisions for %s\n", tenant)
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "REVISION\tSAVED\tPRIMARY COLOR")
		for _, rev := range revs {
			hex, ok := rev.Document.PrimaryColor()
			if !ok {
				hex = "-"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\n", rev.ID, rev.CreatedAt.Format("2006-01-02 15:04:05"), hex)
		}
		return w.Flush()
	})
}

func runSettingsRestore(cmd *cobra.Command, args []string) error {
	return withApp(cmd, func(app *AppContext) error {
		rev, err := app.Branding.Restore(cmd.Context(), tenantOr(settingsTenant), args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Restored %s as revision %s\n", args[0], rev.ID)
		return nil
	})
}
