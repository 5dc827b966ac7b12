package templates

type NavLink struct {
	Label  string
	Href   string
	Glyph  string
	Active bool
}

type Swatch struct {
	Key  string
	Hex  string
	HSL  string
	Text string
}

type PresetOption struct {
	Name   string
	Hex    string
	Active bool
}

type BrandingPageData struct {
	TenantID   string
	Nav        []NavLink
	Input      string
	InputValid bool
	Error      string
	Base       string
	SavedBase  string
	Preset     string
	Dark       bool
	Dirty      bool
	Blend      string
	Swatches   []Swatch
	Presets    []PresetOption
	// PreviewCSS holds the override declarations for the preview surface.
	PreviewCSS string
}

type Revision struct {
	ID        string
	Color     string
	CreatedAt string
}

type SettingsPageData struct {
	TenantID  string
	Nav       []NavLink
	Document  string
	Revisions []Revision
}
