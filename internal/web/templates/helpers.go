package templates

import (
	"net/url"
	"time"

	"github.com/a-h/templ"
)

func truncateID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func formatDateTime(s string) string {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return s
	}
	return t.Format("Jan 2, 15:04")
}

func buildBrandingURL(tenant string, params ...string) templ.SafeURL {
	q := url.Values{}
	if tenant != "" {
		q.Set("tenant", tenant)
	}
	for i := 0; i+1 < len(params); i += 2 {
		q.Set(params[i], params[i+1])
	}
	if len(q) == 0 {
		return templ.SafeURL("/branding")
	}
	return templ.SafeURL("/branding?" + q.Encode())
}

func restoreURL(tenant, revisionID string) string {
	return "/api/settings/revisions/" + url.PathEscape(revisionID) + "/restore?tenant=" + url.QueryEscape(tenant)
}

// swatchStyle paints a chip in a palette color. Both values are normalized
// hex strings.
func swatchStyle(background, text string) templ.SafeCSS {
	if text == "" {
		return templ.SafeCSS("background:" + background)
	}
	return templ.SafeCSS("background:" + background + ";color:" + text)
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
