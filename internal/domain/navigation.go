package domain

import (
	"fmt"
	"strings"
)

// NavIcon is the closed set of icons a navigation item may use.
type NavIcon int

const (
	NavIconHome NavIcon = iota
	NavIconDashboard
	NavIconUsers
	NavIconPalette
	NavIconSettings
	NavIconPricing
	NavIconContent
	NavIconCalendar
	NavIconAnalytics

	navIconCount
)

// NavIcons lists every icon.
func NavIcons() []NavIcon {
	out := make([]NavIcon, 0, navIconCount)
	for i := NavIcon(0); i < navIconCount; i++ {
		out = append(out, i)
	}
	return out
}

// Name is the identifier stored in settings documents.
func (i NavIcon) Name() string {
	switch i {
	case NavIconHome:
		return "home"
	case NavIconDashboard:
		return "dashboard"
	case NavIconUsers:
		return "users"
	case NavIconPalette:
		return "palette"
	case NavIconSettings:
		return "settings"
	case NavIconPricing:
		return "pricing"
	case NavIconContent:
		return "content"
	case NavIconCalendar:
		return "calendar"
	case NavIconAnalytics:
		return "analytics"
	}
	panic(fmt.Sprintf("domain: unknown nav icon %d", int(i)))
}

// Glyph is the symbol rendered next to the item label.
func (i NavIcon) Glyph() string {
	switch i {
	case NavIconHome:
		return "⌂"
	case NavIconDashboard:
		return "▦"
	case NavIconUsers:
		return "☺"
	case NavIconPalette:
		return "◐"
	case NavIconSettings:
		return "⚙"
	case NavIconPricing:
		return "¤"
	case NavIconContent:
		return "✎"
	case NavIconCalendar:
		return "▤"
	case NavIconAnalytics:
		return "▲"
	}
	panic(fmt.Sprintf("domain: unknown nav icon %d", int(i)))
}

func (i NavIcon) String() string {
	return i.Name()
}

// ParseNavIcon looks an icon up by name. Unknown names are errors rather
// than a silent default.
func ParseNavIcon(name string) (NavIcon, error) {
	for _, i := range NavIcons() {
		if i.Name() == strings.ToLower(strings.TrimSpace(name)) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown navigation icon %q", ErrInvalidSettings, name)
}

// NavItem is one entry of the admin navigation.
type NavItem struct {
	Label string
	Href  string
	Icon  NavIcon
}

// DefaultNavigation is shown when a tenant has not configured any.
func DefaultNavigation() []NavItem {
	return []NavItem{
		{Label: "Dashboard", Href: "/", Icon: NavIconDashboard},
		{Label: "Branding", Href: "/branding", Icon: NavIconPalette},
		{Label: "Settings", Href: "/settings", Icon: NavIconSettings},
	}
}

// Navigation decodes the "navigation" array. An absent key yields the
// default navigation.
func (s Settings) Navigation() ([]NavItem, error) {
	raw, ok := s[navigationKey]
	if !ok || raw == nil {
		return DefaultNavigation(), nil
	}
	list, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: navigation must be an array", ErrInvalidSettings)
	}

	items := make([]NavItem, 0, len(list))
	for idx, entry := range list {
		obj, ok := entry.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: navigation[%d] must be an object", ErrInvalidSettings, idx)
		}
		label, _ := obj["label"].(string)
		href, _ := obj["href"].(string)
		if label == "" || href == "" {
			return nil, fmt.Errorf("%w: navigation[%d] needs label and href", ErrInvalidSettings, idx)
		}
		iconName, _ := obj["icon"].(string)
		icon := NavIconHome
		if iconName != "" {
			var err error
			if icon, err = ParseNavIcon(iconName); err != nil {
				return nil, fmt.Errorf("navigation[%d]: %w", idx, err)
			}
		}
		items = append(items, NavItem{Label: label, Href: href, Icon: icon})
	}
	return items, nil
}
