package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/emiliopalmerini/brandkit/internal/palette"
)

// ErrInvalidSettings marks a settings document that must not be stored.
var ErrInvalidSettings = errors.New("invalid settings")

const (
	brandingKey     = "branding"
	primaryColorKey = "primaryColor"
	navigationKey   = "navigation"
)

// Settings is a tenant's settings document. Apart from branding.primaryColor
// and navigation icons the contents are opaque.
type Settings map[string]any

// SettingsRevision is one stored version of a tenant's settings.
type SettingsRevision struct {
	ID        string
	TenantID  string
	Document  Settings
	CreatedAt time.Time
}

// ParseSettings decodes a JSON object. Arrays, scalars and null are rejected.
func ParseSettings(data []byte) (Settings, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSettings, err)
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: document must be a JSON object", ErrInvalidSettings)
	}
	return Settings(obj), nil
}

// PrimaryColor returns branding.primaryColor when it is a string.
func (s Settings) PrimaryColor() (string, bool) {
	branding, ok := s[brandingKey].(map[string]any)
	if !ok {
		return "", false
	}
	c, ok := branding[primaryColorKey].(string)
	return c, ok
}

// SetPrimaryColor writes branding.primaryColor, keeping other branding keys.
func (s Settings) SetPrimaryColor(hex string) {
	branding, ok := s[brandingKey].(map[string]any)
	if !ok {
		branding = map[string]any{}
		s[brandingKey] = branding
	}
	branding[primaryColorKey] = strings.ToLower(hex)
}

// Validate checks the parts of the document this service interprets.
func (s Settings) Validate() error {
	if raw, ok := s[brandingKey]; ok && raw != nil {
		branding, ok := raw.(map[string]any)
		if !ok {
			return fmt.Errorf("%w: branding must be an object", ErrInvalidSettings)
		}
		if c, present := branding[primaryColorKey]; present {
			hex, ok := c.(string)
			if !ok {
				return fmt.Errorf("%w: branding.primaryColor must be a string", ErrInvalidSettings)
			}
			if _, err := palette.ParseHex(hex); err != nil {
				return fmt.Errorf("%w: branding.primaryColor: %v", ErrInvalidSettings, err)
			}
		}
	}

	if _, err := s.Navigation(); err != nil {
		return err
	}
	return nil
}

// Clone deep-copies the document.
func (s Settings) Clone() Settings {
	if s == nil {
		return Settings{}
	}
	data, err := json.Marshal(s)
	if err != nil {
		return Settings{}
	}
	out := Settings{}
	_ = json.Unmarshal(data, &out)
	return out
}

// BrandColor resolves the color a tenant's theme is built from: the saved
// primary color when valid, the default preset otherwise.
func (s Settings) BrandColor() palette.RGB {
	if hex, ok := s.PrimaryColor(); ok {
		if c, err := palette.ParseHex(hex); err == nil {
			return c
		}
	}
	return palette.DefaultPreset.Color()
}
