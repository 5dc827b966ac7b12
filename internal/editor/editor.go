// Package editor models the branding editor as a serializable state value and
// a pure update function. UI layers feed it actions and render the result.
package editor

import (
	"strings"

	"github.com/emiliopalmerini/brandkit/internal/palette"
)

// State is everything the branding editor shows. It is safe to encode and
// send to a client.
type State struct {
	Input      string `json:"input"`
	InputValid bool   `json:"inputValid"`
	Base       string `json:"base"`
	Preset     string `json:"preset,omitempty"`
	Dark       bool   `json:"dark"`
	Dirty      bool   `json:"dirty"`
	SavedBase  string `json:"savedBase"`
	Error      string `json:"error,omitempty"`
}

// New starts an editor on a saved color. An invalid saved color falls back to
// the default preset.
func New(saved string) State {
	if _, err := palette.ParseHex(saved); err != nil {
		saved = palette.DefaultPreset.Hex()
	}
	saved = strings.ToLower(saved)
	return State{
		Input:      saved,
		InputValid: true,
		Base:       saved,
		SavedBase:  saved,
	}
}

// Action is an editor event. Implementations are the types in this file.
type Action interface {
	apply(State) State
}

// SetInput records a keystroke in the color field. The base only moves when
// the text parses.
type SetInput struct{ Value string }

// ApplyPreset replaces the base with a named preset.
type ApplyPreset struct{ Preset palette.Preset }

// Randomize carries a color drawn by the caller so Reduce stays pure.
type Randomize struct{ Color palette.RGB }

// SetDark selects the preview mode.
type SetDark struct{ Dark bool }

// ToggleDark flips the preview mode.
type ToggleDark struct{}

// MarkSaved records that Base was persisted.
type MarkSaved struct{}

// Reset discards edits and returns to the saved color.
type Reset struct{}

// Reduce applies one action.
func Reduce(s State, a Action) State {
	return a.apply(s)
}

// ReduceAll applies actions in order.
func ReduceAll(s State, actions ...Action) State {
	for _, a := range actions {
		s = Reduce(s, a)
	}
	return s
}

func (a SetInput) apply(s State) State {
	s.Input = a.Value
	c, err := palette.ParseHex(strings.TrimSpace(a.Value))
	if err != nil {
		s.InputValid = false
		s.Error = err.Error()
		return s
	}
	s.InputValid = true
	s.Error = ""
	s.Preset = ""
	return s.withBase(c.Hex())
}

func (a ApplyPreset) apply(s State) State {
	s.Input = a.Preset.Hex()
	s.InputValid = true
	s.Error = ""
	s.Preset = a.Preset.Name()
	return s.withBase(a.Preset.Hex())
}

func (a Randomize) apply(s State) State {
	hex := a.Color.Hex()
	s.Input = hex
	s.InputValid = true
	s.Error = ""
	s.Preset = ""
	return s.withBase(hex)
}

func (a SetDark) apply(s State) State {
	s.Dark = a.Dark
	return s
}

func (ToggleDark) apply(s State) State {
	s.Dark = !s.Dark
	return s
}

func (MarkSaved) apply(s State) State {
	s.SavedBase = s.Base
	s.Dirty = false
	return s
}

func (Reset) apply(s State) State {
	dark := s.Dark
	s = New(s.SavedBase)
	s.Dark = dark
	return s
}

func (s State) withBase(hex string) State {
	s.Base = hex
	s.Dirty = s.Base != s.SavedBase
	return s
}

// Color is the parsed base. Base is always valid once built through New.
func (s State) Color() palette.RGB {
	c, err := palette.ParseHex(s.Base)
	if err != nil {
		return palette.DefaultPreset.Color()
	}
	return c
}

// Palette derives the preview for the current base.
func (s State) Palette(interp palette.Interpolator) palette.Palette {
	return palette.NewPalette(s.Color(), interp)
}

// Overrides is the override set for the current preview mode.
func (s State) Overrides(interp palette.Interpolator) palette.Overrides {
	return s.Palette(interp).Overrides(s.Dark)
}
