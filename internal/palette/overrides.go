package palette

import "strings"

// Variable is a design-token name the preview surface understands.
type Variable string

const (
	VarBackground          Variable = "--background"
	VarForeground          Variable = "--foreground"
	VarCard                Variable = "--card"
	VarCardForeground      Variable = "--card-foreground"
	VarPopover             Variable = "--popover"
	VarPopoverForeground   Variable = "--popover-foreground"
	VarPrimary             Variable = "--primary"
	VarPrimaryForeground   Variable = "--primary-foreground"
	VarSecondary           Variable = "--secondary"
	VarSecondaryForeground Variable = "--secondary-foreground"
	VarMuted               Variable = "--muted"
	VarMutedForeground     Variable = "--muted-foreground"
	VarAccent              Variable = "--accent"
	VarAccentForeground    Variable = "--accent-foreground"
	VarBorder              Variable = "--border"
	VarInput               Variable = "--input"
	VarRing                Variable = "--ring"
	VarColorScheme         Variable = "color-scheme"
)

// ColorVariables lists the color tokens in emission order. VarColorScheme is
// emitted after them.
var ColorVariables = [...]Variable{
	VarBackground, VarForeground,
	VarCard, VarCardForeground,
	VarPopover, VarPopoverForeground,
	VarPrimary, VarPrimaryForeground,
	VarSecondary, VarSecondaryForeground,
	VarMuted, VarMutedForeground,
	VarAccent, VarAccentForeground,
	VarBorder, VarInput, VarRing,
}

const (
	SchemeLight = "light"
	SchemeDark  = "dark"

	darkBackground  = "240 10% 4%"
	lightBackground = "0 0% 99%"
)

// Overrides maps each Variable to an HSL token value or a scheme name.
type Overrides map[Variable]string

// CSSOverrides derives theme overrides with the default HSL blend.
func CSSOverrides(scale ShadeScale, dark bool) Overrides {
	return CSSOverridesWith(scale, dark, InterpolateHSL)
}

// CSSOverridesWith derives theme overrides for one mode. The two midpoints
// (850 and 750) are produced by interp.
func CSSOverridesWith(scale ShadeScale, dark bool, interp Interpolator) Overrides {
	if interp == nil {
		interp = InterpolateHSL
	}
	tok := func(k ShadeKey) string {
		return scale.Shade(k).HSL().CSSValue()
	}
	shade850 := interp(scale.Shade(Shade800), scale.Shade(Shade900), 0.5).HSL().CSSValue()
	shade750 := interp(scale.Shade(Shade700), scale.Shade(Shade800), 0.5).HSL().CSSValue()

	if dark {
		return Overrides{
			VarBackground:          darkBackground,
			VarForeground:          tok(Shade50),
			VarCard:                tok(Shade950),
			VarCardForeground:      tok(Shade50),
			VarPopover:             tok(Shade950),
			VarPopoverForeground:   tok(Shade50),
			VarPrimary:             tok(Shade400),
			VarPrimaryForeground:   tok(Shade950),
			VarSecondary:           shade850,
			VarSecondaryForeground: tok(Shade100),
			VarMuted:               shade850,
			VarMutedForeground:     tok(Shade300),
			VarAccent:              tok(Shade800),
			VarAccentForeground:    tok(Shade50),
			VarBorder:              shade750,
			VarInput:               shade750,
			VarRing:                tok(Shade400),
			VarColorScheme:         SchemeDark,
		}
	}
	return Overrides{
		VarBackground:          lightBackground,
		VarForeground:          tok(Shade900),
		VarCard:                tok(Shade50),
		VarCardForeground:      tok(Shade900),
		VarPopover:             tok(Shade50),
		VarPopoverForeground:   tok(Shade900),
		VarPrimary:             tok(Shade600),
		VarPrimaryForeground:   tok(Shade50),
		VarSecondary:           tok(Shade100),
		VarSecondaryForeground: tok(Shade800),
		VarMuted:               tok(Shade100),
		VarMutedForeground:     tok(Shade500),
		VarAccent:              tok(Shade200),
		VarAccentForeground:    tok(Shade900),
		VarBorder:              tok(Shade200),
		VarInput:               tok(Shade200),
		VarRing:                tok(Shade600),
		VarColorScheme:         SchemeLight,
	}
}

// Declarations renders "name: value;" pairs in a stable order.
func (o Overrides) Declarations() string {
	var b strings.Builder
	for _, v := range ColorVariables {
		if val, ok := o[v]; ok {
			b.WriteString(string(v))
			b.WriteString(": ")
			b.WriteString(val)
			b.WriteString(";")
		}
	}
	if val, ok := o[VarColorScheme]; ok {
		b.WriteString(string(VarColorScheme))
		b.WriteString(": ")
		b.WriteString(val)
		b.WriteString(";")
	}
	return b.String()
}

// CSS renders a rule block for selector, one declaration per line.
func (o Overrides) CSS(selector string) string {
	var b strings.Builder
	b.WriteString(selector)
	b.WriteString(" {\n")
	for _, decl := range strings.SplitAfter(o.Declarations(), ";") {
		if decl == "" {
			continue
		}
		b.WriteString("  ")
		b.WriteString(decl)
		b.WriteString("\n")
	}
	b.WriteString("}\n")
	return b.String()
}
