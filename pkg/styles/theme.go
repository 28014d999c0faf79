package styles

// Theme is the synthetic design-token object style functions evaluate
// against. Populated from configuration with fixed fallback defaults; the
// evaluator resolves theme, palette, fonts, effects and spacing roots into
// these maps.
type Theme struct {
	Palette map[string]any
	Fonts   map[string]any
	Effects map[string]any
	Spacing map[string]any
}

// DefaultTheme returns the fallback token set used when no theme
// configuration is supplied.
func DefaultTheme() Theme {
	return Theme{
		Palette: map[string]any{
			"themePrimary":     "#0078d4",
			"themeDarkAlt":     "#106ebe",
			"themeDark":        "#005a9e",
			"themeLighter":     "#deecf9",
			"neutralPrimary":   "#323130",
			"neutralSecondary": "#605e5c",
			"neutralLighter":   "#f3f2f1",
			"neutralLight":     "#edebe9",
			"neutralDark":      "#201f1e",
			"white":            "#ffffff",
			"black":            "#000000",
			"redDark":          "#a4262c",
		},
		Fonts: map[string]any{
			"small": map[string]any{
				"fontFamily": "'Segoe UI', sans-serif",
				"fontSize":   "12px",
				"fontWeight": float64(400),
			},
			"medium": map[string]any{
				"fontFamily": "'Segoe UI', sans-serif",
				"fontSize":   "14px",
				"fontWeight": float64(400),
			},
			"large": map[string]any{
				"fontFamily": "'Segoe UI', sans-serif",
				"fontSize":   "18px",
				"fontWeight": float64(600),
			},
			"xLarge": map[string]any{
				"fontFamily": "'Segoe UI', sans-serif",
				"fontSize":   "22px",
				"fontWeight": float64(600),
			},
		},
		Effects: map[string]any{
			"elevation4":     "0 1.6px 3.6px 0 rgba(0,0,0,.132), 0 0.3px 0.9px 0 rgba(0,0,0,.108)",
			"elevation8":     "0 3.2px 7.2px 0 rgba(0,0,0,.132), 0 0.6px 1.8px 0 rgba(0,0,0,.108)",
			"elevation16":    "0 6.4px 14.4px 0 rgba(0,0,0,.132), 0 1.2px 3.6px 0 rgba(0,0,0,.108)",
			"roundedCorner2": "2px",
			"roundedCorner4": "4px",
		},
		Spacing: map[string]any{
			"s2": "4px",
			"s1": "8px",
			"m":  "16px",
			"l1": "20px",
			"l2": "32px",
		},
	}
}

// contextMap exposes the theme as the evaluator's context namespace.
func (t Theme) contextMap() map[string]any {
	return map[string]any{
		"palette": t.Palette,
		"fonts":   t.Fonts,
		"effects": t.Effects,
		"spacing": t.Spacing,
	}
}
