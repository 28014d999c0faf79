package styles

// Environment is the variable environment one variant is evaluated under.
// Created fresh per variant, discarded after; never shared across files.
type Environment struct {
	Props map[string]any
	Theme Theme
}

// NewEnvironment builds the environment for one variant assignment. The
// pass-through class-name slot is present but undefined so it drops out of
// evaluated objects.
func NewEnvironment(va VariantAssignment, theme Theme) *Environment {
	props := map[string]any{"className": nil}
	for _, f := range va.Flags {
		props[f.Name] = f.Value
	}
	if va.Variant != "" {
		props["variant"] = va.Variant
	}
	return &Environment{Props: props, Theme: theme}
}

// Lookup resolves a bare identifier: props first, then the theme context.
func (e *Environment) Lookup(name string) any {
	if v, ok := e.Props[name]; ok {
		return v
	}
	if v, ok := e.Theme.contextMap()[name]; ok {
		return v
	}
	return nil
}

// Root resolves the leftmost name of a member-access chain through the fixed
// root-name table.
func (e *Environment) Root(name string) any {
	switch name {
	case "props":
		return e.Props
	case "theme":
		return e.Theme.contextMap()
	case "palette":
		return e.Theme.Palette
	case "fonts":
		return e.Theme.Fonts
	case "effects":
		return e.Theme.Effects
	case "spacing":
		return e.Theme.Spacing
	default:
		return e.Lookup(name)
	}
}
