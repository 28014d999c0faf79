package stylesheet

import (
	"sort"
	"strconv"
	"strings"
)

// selectorRule is one nested-selector rule split out of a style object.
type selectorRule struct {
	selector string
	body     string
}

// metaKeys are style-object entries that carry composition metadata rather
// than CSS declarations; they never serialize into rule bodies.
var metaKeys = map[string]bool{
	"className":   true,
	"displayName": true,
	"selectors":   true,
}

// unitlessProperties accept bare numbers without a px suffix.
var unitlessProperties = map[string]bool{
	"animationIterationCount": true,
	"columnCount":             true,
	"flex":                    true,
	"flexGrow":                true,
	"flexShrink":              true,
	"fontWeight":              true,
	"opacity":                 true,
	"order":                   true,
	"orphans":                 true,
	"tabSize":                 true,
	"widows":                  true,
	"zIndex":                  true,
	"zoom":                    true,
}

// serializeRuleBody renders a style object as a CSS declaration list plus any
// nested selector rules. Property order is sorted for deterministic output.
func serializeRuleBody(style map[string]any) (string, []selectorRule) {
	if len(style) == 0 {
		return "", nil
	}

	keys := make([]string, 0, len(style))
	for k := range style {
		if !metaKeys[k] {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	var sb strings.Builder
	for _, k := range keys {
		val := declarationValue(k, style[k])
		if val == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString(";")
		}
		sb.WriteString(kebabCase(k))
		sb.WriteString(":")
		sb.WriteString(val)
	}

	var selectors []selectorRule
	if nested, ok := style["selectors"].(map[string]any); ok {
		selKeys := make([]string, 0, len(nested))
		for k := range nested {
			selKeys = append(selKeys, k)
		}
		sort.Strings(selKeys)
		for _, sel := range selKeys {
			if inner, ok := nested[sel].(map[string]any); ok {
				body, deeper := serializeRuleBody(inner)
				// One level of nesting only; deeper selector maps are dropped.
				_ = deeper
				if body != "" {
					selectors = append(selectors, selectorRule{selector: sel, body: body})
				}
			}
		}
	}

	return sb.String(), selectors
}

// declarationValue renders a single property value, or "" when the value
// cannot appear in CSS.
func declarationValue(prop string, v any) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		s := strconv.FormatFloat(val, 'f', -1, 64)
		if unitlessProperties[prop] || val == 0 {
			return s
		}
		return s + "px"
	case int:
		return declarationValue(prop, float64(val))
	case bool:
		// Booleans are authoring artifacts, not CSS values.
		return ""
	default:
		return ""
	}
}

// kebabCase converts a camelCase property name to its CSS form.
// Vendor-prefix properties ("WebkitOverflowScrolling", "MozAppearance",
// "msHighContrastAdjust") gain the leading dash. CSS custom properties
// ("--foo") pass through untouched.
func kebabCase(name string) string {
	if strings.HasPrefix(name, "--") {
		return name
	}

	var sb strings.Builder
	for _, r := range name {
		if r >= 'A' && r <= 'Z' {
			sb.WriteString("-")
			sb.WriteRune(r - 'A' + 'a')
			continue
		}
		sb.WriteRune(r)
	}

	out := sb.String()
	if strings.HasPrefix(name, "ms") && len(name) > 2 && name[2] >= 'A' && name[2] <= 'Z' {
		out = "-" + out
	}
	return out
}

// FormatClassList joins generated class names, dropping empties.
func FormatClassList(classes []string) string {
	parts := make([]string, 0, len(classes))
	for _, c := range classes {
		if c != "" {
			parts = append(parts, c)
		}
	}
	return strings.Join(parts, " ")
}
