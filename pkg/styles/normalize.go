package styles

import (
	"regexp"
	"strings"
)

// globalSelector matches the :global(...) wrapper marking a selector that
// must escape the generated class scope.
var globalSelector = regexp.MustCompile(`:global\(([^)]*)\)`)

// flattenStyle merges an evaluated style value into one plain style object.
//
// Arrays merge left-to-right by shallow assignment; string fragments
// accumulate into a synthetic className key, space-joined. A bare string
// wraps into {className: s}. Anything else — including nil — yields nil,
// which callers treat as nothing to extract for that slot/variant.
func flattenStyle(v any) map[string]any {
	var out map[string]any

	switch val := v.(type) {
	case map[string]any:
		out = val
	case string:
		out = map[string]any{"className": val}
	case []any:
		out = make(map[string]any)
		for _, el := range val {
			switch item := el.(type) {
			case string:
				if cur, _ := out["className"].(string); cur != "" {
					out["className"] = cur + " " + item
				} else {
					out["className"] = item
				}
			case map[string]any:
				for k, v := range item {
					out[k] = v
				}
			}
		}
	default:
		return nil
	}

	out = unwrapGlobalSelectors(out)

	// A fragment carrying only pass-through classes has no CSS to extract.
	// This also keeps extraction idempotent: rewritten functions return
	// class-name arrays, which flatten to className-only objects and are
	// skipped on a second run.
	if !hasStyleKeys(out) {
		return nil
	}
	return out
}

// unwrapGlobalSelectors rewrites selector keys containing the :global()
// wrapper to the unwrapped inner selector text. Non-wrapped keys pass through
// unchanged.
func unwrapGlobalSelectors(style map[string]any) map[string]any {
	nested, ok := style["selectors"].(map[string]any)
	if !ok {
		return style
	}

	rewritten := make(map[string]any, len(nested))
	for sel, v := range nested {
		if strings.Contains(sel, ":global(") {
			sel = globalSelector.ReplaceAllString(sel, "$1")
		}
		rewritten[sel] = v
	}
	style["selectors"] = rewritten
	return style
}

func hasStyleKeys(style map[string]any) bool {
	for k := range style {
		if k == "className" {
			continue
		}
		if k == "selectors" {
			if nested, ok := style["selectors"].(map[string]any); ok && len(nested) > 0 {
				return true
			}
			continue
		}
		return true
	}
	return false
}
