package styles

import "strings"

// Heuristics configures candidate discovery. Name matching is inherently
// fragile (conventional names and suffixes), so every predicate is data an
// integrating project can override rather than hard-coded logic.
type Heuristics struct {
	// ExactNames are conventional style-function names matched exactly.
	ExactNames []string
	// NameSuffixes match bindings/functions by suffix, case-sensitive.
	NameSuffixes []string
	// MethodNames are class-method names treated as candidates even when the
	// name/suffix rule does not match.
	MethodNames []string
	// APICalls maps styling-API callee names to their rewrite shape.
	APICalls map[string]APIKind
	// WrapperPrefixes and WrapperSuffixes identify custom wrapper helpers the
	// evaluator synthesizes placeholder results for. Deliberately distinct
	// from the style-function patterns.
	WrapperPrefixes []string
	WrapperSuffixes []string
}

// DefaultHeuristics returns the conventional Fluent-style predicate set.
func DefaultHeuristics() Heuristics {
	return Heuristics{
		ExactNames:   []string{"getStyles", "getStyle", "getClassNames"},
		NameSuffixes: []string{"Style", "Styles"},
		MethodNames:  []string{"render"},
		APICalls: map[string]APIKind{
			"mergeStyles":              APISingleClass,
			"mergeCss":                 APISingleClass,
			"mergeStyleSets":           APIClassSet,
			"mergeCssSets":             APIClassSet,
			"concatStyleSets":          APIClassSet,
			"concatStyleSetsWithProps": APIClassSet,
			"fontFace":                 APIFontFace,
			"keyframes":                APIKeyframes,
		},
		WrapperPrefixes: []string{"with", "create"},
		WrapperSuffixes: []string{"ClassName", "ClassNames", "Css"},
	}
}

// MatchesStyleName reports whether a binding or function name identifies a
// style-producing function.
func (h Heuristics) MatchesStyleName(name string) bool {
	for _, exact := range h.ExactNames {
		if name == exact {
			return true
		}
	}
	for _, suffix := range h.NameSuffixes {
		if name != suffix && strings.HasSuffix(name, suffix) {
			return true
		}
	}
	return false
}

// MatchesMethodName reports whether a class-method name is a candidate.
func (h Heuristics) MatchesMethodName(name string) bool {
	if h.MatchesStyleName(name) {
		return true
	}
	for _, m := range h.MethodNames {
		if name == m {
			return true
		}
	}
	return false
}

// APICall returns the rewrite shape for a styling-API callee name.
func (h Heuristics) APICall(name string) (APIKind, bool) {
	kind, ok := h.APICalls[name]
	return kind, ok
}

// MatchesWrapperName reports whether a callee looks like a custom style
// wrapper helper. Names that are styling-API calls are never wrappers.
func (h Heuristics) MatchesWrapperName(name string) bool {
	if _, ok := h.APICalls[name]; ok {
		return false
	}
	for _, prefix := range h.WrapperPrefixes {
		if name != prefix && strings.HasPrefix(name, prefix) {
			return true
		}
	}
	for _, suffix := range h.WrapperSuffixes {
		if name != suffix && strings.HasSuffix(name, suffix) {
			return true
		}
	}
	return false
}
