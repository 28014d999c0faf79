package styles

import (
	"log/slog"

	ts "github.com/tree-sitter/go-tree-sitter"
)

// maxVariantAssignments caps the enumeration. Power-set growth means more
// than four discriminators silently loses branch coverage; the truncation is
// logged so affected functions are visible in the extraction report.
const maxVariantAssignments = 16

// variantSampleValue is the fixed sample the "variant" enum discriminator is
// forced to in the appended assignments.
const variantSampleValue = "elevated"

// fallbackDiscriminators is used when discriminator discovery fails outright;
// these are the prop names conditional styling keys on most often.
var fallbackDiscriminators = []string{"primary", "disabled", "checked", "expanded", "hovered"}

// enumerateVariants scans a function body for boolean-driving conditions and
// returns the capped, ordered sequence of prop assignments needed to exercise
// each branch. With no discriminators the single default assignment is
// returned.
func enumerateVariants(body *ts.Node, source []byte, logger *slog.Logger) []VariantAssignment {
	names := discoverDiscriminators(body, source)
	if len(names) == 0 {
		return []VariantAssignment{{}}
	}

	hasVariant := false
	for _, n := range names {
		if n == "variant" {
			hasVariant = true
		}
	}

	// Power set in binary counting order, first-discovered name in the lowest
	// bit so it toggles fastest.
	want := maxVariantAssignments + 1
	if len(names) < 5 { // 2^5 already exceeds the cap
		want = 1 << len(names)
		if hasVariant {
			want *= 2
		}
	}

	var out []VariantAssignment
	for i := 0; len(out) < maxVariantAssignments && i < 1<<uint(min(len(names), 5)); i++ {
		flags := make([]VariantFlag, len(names))
		for j, n := range names {
			flags[j] = VariantFlag{Name: n, Value: i>>j&1 == 1}
		}
		out = append(out, VariantAssignment{Flags: flags})
	}

	if hasVariant {
		base := len(out)
		for i := 0; i < base && len(out) < maxVariantAssignments; i++ {
			dup := VariantAssignment{
				Flags:   append([]VariantFlag(nil), out[i].Flags...),
				Variant: variantSampleValue,
			}
			out = append(out, dup)
		}
	}

	if len(out) < want {
		logger.Warn("variant enumeration truncated, some branches lose coverage",
			"discriminators", len(names),
			"assignments", len(out))
	}

	return out
}

// discoverDiscriminators collects boolean-driving prop names in discovery
// order. A failure inside the tree walk falls back to the fixed discriminator
// list rather than propagating.
func discoverDiscriminators(body *ts.Node, source []byte) (names []string) {
	defer func() {
		if r := recover(); r != nil {
			names = append([]string(nil), fallbackDiscriminators...)
		}
	}()

	seen := make(map[string]bool)
	add := func(name string) {
		if name != "" && !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}

	walk(body, func(node *ts.Node) bool {
		switch node.Kind() {
		case "binary_expression":
			op := node.ChildByFieldName("operator")
			if op == nil {
				return true
			}
			switch op.Kind() {
			case "&&":
				add(conditionPropName(node.ChildByFieldName("left"), source))
			case "===", "==", "!==", "!=":
				// Equality never introduces the "variant" discriminator: it
				// is an enum, not a boolean, and gets its forced sample value
				// instead.
				if n := propsMemberName(node.ChildByFieldName("left"), source); n != "variant" {
					add(n)
				}
				if n := propsMemberName(node.ChildByFieldName("right"), source); n != "variant" {
					add(n)
				}
			}
		case "ternary_expression":
			add(conditionPropName(node.ChildByFieldName("condition"), source))
		}
		return true
	})

	return names
}

// conditionPropName extracts a discriminator from a guard position: a bare
// identifier or a props.X member access.
func conditionPropName(node *ts.Node, source []byte) string {
	node = unwrapExpression(node)
	if node == nil {
		return ""
	}
	if node.Kind() == "identifier" {
		return node.Utf8Text(source)
	}
	return propsMemberName(node, source)
}

// propsMemberName returns X for a props.X member access, "" otherwise.
func propsMemberName(node *ts.Node, source []byte) string {
	node = unwrapExpression(node)
	if node == nil || node.Kind() != "member_expression" {
		return ""
	}
	object := node.ChildByFieldName("object")
	prop := node.ChildByFieldName("property")
	if object == nil || prop == nil {
		return ""
	}
	if object.Kind() != "identifier" || object.Utf8Text(source) != "props" {
		return ""
	}
	if prop.Kind() != "property_identifier" {
		return ""
	}
	return prop.Utf8Text(source)
}

// variantKey builds the slot key for one assignment: the slot name plus a
// suffix per raised flag, and the forced variant sample when present. The
// default assignment maps to the bare slot name.
func variantKey(slot string, va VariantAssignment) string {
	key := slot
	for _, f := range va.Flags {
		if f.Value {
			key += "--" + f.Name
		}
	}
	if va.Variant != "" {
		key += "--variant-" + va.Variant
	}
	return key
}
