package styles

import (
	"reflect"
	"strconv"

	ts "github.com/tree-sitter/go-tree-sitter"
)

// evaluator interprets the restricted expression grammar against one
// environment. It never panics on unsupported input: every construct outside
// the grammar resolves to nil, which downstream composition drops. Omission,
// not error, is the contract — array filtering in the normalizer depends on
// unresolved values disappearing.
type evaluator struct {
	source []byte
	env    *Environment
	heur   Heuristics
}

// eval resolves a plain expression to a value, or nil when the construct is
// outside the supported grammar.
func (ev *evaluator) eval(node *ts.Node) any {
	node = unwrapExpression(node)
	if node == nil {
		return nil
	}

	switch node.Kind() {
	case "string":
		return stringValue(node, ev.source)
	case "number":
		if f, err := strconv.ParseFloat(node.Utf8Text(ev.source), 64); err == nil {
			return f
		}
		return nil
	case "true":
		return true
	case "false":
		return false
	case "null", "undefined":
		return nil
	case "identifier":
		return ev.env.Lookup(node.Utf8Text(ev.source))
	case "member_expression", "subscript_expression":
		return ev.evalMember(node)
	case "template_string":
		return ev.evalTemplate(node)
	case "binary_expression":
		return ev.evalBinary(node)
	case "object":
		return ev.evalObject(node)
	case "call_expression":
		return ev.evalWrapperCall(node)
	default:
		return nil
	}
}

// evalStyleValue resolves an expression in style-value position, where arrays
// compose fragments and ternaries select between style branches.
func (ev *evaluator) evalStyleValue(node *ts.Node) any {
	node = unwrapExpression(node)
	if node == nil {
		return nil
	}

	switch node.Kind() {
	case "array":
		var out []any
		for i := uint(0); i < node.NamedChildCount(); i++ {
			v := ev.evalStyleValue(node.NamedChild(i))
			if truthy(v) {
				out = append(out, v)
			}
		}
		return out
	case "ternary_expression":
		test := ev.eval(node.ChildByFieldName("condition"))
		if truthy(test) {
			return ev.evalStyleValue(node.ChildByFieldName("consequence"))
		}
		return ev.evalStyleValue(node.ChildByFieldName("alternative"))
	default:
		return ev.eval(node)
	}
}

// evalMember resolves a.b chains. The leftmost name goes through the
// environment's root table; each step indexes a map or short-circuits to nil.
func (ev *evaluator) evalMember(node *ts.Node) any {
	object := unwrapExpression(node.ChildByFieldName("object"))
	if object == nil {
		return nil
	}

	var base any
	if object.Kind() == "identifier" {
		base = ev.env.Root(object.Utf8Text(ev.source))
	} else {
		base = ev.eval(object)
	}

	obj, ok := base.(map[string]any)
	if !ok {
		return nil
	}

	key := ev.memberKey(node)
	if key == "" {
		return nil
	}
	return obj[key]
}

// memberKey extracts the index of one member/subscript access: an identifier
// property or a string-literal subscript, nothing else.
func (ev *evaluator) memberKey(node *ts.Node) string {
	if node.Kind() == "member_expression" {
		if prop := node.ChildByFieldName("property"); prop != nil && prop.Kind() == "property_identifier" {
			return prop.Utf8Text(ev.source)
		}
		return ""
	}
	if idx := node.ChildByFieldName("index"); idx != nil && idx.Kind() == "string" {
		return stringValue(idx, ev.source)
	}
	return ""
}

// evalTemplate concatenates literal chunks and stringified interpolations.
// Unresolved interpolations contribute the empty string.
func (ev *evaluator) evalTemplate(node *ts.Node) any {
	var out []byte
	for i := uint(0); i < node.NamedChildCount(); i++ {
		child := node.NamedChild(i)
		switch child.Kind() {
		case "string_fragment":
			out = append(out, child.Utf8Text(ev.source)...)
		case "template_substitution":
			v := ev.eval(child.NamedChild(0))
			out = append(out, stringify(v)...)
		}
	}
	return string(out)
}

func (ev *evaluator) evalBinary(node *ts.Node) any {
	op := node.ChildByFieldName("operator")
	if op == nil {
		return nil
	}
	left := node.ChildByFieldName("left")
	right := node.ChildByFieldName("right")

	switch op.Kind() {
	case "&&":
		l := ev.eval(left)
		if !truthy(l) {
			// Short-circuit returns the falsy left value itself, matching
			// source-language semantics (0 && x is 0, not false).
			return l
		}
		return ev.eval(right)
	case "||":
		l := ev.eval(left)
		if truthy(l) {
			return l
		}
		return ev.eval(right)
	case "===":
		return strictEqual(ev.eval(left), ev.eval(right))
	case "!==":
		return !strictEqual(ev.eval(left), ev.eval(right))
	case "==":
		return looseEqual(ev.eval(left), ev.eval(right))
	case "!=":
		return !looseEqual(ev.eval(left), ev.eval(right))
	default:
		return nil
	}
}

// evalObject evaluates an object literal. Properties whose value resolves to
// nil are omitted; only identifier and string-literal keys are supported.
func (ev *evaluator) evalObject(node *ts.Node) any {
	out := make(map[string]any)
	for i := uint(0); i < node.NamedChildCount(); i++ {
		child := node.NamedChild(i)
		switch child.Kind() {
		case "pair":
			key := child.ChildByFieldName("key")
			value := child.ChildByFieldName("value")
			if key == nil || value == nil {
				continue
			}
			name := propertyKeyName(key, ev.source)
			if name == "" {
				continue
			}
			if v := ev.evalStyleValue(value); v != nil {
				out[name] = v
			}
		case "shorthand_property_identifier":
			name := child.Utf8Text(ev.source)
			if v := ev.env.Lookup(name); v != nil {
				out[name] = v
			}
		}
	}
	return out
}

// evalWrapperCall handles calls to unrecognized functions. When the callee
// matches the wrapper-naming heuristic and at least one argument evaluates to
// an object, a placeholder result is synthesized so downstream composition
// has something non-empty to merge; otherwise nil.
func (ev *evaluator) evalWrapperCall(node *ts.Node) any {
	name := calleeName(node, ev.source)
	if name == "" || !ev.heur.MatchesWrapperName(name) {
		return nil
	}

	args := node.ChildByFieldName("arguments")
	if args == nil {
		return nil
	}

	merged := make(map[string]any)
	sawObject := false
	for i := uint(0); i < args.NamedChildCount(); i++ {
		v := ev.evalStyleValue(args.NamedChild(i))
		if obj, ok := v.(map[string]any); ok {
			sawObject = true
			for k, val := range obj {
				merged[k] = val
			}
		}
	}
	if !sawObject {
		return nil
	}

	if _, ok := merged["boxSizing"]; !ok {
		merged["boxSizing"] = "border-box"
	}
	merged["--wrapped-by"] = name
	return merged
}

// truthy mirrors source-language truthiness for the value shapes the
// evaluator produces.
func truthy(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case string:
		return val != ""
	case float64:
		return val != 0
	default:
		// Objects and arrays are always truthy.
		return true
	}
}

func strictEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if reflect.TypeOf(a) != reflect.TypeOf(b) {
		return false
	}
	return reflect.DeepEqual(a, b)
}

// looseEqual implements the coercing comparison for the scalar shapes the
// evaluator produces; everything beyond number/string/bool coercion falls
// back to the strict result.
func looseEqual(a, b any) bool {
	if strictEqual(a, b) {
		return true
	}
	if a == nil || b == nil {
		// null == undefined collapses to nil == nil here, handled above.
		return false
	}
	an, aok := toNumber(a)
	bn, bok := toNumber(b)
	if aok && bok {
		return an == bn
	}
	return false
}

func toNumber(v any) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case bool:
		if val {
			return 1, true
		}
		return 0, true
	case string:
		f, err := strconv.ParseFloat(val, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// stringify renders an interpolated value inside a template literal.
func stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		if val {
			return "true"
		}
		return "false"
	default:
		return ""
	}
}
