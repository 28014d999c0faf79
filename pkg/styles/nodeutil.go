package styles

import (
	"strings"

	ts "github.com/tree-sitter/go-tree-sitter"
)

// walk visits node and its descendants pre-order. Returning false from fn
// stops descent into that subtree.
func walk(node *ts.Node, fn func(*ts.Node) bool) {
	if node == nil {
		return
	}
	if !fn(node) {
		return
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		walk(node.Child(i), fn)
	}
}

// unwrapExpression strips parentheses and TypeScript-only wrappers
// (as/satisfies/non-null) that carry no runtime meaning.
func unwrapExpression(node *ts.Node) *ts.Node {
	for node != nil {
		switch node.Kind() {
		case "parenthesized_expression", "non_null_expression":
			node = node.NamedChild(0)
		case "as_expression", "satisfies_expression":
			node = node.NamedChild(0)
		default:
			return node
		}
	}
	return nil
}

// stringValue returns the value of a "string" node with quotes stripped and
// common escapes resolved.
func stringValue(node *ts.Node, source []byte) string {
	text := node.Utf8Text(source)
	return unquoteString(text)
}

// unquoteString strips matching single/double quotes and resolves the escape
// sequences that occur in practice in style sources.
func unquoteString(text string) string {
	if len(text) >= 2 {
		first, last := text[0], text[len(text)-1]
		if (first == '\'' && last == '\'') || (first == '"' && last == '"') {
			text = text[1 : len(text)-1]
		}
	}
	if !strings.ContainsRune(text, '\\') {
		return text
	}
	replacer := strings.NewReplacer(
		`\'`, `'`,
		`\"`, `"`,
		`\\`, `\`,
		`\n`, "\n",
		`\t`, "\t",
	)
	return replacer.Replace(text)
}

// isStringLiteral reports whether raw text looks like a quoted string.
func isStringLiteral(text string) bool {
	return len(text) >= 2 &&
		((text[0] == '\'' && text[len(text)-1] == '\'') ||
			(text[0] == '"' && text[len(text)-1] == '"'))
}

// calleeName resolves the invoked name of a call_expression: a bare
// identifier, or the property name of a member access ("Styling.mergeStyles"
// resolves to "mergeStyles").
func calleeName(call *ts.Node, source []byte) string {
	fn := call.ChildByFieldName("function")
	if fn == nil {
		return ""
	}
	switch fn.Kind() {
	case "identifier":
		return fn.Utf8Text(source)
	case "member_expression":
		prop := fn.ChildByFieldName("property")
		if prop != nil {
			return prop.Utf8Text(source)
		}
	}
	return ""
}

// propertyKeyName returns the name of an object-literal key node, or "" for
// computed and other unsupported key shapes.
func propertyKeyName(key *ts.Node, source []byte) string {
	switch key.Kind() {
	case "property_identifier", "identifier", "shorthand_property_identifier":
		return key.Utf8Text(source)
	case "string":
		return stringValue(key, source)
	default:
		return ""
	}
}

// isFunctionLiteral reports whether a node is an arrow function or function
// expression (the initializer shapes accepted for style-function bindings).
func isFunctionLiteral(node *ts.Node) bool {
	switch node.Kind() {
	case "arrow_function", "function_expression", "function":
		return true
	default:
		return false
	}
}

// functionBody returns the body of a function literal, declaration or method.
// For expression-bodied arrows this is the expression itself.
func functionBody(fn *ts.Node) *ts.Node {
	return fn.ChildByFieldName("body")
}

// firstParamName returns the name of a function's first parameter when it is
// a plain identifier; destructured parameters yield "".
func firstParamName(fn *ts.Node, source []byte) string {
	if p := fn.ChildByFieldName("parameter"); p != nil && p.Kind() == "identifier" {
		return p.Utf8Text(source)
	}
	params := fn.ChildByFieldName("parameters")
	if params == nil {
		return ""
	}
	for i := uint(0); i < params.NamedChildCount(); i++ {
		child := params.NamedChild(i)
		switch child.Kind() {
		case "identifier":
			return child.Utf8Text(source)
		case "required_parameter", "optional_parameter":
			if pat := child.ChildByFieldName("pattern"); pat != nil && pat.Kind() == "identifier" {
				return pat.Utf8Text(source)
			}
			return ""
		default:
			return ""
		}
	}
	return ""
}

// bindingName walks up from a call expression to the variable name it
// initializes, if any. Stops at statement level.
func bindingName(call *ts.Node, source []byte) string {
	node := call.Parent()
	for node != nil {
		switch node.Kind() {
		case "variable_declarator":
			if name := node.ChildByFieldName("name"); name != nil && name.Kind() == "identifier" {
				return name.Utf8Text(source)
			}
			return ""
		case "lexical_declaration", "variable_declaration", "expression_statement", "export_statement", "program":
			return ""
		}
		node = node.Parent()
	}
	return ""
}

// isIdentifierName reports whether s can appear unquoted as an object key in
// the rewritten source.
func isIdentifierName(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		letter := r == '_' || r == '$' ||
			(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		digit := r >= '0' && r <= '9'
		if i == 0 && !letter {
			return false
		}
		if !letter && !digit {
			return false
		}
	}
	return true
}
