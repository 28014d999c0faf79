package styles

import (
	ts "github.com/tree-sitter/go-tree-sitter"
)

// locateCandidates walks a parsed file pre-order and returns style-producing
// sites in source order. Pure discovery: no evaluation, no side effects, and
// no error when nothing matches.
//
// Descent stops inside a matched candidate, so a mergeStyles call inside a
// style function's body is evaluated as part of that function rather than
// rewritten separately.
func locateCandidates(root *ts.Node, source []byte, heur Heuristics) []Candidate {
	var out []Candidate

	walk(root, func(node *ts.Node) bool {
		switch node.Kind() {
		case "variable_declarator":
			name := node.ChildByFieldName("name")
			value := node.ChildByFieldName("value")
			if name == nil || value == nil || name.Kind() != "identifier" {
				return true
			}
			// Bindings additionally require a function-literal initializer.
			if heur.MatchesStyleName(name.Utf8Text(source)) && isFunctionLiteral(value) {
				out = append(out, Candidate{
					Kind: CandidateStyleFunction,
					Name: name.Utf8Text(source),
					Fn:   value,
				})
				return false
			}

		case "function_declaration":
			name := node.ChildByFieldName("name")
			if name != nil && heur.MatchesStyleName(name.Utf8Text(source)) {
				out = append(out, Candidate{
					Kind: CandidateStyleFunction,
					Name: name.Utf8Text(source),
					Fn:   node,
				})
				return false
			}

		case "method_definition":
			name := node.ChildByFieldName("name")
			if name != nil && name.Kind() == "property_identifier" &&
				heur.MatchesMethodName(name.Utf8Text(source)) {
				out = append(out, Candidate{
					Kind: CandidateClassMethod,
					Name: name.Utf8Text(source),
					Fn:   node,
				})
				return false
			}

		case "call_expression":
			name := calleeName(node, source)
			if kind, ok := heur.APICall(name); ok {
				out = append(out, Candidate{
					Kind:    CandidateAPICall,
					Name:    name,
					Call:    node,
					API:     kind,
					Binding: bindingName(node, source),
				})
				return false
			}
		}
		return true
	})

	return out
}
