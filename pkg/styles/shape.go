package styles

import (
	ts "github.com/tree-sitter/go-tree-sitter"
)

// styleSlots decomposes a candidate function's returned object literal(s)
// into named style slots. Only top-level return statements are scanned — no
// traversal into nested blocks or conditionals — and an expression-bodied
// arrow's body is the candidate return expression itself.
//
// Returns nil when no object-shaped return value exists; the caller treats
// that as nothing to extract, not an error.
func styleSlots(fn *ts.Node, source []byte) []StyleSlot {
	body := functionBody(fn)
	if body == nil {
		return nil
	}

	var returns []*ts.Node
	if body.Kind() == "statement_block" {
		for i := uint(0); i < body.NamedChildCount(); i++ {
			child := body.NamedChild(i)
			if child.Kind() != "return_statement" {
				continue
			}
			if expr := child.NamedChild(0); expr != nil {
				returns = append(returns, expr)
			}
		}
	} else {
		returns = append(returns, body)
	}

	var slots []StyleSlot
	seen := make(map[string]bool)
	for _, ret := range returns {
		obj := unwrapExpression(ret)
		if obj == nil || obj.Kind() != "object" {
			continue
		}
		for i := uint(0); i < obj.NamedChildCount(); i++ {
			pair := obj.NamedChild(i)
			if pair.Kind() != "pair" {
				continue
			}
			key := pair.ChildByFieldName("key")
			value := pair.ChildByFieldName("value")
			if key == nil || value == nil {
				continue
			}
			// Identifier and string-literal keys only; computed keys are skipped.
			name := propertyKeyName(key, source)
			if name == "" || seen[name] {
				continue
			}
			seen[name] = true
			slots = append(slots, StyleSlot{Name: name, Expr: value})
		}
	}
	return slots
}
