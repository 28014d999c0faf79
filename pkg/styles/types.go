// Package styles implements the static evaluation and rewriting core: it
// locates style-producing candidates in a parsed source file, partially
// evaluates them against a synthetic props/theme environment, registers the
// resulting style objects with a stylesheet registry, and rewrites the source
// to reference the generated class names.
package styles

import (
	ts "github.com/tree-sitter/go-tree-sitter"
)

// CandidateKind tags how a style-producing site was discovered.
type CandidateKind int

const (
	// CandidateStyleFunction is a named binding or function declaration whose
	// name matches the style-function heuristics.
	CandidateStyleFunction CandidateKind = iota
	// CandidateClassMethod is a class method matching the same heuristics.
	CandidateClassMethod
	// CandidateAPICall is a direct call to one of the mergeStyles-family APIs.
	CandidateAPICall
)

// String returns the string representation of the candidate kind.
func (k CandidateKind) String() string {
	switch k {
	case CandidateStyleFunction:
		return "style-function"
	case CandidateClassMethod:
		return "class-method"
	case CandidateAPICall:
		return "api-call"
	default:
		return "unknown"
	}
}

// APIKind classifies the mergeStyles API family by rewrite shape.
type APIKind int

const (
	// APISingleClass APIs merge their arguments into one style object and
	// return a single class name (mergeStyles, mergeCss).
	APISingleClass APIKind = iota
	// APIClassSet APIs take named sets and return a name→class mapping
	// (mergeStyleSets, mergeCssSets, concatStyleSets, concatStyleSetsWithProps).
	APIClassSet
	// APIFontFace registers an @font-face and returns the font-family name.
	APIFontFace
	// APIKeyframes registers an @keyframes block and returns the animation name.
	APIKeyframes
)

// Candidate is one style-producing site found by the locator.
type Candidate struct {
	Kind CandidateKind
	Name string // binding, function, method, or callee name

	// Fn is the function literal or method node for function-shaped candidates.
	Fn *ts.Node
	// Call is the call_expression node for API-call candidates.
	Call *ts.Node
	API  APIKind

	// Binding is the enclosing variable name for API calls assigned to a
	// binding, used as the slot key in the extraction outcome.
	Binding string
}

// StyleSlot is one named sub-object of a style function's return value.
type StyleSlot struct {
	Name string
	Expr *ts.Node
}

// VariantFlag is one boolean discriminator setting inside an assignment.
type VariantFlag struct {
	Name  string
	Value bool
}

// VariantAssignment is one concrete prop assignment used to exercise a
// conditional branch during evaluation. Flags keep discovery order so variant
// key suffixes are deterministic.
type VariantAssignment struct {
	Flags []VariantFlag
	// Variant holds the forced sample value for the "variant" enum
	// discriminator, empty otherwise.
	Variant string
}

// SlotClass maps one slot key (slot name plus optional variant suffix) to its
// generated class name.
type SlotClass struct {
	Key   string
	Class string
}

// FileResult is the per-file outcome handed to the aggregation layer.
type FileResult struct {
	FilePath string
	Success  bool
	// Changed reports whether any candidate was rewritten. When false, Code
	// is byte-identical to the input.
	Changed bool
	Code    string
	// CSS is the stylesheet text accumulated for this file, in registration
	// order.
	CSS     string
	Classes []SlotClass
	Err     string
}

// ClassNames returns the generated class names in registration order.
func (r *FileResult) ClassNames() []string {
	out := make([]string, 0, len(r.Classes))
	for _, c := range r.Classes {
		out = append(out, c.Class)
	}
	return out
}
