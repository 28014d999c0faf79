package styles

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/cascadiacollections/fluentstatic/pkg/parser"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// parseTSX parses src as TSX and keeps the tree alive for the test duration.
func parseTSX(t *testing.T, src string) (*ts.Node, []byte) {
	t.Helper()

	pm := parser.NewManager(nil)
	t.Cleanup(func() { pm.Close() })

	tree, err := pm.ParseFile([]byte(src), "test.tsx")
	require.NoError(t, err)
	t.Cleanup(tree.Close)

	return tree.RootNode(), []byte(src)
}

// exprOf parses "const __x = <src>;" and returns the initializer node.
func exprOf(t *testing.T, src string) (*ts.Node, []byte) {
	t.Helper()

	root, source := parseTSX(t, "const __x = "+src+";")

	var value *ts.Node
	walk(root, func(n *ts.Node) bool {
		if n.Kind() == "variable_declarator" {
			value = n.ChildByFieldName("value")
			return false
		}
		return true
	})
	require.NotNil(t, value, "no initializer found in %q", src)
	return value, source
}

// styleFnOf locates the first style-function candidate in src.
func styleFnOf(t *testing.T, src string) (*ts.Node, []byte) {
	t.Helper()

	root, source := parseTSX(t, src)
	cands := locateCandidates(root, source, DefaultHeuristics())
	require.NotEmpty(t, cands, "no candidate found in %q", src)
	require.NotNil(t, cands[0].Fn, "first candidate is not a function")
	return cands[0].Fn, source
}

// newTestEvaluator builds an evaluator for one assignment against the default
// theme and heuristics.
func newTestEvaluator(source []byte, va VariantAssignment) *evaluator {
	return &evaluator{
		source: source,
		env:    NewEnvironment(va, DefaultTheme()),
		heur:   DefaultHeuristics(),
	}
}

func flags(pairs ...VariantFlag) VariantAssignment {
	return VariantAssignment{Flags: pairs}
}

func flag(name string, value bool) VariantFlag {
	return VariantFlag{Name: name, Value: value}
}
