package styles

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlattenStyle_MapPassthrough(t *testing.T) {
	in := map[string]any{"color": "red"}
	assert.Equal(t, in, flattenStyle(in))
}

func TestFlattenStyle_BareStringHasNoCSS(t *testing.T) {
	// A lone class-name fragment carries nothing to extract.
	assert.Nil(t, flattenStyle("existing-class"))
}

func TestFlattenStyle_ArrayMergesLeftToRight(t *testing.T) {
	got := flattenStyle([]any{
		map[string]any{"color": "red", "margin": float64(4)},
		map[string]any{"color": "blue"},
	})
	assert.Equal(t, map[string]any{"color": "blue", "margin": float64(4)}, got)
}

func TestFlattenStyle_ClassNamesAccumulate(t *testing.T) {
	got := flattenStyle([]any{
		"a",
		map[string]any{"color": "red"},
		"b",
	})
	require.NotNil(t, got)
	assert.Equal(t, "a b", got["className"])
	assert.Equal(t, "red", got["color"])
}

func TestFlattenStyle_ClassNameOnlyIsNil(t *testing.T) {
	// Keeps extraction idempotent: a rewritten function returns class-name
	// fragments only, which must not register as a new style.
	assert.Nil(t, flattenStyle([]any{"fs-11112222", "fs-33334444"}))
	assert.Nil(t, flattenStyle(map[string]any{"className": "fs-11112222"}))
}

func TestFlattenStyle_UnsupportedShapes(t *testing.T) {
	assert.Nil(t, flattenStyle(nil))
	assert.Nil(t, flattenStyle(float64(3)))
	assert.Nil(t, flattenStyle(true))
	assert.Nil(t, flattenStyle([]any{}))
}

func TestFlattenStyle_GlobalSelectorUnwrap(t *testing.T) {
	got := flattenStyle(map[string]any{
		"color": "red",
		"selectors": map[string]any{
			":global(.ms-Button) &": map[string]any{"color": "blue"},
			"&:hover":               map[string]any{"color": "green"},
		},
	})
	require.NotNil(t, got)

	sel, ok := got["selectors"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, sel, ".ms-Button &")
	assert.Contains(t, sel, "&:hover")
	assert.NotContains(t, sel, ":global(.ms-Button) &")
}

func TestFlattenStyle_SelectorsOnlyKept(t *testing.T) {
	got := flattenStyle(map[string]any{
		"selectors": map[string]any{
			"&:hover": map[string]any{"color": "blue"},
		},
	})
	assert.NotNil(t, got)
}

func TestFlattenStyle_EmptySelectorsIsNil(t *testing.T) {
	assert.Nil(t, flattenStyle(map[string]any{
		"className": "x",
		"selectors": map[string]any{},
	}))
}
