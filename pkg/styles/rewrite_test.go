package styles

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEditList_Apply(t *testing.T) {
	src := []byte("aaa bbb ccc")
	edits := &editList{}

	require.True(t, edits.add(4, 7, "XY"))
	require.True(t, edits.add(0, 3, "Z"))

	assert.Equal(t, "Z XY ccc", string(edits.apply(src)))
}

func TestEditList_RejectsOverlap(t *testing.T) {
	edits := &editList{}

	require.True(t, edits.add(10, 20, "outer"))
	assert.False(t, edits.add(12, 15, "nested"))
	assert.False(t, edits.add(5, 11, "straddles-start"))
	assert.False(t, edits.add(19, 25, "straddles-end"))
	assert.True(t, edits.add(20, 22, "adjacent"))
}

func TestEditList_Empty(t *testing.T) {
	edits := &editList{}
	assert.True(t, edits.empty())
	edits.add(0, 1, "x")
	assert.False(t, edits.empty())
}

func TestStyleFunctionEdit_ExpressionBody(t *testing.T) {
	src := `const buttonStyles = (props) => ({ root: { color: "red" }, icon: {} });`
	fn, source := styleFnOf(t, src)
	slots := styleSlots(fn, source)
	require.Len(t, slots, 2)

	mapping := []SlotClass{
		{Key: "root", Class: "fs-11111111"},
		{Key: "icon", Class: "fs-22222222"},
	}
	ed, err := styleFunctionEdit(fn, source, slots, mapping)
	require.NoError(t, err)

	edits := &editList{}
	require.True(t, edits.add(ed.start, ed.end, ed.text))
	out := string(edits.apply(source))

	assert.Equal(t,
		`const buttonStyles = (props) => ({ root: ["fs-11111111", props.className], icon: "fs-22222222" });`,
		out)
}

func TestStyleFunctionEdit_BlockBody(t *testing.T) {
	src := `function getStyles() { return { root: { color: "red" } }; }`
	fn, source := styleFnOf(t, src)
	slots := styleSlots(fn, source)
	require.Len(t, slots, 1)

	ed, err := styleFunctionEdit(fn, source, slots, []SlotClass{{Key: "root", Class: "fs-abcd1234"}})
	require.NoError(t, err)

	edits := &editList{}
	edits.add(ed.start, ed.end, ed.text)
	out := string(edits.apply(source))

	// No parameter, so no pass-through class reference.
	assert.Equal(t, `function getStyles() { return { root: "fs-abcd1234" }; }`, out)
}

func TestStyleFunctionEdit_VariantFallbackClass(t *testing.T) {
	src := `const barStyles = (props) => ({ root: { color: "red" } });`
	fn, source := styleFnOf(t, src)
	slots := styleSlots(fn, source)

	// Only a variant key resolved: the slot's default entry falls back to it.
	mapping := []SlotClass{{Key: "root--primary", Class: "fs-99999999"}}
	ed, err := styleFunctionEdit(fn, source, slots, mapping)
	require.NoError(t, err)
	assert.Contains(t, ed.text, `"fs-99999999"`)
}

func TestStyleFunctionEdit_QuotedSlotKey(t *testing.T) {
	src := `const navStyles = () => ({ "root--compact": { padding: 2 } });`
	fn, source := styleFnOf(t, src)
	slots := styleSlots(fn, source)

	ed, err := styleFunctionEdit(fn, source, slots, []SlotClass{{Key: "root--compact", Class: "fs-00000001"}})
	require.NoError(t, err)
	assert.Contains(t, ed.text, `"root--compact": "fs-00000001"`)
}

func TestClassForSlot(t *testing.T) {
	mapping := []SlotClass{
		{Key: "root--primary", Class: "fs-aaa"},
		{Key: "root", Class: "fs-bbb"},
		{Key: "icon--primary", Class: "fs-ccc"},
	}
	assert.Equal(t, "fs-bbb", classForSlot(mapping, "root"))
	assert.Equal(t, "fs-ccc", classForSlot(mapping, "icon"))
	assert.Equal(t, unresolvedClass, classForSlot(mapping, "label"))
}

func TestCallReplacements(t *testing.T) {
	assert.Equal(t, `"fs-12345678"`, callReplacementString("fs-12345678"))

	out := callReplacementSet(
		[]string{"root", "sub-part", "missing"},
		map[string]string{"root": "fs-aaa", "sub-part": "fs-bbb"},
	)
	assert.Equal(t, `{ root: "fs-aaa", "sub-part": "fs-bbb" }`, out)
}

func TestQuoteJS(t *testing.T) {
	assert.Equal(t, `"plain"`, quoteJS("plain"))
	assert.Equal(t, `"a\"b"`, quoteJS(`a"b`))
	assert.Equal(t, `"a\\b"`, quoteJS(`a\b`))
	assert.Equal(t, `"a\nb"`, quoteJS("a\nb"))
}
