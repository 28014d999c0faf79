package styles

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func enumerate(t *testing.T, src string) []VariantAssignment {
	t.Helper()
	fn, source := styleFnOf(t, src)
	return enumerateVariants(functionBody(fn), source, testLogger())
}

func TestEnumerateVariants_NoDiscriminators(t *testing.T) {
	out := enumerate(t, `const buttonStyles = () => ({ root: { color: "red" } });`)

	require.Len(t, out, 1)
	assert.Empty(t, out[0].Flags)
	assert.Empty(t, out[0].Variant)
}

func TestEnumerateVariants_SingleFlag(t *testing.T) {
	out := enumerate(t, `const buttonStyles = (props) => ({
		root: [{ color: "red" }, props.primary && { fontWeight: 600 }],
	});`)

	require.Len(t, out, 2)
	assert.Equal(t, []VariantFlag{{Name: "primary", Value: false}}, out[0].Flags)
	assert.Equal(t, []VariantFlag{{Name: "primary", Value: true}}, out[1].Flags)
}

func TestEnumerateVariants_BinaryCountingOrder(t *testing.T) {
	// First-discovered discriminator occupies the lowest bit.
	out := enumerate(t, `const buttonStyles = (props) => ({
		root: [
			props.primary && { color: "blue" },
			props.disabled && { opacity: 0.5 },
		],
	});`)

	require.Len(t, out, 4)
	expect := [][2]bool{
		{false, false},
		{true, false},
		{false, true},
		{true, true},
	}
	for i, e := range expect {
		require.Len(t, out[i].Flags, 2)
		assert.Equal(t, "primary", out[i].Flags[0].Name)
		assert.Equal(t, e[0], out[i].Flags[0].Value, "assignment %d primary", i)
		assert.Equal(t, "disabled", out[i].Flags[1].Name)
		assert.Equal(t, e[1], out[i].Flags[1].Value, "assignment %d disabled", i)
	}
}

func TestEnumerateVariants_PolarityCoverage(t *testing.T) {
	out := enumerate(t, `const menuStyles = (props) => ({
		root: [
			props.expanded && { height: "auto" },
			props.checked && { background: "blue" },
			props.hovered && { background: "grey" },
		],
	});`)

	require.Len(t, out, 8)
	for _, name := range []string{"expanded", "checked", "hovered"} {
		sawTrue, sawFalse := false, false
		for _, va := range out {
			for _, f := range va.Flags {
				if f.Name == name {
					if f.Value {
						sawTrue = true
					} else {
						sawFalse = true
					}
				}
			}
		}
		assert.True(t, sawTrue, "%s never true", name)
		assert.True(t, sawFalse, "%s never false", name)
	}
}

func TestEnumerateVariants_EqualityIntroducesFlag(t *testing.T) {
	out := enumerate(t, `const toggleStyles = (props) => ({
		root: { opacity: props.disabled === true ? 0.5 : 1 },
	});`)

	require.Len(t, out, 2)
	assert.Equal(t, "disabled", out[0].Flags[0].Name)
}

func TestEnumerateVariants_VariantEnumForced(t *testing.T) {
	// "variant" discovered through a guard gets the power set, then each
	// combination duplicated with the enum forced to its sample value.
	out := enumerate(t, `const cardStyles = (props) => ({
		root: [
			props.variant && { boxShadow: theme.effects.elevation8 },
		],
	});`)

	require.Len(t, out, 4)
	assert.Empty(t, out[0].Variant)
	assert.Empty(t, out[1].Variant)
	assert.Equal(t, "elevated", out[2].Variant)
	assert.Equal(t, "elevated", out[3].Variant)
}

func TestEnumerateVariants_EqualityNeverIntroducesVariant(t *testing.T) {
	out := enumerate(t, `const cardStyles = (props) => ({
		root: { boxShadow: props.variant === "elevated" ? "0 0 4px" : "none" },
	});`)

	// No boolean discriminators, so the single default assignment.
	require.Len(t, out, 1)
	assert.Empty(t, out[0].Flags)
}

func TestEnumerateVariants_CapAt16(t *testing.T) {
	out := enumerate(t, `const bigStyles = (props) => ({
		root: [
			props.a && { color: "a" },
			props.b && { color: "b" },
			props.c && { color: "c" },
			props.d && { color: "d" },
			props.e && { color: "e" },
		],
	});`)

	assert.Len(t, out, 16)
}

func TestEnumerateVariants_TernaryCondition(t *testing.T) {
	out := enumerate(t, `const linkStyles = (props) => ({
		root: { textDecoration: props.underlined ? "underline" : "none" },
	});`)

	require.Len(t, out, 2)
	assert.Equal(t, "underlined", out[0].Flags[0].Name)
}

func TestVariantKey(t *testing.T) {
	assert.Equal(t, "root", variantKey("root", VariantAssignment{}))
	assert.Equal(t, "root",
		variantKey("root", flags(flag("primary", false))))
	assert.Equal(t, "root--primary",
		variantKey("root", flags(flag("primary", true))))
	assert.Equal(t, "root--primary--disabled",
		variantKey("root", flags(flag("primary", true), flag("disabled", true))))
	assert.Equal(t, "icon--variant-elevated",
		variantKey("icon", VariantAssignment{Variant: "elevated"}))
}
