package stylesheet

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var classNameRe = regexp.MustCompile(`^fs-[0-9a-f]{8}$`)

func TestClassName_Basic(t *testing.T) {
	reg := New(DefaultOptions())

	cls := reg.ClassName(map[string]any{"color": "red"})
	require.True(t, classNameRe.MatchString(cls), "unexpected class name %q", cls)

	assert.Equal(t, "."+cls+"{color:red}", reg.Text())
	assert.Equal(t, 1, reg.RuleCount())
}

func TestClassName_EmptyAndNil(t *testing.T) {
	reg := New(DefaultOptions())

	assert.Empty(t, reg.ClassName(nil))
	assert.Empty(t, reg.ClassName(map[string]any{}))
	// Meta-only objects carry no CSS.
	assert.Empty(t, reg.ClassName(map[string]any{"className": "x"}))
	assert.Equal(t, 0, reg.RuleCount())
}

func TestClassName_Memoized(t *testing.T) {
	reg := New(DefaultOptions())

	a := reg.ClassName(map[string]any{"color": "red", "margin": float64(8)})
	b := reg.ClassName(map[string]any{"margin": float64(8), "color": "red"})

	assert.Equal(t, a, b, "identical styles must share a class")
	assert.Equal(t, 1, reg.RuleCount(), "memoized style must not re-append CSS")

	c := reg.ClassName(map[string]any{"color": "blue"})
	assert.NotEqual(t, a, c)
	assert.Equal(t, 2, reg.RuleCount())
}

func TestClassName_CustomPrefix(t *testing.T) {
	reg := New(Options{Prefix: "app-"})
	cls := reg.ClassName(map[string]any{"color": "red"})
	assert.True(t, strings.HasPrefix(cls, "app-"))
}

func TestClassName_Units(t *testing.T) {
	reg := New(DefaultOptions())

	reg.ClassName(map[string]any{
		"margin":     float64(8),
		"padding":    float64(0),
		"opacity":    0.5,
		"fontWeight": float64(600),
		"zIndex":     float64(10),
	})
	css := reg.Text()

	assert.Contains(t, css, "margin:8px")
	assert.Contains(t, css, "padding:0")
	assert.NotContains(t, css, "padding:0px")
	assert.Contains(t, css, "opacity:0.5")
	assert.Contains(t, css, "font-weight:600")
	assert.Contains(t, css, "z-index:10")
}

func TestClassName_DeclarationsSorted(t *testing.T) {
	reg := New(DefaultOptions())
	cls := reg.ClassName(map[string]any{
		"margin":  float64(4),
		"color":   "red",
		"display": "flex",
	})
	assert.Equal(t, "."+cls+"{color:red;display:flex;margin:4px}", reg.Text())
}

func TestClassName_SkipsNonCSSValues(t *testing.T) {
	reg := New(DefaultOptions())
	reg.ClassName(map[string]any{
		"color":       "red",
		"disabled":    true,
		"displayName": "buttonRoot",
	})
	css := reg.Text()
	assert.Contains(t, css, "color:red")
	assert.NotContains(t, css, "disabled")
	assert.NotContains(t, css, "display-name")
}

func TestClassName_Selectors(t *testing.T) {
	reg := New(DefaultOptions())
	cls := reg.ClassName(map[string]any{
		"color": "red",
		"selectors": map[string]any{
			"&:hover":  map[string]any{"color": "blue"},
			":focus":   map[string]any{"outline": "none"},
			"img":      map[string]any{"width": float64(16)},
			"& .inner": map[string]any{"margin": float64(2)},
		},
	})
	css := reg.Text()

	assert.Contains(t, css, "."+cls+"{color:red}")
	assert.Contains(t, css, "."+cls+":hover{color:blue}")
	assert.Contains(t, css, "."+cls+":focus{outline:none}")
	assert.Contains(t, css, "."+cls+" img{width:16px}")
	assert.Contains(t, css, "."+cls+" .inner{margin:2px}")
}

func TestClassName_SelectorsOnly(t *testing.T) {
	reg := New(DefaultOptions())
	cls := reg.ClassName(map[string]any{
		"selectors": map[string]any{
			"&:hover": map[string]any{"color": "blue"},
		},
	})
	require.NotEmpty(t, cls)
	// No base rule when the object carries only nested selectors.
	assert.Equal(t, "."+cls+":hover{color:blue}", reg.Text())
}

func TestClassSet_SortedAndStable(t *testing.T) {
	reg := New(DefaultOptions())
	out := reg.ClassSet(map[string]map[string]any{
		"root": {"color": "red"},
		"icon": {"margin": float64(4)},
	})

	require.Len(t, out, 2)
	assert.True(t, classNameRe.MatchString(out["root"]))
	assert.True(t, classNameRe.MatchString(out["icon"]))

	// Sorted slot order: icon's rule registers before root's.
	css := reg.Text()
	assert.Less(t, strings.Index(css, "margin:4px"), strings.Index(css, "color:red"))
}

func TestFontFace(t *testing.T) {
	reg := New(DefaultOptions())

	family := reg.FontFace(map[string]any{
		"fontFamily": "MyFont",
		"src":        "url(font.woff2)",
	})
	assert.Equal(t, "MyFont", family)
	assert.Contains(t, reg.Text(), "@font-face{font-family:MyFont;src:url(font.woff2)}")

	anon := reg.FontFace(map[string]any{"src": "url(other.woff2)"})
	assert.Equal(t, "fs-font-1", anon)
	assert.Contains(t, reg.Text(), "font-family:fs-font-1")
}

func TestKeyframes_Ordering(t *testing.T) {
	reg := New(DefaultOptions())

	name := reg.Keyframes(map[string]map[string]any{
		"to":   {"opacity": float64(1)},
		"50%":  {"opacity": 0.5},
		"from": {"opacity": float64(0)},
	})
	assert.True(t, strings.HasPrefix(name, "fs-anim-"))

	css := reg.Text()
	assert.Contains(t, css, "@keyframes "+name+"{from{opacity:0}50%{opacity:0.5}to{opacity:1}}")
}

func TestReset(t *testing.T) {
	reg := New(DefaultOptions())
	first := reg.ClassName(map[string]any{"color": "red"})

	reg.Reset()
	assert.Empty(t, reg.Text())
	assert.Equal(t, 0, reg.RuleCount())

	// Same style after reset re-registers the same deterministic name.
	again := reg.ClassName(map[string]any{"color": "red"})
	assert.Equal(t, first, again)
	assert.Equal(t, 1, reg.RuleCount())
}

func TestKebabCase(t *testing.T) {
	assert.Equal(t, "background-color", kebabCase("backgroundColor"))
	assert.Equal(t, "-webkit-transform", kebabCase("WebkitTransform"))
	assert.Equal(t, "-ms-high-contrast-adjust", kebabCase("msHighContrastAdjust"))
	assert.Equal(t, "--brand-color", kebabCase("--brand-color"))
	assert.Equal(t, "color", kebabCase("color"))
}

func TestFormatClassList(t *testing.T) {
	assert.Equal(t, "a b", FormatClassList([]string{"a", "", "b"}))
	assert.Empty(t, FormatClassList(nil))
}
