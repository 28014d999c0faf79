// Package stylesheet accumulates CSS rules and hands out deterministic class
// names for statically evaluated style objects.
//
// A Registry is an explicit handle, never package-global state. The extraction
// driver creates one per file (or per run) and resets it between files; CSS
// text accumulates in registration order, which is part of the observable
// contract.
package stylesheet

import (
	"fmt"
	"hash/fnv"
	"sort"
	"strings"
	"sync"
)

// Options configures a Registry.
type Options struct {
	// Prefix is prepended to every generated class, font and animation name.
	Prefix string
}

// DefaultOptions returns the standard registry configuration.
func DefaultOptions() Options {
	return Options{Prefix: "fs-"}
}

// Registry memoizes style objects to class names and accumulates their CSS.
//
// Identical style objects always yield the same class name, and their CSS is
// appended only once. Safe for concurrent use, though within one file the
// extraction core calls it sequentially so rule order follows source order.
type Registry struct {
	mu     sync.Mutex
	prefix string

	rules []string
	names map[string]string // serialized rule body -> generated name

	fontCount int
	animCount int
}

// New creates an empty registry.
func New(opts Options) *Registry {
	if opts.Prefix == "" {
		opts.Prefix = DefaultOptions().Prefix
	}
	return &Registry{
		prefix: opts.Prefix,
		names:  make(map[string]string),
	}
}

// ClassName registers a single style object and returns its class name.
// A nil or empty style object yields an empty class name and no CSS.
func (r *Registry) ClassName(style map[string]any) string {
	body, selectors := serializeRuleBody(style)
	if body == "" && len(selectors) == 0 {
		return ""
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	return r.register(body, selectors)
}

// ClassSet registers a named set of style objects and returns a mapping from
// each slot name to its generated class. Slot names are processed in sorted
// order so accumulation order is deterministic.
func (r *Registry) ClassSet(set map[string]map[string]any) map[string]string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make(map[string]string, len(set))
	for _, k := range keys {
		if cls := r.ClassName(set[k]); cls != "" {
			out[k] = cls
		}
	}
	return out
}

// FontFace registers an @font-face descriptor and returns the font-family
// name callers should reference. An explicit fontFamily in the descriptor is
// honored; otherwise a name is generated.
func (r *Registry) FontFace(descriptor map[string]any) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	family, _ := descriptor["fontFamily"].(string)
	if family == "" {
		r.fontCount++
		family = fmt.Sprintf("%sfont-%d", r.prefix, r.fontCount)
	}

	props := make(map[string]any, len(descriptor)+1)
	for k, v := range descriptor {
		props[k] = v
	}
	props["fontFamily"] = family

	body, _ := serializeRuleBody(props)
	r.rules = append(r.rules, "@font-face{"+body+"}")
	return family
}

// Keyframes registers an @keyframes block and returns the animation name.
// Each key of frames ("from", "to", "50%") maps to a style object.
func (r *Registry) Keyframes(frames map[string]map[string]any) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	var sb strings.Builder
	keys := make([]string, 0, len(frames))
	for k := range frames {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keyframeLess(keys[i], keys[j]) })

	for _, k := range keys {
		body, _ := serializeRuleBody(frames[k])
		sb.WriteString(k)
		sb.WriteString("{")
		sb.WriteString(body)
		sb.WriteString("}")
	}

	name := r.prefix + "anim-" + shortHash(sb.String())
	r.rules = append(r.rules, "@keyframes "+name+"{"+sb.String()+"}")
	return name
}

// Text returns the accumulated CSS in registration order.
func (r *Registry) Text() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return strings.Join(r.rules, "\n")
}

// RuleCount returns the number of accumulated rules.
func (r *Registry) RuleCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rules)
}

// Reset discards all accumulated rules and memoized names.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rules = r.rules[:0]
	r.names = make(map[string]string)
	r.fontCount = 0
	r.animCount = 0
}

// register must be called with r.mu held.
func (r *Registry) register(body string, selectors []selectorRule) string {
	key := body
	for _, s := range selectors {
		key += "|" + s.selector + "{" + s.body + "}"
	}

	if name, ok := r.names[key]; ok {
		return name
	}

	name := r.prefix + shortHash(key)
	r.names[key] = name

	if body != "" {
		r.rules = append(r.rules, "."+name+"{"+body+"}")
	}
	for _, s := range selectors {
		r.rules = append(r.rules, expandSelector(s.selector, name)+"{"+s.body+"}")
	}
	return name
}

// expandSelector turns a selectors-map key into a full selector anchored at
// the generated class. "&" refers to the class itself; pseudo selectors attach
// directly; anything else is a descendant selector.
func expandSelector(sel, name string) string {
	anchor := "." + name
	switch {
	case strings.Contains(sel, "&"):
		return strings.ReplaceAll(sel, "&", anchor)
	case strings.HasPrefix(sel, ":"):
		return anchor + sel
	default:
		return anchor + " " + sel
	}
}

func shortHash(s string) string {
	h := fnv.New32a()
	h.Write([]byte(s))
	return fmt.Sprintf("%08x", h.Sum32())
}

// keyframeLess orders "from" first, "to" last, percentages numerically.
func keyframeLess(a, b string) bool {
	rank := func(k string) int {
		switch k {
		case "from", "0%":
			return 0
		case "to", "100%":
			return 200
		default:
			n := 100
			fmt.Sscanf(k, "%d%%", &n)
			return n
		}
	}
	return rank(a) < rank(b)
}
