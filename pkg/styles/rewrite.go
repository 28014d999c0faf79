package styles

import (
	"fmt"
	"sort"
	"strings"

	ts "github.com/tree-sitter/go-tree-sitter"
)

// edit is one byte-span substitution against the original source. Tree-sitter
// trees are immutable, so "mutating the tree and reserializing" is realized
// as structural substitution at the text level: each rewritten candidate
// contributes one edit, and serialization splices them into the source.
type edit struct {
	start uint
	end   uint
	text  string
}

// editList accumulates non-overlapping edits. Candidates are processed in
// source order, so an edit overlapping an accepted one (a call nested inside
// an already-rewritten function) is rejected and the candidate skipped.
type editList struct {
	edits []edit
}

func (l *editList) add(start, end uint, text string) bool {
	for _, e := range l.edits {
		if start < e.end && e.start < end {
			return false
		}
	}
	l.edits = append(l.edits, edit{start: start, end: end, text: text})
	return true
}

func (l *editList) empty() bool {
	return len(l.edits) == 0
}

// apply splices the accepted edits into source and returns the new text.
func (l *editList) apply(source []byte) []byte {
	sorted := append([]edit(nil), l.edits...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].start < sorted[j].start })

	var out []byte
	var pos uint
	for _, e := range sorted {
		out = append(out, source[pos:e.start]...)
		out = append(out, e.text...)
		pos = e.end
	}
	out = append(out, source[pos:]...)
	return out
}

// styleFunctionEdit builds the body replacement for a rewritten style
// function. The synthesized body returns every slot's generated class name;
// the root slot additionally carries the caller-supplied pass-through class.
func styleFunctionEdit(fn *ts.Node, source []byte, slots []StyleSlot, mapping []SlotClass) (edit, error) {
	body := functionBody(fn)
	if body == nil {
		return edit{}, fmt.Errorf("candidate has no body")
	}

	param := firstParamName(fn, source)

	var entries []string
	for _, slot := range slots {
		cls := classForSlot(mapping, slot.Name)
		key := slot.Name
		if !isIdentifierName(key) {
			key = quoteJS(key)
		}
		if slot.Name == "root" && param != "" {
			entries = append(entries, fmt.Sprintf("%s: [%s, %s.className]", key, quoteJS(cls), param))
		} else {
			entries = append(entries, fmt.Sprintf("%s: %s", key, quoteJS(cls)))
		}
	}
	object := "{ " + strings.Join(entries, ", ") + " }"

	if body.Kind() == "statement_block" {
		return edit{
			start: body.StartByte(),
			end:   body.EndByte(),
			text:  "{ return " + object + "; }",
		}, nil
	}
	return edit{
		start: body.StartByte(),
		end:   body.EndByte(),
		text:  "(" + object + ")",
	}, nil
}

// unresolvedClass is the literal emitted for a slot whose style value never
// produced a usable mapping. No rule is registered under it, so it is inert
// in the stylesheet, and it normalizes away on re-extraction like any other
// bare class string.
const unresolvedClass = "fs-unresolved"

// classForSlot picks the class for a slot's default key, falling back to the
// slot's first variant key and then to the unresolved marker.
func classForSlot(mapping []SlotClass, slot string) string {
	for _, m := range mapping {
		if m.Key == slot {
			return m.Class
		}
	}
	for _, m := range mapping {
		if strings.HasPrefix(m.Key, slot+"--") {
			return m.Class
		}
	}
	return unresolvedClass
}

// callReplacementString builds the literal replacing a single-class API call.
func callReplacementString(class string) string {
	return quoteJS(class)
}

// callReplacementSet builds the object literal replacing a set-producing API
// call, preserving the original key order.
func callReplacementSet(order []string, classes map[string]string) string {
	var entries []string
	for _, k := range order {
		cls, ok := classes[k]
		if !ok {
			continue
		}
		key := k
		if !isIdentifierName(key) {
			key = quoteJS(key)
		}
		entries = append(entries, fmt.Sprintf("%s: %s", key, quoteJS(cls)))
	}
	return "{ " + strings.Join(entries, ", ") + " }"
}

// quoteJS renders a string as a double-quoted source literal.
func quoteJS(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		default:
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}
