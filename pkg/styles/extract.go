package styles

import (
	"log/slog"

	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/cascadiacollections/fluentstatic/pkg/parser"
	"github.com/cascadiacollections/fluentstatic/pkg/stylesheet"
)

// Options configures an Extractor.
type Options struct {
	Heuristics Heuristics
	Theme      Theme
}

// DefaultOptions returns the conventional heuristics and fallback theme.
func DefaultOptions() Options {
	return Options{
		Heuristics: DefaultHeuristics(),
		Theme:      DefaultTheme(),
	}
}

// Extractor is the per-file extraction core. It holds no mutable state of its
// own, so one Extractor is safely callable concurrently across files; the
// stylesheet registry is the only shared collaborator and is passed in
// explicitly per call.
type Extractor struct {
	parser *parser.Manager
	heur   Heuristics
	theme  Theme
	logger *slog.Logger
}

// NewExtractor creates an extraction core on top of a parser manager.
// A nil logger falls back to slog.Default().
func NewExtractor(pm *parser.Manager, opts Options, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Heuristics.APICalls == nil {
		opts.Heuristics = DefaultHeuristics()
	}
	if opts.Theme.Palette == nil {
		opts.Theme = DefaultTheme()
	}
	return &Extractor{
		parser: pm,
		heur:   opts.Heuristics,
		theme:  opts.Theme,
		logger: logger,
	}
}

// ExtractFile processes one source file: parse, locate candidates, evaluate,
// register classes with reg, and rewrite. The registry is reset first, so its
// accumulated text afterwards belongs to this file alone.
//
// Only a parse failure fails the file. Candidates that cannot be evaluated or
// rewritten are skipped individually; a file with zero rewritten candidates
// returns its source byte-identical with Success true.
func (e *Extractor) ExtractFile(filePath string, source []byte, reg *stylesheet.Registry) *FileResult {
	reg.Reset()

	result := &FileResult{
		FilePath: filePath,
		Code:     string(source),
	}

	tree, err := e.parser.ParseFile(source, filePath)
	if err != nil {
		result.Err = err.Error()
		return result
	}
	defer tree.Close()
	result.Success = true

	candidates := locateCandidates(tree.RootNode(), source, e.heur)
	if len(candidates) == 0 {
		return result
	}

	edits := &editList{}
	seenKeys := make(map[string]bool)

	for _, cand := range candidates {
		e.processCandidate(cand, source, reg, edits, seenKeys, result)
	}

	if !edits.empty() {
		result.Changed = true
		result.Code = string(edits.apply(source))
	}
	result.CSS = reg.Text()

	e.logger.Debug("extracted file",
		"file", filePath,
		"candidates", len(candidates),
		"classes", len(result.Classes),
		"changed", result.Changed)

	return result
}

// processCandidate handles one candidate under strict isolation: a panic
// while evaluating or rewriting leaves the candidate unmodified and moves on.
func (e *Extractor) processCandidate(cand Candidate, source []byte, reg *stylesheet.Registry, edits *editList, seenKeys map[string]bool, result *FileResult) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Warn("candidate rewrite failed, leaving site unmodified",
				"file", result.FilePath,
				"candidate", cand.Name,
				"kind", cand.Kind.String(),
				"error", r)
		}
	}()

	switch cand.Kind {
	case CandidateStyleFunction, CandidateClassMethod:
		e.processStyleFunction(cand, source, reg, edits, seenKeys, result)
	case CandidateAPICall:
		e.processAPICall(cand, source, reg, edits, seenKeys, result)
	}
}

func (e *Extractor) processStyleFunction(cand Candidate, source []byte, reg *stylesheet.Registry, edits *editList, seenKeys map[string]bool, result *FileResult) {
	slots := styleSlots(cand.Fn, source)
	if len(slots) == 0 {
		return
	}

	assignments := enumerateVariants(functionBody(cand.Fn), source, e.logger)

	var mapping []SlotClass
	candidateKeys := make(map[string]bool)
	for _, slot := range slots {
		for _, va := range assignments {
			ev := &evaluator{
				source: source,
				env:    NewEnvironment(va, e.theme),
				heur:   e.heur,
			}
			obj := flattenStyle(ev.evalStyleValue(slot.Expr))
			if obj == nil {
				continue
			}

			// First resolved mapping wins for a key; later variants that
			// collapse to the same key are not overwritten.
			key := variantKey(slot.Name, va)
			if candidateKeys[key] {
				continue
			}
			candidateKeys[key] = true

			cls := reg.ClassName(obj)
			if cls == "" {
				continue
			}
			mapping = append(mapping, SlotClass{Key: key, Class: cls})
		}
	}

	if len(mapping) == 0 {
		return
	}

	ed, err := styleFunctionEdit(cand.Fn, source, slots, mapping)
	if err != nil {
		e.logger.Debug("skipping candidate", "candidate", cand.Name, "error", err)
		return
	}
	if !edits.add(ed.start, ed.end, ed.text) {
		return
	}

	recordClasses(mapping, seenKeys, result)
}

func (e *Extractor) processAPICall(cand Candidate, source []byte, reg *stylesheet.Registry, edits *editList, seenKeys map[string]bool, result *FileResult) {
	args := cand.Call.ChildByFieldName("arguments")
	if args == nil {
		return
	}

	ev := &evaluator{
		source: source,
		env:    NewEnvironment(VariantAssignment{}, e.theme),
		heur:   e.heur,
	}

	switch cand.API {
	case APISingleClass:
		var fragments []any
		for i := uint(0); i < args.NamedChildCount(); i++ {
			if v := ev.evalStyleValue(args.NamedChild(i)); truthy(v) {
				fragments = append(fragments, v)
			}
		}
		obj := flattenStyle(fragments)
		if obj == nil {
			return
		}
		cls := reg.ClassName(obj)
		if cls == "" {
			return
		}
		if edits.add(cand.Call.StartByte(), cand.Call.EndByte(), callReplacementString(cls)) {
			key := cand.Binding
			if key == "" {
				key = "root"
			}
			recordClasses([]SlotClass{{Key: key, Class: cls}}, seenKeys, result)
		}

	case APIClassSet:
		order, set := e.evalStyleSet(ev, args)
		if len(order) == 0 {
			return
		}
		classes := make(map[string]string, len(set))
		var mapping []SlotClass
		for _, name := range order {
			cls := reg.ClassName(set[name])
			if cls == "" {
				continue
			}
			classes[name] = cls
			mapping = append(mapping, SlotClass{Key: name, Class: cls})
		}
		if len(mapping) == 0 {
			return
		}
		if edits.add(cand.Call.StartByte(), cand.Call.EndByte(), callReplacementSet(order, classes)) {
			recordClasses(mapping, seenKeys, result)
		}

	case APIFontFace:
		obj, _ := ev.eval(firstNamedChild(args)).(map[string]any)
		if len(obj) == 0 {
			return
		}
		family := reg.FontFace(obj)
		// Registration calls contribute CSS but no entry in the class list.
		edits.add(cand.Call.StartByte(), cand.Call.EndByte(), callReplacementString(family))

	case APIKeyframes:
		obj, _ := ev.eval(firstNamedChild(args)).(map[string]any)
		frames := make(map[string]map[string]any, len(obj))
		for k, v := range obj {
			if frame, ok := v.(map[string]any); ok {
				frames[k] = frame
			}
		}
		if len(frames) == 0 {
			return
		}
		name := reg.Keyframes(frames)
		edits.add(cand.Call.StartByte(), cand.Call.EndByte(), callReplacementString(name))
	}
}

// evalStyleSet evaluates the object-literal arguments of a set-producing API
// call, merging later arguments into earlier slots (concat semantics) while
// preserving first-seen slot order.
func (e *Extractor) evalStyleSet(ev *evaluator, args *ts.Node) ([]string, map[string]map[string]any) {
	var order []string
	set := make(map[string]map[string]any)

	for i := uint(0); i < args.NamedChildCount(); i++ {
		arg := unwrapExpression(args.NamedChild(i))
		if arg == nil || arg.Kind() != "object" {
			continue
		}
		for j := uint(0); j < arg.NamedChildCount(); j++ {
			pair := arg.NamedChild(j)
			if pair.Kind() != "pair" {
				continue
			}
			key := pair.ChildByFieldName("key")
			value := pair.ChildByFieldName("value")
			if key == nil || value == nil {
				continue
			}
			name := propertyKeyName(key, ev.source)
			if name == "" {
				continue
			}

			obj := flattenStyle(ev.evalStyleValue(value))
			if obj == nil {
				continue
			}
			if existing, ok := set[name]; ok {
				for k, v := range obj {
					existing[k] = v
				}
			} else {
				set[name] = obj
				order = append(order, name)
			}
		}
	}
	return order, set
}

func firstNamedChild(node *ts.Node) *ts.Node {
	if node == nil || node.NamedChildCount() == 0 {
		return nil
	}
	return node.NamedChild(0)
}

// recordClasses appends new slot keys to the file outcome, first-wins across
// the whole file.
func recordClasses(mapping []SlotClass, seenKeys map[string]bool, result *FileResult) {
	for _, m := range mapping {
		if seenKeys[m.Key] {
			continue
		}
		seenKeys[m.Key] = true
		result.Classes = append(result.Classes, m)
	}
}
