package analyser

import (
	"sort"
	"strings"

	"github.com/ArcletProject/Alconna/args"
	"github.com/ArcletProject/Alconna/argv"
	"github.com/ArcletProject/Alconna/errs"
	"github.com/ArcletProject/Alconna/node"
	"github.com/ArcletProject/Alconna/result"
)

type candidateKind int

const (
	kindNone candidateKind = iota
	kindOption
	kindSubcommand
)

type candidate struct {
	kind        candidateKind
	option      *node.Option
	subcommand  *node.Subcommand
	hasSentence bool
	priority    int
	order       int
}

// tryOption reports, without any lasting cursor effect, whether o's
// Sentence (if any) and name/alias would match at av's current position
// (spec.md §4.3 steps 1-2).
func tryOption(av *argv.Argv, o *node.Option, foldCase bool) bool {
	mark := av.Mark()
	defer av.Reset(mark)
	if !o.Sentence.Match(av) {
		return false
	}
	tok, ok := av.Peek()
	if !ok || !tok.IsText {
		return false
	}
	_, _, matched := o.Matches(tok.Remaining(), foldCase)
	return matched
}

func trySubcommand(av *argv.Argv, s *node.Subcommand, foldCase bool) bool {
	mark := av.Mark()
	defer av.Reset(mark)
	if !s.Sentence.Match(av) {
		return false
	}
	tok, ok := av.Peek()
	if !ok || !tok.IsText {
		return false
	}
	_, _, matched := s.Matches(tok.Remaining(), foldCase)
	return matched
}

// pickCandidate implements spec.md §4.4 step 4's tie-breaking: Sentence-
// prefixed nodes outrank bare nodes, then higher priority, then definition
// order, considering options before subcommands only as a stable sort key
// (options and subcommands otherwise compete on equal footing per the
// dispatcher's three-candidate-set contract).
func pickCandidate(av *argv.Argv, scope node.Scope, matchedOnce map[any]bool, foldCase bool) candidate {
	var cands []candidate
	for i, o := range scope.ChildOptions() {
		if matchedOnce[o] && !o.Action.Repeatable() {
			continue
		}
		if tryOption(av, o, foldCase) {
			cands = append(cands, candidate{kind: kindOption, option: o, hasSentence: o.Sentence.Len() > 0, priority: o.Priority, order: i})
		}
	}
	base := len(scope.ChildOptions())
	for i, s := range scope.ChildSubcommands() {
		if matchedOnce[s] && !s.Action.Repeatable() {
			continue
		}
		if trySubcommand(av, s, foldCase) {
			cands = append(cands, candidate{kind: kindSubcommand, subcommand: s, hasSentence: s.Sentence.Len() > 0, priority: s.Priority, order: base + i})
		}
	}
	if len(cands) == 0 {
		return candidate{kind: kindNone}
	}
	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].hasSentence != cands[j].hasSentence {
			return cands[i].hasSentence
		}
		if cands[i].priority != cands[j].priority {
			return cands[i].priority > cands[j].priority
		}
		return cands[i].order < cands[j].order
	})
	return cands[0]
}

// consumeMatchedToken commits o/s's Sentence and name/alias tokens,
// splitting a compact suffix back onto the cursor when one remains
// (spec.md §4.3 step 3 "mid-token split"), the same pattern as
// node/header.go's Header.Match prefix handling.
func consumeMatchedToken(av *argv.Argv, sentence *node.Sentence, matchName func(string, bool) (string, string, bool), foldCase bool) {
	sentence.Match(av)
	tok, _ := av.Peek()
	_, remainder, _ := matchName(tok.Remaining(), foldCase)
	if remainder != "" {
		av.PushBackRemainder(remainder)
	} else {
		av.Next()
	}
}

func tokenText(tok argv.Token) string {
	if tok.IsText {
		return tok.Remaining()
	}
	return ""
}

// matchOptionNode consumes o and its own Args, folding the result into
// sink (spec.md §4.3 steps 3-5).
func (an *Analyser) matchOptionNode(av *argv.Argv, o *node.Option, s sink, meta node.Meta) *errs.Error {
	consumeMatchedToken(av, o.Sentence, o.Matches, meta.FoldCase)

	or := s.Option(strings.TrimLeft(o.Name, "-"))
	bindings, extraErr := an.consumeNodeArgs(av, o.Args, or.Args, meta, nil)
	if extraErr != nil {
		return extraErr
	}
	for k, v := range bindings {
		or.Args[k] = v
	}
	or.Value = node.Reduce(o.Action, or.Value, true, o.Store, o.Reducer)
	return nil
}

// matchSubcommandNode pushes a new scope for s, recursing the dispatch
// loop with the subcommand's own separators (spec.md §4.4 step 4 "the
// inner parse inherits the subcommand's separators").
func (an *Analyser) matchSubcommandNode(av *argv.Argv, sub *node.Subcommand, sk sink, meta node.Meta) *errs.Error {
	consumeMatchedToken(av, sub.Sentence, sub.Matches, meta.FoldCase)

	sr := sk.Subcommand(sub.Name)
	prevSeps := av.Separators()
	if sub.Separators != "" {
		av.SetSeparators(sub.Separators)
	}
	err := an.matchScope(av, sub, sr, meta)
	av.SetSeparators(prevSeps)
	if err != nil {
		return err
	}
	sr.Value = node.Reduce(sub.Action, sr.Value, true, sub.Store, sub.Reducer)
	return nil
}

// consumeNodeArgs runs a single self-contained Args.Consume against av for
// a node's own Args (an Option or Subcommand's private schema, parsed in
// one pass right after its name token, spec.md §4.3 step 4 "recurse into
// the node's Args"), merging any "$extra" leftovers under the sentinel key
// when the schema is non-strict (spec.md §4.2 step 4). A nil schema
// consumes nothing and always succeeds.
func (an *Analyser) consumeNodeArgs(av *argv.Argv, a *args.Args, dst map[string]any, meta node.Meta, reserved args.ReservedCheck) (args.Bindings, *errs.Error) {
	if a == nil {
		return nil, nil
	}
	bindings, _, extra, err := a.Consume(av, args.ConsumeOptions{Strict: meta.Strict, Reserved: reserved})
	if err != nil {
		e, _ := err.(*errs.Error)
		if e == nil {
			e = errs.New(errs.ParamsUnmatched)
		}
		return nil, e
	}
	if len(extra) > 0 {
		dst["$extra"] = extra
	}
	return bindings, nil
}

// consumeScopeArgs advances a scope's own Args against av using a State
// that persists across the dispatch loop's iterations (spec.md §4.4 step 4:
// the scope's Args is one of three candidate sets consulted "at each
// step", not just once per scope). A Paused outcome means a sibling
// Option/Subcommand name stopped consumption early; the caller is expected
// to loop back, match that node, and call this again with the same st to
// resume from the slot it left off at.
func (an *Analyser) consumeScopeArgs(av *argv.Argv, a *args.Args, st *args.State, dst map[string]any, meta node.Meta, reserved args.ReservedCheck) (args.Outcome, *errs.Error) {
	bindings, outcome, extra, err := a.ConsumeWith(st, av, args.ConsumeOptions{Strict: meta.Strict, Reserved: reserved})
	if err != nil {
		e, _ := err.(*errs.Error)
		if e == nil {
			e = errs.New(errs.ParamsUnmatched)
		}
		return outcome, e
	}
	for k, v := range bindings {
		dst[k] = v
	}
	if len(extra) > 0 {
		existing, _ := dst["$extra"].([]string)
		dst["$extra"] = append(existing, extra...)
	}
	return outcome, nil
}

// matchScope drives the body-match dispatch loop for one scope (spec.md
// §4.4 step 4): at each step it tries the scope's own Options and
// Subcommands, falling back to the scope's Args, until the cursor is
// exhausted or no progress can be made. The scope's Args cursor (st) is
// shared across every pass through the loop so a match interleaved between
// two partial Args consumptions never re-examines an already-bound slot.
func (an *Analyser) matchScope(av *argv.Argv, scope node.Scope, sk sink, meta node.Meta) *errs.Error {
	matchedOnce := map[any]bool{}

	reserved := func(token string) bool {
		for _, o := range scope.ChildOptions() {
			if _, _, ok := o.Matches(token, meta.FoldCase); ok {
				return true
			}
		}
		for _, s := range scope.ChildSubcommands() {
			if _, _, ok := s.Matches(token, meta.FoldCase); ok {
				return true
			}
		}
		return an.isBuiltinToken(token, meta)
	}

	_, isRoot := scope.(*node.Alconna)

	a := scope.ScopeArgs()
	var argsState *args.State
	if a != nil {
		argsState = a.NewState()
	}
	var dst map[string]any
	switch v := sk.(type) {
	case *result.Arparma:
		dst = v.MainArgs
	case *result.SubcommandResult:
		dst = v.Args
	}

	for !av.Done() {
		if isRoot {
			if handled := an.tryBuiltin(av, sk, meta); handled {
				return nil
			}
		}

		beforeIter := av.Cursor()

		cand := pickCandidate(av, scope, matchedOnce, meta.FoldCase)
		switch cand.kind {
		case kindOption:
			an.log().Debugw("dispatch candidate selected", "kind", "option", "name", cand.option.Name)
			if err := an.matchOptionNode(av, cand.option, sk, meta); err != nil {
				return err
			}
			matchedOnce[cand.option] = true
			continue
		case kindSubcommand:
			an.log().Debugw("dispatch candidate selected", "kind", "subcommand", "name", cand.subcommand.Name)
			if err := an.matchSubcommandNode(av, cand.subcommand, sk, meta); err != nil {
				return err
			}
			matchedOnce[cand.subcommand] = true
			continue
		}

		if a == nil {
			tok, _ := av.Peek()
			return errs.New(errs.ParamsUnmatched).WithToken(tokenText(tok))
		}
		if _, err := an.consumeScopeArgs(av, a, argsState, dst, meta, reserved); err != nil {
			return err
		}
		if av.Cursor() == beforeIter {
			tok, _ := av.Peek()
			return errs.New(errs.ParamsUnmatched).WithToken(tokenText(tok))
		}
	}

	if a != nil {
		if _, err := an.consumeScopeArgs(av, a, argsState, dst, meta, reserved); err != nil {
			return err
		}
	}

	applyDefaults(scope, sk, matchedOnce)
	return nil
}

func applyDefaults(scope node.Scope, sk sink, matchedOnce map[any]bool) {
	for _, o := range scope.ChildOptions() {
		if matchedOnce[o] || !o.HasDefault {
			continue
		}
		sk.Option(strings.TrimLeft(o.Name, "-")).Value = o.Default
	}
	for _, s := range scope.ChildSubcommands() {
		if matchedOnce[s] || !s.HasDefault {
			continue
		}
		sk.Subcommand(s.Name).Value = s.Default
	}
}
