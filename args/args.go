// Package args implements Args schema matching (spec.md §3/§4.2 "Args
// (C2)").
package args

import (
	"github.com/samber/lo"

	"github.com/ArcletProject/Alconna/argv"
	"github.com/ArcletProject/Alconna/errs"
	"github.com/ArcletProject/Alconna/pattern"
)

// Flag is one of the Arg flag bits (GLOSSARY: optional/hidden/anti).
type Flag int

const (
	FlagNone Flag = 0
	FlagOpt Flag = 1 << (iota - 1)
	FlagHidden
	FlagAnti
)

// Arg is a single argument slot (spec.md §3 "Arg").
type Arg struct {
	Name      string
	Pattern   pattern.Pattern
	Flags     Flag
	Default   any
	HasDefault bool
	DefaultFn func() any
	Separator string // "" means inherit the scope's separators
	Notice    string
	Multi     *pattern.Multi
	Keyword   *pattern.Keyword
}

// Optional reports whether the slot may be skipped.
func (a Arg) Optional() bool { return a.Flags&FlagOpt != 0 }

// Hidden reports whether the slot is hidden from help rendering.
func (a Arg) Hidden() bool { return a.Flags&FlagHidden != 0 }

// Variadic reports whether the slot carries a multiplicity marker.
func (a Arg) Variadic() bool { return a.Multi != nil }

// IsKeyword reports whether the slot carries a keyword marker.
func (a Arg) IsKeyword() bool { return a.Keyword != nil }

// ResolveDefault returns the slot's default value, preferring DefaultFn.
func (a Arg) ResolveDefault() any {
	if a.DefaultFn != nil {
		return a.DefaultFn()
	}
	return a.Default
}

// New builds a required Arg.
func New(name string, p pattern.Pattern) Arg {
	return Arg{Name: name, Pattern: p}
}

// WithDefault marks the Arg optional with the given default value.
func (a Arg) WithDefault(def any) Arg {
	a.Flags |= FlagOpt
	a.Default = def
	a.HasDefault = true
	return a
}

// WithDefaultFn marks the Arg optional with a default factory.
func (a Arg) WithDefaultFn(fn func() any) Arg {
	a.Flags |= FlagOpt
	a.DefaultFn = fn
	a.HasDefault = true
	return a
}

// WithFlags ORs extra flags onto the Arg.
func (a Arg) WithFlags(f Flag) Arg {
	a.Flags |= f
	return a
}

// AsMulti marks the Arg variadic.
func (a Arg) AsMulti(min, max int, greedy bool) Arg {
	a.Multi = &pattern.Multi{Min: min, Max: max, Greedy: greedy}
	return a
}

// AsKeyword marks the Arg keyword, requiring key to precede the value.
func (a Arg) AsKeyword(key, sep string) Arg {
	if sep == "" {
		sep = "="
	}
	a.Keyword = &pattern.Keyword{Key: key, Sep: sep}
	return a
}

// Args is an ordered sequence of Arg slots (spec.md §3 "Args (C2)").
type Args struct {
	slots []Arg
}

// NewArgs builds an Args schema, enforcing the invariants of spec.md §3:
// at most one unnamed variadic Arg, at most one variadic-keyword Arg.
func NewArgs(slots ...Arg) (*Args, error) {
	variadicCount := 0
	variadicKeywordCount := 0
	for _, s := range slots {
		if s.Variadic() && !s.IsKeyword() {
			variadicCount++
		}
		if s.Variadic() && s.IsKeyword() {
			variadicKeywordCount++
		}
	}
	if variadicCount > 1 {
		return nil, errs.New(errs.InvalidParam).WithExpected("at most one unnamed variadic Arg is allowed")
	}
	if variadicKeywordCount > 1 {
		return nil, errs.New(errs.InvalidParam).WithExpected("at most one variadic-keyword Arg is allowed")
	}
	return &Args{slots: append([]Arg{}, slots...)}, nil
}

// MustNewArgs panics on a schema invariant violation; intended for use at
// package-init time when schemas are known-good literals.
func MustNewArgs(slots ...Arg) *Args {
	a, err := NewArgs(slots...)
	if err != nil {
		panic(err)
	}
	return a
}

// Slots returns the ordered Arg slots.
func (a *Args) Slots() []Arg {
	return a.slots
}

// Len returns the number of slots.
func (a *Args) Len() int { return len(a.slots) }

// Bindings is the output of Consume: name -> bound value.
type Bindings map[string]any

// Outcome discriminates Consume's possible end states (spec.md §4.2
// contract). Paused is an analyser-internal extension: it means a
// Reserved-named token stopped consumption before the schema was
// exhausted, and the same State may be handed back into ConsumeWith later
// to pick up where it left off (DESIGN.md "Args/node interleaving
// resumability").
type Outcome int

const (
	Completed Outcome = iota
	MoreNeeded
	Failed
	Paused
)

// ReservedCheck lets the caller (analyser) report tokens that name a
// sibling Option/Subcommand or an enabled built-in option, so consumption
// can pause there (Outcome Paused) and leave the token for the node level.
type ReservedCheck func(token string) bool

// ConsumeOptions configures a single Consume/ConsumeWith call.
type ConsumeOptions struct {
	Strict   bool
	Reserved ReservedCheck
}

// State is a resumable cursor over an Args schema's slots, letting the
// analyser interleave Args consumption with sibling Option/Subcommand
// matches across multiple ConsumeWith calls without losing already-bound
// slots (spec.md §4.4 step 4 "the dispatcher consults ... the current
// scope's Args" at each step, not just once per scope).
type State struct {
	slotIdx     int
	consumed    map[int]bool
	keywordPool map[int]Arg
}

// NewState builds a fresh State positioned at the first slot.
func (a *Args) NewState() *State {
	pool := make(map[int]Arg)
	for i, s := range a.slots {
		if s.IsKeyword() {
			pool[i] = s
		}
	}
	return &State{consumed: make(map[int]bool), keywordPool: pool}
}

// Consume runs a single self-contained pass over the whole schema,
// following spec.md §4.2's algorithm exactly. It is Consume(av, opts) ==
// ConsumeWith(a.NewState(), av, opts) — the convenience form for callers
// (a node's own Args, or tests) that never need to pause mid-schema.
func (a *Args) Consume(av *argv.Argv, opts ConsumeOptions) (Bindings, Outcome, []string, error) {
	return a.ConsumeWith(a.NewState(), av, opts)
}

// ConsumeWith advances st against av, matching as many slots as possible
// starting from wherever st left off. A Reserved-named token pauses
// consumption (Outcome Paused) instead of resolving trailing defaults, so
// the caller can match a node and call ConsumeWith again with the same
// st to continue. Stream exhaustion, or a strict-mode stop at a surplus
// token, resolves defaults and reports missing-required slots
// (Completed/MoreNeeded/Failed).
func (a *Args) ConsumeWith(st *State, av *argv.Argv, opts ConsumeOptions) (Bindings, Outcome, []string, error) {
	bindings := make(Bindings, len(a.slots))
	var extra []string

	advancePastConsumed := func() {
		for st.slotIdx < len(a.slots) && (st.consumed[st.slotIdx] || a.slots[st.slotIdx].IsKeyword()) {
			st.slotIdx++
		}
	}

	for !av.Done() {
		advancePastConsumed()

		tok, _ := av.Peek()

		// keyword routing: any unsatisfied keyword slot's literal key
		// prefixing this token (spec.md §4.2 step 2).
		if tok.IsText {
			if idx, rest, ok := matchKeyword(tok.Remaining(), st.keywordPool); ok {
				mark := av.Mark()
				av.Next()
				v, ok := st.keywordPool[idx].Pattern.Accept(argv.NewText(rest))
				if !ok {
					av.Reset(mark)
					return bindings, Failed, extra, errs.New(errs.ArgumentMissing).WithName(st.keywordPool[idx].Name)
				}
				bindings[st.keywordPool[idx].Name] = v
				st.consumed[idx] = true
				delete(st.keywordPool, idx)
				continue
			}
		}

		if st.slotIdx >= len(a.slots) {
			// no more positional slots: reserved-name early stop, else
			// strict/extra handling.
			if tok.IsText && opts.Reserved != nil && opts.Reserved(tok.Remaining()) {
				return bindings, Paused, extra, nil
			}
			if opts.Strict {
				break
			}
			t, _ := av.Next()
			extra = append(extra, stringOf(t))
			continue
		}

		slot := a.slots[st.slotIdx]

		if tok.IsText && opts.Reserved != nil && opts.Reserved(tok.Remaining()) && slot.Optional() {
			return bindings, Paused, extra, nil
		}

		if slot.Variadic() {
			n := 0
			for !av.Done() && (slot.Multi.Max <= 0 || n < slot.Multi.Max) {
				t, _ := av.Peek()
				if t.IsText && opts.Reserved != nil && opts.Reserved(t.Remaining()) {
					break
				}
				mark := av.Mark()
				v, ok := slot.Pattern.Accept(t)
				if !ok {
					av.Reset(mark)
					break
				}
				av.Next()
				list, _ := bindings[slot.Name].([]any)
				list = append(list, v)
				bindings[slot.Name] = list
				n++
			}
			if n < slot.Multi.Min {
				return bindings, Failed, extra, errs.New(errs.ParamsMissing).WithName(slot.Name)
			}
			st.consumed[st.slotIdx] = true
			st.slotIdx++
			continue
		}

		mark := av.Mark()
		v, ok := slot.Pattern.Accept(tok)
		if ok {
			av.Next()
			bindings[slot.Name] = v
			st.consumed[st.slotIdx] = true
			st.slotIdx++
			continue
		}
		av.Reset(mark)
		if slot.Optional() {
			bindings[slot.Name] = slot.ResolveDefault()
			st.consumed[st.slotIdx] = true
			st.slotIdx++
			continue
		}
		return bindings, Failed, extra, errs.New(errs.ParamsUnmatched).WithToken(stringOf(tok)).WithExpected(slot.Pattern.Describe())
	}

	// token stream exhausted for this scope: required slots remaining is an
	// error, optional slots remaining get defaults (spec.md §4.2 step 3).
	for i := st.slotIdx; i < len(a.slots); i++ {
		if st.consumed[i] || a.slots[i].IsKeyword() {
			continue
		}
		s := a.slots[i]
		if s.Optional() {
			bindings[s.Name] = s.ResolveDefault()
			st.consumed[i] = true
			continue
		}
		if s.Variadic() && s.Multi.Min == 0 {
			st.consumed[i] = true
			continue
		}
		return bindings, MoreNeeded, extra, errs.New(errs.ParamsMissing).WithName(s.Name)
	}
	for idx, s := range st.keywordPool {
		if s.Optional() {
			bindings[s.Name] = s.ResolveDefault()
			delete(st.keywordPool, idx)
			continue
		}
		return bindings, MoreNeeded, extra, errs.New(errs.ArgumentMissing).WithName(s.Name)
	}

	return bindings, Completed, extra, nil
}

func matchKeyword(text string, pool map[int]Arg) (idx int, rest string, ok bool) {
	for i, s := range pool {
		k, sep := s.Keyword.Key, s.Keyword.Sep
		if len(text) > len(k) && text[:len(k)] == k {
			after := text[len(k):]
			if sep != "" && len(after) >= len(sep) && after[:len(sep)] == sep {
				return i, after[len(sep):], true
			}
		}
		if text == k {
			return i, "", true
		}
	}
	return 0, "", false
}

func stringOf(t argv.Token) string {
	if t.IsText {
		return t.Remaining()
	}
	return ""
}

// Names returns the ordered slot names, useful for diagnostics.
func (a *Args) Names() []string {
	return lo.Map(a.slots, func(s Arg, _ int) string { return s.Name })
}
