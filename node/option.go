package node

import (
	"strings"

	"github.com/samber/lo"

	"github.com/ArcletProject/Alconna/args"
)

// Option is a leaf node: name + alias set + optional Sentence + Args +
// action + priority + compact flag + default result (spec.md §3 "Option
// (C3)").
type Option struct {
	Name     string
	Aliases  []string
	Sentence *Sentence
	Args     *args.Args
	Action   Action
	Reducer  Reducer
	Store    any // constant value used by ActionStoreValue
	Priority int
	Compact  bool
	Default  any
	HasDefault bool
	Help     string
	Hidden   bool
}

// NewOption builds an Option with the given primary name; zero or more
// aliases may be added with WithAliases.
func NewOption(name string) *Option {
	return &Option{Name: name}
}

// WithAliases returns o with additional aliases.
func (o *Option) WithAliases(aliases ...string) *Option {
	o.Aliases = append(o.Aliases, aliases...)
	return o
}

// WithArgs attaches an Args schema.
func (o *Option) WithArgs(a *args.Args) *Option {
	o.Args = a
	return o
}

// WithAction sets the Option's Action.
func (o *Option) WithAction(action Action) *Option {
	o.Action = action
	return o
}

// WithReducer sets a user-reducer, implying ActionFunc.
func (o *Option) WithReducer(r Reducer) *Option {
	o.Action = ActionFunc
	o.Reducer = r
	return o
}

// WithStoreValue sets the constant folded in by ActionStoreValue.
func (o *Option) WithStoreValue(v any) *Option {
	o.Action = ActionStoreValue
	o.Store = v
	return o
}

// WithSentence attaches a required literal prefix.
func (o *Option) WithSentence(s *Sentence) *Option {
	o.Sentence = s
	return o
}

// WithPriority sets the dispatch tie-break priority (spec.md §4.4 step 4).
func (o *Option) WithPriority(p int) *Option {
	o.Priority = p
	return o
}

// WithCompact marks the option eligible for name+first-arg concatenation
// (GLOSSARY "Compact matching").
func (o *Option) WithCompact(compact bool) *Option {
	o.Compact = compact
	return o
}

// WithDefault sets the OptionResult value used when the option is absent
// from the input but carries a default (spec.md §4.3 step 6).
func (o *Option) WithDefault(v any) *Option {
	o.Default = v
	o.HasDefault = true
	return o
}

// WithHelp sets the short help description.
func (o *Option) WithHelp(help string) *Option {
	o.Help = help
	return o
}

// Names returns the primary name plus every alias.
func (o *Option) Names() []string {
	return append([]string{o.Name}, o.Aliases...)
}

// Matches reports whether token equals the option's name or one of its
// aliases (spec.md §4.3 step 2), optionally case-folded. Compact options
// also match by longest-name-prefix, returning the matched name and the
// unconsumed remainder.
func (o *Option) Matches(token string, foldCase bool) (matchedName string, remainder string, ok bool) {
	norm := func(s string) string {
		if foldCase {
			return strings.ToLower(s)
		}
		return s
	}
	t := norm(token)
	for _, name := range o.Names() {
		n := norm(name)
		if t == n {
			return name, "", true
		}
		if o.Compact && strings.HasPrefix(t, n) && len(t) > len(n) {
			return name, token[len(n):], true
		}
	}
	return "", "", false
}

// HasName reports whether name or alias equals name exactly.
func (o *Option) HasName(name string) bool {
	return lo.Contains(o.Names(), name)
}
