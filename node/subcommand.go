package node

import (
	"strings"

	"github.com/samber/lo"

	"github.com/ArcletProject/Alconna/args"
	"github.com/ArcletProject/Alconna/errs"
)

// Subcommand is an internal node: same fields as Option plus nested Options
// and nested Subcommands, recursive without depth bound (spec.md §3
// "Subcommand (C3)").
type Subcommand struct {
	Name       string
	Aliases    []string
	Sentence   *Sentence
	Args       *args.Args
	Action     Action
	Reducer    Reducer
	Store      any
	Priority   int
	Compact    bool
	Default    any
	HasDefault bool
	Help       string
	Separators string // "" inherits the parent scope's separators

	Options     []*Option
	Subcommands []*Subcommand
}

// NewSubcommand builds a Subcommand with the given primary name.
func NewSubcommand(name string) *Subcommand {
	return &Subcommand{Name: name}
}

func (s *Subcommand) WithAliases(aliases ...string) *Subcommand {
	s.Aliases = append(s.Aliases, aliases...)
	return s
}

func (s *Subcommand) WithArgs(a *args.Args) *Subcommand {
	s.Args = a
	return s
}

func (s *Subcommand) WithAction(action Action) *Subcommand {
	s.Action = action
	return s
}

func (s *Subcommand) WithSentence(sentence *Sentence) *Subcommand {
	s.Sentence = sentence
	return s
}

func (s *Subcommand) WithPriority(p int) *Subcommand {
	s.Priority = p
	return s
}

func (s *Subcommand) WithDefault(v any) *Subcommand {
	s.Default = v
	s.HasDefault = true
	return s
}

func (s *Subcommand) WithHelp(help string) *Subcommand {
	s.Help = help
	return s
}

func (s *Subcommand) WithSeparators(seps string) *Subcommand {
	s.Separators = seps
	return s
}

// AddOption appends a child Option, erroring on a duplicate name/alias
// against existing siblings (SPEC_FULL §7 "Option requires aliasing and
// duplicate detection").
func (s *Subcommand) AddOption(o *Option) error {
	if err := checkDuplicate(s.optionNames(), s.subcommandNames(), o.Names()); err != nil {
		return err
	}
	s.Options = append(s.Options, o)
	return nil
}

// AddSubcommand appends a nested Subcommand, with the same duplicate check.
func (s *Subcommand) AddSubcommand(child *Subcommand) error {
	if err := checkDuplicate(s.optionNames(), s.subcommandNames(), child.Names()); err != nil {
		return err
	}
	s.Subcommands = append(s.Subcommands, child)
	return nil
}

func (s *Subcommand) Names() []string {
	return append([]string{s.Name}, s.Aliases...)
}

func (s *Subcommand) optionNames() []string {
	var out []string
	for _, o := range s.Options {
		out = append(out, o.Names()...)
	}
	return out
}

func (s *Subcommand) subcommandNames() []string {
	var out []string
	for _, sc := range s.Subcommands {
		out = append(out, sc.Names()...)
	}
	return out
}

// Matches reports whether token equals the subcommand's name/alias,
// mirroring Option.Matches (spec.md §4.3 step 2).
func (s *Subcommand) Matches(token string, foldCase bool) (matchedName string, remainder string, ok bool) {
	norm := func(x string) string {
		if foldCase {
			return strings.ToLower(x)
		}
		return x
	}
	t := norm(token)
	for _, name := range s.Names() {
		n := norm(name)
		if t == n {
			return name, "", true
		}
		if s.Compact && strings.HasPrefix(t, n) && len(t) > len(n) {
			return name, token[len(n):], true
		}
	}
	return "", "", false
}

// checkDuplicate errors when newNames collides with any existing option or
// subcommand name in the same scope (SPEC_FULL §7).
func checkDuplicate(optionNames, subcommandNames, newNames []string) error {
	existing := append(append([]string{}, optionNames...), subcommandNames...)
	for _, n := range newNames {
		if lo.Contains(existing, n) {
			return errs.New(errs.InvalidParam).WithName(n).WithExpected("duplicate option/subcommand name in this scope")
		}
	}
	return nil
}
