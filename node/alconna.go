package node

import "github.com/ArcletProject/Alconna/args"

// BuiltinKind names a reserved built-in option (spec.md §4.4 step 5).
type BuiltinKind string

const (
	BuiltinHelp       BuiltinKind = "help"
	BuiltinShortcut   BuiltinKind = "shortcut"
	BuiltinCompletion BuiltinKind = "completion"
)

// Meta holds per-command configuration (spec.md §6 "Configuration").
type Meta struct {
	Separators      string
	FuzzyMatch      bool
	Compact         bool
	Strict          bool
	Namespace       string
	DisableBuiltin  map[BuiltinKind]bool
	RaiseException  bool
	FoldCase        bool
	Version         string
	CachedInput     bool // enable the LRU parse cache (spec.md §4.4 "Caching")
}

// Alconna is the root of a command schema: Header + top-level Args +
// children + Meta (spec.md §3 "Alconna (C3, root)").
type Alconna struct {
	Header      *Header
	Args        *args.Args
	Options     []*Option
	Subcommands []*Subcommand
	Meta        Meta

	id string
}

// New builds an Alconna root. id is used as the cache/registry key
// (typically the command's canonical name).
func New(id string, header *Header, meta Meta) *Alconna {
	if meta.DisableBuiltin == nil {
		meta.DisableBuiltin = map[BuiltinKind]bool{}
	}
	return &Alconna{Header: header, Meta: meta, id: id}
}

// ID returns the command's registry/cache key.
func (a *Alconna) ID() string {
	if a.id != "" {
		return a.id
	}
	return a.Header.Name
}

// WithArgs attaches the top-level Args schema.
func (a *Alconna) WithArgs(args *args.Args) *Alconna {
	a.Args = args
	return a
}

// AddOption appends a top-level Option, checking for duplicate names.
func (a *Alconna) AddOption(o *Option) error {
	if err := checkDuplicate(a.optionNames(), a.subcommandNames(), o.Names()); err != nil {
		return err
	}
	a.Options = append(a.Options, o)
	return nil
}

// AddSubcommand appends a top-level Subcommand, checking for duplicate
// names.
func (a *Alconna) AddSubcommand(s *Subcommand) error {
	if err := checkDuplicate(a.optionNames(), a.subcommandNames(), s.Names()); err != nil {
		return err
	}
	a.Subcommands = append(a.Subcommands, s)
	return nil
}

func (a *Alconna) optionNames() []string {
	var out []string
	for _, o := range a.Options {
		out = append(out, o.Names()...)
	}
	return out
}

func (a *Alconna) subcommandNames() []string {
	var out []string
	for _, s := range a.Subcommands {
		out = append(out, s.Names()...)
	}
	return out
}

// BuiltinEnabled reports whether a reserved built-in option is active.
func (a *Alconna) BuiltinEnabled(kind BuiltinKind) bool {
	return !a.Meta.DisableBuiltin[kind]
}

// AllCommandNames returns every header name known (used by fuzzy-match
// candidate generation when the header carries a literal name).
func (a *Alconna) AllCommandNames() []string {
	return a.Header.Names()
}
