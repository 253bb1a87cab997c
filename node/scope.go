package node

import "github.com/ArcletProject/Alconna/args"

// Scope is the common shape the analyser's dispatch loop walks: something
// that owns child Options, child Subcommands, and its own Args (spec.md
// §4.4 step 4 "Body match"). *Alconna and *Subcommand both implement it.
type Scope interface {
	ChildOptions() []*Option
	ChildSubcommands() []*Subcommand
	ScopeArgs() *args.Args
	ScopeSeparators() string
}

func (a *Alconna) ChildOptions() []*Option           { return a.Options }
func (a *Alconna) ChildSubcommands() []*Subcommand    { return a.Subcommands }
func (a *Alconna) ScopeArgs() *args.Args              { return a.Args }
func (a *Alconna) ScopeSeparators() string            { return a.Meta.Separators }

func (s *Subcommand) ChildOptions() []*Option        { return s.Options }
func (s *Subcommand) ChildSubcommands() []*Subcommand { return s.Subcommands }
func (s *Subcommand) ScopeArgs() *args.Args           { return s.Args }
func (s *Subcommand) ScopeSeparators() string         { return s.Separators }
