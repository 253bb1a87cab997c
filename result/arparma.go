// Package result implements the Arparma output tree and its query API
// (spec.md §3/§4.6 "Arparma / Result (C6)").
package result

import (
	"strings"

	"github.com/samber/lo"

	"github.com/ArcletProject/Alconna/argv"
	"github.com/ArcletProject/Alconna/errs"
	"github.com/ArcletProject/Alconna/node"
)

// OptionResult is the accumulated value plus bound args for one matched
// Option (spec.md §3).
type OptionResult struct {
	Value any
	Args  map[string]any
}

// SubcommandResult is the accumulated value, bound args, and nested
// option/subcommand results for one matched Subcommand (spec.md §3).
type SubcommandResult struct {
	Value       any
	Args        map[string]any
	Options     map[string]*OptionResult
	Subcommands map[string]*SubcommandResult
}

func newSubcommandResult() *SubcommandResult {
	return &SubcommandResult{
		Args:        map[string]any{},
		Options:     map[string]*OptionResult{},
		Subcommands: map[string]*SubcommandResult{},
	}
}

// Arparma is the parse output tree rooted per spec.md §3.
type Arparma struct {
	HeadMatch   node.HeadResult
	Matched     bool
	MainArgs    map[string]any
	Options     map[string]*OptionResult
	Subcommands map[string]*SubcommandResult
	OtherArgs   map[string]any
	ErrorInfo   *errs.Error
	SourceInput *argv.Argv

	BuiltinKind   node.BuiltinKind
	BuiltinOutput string
}

// BindArg records a value bound at the top-level scope, implementing the
// analyser's generic sink interface.
func (r *Arparma) BindArg(name string, v any) { r.MainArgs[name] = v }

// Option satisfies the analyser's generic sink interface.
func (r *Arparma) Option(name string) *OptionResult { return r.EnsureOption(name) }

// Subcommand satisfies the analyser's generic sink interface.
func (r *Arparma) Subcommand(name string) *SubcommandResult { return r.EnsureSubcommand(name) }

// BindArg records a value bound within this subcommand's own Args scope.
func (s *SubcommandResult) BindArg(name string, v any) { s.Args[name] = v }

// Option satisfies the analyser's generic sink interface for nested scopes.
func (s *SubcommandResult) Option(name string) *OptionResult { return s.EnsureOption(name) }

// Subcommand satisfies the analyser's generic sink interface for nested
// scopes.
func (s *SubcommandResult) Subcommand(name string) *SubcommandResult { return s.EnsureSubcommand(name) }

// New builds an empty, unmatched Arparma bound to the given Argv snapshot.
func New(av *argv.Argv) *Arparma {
	return &Arparma{
		MainArgs:    map[string]any{},
		Options:     map[string]*OptionResult{},
		Subcommands: map[string]*SubcommandResult{},
		OtherArgs:   map[string]any{},
		SourceInput: av,
	}
}

// Fail marks the Arparma unmatched with the given error, per spec.md §7
// "the analyser does not throw unless raise_exception=true".
func (r *Arparma) Fail(err *errs.Error) *Arparma {
	r.Matched = false
	r.ErrorInfo = err
	return r
}

// Succeed marks the Arparma matched, clearing any prior error.
func (r *Arparma) Succeed() *Arparma {
	r.Matched = true
	r.ErrorInfo = nil
	return r
}

// FlattenOtherArgs collects every bound arg (main + nested options/
// subcommands) into OtherArgs, keyed by arg name (spec.md §3 "other_args:
// all bound args flattened").
func (r *Arparma) FlattenOtherArgs() {
	flat := map[string]any{}
	for k, v := range r.MainArgs {
		flat[k] = v
	}
	var walkOpt func(map[string]*OptionResult)
	walkOpt = func(opts map[string]*OptionResult) {
		for _, o := range opts {
			for k, v := range o.Args {
				flat[k] = v
			}
		}
	}
	var walkSub func(map[string]*SubcommandResult)
	walkSub = func(subs map[string]*SubcommandResult) {
		for _, s := range subs {
			for k, v := range s.Args {
				flat[k] = v
			}
			walkOpt(s.Options)
			walkSub(s.Subcommands)
		}
	}
	walkOpt(r.Options)
	walkSub(r.Subcommands)
	r.OtherArgs = flat
}

// Query walks a dotted path through subcommands/options into a bound value
// (spec.md §4.6). Ambiguous paths (the same segment name reachable via both
// an option and a subcommand at the same level) return an AmbiguousPath
// error unless prefixed with "options." or "subcommands.".
func (r *Arparma) Query(path string) (any, error) {
	if path == "" {
		return nil, nil
	}
	segs := strings.Split(path, ".")
	return queryTree(r.MainArgs, r.Options, r.Subcommands, segs)
}

// Find reports whether path resolves to a non-nil value; a missing path,
// or one bound to nil, reports false.
func (r *Arparma) Find(path string) bool {
	v, err := r.Query(path)
	return err == nil && v != nil
}

func queryTree(mainArgs map[string]any, opts map[string]*OptionResult, subs map[string]*SubcommandResult, segs []string) (any, error) {
	if len(segs) == 0 {
		return nil, nil
	}
	head := segs[0]
	rest := segs[1:]

	if head == "options" && len(rest) > 0 {
		return queryOption(opts, rest)
	}
	if head == "subcommands" && len(rest) > 0 {
		return querySubcommand(subs, rest)
	}

	if v, ok := mainArgs[head]; ok && len(rest) == 0 {
		return v, nil
	}

	_, inOpt := opts[head]
	_, inSub := subs[head]
	if inOpt && inSub {
		return nil, errs.New(errs.AmbiguousPath).WithName(head)
	}
	if inOpt {
		return queryOption(opts, segs)
	}
	if inSub {
		return querySubcommand(subs, segs)
	}
	return nil, nil
}

func queryOption(opts map[string]*OptionResult, segs []string) (any, error) {
	o, ok := opts[segs[0]]
	if !ok {
		return nil, nil
	}
	if len(segs) == 1 {
		return o.Value, nil
	}
	if segs[1] == "value" {
		return o.Value, nil
	}
	if segs[1] == "args" && len(segs) == 3 {
		return o.Args[segs[2]], nil
	}
	if v, ok := o.Args[segs[1]]; ok {
		return v, nil
	}
	return nil, nil
}

func querySubcommand(subs map[string]*SubcommandResult, segs []string) (any, error) {
	s, ok := subs[segs[0]]
	if !ok {
		return nil, nil
	}
	if len(segs) == 1 {
		return s.Value, nil
	}
	rest := segs[1:]
	if rest[0] == "value" {
		return s.Value, nil
	}
	if rest[0] == "args" && len(rest) == 2 {
		return s.Args[rest[1]], nil
	}
	if rest[0] == "options" || rest[0] == "subcommands" {
		return queryTree(nil, s.Options, s.Subcommands, rest)
	}
	if v, ok := s.Args[rest[0]]; ok {
		return v, nil
	}
	// fall through to nested option/subcommand by bare name
	return queryTree(nil, s.Options, s.Subcommands, rest)
}

// QueryTyped is an indexed typed query: the Nth bound value of type T
// irrespective of path (spec.md §4.6 "Indexed typed queries").
func QueryTyped[T any](r *Arparma, n int) (T, bool) {
	var zero T
	all := r.allValues()
	typed := lo.FilterMap(all, func(v any, _ int) (T, bool) {
		t, ok := v.(T)
		return t, ok
	})
	if n < 0 || n >= len(typed) {
		return zero, false
	}
	return typed[n], true
}

func (r *Arparma) allValues() []any {
	var out []any
	for _, v := range r.MainArgs {
		out = append(out, v)
	}
	var walkOpt func(map[string]*OptionResult)
	walkOpt = func(opts map[string]*OptionResult) {
		for _, o := range opts {
			out = append(out, o.Value)
			for _, v := range o.Args {
				out = append(out, v)
			}
		}
	}
	var walkSub func(map[string]*SubcommandResult)
	walkSub = func(subs map[string]*SubcommandResult) {
		for _, s := range subs {
			out = append(out, s.Value)
			for _, v := range s.Args {
				out = append(out, v)
			}
			walkOpt(s.Options)
			walkSub(s.Subcommands)
		}
	}
	walkOpt(r.Options)
	walkSub(r.Subcommands)
	return out
}

// EnsureOption returns (creating if absent) the OptionResult at name.
func (r *Arparma) EnsureOption(name string) *OptionResult {
	if o, ok := r.Options[name]; ok {
		return o
	}
	o := &OptionResult{Args: map[string]any{}}
	r.Options[name] = o
	return o
}

// EnsureSubcommand returns (creating if absent) the SubcommandResult at
// name.
func (r *Arparma) EnsureSubcommand(name string) *SubcommandResult {
	if s, ok := r.Subcommands[name]; ok {
		return s
	}
	s := newSubcommandResult()
	r.Subcommands[name] = s
	return s
}

// EnsureOption returns (creating if absent) the OptionResult at name
// nested under a SubcommandResult.
func (s *SubcommandResult) EnsureOption(name string) *OptionResult {
	if o, ok := s.Options[name]; ok {
		return o
	}
	o := &OptionResult{Args: map[string]any{}}
	s.Options[name] = o
	return o
}

// EnsureSubcommand returns (creating if absent) a nested SubcommandResult.
func (s *SubcommandResult) EnsureSubcommand(name string) *SubcommandResult {
	if child, ok := s.Subcommands[name]; ok {
		return child
	}
	child := newSubcommandResult()
	s.Subcommands[name] = child
	return child
}
