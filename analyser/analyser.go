// Package analyser implements the top-level parse driver (C5): ingest,
// shortcut expansion, header match, body match, built-in options,
// behaviors, and callback dispatch (spec.md §4.4).
package analyser

import (
	"strings"

	"go.uber.org/zap"

	"github.com/ArcletProject/Alconna/argv"
	"github.com/ArcletProject/Alconna/errs"
	"github.com/ArcletProject/Alconna/fuzzy"
	"github.com/ArcletProject/Alconna/history"
	"github.com/ArcletProject/Alconna/i18n"
	"github.com/ArcletProject/Alconna/node"
	"github.com/ArcletProject/Alconna/registry"
	"github.com/ArcletProject/Alconna/result"
	"github.com/ArcletProject/Alconna/shortcut"
)

// Executor is a bound callback invoked after a successful parse, with the
// flattened positional+keyword bindings (spec.md §4.4 step 7).
type Executor func(arp *result.Arparma) error

// Analyser binds one Alconna schema to its external collaborators: the
// shortcut table, the fuzzy-match threshold, the message table, the
// shared registry (for caching), and any registered behaviors/executors
// (spec.md §4.4, §6 "External Interfaces").
type Analyser struct {
	Alconna         *node.Alconna
	Shortcuts       *shortcut.Store
	FuzzyThreshold  float64
	I18n            *i18n.Table
	Registry        *registry.Registry
	Behaviors       []Behavior
	Executors       []Executor
	History         *history.Log
	KnownCommandIDs []string // used for header FuzzySuggestion candidates
	Logger          *zap.SugaredLogger
}

// New builds an Analyser for a, with an empty shortcut store and the
// default message table.
func New(a *node.Alconna) *Analyser {
	return &Analyser{
		Alconna:        a,
		Shortcuts:      shortcut.NewStore(),
		FuzzyThreshold: 0.5,
		I18n:           i18n.Default(),
		Logger:         zap.NewNop().Sugar(),
	}
}

// log returns an always-usable logger, falling back to a no-op sink when
// the caller never set one.
func (an *Analyser) log() *zap.SugaredLogger {
	if an.Logger == nil {
		return zap.NewNop().Sugar()
	}
	return an.Logger
}

// Parse runs the full pipeline against a raw string input (spec.md §4.4).
func (an *Analyser) Parse(raw string) *result.Arparma {
	if an.Alconna.Meta.CachedInput && an.Registry != nil {
		v, err, hit := an.Registry.FetchOrCompute(an.Alconna.ID(), raw, func() (any, error) {
			return an.parseUncached(raw), nil
		})
		an.log().Debugw("cache lookup", "command", an.Alconna.ID(), "hit", hit)
		if err == nil {
			if arp, ok := v.(*result.Arparma); ok {
				return arp
			}
		}
	}
	return an.parseUncached(raw)
}

// ParseSequence runs header match, body match, behaviors and executors
// against a heterogeneous token sequence (spec.md §6 "Input"). Unlike
// Parse, it does not expand shortcuts, consult the registry cache or
// record history.
func (an *Analyser) ParseSequence(items []any) *result.Arparma {
	av := argv.New(an.Alconna.Meta.Separators)
	av.LoadSequence(items)
	return an.run(av)
}

func (an *Analyser) parseUncached(raw string) *result.Arparma {
	av := argv.New(an.Alconna.Meta.Separators)
	av.LoadString(raw)
	an.expandShortcut(av)
	arp := an.run(av)
	if an.History != nil {
		an.History.Record(an.Alconna.ID(), raw, arp.Matched)
	}
	return arp
}

// expandShortcut consults the shortcut table before header matching,
// splicing the matched template into av's token stream (spec.md §4.4
// step 2).
func (an *Analyser) expandShortcut(av *argv.Argv) {
	if an.Shortcuts == nil {
		return
	}
	leading := collectRemainingTexts(av)
	sc, consumed, ok := an.Shortcuts.Match(an.Alconna.ID(), leading)
	if !ok {
		return
	}
	remainder := leading[consumed:]
	expanded := argv.Tokenize(strings.Join(shortcut.Expand(sc.Template, remainder, av.Separators()), " "), av.Separators())

	for i := 0; i < len(leading); i++ {
		av.Next()
	}
	av.InsertFront(expanded)
}

func (an *Analyser) run(av *argv.Argv) *result.Arparma {
	arp := result.New(av)

	head := an.Alconna.Header.Match(av)
	arp.HeadMatch = head
	an.log().Debugw("header match attempt", "command", an.Alconna.ID(), "matched", head.Matched)
	if !head.Matched {
		if an.Alconna.Meta.FuzzyMatch {
			leading, hasLeading := av.Peek()
			if hasLeading && leading.IsText {
				if candidate, found := fuzzy.Suggest(leading.Remaining(), an.candidateNames(), an.FuzzyThreshold); found {
					an.log().Debugw("fuzzy suggestion", "command", an.Alconna.ID(), "candidate", candidate)
					return arp.Fail(errs.New(errs.FuzzySuggestion).WithCandidate(candidate))
				}
			}
		}
		return arp.Fail(errs.New(errs.HeaderMismatch))
	}

	if err := an.matchScope(av, an.Alconna, arp, an.Alconna.Meta); err != nil {
		return arp.Fail(err)
	}

	if arp.BuiltinKind != "" {
		return arp.Succeed()
	}

	arp.Succeed()
	arp.FlattenOtherArgs()
	RunBehaviors(arp, an.Behaviors)
	if !arp.Matched {
		return arp
	}

	for _, exec := range an.Executors {
		if err := exec(arp); err != nil {
			return arp.Fail(errs.New(errs.BehaviorError).WithName("executor"))
		}
	}
	return arp
}

func (an *Analyser) candidateNames() []string {
	if len(an.KnownCommandIDs) > 0 {
		return an.KnownCommandIDs
	}
	return an.Alconna.AllCommandNames()
}
