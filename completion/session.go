// Package completion offers speculative, non-binding lookahead over a
// command's node tree for interactive shells (DESIGN.md "completion"):
// given the text typed so far, what could come next.
package completion

import (
	"strings"

	"github.com/ArcletProject/Alconna/argv"
	"github.com/ArcletProject/Alconna/node"
)

// Session drives completion against one Alconna schema.
type Session struct {
	Alconna *node.Alconna
}

// New builds a Session for a.
func New(a *node.Alconna) *Session {
	return &Session{Alconna: a}
}

// Available returns every completion candidate for the token currently
// being typed at the end of partial, walking the node tree the same way
// the teacher's findCmdSuggestions reduces leading components before
// suggesting against the last one.
func (s *Session) Available(partial string) []Suggestion {
	foldCase := s.Alconna.Meta.FoldCase
	leading, prefix := splitTrailingToken(partial, s.Alconna.Meta.Separators)

	scope, ok := s.descend(node.Scope(s.Alconna), leading, foldCase)
	if !ok {
		return nil
	}
	return s.candidatesAt(scope, prefix, foldCase)
}

// Current returns the raw text of the token currently being completed
// (the last, possibly-empty, whitespace-delimited word of partial).
func (s *Session) Current(partial string) string {
	_, prefix := splitTrailingToken(partial, s.Alconna.Meta.Separators)
	return prefix
}

// Tab returns partial with its current token replaced by suggestion, the
// single-candidate acceptance step of an interactive completion loop.
func (s *Session) Tab(partial, suggestion string) string {
	leading, _ := splitTrailingToken(partial, s.Alconna.Meta.Separators)
	if len(leading) == 0 {
		return suggestion
	}
	return strings.Join(leading, " ") + " " + suggestion
}

// Enter finalizes partial unchanged; callers typically follow it with a
// normal Analyser.Parse call.
func (s *Session) Enter(partial string) string { return partial }

// descend walks scope through each leading token in order, matching an
// Option/Subcommand name at each step (spec.md §4.4 step 4's own
// dispatch order), skipping a header token consumed by the command's own
// Header at the first position.
func (s *Session) descend(scope node.Scope, leading []string, foldCase bool) (node.Scope, bool) {
	tokens := leading
	if a, ok := scope.(*node.Alconna); ok && len(tokens) > 0 {
		if headerMatchesText(a, tokens[0], foldCase) {
			tokens = tokens[1:]
		}
	}
	for _, tok := range tokens {
		next, matched := childScope(scope, tok, foldCase)
		if !matched {
			return nil, false
		}
		scope = next
	}
	return scope, true
}

func childScope(scope node.Scope, tok string, foldCase bool) (node.Scope, bool) {
	for _, sub := range scope.ChildSubcommands() {
		if _, _, ok := sub.Matches(tok, foldCase); ok {
			return sub, true
		}
	}
	for _, o := range scope.ChildOptions() {
		if _, _, ok := o.Matches(tok, foldCase); ok {
			// an Option's own Args, if any, do not open a new node scope;
			// completion stays in the enclosing scope, and candidatesAt
			// offers value suggestions only for that scope's Args slots.
			return scope, true
		}
	}
	return nil, false
}

func (s *Session) candidatesAt(scope node.Scope, prefix string, foldCase bool) []Suggestion {
	var out []Suggestion
	for _, o := range scope.ChildOptions() {
		if sug, ok := optionSuggestion(o, prefix, foldCase); ok {
			out = append(out, sug)
		}
	}
	for _, sub := range scope.ChildSubcommands() {
		if sug, ok := subcommandSuggestion(sub, prefix, foldCase); ok {
			out = append(out, sug)
		}
	}
	if a := scope.ScopeArgs(); a != nil {
		for _, slot := range a.Slots() {
			out = append(out, valueSuggestionsFor(slot.Name, prefix)...)
		}
	}
	return out
}

func headerMatchesText(a *node.Alconna, tok string, foldCase bool) bool {
	av := argv.New(a.Meta.Separators)
	av.LoadString(tok)
	return a.Header.Match(av).Matched
}

// splitTrailingToken splits raw on its separators into (leading tokens,
// the token still being typed). A trailing separator means the previous
// token is already complete, so the in-progress token is empty.
func splitTrailingToken(raw, seps string) ([]string, string) {
	if seps == "" {
		seps = " "
	}
	fields := strings.FieldsFunc(raw, func(r rune) bool { return strings.ContainsRune(seps, r) })
	if len(fields) == 0 {
		return nil, ""
	}
	lastSep := len(raw) > 0 && strings.ContainsRune(seps, rune(raw[len(raw)-1]))
	if lastSep {
		return fields, ""
	}
	return fields[:len(fields)-1], fields[len(fields)-1]
}
