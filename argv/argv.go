// Package argv implements the stateful cursor over the input token stream
// (spec.md §3 "Argv", §4.4 "Ingest").
package argv

import "reflect"

// Preprocessor transforms an opaque token's value before matching begins.
type Preprocessor func(any) any

// Mark is an opaque snapshot of an Argv's cursor state, returned by Mark and
// consumed by Reset. Every failed match rewinds to the Mark taken at its
// entry; every successful match simply lets the cursor's new position stand
// (spec.md §3 invariant, §8 "Monotone cursor").
type Mark struct {
	cursor int
	tokens []Token
}

// Argv holds the original input, its tokenized view, the cursor, and the
// ingest-time configuration (separators, preprocessors, filter-out set).
type Argv struct {
	Original      any
	tokens        []Token
	cursor        int
	separators    string
	preprocessors map[reflect.Type]Preprocessor
	filterOut     map[reflect.Type]bool
}

// New builds an empty Argv using the given separator set (default
// whitespace when empty).
func New(separators string) *Argv {
	return &Argv{
		separators:    separators,
		preprocessors: map[reflect.Type]Preprocessor{},
		filterOut:     map[reflect.Type]bool{},
	}
}

// SetPreprocessor registers a type -> transform hook run during ingest.
func (a *Argv) SetPreprocessor(t reflect.Type, fn Preprocessor) {
	a.preprocessors[t] = fn
}

// SetFilterOut marks a type to be dropped entirely during ingest.
func (a *Argv) SetFilterOut(t reflect.Type) {
	a.filterOut[t] = true
}

// LoadString tokenizes a raw string input (spec.md §4.4 step 1).
func (a *Argv) LoadString(raw string) {
	a.Original = raw
	parts := Tokenize(raw, a.separators)
	tokens := make([]Token, 0, len(parts))
	for _, p := range parts {
		tokens = append(tokens, NewText(p))
	}
	a.tokens = tokens
	a.cursor = 0
}

// LoadSequence ingests a heterogeneous sequence: string elements are
// tokenized individually and flattened, non-string elements pass through
// unless filtered, and elements of a preprocessed type are transformed
// first (spec.md §4.4 step 1, §6 "Input").
func (a *Argv) LoadSequence(items []any) {
	a.Original = items
	var tokens []Token
	for _, item := range items {
		if s, ok := item.(string); ok {
			for _, p := range Tokenize(s, a.separators) {
				tokens = append(tokens, NewText(p))
			}
			continue
		}
		t := reflect.TypeOf(item)
		if a.filterOut[t] {
			continue
		}
		if pp, ok := a.preprocessors[t]; ok {
			item = pp(item)
			t = reflect.TypeOf(item)
		}
		tokens = append(tokens, NewOpaque(item))
	}
	a.tokens = tokens
	a.cursor = 0
}

// Separators returns the active separator set, defaulting to whitespace.
func (a *Argv) Separators() string {
	if a.separators == "" {
		return " \t"
	}
	return a.separators
}

// SetSeparators overrides the separator set for subsequent tokenizing (used
// when entering a subcommand scope that redefines separators, spec.md §4.4
// step 4 "the inner parse inherits the subcommand's separators").
func (a *Argv) SetSeparators(seps string) {
	a.separators = seps
}

// Done reports whether the cursor has exhausted the token stream.
func (a *Argv) Done() bool {
	return a.cursor >= len(a.tokens)
}

// Peek returns the token at the cursor without advancing it.
func (a *Argv) Peek() (Token, bool) {
	if a.Done() {
		return Token{}, false
	}
	return a.tokens[a.cursor], true
}

// Next returns the token at the cursor and advances it (commits).
func (a *Argv) Next() (Token, bool) {
	tok, ok := a.Peek()
	if !ok {
		return tok, false
	}
	a.cursor++
	return tok, true
}

// PushBackRemainder replaces the token at the cursor with the given
// remainder text without advancing the cursor, used by compact matching
// after a mid-token split (spec.md §4.3 step 3).
func (a *Argv) PushBackRemainder(remainder string) {
	if a.Done() {
		a.tokens = append(a.tokens, NewText(remainder))
		return
	}
	a.tokens[a.cursor] = NewText(remainder)
}

// InsertFront splices tokens at the cursor position, used by shortcut
// template expansion (spec.md §4.4 step 2).
func (a *Argv) InsertFront(newTokens []string) {
	toks := make([]Token, 0, len(newTokens))
	for _, s := range newTokens {
		toks = append(toks, NewText(s))
	}
	head := append([]Token{}, a.tokens[:a.cursor]...)
	tail := append([]Token{}, a.tokens[a.cursor:]...)
	a.tokens = append(append(head, toks...), tail...)
}

// Remaining returns every token still under the cursor, without consuming
// them.
func (a *Argv) Remaining() []Token {
	if a.Done() {
		return nil
	}
	out := make([]Token, len(a.tokens)-a.cursor)
	copy(out, a.tokens[a.cursor:])
	return out
}

// Cursor returns the raw cursor index, mainly for diagnostics/logging.
func (a *Argv) Cursor() int {
	return a.cursor
}

// Consumed returns every token already passed by the cursor, without
// affecting it — the counterpart to Remaining, used by completion sessions
// that need to reconstruct the text typed so far up to a trigger token.
func (a *Argv) Consumed() []Token {
	out := make([]Token, a.cursor)
	copy(out, a.tokens[:a.cursor])
	return out
}

// Mark snapshots the current cursor and token state.
func (a *Argv) Mark() Mark {
	snap := make([]Token, len(a.tokens))
	copy(snap, a.tokens)
	return Mark{cursor: a.cursor, tokens: snap}
}

// Reset restores a previously taken Mark, rewinding any commits made since.
func (a *Argv) Reset(m Mark) {
	a.cursor = m.cursor
	a.tokens = m.tokens
}
