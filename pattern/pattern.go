// Package pattern implements Alconna's typed value predicates and
// converters (spec.md §3/§4.1 "Pattern (C1)").
package pattern

import (
	"reflect"

	"github.com/ArcletProject/Alconna/argv"
)

// Validator runs after acceptance; a failing validator converts a match to
// a mismatch (spec.md §4.1 rule 4). The returned reason is not used by
// this package.
type Validator func(value any) (ok bool, reason string)

// Multi marks an Arg's Pattern as variadic, with an optional count bound and
// greedy/lazy consumption (spec.md §3 "Arg").
type Multi struct {
	Min, Max int // Max <= 0 means unbounded
	Greedy   bool
}

// Keyword marks an Arg's Pattern as keyword, requiring a literal key to
// precede the value (spec.md §3 "Arg").
type Keyword struct {
	Key string
	Sep string // key/value separator, defaults to "="
}

// Pattern is the immutable value-matching contract (spec.md §4.1).
type Pattern interface {
	// Accept attempts to convert tok to this pattern's target type.
	Accept(tok argv.Token) (value any, ok bool)
	// Origin returns the pattern's target type, used for reflection and
	// error reporting.
	Origin() reflect.Type
	// Validators returns the post-acceptance validator chain.
	Validators() []Validator
	// Describe returns a short human-readable description for error
	// messages (e.g. "int", "one of [a, b, c]").
	Describe() string
	// withValidator returns a copy of the concrete pattern with v appended
	// to its validator chain. Unexported so every implementation lives in
	// this package, where each concrete kind knows how to copy itself.
	withValidator(v Validator) Pattern
}

// base carries the validator chain shared by every concrete Pattern kind.
type base struct {
	validators []Validator
	desc       string
}

func (b base) Validators() []Validator { return b.validators }
func (b base) Describe() string        { return b.desc }

func (b base) withAppended(v Validator) []Validator {
	return append(append([]Validator{}, b.validators...), v)
}

// WithValidator returns a copy of p with an additional validator appended.
// Patterns are immutable after construction, so this always returns a new
// value rather than mutating p in place.
func WithValidator(p Pattern, v Validator) Pattern {
	return p.withValidator(v)
}

// runValidators applies p's validator chain after a successful accept,
// converting Ok to Mismatch on the first failing validator (spec.md §4.1
// rule 4).
func runValidators(p Pattern, value any) (any, bool) {
	for _, v := range p.Validators() {
		if ok, _ := v(value); !ok {
			return nil, false
		}
	}
	return value, true
}

// finish applies p's validator chain to a raw-accepted value; every
// concrete kind's Accept method ends by calling this.
func finish(p Pattern, value any, ok bool) (any, bool) {
	if !ok {
		return nil, false
	}
	return runValidators(p, value)
}
