// Package errs defines the discriminated error taxonomy shared by every
// component of an Alconna parse.
package errs

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Kind discriminates the fixed set of failure modes a parse can surface.
type Kind int

const (
	// HeaderMismatch means no prefix/name combination matched the input.
	HeaderMismatch Kind = iota + 1
	// FuzzySuggestion is a soft failure carrying a candidate command name.
	FuzzySuggestion
	// ParamsUnmatched means a token did not fit the current slot's pattern.
	ParamsUnmatched
	// ParamsMissing means a required slot ran out of input.
	ParamsMissing
	// ArgumentMissing means a keyword argument is missing its key.
	ArgumentMissing
	// InvalidParam means a validator refused an otherwise-accepted value.
	InvalidParam
	// AmbiguousPath is raised by query-time lookups only.
	AmbiguousPath
	// BehaviorError is raised by a post-parse behavior.
	BehaviorError
	// BuiltinAction carries output from help/shortcut/completion.
	BuiltinAction
)

func (k Kind) String() string {
	switch k {
	case HeaderMismatch:
		return "HeaderMismatch"
	case FuzzySuggestion:
		return "FuzzySuggestion"
	case ParamsUnmatched:
		return "ParamsUnmatched"
	case ParamsMissing:
		return "ParamsMissing"
	case ArgumentMissing:
		return "ArgumentMissing"
	case InvalidParam:
		return "InvalidParam"
	case AmbiguousPath:
		return "AmbiguousPath"
	case BehaviorError:
		return "BehaviorError"
	case BuiltinAction:
		return "BuiltinAction"
	default:
		return "Unknown"
	}
}

// Error is the single discriminated error type returned or recorded by every
// component. Candidate/Token/Expected/Name carry kind-specific detail; only
// the fields relevant to Kind are populated.
type Error struct {
	Kind      Kind
	Candidate string // FuzzySuggestion
	Token     string // ParamsUnmatched
	Expected  string // ParamsUnmatched, InvalidParam (pattern/reason description)
	Name      string // ParamsMissing, ArgumentMissing, InvalidParam, AmbiguousPath, BehaviorError
	cause     error
}

// New builds an Error of the given kind with no wrapped cause.
func New(kind Kind) *Error {
	return &Error{Kind: kind}
}

// WithName returns e with Name set, for chained construction.
func (e *Error) WithName(name string) *Error {
	e.Name = name
	return e
}

// WithToken returns e with Token set, for chained construction.
func (e *Error) WithToken(token string) *Error {
	e.Token = token
	return e
}

// WithExpected returns e with Expected set, for chained construction.
func (e *Error) WithExpected(expected string) *Error {
	e.Expected = expected
	return e
}

// WithCandidate returns e with Candidate set, for chained construction.
func (e *Error) WithCandidate(candidate string) *Error {
	e.Candidate = candidate
	return e
}

// Wrap builds an Error of the given kind wrapping cause for errors.Is/As
// chains via github.com/cockroachdb/errors.
func Wrap(kind Kind, cause error) *Error {
	return &Error{Kind: kind, cause: cause}
}

func (e *Error) Error() string {
	msg := e.message()
	if e.cause != nil {
		return fmt.Sprintf("%s: %s", msg, e.cause.Error())
	}
	return msg
}

func (e *Error) message() string {
	switch e.Kind {
	case HeaderMismatch:
		return "header mismatch"
	case FuzzySuggestion:
		return fmt.Sprintf("did you mean %q?", e.Candidate)
	case ParamsUnmatched:
		return fmt.Sprintf("token %q does not match %s", e.Token, e.Expected)
	case ParamsMissing:
		return fmt.Sprintf("missing required argument %q", e.Name)
	case ArgumentMissing:
		return fmt.Sprintf("missing keyword %q", e.Name)
	case InvalidParam:
		return fmt.Sprintf("invalid value for %q: %s", e.Name, e.Expected)
	case AmbiguousPath:
		return fmt.Sprintf("ambiguous path %q", e.Name)
	case BehaviorError:
		return fmt.Sprintf("behavior %q failed", e.Name)
	case BuiltinAction:
		return "builtin action"
	default:
		return "unknown error"
	}
}

// Unwrap exposes the wrapped cause, if any.
func (e *Error) Unwrap() error {
	return e.cause
}

// Is allows errors.Is(err, errs.New(kind)) comparisons by Kind alone.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// Annotatef wraps err with additional context using cockroachdb/errors,
// keeping the original error chain walkable.
func Annotatef(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return errors.Wrapf(err, format, args...)
}
