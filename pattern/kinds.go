package pattern

import (
	"reflect"
	"regexp"
	"strconv"

	"github.com/ArcletProject/Alconna/argv"
)

// Any accepts any token whatsoever, returning its raw value (spec.md §4.1
// "a wildcard accepting any token").
type anyPattern struct{ base }

func Any() Pattern {
	return &anyPattern{base: base{desc: "any"}}
}

func (p *anyPattern) Origin() reflect.Type { return reflect.TypeOf((*any)(nil)).Elem() }

func (p *anyPattern) Accept(tok argv.Token) (any, bool) {
	return finish(p, tok.Value(), true)
}

func (p *anyPattern) withValidator(v Validator) Pattern {
	cp := *p
	cp.validators = p.withAppended(v)
	return &cp
}

// Text accepts only string tokens, returning the string unchanged (spec.md
// §4.1 "a text pattern accepting only string tokens").
type textPattern struct{ base }

func Text() Pattern {
	return &textPattern{base: base{desc: "text"}}
}

func (p *textPattern) Origin() reflect.Type { return reflect.TypeOf("") }

func (p *textPattern) Accept(tok argv.Token) (any, bool) {
	if !tok.IsText {
		return finish(p, nil, false)
	}
	return finish(p, tok.Remaining(), true)
}

func (p *textPattern) withValidator(v Validator) Pattern {
	cp := *p
	cp.validators = p.withAppended(v)
	return &cp
}

// Value accepts only a token whose text equals the given constant
// (exact-equality, spec.md §4.1 "specific-value patterns").
type valuePattern struct {
	base
	want string
}

func Value(want string) Pattern {
	return &valuePattern{base: base{desc: "\"" + want + "\""}, want: want}
}

func (p *valuePattern) Origin() reflect.Type { return reflect.TypeOf("") }

func (p *valuePattern) Accept(tok argv.Token) (any, bool) {
	if !tok.IsText || tok.Remaining() != p.want {
		return finish(p, nil, false)
	}
	return finish(p, p.want, true)
}

func (p *valuePattern) withValidator(v Validator) Pattern {
	cp := *p
	cp.validators = p.withAppended(v)
	return &cp
}

// Regex accepts string tokens matching the compiled expression, returning
// the full match (or, if the expression has exactly one capture group, that
// group's text).
type regexPattern struct {
	base
	re *regexp.Regexp
}

func Regex(expr string) Pattern {
	re := regexp.MustCompile(expr)
	return &regexPattern{base: base{desc: "/" + expr + "/"}, re: re}
}

func (p *regexPattern) Origin() reflect.Type { return reflect.TypeOf("") }

func (p *regexPattern) Accept(tok argv.Token) (any, bool) {
	if !tok.IsText {
		return finish(p, nil, false)
	}
	s := tok.Remaining()
	m := p.re.FindStringSubmatch(s)
	if m == nil {
		return finish(p, nil, false)
	}
	if len(m) == 2 {
		return finish(p, m[1], true)
	}
	return finish(p, m[0], true)
}

func (p *regexPattern) withValidator(v Validator) Pattern {
	cp := *p
	cp.validators = p.withAppended(v)
	return &cp
}

// Union tries alternatives left-to-right; the first Ok wins (spec.md §4.1
// rule 3).
type unionPattern struct {
	base
	options []Pattern
}

func Union(options ...Pattern) Pattern {
	return &unionPattern{base: base{desc: unionDesc(options)}, options: options}
}

func unionDesc(options []Pattern) string {
	s := "one of ["
	for i, o := range options {
		if i > 0 {
			s += ", "
		}
		s += o.Describe()
	}
	return s + "]"
}

func (p *unionPattern) Origin() reflect.Type { return reflect.TypeOf((*any)(nil)).Elem() }

func (p *unionPattern) Accept(tok argv.Token) (any, bool) {
	for _, opt := range p.options {
		if v, ok := opt.Accept(tok); ok {
			return finish(p, v, true)
		}
	}
	return finish(p, nil, false)
}

func (p *unionPattern) withValidator(v Validator) Pattern {
	cp := *p
	cp.validators = p.withAppended(v)
	return &cp
}

// Anti inverts its wrapped pattern's result: Ok becomes Mismatch, and a
// Mismatch becomes Ok binding the raw token value (spec.md §4.1 rule 2,
// GLOSSARY "Anti-pattern").
type antiPattern struct {
	base
	inner Pattern
}

func Anti(inner Pattern) Pattern {
	return &antiPattern{base: base{desc: "not " + inner.Describe()}, inner: inner}
}

func (p *antiPattern) Origin() reflect.Type { return reflect.TypeOf((*any)(nil)).Elem() }

func (p *antiPattern) Accept(tok argv.Token) (any, bool) {
	if _, ok := p.inner.Accept(tok); ok {
		return finish(p, nil, false)
	}
	return finish(p, tok.Value(), true)
}

func (p *antiPattern) withValidator(v Validator) Pattern {
	cp := *p
	cp.validators = p.withAppended(v)
	return &cp
}

// Convert is a generic string-parse pattern converting a text token into T
// via fn (numeric/bool/bytes/path conversions, spec.md §4.1 rule 1).
type convertPattern[T any] struct {
	base
	fn func(string) (T, bool)
}

func Convert[T any](desc string, fn func(string) (T, bool)) Pattern {
	return &convertPattern[T]{base: base{desc: desc}, fn: fn}
}

func (p *convertPattern[T]) Origin() reflect.Type { return reflect.TypeOf((*T)(nil)).Elem() }

func (p *convertPattern[T]) Accept(tok argv.Token) (any, bool) {
	if tok.IsText {
		if v, ok := p.fn(tok.Remaining()); ok {
			return finish(p, v, true)
		}
		return finish(p, nil, false)
	}
	// non-string tokens only accept by exact origin-type match (spec.md
	// §4.1 rule 1).
	if v, ok := tok.Opaque.(T); ok {
		return finish(p, v, true)
	}
	return finish(p, nil, false)
}

func (p *convertPattern[T]) withValidator(v Validator) Pattern {
	cp := *p
	cp.validators = p.withAppended(v)
	return &cp
}

// Int, Float, Bool are the common Convert instantiations.
func Int() Pattern {
	return Convert[int64]("int", func(s string) (int64, bool) {
		v, err := strconv.ParseInt(s, 10, 64)
		return v, err == nil
	})
}

func Float() Pattern {
	return Convert[float64]("float", func(s string) (float64, bool) {
		v, err := strconv.ParseFloat(s, 64)
		return v, err == nil
	})
}

func Bool() Pattern {
	return Convert[bool]("bool", func(s string) (bool, bool) {
		v, err := strconv.ParseBool(s)
		return v, err == nil
	})
}

func Bytes() Pattern {
	return Convert[[]byte]("bytes", func(s string) ([]byte, bool) {
		return []byte(s), true
	})
}

// opaquePattern accepts only non-string tokens whose dynamic type equals
// origin, by equality or subtyping via reflect.Type.AssignableTo (spec.md
// §4.1 rule 1 "only patterns whose origin type matches").
type opaquePattern struct {
	base
	origin reflect.Type
}

func Opaque(origin reflect.Type) Pattern {
	return &opaquePattern{base: base{desc: origin.String()}, origin: origin}
}

func (p *opaquePattern) Origin() reflect.Type { return p.origin }

func (p *opaquePattern) Accept(tok argv.Token) (any, bool) {
	if tok.IsText {
		return finish(p, nil, false)
	}
	t := tok.Type()
	if t == nil || !t.AssignableTo(p.origin) {
		return finish(p, nil, false)
	}
	return finish(p, tok.Opaque, true)
}

func (p *opaquePattern) withValidator(v Validator) Pattern {
	cp := *p
	cp.validators = p.withAppended(v)
	return &cp
}

// Seq recursively applies an inner pattern to each element of a sequence
// token (a []any opaque value or a JSON-array-like text representation is
// out of scope here; Seq only operates on opaque []any tokens, spec.md §4.1
// "sequence ... patterns that recursively apply inner patterns").
type seqPattern struct {
	base
	inner Pattern
}

func Seq(inner Pattern) Pattern {
	return &seqPattern{base: base{desc: "[" + inner.Describe() + "]"}, inner: inner}
}

func (p *seqPattern) Origin() reflect.Type { return reflect.TypeOf([]any{}) }

func (p *seqPattern) Accept(tok argv.Token) (any, bool) {
	items, ok := tok.Value().([]any)
	if !ok {
		return finish(p, nil, false)
	}
	out := make([]any, 0, len(items))
	for _, item := range items {
		v, ok := p.inner.Accept(argv.NewOpaque(item))
		if !ok {
			if s, isStr := item.(string); isStr {
				v, ok = p.inner.Accept(argv.NewText(s))
			}
		}
		if !ok {
			return finish(p, nil, false)
		}
		out = append(out, v)
	}
	return finish(p, out, true)
}

func (p *seqPattern) withValidator(v Validator) Pattern {
	cp := *p
	cp.validators = p.withAppended(v)
	return &cp
}

// Map applies a value pattern to each value of an opaque map[string]any
// token; keys are not matched against any pattern (spec.md §4.1 "mapping
// patterns").
type mapPattern struct {
	base
	valueInner Pattern
}

func Map(valueInner Pattern) Pattern {
	return &mapPattern{base: base{desc: "map[string]" + valueInner.Describe()}, valueInner: valueInner}
}

func (p *mapPattern) Origin() reflect.Type { return reflect.TypeOf(map[string]any{}) }

func (p *mapPattern) Accept(tok argv.Token) (any, bool) {
	m, ok := tok.Value().(map[string]any)
	if !ok {
		return finish(p, nil, false)
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		cv, ok := p.valueInner.Accept(argv.NewOpaque(v))
		if !ok {
			if s, isStr := v.(string); isStr {
				cv, ok = p.valueInner.Accept(argv.NewText(s))
			}
		}
		if !ok {
			return finish(p, nil, false)
		}
		out[k] = cv
	}
	return finish(p, out, true)
}

func (p *mapPattern) withValidator(v Validator) Pattern {
	cp := *p
	cp.validators = p.withAppended(v)
	return &cp
}
