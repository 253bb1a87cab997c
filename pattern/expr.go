package pattern

import (
	"reflect"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/ArcletProject/Alconna/argv"
)

// exprPattern converts a text token through an inner Pattern, then runs a
// compiled github.com/expr-lang/expr expression against the converted value
// as an additional validator (SPEC_FULL §6 "pattern.Expr"). The expression
// sees the candidate as `value`; it must evaluate to a bool.
type exprPattern struct {
	base
	inner   Pattern
	program *vm.Program
}

// Expr builds a Pattern that delegates conversion to inner, then runs expr
// (an expr-lang/expr expression referencing `value`) as a validator.
// Panics if expr fails to compile — schemas are built once at startup, so a
// bad expression is a programming error, not a runtime condition.
func Expr(inner Pattern, source string) Pattern {
	program, err := expr.Compile(source, expr.AllowUndefinedVariables())
	if err != nil {
		panic("pattern.Expr: " + err.Error())
	}
	return &exprPattern{
		base:    base{desc: inner.Describe() + " where " + source},
		inner:   inner,
		program: program,
	}
}

func (p *exprPattern) Origin() reflect.Type { return p.inner.Origin() }

func (p *exprPattern) Accept(tok argv.Token) (any, bool) {
	v, ok := p.inner.Accept(tok)
	if !ok {
		return finish(p, nil, false)
	}
	out, err := expr.Run(p.program, map[string]any{"value": v})
	if err != nil {
		return finish(p, nil, false)
	}
	passed, ok := out.(bool)
	if !ok || !passed {
		return finish(p, nil, false)
	}
	return finish(p, v, true)
}

func (p *exprPattern) withValidator(v Validator) Pattern {
	cp := *p
	cp.validators = p.withAppended(v)
	return &cp
}
