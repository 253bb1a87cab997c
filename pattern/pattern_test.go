package pattern

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ArcletProject/Alconna/argv"
)

func TestTextAcceptsOnlyStrings(t *testing.T) {
	p := Text()
	v, ok := p.Accept(argv.NewText("hello"))
	assert.True(t, ok)
	assert.Equal(t, "hello", v)

	_, ok = p.Accept(argv.NewOpaque(42))
	assert.False(t, ok)
}

func TestIntConvert(t *testing.T) {
	p := Int()
	v, ok := p.Accept(argv.NewText("42"))
	assert.True(t, ok)
	assert.Equal(t, int64(42), v)

	_, ok = p.Accept(argv.NewText("not-a-number"))
	assert.False(t, ok)
}

func TestUnionFirstHitWins(t *testing.T) {
	p := Union(Value("a"), Value("b"))
	v, ok := p.Accept(argv.NewText("b"))
	assert.True(t, ok)
	assert.Equal(t, "b", v)

	_, ok = p.Accept(argv.NewText("c"))
	assert.False(t, ok)
}

func TestAntiInvertsAndBindsRaw(t *testing.T) {
	p := Anti(Value("forbidden"))
	v, ok := p.Accept(argv.NewText("allowed"))
	assert.True(t, ok)
	assert.Equal(t, "allowed", v)

	_, ok = p.Accept(argv.NewText("forbidden"))
	assert.False(t, ok)
}

func TestValidatorRejectsAfterAccept(t *testing.T) {
	p := WithValidator(Int(), func(v any) (bool, string) {
		n := v.(int64)
		if n < 0 {
			return false, "must be non-negative"
		}
		return true, ""
	})
	_, ok := p.Accept(argv.NewText("5"))
	assert.True(t, ok)
	_, ok = p.Accept(argv.NewText("-5"))
	assert.False(t, ok)
}

func TestExprPattern(t *testing.T) {
	p := Expr(Int(), "value > 0 && value < 100")
	_, ok := p.Accept(argv.NewText("50"))
	assert.True(t, ok)
	_, ok = p.Accept(argv.NewText("500"))
	assert.False(t, ok)
}

type testPath struct{ P string }

func TestOpaqueOriginMatch(t *testing.T) {
	p := Opaque(reflect.TypeOf(testPath{}))
	v, ok := p.Accept(argv.NewOpaque(testPath{P: "x.py"}))
	assert.True(t, ok)
	assert.Equal(t, testPath{P: "x.py"}, v)

	_, ok = p.Accept(argv.NewText("x.py"))
	assert.False(t, ok)
}
