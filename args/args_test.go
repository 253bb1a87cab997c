package args

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ArcletProject/Alconna/argv"
	"github.com/ArcletProject/Alconna/pattern"
)

func newArgv(raw string) *argv.Argv {
	a := argv.New("")
	a.LoadString(raw)
	return a
}

func TestConsumeRequiredSlots(t *testing.T) {
	as := MustNewArgs(New("foo", pattern.Int()), New("bar", pattern.Text()))
	av := newArgv("2 hello")
	bindings, outcome, extra, err := as.Consume(av, ConsumeOptions{})
	assert.NoError(t, err)
	assert.Equal(t, Completed, outcome)
	assert.Empty(t, extra)
	assert.Equal(t, int64(2), bindings["foo"])
	assert.Equal(t, "hello", bindings["bar"])
}

func TestConsumeFailsOnTypeMismatch(t *testing.T) {
	as := MustNewArgs(New("foo", pattern.Int()), New("bar", pattern.Text()))
	av := newArgv("two hello")
	_, outcome, _, err := as.Consume(av, ConsumeOptions{})
	assert.Error(t, err)
	assert.Equal(t, Failed, outcome)
}

func TestConsumeDefaultsOnAbsence(t *testing.T) {
	as := MustNewArgs(New("foo", pattern.Text()).WithDefault("fallback"))
	av := newArgv("")
	bindings, outcome, _, err := as.Consume(av, ConsumeOptions{})
	assert.NoError(t, err)
	assert.Equal(t, Completed, outcome)
	assert.Equal(t, "fallback", bindings["foo"])
}

func TestConsumeVariadicGreedy(t *testing.T) {
	as := MustNewArgs(New("items", pattern.Text()).AsMulti(0, 0, true))
	av := newArgv("a b c")
	bindings, outcome, _, err := as.Consume(av, ConsumeOptions{})
	assert.NoError(t, err)
	assert.Equal(t, Completed, outcome)
	assert.Equal(t, []any{"a", "b", "c"}, bindings["items"])
}

func TestConsumeKeywordAnyOrder(t *testing.T) {
	as := MustNewArgs(
		New("x", pattern.Int()).AsKeyword("x", "="),
		New("y", pattern.Int()).AsKeyword("y", "="),
	)
	av := newArgv("y=2 x=1")
	bindings, outcome, _, err := as.Consume(av, ConsumeOptions{})
	assert.NoError(t, err)
	assert.Equal(t, Completed, outcome)
	assert.Equal(t, int64(1), bindings["x"])
	assert.Equal(t, int64(2), bindings["y"])
}

func TestConsumeStrictRejectsExtra(t *testing.T) {
	as := MustNewArgs(New("foo", pattern.Text()))
	av := newArgv("a b")
	_, outcome, extra, _ := as.Consume(av, ConsumeOptions{Strict: true})
	assert.Equal(t, Completed, outcome)
	assert.Empty(t, extra)
	assert.False(t, av.Done())
}

func TestConsumeNonStrictBindsExtra(t *testing.T) {
	as := MustNewArgs(New("foo", pattern.Text()))
	av := newArgv("a b c")
	_, outcome, extra, err := as.Consume(av, ConsumeOptions{Strict: false})
	assert.NoError(t, err)
	assert.Equal(t, Completed, outcome)
	assert.Equal(t, []string{"b", "c"}, extra)
}

func TestConsumeWithPausesOnReservedOptionalSlot(t *testing.T) {
	as := MustNewArgs(
		New("first", pattern.Text()),
		New("second", pattern.Text()).WithDefault("none"),
	)
	av := newArgv("alice --loud bob")
	st := as.NewState()
	reserved := func(tok string) bool { return tok == "--loud" }

	bindings, outcome, _, err := as.ConsumeWith(st, av, ConsumeOptions{Reserved: reserved})
	assert.NoError(t, err)
	assert.Equal(t, Paused, outcome)
	assert.Equal(t, "alice", bindings["first"])

	// the sibling node consumes "--loud" itself; resuming must not
	// re-visit "first".
	tok, _ := av.Next()
	assert.Equal(t, "--loud", tok.Remaining())

	bindings2, outcome2, _, err2 := as.ConsumeWith(st, av, ConsumeOptions{Reserved: reserved})
	assert.NoError(t, err2)
	assert.Equal(t, Completed, outcome2)
	assert.Equal(t, "bob", bindings2["second"])
	assert.NotContains(t, bindings2, "first")
}

func TestConsumeWithRequiredSlotIgnoresReservedPause(t *testing.T) {
	as := MustNewArgs(New("name", pattern.Text()))
	av := newArgv("--loud")
	st := as.NewState()
	reserved := func(tok string) bool { return tok == "--loud" }

	bindings, outcome, _, err := as.ConsumeWith(st, av, ConsumeOptions{Reserved: reserved})
	assert.NoError(t, err)
	assert.Equal(t, Completed, outcome)
	assert.Equal(t, "--loud", bindings["name"])
}

func TestNewArgsRejectsTwoVariadics(t *testing.T) {
	_, err := NewArgs(
		New("a", pattern.Text()).AsMulti(0, 0, true),
		New("b", pattern.Text()).AsMulti(0, 0, true),
	)
	assert.Error(t, err)
}
