package shortcut

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpandIndexedPlaceholder(t *testing.T) {
	out := Expand("eval print('{0}')", []string{"hello"}, " ")
	assert.Equal(t, []string{"eval", "print('hello')"}, out)
}

func TestExpandStarJoinsWithDefaultSeparator(t *testing.T) {
	out := Expand("eval print('{*}')", []string{"hello", "world"}, " ")
	assert.Equal(t, []string{"eval", "print('hello", "world')"}, out)
}

func TestExpandStarWithCustomSeparator(t *testing.T) {
	out := substitutePlaceholders("join({*(,)})", []string{"a", "b", "c"}, " ")
	assert.Equal(t, "join(a,b,c)", out)
}

func TestExpandLiteralBraces(t *testing.T) {
	out := substitutePlaceholders(`\{literal\}`, nil, " ")
	assert.Equal(t, "{literal}", out)
}

func TestStoreMatchExactKey(t *testing.T) {
	s := NewStore()
	s.Add("pip", Shortcut{Key: "echo", Template: "eval print('{*}')"})
	sc, n, ok := s.Match("pip", []string{"echo"})
	assert.True(t, ok)
	assert.Equal(t, 1, n)
	assert.Equal(t, "eval print('{*}')", sc.Template)
}

func TestStoreMatchFuzzyPrefix(t *testing.T) {
	s := NewStore()
	s.Add("pip", Shortcut{Key: "up", Template: "upgrade {*}", Fuzzy: true})
	_, n, ok := s.Match("pip", []string{"up", "numpy"})
	assert.True(t, ok)
	assert.Equal(t, 1, n)
}

func TestStoreMatchRejectsNonFuzzyPartial(t *testing.T) {
	s := NewStore()
	s.Add("pip", Shortcut{Key: "echo now", Template: "eval print('{*}')"})
	_, _, ok := s.Match("pip", []string{"echo"})
	assert.False(t, ok)
}

func TestStoreClearAndRemove(t *testing.T) {
	s := NewStore()
	s.Add("pip", Shortcut{Key: "echo", Template: "t"})
	s.Remove("pip", "echo")
	assert.Empty(t, s.List("pip"))

	s.Add("pip", Shortcut{Key: "echo", Template: "t"})
	s.Clear("")
	assert.Empty(t, s.List("pip"))
}
