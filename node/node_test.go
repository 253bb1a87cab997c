package node

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOptionMatchesNameAndAlias(t *testing.T) {
	o := NewOption("--upgrade").WithAliases("-u")
	_, _, ok := o.Matches("-u", false)
	assert.True(t, ok)
	_, _, ok = o.Matches("--upgrade", false)
	assert.True(t, ok)
	_, _, ok = o.Matches("--nope", false)
	assert.False(t, ok)
}

func TestOptionCompactMatch(t *testing.T) {
	o := NewOption("-f").WithCompact(true)
	name, remainder, ok := o.Matches("-f1", false)
	assert.True(t, ok)
	assert.Equal(t, "-f", name)
	assert.Equal(t, "1", remainder)
}

func TestDuplicateNameRejected(t *testing.T) {
	a := New("test", NewHeader("test"), Meta{})
	assert.NoError(t, a.AddOption(NewOption("-v")))
	assert.Error(t, a.AddOption(NewOption("-v")))
}

func TestHeaderPrefixAndName(t *testing.T) {
	h := NewHeader("pip", "/")
	av := testArgv("/pip install")
	res := h.Match(av)
	assert.True(t, res.Matched)
	assert.Equal(t, "pip", res.Result)
}

func TestRegexHeaderCapturesGroups(t *testing.T) {
	h := NewRegexHeader(`^cmd(?P<n>\d+)$`)
	av := testArgv("cmd42 rest")
	res := h.Match(av)
	assert.True(t, res.Matched)
	assert.Equal(t, "42", res.Groups["n"])
}
