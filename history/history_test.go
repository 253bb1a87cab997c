package history

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecordAndListFiltersByCommandAndPrefix(t *testing.T) {
	l, err := Open(t.TempDir())
	assert.NoError(t, err)
	defer l.Close()

	l.Record("pip", "pip install numpy", true)
	l.Record("pip", "pip list", true)
	l.Record("eval", "eval print(1)", true)

	got := l.List("pip", "pip install")
	assert.Len(t, got, 1)
	assert.Equal(t, "pip install numpy", got[0].Raw)
}

func TestRecordSkipsBlankInput(t *testing.T) {
	l, err := Open(t.TempDir())
	assert.NoError(t, err)
	defer l.Close()

	l.Record("pip", "   ", true)
	assert.Empty(t, l.List("pip", ""))
}

func TestOpenReloadsExistingEntries(t *testing.T) {
	dir := t.TempDir()
	l1, err := Open(dir)
	assert.NoError(t, err)
	l1.Record("pip", "pip list", true)
	l1.Close()

	l2, err := Open(dir)
	assert.NoError(t, err)
	defer l2.Close()
	assert.Len(t, l2.List("pip", ""), 1)
}
