package registry

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ArcletProject/Alconna/node"
)

func testAlconna(id string) *node.Alconna {
	return node.New(id, node.NewHeader(id), node.Meta{})
}

func TestRegisterAndGet(t *testing.T) {
	r := New()
	a := testAlconna("pip")
	assert.NoError(t, r.Register(a))
	got, err := r.Get("pip")
	assert.NoError(t, err)
	assert.Same(t, a, got)
}

func TestRegisterDuplicateErrors(t *testing.T) {
	r := New()
	assert.NoError(t, r.Register(testAlconna("pip")))
	assert.Error(t, r.Register(testAlconna("pip")))
}

func TestGetUnknownErrors(t *testing.T) {
	r := New()
	_, err := r.Get("nope")
	assert.Error(t, err)
}

func TestLRUEvictsOldest(t *testing.T) {
	c := NewLRU(2)
	c.Put("cmd", "a", 1)
	c.Put("cmd", "b", 2)
	c.Put("cmd", "c", 3)
	_, ok := c.Get("cmd", "a")
	assert.False(t, ok)
	v, ok := c.Get("cmd", "c")
	assert.True(t, ok)
	assert.Equal(t, 3, v)
}

func TestLRUInvalidateCommand(t *testing.T) {
	c := NewLRU(10)
	c.Put("cmd", "a", 1)
	c.InvalidateCommand("cmd")
	_, ok := c.Get("cmd", "a")
	assert.False(t, ok)
}

func TestFetchOrComputeCachesResult(t *testing.T) {
	r := New()
	var calls int32
	compute := func() (any, error) {
		atomic.AddInt32(&calls, 1)
		return "result", nil
	}
	v1, err, hit1 := r.FetchOrCompute("pip", "install numpy", compute)
	assert.NoError(t, err)
	assert.False(t, hit1)
	assert.Equal(t, "result", v1)

	v2, err, hit2 := r.FetchOrCompute("pip", "install numpy", compute)
	assert.NoError(t, err)
	assert.True(t, hit2)
	assert.Equal(t, "result", v2)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestFetchOrComputeCollapsesConcurrentMisses(t *testing.T) {
	r := New()
	var calls int32
	var wg sync.WaitGroup
	compute := func() (any, error) {
		atomic.AddInt32(&calls, 1)
		return "v", nil
	}
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.FetchOrCompute("pip", "same input", compute)
		}()
	}
	wg.Wait()
	assert.LessOrEqual(t, atomic.LoadInt32(&calls), int32(1))
}

func TestApplyNamespaceDefaultsFillsZeroFields(t *testing.T) {
	ns := &Namespace{Name: "ns", Separators: ";", FuzzyMatch: true}
	meta := node.Meta{}
	out := ApplyNamespaceDefaults(meta, ns)
	assert.Equal(t, ";", out.Separators)
	assert.True(t, out.FuzzyMatch)
}
