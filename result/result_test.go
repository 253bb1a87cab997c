package result

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ArcletProject/Alconna/errs"
)

func TestQueryMainArg(t *testing.T) {
	r := New(nil)
	r.MainArgs["pkg"] = "numpy"
	v, err := r.Query("pkg")
	assert.NoError(t, err)
	assert.Equal(t, "numpy", v)
}

func TestQueryOptionValueAndArgs(t *testing.T) {
	r := New(nil)
	o := r.EnsureOption("upgrade")
	o.Value = true
	o.Args["version"] = "2.0"

	v, err := r.Query("upgrade")
	assert.NoError(t, err)
	assert.Equal(t, true, v)

	v, err = r.Query("upgrade.version")
	assert.NoError(t, err)
	assert.Equal(t, "2.0", v)

	v, err = r.Query("options.upgrade.args.version")
	assert.NoError(t, err)
	assert.Equal(t, "2.0", v)
}

func TestQuerySubcommandNested(t *testing.T) {
	r := New(nil)
	sc := r.EnsureSubcommand("install")
	sc.Args["pkg"] = "requests"
	nested := sc.EnsureOption("quiet")
	nested.Value = true

	v, err := r.Query("install.pkg")
	assert.NoError(t, err)
	assert.Equal(t, "requests", v)

	v, err = r.Query("install.quiet")
	assert.NoError(t, err)
	assert.Equal(t, true, v)
}

func TestQueryAmbiguousPath(t *testing.T) {
	r := New(nil)
	r.EnsureOption("foo").Value = 1
	r.EnsureSubcommand("foo").Value = 2

	_, err := r.Query("foo")
	assert.Error(t, err)
	var e *errs.Error
	assert.ErrorAs(t, err, &e)
	assert.Equal(t, errs.AmbiguousPath, e.Kind)
}

func TestQueryMissingReturnsNilNoError(t *testing.T) {
	r := New(nil)
	v, err := r.Query("absent")
	assert.NoError(t, err)
	assert.Nil(t, v)
	assert.False(t, r.Find("absent"))
}

func TestFlattenOtherArgs(t *testing.T) {
	r := New(nil)
	r.MainArgs["a"] = 1
	r.EnsureOption("opt").Args["b"] = 2
	sc := r.EnsureSubcommand("sub")
	sc.Args["c"] = 3

	r.FlattenOtherArgs()
	assert.Equal(t, 1, r.OtherArgs["a"])
	assert.Equal(t, 2, r.OtherArgs["b"])
	assert.Equal(t, 3, r.OtherArgs["c"])
}

func TestQueryTypedIndexed(t *testing.T) {
	r := New(nil)
	r.MainArgs["n1"] = 1
	r.EnsureOption("o").Args["n2"] = 2
	r.MainArgs["s"] = "hello"

	first, ok := QueryTyped[int](r, 0)
	assert.True(t, ok)
	assert.Contains(t, []int{1, 2}, first)

	_, ok = QueryTyped[int](r, 99)
	assert.False(t, ok)

	s, ok := QueryTyped[string](r, 0)
	assert.True(t, ok)
	assert.Equal(t, "hello", s)
}

type bindTarget struct {
	Pkg     string `alc:"pkg"`
	Upgrade bool   `alc:"upgrade"`
	Missing string `alc:"nope,omitempty"`
}

func TestBindProjectsTaggedFields(t *testing.T) {
	r := New(nil)
	r.MainArgs["pkg"] = "numpy"
	r.EnsureOption("upgrade").Value = true

	out, err := Bind[bindTarget](r)
	assert.NoError(t, err)
	assert.Equal(t, "numpy", out.Pkg)
	assert.True(t, out.Upgrade)
	assert.Equal(t, "", out.Missing)
}

func TestFailAndSucceed(t *testing.T) {
	r := New(nil)
	r.Succeed()
	assert.True(t, r.Matched)
	assert.Nil(t, r.ErrorInfo)

	r.Fail(errs.New(errs.HeaderMismatch))
	assert.False(t, r.Matched)
	assert.Equal(t, errs.HeaderMismatch, r.ErrorInfo.Kind)
}
