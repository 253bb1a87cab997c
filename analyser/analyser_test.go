package analyser

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ArcletProject/Alconna/args"
	"github.com/ArcletProject/Alconna/errs"
	"github.com/ArcletProject/Alconna/node"
	"github.com/ArcletProject/Alconna/pattern"
	"github.com/ArcletProject/Alconna/shortcut"
)

// Scenario 1: Alconna("/pip", Subcommand("install", Option("-u|--upgrade"),
// Args[pak_name: str]), Option("list")), input "/pip install numpy --upgrade".
func TestScenarioSubcommandWithOptionAndArg(t *testing.T) {
	a := node.New("pip", node.NewHeader("pip", "/"), node.Meta{})

	install := node.NewSubcommand("install").WithArgs(args.MustNewArgs(args.New("pak_name", pattern.Text())))
	assert.NoError(t, install.AddOption(node.NewOption("--upgrade").WithAliases("-u")))
	assert.NoError(t, a.AddSubcommand(install))
	assert.NoError(t, a.AddOption(node.NewOption("list")))

	arp := New(a).Parse("/pip install numpy --upgrade")
	assert.True(t, arp.Matched)
	v, err := arp.Query("install.pak_name")
	assert.NoError(t, err)
	assert.Equal(t, "numpy", v)
	v, err = arp.Query("install.upgrade")
	assert.NoError(t, err)
	assert.NotNil(t, v)
}

// Scenario 2: Alconna("callback", Args[foo: int][bar: str]).
func TestScenarioMainArgsBindAndMismatch(t *testing.T) {
	a := node.New("callback", node.NewHeader("callback"), node.Meta{})
	a.WithArgs(args.MustNewArgs(
		args.New("foo", pattern.Int()),
		args.New("bar", pattern.Text()),
	))

	arp := New(a).Parse("callback 2 hello")
	assert.True(t, arp.Matched)
	foo, _ := arp.Query("foo")
	bar, _ := arp.Query("bar")
	assert.Equal(t, int64(2), foo)
	assert.Equal(t, "hello", bar)

	arp2 := New(a).Parse("callback two hello")
	assert.False(t, arp2.Matched)
	assert.Equal(t, errs.ParamsUnmatched, arp2.ErrorInfo.Kind)
}

// Scenario 3: count/append actions, compact matching, nested subcommand
// store_true default.
func TestScenarioActionsAndCompactMatching(t *testing.T) {
	a := node.New("component", node.NewHeader("component"), node.Meta{})
	a.WithArgs(args.MustNewArgs(args.New("path", pattern.Text())))

	verbose := node.NewOption("--verbose").WithAliases("-v").WithAction(node.ActionCount)
	assert.NoError(t, a.AddOption(verbose))

	f := node.NewOption("-f").
		WithArgs(args.MustNewArgs(args.New("flag", pattern.Text()))).
		WithCompact(true).
		WithAction(node.ActionAppend)
	assert.NoError(t, a.AddOption(f))

	sub := node.NewSubcommand("sub")
	bar := node.NewOption("bar").WithAction(node.ActionStoreTrue).WithDefault(false)
	assert.NoError(t, sub.AddOption(bar))
	assert.NoError(t, a.AddSubcommand(sub))

	arp := New(a).Parse("component /home -vvvv -f1 -f2 -f3 sub bar")
	assert.True(t, arp.Matched)

	path, _ := arp.Query("path")
	assert.Equal(t, "/home", path)

	verboseVal, _ := arp.Query("verbose")
	assert.Equal(t, 4, verboseVal)

	flagVal, _ := arp.Query("options.f.args.flag")
	assert.Equal(t, []any{"1", "2", "3"}, flagVal)

	barVal, _ := arp.Query("sub.bar")
	assert.Equal(t, true, barVal)
}

// Scenario 4: shortcut round-trip.
func TestScenarioShortcutExpansion(t *testing.T) {
	a := node.New("eval", node.NewHeader("eval"), node.Meta{})
	a.WithArgs(args.MustNewArgs(args.New("content", pattern.Text())))

	an := New(a)
	an.Shortcuts.Add("eval", shortcut.Shortcut{Key: "echo", Template: `eval print('{*}')`, Fuzzy: true})

	direct := an.Parse(`eval print('hello world')`)
	viaShortcut := an.Parse("echo hello world")

	assert.True(t, direct.Matched)
	assert.True(t, viaShortcut.Matched)
	directContent, _ := direct.Query("content")
	shortcutContent, _ := viaShortcut.Query("content")
	assert.Equal(t, directContent, shortcutContent)
}

// Scenario 5: fuzzy-match suggestion on header mismatch.
func TestScenarioFuzzySuggestion(t *testing.T) {
	a := node.New("!test_fuzzy", node.NewHeader("!test_fuzzy"), node.Meta{FuzzyMatch: true})
	a.WithArgs(args.MustNewArgs(args.New("foo", pattern.Text())))

	an := New(a)
	an.KnownCommandIDs = []string{"!test_fuzzy"}

	arp := an.Parse("/test_fuzzy foo bar")
	assert.False(t, arp.Matched)
	assert.Equal(t, errs.FuzzySuggestion, arp.ErrorInfo.Kind)
	assert.Equal(t, "!test_fuzzy", arp.ErrorInfo.Candidate)
}

func TestBuiltinHelpShortCircuitsBodyMatch(t *testing.T) {
	a := node.New("pip", node.NewHeader("pip"), node.Meta{})
	assert.NoError(t, a.AddOption(node.NewOption("list")))

	arp := New(a).Parse("pip --help")
	assert.True(t, arp.Matched)
	assert.Equal(t, node.BuiltinHelp, arp.BuiltinKind)
	assert.NotEmpty(t, arp.BuiltinOutput)
}

func TestBuiltinCompletionListsNextCandidates(t *testing.T) {
	a := node.New("pip", node.NewHeader("pip"), node.Meta{})
	assert.NoError(t, a.AddOption(node.NewOption("list")))
	install := node.NewSubcommand("install")
	assert.NoError(t, a.AddSubcommand(install))

	arp := New(a).Parse("pip --comp")
	assert.True(t, arp.Matched)
	assert.Equal(t, node.BuiltinCompletion, arp.BuiltinKind)
	assert.Contains(t, arp.BuiltinOutput, "list")
	assert.Contains(t, arp.BuiltinOutput, "install")
}

func TestStrictModeRejectsExtraTokens(t *testing.T) {
	a := node.New("pip", node.NewHeader("pip"), node.Meta{Strict: true})
	a.WithArgs(args.MustNewArgs(args.New("pkg", pattern.Text())))

	arp := New(a).Parse("pip numpy extra")
	assert.False(t, arp.Matched)
}

// A required slot binds greedily even when the next token looks like a
// sibling Option name, but an optional slot defers to it — and once the
// Option is matched, the Args cursor must resume at the next unconsumed
// slot rather than re-examining "first" from scratch.
func TestInterleavedOptionResumesArgsFromLeftOffSlot(t *testing.T) {
	a := node.New("greet", node.NewHeader("greet"), node.Meta{})
	a.WithArgs(args.MustNewArgs(
		args.New("first", pattern.Text()),
		args.New("second", pattern.Text()).WithDefault("none"),
	))
	assert.NoError(t, a.AddOption(node.NewOption("--loud").WithAction(node.ActionStoreTrue).WithDefault(false)))

	arp := New(a).Parse("greet alice --loud bob")
	assert.True(t, arp.Matched)

	first, _ := arp.Query("first")
	second, _ := arp.Query("second")
	loud, _ := arp.Query("loud")
	assert.Equal(t, "alice", first)
	assert.Equal(t, "bob", second)
	assert.Equal(t, true, loud)
}

func TestNonStrictExtraTokensCollectUnderExtraSentinel(t *testing.T) {
	a := node.New("pip", node.NewHeader("pip"), node.Meta{Strict: false})
	a.WithArgs(args.MustNewArgs(args.New("pkg", pattern.Text())))

	arp := New(a).Parse("pip numpy extra stuff")
	assert.True(t, arp.Matched)
	extra, _ := arp.Query("$extra")
	assert.Equal(t, []string{"extra", "stuff"}, extra)
}
