package completion

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ArcletProject/Alconna/args"
	"github.com/ArcletProject/Alconna/node"
	"github.com/ArcletProject/Alconna/pattern"
)

func buildPipAlconna(t *testing.T) *node.Alconna {
	t.Helper()
	a := node.New("pip", node.NewHeader("pip"), node.Meta{})
	install := node.NewSubcommand("install").WithArgs(args.MustNewArgs(args.New("pak_name", pattern.Text())))
	assert.NoError(t, install.AddOption(node.NewOption("--upgrade").WithAliases("-u").WithHelp("upgrade the package")))
	assert.NoError(t, a.AddSubcommand(install))
	assert.NoError(t, a.AddOption(node.NewOption("list").WithHelp("list installed packages")))
	return a
}

func TestAvailableSuggestsTopLevelChildren(t *testing.T) {
	s := New(buildPipAlconna(t))
	sug := s.Available("pip ")
	var names []string
	for _, sg := range sug {
		names = append(names, sg.Text)
	}
	assert.Contains(t, names, "install")
	assert.Contains(t, names, "list")
}

func TestAvailableFiltersByPrefix(t *testing.T) {
	s := New(buildPipAlconna(t))
	sug := s.Available("pip li")
	assert.Len(t, sug, 1)
	assert.Equal(t, "list", sug[0].Text)
}

func TestAvailableDescendsIntoSubcommand(t *testing.T) {
	s := New(buildPipAlconna(t))
	sug := s.Available("pip install --up")
	assert.Len(t, sug, 1)
	assert.Equal(t, "--upgrade", sug[0].Text)
}

func TestCurrentReturnsInProgressToken(t *testing.T) {
	s := New(buildPipAlconna(t))
	assert.Equal(t, "ins", s.Current("pip ins"))
	assert.Equal(t, "", s.Current("pip install "))
}

func TestTabReplacesCurrentToken(t *testing.T) {
	s := New(buildPipAlconna(t))
	assert.Equal(t, "pip install", s.Tab("pip ins", "install"))
}

func TestValueSuggesterFeedsArgCompletion(t *testing.T) {
	RegisterValueSuggester("pak_name", ValueSuggestFunc(func(partial string) []string {
		if partial == "num" {
			return []string{"numpy"}
		}
		return nil
	}))
	defer UnregisterValueSuggester("pak_name")

	s := New(buildPipAlconna(t))
	sug := s.Available("pip install num")
	assert.Len(t, sug, 1)
	assert.Equal(t, "numpy", sug[0].Text)
	assert.Equal(t, KindValue, sug[0].Kind)
}
