package completion

import (
	"os"
	"path"
	"strings"

	"github.com/mitchellh/go-homedir"

	"github.com/ArcletProject/Alconna/node"
)

// Kind discriminates what a Suggestion completes, mirroring the teacher's
// cmdCompCommand/cmdCompFlag distinction generalized to Alconna's node
// vocabulary.
type Kind int

const (
	KindOption Kind = iota
	KindSubcommand
	KindValue
)

// Suggestion is one completion candidate.
type Suggestion struct {
	Text string
	Help string
	Kind Kind
}

// FileSuggester lists directory entries under partial, honoring a leading
// "~" the same way the teacher's fileCandidate.Suggest does. Pass a
// validator to restrict to directories only.
func FileSuggester(validator func(name string, isDir bool) bool) ValueSuggester {
	return ValueSuggestFunc(func(partial string) []string {
		target := partial
		if strings.HasPrefix(target, "~") {
			expanded, err := homedir.Expand(target)
			if err != nil {
				return nil
			}
			target = expanded
		}
		var dir, prefix string
		if strings.HasSuffix(target, "/") {
			dir, prefix = target, ""
		} else {
			dir, prefix = path.Dir(target), path.Base(target)
		}
		if dir == "" {
			dir = "."
		}
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil
		}
		var out []string
		for _, e := range entries {
			if !strings.HasPrefix(e.Name(), prefix) {
				continue
			}
			if validator != nil && !validator(e.Name(), e.IsDir()) {
				continue
			}
			out = append(out, path.Join(dir, e.Name()))
		}
		return out
	})
}

// DirectorySuggester restricts FileSuggester to directory entries only.
func DirectorySuggester() ValueSuggester {
	return FileSuggester(func(_ string, isDir bool) bool { return isDir })
}

// namesMatchPrefix reports whether any of names starts with prefix,
// case-folding when foldCase is set.
func namesMatchPrefix(names []string, prefix string, foldCase bool) bool {
	if foldCase {
		prefix = strings.ToLower(prefix)
	}
	for _, n := range names {
		candidate := n
		if foldCase {
			candidate = strings.ToLower(candidate)
		}
		if strings.HasPrefix(candidate, prefix) {
			return true
		}
	}
	return false
}

func optionSuggestion(o *node.Option, prefix string, foldCase bool) (Suggestion, bool) {
	if o.Hidden || !namesMatchPrefix(o.Names(), prefix, foldCase) {
		return Suggestion{}, false
	}
	return Suggestion{Text: o.Name, Help: o.Help, Kind: KindOption}, true
}

func subcommandSuggestion(s *node.Subcommand, prefix string, foldCase bool) (Suggestion, bool) {
	if !namesMatchPrefix(s.Names(), prefix, foldCase) {
		return Suggestion{}, false
	}
	return Suggestion{Text: s.Name, Help: s.Help, Kind: KindSubcommand}, true
}

func valueSuggestionsFor(name, prefix string) []Suggestion {
	s, ok := GetValueSuggester(name)
	if !ok {
		return nil
	}
	out := make([]Suggestion, 0, len(s.Suggest(prefix)))
	for _, v := range s.Suggest(prefix) {
		out = append(out, Suggestion{Text: v, Kind: KindValue})
	}
	return out
}
