package node

import "github.com/ArcletProject/Alconna/argv"

// Sentence is a required literal prefix sequence attached to an Option or
// Subcommand (spec.md §3 "Sentence", GLOSSARY).
type Sentence struct {
	Words []string
}

// NewSentence builds a Sentence from literal words, matched verbatim and in
// order against the tokens preceding the owning node.
func NewSentence(words ...string) *Sentence {
	return &Sentence{Words: append([]string{}, words...)}
}

// Match checks whether av's upcoming tokens literally equal the Sentence's
// words, without consuming on failure (spec.md §4.3 step 1).
func (s *Sentence) Match(av *argv.Argv) bool {
	if s == nil {
		return true
	}
	mark := av.Mark()
	for _, w := range s.Words {
		tok, ok := av.Next()
		if !ok || !tok.IsText || tok.Remaining() != w {
			av.Reset(mark)
			return false
		}
	}
	return true
}

// Len returns the number of words in the Sentence (0 for a nil Sentence).
func (s *Sentence) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Words)
}
