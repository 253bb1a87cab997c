// Package fuzzy computes header suggestions for the FuzzySuggestion soft
// failure (spec.md §4.4 step 3) with github.com/sahilm/fuzzy subsequence
// matching; it does not compute edit distance.
package fuzzy

import (
	"github.com/sahilm/fuzzy"
)

// Suggest returns the best-matching candidate from names for input, or
// ("", false) when nothing scores within threshold. A candidate is found
// only when it contains every character of input in order; a name that
// differs from input by a substituted character is never found. The best
// match is rejected when its score is below len(input) * (1 - threshold).
func Suggest(input string, names []string, threshold float64) (string, bool) {
	if input == "" || len(names) == 0 {
		return "", false
	}
	matches := fuzzy.Find(input, names)
	if len(matches) == 0 {
		return "", false
	}
	best := matches[0]
	minScore := int(float64(len(input)) * (1 - threshold))
	if best.Score < minScore {
		return "", false
	}
	return best.Str, true
}
