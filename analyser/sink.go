package analyser

import "github.com/ArcletProject/Alconna/result"

// sink is the shape both *result.Arparma (top-level scope) and
// *result.SubcommandResult (nested scope) implement, letting the dispatch
// loop in dispatch.go walk either without type-switching (spec.md §4.3
// step 4 "recurse ... in an unordered fashion").
type sink interface {
	BindArg(name string, v any)
	Option(name string) *result.OptionResult
	Subcommand(name string) *result.SubcommandResult
}

var (
	_ sink = (*result.Arparma)(nil)
	_ sink = (*result.SubcommandResult)(nil)
)
