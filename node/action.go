package node

// Action determines how repeated matches of an Option/Subcommand (or an Arg
// slot) fold into the node's accumulated value (spec.md §3 "Option", §4.5).
type Action int

const (
	// ActionStore is last-write-wins (the default).
	ActionStore Action = iota
	// ActionAppend accumulates an ordered list of every matched value.
	ActionAppend
	// ActionCount accumulates an integer count of matches.
	ActionCount
	// ActionStoreTrue fixes the value to true regardless of repetition.
	ActionStoreTrue
	// ActionStoreFalse fixes the value to false regardless of repetition.
	ActionStoreFalse
	// ActionStoreValue fixes the value to a constant from the schema.
	ActionStoreValue
	// ActionFunc delegates to a user-supplied reducer.
	ActionFunc
)

// Reducer is the user-reducer escape hatch for ActionFunc (spec.md §3
// "user-reducer").
type Reducer func(existing, matched any) any

// Reduce folds a newly matched value into the node's existing accumulated
// value per spec.md §4.5.
func Reduce(action Action, existing, matched, storeValue any, reducer Reducer) any {
	switch action {
	case ActionAppend:
		list, _ := existing.([]any)
		return append(list, matched)
	case ActionCount:
		n, _ := existing.(int)
		return n + 1
	case ActionStoreTrue:
		return true
	case ActionStoreFalse:
		return false
	case ActionStoreValue:
		return storeValue
	case ActionFunc:
		if reducer != nil {
			return reducer(existing, matched)
		}
		return matched
	case ActionStore:
		fallthrough
	default:
		return matched
	}
}

// Repeatable reports whether a node carrying this action may match more
// than once in the same scope (spec.md §4.3 step 4 "every child may appear
// at most once unless its Action is append or count").
func (a Action) Repeatable() bool {
	return a == ActionAppend || a == ActionCount
}
