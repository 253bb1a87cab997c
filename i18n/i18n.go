// Package i18n implements the message-key table external collaborator:
// the core emits keys plus positional placeholders, never formatted
// strings (spec.md §6 "i18n").
package i18n

import (
	"fmt"
	"sync"
)

// Key names a stable, language-independent message identifier.
type Key string

const (
	KeyHeaderMismatch   Key = "alconna.header_mismatch"
	KeyFuzzySuggestion  Key = "alconna.fuzzy_suggestion"
	KeyParamsUnmatched  Key = "alconna.params_unmatched"
	KeyParamsMissing    Key = "alconna.params_missing"
	KeyArgumentMissing  Key = "alconna.argument_missing"
	KeyInvalidParam     Key = "alconna.invalid_param"
	KeyAmbiguousPath    Key = "alconna.ambiguous_path"
	KeyBehaviorError    Key = "alconna.behavior_error"
	KeyHelpHeading      Key = "alconna.help_heading"
	KeyOptionHelpLine   Key = "alconna.option_help_line"
)

var defaultTable = map[Key]string{
	KeyHeaderMismatch:  "no command matched the given input",
	KeyFuzzySuggestion: "did you mean %s?",
	KeyParamsUnmatched: "token %s did not match %s",
	KeyParamsMissing:   "missing required argument %s",
	KeyArgumentMissing: "missing keyword %s",
	KeyInvalidParam:    "invalid value for %s: %s",
	KeyAmbiguousPath:   "ambiguous path %s",
	KeyBehaviorError:   "behavior %s failed",
	KeyHelpHeading:     "usage: %s",
	KeyOptionHelpLine:  "  %s  %s",
}

// Table is a mutable, language-selectable message table (spec.md §6:
// "looked up by a stable key from an external string table").
type Table struct {
	mu       sync.RWMutex
	messages map[Key]string
}

// Default returns a Table seeded with the built-in English messages.
func Default() *Table {
	t := &Table{messages: map[Key]string{}}
	for k, v := range defaultTable {
		t.messages[k] = v
	}
	return t
}

// Set overrides (or adds) the format string for a key, for locale
// switching or custom wording.
func (t *Table) Set(key Key, format string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.messages[key] = format
}

// Format resolves key's format string and applies args positionally,
// falling back to the bare key when unregistered.
func (t *Table) Format(key Key, args ...any) string {
	t.mu.RLock()
	format, ok := t.messages[key]
	t.mu.RUnlock()
	if !ok {
		return string(key)
	}
	return fmt.Sprintf(format, args...)
}
