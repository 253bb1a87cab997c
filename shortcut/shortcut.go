// Package shortcut implements the shortcut DSL: named templates spliced
// into the token stream before header matching (spec.md §4.4 step 2, §6
// "Shortcut DSL").
package shortcut

import (
	"strings"

	"github.com/samber/lo"
)

// Shortcut is one registered `{key, template, fuzzy?, prefix?}` entry.
type Shortcut struct {
	Key      string
	Template string
	Fuzzy    bool
	Prefix   bool
}

// Store is a process-wide, per-command table of Shortcuts (spec.md §5
// "the shortcut registry ... is process-wide with a defined teardown").
type Store struct {
	byCommand map[string][]Shortcut
}

// NewStore builds an empty Store.
func NewStore() *Store {
	return &Store{byCommand: map[string][]Shortcut{}}
}

// Add registers sc for commandID, replacing any existing entry with the
// same key.
func (s *Store) Add(commandID string, sc Shortcut) {
	list := s.byCommand[commandID]
	list = lo.Filter(list, func(x Shortcut, _ int) bool { return x.Key != sc.Key })
	list = append(list, sc)
	s.byCommand[commandID] = list
}

// Remove deletes the shortcut registered under key for commandID.
func (s *Store) Remove(commandID, key string) {
	list := s.byCommand[commandID]
	s.byCommand[commandID] = lo.Filter(list, func(x Shortcut, _ int) bool { return x.Key != key })
}

// Clear drops every shortcut for commandID, or the whole store when
// commandID is empty (spec.md §5 "explicit clear() ... terminates their
// lifetime").
func (s *Store) Clear(commandID string) {
	if commandID == "" {
		s.byCommand = map[string][]Shortcut{}
		return
	}
	delete(s.byCommand, commandID)
}

// List returns every shortcut registered for commandID.
func (s *Store) List(commandID string) []Shortcut {
	return append([]Shortcut{}, s.byCommand[commandID]...)
}

// Match finds a shortcut in commandID's table whose key matches the
// leading tokens of tokens, returning the matched Shortcut, the number of
// leading tokens it consumed, and ok.
func (s *Store) Match(commandID string, tokens []string) (sc Shortcut, consumed int, ok bool) {
	if len(tokens) == 0 {
		return Shortcut{}, 0, false
	}
	for _, cand := range s.byCommand[commandID] {
		keyParts := strings.Fields(cand.Key)
		if len(keyParts) == 0 || len(keyParts) > len(tokens) {
			continue
		}
		match := true
		for i, kp := range keyParts {
			if tokens[i] != kp {
				match = false
				break
			}
		}
		if !match {
			continue
		}
		if !cand.Fuzzy && len(keyParts) != len(tokens) && !cand.Prefix {
			continue
		}
		return cand, len(keyParts), true
	}
	return Shortcut{}, 0, false
}

// Expand substitutes a matched Shortcut's template placeholders with the
// unconsumed remainder tokens, per spec.md §6 "Shortcut DSL":
// {N} = Nth remainder token, {*} = all joined by sep, {*(SEP)} = joined by
// SEP, \{...\} = literal braces.
func Expand(template string, remainder []string, sep string) []string {
	if sep == "" {
		sep = " "
	}
	replaced := substitutePlaceholders(template, remainder, sep)
	return strings.Fields(replaced)
}

func substitutePlaceholders(template string, remainder []string, defaultSep string) string {
	var b strings.Builder
	i := 0
	for i < len(template) {
		c := template[i]
		if c == '\\' && i+1 < len(template) && (template[i+1] == '{' || template[i+1] == '}') {
			b.WriteByte(template[i+1])
			i += 2
			continue
		}
		if c == '{' {
			end := strings.IndexByte(template[i:], '}')
			if end < 0 {
				b.WriteByte(c)
				i++
				continue
			}
			placeholder := template[i+1 : i+end]
			b.WriteString(resolvePlaceholder(placeholder, remainder, defaultSep))
			i += end + 1
			continue
		}
		b.WriteByte(c)
		i++
	}
	return b.String()
}

func resolvePlaceholder(placeholder string, remainder []string, defaultSep string) string {
	if placeholder == "*" {
		return strings.Join(remainder, defaultSep)
	}
	if strings.HasPrefix(placeholder, "*(") && strings.HasSuffix(placeholder, ")") {
		sep := placeholder[2 : len(placeholder)-1]
		return strings.Join(remainder, sep)
	}
	n := 0
	for _, r := range placeholder {
		if r < '0' || r > '9' {
			return "{" + placeholder + "}"
		}
		n = n*10 + int(r-'0')
	}
	if n < 0 || n >= len(remainder) {
		return ""
	}
	return remainder[n]
}
