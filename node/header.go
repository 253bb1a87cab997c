package node

import (
	"reflect"
	"regexp"

	"github.com/ArcletProject/Alconna/argv"
)

// HeadResult records a header match attempt, mirroring spec.md §3
// "head_match".
type HeadResult struct {
	Origin  string
	Result  string
	Matched bool
	Groups  map[string]string
}

// Header is the command's entry point: prefix strings combined with a
// command name, literal, regex-bracketed, or a non-text-element set
// (spec.md §3 "Header").
type Header struct {
	Prefixes    []string
	Name        string
	NameRegex   *regexp.Regexp
	OpaqueTypes []reflect.Type
}

// NewHeader builds a literal Header: an optional set of prefixes combined
// with a literal command name.
func NewHeader(name string, prefixes ...string) *Header {
	return &Header{Name: name, Prefixes: prefixes}
}

// NewRegexHeader builds a Header whose name is matched via a bracketed
// regular expression; captured groups become HeadResult.Groups entries
// (spec.md §3 "Captured bracket groups ... become bindings").
func NewRegexHeader(expr string, prefixes ...string) *Header {
	return &Header{NameRegex: regexp.MustCompile(expr), Prefixes: prefixes}
}

// NewOpaqueHeader builds a Header matched by a non-text-element type set.
func NewOpaqueHeader(types ...reflect.Type) *Header {
	return &Header{OpaqueTypes: types}
}

// Match attempts (prefix, name) composition against av's upcoming tokens,
// in order, committing on success and rewinding on failure (spec.md §4.4
// step 3 "Header match").
func (h *Header) Match(av *argv.Argv) HeadResult {
	mark := av.Mark()

	prefix := ""
	if len(h.Prefixes) > 0 {
		tok, ok := av.Peek()
		matched := false
		if ok && tok.IsText {
			for _, p := range h.Prefixes {
				if len(tok.Remaining()) > len(p) && tok.Remaining()[:len(p)] == p {
					prefix = p
					rest := tok.Remaining()[len(p):]
					av.PushBackRemainder(rest)
					matched = true
					break
				}
				if tok.Remaining() == p {
					prefix = p
					av.Next()
					matched = true
					break
				}
			}
		}
		if !matched {
			av.Reset(mark)
			return HeadResult{Matched: false}
		}
		_ = prefix
	}

	tok, ok := av.Peek()
	if !ok {
		av.Reset(mark)
		return HeadResult{Matched: false}
	}

	switch {
	case h.NameRegex != nil:
		if !tok.IsText {
			av.Reset(mark)
			return HeadResult{Matched: false}
		}
		m := h.NameRegex.FindStringSubmatch(tok.Remaining())
		if m == nil {
			av.Reset(mark)
			return HeadResult{Matched: false}
		}
		av.Next()
		groups := map[string]string{}
		names := h.NameRegex.SubexpNames()
		for i, name := range names {
			if i == 0 || name == "" || i >= len(m) {
				continue
			}
			groups[name] = m[i]
		}
		return HeadResult{Origin: tok.Remaining(), Result: m[0], Matched: true, Groups: groups}
	case len(h.OpaqueTypes) > 0:
		if tok.IsText {
			av.Reset(mark)
			return HeadResult{Matched: false}
		}
		t := tok.Type()
		for _, want := range h.OpaqueTypes {
			if t != nil && t.AssignableTo(want) {
				av.Next()
				return HeadResult{Matched: true, Result: want.String()}
			}
		}
		av.Reset(mark)
		return HeadResult{Matched: false}
	default:
		if !tok.IsText || tok.Remaining() != h.Name {
			av.Reset(mark)
			return HeadResult{Matched: false}
		}
		av.Next()
		return HeadResult{Origin: tok.Remaining(), Result: h.Name, Matched: true}
	}
}

// Names returns the header's literal name set for fuzzy-match candidate
// generation (spec.md §4.4 step 3).
func (h *Header) Names() []string {
	if h.Name != "" {
		return []string{h.Name}
	}
	return nil
}
