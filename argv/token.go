package argv

import "reflect"

// Token is a single element of the normalized input stream: either text
// carved out of a raw string, or an opaque non-text object passed through
// verbatim (spec.md §3 "Argv").
type Token struct {
	Text     string
	IsText   bool
	Opaque   any
	typ      reflect.Type
	consumed int // bytes of Text skipped by Remaining; a compact split pushes a new token instead of advancing this
}

// NewText builds a text token.
func NewText(s string) Token {
	return Token{Text: s, IsText: true}
}

// NewOpaque builds a non-text token, recording its concrete type for
// Pattern origin-type matching (spec.md §4.1 rule 1).
func NewOpaque(v any) Token {
	return Token{Opaque: v, typ: reflect.TypeOf(v)}
}

// Type returns the token's reflect.Type: string for text tokens, the
// concrete dynamic type for opaque ones.
func (t Token) Type() reflect.Type {
	if t.IsText {
		return reflect.TypeOf("")
	}
	return t.typ
}

// Remaining returns the text token's content starting from its consumed
// offset.
func (t Token) Remaining() string {
	if !t.IsText || t.consumed >= len(t.Text) {
		return ""
	}
	return t.Text[t.consumed:]
}

// Value returns the token's logical value: the remaining text for text
// tokens, or the opaque object.
func (t Token) Value() any {
	if t.IsText {
		return t.Remaining()
	}
	return t.Opaque
}
