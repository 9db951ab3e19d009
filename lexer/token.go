package lexer

import (
	"fmt"

	"github.com/ava12/minisculus/source"
)

// Token is an immutable lexeme.
type Token struct {
	kind      Kind
	text      string
	source    *source.Source
	line, col int
}

// SourcePos supplies token position, source.Pos implements it.
type SourcePos interface {
	Source() *source.Source
	Line() int
	Col() int
}

// NewToken creates a token. text is the literal payload and is empty for tokens that have none.
// sp may be nil. Panics if kind is not a defined Kind.
func NewToken(kind Kind, text string, sp SourcePos) *Token {
	if !kind.Valid() {
		panic(fmt.Sprintf("lexer: invalid token kind %d", int(kind)))
	}
	if sp == nil {
		return &Token{kind: kind, text: text}
	}
	return &Token{kind, text, sp.Source(), sp.Line(), sp.Col()}
}

// Kind returns token type.
func (t *Token) Kind() Kind {
	return t.kind
}

// Text returns literal payload for Id and Num tokens.
func (t *Token) Text() string {
	return t.text
}

// Source returns source file or nil.
func (t *Token) Source() *source.Source {
	return t.source
}

// SourceName returns source name or empty string.
func (t *Token) SourceName() string {
	if t.source == nil {
		return ""
	}
	return t.source.Name()
}

// Line returns 1-based line number or 0.
func (t *Token) Line() int {
	return t.line
}

// Col returns 1-based column number or 0.
func (t *Token) Col() int {
	return t.col
}

// String returns "Kind(text)" for tokens having payload and "Kind" for others.
func (t *Token) String() string {
	if t.text == "" {
		return t.kind.String()
	}
	return t.kind.String() + "(" + t.text + ")"
}
