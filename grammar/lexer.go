// Package grammar defines lexical and syntax rules of the minisculus language.
package grammar

import (
	"github.com/ava12/minisculus/lexer"
)

// TokenRule is a lexer rule: a pattern and a token type. Payload is kept for Id and Num tokens only.
type TokenRule struct {
	Pattern string
	Kind    lexer.Kind
}

// TokenRules lists lexer rules in the order they are tried, keywords go before names.
var TokenRules = []TokenRule{
	{`if\b`, lexer.If},
	{`then\b`, lexer.Then},
	{`while\b`, lexer.While},
	{`do\b`, lexer.Do},
	{`input\b`, lexer.Input},
	{`else\b`, lexer.Else},
	{`begin\b`, lexer.Begin},
	{`end\b`, lexer.End},
	{`write\b`, lexer.Write},
	{`[a-zA-Z_][a-zA-Z0-9_]*`, lexer.Id},
	{`[0-9]+`, lexer.Num},
	{`\+`, lexer.Add},
	{`:=`, lexer.Assign},
	{`-`, lexer.Sub},
	{`\*`, lexer.Mul},
	{`/`, lexer.Div},
	{`\(`, lexer.LPar},
	{`\)`, lexer.RPar},
	{`;`, lexer.Semicolon},
}

// NewLexer returns a new lexer having all TokenRules.
func NewLexer() *lexer.Lexer {
	l := lexer.New()
	for _, r := range TokenRules {
		b := lexer.Keyword(r.Kind)
		if r.Kind == lexer.Id || r.Kind == lexer.Num {
			b = lexer.Literal(r.Kind)
		}
		if e := l.AddRule(r.Pattern, b); e != nil {
			panic(e)
		}
	}
	return l
}
