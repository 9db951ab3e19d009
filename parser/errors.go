package parser

import (
	"github.com/ava12/minisculus"
	"github.com/ava12/minisculus/lexer"
)

// Error codes used by parser:
const (
	// ErrUnexpectedToken indicates that the next token matches neither expected token type nor any alternative of
	// current rule. Error message contains token type, position, and expected token type or rule name.
	ErrUnexpectedToken = minisculus.SyntaxErrors + iota

	// ErrUnexpectedEoi indicates that input ended while a token or a rule was expected.
	ErrUnexpectedEoi

	// ErrTrailingInput indicates that tokens remain after the root rule is complete.
	ErrTrailingInput
)

const (
	// ErrUnknownRule indicates that a production or a predicate refers to a rule that was never added.
	ErrUnknownRule = minisculus.ParserErrors + iota

	// ErrNoRules indicates parsing with a parser that has no rules.
	ErrNoRules
)

func unexpectedTokenError(t *lexer.Token, expected string) *minisculus.Error {
	return minisculus.FormatErrorPos(t, ErrUnexpectedToken, "unexpected token %s, expecting %s", t.Kind(), expected)
}

func unexpectedEoiError(last *lexer.Token, expected string) *minisculus.Error {
	if last == nil {
		return minisculus.FormatError(ErrUnexpectedEoi, "unexpected end of input, expecting %s", expected)
	}
	return minisculus.FormatErrorPos(last, ErrUnexpectedEoi, "unexpected end of input after %s, expecting %s", last.Kind(), expected)
}

func trailingInputError(t *lexer.Token) *minisculus.Error {
	return minisculus.FormatErrorPos(t, ErrTrailingInput, "unexpected token %s, expecting end of input", t.Kind())
}

func unknownRuleError(name string) *minisculus.Error {
	return minisculus.FormatError(ErrUnknownRule, "unknown rule %q", name)
}

func noRulesError() *minisculus.Error {
	return minisculus.FormatError(ErrNoRules, "no rules defined")
}
