/*
Package minisculus is a compiler for a small imperative teaching language.

Consists of subpackages:
  - source: defines source file and line/column lookup;
  - lexer: comment stripping and rule-driven lexical analysis;
  - tree: syntax tree node types and traversal;
  - parser: generic recursive-descent engine driven by named rules;
  - grammar: lexer and parser rules of the minisculus language;
  - codegen: translates syntax trees to stack machine instructions;
  - vm: executes stack machine listings;
  - dump: textual and GraphViz representations of tokens and trees;
  - compiler: runs the whole pipeline for a single source;
  - config, logs: configuration and logging used by the command line driver;
  - cmd/minisculus: command line driver.

Typical usage is:

	res, e := compiler.Compile(ctx, "prog.msc", src)
	if e != nil {
		// e is *minisculus.Error for lexical and syntax errors
	}
	fmt.Print(res.Code)

Every compilation uses its own lexer, parser, and generator instances, so Compile
may be called from different goroutines for different sources.
*/
package minisculus

import (
	"fmt"
)

// Error classes used by subpackages, each class contains up to 99 error codes:
const (
	LexicalErrors = 101 // used by lexer
	SyntaxErrors  = 201 // used by parser
	ParserErrors  = 301 // used by parser for misconfigured rule sets
	RuntimeErrors = 401 // used by vm
	ConfigErrors  = 501 // used by config
)

// Error is the error type used by minisculus subpackages.
type Error struct {
	// Code contains non-zero error code.
	Code int

	// Message contains non-empty error message including source name and position information if provided.
	Message string

	// SourceName contains source name that caused this error or empty string.
	SourceName string

	// Line contains line number in source file or 0.
	Line int

	// Col contains column number in source file or 0.
	Col int
}

// SourcePos is used to retrieve source name and position information when constructing an error;
// source.Pos and lexer.Token implement this interface.
type SourcePos interface {
	// SourceName returns source file name or empty string.
	SourceName() string
	// Line returns line number or 0.
	Line() int
	// Col returns column number or 0.
	Col() int
}

// NewError creates new Error structure.
// name, line, and col will be added to error message if provided (non-zero).
func NewError(code int, msg, name string, line, col int) *Error {
	if name != "" {
		msg += " in " + name
	}
	if line != 0 {
		msg += fmt.Sprintf(" at line %d", line)
		if col != 0 {
			msg += fmt.Sprintf(" col %d", col)
		}
	}
	return &Error{code, msg, name, line, col}
}

// Error simply returns Error.Message.
func (e *Error) Error() string {
	return e.Message
}

// Class returns error class (LexicalErrors, SyntaxErrors, etc.) of the error code.
func (e *Error) Class() int {
	return (e.Code-1)/100*100 + 1
}

// FormatError creates Error structure with no source and position information.
// params will be added to error message using fmt.Sprintf function.
func FormatError(code int, msg string, params ...any) *Error {
	if len(params) > 0 {
		msg = fmt.Sprintf(msg, params...)
	}
	return NewError(code, msg, "", 0, 0)
}

// FormatErrorPos creates Error structure with source and position information.
// pos must not be nil.
// params will be added to error message using fmt.Sprintf function.
func FormatErrorPos(pos SourcePos, code int, msg string, params ...any) *Error {
	if len(params) > 0 {
		msg = fmt.Sprintf(msg, params...)
	}
	return NewError(code, msg, pos.SourceName(), pos.Line(), pos.Col())
}
