// Package lexer defines lexical analyzer.
package lexer

import (
	"fmt"
	"log/slog"
	"regexp"

	"github.com/ava12/minisculus"
	"github.com/ava12/minisculus/source"
)

// Error codes used by lexer:
const (
	// ErrInvalidToken indicates that no rule matches text at current position.
	// Error message contains the text up to the next whitespace.
	ErrInvalidToken = minisculus.LexicalErrors + iota

	// ErrUnterminatedComment indicates that source ends inside a block comment.
	ErrUnterminatedComment
)

// Builder converts matched text to token type and literal payload.
type Builder func(text string) (kind Kind, payload string)

// Keyword returns a Builder for tokens that carry no payload.
func Keyword(k Kind) Builder {
	return func(string) (Kind, string) {
		return k, ""
	}
}

// Literal returns a Builder for tokens that keep matched text as payload.
func Literal(k Kind) Builder {
	return func(text string) (Kind, string) {
		return k, text
	}
}

type rule struct {
	re      *regexp.Regexp
	builder Builder
}

// Lexer splits source text into tokens using an ordered list of rules.
// For each token the rules are tried in the order they were added and the first rule matching
// at current position wins, even if a later rule could match longer text.
// So more specific rules (keywords) must be added before more general ones (names).
//
// Rules are matched inside a single physical line, whitespace between tokens is skipped.
// Lexer keeps no state between Scan calls, but adding rules is not safe for concurrent use.
type Lexer struct {
	rules  []rule
	logger *slog.Logger
}

// New creates a Lexer with no rules.
func New() *Lexer {
	return &Lexer{logger: slog.New(slog.DiscardHandler)}
}

// SetLogger sets a logger receiving a debug record for every token. nil disables logging.
func (l *Lexer) SetLogger(logger *slog.Logger) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	l.logger = logger
}

// AddRule appends a rule. pattern is a regexp (RE2 syntax) matched at current position only.
func (l *Lexer) AddRule(pattern string, b Builder) error {
	re, e := regexp.Compile("^(?:" + pattern + ")")
	if e != nil {
		return fmt.Errorf("lexer rule %q: %w", pattern, e)
	}

	l.rules = append(l.rules, rule{re, b})
	return nil
}

// Tokenize strips comments from src and splits the rest into tokens.
func (l *Lexer) Tokenize(src *source.Source) ([]*Token, error) {
	stripped, e := StripComments(src)
	if e != nil {
		return nil, e
	}

	return l.Scan(stripped)
}

// Scan splits src into tokens, src must contain no comments.
// Returns ErrInvalidToken and no tokens at the first position no rule matches.
func (l *Lexer) Scan(src *source.Source) ([]*Token, error) {
	res := make([]*Token, 0)
	for n := 1; n <= src.LineCount(); n++ {
		line, offset := src.Line(n)
		pos := skipSpace(line, 0)
		for pos < len(line) {
			tok, size := l.match(src, line[pos:], offset+pos)
			if tok == nil {
				return nil, invalidTokenError(src, line[pos:], offset+pos)
			}

			l.logger.Debug("token", "token", tok.String(), "line", tok.Line(), "col", tok.Col())
			res = append(res, tok)
			pos = skipSpace(line, pos+size)
		}
	}

	return res, nil
}

func (l *Lexer) match(src *source.Source, text []byte, offset int) (*Token, int) {
	for _, r := range l.rules {
		m := r.re.FindIndex(text)
		if m == nil || m[1] == 0 {
			continue
		}

		kind, payload := r.builder(string(text[:m[1]]))
		return NewToken(kind, payload, source.NewPos(src, offset)), m[1]
	}

	return nil, 0
}

func skipSpace(line []byte, pos int) int {
	for pos < len(line) && isSpace(line[pos]) {
		pos++
	}
	return pos
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\v' || c == '\f'
}

func invalidTokenError(src *source.Source, text []byte, offset int) *minisculus.Error {
	end := 0
	for end < len(text) && !isSpace(text[end]) {
		end++
	}
	return minisculus.FormatErrorPos(source.NewPos(src, offset), ErrInvalidToken, "invalid token %q", text[:end])
}
