// Package parser defines a generic recursive-descent parser.
//
// A grammar is a set of named rules, each rule is an ordered list of alternatives.
// An alternative is a predicate deciding whether it applies to the next token and a production
// that consumes tokens, invokes other rules, and builds a tree node.
// The parser looks at one token ahead and never backtracks: the first alternative
// whose predicate holds is applied, a consumed token is never seen again.
package parser

import (
	"log/slog"

	"github.com/ava12/minisculus/lexer"
	"github.com/ava12/minisculus/tree"
)

// Predicate reports whether an alternative applies to the current position.
// Predicates must not consume tokens.
type Predicate func(c *Context) bool

// Production consumes tokens and returns the built node.
// Production may return nil after a failed Context call, the result is discarded in that case.
type Production func(c *Context) tree.Node

type alternative struct {
	predicate  Predicate
	production Production
}

type rule struct {
	name         string
	alternatives []alternative
}

func (r *rule) find(c *Context) int {
	for i, alt := range r.alternatives {
		if alt.predicate(c) {
			return i
		}
		if c.err != nil {
			break
		}
	}
	return -1
}

// Parser holds a rule set. Parser is not modified by parsing, but AddRule is not safe for concurrent use.
type Parser struct {
	rules  map[string]*rule
	names  []string
	logger *slog.Logger
}

// New creates a Parser with no rules.
func New() *Parser {
	return &Parser{
		rules:  make(map[string]*rule),
		logger: slog.New(slog.DiscardHandler),
	}
}

// SetLogger sets a logger receiving a debug record for every rule invocation. nil disables logging.
func (p *Parser) SetLogger(logger *slog.Logger) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	p.logger = logger
}

// AddRule appends an alternative to the named rule, creating the rule if needed.
// Alternatives are tried in the order they were added. The first added rule is the root rule.
func (p *Parser) AddRule(name string, predicate Predicate, production Production) {
	r := p.rules[name]
	if r == nil {
		r = &rule{name: name}
		p.rules[name] = r
		p.names = append(p.names, name)
	}
	r.alternatives = append(r.alternatives, alternative{predicate, production})
}

// Root returns the root rule name or empty string.
func (p *Parser) Root() string {
	if len(p.names) == 0 {
		return ""
	}
	return p.names[0]
}

// RuleNames returns rule names in the order they were first added.
func (p *Parser) RuleNames() []string {
	res := make([]string, len(p.names))
	copy(res, p.names)
	return res
}

// Alternatives returns the number of alternatives of the named rule.
func (p *Parser) Alternatives(name string) int {
	r := p.rules[name]
	if r == nil {
		return 0
	}
	return len(r.alternatives)
}

// Parse applies the root rule to tokens.
// Returns an error if tokens do not match or if some tokens remain unconsumed.
func (p *Parser) Parse(tokens []*lexer.Token) (tree.Node, error) {
	if len(p.names) == 0 {
		return nil, noRulesError()
	}
	return p.ParseRule(p.names[0], tokens)
}

// ParseRule applies the named rule to tokens.
// Returns an error if tokens do not match or if some tokens remain unconsumed.
func (p *Parser) ParseRule(name string, tokens []*lexer.Token) (tree.Node, error) {
	c := &Context{parser: p, tokens: tokens}
	result := c.Invoke(name)
	if c.err == nil && c.pos < len(tokens) {
		c.Fail(trailingInputError(tokens[c.pos]))
	}
	if c.err != nil {
		p.logger.Debug("parse failed", "rule", name, "error", c.err)
		return nil, c.err
	}

	return result, nil
}

// Context is the state of a single parse: token cursor, current depth, and the first error.
// Once an error occurs all Context methods become no-ops and predicates see no tokens.
type Context struct {
	parser *Parser
	tokens []*lexer.Token
	pos    int
	depth  int
	err    error
}

// Err returns the first error or nil.
func (c *Context) Err() error {
	return c.err
}

// Fail records an error if there is none yet.
func (c *Context) Fail(e error) {
	if c.err == nil && e != nil {
		c.err = e
	}
}

// Next returns the next unconsumed token or nil at the end of input.
func (c *Context) Next() *lexer.Token {
	if c.err != nil || c.pos >= len(c.tokens) {
		return nil
	}
	return c.tokens[c.pos]
}

// Match reports whether the next token is of type k.
func (c *Context) Match(k lexer.Kind) bool {
	t := c.Next()
	return t != nil && t.Kind() == k
}

// MatchRule reports whether some alternative of the named rule applies to the next token.
func (c *Context) MatchRule(name string) bool {
	r := c.rule(name)
	return r != nil && r.find(c) >= 0
}

// Consume removes the next token if it is of type k and returns a terminal node holding it.
// Fails with ErrUnexpectedToken or ErrUnexpectedEoi otherwise.
func (c *Context) Consume(k lexer.Kind) *tree.Terminal {
	if c.err != nil {
		return nil
	}

	t := c.Next()
	if t == nil {
		c.Fail(unexpectedEoiError(c.last(), k.String()))
		return nil
	}
	if t.Kind() != k {
		c.Fail(unexpectedTokenError(t, k.String()))
		return nil
	}

	c.pos++
	return tree.NewTerminal(t)
}

// Invoke applies the first matching alternative of the named rule and returns its result.
// Fails with ErrUnexpectedToken or ErrUnexpectedEoi if no alternative applies.
func (c *Context) Invoke(name string) tree.Node {
	if c.err != nil {
		return nil
	}

	r := c.rule(name)
	if r == nil {
		return nil
	}

	i := r.find(c)
	if i < 0 {
		if t := c.Next(); t != nil {
			c.Fail(unexpectedTokenError(t, name))
		} else {
			c.Fail(unexpectedEoiError(c.last(), name))
		}
		return nil
	}

	if next := c.Next(); next != nil {
		c.parser.logger.Debug("rule", "name", name, "alternative", i, "depth", c.depth, "token", next.String(), "line", next.Line())
	} else {
		c.parser.logger.Debug("rule", "name", name, "alternative", i, "depth", c.depth)
	}

	c.depth++
	result := r.alternatives[i].production(c)
	c.depth--
	if c.err != nil {
		return nil
	}

	return result
}

func (c *Context) rule(name string) *rule {
	if c.err != nil {
		return nil
	}

	r := c.parser.rules[name]
	if r == nil {
		c.Fail(unknownRuleError(name))
	}
	return r
}

func (c *Context) last() *lexer.Token {
	if c.pos == 0 || c.pos > len(c.tokens) {
		return nil
	}
	return c.tokens[c.pos-1]
}
