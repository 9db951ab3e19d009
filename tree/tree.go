// Package tree defines syntax tree nodes built by parser and traversal functions.
//
// Every node kind has its own type, the set of types is closed.
// Children of a node are fixed by the grammar production that built it,
// e.g. If always has six children: IF token, condition, THEN token, statement, ELSE token, statement.
// Empty productions are represented by Null nodes.
package tree

import (
	"github.com/ava12/minisculus/lexer"
)

// Kind is the node type.
type Kind int

const (
	IfKind Kind = iota
	WhileKind
	InputKind
	AssignKind
	WriteKind
	BeginKind
	StatementListKind
	MoreStatementsKind
	ExpressionKind
	MoreExpressionKind
	TermKind
	MoreTermsKind
	FactorKind
	TerminalKind
	NullKind
)

var kindNames = []string{
	"If", "While", "Input", "Assign", "Write", "Begin", "StatementList", "MoreStatements",
	"Expression", "MoreExpression", "Term", "MoreTerms", "Factor", "Terminal", "Null",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "Kind(?)"
	}
	return kindNames[k]
}

// Node is a syntax tree node. Implemented only by types of this package.
type Node interface {
	Kind() Kind
	Children() []Node
	node()
}

// Terminal holds a consumed token.
type Terminal struct {
	Token *lexer.Token
}

func NewTerminal(t *lexer.Token) *Terminal {
	return &Terminal{t}
}

func (*Terminal) Kind() Kind              { return TerminalKind }
func (*Terminal) Children() []Node        { return nil }
func (*Terminal) node()                   {}
func (t *Terminal) Data() string          { return t.Token.Text() }
func (t *Terminal) TokenKind() lexer.Kind { return t.Token.Kind() }

// Null is an empty production.
type Null struct{}

func (*Null) Kind() Kind       { return NullKind }
func (*Null) Children() []Node { return nil }
func (*Null) node()            {}

// If is IF expr THEN stmt ELSE stmt.
type If struct {
	If   *Terminal
	Cond Node
	Then *Terminal
	Body Node
	Else *Terminal
	Alt  Node
}

func (*If) Kind() Kind { return IfKind }
func (*If) node()      {}
func (n *If) Children() []Node {
	return []Node{n.If, n.Cond, n.Then, n.Body, n.Else, n.Alt}
}

// While is WHILE expr DO stmt.
type While struct {
	While *Terminal
	Cond  Node
	Do    *Terminal
	Body  Node
}

func (*While) Kind() Kind { return WhileKind }
func (*While) node()      {}
func (n *While) Children() []Node {
	return []Node{n.While, n.Cond, n.Do, n.Body}
}

// Input is INPUT ID.
type Input struct {
	Input *Terminal
	Name  *Terminal
}

func (*Input) Kind() Kind { return InputKind }
func (*Input) node()      {}
func (n *Input) Children() []Node {
	return []Node{n.Input, n.Name}
}

// Assign is ID ASSIGN expr.
type Assign struct {
	Name   *Terminal
	Assign *Terminal
	Value  Node
}

func (*Assign) Kind() Kind { return AssignKind }
func (*Assign) node()      {}
func (n *Assign) Children() []Node {
	return []Node{n.Name, n.Assign, n.Value}
}

// Write is WRITE expr.
type Write struct {
	Write *Terminal
	Value Node
}

func (*Write) Kind() Kind { return WriteKind }
func (*Write) node()      {}
func (n *Write) Children() []Node {
	return []Node{n.Write, n.Value}
}

// Begin is BEGIN stmtlist END.
type Begin struct {
	Begin *Terminal
	List  Node
	End   *Terminal
}

func (*Begin) Kind() Kind { return BeginKind }
func (*Begin) node()      {}
func (n *Begin) Children() []Node {
	return []Node{n.Begin, n.List, n.End}
}

// StatementList is stmt stmtlist'.
type StatementList struct {
	Stmt Node
	More Node
}

func (*StatementList) Kind() Kind { return StatementListKind }
func (*StatementList) node()      {}
func (n *StatementList) Children() []Node {
	return []Node{n.Stmt, n.More}
}

// MoreStatements is SEMICOLON stmt stmtlist'.
type MoreStatements struct {
	Semicolon *Terminal
	Stmt      Node
	More      Node
}

func (*MoreStatements) Kind() Kind { return MoreStatementsKind }
func (*MoreStatements) node()      {}
func (n *MoreStatements) Children() []Node {
	return []Node{n.Semicolon, n.Stmt, n.More}
}

// Expression is term expr'.
type Expression struct {
	Term Node
	More Node
}

func (*Expression) Kind() Kind { return ExpressionKind }
func (*Expression) node()      {}
func (n *Expression) Children() []Node {
	return []Node{n.Term, n.More}
}

// MoreExpression is addop term expr'.
type MoreExpression struct {
	Op   *Terminal
	Term Node
	More Node
}

func (*MoreExpression) Kind() Kind { return MoreExpressionKind }
func (*MoreExpression) node()      {}
func (n *MoreExpression) Children() []Node {
	return []Node{n.Op, n.Term, n.More}
}

// Term is factor term'.
type Term struct {
	Factor Node
	More   Node
}

func (*Term) Kind() Kind { return TermKind }
func (*Term) node()      {}
func (n *Term) Children() []Node {
	return []Node{n.Factor, n.More}
}

// MoreTerms is mulop factor term'.
type MoreTerms struct {
	Op     *Terminal
	Factor Node
	More   Node
}

func (*MoreTerms) Kind() Kind { return MoreTermsKind }
func (*MoreTerms) node()      {}
func (n *MoreTerms) Children() []Node {
	return []Node{n.Op, n.Factor, n.More}
}

// Factor is one of LPAR expr RPAR, ID, NUM, or SUB NUM.
// LPar, Inner, and RPar are set for parenthesized expression only, Minus is set for negative number only,
// Operand is set for all forms except parenthesized expression.
type Factor struct {
	LPar    *Terminal
	Inner   Node
	RPar    *Terminal
	Minus   *Terminal
	Operand *Terminal
}

func (*Factor) Kind() Kind { return FactorKind }
func (*Factor) node()      {}
func (n *Factor) Children() []Node {
	switch {
	case n.LPar != nil:
		return []Node{n.LPar, n.Inner, n.RPar}
	case n.Minus != nil:
		return []Node{n.Minus, n.Operand}
	default:
		return []Node{n.Operand}
	}
}

// IsTerminal reports whether n is a *Terminal.
func IsTerminal(n Node) bool {
	_, f := n.(*Terminal)
	return f
}
