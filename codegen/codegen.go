// Package codegen translates syntax trees to stack machine instructions.
//
// Emitted instructions, one per line:
//
//	cPUSH <number>   push constant
//	rPUSH <name>     push variable value
//	LOAD <name>      pop value and store it in variable
//	OP1 <op>         pop two values, push the result of + - * or /
//	READ <name>      read value into variable
//	PRINT            pop value and print it
//	JUMP <label>     jump unconditionally
//	cJUMP <label>    pop value and jump if it is zero
//	<label>:         jump target
package codegen

import (
	"fmt"
	"strings"

	"github.com/ava12/minisculus/lexer"
	"github.com/ava12/minisculus/tree"
)

// Instruction mnemonics:
const (
	PushConst = "cPUSH"
	PushVar   = "rPUSH"
	Load      = "LOAD"
	Op        = "OP1"
	Read      = "READ"
	Print     = "PRINT"
	Jump      = "JUMP"
	CondJump  = "cJUMP"
)

const (
	DefaultLabelPrefix = "L"
	DefaultIndent      = "    "
)

// Option configures a Generator.
type Option func(*Generator)

// LabelPrefix sets the prefix of generated labels, labels are prefix followed by a number.
func LabelPrefix(prefix string) Option {
	return func(g *Generator) {
		g.labelPrefix = prefix
	}
}

// Indent sets the string preceding every instruction, labels are not indented.
func Indent(indent string) Option {
	return func(g *Generator) {
		g.indent = indent
	}
}

// Generator emits instructions for a single tree.
// Label numbers are unique within a Generator, so a Generator must not be shared between goroutines.
type Generator struct {
	labelPrefix string
	indent      string
	labels      int
	out         strings.Builder
}

// New creates a Generator.
func New(opts ...Option) *Generator {
	g := &Generator{labelPrefix: DefaultLabelPrefix, indent: DefaultIndent}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate returns instructions for root.
// Panics if the tree contains a node that cannot be built by grammar rules.
func (g *Generator) Generate(root tree.Node) string {
	g.out.Reset()
	g.node(root)
	return g.out.String()
}

// Labels returns the number of labels generated so far.
func (g *Generator) Labels() int {
	return g.labels
}

// Generate translates root using a new Generator.
func Generate(root tree.Node, opts ...Option) string {
	return New(opts...).Generate(root)
}

func (g *Generator) newLabel() string {
	label := fmt.Sprintf("%s%d", g.labelPrefix, g.labels)
	g.labels++
	return label
}

func (g *Generator) emit(mnemonic string, args ...string) {
	g.out.WriteString(g.indent)
	g.out.WriteString(mnemonic)
	for _, arg := range args {
		g.out.WriteByte(' ')
		g.out.WriteString(arg)
	}
	g.out.WriteByte('\n')
}

func (g *Generator) label(label string) {
	g.out.WriteString(label)
	g.out.WriteString(":\n")
}

func (g *Generator) node(n tree.Node) {
	switch n := n.(type) {
	case *tree.If:
		elseLabel := g.newLabel()
		skipLabel := g.newLabel()
		g.node(n.Cond)
		g.emit(CondJump, elseLabel)
		g.node(n.Body)
		g.emit(Jump, skipLabel)
		g.label(elseLabel)
		g.node(n.Alt)
		g.label(skipLabel)

	case *tree.While:
		headLabel := g.newLabel()
		exitLabel := g.newLabel()
		g.label(headLabel)
		g.node(n.Cond)
		g.emit(CondJump, exitLabel)
		g.node(n.Body)
		g.emit(Jump, headLabel)
		g.label(exitLabel)

	case *tree.Input:
		g.emit(Read, n.Name.Data())

	case *tree.Assign:
		g.node(n.Value)
		g.emit(Load, n.Name.Data())

	case *tree.Write:
		g.node(n.Value)
		g.emit(Print)

	case *tree.Begin:
		g.node(n.List)

	case *tree.StatementList:
		g.node(n.Stmt)
		g.node(n.More)

	case *tree.MoreStatements:
		g.node(n.Stmt)
		g.node(n.More)

	case *tree.Expression:
		g.node(n.Term)
		g.node(n.More)

	case *tree.MoreExpression:
		g.node(n.Term)
		g.emit(Op, operator(n.Op))
		g.node(n.More)

	case *tree.Term:
		g.node(n.Factor)
		g.node(n.More)

	case *tree.MoreTerms:
		g.node(n.Factor)
		g.emit(Op, operator(n.Op))
		g.node(n.More)

	case *tree.Factor:
		g.factor(n)

	case *tree.Null:

	default:
		panic(fmt.Sprintf("codegen: unexpected %T node", n))
	}
}

func (g *Generator) factor(n *tree.Factor) {
	switch {
	case n.LPar != nil:
		g.node(n.Inner)
	case n.Minus != nil:
		g.emit(PushConst, "-"+n.Operand.Data())
	case n.Operand.TokenKind() == lexer.Id:
		g.emit(PushVar, n.Operand.Data())
	default:
		g.emit(PushConst, n.Operand.Data())
	}
}

func operator(t *tree.Terminal) string {
	switch t.TokenKind() {
	case lexer.Add:
		return "+"
	case lexer.Sub:
		return "-"
	case lexer.Mul:
		return "*"
	case lexer.Div:
		return "/"
	}
	panic(fmt.Sprintf("codegen: unexpected operator %s", t.TokenKind()))
}
