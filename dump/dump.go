// Package dump renders tokens and syntax trees as text.
package dump

import (
	"fmt"
	"strings"

	"github.com/ava12/minisculus/lexer"
	"github.com/ava12/minisculus/tree"
)

// Tokens returns tokens as "[If], [Id(x)], ..." on a single line.
func Tokens(tokens []*lexer.Token) string {
	var sb strings.Builder
	for i, t := range tokens {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteByte('[')
		sb.WriteString(t.String())
		sb.WriteByte(']')
	}
	sb.WriteByte('\n')
	return sb.String()
}

// Label returns node kind name for non-terminals and token representation for terminals.
func Label(n tree.Node) string {
	if t, f := n.(*tree.Terminal); f {
		return t.Token.String()
	}
	return n.Kind().String()
}

// Tree returns one node per line, children indented by indent relative to their parent.
func Tree(root tree.Node, indent string) string {
	var sb strings.Builder
	writeTree(&sb, root, indent, 0)
	return sb.String()
}

func writeTree(sb *strings.Builder, n tree.Node, indent string, level int) {
	sb.WriteString(strings.Repeat(indent, level))
	sb.WriteString(Label(n))
	if t, f := n.(*tree.Terminal); f && t.Token.Line() != 0 {
		fmt.Fprintf(sb, " @%d", t.Token.Line())
	}
	sb.WriteByte('\n')
	for _, c := range n.Children() {
		writeTree(sb, c, indent, level+1)
	}
}

// Dot returns GraphViz digraph of the tree. Terminal nodes are filled with gold.
// Node identifiers are paths: the root is "a", its children are "aa", "ab", and so on.
func Dot(root tree.Node) string {
	var sb strings.Builder
	sb.WriteString("digraph G {\n")
	writeDot(&sb, root, "a")
	sb.WriteString("}\n")
	return sb.String()
}

func writeDot(sb *strings.Builder, n tree.Node, id string) {
	attrs := ""
	if tree.IsTerminal(n) {
		attrs = ` fillcolor="gold" style="filled"`
	}
	fmt.Fprintf(sb, "  %s [label=%q%s]\n", id, Label(n), attrs)

	suffix := 'a'
	for _, c := range n.Children() {
		childID := id + string(suffix)
		fmt.Fprintf(sb, "  %s -> %s\n", id, childID)
		writeDot(sb, c, childID)
		suffix++
	}
}
