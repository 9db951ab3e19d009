package tree

// NodeVisitor is called for every visited node.
// walkChildren = false skips children of n, walkSiblings = false skips following siblings of n.
type NodeVisitor func(n Node) (walkChildren, walkSiblings bool)

type WalkMode int

const (
	WalkLtr WalkMode = 0
	WalkRtl WalkMode = 1
)

// Walk visits n and its descendants in preorder.
func Walk(n Node, mode WalkMode, visitor NodeVisitor) {
	if n != nil {
		visitNode(n, visitor, (mode&WalkRtl) != 0)
	}
}

func visitNode(n Node, v NodeVisitor, rtl bool) (visitSiblings bool) {
	vc, vs := v(n)
	if !vc {
		return vs
	}

	cs := n.Children()
	if rtl {
		for i := len(cs) - 1; i >= 0 && vc; i-- {
			vc = visitNode(cs[i], v, true)
		}
	} else {
		for i := 0; i < len(cs) && vc; i++ {
			vc = visitNode(cs[i], v, false)
		}
	}

	return vs
}

const AllLevels = -1

// NumOfChildren counts children of parent down to given depth, levels = 0 counts direct children only.
func NumOfChildren(parent Node, levels int) int {
	if parent == nil {
		return 0
	}

	i := 0
	for _, c := range parent.Children() {
		i++
		if levels != 0 {
			i += NumOfChildren(c, levels-1)
		}
	}
	return i
}

// NthChild returns i-th child of n, negative i counts from the last child (-1).
// Returns nil if there is no such child.
func NthChild(n Node, i int) Node {
	if n == nil {
		return nil
	}

	cs := n.Children()
	if i < 0 {
		i += len(cs)
	}
	if i < 0 || i >= len(cs) {
		return nil
	}
	return cs[i]
}

// FirstTerminal returns the leftmost terminal of n or nil if n spans no tokens.
func FirstTerminal(n Node) *Terminal {
	return edgeTerminal(n, WalkLtr)
}

// LastTerminal returns the rightmost terminal of n or nil if n spans no tokens.
func LastTerminal(n Node) *Terminal {
	return edgeTerminal(n, WalkRtl)
}

func edgeTerminal(n Node, mode WalkMode) (res *Terminal) {
	Walk(n, mode, func(n Node) (bool, bool) {
		if res != nil {
			return false, false
		}

		if t, f := n.(*Terminal); f {
			res = t
			return false, false
		}
		return true, true
	})
	return
}

// Terminals returns all terminals of n from left to right.
func Terminals(n Node) []*Terminal {
	res := make([]*Terminal, 0)
	Walk(n, WalkLtr, func(n Node) (bool, bool) {
		if t, f := n.(*Terminal); f {
			res = append(res, t)
		}
		return true, true
	})
	return res
}
