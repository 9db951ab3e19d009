package grammar

import (
	"github.com/ava12/minisculus/lexer"
	"github.com/ava12/minisculus/parser"
	"github.com/ava12/minisculus/tree"
)

// Rule names:
const (
	Program        = "program"
	Statement      = "stmt"
	StatementList  = "stmtlist"
	MoreStatements = "stmtlist'"
	Expression     = "expr"
	MoreExpression = "expr'"
	Term           = "term"
	MoreTerms      = "term'"
	Factor         = "factor"
	AddOp          = "addop"
	MulOp          = "mulop"
)

/*
NewParser returns a new parser having all rules of the language:

	program   -> stmt
	stmt      -> IF expr THEN stmt ELSE stmt
	           | WHILE expr DO stmt
	           | INPUT ID
	           | ID ASSIGN expr
	           | WRITE expr
	           | BEGIN stmtlist END
	stmtlist  -> stmt stmtlist'
	stmtlist' -> SEMICOLON stmt stmtlist'
	           | .
	expr      -> term expr'
	expr'     -> addop term expr'
	           | .
	term      -> factor term'
	term'     -> mulop factor term'
	           | .
	factor    -> LPAR expr RPAR
	           | ID
	           | NUM
	           | SUB NUM
	addop     -> ADD | SUB
	mulop     -> MUL | DIV

Program is the root rule.
*/
func NewParser() *parser.Parser {
	p := parser.New()
	addStatementRules(p)
	addExpressionRules(p)
	return p
}

func match(k lexer.Kind) parser.Predicate {
	return func(c *parser.Context) bool {
		return c.Match(k)
	}
}

func matchRule(name string) parser.Predicate {
	return func(c *parser.Context) bool {
		return c.MatchRule(name)
	}
}

func notRule(name string) parser.Predicate {
	return func(c *parser.Context) bool {
		return !c.MatchRule(name)
	}
}

func null(*parser.Context) tree.Node {
	return &tree.Null{}
}

func consume(k lexer.Kind) parser.Production {
	return func(c *parser.Context) tree.Node {
		return c.Consume(k)
	}
}

func addStatementRules(p *parser.Parser) {
	p.AddRule(Program, func(*parser.Context) bool { return true }, func(c *parser.Context) tree.Node {
		return c.Invoke(Statement)
	})

	p.AddRule(Statement, match(lexer.If), func(c *parser.Context) tree.Node {
		return &tree.If{
			If:   c.Consume(lexer.If),
			Cond: c.Invoke(Expression),
			Then: c.Consume(lexer.Then),
			Body: c.Invoke(Statement),
			Else: c.Consume(lexer.Else),
			Alt:  c.Invoke(Statement),
		}
	})

	p.AddRule(Statement, match(lexer.While), func(c *parser.Context) tree.Node {
		return &tree.While{
			While: c.Consume(lexer.While),
			Cond:  c.Invoke(Expression),
			Do:    c.Consume(lexer.Do),
			Body:  c.Invoke(Statement),
		}
	})

	p.AddRule(Statement, match(lexer.Input), func(c *parser.Context) tree.Node {
		return &tree.Input{
			Input: c.Consume(lexer.Input),
			Name:  c.Consume(lexer.Id),
		}
	})

	p.AddRule(Statement, match(lexer.Id), func(c *parser.Context) tree.Node {
		return &tree.Assign{
			Name:   c.Consume(lexer.Id),
			Assign: c.Consume(lexer.Assign),
			Value:  c.Invoke(Expression),
		}
	})

	p.AddRule(Statement, match(lexer.Write), func(c *parser.Context) tree.Node {
		return &tree.Write{
			Write: c.Consume(lexer.Write),
			Value: c.Invoke(Expression),
		}
	})

	p.AddRule(Statement, match(lexer.Begin), func(c *parser.Context) tree.Node {
		return &tree.Begin{
			Begin: c.Consume(lexer.Begin),
			List:  c.Invoke(StatementList),
			End:   c.Consume(lexer.End),
		}
	})

	p.AddRule(StatementList, matchRule(Statement), func(c *parser.Context) tree.Node {
		return &tree.StatementList{
			Stmt: c.Invoke(Statement),
			More: c.Invoke(MoreStatements),
		}
	})

	p.AddRule(MoreStatements, match(lexer.Semicolon), func(c *parser.Context) tree.Node {
		return &tree.MoreStatements{
			Semicolon: c.Consume(lexer.Semicolon),
			Stmt:      c.Invoke(Statement),
			More:      c.Invoke(MoreStatements),
		}
	})
	p.AddRule(MoreStatements, func(c *parser.Context) bool { return !c.Match(lexer.Semicolon) }, null)
}

func addExpressionRules(p *parser.Parser) {
	p.AddRule(Expression, matchRule(Term), func(c *parser.Context) tree.Node {
		return &tree.Expression{
			Term: c.Invoke(Term),
			More: c.Invoke(MoreExpression),
		}
	})

	p.AddRule(MoreExpression, matchRule(AddOp), func(c *parser.Context) tree.Node {
		return &tree.MoreExpression{
			Op:   terminal(c.Invoke(AddOp)),
			Term: c.Invoke(Term),
			More: c.Invoke(MoreExpression),
		}
	})
	p.AddRule(MoreExpression, notRule(AddOp), null)

	p.AddRule(Term, matchRule(Factor), func(c *parser.Context) tree.Node {
		return &tree.Term{
			Factor: c.Invoke(Factor),
			More:   c.Invoke(MoreTerms),
		}
	})

	p.AddRule(MoreTerms, matchRule(MulOp), func(c *parser.Context) tree.Node {
		return &tree.MoreTerms{
			Op:     terminal(c.Invoke(MulOp)),
			Factor: c.Invoke(Factor),
			More:   c.Invoke(MoreTerms),
		}
	})
	p.AddRule(MoreTerms, notRule(MulOp), null)

	p.AddRule(MulOp, match(lexer.Mul), consume(lexer.Mul))
	p.AddRule(MulOp, match(lexer.Div), consume(lexer.Div))
	p.AddRule(AddOp, match(lexer.Add), consume(lexer.Add))
	p.AddRule(AddOp, match(lexer.Sub), consume(lexer.Sub))

	p.AddRule(Factor, match(lexer.LPar), func(c *parser.Context) tree.Node {
		return &tree.Factor{
			LPar:  c.Consume(lexer.LPar),
			Inner: c.Invoke(Expression),
			RPar:  c.Consume(lexer.RPar),
		}
	})
	p.AddRule(Factor, match(lexer.Id), func(c *parser.Context) tree.Node {
		return &tree.Factor{Operand: c.Consume(lexer.Id)}
	})
	p.AddRule(Factor, match(lexer.Num), func(c *parser.Context) tree.Node {
		return &tree.Factor{Operand: c.Consume(lexer.Num)}
	})
	p.AddRule(Factor, match(lexer.Sub), func(c *parser.Context) tree.Node {
		return &tree.Factor{
			Minus:   c.Consume(lexer.Sub),
			Operand: c.Consume(lexer.Num),
		}
	})
}

// terminal converts a result of a rule consuming a single token, nil after an error.
func terminal(n tree.Node) *tree.Terminal {
	t, _ := n.(*tree.Terminal)
	return t
}
