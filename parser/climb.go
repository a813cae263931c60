package parser

import (
	"github.com/pontaoski/dpc/types"
)

// node is either an ast.Expression or an ast.TypeExpr; the climber does not
// care which grammar it is folding.
type node interface{}

// climber is the precedence-climbing loop shared by the expression and the
// type-expression grammars. Only the operator table and the way operands are
// read and combined differ between the two.
type climber struct {
	p       *Parser
	table   map[string]int
	operand func() (node, error)
	fold    func(op types.Token, lhs, rhs node) node
}

// precedence is -1 for anything that is not an operator of this grammar.
func (c climber) precedence(tok types.Token) int {
	switch tok.Kind {
	case types.OPERATOR, types.ARROW, types.PUNCT:
		if prec, ok := c.table[tok.Text]; ok {
			return prec
		}
	}
	return -1
}

func (c climber) climb(minPrec int, lhs node) (node, error) {
	for {
		op := c.p.peek()
		prec := c.precedence(op)
		if prec < minPrec {
			return lhs, nil
		}
		c.p.advance()

		rhs, err := c.operand()
		if err != nil {
			return nil, err
		}

		if next := c.precedence(c.p.peek()); prec < next {
			rhs, err = c.climb(prec+1, rhs)
			if err != nil {
				return nil, err
			}
		}

		lhs = c.fold(op, lhs, rhs)
	}
}
