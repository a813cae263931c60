package parser

import (
	"io"
	"strconv"

	"github.com/pontaoski/dpc/ast"
	"github.com/pontaoski/dpc/errors"
	"github.com/pontaoski/dpc/types"
)

const commaPrecedence = 10

var binaryPrecedence = map[string]int{
	",":  commaPrecedence,
	"<":  20,
	">":  20,
	"<=": 20,
	">=": 20,
	"+":  30,
	"-":  30,
	"*":  40,
	"/":  40,
}

var typePrecedence = map[string]int{
	"->": 10,
	"|":  20,
	"*":  30,
}

type Parser struct {
	tokens []types.Token
	pos    int

	expr climber
	kind climber
}

// New creates a parser over a token stream as produced by lexer.Tokenize.
// Reads past the end of the stream yield end-of-input.
func New(tokens []types.Token) *Parser {
	p := &Parser{tokens: tokens}

	p.expr = climber{
		p:     p,
		table: binaryPrecedence,
		operand: func() (node, error) {
			return p.parsePrimary()
		},
		fold: func(op types.Token, lhs, rhs node) node {
			return ast.Binary{
				Op:  op.Text,
				Lhs: lhs.(ast.Expression),
				Rhs: rhs.(ast.Expression),
				Pos: op.Location.From,
			}
		},
	}
	p.kind = climber{
		p:     p,
		table: typePrecedence,
		operand: func() (node, error) {
			return p.parseTypeAtom()
		},
		fold: func(op types.Token, lhs, rhs node) node {
			l, r := lhs.(ast.TypeExpr), rhs.(ast.TypeExpr)
			switch op.Text {
			case "->":
				return ast.Function{Left: l, Right: r}
			case "|":
				return ast.Sum{Left: l, Right: r}
			}
			return ast.Product{Left: l, Right: r}
		},
	}

	return p
}

func (p *Parser) end() types.Token {
	tok := types.Token{Kind: types.EOF}
	if len(p.tokens) > 0 {
		tok.Location = p.tokens[len(p.tokens)-1].Location
	}
	return tok
}

func (p *Parser) skipComments() {
	for p.pos < len(p.tokens) && p.tokens[p.pos].Kind == types.COMMENT {
		p.pos++
	}
}

func (p *Parser) peek() types.Token {
	p.skipComments()
	if p.pos >= len(p.tokens) {
		return p.end()
	}
	return p.tokens[p.pos]
}

// advance consumes the lookahead token. End-of-input and unknown tokens are
// never consumed.
func (p *Parser) advance() types.Token {
	tok := p.peek()
	if p.pos < len(p.tokens) && tok.Kind != types.EOF && tok.Kind != types.UNKNOWN {
		p.pos++
	}
	return tok
}

func (p *Parser) peekIs(kind types.TokenKind, texts ...string) bool {
	return p.peek().Is(kind, texts...)
}

func (p *Parser) unexpected(tok types.Token, expected ...string) error {
	if tok.Kind == types.UNKNOWN {
		return errors.LexError{Char: tok.Text, Location: tok.Location}
	}
	return errors.ParseError{
		Expected: expected,
		Got:      tok.Kind,
		Text:     tok.Text,
		Location: tok.Location,
	}
}

func (p *Parser) expect(what string, kind types.TokenKind, texts ...string) (types.Token, error) {
	tok := p.peek()
	if !tok.Is(kind, texts...) {
		return tok, p.unexpected(tok, what)
	}
	return p.advance(), nil
}

// Next parses the next top-level item, skipping stray semicolons. It returns
// io.EOF once the input is exhausted.
func (p *Parser) Next() (ast.TopLevel, error) {
	for {
		tok := p.peek()

		switch {
		case tok.Kind == types.EOF:
			return nil, io.EOF
		case tok.Is(types.PUNCT, ";"):
			p.advance()
		case tok.Is(types.IDENT, "type"):
			return p.parseTypeDecl()
		case tok.Kind == types.FUNC:
			return p.parseFunction()
		default:
			return nil, p.unexpected(tok, "'type'", "'func'", "';'")
		}
	}
}

// ParseProgram parses every remaining top-level item.
func (p *Parser) ParseProgram() ([]ast.TopLevel, error) {
	var ret []ast.TopLevel

	for {
		tl, err := p.Next()
		if err == io.EOF {
			return ret, nil
		} else if err != nil {
			return ret, err
		}
		ret = append(ret, tl)
	}
}

func (p *Parser) parseTypeDecl() (ast.TopLevel, error) {
	start := p.advance()

	name, err := p.expect("IDENT", types.IDENT)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect("'='", types.EQUAL); err != nil {
		return nil, err
	}

	kind, err := p.parseType()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect("';'", types.PUNCT, ";"); err != nil {
		return nil, err
	}

	return ast.TypeDecl{
		Name: name.Text,
		Kind: kind,
		Pos:  start.Location.From,
	}, nil
}

func (p *Parser) parseParam() (ast.Param, error) {
	name, err := p.expect("IDENT", types.IDENT)
	if err != nil {
		return ast.Param{}, err
	}
	if _, err := p.expect("':'", types.COLON); err != nil {
		return ast.Param{}, err
	}

	kind, err := p.parseType()
	if err != nil {
		return ast.Param{}, err
	}

	return ast.Param{Name: name.Text, Kind: kind, Pos: name.Location.From}, nil
}

func (p *Parser) parseFunction() (ast.TopLevel, error) {
	start := p.advance()

	name, err := p.expect("IDENT", types.IDENT)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect("'('", types.PUNCT, "("); err != nil {
		return nil, err
	}

	var params []ast.Param
	if !p.peekIs(types.PUNCT, ")") {
		for {
			param, err := p.parseParam()
			if err != nil {
				return nil, err
			}
			params = append(params, param)

			if p.peekIs(types.PUNCT, ",") {
				p.advance()
				continue
			}
			break
		}
	}
	if _, err := p.expect("')'", types.PUNCT, ")"); err != nil {
		return nil, err
	}

	var ret ast.TypeExpr
	if p.peekIs(types.ARROW) {
		p.advance()
		ret, err = p.parseType()
		if err != nil {
			return nil, err
		}
	}

	if _, err := p.expect("'{'", types.PUNCT, "{"); err != nil {
		return nil, err
	}

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	return ast.FunctionDef{
		Name:    name.Text,
		Params:  params,
		Returns: ret,
		Body:    body,
		Pos:     start.Location.From,
	}, nil
}

// parseBlock should be called when the parser is past the opening brace.
func (p *Parser) parseBlock() ([]ast.Expression, error) {
	var statements []ast.Expression

	for {
		tok := p.peek()

		switch {
		case tok.Is(types.PUNCT, "}"):
			p.advance()
			return statements, nil
		case tok.Is(types.PUNCT, ";"):
			p.advance()
			continue
		case tok.Kind == types.EOF, tok.Kind == types.UNKNOWN:
			return nil, p.unexpected(tok, "statement", "'}'")
		}

		stmt, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		statements = append(statements, stmt)

		if _, err := p.expect("';'", types.PUNCT, ";"); err != nil {
			return nil, err
		}
	}
}

func (p *Parser) parseExpression() (ast.Expression, error) {
	lhs, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	expr, err := p.expr.climb(0, lhs)
	if err != nil {
		return nil, err
	}
	return expr.(ast.Expression), nil
}

// parseArgument parses one call argument. Commas separate arguments here, so
// climbing starts just above the comma operator.
func (p *Parser) parseArgument() (ast.Expression, error) {
	lhs, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	expr, err := p.expr.climb(commaPrecedence+1, lhs)
	if err != nil {
		return nil, err
	}
	return expr.(ast.Expression), nil
}

func (p *Parser) parsePrimary() (ast.Expression, error) {
	tok := p.peek()

	switch tok.Kind {
	case types.INT:
		p.advance()
		val, err := strconv.ParseInt(tok.Text, 10, 32)
		if err != nil {
			return nil, p.unexpected(tok, "32-bit integer literal")
		}
		return ast.IntLiteral{Value: val, Pos: tok.Location.From}, nil
	case types.FLOAT:
		p.advance()
		val, err := strconv.ParseFloat(tok.Text, 32)
		if err != nil {
			return nil, p.unexpected(tok, "32-bit float literal")
		}
		return ast.FloatLiteral{Value: val, Pos: tok.Location.From}, nil
	case types.TRUE, types.FALSE:
		p.advance()
		return ast.BoolLiteral{Value: tok.Kind == types.TRUE, Pos: tok.Location.From}, nil
	case types.IDENT:
		return p.parseIdentifier()
	case types.LET:
		return p.parseVarDecl()
	case types.RETURN:
		p.advance()
		val, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		return ast.Return{Value: val, Pos: tok.Location.From}, nil
	case types.PUNCT:
		if tok.Text != "(" {
			break
		}
		p.advance()
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect("')'", types.PUNCT, ")"); err != nil {
			return nil, err
		}
		return expr, nil
	}

	return nil, p.unexpected(tok, "expression")
}

func (p *Parser) parseIdentifier() (ast.Expression, error) {
	name := p.advance()

	switch {
	case p.peekIs(types.PUNCT, "("):
		p.advance()

		var args []ast.Expression
		if !p.peekIs(types.PUNCT, ")") {
			for {
				arg, err := p.parseArgument()
				if err != nil {
					return nil, err
				}
				args = append(args, arg)

				if p.peekIs(types.PUNCT, ",") {
					p.advance()
					continue
				}
				break
			}
		}
		if _, err := p.expect("')'", types.PUNCT, ")"); err != nil {
			return nil, err
		}

		return ast.Call{Callee: name.Text, Args: args, Pos: name.Location.From}, nil
	case p.peekIs(types.EQUAL):
		p.advance()

		val, err := p.parseExpression()
		if err != nil {
			return nil, err
		}

		return ast.Assign{Name: name.Text, Value: val, Pos: name.Location.From}, nil
	}

	return ast.Variable{Name: name.Text, Pos: name.Location.From}, nil
}

func (p *Parser) parseVarDecl() (ast.Expression, error) {
	start := p.advance()

	name, err := p.expect("IDENT", types.IDENT)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect("':'", types.COLON); err != nil {
		return nil, err
	}

	kind, err := p.parseType()
	if err != nil {
		return nil, err
	}

	decl := ast.VarDecl{Name: name.Text, Kind: kind, Pos: start.Location.From}
	if p.peekIs(types.EQUAL) {
		p.advance()

		decl.Init, err = p.parseExpression()
		if err != nil {
			return nil, err
		}
	}

	return decl, nil
}

func (p *Parser) parseType() (ast.TypeExpr, error) {
	lhs, err := p.parseTypeAtom()
	if err != nil {
		return nil, err
	}

	kind, err := p.kind.climb(0, lhs)
	if err != nil {
		return nil, err
	}
	return kind.(ast.TypeExpr), nil
}

func (p *Parser) parseTypeAtom() (ast.TypeExpr, error) {
	tok := p.peek()

	switch {
	case tok.Kind == types.IDENT:
		p.advance()
		return ast.Primitive{Name: tok.Text, Pos: tok.Location.From}, nil
	case tok.Is(types.PUNCT, "("):
		p.advance()
		kind, err := p.parseType()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect("')'", types.PUNCT, ")"); err != nil {
			return nil, err
		}
		return kind, nil
	}

	return nil, p.unexpected(tok, "type name")
}
