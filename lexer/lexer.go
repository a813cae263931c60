package lexer

import (
	"bufio"
	"io"

	"github.com/pontaoski/dpc/types"
)

var keywords = map[string]types.TokenKind{
	"func":   types.FUNC,
	"let":    types.LET,
	"return": types.RETURN,
	"true":   types.TRUE,
	"false":  types.FALSE,
}

var single = map[rune]types.TokenKind{
	'(': types.PUNCT,
	')': types.PUNCT,
	'{': types.PUNCT,
	'}': types.PUNCT,
	',': types.PUNCT,
	';': types.PUNCT,
	':': types.COLON,
	'=': types.EQUAL,
	'+': types.OPERATOR,
	'-': types.OPERATOR,
	'*': types.OPERATOR,
	'/': types.OPERATOR,
	'<': types.OPERATOR,
	'>': types.OPERATOR,
	'|': types.OPERATOR,
}

type Lexer struct {
	pos    types.Position
	last   types.Position
	reader *bufio.Reader
	done   bool
}

func NewLexer(reader io.Reader, filename string) *Lexer {
	return &Lexer{
		pos:    types.Position{Line: 1, Column: 0, Filename: filename},
		reader: bufio.NewReader(reader),
	}
}

func (l *Lexer) newline() {
	l.pos.Line++
	l.pos.Column = 0
}

func (l *Lexer) read() (rune, error) {
	r, _, err := l.reader.ReadRune()
	if err != nil {
		return 0, err
	}

	l.last = l.pos
	if r == '\n' {
		l.newline()
	} else {
		l.pos.Column++
	}

	return r, nil
}

// backup must only follow a successful read.
func (l *Lexer) backup() error {
	if err := l.reader.UnreadRune(); err != nil {
		return err
	}

	l.pos = l.last
	return nil
}

func (l *Lexer) peekIs(b byte) bool {
	byt, err := l.reader.Peek(1)
	return err == nil && byt[0] == b
}

func (l *Lexer) token(kind types.TokenKind, text string, from types.Position) types.Token {
	return types.Token{
		Kind:     kind,
		Text:     text,
		Location: types.Span{From: from, To: l.pos},
	}
}

func firstChar(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func otherChar(r rune) bool {
	return firstChar(r) || isDigit(r)
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\v' || r == '\f'
}

func (l *Lexer) lexIdent(first rune) (string, error) {
	lit := string(first)

	for {
		r, err := l.read()
		if err == io.EOF {
			return lit, nil
		} else if err != nil {
			return lit, err
		}

		if !otherChar(r) {
			return lit, l.backup()
		}

		lit += string(r)
	}
}

func (l *Lexer) lexNumber(first rune) (string, bool, error) {
	lit := string(first)
	seenPoint := false

	for {
		r, err := l.read()
		if err == io.EOF {
			return lit, seenPoint, nil
		} else if err != nil {
			return lit, seenPoint, err
		}

		switch {
		case isDigit(r):
			lit += string(r)
		case r == '.' && !seenPoint:
			seenPoint = true
			lit += string(r)
		default:
			return lit, seenPoint, l.backup()
		}
	}
}

func (l *Lexer) lexComment() (string, error) {
	lit := "/"

	for !l.peekIs('\n') {
		r, err := l.read()
		if err == io.EOF {
			return lit, nil
		} else if err != nil {
			return lit, err
		}

		lit += string(r)
	}

	return lit, nil
}

// Lex returns the next token. Once an end-of-input or unknown token has been
// produced, every further call yields end-of-input.
func (l *Lexer) Lex() (types.Token, error) {
	if l.done {
		return l.token(types.EOF, "", l.pos), nil
	}

	for {
		r, err := l.read()
		if err == io.EOF {
			l.done = true
			return l.token(types.EOF, "", l.pos), nil
		} else if err != nil {
			return types.Token{}, err
		}

		from := l.pos

		switch {
		case isSpace(r):
			continue
		case r == '-' && l.peekIs('>'):
			if _, err := l.read(); err != nil {
				return types.Token{}, err
			}
			return l.token(types.ARROW, "->", from), nil
		case r == '/' && l.peekIs('/'):
			lit, err := l.lexComment()
			if err != nil {
				return types.Token{}, err
			}
			return l.token(types.COMMENT, lit, from), nil
		case (r == '<' || r == '>') && l.peekIs('='):
			if _, err := l.read(); err != nil {
				return types.Token{}, err
			}
			return l.token(types.OPERATOR, string(r)+"=", from), nil
		case firstChar(r):
			lit, err := l.lexIdent(r)
			if err != nil {
				return types.Token{}, err
			}
			if kind, ok := keywords[lit]; ok {
				return l.token(kind, lit, from), nil
			}
			return l.token(types.IDENT, lit, from), nil
		case isDigit(r):
			lit, float, err := l.lexNumber(r)
			if err != nil {
				return types.Token{}, err
			}
			if float {
				return l.token(types.FLOAT, lit, from), nil
			}
			return l.token(types.INT, lit, from), nil
		}

		if kind, ok := single[r]; ok {
			return l.token(kind, string(r), from), nil
		}

		l.done = true
		return l.token(types.UNKNOWN, string(r), from), nil
	}
}

// Tokenize lexes the whole input. The returned slice always ends with an
// EOF or UNKNOWN token unless reading the input itself failed.
func (l *Lexer) Tokenize() ([]types.Token, error) {
	var ret []types.Token

	for {
		tok, err := l.Lex()
		if err != nil {
			return ret, err
		}

		ret = append(ret, tok)
		if tok.Kind == types.EOF || tok.Kind == types.UNKNOWN {
			return ret, nil
		}
	}
}
