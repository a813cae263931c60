package types

import (
	"fmt"
)

type Position struct {
	Line     int
	Column   int
	Filename string
}

type Span struct {
	From Position
	To   Position
}

type TokenKind int

const (
	EOF TokenKind = iota
	UNKNOWN

	FUNC
	LET
	RETURN
	TRUE
	FALSE

	IDENT
	INT
	FLOAT

	OPERATOR
	PUNCT
	COLON
	ARROW
	EQUAL

	COMMENT
)

func (t TokenKind) String() string {
	data := map[TokenKind]string{
		EOF:      "EOF",
		UNKNOWN:  "UNKNOWN",
		FUNC:     "FUNC",
		LET:      "LET",
		RETURN:   "RETURN",
		TRUE:     "TRUE",
		FALSE:    "FALSE",
		IDENT:    "IDENT",
		INT:      "INT",
		FLOAT:    "FLOAT",
		OPERATOR: "OPERATOR",
		PUNCT:    "PUNCT",
		COLON:    "COLON",
		ARROW:    "ARROW",
		EQUAL:    "EQUAL",
		COMMENT:  "COMMENT",
	}
	return data[t]
}

func (p Position) String() string {
	if p.Filename == "" {
		p.Filename = "<unknown>"
	}
	return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
}

func (s Span) String() string {
	return fmt.Sprintf("%s-%d:%d", s.From, s.To.Line, s.To.Column)
}

func SingleCharSpan(p Position) Span {
	return Span{p, p}
}

// Token is immutable once the lexer hands it out.
type Token struct {
	Kind     TokenKind
	Text     string
	Location Span
}

func (t Token) Line() int {
	return t.Location.From.Line
}

// Is reports whether the token has the given kind and, when texts are given,
// one of those literal texts.
func (t Token) Is(kind TokenKind, texts ...string) bool {
	if t.Kind != kind {
		return false
	}
	if len(texts) == 0 {
		return true
	}
	for _, text := range texts {
		if t.Text == text {
			return true
		}
	}
	return false
}

func (t Token) String() string {
	return fmt.Sprintf("Token: %s; Value: %s; Line: %d", t.Kind, t.Text, t.Line())
}
