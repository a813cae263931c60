package errors

import (
	"fmt"
	"strings"

	"github.com/pontaoski/dpc/types"
)

// LexError is reported when the token stream stops at a character the lexer
// does not recognise.
type LexError struct {
	Char     string
	Location types.Span
}

func (e LexError) Error() string {
	return fmt.Sprintf("unrecognized character %q. %s", e.Char, e.Location)
}

type ParseError struct {
	Expected []string
	Got      types.TokenKind
	Text     string
	Location types.Span
}

func (e ParseError) Error() string {
	got := e.Got.String()
	if e.Text != "" {
		got = fmt.Sprintf("%s %q", got, e.Text)
	}
	return fmt.Sprintf("got a %s, expected one of %s. %s", got, strings.Join(e.Expected, ", "), e.Location)
}

// Line is the source line of the offending token.
func (e ParseError) Line() int {
	return e.Location.From.Line
}

type TypeError struct {
	Msg      string
	Location types.Span
}

func (e TypeError) Error() string {
	return fmt.Sprintf("%s: %s", e.Location, e.Msg)
}

func NewTypeError(loc types.Span, msg string, fmts ...interface{}) TypeError {
	return TypeError{Msg: fmt.Sprintf(msg, fmts...), Location: loc}
}

type CodegenError struct {
	Msg      string
	Location types.Span
}

func (e CodegenError) Error() string {
	return fmt.Sprintf("%s: %s", e.Location, e.Msg)
}

func NewCodegenError(loc types.Span, msg string, fmts ...interface{}) CodegenError {
	return CodegenError{Msg: fmt.Sprintf(msg, fmts...), Location: loc}
}
