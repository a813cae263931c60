package parser

import (
	stderrors "errors"
	"strings"
	"testing"

	"github.com/alecthomas/repr"
	"github.com/pontaoski/dpc/ast"
	"github.com/pontaoski/dpc/errors"
	"github.com/pontaoski/dpc/lexer"
	"github.com/pontaoski/dpc/types"
)

func newParser(t *testing.T, input string) *Parser {
	t.Helper()

	tokens, err := lexer.NewLexer(strings.NewReader(input), "test.dp").Tokenize()
	if err != nil {
		t.Fatalf("tokenize: %s", err)
	}
	return New(tokens)
}

func TestExpressions(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"precedence", "1 + 2 * 3", "Binary(+, 1, Binary(*, 2, 3))"},
		{"precedence left", "1 * 2 + 3", "Binary(+, Binary(*, 1, 2), 3)"},
		{"left associative", "1 - 2 - 3", "Binary(-, Binary(-, 1, 2), 3)"},
		{"mixed", "1 + 2 * 3 + 4", "Binary(+, Binary(+, 1, Binary(*, 2, 3)), 4)"},
		{"division", "a / b * c", "Binary(*, Binary(/, a, b), c)"},
		{"comparison", "a < b + c * d", "Binary(<, a, Binary(+, b, Binary(*, c, d)))"},
		{"comparison two char", "a <= b >= c", "Binary(>=, Binary(<=, a, b), c)"},
		{"parentheses", "(1 + 2) * 3", "Binary(*, Binary(+, 1, 2), 3)"},
		{"float and bool", "2.5 + x, true", "Binary(,, Binary(+, 2.5, x), true)"},
		{"tuple", "a, b", "Binary(,, a, b)"},
		{"tuple lowest", "a, b + c", "Binary(,, a, Binary(+, b, c))"},
		{"tuple chain", "a, b, c", "Binary(,, Binary(,, a, b), c)"},
		{"call arguments", "f(a, b)", "Call(f, [a, b])"},
		{"call no arguments", "f()", "Call(f, [])"},
		{"call tuple argument", "f((a, b))", "Call(f, [Binary(,, a, b)])"},
		{"call in tuple", "f(a, b), c", "Binary(,, Call(f, [a, b]), c)"},
		{"nested calls", "f(a + 1, g(b, c))", "Call(f, [Binary(+, a, 1), Call(g, [b, c])])"},
		{"assign", "x = 1 + 2", "Assign(x, Binary(+, 1, 2))"},
		{"assign tuple", "x = a, b", "Assign(x, Binary(,, a, b))"},
		{"let", "let x: int", "VarDecl(x, int)"},
		{"let init", "let x: int * bool = 1, true", "VarDecl(x, Product(int, bool), Binary(,, 1, true))"},
		{"return", "return a + b", "Return(Binary(+, a, b))"},
		{"return tuple", "return a, b", "Return(Binary(,, a, b))"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newParser(t, tt.input)
			expr, err := p.parseExpression()
			if err != nil {
				t.Fatalf("parse: %s", err)
			}
			if got := ast.Format(expr); got != tt.expected {
				t.Errorf("got %s, expected %s", got, tt.expected)
			}
			if tok := p.peek(); tok.Kind != types.EOF {
				t.Errorf("input left over at %s", tok)
			}
		})
	}
}

func TestTypeExpressions(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"primitive", "int", "int"},
		{"alias", "Pair", "Pair"},
		{"product", "int * bool", "Product(int, bool)"},
		{"product binds tighter than sum", "int | bool * float", "Sum(int, Product(bool, float))"},
		{"sum binds tighter than arrow", "int | bool -> float", "Function(Sum(int, bool), float)"},
		{"all three", "int * bool | float -> int", "Function(Sum(Product(int, bool), float), int)"},
		{"left associative", "int -> bool -> float", "Function(Function(int, bool), float)"},
		{"parentheses", "int -> (bool -> float)", "Function(int, Function(bool, float))"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newParser(t, tt.input)
			kind, err := p.parseType()
			if err != nil {
				t.Fatalf("parse: %s", err)
			}
			if got := ast.FormatType(kind); got != tt.expected {
				t.Errorf("got %s, expected %s", got, tt.expected)
			}
		})
	}
}

func TestProgram(t *testing.T) {
	input := `
// pairs
type Pair = int * bool;;

func swap(p: Pair, n: int) -> bool * int {
	let x: int = n; // copy
	x = x + 1;
	;
	return true, x;
}

func nothing() {}
`
	p := newParser(t, input)
	tls, err := p.ParseProgram()
	if err != nil {
		t.Fatal(err)
	}

	if len(tls) != 3 {
		t.Fatalf("got %d top-level items: %s", len(tls), repr.String(tls))
	}

	decl, ok := tls[0].(ast.TypeDecl)
	if !ok || decl.String() != "type Pair = Product(int, bool);" {
		t.Errorf("got %s", repr.String(tls[0]))
	}
	if decl.Pos.Line != 3 {
		t.Errorf("type declared on line %d", decl.Pos.Line)
	}

	fn, ok := tls[1].(ast.FunctionDef)
	if !ok {
		t.Fatalf("got %s", repr.String(tls[1]))
	}
	if fn.String() != "func swap(p: Pair, n: int) -> Product(bool, int);" {
		t.Errorf("got %s", fn)
	}

	var body []string
	for _, stmt := range fn.Body {
		body = append(body, ast.Format(stmt))
	}
	expected := []string{
		"VarDecl(x, int, n)",
		"Assign(x, Binary(+, x, 1))",
		"Return(Binary(,, true, x))",
	}
	if repr.String(body) != repr.String(expected) {
		t.Errorf("got body %s", repr.String(body))
	}

	empty, ok := tls[2].(ast.FunctionDef)
	if !ok || empty.Returns != nil || len(empty.Body) != 0 || len(empty.Params) != 0 {
		t.Errorf("got %s", repr.String(tls[2]))
	}
}

func TestTruncatedInput(t *testing.T) {
	inputs := []string{
		"func",
		"func f",
		"func f(",
		"func f(a",
		"func f(a:",
		"func f(a: int",
		"func f(a: int,",
		"func f(a: int)",
		"func f() ->",
		"func f() -> int *",
		"func f() {",
		"func f() { return",
		"func f() { return 1",
		"func f() { return 1 +",
		"func f() { let",
		"func f() { let x",
		"func f() { let x:",
		"func f() { let x: int =",
		"func f() { g(",
		"func f() { g(1,",
		"func f() { (1",
		"func f() { x =",
		"type",
		"type T",
		"type T =",
		"type T = int",
		"type T = (int",
	}

	for _, input := range inputs {
		p := newParser(t, input)
		_, err := p.ParseProgram()

		var perr errors.ParseError
		if !stderrors.As(err, &perr) {
			t.Errorf("%q: expected a ParseError, got %v", input, err)
			continue
		}
		if perr.Got != types.EOF {
			t.Errorf("%q: expected to stop at EOF, got %s", input, perr.Got)
		}
	}
}

func TestSyntaxErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		line  int
		got   string
	}{
		{"missing semicolon", "func f() -> int {\n\treturn 1\n}", 3, "}"},
		{"top level expression", "\n\n1;", 3, "1"},
		{"param without type", "func f(a) {}", 1, ")"},
		{"missing type name", "type T = ;", 1, ";"},
		{"integer overflow", "func f() {\n return 99999999999; }", 2, "99999999999"},
		{"bad primary", "func f() { return ); }", 1, ")"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newParser(t, tt.input).ParseProgram()

			var perr errors.ParseError
			if !stderrors.As(err, &perr) {
				t.Fatalf("expected a ParseError, got %v", err)
			}
			if perr.Line() != tt.line {
				t.Errorf("got line %d, expected %d (%s)", perr.Line(), tt.line, perr)
			}
			if perr.Text != tt.got {
				t.Errorf("got offending token %q, expected %q", perr.Text, tt.got)
			}
		})
	}
}

func TestUnknownCharacter(t *testing.T) {
	_, err := newParser(t, "func f() {\n let x: int = 1 $ 2; }").ParseProgram()

	var lerr errors.LexError
	if !stderrors.As(err, &lerr) {
		t.Fatalf("expected a LexError, got %v", err)
	}
	if lerr.Char != "$" || lerr.Location.From.Line != 2 {
		t.Errorf("got %s", lerr)
	}
}

func TestNextStopsAtFirstError(t *testing.T) {
	p := newParser(t, "type A = int; func ( ; type B = int;")

	first, err := p.Next()
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := first.(ast.TypeDecl); !ok {
		t.Fatalf("got %s", repr.String(first))
	}

	if _, err := p.Next(); err == nil {
		t.Fatalf("expected the malformed function to fail")
	}
}

func TestEmptyStream(t *testing.T) {
	tls, err := New(nil).ParseProgram()
	if err != nil || len(tls) != 0 {
		t.Errorf("got %v, %v", tls, err)
	}
}
