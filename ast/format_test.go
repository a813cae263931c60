package ast

import "testing"

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		expr     Expression
		expected string
	}{
		{"int", IntLiteral{Value: 4}, "4"},
		{"float", FloatLiteral{Value: 2.5}, "2.5"},
		{"bool", BoolLiteral{Value: true}, "true"},
		{
			"binary",
			Binary{Op: "+", Lhs: IntLiteral{Value: 1}, Rhs: Binary{Op: "*", Lhs: IntLiteral{Value: 2}, Rhs: IntLiteral{Value: 3}}},
			"Binary(+, 1, Binary(*, 2, 3))",
		},
		{"call", Call{Callee: "f", Args: []Expression{Variable{Name: "a"}, IntLiteral{Value: 1}}}, "Call(f, [a, 1])"},
		{"decl", VarDecl{Name: "x", Kind: Primitive{Name: "int"}}, "VarDecl(x, int)"},
		{"decl with init", VarDecl{Name: "x", Kind: Primitive{Name: "int"}, Init: IntLiteral{Value: 1}}, "VarDecl(x, int, 1)"},
		{"assign", Assign{Name: "x", Value: Variable{Name: "y"}}, "Assign(x, y)"},
		{"return", Return{Value: Variable{Name: "y"}}, "Return(y)"},
	}

	for _, tt := range tests {
		if got := Format(tt.expr); got != tt.expected {
			t.Errorf("%s: got %s, expected %s", tt.name, got, tt.expected)
		}
	}
}

func TestTopLevelString(t *testing.T) {
	fn := FunctionDef{
		Name: "f",
		Params: []Param{
			{Name: "p", Kind: Product{Left: Primitive{Name: "int"}, Right: Primitive{Name: "bool"}}},
		},
	}
	if got := fn.String(); got != "func f(p: Product(int, bool)) -> void;" {
		t.Errorf("got %s", got)
	}

	decl := TypeDecl{Name: "Either", Kind: Sum{Left: Primitive{Name: "int"}, Right: Primitive{Name: "float"}}}
	if got := decl.String(); got != "type Either = Sum(int, float);" {
		t.Errorf("got %s", got)
	}
}
