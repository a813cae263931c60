package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatType renders a type expression as a nested constructor call, e.g.
// Product(int, Sum(bool, float)).
func FormatType(t TypeExpr) string {
	switch v := t.(type) {
	case nil:
		return "void"
	case Primitive:
		return v.Name
	case Product:
		return fmt.Sprintf("Product(%s, %s)", FormatType(v.Left), FormatType(v.Right))
	case Sum:
		return fmt.Sprintf("Sum(%s, %s)", FormatType(v.Left), FormatType(v.Right))
	case Function:
		return fmt.Sprintf("Function(%s, %s)", FormatType(v.Left), FormatType(v.Right))
	}

	panic(fmt.Sprintf("unhandled type expression %T", t))
}

// Format renders an expression tree, e.g. Binary(+, 1, Binary(*, 2, 3)).
func Format(e Expression) string {
	switch v := e.(type) {
	case IntLiteral:
		return strconv.FormatInt(v.Value, 10)
	case FloatLiteral:
		return strconv.FormatFloat(v.Value, 'g', -1, 32)
	case BoolLiteral:
		return strconv.FormatBool(v.Value)
	case Variable:
		return v.Name
	case Binary:
		return fmt.Sprintf("Binary(%s, %s, %s)", v.Op, Format(v.Lhs), Format(v.Rhs))
	case Call:
		var args []string
		for _, arg := range v.Args {
			args = append(args, Format(arg))
		}
		return fmt.Sprintf("Call(%s, [%s])", v.Callee, strings.Join(args, ", "))
	case VarDecl:
		if v.Init == nil {
			return fmt.Sprintf("VarDecl(%s, %s)", v.Name, FormatType(v.Kind))
		}
		return fmt.Sprintf("VarDecl(%s, %s, %s)", v.Name, FormatType(v.Kind), Format(v.Init))
	case Assign:
		return fmt.Sprintf("Assign(%s, %s)", v.Name, Format(v.Value))
	case Return:
		return fmt.Sprintf("Return(%s)", Format(v.Value))
	}

	panic(fmt.Sprintf("unhandled expression %T", e))
}

func (f FunctionDef) String() string {
	var params []string
	for _, param := range f.Params {
		params = append(params, param.Name+": "+FormatType(param.Kind))
	}
	return fmt.Sprintf("func %s(%s) -> %s;", f.Name, strings.Join(params, ", "), FormatType(f.Returns))
}

func (t TypeDecl) String() string {
	return fmt.Sprintf("type %s = %s;", t.Name, FormatType(t.Kind))
}
