package codegen

import (
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
	"github.com/pontaoski/dpc/ast"
	"github.com/pontaoski/dpc/errors"
	"github.com/pontaoski/dpc/typesys"
	dptypes "github.com/pontaoski/dpc/types"
)

// callResultType tags every call result, whatever the callee returns.
// Callers that need the real type have to go through a declared variable.
var callResultType types.Type = types.I32

var intPredicates = map[string]enum.IPred{
	"<":  enum.IPredSLT,
	">":  enum.IPredSGT,
	"<=": enum.IPredSLE,
	">=": enum.IPredSGE,
}

var floatPredicates = map[string]enum.FPred{
	"<":  enum.FPredULT,
	">":  enum.FPredUGT,
	"<=": enum.FPredULE,
	">=": enum.FPredUGE,
}

func (g *Generator) codegenExpression(e ast.Expression) (TypedValue, error) {
	switch expr := e.(type) {
	case ast.IntLiteral:
		return TypedValue{constant.NewInt(types.I32, expr.Value), types.I32}, nil
	case ast.FloatLiteral:
		return TypedValue{constant.NewFloat(types.Float, float64(float32(expr.Value))), types.Float}, nil
	case ast.BoolLiteral:
		if expr.Value {
			return TypedValue{constant.True, types.I1}, nil
		}
		return TypedValue{constant.False, types.I1}, nil
	case ast.Variable:
		v, ok := g.symbols[expr.Name]
		if !ok {
			return TypedValue{}, errors.NewCodegenError(span(expr.Pos), "variable '%s' not found", expr.Name)
		}
		if v.Value == nil {
			return TypedValue{}, errors.NewCodegenError(span(expr.Pos), "use of uninitialized variable '%s'", expr.Name)
		}
		return v, nil
	case ast.Binary:
		return g.codegenBinary(expr)
	case ast.Call:
		return g.codegenCall(expr)
	case ast.VarDecl:
		kind, err := g.named.Resolve(expr.Kind)
		if err != nil {
			return TypedValue{}, err
		}

		if expr.Init == nil {
			g.symbols[expr.Name] = TypedValue{Type: kind}
			return g.symbols[expr.Name], nil
		}

		val, err := g.codegenExpression(expr.Init)
		if err != nil {
			return TypedValue{}, err
		}
		g.symbols[expr.Name] = val
		return val, nil
	case ast.Assign:
		val, err := g.codegenExpression(expr.Value)
		if err != nil {
			return TypedValue{}, err
		}
		g.symbols[expr.Name] = val
		return val, nil
	case ast.Return:
		return TypedValue{}, errors.NewCodegenError(span(expr.Pos), "return is only allowed as a statement")
	}

	return TypedValue{}, errors.NewCodegenError(dptypes.Span{}, "unhandled expression %T", e)
}

// operand generates an expression whose value feeds another instruction.
// A declaration without an initializer has no value to feed.
func (g *Generator) operand(e ast.Expression) (TypedValue, error) {
	val, err := g.codegenExpression(e)
	if err != nil {
		return TypedValue{}, err
	}
	if val.Value == nil {
		if decl, ok := e.(ast.VarDecl); ok {
			return TypedValue{}, errors.NewCodegenError(span(decl.Pos), "use of uninitialized variable '%s'", decl.Name)
		}
		return TypedValue{}, errors.NewCodegenError(dptypes.Span{}, "use of uninitialized value")
	}
	return val, nil
}

func (g *Generator) codegenBinary(expr ast.Binary) (TypedValue, error) {
	lhs, err := g.operand(expr.Lhs)
	if err != nil {
		return TypedValue{}, err
	}
	rhs, err := g.operand(expr.Rhs)
	if err != nil {
		return TypedValue{}, err
	}

	if expr.Op == "," {
		return g.codegenTuple(expr, lhs, rhs)
	}

	lc, rc := typesys.CategoryOf(lhs.Type), typesys.CategoryOf(rhs.Type)
	if lc != rc {
		return TypedValue{}, errors.NewTypeError(span(expr.Pos), "binary operation on different types: '%s' %s '%s'", lhs.Type, expr.Op, rhs.Type)
	}

	b := g.block
	var v value.Value

	switch lc {
	case typesys.Floating:
		switch expr.Op {
		case "+":
			v = b.NewFAdd(lhs.Value, rhs.Value)
		case "-":
			v = b.NewFSub(lhs.Value, rhs.Value)
		case "*":
			v = b.NewFMul(lhs.Value, rhs.Value)
		case "/":
			v = b.NewFDiv(lhs.Value, rhs.Value)
		default:
			pred, ok := floatPredicates[expr.Op]
			if !ok {
				return TypedValue{}, errors.NewCodegenError(span(expr.Pos), "unknown binary operator '%s'", expr.Op)
			}
			v = b.NewUIToFP(b.NewFCmp(pred, lhs.Value, rhs.Value), lhs.Type)
		}
	case typesys.Integer:
		switch expr.Op {
		case "+":
			v = b.NewAdd(lhs.Value, rhs.Value)
		case "-":
			v = b.NewSub(lhs.Value, rhs.Value)
		case "*":
			v = b.NewMul(lhs.Value, rhs.Value)
		case "/":
			v = b.NewSDiv(lhs.Value, rhs.Value)
		default:
			pred, ok := intPredicates[expr.Op]
			if !ok {
				return TypedValue{}, errors.NewCodegenError(span(expr.Pos), "unknown binary operator '%s'", expr.Op)
			}
			v = b.NewZExt(b.NewICmp(pred, lhs.Value, rhs.Value), lhs.Type)
		}
	default:
		return TypedValue{}, errors.NewTypeError(span(expr.Pos), "binary operator '%s' is not supported on %s values", expr.Op, lc)
	}

	return TypedValue{v, lhs.Type}, nil
}

// codegenTuple stores both operands into a fresh two-field aggregate and
// loads it back as a single value.
func (g *Generator) codegenTuple(expr ast.Binary, lhs, rhs TypedValue) (TypedValue, error) {
	if typesys.CategoryOf(lhs.Type) == typesys.Void || typesys.CategoryOf(rhs.Type) == typesys.Void {
		return TypedValue{}, errors.NewTypeError(span(expr.Pos), "cannot build a tuple from a void value")
	}

	st := types.NewStruct(lhs.Type, rhs.Type)
	b := g.block

	storage := b.NewAlloca(st)
	b.NewStore(lhs.Value, getStructElm(b, st, storage, 0))
	b.NewStore(rhs.Value, getStructElm(b, st, storage, 1))

	return TypedValue{b.NewLoad(st, storage), st}, nil
}

func (g *Generator) codegenCall(expr ast.Call) (TypedValue, error) {
	fn := g.lookupFunction(expr.Callee)
	if fn == nil {
		return TypedValue{}, errors.NewCodegenError(span(expr.Pos), "function '%s' not found", expr.Callee)
	}
	if len(fn.Params) != len(expr.Args) {
		return TypedValue{}, errors.NewCodegenError(span(expr.Pos), "function '%s' takes %d arguments, %d given", expr.Callee, len(fn.Params), len(expr.Args))
	}

	var args []value.Value
	for _, arg := range expr.Args {
		val, err := g.operand(arg)
		if err != nil {
			return TypedValue{}, err
		}
		args = append(args, val.Value)
	}

	return TypedValue{g.block.NewCall(fn, args...), callResultType}, nil
}
