// Package typesys compares type expressions structurally and resolves them to
// backend types.
package typesys

import (
	"github.com/llir/llvm/ir/types"
	"github.com/pontaoski/dpc/ast"
	"github.com/pontaoski/dpc/errors"
	dptypes "github.com/pontaoski/dpc/types"
)

var primitives = map[string]types.Type{
	"int":   types.I32,
	"bool":  types.I1,
	"float": types.Float,
	"void":  types.Void,
}

// IsPrimitive reports whether name is one of the built-in type names.
func IsPrimitive(name string) bool {
	_, ok := primitives[name]
	return ok
}

// Equal compares two type expressions. Sums are commutative; products and
// functions are ordered.
func Equal(a, b ast.TypeExpr) bool {
	switch x := a.(type) {
	case ast.Primitive:
		y, ok := b.(ast.Primitive)
		return ok && x.Name == y.Name
	case ast.Product:
		y, ok := b.(ast.Product)
		return ok && Equal(x.Left, y.Left) && Equal(x.Right, y.Right)
	case ast.Function:
		y, ok := b.(ast.Function)
		return ok && Equal(x.Left, y.Left) && Equal(x.Right, y.Right)
	case ast.Sum:
		y, ok := b.(ast.Sum)
		if !ok {
			return false
		}
		return (Equal(x.Left, y.Left) && Equal(x.Right, y.Right)) ||
			(Equal(x.Left, y.Right) && Equal(x.Right, y.Left))
	}

	return false
}

// Table maps declared type alias names to their resolved backend types. It
// lives as long as the compilation unit.
type Table struct {
	named map[string]types.Type
	decls map[string]ast.TypeExpr
}

func NewTable() *Table {
	return &Table{
		named: map[string]types.Type{},
		decls: map[string]ast.TypeExpr{},
	}
}

func (t *Table) Lookup(name string) (types.Type, bool) {
	typ, ok := t.named[name]
	return typ, ok
}

// Names returns the registered alias names and their types.
func (t *Table) Names() map[string]types.Type {
	ret := make(map[string]types.Type, len(t.named))
	for name, typ := range t.named {
		ret[name] = typ
	}
	return ret
}

// Register resolves kind and stores it under name. Later lookups of name
// return the very same backend type value. Repeating a declaration with a
// structurally equal type is accepted and yields the registered type.
func (t *Table) Register(decl ast.TypeDecl) (types.Type, error) {
	loc := dptypes.SingleCharSpan(decl.Pos)

	if IsPrimitive(decl.Name) {
		return nil, errors.NewTypeError(loc, "cannot redefine primitive type '%s'", decl.Name)
	}
	if prev, ok := t.decls[decl.Name]; ok {
		if Equal(prev, decl.Kind) {
			return t.named[decl.Name], nil
		}
		return nil, errors.NewTypeError(loc, "type '%s' is already declared as '%s'", decl.Name, ast.FormatType(prev))
	}

	typ, err := t.Resolve(decl.Kind)
	if err != nil {
		return nil, err
	}

	t.named[decl.Name] = typ
	t.decls[decl.Name] = decl.Kind
	return typ, nil
}

// Resolve lowers a type expression. A nil expression is void. Sum and
// function types have no lowering of their own yet and resolve to their left
// branch.
func (t *Table) Resolve(e ast.TypeExpr) (types.Type, error) {
	switch kind := e.(type) {
	case nil:
		return types.Void, nil
	case ast.Primitive:
		if typ, ok := primitives[kind.Name]; ok {
			return typ, nil
		}
		if typ, ok := t.named[kind.Name]; ok {
			return typ, nil
		}
		return nil, errors.NewTypeError(dptypes.SingleCharSpan(kind.Pos), "unknown type '%s'", kind.Name)
	case ast.Product:
		left, err := t.Resolve(kind.Left)
		if err != nil {
			return nil, err
		}
		right, err := t.Resolve(kind.Right)
		if err != nil {
			return nil, err
		}
		return types.NewStruct(left, right), nil
	case ast.Sum:
		return t.Resolve(kind.Left)
	case ast.Function:
		return t.Resolve(kind.Left)
	}

	return nil, errors.NewTypeError(dptypes.Span{}, "unhandled type expression %T", e)
}

// Category is the coarse class of a backend type used to pick instructions.
type Category int

const (
	Other Category = iota
	Integer
	Boolean
	Floating
	Aggregate
	Void
)

func (c Category) String() string {
	return map[Category]string{
		Other:     "other",
		Integer:   "integer",
		Boolean:   "boolean",
		Floating:  "floating",
		Aggregate: "aggregate",
		Void:      "void",
	}[c]
}

func CategoryOf(t types.Type) Category {
	switch typ := t.(type) {
	case *types.IntType:
		if typ.BitSize == 1 {
			return Boolean
		}
		return Integer
	case *types.FloatType:
		return Floating
	case *types.StructType:
		return Aggregate
	case *types.VoidType:
		return Void
	}
	return Other
}
