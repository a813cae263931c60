package codegen

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/types"
	"github.com/pontaoski/dpc/ast"
	"github.com/pontaoski/dpc/errors"
	"github.com/pontaoski/dpc/typesys"
)

func (g *Generator) codegenFunction(def ast.FunctionDef) (*ir.Func, error) {
	loc := span(def.Pos)

	if def.Name == EntryName || def.Name == TypeInfoSymbol {
		return nil, errors.NewCodegenError(loc, "function name '%s' is reserved", def.Name)
	}
	if g.lookupFunction(def.Name) != nil {
		return nil, errors.NewCodegenError(loc, "function '%s' is already defined", def.Name)
	}

	ret, err := g.named.Resolve(def.Returns)
	if err != nil {
		return nil, err
	}

	seen := map[string]bool{}
	var params []*ir.Param
	for _, param := range def.Params {
		if seen[param.Name] {
			return nil, errors.NewCodegenError(span(param.Pos), "parameter '%s' is declared twice", param.Name)
		}
		seen[param.Name] = true

		kind, err := g.named.Resolve(param.Kind)
		if err != nil {
			return nil, err
		}
		if typesys.CategoryOf(kind) == typesys.Void {
			return nil, errors.NewTypeError(span(param.Pos), "parameter '%s' cannot be void", param.Name)
		}

		params = append(params, ir.NewParam(param.Name, kind))
	}

	fn := g.module.NewFunc(def.Name, ret, params...)

	g.fn = fn
	g.symbols = map[string]TypedValue{}
	for _, param := range fn.Params {
		g.symbols[param.Name()] = TypedValue{param, param.Type()}
	}
	g.block = fn.NewBlock("entry")
	defer func() {
		g.fn = nil
		g.block = nil
	}()

	if err := g.codegenBody(def, ret); err != nil {
		g.removeFunction(fn)
		return nil, err
	}

	if err := verifyFunction(fn); err != nil {
		g.removeFunction(fn)
		return nil, errors.NewCodegenError(loc, "%s", err)
	}

	if def.Name == "main" {
		g.entry = fn
	}

	return fn, nil
}

// codegenBody generates statements up to and including the first return.
func (g *Generator) codegenBody(def ast.FunctionDef, ret types.Type) error {
	for _, stmt := range def.Body {
		r, ok := stmt.(ast.Return)
		if !ok {
			if _, err := g.codegenExpression(stmt); err != nil {
				return err
			}
			continue
		}

		val, err := g.operand(r.Value)
		if err != nil {
			return err
		}
		if !val.Type.Equal(ret) {
			return errors.NewTypeError(span(r.Pos), "function '%s' returns '%s', but is declared to return '%s'", def.Name, val.Type, ret)
		}

		g.block.NewRet(val.Value)
		return nil
	}

	if types.IsVoid(ret) {
		g.block.NewRet(nil)
	}

	return nil
}
