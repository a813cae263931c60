// Package codegen lowers parsed top-level items into an llir module, tracking
// the backend type of every value it produces.
package codegen

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
	"github.com/pontaoski/dpc/ast"
	"github.com/pontaoski/dpc/errors"
	"github.com/pontaoski/dpc/typesys"
	dptypes "github.com/pontaoski/dpc/types"
)

type Settings struct {
	IsLibrary   bool
	PackageName string
}

// TypedValue pairs a generated value with the type the generator believes it
// has. A declared but unassigned variable has a Type and a nil Value.
type TypedValue struct {
	Value value.Value
	Type  types.Type
}

// Generator owns the module for a single compilation unit. It must not be
// shared between compilations.
type Generator struct {
	module   *ir.Module
	named    *typesys.Table
	settings Settings

	// per function
	symbols map[string]TypedValue
	fn      *ir.Func
	block   *ir.Block

	entry *ir.Func
}

func New(settings Settings) *Generator {
	return &Generator{
		module:   ir.NewModule(),
		named:    typesys.NewTable(),
		settings: settings,
		symbols:  map[string]TypedValue{},
	}
}

func (g *Generator) Module() *ir.Module {
	return g.module
}

func (g *Generator) Types() *typesys.Table {
	return g.named
}

func span(p dptypes.Position) dptypes.Span {
	return dptypes.SingleCharSpan(p)
}

// Generate lowers one top-level item into the module.
func (g *Generator) Generate(tl ast.TopLevel) error {
	switch t := tl.(type) {
	case ast.FunctionDef:
		_, err := g.codegenFunction(t)
		return err
	case ast.TypeDecl:
		_, err := g.named.Register(t)
		return err
	}

	return errors.NewCodegenError(dptypes.Span{}, "unhandled top-level item %T", tl)
}

// Finish completes the module for hand-off: libraries get their type info
// embedded, executables get an entry shim around main.
func (g *Generator) Finish() (*ir.Module, error) {
	if g.settings.IsLibrary {
		if err := registerTypeInfoWithModule(g.TypeInfo(), g.module); err != nil {
			return nil, err
		}
		return g.module, nil
	}

	if g.entry != nil {
		if len(g.entry.Params) != 0 {
			return nil, errors.NewCodegenError(dptypes.Span{}, "function 'main' must not take parameters")
		}
		addEntry(g.module, g.entry)
	}

	return g.module, nil
}

func (g *Generator) lookupFunction(name string) *ir.Func {
	for _, fn := range g.module.Funcs {
		if fn.Name() == name {
			return fn
		}
	}
	return nil
}

func (g *Generator) removeFunction(fn *ir.Func) {
	funcs := g.module.Funcs[:0]
	for _, f := range g.module.Funcs {
		if f != fn {
			funcs = append(funcs, f)
		}
	}
	g.module.Funcs = funcs
}
