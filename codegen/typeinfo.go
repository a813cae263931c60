package codegen

import (
	"encoding/json"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
)

// TypeInfoSymbol names the global holding a library's type info.
const TypeInfoSymbol = "__dp_types"

type TypeInfo struct {
	Package   string            `json:"package"`
	Functions map[string]string `json:"functions"`
	Types     map[string]string `json:"types"`
}

// TypeInfo describes the functions and type aliases generated so far.
func (g *Generator) TypeInfo() TypeInfo {
	t := TypeInfo{
		Package:   g.settings.PackageName,
		Functions: map[string]string{},
		Types:     map[string]string{},
	}

	for _, fn := range g.module.Funcs {
		t.Functions[fn.Name()] = fn.Sig.String()
	}
	for name, kind := range g.named.Names() {
		t.Types[name] = kind.String()
	}

	return t
}

func registerTypeInfoWithModule(t TypeInfo, m *ir.Module) error {
	data, err := json.Marshal(t)
	if err != nil {
		return err
	}

	g := m.NewGlobalDef(TypeInfoSymbol, constant.NewCharArray(append(data, 0)))
	g.Immutable = true
	return nil
}

func ParseTypeInfo(data string) (t TypeInfo, err error) {
	err = json.Unmarshal([]byte(data), &t)
	return
}
