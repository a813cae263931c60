package codegen

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
	"github.com/pontaoski/dpc/typesys"
)

// EntryName is the symbol executables are linked to start at.
const EntryName = "_dp_main"

func getStructElm(b *ir.Block, t types.Type, v value.Value, idx int64) value.Value {
	return b.NewGetElementPtr(t, v, constant.NewInt(types.I32, int64(0)), constant.NewInt(types.I32, int64(idx)))
}

// addEntry emits a freestanding entry point that runs main and exits with its
// result, or 0 when main does not return an integer.
func addEntry(m *ir.Module, main *ir.Func) {
	opening := m.NewFunc(EntryName, types.Void)
	bloc := opening.NewBlock("_entry")

	var status value.Value = constant.NewInt(types.I32, 0)
	call := bloc.NewCall(main)
	if typesys.CategoryOf(main.Sig.RetType) == typesys.Integer {
		status = call
	}

	exit := ir.NewInlineAsm(
		types.NewPointer(types.NewFunc(types.Void, types.I32)),
		`movl $0, %edi; movq $$0x3C, %rax; syscall`,
		`r`,
	)
	exit.SideEffect = true

	bloc.NewCall(exit, status)
	bloc.NewUnreachable()
}
