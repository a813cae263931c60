package codegen

import (
	"fmt"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/types"
)

// verifyFunction checks the invariants the emitter relies on: every block is
// terminated and every return agrees with the signature.
func verifyFunction(fn *ir.Func) error {
	ret := fn.Sig.RetType

	for _, block := range fn.Blocks {
		if block.Term == nil {
			return fmt.Errorf("function '%s': block %s has no terminator, missing return?", fn.Name(), block.Ident())
		}

		term, ok := block.Term.(*ir.TermRet)
		if !ok {
			continue
		}
		switch {
		case term.X == nil && !types.IsVoid(ret):
			return fmt.Errorf("function '%s': empty return in function returning '%s'", fn.Name(), ret)
		case term.X != nil && !term.X.Type().Equal(ret):
			return fmt.Errorf("function '%s': returned value has type '%s', signature says '%s'", fn.Name(), term.X.Type(), ret)
		}
	}

	if err := fn.AssignIDs(); err != nil {
		return fmt.Errorf("function '%s': %v", fn.Name(), err)
	}

	return nil
}
