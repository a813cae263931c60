// Package reader pulls the embedded type info back out of a built library.
package reader

import (
	"fmt"

	"github.com/coreos/pkg/dlopen"
	"github.com/pontaoski/dpc/codegen"
)

import "C"

// ReadTypeInfo opens the shared object at path and decodes the type info
// global a library build leaves behind.
func ReadTypeInfo(path string) (codegen.TypeInfo, error) {
	handle, err := dlopen.GetHandle([]string{path})
	if err != nil {
		return codegen.TypeInfo{}, err
	}
	defer handle.Close()

	sym, err := handle.GetSymbolPointer(codegen.TypeInfoSymbol)
	if err != nil {
		return codegen.TypeInfo{}, fmt.Errorf("%s is not a dp library: %w", path, err)
	}

	info, err := codegen.ParseTypeInfo(C.GoString((*C.char)(sym)))
	if err != nil {
		return codegen.TypeInfo{}, fmt.Errorf("corrupt type info in %s: %w", path, err)
	}
	return info, nil
}
