// Package emit hands finished modules to the native toolchain.
package emit

import (
	"io"
	"io/ioutil"
	"os"
	"os/exec"
	"strings"

	"github.com/llir/llvm/ir"
	"github.com/pontaoski/dpc/codegen"
)

// Text writes the module as textual LLVM IR.
type Text struct{}

func (Text) Emit(m *ir.Module, output string) error {
	return ioutil.WriteFile(output, []byte(m.String()), 0644)
}

// Clang links the module with clang into an executable or, for libraries, a
// shared object.
type Clang struct {
	Library bool
	Imports []string
	Stdout  io.Writer
	Stderr  io.Writer
}

// Command builds the clang invocation for an IR file at input.
func (c Clang) Command(input, output string) *exec.Cmd {
	cmd := exec.Command("clang", "-nostdlib", "-o", output)

	cmd.Args = append(cmd.Args, c.Imports...)

	if c.Library {
		cmd.Args = append(cmd.Args, "-shared", "-no-pie")
	} else {
		cmd.Args = append(cmd.Args, "-Wl,-e,"+codegen.EntryName)
	}

	cmd.Args = append(cmd.Args, input)

	cmd.Stdout = c.Stdout
	cmd.Stderr = c.Stderr
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}

	return cmd
}

func (c Clang) Emit(m *ir.Module, output string) error {
	fi, err := ioutil.TempFile("", "*.ll")
	if err != nil {
		return err
	}
	defer os.Remove(fi.Name())
	defer fi.Close()

	_, err = io.Copy(fi, strings.NewReader(m.String()))
	if err != nil {
		return err
	}
	if err := fi.Sync(); err != nil {
		return err
	}

	return c.Command(fi.Name(), output).Run()
}
