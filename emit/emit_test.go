package emit

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
	"github.com/pontaoski/dpc/codegen"
)

func TestText(t *testing.T) {
	m := ir.NewModule()
	fn := m.NewFunc("answer", types.I32)
	fn.NewBlock("entry").NewRet(constant.NewInt(types.I32, 42))

	dir, err := ioutil.TempDir("", "emit")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)

	out := filepath.Join(dir, "answer.ll")
	if err := (Text{}).Emit(m, out); err != nil {
		t.Fatal(err)
	}

	data, err := ioutil.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "define i32 @answer()") || !strings.Contains(string(data), "ret i32 42") {
		t.Errorf("got:\n%s", data)
	}
}

func TestClangCommand(t *testing.T) {
	tests := []struct {
		name     string
		clang    Clang
		expected []string
	}{
		{
			name:     "executable",
			clang:    Clang{},
			expected: []string{"clang", "-nostdlib", "-o", "out", "-Wl,-e," + codegen.EntryName, "in.ll"},
		},
		{
			name:     "library",
			clang:    Clang{Library: true, Imports: []string{"libfoo.so"}},
			expected: []string{"clang", "-nostdlib", "-o", "out", "libfoo.so", "-shared", "-no-pie", "in.ll"},
		},
	}

	for _, tt := range tests {
		cmd := tt.clang.Command("in.ll", "out")
		if strings.Join(cmd.Args, " ") != strings.Join(tt.expected, " ") {
			t.Errorf("%s: got %v", tt.name, cmd.Args)
		}
		if cmd.Stdout != os.Stdout || cmd.Stderr != os.Stderr {
			t.Errorf("%s: output not forwarded", tt.name)
		}
	}
}
