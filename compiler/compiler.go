// Package compiler runs one compilation unit from source text to a finished
// llir module.
package compiler

import (
	"io"
	"time"

	"github.com/llir/llvm/ir"
	"github.com/pontaoski/dpc/codegen"
	"github.com/pontaoski/dpc/lexer"
	"github.com/pontaoski/dpc/parser"
	"github.com/ztrue/tracerr"
)

type State int

const (
	Scanning State = iota
	Error
	Done
)

func (s State) String() string {
	return map[State]string{
		Scanning: "scanning",
		Error:    "error",
		Done:     "done",
	}[s]
}

// Emitter turns a finished module into an artifact at output. Nothing flows
// back into the compilation.
type Emitter interface {
	Emit(m *ir.Module, output string) error
}

type Timings struct {
	Lex      time.Duration
	Generate time.Duration
}

// Unit is a single compilation. Once it leaves Scanning it never returns.
type Unit struct {
	Filename string
	Settings codegen.Settings
	Timings  Timings

	state State
	gen   *codegen.Generator
}

func NewUnit(filename string, settings codegen.Settings) *Unit {
	return &Unit{
		Filename: filename,
		Settings: settings,
		state:    Scanning,
		gen:      codegen.New(settings),
	}
}

func (u *Unit) State() State {
	return u.state
}

func (u *Unit) fail(err error) error {
	u.state = Error
	return tracerr.Wrap(err)
}

// Compile lexes src, then parses and generates one top-level item at a time.
// The first failure aborts the whole unit.
func (u *Unit) Compile(src io.Reader) (*ir.Module, error) {
	if u.state != Scanning {
		return nil, tracerr.Errorf("compilation unit %s already finished (%s)", u.Filename, u.state)
	}

	start := time.Now()
	tokens, err := lexer.NewLexer(src, u.Filename).Tokenize()
	u.Timings.Lex = time.Since(start)
	if err != nil {
		return nil, u.fail(err)
	}

	start = time.Now()
	defer func() { u.Timings.Generate = time.Since(start) }()

	p := parser.New(tokens)
	for {
		tl, err := p.Next()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, u.fail(err)
		}

		if err := u.gen.Generate(tl); err != nil {
			return nil, u.fail(err)
		}
	}

	m, err := u.gen.Finish()
	if err != nil {
		return nil, u.fail(err)
	}

	u.state = Done
	return m, nil
}

// Compile runs a fresh unit over src.
func Compile(src io.Reader, filename string, settings codegen.Settings) (*ir.Module, error) {
	return NewUnit(filename, settings).Compile(src)
}
