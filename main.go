package main

import (
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"time"

	"github.com/alecthomas/repr"
	"github.com/pontaoski/dpc/codegen"
	"github.com/pontaoski/dpc/compiler"
	"github.com/pontaoski/dpc/emit"
	"github.com/pontaoski/dpc/lexer"
	"github.com/pontaoski/dpc/parser"
	"github.com/pontaoski/dpc/reader"
	"github.com/urfave/cli/v2"
	"github.com/ztrue/tracerr"
	"gopkg.in/yaml.v2"
)

const manifestFile = "dp.yml"

type dpModule struct {
	Package string `yaml:"package"`
	Main    string `yaml:"main"`
	Output  string `yaml:"output,omitempty"`
}

func readManifest() (dpModule, error) {
	data, err := ioutil.ReadFile(manifestFile)
	if err != nil {
		return dpModule{}, fmt.Errorf("error reading %s: %w", manifestFile, err)
	}

	var doc dpModule
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return dpModule{}, fmt.Errorf("error reading %s: %w", manifestFile, err)
	}
	if doc.Main == "" {
		doc.Main = "main.dp"
	}
	return doc, nil
}

// sourceFile picks the file named on the command line, falling back to the
// manifest's entry file.
func sourceFile(c *cli.Context) (string, error) {
	if file := c.Args().First(); file != "" {
		return file, nil
	}
	doc, err := readManifest()
	if err != nil {
		return "", err
	}
	return doc.Main, nil
}

func main() {
	app := &cli.App{
		Name:  "dpc",
		Usage: "dp compiler",
		ExitErrHandler: func(context *cli.Context, err error) {
			if err != nil {
				log.Fatalf("error with dpc: %s", err)
			}
		},
		Commands: []*cli.Command{
			{
				Name:      "init",
				Usage:     "init a directory",
				ArgsUsage: "<package>",
				Action: func(c *cli.Context) error {
					name := c.Args().First()
					if name == "" {
						return fmt.Errorf("no module name provided")
					}

					out, err := yaml.Marshal(dpModule{
						Package: name,
						Main:    "main.dp",
					})
					if err != nil {
						return fmt.Errorf("error creating %s: %w", manifestFile, err)
					}

					if err := ioutil.WriteFile(manifestFile, out, 0644); err != nil {
						return fmt.Errorf("error creating %s: %w", manifestFile, err)
					}

					return nil
				},
			},
			{
				Name:      "tokens",
				Usage:     "print the token stream of a file",
				ArgsUsage: "[file]",
				Action: func(c *cli.Context) error {
					file, err := sourceFile(c)
					if err != nil {
						return err
					}
					handle, err := os.Open(file)
					if err != nil {
						return err
					}
					defer handle.Close()

					tokens, err := lexer.NewLexer(handle, file).Tokenize()
					if err != nil {
						return err
					}
					for _, tok := range tokens {
						fmt.Println(tok)
					}
					return nil
				},
			},
			{
				Name:      "ast",
				Usage:     "dump the parsed program of a file",
				ArgsUsage: "[file]",
				Action: func(c *cli.Context) error {
					file, err := sourceFile(c)
					if err != nil {
						return err
					}
					handle, err := os.Open(file)
					if err != nil {
						return err
					}
					defer handle.Close()

					tokens, err := lexer.NewLexer(handle, file).Tokenize()
					if err != nil {
						return err
					}
					tls, err := parser.New(tokens).ParseProgram()
					if err != nil {
						tracerr.PrintSourceColor(tracerr.Wrap(err))
						os.Exit(1)
					}
					repr.Println(tls, repr.Indent("  "))
					return nil
				},
			},
			{
				Name:      "typeinfo",
				Usage:     "dump typeinfo from a compiled library",
				ArgsUsage: "<library>",
				Action: func(c *cli.Context) error {
					info, err := reader.ReadTypeInfo(c.Args().Get(0))
					if err != nil {
						return err
					}
					repr.Println(info)
					return nil
				},
			},
			{
				Name:      "build",
				Usage:     "build a file",
				ArgsUsage: "[file]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name: "output",
					},
					&cli.BoolFlag{
						Name:  "dump",
						Value: false,
						Usage: "print the generated IR and exit",
					},
					&cli.BoolFlag{
						Name:  "emit-llvm",
						Value: false,
						Usage: "write textual IR instead of linking",
					},
					&cli.BoolFlag{
						Name:  "library",
						Value: false,
					},
					&cli.StringSliceFlag{
						Name:  "force-import",
						Value: cli.NewStringSlice(),
					},
					&cli.BoolFlag{
						Name:  "timings",
						Value: false,
					},
				},
				Action: func(c *cli.Context) error {
					doc, err := readManifest()
					if err != nil && c.Args().First() == "" {
						return err
					}

					file := c.Args().First()
					if file == "" {
						file = doc.Main
					}

					out := c.String("output")
					if out == "" {
						out = doc.Output
					}
					if out == "" {
						out = doc.Package
					}
					if out == "" {
						out = "a.out"
					}
					if c.Bool("library") {
						out += ".so"
					}

					handle, err := os.Open(file)
					if err != nil {
						return err
					}
					defer handle.Close()

					unit := compiler.NewUnit(file, codegen.Settings{
						IsLibrary:   c.Bool("library"),
						PackageName: doc.Package,
					})
					module, err := unit.Compile(handle)
					if err != nil {
						tracerr.PrintSourceColor(err)
						os.Exit(1)
					}

					if c.Bool("dump") {
						fmt.Println(module)
						return nil
					}

					var emitter compiler.Emitter = emit.Clang{
						Library: c.Bool("library"),
						Imports: c.StringSlice("force-import"),
					}
					if c.Bool("emit-llvm") {
						emitter = emit.Text{}
						out += ".ll"
					}

					start := time.Now()
					err = emitter.Emit(module, out)
					if c.Bool("timings") {
						log.Printf("lex: %s", unit.Timings.Lex)
						log.Printf("parse and generate: %s", unit.Timings.Generate)
						log.Printf("emit: %s", time.Since(start))
					}
					if err != nil {
						tracerr.PrintSourceColor(tracerr.Wrap(err))
						os.Exit(1)
					}

					return nil
				},
			},
		},
	}
	app.Run(os.Args)
}
