// Command astgen turns an .adt description of closed sum types into Go
// declarations: one marker interface per sum, one struct (or named type) per
// variant, and a marker method tying each variant to its sum.
package main

import (
	"fmt"
	"io/ioutil"
	"os"
	"strconv"

	"github.com/alecthomas/participle"

	. "github.com/dave/jennifer/jen"
)

type File struct {
	Imports      []*Import      `@@*`
	Declarations []*Declaration `@@*`
}

type Import struct {
	Alias string `"import" @Ident`
	Path  string `@String ";"`
}

type Declaration struct {
	Name   string   `"type" @Ident "="`
	Fields *Fields  `( @@`
	Cases  []*TCase ` | ( "|" @@ )+ ) ";"`
}

type TCase struct {
	Name   string   `@Ident`
	Fields *Fields  `( "of" ( @@`
	Plain  *TypeRef `       | @@ ) )?`
}

type Fields struct {
	List []*Field `"{" ( @@ ";"? )* "}"`
}

type Field struct {
	Name string   `@Ident`
	Kind *TypeRef `@@`
}

type TypeRef struct {
	Slice   bool     `@( "[" "]" )?`
	Pointer bool     `@"*"?`
	Parts   []string `@Ident ( "." @Ident )*`
}

func (f *File) IsSumType(name string) bool {
	for _, decl := range f.Declarations {
		if decl.Name == name && decl.Cases != nil {
			return true
		}
	}
	return false
}

func (f *File) importPath(alias string) (string, error) {
	for _, imp := range f.Imports {
		if imp.Alias == alias {
			return strconv.Unquote(imp.Path)
		}
	}
	return "", fmt.Errorf("unknown package %s", alias)
}

func (f *File) typeCode(t *TypeRef) (*Statement, error) {
	code := &Statement{}
	if t.Slice {
		code = code.Index()
	}
	if t.Pointer {
		code = code.Op("*")
	}

	switch len(t.Parts) {
	case 1:
		return code.Id(t.Parts[0]), nil
	case 2:
		path, err := f.importPath(t.Parts[0])
		if err != nil {
			return nil, err
		}
		return code.Qual(path, t.Parts[1]), nil
	}

	return nil, fmt.Errorf("malformed type reference %v", t.Parts)
}

func (f *File) fieldCodes(fields *Fields) ([]Code, error) {
	var ret []Code
	for _, field := range fields.List {
		kind, err := f.typeCode(field.Kind)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", field.Name, err)
		}
		ret = append(ret, Id(field.Name).Add(kind))
	}
	return ret, nil
}

func GenerateDecls(pkgname string, t *File) (string, error) {
	f := NewFile(pkgname)
	f.HeaderComment("Code generated by astgen from ast.adt. DO NOT EDIT.")
	for _, imp := range t.Imports {
		path, err := strconv.Unquote(imp.Path)
		if err != nil {
			return "", err
		}
		f.ImportAlias(path, imp.Alias)
	}

	for _, decl := range t.Declarations {
		if decl.Fields != nil {
			fields, err := t.fieldCodes(decl.Fields)
			if err != nil {
				return "", fmt.Errorf("%s: %w", decl.Name, err)
			}
			f.Type().Id(decl.Name).Struct(fields...)
			continue
		}

		f.Type().Id(decl.Name).Interface(
			Id("is_" + decl.Name).Params(),
		)

		for _, it := range decl.Cases {
			switch {
			case it.Fields != nil:
				fields, err := t.fieldCodes(it.Fields)
				if err != nil {
					return "", fmt.Errorf("%s: %w", it.Name, err)
				}
				f.Type().Id(it.Name).Struct(fields...)
			case it.Plain != nil && len(it.Plain.Parts) == 1 && t.IsSumType(it.Plain.Parts[0]):
				f.Type().Id(it.Name).Struct(Id(it.Plain.Parts[0]))
			case it.Plain != nil:
				kind, err := t.typeCode(it.Plain)
				if err != nil {
					return "", fmt.Errorf("%s: %w", it.Name, err)
				}
				f.Type().Id(it.Name).Add(kind)
			default:
				f.Type().Id(it.Name).Struct()
			}

			f.Func().Params(Id("v").Id(it.Name)).Id("is_" + decl.Name).Params().Block()
		}
	}

	return fmt.Sprintf("%#v", f), nil
}

func main() {
	if len(os.Args) != 4 {
		fmt.Fprintln(os.Stderr, "usage: astgen <in.adt> <out.go> <package>")
		os.Exit(2)
	}

	parser := participle.MustBuild(&File{})

	in := os.Args[1]
	out := os.Args[2]
	pkgname := os.Args[3]

	inData, err := ioutil.ReadFile(in)
	if err != nil {
		panic(err)
	}

	ast := File{}
	err = parser.ParseBytes(inData, &ast)
	if err != nil {
		panic(err)
	}

	code, err := GenerateDecls(pkgname, &ast)
	if err != nil {
		panic(err)
	}

	err = ioutil.WriteFile(out, []byte(code), 0644)
	if err != nil {
		panic(err)
	}
}
