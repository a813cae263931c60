// Package ast holds the node set produced by the parser. Every sum type is
// closed: its variants are the only types implementing the marker method, so
// a type switch over them is exhaustive.
package ast

//go:generate sh -c "cd ../tool && go run . ../ast/ast.adt ../ast/ast.go ast"
