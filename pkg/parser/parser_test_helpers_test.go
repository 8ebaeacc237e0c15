package parser

import (
	"reflect"
	"testing"

	"github.com/shautvast/szpakowski-lang/pkg/ast"
)

func mustParse(t testing.TB, source string) []ast.Statement {
	t.Helper()
	program, err := ParseSource(source)
	if err != nil {
		t.Fatalf("ParseSource(%q): %v", source, err)
	}
	return program
}

func mustFail(t testing.TB, source string) *SyntaxError {
	t.Helper()
	_, err := ParseSource(source)
	if err == nil {
		t.Fatalf("ParseSource(%q): expected syntax error", source)
	}
	syntaxErr, ok := err.(*SyntaxError)
	if !ok {
		t.Fatalf("ParseSource(%q): expected *SyntaxError, got %T (%v)", source, err, err)
	}
	return syntaxErr
}

// normalizeProgram clears source lines so parsed trees compare equal to
// trees built with the ast DSL helpers.
func normalizeProgram(program []ast.Statement) {
	for _, stmt := range program {
		normalizeNode(stmt)
	}
}

func normalizeNode(node ast.Node) {
	if node == nil || reflect.ValueOf(node).IsNil() {
		return
	}
	ast.WithLine(node, 0)
	switch n := node.(type) {
	case *ast.VarDecl:
		if n.Initializer != nil {
			normalizeNode(n.Initializer)
		}
	case *ast.ExpressionStmt:
		normalizeNode(n.Expr)
	case *ast.PrintStmt:
		normalizeNode(n.Expr)
	case *ast.CallStmt:
		for _, arg := range n.Args {
			normalizeNode(arg)
		}
	case *ast.Block:
		normalizeProgram(n.Statements)
	case *ast.RepeatBlock:
		for _, arg := range n.Args {
			normalizeNode(arg)
		}
		normalizeProgram(n.Body)
	case *ast.Assign:
		normalizeNode(n.Value)
	case *ast.Unary:
		normalizeNode(n.Operand)
	case *ast.Binary:
		normalizeNode(n.Left)
		normalizeNode(n.Right)
	case *ast.Grouping:
		normalizeNode(n.Inner)
	case *ast.Call:
		for _, arg := range n.Args {
			normalizeNode(arg)
		}
	}
}

func assertProgram(t testing.TB, source string, want ...ast.Statement) {
	t.Helper()
	got := mustParse(t, source)
	normalizeProgram(got)
	if want == nil {
		want = []ast.Statement{}
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("parse %q mismatch:\n got: %#v\nwant: %#v", source, got, want)
	}
}
