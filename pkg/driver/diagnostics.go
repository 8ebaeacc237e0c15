package driver

import (
	"errors"
	"fmt"

	"github.com/shautvast/szpakowski-lang/pkg/interpreter"
	"github.com/shautvast/szpakowski-lang/pkg/lexer"
	"github.com/shautvast/szpakowski-lang/pkg/parser"
)

// DiagnosticKind classifies a program failure for hosts.
type DiagnosticKind string

const (
	DiagnosticLexical DiagnosticKind = "lexical"
	DiagnosticSyntax  DiagnosticKind = "syntax"
	DiagnosticRuntime DiagnosticKind = "runtime"
	DiagnosticHost    DiagnosticKind = "host"
)

// Diagnostic is a program failure with its source position, when known.
type Diagnostic struct {
	Kind    DiagnosticKind
	Name    string
	Line    int
	Message string
}

func (d Diagnostic) String() string {
	location := d.Name
	if d.Line > 0 {
		location = fmt.Sprintf("%s:%d", d.Name, d.Line)
	}
	if d.Kind == DiagnosticRuntime {
		return fmt.Sprintf("%s: runtime error: %s", location, d.Message)
	}
	return fmt.Sprintf("%s: %s", location, d.Message)
}

// Diagnose classifies err raised while running the program called name.
func Diagnose(name string, err error) Diagnostic {
	var (
		lexErr     *lexer.Error
		syntaxErr  *parser.SyntaxError
		runtimeErr *interpreter.RuntimeError
	)
	switch {
	case errors.As(err, &lexErr):
		return Diagnostic{Kind: DiagnosticLexical, Name: name, Line: lexErr.Line, Message: lexErr.Message()}
	case errors.As(err, &syntaxErr):
		where := fmt.Sprintf("at '%s'", syntaxErr.Lexeme)
		if syntaxErr.AtEnd {
			where = "at end"
		}
		return Diagnostic{Kind: DiagnosticSyntax, Name: name, Line: syntaxErr.Line, Message: where + ": " + syntaxErr.Message}
	case errors.As(err, &runtimeErr):
		return Diagnostic{Kind: DiagnosticRuntime, Name: name, Line: runtimeErr.Line, Message: runtimeErr.Message}
	default:
		return Diagnostic{Kind: DiagnosticHost, Name: name, Message: err.Error()}
	}
}

// DescribeError formats err for CLI output.
func DescribeError(name string, err error) string {
	return Diagnose(name, err).String()
}

// IsProgramError reports whether err came from the program rather than the
// host (config, source loading, output).
func IsProgramError(err error) bool {
	return Diagnose("", err).Kind != DiagnosticHost
}
