package parser

import (
	"fmt"

	"github.com/shautvast/szpakowski-lang/pkg/ast"
	"github.com/shautvast/szpakowski-lang/pkg/lexer"
)

// SyntaxError reports the first grammar mismatch. Parsing does not recover.
type SyntaxError struct {
	Line    int
	Lexeme  string
	AtEnd   bool
	Message string
}

func (e *SyntaxError) Error() string {
	if e.AtEnd {
		return fmt.Sprintf("[line %d] Error at end: %s", e.Line, e.Message)
	}
	return fmt.Sprintf("[line %d] Error at '%s': %s", e.Line, e.Lexeme, e.Message)
}

// Incomplete reports whether the error was caused by running out of input,
// which interactive hosts treat as a request for more lines.
func (e *SyntaxError) Incomplete() bool {
	return e.AtEnd
}

// Parser is a recursive-descent parser over a scanned token list.
type Parser struct {
	tokens  []lexer.Token
	current int
}

// New returns a parser over tokens. The list must end with an EOF token.
func New(tokens []lexer.Token) *Parser {
	if len(tokens) == 0 || tokens[len(tokens)-1].Kind != lexer.KindEOF {
		line := 1
		if len(tokens) > 0 {
			line = tokens[len(tokens)-1].Line
		}
		tokens = append(append([]lexer.Token(nil), tokens...), lexer.Token{Kind: lexer.KindEOF, Line: line})
	}
	return &Parser{tokens: tokens}
}

// Parse builds the statement list for a whole program.
func Parse(tokens []lexer.Token) ([]ast.Statement, error) {
	return New(tokens).ParseProgram()
}

// ParseSource scans and parses source in one step.
func ParseSource(source string) ([]ast.Statement, error) {
	tokens, err := lexer.Scan(source)
	if err != nil {
		return nil, err
	}
	return Parse(tokens)
}

// ParseProgram consumes declarations until EOF.
func (p *Parser) ParseProgram() ([]ast.Statement, error) {
	statements := make([]ast.Statement, 0)
	for !p.atEnd() {
		stmt, err := p.declaration()
		if err != nil {
			return nil, err
		}
		statements = append(statements, stmt)
	}
	return statements, nil
}
