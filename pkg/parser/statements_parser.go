package parser

import (
	"github.com/shautvast/szpakowski-lang/pkg/ast"
	"github.com/shautvast/szpakowski-lang/pkg/lexer"
)

func (p *Parser) declaration() (ast.Statement, error) {
	if p.match(lexer.KindVar) {
		return p.varDeclaration()
	}
	return p.statement()
}

func (p *Parser) varDeclaration() (ast.Statement, error) {
	line := p.previous().Line
	name, err := p.consume(lexer.KindIdentifier, "Expected a variable name.")
	if err != nil {
		return nil, err
	}
	var initializer ast.Expression
	if p.match(lexer.KindEqual) {
		initializer, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(lexer.KindSemicolon, "Expected ';' after variable declaration."); err != nil {
		return nil, err
	}
	return ast.WithLine(ast.NewVarDecl(name.Lexeme, initializer), line), nil
}

func (p *Parser) statement() (ast.Statement, error) {
	switch {
	case p.match(lexer.KindPrint):
		return p.printStatement()
	case p.peek().Kind.IsVerb():
		return p.callStatement(p.advance())
	case p.match(lexer.KindRepeat):
		return p.repeatBlock()
	case p.match(lexer.KindLeftBrace):
		line := p.previous().Line
		statements, err := p.block()
		if err != nil {
			return nil, err
		}
		return ast.WithLine(ast.NewBlock(statements), line), nil
	default:
		return p.expressionStatement()
	}
}

func (p *Parser) printStatement() (ast.Statement, error) {
	line := p.previous().Line
	value, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.KindSemicolon, "Expected ';' after value."); err != nil {
		return nil, err
	}
	return ast.WithLine(ast.NewPrintStmt(value), line), nil
}

func (p *Parser) callStatement(verb lexer.Token) (ast.Statement, error) {
	args, err := p.argumentList(true)
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.KindSemicolon, "Expected ';' after "+verb.Lexeme+" call."); err != nil {
		return nil, err
	}
	return ast.WithLine(ast.NewCallStmt(verb.Lexeme, args), verb.Line), nil
}

func (p *Parser) repeatBlock() (ast.Statement, error) {
	keyword := p.previous()
	args, err := p.argumentList(true)
	if err != nil {
		return nil, err
	}
	if len(args) > 2 {
		return nil, p.errorAt(keyword, "repeat expects one or two arguments.")
	}
	if _, err := p.consume(lexer.KindLeftBrace, "Expected '{' before repeat body."); err != nil {
		return nil, err
	}
	body, err := p.block()
	if err != nil {
		return nil, err
	}
	return ast.WithLine(ast.NewRepeatBlock(args, body), keyword.Line), nil
}

func (p *Parser) expressionStatement() (ast.Statement, error) {
	line := p.peek().Line
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.KindSemicolon, "Expected ';' after expression."); err != nil {
		return nil, err
	}
	return ast.WithLine(ast.NewExpressionStmt(expr), line), nil
}

// block parses declarations up to the closing brace; the opening brace has
// already been consumed.
func (p *Parser) block() ([]ast.Statement, error) {
	statements := make([]ast.Statement, 0)
	for !p.check(lexer.KindRightBrace) && !p.atEnd() {
		stmt, err := p.declaration()
		if err != nil {
			return nil, err
		}
		statements = append(statements, stmt)
	}
	if _, err := p.consume(lexer.KindRightBrace, "Expected '}' after block."); err != nil {
		return nil, err
	}
	return statements, nil
}
