package parser

import (
	"github.com/shautvast/szpakowski-lang/pkg/ast"
	"github.com/shautvast/szpakowski-lang/pkg/lexer"
)

var (
	equalityOperators   = []lexer.Kind{lexer.KindBangEqual, lexer.KindEqualEqual}
	comparisonOperators = []lexer.Kind{lexer.KindGreater, lexer.KindGreaterEqual, lexer.KindLess, lexer.KindLessEqual}
	termOperators       = []lexer.Kind{lexer.KindMinus, lexer.KindPlus}
	factorOperators     = []lexer.Kind{lexer.KindSlash, lexer.KindStar}
)

func (p *Parser) expression() (ast.Expression, error) {
	return p.assignment()
}

func (p *Parser) assignment() (ast.Expression, error) {
	expr, err := p.equality()
	if err != nil {
		return nil, err
	}
	if !p.match(lexer.KindEqual) {
		return expr, nil
	}
	equals := p.previous()
	value, err := p.assignment()
	if err != nil {
		return nil, err
	}
	if variable, ok := expr.(*ast.Variable); ok {
		return ast.WithLine(ast.NewAssign(variable.Name, value), variable.Line()), nil
	}
	return nil, p.errorAt(equals, "Invalid assignment target.")
}

func (p *Parser) equality() (ast.Expression, error) {
	return p.binaryLevel(p.comparison, equalityOperators)
}

func (p *Parser) comparison() (ast.Expression, error) {
	return p.binaryLevel(p.term, comparisonOperators)
}

func (p *Parser) term() (ast.Expression, error) {
	return p.binaryLevel(p.factor, termOperators)
}

func (p *Parser) factor() (ast.Expression, error) {
	return p.binaryLevel(p.unary, factorOperators)
}

// binaryLevel parses one left-associative precedence level.
func (p *Parser) binaryLevel(operand func() (ast.Expression, error), operators []lexer.Kind) (ast.Expression, error) {
	expr, err := operand()
	if err != nil {
		return nil, err
	}
	for p.match(operators...) {
		operator := p.previous()
		right, err := operand()
		if err != nil {
			return nil, err
		}
		expr = ast.WithLine(ast.NewBinary(operator.Lexeme, expr, right), operator.Line)
	}
	return expr, nil
}

func (p *Parser) unary() (ast.Expression, error) {
	if p.match(lexer.KindBang, lexer.KindMinus) {
		operator := p.previous()
		operand, err := p.unary()
		if err != nil {
			return nil, err
		}
		return ast.WithLine(ast.NewUnary(operator.Lexeme, operand), operator.Line), nil
	}
	return p.primary()
}

func (p *Parser) primary() (ast.Expression, error) {
	tok := p.peek()
	switch {
	case p.match(lexer.KindFalse):
		return ast.WithLine(ast.NewLiteral(false), tok.Line), nil
	case p.match(lexer.KindTrue):
		return ast.WithLine(ast.NewLiteral(true), tok.Line), nil
	case p.match(lexer.KindNumber, lexer.KindString):
		return ast.WithLine(ast.NewLiteral(tok.Literal), tok.Line), nil
	case tok.Kind.IsBuiltin(), tok.Kind == lexer.KindIdentifier && p.checkNext(lexer.KindLeftParen):
		p.advance()
		args, err := p.argumentList(false)
		if err != nil {
			return nil, err
		}
		return ast.WithLine(ast.NewCall(tok.Lexeme, args), tok.Line), nil
	case p.match(lexer.KindIdentifier):
		return ast.WithLine(ast.NewVariable(tok.Lexeme), tok.Line), nil
	case p.match(lexer.KindLeftParen):
		inner, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(lexer.KindRightParen, "Expected ')' after expression."); err != nil {
			return nil, err
		}
		return ast.WithLine(ast.NewGrouping(inner), tok.Line), nil
	default:
		return nil, p.errorAt(tok, "Expected expression.")
	}
}

// argumentList parses '(' expression (',' expression)* ')'. Verb and repeat
// argument lists must be non-empty; builtin calls may be empty.
func (p *Parser) argumentList(requireOne bool) ([]ast.Expression, error) {
	if _, err := p.consume(lexer.KindLeftParen, "Expected '('."); err != nil {
		return nil, err
	}
	args := make([]ast.Expression, 0)
	if requireOne || !p.check(lexer.KindRightParen) {
		for {
			arg, err := p.expression()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if !p.match(lexer.KindComma) {
				break
			}
		}
	}
	if _, err := p.consume(lexer.KindRightParen, "Expected ')' after arguments."); err != nil {
		return nil, err
	}
	return args, nil
}
