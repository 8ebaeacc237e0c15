package ast

// Literal helpers.

func Num(value float64) *Literal {
	return NewLiteral(value)
}

func Str(value string) *Literal {
	return NewLiteral(value)
}

func Bool(value bool) *Literal {
	return NewLiteral(value)
}

func ID(name string) *Variable {
	return NewVariable(name)
}

// Expression helpers.

func Set(name string, value Expression) *Assign {
	return NewAssign(name, value)
}

func Un(operator string, operand Expression) *Unary {
	return NewUnary(operator, operand)
}

func Bin(operator string, left, right Expression) *Binary {
	return NewBinary(operator, left, right)
}

func Group(inner Expression) *Grouping {
	return NewGrouping(inner)
}

func Fn(name string, args ...Expression) *Call {
	return NewCall(name, args)
}

// Statement helpers.

func Var(name string, initializer Expression) *VarDecl {
	return NewVarDecl(name, initializer)
}

func Expr(expr Expression) *ExpressionStmt {
	return NewExpressionStmt(expr)
}

func Print(expr Expression) *PrintStmt {
	return NewPrintStmt(expr)
}

func Verb(verb string, args ...Expression) *CallStmt {
	return NewCallStmt(verb, args)
}

func Blk(statements ...Statement) *Block {
	return NewBlock(statements)
}

func Repeat(args []Expression, body ...Statement) *RepeatBlock {
	return NewRepeatBlock(args, body)
}

func Args(args ...Expression) []Expression {
	return args
}
