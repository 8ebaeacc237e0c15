package interpreter

import (
	"github.com/shautvast/szpakowski-lang/pkg/ast"
	"github.com/shautvast/szpakowski-lang/pkg/runtime"
)

func (e *Evaluator) evaluateExpression(node ast.Expression) (runtime.Value, error) {
	switch n := node.(type) {
	case *ast.Literal:
		value, err := runtime.FromLiteral(n.Value)
		if err != nil {
			return nil, e.errorf("%v", err)
		}
		return value, nil
	case *ast.Variable:
		return e.lookup(n.Name), nil
	case *ast.Assign:
		value, err := e.evaluateExpression(n.Value)
		if err != nil {
			return nil, err
		}
		e.assign(n.Name, value)
		return value, nil
	case *ast.Grouping:
		return e.evaluateExpression(n.Inner)
	case *ast.Unary:
		return e.evaluateUnary(n)
	case *ast.Binary:
		return e.evaluateBinary(n)
	case *ast.Call:
		return e.evaluateCall(n)
	default:
		return nil, e.errorf("unsupported expression type: %s", n.NodeType())
	}
}

func (e *Evaluator) lookup(name string) runtime.Value {
	var (
		value runtime.Value
		ok    bool
	)
	if e.ctx.Scoping == ScopeLexical {
		value, ok = e.env.Get(name)
	} else {
		value, ok = e.env.GetLocal(name)
	}
	if !ok {
		return runtime.Nil
	}
	return value
}

func (e *Evaluator) assign(name string, value runtime.Value) {
	if e.ctx.Scoping == ScopeLexical {
		e.env.Assign(name, value)
		return
	}
	e.env.Define(name, value)
}

func (e *Evaluator) evaluateUnary(expr *ast.Unary) (runtime.Value, error) {
	operand, err := e.evaluateExpression(expr.Operand)
	if err != nil {
		return nil, err
	}
	switch expr.Operator {
	case "-":
		num, ok := operand.(runtime.NumberValue)
		if !ok {
			return nil, e.errorf("Operand must be a number.")
		}
		return runtime.NumberValue{Val: -num.Val}, nil
	case "!":
		return runtime.BoolValue{Val: !isTruthy(operand)}, nil
	default:
		return nil, e.errorf("unsupported unary operator %s", expr.Operator)
	}
}

func (e *Evaluator) evaluateBinary(expr *ast.Binary) (runtime.Value, error) {
	left, err := e.evaluateExpression(expr.Left)
	if err != nil {
		return nil, err
	}
	right, err := e.evaluateExpression(expr.Right)
	if err != nil {
		return nil, err
	}
	switch expr.Operator {
	case "+":
		l, lok := left.(runtime.NumberValue)
		r, rok := right.(runtime.NumberValue)
		if lok && rok {
			return runtime.NumberValue{Val: l.Val + r.Val}, nil
		}
		return runtime.StringValue{Val: valueToString(left) + valueToString(right)}, nil
	case "-", "*", "/":
		l, lok := left.(runtime.NumberValue)
		r, rok := right.(runtime.NumberValue)
		if !lok || !rok {
			return nil, e.errorf("Operands must be numbers.")
		}
		switch expr.Operator {
		case "-":
			return runtime.NumberValue{Val: l.Val - r.Val}, nil
		case "*":
			return runtime.NumberValue{Val: l.Val * r.Val}, nil
		default:
			return runtime.NumberValue{Val: l.Val / r.Val}, nil
		}
	case ">", ">=", "<", "<=":
		return e.compare(expr.Operator, left, right)
	case "==":
		return runtime.BoolValue{Val: valuesEqual(left, right)}, nil
	case "!=":
		return runtime.BoolValue{Val: !valuesEqual(left, right)}, nil
	default:
		return nil, e.errorf("unsupported binary operator %s", expr.Operator)
	}
}

func (e *Evaluator) compare(operator string, left, right runtime.Value) (runtime.Value, error) {
	var cmp int
	switch l := left.(type) {
	case runtime.NumberValue:
		r, ok := right.(runtime.NumberValue)
		if !ok {
			return nil, e.errorf("Operands must be two numbers or two strings.")
		}
		// NaN compares false against everything.
		if l.Val != l.Val || r.Val != r.Val {
			return runtime.BoolValue{Val: false}, nil
		}
		switch {
		case l.Val < r.Val:
			cmp = -1
		case l.Val > r.Val:
			cmp = 1
		}
	case runtime.StringValue:
		r, ok := right.(runtime.StringValue)
		if !ok {
			return nil, e.errorf("Operands must be two numbers or two strings.")
		}
		switch {
		case l.Val < r.Val:
			cmp = -1
		case l.Val > r.Val:
			cmp = 1
		}
	default:
		return nil, e.errorf("Operands must be two numbers or two strings.")
	}
	var result bool
	switch operator {
	case ">":
		result = cmp > 0
	case ">=":
		result = cmp >= 0
	case "<":
		result = cmp < 0
	default:
		result = cmp <= 0
	}
	return runtime.BoolValue{Val: result}, nil
}

func (e *Evaluator) evaluateCall(call *ast.Call) (runtime.Value, error) {
	args, err := e.evaluateArguments(call.Args)
	if err != nil {
		return nil, err
	}
	spec, ok := builtins[call.Name]
	if !ok {
		return nil, e.errorf("Unknown function: %s", call.Name)
	}
	if len(args) != spec.arity {
		return nil, e.arityError(call.Name, spec.arity, spec.arity, len(args))
	}
	return spec.call(e, args)
}

// valuesEqual is strict equality: no coercion between kinds.
func valuesEqual(left, right runtime.Value) bool {
	switch l := left.(type) {
	case runtime.NumberValue:
		r, ok := right.(runtime.NumberValue)
		return ok && l.Val == r.Val
	case runtime.StringValue:
		r, ok := right.(runtime.StringValue)
		return ok && l.Val == r.Val
	case runtime.BoolValue:
		r, ok := right.(runtime.BoolValue)
		return ok && l.Val == r.Val
	case runtime.NilValue:
		_, ok := right.(runtime.NilValue)
		return ok
	default:
		return false
	}
}

func isTruthy(value runtime.Value) bool {
	switch v := value.(type) {
	case runtime.BoolValue:
		return v.Val
	case runtime.NumberValue:
		return v.Val != 0 && v.Val == v.Val
	case runtime.StringValue:
		return v.Val != ""
	case runtime.NilValue, nil:
		return false
	default:
		return true
	}
}
