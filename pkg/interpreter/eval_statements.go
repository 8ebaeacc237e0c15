package interpreter

import (
	"fmt"
	"math"

	"github.com/shautvast/szpakowski-lang/pkg/ast"
	"github.com/shautvast/szpakowski-lang/pkg/runtime"
)

// maxRepeatBound is the largest magnitude at which a float64 counter still
// advances by one.
const maxRepeatBound = 1 << 53

func (e *Evaluator) executeStatement(node ast.Statement) error {
	if line := node.Line(); line > 0 {
		e.line = line
	}
	if err := e.tick(); err != nil {
		return err
	}
	switch n := node.(type) {
	case *ast.VarDecl:
		var value runtime.Value = runtime.Nil
		if n.Initializer != nil {
			v, err := e.evaluateExpression(n.Initializer)
			if err != nil {
				return err
			}
			value = v
		}
		e.env.Define(n.Name, value)
		return nil
	case *ast.ExpressionStmt:
		_, err := e.evaluateExpression(n.Expr)
		return err
	case *ast.PrintStmt:
		value, err := e.evaluateExpression(n.Expr)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(e.print, valueToString(value))
		return err
	case *ast.CallStmt:
		return e.executeCall(n)
	case *ast.Block:
		return e.executeBlock(n.Statements, runtime.NewEnvironment(e.env))
	case *ast.RepeatBlock:
		return e.executeRepeat(n)
	default:
		return e.errorf("unsupported statement type: %s", n.NodeType())
	}
}

// executeBlock runs statements with env as the current frame and restores
// the previous frame on every exit path.
func (e *Evaluator) executeBlock(statements []ast.Statement, env *runtime.Environment) error {
	previous := e.env
	e.env = env
	defer func() { e.env = previous }()
	for _, stmt := range statements {
		if err := e.executeStatement(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (e *Evaluator) executeCall(call *ast.CallStmt) error {
	args, err := e.evaluateArguments(call.Args)
	if err != nil {
		return err
	}
	spec, ok := verbs[call.Verb]
	if !ok {
		return e.errorf("Unknown function: %s", call.Verb)
	}
	if len(args) < spec.min || len(args) > spec.max {
		return e.arityError(call.Verb, spec.min, spec.max, len(args))
	}
	return spec.run(e, args)
}

func (e *Evaluator) executeRepeat(loop *ast.RepeatBlock) error {
	bounds, err := e.evaluateArguments(loop.Args)
	if err != nil {
		return err
	}
	if len(bounds) < 1 || len(bounds) > 2 {
		return e.arityError("repeat", 1, 2, len(bounds))
	}
	start, end := 0.0, 0.0
	for idx, bound := range bounds {
		num, ok := bound.(runtime.NumberValue)
		if !ok {
			return e.errorf("repeat bounds must be numbers, got %s", bound.Kind())
		}
		if math.Abs(num.Val) > maxRepeatBound {
			return e.errorf("repeat bounds must be between -2^53 and 2^53, got %s", valueToString(num))
		}
		if len(bounds) == 2 && idx == 0 {
			start = num.Val
		} else {
			end = num.Val
		}
	}

	frame := runtime.NewEnvironment(e.env)
	previous := e.env
	e.env = frame
	defer func() { e.env = previous }()
	for i := start; i < end; i++ {
		if err := e.tick(); err != nil {
			return err
		}
		frame.Define("it", runtime.NumberValue{Val: i})
		for _, stmt := range loop.Body {
			if err := e.executeStatement(stmt); err != nil {
				return err
			}
		}
	}
	return nil
}

func (e *Evaluator) evaluateArguments(exprs []ast.Expression) ([]runtime.Value, error) {
	args := make([]runtime.Value, 0, len(exprs))
	for _, expr := range exprs {
		value, err := e.evaluateExpression(expr)
		if err != nil {
			return nil, err
		}
		args = append(args, value)
	}
	return args, nil
}

func (e *Evaluator) arityError(name string, min, max, got int) *RuntimeError {
	switch {
	case min == max && min == 1:
		return e.errorf("%s expects 1 argument, got %d", name, got)
	case min == max:
		return e.errorf("%s expects %d arguments, got %d", name, min, got)
	default:
		return e.errorf("%s expects %d to %d arguments, got %d", name, min, max, got)
	}
}
