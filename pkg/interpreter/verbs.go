package interpreter

import (
	"math"

	"github.com/shautvast/szpakowski-lang/pkg/runtime"
)

type verbSpec struct {
	min, max int
	run      func(e *Evaluator, args []runtime.Value) error
}

// VerbHelp lists the verb and builtin signatures shown by interactive hosts.
var VerbHelp = []string{
	"start(x, y)",
	"go(distance)",
	"turn(angle)",
	"left(angle)",
	"right(angle)",
	"pillars(number, length, shift = 0, direction = UP)",
	"moving_pillars(number, length, shift = 0, direction = DOWN)",
	"staircase(number, size, direction = DOWN)",
	"repeat([start], end) { ... }",
	"random(range_start, range_end)",
	"sin(alpha)",
	"cos(alpha)",
	"tan(alpha)",
	"atan(tangent)",
}

var verbs map[string]verbSpec

func init() {
	verbs = map[string]verbSpec{
		"start": {2, 2, func(e *Evaluator, args []runtime.Value) error {
			x, err := e.number("start", args, 0)
			if err != nil {
				return err
			}
			y, err := e.number("start", args, 1)
			if err != nil {
				return err
			}
			e.start(x, y)
			return nil
		}},
		"go": {1, 1, func(e *Evaluator, args []runtime.Value) error {
			d, err := e.number("go", args, 0)
			if err != nil {
				return err
			}
			return e.forward(d)
		}},
		"turn":  {1, 1, turnVerb("turn", 1)},
		"right": {1, 1, turnVerb("right", 1)},
		"left":  {1, 1, turnVerb("left", -1)},
		"pillars": {2, 4, func(e *Evaluator, args []runtime.Value) error {
			number, length, shift, err := e.pillarArgs("pillars", args)
			if err != nil {
				return err
			}
			return e.pillars(number, length, shift, direction(args, 3, DirUp))
		}},
		"moving_pillars": {2, 4, func(e *Evaluator, args []runtime.Value) error {
			n, length, shift, err := e.pillarArgs("moving_pillars", args)
			if err != nil {
				return err
			}
			return e.movingPillars(n, length, shift, direction(args, 3, DirDown))
		}},
		"staircase": {2, 3, func(e *Evaluator, args []runtime.Value) error {
			steps, err := e.count("staircase", args, 0)
			if err != nil {
				return err
			}
			size, err := e.number("staircase", args, 1)
			if err != nil {
				return err
			}
			return e.staircase(steps, size, direction(args, 2, DirDown))
		}},
	}
}

func turnVerb(name string, sign float64) func(e *Evaluator, args []runtime.Value) error {
	return func(e *Evaluator, args []runtime.Value) error {
		degrees, err := e.number(name, args, 0)
		if err != nil {
			return err
		}
		e.turn(sign * degrees)
		return nil
	}
}

func (e *Evaluator) pillarArgs(name string, args []runtime.Value) (float64, float64, float64, error) {
	count, err := e.count(name, args, 0)
	if err != nil {
		return 0, 0, 0, err
	}
	length, err := e.number(name, args, 1)
	if err != nil {
		return 0, 0, 0, err
	}
	shift := 0.0
	if present(args, 2) {
		if shift, err = e.number(name, args, 2); err != nil {
			return 0, 0, 0, err
		}
	}
	return count, length, shift, nil
}

func (e *Evaluator) number(name string, args []runtime.Value, idx int) (float64, error) {
	num, ok := args[idx].(runtime.NumberValue)
	if !ok {
		return 0, e.errorf("%s expects a number for argument %d, got %s", name, idx+1, args[idx].Kind())
	}
	return num.Val, nil
}

// count reads a repetition count, which must stay where a float64 counter
// still advances.
func (e *Evaluator) count(name string, args []runtime.Value, idx int) (float64, error) {
	n, err := e.number(name, args, idx)
	if err != nil {
		return 0, err
	}
	if math.Abs(n) > maxRepeatBound {
		return 0, e.errorf("%s count must be between -2^53 and 2^53, got %s", name, valueToString(args[idx]))
	}
	return n, nil
}

// present reports whether an optional argument was given. A nil value,
// such as an unbound name, counts as absent.
func present(args []runtime.Value, idx int) bool {
	if idx >= len(args) {
		return false
	}
	_, isNil := args[idx].(runtime.NilValue)
	return !isNil
}

// direction reads an optional direction argument. Values other than the
// direction strings never match a direction.
func direction(args []runtime.Value, idx int, fallback string) string {
	if !present(args, idx) {
		return fallback
	}
	if s, ok := args[idx].(runtime.StringValue); ok {
		return s.Val
	}
	return valueToString(args[idx])
}
