package interpreter

import (
	"math"

	"github.com/shautvast/szpakowski-lang/pkg/runtime"
)

type builtinSpec struct {
	arity int
	call  func(e *Evaluator, args []runtime.Value) (runtime.Value, error)
}

var builtins map[string]builtinSpec

func init() {
	builtins = map[string]builtinSpec{
		"random": {2, func(e *Evaluator, args []runtime.Value) (runtime.Value, error) {
			lo, err := e.number("random", args, 0)
			if err != nil {
				return nil, err
			}
			hi, err := e.number("random", args, 1)
			if err != nil {
				return nil, err
			}
			return runtime.NumberValue{Val: lo + e.random.Float64()*(hi-lo)}, nil
		}},
		"sin":  mathBuiltin("sin", math.Sin),
		"cos":  mathBuiltin("cos", math.Cos),
		"tan":  mathBuiltin("tan", math.Tan),
		"atan": mathBuiltin("atan", math.Atan),
	}
}

func mathBuiltin(name string, fn func(float64) float64) builtinSpec {
	return builtinSpec{1, func(e *Evaluator, args []runtime.Value) (runtime.Value, error) {
		x, err := e.number(name, args, 0)
		if err != nil {
			return nil, err
		}
		return runtime.NumberValue{Val: fn(x)}, nil
	}}
}
