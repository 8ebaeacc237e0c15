package interpreter

import (
	"math"
	"strconv"
	"strings"

	"github.com/shautvast/szpakowski-lang/pkg/runtime"
)

// ValueToString renders a value the way print shows it.
func ValueToString(value runtime.Value) string {
	return valueToString(value)
}

func valueToString(value runtime.Value) string {
	switch v := value.(type) {
	case nil, runtime.NilValue:
		return "nil"
	case runtime.StringValue:
		return v.Val
	case runtime.BoolValue:
		if v.Val {
			return "true"
		}
		return "false"
	case runtime.NumberValue:
		return formatNumber(v.Val)
	default:
		return "<" + value.Kind().String() + ">"
	}
}

// formatNumber prints the shortest decimal that round-trips, switching to
// exponent form outside [1e-6, 1e21).
func formatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}
	abs := math.Abs(f)
	if abs >= 1e21 || abs < 1e-6 {
		formatted := strconv.FormatFloat(f, 'e', -1, 64)
		mantissa, exp, _ := strings.Cut(formatted, "e")
		digits := strings.TrimLeft(exp[1:], "0")
		return mantissa + "e" + exp[:1] + digits
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
