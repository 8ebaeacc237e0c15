package runtime

import "fmt"

// Kind identifies the runtime value category.
type Kind int

const (
	KindNil Kind = iota
	KindBool
	KindNumber
	KindString
)

func (k Kind) String() string {
	switch k {
	case KindNil:
		return "nil"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	default:
		return fmt.Sprintf("unknown_kind_%d", int(k))
	}
}

// Value is the shared behaviour for all runtime values.
type Value interface {
	Kind() Kind
}

type NilValue struct{}

func (NilValue) Kind() Kind { return KindNil }

type BoolValue struct {
	Val bool
}

func (v BoolValue) Kind() Kind { return KindBool }

// NumberValue holds every numeric value; NaN and the infinities are valid.
type NumberValue struct {
	Val float64
}

func (v NumberValue) Kind() Kind { return KindNumber }

type StringValue struct {
	Val string
}

func (v StringValue) Kind() Kind { return KindString }

// Nil is the value of a missing binding.
var Nil Value = NilValue{}

// FromLiteral converts a scanned literal into a runtime value.
func FromLiteral(literal any) (Value, error) {
	switch v := literal.(type) {
	case nil:
		return Nil, nil
	case float64:
		return NumberValue{Val: v}, nil
	case string:
		return StringValue{Val: v}, nil
	case bool:
		return BoolValue{Val: v}, nil
	default:
		return nil, fmt.Errorf("unsupported literal %T", literal)
	}
}
