package runtime

import (
	"reflect"
	"testing"
)

func TestEnvironmentDefineAndGetLocal(t *testing.T) {
	env := NewEnvironment(nil)
	env.Define("a", NumberValue{Val: 1})
	got, ok := env.GetLocal("a")
	if !ok {
		t.Fatalf("expected a to be defined")
	}
	if got != (NumberValue{Val: 1}) {
		t.Fatalf("unexpected value %#v", got)
	}
	env.Define("a", StringValue{Val: "x"})
	if got, _ := env.GetLocal("a"); got != (StringValue{Val: "x"}) {
		t.Fatalf("Define did not overwrite: %#v", got)
	}
}

func TestEnvironmentGetLocalIgnoresParent(t *testing.T) {
	root := NewEnvironment(nil)
	root.Define("a", NumberValue{Val: 1})
	child := NewEnvironment(root)
	if _, ok := child.GetLocal("a"); ok {
		t.Fatalf("GetLocal should not see parent bindings")
	}
	got, ok := child.Get("a")
	if !ok || got != (NumberValue{Val: 1}) {
		t.Fatalf("Get should walk the chain, got %#v (%v)", got, ok)
	}
	if _, ok := child.Get("b"); ok {
		t.Fatalf("Get found an unbound name")
	}
}

func TestEnvironmentAssignUpdatesDeclaringFrame(t *testing.T) {
	root := NewEnvironment(nil)
	root.Define("a", NumberValue{Val: 1})
	child := NewEnvironment(root)
	child.Assign("a", NumberValue{Val: 2})
	if got, _ := root.GetLocal("a"); got != (NumberValue{Val: 2}) {
		t.Fatalf("root binding not updated: %#v", got)
	}
	if _, ok := child.GetLocal("a"); ok {
		t.Fatalf("Assign should not shadow in the child")
	}
}

func TestEnvironmentAssignDefinesWhenMissing(t *testing.T) {
	root := NewEnvironment(nil)
	child := NewEnvironment(root)
	child.Assign("b", BoolValue{Val: true})
	if _, ok := root.GetLocal("b"); ok {
		t.Fatalf("missing name leaked to the root")
	}
	if got, ok := child.GetLocal("b"); !ok || got != (BoolValue{Val: true}) {
		t.Fatalf("expected b in child, got %#v (%v)", got, ok)
	}
}

func TestEnvironmentKeysAndSnapshot(t *testing.T) {
	root := NewEnvironment(nil)
	if keys := root.Keys(); len(keys) != 0 {
		t.Fatalf("Keys of an empty frame = %v", keys)
	}
	root.Define("b", Nil)
	root.Define("a", NumberValue{Val: 1})
	child := NewEnvironment(root)
	child.Define("c", Nil)
	if keys := root.Keys(); !reflect.DeepEqual(keys, []string{"a", "b"}) {
		t.Fatalf("Keys = %v", keys)
	}
	snap := root.Snapshot()
	if snap["a"] != (NumberValue{Val: 1}) || len(snap) != 2 {
		t.Fatalf("Snapshot = %#v", snap)
	}
	snap["c"] = Nil
	if _, ok := root.GetLocal("c"); ok {
		t.Fatalf("Snapshot must be a copy")
	}
}

func TestFromLiteral(t *testing.T) {
	cases := []struct {
		literal any
		want    Value
	}{
		{nil, NilValue{}},
		{float64(2.5), NumberValue{Val: 2.5}},
		{"hi", StringValue{Val: "hi"}},
		{true, BoolValue{Val: true}},
	}
	for _, tc := range cases {
		got, err := FromLiteral(tc.literal)
		if err != nil {
			t.Fatalf("FromLiteral(%#v): %v", tc.literal, err)
		}
		if got != tc.want {
			t.Fatalf("FromLiteral(%#v) = %#v, want %#v", tc.literal, got, tc.want)
		}
	}
	if _, err := FromLiteral(3); err == nil {
		t.Fatalf("expected error for int literal")
	}
	if KindNumber.String() != "number" || Kind(42).String() != "unknown_kind_42" {
		t.Fatalf("unexpected kind names")
	}
}
