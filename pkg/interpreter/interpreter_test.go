package interpreter

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/shautvast/szpakowski-lang/pkg/ast"
	"github.com/shautvast/szpakowski-lang/pkg/lexer"
	"github.com/shautvast/szpakowski-lang/pkg/parser"
	"github.com/shautvast/szpakowski-lang/pkg/runtime"
	"github.com/shautvast/szpakowski-lang/pkg/surface"
)

type fixedRandom float64

func (f fixedRandom) Float64() float64 { return float64(f) }

func testContext(rec *surface.Recorder, out *bytes.Buffer) Context {
	ctx := Context{
		Surface: rec,
		Unit:    10,
		Width:   800,
		Height:  400,
		Random:  fixedRandom(0.5),
	}
	if out != nil {
		ctx.Print = out
	}
	return ctx
}

func runProgram(t testing.TB, ctx Context, source string) *Evaluator {
	t.Helper()
	eval := New(ctx)
	if err := eval.Run(source); err != nil {
		t.Fatalf("Run(%q): %v", source, err)
	}
	return eval
}

func printed(t testing.TB, source string) string {
	t.Helper()
	var out bytes.Buffer
	runProgram(t, testContext(surface.NewRecorder(), &out), source)
	return out.String()
}

func runtimeError(t testing.TB, ctx Context, source string) *RuntimeError {
	t.Helper()
	err := Interpret(ctx, source)
	if err == nil {
		t.Fatalf("Interpret(%q): expected runtime error", source)
	}
	var rtErr *RuntimeError
	if !errors.As(err, &rtErr) {
		t.Fatalf("Interpret(%q): expected *RuntimeError, got %T (%v)", source, err, err)
	}
	return rtErr
}

func TestInterpretVarAndPrint(t *testing.T) {
	if got := printed(t, "var a = 1; print a;"); got != "1\n" {
		t.Fatalf("printed %q, want %q", got, "1\n")
	}
}

func TestInterpretExpressions(t *testing.T) {
	cases := []struct {
		expr string
		want string
	}{
		{`1 + "a"`, "1a"},
		{`"a" + true`, "atrue"},
		{`"n" + nothing`, "nnil"},
		{"1 == 1.0", "true"},
		{`"x" == "x"`, "true"},
		{`1 == "1"`, "false"},
		{`1 != "1"`, "true"},
		{"2 * 3 + 4", "10"},
		{"7 / 2", "3.5"},
		{"1 / 0", "Infinity"},
		{"-1 / 0", "-Infinity"},
		{"0 / 0", "NaN"},
		{"(0 / 0) == (0 / 0)", "false"},
		{"3 > 2", "true"},
		{"2 >= 3", "false"},
		{`"a" < "b"`, "true"},
		{"!0", "true"},
		{`!""`, "true"},
		{"!nothing", "true"},
		{"!1", "false"},
		{"-(2 - 5)", "3"},
		{"0.1 + 0.2", "0.30000000000000004"},
		{"1000000 * 1000000 * 1000000 * 1000", "1e+21"},
		{"1 / 10000000", "1e-7"},
		{"PI > 3.14", "true"},
		{"UP", "UP"},
		{"width + height", "1200"},
		{"unit", "10"},
		{"random(2, 4)", "3"},
		{"sin(0) + cos(0)", "1"},
		{"atan(1) * 4 > 3.14", "true"},
		{"tan(0)", "0"},
	}
	for _, tc := range cases {
		t.Run(tc.expr, func(t *testing.T) {
			got := printed(t, "print "+tc.expr+";")
			if got != tc.want+"\n" {
				t.Fatalf("print %s = %q, want %q", tc.expr, got, tc.want+"\n")
			}
		})
	}
}

func TestInterpretAssignmentIsAnExpression(t *testing.T) {
	if got := printed(t, "var a; var b; a = b = 4; print a + b; print a = 1;"); got != "8\n1\n" {
		t.Fatalf("printed %q", got)
	}
}

func TestInterpretOperandErrors(t *testing.T) {
	rec := surface.NewRecorder()
	cases := map[string]string{
		`print "a" - 1;`:   "Operands must be numbers.",
		`print true * 2;`:  "Operands must be numbers.",
		`print -"a";`:      "Operand must be a number.",
		`print 1 < "a";`:   "Operands must be two numbers or two strings.",
		`print nil > nil;`: "Operands must be two numbers or two strings.",
		"foo(1);":          "Unknown function: foo",
		"print sin();":     "sin expects 1 argument, got 0",
		"random(1);":       "random expects 2 arguments, got 1",
		`go("far");`:       "go expects a number for argument 1, got string",
		"start(1);":        "start expects 2 arguments, got 1",
		"pillars(1);":      "pillars expects 2 to 4 arguments, got 1",
		`repeat("3") { }`:  "repeat bounds must be numbers, got string",
	}
	for source, want := range cases {
		rtErr := runtimeError(t, testContext(rec, nil), source)
		if rtErr.Error() != want {
			t.Fatalf("%s: error = %q, want %q", source, rtErr.Error(), want)
		}
		if rtErr.Line != 1 {
			t.Fatalf("%s: line = %d, want 1", source, rtErr.Line)
		}
	}
}

func TestInterpretUnknownVerbInCallStatement(t *testing.T) {
	eval := New(testContext(surface.NewRecorder(), nil))
	err := eval.Execute([]ast.Statement{ast.Verb("spin", ast.Num(1))})
	var rtErr *RuntimeError
	if !errors.As(err, &rtErr) || rtErr.Message != "Unknown function: spin" {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestInterpretSurfacesFrontEndErrors(t *testing.T) {
	err := Interpret(Context{}, "print \"open")
	var lexErr *lexer.Error
	if !errors.As(err, &lexErr) || lexErr.Kind != lexer.UnterminatedString || lexErr.Line != 1 {
		t.Fatalf("expected unterminated string error, got %v", err)
	}
	err = Interpret(Context{}, "print 1")
	var syntaxErr *parser.SyntaxError
	if !errors.As(err, &syntaxErr) || !syntaxErr.AtEnd {
		t.Fatalf("expected syntax error at end, got %v", err)
	}
}

func TestInterpretErrorAbortsRemainingStatements(t *testing.T) {
	var out bytes.Buffer
	err := Interpret(testContext(surface.NewRecorder(), &out), "print 1;\nprint -true;\nprint 3;")
	var rtErr *RuntimeError
	if !errors.As(err, &rtErr) || rtErr.Line != 2 {
		t.Fatalf("expected runtime error on line 2, got %v", err)
	}
	if out.String() != "1\n" {
		t.Fatalf("statements after the error ran: %q", out.String())
	}
}

func TestRepeatRanges(t *testing.T) {
	cases := []struct {
		source string
		want   string
	}{
		{"repeat(3) { print it; }", "0\n1\n2\n"},
		{"repeat(2, 5) { print it; }", "2\n3\n4\n"},
		{"repeat(0) { print it; }", ""},
		{"repeat(5, 2) { print it; }", ""},
		{"repeat(-2) { print it; }", ""},
		{"repeat(0.5, 2) { print it; }", "0.5\n1.5\n"},
	}
	for _, tc := range cases {
		if got := printed(t, tc.source); got != tc.want {
			t.Fatalf("%s printed %q, want %q", tc.source, got, tc.want)
		}
	}
}

func TestRepeatRejectsInexactBounds(t *testing.T) {
	for _, source := range []string{
		"repeat(10000000000000000, 10000000000000003) { }",
		"repeat(1 / 0) { }",
		"repeat(-10000000000000000, 0) { }",
	} {
		err := runtimeError(t, Context{}, source)
		if !strings.HasPrefix(err.Message, "repeat bounds must be between -2^53 and 2^53") {
			t.Fatalf("%s: unexpected message %q", source, err.Message)
		}
	}
	err := runtimeError(t, Context{}, "staircase(1 / 0, 1);")
	if err.Message != "staircase count must be between -2^53 and 2^53, got Infinity" {
		t.Fatalf("unexpected message %q", err.Message)
	}
	got := printed(t, "repeat(9007199254740990, 9007199254740992) { print it - 9007199254740990; }")
	if got != "0\n1\n" {
		t.Fatalf("printed %q", got)
	}
}

func TestRepeatOpensOneFrameForAllIterations(t *testing.T) {
	// The counter assigned in iteration 0 is still visible in iteration 1.
	got := printed(t, "repeat(2) { print seen; seen = it; }")
	if got != "nil\n0\n" {
		t.Fatalf("printed %q", got)
	}
}

func TestBlockRestoresFrame(t *testing.T) {
	eval := runProgram(t, testContext(surface.NewRecorder(), nil), "{ var inner = 1; } repeat(2) { var loop = it; }")
	if eval.env != eval.root {
		t.Fatalf("current frame not restored")
	}
	for _, name := range []string{"inner", "loop", "it"} {
		if _, ok := eval.Globals().GetLocal(name); ok {
			t.Fatalf("block bindings leaked: %v", eval.Globals().Keys())
		}
	}
}

func TestBlockRestoresFrameOnError(t *testing.T) {
	eval := New(testContext(surface.NewRecorder(), nil))
	if err := eval.Run("{ repeat(2) { print -true; } }"); err == nil {
		t.Fatalf("expected error")
	}
	if eval.env != eval.root {
		t.Fatalf("current frame not restored after error")
	}
}

func TestFrameScoping(t *testing.T) {
	source := `
var a = 1;
{
  print a;
  a = 2;
  print a;
}
print a;
`
	if got := printed(t, source); got != "nil\n2\n1\n" {
		t.Fatalf("frame scoping printed %q", got)
	}
}

func TestLexicalScoping(t *testing.T) {
	source := `
var a = 1;
{
  print a;
  a = 2;
  var b = 3;
  c = 4;
}
print a;
print b;
print c;
`
	var out bytes.Buffer
	ctx := testContext(surface.NewRecorder(), &out)
	ctx.Scoping = ScopeLexical
	runProgram(t, ctx, source)
	if got := out.String(); got != "1\n2\nnil\nnil\n" {
		t.Fatalf("lexical scoping printed %q", got)
	}
}

func TestLexicalScopingSeesRootBindingsInLoops(t *testing.T) {
	var out bytes.Buffer
	ctx := testContext(surface.NewRecorder(), &out)
	ctx.Scoping = ScopeLexical
	runProgram(t, ctx, "var n = 2; repeat(n) { print DOWN + n; }")
	if out.String() != "DOWN2\nDOWN2\n" {
		t.Fatalf("printed %q", out.String())
	}
}

func TestPrintWithoutSink(t *testing.T) {
	if err := Interpret(Context{}, `print "ignored";`); err != nil {
		t.Fatalf("Interpret: %v", err)
	}
}

func TestRootBindings(t *testing.T) {
	ctx := Context{X: 1, Y: 2, Angle: 0.5, Unit: 3, Width: 40, Height: 20}
	eval := New(ctx)
	want := map[string]runtime.Value{
		"UP":     runtime.StringValue{Val: "UP"},
		"DOWN":   runtime.StringValue{Val: "DOWN"},
		"LEFT":   runtime.StringValue{Val: "LEFT"},
		"RIGHT":  runtime.StringValue{Val: "RIGHT"},
		"BOTH":   runtime.StringValue{Val: "BOTH"},
		"x":      runtime.NumberValue{Val: 1},
		"y":      runtime.NumberValue{Val: 2},
		"angle":  runtime.NumberValue{Val: 0.5},
		"unit":   runtime.NumberValue{Val: 3},
		"width":  runtime.NumberValue{Val: 40},
		"height": runtime.NumberValue{Val: 20},
	}
	for name, value := range want {
		got, ok := eval.Globals().GetLocal(name)
		if !ok || got != value {
			t.Fatalf("%s = %#v, want %#v", name, got, value)
		}
	}
	if _, ok := eval.Globals().GetLocal("PI"); !ok {
		t.Fatalf("PI not bound")
	}
}

func TestStepLimit(t *testing.T) {
	ctx := testContext(surface.NewRecorder(), nil)
	ctx.StepLimit = 50
	rtErr := runtimeError(t, ctx, "repeat(1000000000) { }")
	if !errors.Is(rtErr, ErrStepLimit) {
		t.Fatalf("expected ErrStepLimit, got %v", rtErr)
	}
	if !strings.Contains(rtErr.Error(), "step limit of 50 exceeded") {
		t.Fatalf("unexpected message %q", rtErr.Error())
	}
	rtErr = runtimeError(t, ctx, "start(0, 0); pillars(1000, 1);")
	if !errors.Is(rtErr, ErrStepLimit) {
		t.Fatalf("expected ErrStepLimit from verb moves, got %v", rtErr)
	}
}

func TestFormatNumber(t *testing.T) {
	cases := map[float64]string{
		0:         "0",
		-2:        "-2",
		1.5:       "1.5",
		123456789: "123456789",
		1e20:      "100000000000000000000",
		1e21:      "1e+21",
		1.5e-7:    "1.5e-7",
		0.000001:  "0.000001",
		-1e300:    "-1e+300",
	}
	for in, want := range cases {
		if got := formatNumber(in); got != want {
			t.Fatalf("formatNumber(%v) = %q, want %q", in, got, want)
		}
	}
	if got := ValueToString(runtime.Nil); got != "nil" {
		t.Fatalf("ValueToString(nil) = %q", got)
	}
}

func TestStringersAndHelp(t *testing.T) {
	if ScopeFrame.String() != "frame" || ScopeLexical.String() != "lexical" {
		t.Fatalf("unexpected scoping names")
	}
	if len(VerbHelp) == 0 {
		t.Fatalf("VerbHelp is empty")
	}
}
