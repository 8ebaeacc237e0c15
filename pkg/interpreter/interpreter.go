package interpreter

import (
	"io"
	"math"
	"math/rand/v2"
	"time"

	"github.com/shautvast/szpakowski-lang/pkg/ast"
	"github.com/shautvast/szpakowski-lang/pkg/parser"
	"github.com/shautvast/szpakowski-lang/pkg/runtime"
)

// Surface is the drawing target driven by the turtle verbs. The method set
// mirrors a 2-D canvas context.
type Surface interface {
	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	Stroke()
	ClearRect(x, y, width, height float64)
}

// RandomSource yields uniform floats in [0, 1).
type RandomSource interface {
	Float64() float64
}

// Scoping selects how variable reads and assignments see enclosing frames.
type Scoping int

const (
	// ScopeFrame resolves reads and writes in the current frame only.
	ScopeFrame Scoping = iota
	// ScopeLexical walks the enclosing chain for reads and assignments.
	ScopeLexical
)

func (s Scoping) String() string {
	if s == ScopeLexical {
		return "lexical"
	}
	return "frame"
}

// Direction constants bound in the root frame.
const (
	DirUp    = "UP"
	DirDown  = "DOWN"
	DirLeft  = "LEFT"
	DirRight = "RIGHT"
	DirBoth  = "BOTH"
)

// Context is the host-supplied execution context for one run.
type Context struct {
	Surface Surface
	// X, Y are the initial turtle position in turtle units; Angle is the
	// initial heading in radians.
	X, Y  float64
	Angle float64
	// Unit is world units per turtle unit. Zero means 1.
	Unit          float64
	Width, Height float64
	Print         io.Writer
	Random        RandomSource
	Scoping       Scoping
	// MovingPillarsNegateOn is the direction on which moving_pillars
	// negates its legs. Empty means UP.
	MovingPillarsNegateOn string
	// StepLimit caps statement executions and turtle moves. Zero is unlimited.
	StepLimit int
}

// Evaluator executes one program. It owns the frame pointer and the turtle.
type Evaluator struct {
	ctx    Context
	root   *runtime.Environment
	env    *runtime.Environment
	turtle Turtle
	random RandomSource
	print  io.Writer
	steps  int
	line   int
}

// New builds an evaluator with a fresh root frame and turtle.
func New(ctx Context) *Evaluator {
	if ctx.Unit == 0 {
		ctx.Unit = 1
	}
	if ctx.Surface == nil {
		ctx.Surface = discardSurface{}
	}
	if ctx.MovingPillarsNegateOn == "" {
		ctx.MovingPillarsNegateOn = DirUp
	}
	e := &Evaluator{
		ctx:   ctx,
		root:  runtime.NewEnvironment(nil),
		print: ctx.Print,
		turtle: Turtle{
			X:       ctx.X * ctx.Unit,
			Y:       ctx.Y * ctx.Unit,
			Heading: ctx.Angle,
			Unit:    ctx.Unit,
			OriginX: ctx.Width / 2,
			OriginY: ctx.Height / 4,
		},
		random: ctx.Random,
	}
	if e.random == nil {
		seed := uint64(time.Now().UnixNano())
		e.random = rand.New(rand.NewPCG(seed, seed>>1|1))
	}
	if e.print == nil {
		e.print = io.Discard
	}
	e.env = e.root
	e.defineRoot()
	return e
}

func (e *Evaluator) defineRoot() {
	for _, dir := range []string{DirUp, DirDown, DirLeft, DirRight, DirBoth} {
		e.root.Define(dir, runtime.StringValue{Val: dir})
	}
	e.root.Define("PI", runtime.NumberValue{Val: math.Pi})
	e.root.Define("x", runtime.NumberValue{Val: e.ctx.X})
	e.root.Define("y", runtime.NumberValue{Val: e.ctx.Y})
	e.root.Define("angle", runtime.NumberValue{Val: e.ctx.Angle})
	e.root.Define("unit", runtime.NumberValue{Val: e.ctx.Unit})
	e.root.Define("width", runtime.NumberValue{Val: e.ctx.Width})
	e.root.Define("height", runtime.NumberValue{Val: e.ctx.Height})
}

// Interpret scans, parses and executes source against ctx.
func Interpret(ctx Context, source string) error {
	return New(ctx).Run(source)
}

// Run parses source and executes the resulting program.
func (e *Evaluator) Run(source string) error {
	program, err := parser.ParseSource(source)
	if err != nil {
		return err
	}
	return e.Execute(program)
}

// Execute runs statements in order, stopping at the first error.
func (e *Evaluator) Execute(program []ast.Statement) error {
	for _, stmt := range program {
		if err := e.executeStatement(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Turtle returns the current turtle state.
func (e *Evaluator) Turtle() Turtle {
	return e.turtle
}

// Globals exposes the root frame.
func (e *Evaluator) Globals() *runtime.Environment {
	return e.root
}

// Steps reports how many steps the run has consumed.
func (e *Evaluator) Steps() int {
	return e.steps
}

func (e *Evaluator) tick() error {
	e.steps++
	if e.ctx.StepLimit > 0 && e.steps > e.ctx.StepLimit {
		return e.wrapf(ErrStepLimit, "step limit of %d exceeded", e.ctx.StepLimit)
	}
	return nil
}

type discardSurface struct{}

func (discardSurface) BeginPath()                   {}
func (discardSurface) MoveTo(float64, float64)      {}
func (discardSurface) LineTo(float64, float64)      {}
func (discardSurface) Stroke()                      {}
func (discardSurface) ClearRect(_, _, _, _ float64) {}
