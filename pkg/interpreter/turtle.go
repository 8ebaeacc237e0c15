package interpreter

import "math"

// Turtle is the drawing cursor. X and Y are world units relative to the
// origin; Heading is in radians, 0 pointing along +X.
type Turtle struct {
	X, Y    float64
	Heading float64
	Unit    float64
	// OriginX, OriginY is the canvas point that turtle (0, 0) maps to.
	OriginX, OriginY float64
}

// Start resets the heading and places the turtle at (x, y) turtle units.
func (t *Turtle) Start(x, y float64) {
	t.X = x * t.Unit
	t.Y = y * t.Unit
	t.Heading = 0
}

// Advance moves distance turtle units along the heading.
func (t *Turtle) Advance(distance float64) {
	t.X += distance * t.Unit * math.Cos(t.Heading)
	t.Y += distance * t.Unit * math.Sin(t.Heading)
}

// Turn adds degrees to the heading.
func (t *Turtle) Turn(degrees float64) {
	t.Heading += degrees * math.Pi / 180
}

// Canvas returns the turtle position in canvas coordinates.
func (t Turtle) Canvas() (float64, float64) {
	return t.OriginX + t.X, t.OriginY + t.Y
}

// Position returns the turtle position in turtle units, the form accepted by
// Context.X and Context.Y.
func (t Turtle) Position() (float64, float64) {
	if t.Unit == 0 {
		return t.X, t.Y
	}
	return t.X / t.Unit, t.Y / t.Unit
}

func (e *Evaluator) start(x, y float64) {
	e.turtle.Start(x, y)
	e.ctx.Surface.BeginPath()
	e.ctx.Surface.MoveTo(e.turtle.Canvas())
}

func (e *Evaluator) forward(distance float64) error {
	if err := e.tick(); err != nil {
		return err
	}
	e.turtle.Advance(distance)
	e.ctx.Surface.LineTo(e.turtle.Canvas())
	e.ctx.Surface.Stroke()
	return nil
}

func (e *Evaluator) turn(degrees float64) {
	e.turtle.Turn(degrees)
}

// pillars draws number pillars; the return leg grows by shift first when
// direction is BOTH, and length grows by shift after every pillar.
func (e *Evaluator) pillars(number, length, shift float64, direction string) error {
	sign := 1.0
	if direction == DirDown {
		sign = -1
	}
	for i := 0.0; i < number; i++ {
		e.turn(-90)
		if err := e.forward(sign * length); err != nil {
			return err
		}
		e.turn(90)
		if err := e.forward(1); err != nil {
			return err
		}
		e.turn(90)
		if direction == DirBoth {
			length += shift
		}
		if err := e.forward(sign * length); err != nil {
			return err
		}
		e.turn(-90)
		if err := e.forward(1); err != nil {
			return err
		}
		length += shift
	}
	return nil
}

// movingPillars alternates a pillar of the original length with one of
// length+shift.
func (e *Evaluator) movingPillars(n, length, shift float64, direction string) error {
	sign := 1.0
	if direction == e.ctx.MovingPillarsNegateOn {
		sign = -1
	}
	length2 := length
	length += shift
	for i := 0.0; i < n; i++ {
		e.turn(-90)
		if err := e.forward(sign * length2); err != nil {
			return err
		}
		e.turn(90)
		if err := e.forward(1); err != nil {
			return err
		}
		e.turn(90)
		if err := e.forward(sign * length); err != nil {
			return err
		}
		e.turn(-90)
		if err := e.forward(1); err != nil {
			return err
		}
	}
	return nil
}

func (e *Evaluator) staircase(steps, size float64, direction string) error {
	angle := -90.0
	if direction == DirDown {
		angle = 90
	}
	for i := 0.0; i < steps; i++ {
		if err := e.forward(size); err != nil {
			return err
		}
		e.turn(angle)
		if err := e.forward(size); err != nil {
			return err
		}
		e.turn(-angle)
	}
	return nil
}
