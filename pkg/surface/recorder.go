package surface

import "fmt"

// Target is the canvas-like method set every surface implements.
type Target interface {
	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	Stroke()
	ClearRect(x, y, width, height float64)
}

// OpKind identifies a recorded surface call.
type OpKind int

const (
	OpBeginPath OpKind = iota
	OpMoveTo
	OpLineTo
	OpStroke
	OpClearRect
)

func (k OpKind) String() string {
	switch k {
	case OpBeginPath:
		return "beginPath"
	case OpMoveTo:
		return "moveTo"
	case OpLineTo:
		return "lineTo"
	case OpStroke:
		return "stroke"
	case OpClearRect:
		return "clearRect"
	default:
		return fmt.Sprintf("op_%d", int(k))
	}
}

// Op is one recorded call. W and H are only set for OpClearRect.
type Op struct {
	Kind OpKind
	X, Y float64
	W, H float64
}

func (o Op) String() string {
	switch o.Kind {
	case OpMoveTo, OpLineTo:
		return fmt.Sprintf("%s(%g, %g)", o.Kind, o.X, o.Y)
	case OpClearRect:
		return fmt.Sprintf("%s(%g, %g, %g, %g)", o.Kind, o.X, o.Y, o.W, o.H)
	default:
		return o.Kind.String() + "()"
	}
}

// Segment is one drawn line in canvas coordinates.
type Segment struct {
	X1, Y1, X2, Y2 float64
}

// Recorder keeps every call in order. The zero value is ready to use.
type Recorder struct {
	Ops []Op
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) BeginPath() {
	r.Ops = append(r.Ops, Op{Kind: OpBeginPath})
}

func (r *Recorder) MoveTo(x, y float64) {
	r.Ops = append(r.Ops, Op{Kind: OpMoveTo, X: x, Y: y})
}

func (r *Recorder) LineTo(x, y float64) {
	r.Ops = append(r.Ops, Op{Kind: OpLineTo, X: x, Y: y})
}

func (r *Recorder) Stroke() {
	r.Ops = append(r.Ops, Op{Kind: OpStroke})
}

func (r *Recorder) ClearRect(x, y, width, height float64) {
	r.Ops = append(r.Ops, Op{Kind: OpClearRect, X: x, Y: y, W: width, H: height})
}

// Reset drops all recorded calls.
func (r *Recorder) Reset() {
	r.Ops = r.Ops[:0]
}

// Count reports how many calls of kind were recorded.
func (r *Recorder) Count(kind OpKind) int {
	n := 0
	for _, op := range r.Ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}

// Segments derives the line segments the recorded path draws. A LineTo
// without a current point only sets the point, as on a canvas.
func (r *Recorder) Segments() []Segment {
	var (
		segments   []Segment
		x, y       float64
		hasCurrent bool
	)
	for _, op := range r.Ops {
		switch op.Kind {
		case OpBeginPath:
			hasCurrent = false
		case OpMoveTo:
			x, y, hasCurrent = op.X, op.Y, true
		case OpLineTo:
			if hasCurrent {
				segments = append(segments, Segment{X1: x, Y1: y, X2: op.X, Y2: op.Y})
			}
			x, y, hasCurrent = op.X, op.Y, true
		}
	}
	return segments
}

// Replay issues the recorded calls onto target in order.
func (r *Recorder) Replay(target Target) {
	for _, op := range r.Ops {
		switch op.Kind {
		case OpBeginPath:
			target.BeginPath()
		case OpMoveTo:
			target.MoveTo(op.X, op.Y)
		case OpLineTo:
			target.LineTo(op.X, op.Y)
		case OpStroke:
			target.Stroke()
		case OpClearRect:
			target.ClearRect(op.X, op.Y, op.W, op.H)
		}
	}
}
