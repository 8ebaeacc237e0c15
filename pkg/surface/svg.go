package surface

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	svg "github.com/ajstarks/svgo"
)

type svgElement struct {
	path       string
	x, y, w, h int
}

// SVG is a vector surface. Each stroked path becomes one <path> element
// holding the path as it stood at its last Stroke.
type SVG struct {
	width, height int
	style         Style
	elements      []svgElement
	current       strings.Builder
	stroked       string
}

// NewSVG returns an empty width×height drawing.
func NewSVG(width, height int, style Style) (*SVG, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("surface: invalid svg extents %dx%d", width, height)
	}
	style = style.withDefaults()
	if err := style.Validate(); err != nil {
		return nil, fmt.Errorf("surface: %w", err)
	}
	return &SVG{width: width, height: height, style: style}, nil
}

func (s *SVG) BeginPath() {
	s.flush()
	s.current.Reset()
}

func (s *SVG) MoveTo(x, y float64) {
	s.command('M', x, y)
}

func (s *SVG) LineTo(x, y float64) {
	if s.current.Len() == 0 {
		s.command('M', x, y)
		return
	}
	s.command('L', x, y)
}

func (s *SVG) Stroke() {
	s.stroked = s.current.String()
}

// ClearRect drops everything drawn so far when it covers the whole
// drawing; otherwise it paints the background over the rectangle.
func (s *SVG) ClearRect(x, y, width, height float64) {
	s.flush()
	if x <= 0 && y <= 0 && x+width >= float64(s.width) && y+height >= float64(s.height) {
		s.elements = s.elements[:0]
		return
	}
	s.elements = append(s.elements, svgElement{
		x: int(math.Floor(x)),
		y: int(math.Floor(y)),
		w: int(math.Ceil(width)),
		h: int(math.Ceil(height)),
	})
}

// Paths returns the path data of every element that will be drawn.
func (s *SVG) Paths() []string {
	var out []string
	for _, el := range s.elements {
		if el.path != "" {
			out = append(out, el.path)
		}
	}
	if s.stroked != "" {
		out = append(out, s.stroked)
	}
	return out
}

// Encode writes the document to w.
func (s *SVG) Encode(w io.Writer) error {
	var buf bytes.Buffer
	canvas := svg.New(&buf)
	canvas.Start(s.width, s.height)
	background := "fill:" + s.style.Background
	canvas.Rect(0, 0, s.width, s.height, background)
	stroke := fmt.Sprintf("fill:none;stroke:%s;stroke-width:%s;stroke-linecap:round;stroke-linejoin:round",
		s.style.Color, formatCoord(s.style.LineWidth))
	for _, el := range s.elements {
		if el.path != "" {
			canvas.Path(el.path, stroke)
		} else {
			canvas.Rect(el.x, el.y, el.w, el.h, background)
		}
	}
	if s.stroked != "" {
		canvas.Path(s.stroked, stroke)
	}
	canvas.End()
	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("surface: write svg: %w", err)
	}
	return nil
}

func (s *SVG) flush() {
	if s.stroked != "" {
		s.elements = append(s.elements, svgElement{path: s.stroked})
		s.stroked = ""
	}
}

func (s *SVG) command(op byte, x, y float64) {
	if s.current.Len() > 0 {
		s.current.WriteByte(' ')
	}
	s.current.WriteByte(op)
	s.current.WriteString(formatCoord(x))
	s.current.WriteByte(' ')
	s.current.WriteString(formatCoord(y))
}

func formatCoord(v float64) string {
	v = math.Round(v*1000) / 1000
	if v == 0 {
		v = 0 // normalise -0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
