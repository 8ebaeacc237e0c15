package surface

import (
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/fogleman/gg"
)

// PNG is a raster surface backed by a gg context. Stroke keeps the current
// path, so repeated strokes redraw it as a canvas does.
type PNG struct {
	dc         *gg.Context
	foreground color.RGBA
	background color.RGBA
	path       []Op
}

// NewPNG returns a width×height surface filled with the style background.
func NewPNG(width, height int, style Style) (*PNG, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("surface: invalid png extents %dx%d", width, height)
	}
	style = style.withDefaults()
	fg, err := ParseHexColor(style.Color)
	if err != nil {
		return nil, fmt.Errorf("surface: %w", err)
	}
	bg, err := ParseHexColor(style.Background)
	if err != nil {
		return nil, fmt.Errorf("surface: %w", err)
	}
	dc := gg.NewContext(width, height)
	dc.SetColor(bg)
	dc.Clear()
	dc.SetColor(fg)
	dc.SetLineWidth(style.LineWidth)
	dc.SetLineCapRound()
	dc.SetLineJoinRound()
	return &PNG{dc: dc, foreground: fg, background: bg}, nil
}

func (p *PNG) BeginPath() {
	p.dc.ClearPath()
	p.path = p.path[:0]
}

func (p *PNG) MoveTo(x, y float64) {
	p.dc.MoveTo(x, y)
	p.path = append(p.path, Op{Kind: OpMoveTo, X: x, Y: y})
}

func (p *PNG) LineTo(x, y float64) {
	p.dc.LineTo(x, y)
	p.path = append(p.path, Op{Kind: OpLineTo, X: x, Y: y})
}

func (p *PNG) Stroke() {
	p.dc.StrokePreserve()
}

// ClearRect paints the background over the rectangle. The current path
// survives, matching canvas clearRect.
func (p *PNG) ClearRect(x, y, width, height float64) {
	p.dc.ClearPath()
	p.dc.SetColor(p.background)
	p.dc.DrawRectangle(x, y, width, height)
	p.dc.Fill()
	p.dc.SetColor(p.foreground)
	for _, op := range p.path {
		if op.Kind == OpMoveTo {
			p.dc.MoveTo(op.X, op.Y)
		} else {
			p.dc.LineTo(op.X, op.Y)
		}
	}
}

// Image exposes the rendered raster.
func (p *PNG) Image() image.Image {
	return p.dc.Image()
}

func (p *PNG) EncodePNG(w io.Writer) error {
	return p.dc.EncodePNG(w)
}
