package driver

import (
	"fmt"
	"io"
	"os"

	"github.com/shautvast/szpakowski-lang/pkg/interpreter"
	"github.com/shautvast/szpakowski-lang/pkg/surface"
)

// Canvas is a drawing surface that can encode itself.
type Canvas interface {
	interpreter.Surface
	Encode(w io.Writer) error
}

type pngCanvas struct {
	*surface.PNG
}

func (c pngCanvas) Encode(w io.Writer) error {
	return c.EncodePNG(w)
}

// NewCanvas builds an empty canvas for format.
func NewCanvas(format Format, width, height int, style surface.Style) (Canvas, error) {
	switch format {
	case FormatPNG, "":
		p, err := surface.NewPNG(width, height, style)
		if err != nil {
			return nil, err
		}
		return pngCanvas{p}, nil
	case FormatSVG:
		s, err := surface.NewSVG(width, height, style)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("render: unsupported format %q", format)
	}
}

// Render clears a fresh canvas and runs the program onto it, as the
// browser host does on every edit. On a program error the partial canvas
// is returned alongside the error.
func Render(cfg *Config, src *Source, print io.Writer) (Canvas, error) {
	canvas, err := NewCanvas(cfg.Output.ResolveFormat(), cfg.Width, cfg.Height, cfg.Output.Style)
	if err != nil {
		return nil, err
	}
	canvas.ClearRect(0, 0, float64(cfg.Width), float64(cfg.Height))
	if err := interpreter.Interpret(cfg.Context(canvas, print), src.Text); err != nil {
		return canvas, err
	}
	return canvas, nil
}

// WriteCanvas encodes canvas to path.
func WriteCanvas(canvas Canvas, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("render: create %s: %w", path, err)
	}
	if err := canvas.Encode(f); err != nil {
		f.Close()
		return fmt.Errorf("render: encode %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("render: close %s: %w", path, err)
	}
	return nil
}
