package surface

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Style configures the PNG and SVG surfaces.
type Style struct {
	LineWidth  float64
	Color      string
	Background string
}

// DefaultStyle matches the browser host: 2px black lines on white.
func DefaultStyle() Style {
	return Style{LineWidth: 2, Color: "#000000", Background: "#ffffff"}
}

func (s Style) withDefaults() Style {
	def := DefaultStyle()
	if s.LineWidth <= 0 {
		s.LineWidth = def.LineWidth
	}
	if s.Color == "" {
		s.Color = def.Color
	}
	if s.Background == "" {
		s.Background = def.Background
	}
	return s
}

// Validate checks that both colors parse.
func (s Style) Validate() error {
	if _, err := ParseHexColor(s.Color); s.Color != "" && err != nil {
		return fmt.Errorf("color: %w", err)
	}
	if _, err := ParseHexColor(s.Background); s.Background != "" && err != nil {
		return fmt.Errorf("background: %w", err)
	}
	return nil
}

// ParseHexColor accepts #rgb, #rrggbb and #rrggbbaa.
func ParseHexColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	return color.RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}
