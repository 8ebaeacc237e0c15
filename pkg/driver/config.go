package driver

import (
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/shautvast/szpakowski-lang/pkg/interpreter"
	"github.com/shautvast/szpakowski-lang/pkg/surface"
)

// ConfigFileName is the file FindConfig looks for.
const ConfigFileName = "szpakowski.yml"

// MaxExtent bounds width and height; a canvas is allocated up front.
const MaxExtent = 8192

// ErrConfigNotFound is returned by FindConfig when no directory up to the
// filesystem root holds a config file.
var ErrConfigNotFound = errors.New("config: no " + ConfigFileName + " found")

// Format selects the output encoding.
type Format string

const (
	FormatPNG Format = "png"
	FormatSVG Format = "svg"
)

// IsValid reports whether the format is recognised.
func (f Format) IsValid() bool {
	switch f {
	case FormatPNG, FormatSVG:
		return true
	default:
		return false
	}
}

// Config is a validated run configuration.
type Config struct {
	Path                  string
	Width                 int
	Height                int
	Unit                  float64
	X                     float64
	Y                     float64
	Angle                 float64
	Seed                  uint64
	Scoping               interpreter.Scoping
	MovingPillarsNegateOn string
	StepLimit             int
	Output                OutputSpec
}

// OutputSpec describes where and how a drawing is written.
type OutputSpec struct {
	Path   string
	Format Format
	Style  surface.Style
}

// ValidationError aggregates config validation failures.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "config: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("config validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

// DefaultConfig mirrors the browser host: unit 10, black 2px lines.
func DefaultConfig() *Config {
	return &Config{
		Width:                 800,
		Height:                600,
		Unit:                  10,
		Scoping:               interpreter.ScopeFrame,
		MovingPillarsNegateOn: interpreter.DirUp,
		Output:                OutputSpec{Style: surface.DefaultStyle()},
	}
}

type configFile struct {
	Width                 *int        `yaml:"width"`
	Height                *int        `yaml:"height"`
	Unit                  *float64    `yaml:"unit"`
	X                     *float64    `yaml:"x"`
	Y                     *float64    `yaml:"y"`
	Angle                 *float64    `yaml:"angle"`
	Seed                  *uint64     `yaml:"seed"`
	Scoping               string      `yaml:"scoping"`
	MovingPillarsNegateOn string      `yaml:"moving_pillars_negate_on"`
	StepLimit             *int        `yaml:"step_limit"`
	Output                *outputFile `yaml:"output"`
}

type outputFile struct {
	Path       string   `yaml:"path"`
	Format     string   `yaml:"format"`
	LineWidth  *float64 `yaml:"line_width"`
	Color      string   `yaml:"color"`
	Background string   `yaml:"background"`
}

// LoadConfig parses a config file from disk over DefaultConfig and
// validates the result.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config: empty path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("config: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("config: open %s: %w", absPath, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)

	var raw configFile
	if err := decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("config: %s is empty", absPath)
		}
		return nil, fmt.Errorf("config: parse %s: %w", absPath, err)
	}

	cfg, err := raw.toConfig(absPath)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

func (raw configFile) toConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.Path = path
	var errs ValidationError

	if raw.Width != nil {
		cfg.Width = *raw.Width
	}
	if raw.Height != nil {
		cfg.Height = *raw.Height
	}
	if raw.Unit != nil {
		cfg.Unit = *raw.Unit
	}
	if raw.X != nil {
		cfg.X = *raw.X
	}
	if raw.Y != nil {
		cfg.Y = *raw.Y
	}
	if raw.Angle != nil {
		cfg.Angle = *raw.Angle
	}
	if raw.Seed != nil {
		cfg.Seed = *raw.Seed
	}
	if raw.StepLimit != nil {
		cfg.StepLimit = *raw.StepLimit
	}
	if raw.Scoping != "" {
		scoping, err := ParseScoping(raw.Scoping)
		if err != nil {
			errs.Issues = append(errs.Issues, err.Error())
		}
		cfg.Scoping = scoping
	}
	if raw.MovingPillarsNegateOn != "" {
		cfg.MovingPillarsNegateOn = strings.ToUpper(strings.TrimSpace(raw.MovingPillarsNegateOn))
	}
	if out := raw.Output; out != nil {
		cfg.Output.Path = out.Path
		cfg.Output.Format = Format(strings.ToLower(strings.TrimSpace(out.Format)))
		if out.LineWidth != nil {
			cfg.Output.Style.LineWidth = *out.LineWidth
		}
		if out.Color != "" {
			cfg.Output.Style.Color = out.Color
		}
		if out.Background != "" {
			cfg.Output.Style.Background = out.Background
		}
	}

	errs.Issues = append(errs.Issues, cfg.issues()...)
	if len(errs.Issues) > 0 {
		return nil, &errs
	}
	return cfg, nil
}

// Validate checks a config built in code, such as one with flag overrides.
func (c *Config) Validate() error {
	if issues := c.issues(); len(issues) > 0 {
		return &ValidationError{Issues: issues}
	}
	return nil
}

func (c *Config) issues() []string {
	var issues []string
	for _, dim := range []struct {
		name  string
		value int
	}{{"width", c.Width}, {"height", c.Height}} {
		switch {
		case dim.value <= 0:
			issues = append(issues, fmt.Sprintf("%s must be positive, got %d", dim.name, dim.value))
		case dim.value > MaxExtent:
			issues = append(issues, fmt.Sprintf("%s must be at most %d, got %d", dim.name, MaxExtent, dim.value))
		}
	}
	if c.Unit <= 0 {
		issues = append(issues, fmt.Sprintf("unit must be positive, got %g", c.Unit))
	}
	if c.StepLimit < 0 {
		issues = append(issues, fmt.Sprintf("step_limit must not be negative, got %d", c.StepLimit))
	}
	switch c.MovingPillarsNegateOn {
	case interpreter.DirUp, interpreter.DirDown:
	default:
		issues = append(issues, fmt.Sprintf("moving_pillars_negate_on must be UP or DOWN, got %q", c.MovingPillarsNegateOn))
	}
	if c.Output.Format != "" && !c.Output.Format.IsValid() {
		issues = append(issues, fmt.Sprintf("output.format %q is not supported (png, svg)", c.Output.Format))
	}
	if c.Output.Style.LineWidth < 0 {
		issues = append(issues, fmt.Sprintf("output.line_width must not be negative, got %g", c.Output.Style.LineWidth))
	}
	if c.Output.Style.Color != "" {
		if _, err := surface.ParseHexColor(c.Output.Style.Color); err != nil {
			issues = append(issues, "output.color: "+err.Error())
		}
	}
	if c.Output.Style.Background != "" {
		if _, err := surface.ParseHexColor(c.Output.Style.Background); err != nil {
			issues = append(issues, "output.background: "+err.Error())
		}
	}
	return issues
}

// ParseScoping maps "frame" and "lexical" to the interpreter policy.
func ParseScoping(name string) (interpreter.Scoping, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "frame":
		return interpreter.ScopeFrame, nil
	case "lexical":
		return interpreter.ScopeLexical, nil
	default:
		return interpreter.ScopeFrame, fmt.Errorf("scoping must be frame or lexical, got %q", name)
	}
}

// FindConfig walks from dir up to the filesystem root and returns the first
// config file it finds.
func FindConfig(dir string) (string, error) {
	current, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("config: resolve %s: %w", dir, err)
	}
	for {
		candidate := filepath.Join(current, ConfigFileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
		parent := filepath.Dir(current)
		if parent == current {
			return "", ErrConfigNotFound
		}
		current = parent
	}
}

// ResolveFormat returns the configured format, else the one implied by the
// output path extension, else png.
func (o OutputSpec) ResolveFormat() Format {
	if o.Format != "" {
		return o.Format
	}
	switch strings.ToLower(filepath.Ext(o.Path)) {
	case ".svg":
		return FormatSVG
	default:
		return FormatPNG
	}
}

// Context builds the interpreter context for one run onto surf.
func (c *Config) Context(surf interpreter.Surface, print io.Writer) interpreter.Context {
	ctx := interpreter.Context{
		Surface:               surf,
		X:                     c.X,
		Y:                     c.Y,
		Angle:                 c.Angle,
		Unit:                  c.Unit,
		Width:                 float64(c.Width),
		Height:                float64(c.Height),
		Print:                 print,
		Scoping:               c.Scoping,
		MovingPillarsNegateOn: c.MovingPillarsNegateOn,
		StepLimit:             c.StepLimit,
	}
	if c.Seed != 0 {
		ctx.Random = rand.New(rand.NewPCG(c.Seed, c.Seed))
	}
	return ctx
}
