package main

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/shautvast/szpakowski-lang/pkg/driver"
	"github.com/shautvast/szpakowski-lang/pkg/interpreter"
	"github.com/shautvast/szpakowski-lang/pkg/lexer"
	"github.com/shautvast/szpakowski-lang/pkg/parser"
	"github.com/shautvast/szpakowski-lang/pkg/runtime"
	"github.com/shautvast/szpakowski-lang/pkg/surface"
)

const (
	promptMain  = "szp> "
	promptCont  = "...> "
	historyFile = ".szpakowski_history"
)

// replSession keeps one evaluator alive across entries so variables and
// the turtle carry over. Everything drawn is recorded for :save.
type replSession struct {
	cfg      *driver.Config
	out      io.Writer
	recorder *surface.Recorder
	eval     *interpreter.Evaluator
}

func newReplSession(cfg *driver.Config, out io.Writer) *replSession {
	s := &replSession{cfg: cfg, out: out, recorder: surface.NewRecorder()}
	s.reset()
	return s
}

func (s *replSession) reset() {
	s.recorder.Reset()
	s.eval = interpreter.New(s.cfg.Context(s.recorder, s.out))
}

// needsMore reports whether src stopped mid-construct.
func needsMore(src string) bool {
	_, err := parser.ParseSource(src)
	var syntaxErr *parser.SyntaxError
	if errors.As(err, &syntaxErr) {
		return syntaxErr.Incomplete()
	}
	var lexErr *lexer.Error
	return errors.As(err, &lexErr) && lexErr.Kind == lexer.UnterminatedString
}

func (s *replSession) evaluate(code string) error {
	program, err := parser.ParseSource(code)
	if err != nil {
		return err
	}
	return s.eval.Execute(program)
}

// command handles a ':' line and reports whether the session should end.
func (s *replSession) command(line string) (exit bool, err error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}
	switch strings.ToLower(fields[0]) {
	case ":quit", ":exit":
		return true, nil
	case ":help":
		fmt.Fprintln(s.out, "Commands: :save <file.png|file.svg>, :vars, :where, :clear, :reset, :help, :quit")
		fmt.Fprintln(s.out, "Verbs and functions:")
		for _, sig := range interpreter.VerbHelp {
			fmt.Fprintln(s.out, "  "+sig)
		}
	case ":vars":
		globals := s.eval.Globals()
		values := globals.Snapshot()
		for _, name := range globals.Keys() {
			fmt.Fprintf(s.out, "%s = %s\n", name, interpreter.ValueToString(values[name]))
		}
	case ":where":
		turtle := s.eval.Turtle()
		x, y := turtle.Position()
		fmt.Fprintf(s.out, "x=%s y=%s heading=%s steps=%d\n",
			formatNumber(x), formatNumber(y), formatNumber(turtle.Heading*180/math.Pi), s.eval.Steps())
	case ":clear":
		s.recorder.Reset()
		fmt.Fprintln(s.out, "drawing cleared.")
	case ":reset":
		s.reset()
		fmt.Fprintln(s.out, "session reset.")
	case ":save":
		if len(fields) < 2 {
			return false, errors.New("usage: :save <file.png|file.svg>")
		}
		if err := s.save(fields[1]); err != nil {
			return false, err
		}
		fmt.Fprintf(s.out, "saved %s\n", fields[1])
	default:
		return false, fmt.Errorf("unknown command %s. Type :help for help.", fields[0])
	}
	return false, nil
}

func formatNumber(v float64) string {
	return interpreter.ValueToString(runtime.NumberValue{Val: v})
}

func (s *replSession) save(path string) error {
	format := driver.OutputSpec{Path: path}.ResolveFormat()
	canvas, err := driver.NewCanvas(format, s.cfg.Width, s.cfg.Height, s.cfg.Output.Style)
	if err != nil {
		return err
	}
	canvas.ClearRect(0, 0, float64(s.cfg.Width), float64(s.cfg.Height))
	s.recorder.Replay(canvas)
	return driver.WriteCanvas(canvas, path)
}

func runRepl(args []string) int {
	opts, err := parseOptions("szpakowski repl", args, "c:")
	if err != nil {
		reportError("szpakowski repl: %v", err)
		return 1
	}
	cfg, err := loadConfig(opts.config)
	if err != nil {
		reportError("szpakowski repl: %v", err)
		return 1
	}

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)
	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	fmt.Fprintln(os.Stdout, cliToolVersion+" (type :help for help)")
	session := newReplSession(cfg, os.Stdout)
	for {
		code, ok := readEntry(ln)
		if !ok {
			fmt.Fprintln(os.Stdout)
			break
		}
		if strings.TrimSpace(code) == "" {
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))
		if strings.HasPrefix(strings.TrimSpace(code), ":") {
			exit, err := session.command(code)
			if err != nil {
				reportError("%v", err)
			}
			if exit {
				break
			}
			continue
		}
		if err := session.evaluate(code); err != nil {
			reportError("%s", driver.DescribeError("repl", err))
		}
	}

	if f, err := os.Create(histPath); err == nil {
		_, _ = ln.WriteHistory(f)
		_ = f.Close()
	}
	return 0
}

// readEntry reads lines until the buffer parses or fails for a reason other
// than running out of input.
func readEntry(ln *liner.State) (string, bool) {
	var b strings.Builder
	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if err != nil {
			// Ctrl+C abandons the current entry.
			return "", true
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
		src := b.String()
		if strings.HasPrefix(strings.TrimSpace(src), ":") || !needsMore(src) {
			return src, true
		}
	}
}
