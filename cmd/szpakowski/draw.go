package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/shautvast/szpakowski-lang/pkg/driver"
	"github.com/shautvast/szpakowski-lang/pkg/parser"
)

func runDraw(args []string) int {
	opts, err := parseOptions("szpakowski run", args, "c:o:g:r:t:b:")
	if err != nil {
		reportError("szpakowski run: %v", err)
		return 1
	}
	if len(opts.args) != 1 {
		printUsage()
		return 1
	}
	cfg, err := loadConfig(opts.config)
	if err != nil {
		reportError("szpakowski run: %v", err)
		return 1
	}
	if opts.output != "" {
		cfg.Output.Path = opts.output
		cfg.Output.Format = ""
	}
	spec := opts.source
	spec.Path = opts.args[0]
	if cfg.Output.Path == "" {
		cfg.Output.Path = defaultOutputPath(spec, cfg.Output.ResolveFormat())
	}
	if err := cfg.Validate(); err != nil {
		reportError("szpakowski run: %v", err)
		return 1
	}

	src, err := driver.LoadSource(spec)
	if err != nil {
		reportError("szpakowski run: %v", err)
		return 1
	}
	canvas, err := driver.Render(cfg, src, os.Stdout)
	if err != nil {
		reportError("%s", driver.DescribeError(src.Name, err))
		if !driver.IsProgramError(err) || canvas == nil {
			return 1
		}
	}
	if werr := driver.WriteCanvas(canvas, cfg.Output.Path); werr != nil {
		reportError("szpakowski run: %v", werr)
		return 1
	}
	if err != nil {
		return 1
	}
	return 0
}

// defaultOutputPath places the drawing next to a local program, or in the
// working directory for one read from git.
func defaultOutputPath(spec driver.SourceSpec, format driver.Format) string {
	source := spec.Path
	if spec.Git != "" {
		source = path.Base(filepath.ToSlash(source))
	}
	return strings.TrimSuffix(source, filepath.Ext(source)) + "." + string(format)
}

func runCheck(args []string) int {
	if len(args) != 1 {
		printUsage()
		return 1
	}
	src, err := driver.LoadSource(driver.SourceSpec{Path: args[0]})
	if err != nil {
		reportError("szpakowski check: %v", err)
		return 1
	}
	if _, err := parser.ParseSource(src.Text); err != nil {
		reportError("%s", driver.DescribeError(src.Name, err))
		return 1
	}
	fmt.Fprintf(os.Stdout, "%s: ok\n", src.Name)
	return 0
}

func runParse(args []string) int {
	if len(args) != 1 {
		printUsage()
		return 1
	}
	src, err := driver.LoadSource(driver.SourceSpec{Path: args[0]})
	if err != nil {
		reportError("szpakowski parse: %v", err)
		return 1
	}
	program, err := parser.ParseSource(src.Text)
	if err != nil {
		reportError("%s", driver.DescribeError(src.Name, err))
		return 1
	}
	data, err := json.MarshalIndent(program, "", "  ")
	if err != nil {
		reportError("szpakowski parse: %v", err)
		return 1
	}
	fmt.Fprintln(os.Stdout, string(data))
	return 0
}
