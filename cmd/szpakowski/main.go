package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

const cliToolVersion = "szpakowski 0.1.0-dev"

var errorColor = color.New(color.FgRed)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		printUsage()
		return 1
	}

	switch args[0] {
	case "--help", "-h", "help":
		printUsage()
		return 0
	case "--version", "-V", "version":
		fmt.Fprintln(os.Stdout, cliToolVersion)
		return 0
	case "run":
		return runDraw(args[1:])
	case "check":
		return runCheck(args[1:])
	case "parse":
		return runParse(args[1:])
	case "repl":
		return runRepl(args[1:])
	case "serve":
		return runServe(args[1:])
	default:
		return runDraw(args)
	}
}

func reportError(format string, args ...any) {
	errorColor.Fprintf(os.Stderr, format+"\n", args...)
}
