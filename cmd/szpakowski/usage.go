package main

import (
	"fmt"
	"os"
)

func printUsage() {
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  szpakowski run [-c config] [-o out.png|out.svg] <file.szp>")
	fmt.Fprintln(os.Stderr, "  szpakowski run [-c config] [-o out] -g <repo> [-r rev | -t tag | -b branch] <path>")
	fmt.Fprintln(os.Stderr, "  szpakowski <file.szp>")
	fmt.Fprintln(os.Stderr, "  szpakowski check <file.szp>")
	fmt.Fprintln(os.Stderr, "  szpakowski parse <file.szp>")
	fmt.Fprintln(os.Stderr, "  szpakowski repl [-c config]")
	fmt.Fprintln(os.Stderr, "  szpakowski serve [-c config] [-a addr]")
	fmt.Fprintln(os.Stderr, "  szpakowski version")
}
