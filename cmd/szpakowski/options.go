package main

import (
	"errors"
	"fmt"
	"os"

	"git.sr.ht/~sircmpwn/getopt"

	"github.com/shautvast/szpakowski-lang/pkg/driver"
)

type cliOptions struct {
	config string
	output string
	addr   string
	source driver.SourceSpec
	args   []string
}

// parseOptions runs getopt over args for the command called name.
func parseOptions(name string, args []string, optstring string) (*cliOptions, error) {
	opts, optind, err := getopt.Getopts(append([]string{name}, args...), optstring)
	if err != nil {
		return nil, err
	}
	parsed := &cliOptions{args: args[optind-1:]}
	for _, opt := range opts {
		switch opt.Option {
		case 'c':
			parsed.config = opt.Value
		case 'o':
			parsed.output = opt.Value
		case 'a':
			parsed.addr = opt.Value
		case 'g':
			parsed.source.Git = opt.Value
		case 'r':
			parsed.source.Rev = opt.Value
		case 't':
			parsed.source.Tag = opt.Value
		case 'b':
			parsed.source.Branch = opt.Value
		}
	}
	return parsed, nil
}

// loadConfig uses the explicit config, else the nearest one above the
// working directory, else the defaults.
func loadConfig(explicit string) (*driver.Config, error) {
	if explicit != "" {
		return driver.LoadConfig(explicit)
	}
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}
	path, err := driver.FindConfig(wd)
	if err != nil {
		if errors.Is(err, driver.ErrConfigNotFound) {
			return driver.DefaultConfig(), nil
		}
		return nil, err
	}
	return driver.LoadConfig(path)
}
