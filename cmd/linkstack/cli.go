package main

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/askiada/go-linkstack/pkg/pipeline/config"
	"github.com/askiada/go-linkstack/pkg/pipeline/model"
)

// ExitError carries the process exit code of a failure.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string {
	return e.Message
}

func usageError(format string, args ...any) *ExitError {
	return &ExitError{Code: 2, Message: fmt.Sprintf(format, args...)}
}

type options struct {
	configPath string
	input      string
	output     string
	graph      string
	logLevel   string
	logFormat  string
	printPlan  bool
	strict     bool
	stages     []model.StageConfig
}

// valueFlags take a separate value; boolFlags never do. Any other flag names a
// stage.
var (
	valueFlags = map[string]bool{
		"config": true, "input": true, "output": true, "graph": true,
		"log-level": true, "log-format": true,
	}
	boolFlags = map[string]bool{"print-plan": true, "strict": true, "h": true, "help": true}
)

// splitArgs separates the fixed flags from stage flags. A stage flag takes the
// following token as its argument unless that token is a flag itself.
func splitArgs(args []string) ([]string, []model.StageConfig, error) {
	var fixed []string
	var entries []model.StageConfig
	for idx := 0; idx < len(args); idx++ {
		arg := args[idx]
		if !strings.HasPrefix(arg, "-") || arg == "-" || arg == "--" {
			return nil, nil, usageError("unexpected argument %q", arg)
		}

		name, _, hasValue := strings.Cut(strings.TrimLeft(arg, "-"), "=")
		switch {
		case valueFlags[name]:
			fixed = append(fixed, arg)
			if !hasValue && idx+1 < len(args) {
				idx++
				fixed = append(fixed, args[idx])
			}
		case boolFlags[name]:
			fixed = append(fixed, arg)
		default:
			argument := ""
			if idx+1 < len(args) && !strings.HasPrefix(args[idx+1], "-") {
				idx++
				argument = args[idx]
			}
			entry, err := config.ParseStageFlag(arg, argument)
			if err != nil {
				return nil, nil, usageError("%v", err)
			}
			entries = append(entries, entry)
		}
	}

	return fixed, entries, nil
}

// parse returns the command line options, or true when the program should exit
// without doing anything else.
func parse(args []string, output io.Writer) (*options, bool, error) {
	fixed, entries, err := splitArgs(args)
	if err != nil {
		return nil, false, err
	}

	flagSet := flag.NewFlagSet("linkstack", flag.ContinueOnError)
	flagSet.SetOutput(output)
	flagSet.Usage = func() {
		fmt.Fprint(output, `
linkstack - Applies an ordered stack of stages to a tree of resources.

Usage:
  linkstack [options] [--<stage>[:<index>|:FIRST|:LAST] [arguments]]...

Stages:
  exclude-resources, normalize-line-endings, sort-resources, zip
  Arguments are a comma separated list, e.g. --exclude-resources "*.jcov, */META-INF/*".

Options:
`)
		flagSet.PrintDefaults()
	}

	opts := &options{stages: entries}
	flagSet.StringVar(&opts.configPath, "config", "", "Path to a YAML configuration file.")
	flagSet.StringVar(&opts.input, "input", "", "Directory the resources are read from.")
	flagSet.StringVar(&opts.output, "output", "", "Directory the resulting resources are written to.")
	flagSet.StringVar(&opts.graph, "graph", "", "Write a DOT graph of the executed stages to this file.")
	flagSet.StringVar(&opts.logLevel, "log-level", "", "Logging level: 'debug', 'info', 'warn' or 'error'.")
	flagSet.StringVar(&opts.logFormat, "log-format", "", "Log output format: 'text' or 'json'.")
	flagSet.BoolVar(&opts.printPlan, "print-plan", false, "Print the resolved stage order and exit.")
	flagSet.BoolVar(&opts.strict, "strict", false, "Reject stage indices outside their category range.")

	err = flagSet.Parse(fixed)
	if err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}

		return nil, false, usageError("%v", err)
	}

	return opts, false, nil
}

// merge applies the command line on top of the loaded configuration. Stage flags
// come after the configured stages.
func (o *options) merge(cfg *config.Config) ([]model.StageConfig, error) {
	overrides := []struct {
		dst *string
		src string
	}{
		{&cfg.Input, o.input},
		{&cfg.Output, o.output},
		{&cfg.Graph, o.graph},
		{&cfg.Log.Level, o.logLevel},
		{&cfg.Log.Format, o.logFormat},
	}
	for _, ov := range overrides {
		if ov.src != "" {
			*ov.dst = ov.src
		}
	}
	cfg.Strict = cfg.Strict || o.strict

	switch strings.ToLower(cfg.Log.Format) {
	case "text", "json":
	default:
		return nil, usageError("invalid log-format %q: must be 'text' or 'json'", cfg.Log.Format)
	}
	switch strings.ToLower(cfg.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return nil, usageError("invalid log-level %q: must be 'debug', 'info', 'warn' or 'error'", cfg.Log.Level)
	}

	entries, err := cfg.Entries()
	if err != nil {
		return nil, usageError("%v", err)
	}

	return append(entries, o.stages...), nil
}
