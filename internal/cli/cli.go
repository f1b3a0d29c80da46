// Package cli provides command-line interface functionality for cargo2junit.
package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/AndreyAkinshin/cargo2junit/internal/config"
	"github.com/AndreyAkinshin/cargo2junit/internal/errors"
	"github.com/AndreyAkinshin/cargo2junit/internal/output"
)

// Version is set at build time.
var Version = "dev"

var (
	// out carries help, version and summary text.
	out = output.New()
	// diag carries diagnostics while the report itself may occupy stdout.
	diag = output.NewStderr()

	stdin  io.Reader = os.Stdin
	stdout io.Writer = os.Stdout
)

// Help text alignment widths for consistent formatting.
const (
	helpFlagWidth    = 26
	helpCommandWidth = 30
	helpEnvVarWidth  = 18
)

// Run executes the CLI with the given arguments and returns an exit code.
func Run(args []string) int {
	if len(args) == 0 {
		return cmdConvert(nil)
	}

	switch args[0] {
	case "-h", "--help", "help":
		printUsage(out)
		return errors.ExitSuccess
	case "--version", "version":
		out.Println("cargo2junit %s", Version)
		return errors.ExitSuccess
	case "convert":
		return cmdConvert(args[1:])
	case "summary":
		return cmdSummary(args[1:])
	default:
		return cmdConvert(args)
	}
}

// Options holds parsed command flags. Boolean flags can only switch an
// option on; an empty string means the flag was not given.
type Options struct {
	Input             string
	Output            string
	Config            string
	Summary           bool
	FailOnTestFailure bool
	Quiet             bool
	Verbose           bool
	Help              bool
}

// parseFlags manually parses flags from arguments.
//
// Flags may appear before or after the input file, "-" names stdin, and
// everything after "--" is treated as a file name.
func parseFlags(args []string) (*Options, error) {
	opts := &Options{}
	var positional []string

	value := func(i int, name string) (string, error) {
		if i+1 >= len(args) {
			return "", fmt.Errorf("%s requires a value", name)
		}
		return args[i+1], nil
	}

	i := 0
	for i < len(args) {
		arg := args[i]

		switch {
		case arg == "-o" || arg == "--output":
			v, err := value(i, arg)
			if err != nil {
				return nil, err
			}
			opts.Output = v
			i += 2
		case strings.HasPrefix(arg, "--output="):
			opts.Output = strings.TrimPrefix(arg, "--output=")
			i++
		case arg == "-c" || arg == "--config":
			v, err := value(i, arg)
			if err != nil {
				return nil, err
			}
			opts.Config = v
			i += 2
		case strings.HasPrefix(arg, "--config="):
			opts.Config = strings.TrimPrefix(arg, "--config=")
			i++
		case arg == "--summary":
			opts.Summary = true
			i++
		case arg == "--fail-on-test-failure":
			opts.FailOnTestFailure = true
			i++
		case arg == "-q" || arg == "--quiet":
			opts.Quiet = true
			i++
		case arg == "-v" || arg == "--verbose":
			opts.Verbose = true
			i++
		case arg == "-h" || arg == "--help":
			opts.Help = true
			i++
		case arg == "--":
			positional = append(positional, args[i+1:]...)
			i = len(args)
		case arg != "-" && strings.HasPrefix(arg, "-"):
			return nil, fmt.Errorf("unknown flag %q\n  run 'cargo2junit --help' for usage", arg)
		default:
			positional = append(positional, arg)
			i++
		}
	}

	if len(positional) > 1 {
		return nil, fmt.Errorf("expected at most one input file, got %d: %s", len(positional), strings.Join(positional, " "))
	}
	if len(positional) == 1 {
		opts.Input = positional[0]
	}

	if err := validateOptions(opts); err != nil {
		return nil, err
	}
	return opts, nil
}

// validateOptions checks that options are valid.
func validateOptions(opts *Options) error {
	if opts.Quiet && opts.Verbose {
		return fmt.Errorf("--quiet and --verbose are mutually exclusive")
	}
	if strings.HasPrefix(opts.Output, "--") {
		return fmt.Errorf("--output requires a path, got flag %q", opts.Output)
	}
	return nil
}

// resolveConfig loads the configuration file, if any, and lets the
// command-line options override it.
func resolveConfig(opts *Options) (*config.Config, error) {
	cfg, path, warnings, err := config.LoadDefault(opts.Config)
	if err != nil {
		return nil, err
	}

	if opts.Input != "" {
		cfg.Input = opts.Input
	}
	if opts.Output != "" {
		cfg.Output = opts.Output
	}
	cfg.Summary = cfg.Summary || opts.Summary
	cfg.FailOnTestFailure = cfg.FailOnTestFailure || opts.FailOnTestFailure
	switch {
	case opts.Quiet:
		cfg.Quiet, cfg.Verbose = true, false
	case opts.Verbose:
		cfg.Quiet, cfg.Verbose = false, true
	}

	applyVerbosity(cfg)
	for _, w := range warnings {
		diag.Warning("%s: %s", path, w)
	}
	if path != "" {
		diag.Debug("using configuration from %s", path)
	}
	return cfg, nil
}

// applyVerbosity configures the output writers based on verbosity settings.
func applyVerbosity(cfg *config.Config) {
	for _, w := range []*output.Writer{out, diag} {
		w.SetQuiet(cfg.Quiet)
		w.SetVerbose(cfg.Verbose)
	}
}

// fail reports err on stderr and returns its exit code.
func fail(err error) int {
	diag.ErrorPrefix("%v", err)
	return errors.GetExitCode(err)
}

func printUsage(w *output.Writer) {
	w.HelpTitle("cargo2junit - convert cargo test output to JUnit XML")

	w.HelpSection("Usage:")
	w.HelpUsage("cargo2junit [convert] [options] [<file>|-]   Convert test output to JUnit XML")
	w.HelpUsage("cargo2junit summary [options] [<file>|-]     Print a summary of test results")

	w.HelpSection("Commands:")
	w.HelpFlag("convert", "Write a JUnit XML report (default)", helpCommandWidth)
	w.HelpFlag("summary", "Print passed, failed and ignored counts", helpCommandWidth)
	w.HelpFlag("version", "Show version information", helpCommandWidth)
	w.HelpFlag("help", "Show this help", helpCommandWidth)

	printFlags(w)

	w.HelpSection("Environment:")
	w.HelpEnvVar(config.EnvVar, "Path to the configuration file", helpEnvVarWidth)
	w.HelpEnvVar("NO_COLOR", "Disable colored output", helpEnvVarWidth)

	w.HelpSection("Examples:")
	w.HelpExample("cargo test | cargo2junit > junit.xml", "Convert from stdin")
	w.HelpExample("cargo2junit -o junit.xml --summary test.log", "Convert a saved log and print a summary")
	w.HelpExample("cargo2junit summary test.log", "Summarize without writing a report")
	w.Println("")
}

func printFlags(w *output.Writer) {
	w.HelpSection("Options:")
	w.HelpFlag("-o, --output <path>", "Write the report to a file (default: stdout)", helpFlagWidth)
	w.HelpFlag("-c, --config <path>", "Read options from a YAML file (default: "+config.DefaultFileName+")", helpFlagWidth)
	w.HelpFlag("--summary", "Also print a summary to stderr", helpFlagWidth)
	w.HelpFlag("--fail-on-test-failure", "Exit with 1 when any test failed", helpFlagWidth)
	w.HelpFlag("-q, --quiet", "Minimal output (errors only)", helpFlagWidth)
	w.HelpFlag("-v, --verbose", "Maximum detail", helpFlagWidth)
	w.HelpFlag("-h, --help", "Show this help", helpFlagWidth)
}
