package cli

import (
	"bytes"
	"io"
	"os"

	"github.com/AndreyAkinshin/cargo2junit/internal/config"
	"github.com/AndreyAkinshin/cargo2junit/internal/errors"
	"github.com/AndreyAkinshin/cargo2junit/internal/junit"
	"github.com/AndreyAkinshin/cargo2junit/internal/testparser"
)

// cmdConvert reads cargo test output and writes a JUnit XML report.
func cmdConvert(args []string) int {
	opts, err := parseFlags(args)
	if err != nil {
		return fail(errors.Config(err.Error()))
	}
	if opts.Help {
		printUsage(out)
		return errors.ExitSuccess
	}

	cfg, err := resolveConfig(opts)
	if err != nil {
		return fail(err)
	}

	modules, err := parseInput(cfg.Input)
	if err != nil {
		return fail(err)
	}

	var doc bytes.Buffer
	if err := junit.Write(&doc, junit.Build(modules)); err != nil {
		return fail(errors.Wrap(err, "rendering report"))
	}
	if err := writeOutput(cfg.Output, doc.Bytes()); err != nil {
		return fail(err)
	}
	if cfg.Output != config.Stdio {
		diag.Info("wrote %s", cfg.Output)
	}

	counts := testparser.Summarize(modules)
	if cfg.Summary {
		printTestSummary(diag, &counts)
	}
	if cfg.FailOnTestFailure && counts.Failed > 0 {
		return fail(errors.Newf("%d of %d tests failed", counts.Failed, counts.Total))
	}
	return errors.ExitSuccess
}

// parseInput reads the whole input named by path and parses it.
func parseInput(path string) ([]testparser.TestModule, error) {
	data, err := readInput(path)
	if err != nil {
		return nil, err
	}

	modules, err := testparser.Parse(string(data))
	if err != nil {
		return nil, errors.Parse(inputName(path), err)
	}
	diag.Debug("parsed %d test modules from %s", len(modules), inputName(path))
	return modules, nil
}

func readInput(path string) ([]byte, error) {
	if path == config.Stdio {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, errors.IO(inputName(path), err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.IO(path, err)
	}
	return data, nil
}

// writeOutput writes a fully rendered document, so a failed parse never
// leaves a partial report behind.
func writeOutput(path string, data []byte) error {
	if path == config.Stdio {
		if _, err := stdout.Write(data); err != nil {
			return errors.IO("<stdout>", err)
		}
		return nil
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.IO(path, err)
	}
	return nil
}

func inputName(path string) string {
	if path == config.Stdio {
		return "<stdin>"
	}
	return path
}
