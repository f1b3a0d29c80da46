package cli

import (
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/AndreyAkinshin/cargo2junit/internal/errors"
	"github.com/AndreyAkinshin/cargo2junit/internal/output"
	"github.com/AndreyAkinshin/cargo2junit/internal/testparser"
)

var title = cases.Title(language.English)

// cmdSummary parses cargo test output and prints a summary.
func cmdSummary(args []string) int {
	opts, err := parseFlags(args)
	if err != nil {
		return fail(errors.Config(err.Error()))
	}
	if opts.Help {
		printSummaryUsage(out)
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

	counts := testparser.Summarize(modules)
	printTestSummary(out, &counts)

	// Return non-zero if there were failures
	if counts.Failed > 0 {
		return errors.ExitRuntimeError
	}
	return errors.ExitSuccess
}

// printTestSummary prints a formatted test summary.
func printTestSummary(w *output.Writer, counts *testparser.TestCounts) {
	w.SummaryHeader("Test Summary")

	w.SummaryPassed(title.String(testparser.Passed.String()), fmt.Sprintf("%d", counts.Passed))
	if counts.Failed > 0 {
		w.SummaryFailed(title.String(testparser.Failed.String()), fmt.Sprintf("%d", counts.Failed))
	}
	if counts.Ignored > 0 {
		w.SummaryItem(title.String(testparser.Ignored.String()), fmt.Sprintf("%d", counts.Ignored))
	}
	if counts.Measured > 0 {
		w.SummaryItem("Measured", fmt.Sprintf("%d", counts.Measured))
	}
	if counts.Filtered > 0 {
		w.SummaryItem("Filtered out", fmt.Sprintf("%d", counts.Filtered))
	}
	w.SummaryItem("Total", fmt.Sprintf("%d in %d %s", counts.Total, counts.Modules, plural(counts.Modules, "module")))
	if counts.Duration > 0 {
		w.SummaryItem("Duration", counts.Duration.String())
	}

	if len(counts.FailedTests) > 0 {
		w.Println("")
		w.SummarySectionLabel(title.String(testparser.Failed.String()) + " Tests:")
		for _, ft := range counts.FailedTests {
			w.SummaryFailed("  "+ft.Name, ft.Reason)
		}
	}

	if counts.Failed == 0 {
		w.FinalSuccess("All %d tests passed.", counts.Total)
	} else {
		w.FinalFailure("%d of %d tests failed.", counts.Failed, counts.Total)
	}
}

func plural(n int, noun string) string {
	if n == 1 {
		return noun
	}
	return noun + "s"
}

func printSummaryUsage(w *output.Writer) {
	w.HelpTitle("cargo2junit summary - summarize cargo test output")
	w.HelpSection("Usage:")
	w.HelpUsage("cargo test | cargo2junit summary")
	w.HelpUsage("cargo2junit summary [options] <file>")
	w.HelpSection("Description:")
	w.Println("  Parses cargo test output and prints the number of passed, failed and")
	w.Println("  ignored tests, listing each failed test with the first line of its")
	w.Println("  failure message. Exits with 1 when any test failed.")
	printFlags(w)
	w.HelpSection("Examples:")
	w.HelpExample("cargo test 2>&1 | cargo2junit summary", "Parse from stdin")
	w.HelpExample("cargo2junit summary test.log", "Parse from file")
	w.Println("")
}
