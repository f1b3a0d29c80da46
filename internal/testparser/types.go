// Package testparser parses the human-readable output of `cargo test` into
// structured test module records.
package testparser

import "time"

// Outcome is the result classification of a single test or a whole module.
type Outcome int

const (
	Passed Outcome = iota
	Ignored
	Failed
)

// ParseOutcome maps a libtest result token to an Outcome.
// "ok" and "ignored" are recognized; every other token, including "FAILED",
// is a failure.
func ParseOutcome(token string) Outcome {
	switch token {
	case "ok":
		return Passed
	case "ignored":
		return Ignored
	default:
		return Failed
	}
}

func (o Outcome) String() string {
	switch o {
	case Passed:
		return "passed"
	case Ignored:
		return "ignored"
	default:
		return "failed"
	}
}

// TestCase is one `test <name> ... <result>` line.
type TestCase struct {
	Name    string
	Outcome Outcome
}

// Failure is one record of a `failures:` block.
type Failure struct {
	Name       string
	Stdout     string // captured program output, empty if none
	Info       string // panic message, verbatim
	Stacktrace string // reserved, always empty
}

// TestModule is one test binary run, from its `running N tests` header
// through its `test result:` summary line.
//
// The counts are taken from the summary line as-is. They are not checked
// against Tests or Failures.
type TestModule struct {
	Result   Outcome
	Tests    []TestCase
	Failures []Failure
	Passed   int
	Failed   int
	Ignored  int
	Measured int
	Filtered int
	Duration time.Duration // zero when the summary has no "finished in" clause
}

// FailedTest holds information about a single failed test.
type FailedTest struct {
	Name   string
	Reason string // first line of the failure info
}

// TestCounts holds aggregated test result counts.
type TestCounts struct {
	Modules     int
	Passed      int
	Failed      int
	Ignored     int
	Measured    int
	Filtered    int
	Total       int
	Duration    time.Duration
	FailedTests []FailedTest
}

// Add adds another TestCounts to this one, aggregating the counts.
func (tc *TestCounts) Add(other *TestCounts) {
	if other == nil {
		return
	}
	tc.Modules += other.Modules
	tc.Passed += other.Passed
	tc.Failed += other.Failed
	tc.Ignored += other.Ignored
	tc.Measured += other.Measured
	tc.Filtered += other.Filtered
	tc.Total += other.Total
	tc.Duration += other.Duration
	tc.FailedTests = append(tc.FailedTests, other.FailedTests...)
}
