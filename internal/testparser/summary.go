package testparser

import "strings"

// Summarize aggregates the summary-line counts of all modules and collects
// every failed test with the first line of its failure info as the reason.
func Summarize(modules []TestModule) TestCounts {
	var total TestCounts
	for i := range modules {
		counts := summarizeModule(&modules[i])
		total.Add(&counts)
	}
	return total
}

func summarizeModule(m *TestModule) TestCounts {
	counts := TestCounts{
		Modules:  1,
		Passed:   m.Passed,
		Failed:   m.Failed,
		Ignored:  m.Ignored,
		Measured: m.Measured,
		Filtered: m.Filtered,
		Total:    m.Passed + m.Failed + m.Ignored,
		Duration: m.Duration,
	}

	for _, tc := range m.Tests {
		if tc.Outcome != Failed {
			continue
		}
		ft := FailedTest{Name: tc.Name}
		for _, f := range m.Failures {
			if f.Name == tc.Name {
				ft.Reason = firstLine(f.Info)
				break
			}
		}
		counts.FailedTests = append(counts.FailedTests, ft)
	}
	return counts
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSuffix(s, "\r")
}
