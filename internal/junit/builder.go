package junit

import (
	"strconv"

	"github.com/AndreyAkinshin/cargo2junit/internal/testparser"
)

// Element and attribute names of the generated report.
const (
	tagTestSuites = "testsuites"
	tagTestSuite  = "testsuite"
	tagTestCase   = "testcase"
	tagSkipped    = "skipped"
	tagFailure    = "failure"
	tagSystemOut  = "system-out"
)

// Build converts parsed modules into a report tree: one testsuite per module
// and one testcase per test line, in input order.
//
// A failed test gets a failure element for every failure record with the
// same name, so duplicate records all appear and records without a matching
// test are dropped. Count mismatches are rendered as given.
func Build(modules []testparser.TestModule) *Element {
	root := NewElement(tagTestSuites)

	for _, m := range modules {
		suite := root.AddElement(tagTestSuite,
			Attr{"failures", strconv.Itoa(m.Failed)},
			Attr{"skip", strconv.Itoa(m.Ignored)},
			Attr{"tests", strconv.Itoa(len(m.Tests))},
		)

		for _, tc := range m.Tests {
			testcase := suite.AddElement(tagTestCase, Attr{"name", tc.Name})

			switch tc.Outcome {
			case testparser.Ignored:
				testcase.AddElement(tagSkipped)
			case testparser.Failed:
				for _, f := range m.Failures {
					if f.Name != tc.Name {
						continue
					}
					testcase.AddElement(tagFailure).AddCData(f.Info)
					if f.Stdout != "" {
						testcase.AddElement(tagSystemOut).AddText(f.Stdout)
					}
				}
			}
		}
	}

	return root
}
