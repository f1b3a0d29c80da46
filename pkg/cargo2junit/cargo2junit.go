// Package cargo2junit converts the human-readable output of `cargo test`
// into a JUnit XML report.
//
// Example:
//
//	report, err := cargo2junit.Convert(output)
//	if err != nil {
//	    var perr *cargo2junit.ParseError
//	    if errors.As(err, &perr) {
//	        log.Fatalf("line %d: %v", perr.Line, err)
//	    }
//	}
package cargo2junit

import (
	"bytes"
	"io"

	"github.com/AndreyAkinshin/cargo2junit/internal/junit"
	"github.com/AndreyAkinshin/cargo2junit/internal/testparser"
)

// ParseError describes where the input stopped matching cargo's output
// format and what was expected there.
type ParseError = testparser.ParseError

// Convert parses the complete output of `cargo test` and returns the JUnit
// XML document, declaration included. On failure the error is a
// *ParseError and no document is produced.
func Convert(input string) (string, error) {
	modules, err := testparser.Parse(input)
	if err != nil {
		return "", err
	}
	return junit.Serialize(junit.Build(modules)), nil
}

// ConvertReader reads r to the end, converts it and writes the document to
// w. Nothing is written to w unless the whole input parses.
func ConvertReader(r io.Reader, w io.Writer) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	modules, err := testparser.Parse(string(data))
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := junit.Write(&buf, junit.Build(modules)); err != nil {
		return err
	}
	_, err = buf.WriteTo(w)
	return err
}
