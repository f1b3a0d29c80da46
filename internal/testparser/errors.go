package testparser

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// maxFoundLen limits how many runes of the offending input are quoted in errors.
const maxFoundLen = 40

// ParseError reports the furthest position the grammar reached before the
// input stopped matching.
type ParseError struct {
	Offset   int      // byte offset into the input
	Line     int      // 1-based
	Column   int      // 1-based, in runes
	Expected []string // alternatives that were tried at Offset
	Found    string   // input at Offset up to the end of its line
	AtEOF    bool
}

func (e *ParseError) Error() string {
	var found string
	switch {
	case e.AtEOF:
		found = "end of input"
	case e.Found == "":
		found = "line ending"
	default:
		found = fmt.Sprintf("%q", e.Found)
	}
	return fmt.Sprintf("line %d, column %d: expected %s, found %s",
		e.Line, e.Column, strings.Join(e.Expected, " or "), found)
}

func newParseError(input string, offset int, expected []string) *ParseError {
	lineStart := strings.LastIndexByte(input[:offset], '\n') + 1
	e := &ParseError{
		Offset:   offset,
		Line:     strings.Count(input[:offset], "\n") + 1,
		Column:   utf8.RuneCountInString(input[lineStart:offset]) + 1,
		Expected: expected,
		AtEOF:    offset >= len(input),
	}
	if e.AtEOF {
		return e
	}

	rest := input[offset:]
	if i := strings.IndexAny(rest, "\r\n"); i >= 0 {
		rest = rest[:i]
	}
	if utf8.RuneCountInString(rest) > maxFoundLen {
		rest = string([]rune(rest)[:maxFoundLen]) + "..."
	}
	e.Found = rest
	return e
}
