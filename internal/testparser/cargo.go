package testparser

import (
	"strconv"
	"strings"
	"time"
)

// Parse parses the complete output of `cargo test` into its test modules.
//
// The whole input must match; there is no partial result. On failure the
// returned error is a *ParseError describing the furthest point reached.
// Cargo emits one module block per test binary:
//
//	running 2 tests
//	test tests::passes ... ok
//	test tests::fails ... FAILED
//
//	failures:
//
//	---- tests::fails stdout ----
//		captured output
//	thread 'tests::fails' panicked at 'assertion failed: false', src/lib.rs:9
//
//
//	failures:
//	    tests::fails
//
//	test result: FAILED. 1 passed; 1 failed; 0 ignored; 0 measured; 0 filtered out
func Parse(input string) ([]TestModule, error) {
	p := &parser{input: input}
	modules, ok := p.suite()
	if !ok {
		return nil, newParseError(input, p.furthest, p.expected)
	}
	return modules, nil
}

// parser is a backtracking recursive-descent parser over a byte cursor.
// Each rule returns false on mismatch; callers that try alternatives save
// and restore pos themselves. Every mismatch is recorded so the error can
// point at the furthest offset any rule reached.
type parser struct {
	input    string
	pos      int
	furthest int
	expected []string
}

func (p *parser) fail(at int, what string) bool {
	switch {
	case at > p.furthest:
		p.furthest = at
		p.expected = []string{what}
	case at == p.furthest:
		for _, e := range p.expected {
			if e == what {
				return false
			}
		}
		p.expected = append(p.expected, what)
	}
	return false
}

func (p *parser) rest() string {
	return p.input[p.pos:]
}

func (p *parser) atEnd() bool {
	return p.pos >= len(p.input)
}

// suite matches one or more module blocks separated by blank lines,
// followed by nothing but blank lines.
func (p *parser) suite() ([]TestModule, bool) {
	var modules []TestModule
	p.blankLines()
	for {
		m, ok := p.module()
		if !ok {
			return nil, false
		}
		modules = append(modules, m)

		n := p.blankLines()
		if p.atEnd() {
			return modules, true
		}
		if n == 0 {
			return nil, p.fail(p.pos, "blank line")
		}
	}
}

func (p *parser) module() (TestModule, bool) {
	var m TestModule
	if _, ok := p.header(); !ok {
		return m, false
	}

	for {
		save := p.pos
		tc, ok := p.testLine()
		if !ok {
			p.pos = save
			break
		}
		m.Tests = append(m.Tests, tc)
	}
	if !p.lineEnding() {
		return m, false
	}

	save := p.pos
	failures, ok := p.failures()
	if ok {
		m.Failures = failures
	} else {
		p.pos = save
	}

	if !p.summary(&m) {
		return m, false
	}
	return m, true
}

// header matches "running N test" for N == 1 and "running N tests" otherwise.
func (p *parser) header() (int, bool) {
	if !p.literal("running ") {
		return 0, false
	}
	n, ok := p.number()
	if !ok {
		return 0, false
	}
	noun := " tests"
	if n == 1 {
		noun = " test"
	}
	if !p.literal(noun) || !p.lineEnding() {
		return 0, false
	}
	return n, true
}

// testLine matches "test <name> ... <result>". Names may contain spaces,
// colons and parentheses, as doc tests do:
//
//	test src/lib.rs - parse (line 12) ... ok
func (p *parser) testLine() (TestCase, bool) {
	if !p.literal("test ") {
		return TestCase{}, false
	}
	name, ok := p.untilOnLine(" ... ")
	if !ok || !p.literal(" ... ") {
		return TestCase{}, false
	}
	token, ok := p.token()
	if !ok || !p.lineEnding() {
		return TestCase{}, false
	}
	return TestCase{Name: name, Outcome: ParseOutcome(token)}, true
}

// failures matches the failures block: the detailed records followed by the
// indented name listing, which is consumed and discarded.
func (p *parser) failures() ([]Failure, bool) {
	if !p.literal("failures:") || !p.lineEnding() || !p.lineEnding() {
		return nil, false
	}

	var records []Failure
	for {
		save := p.pos
		f, ok := p.failure()
		if !ok {
			p.pos = save
			break
		}
		records = append(records, f)
	}
	if len(records) == 0 {
		return nil, false
	}

	if !p.lineEnding() || !p.literal("failures:") || !p.lineEnding() {
		return nil, false
	}
	listed := 0
	for {
		save := p.pos
		if !p.literal("    ") {
			break
		}
		p.pos = p.lineEnd()
		if !p.lineEnding() {
			p.pos = save
			break
		}
		listed++
	}
	if listed == 0 || !p.lineEnding() {
		return nil, false
	}
	return records, true
}

// failure matches one "---- <name> stdout ----" record up to and including
// the blank line that terminates it.
func (p *parser) failure() (Failure, bool) {
	if !p.literal("---- ") {
		return Failure{}, false
	}
	name, ok := p.untilOnLine(" stdout ----")
	if !ok || !p.literal(" stdout ----") || !p.lineEnding() {
		return Failure{}, false
	}

	f := Failure{Name: name}
	if strings.HasPrefix(p.rest(), "\t") {
		save := p.pos
		if stdout, ok := p.capturedOutput(); ok {
			f.Stdout = stdout
		} else {
			p.pos = save
		}
	}

	info, ok := p.untilBlankLine()
	if !ok || !p.lineEnding() || !p.lineEnding() {
		return Failure{}, false
	}
	f.Info = info
	return f, true
}

// capturedOutput matches a tab followed by everything up to the next line
// that starts with "thread". One trailing line ending is dropped.
func (p *parser) capturedOutput() (string, bool) {
	start := p.pos + 1
	text := p.input[start:]
	i := 0
	for {
		j := strings.Index(text[i:], "thread")
		if j < 0 {
			return "", p.fail(start, `line starting with "thread"`)
		}
		i += j
		if i == 0 || text[i-1] == '\n' {
			break
		}
		i++
	}
	p.pos = start + i
	return trimLineEnding(text[:i]), true
}

// untilBlankLine returns the text up to, not including, the first line
// ending that is immediately followed by another line ending.
func (p *parser) untilBlankLine() (string, bool) {
	for i := p.pos; i < len(p.input); i++ {
		if p.input[i] != '\n' {
			continue
		}
		next := p.input[i+1:]
		if !strings.HasPrefix(next, "\n") && !strings.HasPrefix(next, "\r\n") {
			continue
		}
		end := i
		if end > p.pos && p.input[end-1] == '\r' {
			end--
		}
		text := p.input[p.pos:end]
		p.pos = end
		return text, true
	}
	return "", p.fail(len(p.input), "blank line")
}

// summary matches
//
//	test result: ok. 1 passed; 0 failed; 0 ignored; 0 measured; 0 filtered out; finished in 0.00s
//
// where the "filtered out" and "finished in" clauses are optional.
func (p *parser) summary(m *TestModule) bool {
	if !p.literal("test result: ") {
		return false
	}
	token, ok := p.token()
	if !ok || !p.literal(". ") {
		return false
	}
	m.Result = ParseOutcome(token)

	clauses := []struct {
		dst    *int
		suffix string
	}{
		{&m.Passed, " passed; "},
		{&m.Failed, " failed; "},
		{&m.Ignored, " ignored; "},
		{&m.Measured, " measured"},
	}
	for _, c := range clauses {
		n, ok := p.number()
		if !ok || !p.literal(c.suffix) {
			return false
		}
		*c.dst = n
	}

	save := p.pos
	if n, ok := p.filteredClause(); ok {
		m.Filtered = n
	} else {
		p.pos = save
	}

	save = p.pos
	if d, ok := p.finishedClause(); ok {
		m.Duration = d
	} else {
		p.pos = save
	}

	return p.lineEnding()
}

func (p *parser) filteredClause() (int, bool) {
	if !p.literal("; ") {
		return 0, false
	}
	n, ok := p.number()
	if !ok || !p.literal(" filtered out") {
		return 0, false
	}
	return n, true
}

func (p *parser) finishedClause() (time.Duration, bool) {
	if !p.literal("; finished in ") {
		return 0, false
	}
	start := p.pos
	end := start
	for end < len(p.input) && (isDigit(p.input[end]) || p.input[end] == '.') {
		end++
	}
	d, err := time.ParseDuration(p.input[start:end] + "s")
	if end == start || err != nil {
		return 0, p.fail(start, "duration in seconds")
	}
	p.pos = end
	if !p.literal("s") {
		return 0, false
	}
	return d, true
}

func (p *parser) literal(s string) bool {
	if strings.HasPrefix(p.rest(), s) {
		p.pos += len(s)
		return true
	}
	return p.fail(p.pos, strconv.Quote(s))
}

func (p *parser) lineEnding() bool {
	switch {
	case strings.HasPrefix(p.rest(), "\n"):
		p.pos++
	case strings.HasPrefix(p.rest(), "\r\n"):
		p.pos += 2
	default:
		return p.fail(p.pos, "line ending")
	}
	return true
}

// blankLines consumes consecutive empty lines and returns how many it found.
func (p *parser) blankLines() int {
	n := 0
	for {
		switch {
		case strings.HasPrefix(p.rest(), "\n"):
			p.pos++
		case strings.HasPrefix(p.rest(), "\r\n"):
			p.pos += 2
		default:
			return n
		}
		n++
	}
}

// number matches a decimal integer that fits in 32 unsigned bits.
func (p *parser) number() (int, bool) {
	end := p.pos
	for end < len(p.input) && isDigit(p.input[end]) {
		end++
	}
	if end == p.pos {
		return 0, p.fail(p.pos, "integer")
	}
	n, err := strconv.ParseUint(p.input[p.pos:end], 10, 32)
	if err != nil {
		return 0, p.fail(p.pos, "32-bit unsigned integer")
	}
	p.pos = end
	return int(n), true
}

// token matches a run of ASCII letters and digits.
func (p *parser) token() (string, bool) {
	end := p.pos
	for end < len(p.input) && isAlphanumeric(p.input[end]) {
		end++
	}
	if end == p.pos {
		return "", p.fail(p.pos, "result token")
	}
	tok := p.input[p.pos:end]
	p.pos = end
	return tok, true
}

// untilOnLine returns the text up to the first occurrence of sep on the
// current line without consuming sep.
func (p *parser) untilOnLine(sep string) (string, bool) {
	line := p.input[p.pos:p.lineEnd()]
	i := strings.Index(line, sep)
	if i < 0 {
		return "", p.fail(p.lineEnd(), strconv.Quote(sep))
	}
	text := line[:i]
	p.pos += i
	return text, true
}

// lineEnd returns the offset of the line ending that terminates the current
// line, or the end of input.
func (p *parser) lineEnd() int {
	i := strings.IndexByte(p.rest(), '\n')
	if i < 0 {
		return len(p.input)
	}
	end := p.pos + i
	if end > p.pos && p.input[end-1] == '\r' {
		end--
	}
	return end
}

func trimLineEnding(s string) string {
	if strings.HasSuffix(s, "\r\n") {
		return s[:len(s)-2]
	}
	return strings.TrimSuffix(s, "\n")
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isAlphanumeric(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
