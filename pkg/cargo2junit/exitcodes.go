package cargo2junit

// Exit codes returned by the cargo2junit CLI.
// These constants allow CI scripts and wrappers to check exit codes
// symbolically rather than using magic numbers.
const (
	// ExitSuccess indicates the report was written.
	ExitSuccess = 0

	// ExitFailure indicates the input could not be parsed, or tests failed
	// while fail_on_test_failure was requested.
	ExitFailure = 1

	// ExitConfigError indicates a bad flag or an invalid configuration file.
	ExitConfigError = 2

	// ExitEnvError indicates the input could not be read or the report
	// could not be written.
	ExitEnvError = 3
)
