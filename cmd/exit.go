package cmd

import (
	"errors"
	"os"
	"strconv"
)

// ExitError carries the process exit status for a failed run. Err is nil when
// the diagnostics were already printed.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return "exit status " + strconv.Itoa(e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error { return e.Err }

func usageError(err error) error { return &ExitError{Code: 2, Err: err} }

func asExitError(err error, target **ExitError) bool { return errors.As(err, target) }

// ExitCode maps an error returned by Execute to a process exit status.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var ee *ExitError
	if asExitError(err, &ee) {
		return ee.Code
	}
	return 1
}

// Main runs mgrep and exits the process.
func Main() {
	err := Execute()
	if err != nil {
		printError(os.Stderr, err)
	}
	os.Exit(ExitCode(err))
}
