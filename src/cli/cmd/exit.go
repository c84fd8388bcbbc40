package cmd

// ExitError makes the process exit with Code. Err, if set, is printed;
// a nil Err means the failure was already reported (a wrapped tool's own
// output, or the scan report).
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error { return e.Err }

// exitCode turns a wrapped tool's exit code into a command error.
func exitCode(code int, err error) error {
	if err != nil {
		return &ExitError{Code: code, Err: err}
	}
	if code != 0 {
		return &ExitError{Code: code}
	}
	return nil
}
