package argh

import "fmt"

// AssemblingError indicates that a command tree could not be assembled from
// the given functions and argument declarations. All assembling errors are
// reported synchronously, before any command runs: a misconfigured tree can
// never be partially registered and fail later during dispatch.
type AssemblingError struct {
	// Func is the name of the command function the error relates to, if
	// known.
	Func string

	// Reason describes what went wrong.
	Reason string
}

func (e *AssemblingError) Error() string {
	if e.Func != "" {
		return e.Func + ": " + e.Reason
	}
	return e.Reason
}

// assemblingErrorf builds an *AssemblingError attributed to the named
// function.
func assemblingErrorf(fn, format string, args ...any) *AssemblingError {
	return &AssemblingError{Func: fn, Reason: fmt.Sprintf(format, args...)}
}
