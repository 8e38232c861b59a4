package bintest

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrConfigConflict       = errors.New("all call sites must share one configuration")
	ErrToolchainUnavailable = errors.New("build tool unavailable")
	ErrBuildFailed          = errors.New("build failed")
	ErrMalformedMessage     = errors.New("malformed build message")
	ErrUnknownExecutable    = errors.New("no such executable")
	ErrOptionReused         = errors.New("option can only be used once")
)

// BuildError reports a failed build invocation together with the command line
// needed to reproduce it.
type BuildError struct {
	// Command is the full argv, tool first.
	Command []string
	// ExitCode is the tool's exit status, -1 when it never ran or was killed.
	ExitCode int
	Err      error
}

func (e *BuildError) Error() string {
	var b strings.Builder
	if e.ExitCode >= 0 {
		fmt.Fprintf(&b, "build failed with exit status %d", e.ExitCode)
	} else {
		b.WriteString("build did not complete")
	}
	fmt.Fprintf(&b, "\ncommand: %s", strings.Join(e.Command, " "))
	if e.Err != nil {
		fmt.Fprintf(&b, "\nerror: %v", e.Err)
	}
	return b.String()
}

func (e *BuildError) Unwrap() error { return e.Err }

// ConflictError is returned when a registry already exists for a different
// configuration.
type ConflictError struct {
	Existing  Config
	Requested Config
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%v: registry was built with [%s], requested [%s]",
		ErrConfigConflict, e.Existing, e.Requested)
}

func (e *ConflictError) Unwrap() error { return ErrConfigConflict }
