package lib

import (
	"errors"
	"fmt"
	"os"
)

// ExitError carries a process exit code through a cobra RunE chain.
// An empty Message means the failure was already reported (typically by a
// child process writing to the inherited stderr) and nothing is printed.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Message
}

// Exit prints the error and exits the program.
// The exit code is taken from an *ExitError in the chain, 1 otherwise.
func Exit(err error) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		if exitErr.Message != "" {
			fmt.Fprintln(os.Stderr, "Error:", exitErr.Message)
		}
		os.Exit(exitErr.Code)
	}
	fmt.Fprintln(os.Stderr, "Error:", err)
	os.Exit(1)
}
