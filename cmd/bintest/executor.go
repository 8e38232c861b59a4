package main

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"sort"
	"strings"

	"bintest/pkg/bintest"
	"bintest/pkg/lib"
)

// runSpec describes one launch of a built executable.
type runSpec struct {
	Name string
	Args []string
	Env  map[string]string
	Dir  string
}

// runExecutable starts the named executable with the terminal's stdio and
// waits for it. A non-zero exit is returned as *lib.ExitError carrying the
// child's status; a child killed by a signal gives status 1 and a message.
func runExecutable(reg *bintest.Registry, spec runSpec) error {
	if _, err := reg.Executable(spec.Name); err != nil {
		return fmt.Errorf("%w\navailable: %s", err, strings.Join(reg.Names(), ", "))
	}

	cmd := reg.Command(spec.Name)
	cmd.Args = append(cmd.Args, spec.Args...)

	// Working directory: empty means inherit from the parent process.
	if spec.Dir != "" {
		cmd.Dir = spec.Dir
	}

	// Environment: start from the process env, then overlay the requested vars.
	cmd.Env = os.Environ()
	for _, k := range sortedKeys(spec.Env) {
		cmd.Env = append(cmd.Env, k+"="+spec.Env[k])
	}

	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			if code := exitErr.ExitCode(); code >= 0 {
				return &lib.ExitError{Code: code}
			}
			// Killed by a signal: nothing was reported yet.
			return &lib.ExitError{Code: 1, Message: fmt.Sprintf("%s: %v", spec.Name, exitErr)}
		}
		return fmt.Errorf("running %s: %w", spec.Name, err)
	}
	return nil
}

// parseEnv turns KEY=VALUE pairs into a map.
func parseEnv(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	env := make(map[string]string, len(pairs))
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid --env %q: expected KEY=VALUE", p)
		}
		env[k] = v
	}
	return env, nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
