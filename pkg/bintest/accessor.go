package bintest

import (
	"context"
	"fmt"
	"iter"
	"os/exec"
	"slices"
)

// Config returns the configuration the registry was built with.
func (r *Registry) Config() Config { return r.config }

// Len returns the number of executables.
func (r *Registry) Len() int { return len(r.names) }

// Names returns the executable names in lexicographic order.
func (r *Registry) Names() []string { return slices.Clone(r.names) }

// List yields (name, path) pairs in lexicographic order of name. The sequence
// can be ranged over any number of times.
func (r *Registry) List() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, name := range r.names {
			if !yield(name, r.executables[name]) {
				return
			}
		}
	}
}

// Path returns the path of the named executable.
func (r *Registry) Path(name string) (string, bool) {
	path, ok := r.executables[name]
	return path, ok
}

// Executable is Path with an error wrapping ErrUnknownExecutable for names
// that were not built.
func (r *Registry) Executable(name string) (string, error) {
	path, ok := r.executables[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownExecutable, name)
	}
	return path, nil
}

// Command returns an *exec.Cmd for the named executable with no arguments.
// It panics if name was not built, since that means the test or the build
// configuration is wrong.
func (r *Registry) Command(name string) *exec.Cmd {
	return exec.Command(r.mustPath(name))
}

// CommandContext is Command bound to ctx.
func (r *Registry) CommandContext(ctx context.Context, name string) *exec.Cmd {
	return exec.CommandContext(ctx, r.mustPath(name))
}

func (r *Registry) mustPath(name string) string {
	path, err := r.Executable(name)
	if err != nil {
		panic(err)
	}
	return path
}
