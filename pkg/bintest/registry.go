package bintest

import (
	"maps"
	"slices"
	"sync"
	"sync/atomic"
	"testing"
)

// Registry maps the names of freshly built executables to their paths.
// A Registry is immutable and safe for concurrent use.
type Registry struct {
	config      Config
	executables map[string]string
	names       []string // sorted keys of executables
}

func newRegistry(cfg Config, executables map[string]string) *Registry {
	names := make([]string, 0, len(executables))
	for name := range executables {
		names = append(names, name)
	}
	slices.Sort(names)
	return &Registry{config: cfg, executables: executables, names: names}
}

// NewRegistry returns a registry over a fixed table, without building
// anything. It is meant for tools and tests that already know the paths.
// The map is copied.
func NewRegistry(cfg Config, executables map[string]string) *Registry {
	return newRegistry(cfg, maps.Clone(executables))
}

// cell holds the registry of a process. Readers load the published snapshot
// without locking; builders serialize on mu so only one build runs at a time
// and nothing is published until the table is complete.
type cell struct {
	mu      sync.Mutex
	current atomic.Pointer[Registry]
	build   func(Config) (*Registry, error)
}

var global = &cell{build: runBuild}

func (c *cell) acquire(cfg Config) (*Registry, error) {
	if r := c.current.Load(); r != nil {
		return r.check(cfg)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// Another caller may have finished the build while we waited.
	if r := c.current.Load(); r != nil {
		return r.check(cfg)
	}

	r, err := c.build(cfg)
	if err != nil {
		return nil, err
	}
	c.current.Store(r)
	return r, nil
}

func (r *Registry) check(cfg Config) (*Registry, error) {
	if !r.config.Equal(cfg) {
		return nil, &ConflictError{Existing: r.config, Requested: cfg}
	}
	return r, nil
}

// New builds the executables of the current package with the default
// configuration, or returns the registry built earlier in this process.
// It panics on any failure; see Config.Build.
func New() *Registry {
	return With().Build()
}

// Acquire returns the process-wide registry, running the build tool if no
// registry exists yet. Concurrent first callers wait for a single build.
//
// Once a registry exists, every call must pass an equal configuration;
// otherwise Acquire returns an error wrapping ErrConfigConflict and nothing is
// rebuilt. A failed build is not retained, so a later call builds again.
func (c Config) Acquire() (*Registry, error) {
	return global.acquire(c)
}

// Build is Acquire for setup code that cannot continue without executables.
// It panics with the error.
//
// Tests that share a configuration usually wrap it in a helper:
//
//	var bins = bintest.With().Quiet()
//
//	func executables() *bintest.Registry { return bins.Build() }
func (c Config) Build() *Registry {
	r, err := c.Acquire()
	if err != nil {
		panic(err)
	}
	return r
}

// Setup is Acquire for use inside a test. It stops the test with tb.Fatal on
// error.
func (c Config) Setup(tb testing.TB) *Registry {
	tb.Helper()
	r, err := c.Acquire()
	if err != nil {
		tb.Fatalf("bintest: %v", err)
	}
	return r
}
