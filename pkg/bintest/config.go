package bintest

import (
	"fmt"
	"runtime/debug"
	"slices"
	"strings"
	"sync"
)

// Config selects what the build tool is asked to build. It is an immutable
// value: every setter returns a modified copy, so a Config can be kept in a
// package-level variable and shared by all tests of a package.
//
// Config holds slices and therefore is not comparable with ==; use Equal.
type Config struct {
	workspace  bool
	quiet      bool
	release    bool
	offline    bool
	allTargets bool
	features   optString
	profile    optString
	binaries   optList
	examples   optList
}

type optString struct {
	value string
	set   bool
}

type optList struct {
	values []string
	set    bool
}

// With returns the default configuration: the current package only, cargo's
// regular output, release mode when this process was itself compiled with
// optimizations, and no feature, profile, binary or example selection.
func With() Config {
	return Config{release: defaultRelease()}
}

// defaultRelease reports whether the running binary was compiled with
// optimizations, i.e. without -N in its -gcflags.
var defaultRelease = sync.OnceValue(func() bool {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return true
	}
	for _, s := range info.Settings {
		if s.Key == "-gcflags" && gcflagsDisableOptimizations(s.Value) {
			return false
		}
	}
	return true
})

func gcflagsDisableOptimizations(flags string) bool {
	for _, f := range strings.Fields(flags) {
		// Accept both "-N" and the package-pattern form "all=-N".
		if _, v, ok := strings.Cut(f, "="); ok {
			f = v
		}
		if f == "-N" {
			return true
		}
	}
	return false
}

// Workspace builds every member of the workspace.
func (c Config) Workspace() Config {
	c.workspace = true
	return c
}

// Quiet suppresses cargo's progress output on stderr.
func (c Config) Quiet() Config {
	c.quiet = true
	return c
}

// Release builds with the release profile.
func (c Config) Release() Config {
	c.release = true
	return c
}

// Debug builds with the dev profile.
func (c Config) Debug() Config {
	c.release = false
	return c
}

// Offline forbids network access during the build.
func (c Config) Offline() Config {
	c.offline = true
	return c
}

// AllTargets builds libraries, binaries, tests, benches and examples.
func (c Config) AllTargets() Config {
	c.allTargets = true
	return c
}

// Features sets the --features list. It panics when called twice.
func (c Config) Features(features string) Config {
	mustBeUnset("features", c.features.set)
	c.features = optString{value: features, set: true}
	return c
}

// Profile selects a named --profile. It panics when called twice.
func (c Config) Profile(profile string) Config {
	mustBeUnset("profile", c.profile.set)
	c.profile = optString{value: profile, set: true}
	return c
}

// Binaries restricts the build to the named binaries. It panics when called
// twice.
func (c Config) Binaries(names ...string) Config {
	mustBeUnset("binaries", c.binaries.set)
	c.binaries = optList{values: slices.Clone(names), set: true}
	return c
}

// Examples restricts the build to the named examples. It panics when called
// twice.
func (c Config) Examples(names ...string) Config {
	mustBeUnset("examples", c.examples.set)
	c.examples = optList{values: slices.Clone(names), set: true}
	return c
}

func mustBeUnset(option string, set bool) {
	if set {
		panic(fmt.Errorf("%s(): %w", option, ErrOptionReused))
	}
}

// IsRelease reports whether the release profile is selected.
func (c Config) IsRelease() bool { return c.release }

// Equal reports whether both configurations request exactly the same build.
// An option that was never set differs from one set to an empty value.
func (c Config) Equal(o Config) bool {
	return c.workspace == o.workspace &&
		c.quiet == o.quiet &&
		c.release == o.release &&
		c.offline == o.offline &&
		c.allTargets == o.allTargets &&
		c.features == o.features &&
		c.profile == o.profile &&
		c.binaries.equal(o.binaries) &&
		c.examples.equal(o.examples)
}

func (l optList) equal(o optList) bool {
	return l.set == o.set && slices.Equal(l.values, o.values)
}

// String renders the configuration as the flags it contributes to the build
// command, or "default" when it contributes none.
func (c Config) String() string {
	flags := c.flags()
	if len(flags) == 0 {
		return "default"
	}
	return strings.Join(flags, " ")
}
