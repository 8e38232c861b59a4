package bintest

import "os"

// toolEnv names the environment variable that overrides the build tool. Cargo
// sets it for every process it runs, so tests launched by `cargo test` reuse
// the same toolchain.
const toolEnv = "CARGO"

const defaultTool = "cargo"

// ToolPath returns $CARGO when set, otherwise "cargo" to be resolved via PATH.
func ToolPath() string {
	if v := os.Getenv(toolEnv); v != "" {
		return v
	}
	return defaultTool
}

// Args returns the argument list passed to the build tool. It always asks for
// JSON messages; everything after that is derived from the configuration.
func (c Config) Args() []string {
	return append([]string{"build", "--message-format", "json"}, c.flags()...)
}

func (c Config) flags() []string {
	var args []string
	if c.workspace {
		args = append(args, "--workspace")
	}
	if c.quiet {
		args = append(args, "--quiet")
	}
	if c.release {
		args = append(args, "--release")
	}
	if c.offline {
		args = append(args, "--offline")
	}
	if c.allTargets {
		args = append(args, "--all-targets")
	}
	if c.features.set {
		args = append(args, "--features", c.features.value)
	}
	if c.profile.set {
		args = append(args, "--profile", c.profile.value)
	}
	for _, bin := range c.binaries.values {
		args = append(args, "--bin", bin)
	}
	for _, example := range c.examples.values {
		args = append(args, "--example", example)
	}
	return args
}
