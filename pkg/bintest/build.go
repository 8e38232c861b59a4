package bintest

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"
)

// runBuild invokes the build tool for cfg and collects the executables it
// reports. The child's stdout is consumed as it is produced; stderr goes to
// ours so compiler diagnostics stay visible.
func runBuild(cfg Config) (*Registry, error) {
	tool := ToolPath()
	args := cfg.Args()
	argv := append([]string{tool}, args...)

	cmd := exec.Command(tool, args...)
	cmd.Stderr = os.Stderr
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, &BuildError{Command: argv, ExitCode: -1, Err: err}
	}

	currentLogger().Info("building executables", "tool", tool, "args", args)
	started := time.Now()

	if err := cmd.Start(); err != nil {
		return nil, &BuildError{Command: argv, ExitCode: -1, Err: fmt.Errorf("%w: %w", ErrToolchainUnavailable, err)}
	}

	executables := make(map[string]string)
	for artifact, err := range ReadArtifacts(stdout) {
		if err != nil {
			// Don't wait for a toolchain we can no longer understand.
			_ = cmd.Process.Kill()
			_ = cmd.Wait()
			return nil, &BuildError{Command: argv, ExitCode: -1, Err: err}
		}
		if prev, ok := executables[artifact.Name]; ok && prev != artifact.Path {
			currentLogger().Debug("executable replaced", "name", artifact.Name, "previous", prev, "path", artifact.Path)
		}
		executables[artifact.Name] = artifact.Path
		currentLogger().Debug("executable found",
			"name", artifact.Name,
			"path", artifact.Path,
			"target", artifact.Target,
			"fresh", artifact.Fresh,
		)
	}

	if err := cmd.Wait(); err != nil {
		return nil, &BuildError{Command: argv, ExitCode: exitCode(err), Err: fmt.Errorf("%w: %w", ErrBuildFailed, err)}
	}

	currentLogger().Info("build finished", "executables", len(executables), "duration", time.Since(started).Round(time.Millisecond))
	return newRegistry(cfg, executables), nil
}

func exitCode(err error) int {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}
