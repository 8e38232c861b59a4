package main

import (
	"os/exec"
	"runtime"
	"testing"

	"bintest/pkg/bintest"
	"bintest/pkg/lib"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv(t *testing.T) {
	env, err := parseEnv(nil)
	require.NoError(t, err)
	assert.Nil(t, env)

	env, err = parseEnv([]string{"RUST_LOG=debug", "URL=http://x/?a=b", "EMPTY="})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"RUST_LOG": "debug",
		"URL":      "http://x/?a=b",
		"EMPTY":    "",
	}, env)

	for _, bad := range []string{"NOVALUE", "=value"} {
		_, err := parseEnv([]string{bad})
		assert.ErrorContains(t, err, "expected KEY=VALUE", bad)
	}
}

func TestSortedKeys(t *testing.T) {
	assert.Equal(t, []string{"A", "B", "C"}, sortedKeys(map[string]string{"C": "", "A": "", "B": ""}))
}

func TestRunExecutable_UnknownName(t *testing.T) {
	err := runExecutable(testRegistry(), runSpec{Name: "nope"})
	require.ErrorIs(t, err, bintest.ErrUnknownExecutable)
	assert.ErrorContains(t, err, "available: cli, migrator, server")
}

func shellRegistry(t *testing.T) *bintest.Registry {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("needs a POSIX shell")
	}
	sh, err := exec.LookPath("sh")
	if err != nil {
		t.Skip("sh not found")
	}
	return bintest.NewRegistry(bintest.With(), map[string]string{"sh": sh})
}

func TestRunExecutable_ExitStatus(t *testing.T) {
	reg := shellRegistry(t)

	require.NoError(t, runExecutable(reg, runSpec{Name: "sh", Args: []string{"-c", "exit 0"}}))

	err := runExecutable(reg, runSpec{Name: "sh", Args: []string{"-c", "exit 3"}})
	var exitErr *lib.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 3, exitErr.Code)
	assert.Empty(t, exitErr.Message)
}

func TestRunExecutable_KilledBySignal(t *testing.T) {
	reg := shellRegistry(t)

	err := runExecutable(reg, runSpec{Name: "sh", Args: []string{"-c", "kill -9 $$"}})
	var exitErr *lib.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 1, exitErr.Code)
	assert.Contains(t, exitErr.Message, "sh: signal: killed")
}

func TestRunExecutable_EnvAndDir(t *testing.T) {
	reg := shellRegistry(t)
	dir := t.TempDir()

	err := runExecutable(reg, runSpec{
		Name: "sh",
		Args: []string{"-c", `test "$BINTEST_RUN_MARKER" = yes && test "$(pwd -P)" = "$(cd "$0" && pwd -P)"`, dir},
		Env:  map[string]string{"BINTEST_RUN_MARKER": "yes"},
		Dir:  dir,
	})
	require.NoError(t, err)
}
