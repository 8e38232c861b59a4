package main

import (
	"bytes"
	"testing"

	"bintest/pkg/bintest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseShellLine(t *testing.T) {
	tests := []struct {
		line string
		want shellLine
	}{
		{"", shellLine{}},
		{"   ", shellLine{}},
		{"list", shellLine{Verb: "list"}},
		{"path server", shellLine{Verb: "path", Name: "server"}},
		{"run server --port 80", shellLine{Verb: "run", Name: "server", Args: []string{"--port", "80"}}},
		{`run cli "two words" 'single $x'`, shellLine{Verb: "run", Name: "cli", Args: []string{"two words", "single $x"}}},
		{`run cli a\ b ""`, shellLine{Verb: "run", Name: "cli", Args: []string{"a b", ""}}},
		{"  run\tcli  ", shellLine{Verb: "run", Name: "cli"}},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, err := parseShellLine(tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseShellLine_Errors(t *testing.T) {
	_, err := parseShellLine(`run "unterminated`)
	assert.ErrorContains(t, err, "unterminated")

	_, err = parseShellLine(`run cli \`)
	assert.ErrorContains(t, err, "trailing backslash")
}

func TestDispatchShell(t *testing.T) {
	reg := testRegistry()

	t.Run("exit", func(t *testing.T) {
		for _, verb := range []string{"exit", "quit"} {
			done, err := dispatchShell(&bytes.Buffer{}, reg, shellLine{Verb: verb})
			require.NoError(t, err)
			assert.True(t, done)
		}
	})

	t.Run("empty line", func(t *testing.T) {
		done, err := dispatchShell(&bytes.Buffer{}, reg, shellLine{})
		require.NoError(t, err)
		assert.False(t, done)
	})

	t.Run("help", func(t *testing.T) {
		var buf bytes.Buffer
		done, err := dispatchShell(&buf, reg, shellLine{Verb: "help"})
		require.NoError(t, err)
		assert.False(t, done)
		assert.Equal(t, shellHelp+"\n", buf.String())
		assert.Contains(t, buf.String(), "path NAME")
	})

	t.Run("list", func(t *testing.T) {
		var buf bytes.Buffer
		_, err := dispatchShell(&buf, reg, shellLine{Verb: "list"})
		require.NoError(t, err)
		assert.Contains(t, buf.String(), "server    /target/debug/server")
	})

	t.Run("path", func(t *testing.T) {
		var buf bytes.Buffer
		_, err := dispatchShell(&buf, reg, shellLine{Verb: "path", Name: "cli"})
		require.NoError(t, err)
		assert.Equal(t, "/target/debug/cli\n", buf.String())
	})

	t.Run("path of unknown executable", func(t *testing.T) {
		_, err := dispatchShell(&bytes.Buffer{}, reg, shellLine{Verb: "path", Name: "nope"})
		assert.ErrorIs(t, err, bintest.ErrUnknownExecutable)
	})

	t.Run("missing name", func(t *testing.T) {
		_, err := dispatchShell(&bytes.Buffer{}, reg, shellLine{Verb: "run"})
		assert.ErrorContains(t, err, "usage: run")
	})

	t.Run("unknown verb", func(t *testing.T) {
		done, err := dispatchShell(&bytes.Buffer{}, reg, shellLine{Verb: "build", Name: "server"})
		assert.ErrorContains(t, err, `unknown command "build"`)
		assert.False(t, done)
	})
}
