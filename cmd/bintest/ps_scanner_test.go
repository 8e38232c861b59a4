package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMatchProcesses(t *testing.T) {
	created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	candidates := []procCandidate{
		{Pid: 30, Exe: "/target/debug/server", Cmdline: "server --port 1"},
		{Pid: 10, Exe: "/usr/bin/bash", Cmdline: "bash"},
		{Pid: 20, Exe: "/target/debug/./server", Cmdline: "server --port 2", CreateTime: created.UnixMilli()},
		{Pid: 40, Exe: "/target/debug/cli", Cmdline: "cli"},
		{Pid: 50, Exe: "/target/release/cli", Cmdline: "cli"},
	}

	got := matchProcesses(candidates, testRegistry())
	assert.Equal(t, []ProcessInfo{
		{Name: "cli", Pid: 40, Cmdline: "cli"},
		{Name: "server", Pid: 20, Started: time.UnixMilli(created.UnixMilli()), Cmdline: "server --port 2"},
		{Name: "server", Pid: 30, Cmdline: "server --port 1"},
	}, got)
}

func TestMatchProcesses_NoneRunning(t *testing.T) {
	got := matchProcesses([]procCandidate{{Pid: 1, Exe: "/sbin/init"}}, testRegistry())
	assert.Empty(t, got)
}
