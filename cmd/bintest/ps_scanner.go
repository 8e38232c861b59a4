package main

import (
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"bintest/pkg/bintest"

	"github.com/shirou/gopsutil/v4/process"
)

// ProcessInfo is a running instance of a built executable.
type ProcessInfo struct {
	Name    string // executable name in the registry
	Pid     int32
	Started time.Time
	Cmdline string
}

// procCandidate is the subset of a process that matching needs.
type procCandidate struct {
	Pid        int32
	Exe        string
	Cmdline    string
	CreateTime int64 // milliseconds since the epoch
}

// ScanProcesses returns the running processes whose executable is one of the
// registry's paths.
func ScanProcesses(reg *bintest.Registry) ([]ProcessInfo, error) {
	procs, err := process.Processes()
	if err != nil {
		return nil, err
	}

	candidates := make([]procCandidate, 0, len(procs))
	for _, p := range procs {
		exe, err := p.Exe()
		if err != nil || exe == "" {
			// Processes of other users or already gone.
			continue
		}
		c := procCandidate{Pid: p.Pid, Exe: exe}
		if cmdline, err := p.Cmdline(); err == nil {
			c.Cmdline = cmdline
		}
		if created, err := p.CreateTime(); err == nil {
			c.CreateTime = created
		}
		candidates = append(candidates, c)
	}
	return matchProcesses(candidates, reg), nil
}

// matchProcesses keeps the candidates running a registry executable, sorted by
// name then pid.
func matchProcesses(candidates []procCandidate, reg *bintest.Registry) []ProcessInfo {
	byPath := make(map[string]string, reg.Len())
	for name, path := range reg.List() {
		byPath[filepath.Clean(path)] = name
	}

	var out []ProcessInfo
	for _, c := range candidates {
		name, ok := byPath[filepath.Clean(c.Exe)]
		if !ok {
			continue
		}
		info := ProcessInfo{Name: name, Pid: c.Pid, Cmdline: c.Cmdline}
		if c.CreateTime > 0 {
			info.Started = time.UnixMilli(c.CreateTime)
		}
		out = append(out, info)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].Pid < out[j].Pid
	})
	return out
}

func killProcess(pid int32) error {
	p, err := process.NewProcess(pid)
	if err != nil {
		return fmt.Errorf("unable to find PID %d: %w", pid, err)
	}
	if err := p.Kill(); err != nil {
		return fmt.Errorf("failed to terminate process %d: %w", pid, err)
	}
	return nil
}
