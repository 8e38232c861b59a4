package main

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keyRune(r rune) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}} }

func samplePS() []ProcessInfo {
	return []ProcessInfo{
		{Name: "cli", Pid: 40, Cmdline: "cli"},
		{Name: "server", Pid: 20, Cmdline: "server --port 2"},
	}
}

func update(t *testing.T, m psModel, msg tea.Msg) psModel {
	t.Helper()
	next, _ := m.Update(msg)
	pm, ok := next.(psModel)
	require.True(t, ok)
	return pm
}

func TestPSModel_KillConfirmed(t *testing.T) {
	var killed []int32
	kill := func(pid int32) error { killed = append(killed, pid); return nil }
	scan := func() ([]ProcessInfo, error) { return samplePS()[1:], nil }

	m := newPSModel(samplePS(), scan, kill)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlK})
	assert.Equal(t, psStateConfirm, m.state)
	assert.Contains(t, m.View(), "Kill cli  (PID 40)?")

	m = update(t, m, keyRune('y'))
	assert.Equal(t, psStateResult, m.state)
	assert.Equal(t, []int32{40}, killed)
	assert.Equal(t, "Killed cli (PID 40).", m.resultMsg)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, psStateList, m.state)
	assert.Len(t, m.procs, 1, "list is rescanned after a kill")
}

func TestPSModel_KillCancelled(t *testing.T) {
	kill := func(int32) error { t.Fatal("kill must not be called"); return nil }
	m := newPSModel(samplePS(), func() ([]ProcessInfo, error) { return samplePS(), nil }, kill)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlK})
	m = update(t, m, keyRune('n'))
	assert.Equal(t, psStateList, m.state)
}

func TestPSModel_KillFailure(t *testing.T) {
	kill := func(int32) error { return errors.New("permission denied") }
	m := newPSModel(samplePS(), func() ([]ProcessInfo, error) { return samplePS(), nil }, kill)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlK})
	m = update(t, m, keyRune('y'))
	assert.EqualError(t, m.resultErr, "permission denied")
	assert.Contains(t, m.resultMsg, "Could not kill cli (PID 40)")
}

func TestPSModel_EmptyListIgnoresKill(t *testing.T) {
	m := newPSModel(nil, func() ([]ProcessInfo, error) { return nil, nil }, killProcess)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlK})
	assert.Equal(t, psStateList, m.state)
	assert.Contains(t, m.View(), "No built executable is running.")
}

func TestPSModel_Quit(t *testing.T) {
	m := newPSModel(samplePS(), nil, nil)
	_, cmd := m.Update(keyRune('q'))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
