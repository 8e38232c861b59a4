package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type psState int

const (
	psStateList psState = iota
	psStateConfirm
	psStateResult
)

var (
	styleBase = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240"))

	styleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")).
			Padding(0, 1)

	styleHelp = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Padding(0, 1)

	styleOverlay = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("214")).
			Padding(1, 3).
			MarginLeft(2)

	styleOverlayTitle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("214"))

	styleKey = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99"))

	styleOK = lipgloss.NewStyle().
		Foreground(lipgloss.Color("42")).
		Padding(0, 1)

	styleErr = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Padding(0, 1)
)

// psModel shows running instances of built executables and can kill them.
type psModel struct {
	table     table.Model
	procs     []ProcessInfo
	scan      func() ([]ProcessInfo, error)
	kill      func(pid int32) error
	state     psState
	resultMsg string
	resultErr error
}

func newPSModel(procs []ProcessInfo, scan func() ([]ProcessInfo, error), kill func(int32) error) psModel {
	columns := []table.Column{
		{Title: "NAME", Width: 20},
		{Title: "PID", Width: 8},
		{Title: "STARTED", Width: 10},
		{Title: "COMMAND", Width: 48},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(toRows(procs)),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true).
		Foreground(lipgloss.Color("99"))
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return psModel{table: t, procs: procs, scan: scan, kill: kill, state: psStateList}
}

func toRows(procs []ProcessInfo) []table.Row {
	rows := make([]table.Row, len(procs))
	for i, p := range procs {
		started := "-"
		if !p.Started.IsZero() {
			started = p.Started.Format("15:04:05")
		}
		rows[i] = table.Row{p.Name, fmt.Sprintf("%d", p.Pid), started, p.Cmdline}
	}
	return rows
}

func (m psModel) Init() tea.Cmd {
	return nil
}

func (m psModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m.state {
	case psStateList:
		return m.updateList(msg)
	case psStateConfirm:
		return m.updateConfirm(msg)
	case psStateResult:
		return m.updateResult(msg)
	}
	return m, nil
}

func (m psModel) refresh() psModel {
	if procs, err := m.scan(); err == nil {
		m.procs = procs
		m.table.SetRows(toRows(procs))
	}
	return m
}

func (m psModel) selected() (ProcessInfo, bool) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.procs) {
		return ProcessInfo{}, false
	}
	return m.procs[idx], true
}

func (m psModel) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "ctrl+k":
			if len(m.procs) > 0 {
				m.state = psStateConfirm
			}
			return m, nil
		case "r":
			return m.refresh(), nil
		}
	}
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m psModel) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch strings.ToLower(msg.String()) {
		case "y":
			if p, ok := m.selected(); ok {
				err := m.kill(p.Pid)
				m.resultErr = err
				if err == nil {
					m.resultMsg = fmt.Sprintf("Killed %s (PID %d).", p.Name, p.Pid)
				} else {
					m.resultMsg = fmt.Sprintf("Could not kill %s (PID %d): %v", p.Name, p.Pid, err)
				}
			}
			m.state = psStateResult
			return m, nil
		case "n", "esc", "q":
			m.state = psStateList
			return m, nil
		}
	}
	return m, nil
}

func (m psModel) updateResult(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "esc", "enter", "r":
			m = m.refresh()
			m.state = psStateList
			return m, nil
		}
	}
	return m, nil
}

func (m psModel) View() string {
	title := styleTitle.Render(strings.ToUpper(appName) + " PS: running executables")
	tableView := styleBase.Render(m.table.View())

	switch m.state {
	case psStateConfirm:
		var target string
		if p, ok := m.selected(); ok {
			target = fmt.Sprintf("%s  (PID %d)", p.Name, p.Pid)
		}
		overlay := styleOverlay.Render(
			styleOverlayTitle.Render("Kill "+target+"?") + "\n\n" +
				styleKey.Render("y") + " confirm    " +
				styleKey.Render("n") + " cancel",
		)
		return title + "\n" + tableView + "\n" + overlay

	case psStateResult:
		var msg string
		if m.resultErr != nil {
			msg = styleErr.Render(m.resultMsg)
		} else {
			msg = styleOK.Render(m.resultMsg)
		}
		help := styleHelp.Render("enter / r  continue    q  quit")
		return title + "\n" + tableView + "\n" + msg + "\n" + help

	default:
		var help string
		if len(m.procs) == 0 {
			help = styleHelp.Render("No built executable is running.  r  refresh    q  quit")
		} else {
			help = styleHelp.Render("↑/↓  navigate    ctrl+k  kill    r  refresh    q  quit")
		}
		return title + "\n" + tableView + "\n" + help
	}
}
