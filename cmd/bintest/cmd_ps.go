package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var flagPSNoTUI bool

var psCmd = &cobra.Command{
	Use:   "ps",
	Short: "Show running processes of the built executables",
	Long: "List processes whose executable is one of the binaries reported by the\n" +
		"build, e.g. servers left behind by an interrupted test run. The interactive\n" +
		"view can kill the selected process.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := acquire(cmd)
		if err != nil {
			return err
		}
		procs, err := ScanProcesses(reg)
		if err != nil {
			return fmt.Errorf("scan error: %w", err)
		}

		if flagPSNoTUI {
			printProcesses(os.Stdout, procs)
			return nil
		}

		scan := func() ([]ProcessInfo, error) { return ScanProcesses(reg) }
		p := tea.NewProgram(newPSModel(procs, scan, killProcess), tea.WithAltScreen())
		_, err = p.Run()
		return err
	},
}

func init() {
	psCmd.Flags().BoolVar(&flagPSNoTUI, "no-tui", false, "plain text output without the interactive view")
}

func printProcesses(w io.Writer, procs []ProcessInfo) {
	fmt.Fprintf(w, "%-20s %-8s %-10s %s\n", "NAME", "PID", "STARTED", "COMMAND")
	fmt.Fprintln(w, strings.Repeat("-", 60))
	for _, p := range procs {
		started := "-"
		if !p.Started.IsZero() {
			started = p.Started.Format("15:04:05")
		}
		fmt.Fprintf(w, "%-20s %-8d %-10s %s\n", p.Name, p.Pid, started, p.Cmdline)
	}
}
