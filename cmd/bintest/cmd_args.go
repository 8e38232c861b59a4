package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"bintest/pkg/bintest"

	"github.com/spf13/cobra"
)

var argsCmd = &cobra.Command{
	Use:   "args",
	Short: "Print the build command without running it",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		path := resolveConfigPath(flagConfig)
		dryRunBuild(os.Stdout, cfg, path)
		return nil
	},
}

// dryRunBuild prints the command that Acquire would run for cfg.
func dryRunBuild(w io.Writer, cfg bintest.Config, configPath string) {
	fmt.Fprintf(w, "[dry-run] %s\n", appName)
	fmt.Fprintf(w, "  command: %s %s\n", bintest.ToolPath(), strings.Join(quoteArgs(cfg.Args()), " "))
	if configPath != "" {
		fmt.Fprintf(w, "  config:  %s\n", configPath)
	}
	fmt.Fprintf(w, "  stdout:  JSON messages (parsed)\n")
	fmt.Fprintf(w, "  stderr:  inherited\n")
}

// quoteArgs quotes arguments that would not survive a shell round trip.
func quoteArgs(args []string) []string {
	out := make([]string, len(args))
	for i, a := range args {
		if a == "" || strings.ContainsAny(a, " \t\"'$\\") {
			out[i] = "'" + strings.ReplaceAll(a, "'", `'\''`) + "'"
		} else {
			out[i] = a
		}
	}
	return out
}
