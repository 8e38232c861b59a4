package main

import (
	"os"

	"bintest/pkg/bintest"
	"bintest/pkg/lib"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   appName,
	Short: "Build cargo executables and find, run or inspect them",
	Long: appName + " runs `cargo build --message-format json` with the configured options\n" +
		"and works with the executables it reports, the same way integration tests do\n" +
		"through the bintest package.\n\n" +
		"Build options come from " + defaultConfigFile + " (or --config / $" + envConfig + ")\n" +
		"with command-line flags taking precedence.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		bintest.SetLogger(lib.NewLogger(flagLogLevel, flagLogFormat, os.Stderr))
	},
}

func init() {
	registerBuildFlags(rootCmd)

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(argsCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(pickCmd)
	rootCmd.AddCommand(psCmd)
	rootCmd.AddCommand(shellCmd)
	rootCmd.AddCommand(configCmd)
}

func main() {
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true

	if err := rootCmd.Execute(); err != nil {
		lib.Exit(err)
	}
}
