package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the " + defaultConfigFile + " build configuration",
	Long:  "Commands for creating and inspecting the build configuration file.",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective build configuration",
	Long: "Print the configuration file merged with the command-line flags, as YAML,\n" +
		"followed by the cargo flags it selects.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := loadBuildFile(cmd)
		if err != nil {
			return err
		}
		data, err := f.Marshal()
		if err != nil {
			return err
		}
		os.Stdout.Write(data)
		fmt.Fprintf(os.Stdout, "# cargo flags: %s\n", f.Config())
		return nil
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
}
