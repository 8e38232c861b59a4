package main

import (
	"strings"

	"github.com/spf13/cobra"
)

var (
	flagRunEnv []string
	flagRunDir string
)

var runCmd = &cobra.Command{
	Use:   "run NAME [ARGS...]",
	Short: "Build, then run one executable",
	Long: "Build the configured executables, then run NAME with the remaining\n" +
		"arguments. Flags after NAME are passed to the executable. The exit\n" +
		"status of the executable becomes the exit status of " + appName + ".",
	Args: cobra.MinimumNArgs(1),
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveDefault
		}
		reg, err := acquire(cmd)
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
		var names []string
		for _, name := range reg.Names() {
			if strings.HasPrefix(name, toComplete) {
				names = append(names, name)
			}
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := parseEnv(flagRunEnv)
		if err != nil {
			return err
		}
		reg, err := acquire(cmd)
		if err != nil {
			return err
		}
		return runExecutable(reg, runSpec{Name: args[0], Args: args[1:], Env: env, Dir: flagRunDir})
	},
}

func init() {
	runCmd.Flags().SetInterspersed(false)
	runCmd.Flags().StringArrayVarP(&flagRunEnv, "env", "e", nil, "extra environment variable KEY=VALUE (repeatable)")
	runCmd.Flags().StringVar(&flagRunDir, "dir", "", "working directory for the executable")
}
