package main

import (
	"errors"
	"fmt"

	"bintest/pkg/bintest"

	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/spf13/cobra"
)

var pickCmd = &cobra.Command{
	Use:   "pick [ARGS...]",
	Short: "Fuzzy-select an executable and run it",
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := acquire(cmd)
		if err != nil {
			return err
		}
		if reg.Len() == 0 {
			return errors.New("no executables built")
		}
		name, err := fzfSelect(reg)
		if err != nil {
			if errors.Is(err, fuzzyfinder.ErrAbort) {
				return nil
			}
			return err
		}
		return runExecutable(reg, runSpec{Name: name, Args: args})
	},
}

func init() {
	pickCmd.Flags().SetInterspersed(false)
}

// fzfSelect lets the user pick an executable by name; the preview pane shows
// its path.
func fzfSelect(reg *bintest.Registry) (string, error) {
	names := reg.Names()
	idx, err := fuzzyfinder.Find(
		names,
		func(i int) string {
			return names[i]
		},
		fuzzyfinder.WithPromptString("Select executable: "),
		fuzzyfinder.WithPreviewWindow(func(i, w, h int) string {
			if i == -1 {
				return ""
			}
			path, _ := reg.Path(names[i])
			return fmt.Sprintf("%s\n\n%s", names[i], path)
		}),
	)
	if err != nil {
		return "", err
	}
	return names[idx], nil
}
