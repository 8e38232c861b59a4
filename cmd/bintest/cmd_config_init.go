package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"bintest/pkg/bintest"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

const configInitHeader = "# bintest build configuration\n" +
	"# ─────────────────────────────────────────────────────────────────────────────\n" +
	"# Options passed to `cargo build --message-format json`. Command-line flags\n" +
	"# override the values here. Remove a key to keep the default.\n" +
	"# Inspect the result:  bintest config show\n" +
	"# ─────────────────────────────────────────────────────────────────────────────\n\n"

var (
	flagInitForce       bool
	flagInitOutput      string
	flagInitInteractive bool
)

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter " + defaultConfigFile,
	Long: "Create a build configuration file from the current command-line flags,\n" +
		"or from a short questionnaire with --interactive.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := flagsToFile(cmd.Flags())
		if err != nil {
			return err
		}

		if flagInitInteractive {
			answers := answersFromFile(f)
			if err := initForm(&answers).Run(); err != nil {
				if errors.Is(err, huh.ErrUserAborted) {
					return nil
				}
				return err
			}
			f = answers.toFile()
		}

		data, err := f.Marshal()
		if err != nil {
			return err
		}
		if err := writeInitFile(flagInitOutput, configInitHeader, data, flagInitForce); err != nil {
			return err
		}

		fmt.Fprintf(os.Stderr, "initialised %s\n", flagInitOutput)
		fmt.Fprintf(os.Stderr, "  cargo flags: %s\n", f.Config())
		fmt.Fprintf(os.Stderr, "\nRun `%s list` to build and list executables.\n", appName)
		return nil
	},
}

func init() {
	configInitCmd.Flags().BoolVar(&flagInitForce, "force", false, "overwrite an existing file")
	configInitCmd.Flags().StringVar(&flagInitOutput, "output", defaultConfigFile, "file to write")
	configInitCmd.Flags().BoolVarP(&flagInitInteractive, "interactive", "i", false, "ask for each option")
}

// initAnswers holds the questionnaire state.
type initAnswers struct {
	Mode       string // "default", "release" or "debug"
	Workspace  bool
	Offline    bool
	AllTargets bool
	Quiet      bool
	Features   string
	Profile    string
	Binaries   string
	Examples   string
}

func answersFromFile(f bintest.File) initAnswers {
	a := initAnswers{Mode: "default"}
	if f.Release != nil {
		if *f.Release {
			a.Mode = "release"
		} else {
			a.Mode = "debug"
		}
	}
	a.Workspace = f.Workspace != nil && *f.Workspace
	a.Offline = f.Offline != nil && *f.Offline
	a.AllTargets = f.AllTargets != nil && *f.AllTargets
	a.Quiet = f.Quiet != nil && *f.Quiet
	if f.Features != nil {
		a.Features = *f.Features
	}
	if f.Profile != nil {
		a.Profile = *f.Profile
	}
	a.Binaries = strings.Join(f.Binaries, ", ")
	a.Examples = strings.Join(f.Examples, ", ")
	return a
}

// toFile keeps only the answers that differ from the defaults.
func (a initAnswers) toFile() bintest.File {
	var f bintest.File
	switch a.Mode {
	case "release":
		f.Release = ptr(true)
	case "debug":
		f.Release = ptr(false)
	}
	if a.Workspace {
		f.Workspace = ptr(true)
	}
	if a.Offline {
		f.Offline = ptr(true)
	}
	if a.AllTargets {
		f.AllTargets = ptr(true)
	}
	if a.Quiet {
		f.Quiet = ptr(true)
	}
	if s := strings.TrimSpace(a.Features); s != "" {
		f.Features = &s
	}
	if s := strings.TrimSpace(a.Profile); s != "" {
		f.Profile = &s
	}
	f.Binaries = splitList(a.Binaries)
	f.Examples = splitList(a.Examples)
	return f
}

// splitList parses a comma or space separated list. Empty input gives nil.
func splitList(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' })
	if len(fields) == 0 {
		return nil
	}
	return fields
}

func ptr[T any](v T) *T { return &v }

func initForm(a *initAnswers) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Build profile").
				Description("default follows the optimization level of the test binary").
				Options(
					huh.NewOption("default", "default"),
					huh.NewOption("release", "release"),
					huh.NewOption("debug", "debug"),
				).
				Value(&a.Mode),
			huh.NewInput().
				Title("Custom profile").
				Description("leave empty for none").
				Value(&a.Profile),
			huh.NewInput().
				Title("Features").
				Value(&a.Features),
		),
		huh.NewGroup(
			huh.NewConfirm().Title("Build every workspace member?").Value(&a.Workspace),
			huh.NewConfirm().Title("Build all targets?").Value(&a.AllTargets),
			huh.NewConfirm().Title("Work offline?").Value(&a.Offline),
			huh.NewConfirm().Title("Hide cargo progress output?").Value(&a.Quiet),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Binaries").
				Description("comma separated, empty for all").
				Value(&a.Binaries),
			huh.NewInput().
				Title("Examples").
				Description("comma separated, empty for none").
				Value(&a.Examples),
		),
	)
}

func writeInitFile(path, header string, content []byte, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()
	if header != "" {
		fmt.Fprint(f, header)
	}
	_, err = f.Write(content)
	return err
}
