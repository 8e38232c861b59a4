package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"bintest/pkg/bintest"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// appName is the single source of truth for the application name.
const appName = "bintest"

const defaultConfigFile = appName + ".yaml"

var envConfig = strings.ToUpper(appName) + "_CONFIG"

var (
	flagConfig    string
	flagLogLevel  string
	flagLogFormat string

	flagWorkspace  bool
	flagRelease    bool
	flagDebug      bool
	flagOffline    bool
	flagAllTargets bool
	flagQuiet      bool
	flagFeatures   string
	flagProfile    string
	flagBinaries   []string
	flagExamples   []string
)

func registerBuildFlags(cmd *cobra.Command) {
	f := cmd.PersistentFlags()
	f.StringVarP(&flagConfig, "config", "c", "",
		"build configuration file (default: $"+envConfig+", then ./"+defaultConfigFile+" if present)")
	f.StringVar(&flagLogLevel, "log-level", "warn", "log level: debug, info, warn, error")
	f.StringVar(&flagLogFormat, "log-format", "text", "log format: text or json")

	f.BoolVar(&flagWorkspace, "workspace", false, "build every workspace member")
	f.BoolVar(&flagRelease, "release", false, "build with the release profile")
	f.BoolVar(&flagDebug, "debug", false, "build with the dev profile")
	f.BoolVar(&flagOffline, "offline", false, "run cargo without network access")
	f.BoolVar(&flagAllTargets, "all-targets", false, "build all targets")
	f.BoolVarP(&flagQuiet, "quiet", "q", false, "suppress cargo progress output")
	f.StringVar(&flagFeatures, "features", "", "features to activate")
	f.StringVar(&flagProfile, "profile", "", "build with the named profile")
	f.StringArrayVar(&flagBinaries, "bin", nil, "build only this binary (repeatable)")
	f.StringArrayVar(&flagExamples, "example", nil, "build only this example (repeatable)")
}

// resolveConfigPath returns the configuration file to load.
// Priority: --config > $BINTEST_CONFIG > ./bintest.yaml. An empty path means
// no file applies.
func resolveConfigPath(flagVal string) string {
	if flagVal != "" {
		return flagVal
	}
	if v := os.Getenv(envConfig); v != "" {
		return v
	}
	if _, err := os.Stat(defaultConfigFile); err == nil {
		return defaultConfigFile
	}
	return ""
}

// flagsToFile collects the build flags that were set on the command line.
func flagsToFile(flags *pflag.FlagSet) (bintest.File, error) {
	var f bintest.File
	if flagDebug && flags.Changed("release") && flagRelease {
		return f, errors.New("--release and --debug are mutually exclusive")
	}

	if flags.Changed("workspace") {
		f.Workspace = &flagWorkspace
	}
	if flags.Changed("release") {
		f.Release = &flagRelease
	}
	// --debug=false leaves the mode alone.
	if flags.Changed("debug") && flagDebug {
		release := false
		f.Release = &release
	}
	if flags.Changed("offline") {
		f.Offline = &flagOffline
	}
	if flags.Changed("all-targets") {
		f.AllTargets = &flagAllTargets
	}
	if flags.Changed("quiet") {
		f.Quiet = &flagQuiet
	}
	if flags.Changed("features") {
		f.Features = &flagFeatures
	}
	if flags.Changed("profile") {
		f.Profile = &flagProfile
	}
	if flags.Changed("bin") {
		f.Binaries = flagBinaries
	}
	if flags.Changed("example") {
		f.Examples = flagExamples
	}
	return f, nil
}

// loadBuildFile merges the configuration file with the command-line flags.
func loadBuildFile(cmd *cobra.Command) (bintest.File, error) {
	var base bintest.File
	if path := resolveConfigPath(flagConfig); path != "" {
		f, err := bintest.LoadFile(path)
		if err != nil {
			return bintest.File{}, err
		}
		base = f
	}
	overrides, err := flagsToFile(cmd.Flags())
	if err != nil {
		return bintest.File{}, err
	}
	return base.Overlay(overrides), nil
}

func loadConfig(cmd *cobra.Command) (bintest.Config, error) {
	f, err := loadBuildFile(cmd)
	if err != nil {
		return bintest.Config{}, err
	}
	return f.Config(), nil
}

// acquire builds the configured executables.
func acquire(cmd *cobra.Command) (*bintest.Registry, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	reg, err := cfg.Acquire()
	if err != nil {
		return nil, fmt.Errorf("building executables: %w", err)
	}
	return reg, nil
}
