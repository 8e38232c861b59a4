package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"bintest/pkg/bintest"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var flagListFormat string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Build and list executables with their paths",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := acquire(cmd)
		if err != nil {
			return err
		}
		return printExecutables(os.Stdout, reg, flagListFormat)
	},
}

func init() {
	listCmd.Flags().StringVarP(&flagListFormat, "format", "o", "text", "output format: text, json or yaml")
}

// executableEntry is the serialized form of one registry entry.
type executableEntry struct {
	Name string `json:"name" yaml:"name"`
	Path string `json:"path" yaml:"path"`
}

func entries(reg *bintest.Registry) []executableEntry {
	out := make([]executableEntry, 0, reg.Len())
	for name, path := range reg.List() {
		out = append(out, executableEntry{Name: name, Path: path})
	}
	return out
}

// printExecutables writes the registry in the requested format. Entries are
// always in name order.
func printExecutables(w io.Writer, reg *bintest.Registry, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(entries(reg))
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(entries(reg)); err != nil {
			return err
		}
		return enc.Close()
	case "text", "":
		printTable(w, reg)
		return nil
	default:
		return fmt.Errorf("unknown format %q (available: text, json, yaml)", format)
	}
}

func printTable(w io.Writer, reg *bintest.Registry) {
	if reg.Len() == 0 {
		fmt.Fprintln(w, "no executables built")
		return
	}

	maxLen := 0
	for _, name := range reg.Names() {
		if len(name) > maxLen {
			maxLen = len(name)
		}
	}
	for name, path := range reg.List() {
		fmt.Fprintf(w, "%-*s  %s\n", maxLen, name, path)
	}
}
