package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"bintest/pkg/bintest"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"
)

const shellHelp = "  list              show executables and paths\n" +
	"  path NAME         print the path of NAME\n" +
	"  run NAME [ARGS]   run NAME with ARGS\n" +
	"  NAME [ARGS]       same as run NAME [ARGS]\n" +
	"  help              show this help\n" +
	"  exit              leave the shell"

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Interactive prompt over the built executables",
	Long:  "Build once, then read commands from a prompt with tab completion:\n\n" + shellHelp,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := acquire(cmd)
		if err != nil {
			return err
		}
		return runShell(reg)
	},
}

// shellLine is one parsed prompt line.
type shellLine struct {
	Verb string
	Name string
	Args []string
}

// parseShellLine splits a prompt line into words. Single and double quotes
// group words; a backslash escapes the next character outside single quotes.
func parseShellLine(line string) (shellLine, error) {
	words, err := splitWords(line)
	if err != nil {
		return shellLine{}, err
	}
	if len(words) == 0 {
		return shellLine{}, nil
	}
	sl := shellLine{Verb: words[0]}
	if len(words) > 1 {
		sl.Name = words[1]
	}
	if len(words) > 2 {
		sl.Args = words[2:]
	}
	return sl, nil
}

func splitWords(line string) ([]string, error) {
	var (
		words   []string
		cur     strings.Builder
		inWord  bool
		quote   rune
		escaped bool
	)
	for _, r := range line {
		switch {
		case escaped:
			cur.WriteRune(r)
			escaped = false
		case r == '\\' && quote != '\'':
			escaped = true
			inWord = true
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				cur.WriteRune(r)
			}
		case r == '\'' || r == '"':
			quote = r
			inWord = true
		case r == ' ' || r == '\t':
			if inWord {
				words = append(words, cur.String())
				cur.Reset()
				inWord = false
			}
		default:
			cur.WriteRune(r)
			inWord = true
		}
	}
	if quote != 0 {
		return nil, fmt.Errorf("unterminated %c quote", quote)
	}
	if escaped {
		return nil, errors.New("trailing backslash")
	}
	if inWord {
		words = append(words, cur.String())
	}
	return words, nil
}

func shellCompleter(reg *bintest.Registry) *readline.PrefixCompleter {
	names := func(string) []string { return reg.Names() }
	items := []readline.PrefixCompleterInterface{
		readline.PcItem("list"),
		readline.PcItem("path", readline.PcItemDynamic(names)),
		readline.PcItem("run", readline.PcItemDynamic(names)),
		readline.PcItem("help"),
		readline.PcItem("exit"),
	}
	for _, name := range reg.Names() {
		items = append(items, readline.PcItem(name))
	}
	return readline.NewPrefixCompleter(items...)
}

func shellHistoryFile() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	dir = filepath.Join(dir, appName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return ""
	}
	return filepath.Join(dir, "history")
}

func runShell(reg *bintest.Registry) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          appName + "> ",
		HistoryFile:     shellHistoryFile(),
		AutoComplete:    shellCompleter(reg),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("starting prompt: %w", err)
	}
	defer rl.Close()

	out := rl.Stdout()
	fmt.Fprintf(out, "%d executables built with %s. Type help for commands.\n", reg.Len(), reg.Config())

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			if line == "" {
				return nil
			}
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		sl, err := parseShellLine(line)
		if err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
			continue
		}
		done, err := dispatchShell(out, reg, sl)
		if err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
		}
		if done {
			return nil
		}
	}
}

// dispatchShell executes one prompt line. It reports true when the shell
// should exit.
func dispatchShell(out io.Writer, reg *bintest.Registry, sl shellLine) (bool, error) {
	switch sl.Verb {
	case "":
		return false, nil
	case "exit", "quit":
		return true, nil
	case "help":
		fmt.Fprintln(out, shellHelp)
		return false, nil
	case "list":
		return false, printExecutables(out, reg, "text")
	case "path":
		if sl.Name == "" {
			return false, errors.New("usage: path NAME")
		}
		path, err := reg.Executable(sl.Name)
		if err != nil {
			return false, err
		}
		fmt.Fprintln(out, path)
		return false, nil
	case "run":
		if sl.Name == "" {
			return false, errors.New("usage: run NAME [ARGS...]")
		}
		return false, runExecutable(reg, runSpec{Name: sl.Name, Args: sl.Args})
	default:
		if _, ok := reg.Path(sl.Verb); ok {
			args := sl.Args
			if sl.Name != "" {
				args = append([]string{sl.Name}, args...)
			}
			return false, runExecutable(reg, runSpec{Name: sl.Verb, Args: args})
		}
		return false, fmt.Errorf("unknown command %q (type help)", sl.Verb)
	}
}
