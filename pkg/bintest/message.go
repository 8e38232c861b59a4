package bintest

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"iter"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/tidwall/gjson"
)

const reasonCompilerArtifact = "compiler-artifact"

// maxMessageSize bounds a single JSON record. Artifact records list every
// output file and feature of a target, so they can get long.
const maxMessageSize = 16 << 20

// Artifact is one compiled target that produced an executable.
type Artifact struct {
	Name      string   // executable name used for lookups
	Path      string   // absolute path of the executable
	PackageID string   // cargo package id
	Target    string   // cargo target name
	Kinds     []string // target kinds, e.g. ["bin"] or ["example"]
	Fresh     bool     // true when cargo reused a previous build
}

// ReadArtifacts reads cargo's line-delimited JSON messages from r and yields
// every compiler artifact that has an executable. Other records are skipped.
//
// The sequence stops at the first line that is not a JSON object with a
// "reason", yielding an error wrapping ErrMalformedMessage, or at the first
// read error.
func ReadArtifacts(r io.Reader) iter.Seq2[Artifact, error] {
	return func(yield func(Artifact, error) bool) {
		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 0, 64<<10), maxMessageSize)

		lineNo := 0
		for scanner.Scan() {
			lineNo++
			line := bytes.TrimSpace(scanner.Bytes())
			if len(line) == 0 {
				continue
			}

			artifact, ok, err := parseMessage(line)
			if err != nil {
				yield(Artifact{}, fmt.Errorf("line %d: %w", lineNo, err))
				return
			}
			if !ok {
				continue
			}
			if !yield(artifact, nil) {
				return
			}
		}
		if err := scanner.Err(); err != nil {
			yield(Artifact{}, fmt.Errorf("reading build messages: %w", err))
		}
	}
}

// parseMessage decodes one record. ok is false for records that are valid but
// carry no executable.
func parseMessage(line []byte) (Artifact, bool, error) {
	if !gjson.ValidBytes(line) {
		return Artifact{}, false, fmt.Errorf("%w: not JSON: %s", ErrMalformedMessage, truncate(line))
	}
	msg := gjson.ParseBytes(line)
	if !msg.IsObject() {
		return Artifact{}, false, fmt.Errorf("%w: not an object: %s", ErrMalformedMessage, truncate(line))
	}
	reason := msg.Get("reason")
	if reason.Type != gjson.String {
		return Artifact{}, false, fmt.Errorf("%w: missing reason: %s", ErrMalformedMessage, truncate(line))
	}
	if reason.Str != reasonCompilerArtifact {
		return Artifact{}, false, nil
	}

	exe := msg.Get("executable")
	switch {
	case !exe.Exists() || exe.Type == gjson.Null:
		// Libraries and other non-runnable targets.
		return Artifact{}, false, nil
	case exe.Type != gjson.String:
		return Artifact{}, false, fmt.Errorf("%w: executable is not a string: %s", ErrMalformedMessage, truncate(line))
	case exe.Str == "":
		return Artifact{}, false, nil
	}

	var kinds []string
	for _, k := range msg.Get("target.kind").Array() {
		kinds = append(kinds, k.String())
	}
	return Artifact{
		Name:      ExecutableName(exe.Str),
		Path:      exe.Str,
		PackageID: msg.Get("package_id").String(),
		Target:    msg.Get("target.name").String(),
		Kinds:     kinds,
		Fresh:     msg.Get("fresh").Bool(),
	}, true, nil
}

// ExecutableName returns the lookup name for an executable path: the final
// path element without the platform's executable suffix.
func ExecutableName(path string) string {
	return executableName(path, exeSuffix(runtime.GOOS))
}

func executableName(path, suffix string) string {
	name := filepath.Base(path)
	if suffix != "" && len(name) > len(suffix) && strings.EqualFold(name[len(name)-len(suffix):], suffix) {
		name = name[:len(name)-len(suffix)]
	}
	return name
}

func exeSuffix(goos string) string {
	if goos == "windows" {
		return ".exe"
	}
	return ""
}

func truncate(line []byte) string {
	const limit = 120
	if len(line) <= limit {
		return string(line)
	}
	return string(line[:limit]) + "..."
}
