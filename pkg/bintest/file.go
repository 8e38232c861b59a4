package bintest

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// File is the YAML form of a Config, as stored in bintest.yaml. Unset fields
// keep the defaults of With.
type File struct {
	Workspace  *bool    `yaml:"workspace,omitempty"`
	Release    *bool    `yaml:"release,omitempty"`
	Offline    *bool    `yaml:"offline,omitempty"`
	AllTargets *bool    `yaml:"all_targets,omitempty"`
	Features   *string  `yaml:"features,omitempty"`
	Profile    *string  `yaml:"profile,omitempty"`
	Binaries   []string `yaml:"binaries,omitempty"`
	Examples   []string `yaml:"examples,omitempty"`
	Quiet      *bool    `yaml:"quiet,omitempty"`
}

// LoadFile reads a configuration file. Unknown keys are an error.
func LoadFile(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("config file %s: %w", path, err)
	}
	f, err := ParseFile(data)
	if err != nil {
		return File{}, fmt.Errorf("config file %s: %w", path, err)
	}
	return f, nil
}

// ParseFile decodes a configuration document.
func ParseFile(data []byte) (File, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return File{}, err
	}
	return f, nil
}

// LoadConfig reads a configuration file and converts it to a Config.
func LoadConfig(path string) (Config, error) {
	f, err := LoadFile(path)
	if err != nil {
		return Config{}, err
	}
	return f.Config(), nil
}

// Overlay returns f with every field that is set in o replaced by o's value.
func (f File) Overlay(o File) File {
	if o.Workspace != nil {
		f.Workspace = o.Workspace
	}
	if o.Release != nil {
		f.Release = o.Release
	}
	if o.Offline != nil {
		f.Offline = o.Offline
	}
	if o.AllTargets != nil {
		f.AllTargets = o.AllTargets
	}
	if o.Features != nil {
		f.Features = o.Features
	}
	if o.Profile != nil {
		f.Profile = o.Profile
	}
	if o.Binaries != nil {
		f.Binaries = o.Binaries
	}
	if o.Examples != nil {
		f.Examples = o.Examples
	}
	if o.Quiet != nil {
		f.Quiet = o.Quiet
	}
	return f
}

// Config converts the file to a Config.
func (f File) Config() Config {
	c := With()
	if isTrue(f.Workspace) {
		c = c.Workspace()
	}
	if f.Release != nil {
		if *f.Release {
			c = c.Release()
		} else {
			c = c.Debug()
		}
	}
	if isTrue(f.Offline) {
		c = c.Offline()
	}
	if isTrue(f.AllTargets) {
		c = c.AllTargets()
	}
	if f.Features != nil {
		c = c.Features(*f.Features)
	}
	if f.Profile != nil {
		c = c.Profile(*f.Profile)
	}
	if f.Binaries != nil {
		c = c.Binaries(f.Binaries...)
	}
	if f.Examples != nil {
		c = c.Examples(f.Examples...)
	}
	if isTrue(f.Quiet) {
		c = c.Quiet()
	}
	return c
}

// Marshal encodes the file as YAML.
func (f File) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(f); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func isTrue(b *bool) bool { return b != nil && *b }
