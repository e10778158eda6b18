package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"regexp"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// Config stores options for a single generation run. It can be loaded from
// a YAML file and overridden by flags.
type Config struct {
	HeaderFiles []string `yaml:"headers"`
	UsageFiles  []string `yaml:"usages"`
	OutDir      string   `yaml:"out_dir"`
	ValueField  string   `yaml:"value_field"`
	TypePattern string   `yaml:"type_pattern"`
	Manifest    string   `yaml:"manifest"`
	Package     string   `yaml:"manifest_package"`
	Verbose     bool     `yaml:"verbose"`
	ShowVersion bool     `yaml:"-"`
}

// OutputDir returns destination directory for generator layer.
func (c *Config) OutputDir() string {
	if c.OutDir == "" {
		return "."
	}
	return c.OutDir
}

// ManifestFormat returns the descriptor manifest format, "" for none.
func (c *Config) ManifestFormat() string {
	return c.Manifest
}

// ManifestPackage returns the package name of a Go manifest.
func (c *Config) ManifestPackage() string {
	return c.Package
}

// CompiledTypePattern returns the declaration type filter, nil when unset.
func (c *Config) CompiledTypePattern() (*regexp.Regexp, error) {
	if c.TypePattern == "" {
		return nil, nil
	}
	re, err := regexp.Compile(c.TypePattern)
	if err != nil {
		return nil, fmt.Errorf("type pattern %q: %w", c.TypePattern, err)
	}
	return re, nil
}

// LoadConfigFile reads a YAML config. Unknown keys are rejected.
func LoadConfigFile(fs afero.Fs, path string) (*Config, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := &Config{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
