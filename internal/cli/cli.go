package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/pflag"

	"github.com/seitarof/gen-db/internal/generator"
	"github.com/seitarof/gen-db/internal/parser"
)

// ParseArgs parses command line arguments into Config. When --config is
// given the file is loaded first and explicitly set flags override it.
func ParseArgs(fsys afero.Fs, args []string) (*Config, error) {
	flags := &Config{}
	var configPath string

	fs := pflag.NewFlagSet("gen-db", pflag.ContinueOnError)
	fs.StringVarP(&configPath, "config", "c", "", "YAML config file")
	fs.StringArrayVarP(&flags.HeaderFiles, "header", "H", nil, "header file with typedef struct declarations (repeatable)")
	fs.StringArrayVarP(&flags.UsageFiles, "usage", "u", nil, "usage file with variable declarations and field references (repeatable)")
	fs.StringVarP(&flags.OutDir, "out-dir", "o", "", "output directory")
	fs.StringVar(&flags.ValueField, "value-field", parser.DefaultValueField, "initializer member holding the field reference")
	fs.StringVar(&flags.TypePattern, "type-pattern", "", "regexp a declaration type must match to register a variable")
	fs.StringVar(&flags.Manifest, "manifest", "", "also write a descriptor manifest: yaml or go")
	fs.StringVar(&flags.Package, "manifest-package", "", "package name of the go manifest")
	fs.BoolVar(&flags.Verbose, "verbose", false, "log skipped declarations and unresolved paths")
	fs.BoolVarP(&flags.ShowVersion, "version", "v", false, "show version")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if flags.ShowVersion {
		return flags, nil
	}

	cfg := &Config{}
	if configPath != "" {
		loaded, err := LoadConfigFile(fsys, configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	overrideChanged(fs, cfg, flags)
	if cfg.ValueField == "" {
		cfg.ValueField = parser.DefaultValueField
	}

	if len(cfg.HeaderFiles) == 0 {
		return nil, fmt.Errorf("--header is required")
	}
	if len(cfg.UsageFiles) == 0 {
		return nil, fmt.Errorf("--usage is required")
	}
	if _, err := cfg.CompiledTypePattern(); err != nil {
		return nil, err
	}
	cfg.Manifest = strings.ToLower(strings.TrimSpace(cfg.Manifest))
	switch cfg.Manifest {
	case generator.ManifestNone, generator.ManifestYAML, generator.ManifestGo:
	default:
		return nil, fmt.Errorf("--manifest must be %q or %q, got %q", generator.ManifestYAML, generator.ManifestGo, cfg.Manifest)
	}
	return cfg, nil
}

func overrideChanged(fs *pflag.FlagSet, cfg, flags *Config) {
	if fs.Changed("header") {
		cfg.HeaderFiles = splitCommaList(flags.HeaderFiles)
	}
	if fs.Changed("usage") {
		cfg.UsageFiles = splitCommaList(flags.UsageFiles)
	}
	if fs.Changed("out-dir") {
		cfg.OutDir = flags.OutDir
	}
	if fs.Changed("value-field") {
		cfg.ValueField = flags.ValueField
	}
	if fs.Changed("type-pattern") {
		cfg.TypePattern = flags.TypePattern
	}
	if fs.Changed("manifest") {
		cfg.Manifest = flags.Manifest
	}
	if fs.Changed("manifest-package") {
		cfg.Package = flags.Package
	}
	if fs.Changed("verbose") {
		cfg.Verbose = flags.Verbose
	}
}

// splitCommaList flattens "a.h,b.h" style values.
func splitCommaList(raw []string) []string {
	out := make([]string, 0, len(raw))
	for _, r := range raw {
		for _, p := range strings.Split(r, ",") {
			p = strings.TrimSpace(p)
			if p == "" {
				continue
			}
			out = append(out, p)
		}
	}
	return out
}
