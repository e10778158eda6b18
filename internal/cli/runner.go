package cli

import (
	"fmt"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/seitarof/gen-db/internal/catalog"
	"github.com/seitarof/gen-db/internal/descriptor"
	"github.com/seitarof/gen-db/internal/generator"
	"github.com/seitarof/gen-db/internal/parser"
	"github.com/seitarof/gen-db/internal/resolver"
)

// Runner orchestrates parser/resolver/generator layers.
type Runner interface {
	Run(cfg *Config) error
}

type runnerImpl struct {
	fs        afero.Fs
	parser    parser.Parser
	resolver  resolver.Resolver
	generator generator.Generator
	log       *zap.Logger
}

// NewRunner creates a default runner implementation.
func NewRunner(
	fs afero.Fs,
	p parser.Parser,
	r resolver.Resolver,
	g generator.Generator,
	log *zap.Logger,
) Runner {
	if log == nil {
		log = zap.NewNop()
	}
	return &runnerImpl{
		fs:        fs,
		parser:    p,
		resolver:  r,
		generator: g,
		log:       log,
	}
}

// Run executes a single generation cycle. Every input is read before
// anything is written.
func (r *runnerImpl) Run(cfg *Config) error {
	cat := catalog.New()
	paths := &catalog.PathSet{}

	for _, name := range cfg.HeaderFiles {
		src, err := afero.ReadFile(r.fs, name)
		if err != nil {
			return fmt.Errorf("read header: %w", err)
		}
		cat.Merge(r.parser.ParseHeader(string(src)))
	}
	for _, name := range cfg.UsageFiles {
		src, err := afero.ReadFile(r.fs, name)
		if err != nil {
			return fmt.Errorf("read usage: %w", err)
		}
		vars, refs := r.parser.ParseUsage(string(src))
		cat.Merge(vars)
		paths.Append(refs)
	}

	r.log.Debug("catalog built",
		zap.Int("structs", len(cat.Definitions())),
		zap.Int("variables", len(cat.Variables())),
		zap.Int("paths", paths.Len()))

	if paths.Len() == 0 {
		return fmt.Errorf("no field references found in %v", cfg.UsageFiles)
	}

	descriptors := descriptor.FromResolutions(r.resolver.Resolve(cat, paths))
	if err := r.generator.Generate(cfg, descriptors); err != nil {
		return fmt.Errorf("generate: %w", err)
	}
	return nil
}
