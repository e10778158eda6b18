package parser

import (
	"regexp"

	"go.uber.org/zap"

	"github.com/seitarof/gen-db/internal/catalog"
)

// DefaultValueField is the designated-initializer member whose value is
// read as a field reference.
const DefaultValueField = "pValue"

// Parser extracts struct definitions, variable declarations and access
// paths from C text.
type Parser interface {
	ParseHeader(src string) *catalog.Catalog
	ParseUsage(src string) (*catalog.Catalog, *catalog.PathSet)
}

// Option customizes a parser.
type Option func(*parserImpl)

// WithLogger sets the diagnostic logger.
func WithLogger(l *zap.Logger) Option {
	return func(p *parserImpl) {
		if l != nil {
			p.log = l
		}
	}
}

// WithValueField changes the initializer member that introduces a field
// reference (".pValue = &x.y,").
func WithValueField(name string) Option {
	return func(p *parserImpl) {
		if name != "" {
			p.valueField = name
		}
	}
}

// WithTypePattern restricts which type identifiers count as struct types
// in variable declarations.
func WithTypePattern(re *regexp.Regexp) Option {
	return func(p *parserImpl) {
		p.typePattern = re
	}
}

type parserImpl struct {
	log         *zap.Logger
	valueField  string
	typePattern *regexp.Regexp
}

// New returns default parser.
func New(opts ...Option) Parser {
	p := &parserImpl{
		log:        zap.NewNop(),
		valueField: DefaultValueField,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *parserImpl) ParseHeader(src string) *catalog.Catalog {
	c := catalog.New()
	for _, def := range p.extractDefinitions(Tokenize(src)) {
		if !c.AddDefinition(def) {
			p.log.Debug("struct has no usable fields, skipped", zap.String("struct", def.Name))
		}
	}
	return c
}

func (p *parserImpl) ParseUsage(src string) (*catalog.Catalog, *catalog.PathSet) {
	toks := Tokenize(src)
	c := catalog.New()
	for _, v := range p.extractVariables(toks) {
		c.AddVariable(v)
	}
	return c, p.extractPaths(src, toks)
}
