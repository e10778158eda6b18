package generator

import (
	"bytes"
	"embed"
	"fmt"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"github.com/spf13/afero"
	"go.uber.org/multierr"
	"golang.org/x/tools/imports"
	"gopkg.in/yaml.v3"

	"github.com/seitarof/gen-db/internal/descriptor"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Output file names, in generation order.
const (
	DbGenSource  = "db_gen.c"
	DbGenHeader  = "db_gen.h"
	APISource    = "db_data_api.c"
	APIHeader    = "db_data_api.h"
	YAMLManifest = "db_descriptors.yaml"
	GoManifest   = "db_descriptors_gen.go"
)

// Manifest formats.
const (
	ManifestNone = ""
	ManifestYAML = "yaml"
	ManifestGo   = "go"
)

// TimestampLayout is the layout of the @date stamp in generated comments.
const TimestampLayout = "2006-01-02 15:04"

// Generator writes accessor sources for a descriptor table.
type Generator interface {
	Generate(cfg Config, descriptors []descriptor.Descriptor) error
}

// Config is the minimum config contract required by generator.
type Config interface {
	OutputDir() string
	ManifestFormat() string
	ManifestPackage() string
}

// Formatter formats generated Go code and organizes imports.
type Formatter interface {
	Format(filename string, src []byte) ([]byte, error)
}

// FileWriter writes generated code.
type FileWriter interface {
	Write(filename string, data []byte) error
}

// Option customizes a generator.
type Option func(*generatorImpl)

// WithClock overrides the time source of generated timestamps.
func WithClock(now func() time.Time) Option {
	return func(g *generatorImpl) {
		if now != nil {
			g.now = now
		}
	}
}

type generatorImpl struct {
	formatter Formatter
	writer    FileWriter
	tmpl      *template.Template
	now       func() time.Time
}

type goimportsFormatter struct{}

type fileWriter struct {
	fs afero.Fs
}

type templateData struct {
	Timestamp string
	Package   string
	Units     []unitTemplateData
}

type unitTemplateData struct {
	Index     int
	Name      string
	TypeName  string
	ValueType string
	ArraySize string
	IsArray   bool
	Shadow    string
}

type renderedFile struct {
	name string
	data []byte
}

// New creates a code generator.
func New(f Formatter, w FileWriter, opts ...Option) Generator {
	tmpl := template.Must(template.New("").ParseFS(templateFS, "templates/*.tmpl"))
	g := &generatorImpl{formatter: f, writer: w, tmpl: tmpl, now: time.Now}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// NewGoimportsFormatter creates a formatter backed by goimports.
func NewGoimportsFormatter() Formatter {
	return &goimportsFormatter{}
}

// NewFileWriter creates a writer on fs that creates missing directories.
func NewFileWriter(fs afero.Fs) FileWriter {
	return &fileWriter{fs: fs}
}

func (g *generatorImpl) Generate(cfg Config, descriptors []descriptor.Descriptor) error {
	if len(descriptors) == 0 {
		return fmt.Errorf("no descriptors")
	}

	data := buildTemplateData(descriptors, cfg.ManifestPackage(), g.now())
	files := make([]renderedFile, 0, 5)
	for _, name := range []string{DbGenSource, DbGenHeader, APISource, APIHeader} {
		out, err := g.render(name+".tmpl", data)
		if err != nil {
			return err
		}
		files = append(files, renderedFile{name: name, data: out})
	}

	switch strings.ToLower(cfg.ManifestFormat()) {
	case ManifestNone:
	case ManifestYAML:
		out, err := yaml.Marshal(struct {
			Generated   string                  `yaml:"generated"`
			Descriptors []descriptor.Descriptor `yaml:"descriptors"`
		}{data.Timestamp, descriptors})
		if err != nil {
			return fmt.Errorf("yaml manifest: %w", err)
		}
		files = append(files, renderedFile{name: YAMLManifest, data: out})
	case ManifestGo:
		out, err := g.render("descriptors.go.tmpl", data)
		if err != nil {
			return err
		}
		filename := filepath.Join(cfg.OutputDir(), GoManifest)
		formatted, err := g.formatter.Format(filename, out)
		if err != nil {
			return fmt.Errorf("format: %w", err)
		}
		files = append(files, renderedFile{name: GoManifest, data: formatted})
	default:
		return fmt.Errorf("unknown manifest format %q", cfg.ManifestFormat())
	}

	var errs error
	for _, f := range files {
		if err := g.writer.Write(filepath.Join(cfg.OutputDir(), f.name), f.data); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("write %s: %w", f.name, err))
		}
	}
	return errs
}

func (g *generatorImpl) render(name string, data templateData) ([]byte, error) {
	var buf bytes.Buffer
	if err := g.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, fmt.Errorf("template %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

func (f *goimportsFormatter) Format(filename string, src []byte) ([]byte, error) {
	return imports.Process(filename, src, nil)
}

func (w *fileWriter) Write(filename string, data []byte) error {
	if err := w.fs.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
		return err
	}
	return afero.WriteFile(w.fs, filename, data, 0o644)
}

func buildTemplateData(descriptors []descriptor.Descriptor, pkg string, now time.Time) templateData {
	if pkg == "" {
		pkg = "dbdesc"
	}
	units := make([]unitTemplateData, 0, len(descriptors))
	for _, d := range descriptors {
		name := d.Name
		if name == "" {
			name = fmt.Sprintf("Data%d", d.Index)
		}
		units = append(units, unitTemplateData{
			Index:     d.Index,
			Name:      name,
			TypeName:  d.TypeName,
			ValueType: d.BaseType(),
			ArraySize: d.ArraySize(),
			IsArray:   d.IsArray(),
			Shadow:    "old" + name,
		})
	}
	return templateData{
		Timestamp: now.Format(TimestampLayout),
		Package:   pkg,
		Units:     units,
	}
}
