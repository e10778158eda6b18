package cli

import (
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/tools/txtar"
	"gopkg.in/yaml.v3"

	"github.com/seitarof/gen-db/internal/descriptor"
	"github.com/seitarof/gen-db/internal/generator"
	"github.com/seitarof/gen-db/internal/parser"
	"github.com/seitarof/gen-db/internal/resolver"
)

// fixtureFs unpacks a txtar archive from the repository testdata directory.
func fixtureFs(t testing.TB, name string) afero.Fs {
	t.Helper()
	ar, err := txtar.ParseFile(filepath.Join("..", "..", "testdata", name))
	if err != nil {
		t.Fatalf("ParseFile() error = %v", err)
	}
	fs := afero.NewMemMapFs()
	for _, f := range ar.Files {
		if err := fs.MkdirAll(filepath.Dir(f.Name), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := afero.WriteFile(fs, f.Name, f.Data, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return fs
}

func newIntegrationRunner(fs afero.Fs, cfg *Config, log *zap.Logger) (Runner, error) {
	re, err := cfg.CompiledTypePattern()
	if err != nil {
		return nil, err
	}
	p := parser.New(parser.WithLogger(log), parser.WithValueField(cfg.ValueField), parser.WithTypePattern(re))
	clock := func() time.Time { return time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC) }
	g := generator.New(generator.NewGoimportsFormatter(), generator.NewFileWriter(fs), generator.WithClock(clock))
	return NewRunner(fs, p, resolver.New(log), g, log), nil
}

func readOutput(t *testing.T, fs afero.Fs, name string) string {
	t.Helper()
	b, err := afero.ReadFile(fs, name)
	if err != nil {
		t.Fatalf("ReadFile(%s) error = %v", name, err)
	}
	return string(b)
}

func TestRunner_Run_SingleStructScenario(t *testing.T) {
	fs := afero.NewMemMapFs()
	header := "typedef struct { int field1; char field2[10]; } MyStruct;\n"
	usage := "MyStruct myStructVar = {};\n{ .pValue = &myStructVar.field1, },\n"
	if err := afero.WriteFile(fs, "data.h", []byte(header), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := afero.WriteFile(fs, "data.c", []byte(usage), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := ParseArgs(fs, []string{"-H", "data.h", "-u", "data.c", "-o", "out", "--manifest", "yaml"})
	if err != nil {
		t.Fatalf("ParseArgs() error = %v", err)
	}
	runner, err := newIntegrationRunner(fs, cfg, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	if err := runner.Run(cfg); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	var manifest struct {
		Descriptors []descriptor.Descriptor `yaml:"descriptors"`
	}
	if err := yaml.Unmarshal([]byte(readOutput(t, fs, "out/db_descriptors.yaml")), &manifest); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if len(manifest.Descriptors) != 1 || manifest.Descriptors[0].TypeName != "int" {
		t.Fatalf("unexpected descriptors: %#v", manifest.Descriptors)
	}

	genC := readOutput(t, fs, "out/db_gen.c")
	if !strings.Contains(genC, "sizeof(int);") {
		t.Fatalf("db_gen.c does not size the int field\n%s", genC)
	}
}

func TestRunner_Run_ChargerFixture(t *testing.T) {
	fs := fixtureFs(t, "charger.txtar")
	core, logs := observer.New(zapcore.DebugLevel)

	cfg, err := ParseArgs(fs, []string{"--config", "gen-db.yaml"})
	if err != nil {
		t.Fatalf("ParseArgs() error = %v", err)
	}
	runner, err := newIntegrationRunner(fs, cfg, zap.New(core))
	if err != nil {
		t.Fatal(err)
	}
	if err := runner.Run(cfg); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	genC := readOutput(t, fs, "gen/db_gen.c")
	wantCases := []string{"u16", "u16", "char[16]", "u8", "u8[12]", "u32"}
	for i, typ := range wantCases {
		re := regexp.MustCompile(`case ` + regexp.QuoteMeta(string(rune('0'+i))) + `:\s+pData->u16Bytes = sizeof\(` + regexp.QuoteMeta(typ) + `\);`)
		if !re.MatchString(genC) {
			t.Fatalf("db_gen.c missing case %d sizeof(%s)\n%s", i, typ, genC)
		}
	}

	apiH := readOutput(t, fs, "gen/db_data_api.h")
	checks := []string{
		"void sDbGetConfigLimitMaxVoltage(u16* pData);",
		"void sDbGetConfigLimitMaxCurrent(u16* pData);",
		"void sDbGetConfigName(char* pData);",
		"void sDbGetDeviceMode(u8* pData);",
		"void sDbSetDeviceSerial(u8* pDataNew);",
		"void sDbSetConfigFlags(u32* pDataNew);",
	}
	for _, check := range checks {
		if !strings.Contains(apiH, check) {
			t.Fatalf("db_data_api.h does not contain %q\n%s", check, apiH)
		}
	}

	if ok, _ := afero.Exists(fs, "gen/db_descriptors.yaml"); !ok {
		t.Fatal("yaml manifest not written")
	}
	if n := logs.FilterMessage("declaration type does not match pattern").Len(); n != 1 {
		t.Fatalf("type pattern rejections = %d, want 1", n)
	}
	if n := logs.FilterMessage("access path not fully resolved").Len(); n != 0 {
		t.Fatalf("unexpected unresolved paths: %d", n)
	}
}

func TestRunner_Run_UnresolvedPathsStillGenerate(t *testing.T) {
	fs := afero.NewMemMapFs()
	header := "typedef struct { u8 u8A; } stA_t;\n"
	usage := "stA_t stA = {0};\n" +
		"{ .pValue = &stB.u8A, },\n" +
		"{ .pValue = &stA.u8Nope, },\n" +
		"{ .pValue = &stA.u8A, },\n"
	if err := afero.WriteFile(fs, "a.h", []byte(header), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := afero.WriteFile(fs, "a.c", []byte(usage), 0o644); err != nil {
		t.Fatal(err)
	}
	core, logs := observer.New(zapcore.WarnLevel)

	cfg := &Config{HeaderFiles: []string{"a.h"}, UsageFiles: []string{"a.c"}, OutDir: "out", ValueField: "pValue"}
	runner, err := newIntegrationRunner(fs, cfg, zap.New(core))
	if err != nil {
		t.Fatal(err)
	}
	if err := runner.Run(cfg); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	genC := readOutput(t, fs, "out/db_gen.c")
	order := []string{"sizeof(Unknown)", "sizeof(stA_t)", "sizeof(u8)"}
	last := -1
	for _, s := range order {
		idx := strings.Index(genC, s)
		if idx <= last {
			t.Fatalf("%q missing or out of order\n%s", s, genC)
		}
		last = idx
	}
	if n := logs.Len(); n != 2 {
		t.Fatalf("warnings = %d, want 2", n)
	}
}
