package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/afero"

	"github.com/seitarof/gen-db/internal/cli"
	"github.com/seitarof/gen-db/internal/generator"
	"github.com/seitarof/gen-db/internal/parser"
	"github.com/seitarof/gen-db/internal/resolver"
)

var version = "dev"

func main() {
	fs := afero.NewOsFs()

	cfg, err := cli.ParseArgs(fs, os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	if cfg.ShowVersion {
		fmt.Println(version)
		return
	}

	logger, err := cli.NewLogger(cfg.Verbose)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	typePattern, err := cfg.CompiledTypePattern()
	if err != nil {
		log.Fatal(err)
	}

	p := parser.New(
		parser.WithLogger(logger.Named("parser")),
		parser.WithValueField(cfg.ValueField),
		parser.WithTypePattern(typePattern),
	)
	r := resolver.New(logger.Named("resolver"))
	f := generator.NewGoimportsFormatter()
	w := generator.NewFileWriter(fs)
	g := generator.New(f, w)

	runner := cli.NewRunner(fs, p, r, g, logger)
	if err := runner.Run(cfg); err != nil {
		log.Fatal(err)
	}
}
