package commands

import (
	"context"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/teranos/dojodts/am"
	"github.com/teranos/dojodts/api"
	"github.com/teranos/dojodts/classify"
	"github.com/teranos/dojodts/errors"
	"github.com/teranos/dojodts/logger"
	"github.com/teranos/dojodts/patch"
	"github.com/teranos/dojodts/typegen"
	"github.com/teranos/dojodts/typeref"
	"github.com/teranos/dojodts/verify"
	"github.com/teranos/dojodts/version"
)

// ConfigFile is set by the root --config flag; empty means the usual cascade
var ConfigFile string

// loadConfig returns the validated configuration for a command run
func loadConfig() (*am.Config, error) {
	var (
		cfg *am.Config
		err error
	)
	if ConfigFile != "" {
		cfg, err = am.LoadFromFile(ConfigFile)
	} else {
		cfg, err = am.Load()
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load config")
	}

	// Commands override fields; keep the cached config untouched
	copied := *cfg
	return &copied, nil
}

// verbosity returns the -v count of the running command
func verbosity(cmd *cobra.Command) int {
	v, _ := cmd.Flags().GetCount("verbose")
	return v
}

// Pipeline holds everything one generation run needs.
type Pipeline struct {
	Config    *am.Config
	Aliases   *typeref.Dictionary
	Patches   *patch.Table
	Generator *typegen.Generator
	Extras    *typegen.Extras
	log       *zap.SugaredLogger
}

// Result is the outcome of Pipeline.Run
type Result struct {
	Files    []typegen.File
	Report   *typegen.Report
	Duration time.Duration
}

// NewPipeline validates cfg and builds the generator from it
func NewPipeline(cfg *am.Config) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.WithHint(
			errors.Wrap(err, "configuration validation failed"),
			"run 'dojodts am show' to inspect the configuration")
	}

	p := &Pipeline{Config: cfg, log: logger.ComponentLogger("pipeline")}

	var err error
	if cfg.Generate.AliasFile != "" {
		p.Aliases, err = typeref.LoadDictionary(cfg.Generate.AliasFile)
	} else {
		p.Aliases, err = typeref.DefaultDictionary()
	}
	if err != nil {
		return nil, err
	}

	if cfg.Generate.PatchFile != "" {
		p.Patches, err = patch.Load(cfg.Generate.PatchFile)
	} else {
		p.Patches, err = patch.Default()
	}
	if err != nil {
		return nil, err
	}

	resolver, err := typeref.NewResolver(p.Aliases, cfg.Generate.CacheSize)
	if err != nil {
		return nil, err
	}
	classifier, err := classify.New(cfg.Patterns())
	if err != nil {
		return nil, err
	}

	p.Generator, err = typegen.New(typegen.Config{
		Resolver:   resolver,
		Classifier: classifier,
		Patch:      p.Patches.Func(),
		MaxStray:   cfg.Generate.MaxStrayOptionals,
		Workers:    cfg.Generate.Workers,
		Strict:     cfg.Generate.Strict,
		Banner:     version.Get().Banner(cfg.Input.APIVersion),
		Logger:     logger.ComponentLogger("typegen"),
	})
	if err != nil {
		return nil, err
	}

	p.Extras, err = typegen.NewExtras(cfg.Output.ExtrasDir, cfg.Input.APIVersion)
	if err != nil {
		return nil, err
	}

	p.log.Debugw("Pipeline ready",
		"aliases", p.Aliases.Len(),
		"patches", p.Patches.Len(),
		logger.FieldWorkers, cfg.Generate.Workers)
	return p, nil
}

// Run loads the details file and synthesizes one file per output group
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	start := time.Now()

	coll, err := api.Load(p.Config.Input.DetailsPath)
	if err != nil {
		return nil, err
	}

	files, report, err := p.Generator.Files(ctx, coll, p.Config.Output.Prefixes, p.Extras)
	if err != nil {
		return nil, err
	}

	if p.Config.Verify.Syntax {
		if err := checkSyntax(ctx, files); err != nil {
			return nil, err
		}
	}

	return &Result{Files: files, Report: report, Duration: time.Since(start)}, nil
}

// checkSyntax parses every generated file with the TypeScript grammar
func checkSyntax(ctx context.Context, files []typegen.File) error {
	for _, f := range files {
		if err := verify.Syntax(ctx, f.Name, []byte(f.Content)); err != nil {
			return errors.WithHint(err, "the generator produced invalid TypeScript; rerun with -vv and report the entity")
		}
	}
	return nil
}
