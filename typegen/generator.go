// Package typegen synthesizes TypeScript declaration text from the legacy
// toolkit documentation.
//
// # Architecture
//
// Each entity is handled independently:
//  1. The patch layer rewrites or removes the entity
//  2. The classifier picks one of four declaration shapes
//  3. A shape-specific emitter writes the declarations
//
// Types pass through the typeref resolver, parameter lists through the
// overload expander and documentation through jsdoc. Entities are emitted
// in parallel and joined in collection order, so output is deterministic.
package typegen

import (
	"context"
	"runtime"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/teranos/dojodts/api"
	"github.com/teranos/dojodts/classify"
	"github.com/teranos/dojodts/errors"
	"github.com/teranos/dojodts/logger"
	"github.com/teranos/dojodts/overload"
	"github.com/teranos/dojodts/patch"
	"github.com/teranos/dojodts/typeref"
)

// Config configures a Generator. Zero values select the defaults.
type Config struct {
	// Resolver maps type spellings; defaults to the embedded alias table
	Resolver *typeref.Resolver

	// Classifier picks declaration shapes; defaults to the built-in tables
	Classifier *classify.Classifier

	// Patch rewrites entities before classification; defaults to none
	Patch patch.Func

	// MaxStray bounds overload expansion per parameter list
	MaxStray int

	// Workers bounds parallel entity synthesis; defaults to GOMAXPROCS
	Workers int

	// Strict turns expansion warnings into a failed run
	Strict bool

	// Banner is written at the top of every file produced by Files
	Banner string

	Logger *zap.SugaredLogger
}

// Generator turns entity collections into declaration text. It is safe
// for concurrent use.
type Generator struct {
	resolver   *typeref.Resolver
	classifier *classify.Classifier
	expander   *overload.Expander
	patch      patch.Func
	workers    int
	strict     bool
	banner     string
	log        *zap.SugaredLogger
}

// New creates a generator
func New(cfg Config) (*Generator, error) {
	g := &Generator{
		resolver:   cfg.Resolver,
		classifier: cfg.Classifier,
		patch:      cfg.Patch,
		workers:    cfg.Workers,
		strict:     cfg.Strict,
		banner:     cfg.Banner,
		log:        cfg.Logger,
	}
	if g.resolver == nil {
		dict, err := typeref.DefaultDictionary()
		if err != nil {
			return nil, err
		}
		if g.resolver, err = typeref.NewResolver(dict, 0); err != nil {
			return nil, err
		}
	}
	if g.classifier == nil {
		g.classifier = classify.Default()
	}
	if g.patch == nil {
		g.patch = patch.None
	}
	if g.workers <= 0 {
		g.workers = runtime.GOMAXPROCS(0)
	}
	if g.log == nil {
		g.log = logger.ComponentLogger("typegen")
	}
	g.expander = overload.New(g.resolver.ResolveList)
	if cfg.MaxStray > 0 {
		g.expander.MaxStray = cfg.MaxStray
	}
	return g, nil
}

// entityResult is the output of one entity
type entityResult struct {
	text     string
	kind     classify.Kind
	removed  bool
	warnings []Warning
}

// Synthesize emits declarations for every entity in coll, in key order.
// The collection is also consulted read-only to classify superclasses.
//
// Only cancellation or, in strict mode, an overload warning fails the run.
func (g *Generator) Synthesize(ctx context.Context, coll *api.Collection) (string, *Report, error) {
	start := time.Now()
	keys := coll.Keys()
	results := make([]entityResult, len(keys))

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(g.workers)
	for i, key := range keys {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = g.entity(coll, key, coll.Get(key))
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return "", nil, errors.Wrap(err, "synthesis interrupted")
	}

	report := newReport()
	report.Entities = len(keys)

	var sb strings.Builder
	for i, r := range results {
		if r.removed {
			report.Removed = append(report.Removed, keys[i])
			continue
		}
		report.Emitted++
		report.Shapes[r.kind]++
		report.Warnings = append(report.Warnings, r.warnings...)
		sb.WriteString(r.text)
	}
	report.Bytes = sb.Len()

	for _, w := range report.Warnings {
		g.log.Warnw("Lossy overload expansion",
			logger.FieldEntity, w.Entity,
			logger.FieldOperation, w.Member,
			logger.FieldError, w.Err.Error())
	}
	g.log.Debugw("Synthesized declarations",
		logger.FieldCount, report.Emitted,
		logger.FieldSize, report.Bytes,
		logger.FieldWorkers, g.workers,
		logger.FieldDurationMS, time.Since(start).Milliseconds())

	if g.strict && len(report.Warnings) > 0 {
		err := errors.Newk(errors.ErrTooManyOverloads,
			"%d parameter lists exceed the overload limit", len(report.Warnings))
		return "", report, errors.WithHintf(err,
			"first offender: %s; raise generate.max_stray_optionals or patch the parameters optional",
			report.Warnings[0].String())
	}
	return sb.String(), report, nil
}

// FormatEntity emits the declarations for a single entity. It returns false
// when the patch layer removes the entity.
func (g *Generator) FormatEntity(coll *api.Collection, e *api.Entity) (string, bool) {
	if e == nil {
		return "", false
	}
	r := g.entity(coll, e.Location, e)
	return r.text, !r.removed
}

// Classify returns the shape of the patched entity, or false when it is removed
func (g *Generator) Classify(path string, e *api.Entity) (classify.Kind, bool) {
	patched := g.patch(path, e)
	if patched == nil {
		return classify.PlainNamespace, false
	}
	return g.classifier.Classify(patched), true
}

func (g *Generator) entity(coll *api.Collection, path string, e *api.Entity) entityResult {
	patched := g.patch(path, e)
	if patched == nil {
		g.log.Debugw("Entity removed by patch", logger.FieldEntity, path)
		return entityResult{removed: true}
	}
	if patched.Location == "" {
		patched = patched.Clone()
		patched.Location = path
	}

	em := &emitter{g: g, coll: coll, e: patched}
	em.kind = g.classifier.Classify(patched)
	em.emit()
	return entityResult{text: em.w.String(), kind: em.kind, warnings: em.warnings}
}
