// Package driver implements ntCompile: scan and parse every file of an
// assembly, resolve and lower them into one shared internal/ir.Context,
// and hand back either the compiled modules or the accumulated
// diagnostics.
//
// Grounded on _examples/sentra-language-sentra/cmd/sentra/main.go's
// "run" flow (read source, scan, parse, recover around a failure,
// report and exit non-zero): this package is that same read→scan→
// parse→compile pipeline, generalized from one file to an assembly of
// them and split so the CLI in cmd/ntc is a thin wrapper over it.
package driver

import (
	"context"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"netuno/internal/ast"
	"netuno/internal/buildcache"
	"netuno/internal/codegen"
	"netuno/internal/ir"
	"netuno/internal/lexer"
	"netuno/internal/parser"
	"netuno/internal/report"
	"netuno/internal/resolver"
	"netuno/internal/scope"
	"netuno/internal/stdtypes"
)

// File is one named source unit of an assembly.
type File struct {
	Name   string
	Source string
}

// Result is what one file contributed to a compiled assembly.
type Result struct {
	File       string
	Module     *ir.Module
	CacheHit   bool
	Diagnostic *report.Report
}

// Output is the outcome of compiling one assembly: either every file's
// module (Report.HasErrors() false) or nothing, since any diagnostic in
// the run is reason to discard all of it.
type Output struct {
	Assembly string
	Files    []Result
	Report   *report.Report
}

// Modules returns every file's compiled module, in file order. Only
// meaningful when Output.Report.HasErrors() is false.
func (o *Output) Modules() []*ir.Module {
	mods := make([]*ir.Module, 0, len(o.Files))
	for _, f := range o.Files {
		if f.Module != nil {
			mods = append(mods, f.Module)
		}
	}
	return mods
}

// parsed is one file's scan/parse outcome, computed concurrently since
// parsing one file never depends on another.
type parsed struct {
	file   File
	module *ast.Node
	rep    *report.Report
}

// Compile runs ntCompile over files, producing one assembly's worth of
// compiled modules against ctx. Every file is resolved and lowered
// whether or not cache is set; cache may be nil, in which case no file
// is recorded and no Result reports a cache hit.
func Compile(ctx *ir.Context, assembly string, files []File, cache *buildcache.Cache) (*Output, error) {
	parsedFiles, err := scanAndParse(files)
	if err != nil {
		return nil, errors.Wrap(err, "ntCompile: scan/parse phase")
	}

	combined := report.New()
	for _, p := range parsedFiles {
		combined.Merge(p.rep)
	}
	if combined.HasErrors() {
		return &Output{Assembly: assembly, Report: combined}, nil
	}

	out, err := resolveAndLower(ctx, assembly, parsedFiles, cache)
	if err != nil {
		return nil, errors.Wrap(err, "ntCompile: resolve/lower phase")
	}
	return out, nil
}

// scanAndParse scans and parses every file concurrently, preserving
// input order in the returned slice regardless of completion order.
func scanAndParse(files []File) ([]parsed, error) {
	results := make([]parsed, len(files))

	g, _ := errgroup.WithContext(context.Background())
	for i, f := range files {
		i, f := i, f
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = errors.Errorf("panic scanning/parsing %s: %v", f.Name, r)
				}
			}()
			toks := lexer.New(f.Source).ScanTokens()
			module, rep := parser.New(f.Name, toks).Parse()
			results[i] = parsed{file: f, module: module, rep: rep}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// resolveAndLower resolves and lowers every already-parsed file in
// file order, into one shared ir.Context. The resolver and lowering
// engine's scope chains are not safe for concurrent mutation, so unlike
// scanAndParse this phase is strictly serial.
//
// A shared running scope carries each file's top-level declarations
// (functions, module-scope globals) forward into the next file's
// resolver and engine, so a later file in the same assembly can call a
// function an earlier file declared. A file cannot see a later file's
// declarations this way (no pre-declare pass runs before any body is
// resolved); that one-directional visibility is the cost of keeping
// resolveAndLower a single pass per file instead of two.
func resolveAndLower(ctx *ir.Context, assembly string, parsedFiles []parsed, cache *buildcache.Cache) (*Output, error) {
	runtime := ir.NewModule(ctx, assembly+".runtime")
	reg := stdtypes.Build(ctx, runtime)

	var typeScope, irScope []scope.Symbol

	out := &Output{Assembly: assembly, Report: report.New()}
	for _, p := range parsedFiles {
		hash := buildcache.Hash([]byte(p.file.Source))
		var previous buildcache.Entry
		var hadPrevious bool
		if cache != nil {
			previous, hadPrevious = cache.Lookup(hash)
		}

		r := resolver.New(p.file.Name, reg.Externs)
		r.SeedGlobal(typeScope)
		resolveRep := r.Resolve(p.module)
		out.Report.Merge(resolveRep)
		typeScope = append(typeScope, r.Scope().Symbols()...)
		if resolveRep.HasErrors() {
			if cache != nil {
				cache.Record(hash, p.file.Name, false, int64(len(p.file.Source)))
			}
			continue
		}

		e := codegen.New(ctx, p.file.Name, reg.Functions)
		e.SeedGlobal(irScope)
		mod, lowerRep := e.LowerModule(p.module)
		out.Report.Merge(lowerRep)
		irScope = append(irScope, e.Scope().Symbols()...)

		clean := !lowerRep.HasErrors()
		if cache != nil {
			cache.Record(hash, p.file.Name, clean, int64(len(p.file.Source)))
		}
		cacheHit := hadPrevious && previous.Clean && clean

		out.Files = append(out.Files, Result{File: p.file.Name, Module: mod, CacheHit: cacheHit, Diagnostic: lowerRep})
	}

	if out.Report.HasErrors() {
		out.Files = nil
	}
	return out, nil
}
