// Command ntc is the thin CLI wrapper over internal/driver's ntCompile:
// read every file named on the command line, compile them as one
// assembly, and either print the resulting IR or report the
// diagnostics that stopped it.
//
// Grounded on _examples/sentra-language-sentra/cmd/sentra/main.go's
// "run" command: manual os.Args parsing (no flag-library dependency,
// the same as sentra's own command handling), reading each file with
// os.ReadFile, and a failure path where run returns an error that main
// prints before exiting non-zero. ntc's scope is narrower
// than sentra's full CLI (no REPL, package manager, or LSP), so only
// that shape is carried over, not sentra's command breadth.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"

	"netuno/internal/buildcache"
	"netuno/internal/driver"
	"netuno/internal/ir"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "ntc: %v\n", err)
		os.Exit(1)
	}
}

// options is ntc's parsed command line.
type options struct {
	assembly string
	cacheDir string
	files    []string
}

func parseArgs(args []string) (options, error) {
	opts := options{}
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "-o" || arg == "--assembly":
			i++
			if i >= len(args) {
				return opts, errors.Errorf("%s requires a value", arg)
			}
			opts.assembly = args[i]
		case arg == "-cache" || arg == "--cache":
			i++
			if i >= len(args) {
				return opts, errors.Errorf("%s requires a directory", arg)
			}
			opts.cacheDir = args[i]
		case strings.HasPrefix(arg, "-"):
			return opts, errors.Errorf("unknown flag %q", arg)
		default:
			opts.files = append(opts.files, arg)
		}
	}
	if len(opts.files) == 0 {
		return opts, errors.New("usage: ntc [-o assembly] [-cache dir] file.nt [file2.nt ...]")
	}
	if opts.assembly == "" {
		opts.assembly = strings.TrimSuffix(filepath.Base(opts.files[0]), filepath.Ext(opts.files[0]))
	}
	return opts, nil
}

func run(args []string) error {
	opts, err := parseArgs(args)
	if err != nil {
		return err
	}

	var cache *buildcache.Cache
	if opts.cacheDir != "" {
		cache, err = buildcache.Open(opts.cacheDir)
		if err != nil {
			return errors.Wrap(err, "opening build cache")
		}
	}

	files, err := readFiles(opts.files)
	if err != nil {
		return errors.Wrap(err, "reading source files")
	}

	ctx := ir.NewContext()
	out, err := driver.Compile(ctx, opts.assembly, files, cache)
	if err != nil {
		return errors.Wrap(err, "compiling assembly")
	}

	if cache != nil {
		if err := cache.Save(); err != nil {
			return errors.Wrap(err, "saving build cache")
		}
	}

	if out.Report.HasErrors() {
		fmt.Fprint(os.Stderr, out.Report.String())
		return errors.Errorf("%s: compilation failed", opts.assembly)
	}

	color := ir.StdoutIsTerminal()
	hits := 0
	for _, f := range out.Files {
		if f.CacheHit {
			hits++
		}
		f.Module.WriteTo(os.Stdout, color)
	}
	if cache != nil {
		fmt.Fprintf(os.Stderr, "ntc: %d/%d file(s) unchanged since last clean build (%s)\n",
			hits, len(out.Files), humanize.Bytes(totalBytes(files)))
	}
	return nil
}

func readFiles(paths []string) ([]driver.File, error) {
	files := make([]driver.File, len(paths))
	for i, path := range paths {
		src, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "reading %s", path)
		}
		files[i] = driver.File{Name: path, Source: string(src)}
	}
	return files, nil
}

func totalBytes(files []driver.File) uint64 {
	var total uint64
	for _, f := range files {
		total += uint64(len(f.Source))
	}
	return total
}
