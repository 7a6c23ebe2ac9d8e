package driver

import (
	"testing"

	"netuno/internal/buildcache"
	"netuno/internal/ir"
)

func TestCompileSingleFile(t *testing.T) {
	ctx := ir.NewContext()
	out, err := Compile(ctx, "test", []File{{Name: "a.nt", Source: "def f(): i32 => 42"}}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Report.HasErrors() {
		t.Fatalf("unexpected diagnostics: %s", out.Report.String())
	}
	mods := out.Modules()
	if len(mods) != 1 {
		t.Fatalf("expected exactly one compiled module, got %d", len(mods))
	}
	if mods[0].GetFunction("f") == nil {
		t.Fatalf("expected module to contain function f")
	}
}

func TestCompileReportsParseErrorsWithoutLowering(t *testing.T) {
	ctx := ir.NewContext()
	out, err := Compile(ctx, "test", []File{{Name: "a.nt", Source: "def f(:"}}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !out.Report.HasErrors() {
		t.Fatalf("expected diagnostics for malformed source")
	}
	if len(out.Files) != 0 {
		t.Fatalf("expected no compiled files when the run has diagnostics")
	}
}

// A later file can call an earlier file's function, since
// resolveAndLower carries each file's declarations forward.
func TestCompileCrossFileCallOrderDependent(t *testing.T) {
	ctx := ir.NewContext()
	files := []File{
		{Name: "a.nt", Source: "def double(x: i32): i32 => x + x"},
		{Name: "b.nt", Source: "def quadruple(x: i32): i32 => double(double(x))"},
	}
	out, err := Compile(ctx, "test", files, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Report.HasErrors() {
		t.Fatalf("unexpected diagnostics: %s", out.Report.String())
	}
	if len(out.Modules()) != 2 {
		t.Fatalf("expected two compiled modules, got %d", len(out.Modules()))
	}
}

func TestCompileRecordsCacheHitsAcrossRuns(t *testing.T) {
	cache, err := buildcache.Open(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error opening cache: %v", err)
	}

	files := []File{{Name: "a.nt", Source: "def f(): i32 => 1"}}

	ctx1 := ir.NewContext()
	first, err := Compile(ctx1, "test", files, cache)
	if err != nil {
		t.Fatalf("unexpected error on first compile: %v", err)
	}
	if first.Files[0].CacheHit {
		t.Fatalf("expected the first compile of a file to miss the cache")
	}

	ctx2 := ir.NewContext()
	second, err := Compile(ctx2, "test", files, cache)
	if err != nil {
		t.Fatalf("unexpected error on second compile: %v", err)
	}
	if !second.Files[0].CacheHit {
		t.Fatalf("expected the second compile of unchanged source to hit the cache")
	}
}
