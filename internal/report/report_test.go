package report

import "testing"

func TestHasErrorsEmptyReport(t *testing.T) {
	r := New()
	if r.HasErrors() {
		t.Fatalf("fresh report should have no errors")
	}
}

func TestAddfRecordsDiagnostic(t *testing.T) {
	r := New()
	r.Addf(UndeclaredSymbol, "a.nt", 3, "undeclared symbol %q", "x")
	if !r.HasErrors() {
		t.Fatalf("expected HasErrors after Addf")
	}
	ds := r.Diagnostics()
	if len(ds) != 1 || ds[0].Kind != UndeclaredSymbol || ds[0].Line != 3 {
		t.Fatalf("unexpected diagnostic: %+v", ds)
	}
}

func TestMergeCombinesDiagnostics(t *testing.T) {
	r1 := New()
	r1.Addf(SyntaxError, "a.nt", 1, "bad token")
	r2 := New()
	r2.Addf(TypeMismatch, "b.nt", 2, "type mismatch")

	r1.Merge(r2)
	if len(r1.Diagnostics()) != 2 {
		t.Fatalf("expected merged report to contain both diagnostics, got %d", len(r1.Diagnostics()))
	}
}

func TestRunIDsAreDistinctPerReport(t *testing.T) {
	r1 := New()
	r2 := New()
	if r1.RunID == r2.RunID {
		t.Fatalf("expected distinct run ids across Report instances")
	}
}
