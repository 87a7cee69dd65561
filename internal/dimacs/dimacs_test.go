package dimacs

import (
	"bytes"
	"compress/gzip"
	_ "embed"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/kestrelsat/kestrel/internal/sat"
)

//go:embed testdata/unit_forced.cnf
var unitForcedCNF string

//go:embed testdata/unit_forced.cnf.models
var unitForcedModels string

// fakeWriter records AddVariable/AddClause calls without needing a real
// solver, so Load's behavior can be checked in isolation.
type fakeWriter struct {
	vars    int
	clauses [][]sat.Literal
}

func (f *fakeWriter) AddVariable() int {
	v := f.vars
	f.vars++
	return v
}

func (f *fakeWriter) AddClause(lits []sat.Literal) error {
	f.clauses = append(f.clauses, append([]sat.Literal(nil), lits...))
	return nil
}

func TestLoadWellFormedInstance(t *testing.T) {
	input := `c a comment
p cnf 3 2
1 -2 0
c another comment
2 3 0
`
	var fw fakeWriter
	if err := Load(strings.NewReader(input), Options{}, &fw); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if fw.vars != 3 {
		t.Errorf("vars = %d, want 3", fw.vars)
	}
	if len(fw.clauses) != 2 {
		t.Fatalf("clauses = %d, want 2", len(fw.clauses))
	}
	want0 := []sat.Literal{sat.PositiveLiteral(0), sat.NegativeLiteral(1)}
	if diff := cmp.Diff(want0, fw.clauses[0]); diff != "" {
		t.Errorf("clause[0] mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadRelaxedGrowsVariablesWithoutHeader(t *testing.T) {
	input := "1 -3 0\n2 4 0\n"
	var fw fakeWriter
	if err := Load(strings.NewReader(input), Options{}, &fw); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if fw.vars != 4 {
		t.Errorf("vars = %d, want 4 (grown from the largest literal seen)", fw.vars)
	}
	if len(fw.clauses) != 2 {
		t.Errorf("clauses = %d, want 2", len(fw.clauses))
	}
}

func TestLoadStrictRejectsMissingHeader(t *testing.T) {
	input := "1 -3 0\n"
	var fw fakeWriter
	err := Load(strings.NewReader(input), Options{Strict: true}, &fw)
	if !errors.Is(err, ErrMalformed) {
		t.Errorf("Load (strict, no header) = %v, want ErrMalformed", err)
	}
}

func TestLoadStrictRejectsClauseCountMismatch(t *testing.T) {
	input := "p cnf 2 2\n1 2 0\n"
	var fw fakeWriter
	err := Load(strings.NewReader(input), Options{Strict: true}, &fw)
	if !errors.Is(err, ErrMalformed) {
		t.Errorf("Load (strict, mismatched count) = %v, want ErrMalformed", err)
	}
}

func TestLoadStrictRejectsLiteralBeyondDeclaredVars(t *testing.T) {
	input := "p cnf 2 1\n1 5 0\n"
	var fw fakeWriter
	err := Load(strings.NewReader(input), Options{Strict: true}, &fw)
	if !errors.Is(err, ErrMalformed) {
		t.Errorf("Load (strict, literal out of range) = %v, want ErrMalformed", err)
	}
}

func TestLoadRelaxedIgnoresClauseCountMismatch(t *testing.T) {
	input := "p cnf 2 99\n1 2 0\n"
	var fw fakeWriter
	if err := Load(strings.NewReader(input), Options{}, &fw); err != nil {
		t.Errorf("Load (relaxed, mismatched count) = %v, want nil", err)
	}
	if len(fw.clauses) != 1 {
		t.Errorf("clauses = %d, want 1", len(fw.clauses))
	}
}

func TestLoadFileGzipped(t *testing.T) {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	gz.Write([]byte("p cnf 1 1\n1 0\n"))
	gz.Close()

	dir := t.TempDir()
	path := dir + "/instance.cnf.gz"
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}

	var fw fakeWriter
	if err := LoadFile(path, Options{Gzipped: true}, &fw); err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if fw.vars != 1 || len(fw.clauses) != 1 {
		t.Errorf("got vars=%d clauses=%d, want 1/1", fw.vars, len(fw.clauses))
	}
}

func TestWriteModelOutput(t *testing.T) {
	var buf bytes.Buffer
	model := []bool{true, false, true}
	if err := WriteModel(&buf, model); err != nil {
		t.Fatalf("WriteModel: %v", err)
	}
	if got, want := buf.String(), "1 -2 3 0\n"; got != want {
		t.Errorf("WriteModel output = %q, want %q", got, want)
	}
}

// TestLoadEmbeddedGoldenInstanceMatchesExpectedModel loads an embedded
// fixture CNF, solves it, and checks the result against an embedded
// golden model file, rather than hand-encoding either as Go literals.
func TestLoadEmbeddedGoldenInstanceMatchesExpectedModel(t *testing.T) {
	s := sat.NewDefaultSolver()
	if err := Load(strings.NewReader(unitForcedCNF), Options{}, s); err != nil {
		t.Fatalf("Load: %v", err)
	}
	result, err := s.Solve()
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if result != sat.Satisfiable {
		t.Fatalf("Solve() = %v, want Satisfiable", result)
	}

	wantModels, err := ParseModelsReader(strings.NewReader(unitForcedModels))
	if err != nil {
		t.Fatalf("ParseModelsReader: %v", err)
	}
	if len(wantModels) != 1 {
		t.Fatalf("golden file has %d models, want 1", len(wantModels))
	}
	if diff := cmp.Diff(wantModels[0], s.Model()); diff != "" {
		t.Errorf("Model() mismatch (-want +got):\n%s", diff)
	}
}
