package parsers

import (
	"bytes"
	"compress/gzip"
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/kestrelsat/kestrel/internal/sat"
)

type fakeSolver struct {
	vars    int
	clauses [][]sat.Literal
}

func (f *fakeSolver) AddVariable() int {
	v := f.vars
	f.vars++
	return v
}

func (f *fakeSolver) AddClause(lits []sat.Literal) error {
	f.clauses = append(f.clauses, append([]sat.Literal(nil), lits...))
	return nil
}

func writeTemp(t *testing.T, name string, contents []byte) string {
	t.Helper()
	path := t.TempDir() + "/" + name
	if err := os.WriteFile(path, contents, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDIMACSParsesWellFormedFile(t *testing.T) {
	path := writeTemp(t, "instance.cnf", []byte("p cnf 2 2\n1 -2 0\n2 0\n"))

	var fs fakeSolver
	if err := LoadDIMACS(path, false, &fs); err != nil {
		t.Fatalf("LoadDIMACS: %v", err)
	}
	if fs.vars != 2 {
		t.Errorf("vars = %d, want 2", fs.vars)
	}
	if len(fs.clauses) != 2 {
		t.Fatalf("clauses = %d, want 2", len(fs.clauses))
	}
	want := []sat.Literal{sat.PositiveLiteral(0), sat.NegativeLiteral(1)}
	if diff := cmp.Diff(want, fs.clauses[0]); diff != "" {
		t.Errorf("clauses[0] mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadDIMACSGzipped(t *testing.T) {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	gz.Write([]byte("p cnf 1 1\n1 0\n"))
	gz.Close()
	path := writeTemp(t, "instance.cnf.gz", buf.Bytes())

	var fs fakeSolver
	if err := LoadDIMACS(path, true, &fs); err != nil {
		t.Fatalf("LoadDIMACS: %v", err)
	}
	if fs.vars != 1 || len(fs.clauses) != 1 {
		t.Errorf("got vars=%d clauses=%d, want 1/1", fs.vars, len(fs.clauses))
	}
}

func TestLoadDIMACSRejectsUnknownProblemType(t *testing.T) {
	path := writeTemp(t, "instance.cnf", []byte("p wcnf 1 1\n1 0\n"))

	var fs fakeSolver
	if err := LoadDIMACS(path, false, &fs); err == nil {
		t.Error("LoadDIMACS(wcnf) = nil error, want an error")
	}
}

func TestReadModelsParsesSolutionLines(t *testing.T) {
	path := writeTemp(t, "instance.cnf.models", []byte("1 -2 0\n-1 2 0\n"))

	models, err := ReadModels(path)
	if err != nil {
		t.Fatalf("ReadModels: %v", err)
	}
	want := [][]bool{{true, false}, {false, true}}
	if diff := cmp.Diff(want, models); diff != "" {
		t.Errorf("models mismatch (-want +got):\n%s", diff)
	}
}
