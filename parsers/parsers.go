// Package parsers wires github.com/rhartert/dimacs, a standalone DIMACS
// CNF reader, as an alternate loader to internal/dimacs's own relaxed
// parser. Where internal/dimacs tolerates a missing or wrong header,
// this loader delegates entirely to the upstream library's stricter
// line-oriented reader and is useful for cross-checking instances known
// to be well-formed, or for input formats the upstream library already
// handles (e.g. its own extensions) that internal/dimacs does not.
package parsers

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"

	upstream "github.com/rhartert/dimacs"

	"github.com/kestrelsat/kestrel/internal/sat"
)

// SATSolver is the subset of *sat.Solver a loader needs to populate an
// instance.
type SATSolver interface {
	AddVariable() int
	AddClause([]sat.Literal) error
}

func reader(filename string, gzipped bool) (io.ReadCloser, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	rc := io.ReadCloser(file)
	if gzipped {
		rc, err = gzip.NewReader(rc)
		if err != nil {
			return nil, err
		}
	}
	return rc, nil
}

// LoadDIMACS parses the DIMACS CNF file at filename using the upstream
// rhartert/dimacs reader and loads its formula into solver.
func LoadDIMACS(filename string, gzipped bool, solver SATSolver) error {
	rc, err := reader(filename, gzipped)
	if err != nil {
		return fmt.Errorf("error reading file %q: %s", filename, err)
	}
	defer rc.Close()

	b := &builder{solver: solver}
	return upstream.ReadBuilder(rc, b)
}

// builder adapts SATSolver to upstream.Builder.
type builder struct {
	solver SATSolver
}

func (b *builder) Problem(problem string, nVars int, nClauses int) error {
	if problem != "cnf" {
		return fmt.Errorf("not a CNF problem: %q", problem)
	}
	for i := 0; i < nVars; i++ {
		b.solver.AddVariable()
	}
	return nil
}

func (b *builder) Clause(tmpClause []int) error {
	clause := make([]sat.Literal, len(tmpClause))
	for i, l := range tmpClause {
		if l < 0 {
			clause[i] = sat.NegativeLiteral(-l - 1)
		} else {
			clause[i] = sat.PositiveLiteral(l - 1)
		}
	}
	return b.solver.AddClause(clause)
}

func (b *builder) Comment(_ string) error {
	return nil
}

// ReadModels returns the list of models (if any) contained in filename,
// a file of solution lines (signed integers terminated by 0, one model
// per line) read through the upstream library's clause-line parser.
func ReadModels(filename string) ([][]bool, error) {
	rc, err := reader(filename, false)
	if err != nil {
		return nil, fmt.Errorf("error reading file %q: %s", filename, err)
	}
	defer rc.Close()

	b := &modelBuilder{}
	if err := upstream.ReadBuilder(rc, b); err != nil {
		return nil, err
	}
	return b.models, nil
}

type modelBuilder struct {
	models [][]bool
}

func (b *modelBuilder) Problem(problem string, nVars int, nClauses int) error {
	return fmt.Errorf("model files should not have problem lines")
}

func (b *modelBuilder) Comment(_ string) error {
	return nil
}

func (b *modelBuilder) Clause(tmpClause []int) error {
	model := make([]bool, len(tmpClause))
	for i, l := range tmpClause {
		model[i] = l > 0
	}
	b.models = append(b.models, model)
	return nil
}
