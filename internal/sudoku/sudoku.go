// Package sudoku encodes Sudoku puzzles as propositional CNF formulas and
// decodes a satisfying model back into a solved grid, the way
// sudoku_dpll.py / sudoku_dp.py / sudoku_resolution.py encode theirs: one
// boolean variable per (row, column, digit) triple, at-least-one and
// at-most-one clauses per cell/row/column/box, and a unit clause per
// pre-filled cell.
package sudoku

import (
	"fmt"
	"math"

	"github.com/kestrelsat/kestrel/internal/sat"
)

// Grid is an n*n Sudoku board; 0 marks an empty cell, values 1..n a
// filled one.
type Grid [][]int

// N returns the grid's side length.
func (g Grid) N() int {
	return len(g)
}

// Writer is the subset of *sat.Solver Encode needs to build an instance.
type Writer interface {
	AddVariable() int
	AddClause([]sat.Literal) error
}

// variable returns the 0-based variable ID for "cell (row, col) holds
// digit num" (num is 0-based; the stored grid value is num+1), matching
// the row*n*n + col*n + num layout used throughout the original encoder.
func variable(n, row, col, num int) int {
	return row*n*n + col*n + num
}

// Encode adds n*n*n variables and the Sudoku constraint clauses for an
// n*n grid to dw, plus one unit clause per pre-filled cell of g. n must
// be a perfect square (box constraints need an integer box side); g must
// be n*n.
func Encode(g Grid, dw Writer) error {
	n := g.N()
	box := int(math.Sqrt(float64(n)))
	if box*box != n {
		return fmt.Errorf("sudoku: grid size %d is not a perfect square", n)
	}
	for _, row := range g {
		if len(row) != n {
			return fmt.Errorf("sudoku: grid is not square (want %d columns, got %d)", n, len(row))
		}
	}

	for i := 0; i < n*n*n; i++ {
		dw.AddVariable()
	}

	lit := func(row, col, num int, positive bool) sat.Literal {
		v := variable(n, row, col, num)
		if positive {
			return sat.PositiveLiteral(v)
		}
		return sat.NegativeLiteral(v)
	}

	addAtLeastOne := func(lits []sat.Literal) error {
		return dw.AddClause(lits)
	}
	addAtMostOne := func(lits []sat.Literal) error {
		for i := 0; i < len(lits); i++ {
			for j := i + 1; j < len(lits); j++ {
				if err := dw.AddClause([]sat.Literal{lits[i].Opposite(), lits[j].Opposite()}); err != nil {
					return err
				}
			}
		}
		return nil
	}

	// Each cell holds at least one digit, and at most one.
	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			lits := make([]sat.Literal, n)
			for num := 0; num < n; num++ {
				lits[num] = lit(row, col, num, true)
			}
			if err := addAtLeastOne(lits); err != nil {
				return err
			}
			if err := addAtMostOne(lits); err != nil {
				return err
			}
		}
	}

	// Each digit appears at most once per row.
	for row := 0; row < n; row++ {
		for num := 0; num < n; num++ {
			lits := make([]sat.Literal, n)
			for col := 0; col < n; col++ {
				lits[col] = lit(row, col, num, true)
			}
			if err := addAtMostOne(lits); err != nil {
				return err
			}
		}
	}

	// Each digit appears at most once per column.
	for col := 0; col < n; col++ {
		for num := 0; num < n; num++ {
			lits := make([]sat.Literal, n)
			for row := 0; row < n; row++ {
				lits[row] = lit(row, col, num, true)
			}
			if err := addAtMostOne(lits); err != nil {
				return err
			}
		}
	}

	// Each digit appears at most once per box.
	for boxRow := 0; boxRow < box; boxRow++ {
		for boxCol := 0; boxCol < box; boxCol++ {
			for num := 0; num < n; num++ {
				lits := make([]sat.Literal, 0, n)
				for i := 0; i < box; i++ {
					for j := 0; j < box; j++ {
						row := boxRow*box + i
						col := boxCol*box + j
						lits = append(lits, lit(row, col, num, true))
					}
				}
				if err := addAtMostOne(lits); err != nil {
					return err
				}
			}
		}
	}

	// Pre-filled cells.
	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			if g[row][col] == 0 {
				continue
			}
			num := g[row][col] - 1
			if err := dw.AddClause([]sat.Literal{lit(row, col, num, true)}); err != nil {
				return err
			}
		}
	}

	return nil
}

// Decode turns a satisfying model (as returned by sat.Solver.Model) for
// an n*n encoding back into a filled grid. It panics if model does not
// have exactly one true digit per cell, which would mean it is not
// actually a model of the clauses Encode produced.
func Decode(model []bool, n int) Grid {
	g := make(Grid, n)
	for row := range g {
		g[row] = make([]int, n)
	}
	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			found := 0
			for num := 0; num < n; num++ {
				v := variable(n, row, col, num)
				if v < len(model) && model[v] {
					found++
					g[row][col] = num + 1
				}
			}
			if found != 1 {
				panic(fmt.Sprintf("sudoku: cell (%d,%d) has %d true digits, want exactly 1", row, col, found))
			}
		}
	}
	return g
}
