package sudoku

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/kestrelsat/kestrel/internal/sat"
)

func solveGrid(t *testing.T, g Grid, strategy sat.Strategy) (Grid, bool) {
	t.Helper()
	var opts sat.Options
	switch strategy {
	case sat.DPLL:
		opts = sat.DefaultDPLLOptions
	case sat.DP:
		opts = sat.DefaultDPOptions
	default:
		opts = sat.DefaultOptions
	}
	s := sat.NewSolver(opts)
	if err := Encode(g, s); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	result, err := s.Solve()
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if result != sat.Satisfiable {
		return nil, false
	}
	return Decode(s.Model(), g.N()), true
}

func validSolution(t *testing.T, solved, original Grid) {
	t.Helper()
	n := solved.N()
	box := 1
	for box*box < n {
		box++
	}

	for row := 0; row < n; row++ {
		seen := make(map[int]bool)
		for col := 0; col < n; col++ {
			v := solved[row][col]
			if v < 1 || v > n {
				t.Fatalf("cell (%d,%d) = %d out of range", row, col, v)
			}
			if seen[v] {
				t.Fatalf("row %d has digit %d twice", row, v)
			}
			seen[v] = true
			if original[row][col] != 0 && original[row][col] != v {
				t.Fatalf("cell (%d,%d) changed a pre-filled %d to %d", row, col, original[row][col], v)
			}
		}
	}
	for col := 0; col < n; col++ {
		seen := make(map[int]bool)
		for row := 0; row < n; row++ {
			v := solved[row][col]
			if seen[v] {
				t.Fatalf("column %d has digit %d twice", col, v)
			}
			seen[v] = true
		}
	}
	for boxRow := 0; boxRow < box; boxRow++ {
		for boxCol := 0; boxCol < box; boxCol++ {
			seen := make(map[int]bool)
			for i := 0; i < box; i++ {
				for j := 0; j < box; j++ {
					v := solved[boxRow*box+i][boxCol*box+j]
					if seen[v] {
						t.Fatalf("box (%d,%d) has digit %d twice", boxRow, boxCol, v)
					}
					seen[v] = true
				}
			}
		}
	}
}

func TestEncodeDecodeSolves4x4(t *testing.T) {
	// A 4x4 Sudoku (box size 2) with a few pre-filled cells.
	puzzle := Grid{
		{1, 0, 0, 0},
		{0, 0, 1, 0},
		{0, 1, 0, 0},
		{0, 0, 0, 1},
	}

	for _, strat := range []sat.Strategy{sat.CDCL, sat.DPLL, sat.DP} {
		solved, ok := solveGrid(t, puzzle, strat)
		if !ok {
			t.Fatalf("[%s] puzzle reported unsatisfiable, want satisfiable", strat)
		}
		validSolution(t, solved, puzzle)
	}
}

func TestEncodeDecodeUniquePuzzleMatchesKnownSolution(t *testing.T) {
	// One cell removed from a valid full grid: the remaining givens force
	// a single solution, so the decoded grid must equal the original
	// exactly, not merely pass the row/column/box checks.
	full := Grid{
		{1, 2, 3, 4},
		{3, 4, 1, 2},
		{2, 1, 4, 3},
		{4, 3, 2, 1},
	}
	puzzle := Grid{
		{1, 2, 3, 4},
		{3, 4, 1, 2},
		{2, 1, 4, 3},
		{4, 3, 2, 0},
	}

	solved, ok := solveGrid(t, puzzle, sat.CDCL)
	if !ok {
		t.Fatal("puzzle reported unsatisfiable, want satisfiable")
	}
	if diff := cmp.Diff([][]int(full), [][]int(solved)); diff != "" {
		t.Errorf("solved grid mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeDecodeSolves9x9(t *testing.T) {
	// The classic example puzzle, which has a unique solution.
	puzzle := Grid{
		{5, 3, 0, 0, 7, 0, 0, 0, 0},
		{6, 0, 0, 1, 9, 5, 0, 0, 0},
		{0, 9, 8, 0, 0, 0, 0, 6, 0},
		{8, 0, 0, 0, 6, 0, 0, 0, 3},
		{4, 0, 0, 8, 0, 3, 0, 0, 1},
		{7, 0, 0, 0, 2, 0, 0, 0, 6},
		{0, 6, 0, 0, 0, 0, 2, 8, 0},
		{0, 0, 0, 4, 1, 9, 0, 0, 5},
		{0, 0, 0, 0, 8, 0, 0, 7, 9},
	}
	want := Grid{
		{5, 3, 4, 6, 7, 8, 9, 1, 2},
		{6, 7, 2, 1, 9, 5, 3, 4, 8},
		{1, 9, 8, 3, 4, 2, 5, 6, 7},
		{8, 5, 9, 7, 6, 1, 4, 2, 3},
		{4, 2, 6, 8, 5, 3, 7, 9, 1},
		{7, 1, 3, 9, 2, 4, 8, 5, 6},
		{9, 6, 1, 5, 3, 7, 2, 8, 4},
		{2, 8, 7, 4, 1, 9, 6, 3, 5},
		{3, 4, 5, 2, 8, 6, 1, 7, 9},
	}

	solved, ok := solveGrid(t, puzzle, sat.CDCL)
	if !ok {
		t.Fatal("puzzle reported unsatisfiable, want satisfiable")
	}
	validSolution(t, solved, puzzle)
	if diff := cmp.Diff([][]int(want), [][]int(solved)); diff != "" {
		t.Errorf("solved grid mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeRejectsNonSquareSize(t *testing.T) {
	g := Grid{
		{0, 0, 0},
		{0, 0, 0},
		{0, 0, 0},
	}
	s := sat.NewDefaultSolver()
	if err := Encode(g, s); err == nil {
		t.Error("Encode(3x3) = nil error, want an error (3 is not a perfect square)")
	}
}

func TestEncodeOverconstrainedGridIsUnsatisfiable(t *testing.T) {
	// Two identical digits in the same row can never be resolved.
	g := Grid{
		{1, 1, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	}
	s := sat.NewDefaultSolver()
	if err := Encode(g, s); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	result, err := s.Solve()
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if result != sat.Unsatisfiable {
		t.Errorf("Solve() = %v, want Unsatisfiable", result)
	}
}
