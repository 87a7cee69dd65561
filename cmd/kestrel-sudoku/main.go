// Command kestrel-sudoku encodes a Sudoku puzzle as CNF, solves it, and
// prints the solved grid.
package main

import (
	"flag"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/kestrelsat/kestrel/internal/sat"
	"github.com/kestrelsat/kestrel/internal/sudoku"
)

var flagStrategy = flag.String(
	"strategy",
	"cdcl",
	"search strategy: cdcl, dpll, or dp (resolution cannot produce a model)",
)

// example9x9 is the classic example puzzle (0 marks an empty cell),
// used when no -grid flag is given.
var example9x9 = sudoku.Grid{
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

var flagGrid = flag.String(
	"grid",
	"",
	"81 (or n*n) digits, row-major, 0 for empty cells; defaults to a built-in example",
)

func parseStrategy(s string) (sat.Strategy, error) {
	switch s {
	case "cdcl":
		return sat.CDCL, nil
	case "dpll":
		return sat.DPLL, nil
	case "dp":
		return sat.DP, nil
	case "resolution":
		return 0, fmt.Errorf("resolution does not produce a model, cannot decode a solved grid")
	default:
		return 0, fmt.Errorf("unknown strategy %q", s)
	}
}

func parseGrid(s string) (sudoku.Grid, error) {
	digits := strings.Fields(s)
	if len(digits) == 1 && len(digits[0]) > 1 {
		// also accept one long digit string with no separators
		one := digits[0]
		digits = make([]string, len(one))
		for i, r := range one {
			digits[i] = string(r)
		}
	}
	n := 0
	for n*n < len(digits) {
		n++
	}
	if n*n != len(digits) {
		return nil, fmt.Errorf("grid has %d cells, not a perfect square", len(digits))
	}

	g := make(sudoku.Grid, n)
	for row := range g {
		g[row] = make([]int, n)
		for col := range g[row] {
			v, err := strconv.Atoi(digits[row*n+col])
			if err != nil {
				return nil, fmt.Errorf("invalid cell value %q: %w", digits[row*n+col], err)
			}
			g[row][col] = v
		}
	}
	return g, nil
}

func printGrid(g sudoku.Grid) {
	for _, row := range g {
		var sb strings.Builder
		for i, v := range row {
			if i > 0 {
				sb.WriteByte(' ')
			}
			fmt.Fprintf(&sb, "%d", v)
		}
		fmt.Println(sb.String())
	}
}

func optionsFor(strategy sat.Strategy) sat.Options {
	switch strategy {
	case sat.DPLL:
		return sat.DefaultDPLLOptions
	case sat.DP:
		return sat.DefaultDPOptions
	default:
		return sat.DefaultOptions
	}
}

func main() {
	flag.Parse()

	strategy, err := parseStrategy(*flagStrategy)
	if err != nil {
		log.Fatal(err)
	}

	grid := example9x9
	if *flagGrid != "" {
		grid, err = parseGrid(*flagGrid)
		if err != nil {
			log.Fatal(err)
		}
	}

	s := sat.NewSolver(optionsFor(strategy))
	if err := sudoku.Encode(grid, s); err != nil {
		log.Fatal(err)
	}

	result, err := s.Solve()
	if err != nil {
		log.Fatal(err)
	}

	switch result {
	case sat.Satisfiable:
		printGrid(sudoku.Decode(s.Model(), grid.N()))
	case sat.Unsatisfiable:
		fmt.Println("no solution")
	case sat.Unknown:
		fmt.Printf("unknown: %s\n", s.StopReason())
	}
}
