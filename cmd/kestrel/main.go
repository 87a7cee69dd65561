// Command kestrel solves a DIMACS CNF instance.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"time"

	"github.com/kestrelsat/kestrel/internal/dimacs"
	"github.com/kestrelsat/kestrel/internal/sat"
	"github.com/kestrelsat/kestrel/parsers"
)

var flagCPUProfile = flag.Bool(
	"cpuprof",
	false,
	"save pprof CPU profile in cpuprof",
)

var flagMemProfile = flag.Bool(
	"memprof",
	false,
	"save pprof memory profile in memprof",
)

var flagStrategy = flag.String(
	"strategy",
	"cdcl",
	"search strategy: cdcl, dpll, dp, or resolution",
)

var flagGzipped = flag.Bool(
	"gzip",
	false,
	"treat the instance file as gzip-compressed",
)

var flagStrict = flag.Bool(
	"strict",
	false,
	"reject a DIMACS header/body mismatch instead of tolerating it",
)

var flagLegacyParser = flag.Bool(
	"legacy-parser",
	false,
	"load the instance with the rhartert/dimacs-based loader instead of the built-in one",
)

var flagConflictBudget = flag.Int64(
	"max-conflicts",
	-1,
	"stop and report unknown after this many conflicts (-1 disables the budget)",
)

type config struct {
	instanceFile   string
	memProfile     bool
	cpuProfile     bool
	strategy       sat.Strategy
	gzipped        bool
	strict         bool
	legacyParser   bool
	conflictBudget int64
}

func parseConfig() (*config, error) {
	flag.Parse()

	if flag.NArg() == 0 || flag.Arg(0) == "" {
		return nil, fmt.Errorf("missing instance file")
	}

	strategy, err := parseStrategy(*flagStrategy)
	if err != nil {
		return nil, err
	}

	return &config{
		instanceFile:   flag.Arg(0),
		memProfile:     *flagMemProfile,
		cpuProfile:     *flagCPUProfile,
		strategy:       strategy,
		gzipped:        *flagGzipped,
		strict:         *flagStrict,
		legacyParser:   *flagLegacyParser,
		conflictBudget: *flagConflictBudget,
	}, nil
}

func parseStrategy(s string) (sat.Strategy, error) {
	switch s {
	case "cdcl":
		return sat.CDCL, nil
	case "dpll":
		return sat.DPLL, nil
	case "dp":
		return sat.DP, nil
	case "resolution":
		return sat.Resolution, nil
	default:
		return 0, fmt.Errorf("unknown strategy %q", s)
	}
}

func optionsFor(strategy sat.Strategy, conflictBudget int64) sat.Options {
	var opts sat.Options
	switch strategy {
	case sat.DPLL:
		opts = sat.DefaultDPLLOptions
	case sat.DP:
		opts = sat.DefaultDPOptions
	default:
		opts = sat.DefaultOptions
		opts.Strategy = strategy
	}
	opts.ConflictBudget = conflictBudget
	return opts
}

func run(cfg *config) error {
	s := sat.NewSolver(optionsFor(cfg.strategy, cfg.conflictBudget))

	if cfg.legacyParser {
		if err := parsers.LoadDIMACS(cfg.instanceFile, cfg.gzipped, s); err != nil {
			return fmt.Errorf("could not parse instance: %w", err)
		}
	} else {
		opts := dimacs.Options{Strict: cfg.strict, Gzipped: cfg.gzipped}
		if err := dimacs.LoadFile(cfg.instanceFile, opts, s); err != nil {
			return fmt.Errorf("could not parse instance: %w", err)
		}
	}

	fmt.Printf("c variables: %d\n", s.NumVariables())
	fmt.Printf("c clauses:   %d\n", s.NumConstraints())
	fmt.Printf("c strategy:  %s\n", cfg.strategy)

	t := time.Now()
	result, err := s.Solve()
	elapsed := time.Since(t)
	if err != nil {
		return fmt.Errorf("solve failed: %w", err)
	}

	stats := s.Stats()
	fmt.Printf("c time (sec):   %f\n", elapsed.Seconds())
	fmt.Printf("c conflicts:    %d\n", stats.Conflicts)
	fmt.Printf("c decisions:    %d\n", stats.Decisions)
	fmt.Printf("c propagations: %d\n", stats.Propagations)
	fmt.Printf("c restarts:     %d\n", stats.Restarts)
	fmt.Printf("c learned:      %d\n", stats.LearnedClauses)
	fmt.Printf("c deleted:      %d\n", stats.ClausesDeleted)
	fmt.Printf("c status:       %s\n", result)
	if result == sat.Unknown {
		fmt.Printf("c stop reason: %s\n", s.StopReason())
	}

	if result == sat.Satisfiable {
		if model := s.Model(); model != nil {
			if err := dimacs.WriteModel(os.Stdout, model); err != nil {
				return fmt.Errorf("writing model: %w", err)
			}
		}
	}

	return nil
}

func main() {
	cfg, err := parseConfig()
	if err != nil {
		log.Fatal(err)
	}

	if cfg.cpuProfile {
		f, err := os.Create("cpuprof")
		if err != nil {
			log.Fatal(err)
		}
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}

	if err := run(cfg); err != nil {
		log.Fatal(err)
	}

	if cfg.memProfile {
		f, err := os.Create("memprof")
		if err != nil {
			log.Fatal(err)
		}
		pprof.WriteHeapProfile(f)
		f.Close()
	}
}
