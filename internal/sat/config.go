package sat

import "time"

// Strategy selects which of the four solving strategies a Solver runs.
// They share the clause database but are not interleaved at runtime:
// the strategy is fixed at construction time.
type Strategy int

const (
	// CDCL is the core strategy: watched-literal BCP, first-UIP conflict
	// analysis, non-chronological backtracking, VSIDS branching, and
	// learned-clause management.
	CDCL Strategy = iota
	// DPLL is chronological backtracking with unit propagation and,
	// optionally, a one-shot pure-literal pass. No clause learning.
	DPLL
	// DP is the Davis-Putnam procedure: iterated unit propagation, pure
	// literal elimination, and variable elimination by resolution. It
	// does not use a trail.
	DP
	// Resolution saturates the clause set under pairwise resolution.
	Resolution
)

func (s Strategy) String() string {
	switch s {
	case CDCL:
		return "CDCL"
	case DPLL:
		return "DPLL"
	case DP:
		return "DP"
	case Resolution:
		return "Resolution"
	default:
		return "Unknown"
	}
}

// Options configures a Solver. The zero value is not meaningful; use
// DefaultOptions as a starting point.
type Options struct {
	// Strategy selects the solving algorithm. Defaults to CDCL.
	Strategy Strategy

	// RestartInitial is the conflict budget of the first restart interval.
	RestartInitial int
	// RestartFactor is the growth factor applied to the restart interval
	// after each restart (geometric schedule).
	RestartFactor float64
	// UseLubyRestarts selects the Luby sequence instead of the geometric
	// schedule for restart intervals.
	UseLubyRestarts bool

	// VarDecay is the per-conflict decay applied to the VSIDS increment,
	// in (0, 1]. Smaller values favor recently-bumped variables more
	// strongly.
	VarDecay float64
	// ClauseDecay is the per-conflict decay applied to the learned-clause
	// activity increment, in (0, 1].
	ClauseDecay float64
	// RescaleThreshold bounds how large activities are allowed to grow
	// before all activities (and the shared increment) are rescaled. This
	// is a distinct knob from VarDecay/ClauseDecay.
	RescaleThreshold float64

	// LearnedCapInitial is the initial budget of learned clauses before
	// the deletion policy starts pruning.
	LearnedCapInitial int
	// LearnedCapGrowth is the growth factor applied to the learned-clause
	// cap after each reduction pass.
	LearnedCapGrowth float64

	// UsePhaseSaving enables phase saving: a decision reuses a variable's
	// last assigned value instead of always guessing one polarity.
	UsePhaseSaving bool
	// UsePureLiteral enables pure-literal elimination: a single pass before
	// the search for DPLL, and a pass on every iteration of the elimination
	// loop for DP. CDCL ignores it. Disabled in DefaultOptions (incompatible
	// with clause learning under backtracking) and enabled in
	// DefaultDPLLOptions and DefaultDPOptions.
	UsePureLiteral bool

	// ConflictBudget, if >= 0, bounds the number of conflicts CDCL/DPLL
	// will tolerate across all restarts before returning Unknown.
	ConflictBudget int64
	// TimeBudget, if >= 0, bounds wall-clock search time before returning
	// Unknown.
	TimeBudget time.Duration

	// DebugChecks re-validates the trail/assignment/watch invariants at
	// every propagation fixpoint. Expensive; meant for tests and for
	// debugging solver changes, not production solving.
	DebugChecks bool
}

// DefaultOptions holds MiniSAT-style tuning defaults plus the
// restart/cap/budget knobs. It is the default for CDCL and Resolution,
// where pure-literal elimination is disabled: it is incompatible with
// clause learning under backtracking, and meaningless for saturating
// resolution.
var DefaultOptions = Options{
	Strategy:          CDCL,
	RestartInitial:    100,
	RestartFactor:     1.5,
	UseLubyRestarts:   false,
	VarDecay:          0.95,
	ClauseDecay:       0.999,
	RescaleThreshold:  1e100,
	LearnedCapInitial: 0, // 0 means "derive from NumConstraints at Solve time"
	LearnedCapGrowth:  1.05,
	UsePhaseSaving:    true,
	UsePureLiteral:    false,
	ConflictBudget:    -1,
	TimeBudget:        -1,
}

// DefaultDPLLOptions and DefaultDPOptions are DefaultOptions with
// UsePureLiteral turned on, since both strategies physically rewrite
// clauses and pure-literal elimination composes cleanly with them.

// DefaultDPLLOptions is DefaultOptions tailored to the DPLL strategy.
var DefaultDPLLOptions = withPureLiteral(DPLL)

// DefaultDPOptions is DefaultOptions tailored to the DP strategy.
var DefaultDPOptions = withPureLiteral(DP)

func withPureLiteral(strat Strategy) Options {
	o := DefaultOptions
	o.Strategy = strat
	o.UsePureLiteral = true
	return o
}
