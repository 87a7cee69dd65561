package sat

import "time"

// watcher is one entry of a literal's watch list: the clause being
// watched, plus a "guard" literal (the clause's other watch at the time
// the entry was added). If the guard is already true the clause is
// satisfied and does not need to be loaded at all during propagation —
// this is purely a performance shortcut over loading the clause to check
// its watches and never changes which clause is eventually returned as
// conflicting.
type watcher struct {
	clause *Clause
	guard  Literal
}

// Solver is a CDCL/DPLL/DP/Resolution solver over a shared clause
// database. Which search procedure Solve runs is fixed by opts.Strategy
// at construction and never changes over the solver's lifetime.
type Solver struct {
	opts Options

	// Clause database: original clauses are never removed; learned
	// clauses are appended by conflict analysis and pruned by reduceDB.
	constraints []*Clause
	learned     []*Clause
	nextClause  int32

	clauseInc float64

	// Variable activity (VSIDS) and branching order.
	activities []float64
	varInc     float64
	order      *varOrder

	// Watch lists indexed by literal.
	watchers [][]watcher

	// Propagation queue: literals assigned but not yet propagated.
	propQueue *Queue[Literal]

	// assigns[l] is the value of literal l under the current assignment.
	// assigns[l] and assigns[l.Opposite()] are always kept consistent:
	// setting one sets the other to its Opposite.
	assigns []LBool

	// Trail state.
	trail    []Literal
	trailLim []int // level_starts
	reason   []*Clause
	level    []int

	// unsat is latched once a root-level (level 0) conflict is detected,
	// either directly from AddClause or during search; once set, every
	// subsequent Solve call returns UNSATISFIABLE without re-deriving it.
	unsat bool

	// poisoned is latched when an internal invariant fault is recovered;
	// once set, the instance refuses all further operations.
	poisoned    bool
	poisonedMsg string

	// debugChecks enables the (expensive) per-fixpoint invariant checks
	// in invariants.go; set from Options.DebugChecks.
	debugChecks bool

	// Search statistics.
	stats Stats

	startTime   time.Time
	hasBudget   bool
	maxConflict int64
	timeout     time.Duration
	cancel      func() bool

	// model holds the last satisfying assignment found, one bool per
	// variable (true means the positive literal holds).
	model []bool

	// stopReason explains the most recent Unknown result, if any.
	stopReason StopReason

	// seenVar is the "seen" set reused across calls to analyze.
	seenVar *ResetSet

	// Reusable scratch buffers to avoid per-conflict allocation.
	tmpWatchers []watcher
	tmpLearnts  []Literal
	tmpReason   []Literal

	restart restartPolicy
}

// NewSolver returns a Solver configured with the given options. Use
// DefaultOptions, DefaultDPLLOptions, or DefaultDPOptions as a starting
// point; CDCL and Resolution share DefaultOptions.
func NewSolver(opts Options) *Solver {
	s := &Solver{
		opts:        opts,
		clauseInc:   1,
		varInc:      1,
		propQueue:   NewQueue[Literal](128),
		seenVar:     &ResetSet{},
		maxConflict: -1,
		timeout:     -1,
		debugChecks: opts.DebugChecks,
	}
	s.order = newVarOrder(opts.UsePhaseSaving)

	if opts.ConflictBudget >= 0 {
		s.hasBudget = true
		s.maxConflict = opts.ConflictBudget
	}
	if opts.TimeBudget >= 0 {
		s.hasBudget = true
		s.timeout = opts.TimeBudget
	}
	s.restart = newRestartPolicy(opts)
	return s
}

// NewDefaultSolver returns a Solver configured with DefaultOptions (CDCL).
func NewDefaultSolver() *Solver {
	return NewSolver(DefaultOptions)
}

// SetCancel installs a cooperative cancellation callback, polled between
// propagation rounds and between decisions. A nil callback (the default)
// disables cancellation.
func (s *Solver) SetCancel(fn func() bool) {
	s.cancel = fn
}

func (s *Solver) shouldStop() bool {
	if s.cancel != nil && s.cancel() {
		return true
	}
	if !s.hasBudget {
		return false
	}
	if s.maxConflict >= 0 && s.maxConflict <= s.stats.Conflicts {
		return true
	}
	if s.timeout >= 0 && s.timeout <= time.Since(s.startTime) {
		return true
	}
	return false
}

func (s *Solver) requirePristine() error {
	if s.poisoned {
		return ErrPoisoned
	}
	return nil
}

func (s *Solver) nextClauseID() int32 {
	id := s.nextClause
	s.nextClause++
	return id
}

// NumVariables returns the number of variables created so far.
func (s *Solver) NumVariables() int {
	return len(s.assigns) / 2
}

// NumAssigns returns the number of currently assigned variables.
func (s *Solver) NumAssigns() int {
	return len(s.trail)
}

// NumConstraints returns the number of original clauses.
func (s *Solver) NumConstraints() int {
	return len(s.constraints)
}

// NumLearned returns the number of currently live learned clauses.
func (s *Solver) NumLearned() int {
	return len(s.learned)
}

// VarValue returns the current value of variable x's positive literal.
func (s *Solver) VarValue(x int) LBool {
	return s.assigns[PositiveLiteral(x)]
}

// LitValue returns the current value of literal l.
func (s *Solver) LitValue(l Literal) LBool {
	return s.assigns[l]
}

// AddVariable creates a new variable and returns its ID.
func (s *Solver) AddVariable() int {
	id := s.NumVariables()
	s.watchers = append(s.watchers, nil, nil)
	s.reason = append(s.reason, nil)
	s.level = append(s.level, -1)
	s.activities = append(s.activities, 0)
	s.assigns = append(s.assigns, LUnknown, LUnknown)
	s.seenVar.Expand()
	s.order.addVar(0, false)
	return id
}

// watch registers c to be visited when literal on becomes true, recording
// guard as the clause's other watch at the time of registration.
func (s *Solver) watch(c *Clause, on Literal, guard Literal) {
	s.watchers[on] = append(s.watchers[on], watcher{clause: c, guard: guard})
}

// unwatch removes c from on's watch list using the append-and-prune
// pattern (read cursor copies surviving entries over a write cursor, then
// the slice is truncated) recommended for safe in-place pruning.
func (s *Solver) unwatch(c *Clause, on Literal) {
	list := s.watchers[on]
	w := 0
	for r := 0; r < len(list); r++ {
		if list[r].clause != c {
			list[w] = list[r]
			w++
		}
	}
	s.watchers[on] = list[:w]
}

// AddClause adds an original clause. It must only be called at decision
// level 0. Returns ErrRootLevelOnly otherwise. An empty clause or an
// immediate root-level conflict latches s.unsat, surfaced as a normal
// UNSAT result rather than an error.
func (s *Solver) AddClause(lits []Literal) error {
	if err := s.requirePristine(); err != nil {
		return err
	}
	if s.decisionLevel() != 0 {
		return ErrRootLevelOnly
	}
	c, ok := newClause(s, lits, false)
	if c != nil {
		s.constraints = append(s.constraints, c)
	}
	if !ok {
		s.unsat = true
	}
	return nil
}

// propagate drives unit propagation to fixpoint, returning the
// conflicting clause if one is found, or nil once the queue is empty.
func (s *Solver) propagate() *Clause {
	for s.propQueue.Size() > 0 {
		l := s.propQueue.Pop()
		s.stats.Propagations++

		s.tmpWatchers = append(s.tmpWatchers[:0], s.watchers[l]...)
		s.watchers[l] = s.watchers[l][:0]

		for i, w := range s.tmpWatchers {
			if s.LitValue(w.guard) == True {
				s.watchers[l] = append(s.watchers[l], w)
				continue
			}

			if w.clause.propagate(s, l) {
				continue
			}

			// Conflict: restore the remaining (unvisited) watchers and
			// drop the rest of the queue; the caller (search loop) is
			// about to analyze and backjump, which invalidates it anyway.
			s.watchers[l] = append(s.watchers[l], s.tmpWatchers[i+1:]...)
			s.propQueue.Clear()
			return s.tmpWatchers[i].clause
		}
	}
	if s.debugChecks {
		s.checkStateInvariants()
	}
	return nil
}

// enqueue assigns l to true (with the given reason, or nil for a decision
// or a restart-surviving root fact), appending it to the trail and the
// propagation queue. Returns false if l's variable was already assigned
// to the opposite value (a conflict), true otherwise (including the
// already-assigned-consistently case, which is a no-op).
func (s *Solver) enqueue(l Literal, reason *Clause) bool {
	switch s.LitValue(l) {
	case False:
		return false
	case True:
		return true
	default:
		v := l.VarID()
		s.assigns[l] = True
		s.assigns[l.Opposite()] = False
		s.level[v] = s.decisionLevel()
		s.reason[v] = reason
		s.trail = append(s.trail, l)
		s.propQueue.Push(l)
		if reason != nil {
			s.stats.Implications++
		}
		return true
	}
}

func (s *Solver) decisionLevel() int {
	return len(s.trailLim)
}

// bumpClauseActivity increases c's activity, rescaling the whole learned
// pool (together with the shared increment) if it grows too large.
func (s *Solver) bumpClauseActivity(c *Clause) {
	c.activity += s.clauseInc
	if c.activity > s.opts.RescaleThreshold {
		s.clauseInc *= 1e-100
		for _, l := range s.learned {
			l.activity *= 1e-100
		}
	}
}

// bumpVarActivity increases the VSIDS activity of l's variable and
// reorders it in the decision heap. Rescaling mirrors bumpClauseActivity.
func (s *Solver) bumpVarActivity(l Literal) {
	v := l.VarID()
	s.activities[v] += s.varInc
	if s.activities[v] > s.opts.RescaleThreshold {
		s.varInc *= 1e-100
		for i := range s.activities {
			s.activities[i] *= 1e-100
		}
	}
	s.order.bump(v, s.activities[v])
}

func (s *Solver) decayClauseActivity() {
	s.clauseInc /= s.opts.ClauseDecay
}

func (s *Solver) decayVarActivity() {
	s.varInc /= s.opts.VarDecay
}
