package sat

import "time"

// Model returns the last satisfying assignment found by Solve, or nil if
// none has been found yet. model[v] is the value assigned to variable v.
func (s *Solver) Model() []bool {
	return s.model
}

// StopReason explains the most recent Unknown result.
func (s *Solver) StopReason() StopReason {
	return s.stopReason
}

func (s *Solver) saveModel() {
	model := make([]bool, s.NumVariables())
	for v := range model {
		lb := s.VarValue(v)
		checkInvariant(lb != LUnknown, "saveModel called with an unassigned variable")
		model[v] = lb == True
	}
	s.model = model
}

// Solve runs the configured strategy to completion, a budget, or a
// cancellation, and reports the verdict. Internal invariant faults
// raised anywhere during the call are recovered here, poisoning the
// instance: every subsequent call on it returns ErrPoisoned-flavored
// results instead of silently continuing on corrupted state.
func (s *Solver) Solve() (result Result, err error) {
	if err := s.requirePristine(); err != nil {
		return Unknown, err
	}

	defer func() {
		if r := recover(); r != nil {
			if iv, ok := r.(*invariantViolation); ok {
				s.poisoned = true
				s.poisonedMsg = iv.msg
				result = Unknown
				err = iv
				return
			}
			panic(r) // not ours to handle
		}
	}()

	s.startTime = time.Now()
	s.stopReason = NotStopped

	switch s.opts.Strategy {
	case DPLL:
		result = s.solveDPLL()
	case DP:
		result = s.solveDP()
	case Resolution:
		result = s.solveResolution()
	default:
		result = s.solveCDCL()
	}

	if result == Unknown && s.stopReason == NotStopped {
		if s.shouldStop() {
			s.stopReason = classifyStop(s)
		}
	}
	return result, nil
}

func classifyStop(s *Solver) StopReason {
	if s.cancel != nil && s.cancel() {
		return Cancelled
	}
	return BudgetExceeded
}

// solveCDCL is the top-level CDCL loop: propagate; on a root-level
// conflict return UNSAT; on any other conflict, analyze, learn, and
// backjump; with an empty conflict and every variable assigned, return
// SAT; otherwise restart or decide.
func (s *Solver) solveCDCL() Result {
	if s.unsat {
		return Unsatisfiable
	}

	for {
		if conflict := s.propagate(); conflict != nil {
			s.stats.Conflicts++

			if s.decisionLevel() == 0 {
				s.unsat = true
				return Unsatisfiable
			}

			learnt, backjumpLevel := s.analyze(conflict)
			s.cancelUntil(backjumpLevel)
			s.record(learnt)

			s.decayClauseActivity()
			s.decayVarActivity()

			if s.restart.shouldRestart(s.stats.Conflicts) {
				s.stats.Restarts++
				s.restart.onRestart(s.stats.Conflicts)
				s.cancelUntil(0)
			}
			continue
		}

		if s.decisionLevel() == 0 {
			if !s.simplify() {
				return Unsatisfiable
			}
		}

		if s.restart.shouldReduce(s.NumLearned(), s.NumConstraints()) {
			s.reduceDB()
			s.restart.onReduce(s.NumConstraints())
		}

		if s.shouldStop() {
			s.cancelUntil(0)
			return Unknown
		}

		if s.NumAssigns() == s.NumVariables() {
			s.saveModel()
			s.cancelUntil(0)
			return Satisfiable
		}

		l := s.order.next(s)
		s.assume(l)
	}
}
