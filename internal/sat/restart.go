package sat

// restartPolicy decides when the search loop should restart (backtrack to
// level 0 while keeping the clause database) and when the learned-clause
// database should be reduced. It combines three signals:
//
//   - a conflict-count interval, either geometric (factor opts.RestartFactor,
//     default 1.5) or the Luby sequence scaled by RestartInitial;
//   - an EMA-based early trigger: when the moving average of
//     recently-learned clauses' LBD is much worse than the long-run
//     average, the search is thrashing and restarting sooner
//     (Glucose-style) tends to help;
//   - a learned-clause cap that grows after every reduceDB pass.
type restartPolicy struct {
	useLuby bool
	factor  float64
	initial int

	conflictsAtLastRestart int64
	nextInterval           float64
	lubyIndex              int

	fastLBD ema
	slowLBD ema

	learnedCap    int
	capGrowth     float64
}

func newRestartPolicy(opts Options) restartPolicy {
	initial := opts.RestartInitial
	if initial <= 0 {
		initial = 100
	}
	factor := opts.RestartFactor
	if factor <= 1 {
		factor = 1.5
	}
	capGrowth := opts.LearnedCapGrowth
	if capGrowth <= 1 {
		capGrowth = 1.05
	}
	return restartPolicy{
		useLuby:      opts.UseLubyRestarts,
		factor:       factor,
		initial:      initial,
		nextInterval: float64(initial),
		fastLBD:      newEMA(0.95),
		slowLBD:      newEMA(0.998),
		learnedCap:   opts.LearnedCapInitial,
		capGrowth:    capGrowth,
	}
}

// onLearn records the LBD of a freshly learned clause into both the fast
// and slow moving averages used by shouldRestart's Glucose-style trigger.
func (rp *restartPolicy) onLearn(lbd int) {
	rp.fastLBD.add(float64(lbd))
	rp.slowLBD.add(float64(lbd))
}

// shouldRestart reports whether the search should backtrack to level 0
// now, given the total conflict count so far.
func (rp *restartPolicy) shouldRestart(totalConflicts int64) bool {
	// Glucose-style: a burst of unusually high-LBD learned clauses
	// relative to the long-run average means recent search effort is
	// producing poor-quality information; cut losses early.
	if rp.slowLBD.initialized() && rp.fastLBD.value() > 1.25*rp.slowLBD.value() {
		return true
	}

	sinceLast := totalConflicts - rp.conflictsAtLastRestart
	if rp.useLuby {
		return float64(sinceLast) >= float64(rp.initial)*luby(rp.lubyIndex+1)
	}
	return float64(sinceLast) >= rp.nextInterval
}

// onRestart advances the restart schedule after a restart has happened.
func (rp *restartPolicy) onRestart(totalConflicts int64) {
	rp.conflictsAtLastRestart = totalConflicts
	if rp.useLuby {
		rp.lubyIndex++
	} else {
		rp.nextInterval *= rp.factor
	}
}

// shouldReduce reports whether the learned-clause database has grown past
// its current cap.
func (rp *restartPolicy) shouldReduce(numLearned, numConstraints int) bool {
	capVal := rp.learnedCap
	if capVal <= 0 {
		capVal = numConstraints/3 + 1
	}
	return numLearned >= capVal
}

// onReduce grows the cap after a reduceDB pass.
func (rp *restartPolicy) onReduce(numConstraints int) {
	capVal := rp.learnedCap
	if capVal <= 0 {
		capVal = numConstraints/3 + 1
	}
	rp.learnedCap = int(float64(capVal) * rp.capGrowth)
}

// luby returns the i-th term (1-indexed) of the Luby sequence
// 1 1 2 1 1 2 4 1 1 2 1 1 2 4 8 ..., used as a restart-interval
// multiplier: it guarantees universal near-optimality of restart timing
// without knowing the "right" interval in advance.
func luby(i int) float64 {
	// Find k such that i == 2^k - 1, i.e. i+1 is a power of two: the
	// sequence's run boundaries.
	k := 1
	for k < i+1 {
		k *= 2
	}
	if k == i+1 {
		return float64(k / 2)
	}
	return luby(i - k/2 + 1)
}

// ema is a simple exponential moving average.
type ema struct {
	decay float64
	val   float64
	init  bool
}

func newEMA(decay float64) ema {
	return ema{decay: decay}
}

func (e *ema) add(x float64) {
	if !e.init {
		e.init = true
		e.val = x
		return
	}
	e.val = e.decay*e.val + x*(1-e.decay)
}

func (e ema) value() float64    { return e.val }
func (e ema) initialized() bool { return e.init }
