//go:build clausepool

package sat

import (
	"math/bits"
	"sync"
)

// allocLiterals/releaseLiterals pool literal slices by capacity bucket
// instead of letting every clause allocate and the garbage collector
// reclaim it. Clause literal slices churn constantly during
// reduceDB/simplify passes on a long-running search, which makes them a
// good fit for sync.Pool reuse; the default (non-tagged) build stays
// plain make()/GC for simplicity.

const nPools = 4
const lastCapa = 1 << nPools

var pools [nPools]sync.Pool

func init() {
	for i := 0; i < nPools; i++ {
		capa := 1 << (i + 1)
		pools[i].New = func() any {
			s := make([]Literal, 0, capa)
			return &s
		}
	}
}

func pid(capa int) int {
	if capa >= lastCapa {
		return nPools - 1
	}
	p := bits.Len(uint(capa)) - 1
	if capa < (1 << p) {
		p--
	}
	if p < 0 {
		p = 0
	}
	return p
}

func allocLiterals(capa int) []Literal {
	ref := pools[pid(capa)].Get().(*[]Literal)
	if capa <= lastCapa || cap(*ref) >= capa {
		return (*ref)[:0]
	}
	// The last pool's slices aren't guaranteed large enough for an
	// unusually wide clause; drop this one and allocate exactly what is
	// needed instead of growing it via append.
	return make([]Literal, 0, capa)
}

func releaseLiterals(lits []Literal) {
	s := lits[:0]
	pools[pid(cap(s))].Put(&s)
}
