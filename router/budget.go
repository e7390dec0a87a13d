package router

import "sync/atomic"

// DrainBudget counts the flits delivered to local ports across a whole
// mesh. Once the limit is reached, every component that shares the budget
// stops ticking and the engine runs dry.
//
// A nil budget never runs out.
type DrainBudget struct {
	limit   uint64
	drained atomic.Uint64
}

// NewDrainBudget creates a budget of limit flits. A limit of 0 means
// unlimited.
func NewDrainBudget(limit uint64) *DrainBudget {
	return &DrainBudget{limit: limit}
}

// Consume records one delivered flit.
func (b *DrainBudget) Consume() {
	if b == nil {
		return
	}

	b.drained.Add(1)
}

// Drained returns the number of delivered flits.
func (b *DrainBudget) Drained() uint64 {
	if b == nil {
		return 0
	}

	return b.drained.Load()
}

// Exhausted returns true once the limit has been reached.
func (b *DrainBudget) Exhausted() bool {
	if b == nil || b.limit == 0 {
		return false
	}

	return b.drained.Load() >= b.limit
}
