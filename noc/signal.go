package noc

// Signal is a clocked register. A value written in cycle c becomes visible to
// reads in cycles after c, never in c itself, so the order in which
// components are ticked within one cycle does not matter.
type Signal[T any] struct {
	value   T
	next    T
	pending bool
	writeAt uint64
}

// Write latches v at the end of the given cycle. A later write in the same
// cycle replaces an earlier one.
func (s *Signal[T]) Write(cycle uint64, v T) {
	s.settle(cycle)
	s.next = v
	s.pending = true
	s.writeAt = cycle
}

// Read returns the value as it was at the beginning of the given cycle.
func (s *Signal[T]) Read(cycle uint64) T {
	s.settle(cycle)
	return s.value
}

func (s *Signal[T]) settle(cycle uint64) {
	if s.pending && s.writeAt < cycle {
		s.value = s.next
		s.pending = false
	}
}
