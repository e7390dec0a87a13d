package routing

import (
	"math"

	"github.com/sarchlab/meshnoc/noc"
)

// FirstCandidate keeps the order produced by the routing algorithm.
type FirstCandidate struct{}

// Select returns the first candidate.
func (FirstCandidate) Select(
	_ RouterInfo,
	candidates []noc.Direction,
	_ noc.RouteData,
) noc.Direction {
	return candidates[0]
}

// PerCycleUpdate does nothing.
func (FirstCandidate) PerCycleUpdate(RouterInfo) {}

// BufferLevel prefers the candidate whose downstream input buffer reported
// the most free slots. Local and Hub, which have no neighbor, are treated as
// having unlimited room. Ties go to the earlier candidate.
type BufferLevel struct{}

// Select returns the least loaded candidate.
func (BufferLevel) Select(
	r RouterInfo,
	candidates []noc.Direction,
	_ noc.RouteData,
) noc.Direction {
	best := candidates[0]
	bestFree := freeSlots(r, best)

	for _, d := range candidates[1:] {
		free := freeSlots(r, d)
		if free > bestFree {
			best = d
			bestFree = free
		}
	}

	return best
}

// PerCycleUpdate does nothing. The neighbors publish their free slots
// through the links every cycle.
func (BufferLevel) PerCycleUpdate(RouterInfo) {}

func freeSlots(r RouterInfo, d noc.Direction) int {
	if !d.IsCompass() {
		return math.MaxInt
	}

	free, ok := r.FreeSlotsNeighbor(d)
	if !ok {
		return -1
	}

	return free
}
