// Package routing provides the routing functions and the output selection
// policies of the mesh routers.
package routing

import "github.com/sarchlab/meshnoc/noc"

// RouterInfo is the view of a router that routing functions and selection
// strategies are allowed to look at.
type RouterInfo interface {
	LocalID() int
	Mesh() noc.Mesh

	// FreeSlotsNeighbor returns the number of free slots that the neighbor
	// in direction d last reported. The second return value is false if
	// there is no neighbor in that direction.
	FreeSlotsNeighbor(d noc.Direction) (int, bool)
}

// An Algorithm maps a routing request to the candidate output directions of
// a head flit. The router handles local delivery itself, so an Algorithm is
// only asked about packets that are not destined for the current node.
//
// Implementations must be deterministic and must not keep state between
// calls.
type Algorithm interface {
	Route(r RouterInfo, rd noc.RouteData) []noc.Direction
}

// A SelectionStrategy decides which of several available candidates is
// reserved first.
type SelectionStrategy interface {
	Select(
		r RouterInfo,
		candidates []noc.Direction,
		rd noc.RouteData,
	) noc.Direction

	// PerCycleUpdate is called once at the beginning of every router cycle.
	PerCycleUpdate(r RouterInfo)
}
