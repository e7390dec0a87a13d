package routing

import "github.com/sarchlab/meshnoc/noc"

// XY routes unicast packets in dimension order and floods broadcasts as a
// tree.
type XY struct{}

// Route returns the candidate outputs.
func (XY) Route(r RouterInfo, rd noc.RouteData) []noc.Direction {
	if rd.DstID == noc.Broadcast {
		return routeTree(r.Mesh(), rd)
	}

	return routeDimensionOrder(r.Mesh(), rd)
}

// Path routes unicast packets in dimension order and walks broadcasts along
// the horizontal snake.
type Path struct{}

// Route returns the candidate outputs.
func (Path) Route(r RouterInfo, rd noc.RouteData) []noc.Direction {
	if rd.DstID == noc.Broadcast {
		return routeSnake(r.Mesh(), horizontalSnake{}, rd)
	}

	return routeDimensionOrder(r.Mesh(), rd)
}

// RPath is like Path, but each broadcast picks the horizontal or the
// vertical snake with its PathDir.
type RPath struct{}

// Route returns the candidate outputs.
func (RPath) Route(r RouterInfo, rd noc.RouteData) []noc.Direction {
	if rd.DstID != noc.Broadcast {
		return routeDimensionOrder(r.Mesh(), rd)
	}

	if rd.PathDir == noc.PathVertical {
		return routeSnake(r.Mesh(), verticalSnake{}, rd)
	}

	return routeSnake(r.Mesh(), horizontalSnake{}, rd)
}

// LoadAware floods broadcasts as a tree unless the source marked the packet
// for the horizontal snake because it was congested at injection time.
type LoadAware struct{}

// Route returns the candidate outputs.
func (LoadAware) Route(r RouterInfo, rd noc.RouteData) []noc.Direction {
	if rd.DstID != noc.Broadcast {
		return routeDimensionOrder(r.Mesh(), rd)
	}

	if rd.Routine == noc.BroadcastPath {
		return routeSnake(r.Mesh(), horizontalSnake{}, rd)
	}

	return routeTree(r.Mesh(), rd)
}
