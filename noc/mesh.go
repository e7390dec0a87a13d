package noc

import "fmt"

// Coord is the position of a node in the mesh. X grows eastwards and Y grows
// southwards.
type Coord struct {
	X, Y int
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d, %d)", c.X, c.Y)
}

// Mesh describes the dimensions of a 2-D mesh.
type Mesh struct {
	Width, Height int
}

// Size returns the number of nodes.
func (m Mesh) Size() int {
	return m.Width * m.Height
}

// Coord converts a node id to its coordinate.
func (m Mesh) Coord(id int) Coord {
	return Coord{X: id % m.Width, Y: id / m.Width}
}

// ID converts a coordinate to its node id.
func (m Mesh) ID(c Coord) int {
	return c.Y*m.Width + c.X
}

// Contains returns true if the coordinate is inside the mesh.
func (m Mesh) Contains(c Coord) bool {
	return c.X >= 0 && c.X < m.Width && c.Y >= 0 && c.Y < m.Height
}

// IsBoundary returns true if the node has no neighbor in the given compass
// direction.
func (m Mesh) IsBoundary(id int, d Direction) bool {
	_, ok := m.Neighbor(id, d)
	return !ok
}

// Neighbor returns the id of the node next to id in the given compass
// direction.
func (m Mesh) Neighbor(id int, d Direction) (int, bool) {
	c := m.Coord(id)

	switch d {
	case North:
		c.Y--
	case South:
		c.Y++
	case East:
		c.X++
	case West:
		c.X--
	default:
		panic("neighbors exist only in compass directions")
	}

	if !m.Contains(c) {
		return 0, false
	}

	return m.ID(c), true
}

// RouteData carries what a routing algorithm needs to route a head flit.
type RouteData struct {
	CurrentID int
	SrcID     int
	DstID     int
	DirIn     Direction
	Routine   BroadcastRoutine
	PathDir   PathDir
}
