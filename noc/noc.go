// Package noc defines the commonly used data structures of the mesh
// network-on-chip.
package noc

// Direction identifies a port of a mesh router.
type Direction int

// Port directions. The four compass directions come first so that they can
// be used as indices of per-neighbor arrays.
const (
	North Direction = iota
	East
	South
	West
	Local
	Hub
)

// Sentinels used in place of a port.
const (
	// NotReserved marks an output that no input currently owns.
	NotReserved Direction = -1

	// NotValid marks a port that does not exist, e.g. at the mesh boundary.
	NotValid Direction = -2
)

const (
	// NumDirections is the number of compass directions.
	NumDirections = 4

	// NumPorts is the number of ports of a router: the compass directions,
	// the local port and the hub port.
	NumPorts = NumDirections + 2
)

// AllPorts returns every port of a router in index order.
func AllPorts() []Direction {
	return []Direction{North, East, South, West, Local, Hub}
}

// CompassDirections returns the four neighbor-facing directions.
func CompassDirections() []Direction {
	return []Direction{North, East, South, West}
}

// Name returns the name of the direction.
func (d Direction) Name() string {
	switch d {
	case North:
		return "North"
	case East:
		return "East"
	case South:
		return "South"
	case West:
		return "West"
	case Local:
		return "Local"
	case Hub:
		return "Hub"
	default:
		panic("invalid direction")
	}
}

func (d Direction) String() string {
	switch d {
	case NotReserved:
		return "NotReserved"
	case NotValid:
		return "NotValid"
	}

	if d < North || d > Hub {
		return "Unknown"
	}

	return d.Name()
}

// IsCompass returns true if the direction faces a mesh neighbor.
func (d Direction) IsCompass() bool {
	return d >= North && d <= West
}

// Opposite returns the direction that a neighbor uses to refer back to this
// side of the link.
func (d Direction) Opposite() Direction {
	switch d {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	case West:
		return East
	default:
		panic("only compass directions have an opposite")
	}
}
