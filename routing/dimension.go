package routing

import "github.com/sarchlab/meshnoc/noc"

// routeDimensionOrder moves along X until the column matches and then along
// Y.
func routeDimensionOrder(m noc.Mesh, rd noc.RouteData) []noc.Direction {
	cur := m.Coord(rd.CurrentID)
	dst := m.Coord(rd.DstID)

	switch {
	case dst.X > cur.X:
		return []noc.Direction{noc.East}
	case dst.X < cur.X:
		return []noc.Direction{noc.West}
	case dst.Y > cur.Y:
		return []noc.Direction{noc.South}
	case dst.Y < cur.Y:
		return []noc.Direction{noc.North}
	default:
		return nil
	}
}

// routeTree floods a broadcast outwards from the row of its source. Every
// node forwards north or south away from the source row, and nodes on the
// source row additionally forward east or west away from the source.
func routeTree(m noc.Mesh, rd noc.RouteData) []noc.Direction {
	cur := m.Coord(rd.CurrentID)
	src := m.Coord(rd.SrcID)

	dirs := make([]noc.Direction, 0, 4)

	if cur.Y >= src.Y && cur.Y < m.Height-1 {
		dirs = append(dirs, noc.South)
	}

	if cur.Y <= src.Y && cur.Y > 0 {
		dirs = append(dirs, noc.North)
	}

	if cur.Y == src.Y {
		if cur.X >= src.X && cur.X < m.Width-1 {
			dirs = append(dirs, noc.East)
		}

		if cur.X <= src.X && cur.X > 0 {
			dirs = append(dirs, noc.West)
		}
	}

	return dirs
}
