package routing

import "github.com/sarchlab/meshnoc/noc"

// A snake numbers the nodes of a mesh so that consecutive labels are
// neighbors.
type snake interface {
	label(m noc.Mesh, c noc.Coord) int
	coord(m noc.Mesh, label int) noc.Coord
}

type horizontalSnake struct{}

func (horizontalSnake) label(m noc.Mesh, c noc.Coord) int {
	return HorizontalLabel(m, c)
}

func (horizontalSnake) coord(m noc.Mesh, label int) noc.Coord {
	return HorizontalCoord(m, label)
}

type verticalSnake struct{}

func (verticalSnake) label(m noc.Mesh, c noc.Coord) int {
	return VerticalLabel(m, c)
}

func (verticalSnake) coord(m noc.Mesh, label int) noc.Coord {
	return VerticalCoord(m, label)
}

// HorizontalLabel numbers the nodes row by row, walking even rows eastwards
// and odd rows westwards.
func HorizontalLabel(m noc.Mesh, c noc.Coord) int {
	if c.Y%2 == 0 {
		return c.Y*m.Width + c.X
	}

	return (c.Y+1)*m.Width - c.X - 1
}

// HorizontalCoord is the inverse of HorizontalLabel.
func HorizontalCoord(m noc.Mesh, label int) noc.Coord {
	y := label / m.Width
	if y%2 == 0 {
		return noc.Coord{X: label - y*m.Width, Y: y}
	}

	return noc.Coord{X: (y+1)*m.Width - label - 1, Y: y}
}

// VerticalLabel numbers the nodes column by column, walking even columns
// southwards and odd columns northwards.
func VerticalLabel(m noc.Mesh, c noc.Coord) int {
	if c.X%2 == 0 {
		return c.X*m.Height + c.Y
	}

	return (c.X+1)*m.Height - c.Y - 1
}

// VerticalCoord is the inverse of VerticalLabel.
func VerticalCoord(m noc.Mesh, label int) noc.Coord {
	x := label / m.Height
	if x%2 == 0 {
		return noc.Coord{X: x, Y: label - x*m.Height}
	}

	return noc.Coord{X: x, Y: (x+1)*m.Height - label - 1}
}

// routeSnake walks a broadcast along the snake in both directions away from
// the label of its source.
func routeSnake(m noc.Mesh, s snake, rd noc.RouteData) []noc.Direction {
	cur := m.Coord(rd.CurrentID)
	curLabel := s.label(m, cur)
	srcLabel := s.label(m, m.Coord(rd.SrcID))

	dirs := make([]noc.Direction, 0, 2)

	if curLabel >= srcLabel && curLabel < m.Size()-1 {
		dirs = append(dirs, towards(cur, s.coord(m, curLabel+1)))
	}

	if curLabel <= srcLabel && curLabel > 0 {
		dirs = append(dirs, towards(cur, s.coord(m, curLabel-1)))
	}

	return dirs
}

// towards returns the direction from cur to its neighbor next.
func towards(cur, next noc.Coord) noc.Direction {
	switch {
	case next.Y > cur.Y:
		return noc.South
	case next.Y < cur.Y:
		return noc.North
	case next.X > cur.X:
		return noc.East
	default:
		return noc.West
	}
}
