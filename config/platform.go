package config

import (
	"fmt"
	"io"

	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/meshnoc/noc"
	"github.com/sarchlab/meshnoc/router"
)

// A Mesh is a grid of connected routers. Routers can be retrieved by node id
// with m.Routers[id].
type Mesh struct {
	Name     string
	Geometry noc.Mesh
	Params   Params
	Routers  []*router.Router

	injectLinks []*noc.Link
	ejectLinks  []*noc.Link
	budget      *router.DrainBudget
}

// Size returns the number of nodes.
func (m *Mesh) Size() int {
	return len(m.Routers)
}

// Router returns the router of the given node.
func (m *Mesh) Router(id int) *router.Router {
	if id < 0 || id >= len(m.Routers) {
		panic(fmt.Sprintf("node %d is not in mesh %s", id, m.Name))
	}

	return m.Routers[id]
}

// InjectLink returns the link that carries flits from the processing element
// of the node into its router.
func (m *Mesh) InjectLink(id int) *noc.Link {
	return m.injectLinks[id]
}

// EjectLink returns the link that carries flits from the router of the node
// to its processing element.
func (m *Mesh) EjectLink(id int) *noc.Link {
	return m.ejectLinks[id]
}

// Budget returns the drain budget shared by all routers.
func (m *Mesh) Budget() *router.DrainBudget {
	return m.budget
}

// AcceptHook registers a hook with every router.
func (m *Mesh) AcceptHook(hook sim.Hook) {
	for _, r := range m.Routers {
		r.AcceptHook(hook)
	}
}

// RoutedFlits returns the number of flits that crossed a router from one
// neighbor to another, summed over all routers.
func (m *Mesh) RoutedFlits() uint64 {
	var total uint64
	for _, r := range m.Routers {
		total += r.RoutedFlits()
	}

	return total
}

// FlitsCount returns the number of flits buffered in the whole mesh.
func (m *Mesh) FlitsCount() int {
	total := 0
	for _, r := range m.Routers {
		total += r.FlitsCount()
	}

	return total
}

// Dump writes the state of every router.
func (m *Mesh) Dump(w io.Writer) {
	for _, r := range m.Routers {
		r.Dump(w)
	}
}
