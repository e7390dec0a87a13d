package router

import (
	"fmt"

	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/meshnoc/noc"
	"github.com/sarchlab/meshnoc/routing"
)

// Builder can create new routers.
type Builder struct {
	engine sim.Engine
	freq   sim.Freq
	mesh   noc.Mesh

	bufferDepth    int
	bufferDepthFor map[noc.Direction]int
	maxPacketSize  int

	algorithm routing.Algorithm
	selection routing.SelectionStrategy

	injectCongestionThreshold float64
	budget                    *DrainBudget
	withHub                   bool
}

// NewBuilder creates a builder with default parameters.
func NewBuilder() Builder {
	return Builder{
		freq:                      1 * sim.GHz,
		mesh:                      noc.Mesh{Width: 4, Height: 4},
		bufferDepth:               4,
		maxPacketSize:             8,
		algorithm:                 routing.XY{},
		selection:                 routing.FirstCandidate{},
		injectCongestionThreshold: 0.5,
	}
}

// WithEngine sets the engine.
func (b Builder) WithEngine(engine sim.Engine) Builder {
	b.engine = engine
	return b
}

// WithFreq sets the frequency of the router.
func (b Builder) WithFreq(freq sim.Freq) Builder {
	b.freq = freq
	return b
}

// WithMesh sets the dimensions of the mesh that the router belongs to.
func (b Builder) WithMesh(mesh noc.Mesh) Builder {
	b.mesh = mesh
	return b
}

// WithBufferDepth sets the capacity of every input queue.
func (b Builder) WithBufferDepth(depth int) Builder {
	if depth < 1 {
		panic("buffer depth must be at least 1")
	}

	b.bufferDepth = depth

	return b
}

// WithBufferDepthFor overrides the capacity of the input queue of one
// direction.
func (b Builder) WithBufferDepthFor(d noc.Direction, depth int) Builder {
	if depth < 1 {
		panic("buffer depth must be at least 1")
	}

	overrides := make(map[noc.Direction]int, len(b.bufferDepthFor)+1)
	for k, v := range b.bufferDepthFor {
		overrides[k] = v
	}

	overrides[d] = depth
	b.bufferDepthFor = overrides

	return b
}

// WithMaxPacketSize sets the longest packet, in flits, that a backup unit
// must be able to hold.
func (b Builder) WithMaxPacketSize(n int) Builder {
	b.maxPacketSize = n
	return b
}

// WithRoutingAlgorithm sets the routing algorithm.
func (b Builder) WithRoutingAlgorithm(a routing.Algorithm) Builder {
	b.algorithm = a
	return b
}

// WithSelectionStrategy sets the policy that picks among several available
// outputs.
func (b Builder) WithSelectionStrategy(s routing.SelectionStrategy) Builder {
	b.selection = s
	return b
}

// WithInjectCongestionThreshold sets the free-slot ratio of the local input
// queue below which a newly injected broadcast is sent along the snake path
// instead of the tree.
func (b Builder) WithInjectCongestionThreshold(threshold float64) Builder {
	b.injectCongestionThreshold = threshold
	return b
}

// WithDrainBudget sets the budget shared by all routers of the mesh.
func (b Builder) WithDrainBudget(budget *DrainBudget) Builder {
	b.budget = budget
	return b
}

// WithHub enables the hub port.
func (b Builder) WithHub(enabled bool) Builder {
	b.withHub = enabled
	return b
}

// Build creates the router of the given node. Ports that face the mesh
// boundary are disabled, and so is the hub port unless it is enabled.
func (b Builder) Build(name string, id int) *Router {
	if id < 0 || id >= b.mesh.Size() {
		panic(fmt.Sprintf("node %d is outside of a %dx%d mesh",
			id, b.mesh.Width, b.mesh.Height))
	}

	r := &Router{
		id:                        id,
		mesh:                      b.mesh,
		algorithm:                 b.algorithm,
		selection:                 b.selection,
		startFrom:                 int(noc.Local),
		injectCongestionThreshold: b.injectCongestionThreshold,
		budget:                    b.budget,
	}

	r.TickingComponent = sim.NewTickingComponent(name, b.engine, b.freq, r)
	r.table = NewReservationTable(name + ".ReservationTable")

	for _, d := range noc.AllPorts() {
		depth := b.bufferDepth
		if override, found := b.bufferDepthFor[d]; found {
			depth = override
		}

		r.queues[d] = NewFlitQueue(
			fmt.Sprintf("%s.%sInBuf", name, d.Name()), depth)
		r.backups[d] = NewBackupUnit(
			fmt.Sprintf("%s.%sBackup", name, d.Name()), b.maxPacketSize)
	}

	for _, d := range noc.CompassDirections() {
		if b.mesh.IsBoundary(id, d) {
			r.queues[d].Disable()
			r.table.Invalidate(d)
		}
	}

	if !b.withHub {
		r.queues[noc.Hub].Disable()
		r.table.Invalidate(noc.Hub)
	}

	return r
}
