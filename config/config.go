// Package config provides the parameters of a mesh simulation and a builder
// that creates and connects the routers of the mesh.
package config

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/meshnoc/noc"
	"github.com/sarchlab/meshnoc/router"
	"github.com/sarchlab/meshnoc/routing"
)

// MeshBuilder can build meshes of routers.
type MeshBuilder struct {
	engine   sim.Engine
	freq     sim.Freq
	params   Params
	registry *routing.Registry
}

// NewMeshBuilder creates a builder with the default parameters and every
// routing algorithm of the routing package.
func NewMeshBuilder() MeshBuilder {
	return MeshBuilder{
		freq:     1 * sim.GHz,
		params:   DefaultParams(),
		registry: routing.DefaultRegistry(),
	}
}

// WithEngine sets the engine that drives the mesh simulation.
func (b MeshBuilder) WithEngine(engine sim.Engine) MeshBuilder {
	b.engine = engine
	return b
}

// WithFreq sets the frequency of the routers.
func (b MeshBuilder) WithFreq(freq sim.Freq) MeshBuilder {
	b.freq = freq
	return b
}

// WithParams sets the parameters of the mesh.
func (b MeshBuilder) WithParams(params Params) MeshBuilder {
	b.params = params
	return b
}

// WithRegistry sets where routing algorithms and selection strategies are
// looked up by name.
func (b MeshBuilder) WithRegistry(registry *routing.Registry) MeshBuilder {
	b.registry = registry
	return b
}

// Build creates the routers and connects every pair of neighbors with a
// link in each direction. Every router also gets a local link in each
// direction, to be served by a processing element.
func (b MeshBuilder) Build(name string) (*Mesh, error) {
	if err := b.params.Validate(); err != nil {
		return nil, err
	}

	algorithm, err := b.registry.Lookup(b.params.RoutingAlgorithm)
	if err != nil {
		return nil, err
	}

	selection, err := b.registry.LookupSelection(b.params.SelectionStrategy)
	if err != nil {
		return nil, err
	}

	if b.engine == nil {
		return nil, errors.New("an engine is required to build a mesh")
	}

	geometry := noc.Mesh{Width: b.params.Width, Height: b.params.Height}
	m := &Mesh{
		Name:     name,
		Geometry: geometry,
		Params:   b.params,
		budget:   router.NewDrainBudget(b.params.MaxDrainedFlits),
	}

	routerBuilder := router.NewBuilder().
		WithEngine(b.engine).
		WithFreq(b.freq).
		WithMesh(geometry).
		WithBufferDepth(b.params.BufferDepth).
		WithMaxPacketSize(b.params.MaxPacketSize).
		WithRoutingAlgorithm(algorithm).
		WithSelectionStrategy(selection).
		WithInjectCongestionThreshold(b.params.InjectCongestionThreshold).
		WithDrainBudget(m.budget)

	for id := 0; id < geometry.Size(); id++ {
		r := routerBuilder.Build(fmt.Sprintf("%s.Router[%d]", name, id), id)
		m.Routers = append(m.Routers, r)
	}

	b.connectNeighbors(m)
	b.connectLocals(m)

	return m, nil
}

func (b MeshBuilder) connectNeighbors(m *Mesh) {
	for id, r := range m.Routers {
		for _, d := range noc.CompassDirections() {
			n, ok := m.Geometry.Neighbor(id, d)
			if !ok {
				continue
			}

			link := noc.NewLink(
				fmt.Sprintf("%s.Link[%d].%s", m.Name, id, d.Name()))
			r.ConnectOutput(d, link)
			m.Routers[n].ConnectInput(d.Opposite(), link)
		}
	}
}

func (b MeshBuilder) connectLocals(m *Mesh) {
	for id, r := range m.Routers {
		inject := noc.NewLink(fmt.Sprintf("%s.Inject[%d]", m.Name, id))
		r.ConnectInput(noc.Local, inject)

		eject := noc.NewLink(fmt.Sprintf("%s.Eject[%d]", m.Name, id))
		r.ConnectOutput(noc.Local, eject)

		m.injectLinks = append(m.injectLinks, inject)
		m.ejectLinks = append(m.ejectLinks, eject)
	}
}
