package api

import (
	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/meshnoc/config"
)

// DriverBuilder creates a new instance of Driver.
type DriverBuilder struct {
	engine sim.Engine
	freq   sim.Freq
}

// WithEngine sets the engine.
func (b DriverBuilder) WithEngine(engine sim.Engine) DriverBuilder {
	b.engine = engine
	return b
}

// WithFreq sets the frequency of the driver. It must match the frequency of
// the routers of the mesh, which is also the default.
func (b DriverBuilder) WithFreq(freq sim.Freq) DriverBuilder {
	b.freq = freq
	return b
}

// Build creates a driver and attaches it to the local links of every node
// of the mesh.
func (b DriverBuilder) Build(name string, mesh *config.Mesh) *Driver {
	d := &Driver{
		mesh:      mesh,
		budget:    mesh.Budget(),
		injectors: make([]*injector, mesh.Size()),
		ejectors:  make([]*ejector, mesh.Size()),
	}

	freq := b.freq
	if freq == 0 {
		freq = mesh.Router(0).Freq
	}

	d.TickingComponent = sim.NewTickingComponent(name, b.engine, freq, d)

	for id := 0; id < mesh.Size(); id++ {
		d.injectors[id] = &injector{link: mesh.InjectLink(id)}
		d.ejectors[id] = &ejector{link: mesh.EjectLink(id)}
		mesh.EjectLink(id).SetReceiver(d)
	}

	return d
}
