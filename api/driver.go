// Package api defines the driver that plays the processing elements of a
// mesh. It injects packets into the local ports of the routers and collects
// the flits that the routers deliver.
package api

import (
	"fmt"
	"log/slog"

	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/meshnoc/config"
	"github.com/sarchlab/meshnoc/noc"
	"github.com/sarchlab/meshnoc/router"
)

// HookPosFlitDelivered marks a flit leaving the mesh at its destination.
var HookPosFlitDelivered = &sim.HookPos{Name: "FlitDelivered"}

// Delivery records a flit that reached a processing element.
type Delivery struct {
	Node  int
	Flit  noc.Flit
	Cycle uint64
}

// Latency returns the number of cycles between the injection of the packet
// and the delivery of the flit.
func (d Delivery) Latency() uint64 {
	return d.Cycle - d.Flit.Timestamp
}

type injector struct {
	link    *noc.Link
	level   bool
	pending []noc.Flit
}

func (i *injector) canSend(cycle uint64) bool {
	return len(i.pending) > 0 && i.level == i.link.Ack(cycle)
}

func (i *injector) send(cycle uint64) noc.Flit {
	f := i.pending[0]
	i.pending = i.pending[1:]

	i.level = !i.level
	i.link.Send(cycle, f, i.level)

	return f
}

type ejector struct {
	link  *noc.Link
	level bool
}

func (e *ejector) accept(cycle uint64) (noc.Flit, bool) {
	defer func() { e.link.Acknowledge(cycle, e.level) }()

	if e.link.Request(cycle) == e.level {
		return noc.Flit{}, false
	}

	e.level = !e.level

	return e.link.Flit(cycle), true
}

// Driver plays the processing elements of every node of a mesh.
type Driver struct {
	*sim.TickingComponent

	mesh   *config.Mesh
	budget *router.DrainBudget

	injectors []*injector
	ejectors  []*ejector

	deliveries []Delivery
}

// Inject queues flits to be sent into the local port of the given node.
// Flits are sent one per cycle, in order, as the router accepts them.
func (d *Driver) Inject(node int, flits ...noc.Flit) {
	if node < 0 || node >= len(d.injectors) {
		panic(fmt.Sprintf("%s: node %d is not in the mesh", d.Name(), node))
	}

	d.injectors[node].pending = append(d.injectors[node].pending, flits...)
}

// Unicast queues a packet from src to dst.
func (d *Driver) Unicast(src, dst, length int) []noc.Flit {
	flits := noc.NewPacketBuilder().
		WithSrc(src).
		WithDst(dst).
		WithLength(length).
		WithTimestamp(d.currentCycle()).
		Build()
	d.Inject(src, flits...)

	return flits
}

// Broadcast queues a packet from src to every other node. The snake
// orientation is used when the mesh sends the packet along a path.
func (d *Driver) Broadcast(src, length int, dir noc.PathDir) []noc.Flit {
	flits := noc.NewPacketBuilder().
		WithSrc(src).
		WithDst(noc.Broadcast).
		WithLength(length).
		WithPathDir(dir).
		WithTimestamp(d.currentCycle()).
		Build()
	d.Inject(src, flits...)

	return flits
}

// Deliveries returns every flit delivered so far, in delivery order.
func (d *Driver) Deliveries() []Delivery {
	return d.deliveries
}

// DeliveredTo returns the flits delivered to the given node.
func (d *Driver) DeliveredTo(node int) []noc.Flit {
	var flits []noc.Flit

	for _, dl := range d.deliveries {
		if dl.Node == node {
			flits = append(flits, dl.Flit)
		}
	}

	return flits
}

// PendingFlits returns the number of flits still waiting to be injected.
func (d *Driver) PendingFlits() int {
	count := 0
	for _, i := range d.injectors {
		count += len(i.pending)
	}

	return count
}

// Run runs the simulation until the mesh is idle or the drain budget is
// exhausted. Snake broadcasts mixed with unicast traffic can deadlock the
// mesh under load; routers then keep polling and Run only returns through
// the drain budget.
func (d *Driver) Run() error {
	d.TickNow()

	return d.Engine.Run()
}

// Tick runs the driver for one cycle.
func (d *Driver) Tick() (madeProgress bool) {
	if d.budget.Exhausted() {
		return false
	}

	cycle := d.currentCycle()

	madeProgress = d.doInject(cycle) || madeProgress
	madeProgress = d.doCollect(cycle) || madeProgress

	return madeProgress || d.PendingFlits() > 0
}

func (d *Driver) currentCycle() uint64 {
	return d.Freq.Cycle(d.Engine.CurrentTime())
}

func (d *Driver) doInject(cycle uint64) bool {
	madeProgress := false

	for node, i := range d.injectors {
		if !i.canSend(cycle) {
			continue
		}

		f := i.send(cycle)
		madeProgress = true

		router.Trace("Flit injected",
			"Driver", d.Name(),
			"Node", node,
			"Flit", f.String(),
			"Cycle", cycle,
		)
	}

	return madeProgress
}

func (d *Driver) doCollect(cycle uint64) bool {
	madeProgress := false

	for node, e := range d.ejectors {
		f, ok := e.accept(cycle)
		if !ok {
			continue
		}

		madeProgress = true
		dl := Delivery{Node: node, Flit: f, Cycle: cycle}
		d.deliveries = append(d.deliveries, dl)

		d.InvokeHook(sim.HookCtx{
			Domain: d,
			Pos:    HookPosFlitDelivered,
			Item:   f,
			Detail: dl,
		})

		if f.Type == noc.FlitTail {
			slog.Debug("Packet delivered",
				"Driver", d.Name(),
				"Node", node,
				"Packet", f.PacketID,
				"Latency", dl.Latency(),
			)
		}
	}

	return madeProgress
}

// Stats summarizes the deliveries of a run.
type Stats struct {
	Delivered      int
	PacketsDone    int
	AverageLatency float64
	MaxLatency     uint64
	LastCycle      uint64
}

// Stats returns the statistics of the deliveries so far. Latencies are
// measured on tail flits.
func (d *Driver) Stats() Stats {
	s := Stats{Delivered: len(d.deliveries)}

	var total uint64

	for _, dl := range d.deliveries {
		s.LastCycle = max(s.LastCycle, dl.Cycle)

		if dl.Flit.Type != noc.FlitTail {
			continue
		}

		s.PacketsDone++
		total += dl.Latency()
		s.MaxLatency = max(s.MaxLatency, dl.Latency())
	}

	if s.PacketsDone > 0 {
		s.AverageLatency = float64(total) / float64(s.PacketsDone)
	}

	return s
}
