// Package router implements the cycle-level model of a mesh router.
//
// Every cycle a router runs three phases. The receive phase accepts flits
// from the inbound links into the input queues. The reserve phase routes
// head flits and reserves outputs for them. The forward phase sends one flit
// per reserved output, as long as the downstream side has acknowledged the
// previous one.
//
// A packet that must leave through several outputs (a broadcast) is sent
// through one output from the input queue while a BackupUnit records it. The
// recorded copy is then replayed once for every other output.
package router

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/meshnoc/noc"
	"github.com/sarchlab/meshnoc/routing"
)

// HookPosFlitReceived marks a flit being accepted into an input queue. The
// hook item is the flit and the detail is the input direction.
var HookPosFlitReceived = &sim.HookPos{Name: "FlitReceived"}

// HookPosFlitForwarded marks a flit leaving the router. The hook item is the
// flit and the detail is a ForwardDetail.
var HookPosFlitForwarded = &sim.HookPos{Name: "FlitForwarded"}

// ForwardDetail tells where a forwarded flit came from and where it went.
type ForwardDetail struct {
	Input  noc.Direction
	Output noc.Direction
	Cycle  uint64
}

// Router is a node of the mesh.
type Router struct {
	*sim.TickingComponent

	id   int
	mesh noc.Mesh

	algorithm routing.Algorithm
	selection routing.SelectionStrategy

	queues  [noc.NumPorts]*FlitQueue
	backups [noc.NumPorts]*BackupUnit

	// An input owns at most one output at a time, for its live queue or for
	// a replay of its backup unit.
	table *ReservationTable

	inLinks  [noc.NumPorts]*noc.Link
	outLinks [noc.NumPorts]*noc.Link
	levelRx  [noc.NumPorts]bool
	levelTx  [noc.NumPorts]bool

	startFrom                 int
	routine                   noc.BroadcastRoutine
	injectCongestionThreshold float64

	budget *DrainBudget
	cycle  uint64

	routedFlits  uint64
	localDrained uint64
}

// ID returns the node id of the router.
func (r *Router) ID() int {
	return r.id
}

// LocalID returns the node id of the router.
func (r *Router) LocalID() int {
	return r.id
}

// Mesh returns the dimensions of the mesh that the router belongs to.
func (r *Router) Mesh() noc.Mesh {
	return r.mesh
}

// FreeSlotsNeighbor returns the free slots that the neighbor in direction d
// reported for the input queue facing this router.
func (r *Router) FreeSlotsNeighbor(d noc.Direction) (int, bool) {
	if !d.IsCompass() || r.outLinks[d] == nil {
		return 0, false
	}

	return r.outLinks[d].FreeSlots(r.cycle), true
}

// Queue returns the input queue of the given direction.
func (r *Router) Queue(d noc.Direction) *FlitQueue {
	return r.queues[d]
}

// Backup returns the backup unit of the given input.
func (r *Router) Backup(d noc.Direction) *BackupUnit {
	return r.backups[d]
}

// ReservationTable returns the table that guards the outputs.
func (r *Router) ReservationTable() *ReservationTable {
	return r.table
}

// RoutedFlits returns the number of flits that passed from one neighbor to
// another.
func (r *Router) RoutedFlits() uint64 {
	return r.routedFlits
}

// LocalDrained returns the number of flits delivered to the local port.
func (r *Router) LocalDrained() uint64 {
	return r.localDrained
}

// FlitsCount returns the number of flits in the input queues.
func (r *Router) FlitsCount() int {
	count := 0
	for _, q := range r.queues {
		count += q.Size()
	}

	return count
}

// ConnectInput attaches the link whose flits arrive at the given direction.
func (r *Router) ConnectInput(d noc.Direction, link *noc.Link) {
	if r.queues[d].IsDisabled() {
		panic(fmt.Sprintf("%s: cannot connect the disabled input %s",
			r.Name(), d))
	}

	r.inLinks[d] = link
	link.SetReceiver(r)
	link.ReportFreeSlots(0, r.queues[d].FreeSlots())
}

// ConnectOutput attaches the link that flits leave through at the given
// direction.
func (r *Router) ConnectOutput(d noc.Direction, link *noc.Link) {
	if !r.table.IsValid(d) {
		panic(fmt.Sprintf("%s: cannot connect the invalid output %s",
			r.Name(), d))
	}

	r.outLinks[d] = link
}

// Tick runs the router for the cycle of the current engine time.
func (r *Router) Tick() (madeProgress bool) {
	if r.budget.Exhausted() {
		return false
	}

	return r.Step(r.Freq.Cycle(r.Engine.CurrentTime()))
}

// Step runs the three phases of the given cycle. It returns true while the
// router holds flits that still need to move.
func (r *Router) Step(cycle uint64) (madeProgress bool) {
	defer r.reportViolation(cycle)

	r.cycle = cycle
	r.selection.PerCycleUpdate(r)

	madeProgress = r.receive(cycle) || madeProgress
	madeProgress = r.reserve() || madeProgress
	madeProgress = r.forward(cycle) || madeProgress

	r.reportFreeSlots(cycle)

	return madeProgress || r.isBusy()
}

func (r *Router) isBusy() bool {
	for i := range r.queues {
		if !r.queues[i].IsEmpty() || !r.backups[i].IsEmpty() {
			return true
		}
	}

	return false
}

func (r *Router) reportViolation(cycle uint64) {
	e := recover()
	if e == nil {
		return
	}

	if v, ok := e.(*ContractViolation); ok {
		var dump strings.Builder
		r.Dump(&dump)

		slog.Error("Contract violation",
			"Router", r.Name(),
			"Cycle", cycle,
			"Component", v.Component,
			"Reason", v.Reason,
			"State", v.State,
			"Dump", dump.String(),
		)
	}

	panic(e)
}

func (r *Router) receive(cycle uint64) bool {
	madeProgress := false

	for _, i := range noc.AllPorts() {
		link := r.inLinks[i]
		if link == nil {
			continue
		}

		if link.Request(cycle) != r.levelRx[i] && !r.queues[i].IsFull() {
			f := link.Flit(cycle)

			if i == noc.Local && f.SrcID == r.id && f.IsBroadcast() {
				f = r.stampRoutine(f)
			}

			r.queues[i].Push(f)
			r.levelRx[i] = !r.levelRx[i]
			madeProgress = true

			Trace("Flit",
				"Behavior", "Receive",
				"Cycle", cycle,
				"Router", r.Name(),
				"Input", i.Name(),
				"Flit", f.String(),
			)

			r.InvokeHook(sim.HookCtx{
				Domain: r,
				Pos:    HookPosFlitReceived,
				Item:   f,
				Detail: i,
			})
		}

		link.Acknowledge(cycle, r.levelRx[i])
	}

	return madeProgress
}

// stampRoutine decides how a broadcast injected at this node spreads. The
// head decides, and the rest of the packet follows the head.
func (r *Router) stampRoutine(f noc.Flit) noc.Flit {
	if f.Type != noc.FlitHead {
		f.Routine = r.routine
		return f
	}

	f.Routine = noc.BroadcastTree
	if r.isInjectCongested() {
		f.Routine = noc.BroadcastPath
		slog.Info("Congested broadcast", "Router", r.Name(), "Flit", f.String())
	} else {
		slog.Info("Idle broadcast", "Router", r.Name(), "Flit", f.String())
	}

	r.routine = f.Routine

	return f
}

func (r *Router) isInjectCongested() bool {
	q := r.queues[noc.Local]
	freeRatio := float64(q.FreeSlots()) / float64(q.Capacity())

	return freeRatio < r.injectCongestionThreshold
}

func (r *Router) reserve() bool {
	madeProgress := false

	for j := 0; j < noc.NumPorts; j++ {
		i := noc.Direction((r.startFrom + j) % noc.NumPorts)
		madeProgress = r.reserveForInput(i) || madeProgress
	}

	r.startFrom = (r.startFrom + 1) % noc.NumPorts

	return madeProgress
}

func (r *Router) reserveForInput(i noc.Direction) bool {
	b := r.backups[i]
	if b.HasPendingReplay() {
		return r.reserveReplay(i)
	}

	q := r.queues[i]
	if q.IsEmpty() {
		return false
	}

	madeProgress := false
	f := q.Front()

	if f.Type == noc.FlitHead && r.table.OutputPort(i) == noc.NotReserved {
		madeProgress = r.reserveLive(i, f)
	}

	if b.IsBackingUp() {
		b.BackUp(f)
	}

	return madeProgress
}

func (r *Router) reserveLive(i noc.Direction, f noc.Flit) bool {
	rd := r.routeData(i, f)
	candidates := r.route(rd)

	available := make([]noc.Direction, 0, len(candidates))
	for _, o := range candidates {
		if ok, _ := r.table.IsAvailable(o); ok {
			available = append(available, o)
		}
	}

	if len(available) == 0 {
		slog.Debug("Cannot reserve",
			"Router", r.Name(),
			"Input", i.Name(),
			"Flit", f.String(),
			"Candidates", candidates,
		)

		return false
	}

	o := available[0]
	if len(available) > 1 {
		o = r.selection.Select(r, available, rd)
	}

	r.table.Reserve(i, o)

	slog.Debug("Reserved",
		"Router", r.Name(),
		"Input", i.Name(),
		"Output", o.Name(),
		"Flit", f.String(),
	)

	if len(candidates) > 1 {
		b := r.backups[i]
		b.StartBackUp()
		b.SetExpectPorts(without(candidates, o))
	}

	return true
}

func (r *Router) reserveReplay(i noc.Direction) bool {
	if r.table.OutputPort(i) != noc.NotReserved {
		return false
	}

	for _, o := range r.backups[i].ExpectPorts() {
		if ok, _ := r.table.IsAvailable(o); !ok {
			continue
		}

		r.table.Reserve(i, o)

		slog.Debug("Reserved replay",
			"Router", r.Name(),
			"Input", i.Name(),
			"Output", o.Name(),
		)

		return true
	}

	return false
}

func (r *Router) routeData(i noc.Direction, f noc.Flit) noc.RouteData {
	return noc.RouteData{
		CurrentID: r.id,
		SrcID:     f.SrcID,
		DstID:     f.DstID,
		DirIn:     i,
		Routine:   f.Routine,
		PathDir:   f.PathDir,
	}
}

// route returns the outputs that a head flit needs. A flit for this node and
// a broadcast from another node are delivered locally. Everything not
// destined for this node is also passed on by the routing algorithm.
func (r *Router) route(rd noc.RouteData) []noc.Direction {
	var candidates []noc.Direction

	if rd.DstID == r.id || (rd.DstID == noc.Broadcast && rd.SrcID != r.id) {
		candidates = append(candidates, noc.Local)
	}

	if rd.DstID != r.id {
		for _, d := range r.algorithm.Route(r, rd) {
			if !r.table.IsValid(d) {
				slog.Warn("Routing to an invalid port",
					"Router", r.Name(),
					"Port", d.String(),
					"Src", rd.SrcID,
					"Dst", rd.DstID,
				)

				continue
			}

			candidates = append(candidates, d)
		}
	}

	if len(candidates) == 0 {
		violate(r.Name(), r.table.String(),
			"no output for a packet from %d to %d", rd.SrcID, rd.DstID)
	}

	return candidates
}

func (r *Router) forward(cycle uint64) bool {
	madeProgress := false

	for _, i := range noc.AllPorts() {
		if r.backups[i].HasPendingReplay() {
			madeProgress = r.forwardReplay(cycle, i) || madeProgress
			continue
		}

		madeProgress = r.forwardLive(cycle, i) || madeProgress
	}

	return madeProgress
}

func (r *Router) forwardLive(cycle uint64, i noc.Direction) bool {
	o := r.table.OutputPort(i)
	q := r.queues[i]

	if o == noc.NotReserved || q.IsEmpty() {
		return false
	}

	f := q.Front()

	if !r.outputReady(cycle, o) {
		if f.Type == noc.FlitHead && !r.table.HasTransmitted(o) {
			r.table.Release(o)
		}

		return false
	}

	r.transmit(cycle, i, o, f)
	q.Pop()

	if f.Type == noc.FlitTail {
		r.table.Release(o)

		if r.backups[i].IsBackingUp() {
			r.backups[i].EndBackUp()
		}
	}

	return true
}

func (r *Router) forwardReplay(cycle uint64, i noc.Direction) bool {
	o := r.table.OutputPort(i)
	if o == noc.NotReserved {
		return false
	}

	b := r.backups[i]
	f := b.Front()

	if !r.outputReady(cycle, o) {
		if f.Type == noc.FlitHead && !r.table.HasTransmitted(o) {
			r.table.Release(o)
		}

		return false
	}

	r.transmit(cycle, i, o, f)
	b.Rotate()

	if f.Type == noc.FlitTail {
		r.table.Release(o)

		b.DeleteExpectPort(o)
		if len(b.ExpectPorts()) == 0 {
			b.Clear()
		}
	}

	return true
}

func (r *Router) outputReady(cycle uint64, o noc.Direction) bool {
	link := r.outLinks[o]
	if link == nil {
		violate(r.Name(), r.table.String(), "output %s is not connected", o)
	}

	return r.levelTx[o] == link.Ack(cycle)
}

func (r *Router) transmit(cycle uint64, i, o noc.Direction, f noc.Flit) {
	r.levelTx[o] = !r.levelTx[o]
	r.outLinks[o].Send(cycle, f, r.levelTx[o])
	r.table.Transmitted(o)

	Trace("Flit",
		"Behavior", "Forward",
		"Cycle", cycle,
		"Router", r.Name(),
		"Input", i.Name(),
		"Output", o.Name(),
		"Flit", f.String(),
	)

	r.InvokeHook(sim.HookCtx{
		Domain: r,
		Pos:    HookPosFlitForwarded,
		Item:   f,
		Detail: ForwardDetail{Input: i, Output: o, Cycle: cycle},
	})

	switch {
	case o == noc.Local:
		r.localDrained++
		r.budget.Consume()
	case i != noc.Local:
		r.routedFlits++
	}
}

func (r *Router) reportFreeSlots(cycle uint64) {
	for _, i := range noc.AllPorts() {
		if r.inLinks[i] != nil {
			r.inLinks[i].ReportFreeSlots(cycle, r.queues[i].FreeSlots())
		}
	}
}

// Dump writes the queues, the reservations and the backup units of the
// router as a table.
func (r *Router) Dump(w io.Writer) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle(fmt.Sprintf("%s (node %d, cycle %d)", r.Name(), r.id, r.cycle))
	t.AppendHeader(table.Row{
		"Port", "Queue", "Owner", "Output", "Replaying",
		"Backing Up", "Expect", "Backup",
	})

	for _, d := range noc.AllPorts() {
		q := r.queues[d]
		b := r.backups[d]

		queue := "disabled"
		if !q.IsDisabled() {
			queue = fmt.Sprintf("%d/%d %s",
				q.Size(), q.Capacity(), flitsString(q.Snapshot()))
		}

		t.AppendRow(table.Row{
			d.Name(),
			queue,
			r.table.ReservingInput(d).String(),
			r.table.OutputPort(d).String(),
			b.HasPendingReplay(),
			b.IsBackingUp(),
			b.ExpectPorts(),
			flitsString(b.Snapshot()),
		})
	}

	t.Render()
}

func flitsString(flits []noc.Flit) string {
	parts := make([]string, len(flits))
	for i, f := range flits {
		parts[i] = f.String()
	}

	return strings.Join(parts, " ")
}

func without(dirs []noc.Direction, d noc.Direction) []noc.Direction {
	rest := make([]noc.Direction, 0, len(dirs))
	for _, e := range dirs {
		if e != d {
			rest = append(rest, e)
		}
	}

	return rest
}
