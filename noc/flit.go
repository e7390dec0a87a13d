package noc

import (
	"fmt"

	"github.com/sarchlab/akita/v4/sim"
)

// Broadcast is the destination id of a packet that every node must receive.
const Broadcast = -1

// FlitType tells the position of a flit in its packet.
type FlitType int

const (
	FlitHead FlitType = iota
	FlitBody
	FlitTail
)

func (t FlitType) String() string {
	switch t {
	case FlitHead:
		return "H"
	case FlitBody:
		return "B"
	case FlitTail:
		return "T"
	default:
		return "?"
	}
}

// BroadcastRoutine selects how a broadcast packet spreads over the mesh.
type BroadcastRoutine int

const (
	BroadcastTree BroadcastRoutine = iota
	BroadcastPath
)

func (r BroadcastRoutine) String() string {
	if r == BroadcastPath {
		return "path"
	}

	return "tree"
}

// PathDir selects the snake used by path-based broadcasts.
type PathDir int

const (
	PathHorizontal PathDir = iota
	PathVertical
)

func (p PathDir) String() string {
	if p == PathVertical {
		return "vertical"
	}

	return "horizontal"
}

// Flit is the smallest flow-controlled unit of a packet. Flits are passed by
// value; the copy held by a queue or a backup unit is owned by it.
type Flit struct {
	PacketID  string
	SrcID     int
	DstID     int
	Type      FlitType
	SeqNo     int
	Routine   BroadcastRoutine
	PathDir   PathDir
	Timestamp uint64
}

// IsBroadcast returns true if every node must receive the flit.
func (f Flit) IsBroadcast() bool {
	return f.DstID == Broadcast
}

func (f Flit) String() string {
	dst := fmt.Sprintf("%d", f.DstID)
	if f.IsBroadcast() {
		dst = "*" + f.Routine.String()
	}

	return fmt.Sprintf("(%s %d->%s %s#%d)",
		f.PacketID, f.SrcID, dst, f.Type, f.SeqNo)
}

// PacketBuilder can build the flits of a packet.
type PacketBuilder struct {
	src, dst  int
	length    int
	pathDir   PathDir
	timestamp uint64
}

// NewPacketBuilder creates a builder for a two-flit unicast packet from node
// 0 to node 0.
func NewPacketBuilder() PacketBuilder {
	return PacketBuilder{length: 2}
}

// WithSrc sets the node that injects the packet.
func (b PacketBuilder) WithSrc(src int) PacketBuilder {
	b.src = src
	return b
}

// WithDst sets the destination node. Use Broadcast to reach every node.
func (b PacketBuilder) WithDst(dst int) PacketBuilder {
	b.dst = dst
	return b
}

// WithLength sets the number of flits in the packet.
func (b PacketBuilder) WithLength(length int) PacketBuilder {
	b.length = length
	return b
}

// WithPathDir sets the snake orientation used by path broadcasts.
func (b PacketBuilder) WithPathDir(dir PathDir) PacketBuilder {
	b.pathDir = dir
	return b
}

// WithTimestamp sets the injection cycle recorded in every flit.
func (b PacketBuilder) WithTimestamp(cycle uint64) PacketBuilder {
	b.timestamp = cycle
	return b
}

// Build creates the flits of the packet, head first.
func (b PacketBuilder) Build() []Flit {
	if b.length < 2 {
		panic("a packet needs at least a head and a tail flit")
	}

	id := sim.GetIDGenerator().Generate()
	flits := make([]Flit, b.length)

	for i := range flits {
		t := FlitBody
		switch i {
		case 0:
			t = FlitHead
		case b.length - 1:
			t = FlitTail
		}

		flits[i] = Flit{
			PacketID:  "P" + id,
			SrcID:     b.src,
			DstID:     b.dst,
			Type:      t,
			SeqNo:     i,
			PathDir:   b.pathDir,
			Timestamp: b.timestamp,
		}
	}

	return flits
}
