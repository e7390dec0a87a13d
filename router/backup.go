package router

import (
	"fmt"
	"strings"

	"github.com/sarchlab/meshnoc/noc"
)

// BackupUnit keeps one copy of a packet that must leave an input through
// several outputs. The live queue feeds the first output, while the unit
// records the packet and later replays it once for every other output.
//
// The store is a fixed-size ring. Reading it with Rotate moves the read
// cursor without consuming anything, so a full replay leaves the store as
// it was. Only Clear removes content.
type BackupUnit struct {
	name string

	ring   []noc.Flit
	cursor int
	size   int

	backingUp bool
	lastSeqNo int
	expect    []noc.Direction
}

// NewBackupUnit creates an idle unit that can hold capacity flits.
func NewBackupUnit(name string, capacity int) *BackupUnit {
	if capacity <= 0 {
		panic("backup unit capacity must be positive")
	}

	return &BackupUnit{
		name:      name,
		ring:      make([]noc.Flit, capacity),
		lastSeqNo: -1,
	}
}

// Name returns the name of the unit.
func (u *BackupUnit) Name() string {
	return u.name
}

// Capacity returns the maximum number of flits that can be backed up.
func (u *BackupUnit) Capacity() int {
	return len(u.ring)
}

// Size returns the number of flits stored.
func (u *BackupUnit) Size() int {
	return u.size
}

// IsEmpty returns true if nothing is stored.
func (u *BackupUnit) IsEmpty() bool {
	return u.size == 0
}

// IsFull returns true if the store cannot take another flit.
func (u *BackupUnit) IsFull() bool {
	return u.size >= len(u.ring)
}

// StartBackUp makes the unit record the flits passed to BackUp.
func (u *BackupUnit) StartBackUp() {
	u.backingUp = true
}

// EndBackUp stops recording. The store now holds the complete packet.
func (u *BackupUnit) EndBackUp() {
	u.backingUp = false
}

// IsBackingUp returns true while the unit records flits.
func (u *BackupUnit) IsBackingUp() bool {
	return u.backingUp
}

// BackUp appends a flit to the store. A flit with the same sequence number
// as the previous one is ignored.
func (u *BackupUnit) BackUp(f noc.Flit) {
	if !u.backingUp {
		violate(u.name, u.String(), "back up %s while not backing up", f)
	}

	if f.SeqNo == u.lastSeqNo {
		return
	}

	if u.IsFull() {
		violate(u.name, u.String(),
			"back up %s into a full unit of %d flits", f, len(u.ring))
	}

	u.ring[(u.cursor+u.size)%len(u.ring)] = f
	u.size++
	u.lastSeqNo = f.SeqNo
}

// Front returns the flit under the read cursor.
func (u *BackupUnit) Front() noc.Flit {
	if u.IsEmpty() {
		violate(u.name, u.String(), "front of an empty backup unit")
	}

	return u.ring[u.cursor]
}

// Rotate returns the flit under the read cursor and moves it to the back of
// the store. The store keeps its content.
func (u *BackupUnit) Rotate() noc.Flit {
	f := u.Front()

	u.ring[(u.cursor+u.size)%len(u.ring)] = f
	u.cursor = (u.cursor + 1) % len(u.ring)

	return f
}

// Clear drops the stored packet and the expected ports and makes the unit
// idle.
func (u *BackupUnit) Clear() {
	for i := range u.ring {
		u.ring[i] = noc.Flit{}
	}

	u.cursor = 0
	u.size = 0
	u.lastSeqNo = -1
	u.expect = nil
}

// SetExpectPorts replaces the outputs that still need a replay.
func (u *BackupUnit) SetExpectPorts(ports []noc.Direction) {
	if len(ports) == 0 {
		violate(u.name, u.String(), "set an empty list of expected ports")
	}

	u.expect = append([]noc.Direction(nil), ports...)
}

// AddExpectPort adds an output that needs a replay.
func (u *BackupUnit) AddExpectPort(p noc.Direction) {
	if u.IsExpecting(p) {
		violate(u.name, u.String(), "port %s is already expected", p)
	}

	u.expect = append(u.expect, p)
}

// DeleteExpectPort removes an output whose replay is complete.
func (u *BackupUnit) DeleteExpectPort(p noc.Direction) {
	for i, e := range u.expect {
		if e == p {
			u.expect = append(u.expect[:i], u.expect[i+1:]...)
			return
		}
	}

	violate(u.name, u.String(), "port %s is not expected", p)
}

// ExpectPorts returns the outputs that still need a replay.
func (u *BackupUnit) ExpectPorts() []noc.Direction {
	return append([]noc.Direction(nil), u.expect...)
}

// IsExpecting returns true if the output still needs a replay.
func (u *BackupUnit) IsExpecting(p noc.Direction) bool {
	for _, e := range u.expect {
		if e == p {
			return true
		}
	}

	return false
}

// HasPendingReplay returns true if the unit holds a complete packet that
// some output has not received yet.
func (u *BackupUnit) HasPendingReplay() bool {
	return !u.backingUp && u.size > 0 && len(u.expect) > 0
}

// Snapshot returns the stored flits starting at the read cursor.
func (u *BackupUnit) Snapshot() []noc.Flit {
	flits := make([]noc.Flit, u.size)
	for i := range flits {
		flits[i] = u.ring[(u.cursor+i)%len(u.ring)]
	}

	return flits
}

func (u *BackupUnit) String() string {
	expect := make([]string, len(u.expect))
	for i, p := range u.expect {
		expect[i] = p.String()
	}

	return fmt.Sprintf("%s backingUp=%t expect=[%s] content=[%s]",
		u.name, u.backingUp,
		strings.Join(expect, " "), flitsString(u.Snapshot()))
}
