package router

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/sarchlab/meshnoc/noc"
)

// ErrPortNotValid is returned when asking about a port that does not exist,
// for example a direction at the mesh boundary.
var ErrPortNotValid = errors.New("port not valid")

type reservation struct {
	input       noc.Direction
	transmitted bool
}

// ReservationTable records which input owns each output port. An output can
// be owned by at most one input, while an input may own several outputs.
type ReservationTable struct {
	name    string
	entries map[noc.Direction]*reservation
}

// NewReservationTable creates a table in which every port is free.
func NewReservationTable(name string) *ReservationTable {
	return &ReservationTable{
		name:    name,
		entries: make(map[noc.Direction]*reservation),
	}
}

func (t *ReservationTable) entry(out noc.Direction) *reservation {
	e, found := t.entries[out]
	if !found {
		e = &reservation{input: noc.NotReserved}
		t.entries[out] = e
	}

	return e
}

// IsAvailable returns true if no input owns the output. It returns
// ErrPortNotValid if the output has been invalidated.
func (t *ReservationTable) IsAvailable(out noc.Direction) (bool, error) {
	e := t.entry(out)
	if e.input == noc.NotValid {
		return false, errors.Wrapf(ErrPortNotValid, "%s", out)
	}

	return e.input == noc.NotReserved, nil
}

// IsValid returns false if the output has been invalidated.
func (t *ReservationTable) IsValid(out noc.Direction) bool {
	_, err := t.IsAvailable(out)
	return err == nil
}

// Reserve gives the output to the input. The output must be available.
func (t *ReservationTable) Reserve(in, out noc.Direction) {
	available, err := t.IsAvailable(out)
	if err != nil || !available {
		violate(t.name, t.String(),
			"reserve %s for %s, but it is owned by %s",
			out, in, t.entries[out].input)
	}

	t.entries[out] = &reservation{input: in}
}

// Release frees an owned output. The transmitted mark is left untouched.
func (t *ReservationTable) Release(out noc.Direction) {
	t.mustBeOwned(out, "release")
	t.entries[out].input = noc.NotReserved
}

// Transmitted marks that a flit has crossed the owned output.
func (t *ReservationTable) Transmitted(out noc.Direction) {
	t.mustBeOwned(out, "mark transmitted")
	t.entries[out].transmitted = true
}

// HasTransmitted returns true if a flit has crossed the owned output since
// it was reserved.
func (t *ReservationTable) HasTransmitted(out noc.Direction) bool {
	t.mustBeOwned(out, "query transmitted")
	return t.entries[out].transmitted
}

// ClearTransmitted removes the transmitted mark of the given outputs.
func (t *ReservationTable) ClearTransmitted(outs ...noc.Direction) {
	for _, out := range outs {
		t.entry(out).transmitted = false
	}
}

// OutputPort returns the first output owned by the input, or NotReserved.
func (t *ReservationTable) OutputPort(in noc.Direction) noc.Direction {
	outs := t.OutputPorts(in)
	if len(outs) == 0 {
		return noc.NotReserved
	}

	return outs[0]
}

// OutputPorts returns every output owned by the input, in port order.
func (t *ReservationTable) OutputPorts(in noc.Direction) []noc.Direction {
	var outs []noc.Direction

	for _, out := range noc.AllPorts() {
		if e, found := t.entries[out]; found && e.input == in {
			outs = append(outs, out)
		}
	}

	return outs
}

// ReservingInput returns the owner of the output, NotReserved if it is free
// or NotValid if it has been invalidated.
func (t *ReservationTable) ReservingInput(out noc.Direction) noc.Direction {
	e, found := t.entries[out]
	if !found {
		return noc.NotReserved
	}

	return e.input
}

// Invalidate makes the output permanently unavailable.
func (t *ReservationTable) Invalidate(out noc.Direction) {
	t.entries[out] = &reservation{input: noc.NotValid}
}

func (t *ReservationTable) mustBeOwned(out noc.Direction, action string) {
	e, found := t.entries[out]
	if !found || e.input < 0 {
		violate(t.name, t.String(),
			"%s %s, which has no reservation", action, out)
	}
}

func (t *ReservationTable) String() string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s:", t.name)
	for _, out := range noc.AllPorts() {
		e, found := t.entries[out]
		if !found {
			continue
		}

		fmt.Fprintf(&b, " %s<-%s", out.Name(), e.input)
		if e.transmitted {
			b.WriteString("*")
		}
	}

	return b.String()
}
