package noc

// A Waker is a component that can be asked to tick in the next cycle.
// akita ticking components satisfy it.
type Waker interface {
	TickLater()
}

// Link is the unidirectional channel between a sender port and a receiver
// port. It uses an alternating-bit handshake: the sender flips its request
// level when it puts a new flit on the link, and the receiver flips its
// acknowledge level when it accepts one. The sender may send again once the
// two levels match.
type Link struct {
	name string

	req       Signal[bool]
	data      Signal[Flit]
	ack       Signal[bool]
	freeSlots Signal[int]

	receiver Waker
}

// NewLink creates a link with both levels low.
func NewLink(name string) *Link {
	return &Link{name: name}
}

// Name returns the name of the link.
func (l *Link) Name() string {
	return l.name
}

// SetReceiver registers the component that is woken up when a flit is sent
// over the link.
func (l *Link) SetReceiver(w Waker) {
	l.receiver = w
}

// Send is called by the sender. It puts the flit on the link together with
// the new request level.
func (l *Link) Send(cycle uint64, f Flit, level bool) {
	l.data.Write(cycle, f)
	l.req.Write(cycle, level)

	if l.receiver != nil {
		l.receiver.TickLater()
	}
}

// Request returns the request level seen by the receiver.
func (l *Link) Request(cycle uint64) bool {
	return l.req.Read(cycle)
}

// Flit returns the flit seen by the receiver.
func (l *Link) Flit(cycle uint64) Flit {
	return l.data.Read(cycle)
}

// Acknowledge is called by the receiver to publish its acknowledge level.
func (l *Link) Acknowledge(cycle uint64, level bool) {
	l.ack.Write(cycle, level)
}

// Ack returns the acknowledge level seen by the sender.
func (l *Link) Ack(cycle uint64) bool {
	return l.ack.Read(cycle)
}

// ReportFreeSlots is called by the receiver to publish how many flits its
// input queue can still take.
func (l *Link) ReportFreeSlots(cycle uint64, n int) {
	l.freeSlots.Write(cycle, n)
}

// FreeSlots returns the free slot count seen by the sender.
func (l *Link) FreeSlots(cycle uint64) int {
	return l.freeSlots.Read(cycle)
}
