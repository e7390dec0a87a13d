package api

import (
	"math/rand"

	"github.com/sarchlab/meshnoc/noc"
)

// Traffic describes a synthetic workload. Sources and destinations are drawn
// uniformly at random.
type Traffic struct {
	Packets int
	Length  int

	// BroadcastEvery turns every n-th packet into a broadcast. 0 disables
	// broadcasts.
	BroadcastEvery int

	Seed int64
}

// Generate queues the packets of the workload into the driver and returns
// the number of flits queued.
func (t Traffic) Generate(d *Driver) int {
	rng := rand.New(rand.NewSource(t.Seed))
	nodes := len(d.injectors)
	flits := 0

	for p := 0; p < t.Packets; p++ {
		src := rng.Intn(nodes)

		if t.BroadcastEvery > 0 && (p+1)%t.BroadcastEvery == 0 {
			dir := noc.PathHorizontal
			if rng.Intn(2) == 1 {
				dir = noc.PathVertical
			}

			flits += len(d.Broadcast(src, t.Length, dir))

			continue
		}

		dst := rng.Intn(nodes - 1)
		if dst >= src {
			dst++
		}

		flits += len(d.Unicast(src, dst, t.Length))
	}

	return flits
}
