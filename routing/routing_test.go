package routing_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/meshnoc/noc"
	"github.com/sarchlab/meshnoc/routing"
)

var sampleMeshes = []noc.Mesh{
	{Width: 3, Height: 3},
	{Width: 4, Height: 4},
	{Width: 5, Height: 2},
}

type fakeRouter struct {
	id    int
	mesh  noc.Mesh
	slots map[noc.Direction]int
}

func (r fakeRouter) LocalID() int {
	return r.id
}

func (r fakeRouter) Mesh() noc.Mesh {
	return r.mesh
}

func (r fakeRouter) FreeSlotsNeighbor(d noc.Direction) (int, bool) {
	if r.mesh.IsBoundary(r.id, d) {
		return 0, false
	}

	return r.slots[d], true
}

func manhattan(m noc.Mesh, a, b int) int {
	ca, cb := m.Coord(a), m.Coord(b)
	dx, dy := ca.X-cb.X, ca.Y-cb.Y

	if dx < 0 {
		dx = -dx
	}

	if dy < 0 {
		dy = -dy
	}

	return dx + dy
}

// walk follows a single-candidate route from src to dst and returns the
// directions taken.
func walk(a routing.Algorithm, m noc.Mesh, src, dst int) []noc.Direction {
	dirs := []noc.Direction{}
	cur := src

	for cur != dst {
		out := a.Route(
			fakeRouter{id: cur, mesh: m},
			noc.RouteData{CurrentID: cur, SrcID: src, DstID: dst},
		)
		Expect(out).To(HaveLen(1))

		next, ok := m.Neighbor(cur, out[0])
		Expect(ok).To(BeTrue())

		dirs = append(dirs, out[0])
		cur = next
	}

	return dirs
}

// flood delivers a broadcast from src over the whole mesh and counts how
// often each node is reached.
func flood(
	a routing.Algorithm,
	m noc.Mesh,
	rd noc.RouteData,
) map[int]int {
	visits := map[int]int{rd.SrcID: 1}
	frontier := []int{rd.SrcID}

	for len(frontier) > 0 {
		cur := frontier[0]
		frontier = frontier[1:]

		rd.CurrentID = cur
		for _, d := range a.Route(fakeRouter{id: cur, mesh: m}, rd) {
			next, ok := m.Neighbor(cur, d)
			Expect(ok).To(BeTrue(), "node %d routed off the mesh to %s", cur, d)

			visits[next]++
			frontier = append(frontier, next)
		}
	}

	return visits
}

var _ = Describe("Unicast", func() {
	algorithms := []struct {
		name string
		a    routing.Algorithm
	}{
		{"XY", routing.XY{}},
		{"PATH", routing.Path{}},
		{"RPATH", routing.RPath{}},
		{"LOADAWARE", routing.LoadAware{}},
	}

	for _, alg := range algorithms {
		a := alg.a

		It(alg.name+" should reduce the distance by one on every hop", func() {
			m := noc.Mesh{Width: 4, Height: 3}

			for src := 0; src < m.Size(); src++ {
				for dst := 0; dst < m.Size(); dst++ {
					if src == dst {
						continue
					}

					out := a.Route(
						fakeRouter{id: src, mesh: m},
						noc.RouteData{CurrentID: src, SrcID: src, DstID: dst},
					)
					Expect(out).To(HaveLen(1))

					next, ok := m.Neighbor(src, out[0])
					Expect(ok).To(BeTrue())
					Expect(manhattan(m, next, dst)).
						To(Equal(manhattan(m, src, dst) - 1))
				}
			}
		})
	}

	It("should go along X before Y", func() {
		m := noc.Mesh{Width: 4, Height: 4}

		Expect(walk(routing.XY{}, m, 0, 10)).To(Equal([]noc.Direction{
			noc.East, noc.East, noc.South, noc.South,
		}))
		Expect(walk(routing.XY{}, m, 15, 1)).To(Equal([]noc.Direction{
			noc.West, noc.West, noc.North, noc.North, noc.North,
		}))
	})
})

var _ = Describe("Tree broadcast", func() {
	It("should fan out from the center of a 3x3 mesh", func() {
		m := noc.Mesh{Width: 3, Height: 3}
		out := routing.XY{}.Route(
			fakeRouter{id: 4, mesh: m},
			noc.RouteData{CurrentID: 4, SrcID: 4, DstID: noc.Broadcast},
		)

		Expect(out).To(Equal([]noc.Direction{
			noc.South, noc.North, noc.East, noc.West,
		}))
	})

	It("should only go vertical away from the source row", func() {
		m := noc.Mesh{Width: 3, Height: 3}
		out := routing.XY{}.Route(
			fakeRouter{id: 5, mesh: m},
			noc.RouteData{CurrentID: 5, SrcID: 4, DstID: noc.Broadcast},
		)

		Expect(out).To(Equal([]noc.Direction{noc.South, noc.North}))

		out = routing.XY{}.Route(
			fakeRouter{id: 2, mesh: m},
			noc.RouteData{CurrentID: 2, SrcID: 4, DstID: noc.Broadcast},
		)

		Expect(out).To(BeEmpty())
	})

	It("should reach every node exactly once", func() {
		for _, m := range sampleMeshes {
			for src := 0; src < m.Size(); src++ {
				visits := flood(routing.XY{}, m,
					noc.RouteData{SrcID: src, DstID: noc.Broadcast})

				Expect(visits).To(HaveLen(m.Size()))
				for id, n := range visits {
					Expect(n).To(Equal(1), "node %d", id)
				}
			}
		}
	})
})

var _ = Describe("Snake broadcast", func() {
	It("should label the horizontal snake", func() {
		m := noc.Mesh{Width: 3, Height: 3}

		Expect(routing.HorizontalLabel(m, noc.Coord{X: 0, Y: 1})).To(Equal(5))
		Expect(routing.HorizontalLabel(m, noc.Coord{X: 2, Y: 1})).To(Equal(3))
		Expect(routing.HorizontalLabel(m, noc.Coord{X: 2, Y: 2})).To(Equal(8))
	})

	It("should label the vertical snake", func() {
		m := noc.Mesh{Width: 3, Height: 3}

		Expect(routing.VerticalLabel(m, noc.Coord{X: 1, Y: 0})).To(Equal(5))
		Expect(routing.VerticalLabel(m, noc.Coord{X: 1, Y: 2})).To(Equal(3))
		Expect(routing.VerticalLabel(m, noc.Coord{X: 2, Y: 2})).To(Equal(8))
	})

	It("should be a bijection with neighboring consecutive labels", func() {
		for _, m := range append(sampleMeshes, noc.Mesh{Width: 1, Height: 4}) {
			for i := 0; i < m.Size(); i++ {
				h := routing.HorizontalCoord(m, i)
				v := routing.VerticalCoord(m, i)

				Expect(m.Contains(h)).To(BeTrue())
				Expect(m.Contains(v)).To(BeTrue())
				Expect(routing.HorizontalLabel(m, h)).To(Equal(i))
				Expect(routing.VerticalLabel(m, v)).To(Equal(i))

				if i > 0 {
					Expect(manhattan(m, m.ID(h),
						m.ID(routing.HorizontalCoord(m, i-1)))).To(Equal(1))
					Expect(manhattan(m, m.ID(v),
						m.ID(routing.VerticalCoord(m, i-1)))).To(Equal(1))
				}
			}
		}
	})

	It("should walk both ways from the source", func() {
		m := noc.Mesh{Width: 3, Height: 3}
		out := routing.Path{}.Route(
			fakeRouter{id: 4, mesh: m},
			noc.RouteData{CurrentID: 4, SrcID: 4, DstID: noc.Broadcast},
		)

		Expect(out).To(Equal([]noc.Direction{noc.West, noc.East}))
	})

	DescribeTable("should reach every node exactly once",
		func(a routing.Algorithm, rd noc.RouteData) {
			for _, m := range sampleMeshes {
				for src := 0; src < m.Size(); src++ {
					rd.SrcID = src
					rd.DstID = noc.Broadcast
					visits := flood(a, m, rd)

					Expect(visits).To(HaveLen(m.Size()))
					for id, n := range visits {
						Expect(n).To(Equal(1), "node %d", id)
					}
				}
			}
		},
		Entry("PATH", routing.Path{}, noc.RouteData{}),
		Entry("RPATH horizontal", routing.RPath{},
			noc.RouteData{PathDir: noc.PathHorizontal}),
		Entry("RPATH vertical", routing.RPath{},
			noc.RouteData{PathDir: noc.PathVertical}),
		Entry("LOADAWARE tree", routing.LoadAware{},
			noc.RouteData{Routine: noc.BroadcastTree}),
		Entry("LOADAWARE path", routing.LoadAware{},
			noc.RouteData{Routine: noc.BroadcastPath}),
	)
})

var _ = Describe("Selection", func() {
	It("should keep the routing order", func() {
		d := routing.FirstCandidate{}.Select(nil,
			[]noc.Direction{noc.South, noc.North}, noc.RouteData{})

		Expect(d).To(Equal(noc.South))
	})

	It("should prefer the emptier neighbor", func() {
		r := fakeRouter{
			id:   4,
			mesh: noc.Mesh{Width: 3, Height: 3},
			slots: map[noc.Direction]int{
				noc.South: 1,
				noc.North: 3,
				noc.East:  3,
			},
		}

		d := routing.BufferLevel{}.Select(r,
			[]noc.Direction{noc.South, noc.North, noc.East}, noc.RouteData{})

		Expect(d).To(Equal(noc.North))
	})
})

var _ = Describe("Registry", func() {
	It("should hold the default algorithms", func() {
		r := routing.DefaultRegistry()

		Expect(r.Names()).To(Equal(
			[]string{"LOADAWARE", "PATH", "RPATH", "XY"}))
		Expect(r.SelectionNames()).To(Equal(
			[]string{"BUFFER_LEVEL", "FIRST"}))

		a, err := r.Lookup("RPATH")
		Expect(err).NotTo(HaveOccurred())
		Expect(a).To(Equal(routing.RPath{}))
	})

	It("should report unknown names", func() {
		r := routing.DefaultRegistry()

		_, err := r.Lookup("WEST_FIRST")
		Expect(err).To(MatchError(routing.ErrUnknownAlgorithm))

		_, err = r.LookupSelection("RANDOM")
		Expect(err).To(MatchError(routing.ErrUnknownSelection))
	})

	It("should refuse duplicate names", func() {
		r := routing.NewRegistry()

		Expect(r.Register("XY", routing.XY{})).To(Succeed())
		Expect(r.Register("XY", routing.Path{})).NotTo(Succeed())
	})
})
