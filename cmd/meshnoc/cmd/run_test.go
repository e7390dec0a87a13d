package cmd

import (
	"bytes"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/meshnoc/api"
)

var _ = Describe("Run", func() {
	BeforeEach(func() {
		path := filepath.Join(GinkgoT().TempDir(), "mesh.env")
		Expect(os.WriteFile(path,
			[]byte("MESHNOC_WIDTH=3\nMESHNOC_HEIGHT=3\n"), 0o644)).
			To(Succeed())

		envFiles = []string{path}
		DeferCleanup(func() { envFiles = nil })
	})

	It("should print the statistics of a run", func() {
		var out bytes.Buffer

		err := run(&out, runOptions{
			traffic: api.Traffic{Packets: 8, Length: 2, Seed: 3},
			verbose: "off",
		})

		Expect(err).NotTo(HaveOccurred())
		Expect(out.String()).To(ContainSubstring("Mesh 3x3, XY/FIRST"))
		Expect(out.String()).To(ContainSubstring("Delivered flits"))
	})

	It("should reject packets longer than the max packet size", func() {
		err := run(&bytes.Buffer{}, runOptions{
			traffic: api.Traffic{Packets: 1, Length: 9},
		})

		Expect(err).To(MatchError(ContainSubstring("max packet size")))
	})

	It("should reject unknown verbosity", func() {
		err := run(&bytes.Buffer{}, runOptions{
			traffic: api.Traffic{Packets: 1, Length: 2},
			verbose: "loud",
		})

		Expect(err).To(HaveOccurred())
	})
})
