package config_test

import (
	"log/slog"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/meshnoc/config"
	"github.com/sarchlab/meshnoc/router"
)

var _ = Describe("Params", func() {
	writeEnv := func(content string) string {
		path := filepath.Join(GinkgoT().TempDir(), "meshnoc.env")
		Expect(os.WriteFile(path, []byte(content), 0o644)).To(Succeed())

		return path
	}

	setEnv := func(key, value string) {
		Expect(os.Setenv(key, value)).To(Succeed())
		DeferCleanup(os.Unsetenv, key)
	}

	It("should have valid defaults", func() {
		p := config.DefaultParams()

		Expect(p.Validate()).To(Succeed())
		Expect(p.RoutingAlgorithm).To(Equal("XY"))
		Expect(p.SelectionStrategy).To(Equal("FIRST"))
	})

	It("should load parameters from a file", func() {
		path := writeEnv(`
MESHNOC_WIDTH=3
MESHNOC_HEIGHT=5
MESHNOC_BUFFER_DEPTH=2
MESHNOC_ROUTING_ALGORITHM=rpath
MESHNOC_INJECT_CONGESTION_THRESHOLD=0.25
MESHNOC_MAX_DRAINED_FLITS=100
MESHNOC_VERBOSE=medium
`)

		p, err := config.LoadParams(path)

		Expect(err).NotTo(HaveOccurred())
		Expect(p.Width).To(Equal(3))
		Expect(p.Height).To(Equal(5))
		Expect(p.BufferDepth).To(Equal(2))
		Expect(p.MaxPacketSize).To(Equal(8))
		Expect(p.RoutingAlgorithm).To(Equal("RPATH"))
		Expect(p.InjectCongestionThreshold).To(Equal(0.25))
		Expect(p.MaxDrainedFlits).To(Equal(uint64(100)))
		Expect(p.Verbose).To(Equal(config.VerboseMedium))
	})

	It("should let the environment override the file", func() {
		path := writeEnv("MESHNOC_WIDTH=3\n")
		setEnv(config.KeyWidth, "6")

		p, err := config.LoadParams(path)

		Expect(err).NotTo(HaveOccurred())
		Expect(p.Width).To(Equal(6))
	})

	It("should report malformed values", func() {
		path := writeEnv("MESHNOC_BUFFER_DEPTH=deep\n")

		_, err := config.LoadParams(path)

		Expect(err).To(MatchError(ContainSubstring(config.KeyBufferDepth)))
	})

	It("should report a missing file", func() {
		_, err := config.LoadParams(
			filepath.Join(GinkgoT().TempDir(), "missing.env"))

		Expect(err).To(HaveOccurred())
	})

	DescribeTable("should reject impossible parameters",
		func(modify func(p *config.Params)) {
			p := config.DefaultParams()
			modify(&p)

			Expect(p.Validate()).NotTo(Succeed())
		},
		Entry("single node", func(p *config.Params) {
			p.Width, p.Height = 1, 1
		}),
		Entry("empty mesh", func(p *config.Params) { p.Height = 0 }),
		Entry("no buffer", func(p *config.Params) { p.BufferDepth = 0 }),
		Entry("packet without tail", func(p *config.Params) {
			p.MaxPacketSize = 1
		}),
		Entry("threshold above one", func(p *config.Params) {
			p.InjectCongestionThreshold = 1.5
		}),
	)

	It("should map verbosity to log levels", func() {
		Expect(config.VerboseOff.Level()).To(Equal(slog.LevelWarn))
		Expect(config.VerboseLow.Level()).To(Equal(slog.LevelInfo))
		Expect(config.VerboseMedium.Level()).To(Equal(slog.LevelDebug))
		Expect(config.VerboseHigh.Level()).To(Equal(router.LevelTrace))

		_, err := config.ParseVerbosity("loud")
		Expect(err).To(HaveOccurred())
	})
})
