package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"github.com/rs/xid"
	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/meshnoc/api"
	"github.com/sarchlab/meshnoc/config"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
)

type runOptions struct {
	traffic   api.Traffic
	verbose   string
	traceFile bool
	dump      bool
}

var runOpts runOptions

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a synthetic workload and print statistics.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return run(cmd.OutOrStdout(), runOpts)
	},
}

func init() {
	flags := runCmd.Flags()
	flags.IntVarP(&runOpts.traffic.Packets, "packets", "n", 64,
		"number of packets to inject")
	flags.IntVarP(&runOpts.traffic.Length, "length", "l", 4,
		"number of flits per packet")
	flags.IntVar(&runOpts.traffic.BroadcastEvery, "broadcast-every", 0,
		"turn every n-th packet into a broadcast, 0 for unicast only")
	flags.Int64Var(&runOpts.traffic.Seed, "seed", 1,
		"seed of the traffic generator")
	flags.StringVarP(&runOpts.verbose, "verbose", "v", "",
		"off, low, medium or high; overrides MESHNOC_VERBOSE")
	flags.BoolVar(&runOpts.traceFile, "trace-file", false,
		"write the log to a uniquely named file instead of stderr")
	flags.BoolVar(&runOpts.dump, "dump", false,
		"print the state of every router after the run")

	rootCmd.AddCommand(runCmd)
}

func run(out io.Writer, opts runOptions) error {
	params, err := config.LoadParams(envFiles...)
	if err != nil {
		return err
	}

	if opts.verbose != "" {
		params.Verbose, err = config.ParseVerbosity(opts.verbose)
		if err != nil {
			return err
		}
	}

	if opts.traffic.Length > params.MaxPacketSize {
		return errors.Errorf("packet length %d exceeds the max packet size %d",
			opts.traffic.Length, params.MaxPacketSize)
	}

	if err := setupLogging(params.Verbose, opts.traceFile); err != nil {
		return err
	}

	engine := sim.NewSerialEngine()

	mesh, err := config.NewMeshBuilder().
		WithEngine(engine).
		WithParams(params).
		Build("Mesh")
	if err != nil {
		return err
	}

	driver := api.DriverBuilder{}.
		WithEngine(engine).
		Build("Driver", mesh)

	injected := opts.traffic.Generate(driver)

	if err := driver.Run(); err != nil {
		return errors.Wrap(err, "simulation failed")
	}

	printStats(out, params, mesh, driver, injected)

	if opts.dump {
		mesh.Dump(out)
	}

	return nil
}

func setupLogging(v config.Verbosity, toFile bool) error {
	w := io.Writer(os.Stderr)

	if toFile {
		name := fmt.Sprintf("meshnoc_%s.log", xid.New().String())

		f, err := os.Create(name)
		if err != nil {
			return errors.Wrap(err, "failed to create the trace file")
		}

		atexit.Register(func() { _ = f.Close() })
		w = f
	}

	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: v.Level(),
	})
	slog.SetDefault(slog.New(handler))

	return nil
}

func printStats(
	out io.Writer,
	params config.Params,
	mesh *config.Mesh,
	driver *api.Driver,
	injected int,
) {
	stats := driver.Stats()

	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetTitle("Mesh %dx%d, %s/%s",
		params.Width, params.Height,
		params.RoutingAlgorithm, params.SelectionStrategy)
	t.AppendHeader(table.Row{"Metric", "Value"})
	t.AppendRows([]table.Row{
		{"Injected flits", injected},
		{"Delivered flits", stats.Delivered},
		{"Routed flits", mesh.RoutedFlits()},
		{"Delivered packets", stats.PacketsDone},
		{"Average latency", fmt.Sprintf("%.2f", stats.AverageLatency)},
		{"Max latency", stats.MaxLatency},
		{"Last delivery cycle", stats.LastCycle},
		{"Flits left in mesh", mesh.FlitsCount()},
	})
	t.SetStyle(table.StyleLight)
	t.Render()
}
