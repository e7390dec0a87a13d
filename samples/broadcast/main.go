package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/meshnoc/api"
	"github.com/sarchlab/meshnoc/config"
	"github.com/sarchlab/meshnoc/noc"
	"github.com/tebeka/atexit"
)

func broadcast(driver *api.Driver, mesh *config.Mesh) {
	driver.Broadcast(4, 4, noc.PathHorizontal)

	if err := driver.Run(); err != nil {
		panic(err)
	}

	for node := 0; node < mesh.Size(); node++ {
		fmt.Printf("Node %d: %v\n", node, driver.DeliveredTo(node))
	}
}

func main() {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: config.VerboseLow.Level(),
	})
	slog.SetDefault(slog.New(handler))

	engine := sim.NewSerialEngine()

	params := config.DefaultParams()
	params.Width = 3
	params.Height = 3
	params.RoutingAlgorithm = "LOADAWARE"

	mesh, err := config.NewMeshBuilder().
		WithEngine(engine).
		WithFreq(1 * sim.GHz).
		WithParams(params).
		Build("Mesh")
	if err != nil {
		panic(err)
	}

	driver := api.DriverBuilder{}.
		WithEngine(engine).
		WithFreq(1 * sim.GHz).
		Build("Driver", mesh)

	broadcast(driver, mesh)

	atexit.Exit(0)
}
