package main

import (
	"fmt"

	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/meshnoc/api"
	"github.com/sarchlab/meshnoc/config"
	"github.com/tebeka/atexit"
)

// passThrough sends one packet from the top to the bottom of a column.
func passThrough(driver *api.Driver, mesh *config.Mesh) {
	src := driver.Unicast(0, 3, 8)

	if err := driver.Run(); err != nil {
		panic(err)
	}

	fmt.Println(src)
	fmt.Println(driver.DeliveredTo(3))
	fmt.Println("Routed flits:", mesh.RoutedFlits())
}

func main() {
	engine := sim.NewSerialEngine()

	params := config.DefaultParams()
	params.Width = 1
	params.Height = 4

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

	passThrough(driver, mesh)

	atexit.Exit(0)
}
