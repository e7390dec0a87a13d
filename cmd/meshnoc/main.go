// Command meshnoc simulates a mesh network-on-chip under synthetic traffic.
package main

import "github.com/sarchlab/meshnoc/cmd/meshnoc/cmd"

func main() {
	cmd.Execute()
}
