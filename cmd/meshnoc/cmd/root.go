// Package cmd provides the command-line interface of meshnoc.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
)

var envFiles []string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "meshnoc",
	Short: "meshnoc is a cycle-level simulator of a mesh network-on-chip.",
	Long: `meshnoc is a cycle-level simulator of a mesh network-on-chip. ` +
		`Parameters are read from .env files and MESHNOC_* environment ` +
		`variables.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringSliceVarP(&envFiles, "config", "c", nil,
		".env files holding MESHNOC_* parameters")
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		atexit.Exit(1)
	}

	atexit.Exit(0)
}
