// Version command for the voidgraph CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/voidgraph/pkg/voidgraph"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the voidgraph version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("voidgraph", voidgraph.Version)
	},
}
