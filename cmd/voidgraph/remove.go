// Remove command deletes a node and its edges.
package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:   "remove <node-id>",
	Short: "Delete a node and all its edges",
	Long: `Remove deletes a node along with every edge touching it.
Removing a node that does not exist is a no-op.

Example:
  voidgraph remove 3`,
	Args: cobra.ExactArgs(1),
	RunE: runRemove,
}

func runRemove(cmd *cobra.Command, args []string) error {
	nodeID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid node id %q", args[0])
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.DeleteNode(nodeID); err != nil {
		return err
	}

	if flagJSON {
		return printJSON(map[string]any{"node_id": nodeID, "deleted": true})
	}
	fmt.Printf("Removed node %d\n", nodeID)
	return nil
}
