// Discover command expands the graph from one node's outbound links.
package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var (
	discoverMax      int
	discoverExternal bool
	discoverRandom   bool
)

var discoverCmd = &cobra.Command{
	Use:   "discover [node-id]",
	Short: "Expand the graph from a node's outbound links",
	Long: `Discover fetches a node's page, extracts its links, and grows the
graph: links to known pages gain edges, unknown pages become new nodes placed
near the source, capped by --max.

Example:
  voidgraph discover 1
  voidgraph discover --random --external-only
  voidgraph discover 1 --max 25`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDiscover,
}

func init() {
	discoverCmd.Flags().IntVar(&discoverMax, "max", 0, "maximum new nodes (default: from config)")
	discoverCmd.Flags().BoolVar(&discoverExternal, "external-only", false, "skip links on the source node's own host")
	discoverCmd.Flags().BoolVar(&discoverRandom, "random", false, "pick a random alive node as the source")
}

func runDiscover(cmd *cobra.Command, args []string) error {
	if discoverRandom == (len(args) == 1) {
		return fmt.Errorf("provide either a node id or --random")
	}

	maxNew := discoverMax
	if maxNew <= 0 {
		maxNew = cfg.MaxNewNodes
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	engine := newEngine(store)

	var nodeID int64
	if discoverRandom {
		node, err := engine.RandomTarget()
		if err != nil {
			return fmt.Errorf("picking random node: %w", err)
		}
		nodeID = node.ID
	} else {
		nodeID, err = strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid node id %q", args[0])
		}
	}

	result, err := engine.Discover(cmd.Context(), nodeID, maxNew, discoverExternal)
	if err != nil {
		return err
	}

	if flagJSON {
		return printJSON(result)
	}
	fmt.Printf("Discovered from node %d: %d links found, %d nodes added, %d edges added\n",
		result.SourceNodeID, result.LinksFound, result.NodesAdded, result.EdgesAdded)
	return nil
}
