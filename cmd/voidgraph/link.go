// Link command creates a directed edge between two nodes.
package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var linkCmd = &cobra.Command{
	Use:   "link <source-id> <target-id>",
	Short: "Create a directed edge between two nodes",
	Long: `Link creates a directed edge from the source node to the target node.
Linking an already-linked pair is a no-op.

Example:
  voidgraph link 1 2`,
	Args: cobra.ExactArgs(2),
	RunE: runLink,
}

func runLink(cmd *cobra.Command, args []string) error {
	sourceID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid source id %q", args[0])
	}
	targetID, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid target id %q", args[1])
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	// Surface missing endpoints as not-found instead of FK failures.
	if _, err := store.GetNode(sourceID); err != nil {
		return fmt.Errorf("source node %d: %w", sourceID, err)
	}
	if _, err := store.GetNode(targetID); err != nil {
		return fmt.Errorf("target node %d: %w", targetID, err)
	}

	created, err := store.CreateEdge(sourceID, targetID)
	if err != nil {
		return err
	}

	if flagJSON {
		return printJSON(map[string]any{
			"source_id": sourceID,
			"target_id": targetID,
			"created":   created,
		})
	}
	if created {
		fmt.Printf("Linked %d -> %d\n", sourceID, targetID)
	} else {
		fmt.Printf("Edge %d -> %d already exists\n", sourceID, targetID)
	}
	return nil
}
