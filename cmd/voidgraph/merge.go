// Merge command folds session databases into the target graph.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var mergeAll bool

var mergeCmd = &cobra.Command{
	Use:   "merge [database...]",
	Short: "Merge session databases into the target graph",
	Long: `Merge folds the nodes and edges of one or more graph databases into
the target database. Nodes are matched by exact URL; edges are remapped to
the target's ids. Merging the same sources twice changes nothing.

Example:
  voidgraph merge ~/graphs/work.db ~/graphs/home.db
  voidgraph merge --all`,
	RunE: runMerge,
}

func init() {
	mergeCmd.Flags().BoolVar(&mergeAll, "all", false, "merge every session database in the data directory")
}

func runMerge(cmd *cobra.Command, args []string) error {
	paths := args
	if mergeAll {
		if len(args) > 0 {
			return fmt.Errorf("--all takes no database arguments")
		}
		dataDir, err := resolveDataDir()
		if err != nil {
			return err
		}
		sessions, err := listSessions(dataDir)
		if err != nil {
			return err
		}
		for _, s := range sessions {
			paths = append(paths, s.Path)
		}
	}
	if len(paths) == 0 {
		return fmt.Errorf("no databases to merge")
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	result, err := store.MergeSessions(paths)
	if err != nil {
		return err
	}

	if flagJSON {
		return printJSON(result)
	}
	fmt.Printf("Merged %d sessions: %d nodes merged, %d edges merged, %d nodes skipped\n",
		result.SessionsMerged, result.NodesMerged, result.EdgesMerged, result.NodesSkipped)
	return nil
}
