// Import command adapts a foreign crawler database into the graph.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <database>",
	Short: "Import a crawler database into the graph",
	Long: `Import reads an external crawler's SQLite database (string node ids,
thumbnail blobs) and folds it into the target graph. Thumbnails become data
URIs, missing titles become Untitled, and imported nodes keep the positions
recorded by the crawler.

Example:
  voidgraph import ~/crawler/results.db`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func runImport(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	stats, err := store.ImportCrawlerDB(args[0])
	if err != nil {
		return err
	}

	if flagJSON {
		return printJSON(stats)
	}
	fmt.Printf("Imported %d nodes and %d edges (%d skipped)\n",
		stats.NodesImported, stats.EdgesImported, stats.NodesSkipped)
	return nil
}
