// Add command creates a graph node for a URL.
package main

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/voidgraph/internal/crawl"
	"github.com/mesh-intelligence/voidgraph/pkg/types"
)

var (
	addTitle    string
	addPosition []float64
)

var addCmd = &cobra.Command{
	Use:   "add <url>",
	Short: "Add a node for a URL",
	Long: `Add creates a graph node for the given http(s) URL.

Without --position the node is placed at a random point in space.

Example:
  voidgraph add https://example.com
  voidgraph add https://example.com --title "Example" --position 1.5,0,-3`,
	Args: cobra.ExactArgs(1),
	RunE: runAdd,
}

func init() {
	addCmd.Flags().StringVar(&addTitle, "title", "", "node title (default: Untitled)")
	addCmd.Flags().Float64SliceVar(&addPosition, "position", nil, "explicit x,y,z position")
}

func runAdd(cmd *cobra.Command, args []string) error {
	rawURL := args[0]
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("url %q: %w", rawURL, types.ErrInvalidURL)
	}

	title := addTitle
	if title == "" {
		title = types.DefaultTitle
	}

	x, y, z := crawl.RandomPosition()
	if addPosition != nil {
		if len(addPosition) != 3 {
			return fmt.Errorf("--position requires exactly 3 values, got %d", len(addPosition))
		}
		x, y, z = addPosition[0], addPosition[1], addPosition[2]
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	id, err := store.CreateNode(rawURL, title, x, y, z)
	if err != nil {
		return err
	}

	node, err := store.GetNode(id)
	if err != nil {
		return err
	}

	if flagJSON {
		return printJSON(node)
	}
	fmt.Printf("Created node %d: %s\n", node.ID, node.URL)
	return nil
}
