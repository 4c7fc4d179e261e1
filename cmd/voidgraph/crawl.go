// Crawl commands: single-node refresh, scheduling, and the auto-crawl loop.
package main

import (
	"fmt"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

var (
	crawlStaleDays int
	crawlWorkers   int
	crawlIdleWait  time.Duration
)

var crawlCmd = &cobra.Command{
	Use:   "crawl",
	Short: "Refresh node metadata by fetching pages",
}

var crawlNextCmd = &cobra.Command{
	Use:   "next",
	Short: "Show the node most due for a re-crawl",
	Args:  cobra.NoArgs,
	RunE:  runCrawlNext,
}

var crawlOneCmd = &cobra.Command{
	Use:   "one <node-id>",
	Short: "Crawl a single node",
	Long: `Crawl one fetches the node's URL and updates its title, favicon,
liveness, and crawl timestamp. An unreachable page marks the node dead; that
is an outcome, not a failure.

Example:
  voidgraph crawl one 5`,
	Args: cobra.ExactArgs(1),
	RunE: runCrawlOne,
}

var crawlStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the re-crawl backlog",
	Args:  cobra.NoArgs,
	RunE:  runCrawlStatus,
}

var crawlResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear every crawl timestamp, forcing a full re-crawl",
	Args:  cobra.NoArgs,
	RunE:  runCrawlReset,
}

var crawlAutoCmd = &cobra.Command{
	Use:   "auto",
	Short: "Continuously crawl stale nodes until interrupted",
	Long: `Crawl auto runs the bounded crawl loop: it keeps selecting the node
most due for a refresh and crawls it, with at most --workers fetches in
flight. Stop it with Ctrl-C; in-flight crawls finish before exit.`,
	Args: cobra.NoArgs,
	RunE: runCrawlAuto,
}

func init() {
	crawlCmd.PersistentFlags().IntVar(&crawlStaleDays, "stale-days", 0, "staleness window in days (default: from config)")

	crawlAutoCmd.Flags().IntVar(&crawlWorkers, "workers", 0, "concurrent fetches (default: from config)")
	crawlAutoCmd.Flags().DurationVar(&crawlIdleWait, "idle-wait", 5*time.Second, "pause when no node is due")

	crawlCmd.AddCommand(crawlNextCmd)
	crawlCmd.AddCommand(crawlOneCmd)
	crawlCmd.AddCommand(crawlStatusCmd)
	crawlCmd.AddCommand(crawlResetCmd)
	crawlCmd.AddCommand(crawlAutoCmd)
}

// staleDays returns the --stale-days override or the configured window.
func staleDays() int {
	if crawlStaleDays > 0 {
		return crawlStaleDays
	}
	return cfg.StaleDays
}

func runCrawlNext(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	target, err := newEngine(store).NextTarget(staleDays())
	if err != nil {
		return err
	}

	if flagJSON {
		return printJSON(target)
	}
	if target == nil {
		fmt.Println("No node is due for a crawl")
		return nil
	}
	fmt.Printf("Next: node %d (%s), last crawled %s\n",
		target.ID, target.URL, strOrDash(target.LastCrawled))
	return nil
}

func runCrawlOne(cmd *cobra.Command, args []string) error {
	nodeID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid node id %q", args[0])
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	result, err := newEngine(store).CrawlOne(cmd.Context(), nodeID)
	if err != nil {
		return err
	}

	if flagJSON {
		return printJSON(result)
	}
	if result.Error != nil {
		fmt.Printf("Node %d marked dead: %s\n", nodeID, *result.Error)
		return nil
	}
	fmt.Printf("Crawled node %d: title=%s favicon=%s alive=%t\n",
		nodeID, strOrDash(result.Title), strOrDash(result.Favicon), result.IsAlive)
	return nil
}

func runCrawlStatus(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	status, err := newEngine(store).Status(staleDays())
	if err != nil {
		return err
	}

	if flagJSON {
		return printJSON(status)
	}
	fmt.Printf("Pending: %d nodes\n", status.NodesPending)
	if status.LastCrawledID != nil {
		fmt.Printf("Last crawled: node %d (%s)\n",
			*status.LastCrawledID, strOrDash(status.LastCrawledURL))
	}
	return nil
}

func runCrawlReset(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	affected, err := newEngine(store).Reset()
	if err != nil {
		return err
	}

	if flagJSON {
		return printJSON(map[string]any{"nodes_reset": affected})
	}
	fmt.Printf("Reset crawl timestamps on %d nodes\n", affected)
	return nil
}

func runCrawlAuto(cmd *cobra.Command, args []string) error {
	workers := crawlWorkers
	if workers <= 0 {
		workers = cfg.CrawlWorkers
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Auto-crawling with %d workers (Ctrl-C to stop)\n", workers)
	return newEngine(store).AutoCrawl(ctx, staleDays(), workers, crawlIdleWait)
}
