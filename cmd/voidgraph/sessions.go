// Sessions commands manage the named session databases.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/voidgraph/internal/session"
	"github.com/mesh-intelligence/voidgraph/pkg/types"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Manage session databases",
}

var sessionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List session databases, newest first",
	Args:  cobra.NoArgs,
	RunE:  runSessionsList,
}

var sessionsCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a new empty session database",
	Args:  cobra.ExactArgs(1),
	RunE:  runSessionsCreate,
}

var sessionsStatsCmd = &cobra.Command{
	Use:   "stats [name]",
	Short: "Show node and edge counts for a session (default: the active graph)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSessionsStats,
}

var sessionsDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a session database",
	Args:  cobra.ExactArgs(1),
	RunE:  runSessionsDelete,
}

func init() {
	sessionsCmd.AddCommand(sessionsListCmd)
	sessionsCmd.AddCommand(sessionsCreateCmd)
	sessionsCmd.AddCommand(sessionsStatsCmd)
	sessionsCmd.AddCommand(sessionsDeleteCmd)
}

// listSessions returns every session database under dataDir.
func listSessions(dataDir string) ([]types.SessionInfo, error) {
	return session.List(dataDir)
}

func runSessionsList(cmd *cobra.Command, args []string) error {
	dataDir, err := resolveDataDir()
	if err != nil {
		return err
	}

	sessions, err := listSessions(dataDir)
	if err != nil {
		return err
	}

	if flagJSON {
		return printJSON(sessions)
	}
	if len(sessions) == 0 {
		fmt.Println("No sessions")
		return nil
	}
	for _, s := range sessions {
		fmt.Printf("%-20s %5d nodes %5d edges  %s\n",
			s.Name, s.NodeCount, s.EdgeCount, s.LastModified)
	}
	return nil
}

func runSessionsCreate(cmd *cobra.Command, args []string) error {
	dataDir, err := resolveDataDir()
	if err != nil {
		return err
	}

	path, err := session.Create(dataDir, args[0])
	if err != nil {
		return err
	}

	if flagJSON {
		return printJSON(map[string]any{"name": args[0], "path": path})
	}
	fmt.Printf("Created session %s at %s\n", args[0], path)
	return nil
}

func runSessionsStats(cmd *cobra.Command, args []string) error {
	dataDir, err := resolveDataDir()
	if err != nil {
		return err
	}

	name := ""
	if len(args) == 1 {
		name = args[0]
	}
	path := session.Resolve(dataDir, name)

	stats, err := session.Stats(path)
	if err != nil {
		return err
	}

	if flagJSON {
		return printJSON(stats)
	}
	fmt.Printf("%d nodes, %d edges\n", stats.NodeCount, stats.EdgeCount)
	return nil
}

func runSessionsDelete(cmd *cobra.Command, args []string) error {
	dataDir, err := resolveDataDir()
	if err != nil {
		return err
	}

	if err := session.Delete(dataDir, args[0]); err != nil {
		return err
	}

	if flagJSON {
		return printJSON(map[string]any{"name": args[0], "deleted": true})
	}
	fmt.Printf("Deleted session %s\n", args[0])
	return nil
}
