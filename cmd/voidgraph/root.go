// Root command and directory resolution for the voidgraph CLI.
package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/voidgraph/internal/session"
	"github.com/mesh-intelligence/voidgraph/pkg/voidgraph"
)

// Global flag values.
var (
	flagConfigDir string
	flagDataDir   string
	flagSession   string
	flagJSON      bool
	flagVerbose   bool
)

// cfg is the engine configuration assembled from config.yaml, set by
// PersistentPreRunE so all subcommands can use it.
var cfg = defaultEngineConfig()

// logger is the process logger, a no-op unless --verbose is set.
var logger = zap.NewNop()

var rootCmd = &cobra.Command{
	Use:           "voidgraph",
	Short:         "Voidgraph is a local spatial graph of web pages",
	Version:       voidgraph.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" {
			return nil
		}

		if flagVerbose {
			l, err := zap.NewDevelopment()
			if err != nil {
				return err
			}
			logger = l
		}

		configDir, err := session.ResolveConfigDir(flagConfigDir)
		if err != nil {
			return err
		}
		loaded, err := loadConfig(configDir)
		if err != nil {
			return err
		}
		cfg = loaded
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default: platform config dir)")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "data directory holding the graph databases")
	rootCmd.PersistentFlags().StringVar(&flagSession, "session", "", "operate on a named session database instead of the active one")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "enable debug logging")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(linkCmd)
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(crawlCmd)
	rootCmd.AddCommand(discoverCmd)
	rootCmd.AddCommand(mergeCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(sessionsCmd)
}

// resolveDataDir applies the precedence --data-dir flag > config.yaml
// data_dir > VOIDGRAPH_DATA_DIR env > default.
func resolveDataDir() (string, error) {
	return session.ResolveDataDir(flagDataDir, cfg.DataDir)
}
