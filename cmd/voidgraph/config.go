// Config loading for the voidgraph CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/mesh-intelligence/voidgraph/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	cfgKeyDataDir      = "data_dir"
	cfgKeyStaleDays    = "stale_days"
	cfgKeyUserAgent    = "user_agent"
	cfgKeyMaxNewNodes  = "max_new_nodes"
	cfgKeyCrawlWorkers = "crawl_workers"
)

// defaultConfigYAML is written to config.yaml on first run.
const defaultConfigYAML = `# Voidgraph configuration

# Data directory (optional; overridable by --data-dir flag)
# data_dir:

# Re-crawl staleness window in days
stale_days: 7

# Maximum new nodes created per discovery
max_new_nodes: 10

# Concurrent fetches during auto-crawl
crawl_workers: 4
`

func defaultEngineConfig() types.Config {
	var c types.Config
	c.Normalize()
	return c
}

// loadConfig reads config.yaml from configDir using Viper, creating the
// directory and a default config.yaml on first run. A missing config.yaml is
// not an error.
func loadConfig(configDir string) (types.Config, error) {
	var c types.Config

	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return c, fmt.Errorf("ensure config dir: %w", err)
	}
	if err := ensureDefaultConfigFile(configDir); err != nil {
		return c, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return c, fmt.Errorf("read config: %w", err)
		}
	}

	c.DataDir = v.GetString(cfgKeyDataDir)
	c.StaleDays = v.GetInt(cfgKeyStaleDays)
	c.UserAgent = v.GetString(cfgKeyUserAgent)
	c.MaxNewNodes = v.GetInt(cfgKeyMaxNewNodes)
	c.CrawlWorkers = v.GetInt(cfgKeyCrawlWorkers)
	c.Normalize()

	if err := c.Validate(); err != nil {
		return c, fmt.Errorf("invalid config: %w", err)
	}
	return c, nil
}

// ensureDefaultConfigFile creates a default config.yaml if the file does not
// exist in the config directory.
func ensureDefaultConfigFile(configDir string) error {
	path := filepath.Join(configDir, configFileExt)

	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}

	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}
