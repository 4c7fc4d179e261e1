package types

import "errors"

// Defaults applied by Config.Normalize.
const (
	DefaultStaleDays    = 7
	DefaultMaxNewNodes  = 10
	DefaultCrawlWorkers = 4
	DefaultUserAgent    = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
)

// Config validation errors.
var (
	ErrStaleDaysInvalid    = errors.New("stale_days must be positive")
	ErrMaxNewNodesInvalid  = errors.New("max_new_nodes must be positive")
	ErrCrawlWorkersInvalid = errors.New("crawl_workers must be positive")
)

// Config holds engine parameters, normally loaded from config.yaml.
type Config struct {
	// DataDir is the directory holding the active database and the
	// sessions subdirectory.
	DataDir string `json:"data_dir" yaml:"data_dir"`

	// StaleDays is the re-crawl staleness window in days.
	StaleDays int `json:"stale_days" yaml:"stale_days"`

	// UserAgent is the client identity sent with every fetch.
	UserAgent string `json:"user_agent" yaml:"user_agent"`

	// MaxNewNodes caps node creation per discovery call.
	MaxNewNodes int `json:"max_new_nodes" yaml:"max_new_nodes"`

	// CrawlWorkers bounds concurrent fetches in the auto-crawl loop.
	CrawlWorkers int `json:"crawl_workers" yaml:"crawl_workers"`
}

// Normalize fills zero-valued fields with defaults.
func (c *Config) Normalize() {
	if c.StaleDays == 0 {
		c.StaleDays = DefaultStaleDays
	}
	if c.UserAgent == "" {
		c.UserAgent = DefaultUserAgent
	}
	if c.MaxNewNodes == 0 {
		c.MaxNewNodes = DefaultMaxNewNodes
	}
	if c.CrawlWorkers == 0 {
		c.CrawlWorkers = DefaultCrawlWorkers
	}
}

// Validate checks that the Config is well-formed. It returns a sentinel
// error from this package on failure.
func (c Config) Validate() error {
	if c.StaleDays < 0 {
		return ErrStaleDaysInvalid
	}
	if c.MaxNewNodes < 0 {
		return ErrMaxNewNodesInvalid
	}
	if c.CrawlWorkers < 0 {
		return ErrCrawlWorkersInvalid
	}
	return nil
}
