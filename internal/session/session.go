// Package session resolves the engine's configuration and data directories
// and manages the session databases under <data_dir>/sessions. There is no
// ambient "current session" marker: callers select a database explicitly and
// hold its store handle for the duration of the operation.
package session

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/mesh-intelligence/voidgraph/internal/sqlite"
	"github.com/mesh-intelligence/voidgraph/pkg/types"
)

// Environment variable overrides for directory resolution.
const (
	EnvConfigDir = "VOIDGRAPH_CONFIG_DIR"
	EnvDataDir   = "VOIDGRAPH_DATA_DIR"
)

const (
	appDirName      = "voidgraph"
	activeDBName    = "void.db"
	sessionsDirName = "sessions"
	dbExt           = ".db"
)

// DefaultConfigDir returns the platform-specific default configuration
// directory.
//
// Linux:   $XDG_CONFIG_HOME/voidgraph (fallback ~/.config/voidgraph)
// macOS:   ~/Library/Application Support/voidgraph
// Windows: %APPDATA%/voidgraph
func DefaultConfigDir() (string, error) {
	if runtime.GOOS == "linux" {
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, appDirName), nil
		}
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".config", appDirName), nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appDirName), nil
}

// ResolveConfigDir applies the precedence flag > env > platform default.
func ResolveConfigDir(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if v := os.Getenv(EnvConfigDir); v != "" {
		return v, nil
	}
	return DefaultConfigDir()
}

// ResolveDataDir applies the precedence flag > config.yaml value > env >
// config directory (active database and config live together by default).
func ResolveDataDir(flagValue, configValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if configValue != "" {
		return configValue, nil
	}
	if v := os.Getenv(EnvDataDir); v != "" {
		return v, nil
	}
	return DefaultConfigDir()
}

// ActivePath returns the active graph database path inside dataDir.
func ActivePath(dataDir string) string {
	return filepath.Join(dataDir, activeDBName)
}

// Dir returns the session database directory inside dataDir.
func Dir(dataDir string) string {
	return filepath.Join(dataDir, sessionsDirName)
}

// Resolve maps a session name to its database path. An empty name selects
// the active database.
func Resolve(dataDir, name string) string {
	if name == "" {
		return ActivePath(dataDir)
	}
	return filepath.Join(Dir(dataDir), name+dbExt)
}

// List returns every session database in dataDir with its row counts,
// newest modification first. Databases that cannot be read are listed with
// zero counts rather than dropped.
func List(dataDir string) ([]types.SessionInfo, error) {
	dir := Dir(dataDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading sessions dir: %w", err)
	}

	var sessions []types.SessionInfo
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), dbExt) {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		info := types.SessionInfo{
			Name: strings.TrimSuffix(entry.Name(), dbExt),
			Path: path,
		}
		if fi, err := entry.Info(); err == nil {
			info.LastModified = fi.ModTime().UTC().Format("2006-01-02 15:04:05")
		}
		if stats, err := Stats(path); err == nil {
			info.NodeCount = stats.NodeCount
			info.EdgeCount = stats.EdgeCount
		}
		sessions = append(sessions, info)
	}

	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].LastModified > sessions[j].LastModified
	})
	return sessions, nil
}

// Create initializes a new, empty session database and returns its path.
// Returns ErrSessionExists if a session with that name is already present.
func Create(dataDir, name string) (string, error) {
	dir := Dir(dataDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating sessions dir: %w", err)
	}

	path := filepath.Join(dir, name+dbExt)
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("session %s: %w", name, types.ErrSessionExists)
	}

	store, err := sqlite.Open(path)
	if err != nil {
		return "", fmt.Errorf("initializing session %s: %w", name, err)
	}
	if err := store.Close(); err != nil {
		return "", fmt.Errorf("closing new session %s: %w", name, err)
	}
	return path, nil
}

// Stats returns the node and edge counts of the database at path.
func Stats(path string) (types.SessionStats, error) {
	var stats types.SessionStats
	if _, err := os.Stat(path); err != nil {
		return stats, fmt.Errorf("session database %s: %w", path, types.ErrNotFound)
	}

	store, err := sqlite.Open(path)
	if err != nil {
		return stats, err
	}
	defer store.Close()

	if stats.NodeCount, err = store.NodeCount(); err != nil {
		return stats, err
	}
	if stats.EdgeCount, err = store.EdgeCount(); err != nil {
		return stats, err
	}
	return stats, nil
}

// Delete removes a session database. Deleting an absent session is a no-op.
func Delete(dataDir, name string) error {
	path := filepath.Join(Dir(dataDir), name+dbExt)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("deleting session %s: %w", name, err)
	}
	return nil
}
