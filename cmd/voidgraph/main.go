// Package main provides the voidgraph CLI: a SQLite-backed spatial graph of
// web pages with crawling, discovery, session merging, and import commands.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/mesh-intelligence/voidgraph/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		if errors.Is(err, types.ErrNotFound) ||
			errors.Is(err, types.ErrDuplicateURL) ||
			errors.Is(err, types.ErrInvalidURL) ||
			errors.Is(err, types.ErrSessionExists) {
			os.Exit(exitUserError)
		}
		os.Exit(exitSysError)
	}
	os.Exit(exitSuccess)
}
