// Package voidgraph holds module-level metadata.
package voidgraph

// Version is the current voidgraph release.
const Version = "0.1.0"
