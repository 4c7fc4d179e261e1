// Package types defines the graph entities, operation result structs,
// configuration, and standard errors shared across the voidgraph engine.
package types
