// Package types defines the core types and interfaces shared across repatch.
// This includes the FS abstraction used by discovery and reporting, and the
// RunContext threaded through a single patch run.
package types
