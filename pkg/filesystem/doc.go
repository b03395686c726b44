// Package filesystem adapts afero filesystems to types.FS.
//
// The real filesystem, its read-only view used by dry runs and the
// in-memory filesystem used by tests all go through the same adapter, so
// the walker and the backup writer see identical semantics everywhere.
package filesystem
