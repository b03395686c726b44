package types

import (
	"io"
	"os"
)

// DefaultBackupSuffix is appended to a target path to form its backup sibling
const DefaultBackupSuffix = ".bak"

// RunContext carries the per-run settings and counters through a patch run.
// It replaces any process-wide state: every component that needs the root,
// the mode flags or the output sink receives it explicitly.
type RunContext struct {
	Root         string
	Mode         RunMode
	Verbose      bool
	BackupSuffix string
	Out          io.Writer
	FS           FS

	Changed      int
	Unchanged    int
	Failed       int
	SkippedSteps int
}

// DryRun reports whether the run only reports changes
func (c *RunContext) DryRun() bool {
	return c.Mode == RunModeReport
}

// Writer returns the configured output sink, defaulting to stdout
func (c *RunContext) Writer() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

// Suffix returns the backup suffix, defaulting to DefaultBackupSuffix
func (c *RunContext) Suffix() string {
	if c.BackupSuffix == "" {
		return DefaultBackupSuffix
	}
	return c.BackupSuffix
}
