package types

// RunMode indicates whether a run persists its results or only reports them
type RunMode string

const (
	// RunModeWrite backs up and overwrites every changed file
	RunModeWrite RunMode = "write"

	// RunModeReport prints the would-be diff and touches nothing on disk
	RunModeReport RunMode = "report"
)

// RunModeFor maps the dry-run flag to a RunMode
func RunModeFor(dryRun bool) RunMode {
	if dryRun {
		return RunModeReport
	}
	return RunModeWrite
}
