package repatch

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Apply idempotent text patches to source files"
	MsgApplyShort      = "Run the configured steps over the target files"
	MsgGenConfigShort  = "Generate a sample configuration file"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"
	MsgManShort        = "Generate man pages into a directory"

	// Status messages
	MsgVersionFormat   = "repatch version %s\n  commit: %s\n  built:  %s\n"
	MsgConfigWritten   = "Created %s\n"
	MsgConfigExists    = "%s already exists, left unchanged\n"
	MsgManPagesWritten = "Man pages written to %s\n"

	// Error messages
	MsgErrApply     = "failed to apply patches: %w"
	MsgErrGenConfig = "failed to generate config: %w"
	MsgErrManPages  = "failed to generate man pages: %w"
	MsgErrNoCommand = "no command specified"

	// Flag descriptions
	MsgFlagVerbose   = "Increase verbosity (-v INFO and unchanged files, -vv DEBUG, -vvv TRACE)"
	MsgFlagDryRun    = "Show what would change without writing any file"
	MsgFlagConfig    = "Configuration file (default: repatch.yaml or repatch.toml in root)"
	MsgFlagDiff      = "Diff style for dry runs: positional or unified"
	MsgFlagFormat    = "Output format: auto, term or text"
	MsgFlagGenFormat = "Sample format: yaml or toml"
	MsgFlagWrite     = "Write the sample to a file instead of stdout"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/apply-long.txt
	msgApplyLongRaw string
	MsgApplyLong    = strings.TrimSpace(msgApplyLongRaw)

	//go:embed msgs/apply-example.txt
	msgApplyExampleRaw string
	MsgApplyExample    = strings.TrimRight(msgApplyExampleRaw, "\n")

	//go:embed msgs/genconfig-long.txt
	msgGenConfigLongRaw string
	MsgGenConfigLong    = strings.TrimSpace(msgGenConfigLongRaw)

	//go:embed msgs/genconfig-example.txt
	msgGenConfigExampleRaw string
	MsgGenConfigExample    = strings.TrimRight(msgGenConfigExampleRaw, "\n")

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw) + "\n"
)
