// Package output renders the outcome of a patch run for a human reader.
//
// # Components
//
//  1. Style Registry (styles/): semantic lipgloss styles loaded from YAML
//  2. Renderer: prints per-file diffs, write notices and the run summary
//
// # Color Support
//
// A Renderer built with Styled false never emits escape codes, which is what
// piped output and NO_COLOR get (see ui.DetectFormat). When Styled is set
// the lipgloss renderer bound to the writer picks the color profile, and
// falls back to 256 colors if detection found none so that an explicit
// --format term still shows colors through a pipe.
//
// # Diffs
//
// The positional diff prints, for every differing line index, the old line
// with a "-" marker and the new line with a "+" marker. The unified diff
// comes from report.Unified and only gets its +/- lines colored.
package output
