package report

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/repatch/pkg/errors"
	"github.com/pmezard/go-difflib/difflib"
)

// DiffMode selects how changed files are shown in report mode
type DiffMode int

const (
	// DiffPositional compares lines at equal indexes
	DiffPositional DiffMode = iota
	// DiffUnified aligns lines by content and prints a unified diff
	DiffUnified
)

// String returns the flag value for the mode
func (m DiffMode) String() string {
	switch m {
	case DiffPositional:
		return "positional"
	case DiffUnified:
		return "unified"
	default:
		return "unknown"
	}
}

// ParseDiffMode parses a --diff flag value
func ParseDiffMode(s string) (DiffMode, error) {
	switch strings.ToLower(s) {
	case "", "positional":
		return DiffPositional, nil
	case "unified":
		return DiffUnified, nil
	default:
		return DiffPositional, errors.Newf(errors.ErrInvalidInput, "unknown diff mode: %s", s)
	}
}

// LineChange is one differing line index. Line is 1-based. A change with
// HasOld false is a line only the new text has, and the reverse.
type LineChange struct {
	Line   int
	Old    string
	New    string
	HasOld bool
	HasNew bool
}

// Positional compares old and new line by line at equal indexes
func Positional(oldText, newText string) []LineChange {
	oldLines := strings.Split(oldText, "\n")
	newLines := strings.Split(newText, "\n")

	n := len(oldLines)
	if len(newLines) > n {
		n = len(newLines)
	}

	var changes []LineChange
	for i := 0; i < n; i++ {
		c := LineChange{Line: i + 1}
		if i < len(oldLines) {
			c.Old, c.HasOld = oldLines[i], true
		}
		if i < len(newLines) {
			c.New, c.HasNew = newLines[i], true
		}
		if c.HasOld && c.HasNew && c.Old == c.New {
			continue
		}
		changes = append(changes, c)
	}
	return changes
}

// Unified renders a content-aligned unified diff with three lines of context
func Unified(path, oldText, newText string) (string, error) {
	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(oldText),
		B:        difflib.SplitLines(newText),
		FromFile: fmt.Sprintf("a/%s", path),
		ToFile:   fmt.Sprintf("b/%s", path),
		Context:  3,
	}
	out, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrInternal, "failed to build diff for %s", path)
	}
	return out, nil
}
