package steps

import (
	"strings"

	"github.com/dlclark/regexp2"
)

// EnsureFunction appends Append to the file unless Name already occurs as a
// call or declaration (`name(`).
type EnsureFunction struct {
	Name   string
	Append string
}

func (s EnsureFunction) Apply(text string) string {
	if s.Name == "" {
		return noop(s.Kind(), "empty name", text)
	}
	call := MustCompilePattern(`\b` + regexp2.Escape(s.Name) + `\(`)
	if call.MatchString(text) {
		return noop(s.Kind(), "function present", text)
	}

	body := strings.TrimSpace(s.Append)
	if body == "" {
		return noop(s.Kind(), "nothing to append", text)
	}

	base := strings.TrimRight(text, "\n")
	if base == "" {
		return body + "\n"
	}
	return base + "\n\n" + body + "\n"
}
