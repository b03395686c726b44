package steps

import (
	"strings"
)

// EnsureLineAfterMatch inserts Lines right after the first match of Match.
// With Unique set, lines already present anywhere in the file are dropped
// first, which keeps the step idempotent.
type EnsureLineAfterMatch struct {
	Match  *Pattern
	Lines  []string
	Unique bool
}

func (s EnsureLineAfterMatch) Apply(text string) string {
	runes := []rune(text)
	m := s.Match.first(runes, 0)
	if m == nil {
		return noop(s.Kind(), "match not found", text)
	}

	lines := s.Lines
	if s.Unique {
		lines = missingLines(text, lines)
	}
	if len(lines) == 0 {
		return noop(s.Kind(), "all lines present", text)
	}

	end := m.Index + m.Length
	block := strings.Join(lines, "\n")
	if end > 0 && runes[end-1] == '\n' {
		block += "\n"
	} else {
		block = "\n" + block
	}
	return string(runes[:end]) + block + string(runes[end:])
}

// missingLines returns the lines not found verbatim in text
func missingLines(text string, lines []string) []string {
	var out []string
	for _, line := range lines {
		if !strings.Contains(text, line) {
			out = append(out, line)
		}
	}
	return out
}
