package steps

import (
	"strings"
)

// ReplaceAll replaces every non-overlapping match of Pattern
type ReplaceAll struct {
	Pattern     *Pattern
	Replacement *Template
}

func (s ReplaceAll) Apply(text string) string {
	out, n := s.Pattern.replaceIn([]rune(text), s.Replacement, -1)
	if n == 0 {
		return noop(s.Kind(), "pattern not found", text)
	}
	return out
}

// ReplaceFirstAfterAnchor replaces the first match of Pattern inside the
// window that starts where Anchor's first match ends and runs to the end of
// the WithinLines-th line after the anchor's line.
type ReplaceFirstAfterAnchor struct {
	Anchor      *Pattern
	WithinLines int
	Pattern     *Pattern
	Replacement *Template
}

func (s ReplaceFirstAfterAnchor) Apply(text string) string {
	runes := []rune(text)
	a := s.Anchor.first(runes, 0)
	if a == nil {
		return noop(s.Kind(), "anchor not found", text)
	}

	start := a.Index + a.Length
	end := windowEnd(runes, start, s.WithinLines)
	window := runes[start:end]

	m := s.Pattern.first(window, 0)
	if m == nil {
		return noop(s.Kind(), "pattern not in window", text)
	}

	var b strings.Builder
	b.WriteString(string(runes[:start+m.Index]))
	b.WriteString(s.Replacement.Expand(m))
	b.WriteString(string(runes[start+m.Index+m.Length:]))
	return b.String()
}

// windowEnd returns the end offset of a window starting at start that
// covers the rest of the current line plus lines further newline-terminated
// lines. A start already at a line beginning has no current-line remainder.
func windowEnd(runes []rune, start, lines int) int {
	if lines < 0 {
		lines = 0
	}
	need := lines + 1
	if start == 0 || runes[start-1] == '\n' {
		need = lines
	}

	pos := start
	for i := 0; i < need; i++ {
		next := -1
		for j := pos; j < len(runes); j++ {
			if runes[j] == '\n' {
				next = j
				break
			}
		}
		if next < 0 {
			return len(runes)
		}
		pos = next + 1
	}
	return pos
}

// ReplaceNthOccurrence replaces the matches of Pattern whose 1-based
// position in the file is listed in Nth
type ReplaceNthOccurrence struct {
	Pattern     *Pattern
	Replacement *Template
	Nth         []int
}

func (s ReplaceNthOccurrence) Apply(text string) string {
	runes := []rune(text)
	matches := s.Pattern.all(runes)
	if len(matches) == 0 {
		return noop(s.Kind(), "pattern not found", text)
	}

	wanted := make(map[int]bool, len(s.Nth))
	for _, n := range s.Nth {
		wanted[n] = true
	}

	var b strings.Builder
	last := 0
	replaced := 0
	for i, m := range matches {
		if !wanted[i+1] {
			continue
		}
		b.WriteString(string(runes[last:m.Index]))
		b.WriteString(s.Replacement.Expand(m))
		last = m.Index + m.Length
		replaced++
	}
	if replaced == 0 {
		return noop(s.Kind(), "no selected occurrence", text)
	}
	b.WriteString(string(runes[last:]))
	return b.String()
}
