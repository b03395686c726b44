package steps

import (
	"strings"
)

var (
	setupOpening    = MustCompilePattern(`^([ \t]*)setUpAll\s*\(\s*\(\s*\)\s*(?:async\s*)?\{`)
	testDeclaration = MustCompilePattern(`^([ \t]*)(?:testWidgets|test|group)\s*\(`)
	asyncEntry      = MustCompilePattern(`^([ \t]*)(?:[\w<>?]+\s+)?main\s*\(\s*\)\s*async\s*\{`)
)

const indentUnit = "  "

// EnsureSetupBlock makes sure a setUpAll block exists and starts with
// InsertAtStart. Tried in order: extend an existing setUpAll, add a new
// block before the first test declaration, add one at the end of an async
// main. When none applies the text is returned unchanged.
type EnsureSetupBlock struct {
	InsertAtStart []string
}

func (s EnsureSetupBlock) Apply(text string) string {
	runes := []rune(text)

	if m := setupOpening.first(runes, 0); m != nil {
		missing := missingLines(text, s.InsertAtStart)
		if len(missing) == 0 {
			return noop(s.Kind(), "setup lines present", text)
		}
		indent := numberedGroup(m, 1) + indentUnit
		var b strings.Builder
		for _, line := range missing {
			b.WriteString("\n")
			b.WriteString(indent)
			b.WriteString(line)
		}
		end := m.Index + m.Length
		return string(runes[:end]) + b.String() + string(runes[end:])
	}

	if len(s.InsertAtStart) == 0 {
		return noop(s.Kind(), "no setup lines", text)
	}

	if m := testDeclaration.first(runes, 0); m != nil {
		indent := numberedGroup(m, 1)
		return string(runes[:m.Index]) + s.block(indent) + "\n" + string(runes[m.Index:])
	}

	if m := asyncEntry.first(runes, 0); m != nil {
		open := m.Index + m.Length - 1
		closer := MatchBrace(runes, open)
		if closer < 0 {
			return noop(s.Kind(), "unbalanced main block", text)
		}
		indent := numberedGroup(m, 1) + indentUnit

		lineStart := closer
		for lineStart > 0 && (runes[lineStart-1] == ' ' || runes[lineStart-1] == '\t') {
			lineStart--
		}
		if lineStart > 0 && runes[lineStart-1] == '\n' {
			return string(runes[:lineStart]) + s.block(indent) + string(runes[lineStart:])
		}
		return string(runes[:closer]) + "\n" + s.block(indent) + string(runes[closer:])
	}

	return noop(s.Kind(), "no setup anchor", text)
}

// block renders a complete setUpAll block ending with a newline
func (s EnsureSetupBlock) block(indent string) string {
	var b strings.Builder
	b.WriteString(indent)
	b.WriteString("setUpAll(() async {\n")
	for _, line := range s.InsertAtStart {
		b.WriteString(indent)
		b.WriteString(indentUnit)
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString(indent)
	b.WriteString("});\n")
	return b.String()
}
