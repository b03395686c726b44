package steps

import (
	"strings"
)

// importLine matches one Dart import statement on its own line
var importLine = MustCompilePattern(`^[ \t]*import[ \t]+['"][^'"\n]+['"][^;\n]*;[ \t]*$`)

// EnsureImport adds an import statement unless it is already present.
// The new line goes after the After import when that exists, else after
// the last import line, else at the top of the file.
type EnsureImport struct {
	Import string
	After  string
}

// FormatImport renders an import value as a full statement. Bare URIs are
// wrapped as `import '<uri>';`; values already starting with `import ` are
// kept and terminated with `;`.
func FormatImport(value string) string {
	v := strings.TrimSpace(value)
	if strings.HasPrefix(v, "import ") {
		if !strings.HasSuffix(v, ";") {
			v += ";"
		}
		return v
	}
	if len(v) >= 2 && (v[0] == '\'' || v[0] == '"') && v[len(v)-1] == v[0] {
		return "import " + v + ";"
	}
	return "import '" + v + "';"
}

func (s EnsureImport) Apply(text string) string {
	stmt := FormatImport(s.Import)
	if strings.Contains(text, stmt) {
		return noop(s.Kind(), "import already present", text)
	}

	if s.After != "" {
		if idx := strings.Index(text, FormatImport(s.After)); idx >= 0 {
			return insertLineAfter(text, lineEndAt(text, idx), stmt)
		}
	}

	runes := []rune(text)
	if matches := importLine.all(runes); len(matches) > 0 {
		last := matches[len(matches)-1]
		end := len(string(runes[:last.Index+last.Length]))
		return insertLineAfter(text, lineEndAt(text, end), stmt)
	}

	return stmt + "\n" + text
}

// lineEndAt returns the byte offset of the newline ending the line that
// contains offset, or len(text) for the last line
func lineEndAt(text string, offset int) int {
	if i := strings.IndexByte(text[offset:], '\n'); i >= 0 {
		return offset + i
	}
	return len(text)
}

// insertLineAfter inserts line as a new line after the line ending at
// lineEnd
func insertLineAfter(text string, lineEnd int, line string) string {
	if lineEnd >= len(text) {
		return text + "\n" + line
	}
	return text[:lineEnd+1] + line + "\n" + text[lineEnd+1:]
}
