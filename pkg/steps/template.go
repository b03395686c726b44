package steps

import (
	"strconv"
	"strings"

	"github.com/arthur-debert/repatch/pkg/errors"
	"github.com/dlclark/regexp2"
)

// Template is a parsed replacement string.
//
// Supported escapes: `\1`..`\99` and `\g<n>` for numbered groups,
// `\g<name>` for named groups, `\\` for a backslash, and `\n` `\t` `\r`
// `\f` `\v` `\a`. A backslash before any other non-letter is kept as is.
type Template struct {
	source string
	parts  []templatePart
}

type templatePart struct {
	literal string
	group   int
	name    string
	isGroup bool
}

// CompileTemplate parses a replacement string
func CompileTemplate(s string) (*Template, error) {
	t := &Template{source: s}
	var lit strings.Builder
	flush := func() {
		if lit.Len() > 0 {
			t.parts = append(t.parts, templatePart{literal: lit.String()})
			lit.Reset()
		}
	}

	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		c := runes[i]
		if c != '\\' || i+1 >= len(runes) {
			lit.WriteRune(c)
			continue
		}

		i++
		switch n := runes[i]; {
		case n == '\\':
			lit.WriteRune('\\')
		case n == 'n':
			lit.WriteRune('\n')
		case n == 't':
			lit.WriteRune('\t')
		case n == 'r':
			lit.WriteRune('\r')
		case n == 'f':
			lit.WriteRune('\f')
		case n == 'v':
			lit.WriteRune('\v')
		case n == 'a':
			lit.WriteRune('\a')
		case n >= '0' && n <= '9':
			j := i + 1
			if j < len(runes) && runes[j] >= '0' && runes[j] <= '9' {
				j++
			}
			num, _ := strconv.Atoi(string(runes[i:j]))
			flush()
			t.parts = append(t.parts, templatePart{group: num, isGroup: true})
			i = j - 1
		case n == 'g':
			if i+1 >= len(runes) || runes[i+1] != '<' {
				return nil, errors.Newf(errors.ErrPatternInvalid, "missing < after \\g in replacement %q", s)
			}
			end := -1
			for j := i + 2; j < len(runes); j++ {
				if runes[j] == '>' {
					end = j
					break
				}
			}
			if end < 0 {
				return nil, errors.Newf(errors.ErrPatternInvalid, "unterminated \\g<...> in replacement %q", s)
			}
			ref := string(runes[i+2 : end])
			if ref == "" {
				return nil, errors.Newf(errors.ErrPatternInvalid, "empty group reference in replacement %q", s)
			}
			flush()
			if num, err := strconv.Atoi(ref); err == nil {
				t.parts = append(t.parts, templatePart{group: num, isGroup: true})
			} else {
				t.parts = append(t.parts, templatePart{name: ref, isGroup: true})
			}
			i = end
		case isASCIILetter(n):
			return nil, errors.Newf(errors.ErrPatternInvalid, "bad escape \\%c in replacement %q", n, s)
		default:
			lit.WriteRune('\\')
			lit.WriteRune(n)
		}
	}
	flush()
	return t, nil
}

// MustCompileTemplate is CompileTemplate for templates known to be valid
func MustCompileTemplate(s string) *Template {
	t, err := CompileTemplate(s)
	if err != nil {
		panic(err)
	}
	return t
}

// String returns the source replacement string
func (t *Template) String() string {
	if t == nil {
		return ""
	}
	return t.source
}

// Validate checks that every group the template refers to exists in p
func (t *Template) Validate(p *Pattern) error {
	numbers := make(map[int]bool)
	for _, n := range p.re.GetGroupNumbers() {
		numbers[n] = true
	}
	for _, part := range t.parts {
		if !part.isGroup {
			continue
		}
		if part.name != "" {
			if p.re.GroupNumberFromName(part.name) < 0 {
				return errors.Newf(errors.ErrPatternInvalid, "unknown group name %q in replacement %q for pattern %q",
					part.name, t.source, p.source)
			}
			continue
		}
		if !numbers[part.group] {
			return errors.Newf(errors.ErrPatternInvalid, "invalid group reference %d in replacement %q for pattern %q",
				part.group, t.source, p.source)
		}
	}
	return nil
}

// Expand renders the template for one match. Unmatched groups expand to
// the empty string.
func (t *Template) Expand(m *regexp2.Match) string {
	if len(t.parts) == 1 && !t.parts[0].isGroup {
		return t.parts[0].literal
	}
	var b strings.Builder
	for _, part := range t.parts {
		if !part.isGroup {
			b.WriteString(part.literal)
			continue
		}
		var g *regexp2.Group
		if part.name != "" {
			g = m.GroupByName(part.name)
		} else {
			g = m.GroupByNumber(part.group)
		}
		if g != nil && len(g.Captures) > 0 {
			b.WriteString(g.String())
		}
	}
	return b.String()
}

func isASCIILetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
