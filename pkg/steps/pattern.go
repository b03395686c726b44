package steps

import (
	"strings"

	"github.com/arthur-debert/repatch/pkg/errors"
	"github.com/dlclark/regexp2"
)

// Pattern is a compiled step pattern
type Pattern struct {
	source string
	re     *regexp2.Regexp
}

// CompilePattern compiles expr in multiline mode
func CompilePattern(expr string) (*Pattern, error) {
	if expr == "" {
		return nil, errors.New(errors.ErrPatternInvalid, "empty pattern")
	}
	re, err := regexp2.Compile(expr, regexp2.Multiline)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrPatternInvalid, "invalid pattern %q", expr)
	}
	return &Pattern{source: expr, re: re}, nil
}

// MustCompilePattern is CompilePattern for patterns known to be valid
func MustCompilePattern(expr string) *Pattern {
	p, err := CompilePattern(expr)
	if err != nil {
		panic(err)
	}
	return p
}

// LiteralPattern compiles a pattern matching s verbatim
func LiteralPattern(s string) *Pattern {
	return MustCompilePattern(regexp2.Escape(s))
}

// String returns the source expression
func (p *Pattern) String() string {
	if p == nil {
		return ""
	}
	return p.source
}

// first returns the first match in src at or after start, or nil
func (p *Pattern) first(src []rune, start int) *regexp2.Match {
	m, err := p.re.FindRunesMatchStartingAt(src, start)
	if err != nil {
		return nil
	}
	return m
}

// all returns every non-overlapping match in src, left to right
func (p *Pattern) all(src []rune) []*regexp2.Match {
	var out []*regexp2.Match
	m := p.first(src, 0)
	for m != nil {
		out = append(out, m)
		next, err := p.re.FindNextMatch(m)
		if err != nil {
			break
		}
		m = next
	}
	return out
}

// MatchString reports whether the pattern matches anywhere in s
func (p *Pattern) MatchString(s string) bool {
	ok, err := p.re.MatchString(s)
	return err == nil && ok
}

// groupText returns the text of a named group, falling back to group 1
// and then to the whole match
func groupText(m *regexp2.Match, name string) string {
	if g := m.GroupByName(name); g != nil && len(g.Captures) > 0 {
		return g.String()
	}
	if g := m.GroupByNumber(1); g != nil && len(g.Captures) > 0 {
		return g.String()
	}
	return m.String()
}

// numberedGroup returns the text of group n, or "" when it did not take part
func numberedGroup(m *regexp2.Match, n int) string {
	if g := m.GroupByNumber(n); g != nil && len(g.Captures) > 0 {
		return g.String()
	}
	return ""
}

// replaceIn rewrites up to limit matches of p in src (limit < 0 means all)
// and returns the new text with the number of replacements made
func (p *Pattern) replaceIn(src []rune, tmpl *Template, limit int) (string, int) {
	if limit == 0 {
		return string(src), 0
	}
	matches := p.all(src)
	if len(matches) == 0 {
		return string(src), 0
	}
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}

	var b strings.Builder
	last := 0
	for _, m := range matches {
		b.WriteString(string(src[last:m.Index]))
		b.WriteString(tmpl.Expand(m))
		last = m.Index + m.Length
	}
	b.WriteString(string(src[last:]))
	return b.String(), len(matches)
}
