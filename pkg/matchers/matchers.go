package matchers

import (
	"strings"

	"github.com/arthur-debert/repatch/pkg/errors"
	"github.com/arthur-debert/repatch/pkg/logging"
	"github.com/dlclark/regexp2"
)

// Matcher is a compiled target pattern
type Matcher struct {
	pattern string
	re      *regexp2.Regexp
}

// Compile translates a glob-style target pattern into a Matcher
func Compile(pattern string) (*Matcher, error) {
	if pattern == "" {
		return nil, errors.New(errors.ErrPatternInvalid, "empty target pattern")
	}

	expr := Translate(pattern)
	re, err := regexp2.Compile(expr, regexp2.None)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrPatternInvalid, "invalid target pattern %q", pattern).
			WithDetail("regex", expr)
	}

	logger := logging.GetLogger("matchers")
	logger.Trace().
		Str("pattern", pattern).
		Str("regex", expr).
		Msg("Compiled target pattern")

	return &Matcher{pattern: pattern, re: re}, nil
}

// Translate converts a glob pattern into an anchored regular expression
func Translate(pattern string) string {
	var b strings.Builder
	b.WriteString(`\A`)

	runes := []rune(pattern)
	for i := 0; i < len(runes); i++ {
		switch ch := runes[i]; ch {
		case '*':
			if i+1 < len(runes) && runes[i+1] == '*' {
				i++
				if i+1 < len(runes) && runes[i+1] == '/' {
					i++
					b.WriteString(`(?:.*/)?`)
				} else {
					b.WriteString(`.*`)
				}
				continue
			}
			b.WriteString(`[^/]*`)
		case '?':
			b.WriteString(`[^/]`)
		case '/':
			b.WriteRune('/')
		default:
			b.WriteString(regexp2.Escape(string(ch)))
		}
	}

	b.WriteString(`\z`)
	return b.String()
}

// Pattern returns the source glob
func (m *Matcher) Pattern() string {
	return m.pattern
}

// Matches reports whether the relative path matches the pattern in full
func (m *Matcher) Matches(relativePath string) bool {
	ok, err := m.re.MatchString(Normalize(relativePath))
	if err != nil {
		return false
	}
	return ok
}

// Normalize converts a relative path to the forward-slash form matchers expect
func Normalize(relativePath string) string {
	return strings.ReplaceAll(relativePath, `\`, "/")
}

// Set is an ordered list of matchers combined with logical OR
type Set []*Matcher

// CompileAll compiles every pattern, failing on the first invalid one
func CompileAll(patterns []string) (Set, error) {
	set := make(Set, 0, len(patterns))
	for _, p := range patterns {
		m, err := Compile(p)
		if err != nil {
			return nil, err
		}
		set = append(set, m)
	}
	return set, nil
}

// Matches reports whether any matcher in the set accepts the path
func (s Set) Matches(relativePath string) bool {
	for _, m := range s {
		if m.Matches(relativePath) {
			return true
		}
	}
	return false
}

// Patterns returns the source globs of the set
func (s Set) Patterns() []string {
	out := make([]string, len(s))
	for i, m := range s {
		out[i] = m.pattern
	}
	return out
}
