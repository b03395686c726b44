package steps

import (
	"strconv"
	"strings"

	"github.com/arthur-debert/repatch/pkg/errors"
)

// DefaultBlockHeader matches Dart test structure calls and captures the
// description as `name`
const DefaultBlockHeader = `\b(?:group|test|testWidgets)\s*\(\s*(['"])(?<name>.*?)\1`

var defaultBlockHeader = MustCompilePattern(DefaultBlockHeader)

// Limit bounds how many matches are replaced inside one block
type Limit struct {
	All   bool
	Count int
}

// LimitFirst replaces only the first match
var LimitFirst = Limit{Count: 1}

// LimitAll replaces every match
var LimitAll = Limit{All: true}

// ParseLimit accepts "first", "all" or a positive count
func ParseLimit(value string) (Limit, error) {
	switch v := strings.ToLower(strings.TrimSpace(value)); v {
	case "", "first":
		return LimitFirst, nil
	case "all":
		return LimitAll, nil
	default:
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return Limit{}, errors.Newf(errors.ErrStepInvalid, "limit must be first, all or a positive count, got %q", value)
		}
		return Limit{Count: n}, nil
	}
}

func (l Limit) max() int {
	if l.All {
		return -1
	}
	return l.Count
}

// String renders the limit in its configuration form
func (l Limit) String() string {
	if l.All {
		return "all"
	}
	if l.Count == 1 {
		return "first"
	}
	return strconv.Itoa(l.Count)
}

// ReplaceInNamedBlock replaces matches of Pattern inside the bodies of the
// blocks whose header name matches Name. Blocks with other names are left
// alone, as are blocks whose braces never balance.
type ReplaceInNamedBlock struct {
	Name        *Pattern
	Header      *Pattern
	Pattern     *Pattern
	Replacement *Template
	Limit       Limit
}

func (s ReplaceInNamedBlock) Apply(text string) string {
	header := s.Header
	if header == nil {
		header = defaultBlockHeader
	}

	runes := []rune(text)
	changed := 0
	pos := 0
	for pos <= len(runes) {
		h := header.first(runes, pos)
		if h == nil {
			break
		}
		headerEnd := h.Index + h.Length
		pos = headerEnd
		if h.Length == 0 {
			pos++
		}

		name := groupText(h, "name")
		if !s.Name.MatchString(name) {
			continue
		}

		open := openingBrace(runes, h.Index, headerEnd)
		if open < 0 {
			logger().Debug().Str("block", name).Msg("Named block has no body, skipping")
			continue
		}
		closer := MatchBrace(runes, open)
		if closer < 0 {
			logger().Debug().Str("block", name).Msg("Named block never closes, skipping")
			continue
		}

		body, n := s.Pattern.replaceIn(runes[open+1:closer], s.Replacement, s.Limit.max())
		if n == 0 {
			continue
		}
		changed += n

		rebuilt := make([]rune, 0, len(runes)+len(body))
		rebuilt = append(rebuilt, runes[:open+1]...)
		rebuilt = append(rebuilt, []rune(body)...)
		rebuilt = append(rebuilt, runes[closer:]...)
		runes = rebuilt
	}

	if changed == 0 {
		return noop(s.Kind(), "no selected block changed", text)
	}
	return string(runes)
}

// openingBrace finds the '{' that opens a header's block: the last rune of
// the header when it is a brace, else the first brace after it. A ';'
// reached first means the header has no block body.
func openingBrace(runes []rune, headerStart, headerEnd int) int {
	if headerEnd > headerStart && runes[headerEnd-1] == '{' {
		return headerEnd - 1
	}
	s := braceScanner{src: runes}
	for i := headerEnd; i < len(runes); {
		switch c := runes[i]; {
		case c == '{':
			return i
		case c == ';':
			return -1
		case c == '/' && s.at(i+1) == '/':
			i = s.lineEnd(i)
		case c == '/' && s.at(i+1) == '*':
			i = s.commentEnd(i + 2)
		case c == '\'' || c == '"':
			i = s.str(i, s.isRawPrefix(i))
		default:
			i++
		}
		if i < 0 {
			return -1
		}
	}
	return -1
}
