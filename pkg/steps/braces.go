package steps

// MatchBrace returns the index of the '}' that closes the '{' at open, or
// -1 when src[open] is not '{' or the block never closes. Braces inside
// string literals and comments are ignored; `${...}` interpolations inside
// strings are scanned as code.
func MatchBrace(src []rune, open int) int {
	if open < 0 || open >= len(src) || src[open] != '{' {
		return -1
	}
	s := braceScanner{src: src}
	return s.block(open + 1)
}

type braceScanner struct {
	src []rune
}

func (s *braceScanner) at(i int) rune {
	if i < 0 || i >= len(s.src) {
		return 0
	}
	return s.src[i]
}

// block scans code following an opening brace and returns the index of
// the matching closer
func (s *braceScanner) block(i int) int {
	depth := 1
	for i < len(s.src) {
		c := s.src[i]
		switch {
		case c == '{':
			depth++
			i++
		case c == '}':
			depth--
			if depth == 0 {
				return i
			}
			i++
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

func (s *braceScanner) isRawPrefix(quote int) bool {
	return s.at(quote-1) == 'r' && !isIdentRune(s.at(quote-2))
}

func (s *braceScanner) lineEnd(i int) int {
	for i < len(s.src) && s.src[i] != '\n' {
		i++
	}
	return i
}

// commentEnd returns the index just past a (possibly nested) block comment
func (s *braceScanner) commentEnd(i int) int {
	depth := 1
	for i < len(s.src) {
		switch {
		case s.src[i] == '/' && s.at(i+1) == '*':
			depth++
			i += 2
		case s.src[i] == '*' && s.at(i+1) == '/':
			depth--
			i += 2
			if depth == 0 {
				return i
			}
		default:
			i++
		}
	}
	return -1
}

// str returns the index just past the string literal starting at quote
func (s *braceScanner) str(quote int, raw bool) int {
	q := s.src[quote]
	triple := s.at(quote+1) == q && s.at(quote+2) == q
	i := quote + 1
	if triple {
		i = quote + 3
	}

	for i < len(s.src) {
		c := s.src[i]
		switch {
		case !raw && c == '\\':
			i += 2
		case !raw && c == '$' && s.at(i+1) == '{':
			end := s.block(i + 2)
			if end < 0 {
				return -1
			}
			i = end + 1
		case c == q && (!triple || (s.at(i+1) == q && s.at(i+2) == q)):
			if triple {
				return i + 3
			}
			return i + 1
		case c == '\n' && !triple:
			// Unterminated single-line literal; resume scanning as code.
			return i
		default:
			i++
		}
	}
	return -1
}

func isIdentRune(r rune) bool {
	return r == '_' || r == '$' ||
		(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}
