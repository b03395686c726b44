package steps

import (
	"github.com/arthur-debert/repatch/pkg/errors"
)

// compileReplace compiles a pattern and a template that may only refer to
// the pattern's groups
func compileReplace(pattern, replacement string) (*Pattern, *Template, error) {
	p, err := CompilePattern(pattern)
	if err != nil {
		return nil, nil, err
	}
	t, err := CompileTemplate(replacement)
	if err != nil {
		return nil, nil, err
	}
	if err := t.Validate(p); err != nil {
		return nil, nil, err
	}
	return p, t, nil
}

// NewEnsureImport builds an EnsureImport step
func NewEnsureImport(importValue, after string) (EnsureImport, error) {
	if importValue == "" {
		return EnsureImport{}, errors.New(errors.ErrStepInvalid, "ensure_import requires 'import'")
	}
	return EnsureImport{Import: importValue, After: after}, nil
}

// NewEnsureLineAfterMatch builds an EnsureLineAfterMatch step
func NewEnsureLineAfterMatch(match string, lines []string, unique bool) (EnsureLineAfterMatch, error) {
	if len(lines) == 0 {
		return EnsureLineAfterMatch{}, errors.New(errors.ErrStepInvalid, "ensure_line_after_match requires 'lines'")
	}
	p, err := CompilePattern(match)
	if err != nil {
		return EnsureLineAfterMatch{}, err
	}
	return EnsureLineAfterMatch{Match: p, Lines: lines, Unique: unique}, nil
}

// NewEnsureSetupBlock builds an EnsureSetupBlock step
func NewEnsureSetupBlock(insertAtStart []string) (EnsureSetupBlock, error) {
	if len(insertAtStart) == 0 {
		return EnsureSetupBlock{}, errors.New(errors.ErrStepInvalid, "ensure_setup_block requires 'insert_at_start'")
	}
	return EnsureSetupBlock{InsertAtStart: insertAtStart}, nil
}

// NewEnsureFunction builds an EnsureFunction step
func NewEnsureFunction(name, appendText string) (EnsureFunction, error) {
	if name == "" {
		return EnsureFunction{}, errors.New(errors.ErrStepInvalid, "ensure_function requires 'name'")
	}
	if !isIdentifier(name) {
		return EnsureFunction{}, errors.Newf(errors.ErrStepInvalid, "ensure_function name %q is not an identifier", name)
	}
	return EnsureFunction{Name: name, Append: appendText}, nil
}

// NewReplaceAll builds a ReplaceAll step
func NewReplaceAll(pattern, replacement string) (ReplaceAll, error) {
	p, t, err := compileReplace(pattern, replacement)
	if err != nil {
		return ReplaceAll{}, err
	}
	return ReplaceAll{Pattern: p, Replacement: t}, nil
}

// NewReplaceFirstAfterAnchor builds a ReplaceFirstAfterAnchor step
func NewReplaceFirstAfterAnchor(anchor string, withinLines int, pattern, replacement string) (ReplaceFirstAfterAnchor, error) {
	if withinLines < 0 {
		return ReplaceFirstAfterAnchor{}, errors.Newf(errors.ErrStepInvalid, "within_lines must not be negative, got %d", withinLines)
	}
	a, err := CompilePattern(anchor)
	if err != nil {
		return ReplaceFirstAfterAnchor{}, err
	}
	p, t, err := compileReplace(pattern, replacement)
	if err != nil {
		return ReplaceFirstAfterAnchor{}, err
	}
	return ReplaceFirstAfterAnchor{Anchor: a, WithinLines: withinLines, Pattern: p, Replacement: t}, nil
}

// NewReplaceInNamedBlock builds a ReplaceInNamedBlock step. An empty header
// selects DefaultBlockHeader.
func NewReplaceInNamedBlock(name, header, pattern, replacement string, limit Limit) (ReplaceInNamedBlock, error) {
	n, err := CompilePattern(name)
	if err != nil {
		return ReplaceInNamedBlock{}, err
	}
	var h *Pattern
	if header != "" {
		if h, err = CompilePattern(header); err != nil {
			return ReplaceInNamedBlock{}, err
		}
	}
	p, t, err := compileReplace(pattern, replacement)
	if err != nil {
		return ReplaceInNamedBlock{}, err
	}
	if !limit.All && limit.Count < 1 {
		return ReplaceInNamedBlock{}, errors.Newf(errors.ErrStepInvalid, "limit count must be positive, got %d", limit.Count)
	}
	return ReplaceInNamedBlock{Name: n, Header: h, Pattern: p, Replacement: t, Limit: limit}, nil
}

// NewReplaceNthOccurrence builds a ReplaceNthOccurrence step
func NewReplaceNthOccurrence(pattern, replacement string, nth []int) (ReplaceNthOccurrence, error) {
	if len(nth) == 0 {
		return ReplaceNthOccurrence{}, errors.New(errors.ErrStepInvalid, "replace_nth_occurrence requires 'nth'")
	}
	for _, n := range nth {
		if n < 1 {
			return ReplaceNthOccurrence{}, errors.Newf(errors.ErrStepInvalid, "nth values are 1-based, got %d", n)
		}
	}
	p, t, err := compileReplace(pattern, replacement)
	if err != nil {
		return ReplaceNthOccurrence{}, err
	}
	return ReplaceNthOccurrence{Pattern: p, Replacement: t, Nth: nth}, nil
}

func isIdentifier(s string) bool {
	for i, r := range s {
		if !isIdentRune(r) || (i == 0 && r >= '0' && r <= '9') {
			return false
		}
	}
	return s != ""
}
