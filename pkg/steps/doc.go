// Package steps implements the text-editing primitives a patch pipeline is
// built from.
//
// Every step consumes the whole file text and returns a whole new text. A
// step that cannot find its anchor, pattern or block returns the input
// unchanged; steps never fail at apply time. Applying a step to its own
// output is a no-op for the insertion steps, which is what makes repeated
// runs over regenerated files safe.
//
// Patterns are compiled with github.com/dlclark/regexp2 in multiline mode:
// `^` and `$` match at line boundaries and `.` stops at newlines unless the
// pattern opts in with `(?s)`. Lookaround, backreferences and `(?<name>...)`
// groups are available. Replacement templates use the `\1` / `\g<name>`
// syntax; `$` is literal, so Dart string interpolation survives untouched.
package steps
