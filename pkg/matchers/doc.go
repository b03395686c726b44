// Package matchers compiles target glob patterns into anchored path matchers.
//
// # Pattern Conventions
//
//   - `/` separates segments and matches literally
//   - `**` matches any sequence of characters, separators included; `**/`
//     also matches zero segments, so `a/**/*.dart` accepts `a/x.dart`
//   - `*` matches any run of characters inside one segment
//   - `?` matches exactly one non-separator character
//   - every other character is literal (regex metacharacters are escaped)
//
// Matching is case-sensitive and anchored: the whole forward-slash relative
// path has to match, never a substring of it. A Set ORs several matchers.
package matchers
