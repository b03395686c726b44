// Package report turns a pipeline outcome into something a user can act on:
// a diff of what would change, or the change itself written to disk behind
// a one-time backup.
//
// The default diff is positional. Lines are compared index by index and
// every differing index is shown as a removed/added pair, so a single
// inserted line shows up as a cascade of changes below it. The unified
// diff mode aligns lines by content instead.
package report
