// Package manifest renders classified path sets into the overlay spec
// text and writes it atomically.
//
// Two layouts are supported, selected by name:
//   - flat  — one entry per line, spec-first or merged-alphabetical
//   - curly — entries grouped under directory header blocks
//
// All rendered paths are relative to the output file's directory with
// forward-slash separators; manifest entries carry a '+' prefix. The
// whole body is wrapped in a single outer brace pair by [Write].
package manifest
