// Package collect unions candidate paths from the baseline diff,
// per-commit first-parent diffs, explicit ranges, uncommitted changes,
// and explicit selectors. All collection is filtered to the allowed
// path prefixes (and optional exclude patterns) except the explicit
// selector set, which is retained unfiltered for strict existence
// checking.
package collect
