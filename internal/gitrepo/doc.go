// Package gitrepo wraps the read-only git queries the overlay pipeline
// needs: ref verification, ancestry checks, name-status diffs between
// refs and for single commits, working-tree status, and untracked-file
// listing.
//
// Every operation shells out to git with `-C <repo>` and parses the
// line-oriented output. Non-zero exits surface the captured stderr text
// in the returned error so the caller can echo git's own diagnostic.
// Calls are synchronous with no timeouts; a hung git hangs the run.
package gitrepo
