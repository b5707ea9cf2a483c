// Overlaygen generates a deterministic overlay spec from a git
// repository and a YAML configuration.
//
// It diffs the configured baseline against the target ref, adds files
// from selected commits, ranges, uncommitted changes, and explicit
// paths, keeps only .spec and .m files under the allowed prefixes, and
// writes the manifest atomically with all entries relative to the
// output file's directory.
//
// Usage:
//
//	overlaygen overlay.yaml                    # write <repo_dir>/.magma_overlay.spec
//	overlaygen overlay.yaml --output out.spec  # override the output path
//	overlaygen overlay.yaml --verbose          # trace git invocations
//
// The exit code is 0 on success and 2 on any configuration, git, or
// selection-integrity failure; failed runs never touch the output file.
package main
