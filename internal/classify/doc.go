// Package classify resolves candidate paths against the working tree
// and splits the survivors into manifest (.spec) and source (.m)
// buckets, recording missing paths by severity: explicitly requested
// ones are fatal, incidental ones are merely dropped.
package classify
