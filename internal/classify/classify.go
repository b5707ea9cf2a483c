package classify

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/magma-lang/overlaygen/internal/collect"
)

// Recognized entry suffixes. Everything else is silently discarded.
const (
	ManifestExt = ".spec"
	SourceExt   = ".m"
)

// Result buckets resolved candidate paths. Manifests and Sources hold
// absolute paths with forward slashes; MissingExplicit and Dropped hold
// the repository-relative paths that did not exist at resolution time.
type Result struct {
	Manifests       []string
	Sources         []string
	MissingExplicit []string
	Dropped         []string
}

// Resolve checks each candidate against the working tree and buckets
// the survivors by extension. A missing path is fatal for the caller
// when it was explicitly requested, otherwise it is only dropped.
// Explicit selections are existence-checked even when the prefix
// filter kept them out of the candidate set; they still only appear in
// the output via the candidate set.
func Resolve(repoDir string, candidates, explicit collect.Set) Result {
	var res Result
	for _, rel := range candidates.Sorted() {
		if !exists(repoDir, rel) {
			if explicit.Has(rel) {
				res.MissingExplicit = append(res.MissingExplicit, rel)
			} else {
				res.Dropped = append(res.Dropped, rel)
			}
			continue
		}
		abs := filepath.Join(repoDir, filepath.FromSlash(rel))
		switch {
		case strings.HasSuffix(rel, ManifestExt):
			res.Manifests = append(res.Manifests, filepath.ToSlash(abs))
		case strings.HasSuffix(rel, SourceExt):
			res.Sources = append(res.Sources, filepath.ToSlash(abs))
		}
	}
	for _, rel := range explicit.Sorted() {
		if candidates.Has(rel) {
			continue // already checked above
		}
		if !exists(repoDir, rel) {
			res.MissingExplicit = append(res.MissingExplicit, rel)
		}
	}
	sort.Strings(res.MissingExplicit)
	return res
}

func exists(repoDir, rel string) bool {
	_, err := os.Stat(filepath.Join(repoDir, filepath.FromSlash(rel)))
	return err == nil
}
