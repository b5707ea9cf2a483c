package collect

import (
	"fmt"
	"path/filepath"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"
	"go.uber.org/zap"

	"github.com/magma-lang/overlaygen/internal/config"
	"github.com/magma-lang/overlaygen/internal/gitrepo"
)

// Collector gathers candidate paths from git queries, keeping only
// those under the allowed prefixes and not matching any exclude
// pattern.
type Collector struct {
	repo     *gitrepo.Repo
	prefixes []string
	excludes *ignore.GitIgnore
	log      *zap.Logger
}

// New returns a Collector for repo. excludePatterns use gitignore
// syntax; an empty list excludes nothing.
func New(repo *gitrepo.Repo, prefixes, excludePatterns []string, log *zap.Logger) *Collector {
	if log == nil {
		log = zap.NewNop()
	}
	var excludes *ignore.GitIgnore
	if len(excludePatterns) > 0 {
		excludes = ignore.CompileIgnoreLines(excludePatterns...)
	}
	return &Collector{repo: repo, prefixes: prefixes, excludes: excludes, log: log}
}

// VerifyAncestry rejects any selected commit, or range tip, that is not
// an ancestor of target. Including un-ancestral history would require
// copying content outside the diff model, which this tool refuses.
func (c *Collector) VerifyAncestry(commits, ranges []string, target string) error {
	for _, sha := range commits {
		if !c.repo.IsAncestor(sha, target) {
			return fmt.Errorf("commit %s is not an ancestor of %s; cannot include without copying", sha, target)
		}
	}
	for _, rng := range ranges {
		_, tip, err := splitRange(rng)
		if err != nil {
			return err
		}
		if !c.repo.IsAncestor(tip, target) {
			return fmt.Errorf("range tip %s is not an ancestor of %s; cannot include without copying", tip, target)
		}
	}
	return nil
}

// ResolveBaseline maps the configured baseline ref through the chosen
// mode: "raw" uses it verbatim, "merge-base" resolves against target,
// and "fork-point" tries `merge-base --fork-point` before falling back
// to the plain merge base.
func (c *Collector) ResolveBaseline(baseline, target, mode string) (string, error) {
	switch strings.ToLower(mode) {
	case "raw":
		return baseline, nil
	case "merge-base":
		return c.repo.MergeBase(baseline, target)
	case "fork-point":
		if fp := c.repo.ForkPoint(baseline, target); fp != "" {
			return fp, nil
		}
		return c.repo.MergeBase(baseline, target)
	}
	return "", fmt.Errorf("unknown baseline_mode %q: use \"raw\", \"merge-base\", or \"fork-point\"", mode)
}

// BaselineDiff collects the filtered AMR paths of baseline..target.
func (c *Collector) BaselineDiff(baseline, target string) (Set, error) {
	paths, err := c.repo.DiffNames(baseline, target)
	if err != nil {
		return nil, err
	}
	return c.admitAll(paths), nil
}

// Commits collects the filtered AMR paths of each commit's first-parent
// diff.
func (c *Collector) Commits(shas []string) (Set, error) {
	set := NewSet()
	for _, sha := range shas {
		paths, err := c.repo.CommitNames(sha)
		if err != nil {
			return nil, err
		}
		set.Union(c.admitAll(paths))
	}
	return set, nil
}

// Ranges collects the filtered AMR paths of each A..B diff.
func (c *Collector) Ranges(ranges []string) (Set, error) {
	set := NewSet()
	for _, rng := range ranges {
		base, tip, err := splitRange(rng)
		if err != nil {
			return nil, err
		}
		paths, err := c.repo.DiffNames(base, tip)
		if err != nil {
			return nil, err
		}
		set.Union(c.admitAll(paths))
	}
	return set, nil
}

// Uncommitted collects filtered paths from staged changes, unstaged
// changes, and untracked files, treating untracked files as added.
func (c *Collector) Uncommitted() (Set, error) {
	set := NewSet()
	for _, list := range []func() ([]string, error){
		c.repo.StagedNames,
		c.repo.UnstagedNames,
		c.repo.UntrackedNames,
	} {
		paths, err := list()
		if err != nil {
			return nil, err
		}
		set.Union(c.admitAll(paths))
	}
	return set, nil
}

// Admit filters an already-normalized set of relative paths down to
// those passing the prefix and exclude filters.
func (c *Collector) Admit(paths Set) Set {
	set := NewSet()
	for p := range paths {
		if c.admit(p) {
			set.Add(p)
		}
	}
	return set
}

// NormalizeExplicit converts explicit path selectors to repo-relative
// POSIX form. Absolute selectors must resolve inside repoDir. The
// returned set is unfiltered: explicit selections are existence-checked
// regardless of the prefix filter.
func NormalizeExplicit(paths []string, repoDir string) (Set, error) {
	set := NewSet()
	for _, p := range paths {
		expanded := config.ExpandUser(p)
		var rel string
		if filepath.IsAbs(expanded) {
			abs, err := filepath.Abs(expanded)
			if err != nil {
				return nil, fmt.Errorf("invalid explicit path: %s", p)
			}
			r, err := filepath.Rel(repoDir, abs)
			if err != nil || r == ".." || strings.HasPrefix(r, ".."+string(filepath.Separator)) {
				return nil, fmt.Errorf("explicit path not under repo_dir: %s", p)
			}
			rel = filepath.ToSlash(r)
		} else {
			rel = filepath.ToSlash(filepath.Clean(expanded))
		}
		set.Add(rel)
	}
	return set, nil
}

func (c *Collector) admitAll(paths []string) Set {
	set := NewSet()
	for _, p := range paths {
		if c.admit(p) {
			set.Add(p)
		}
	}
	return set
}

func (c *Collector) admit(rel string) bool {
	if !underPrefixes(rel, c.prefixes) {
		return false
	}
	if c.excludes != nil && c.excludes.MatchesPath(rel) {
		c.log.Debug("path excluded by pattern", zap.String("path", rel))
		return false
	}
	return true
}

func underPrefixes(rel string, prefixes []string) bool {
	for _, pref := range prefixes {
		if strings.HasPrefix(rel, pref) {
			return true
		}
	}
	return false
}

func splitRange(rng string) (base, tip string, err error) {
	idx := strings.Index(rng, "..")
	if idx < 0 {
		return "", "", fmt.Errorf("range must be A..B, got: %s", rng)
	}
	return rng[:idx], rng[idx+2:], nil
}
