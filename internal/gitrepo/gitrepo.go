package gitrepo

import (
	"fmt"
	"os/exec"
	"strings"

	"go.uber.org/zap"
)

// Repo issues read-only queries against a git repository rooted at Dir.
// Every method is a single git invocation; failures carry the captured
// stderr text so callers can surface git's own diagnostic.
type Repo struct {
	Dir string
	log *zap.Logger
}

// New returns a Repo bound to dir. A nil logger disables command tracing.
func New(dir string, log *zap.Logger) *Repo {
	if log == nil {
		log = zap.NewNop()
	}
	return &Repo{Dir: dir, log: log}
}

// Fetch updates remote refs with `git fetch --prune`.
func (r *Repo) Fetch() error {
	if _, err := r.git("fetch", "--prune"); err != nil {
		return fmt.Errorf("git fetch: %w", err)
	}
	return nil
}

// VerifyRef checks that ref resolves to an object.
func (r *Repo) VerifyRef(ref string) error {
	if _, err := r.git("rev-parse", "--verify", ref); err != nil {
		return fmt.Errorf("git rev-parse --verify %s: %w", ref, err)
	}
	return nil
}

// IsAncestor reports whether ancestor is reachable from descendant.
// Any git failure is treated as "not an ancestor"; the distinction is
// not observable to callers, which reject the selector either way.
func (r *Repo) IsAncestor(ancestor, descendant string) bool {
	_, err := r.git("merge-base", "--is-ancestor", ancestor, descendant)
	return err == nil
}

// MergeBase returns the merge base of two refs.
func (r *Repo) MergeBase(a, b string) (string, error) {
	out, err := r.git("merge-base", a, b)
	if err != nil {
		return "", fmt.Errorf("git merge-base %s %s: %w", a, b, err)
	}
	return strings.TrimSpace(out), nil
}

// ForkPoint returns the fork point of ref relative to target, or "" when
// git cannot determine one. Failure here is not an error: callers fall
// back to the plain merge base.
func (r *Repo) ForkPoint(ref, target string) string {
	out, err := r.git("merge-base", "--fork-point", ref, target)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(out)
}

// DiffNames returns the paths added, modified, or renamed between two
// refs. Renames report only the destination path; copies and deletions
// are excluded by the diff filter.
func (r *Repo) DiffNames(base, target string) ([]string, error) {
	out, err := r.git("diff", "--name-status", "--diff-filter=AMR", base+".."+target)
	if err != nil {
		return nil, fmt.Errorf("git diff %s..%s: %w", base, target, err)
	}
	return ParseNameStatus(out), nil
}

// CommitNames returns the AMR paths of a single commit's first-parent diff.
func (r *Repo) CommitNames(sha string) ([]string, error) {
	out, err := r.git("diff-tree", "--name-status", "--first-parent", "-r", sha+"^!", "--diff-filter=AMR")
	if err != nil {
		return nil, fmt.Errorf("git diff-tree %s: %w", sha, err)
	}
	return ParseNameStatus(out), nil
}

// StagedNames returns the AMR paths of index vs HEAD.
func (r *Repo) StagedNames() ([]string, error) {
	out, err := r.git("diff", "--cached", "--name-status", "--diff-filter=AMR")
	if err != nil {
		return nil, fmt.Errorf("git diff --cached: %w", err)
	}
	return ParseNameStatus(out), nil
}

// UnstagedNames returns the AMR paths of working tree vs index.
func (r *Repo) UnstagedNames() ([]string, error) {
	out, err := r.git("diff", "--name-status", "--diff-filter=AMR")
	if err != nil {
		return nil, fmt.Errorf("git diff: %w", err)
	}
	return ParseNameStatus(out), nil
}

// UntrackedNames returns untracked, non-ignored paths in the working tree.
func (r *Repo) UntrackedNames() ([]string, error) {
	out, err := r.git("ls-files", "--others", "--exclude-standard")
	if err != nil {
		return nil, fmt.Errorf("git ls-files --others: %w", err)
	}
	var paths []string
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		paths = append(paths, line)
	}
	return paths, nil
}

// ParseNameStatus parses `git diff --name-status` output into a path list,
// taking the destination path for rename records. Records with fewer
// tab-separated fields than their status requires are skipped; this also
// drops the bare commit-id line diff-tree prints ahead of its entries.
func ParseNameStatus(text string) []string {
	var paths []string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		parts := strings.Split(strings.TrimRight(line, "\n"), "\t")
		status := parts[0]
		if strings.HasPrefix(status, "R") { // R100, R097, etc.
			if len(parts) < 3 {
				continue
			}
			paths = append(paths, parts[2])
			continue
		}
		if len(parts) < 2 {
			continue
		}
		paths = append(paths, parts[1])
	}
	return paths
}

func (r *Repo) git(args ...string) (string, error) {
	r.log.Debug("git", zap.Strings("args", args))
	cmd := exec.Command("git", append([]string{"-C", r.Dir}, args...)...)
	out, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return string(out), fmt.Errorf("%s: %s", err, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return "", err
	}
	return string(out), nil
}
