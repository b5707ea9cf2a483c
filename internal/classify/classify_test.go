package classify

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/magma-lang/overlaygen/internal/collect"
)

func setupTree(t *testing.T, rels ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, rel := range rels {
		path := filepath.Join(dir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("x\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func setOf(rels ...string) collect.Set {
	s := collect.NewSet()
	for _, r := range rels {
		s.Add(r)
	}
	return s
}

func TestResolve_Buckets(t *testing.T) {
	dir := setupTree(t, "package/a/x.m", "package/a/y.spec", "package/note.txt")
	res := Resolve(dir, setOf("package/a/x.m", "package/a/y.spec", "package/note.txt"), collect.NewSet())

	if len(res.Sources) != 1 || !strings.HasSuffix(res.Sources[0], "package/a/x.m") {
		t.Errorf("Sources = %v", res.Sources)
	}
	if len(res.Manifests) != 1 || !strings.HasSuffix(res.Manifests[0], "package/a/y.spec") {
		t.Errorf("Manifests = %v", res.Manifests)
	}
	if len(res.MissingExplicit) != 0 || len(res.Dropped) != 0 {
		t.Errorf("unexpected missing entries: %+v", res)
	}
	// Unsupported extensions are discarded silently, not reported.
	for _, p := range append(res.Sources, res.Manifests...) {
		if strings.HasSuffix(p, ".txt") {
			t.Errorf("unsupported extension leaked into output: %s", p)
		}
	}
}

func TestResolve_AbsolutePaths(t *testing.T) {
	dir := setupTree(t, "package/x.m")
	res := Resolve(dir, setOf("package/x.m"), collect.NewSet())
	if len(res.Sources) != 1 {
		t.Fatalf("Sources = %v", res.Sources)
	}
	if !filepath.IsAbs(filepath.FromSlash(res.Sources[0])) {
		t.Errorf("bucketed path should be absolute: %s", res.Sources[0])
	}
	if strings.Contains(res.Sources[0], "\\") {
		t.Errorf("bucketed path should use forward slashes: %s", res.Sources[0])
	}
}

func TestResolve_MissingExplicitIsFatalRecord(t *testing.T) {
	dir := setupTree(t, "package/x.m")
	explicit := setOf("package/gone.m")
	res := Resolve(dir, setOf("package/x.m", "package/gone.m"), explicit)

	if len(res.MissingExplicit) != 1 || res.MissingExplicit[0] != "package/gone.m" {
		t.Errorf("MissingExplicit = %v", res.MissingExplicit)
	}
	if len(res.Dropped) != 0 {
		t.Errorf("Dropped = %v", res.Dropped)
	}
	if len(res.Sources) != 1 {
		t.Errorf("surviving source should still be bucketed: %v", res.Sources)
	}
}

func TestResolve_IncidentalMissingIsDropped(t *testing.T) {
	dir := setupTree(t, "package/x.m")
	res := Resolve(dir, setOf("package/x.m", "package/vanished.m"), collect.NewSet())

	if len(res.Dropped) != 1 || res.Dropped[0] != "package/vanished.m" {
		t.Errorf("Dropped = %v", res.Dropped)
	}
	if len(res.MissingExplicit) != 0 {
		t.Errorf("MissingExplicit = %v", res.MissingExplicit)
	}
}

func TestResolve_ExplicitCheckedOutsideCandidates(t *testing.T) {
	dir := setupTree(t, "package/x.m", "docs/present.m")
	// "docs/" paths were filtered out of the candidate set by prefix,
	// but explicit selections are still existence-checked.
	explicit := setOf("docs/present.m", "docs/gone.m")
	res := Resolve(dir, setOf("package/x.m"), explicit)

	if len(res.MissingExplicit) != 1 || res.MissingExplicit[0] != "docs/gone.m" {
		t.Errorf("MissingExplicit = %v, want [docs/gone.m]", res.MissingExplicit)
	}
	// An existing non-candidate explicit path is checked but never emitted.
	if len(res.Sources) != 1 || !strings.HasSuffix(res.Sources[0], "package/x.m") {
		t.Errorf("Sources = %v", res.Sources)
	}
}

func TestResolve_DeterministicOrder(t *testing.T) {
	dir := setupTree(t, "package/b.m", "package/a.m", "package/c.m")
	res := Resolve(dir, setOf("package/c.m", "package/a.m", "package/b.m"), collect.NewSet())
	for i := 1; i < len(res.Sources); i++ {
		if res.Sources[i] < res.Sources[i-1] {
			t.Fatalf("Sources not in sorted candidate order: %v", res.Sources)
		}
	}
}
