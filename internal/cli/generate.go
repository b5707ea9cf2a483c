package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/magma-lang/overlaygen/internal/classify"
	"github.com/magma-lang/overlaygen/internal/collect"
	"github.com/magma-lang/overlaygen/internal/config"
	"github.com/magma-lang/overlaygen/internal/gitrepo"
	"github.com/magma-lang/overlaygen/internal/manifest"
)

const defaultOutputHint = config.DefaultOutputName

// runGenerate is the whole pipeline: load config, query git, collect
// and classify paths, render, write atomically. Any returned error
// aborts before the output file is touched.
func runGenerate(cfgArg, outputOverride string) error {
	log := newLogger(flagVerbose)
	defer log.Sync()

	cfgPath, err := filepath.Abs(cfgArg)
	if err != nil {
		return fmt.Errorf("resolving config path: %w", err)
	}
	if st, err := os.Stat(cfgPath); err != nil || st.IsDir() {
		return fmt.Errorf("config not found: %s", cfgPath)
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	repoDir, err := cfg.ResolveRepoDir(cfgPath)
	if err != nil {
		return err
	}
	if st, err := os.Stat(repoDir); err != nil || !st.IsDir() {
		return fmt.Errorf("repo_dir does not exist: %s", repoDir)
	}

	repo := gitrepo.New(repoDir, log)
	if cfg.Fetch {
		log.Info("fetching remotes", zap.String("repo", repoDir))
		if err := repo.Fetch(); err != nil {
			return err
		}
	}
	if err := repo.VerifyRef(cfg.Target); err != nil {
		return fmt.Errorf("target ref invalid: %s: %w", cfg.Target, err)
	}

	coll := collect.New(repo, cfg.Options.RestrictPrefixes, cfg.Options.ExcludePatterns, log)
	if err := coll.VerifyAncestry(cfg.Selectors.Commits, cfg.Selectors.Ranges, cfg.Target); err != nil {
		return err
	}

	baseline, err := coll.ResolveBaseline(cfg.Baseline, cfg.Target, cfg.Options.BaselineMode)
	if err != nil {
		return err
	}
	log.Debug("effective baseline", zap.String("ref", baseline))

	candidates := collect.NewSet()
	fromDiff, err := coll.BaselineDiff(baseline, cfg.Target)
	if err != nil {
		return err
	}
	candidates.Union(fromDiff)

	fromCommits, err := coll.Commits(cfg.Selectors.Commits)
	if err != nil {
		return err
	}
	candidates.Union(fromCommits)

	fromRanges, err := coll.Ranges(cfg.Selectors.Ranges)
	if err != nil {
		return err
	}
	candidates.Union(fromRanges)

	if cfg.IncludeUncommitted() {
		fromWorktree, err := coll.Uncommitted()
		if err != nil {
			return err
		}
		candidates.Union(fromWorktree)
	}

	explicit, err := collect.NormalizeExplicit(cfg.Selectors.Paths, repoDir)
	if err != nil {
		return err
	}
	candidates.Union(coll.Admit(explicit))

	res := classify.Resolve(repoDir, candidates, explicit)
	if len(res.MissingExplicit) > 0 {
		return fmt.Errorf("explicitly selected paths missing at target:\n  %s",
			strings.Join(res.MissingExplicit, "\n  "))
	}
	for _, rel := range res.Dropped {
		log.Warn("path missing at target, dropped", zap.String("path", rel))
	}

	outPath := cfg.OutputPath(repoDir, outputOverride)
	body, err := manifest.Render(cfg.Options.OutputFormat, manifest.Input{
		Manifests:    res.Manifests,
		Sources:      res.Sources,
		IncludeSpecs: resolveIncludeSpecs(cfg.EffectiveIncludeSpecs(), repoDir),
		OutDir:       filepath.Dir(outPath),
		Order:        cfg.Options.Order,
	})
	if err != nil {
		return err
	}
	if err := manifest.Write(outPath, body); err != nil {
		return err
	}

	fmt.Printf("Wrote %d spec and %d source entries to %s\n",
		len(res.Manifests), len(res.Sources), outPath)
	return nil
}

// resolveIncludeSpecs makes the forced top entries absolute, resolving
// relative ones against the repository root. Order is preserved.
func resolveIncludeSpecs(specs []string, repoDir string) []string {
	var abs []string
	for _, sp := range specs {
		p := config.ExpandUser(sp)
		if !filepath.IsAbs(p) {
			p = filepath.Join(repoDir, p)
		}
		abs = append(abs, filepath.ToSlash(filepath.Clean(p)))
	}
	return abs
}

// newLogger builds a console logger on stderr. Fatal errors bypass it
// (they are printed by Run), so its job is warnings and, with
// --verbose, per-command tracing.
func newLogger(verbose bool) *zap.Logger {
	cfg := zap.NewDevelopmentConfig()
	cfg.DisableStacktrace = true
	cfg.DisableCaller = true
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	} else {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	}
	log, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return log
}
