package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultOutputName is the manifest filename used when neither the
// configuration nor the CLI chooses an output path.
const DefaultOutputName = ".magma_overlay.spec"

// Config is the full overlay configuration, loaded once per run.
type Config struct {
	// RepoDir locates the git repository. Mandatory. Relative values
	// resolve against the configuration file's own directory.
	RepoDir  string `yaml:"repo_dir"`
	Baseline string `yaml:"baseline"`
	Target   string `yaml:"target"`
	Fetch    bool   `yaml:"fetch"`

	Selectors Selectors `yaml:"selectors"`
	Options   Options   `yaml:"options"`

	// IncludeSpecs and Output are accepted both here and under
	// options; the top-level value wins when both are set.
	IncludeSpecs []string `yaml:"include_specs"`
	Output       string   `yaml:"output"`
}

// Selectors name additional change sources beyond the baseline diff.
type Selectors struct {
	Commits []string `yaml:"commits"`
	Ranges  []string `yaml:"ranges"`
	Paths   []string `yaml:"paths"`
}

// Options groups formatting and filtering settings.
type Options struct {
	RestrictPrefixes   []string `yaml:"restrict_prefixes"`
	Order              string   `yaml:"order"`
	BaselineMode       string   `yaml:"baseline_mode"`
	OutputFormat       string   `yaml:"output_format"`
	IncludeUncommitted *bool    `yaml:"include_uncommitted"`
	ExcludePatterns    []string `yaml:"exclude_patterns"`
	IncludeSpecs       []string `yaml:"include_specs"`
	Output             string   `yaml:"output"`
}

// Load reads and parses the configuration file, applying defaults.
// The mandatory repo_dir field missing is an error.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.RepoDir == "" {
		return Config{}, fmt.Errorf("config must define 'repo_dir' (absolute or relative to the config file)")
	}
	applyDefaults(&cfg)
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Baseline == "" {
		cfg.Baseline = "origin/main"
	}
	if cfg.Target == "" {
		cfg.Target = "HEAD"
	}
	if len(cfg.Options.RestrictPrefixes) == 0 {
		cfg.Options.RestrictPrefixes = []string{"package/"}
	}
	if cfg.Options.Order == "" {
		cfg.Options.Order = "spec-first"
	}
	if cfg.Options.BaselineMode == "" {
		cfg.Options.BaselineMode = "raw"
	}
	if cfg.Options.OutputFormat == "" {
		cfg.Options.OutputFormat = "curly"
	}
}

// ResolveRepoDir returns the absolute repository directory, resolving a
// relative repo_dir against the configuration file's directory.
func (c Config) ResolveRepoDir(cfgPath string) (string, error) {
	rd := ExpandUser(c.RepoDir)
	if !filepath.IsAbs(rd) {
		rd = filepath.Join(filepath.Dir(cfgPath), rd)
	}
	abs, err := filepath.Abs(rd)
	if err != nil {
		return "", fmt.Errorf("resolving repo_dir %q: %w", c.RepoDir, err)
	}
	return abs, nil
}

// IncludeUncommitted reports whether working-tree changes join the
// candidate set. Defaults to true when the key is absent.
func (c Config) IncludeUncommitted() bool {
	if c.Options.IncludeUncommitted == nil {
		return true
	}
	return *c.Options.IncludeUncommitted
}

// EffectiveIncludeSpecs returns the forced top-of-file spec entries,
// preferring the top-level list over the options-level one.
func (c Config) EffectiveIncludeSpecs() []string {
	if len(c.IncludeSpecs) > 0 {
		return c.IncludeSpecs
	}
	return c.Options.IncludeSpecs
}

// OutputPath resolves the manifest destination. Precedence: CLI
// override, then configured output (top-level before options), then
// DefaultOutputName inside the repository. Relative values resolve
// against repoDir.
func (c Config) OutputPath(repoDir, override string) string {
	chosen := override
	if chosen == "" {
		chosen = c.Output
	}
	if chosen == "" {
		chosen = c.Options.Output
	}
	if chosen == "" {
		return filepath.Join(repoDir, DefaultOutputName)
	}
	chosen = ExpandUser(chosen)
	if !filepath.IsAbs(chosen) {
		chosen = filepath.Join(repoDir, chosen)
	}
	return filepath.Clean(chosen)
}

// ExpandUser replaces a leading "~" with the current user's home
// directory. The path is returned unchanged when the home directory
// cannot be determined.
func ExpandUser(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if path == "~" {
		return home
	}
	return filepath.Join(home, path[2:])
}
