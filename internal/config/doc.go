// Package config loads the YAML overlay configuration: repository
// location, baseline/target refs, change selectors, and formatting
// options. The configuration is read once per run and is immutable
// thereafter; path fields resolve relative to well-defined anchors
// (repo_dir against the config file, output against repo_dir).
package config
