package manifest

import (
	"fmt"
	"path/filepath"
)

// Input carries the classified path sets into a renderer. Manifests,
// Sources, and IncludeSpecs are absolute paths; rendering re-expresses
// them relative to OutDir, the directory of the output file.
type Input struct {
	Manifests    []string
	Sources      []string
	IncludeSpecs []string // forced top entries, kept in config order
	OutDir       string
	Order        string // "spec-first" or merged-alphabetical otherwise
}

// Render produces the manifest body for the named format. The outer
// delimiter pair is added by Write, not here.
func Render(format string, in Input) ([]string, error) {
	switch format {
	case "flat":
		return Flat(in), nil
	case "curly":
		return Grouped(in), nil
	}
	return nil, fmt.Errorf("unknown output_format %q: use \"flat\" or \"curly\"", format)
}

// relTo renders abs relative to dir using forward slashes.
func relTo(dir, abs string) string {
	rel, err := filepath.Rel(dir, abs)
	if err != nil {
		return filepath.ToSlash(abs)
	}
	return filepath.ToSlash(rel)
}
