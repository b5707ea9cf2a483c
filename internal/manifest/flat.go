package manifest

import "sort"

// Flat renders one entry per line. With "spec-first" ordering the
// manifest group precedes the source group, each sorted; any other
// ordering merges both groups into a single sort keyed on the rendered
// line, so the '+' prefix participates in the ordering.
func Flat(in Input) []string {
	var lines []string
	for _, p := range in.IncludeSpecs {
		lines = append(lines, "+"+relTo(in.OutDir, p))
	}

	if in.Order == "spec-first" {
		for _, p := range sortedCopy(in.Manifests) {
			lines = append(lines, "+"+relTo(in.OutDir, p))
		}
		for _, p := range sortedCopy(in.Sources) {
			lines = append(lines, relTo(in.OutDir, p))
		}
		return lines
	}

	merged := make([]string, 0, len(in.Manifests)+len(in.Sources))
	for _, p := range in.Manifests {
		merged = append(merged, "+"+relTo(in.OutDir, p))
	}
	for _, p := range in.Sources {
		merged = append(merged, relTo(in.OutDir, p))
	}
	sort.Strings(merged)
	return append(lines, merged...)
}

func sortedCopy(paths []string) []string {
	out := make([]string, len(paths))
	copy(out, paths)
	sort.Strings(out)
	return out
}
