package manifest

import (
	"path"
	"sort"
	"strings"
)

// dirGroup holds the basenames collected for one directory, plain
// source entries apart from manifest entries so each block can list
// sources first.
type dirGroup struct {
	files []string
	specs []string
}

// Grouped renders a directory-grouped manifest. When the non-root
// directories share a common ancestor, a single nested block is
// emitted: the ancestor as header, its direct entries indented once,
// each deeper directory as a nested brace block indented twice.
// Otherwise every directory becomes an independent block, with
// root-level entries listed at the base indent without a header; block
// order is one sorted pass over directory names with root first.
func Grouped(in Input) []string {
	var lines []string
	for _, p := range in.IncludeSpecs {
		lines = append(lines, "+"+relTo(in.OutDir, p))
	}

	groups := make(map[string]*dirGroup)
	add := func(abs string, spec bool) {
		rel := relTo(in.OutDir, abs)
		dir := path.Dir(rel)
		if dir == "." {
			dir = ""
		}
		g := groups[dir]
		if g == nil {
			g = &dirGroup{}
			groups[dir] = g
		}
		if spec {
			g.specs = append(g.specs, path.Base(rel))
		} else {
			g.files = append(g.files, path.Base(rel))
		}
	}
	for _, p := range in.Sources {
		add(p, false)
	}
	for _, p := range in.Manifests {
		add(p, true)
	}

	dirs := make([]string, 0, len(groups))
	for d := range groups {
		dirs = append(dirs, d)
	}
	sort.Strings(dirs) // root ("") sorts first

	var nonRoot []string
	for _, d := range dirs {
		if d != "" {
			nonRoot = append(nonRoot, d)
		}
	}

	if common := commonAncestor(nonRoot); common != "" {
		lines = append(lines, common+"/", "{")
		lines = appendEntries(lines, "  ", groups[common])
		prefix := common + "/"
		for _, d := range dirs {
			if d == "" || d == common || !strings.HasPrefix(d, prefix) {
				continue
			}
			lines = append(lines, "  "+strings.TrimPrefix(d, prefix)+"/", "  {")
			lines = appendEntries(lines, "    ", groups[d])
			lines = append(lines, "  }")
		}
		return append(lines, "}")
	}

	for _, d := range dirs {
		if d == "" {
			lines = appendEntries(lines, "  ", groups[d])
			continue
		}
		lines = append(lines, d+"/", "{")
		lines = appendEntries(lines, "  ", groups[d])
		lines = append(lines, "}")
	}
	return lines
}

func appendEntries(lines []string, indent string, g *dirGroup) []string {
	if g == nil {
		return lines
	}
	for _, name := range sortedCopy(g.files) {
		lines = append(lines, indent+name)
	}
	for _, name := range sortedCopy(g.specs) {
		lines = append(lines, indent+"+"+name)
	}
	return lines
}

// commonAncestor returns the deepest directory containing every entry,
// computed over path segments so that directories whose names are
// string prefixes of one another ("pkg" vs "pkg2") never collide.
// Grouping only applies with more than one distinct directory.
func commonAncestor(dirs []string) string {
	if len(dirs) < 2 {
		return ""
	}
	segs := strings.Split(dirs[0], "/")
	for _, d := range dirs[1:] {
		other := strings.Split(d, "/")
		n := 0
		for n < len(segs) && n < len(other) && segs[n] == other[n] {
			n++
		}
		segs = segs[:n]
		if len(segs) == 0 {
			return ""
		}
	}
	return strings.Join(segs, "/")
}
