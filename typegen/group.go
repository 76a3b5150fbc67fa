package typegen

import (
	"strings"

	"github.com/teranos/dojodts/api"
)

// DefaultPrefixes are the package roots that always get their own file.
var DefaultPrefixes = []string{"dojo", "doh", "dijit"}

// extensionRoot is the root whose sub-packages are split into one file each
const extensionRoot = "dojox"

// Group is the part of the collection written to one declaration file.
type Group struct {
	Prefix   string
	Entities *api.Collection
}

// FileName returns the output file name for the group, e.g. "dojox.gfx.d.ts"
func (g Group) FileName() string {
	return flatPrefix(g.Prefix) + ".d.ts"
}

// InGroup reports whether path belongs under prefix
func InGroup(prefix, path string) bool {
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}

// Prefixes returns base followed by every "dojox/<package>" prefix found in
// the collection, in order of first appearance and without duplicates.
func Prefixes(coll *api.Collection, base []string) []string {
	seen := make(map[string]bool)
	var out []string
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	for _, p := range base {
		add(p)
	}
	for _, key := range coll.Keys() {
		if !strings.HasPrefix(key, extensionRoot+"/") {
			continue
		}
		parts := strings.SplitN(key, "/", 3)
		prefix := strings.Join(parts[:2], "/")
		prefix, _, _ = strings.Cut(prefix, ".")
		add(prefix)
	}
	return out
}

// Groups partitions coll by prefix. A nil or empty base selects
// DefaultPrefixes. Groups keep collection order; entities outside every
// prefix are left out.
func Groups(coll *api.Collection, base []string) []Group {
	if len(base) == 0 {
		base = DefaultPrefixes
	}
	var groups []Group
	for _, prefix := range Prefixes(coll, base) {
		groups = append(groups, Group{
			Prefix:   prefix,
			Entities: coll.Filter(func(path string) bool { return InGroup(prefix, path) }),
		})
	}
	return groups
}
