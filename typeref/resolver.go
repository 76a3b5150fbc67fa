// Package typeref maps free-text type spellings from the legacy documentation
// onto canonical, dotted TypeScript type references.
//
// Resolution is a dictionary lookup followed by path-separator normalisation.
// Lists of spellings become deduplicated unions; an empty list is "any".
package typeref

import (
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/teranos/dojodts/errors"
)

// Any is the universal type emitted for missing type information.
const Any = "any"

// UnionSeparator joins the members of a union type.
const UnionSeparator = "|"

// undefinedSpelling is dropped from return-type lists; an absent return is
// expressed by omission rather than a union with undefined.
const undefinedSpelling = "undefined"

// Resolver resolves raw type spellings. It is safe for concurrent use.
type Resolver struct {
	aliases Aliases
	cache   *lru.Cache[string, string]
}

// NewResolver creates a resolver over the given aliases. A positive
// cacheSize memoises resolved spellings.
func NewResolver(aliases Aliases, cacheSize int) (*Resolver, error) {
	r := &Resolver{aliases: aliases}
	if cacheSize > 0 {
		c, err := lru.New[string, string](cacheSize)
		if err != nil {
			return nil, errors.Wrap(err, "failed to create resolver cache")
		}
		r.cache = c
	}
	return r, nil
}

// Normalize turns a slash path into a dotted reference: "/" becomes "." and
// "-" becomes "_".
func Normalize(name string) string {
	return strings.NewReplacer("/", ".", "-", "_").Replace(name)
}

// Resolve maps one raw spelling to its canonical reference. Unknown
// spellings pass through with only path normalisation applied.
func (r *Resolver) Resolve(raw string) string {
	if r.cache != nil {
		if v, ok := r.cache.Get(raw); ok {
			return v
		}
	}

	result := raw
	if r.aliases != nil {
		if c, ok := r.aliases.Lookup(raw); ok {
			result = c
		}
	}
	members := splitUnion(Normalize(result))
	for i, m := range members {
		members[i] = qualify(m)
	}
	result = strings.Join(members, UnionSeparator)

	if r.cache != nil {
		r.cache.Add(raw, result)
	}
	return result
}

// ResolveList resolves a list of spellings into a single type. An empty
// list yields Any; otherwise the union members are deduplicated in
// first-occurrence order, including members of spellings that resolve to a
// union themselves.
func (r *Resolver) ResolveList(raws []string) string {
	if len(raws) == 0 {
		return Any
	}

	seen := make(map[string]bool, len(raws))
	out := make([]string, 0, len(raws))
	for _, raw := range raws {
		for _, m := range splitUnion(r.Resolve(raw)) {
			if seen[m] {
				continue
			}
			seen[m] = true
			out = append(out, m)
		}
	}
	return strings.Join(out, UnionSeparator)
}

// ResolveReturn resolves a return-type list. Literal "undefined" entries are
// dropped first.
func (r *Resolver) ResolveReturn(raws []string) string {
	kept := make([]string, 0, len(raws))
	for _, raw := range raws {
		if raw != undefinedSpelling {
			kept = append(kept, raw)
		}
	}
	return r.ResolveList(kept)
}
