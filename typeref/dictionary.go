package typeref

import (
	_ "embed"
	"os"
	"sort"

	"github.com/BurntSushi/toml"

	"github.com/teranos/dojodts/errors"
)

//go:embed aliases.toml
var defaultAliases []byte

// Aliases maps a raw type spelling to its canonical reference.
type Aliases interface {
	Lookup(raw string) (canonical string, ok bool)
}

// Dictionary is the static type-alias table. It is many-to-one: many raw
// spellings converge on a single canonical reference.
type Dictionary struct {
	entries map[string]string
}

type aliasFile struct {
	Alias []aliasGroup `toml:"alias"`
}

type aliasGroup struct {
	Canonical string   `toml:"canonical"`
	Spellings []string `toml:"spellings"`
}

// DefaultDictionary returns the alias table compiled into the binary
func DefaultDictionary() (*Dictionary, error) {
	d, err := ParseDictionary(defaultAliases)
	if err != nil {
		return nil, errors.Wrap(err, "embedded aliases.toml")
	}
	return d, nil
}

// LoadDictionary reads an alias table from a TOML file
func LoadDictionary(path string) (*Dictionary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.MarkAs(err, errors.ErrInvalidAliasTable, "failed to read alias table")
	}
	d, err := ParseDictionary(data)
	if err != nil {
		return nil, errors.Wrapf(err, "alias table %s", path)
	}
	return d, nil
}

// ParseDictionary decodes an alias table. Unknown keys, empty canonical
// names and spellings listed twice are rejected.
func ParseDictionary(data []byte) (*Dictionary, error) {
	var file aliasFile
	md, err := toml.Decode(string(data), &file)
	if err != nil {
		return nil, errors.MarkAs(err, errors.ErrInvalidAliasTable, "malformed alias table")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, errors.Newk(errors.ErrInvalidAliasTable, "unknown key %s", undecoded[0].String())
	}

	entries := make(map[string]string)
	for i, g := range file.Alias {
		if g.Canonical == "" {
			return nil, errors.Newk(errors.ErrInvalidAliasTable, "alias group %d has no canonical name", i+1)
		}
		for _, s := range g.Spellings {
			if prev, dup := entries[s]; dup {
				return nil, errors.Newk(errors.ErrInvalidAliasTable,
					"spelling %q maps to both %q and %q", s, prev, g.Canonical)
			}
			entries[s] = g.Canonical
		}
	}
	return &Dictionary{entries: entries}, nil
}

// NewDictionary builds a dictionary from a plain map
func NewDictionary(entries map[string]string) *Dictionary {
	m := make(map[string]string, len(entries))
	for k, v := range entries {
		m[k] = v
	}
	return &Dictionary{entries: m}
}

// Lookup returns the canonical reference for a raw spelling
func (d *Dictionary) Lookup(raw string) (string, bool) {
	if d == nil {
		return "", false
	}
	c, ok := d.entries[raw]
	return c, ok
}

// Len returns the number of raw spellings in the table
func (d *Dictionary) Len() int {
	if d == nil {
		return 0
	}
	return len(d.entries)
}

// Spellings returns every raw spelling that maps to canonical, sorted.
func (d *Dictionary) Spellings(canonical string) []string {
	var out []string
	for raw, c := range d.entries {
		if c == canonical {
			out = append(out, raw)
		}
	}
	sort.Strings(out)
	return out
}
