package typeref

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/dojodts/errors"
)

func newDefaultResolver(t *testing.T) *Resolver {
	t.Helper()
	dict, err := DefaultDictionary()
	require.NoError(t, err)
	r, err := NewResolver(dict, 64)
	require.NoError(t, err)
	return r
}

func TestResolve_Families(t *testing.T) {
	r := newDefaultResolver(t)

	tests := []struct {
		family string
		raw    string
		want   string
	}{
		{"node", "DomNode", "HTMLElement"},
		{"node", "DOM node", "HTMLElement"},
		{"node", "Node;", "HTMLElement"},
		{"node", "DOMNode[]", "HTMLElement[]"},
		{"node", "form Node", "HTMLFormElement"},
		{"numeric", "Interger", "number"},
		{"numeric", "sha32.outputTypes", "number"},
		{"numeric", "Integer, optional", "number"},
		{"numeric", "byte[]", "number[]"},
		{"event", "MouseEvemt", "MouseEvent"},
		{"event", "DOMEvent", "Event"},
		{"event", "Key Event", "KeyboardEvent"},
		{"any", "Anything?", "any"},
		{"any", "almost anything", "any"},
		{"any", "undefined", "any"},
		{"any", "Array", "any[]"},
		{"string", "String?", "string"},
		{"string", "attribute-name-string", "string"},
		{"object", "Object?", "Object"},
		{"object", "out)keywordArgs", "Object"},
		{"legacy subtree", "__FormatOptions", "dojo.currency.__FormatOptions"},
		{"legacy subtree", "__ParseOptions", "dojo.number.__ParseOptions"},
		{"legacy subtree", "dojo/number.__FormatOptions", "dojo.number.__FormatOptions"},
		{"legacy subtree", "Promise", "dojo.promise.Promise"},
		{"legacy subtree", "treeNode", "dijit.Tree._TreeNode"},
		{"legacy subtree", "Array|dojo/promise/Promise", "any[]|dojo.promise.Promise"},
		{"function literal", "function(row,colIdx)", "{(row:Object,colIdx:number):Object}"},
		{"passthrough", "dojo/promise/Promise", "dojo.promise.Promise"},
		{"passthrough", "dojo/dom-attr", "dojo.dom_attr"},
		{"passthrough", "SomethingUnknown", "SomethingUnknown"},
	}

	for _, tt := range tests {
		t.Run(tt.family+"/"+tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Resolve(tt.raw))
			// Second call is served from the cache and must agree
			assert.Equal(t, tt.want, r.Resolve(tt.raw))
		})
	}
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "dojo.dom_attr", Normalize("dojo/dom-attr"))
	assert.Equal(t, "dojo.number.__FormatOptions", Normalize("dojo/number.__FormatOptions"))
	assert.Equal(t, "", Normalize(""))
}

func TestResolveList(t *testing.T) {
	r := newDefaultResolver(t)

	assert.Equal(t, Any, r.ResolveList(nil))
	assert.Equal(t, Any, r.ResolveList([]string{}))
	assert.Equal(t, "string", r.ResolveList([]string{"String"}))
	assert.Equal(t, "string|number", r.ResolveList([]string{"String", "Number"}))

	// Alias-equivalent spellings collapse to one member, first occurrence wins
	assert.Equal(t, "string|HTMLElement", r.ResolveList([]string{"String", "string", "DomNode", "String?", "Node"}))
	assert.Equal(t, "dijit.Tree._TreeNode", r.ResolveList([]string{"treeNode", "TreeNode"}))
}

func TestResolveList_NoDuplicateMembers(t *testing.T) {
	r := newDefaultResolver(t)
	dict, err := DefaultDictionary()
	require.NoError(t, err)

	spellings := dict.Spellings("number")
	require.NotEmpty(t, spellings)
	assert.Equal(t, "number", r.ResolveList(spellings))

	// An alias that resolves to a union shares members with other entries
	assert.Equal(t, "any[]|dojo.promise.Promise",
		r.ResolveList([]string{"Array|dojo/promise/Promise", "dojo/promise/Promise"}))
	assert.Equal(t, "dojo.promise.Promise|any[]",
		r.ResolveList([]string{"dojo/promise/Promise", "Array|dojo/promise/Promise", "Array"}))
	assert.Equal(t, "any[]|dojo.promise.Promise",
		r.ResolveList([]string{"Array|dojo/promise/Promise"}))
}

func TestResolve_ReservedSegments(t *testing.T) {
	r := newDefaultResolver(t)

	tests := map[string]string{
		"pkg/request/default":   "pkg.request.default_",
		"dojo/string":           "dojo.string_",
		"dojo/in/thing":         "dojo.in_.thing",
		"dojo/number/__Options": "dojo.number.__Options",
		"pkg/request/default[]": "pkg.request.default_[]",
		"pkg/class|pkg/ok":      "pkg.class_|pkg.ok",
		"string":                "string",
		"{(items:any[]):void}":  "{(items:any[]):void}",
	}
	for raw, want := range tests {
		assert.Equal(t, want, r.Resolve(raw), raw)
	}
}

func TestResolveReturn(t *testing.T) {
	r := newDefaultResolver(t)

	assert.Equal(t, r.ResolveList(nil), r.ResolveReturn([]string{"undefined"}))
	assert.Equal(t, Any, r.ResolveReturn(nil))
	assert.Equal(t, "boolean", r.ResolveReturn([]string{"undefined", "Boolean"}))
	assert.Equal(t, "dojo.Deferred|Object", r.ResolveReturn([]string{"Deferred", "undefined", "Object"}))
}

func TestResolver_WithoutCacheOrAliases(t *testing.T) {
	r, err := NewResolver(nil, 0)
	require.NoError(t, err)
	assert.Equal(t, "DomNode", r.Resolve("DomNode"))
	assert.Equal(t, "dijit.form.Button", r.Resolve("dijit/form/Button"))
}

func TestResolver_Concurrent(t *testing.T) {
	r := newDefaultResolver(t)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				assert.Equal(t, "HTMLElement|number", r.ResolveList([]string{"DomNode", "int", "Node"}))
			}
		}()
	}
	wg.Wait()
}

func TestParseDictionary_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{
			name: "duplicate spelling",
			data: "[[alias]]\ncanonical = \"a\"\nspellings = [\"x\"]\n[[alias]]\ncanonical = \"b\"\nspellings = [\"x\"]\n",
		},
		{
			name: "missing canonical",
			data: "[[alias]]\nspellings = [\"x\"]\n",
		},
		{
			name: "unknown key",
			data: "[[alias]]\ncanonical = \"a\"\nspelling = [\"x\"]\n",
		},
		{
			name: "malformed",
			data: "[[alias]\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDictionary([]byte(tt.data))
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrInvalidAliasTable), "got %v", err)
		})
	}
}

func TestLoadDictionary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aliases.toml")
	require.NoError(t, os.WriteFile(path, []byte("[[alias]]\ncanonical = \"dijit/Dialog\"\nspellings = [\"Dialog\", \"dlg\"]\n"), 0644))

	dict, err := LoadDictionary(path)
	require.NoError(t, err)
	assert.Equal(t, 2, dict.Len())

	r, err := NewResolver(dict, 0)
	require.NoError(t, err)
	assert.Equal(t, "dijit.Dialog", r.Resolve("dlg"))

	_, err = LoadDictionary(filepath.Join(t.TempDir(), "nope.toml"))
	assert.True(t, errors.Is(err, errors.ErrInvalidAliasTable))
}

func TestDefaultDictionary(t *testing.T) {
	dict, err := DefaultDictionary()
	require.NoError(t, err)
	assert.Equal(t, 205, dict.Len())

	c, ok := dict.Lookup("Bookean")
	assert.True(t, ok)
	assert.Equal(t, "boolean", c)

	_, ok = dict.Lookup("NotInTheTable")
	assert.False(t, ok)
}
