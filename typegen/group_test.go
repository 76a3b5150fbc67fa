package typegen

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dtesting "github.com/teranos/dojodts/internal/testing"
)

func TestGroups(t *testing.T) {
	coll := dtesting.LoadSmallDetails(t)

	groups := Groups(coll, nil)
	var prefixes []string
	for _, g := range groups {
		prefixes = append(prefixes, g.Prefix)
	}
	assert.Equal(t, []string{"dojo", "doh", "dijit", "dojox/gfx", "dojox/mobile"}, prefixes)

	byPrefix := make(map[string][]string)
	for _, g := range groups {
		byPrefix[g.Prefix] = g.Entities.Keys()
	}
	assert.Equal(t, []string{
		"dojo/_base/lang", "dojo/on", "dojo/store/api/Store", "dojo/store/Memory", "dojo/number.__FormatOptions",
	}, byPrefix["dojo"])
	assert.Equal(t, []string{"dojox/gfx/shape"}, byPrefix["dojox/gfx"])
	assert.Equal(t, []string{"doh/main"}, byPrefix["doh"])
}

func TestPrefixes_CutAtDot(t *testing.T) {
	coll := dtesting.LoadSmallDetails(t)
	// "dojox/gfx.matrix" yields the same prefix as "dojox/gfx/shape"
	assert.Equal(t, []string{"dojox/gfx", "dojox/mobile"}, Prefixes(coll, []string{})[0:2])
}

func TestInGroup(t *testing.T) {
	assert.True(t, InGroup("dojo", "dojo"))
	assert.True(t, InGroup("dojo", "dojo/on"))
	assert.False(t, InGroup("dojo", "dojox/gfx"))
	assert.False(t, InGroup("dojox/gfx", "dojox/gfx.matrix"))
	assert.True(t, InGroup("dojox/gfx", "dojox/gfx/matrix"))
}

func TestGroupFileName(t *testing.T) {
	assert.Equal(t, "dojo.d.ts", Group{Prefix: "dojo"}.FileName())
	assert.Equal(t, "dojox.gfx.d.ts", Group{Prefix: "dojox/gfx"}.FileName())
}

func TestExtras(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "dojo_1.10_head.d.ts"), []byte("// head\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "dojo_1.10_tail.d.ts"), []byte("// tail\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "dojox.gfx_1.10_tail.d.ts"), []byte("// gfx\n"), 0644))

	x, err := NewExtras(dir, "1.10.4")
	require.NoError(t, err)
	assert.Equal(t, "1.10", x.Series())

	got, err := x.Wrap("dojo", "body\n")
	require.NoError(t, err)
	assert.Equal(t, "// head\nbody\n// tail\n", got)

	got, err = x.Wrap("dojox/gfx", "body\n")
	require.NoError(t, err)
	assert.Equal(t, "body\n// gfx\n", got)

	got, err = x.Wrap("dijit", "body\n")
	require.NoError(t, err)
	assert.Equal(t, "body\n", got)

	var none *Extras
	got, err = none.Wrap("dojo", "body\n")
	require.NoError(t, err)
	assert.Equal(t, "body\n", got)

	_, err = NewExtras(dir, "one.ten")
	require.Error(t, err)
}

func TestFilesAndWrite(t *testing.T) {
	coll := dtesting.LoadSmallDetails(t)
	g := newGenerator(t, Config{})

	extrasDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(extrasDir, "doh_1.10_tail.d.ts"), []byte("// doh extras\n"), 0644))
	extras, err := NewExtras(extrasDir, "1.10")
	require.NoError(t, err)

	files, report, err := g.Files(context.Background(), coll, nil, extras)
	require.NoError(t, err)
	require.Len(t, files, 5)
	// dojox/gfx.matrix falls outside every group
	assert.Equal(t, coll.Len()-1, report.Entities)

	names := make([]string, len(files))
	for i, f := range files {
		names[i] = f.Name
	}
	assert.Equal(t, []string{"dojo.d.ts", "doh.d.ts", "dijit.d.ts", "dojox.gfx.d.ts", "dojox.mobile.d.ts"}, names)
	assert.Contains(t, files[1].Content, "// Types for doh/main\n")
	assert.Contains(t, files[1].Content, "// doh extras\n")
	assert.Equal(t, 1, files[3].Entities)

	out := filepath.Join(t.TempDir(), "output")
	require.NoError(t, WriteFiles(out, files))
	data, err := os.ReadFile(filepath.Join(out, "dijit.d.ts"))
	require.NoError(t, err)
	assert.Equal(t, files[2].Content, string(data))
}
