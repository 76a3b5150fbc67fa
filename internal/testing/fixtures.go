// Package testing provides fixtures shared by package tests.
package testing

import (
	_ "embed"
	"os"
	"path/filepath"
	"testing"

	"github.com/teranos/dojodts/api"
)

//go:embed testdata/small-details.json
var smallDetails []byte

// SmallDetails returns the raw JSON of a small documentation sample
// covering every declaration shape.
func SmallDetails() []byte {
	out := make([]byte, len(smallDetails))
	copy(out, smallDetails)
	return out
}

// LoadSmallDetails parses the small documentation sample.
func LoadSmallDetails(t *testing.T) *api.Collection {
	t.Helper()

	coll, err := api.Parse(smallDetails)
	if err != nil {
		t.Fatalf("Failed to parse small details: %v", err)
	}
	return coll
}

// WriteSmallDetails writes the sample to dir and returns its path.
func WriteSmallDetails(t *testing.T, dir string) string {
	t.Helper()

	path := filepath.Join(dir, "details-1.10.json")
	if err := os.WriteFile(path, smallDetails, 0644); err != nil {
		t.Fatalf("Failed to write details file: %v", err)
	}
	return path
}

// Collection builds a collection from entities keyed by their locations.
func Collection(t *testing.T, entities ...*api.Entity) *api.Collection {
	t.Helper()

	coll := api.NewCollection()
	for _, e := range entities {
		if err := coll.Add(e.Location, e); err != nil {
			t.Fatalf("Failed to add %s: %v", e.Location, err)
		}
	}
	return coll
}

// Param builds a parameter; optional marks it with the optional usage.
func Param(name string, optional bool, types ...string) api.Parameter {
	p := api.Parameter{Name: name, Types: types, Usage: "required"}
	if optional {
		p.Usage = api.UsageOptional
	}
	return p
}
