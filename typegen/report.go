package typegen

import (
	"fmt"

	"github.com/teranos/dojodts/classify"
)

// Report summarises one synthesis run.
type Report struct {
	// Entities is the number of entities in the input collection
	Entities int

	// Emitted counts entities that produced declarations
	Emitted int

	// Removed lists locations dropped by the patch layer, in input order
	Removed []string

	// Shapes counts emitted entities per declaration shape
	Shapes map[classify.Kind]int

	// Warnings lists lossy decisions taken while emitting
	Warnings []Warning

	// Bytes is the size of the synthesized text
	Bytes int
}

// Warning records a member that could not be expressed exactly.
type Warning struct {
	// Entity is the location of the entity being emitted
	Entity string
	// Member is the method name, "" for the entity's own signature
	Member string
	Err    error
}

func (w Warning) String() string {
	if w.Member == "" {
		return fmt.Sprintf("%s: %v", w.Entity, w.Err)
	}
	return fmt.Sprintf("%s#%s: %v", w.Entity, w.Member, w.Err)
}

func newReport() *Report {
	return &Report{Shapes: make(map[classify.Kind]int)}
}

// Merge adds the counts of other into r
func (r *Report) Merge(other *Report) {
	if other == nil {
		return
	}
	if r.Shapes == nil {
		r.Shapes = make(map[classify.Kind]int)
	}
	r.Entities += other.Entities
	r.Emitted += other.Emitted
	r.Removed = append(r.Removed, other.Removed...)
	for k, n := range other.Shapes {
		r.Shapes[k] += n
	}
	r.Warnings = append(r.Warnings, other.Warnings...)
	r.Bytes += other.Bytes
}
