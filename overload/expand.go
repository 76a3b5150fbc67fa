// Package overload expands a documented parameter list into the set of call
// signatures that TypeScript can express.
//
// TypeScript requires optional parameters to trail the required ones. The
// legacy documentation often marks a parameter optional before a later
// required one ("stray" optionals). For k stray optionals the expander emits
// 2^k signatures, one per subset of stray optionals present.
package overload

import (
	"strings"

	"github.com/teranos/dojodts/api"
	"github.com/teranos/dojodts/errors"
	"github.com/teranos/dojodts/typeref"
)

// DefaultMaxStray bounds the number of stray optionals expanded per list.
const DefaultMaxStray = 8

// TypeFormatter renders a parameter's raw type spellings as a type.
type TypeFormatter func(rawTypes []string) string

// Expander turns parameter lists into formatted parameter strings.
type Expander struct {
	// FormatTypes renders parameter types
	FormatTypes TypeFormatter
	// MaxStray is the largest stray-optional count expanded; <= 0 means DefaultMaxStray
	MaxStray int
}

// New creates an expander with the default bound
func New(formatTypes TypeFormatter) *Expander {
	return &Expander{FormatTypes: formatTypes, MaxStray: DefaultMaxStray}
}

// StrayCount returns the number of optional parameters that appear at or
// before the last required parameter.
func StrayCount(params []api.Parameter) int {
	last := lastRequired(params)
	n := 0
	for i := 0; i < last; i++ {
		if params[i].Optional() {
			n++
		}
	}
	return n
}

// lastRequired returns the index of the last non-optional parameter, or -1.
func lastRequired(params []api.Parameter) int {
	for i := len(params) - 1; i >= 0; i-- {
		if !params[i].Optional() {
			return i
		}
	}
	return -1
}

// Expand returns one formatted parameter string per overload; at least one
// string is always returned and an empty list yields [""].
//
// Signature i omits the j-th stray optional when bit j of i is set, so the
// first signature includes every parameter. Included stray optionals render
// without "?"; optionals after the last required parameter keep it.
// Parameter names that cannot bind in TypeScript get a trailing underscore.
//
// When the stray count exceeds MaxStray, Expand returns ErrTooManyOverloads
// along with a single signature that includes every stray optional.
func (x *Expander) Expand(params []api.Parameter) ([]string, error) {
	stray := StrayCount(params)
	limit := x.MaxStray
	if limit <= 0 {
		limit = DefaultMaxStray
	}
	if stray > limit {
		err := errors.Newk(errors.ErrTooManyOverloads,
			"%d stray optional parameters exceed the limit of %d", stray, limit)
		return []string{x.format(params, 0)}, err
	}

	out := make([]string, 0, 1<<stray)
	for mask := 0; mask < 1<<stray; mask++ {
		out = append(out, x.format(params, mask))
	}
	return out, nil
}

// format renders one overload. Bit j of omit drops the j-th stray optional.
func (x *Expander) format(params []api.Parameter, omit int) string {
	last := lastRequired(params)
	parts := make([]string, 0, len(params))
	stray := 0

	for i, p := range params {
		name := typeref.ParameterName(p.Name)
		if p.Optional() {
			if i < last {
				bit := stray
				stray++
				if omit&(1<<bit) != 0 {
					continue
				}
			} else {
				name += "?"
			}
		}
		parts = append(parts, name+": "+x.formatTypes(p.Types))
	}
	return strings.Join(parts, ", ")
}

func (x *Expander) formatTypes(raw []string) string {
	if x.FormatTypes == nil {
		if len(raw) == 0 {
			return "any"
		}
		return strings.Join(raw, "|")
	}
	return x.FormatTypes(raw)
}
