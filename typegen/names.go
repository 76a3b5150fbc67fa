package typegen

import (
	"regexp"
	"strings"

	"github.com/teranos/dojodts/typeref"
)

var identifierPattern = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// IsIdentifier reports whether name can be used as a bare declaration name.
func IsIdentifier(name string) bool {
	return identifierPattern.MatchString(name) && !typeref.IsReserved(name)
}

// TypeName returns the identifier used to declare a type for a path's short
// name. Reserved names get a trailing underscore.
func TypeName(short string) string {
	return typeref.TypeName(short)
}

// MemberName returns name as a member key, quoted when it is not an
// identifier. Reserved words are legal member keys.
func MemberName(name string) string {
	if identifierPattern.MatchString(name) {
		return name
	}
	return `"` + strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(name) + `"`
}
