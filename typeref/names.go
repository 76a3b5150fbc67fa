package typeref

import (
	"regexp"
	"strings"
)

var identifierInvalid = regexp.MustCompile(`[^A-Za-z0-9_$]`)

var qualifiedPattern = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*(\.[A-Za-z_$][A-Za-z0-9_$]*)+$`)

// reservedWords cannot name a declaration or parameter of any kind.
var reservedWords = map[string]bool{
	"break": true, "case": true, "catch": true, "class": true, "const": true,
	"continue": true, "debugger": true, "default": true, "delete": true, "do": true,
	"else": true, "enum": true, "export": true, "extends": true, "false": true,
	"finally": true, "for": true, "function": true, "if": true, "import": true,
	"in": true, "instanceof": true, "new": true, "null": true, "return": true,
	"super": true, "switch": true, "this": true, "throw": true, "true": true,
	"try": true, "typeof": true, "var": true, "void": true, "while": true,
	"with": true,
}

// strictReserved are rejected as parameter names in strict-mode code.
var strictReserved = map[string]bool{
	"arguments": true, "eval": true, "implements": true, "interface": true,
	"let": true, "package": true, "private": true, "protected": true,
	"public": true, "static": true, "yield": true,
}

// reservedTypeNames are legal identifiers that are ambiguous as type names.
var reservedTypeNames = map[string]bool{
	"string": true, "number": true, "boolean": true, "any": true, "symbol": true,
	"object": true, "never": true, "unknown": true,
}

// IsReserved reports whether name is a reserved word.
func IsReserved(name string) bool {
	return reservedWords[name]
}

// Sanitize replaces characters that cannot appear in an identifier and
// prefixes names that would start with a digit.
func Sanitize(s string) string {
	s = identifierInvalid.ReplaceAllString(s, "_")
	if s == "" || (s[0] >= '0' && s[0] <= '9') {
		s = "_" + s
	}
	return s
}

// TypeName returns the identifier declared for a path's last segment.
// Reserved words and built-in type names get a trailing underscore.
func TypeName(short string) string {
	name := Sanitize(short)
	if reservedWords[name] || reservedTypeNames[name] {
		name += "_"
	}
	return name
}

// SegmentName returns the identifier for a namespace segment.
func SegmentName(segment string) string {
	name := Sanitize(segment)
	if reservedWords[name] {
		name += "_"
	}
	return name
}

// ParameterName returns name as a parameter binding.
func ParameterName(name string) string {
	name = Sanitize(name)
	if reservedWords[name] || strictReserved[name] {
		name += "_"
	}
	return name
}

// qualify applies the declaration naming rules to a dotted reference so it
// names the same identifiers the declarations use. Built-in and undotted
// references are left alone.
func qualify(ref string) string {
	base := strings.TrimRight(ref, "[]")
	if !qualifiedPattern.MatchString(base) {
		return ref
	}
	segs := strings.Split(base, ".")
	last := len(segs) - 1
	for i := range segs[:last] {
		segs[i] = SegmentName(segs[i])
	}
	segs[last] = TypeName(segs[last])
	return strings.Join(segs, ".") + ref[len(base):]
}

// splitUnion splits a type on top-level separators only.
func splitUnion(t string) []string {
	var parts []string
	depth, start := 0, 0
	for i := 0; i < len(t); i++ {
		switch t[i] {
		case '(', '{', '[', '<':
			depth++
		case ')', '}', ']':
			depth--
		case '>':
			if i == 0 || t[i-1] != '=' {
				depth--
			}
		case '|':
			if depth == 0 {
				parts = append(parts, t[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, t[start:])
}
