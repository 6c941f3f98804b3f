package utils

import "strings"

// javaKeywords are reserved words that can precede a "(" in Java source
// and therefore look like method names to a pattern matcher.
var javaKeywords = map[string]bool{
	"if":           true,
	"else":         true,
	"switch":       true,
	"case":         true,
	"for":          true,
	"while":        true,
	"do":           true,
	"return":       true,
	"new":          true,
	"throw":        true,
	"throws":       true,
	"try":          true,
	"catch":        true,
	"finally":      true,
	"synchronized": true,
	"super":        true,
	"this":         true,
	"assert":       true,
}

// IsNoise reports whether a candidate method name should be discarded.
// Empty names, Java keywords and control-flow words are noise.
func IsNoise(name string) bool {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return true
	}
	return javaKeywords[strings.ToLower(trimmed)]
}
