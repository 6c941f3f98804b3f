package javaparser

import "sort"

// maskSource blanks out comments and the interiors of string and char
// literals while keeping every byte offset (and newline) in place.
// Structure is scanned on the masked copy, values are read from the original.
//
//	@GetMapping("/a{b}") // see {x}
//	@GetMapping("______")
func maskSource(src []byte) []byte {
	out := make([]byte, len(src))
	copy(out, src)

	inString := false
	inTextBlock := false
	inChar := false
	inLineComment := false
	inBlockComment := false
	escaped := false

	blank := func(i int) {
		if out[i] != '\n' && out[i] != '\r' {
			out[i] = ' '
		}
	}

	for i := 0; i < len(src); i++ {
		char := src[i]

		if inLineComment {
			if char == '\n' {
				inLineComment = false
				continue
			}
			blank(i)
			continue
		}

		if inBlockComment {
			if char == '*' && i+1 < len(src) && src[i+1] == '/' {
				inBlockComment = false
				blank(i)
				blank(i + 1)
				i++
				continue
			}
			blank(i)
			continue
		}

		if inTextBlock {
			if char == '"' && i+2 < len(src) && src[i+1] == '"' && src[i+2] == '"' && !escaped {
				inTextBlock = false
				i += 2
				continue
			}
			escaped = char == '\\' && !escaped
			if char != '\n' && char != '\r' {
				out[i] = '_'
			}
			continue
		}

		if inString || inChar {
			quote := byte('"')
			if inChar {
				quote = '\''
			}
			if escaped {
				escaped = false
				out[i] = '_'
				continue
			}
			if char == '\\' {
				escaped = true
				out[i] = '_'
				continue
			}
			if char == quote || char == '\n' {
				inString = false
				inChar = false
				continue
			}
			out[i] = '_'
			continue
		}

		// Check for comments start
		if char == '/' && i+1 < len(src) {
			if src[i+1] == '/' {
				inLineComment = true
				blank(i)
				blank(i + 1)
				i++
				continue
			}
			if src[i+1] == '*' {
				inBlockComment = true
				blank(i)
				blank(i + 1)
				i++
				continue
			}
		}

		if char == '"' {
			if i+2 < len(src) && src[i+1] == '"' && src[i+2] == '"' {
				inTextBlock = true
				escaped = false
				i += 2
				continue
			}
			inString = true
			escaped = false
			continue
		}

		if char == '\'' {
			inChar = true
			escaped = false
			continue
		}
	}
	return out
}

// findClosing returns the offset just past the bracket that closes the one
// opened right before start. content must already be masked, so brackets
// inside strings and comments are gone. Unbalanced input yields len(content).
func findClosing(content []byte, start int, open, close byte) int {
	depth := 1
	for i := start; i < len(content); i++ {
		switch content[i] {
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return i + 1
			}
		}
	}
	return len(content)
}

// lineIndex maps byte offsets to 1-based line/column positions
type lineIndex struct {
	starts []int
}

func newLineIndex(src []byte) *lineIndex {
	starts := []int{0}
	for i, b := range src {
		if b == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &lineIndex{starts: starts}
}

// position returns the 1-based line and column of offset
func (li *lineIndex) position(offset int) (int, int) {
	line := sort.Search(len(li.starts), func(i int) bool { return li.starts[i] > offset }) - 1
	if line < 0 {
		line = 0
	}
	return line + 1, offset - li.starts[line] + 1
}

// span converts the half-open byte range [from, to) into a Span
func (li *lineIndex) span(from, to int) Span {
	if to < from {
		to = from
	}
	sl, sc := li.position(from)
	el, ec := li.position(to)
	return Span{StartLine: sl, StartColumn: sc, EndLine: el, EndColumn: ec}
}
