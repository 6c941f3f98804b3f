package javaparser

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	// name = value at the start of an annotation element
	namedArgRegex = regexp.MustCompile(`^\s*([A-Za-z_$][\w$]*)\s*=`)

	// identifier or qualified reference (RequestMethod.GET)
	qualifiedNameRegex = regexp.MustCompile(`^[A-Za-z_$][\w$]*(?:\s*\.\s*[A-Za-z_$][\w$]*)*$`)
)

// source bundles the original text, its masked twin and the line table
type source struct {
	raw    []byte
	masked []byte
	lines  *lineIndex
}

func newSource(src []byte) *source {
	return &source{
		raw:    src,
		masked: maskSource(src),
		lines:  newLineIndex(src),
	}
}

func isIdentStart(b byte) bool {
	return b == '_' || b == '$' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b >= 0x80
}

func isIdentPart(b byte) bool {
	return isIdentStart(b) || (b >= '0' && b <= '9')
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\f'
}

func (s *source) skipSpace(i int) int {
	for i < len(s.masked) && isSpace(s.masked[i]) {
		i++
	}
	return i
}

// readIdent returns the identifier starting at i and the offset after it
func (s *source) readIdent(i int) (string, int) {
	if i >= len(s.masked) || !isIdentStart(s.masked[i]) {
		return "", i
	}
	j := i + 1
	for j < len(s.masked) && isIdentPart(s.masked[j]) {
		j++
	}
	return string(s.raw[i:j]), j
}

// readQualifiedName reads a dotted name such as org.springframework.GetMapping
func (s *source) readQualifiedName(i int) (string, int) {
	name, end := s.readIdent(i)
	if name == "" {
		return "", i
	}
	for {
		j := s.skipSpace(end)
		if j >= len(s.masked) || s.masked[j] != '.' {
			return name, end
		}
		next, after := s.readIdent(s.skipSpace(j + 1))
		if next == "" {
			return name, end
		}
		name += "." + next
		end = after
	}
}

// parseAnnotation reads the annotation whose '@' sits at offset at.
// It returns nil when no annotation name follows the '@'.
func (s *source) parseAnnotation(at int) (*Annotation, int) {
	name, end := s.readQualifiedName(s.skipSpace(at + 1))
	if name == "" {
		return nil, at + 1
	}

	ann := &Annotation{Name: name}
	j := s.skipSpace(end)
	if j < len(s.masked) && s.masked[j] == '(' {
		closeAt := findClosing(s.masked, j+1, '(', ')')
		argsEnd := closeAt - 1
		if closeAt == len(s.masked) && s.masked[len(s.masked)-1] != ')' {
			argsEnd = closeAt
		}
		ann.Args = s.parseArgs(j+1, argsEnd)
		end = closeAt
	}
	ann.Span = s.lines.span(at, end)
	return ann, end
}

// splitTopLevel splits [from, to) at commas outside of any bracket pair
func (s *source) splitTopLevel(from, to int) [][2]int {
	var parts [][2]int
	depth := 0
	start := from
	for i := from; i < to; i++ {
		switch s.masked[i] {
		case '(', '{', '[':
			depth++
		case ')', '}', ']':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, [2]int{start, i})
				start = i + 1
			}
		}
	}
	parts = append(parts, [2]int{start, to})
	return parts
}

// parseArgs parses the element list between an annotation's parentheses
func (s *source) parseArgs(from, to int) []Arg {
	if strings.TrimSpace(string(s.masked[from:to])) == "" {
		return nil
	}

	var args []Arg
	for _, part := range s.splitTopLevel(from, to) {
		text := s.masked[part[0]:part[1]]
		if strings.TrimSpace(string(text)) == "" {
			continue
		}
		if m := namedArgRegex.FindSubmatchIndex(text); m != nil {
			args = append(args, Arg{
				Name:  string(text[m[2]:m[3]]),
				Value: s.parseLiteral(part[0]+m[1], part[1]),
			})
			continue
		}
		args = append(args, Arg{Value: s.parseLiteral(part[0], part[1])})
	}
	return args
}

// parseLiteral classifies the element value in [from, to)
func (s *source) parseLiteral(from, to int) *Literal {
	for from < to && isSpace(s.masked[from]) {
		from++
	}
	for to > from && isSpace(s.masked[to-1]) {
		to--
	}

	lit := &Literal{Kind: OtherLit, Span: s.lines.span(from, to)}
	if from >= to {
		return lit
	}

	masked := string(s.masked[from:to])
	raw := string(s.raw[from:to])
	lit.Value = raw

	switch {
	case isSingleStringLiteral(masked):
		lit.Kind = StringLit
		lit.Value = unquote(raw)
	case masked[0] == '{' && masked[len(masked)-1] == '}':
		lit.Kind = ArrayLit
		if strings.TrimSpace(masked[1:len(masked)-1]) != "" {
			for _, part := range s.splitTopLevel(from+1, to-1) {
				lit.Elems = append(lit.Elems, s.parseLiteral(part[0], part[1]))
			}
		}
	case qualifiedNameRegex.MatchString(masked):
		lit.Kind = NameLit
		lit.Value = strings.Join(strings.Fields(raw), "")
	}
	return lit
}

// isSingleStringLiteral reports whether masked text is exactly one "..." literal.
// Text blocks and concatenations are left uninterpreted.
func isSingleStringLiteral(masked string) bool {
	if len(masked) < 2 || masked[0] != '"' || masked[len(masked)-1] != '"' {
		return false
	}
	if strings.HasPrefix(masked, `"""`) {
		return false
	}
	return !strings.Contains(masked[1:len(masked)-1], `"`)
}

func unquote(s string) string {
	if v, err := strconv.Unquote(s); err == nil {
		return v
	}
	// Java escapes Go does not know (\s, octal forms) keep their raw text
	return s[1 : len(s)-1]
}
