package javaparser

import (
	"context"

	"goto-endpoint/internal/utils"
)

// modifiers that may precede a type or member declaration
var modifierWords = map[string]bool{
	"public":       true,
	"protected":    true,
	"private":      true,
	"static":       true,
	"final":        true,
	"abstract":     true,
	"sealed":       true,
	"non-sealed":   true,
	"strictfp":     true,
	"default":      true,
	"synchronized": true,
	"native":       true,
	"transient":    true,
	"volatile":     true,
}

// PatternParser is the fast strategy: a single linear scan over
// comment-free text that recognizes declarations by their shape.
// It never fails on malformed input; it just finds less.
type PatternParser struct{}

// NewPatternParser creates the pattern-matching strategy
func NewPatternParser() *PatternParser {
	return &PatternParser{}
}

// Name identifies the strategy in logs
func (p *PatternParser) Name() string {
	return "pattern"
}

// Parse scans src and returns its type declarations
func (p *PatternParser) Parse(ctx context.Context, src []byte) (*CompilationUnit, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s := newSource(src)
	types, _ := s.scanMembers(0, len(src))
	return &CompilationUnit{Types: types}, nil
}

// scanMembers walks the declarations in [from, to): a file or a type body.
func (s *source) scanMembers(from, to int) ([]TypeDecl, []*MethodDecl) {
	var (
		types   []TypeDecl
		methods []*MethodDecl
		pending []*Annotation
		start   = -1 // offset of the first token of the current declaration
	)

	reset := func() {
		pending = nil
		start = -1
	}

	i := from
	for i < to {
		i = s.skipSpace(i)
		if i >= to {
			break
		}
		c := s.masked[i]

		if c == '@' {
			j := s.skipSpace(i + 1)
			if word, end := s.readIdent(j); word == "interface" {
				// annotation type declaration: nothing routable inside
				i = s.skipTypeBody(end, to)
				reset()
				continue
			}
			ann, end := s.parseAnnotation(i)
			if ann != nil {
				if start == -1 {
					start = i
				}
				pending = append(pending, ann)
			}
			i = end
			continue
		}

		if isIdentStart(c) {
			word, end := s.readIdent(i)
			if word == "non" && end < to && s.masked[end] == '-' {
				if w2, e2 := s.readIdent(end + 1); w2 == "sealed" {
					word, end = "non-sealed", e2
				}
			}
			if modifierWords[word] {
				if start == -1 {
					start = i
				}
				i = end
				continue
			}
			switch word {
			case "class", "interface", "enum", "record":
				if start == -1 {
					start = i
				}
				decl, next := s.scanTypeDecl(word, end, to, start, pending)
				if decl != nil {
					types = append(types, decl)
				}
				i = next
				reset()
				continue
			}
			if start == -1 {
				start = i
			}
			method, next := s.scanMember(i, to, start, pending)
			if method != nil {
				methods = append(methods, method)
			}
			i = next
			reset()
			continue
		}

		switch c {
		case '{':
			// initializer block or stray body
			i = findClosing(s.masked, i+1, '{', '}')
			reset()
		case '<':
			// generic method type parameters: <T> T pick(...)
			if start == -1 {
				start = i
			}
			i = findClosing(s.masked, i+1, '<', '>')
		default:
			// ';' and anything we do not understand
			i++
			reset()
		}
	}
	return types, methods
}

// scanTypeDecl reads "<kind> Name ... { body }" starting right after the kind keyword
func (s *source) scanTypeDecl(kind string, at, limit, declStart int, annotations []*Annotation) (TypeDecl, int) {
	nameAt := s.skipSpace(at)
	name, end := s.readIdent(nameAt)
	if name == "" {
		return nil, at
	}

	// header runs up to the body brace (type parameters, extends, record components)
	open := -1
	depth := 0
	for j := end; j < limit; j++ {
		switch s.masked[j] {
		case '(', '<':
			depth++
		case ')', '>':
			depth--
		case ';':
			if depth == 0 {
				return nil, j + 1
			}
		}
		if s.masked[j] == '{' && depth <= 0 {
			open = j
			break
		}
	}
	if open == -1 {
		return nil, limit
	}

	closeAt := findClosing(s.masked, open+1, '{', '}')
	bodyFrom, bodyTo := open+1, closeAt-1
	if bodyTo < bodyFrom {
		bodyTo = bodyFrom
	}
	if kind == "enum" {
		bodyFrom = s.skipEnumConstants(bodyFrom, bodyTo)
	}
	nested, methods := s.scanMembers(bodyFrom, bodyTo)

	span := s.lines.span(declStart, closeAt)

	if kind == "interface" {
		return &InterfaceDecl{Name: name, Annotations: annotations, Methods: methods, Nested: nested, Span: span}, closeAt
	}
	return &ClassDecl{Name: name, Annotations: annotations, Methods: methods, Nested: nested, Span: span}, closeAt
}

// skipTypeBody jumps over "Name { ... }" of an annotation type
func (s *source) skipTypeBody(at, limit int) int {
	for j := at; j < limit; j++ {
		if s.masked[j] == '{' {
			return findClosing(s.masked, j+1, '{', '}')
		}
	}
	return limit
}

// skipEnumConstants returns the offset after the constant list of an enum body
func (s *source) skipEnumConstants(from, to int) int {
	depth := 0
	for j := from; j < to; j++ {
		switch s.masked[j] {
		case '(', '{':
			depth++
		case ')', '}':
			depth--
		case ';':
			if depth == 0 {
				return j + 1
			}
		}
	}
	return to
}

// scanMember reads one field or method declaration starting at i.
// Methods are recognized by "name(" before any '=', ';' or '{'.
func (s *source) scanMember(i, limit, declStart int, annotations []*Annotation) (*MethodDecl, int) {
	lastIdentFrom, lastIdentTo := -1, -1
	for j := i; j < limit; j++ {
		c := s.masked[j]
		switch {
		case isIdentStart(c):
			_, end := s.readIdent(j)
			lastIdentFrom, lastIdentTo = j, end
			j = end - 1
		case c == '<':
			j = findClosing(s.masked, j+1, '<', '>') - 1
		case c == '(':
			closeAt := findClosing(s.masked, j+1, '(', ')')
			next := s.skipMethodRest(closeAt, limit)
			if lastIdentFrom == -1 {
				return nil, next
			}
			name := string(s.raw[lastIdentFrom:lastIdentTo])
			if utils.IsNoise(name) {
				return nil, next
			}
			return &MethodDecl{
				Name:        name,
				Annotations: annotations,
				Span:        s.lines.span(declStart, closeAt),
			}, next
		case c == '=' || c == ';':
			return nil, s.skipStatement(j, limit)
		case c == '{':
			return nil, findClosing(s.masked, j+1, '{', '}')
		case c == '}':
			return nil, j
		}
	}
	return nil, limit
}

// skipMethodRest moves past "throws ..." and the body or ';' of a method
func (s *source) skipMethodRest(at, limit int) int {
	for j := at; j < limit; j++ {
		switch s.masked[j] {
		case '{':
			return findClosing(s.masked, j+1, '{', '}')
		case ';':
			return j + 1
		case '}':
			return j
		}
	}
	return limit
}

// skipStatement moves past the ';' that ends a field declaration,
// stepping over initializer braces such as anonymous classes.
func (s *source) skipStatement(at, limit int) int {
	depth := 0
	for j := at; j < limit; j++ {
		switch s.masked[j] {
		case '(', '{', '[':
			depth++
		case ')', ']':
			depth--
		case '}':
			if depth == 0 {
				return j
			}
			depth--
		case ';':
			if depth <= 0 {
				return j + 1
			}
		}
	}
	return limit
}
