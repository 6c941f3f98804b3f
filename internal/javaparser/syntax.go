package javaparser

import (
	"context"
	"strings"
)

// Parser turns Java source into the typed declaration model.
// Both the pattern strategy and the tree-sitter strategy implement it.
type Parser interface {
	Name() string
	Parse(ctx context.Context, src []byte) (*CompilationUnit, error)
}

// Span is a 1-based source range
type Span struct {
	StartLine   int
	StartColumn int
	EndLine     int
	EndColumn   int
}

// IsZero reports whether the span carries no location
func (s Span) IsZero() bool {
	return s.StartLine == 0
}

// Node is the closed set of syntax elements the extractor understands:
// *ClassDecl, *InterfaceDecl, *MethodDecl, *Annotation and *Literal.
type Node interface {
	Pos() Span
	Children() []Node
	node()
}

// TypeDecl is a class-like or interface-like declaration
type TypeDecl interface {
	Node
	DeclName() string
	DeclAnnotations() []*Annotation
	DeclMethods() []*MethodDecl
	DeclNested() []TypeDecl
}

// CompilationUnit holds the top-level type declarations of one file
type CompilationUnit struct {
	Types []TypeDecl
}

// ClassDecl covers classes, enums and records
type ClassDecl struct {
	Name        string
	Annotations []*Annotation
	Methods     []*MethodDecl
	Nested      []TypeDecl
	Span        Span
}

// InterfaceDecl is an interface declaration (Feign clients live here)
type InterfaceDecl struct {
	Name        string
	Annotations []*Annotation
	Methods     []*MethodDecl
	Nested      []TypeDecl
	Span        Span
}

// MethodDecl is a method header with its annotations.
// Span covers the header (modifiers through the parameter list).
type MethodDecl struct {
	Name        string
	Annotations []*Annotation
	Span        Span
}

// Annotation is one "@Name(args)" occurrence
type Annotation struct {
	Name string // as written, possibly qualified
	Args []Arg
	Span Span
}

// Arg is a single annotation element. Name is empty for the
// unnamed form @Mapping("/x").
type Arg struct {
	Name  string
	Value *Literal
}

// LiteralKind classifies an annotation element value
type LiteralKind int

const (
	OtherLit  LiteralKind = iota // anything we do not interpret
	StringLit                    // "..." (Value holds the decoded text)
	NameLit                      // identifier or qualified reference, e.g. RequestMethod.GET
	ArrayLit                     // {a, b, ...}
)

// Literal is an annotation element value
type Literal struct {
	Kind  LiteralKind
	Value string
	Elems []*Literal
	Span  Span
}

func (d *ClassDecl) Pos() Span { return d.Span }
func (d *ClassDecl) DeclName() string { return d.Name }
func (d *ClassDecl) DeclAnnotations() []*Annotation { return d.Annotations }
func (d *ClassDecl) DeclMethods() []*MethodDecl { return d.Methods }
func (d *ClassDecl) DeclNested() []TypeDecl { return d.Nested }
func (d *ClassDecl) Children() []Node { return declChildren(d) }
func (*ClassDecl) node() {}
func (d *InterfaceDecl) Pos() Span { return d.Span }
func (d *InterfaceDecl) DeclName() string { return d.Name }
func (d *InterfaceDecl) DeclAnnotations() []*Annotation { return d.Annotations }
func (d *InterfaceDecl) DeclMethods() []*MethodDecl { return d.Methods }
func (d *InterfaceDecl) DeclNested() []TypeDecl { return d.Nested }
func (d *InterfaceDecl) Children() []Node { return declChildren(d) }
func (*InterfaceDecl) node() {}

func (m *MethodDecl) Pos() Span { return m.Span }
func (m *MethodDecl) Children() []Node {
	out := make([]Node, 0, len(m.Annotations))
	for _, a := range m.Annotations {
		out = append(out, a)
	}
	return out
}
func (*MethodDecl) node() {}

func (a *Annotation) Pos() Span { return a.Span }
func (a *Annotation) Children() []Node {
	out := make([]Node, 0, len(a.Args))
	for _, arg := range a.Args {
		if arg.Value != nil {
			out = append(out, arg.Value)
		}
	}
	return out
}
func (*Annotation) node() {}

func (l *Literal) Pos() Span { return l.Span }
func (l *Literal) Children() []Node {
	out := make([]Node, 0, len(l.Elems))
	for _, e := range l.Elems {
		out = append(out, e)
	}
	return out
}
func (*Literal) node() {}

func declChildren(d TypeDecl) []Node {
	var out []Node
	for _, a := range d.DeclAnnotations() {
		out = append(out, a)
	}
	for _, m := range d.DeclMethods() {
		out = append(out, m)
	}
	for _, n := range d.DeclNested() {
		out = append(out, n)
	}
	return out
}

// SimpleName returns the last dotted segment of an annotation name,
// so @org.springframework.web.bind.annotation.GetMapping reads as GetMapping.
func (a *Annotation) SimpleName() string {
	name := strings.TrimSpace(a.Name)
	if idx := strings.LastIndex(name, "."); idx != -1 {
		return name[idx+1:]
	}
	return name
}

// Arg returns the first argument with the given name (case-sensitive, as in Java)
func (a *Annotation) Arg(name string) (*Literal, bool) {
	for _, arg := range a.Args {
		if arg.Name == name && arg.Value != nil {
			return arg.Value, true
		}
	}
	return nil, false
}

// DefaultSearchDepth bounds Find when callers have no better limit.
// Annotation values nest at most a few levels ({A.B, {C}}).
const DefaultSearchDepth = 8

// Find walks the subtree rooted at n breadth-first, visiting at most maxDepth
// levels below n, and returns the first node accepted by match.
func Find(n Node, maxDepth int, match func(Node) bool) (Node, bool) {
	if n == nil {
		return nil, false
	}
	level := []Node{n}
	for depth := 0; depth <= maxDepth && len(level) > 0; depth++ {
		var next []Node
		for _, cur := range level {
			if match(cur) {
				return cur, true
			}
			next = append(next, cur.Children()...)
		}
		level = next
	}
	return nil, false
}
