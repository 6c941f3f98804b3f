//go:build cgo

package javaparser

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/java"
)

// TreeSitterParser is the structural strategy backed by the tree-sitter Java grammar.
// A sitter.Parser is not safe for concurrent use, so each Parse gets its own.
type TreeSitterParser struct {
	lang *sitter.Language
}

// NewTreeSitterParser creates the structural strategy
func NewTreeSitterParser() *TreeSitterParser {
	return &TreeSitterParser{lang: java.GetLanguage()}
}

// Name identifies the strategy in logs
func (p *TreeSitterParser) Name() string {
	return "tree-sitter"
}

// Available reports whether the structural strategy can run in this build
func (p *TreeSitterParser) Available() bool {
	return true
}

// Parse builds the declaration model from a full syntax tree
func (p *TreeSitterParser) Parse(ctx context.Context, src []byte) (*CompilationUnit, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(p.lang)

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("tree-sitter parse: %w", err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil {
		return nil, fmt.Errorf("tree-sitter parse: empty tree")
	}

	b := &treeBuilder{src: src}
	return &CompilationUnit{Types: b.typeDecls(root, 0)}, nil
}

// declarations hidden under ERROR nodes are searched this deep
const maxErrorDepth = 4

type treeBuilder struct {
	src []byte
}

// typeDecls collects the type declarations directly under n
func (b *treeBuilder) typeDecls(n *sitter.Node, errDepth int) []TypeDecl {
	var out []TypeDecl
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		if child == nil {
			continue
		}
		switch child.Type() {
		case "class_declaration", "enum_declaration", "record_declaration", "interface_declaration":
			if decl := b.typeDecl(child); decl != nil {
				out = append(out, decl)
			}
		case "ERROR":
			if errDepth < maxErrorDepth {
				out = append(out, b.typeDecls(child, errDepth+1)...)
			}
		}
	}
	return out
}

func (b *treeBuilder) typeDecl(n *sitter.Node) TypeDecl {
	nameNode := n.ChildByFieldName("name")
	if nameNode == nil {
		return nil
	}
	name := nameNode.Content(b.src)
	annotations := b.modifierAnnotations(n)
	span := nodeSpan(n)

	var methods []*MethodDecl
	var nested []TypeDecl
	if body := n.ChildByFieldName("body"); body != nil {
		methods, nested = b.members(body)
	}

	if n.Type() == "interface_declaration" {
		return &InterfaceDecl{Name: name, Annotations: annotations, Methods: methods, Nested: nested, Span: span}
	}
	return &ClassDecl{Name: name, Annotations: annotations, Methods: methods, Nested: nested, Span: span}
}

// members reads a class_body, interface_body or enum_body
func (b *treeBuilder) members(body *sitter.Node) ([]*MethodDecl, []TypeDecl) {
	var methods []*MethodDecl
	var nested []TypeDecl
	for i := 0; i < int(body.NamedChildCount()); i++ {
		child := body.NamedChild(i)
		if child == nil {
			continue
		}
		switch child.Type() {
		case "method_declaration", "constructor_declaration":
			if m := b.method(child); m != nil {
				methods = append(methods, m)
			}
		case "class_declaration", "enum_declaration", "record_declaration", "interface_declaration":
			if decl := b.typeDecl(child); decl != nil {
				nested = append(nested, decl)
			}
		case "enum_body_declarations":
			m, n := b.members(child)
			methods = append(methods, m...)
			nested = append(nested, n...)
		}
	}
	return methods, nested
}

func (b *treeBuilder) method(n *sitter.Node) *MethodDecl {
	nameNode := n.ChildByFieldName("name")
	if nameNode == nil {
		return nil
	}
	span := nodeSpan(n)
	// header only: stop at the parameter list
	if params := n.ChildByFieldName("parameters"); params != nil {
		end := params.EndPoint()
		span.EndLine = int(end.Row) + 1
		span.EndColumn = int(end.Column) + 1
	}
	return &MethodDecl{
		Name:        nameNode.Content(b.src),
		Annotations: b.modifierAnnotations(n),
		Span:        span,
	}
}

// modifierAnnotations returns the annotations in a declaration's modifiers node
func (b *treeBuilder) modifierAnnotations(decl *sitter.Node) []*Annotation {
	var mods *sitter.Node
	for i := 0; i < int(decl.NamedChildCount()); i++ {
		if child := decl.NamedChild(i); child != nil && child.Type() == "modifiers" {
			mods = child
			break
		}
	}
	if mods == nil {
		return nil
	}

	var out []*Annotation
	for i := 0; i < int(mods.NamedChildCount()); i++ {
		child := mods.NamedChild(i)
		if child == nil {
			continue
		}
		switch child.Type() {
		case "marker_annotation", "annotation":
			// an annotation without a readable name contributes nothing
			if ann := b.annotation(child); ann != nil {
				out = append(out, ann)
			}
		}
	}
	return out
}

func (b *treeBuilder) annotation(n *sitter.Node) *Annotation {
	nameNode := n.ChildByFieldName("name")
	if nameNode == nil {
		nameNode = findNamed(n, 2, "identifier", "scoped_identifier")
	}
	if nameNode == nil {
		return nil
	}

	ann := &Annotation{
		Name: strings.Join(strings.Fields(nameNode.Content(b.src)), ""),
		Span: nodeSpan(n),
	}

	args := n.ChildByFieldName("arguments")
	if args == nil {
		return ann
	}
	for i := 0; i < int(args.NamedChildCount()); i++ {
		child := args.NamedChild(i)
		if child == nil {
			continue
		}
		if child.Type() == "element_value_pair" {
			key := child.ChildByFieldName("key")
			value := child.ChildByFieldName("value")
			if key == nil || value == nil {
				continue
			}
			ann.Args = append(ann.Args, Arg{Name: key.Content(b.src), Value: b.literal(value)})
			continue
		}
		ann.Args = append(ann.Args, Arg{Value: b.literal(child)})
	}
	return ann
}

func (b *treeBuilder) literal(n *sitter.Node) *Literal {
	lit := &Literal{Kind: OtherLit, Value: n.Content(b.src), Span: nodeSpan(n)}
	switch n.Type() {
	case "string_literal":
		raw := lit.Value
		if strings.HasPrefix(raw, `"""`) || len(raw) < 2 {
			return lit
		}
		lit.Kind = StringLit
		lit.Value = unquote(raw)
	case "identifier", "field_access", "scoped_identifier":
		lit.Kind = NameLit
		lit.Value = strings.Join(strings.Fields(lit.Value), "")
	case "element_value_array_initializer":
		lit.Kind = ArrayLit
		for i := 0; i < int(n.NamedChildCount()); i++ {
			if child := n.NamedChild(i); child != nil {
				lit.Elems = append(lit.Elems, b.literal(child))
			}
		}
	}
	return lit
}

// findNamed searches below n, at most maxDepth levels deep, for the first
// named node of one of the given types.
func findNamed(n *sitter.Node, maxDepth int, types ...string) *sitter.Node {
	if n == nil || maxDepth <= 0 {
		return nil
	}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		if child == nil {
			continue
		}
		for _, t := range types {
			if child.Type() == t {
				return child
			}
		}
	}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		if found := findNamed(n.NamedChild(i), maxDepth-1, types...); found != nil {
			return found
		}
	}
	return nil
}

func nodeSpan(n *sitter.Node) Span {
	start, end := n.StartPoint(), n.EndPoint()
	return Span{
		StartLine:   int(start.Row) + 1,
		StartColumn: int(start.Column) + 1,
		EndLine:     int(end.Row) + 1,
		EndColumn:   int(end.Column) + 1,
	}
}
