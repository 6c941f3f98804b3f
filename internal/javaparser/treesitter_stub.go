//go:build !cgo

package javaparser

import (
	"context"
	"errors"
)

// ErrStructuralUnavailable is returned when the binary was built without cgo
var ErrStructuralUnavailable = errors.New("tree-sitter parser requires cgo")

// TreeSitterParser is a stub used when cgo is not available.
type TreeSitterParser struct{}

// NewTreeSitterParser creates the stub
func NewTreeSitterParser() *TreeSitterParser {
	return &TreeSitterParser{}
}

// Name identifies the strategy in logs
func (p *TreeSitterParser) Name() string {
	return "tree-sitter"
}

// Available reports false: the structural fallback is disabled in this build
func (p *TreeSitterParser) Available() bool {
	return false
}

// Parse always fails without cgo
func (p *TreeSitterParser) Parse(ctx context.Context, src []byte) (*CompilationUnit, error) {
	return nil, ErrStructuralUnavailable
}
