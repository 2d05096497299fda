// Package ast holds the top-level declaration nodes the module system needs
// from a parsed .lyn file.
package ast

import (
	"lyn/internal/source"
)

type Node interface {
	INode()
	Loc() *source.Location
}

// Statement represents any node that doesn't produce a value
type Statement interface {
	Node
	Stmt()
}

// Declaration is a named top-level statement.
type Declaration interface {
	Statement
	DeclName() string
}

// TypeNode is a written type annotation, e.g. `int` or `list[str]`.
type TypeNode interface {
	Node
	TypeName() string
}

// IdentifierExpr is a bare name in source.
type IdentifierExpr struct {
	Name string
	source.Location
}

func (i *IdentifierExpr) INode() {} // Impliments Node interface
func (i *IdentifierExpr) Loc() *source.Location {
	return &i.Location
}

// TypeName is the only TypeNode the front end produces: the annotation text
// with whitespace removed.
type TypeName struct {
	Name string
	source.Location
}

func (t *TypeName) INode() {} // Impliments Node interface
func (t *TypeName) Loc() *source.Location {
	return &t.Location
}
func (t *TypeName) TypeName() string {
	return t.Name
}

// Program is the root of one parsed file.
type Program struct {
	Nodes      []Node
	FullPath   string
	Modulename string
	source.Location
}

func (p *Program) INode() {} // Impliments Node interface
func (p *Program) Loc() *source.Location {
	return &p.Location
}
