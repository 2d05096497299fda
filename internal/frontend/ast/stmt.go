package ast

import "lyn/internal/source"

// ImportStmt is `import [qualified] name [as alias];`.
type ImportStmt struct {
	Module    *IdentifierExpr
	Alias     string // empty when no `as` clause was written
	Qualified bool
	source.Location
}

func (i *ImportStmt) INode() {} // Impliments Node interface
func (i *ImportStmt) Stmt()  {} // Stmt is a marker interface for all statements
func (i *ImportStmt) Loc() *source.Location {
	return &i.Location
}

// Param is one function parameter.
type Param struct {
	Name *IdentifierExpr
	Type TypeNode
}

// FunctionDecl is `fn name(params) [: type] { ... }`.
type FunctionDecl struct {
	Name       *IdentifierExpr
	Params     []Param
	ReturnType TypeNode
	source.Location
}

func (f *FunctionDecl) INode() {} // Impliments Node interface
func (f *FunctionDecl) Stmt()  {} // Stmt is a marker interface for all statements
func (f *FunctionDecl) Loc() *source.Location {
	return &f.Location
}
func (f *FunctionDecl) DeclName() string {
	return f.Name.Name
}

// ClassDecl is `class Name { ... }`.
type ClassDecl struct {
	Name *IdentifierExpr
	source.Location
}

func (c *ClassDecl) INode() {} // Impliments Node interface
func (c *ClassDecl) Stmt()  {} // Stmt is a marker interface for all statements
func (c *ClassDecl) Loc() *source.Location {
	return &c.Location
}
func (c *ClassDecl) DeclName() string {
	return c.Name.Name
}

// TypeDecl is `type Name = underlying;`.
type TypeDecl struct {
	Name       *IdentifierExpr
	Underlying TypeNode
	source.Location
}

func (t *TypeDecl) INode() {} // Impliments Node interface
func (t *TypeDecl) Stmt()  {} // Stmt is a marker interface for all statements
func (t *TypeDecl) Loc() *source.Location {
	return &t.Location
}
func (t *TypeDecl) DeclName() string {
	return t.Name.Name
}

// VarDecl is `[pub] let name [: type] [= value];`.
type VarDecl struct {
	Name     *IdentifierExpr
	Type     TypeNode
	IsPublic bool
	source.Location
}

func (v *VarDecl) INode() {} // Impliments Node interface
func (v *VarDecl) Stmt()  {} // Stmt is a marker interface for all statements
func (v *VarDecl) Loc() *source.Location {
	return &v.Location
}
func (v *VarDecl) DeclName() string {
	return v.Name.Name
}

// ExpressionStmt is any other top-level statement. The module system does not
// look inside it, so only its span is kept.
type ExpressionStmt struct {
	source.Location
}

func (e *ExpressionStmt) INode() {} // Impliments Node interface
func (e *ExpressionStmt) Stmt()  {} // Stmt is a marker interface for all statements
func (e *ExpressionStmt) Loc() *source.Location {
	return &e.Location
}
