package modules

import (
	"slices"

	"lyn/internal/frontend/ast"
)

// ExportedSymbol is a top-level declaration of a module. Node borrows from
// the owning module's AST and must not be kept after the module is released.
type ExportedSymbol struct {
	Name     string
	Node     ast.Node
	Type     ast.TypeNode // declared type, nil when none was written
	IsPublic bool
}

// ImportedModule is one import directive of a module. Module is a reference
// into the registry, not an owned value.
type ImportedModule struct {
	Name        string
	Alias       string // empty when the import has no alias
	IsQualified bool
	Module      *Module
}

// AddExport registers a declaration. A second export with the same name
// replaces the first in place: last declaration wins, the slot is kept.
func (m *Module) AddExport(name string, node ast.Node, typ ast.TypeNode, isPublic bool) *ExportedSymbol {
	for _, exp := range m.Exports {
		if exp.Name == name {
			exp.Node = node
			exp.Type = typ
			exp.IsPublic = isPublic
			return exp
		}
	}
	exp := &ExportedSymbol{Name: name, Node: node, Type: typ, IsPublic: isPublic}
	m.Exports = append(m.Exports, exp)
	return exp
}

// HasImport reports whether an identical import record already exists:
// same target module, same alias, same qualification.
func (m *Module) HasImport(target *Module, alias string, isQualified bool) bool {
	return slices.ContainsFunc(m.Imports, func(imp *ImportedModule) bool {
		return imp.Module == target && imp.Alias == alias && imp.IsQualified == isQualified
	})
}

// AddImport appends an import record. It returns false, without changing
// anything, when the record is a duplicate.
func (m *Module) AddImport(target *Module, alias string, isQualified bool) bool {
	if target == nil || m.HasImport(target, alias, isQualified) {
		return false
	}
	m.Imports = append(m.Imports, &ImportedModule{
		Name:        target.Name,
		Alias:       alias,
		IsQualified: isQualified,
		Module:      target,
	})
	return true
}

// AddDependency records a dependency name once, keeping first-insertion order.
func (m *Module) AddDependency(name string) bool {
	if slices.Contains(m.Dependencies, name) {
		return false
	}
	m.Dependencies = append(m.Dependencies, name)
	return true
}

// DependsOn reports whether name was recorded as a dependency.
func (m *Module) DependsOn(name string) bool {
	return slices.Contains(m.Dependencies, name)
}
