// Package resolver answers name lookups against loaded modules. A missing
// name is a normal outcome, reported as (nil, false).
package resolver

import (
	"strings"

	"lyn/internal/modules"
)

// FindExport returns the first public export of module called name. Private
// exports are invisible here, even to the module itself.
func FindExport(module *modules.Module, name string) (*modules.ExportedSymbol, bool) {
	if module == nil {
		return nil, false
	}
	for _, exp := range module.Exports {
		if exp.Name == name && exp.IsPublic {
			return exp, true
		}
	}
	return nil, false
}

// ResolveSymbol looks name up as code inside module sees it: its own
// exports first, private ones included, then the public exports of its
// unqualified imports in declaration order.
func ResolveSymbol(module *modules.Module, name string) (*modules.ExportedSymbol, bool) {
	if module == nil {
		return nil, false
	}
	for _, exp := range module.Exports {
		if exp.Name == name {
			return exp, true
		}
	}
	for _, imp := range module.Imports {
		if imp.IsQualified {
			continue
		}
		if exp, ok := FindExport(imp.Module, name); ok {
			return exp, true
		}
	}
	return nil, false
}

// ResolveQualifiedSymbol looks up qualifier.name. The first import whose
// name or alias is qualifier decides the answer; later imports sharing the
// qualifier are not tried, and imports of the imported module are not
// followed.
func ResolveQualifiedSymbol(module *modules.Module, qualifier, name string) (*modules.ExportedSymbol, bool) {
	if module == nil {
		return nil, false
	}
	for _, imp := range module.Imports {
		if imp.Name == qualifier || (imp.Alias != "" && imp.Alias == qualifier) {
			return FindExport(imp.Module, name)
		}
	}
	return nil, false
}

// Lookup resolves a reference written as "name" or "qualifier.name".
func Lookup(module *modules.Module, ref string) (*modules.ExportedSymbol, bool) {
	qualifier, name, qualified := strings.Cut(ref, ".")
	if !qualified {
		return ResolveSymbol(module, ref)
	}
	if qualifier == "" || name == "" {
		return nil, false
	}
	return ResolveQualifiedSymbol(module, qualifier, name)
}
