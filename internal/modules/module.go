package modules

import (
	"lyn/internal/frontend/ast"
)

// ModuleState is where a module is in its load lifecycle. It is derived from
// the IsLoading/IsLoaded flags and never moves from Loaded back to Loading.
type ModuleState int

const (
	STATE_NOT_STARTED ModuleState = iota // registered, load not begun
	STATE_LOADING                        // file read / parse / imports in progress
	STATE_LOADED                         // ready for lookups
	STATE_FAILED                         // terminal failure, never retried
)

func (s ModuleState) String() string {
	switch s {
	case STATE_NOT_STARTED:
		return "Not Started"
	case STATE_LOADING:
		return "Loading"
	case STATE_LOADED:
		return "Loaded"
	case STATE_FAILED:
		return "Failed"
	default:
		return "Unknown"
	}
}

// Module is one compilation unit loaded from a .lyn file. The registry that
// created it is its only owner; Imports point at other registry-owned modules
// without owning them.
type Module struct {
	Name string
	Path string
	Size int64 // bytes read from Path

	// AST is set once parsing succeeds. Export nodes point into it.
	AST *ast.Program

	Exports      []*ExportedSymbol
	Imports      []*ImportedModule
	Dependencies []string

	IsLoaded  bool
	IsLoading bool

	// Err is the terminal failure; nil unless the load failed.
	Err error
}

func New(name, path string) *Module {
	return &Module{Name: name, Path: path}
}

func (m *Module) State() ModuleState {
	switch {
	case m.IsLoaded:
		return STATE_LOADED
	case m.IsLoading:
		return STATE_LOADING
	case m.Err != nil:
		return STATE_FAILED
	default:
		return STATE_NOT_STARTED
	}
}

// BeginLoading marks the module as in progress.
func (m *Module) BeginLoading() {
	m.IsLoading = true
	m.IsLoaded = false
	m.Err = nil
}

// MarkLoaded is the successful end of a load.
func (m *Module) MarkLoaded() {
	m.IsLoaded = true
	m.IsLoading = false
}

// MarkFailed leaves the module registered but permanently unusable.
func (m *Module) MarkFailed(err error) {
	m.IsLoaded = false
	m.IsLoading = false
	m.Err = err
}

// Release drops every table and the AST. Called only by the registry.
func (m *Module) Release() {
	for _, exp := range m.Exports {
		exp.Node = nil
		exp.Type = nil
	}
	for _, imp := range m.Imports {
		imp.Module = nil
	}
	m.Exports = nil
	m.Imports = nil
	m.Dependencies = nil
	m.AST = nil
}
