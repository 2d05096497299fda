// Package registry is the module cache of one compilation: it owns every
// Module created during loading and the ordered list of directories probed
// for module files.
package registry

import (
	"fmt"
	"slices"
	"sort"
	"sync"

	"lyn/internal/modules"
)

// DEFAULT_SEARCH_PATH is installed by Init when no search paths are given.
const DEFAULT_SEARCH_PATH = "."

type Registry struct {
	mu          sync.RWMutex
	modules     map[string]*modules.Module
	order       []string // registration order
	searchPaths []string
	maxModules  int // 0 means unbounded
}

type Option func(*Registry)

// WithMaxModules bounds the number of modules the registry accepts.
func WithMaxModules(n int) Option {
	return func(r *Registry) {
		r.maxModules = n
	}
}

// WithSearchPaths replaces the default search path.
func WithSearchPaths(paths ...string) Option {
	return func(r *Registry) {
		r.setSearchPathsLocked(paths)
	}
}

// New creates an initialised registry.
func New(opts ...Option) *Registry {
	r := &Registry{}
	r.Init()
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Init clears the cache and installs the default search path. The capacity
// limit is kept.
func (r *Registry) Init() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.modules = make(map[string]*modules.Module)
	r.order = nil
	r.searchPaths = []string{DEFAULT_SEARCH_PATH}
}

// SetSearchPaths replaces the probe order. An empty list restores the
// default.
func (r *Registry) SetSearchPaths(paths []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.setSearchPathsLocked(paths)
}

func (r *Registry) setSearchPathsLocked(paths []string) {
	r.searchPaths = nil
	if len(paths) == 0 {
		r.searchPaths = []string{DEFAULT_SEARCH_PATH}
		return
	}
	r.searchPaths = slices.Clone(paths)
}

// SearchPaths returns a copy of the probe order.
func (r *Registry) SearchPaths() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.searchPaths)
}

func (r *Registry) MaxModules() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.maxModules
}

// Get returns the cached module of that name. It never triggers a load.
func (r *Registry) Get(name string) (*modules.Module, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	module, ok := r.modules[name]
	return module, ok
}

// Register inserts a module into the cache.
func (r *Registry) Register(module *modules.Module) error {
	if module == nil || module.Name == "" {
		return modules.NewError(modules.ErrInvalidArgument, "", "", fmt.Errorf("cannot register an unnamed module"))
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.modules[module.Name]; exists {
		return modules.NewError(modules.ErrInvalidArgument, module.Name, module.Path, fmt.Errorf("module already registered"))
	}
	if r.maxModules > 0 && len(r.modules) >= r.maxModules {
		return modules.NewError(modules.ErrCapacityExceeded, module.Name, module.Path,
			fmt.Errorf("registry holds %d modules (limit %d)", len(r.modules), r.maxModules))
	}

	r.modules[module.Name] = module
	r.order = append(r.order, module.Name)
	return nil
}

// Len is the number of registered modules, failed ones included.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.modules)
}

// CountLoaded is the number of modules that finished loading successfully.
func (r *Registry) CountLoaded() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	count := 0
	for _, module := range r.modules {
		if module.IsLoaded {
			count++
		}
	}
	return count
}

// Modules returns the registered modules in registration order.
func (r *Registry) Modules() []*modules.Module {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*modules.Module, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.modules[name])
	}
	return out
}

// Names returns the registered module names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.modules))
	for name := range r.modules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Teardown releases every module (exports, imports, dependency names and
// AST) and then the search paths. Calling it again is a no-op.
func (r *Registry) Teardown() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, name := range r.order {
		if module, ok := r.modules[name]; ok {
			module.Release()
		}
	}
	r.modules = make(map[string]*modules.Module)
	r.order = nil
	r.searchPaths = nil
}
