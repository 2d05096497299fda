package cmd

import (
	"errors"
	"io"

	"lyn/internal/config"
	"lyn/internal/ctx"
	"lyn/internal/logging"
	"lyn/internal/modules"
	"lyn/internal/registry"
	"lyn/internal/utils/fs"
)

// NewContext builds a compiler context for a project: its search paths and
// module limit on a fresh registry, logging to logOut at its debug level.
func NewContext(conf *config.ProjectConfig, logOut io.Writer) *ctx.CompilerContext {
	reg := registry.New(
		registry.WithMaxModules(conf.MaxModules),
		registry.WithSearchPaths(conf.ResolvedSearchPaths()...),
	)
	return ctx.NewCompilerContext(
		ctx.WithRegistry(reg),
		ctx.WithLogger(logging.New(logOut, conf.Debug)),
	)
}

// LoadModules loads every named module. A failure does not stop the others;
// the loaded modules come back in argument order with all failures joined.
func LoadModules(c *ctx.CompilerContext, names []string) ([]*modules.Module, error) {
	loaded := make([]*modules.Module, 0, len(names))
	var errs []error
	for _, name := range names {
		module, err := c.Load(name)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		loaded = append(loaded, module)
	}
	return loaded, errors.Join(errs...)
}

// DiscoverModules lists the modules present in the context's search paths.
func DiscoverModules(c *ctx.CompilerContext) ([]string, error) {
	return fs.ListModules(c.Registry.SearchPaths(), ctx.EXT)
}
