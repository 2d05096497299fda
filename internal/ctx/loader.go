package ctx

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"lyn/internal/frontend/ast"
	"lyn/internal/frontend/parser"
	"lyn/internal/modules"
	"lyn/internal/report"
	"lyn/internal/source"
	"lyn/internal/utils/fs"
)

// Load returns the module called name, reading and parsing its file the
// first time it is asked for. Each name is loaded at most once per registry:
// later calls return the cached module, or the stored error when the first
// load failed.
func (c *CompilerContext) Load(name string) (*modules.Module, error) {
	if name == "" {
		err := modules.NewError(modules.ErrInvalidArgument, "", "", errors.New("module name is empty"))
		c.reportFailure(name, "", err, report.LOADING_PHASE)
		return nil, err
	}

	module, cached := c.Registry.Get(name)
	if cached {
		switch module.State() {
		case modules.STATE_LOADED:
			c.Metrics.CacheHits.Inc()
			c.Logger.Debug("cache hit", "module", name)
			return module, nil
		case modules.STATE_LOADING:
			from := c.loading.Peek()
			if from == "" {
				from = name
			}
			err := modules.NewError(modules.ErrCircularDependency, name, module.Path,
				fmt.Errorf("import cycle: %s", c.cyclePath(from, name)))
			c.reportFailure(name, module.Path, err, report.IMPORTING_PHASE)
			return nil, err
		case modules.STATE_FAILED:
			c.Metrics.CacheHits.Inc()
			c.Logger.Debug("cache hit on failed module", "module", name, "err", module.Err)
			return nil, module.Err
		}
		// registered by hand and never loaded: load it in place
	}

	searchPaths := c.Registry.SearchPaths()
	path, found := fs.Probe(searchPaths, name, EXT)
	if !found {
		err := modules.NewError(modules.ErrModuleNotFound, name, "",
			fmt.Errorf("no %s%s in search paths [%s]", name, EXT, strings.Join(searchPaths, ", ")))
		c.reportFailure(name, "", err, report.LOADING_PHASE).
			AddHint(fmt.Sprintf("add the directory containing %s%s with -I", name, EXT))
		return nil, err
	}
	c.Logger.Debug("resolved module file", "module", name, "path", path)

	if cached {
		module.Path = path
		module.BeginLoading()
	} else {
		module = modules.New(name, path)
		module.BeginLoading()
		if err := c.Registry.Register(module); err != nil {
			c.reportFailure(name, path, err, report.LOADING_PHASE)
			return nil, err
		}
	}
	c.Metrics.Loads.Inc()

	c.startLoading(name)
	err := c.loadModule(module)
	c.finishLoading(name)

	if err != nil {
		module.MarkFailed(err)
		c.reportFailure(name, path, err, phaseOf(err))
		return nil, err
	}

	module.MarkLoaded()
	c.Logger.Info("module loaded", "module", name, "path", path,
		"exports", len(module.Exports), "imports", len(module.Imports))
	return module, nil
}

// loadModule reads, parses and scans one module that is already registered
// and marked as loading.
func (c *CompilerContext) loadModule(module *modules.Module) error {
	src, err := os.ReadFile(module.Path)
	if err != nil {
		return modules.NewError(modules.ErrIO, module.Name, module.Path, err)
	}
	if len(src) == 0 {
		return modules.NewError(modules.ErrIO, module.Name, module.Path, errors.New("file is empty"))
	}
	module.Size = int64(len(src))

	c.Metrics.Parses.Inc()
	program, err := c.Parser.Parse(module.Path, src)
	if err != nil {
		return modules.NewError(modules.ErrSyntax, module.Name, module.Path, err)
	}
	if program == nil {
		return modules.NewError(modules.ErrSyntax, module.Name, module.Path, errors.New("parser returned no program"))
	}
	module.AST = program

	return c.scanDeclarations(module, program)
}

// scanDeclarations walks the top-level nodes in source order, filling the
// export table and resolving imports as they appear.
func (c *CompilerContext) scanDeclarations(module *modules.Module, program *ast.Program) error {
	for _, node := range program.Nodes {
		switch n := node.(type) {
		case *ast.FunctionDecl:
			module.AddExport(n.DeclName(), n, n.ReturnType, true)
		case *ast.ClassDecl:
			module.AddExport(n.DeclName(), n, nil, true)
		case *ast.TypeDecl:
			module.AddExport(n.DeclName(), n, n.Underlying, true)
		case *ast.VarDecl:
			module.AddExport(n.DeclName(), n, n.Type, n.IsPublic)
		case *ast.ImportStmt:
			if err := c.Import(module, n.Module.Name, n.Alias, n.Qualified); err != nil {
				if modules.KindOf(err) == modules.ErrImportFailed {
					return err
				}
				return modules.NewError(modules.ErrImportFailed, module.Name, module.Path, err)
			}
		}
	}
	return nil
}

func phaseOf(err error) report.COMPILATION_PHASE {
	switch modules.KindOf(err) {
	case modules.ErrSyntax:
		return report.PARSING_PHASE
	case modules.ErrImportFailed, modules.ErrCircularDependency:
		return report.IMPORTING_PHASE
	default:
		return report.LOADING_PHASE
	}
}

// reportFailure records err in the diagnostics list, logs it and counts it.
func (c *CompilerContext) reportFailure(name, path string, err error, phase report.COMPILATION_PHASE) *report.Report {
	kind := modules.KindOf(err)
	kindName := modules.KindName(err)
	msg := err.Error()

	var rep *report.Report
	switch kind {
	case modules.ErrSyntax:
		var location *source.Location
		var syntaxErr *parser.SyntaxError
		if errors.As(err, &syntaxErr) {
			pos := syntaxErr.Pos
			location = source.NewLocation(&pos, &pos)
			msg = syntaxErr.Message
		}
		rep = c.Reports.AddSyntaxError(name, path, location, msg, phase)
	case modules.ErrCircularDependency, modules.ErrCapacityExceeded:
		rep = c.Reports.AddCriticalError(name, path, nil, msg, phase)
	default:
		rep = c.Reports.AddError(name, path, nil, msg, phase)
	}
	rep.WithKind(kindName)

	c.Metrics.Failures.WithLabelValues(kindName).Inc()
	if kind == modules.ErrImportFailed {
		c.Logger.Warn("module not loaded", "module", name, "kind", kindName, "err", err)
	} else {
		c.Logger.Error("module failed", "module", name, "kind", kindName, "err", err)
	}
	return rep
}
