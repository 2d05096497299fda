package ctx

import (
	"errors"
	"fmt"

	"lyn/internal/modules"
	"lyn/internal/report"
)

// Import loads moduleName and records it as an import of target. An import
// of a module whose load is still in progress on this context (target itself
// included) is a cycle. A failed load leaves target's tables as they were.
// Importing the same module again with the same alias and qualification is
// a no-op.
func (c *CompilerContext) Import(target *modules.Module, moduleName, alias string, qualified bool) error {
	if target == nil {
		err := modules.NewError(modules.ErrInvalidArgument, moduleName, "", errors.New("import into a nil module"))
		c.reportFailure(moduleName, "", err, report.IMPORTING_PHASE)
		return err
	}
	if moduleName == "" {
		err := modules.NewError(modules.ErrInvalidArgument, target.Name, target.Path, errors.New("import without a module name"))
		c.reportFailure(target.Name, target.Path, err, report.IMPORTING_PHASE)
		return err
	}

	if moduleName == target.Name || c.IsLoading(moduleName) {
		err := modules.NewError(modules.ErrCircularDependency, target.Name, target.Path,
			fmt.Errorf("import cycle: %s", c.cyclePath(target.Name, moduleName)))
		c.reportFailure(target.Name, target.Path, err, report.IMPORTING_PHASE).
			AddHint(fmt.Sprintf("move what %s and %s share into a module neither of them imports", target.Name, moduleName))
		return err
	}

	imported, err := c.Load(moduleName)
	if err != nil {
		return modules.NewError(modules.ErrImportFailed, target.Name, target.Path, err)
	}

	if target.HasImport(imported, alias, qualified) {
		c.Logger.Debug("duplicate import ignored", "module", target.Name, "import", moduleName, "alias", alias)
		return nil
	}

	target.AddDependency(moduleName)
	if target.AddImport(imported, alias, qualified) {
		c.Metrics.Imports.Inc()
	}
	c.Logger.Debug("import resolved", "module", target.Name, "import", moduleName,
		"alias", alias, "qualified", qualified)
	return nil
}
