package cmd

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"lyn/colors"
	"lyn/internal/config"
	"lyn/internal/ctx"
	"lyn/internal/frontend/ast"
	"lyn/internal/modules"
	"lyn/internal/semantic/resolver"
)

var (
	ErrLoadFailed     = errors.New("module loading failed")
	ErrSymbolNotFound = errors.New("symbol not found")
)

func newLoadCommand(opts *rootOptions) *cobra.Command {
	var stats bool

	cmd := &cobra.Command{
		Use:   "load <module>...",
		Short: "Load modules and everything they import",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := opts.projectConfig(cmd)
			if err != nil {
				return err
			}
			c := NewContext(conf, cmd.ErrOrStderr())
			defer c.Destroy()

			out := cmd.OutOrStdout()
			if conf.Debug > 0 {
				colors.BLUE.Fprintf(out, "Search paths: %v\n", c.Registry.SearchPaths())
			}

			_, loadErr := LoadModules(c, args)
			if c.Reports.Len() > 0 {
				c.Reports.DisplayAll(cmd.ErrOrStderr())
			}

			status := colors.GREEN
			if loadErr != nil {
				status = colors.RED
			}
			status.Fprintf(out, "%d of %d modules loaded\n", c.Registry.CountLoaded(), c.ModuleCount())

			if stats {
				if err := c.Metrics.WriteSummary(out); err != nil {
					return err
				}
			}
			if loadErr != nil {
				return ErrLoadFailed
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&stats, "stats", false, "print loader counters after loading")
	return cmd
}

func newResolveCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <module> <name|qualifier.name>",
		Short: "Resolve a name as the given module sees it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := opts.projectConfig(cmd)
			if err != nil {
				return err
			}
			c := NewContext(conf, cmd.ErrOrStderr())
			defer c.Destroy()

			moduleName, ref := args[0], args[1]
			module, err := c.Load(moduleName)
			if err != nil {
				c.Reports.DisplayAll(cmd.ErrOrStderr())
				return err
			}

			exp, ok := resolver.Lookup(module, ref)
			if !ok {
				return fmt.Errorf("%w: %s in module %s", ErrSymbolNotFound, ref, moduleName)
			}

			owner := ownerOf(c, exp)
			visibility := "private"
			if exp.IsPublic {
				visibility = "public"
			}
			out := cmd.OutOrStdout()
			colors.PURPLE.Fprintf(out, "%s", ref)
			fmt.Fprintf(out, " -> %s %s.%s (%s", exportKind(exp), owner.Name, exp.Name, visibility)
			if exp.Type != nil {
				fmt.Fprintf(out, ", %s", exp.Type.TypeName())
			}
			fmt.Fprintf(out, ") at %s:%s\n", owner.Path, exp.Node.Loc().Start)
			return nil
		},
	}
}

func newModulesCommand(opts *rootOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "modules [module...]",
		Short: "Load modules and print the module report",
		Long: `Load the named modules, or every module in the search paths when none
are named, and print what the registry holds.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !ctx.IsReportFormat(format) {
				return fmt.Errorf("unknown format %q (want %s, %s or %s)", format, ctx.FORMAT_TABLE, ctx.FORMAT_YAML, ctx.FORMAT_LIST)
			}
			conf, err := opts.projectConfig(cmd)
			if err != nil {
				return err
			}
			c := NewContext(conf, cmd.ErrOrStderr())
			defer c.Destroy()

			names := args
			if len(names) == 0 {
				names, err = DiscoverModules(c)
				if err != nil {
					return err
				}
			}
			// failures show up in the report as failed modules
			_, _ = LoadModules(c, names)

			return c.WriteModuleReport(cmd.OutOrStdout(), format)
		},
	}

	cmd.Flags().StringVar(&format, "format", ctx.FORMAT_TABLE, "report format: table, yaml or list")
	return cmd
}

func newInitCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "init [path]",
		Short: "Create a lyn.toml project file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			conf, err := config.CreateDefault(dir)
			if err != nil {
				return err
			}
			colors.GREEN.Fprintf(cmd.OutOrStdout(), "Created %s\n",
				filepath.ToSlash(filepath.Join(conf.ProjectRoot, config.CONFIG_FILE)))
			return nil
		},
	}
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "lync %s\n", VERSION)
		},
	}
}

// ownerOf finds the registered module whose export table holds exp.
func ownerOf(c *ctx.CompilerContext, exp *modules.ExportedSymbol) *modules.Module {
	for _, module := range c.Registry.Modules() {
		for _, candidate := range module.Exports {
			if candidate == exp {
				return module
			}
		}
	}
	return &modules.Module{Name: "?"}
}

func exportKind(exp *modules.ExportedSymbol) string {
	switch exp.Node.(type) {
	case *ast.FunctionDecl:
		return "function"
	case *ast.ClassDecl:
		return "class"
	case *ast.TypeDecl:
		return "type"
	case *ast.VarDecl:
		return "variable"
	default:
		return "symbol"
	}
}
