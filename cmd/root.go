// Package cmd implements the lync command line: loading module graphs,
// resolving names against them and managing lyn.toml.
package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"lyn/colors"
	"lyn/internal/config"
)

// VERSION of the lync tool.
const VERSION = "0.1.0"

type rootOptions struct {
	configPath  string
	searchPaths []string
	debug       int
	maxModules  int
	noColor     bool
}

// NewRootCommand builds the lync command tree.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "lync",
		Short: "Lyn module loader",
		Long: `lync loads Lyn modules, follows their imports and answers name lookups.

Modules are looked up as <search path>/<name>.lyn, in search path order.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if opts.noColor {
				colors.Disable()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "project file (default: lyn.toml found from the working directory upwards)")
	flags.StringArrayVarP(&opts.searchPaths, "search-path", "I", nil, "directory to search for modules (repeatable, replaces the project search paths)")
	flags.IntVar(&opts.debug, "debug", 0, "log verbosity 0-3")
	flags.IntVar(&opts.maxModules, "max-modules", 0, "maximum number of modules to load (0 = unbounded)")
	flags.BoolVar(&opts.noColor, "no-color", false, "disable colored output")

	root.AddCommand(
		newLoadCommand(opts),
		newResolveCommand(opts),
		newModulesCommand(opts),
		newInitCommand(),
		newVersionCommand(),
	)
	return root
}

// Execute runs lync with the process arguments.
func Execute() error {
	return NewRootCommand().Execute()
}

// projectConfig finds the project configuration and applies the flags that
// were given on top of it. Without a project file the defaults for the
// working directory are used.
func (opts *rootOptions) projectConfig(cmd *cobra.Command) (*config.ProjectConfig, error) {
	var conf *config.ProjectConfig
	var err error

	if opts.configPath != "" {
		conf, err = config.LoadFile(opts.configPath)
		if err != nil {
			return nil, err
		}
	} else {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		root, err := config.FindProjectRoot(cwd)
		switch {
		case err == nil:
			conf, err = config.LoadProjectConfig(root)
			if err != nil {
				return nil, err
			}
		case errors.Is(err, config.ErrNotFound):
			conf = config.Default(cwd)
		default:
			return nil, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("search-path") {
		paths := make([]string, 0, len(opts.searchPaths))
		for _, path := range opts.searchPaths {
			abs, err := filepath.Abs(path)
			if err != nil {
				return nil, fmt.Errorf("failed to get absolute path of %s: %w", path, err)
			}
			paths = append(paths, abs)
		}
		conf.SearchPaths = paths
	}
	if flags.Changed("debug") {
		conf.Debug = opts.debug
	}
	if flags.Changed("max-modules") {
		conf.MaxModules = opts.maxModules
	}

	if err := config.Validate(conf); err != nil {
		return nil, err
	}
	return conf, nil
}
