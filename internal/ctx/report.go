package ctx

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"gopkg.in/yaml.v3"

	"lyn/internal/modules"
)

// Module report formats accepted by WriteModuleReport.
const (
	FORMAT_TABLE = "table"
	FORMAT_YAML  = "yaml"
	FORMAT_LIST  = "list"
)

// IsReportFormat reports whether WriteModuleReport accepts format.
func IsReportFormat(format string) bool {
	switch format {
	case "", FORMAT_TABLE, FORMAT_YAML, FORMAT_LIST:
		return true
	}
	return false
}

// ModuleSummary is the report view of one registered module.
type ModuleSummary struct {
	Name         string   `yaml:"name"`
	State        string   `yaml:"state"`
	Path         string   `yaml:"path,omitempty"`
	Size         int64    `yaml:"size"`
	Exports      []string `yaml:"exports,omitempty"`
	Private      []string `yaml:"private,omitempty"`
	Imports      []string `yaml:"imports,omitempty"`
	Dependencies []string `yaml:"dependencies,omitempty"`
	Error        string   `yaml:"error,omitempty"`
}

// Summaries describes every module in registration order.
func (c *CompilerContext) Summaries() []ModuleSummary {
	mods := c.Registry.Modules()
	out := make([]ModuleSummary, 0, len(mods))
	for _, module := range mods {
		out = append(out, summarize(module))
	}
	return out
}

func summarize(module *modules.Module) ModuleSummary {
	summary := ModuleSummary{
		Name:         module.Name,
		State:        module.State().String(),
		Path:         module.Path,
		Size:         module.Size,
		Dependencies: module.Dependencies,
	}
	for _, exp := range module.Exports {
		if exp.IsPublic {
			summary.Exports = append(summary.Exports, exp.Name)
		} else {
			summary.Private = append(summary.Private, exp.Name)
		}
	}
	for _, imp := range module.Imports {
		summary.Imports = append(summary.Imports, describeImport(imp))
	}
	if module.Err != nil {
		summary.Error = module.Err.Error()
	}
	return summary
}

// describeImport renders an import record the way it is written in source,
// without the keyword: "qualified net as n".
func describeImport(imp *modules.ImportedModule) string {
	var sb strings.Builder
	if imp.IsQualified {
		sb.WriteString("qualified ")
	}
	sb.WriteString(imp.Name)
	if imp.Alias != "" {
		sb.WriteString(" as ")
		sb.WriteString(imp.Alias)
	}
	return sb.String()
}

// WriteModuleReport writes the registry contents to w as a table, as YAML or
// as a coloured list of names and states.
func (c *CompilerContext) WriteModuleReport(w io.Writer, format string) error {
	summaries := c.Summaries()

	switch format {
	case "", FORMAT_TABLE:
		return writeTable(w, summaries)
	case FORMAT_YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(summaries); err != nil {
			return fmt.Errorf("encode module report: %w", err)
		}
		return enc.Close()
	case FORMAT_LIST:
		c.PrintModules(w)
		return nil
	default:
		return fmt.Errorf("unknown report format %q (want %s, %s or %s)", format, FORMAT_TABLE, FORMAT_YAML, FORMAT_LIST)
	}
}

func writeTable(w io.Writer, summaries []ModuleSummary) error {
	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.AppendHeader(table.Row{"Module", "State", "Path", "Size", "Exports", "Imports", "Dependencies"})

	loaded := 0
	for _, s := range summaries {
		if s.State == modules.STATE_LOADED.String() {
			loaded++
		}
		exports := strings.Join(s.Exports, ", ")
		if len(s.Private) > 0 {
			if exports != "" {
				exports += ", "
			}
			exports += "(" + strings.Join(s.Private, ", ") + ")"
		}
		tbl.AppendRow(table.Row{
			s.Name,
			s.State,
			s.Path,
			humanize.Bytes(uint64(s.Size)),
			exports,
			strings.Join(s.Imports, ", "),
			strings.Join(s.Dependencies, ", "),
		})
	}
	tbl.AppendFooter(table.Row{fmt.Sprintf("Total: %d modules, %d loaded", len(summaries), loaded)})

	_, err := fmt.Fprintln(w, tbl.Render())
	return err
}
