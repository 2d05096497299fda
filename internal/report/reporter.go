package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"lyn/colors"
	"lyn/internal/source"
)

type PROBLEM_TYPE string

type COMPILATION_PHASE string

const (
	LOADING_PHASE   COMPILATION_PHASE = "loading modules"
	PARSING_PHASE   COMPILATION_PHASE = "parsing"
	IMPORTING_PHASE COMPILATION_PHASE = "resolving imports"
	RESOLVER_PHASE  COMPILATION_PHASE = "resolving symbols"
)

const (
	NULL           PROBLEM_TYPE = ""
	CRITICAL_ERROR PROBLEM_TYPE = "critical error" // Cycles and capacity exhaustion
	SYNTAX_ERROR   PROBLEM_TYPE = "syntax error"
	NORMAL_ERROR   PROBLEM_TYPE = "error"

	WARNING PROBLEM_TYPE = "warning"
	INFO    PROBLEM_TYPE = "info"
)

// CATEGORY_MODULE tags every diagnostic raised by the module system.
const CATEGORY_MODULE = "module"

var colorMap = map[PROBLEM_TYPE]colors.COLOR{
	CRITICAL_ERROR: colors.BRIGHT_RED,
	SYNTAX_ERROR:   colors.RED,
	NORMAL_ERROR:   colors.RED,
	WARNING:        colors.YELLOW,
	INFO:           colors.BLUE,
}

// Report is one structured diagnostic.
type Report struct {
	Category string
	Module   string
	FilePath string
	Location *source.Location // nil when the problem has no position in a file
	Message  string
	Kind     string // error kind, e.g. "ModuleNotFound"
	Hint     string
	Level    PROBLEM_TYPE
	Phase    COMPILATION_PHASE
}

type Reports []*Report

func (r Reports) Len() int {
	return len(r)
}

func (r *Reports) HasErrors() bool {
	for _, report := range *r {
		if report.Level == NORMAL_ERROR || report.Level == CRITICAL_ERROR || report.Level == SYNTAX_ERROR {
			return true
		}
	}
	return false
}

func (r *Reports) HasWarnings() bool {
	for _, report := range *r {
		if report.Level == WARNING {
			return true
		}
	}
	return false
}

// ForModule returns the diagnostics raised while handling the named module.
func (r Reports) ForModule(name string) Reports {
	var out Reports
	for _, report := range r {
		if report.Module == name {
			out = append(out, report)
		}
	}
	return out
}

func (r *Reports) createNew(module, filePath string, location *source.Location, msg string, phase COMPILATION_PHASE) *Report {
	report := &Report{
		Category: CATEGORY_MODULE,
		Module:   module,
		FilePath: filePath,
		Location: location,
		Message:  msg,
		Level:    NULL,
		Phase:    phase,
	}

	if len(*r) == 0 {
		*r = make([]*Report, 0, 10)
	}
	*r = append(*r, report)

	return report
}

// AddError creates and registers a new error report
func (r *Reports) AddError(module, filePath string, location *source.Location, msg string, phase COMPILATION_PHASE) *Report {
	report := r.createNew(module, filePath, location, msg, phase)
	report.Level = NORMAL_ERROR
	return report
}

// AddSyntaxError creates and registers a new syntax error report
func (r *Reports) AddSyntaxError(module, filePath string, location *source.Location, msg string, phase COMPILATION_PHASE) *Report {
	report := r.createNew(module, filePath, location, msg, phase)
	report.Level = SYNTAX_ERROR
	return report
}

// AddCriticalError creates and registers a new critical error report
func (r *Reports) AddCriticalError(module, filePath string, location *source.Location, msg string, phase COMPILATION_PHASE) *Report {
	report := r.createNew(module, filePath, location, msg, phase)
	report.Level = CRITICAL_ERROR
	return report
}

// AddWarning creates and registers a new warning report
func (r *Reports) AddWarning(module, filePath string, location *source.Location, msg string, phase COMPILATION_PHASE) *Report {
	report := r.createNew(module, filePath, location, msg, phase)
	report.Level = WARNING
	return report
}

// AddInfo creates and registers a new info report
func (r *Reports) AddInfo(module, filePath string, location *source.Location, msg string, phase COMPILATION_PHASE) *Report {
	report := r.createNew(module, filePath, location, msg, phase)
	report.Level = INFO
	return report
}

// WithKind tags the report with an error kind and returns it.
func (r *Report) WithKind(kind string) *Report {
	r.Kind = kind
	return r
}

// AddHint appends a hint message to the diagnostic. Empty hints are ignored.
func (r *Report) AddHint(msg string) *Report {
	if msg == "" {
		return r
	}
	r.Hint = msg
	return r
}

// DisplayAll writes every report followed by the status line.
func (r *Reports) DisplayAll(w io.Writer) {
	for i, report := range *r {
		printReport(w, report)
		if i < len(*r)-1 {
			fmt.Fprintln(w)
		}
	}

	(*r).ShowStatus(w)
}

func printReport(w io.Writer, r *Report) {
	var reportMsgType string

	switch r.Level {
	case WARNING:
		reportMsgType = fmt.Sprintf("[Warning while %s]", r.Phase)
	case INFO:
		reportMsgType = fmt.Sprintf("[Info while %s]", r.Phase)
	case CRITICAL_ERROR:
		reportMsgType = fmt.Sprintf("[Critical Error while %s]", r.Phase)
	case SYNTAX_ERROR:
		reportMsgType = fmt.Sprintf("[Syntax Error while %s]", r.Phase)
	default:
		reportMsgType = fmt.Sprintf("[Error while %s]", r.Phase)
	}
	if r.Kind != "" {
		reportMsgType += fmt.Sprintf("(%s)", r.Kind)
	}

	reportColor, ok := colorMap[r.Level]
	if !ok {
		reportColor = colors.RED
	}

	// The error message type and the message itself are printed in the same color.
	reportColor.Fprint(w, reportMsgType+": ")
	reportColor.Fprintln(w, r.Message)

	if r.FilePath != "" {
		if r.Location != nil && r.Location.Start != nil {
			colors.GREY.Fprintf(w, "---> [%s:%d:%d]\n", r.FilePath, r.Location.Start.Line, r.Location.Start.Column)
			if snippet := makeSnippet(r); snippet != "" {
				fmt.Fprint(w, snippet)
			}
		} else {
			colors.GREY.Fprintf(w, "---> [%s]\n", r.FilePath)
		}
	}

	if r.Hint != "" {
		colors.YELLOW.Fprintf(w, "Help: %s\n", r.Hint)
	}
}

// makeSnippet renders the offending line with an underline. It returns an
// empty string when the file can no longer be read.
func makeSnippet(r *Report) string {
	fileData, err := os.ReadFile(filepath.FromSlash(r.FilePath))
	if err != nil {
		return ""
	}

	lines := strings.Split(string(fileData), "\n")
	if r.Location.Start.Line < 1 || r.Location.Start.Line > len(lines) {
		return ""
	}
	line := lines[r.Location.Start.Line-1]

	hLen := 0
	if r.Location.End != nil && r.Location.Start.Line == r.Location.End.Line {
		hLen = (r.Location.End.Column - r.Location.Start.Column) - 1
	}
	if hLen < 0 {
		hLen = 0
	}

	lineNumber := fmt.Sprintf("%d | ", r.Location.Start.Line)
	bar := fmt.Sprintf("%s |", strings.Repeat(" ", len(fmt.Sprint(r.Location.Start.Line))))
	padding := strings.Repeat(" ", max(0, (r.Location.Start.Column-1)+len(lineNumber)-len(bar)))

	snippet := colors.GREY.Sprint(bar) + "\n" + colors.GREY.Sprint(lineNumber) + line + "\n"
	snippet += colors.GREY.Sprint(bar)
	snippet += colorMap[r.Level].Sprintf("%s^%s", padding, strings.Repeat("~", hLen)) + "\n"
	return snippet
}

// ShowStatus displays a summary along with counts of warnings and errors.
func (r Reports) ShowStatus(w io.Writer) {
	warningCount := 0
	probCount := 0

	for _, report := range r {
		switch report.Level {
		case WARNING:
			warningCount++
		case NORMAL_ERROR, CRITICAL_ERROR, SYNTAX_ERROR:
			probCount++
		}
	}

	var messageColor colors.COLOR

	if probCount > 0 {
		messageColor = colors.RED
		messageColor.Fprint(w, "------------- failed with ")
	} else {
		messageColor = colors.GREEN
		messageColor.Fprint(w, "------------- Passed ")
	}

	totalProblemsString := ""

	if warningCount > 0 {
		totalProblemsString += colorMap[WARNING].Sprintf("(%d %s) ", warningCount, plural("warning", "warnings", warningCount))
		if probCount > 0 {
			totalProblemsString += colors.ORANGE.Sprint(", ")
		}
	}

	if probCount > 0 {
		totalProblemsString += colorMap[NORMAL_ERROR].Sprintf("%d %s", probCount, plural("error", "errors", probCount))
	}

	messageColor.Fprint(w, totalProblemsString)
	messageColor.Fprintln(w, " -------------")
}

func plural(singular, pluralForm string, count int) string {
	if count == 1 {
		return singular
	}
	return pluralForm
}
