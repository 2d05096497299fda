package report

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lyn/colors"
	"lyn/internal/source"
)

func TestMain(m *testing.M) {
	colors.Disable()
	os.Exit(m.Run())
}

func TestReportLevels(t *testing.T) {
	var reports Reports
	assert.False(t, reports.HasErrors())

	reports.AddInfo("a", "a.lyn", nil, "loaded", LOADING_PHASE)
	reports.AddWarning("a", "a.lyn", nil, "unused import", IMPORTING_PHASE)
	assert.False(t, reports.HasErrors())
	assert.True(t, reports.HasWarnings())

	tests := []struct {
		name  string
		add   func(module, filePath string, location *source.Location, msg string, phase COMPILATION_PHASE) *Report
		level PROBLEM_TYPE
	}{
		{name: "error", add: reports.AddError, level: NORMAL_ERROR},
		{name: "syntax error", add: reports.AddSyntaxError, level: SYNTAX_ERROR},
		{name: "critical error", add: reports.AddCriticalError, level: CRITICAL_ERROR},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rep := tt.add("b", "b.lyn", nil, tt.name, LOADING_PHASE).WithKind("IOError")
			assert.Equal(t, tt.level, rep.Level)
			assert.Equal(t, CATEGORY_MODULE, rep.Category)
			assert.Equal(t, "IOError", rep.Kind)
		})
	}

	assert.True(t, reports.HasErrors())
	assert.Equal(t, 5, reports.Len())
	assert.Len(t, reports.ForModule("b"), 3)
	assert.Empty(t, reports.ForModule("zzz"))
}

func TestAddHint(t *testing.T) {
	var reports Reports
	rep := reports.AddError("m", "", nil, "boom", LOADING_PHASE).AddHint("try again").AddHint("")
	assert.Equal(t, "try again", rep.Hint)
}

func TestDisplayAll(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.lyn")
	require.NoError(t, os.WriteFile(path, []byte("fn ok() {}\nfn (x) {}\n"), 0644))

	var reports Reports
	start := source.Position{Line: 2, Column: 4}
	end := source.Position{Line: 2, Column: 5}
	reports.AddSyntaxError("bad", path, source.NewLocation(&start, &end), "expected function name", PARSING_PHASE).
		WithKind("SyntaxError")
	reports.AddError("gone", "", nil, "module not found", LOADING_PHASE).
		WithKind("ModuleNotFound").
		AddHint("add a search path")
	reports.AddWarning("w", "", nil, "careful", LOADING_PHASE)

	var buf bytes.Buffer
	reports.DisplayAll(&buf)
	out := buf.String()

	assert.Contains(t, out, "[Syntax Error while parsing](SyntaxError): expected function name")
	assert.Contains(t, out, "2 | fn (x) {}")
	assert.Contains(t, out, "^")
	assert.Contains(t, out, "[Error while loading modules](ModuleNotFound): module not found")
	assert.Contains(t, out, "Help: add a search path")
	assert.Contains(t, out, "failed with (1 warning) , 2 errors")
}

func TestDisplayAllSnippetWithMissingFile(t *testing.T) {
	var reports Reports
	pos := source.Position{Line: 40, Column: 1}
	reports.AddSyntaxError("m", "/does/not/exist.lyn", source.NewLocation(&pos, &pos), "bad", PARSING_PHASE)

	var buf bytes.Buffer
	assert.NotPanics(t, func() { reports.DisplayAll(&buf) })
	assert.Contains(t, buf.String(), "---> [/does/not/exist.lyn:40:1]")
}

func TestShowStatusPassed(t *testing.T) {
	var buf bytes.Buffer
	Reports{}.ShowStatus(&buf)
	assert.Contains(t, buf.String(), "Passed")
}
