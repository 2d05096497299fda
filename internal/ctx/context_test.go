package ctx

import (
	"path/filepath"
	"testing"

	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lyn/internal/frontend/ast"
	"lyn/internal/frontend/parser"
	"lyn/internal/modules"
	"lyn/internal/registry"
	"lyn/internal/report"
	"lyn/internal/testutil"
)

// countingParser records how often each file was parsed.
type countingParser struct {
	inner *parser.Parser
	calls map[string]int
}

func (p *countingParser) Parse(filePath string, src []byte) (*ast.Program, error) {
	p.calls[filepath.Base(filePath)]++
	return p.inner.Parse(filePath, src)
}

func (p *countingParser) total() int {
	n := 0
	for _, c := range p.calls {
		n += c
	}
	return n
}

func newTestContext(t *testing.T, opts ...registry.Option) (*CompilerContext, *countingParser, string) {
	t.Helper()
	dir := t.TempDir()
	counting := &countingParser{inner: parser.New(), calls: make(map[string]int)}
	opts = append([]registry.Option{registry.WithSearchPaths(dir)}, opts...)
	c := NewCompilerContext(
		WithRegistry(registry.New(opts...)),
		WithParser(counting),
	)
	return c, counting, dir
}

func exportNames(module *modules.Module) []string {
	names := make([]string, 0, len(module.Exports))
	for _, exp := range module.Exports {
		names = append(names, exp.Name)
	}
	return names
}

func TestLoadRecordsExports(t *testing.T) {
	c, _, dir := newTestContext(t)
	testutil.CreateModuleFile(t, dir, "shapes", `
fn area(s: Shape): float { return 0.0; }
class Shape {}
type Id = int;
let counter: int = 0;
pub let limit = 10;
print(area(nil));
`)

	module, err := c.Load("shapes")
	require.NoError(t, err)
	require.NotNil(t, module)

	assert.True(t, module.IsLoaded)
	assert.False(t, module.IsLoading)
	assert.Equal(t, modules.STATE_LOADED, module.State())
	assert.Equal(t, filepath.ToSlash(filepath.Join(dir, "shapes.lyn")), module.Path)
	assert.Positive(t, module.Size)
	require.NotNil(t, module.AST)
	assert.Equal(t, []string{"area", "Shape", "Id", "counter", "limit"}, exportNames(module))

	visibility := map[string]bool{}
	for _, exp := range module.Exports {
		visibility[exp.Name] = exp.IsPublic
	}
	assert.Equal(t, map[string]bool{"area": true, "Shape": true, "Id": true, "counter": false, "limit": true}, visibility)

	assert.Equal(t, "float", module.Exports[0].Type.TypeName())
	assert.Nil(t, module.Exports[1].Type)
	assert.Equal(t, "int", module.Exports[3].Type.TypeName())
	assert.Same(t, module.AST.Nodes[0], module.Exports[0].Node, "exports point into the module's own AST")

	assert.Empty(t, c.Reports)
	assert.Empty(t, c.LoadStack())
}

func TestLoadLastDeclarationWins(t *testing.T) {
	c, _, dir := newTestContext(t)
	testutil.CreateModuleFile(t, dir, "dup", `
fn x() {}
fn y() {}
let x = 1;
`)

	module, err := c.Load("dup")
	require.NoError(t, err)
	require.Len(t, module.Exports, 2)
	assert.Equal(t, "x", module.Exports[0].Name)
	assert.False(t, module.Exports[0].IsPublic)
	assert.IsType(t, &ast.VarDecl{}, module.Exports[0].Node)
}

func TestLoadIsIdempotent(t *testing.T) {
	c, counting, dir := newTestContext(t)
	testutil.CreateModuleFile(t, dir, "util", "fn help() {}")

	first, err := c.Load("util")
	require.NoError(t, err)
	second, err := c.Load("util")
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, counting.calls["util.lyn"])
	assert.Equal(t, 1, c.Registry.Len())
	assert.InDelta(t, 1, promtestutil.ToFloat64(c.Metrics.Loads), 0)
	assert.InDelta(t, 1, promtestutil.ToFloat64(c.Metrics.CacheHits), 0)
	assert.InDelta(t, 1, promtestutil.ToFloat64(c.Metrics.Parses), 0)
}

func TestLoadSharedDependencyOnce(t *testing.T) {
	c, counting, dir := newTestContext(t)
	testutil.CreateModuleFile(t, dir, "main", "import left;\nimport right;")
	testutil.CreateModuleFile(t, dir, "left", "import base;\nfn l() {}")
	testutil.CreateModuleFile(t, dir, "right", "import base;\nfn r() {}")
	testutil.CreateModuleFile(t, dir, "base", "fn b() {}")

	main, err := c.Load("main")
	require.NoError(t, err)

	assert.Equal(t, 1, counting.calls["base.lyn"])
	assert.Equal(t, 4, counting.total())
	assert.Equal(t, 4, c.Registry.CountLoaded())

	left, _ := c.Registry.Get("left")
	right, _ := c.Registry.Get("right")
	assert.Same(t, left.Imports[0].Module, right.Imports[0].Module)
	assert.Equal(t, []string{"left", "right"}, main.Dependencies)
}

func TestLoadRejectsEmptyName(t *testing.T) {
	c, _, _ := newTestContext(t)

	module, err := c.Load("")
	assert.Nil(t, module)
	require.Error(t, err)
	assert.ErrorIs(t, err, modules.ErrInvalidArgument)
	assert.Equal(t, 0, c.Registry.Len())
	require.Len(t, c.Reports, 1)
	assert.Equal(t, "InvalidArgument", c.Reports[0].Kind)
}

func TestLoadMissingModule(t *testing.T) {
	c, counting, _ := newTestContext(t)

	module, err := c.Load("does_not_exist")
	assert.Nil(t, module)
	require.Error(t, err)
	assert.ErrorIs(t, err, modules.ErrModuleNotFound)
	assert.Contains(t, err.Error(), "does_not_exist.lyn")

	_, registered := c.Registry.Get("does_not_exist")
	assert.False(t, registered)
	assert.Equal(t, 0, counting.total())

	require.Len(t, c.Reports, 1)
	rep := c.Reports[0]
	assert.Equal(t, report.CATEGORY_MODULE, rep.Category)
	assert.Equal(t, "ModuleNotFound", rep.Kind)
	assert.Equal(t, "does_not_exist", rep.Module)
	assert.Equal(t, report.NORMAL_ERROR, rep.Level)
	assert.NotEmpty(t, rep.Hint)
	assert.InDelta(t, 1, promtestutil.ToFloat64(c.Metrics.Failures.WithLabelValues("ModuleNotFound")), 0)
}

func TestLoadEmptyFile(t *testing.T) {
	c, counting, dir := newTestContext(t)
	testutil.CreateModuleFile(t, dir, "empty", "")

	_, err := c.Load("empty")
	require.Error(t, err)
	assert.ErrorIs(t, err, modules.ErrIO)

	module, ok := c.Registry.Get("empty")
	require.True(t, ok, "failed module stays registered")
	assert.Equal(t, modules.STATE_FAILED, module.State())
	assert.False(t, module.IsLoaded)
	assert.False(t, module.IsLoading)
	assert.Equal(t, 0, counting.total())
}

func TestLoadSyntaxError(t *testing.T) {
	c, counting, dir := newTestContext(t)
	testutil.CreateModuleFile(t, dir, "broken", "fn ok() {}\nfn (x) {}\n")

	_, err := c.Load("broken")
	require.Error(t, err)
	assert.ErrorIs(t, err, modules.ErrSyntax)

	var syntaxErr *parser.SyntaxError
	require.ErrorAs(t, err, &syntaxErr)
	assert.Equal(t, 2, syntaxErr.Pos.Line)

	module, ok := c.Registry.Get("broken")
	require.True(t, ok)
	assert.Equal(t, modules.STATE_FAILED, module.State())
	assert.Nil(t, module.AST)

	require.Len(t, c.Reports, 1)
	rep := c.Reports[0]
	assert.Equal(t, report.SYNTAX_ERROR, rep.Level)
	assert.Equal(t, report.PARSING_PHASE, rep.Phase)
	require.NotNil(t, rep.Location)
	assert.Equal(t, 2, rep.Location.Start.Line)

	// a failed module is not retried
	_, again := c.Load("broken")
	assert.Same(t, err, again)
	assert.Equal(t, 1, counting.calls["broken.lyn"])
	assert.Len(t, c.Reports, 1)
}

func TestLoadSearchPathOrder(t *testing.T) {
	c, _, first := newTestContext(t)
	second := t.TempDir()
	c.Registry.SetSearchPaths([]string{first, second})

	testutil.CreateModuleFile(t, first, "io", "fn read() {}")
	testutil.CreateModuleFile(t, second, "io", "fn write() {}")
	testutil.CreateModuleFile(t, second, "math", "fn add() {}")

	io, err := c.Load("io")
	require.NoError(t, err)
	assert.Equal(t, []string{"read"}, exportNames(io))

	math, err := c.Load("math")
	require.NoError(t, err)
	assert.Equal(t, filepath.ToSlash(filepath.Join(second, "math.lyn")), math.Path)
}

func TestLoadPreRegisteredModule(t *testing.T) {
	c, _, dir := newTestContext(t)
	testutil.CreateModuleFile(t, dir, "pre", "fn p() {}")
	placeholder := modules.New("pre", "")
	require.NoError(t, c.Registry.Register(placeholder))

	module, err := c.Load("pre")
	require.NoError(t, err)
	assert.Same(t, placeholder, module)
	assert.Equal(t, []string{"p"}, exportNames(module))
}

func TestLoadReentrant(t *testing.T) {
	c, _, dir := newTestContext(t)
	testutil.CreateModuleFile(t, dir, "busy", "fn b() {}")
	busy := modules.New("busy", filepath.Join(dir, "busy.lyn"))
	busy.BeginLoading()
	require.NoError(t, c.Registry.Register(busy))

	_, err := c.Load("busy")
	require.Error(t, err)
	assert.ErrorIs(t, err, modules.ErrCircularDependency)
	assert.Equal(t, report.CRITICAL_ERROR, c.Reports[0].Level)
}

func TestTeardownThenReload(t *testing.T) {
	c, counting, dir := newTestContext(t)
	testutil.CreateModuleFile(t, dir, "lib", "fn f() {}")

	before, err := c.Load("lib")
	require.NoError(t, err)

	c.Destroy()
	assert.Equal(t, 0, c.Registry.Len())
	assert.Nil(t, before.AST)
	assert.Empty(t, before.Exports)

	_, err = c.Load("lib")
	assert.ErrorIs(t, err, modules.ErrModuleNotFound, "no search paths until the registry is initialised again")

	c.Registry.Init()
	c.Registry.SetSearchPaths([]string{dir})
	after, err := c.Load("lib")
	require.NoError(t, err)

	assert.NotSame(t, before, after)
	assert.Equal(t, 2, counting.calls["lib.lyn"], "full reload after teardown")
	assert.Equal(t, []string{"f"}, exportNames(after))
}

func TestLoadNonASCIIDigits(t *testing.T) {
	c, _, dir := newTestContext(t)
	testutil.CreateModuleFile(t, dir, "digits", "let n = ١٢;\nprint(１);\nfn after() {}")

	module, err := c.Load("digits")
	require.NoError(t, err)
	assert.Equal(t, []string{"n", "after"}, exportNames(module))
	assert.Empty(t, c.LoadStack())
}
