// Package ctx holds the CompilerContext: the per-compilation state that
// drives module loading, import resolution and cycle detection.
package ctx

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"lyn/colors"
	"lyn/internal/frontend/ast"
	"lyn/internal/frontend/parser"
	"lyn/internal/logging"
	"lyn/internal/metrics"
	"lyn/internal/modules"
	"lyn/internal/registry"
	"lyn/internal/report"
	"lyn/internal/utils/stack"
)

// EXT is the fixed file extension of Lyn modules.
const EXT = ".lyn"

// Parser turns the source of one module file into a program. It returns an
// error when the content is rejected.
type Parser interface {
	Parse(filePath string, src []byte) (*ast.Program, error)
}

// CompilerContext is one compilation. It is not safe for concurrent use: the
// load stack belongs to the single call chain that is building the graph.
type CompilerContext struct {
	Registry *registry.Registry
	Parser   Parser
	Reports  report.Reports
	Logger   *log.Logger
	Metrics  *metrics.Loader

	// names of modules whose load is in progress, outermost first
	loading *stack.Stack[string]
}

type Option func(*CompilerContext)

func WithRegistry(r *registry.Registry) Option {
	return func(c *CompilerContext) {
		c.Registry = r
	}
}

func WithParser(p Parser) Option {
	return func(c *CompilerContext) {
		c.Parser = p
	}
}

func WithLogger(l *log.Logger) Option {
	return func(c *CompilerContext) {
		c.Logger = l
	}
}

func WithMetrics(m *metrics.Loader) Option {
	return func(c *CompilerContext) {
		c.Metrics = m
	}
}

// NewCompilerContext returns a context with a fresh registry, the default
// parser, a silent logger and its own metrics unless options say otherwise.
func NewCompilerContext(opts ...Option) *CompilerContext {
	c := &CompilerContext{
		loading: stack.New[string](),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.Registry == nil {
		c.Registry = registry.New()
	}
	if c.Parser == nil {
		c.Parser = parser.New()
	}
	if c.Logger == nil {
		c.Logger = logging.Discard()
	}
	if c.Metrics == nil {
		c.Metrics = metrics.NewLoader()
	}
	return c
}

// LoadStack returns the names of the loads in progress, outermost first.
func (c *CompilerContext) LoadStack() []string {
	return c.loading.Values()
}

// IsLoading reports whether name is on the load stack of this context.
func (c *CompilerContext) IsLoading(name string) bool {
	return c.loading.Contains(name)
}

func (c *CompilerContext) startLoading(name string) {
	c.loading.Push(name)
	c.Logger.Debug("start loading", "module", name, "depth", c.loading.Count())
}

func (c *CompilerContext) finishLoading(name string) {
	if top := c.loading.Pop(); top != name {
		c.Logger.Warn("load stack out of order", "expected", name, "popped", top)
	}
}

// cyclePath renders the import chain that closes when from imports to,
// e.g. "a -> b -> a".
func (c *CompilerContext) cyclePath(from, to string) string {
	chain := c.loading.From(to)
	if chain == nil {
		chain = []string{to}
	}
	if chain[len(chain)-1] != from {
		chain = append(chain, from)
	}
	return strings.Join(append(chain, to), " -> ")
}

func (c *CompilerContext) ModuleCount() int {
	if c == nil || c.Registry == nil {
		return 0
	}
	return c.Registry.Len()
}

// PrintModules lists the cached modules with their load state, one per line.
func (c *CompilerContext) PrintModules(w io.Writer) {
	if c == nil || c.Registry == nil {
		colors.YELLOW.Fprintln(w, "No modules in cache (context is nil)")
		return
	}
	names := c.Registry.Names()
	if len(names) == 0 {
		colors.YELLOW.Fprintln(w, "No modules in cache")
		return
	}

	colors.BLUE.Fprintf(w, "Modules in cache (%d):\n", c.ModuleCount())
	for _, name := range names {
		module, ok := c.Registry.Get(name)
		if !ok {
			continue
		}
		colors.PURPLE.Fprintf(w, "- %s ", name)
		state := module.State()
		switch state {
		case modules.STATE_LOADED:
			colors.GREEN.Fprintf(w, "(%s)", state)
		case modules.STATE_FAILED:
			colors.RED.Fprintf(w, "(%s)", state)
		default:
			colors.YELLOW.Fprintf(w, "(%s)", state)
		}
		fmt.Fprintln(w)
	}
}

// Destroy tears the registry down and clears the load stack. The registry
// has no search paths afterwards; call Registry.Init before loading again.
func (c *CompilerContext) Destroy() {
	if c == nil {
		return
	}
	if c.Registry != nil {
		c.Registry.Teardown()
	}
	c.loading = stack.New[string]()
	c.Reports = nil
}
