// Package transform executes the macros of a document tree.
//
// A run works in passes. Each pass collects every outstanding macro in
// document order, sorts them by descending priority (document order breaks
// ties), and executes them one after the other, replacing each by a marker
// that holds its output. Macros produced by a pass are picked up by the
// next one. A macro nested under as many markers as the maximum depth is
// left unexecuted, which bounds a run to at most max depth + 1 passes.
package transform

import (
	"fmt"
	"log/slog"
	"maps"
	"sort"
	"strings"

	"github.com/open-cli-collective/wikimacro/pkg/block"
	"github.com/open-cli-collective/wikimacro/pkg/macro"
	"github.com/open-cli-collective/wikimacro/pkg/syntax"
)

// DefaultMaxDepth bounds nested macro expansion.
const DefaultMaxDepth = 1000

// Engine runs macro transformations against a registry.
type Engine struct {
	registry *macro.Registry
	maxDepth int
	logger   *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithMaxDepth sets how many nested expansions a chain may go through.
// Values below 1 are ignored.
func WithMaxDepth(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxDepth = n
		}
	}
}

// WithLogger sets the logger. The default logger discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// New creates an Engine resolving macros in registry.
func New(registry *macro.Registry, opts ...Option) *Engine {
	e := &Engine{
		registry: registry,
		maxDepth: DefaultMaxDepth,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// MaxDepth returns the configured depth limit.
func (e *Engine) MaxDepth() int { return e.maxDepth }

// pending is a macro collected by a pass.
type pending struct {
	block *block.Macro
	depth int
	desc  macro.Descriptor
}

// Transform executes every macro in doc until none is left to run.
//
// Failures of individual macros are recorded in the report and leave the
// macro in place. An error is returned only when the tree itself is left
// inconsistent, e.g. by a macro returning blocks that belong to another
// tree; the document is then partially transformed.
func (e *Engine) Transform(doc *block.Document, syn syntax.Syntax) (*Report, error) {
	report := &Report{}
	ctx := macro.NewContext(doc, syn)
	terminal := make(map[*block.Macro]struct{})

	for {
		runnable := e.schedule(doc, terminal, report)
		if len(runnable) == 0 {
			break
		}
		report.Passes++
		e.logger.Debug("transform: pass", "pass", report.Passes, "macros", len(runnable))

		for _, p := range runnable {
			if err := e.execute(ctx, p, terminal, report); err != nil {
				return report, err
			}
		}
	}

	e.logger.Debug("transform: done",
		"passes", report.Passes,
		"executed", report.Executed,
		"failures", len(report.Failures))
	return report, nil
}

// schedule collects the outstanding macros of doc and returns the ones to
// execute in this pass, in execution order. Macros that cannot run are
// marked terminal and reported.
func (e *Engine) schedule(doc *block.Document, terminal map[*block.Macro]struct{}, report *Report) []pending {
	var runnable []pending
	for _, p := range collect(doc, terminal) {
		if p.depth >= e.maxDepth {
			terminal[p.block] = struct{}{}
			report.add(Failure{Kind: FailureRecursionLimit, MacroID: p.block.ID, Depth: p.depth,
				Err: fmt.Errorf("macro %s: maximum depth %d reached", p.block.ID, e.maxDepth)})
			e.logger.Debug("transform: depth limit reached", "macro", p.block.ID, "depth", p.depth)
			continue
		}

		desc, err := e.registry.Resolve(p.block.ID)
		if err != nil {
			terminal[p.block] = struct{}{}
			report.add(Failure{Kind: FailureUnknownMacro, MacroID: p.block.ID, Depth: p.depth, Err: err})
			e.logger.Warn("transform: unknown macro", "macro", p.block.ID)
			continue
		}
		p.desc = desc
		runnable = append(runnable, p)
	}

	sort.SliceStable(runnable, func(i, j int) bool {
		return runnable[i].desc.Priority > runnable[j].desc.Priority
	})
	return runnable
}

// collect returns the non-terminal macros of doc in document order together
// with the number of markers above each.
func collect(doc *block.Document, terminal map[*block.Macro]struct{}) []pending {
	var out []pending
	var visit func(b block.Block, depth int)
	visit = func(b block.Block, depth int) {
		switch n := b.(type) {
		case *block.Macro:
			if _, done := terminal[n]; !done {
				out = append(out, pending{block: n, depth: depth})
			}
			return
		case *block.MacroMarker:
			depth++
		}
		for _, c := range b.Children() {
			visit(c, depth)
		}
	}
	visit(doc, 0)
	return out
}

// execute runs one macro and substitutes its output.
func (e *Engine) execute(ctx *macro.Context, p pending, terminal map[*block.Macro]struct{}, report *Report) error {
	m := p.block
	fail := func(err error) {
		terminal[m] = struct{}{}
		report.add(Failure{Kind: FailureExecution, MacroID: m.ID, Depth: p.depth,
			Err: &macro.ExecutionError{ID: m.ID, Err: err}})
		e.logger.Warn("transform: macro failed", "macro", m.ID, "depth", p.depth, "error", err)
	}

	if m.Inline && !p.desc.SupportsInline {
		fail(macro.ErrInlineNotSupported)
		return nil
	}

	var content *string
	if m.HasContent {
		c := normalizeContent(m.Content)
		content = &c
	}

	ctx.Begin(m, p.depth)
	generated, err := invoke(p.desc.Macro, m, content, ctx)
	if err != nil {
		fail(err)
		return nil
	}

	if _, err := substitute(ctx.Document, m, generated); err != nil {
		return fmt.Errorf("macro %s: %w", m.ID, err)
	}
	report.Executed++
	return nil
}

// invoke calls the implementation, turning a panic into an error so that a
// broken macro only fails itself.
func invoke(impl macro.Macro, m *block.Macro, content *string, ctx *macro.Context) (blocks []block.Block, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return impl.Execute(maps.Clone(m.Params), content, ctx)
}

// normalizeContent strips exactly one leading and one trailing newline, so
// that content written on its own lines matches content written inline.
func normalizeContent(s string) string {
	s = strings.TrimPrefix(s, "\n")
	return strings.TrimSuffix(s, "\n")
}
