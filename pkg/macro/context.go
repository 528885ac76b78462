package macro

import (
	"github.com/open-cli-collective/wikimacro/pkg/block"
	"github.com/open-cli-collective/wikimacro/pkg/syntax"
)

// Context is the state of one transformation run, shared by every macro
// executed during that run.
type Context struct {
	// Document is the tree being transformed. Macros may read it; only the
	// engine mutates it.
	Document *block.Document
	Syntax   syntax.Syntax
	// CurrentMacro is the invocation being executed.
	CurrentMacro *block.Macro

	depth   int
	counter int
}

// NewContext starts the context of a run over doc.
func NewContext(doc *block.Document, syn syntax.Syntax) *Context {
	return &Context{Document: doc, Syntax: syn}
}

// Begin records the macro about to execute and its expansion depth.
func (c *Context) Begin(m *block.Macro, depth int) {
	c.CurrentMacro = m
	c.depth = depth
}

// Depth is the number of macro expansions that led to the current macro.
func (c *Context) Depth() int { return c.depth }

// Inline reports whether the current macro sits in inline content.
func (c *Context) Inline() bool {
	return c.CurrentMacro != nil && c.CurrentMacro.Inline
}

// Counter returns the next value NextCounter would hand out.
func (c *Context) Counter() int { return c.counter }

// NextCounter returns a run-wide sequence number, starting at 0.
func (c *Context) NextCounter() int {
	n := c.counter
	c.counter++
	return n
}
