// Package macro defines what a macro is to the transformation engine: an
// implementation, the descriptor it is registered under, and the per-run
// context it executes in.
package macro

import "github.com/open-cli-collective/wikimacro/pkg/block"

// DefaultPriority is the priority of macros that do not care when they run.
const DefaultPriority = 1000

// Macro is a macro implementation.
//
// content is nil when the invocation had no content. The returned blocks
// must be fresh (not attached to any parent); they become the children of
// the marker that replaces the invocation.
type Macro interface {
	Execute(params map[string]string, content *string, ctx *Context) ([]block.Block, error)
}

// Func adapts an ordinary function to the Macro interface.
type Func func(params map[string]string, content *string, ctx *Context) ([]block.Block, error)

func (f Func) Execute(params map[string]string, content *string, ctx *Context) ([]block.Block, error) {
	return f(params, content, ctx)
}

// Descriptor registers a Macro under an identifier.
type Descriptor struct {
	ID          string
	Description string
	// Priority orders execution within a pass: greater runs earlier,
	// equal priorities run in document order.
	Priority int
	// SupportsInline allows the macro inside paragraph content.
	SupportsInline bool
	Macro          Macro
}
