// Package macros provides the builtin macro set.
package macros

import (
	"fmt"
	"slices"

	"github.com/open-cli-collective/wikimacro/pkg/macro"
)

// Builtins returns the descriptors of every builtin macro.
func Builtins() []macro.Descriptor {
	return []macro.Descriptor{
		panelDescriptor("info", "Information panel"),
		panelDescriptor("warning", "Warning panel"),
		panelDescriptor("note", "Note panel"),
		panelDescriptor("tip", "Tip panel"),
		{
			ID:          "expand",
			Description: "Collapsible section",
			Priority:    macro.DefaultPriority,
			Macro:       macro.Func(executeExpand),
		},
		{
			ID:             "code",
			Description:    "Code block or inline code",
			Priority:       macro.DefaultPriority,
			SupportsInline: true,
			Macro:          macro.Func(executeCode),
		},
		{
			ID:          "markdown",
			Description: "Markdown content",
			Priority:    macro.DefaultPriority,
			Macro:       macro.Func(executeMarkdown),
		},
		{
			ID:          "html",
			Description: "HTML content, converted through markdown",
			Priority:    macro.DefaultPriority,
			Macro:       macro.Func(executeHTML),
		},
		{
			ID:             "counter",
			Description:    "Sequence number unique within a run",
			Priority:       macro.DefaultPriority,
			SupportsInline: true,
			Macro:          macro.Func(executeCounter),
		},
		{
			ID:          "toc",
			Description: "Table of contents",
			// Runs after content macros so their headings are listed.
			Priority: tocPriority,
			Macro:    macro.Func(executeTOC),
		},
	}
}

// Register adds the builtin macros to r, skipping the disabled ids.
func Register(r *macro.Registry, disabled ...string) error {
	for _, d := range Builtins() {
		if slices.Contains(disabled, d.ID) {
			continue
		}
		if err := r.Register(d); err != nil {
			return fmt.Errorf("registering builtin macros: %w", err)
		}
	}
	return nil
}

// NewRegistry returns a registry holding the builtin macros.
func NewRegistry(disabled ...string) (*macro.Registry, error) {
	r := macro.NewRegistry()
	if err := Register(r, disabled...); err != nil {
		return nil, err
	}
	return r, nil
}
