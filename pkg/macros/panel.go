package macros

import (
	"github.com/open-cli-collective/wikimacro/pkg/block"
	"github.com/open-cli-collective/wikimacro/pkg/macro"
	"github.com/open-cli-collective/wikimacro/pkg/wiki"
)

func panelDescriptor(id, description string) macro.Descriptor {
	return macro.Descriptor{
		ID:          id,
		Description: description,
		Priority:    macro.DefaultPriority,
		Macro:       panel("box " + id + "message"),
	}
}

// panel returns a macro wrapping its parsed content in a group of the
// given class. Macros found in the content are left for later passes.
func panel(class string) macro.Func {
	return func(params map[string]string, content *string, _ *macro.Context) ([]block.Block, error) {
		return []block.Block{block.NewGroup(groupParams(class, params, "title"), parseContent(content)...)}, nil
	}
}

func executeExpand(params map[string]string, content *string, _ *macro.Context) ([]block.Block, error) {
	return []block.Block{block.NewGroup(groupParams("expand", params, "title"), parseContent(content)...)}, nil
}

// groupParams builds group parameters from a class and the listed macro
// parameters that are set.
func groupParams(class string, params map[string]string, keep ...string) map[string]string {
	out := map[string]string{"class": class}
	for _, k := range keep {
		if v := params[k]; v != "" {
			out[k] = v
		}
	}
	return out
}

func parseContent(content *string) []block.Block {
	if content == nil {
		return nil
	}
	// Warnings only report orphan close tags, which are kept as text.
	blocks, _ := wiki.ParseBlocks(*content)
	return blocks
}
