package macros

import (
	"github.com/open-cli-collective/wikimacro/pkg/block"
	"github.com/open-cli-collective/wikimacro/pkg/macro"
)

// executeCode renders content verbatim. A standalone call is wrapped in a
// group carrying the language.
func executeCode(params map[string]string, content *string, ctx *macro.Context) ([]block.Block, error) {
	var text string
	if content != nil {
		text = *content
	}

	if ctx.Inline() {
		return []block.Block{block.NewVerbatim(text, true)}, nil
	}
	return []block.Block{
		block.NewGroup(groupParams("code", params, "language", "title"), block.NewVerbatim(text, false)),
	}, nil
}
