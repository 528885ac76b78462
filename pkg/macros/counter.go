package macros

import (
	"strconv"

	"github.com/open-cli-collective/wikimacro/pkg/block"
	"github.com/open-cli-collective/wikimacro/pkg/macro"
)

func executeCounter(_ map[string]string, _ *string, ctx *macro.Context) ([]block.Block, error) {
	word := block.NewWord(strconv.Itoa(ctx.NextCounter()))
	if ctx.Inline() {
		return []block.Block{word}, nil
	}
	return []block.Block{block.NewParagraph(word)}, nil
}
