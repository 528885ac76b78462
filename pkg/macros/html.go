package macros

import (
	"fmt"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"

	"github.com/open-cli-collective/wikimacro/pkg/block"
	"github.com/open-cli-collective/wikimacro/pkg/macro"
)

// executeHTML converts HTML content to markdown and parses the result.
func executeHTML(_ map[string]string, content *string, _ *macro.Context) ([]block.Block, error) {
	if content == nil || *content == "" {
		return nil, nil
	}

	markdown, err := htmltomarkdown.ConvertString(*content)
	if err != nil {
		return nil, fmt.Errorf("converting html: %w", err)
	}
	return markdownBlocks([]byte(markdown)), nil
}
