package macros

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/open-cli-collective/wikimacro/pkg/block"
	"github.com/open-cli-collective/wikimacro/pkg/macro"
)

const tocPriority = 10

type tocEntry struct {
	level int
	text  string
}

// executeTOC lists the headings of the document, nested by level.
func executeTOC(params map[string]string, _ *string, ctx *macro.Context) ([]block.Block, error) {
	minLevel, err := levelParam(params, "minLevel", 1)
	if err != nil {
		return nil, err
	}
	maxLevel, err := levelParam(params, "maxLevel", 6)
	if err != nil {
		return nil, err
	}
	if minLevel > maxLevel {
		return nil, fmt.Errorf("minLevel %d is greater than maxLevel %d", minLevel, maxLevel)
	}

	var entries []tocEntry
	for _, h := range block.Collect[*block.Heading](ctx.Document, true) {
		if h.Level < minLevel || h.Level > maxLevel {
			continue
		}
		if text := plainText(h); text != "" {
			entries = append(entries, tocEntry{level: h.Level, text: text})
		}
	}
	if len(entries) == 0 {
		return nil, nil
	}

	level := entries[0].level
	for _, e := range entries {
		level = min(level, e.level)
	}
	i := 0
	return []block.Block{buildTOC(entries, &i, level)}, nil
}

func levelParam(params map[string]string, key string, def int) (int, error) {
	raw, ok := params[key]
	if !ok || raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 || n > 6 {
		return 0, fmt.Errorf("invalid %s %q: must be a number between 1 and 6", key, raw)
	}
	return n, nil
}

// buildTOC consumes entries from *i while they are at least level deep.
// Deeper entries nest under the preceding item.
func buildTOC(entries []tocEntry, i *int, level int) *block.List {
	var items []block.Block
	var current []block.Block
	flush := func() {
		if current != nil {
			items = append(items, block.NewListItem(current...))
			current = nil
		}
	}

	for *i < len(entries) {
		e := entries[*i]
		if e.level < level {
			break
		}
		if e.level > level && current != nil {
			current = append(current, buildTOC(entries, i, e.level))
			continue
		}
		flush()
		current = block.Words(e.text)
		*i++
	}
	flush()
	return block.NewList(false, items...)
}

// plainText flattens the text of b's descendants.
func plainText(b block.Block) string {
	var sb strings.Builder
	block.Walk(b, func(n block.Block) bool {
		switch v := n.(type) {
		case *block.Word:
			sb.WriteString(v.Text)
		case *block.Space, *block.NewLine:
			sb.WriteByte(' ')
		case *block.Verbatim:
			sb.WriteString(v.Text)
		case *block.Macro:
			return false
		}
		return true
	})
	return strings.Join(strings.Fields(sb.String()), " ")
}
