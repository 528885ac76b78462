// Package wiki parses a small wiki syntax into block trees.
//
// Supported markup: paragraphs separated by blank lines, "= Heading ="
// lines, "* item" and "1. item" lists, {{{verbatim}}} and macro calls
// written {{id k=v/}} or {{id k=v}}content{{/id}}. A paragraph made of a
// single macro call is a standalone macro; any other macro is inline.
package wiki

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/open-cli-collective/wikimacro/pkg/block"
)

var (
	headingOpen  = regexp.MustCompile(`^\s*(={1,6})\s*`)
	headingClose = regexp.MustCompile(`\s*=+\s*$`)
	listPrefix   = regexp.MustCompile(`^\s*(\*+|1+\.)\s+`)
)

// Result contains the parsed document and any warnings.
type Result struct {
	Document *block.Document
	Warnings []string
}

// Parse parses input into a document.
func Parse(input string) *Result {
	blocks, warnings := ParseBlocks(input)
	return &Result{Document: block.NewDocument(blocks...), Warnings: warnings}
}

// ParseBlocks parses input into detached top-level blocks, for callers that
// insert them into another tree.
func ParseBlocks(input string) ([]block.Block, []string) {
	p := &parser{input: input}
	items := p.scan(Tokenize(input))

	var blocks []block.Block
	for _, group := range paragraphs(splitLines(items)) {
		blocks = append(blocks, p.buildGroup(group)...)
	}
	return blocks, p.warnings
}

type parser struct {
	input    string
	warnings []string
}

func (p *parser) addWarning(format string, args ...any) {
	p.warnings = append(p.warnings, fmt.Sprintf(format, args...))
}

// item is a piece of a line: text, a macro call, or verbatim text.
type item struct {
	text     string
	call     *block.MacroCall
	verbatim *string
}

func (it item) isText() bool { return it.call == nil && it.verbatim == nil }

// scan pairs open and close tags into macro calls. Content is kept raw: the
// tokens between an open tag and its matching close tag are not parsed.
func (p *parser) scan(tokens []Token) []item {
	var items []item
	addText := func(text string) {
		if text == "" {
			return
		}
		// Merge adjacent text items
		if n := len(items); n > 0 && items[n-1].isText() {
			items[n-1].text += text
			return
		}
		items = append(items, item{text: text})
	}

	for i := 0; i < len(tokens); i++ {
		token := tokens[i]
		switch token.Type {
		case TokenText:
			addText(token.Text)

		case TokenVerbatim:
			text := token.Text
			items = append(items, item{verbatim: &text})

		case TokenSelfClose:
			items = append(items, item{call: &block.MacroCall{ID: token.MacroName, Params: token.Parameters}})

		case TokenOpenTag:
			call := &block.MacroCall{ID: token.MacroName, Params: token.Parameters}
			if j := matchClose(tokens, i); j > 0 {
				call.Content = p.input[token.End:tokens[j].Position]
				call.HasContent = true
				i = j
			}
			items = append(items, item{call: call})

		case TokenCloseTag:
			p.addWarning("orphan close tag: {{/%s}}", token.MacroName)
			addText(token.Text)
		}
	}
	return items
}

// matchClose returns the index of the close tag matching the open tag at
// open, or -1. Nested tags of the same name are balanced.
func matchClose(tokens []Token, open int) int {
	name := tokens[open].MacroName
	depth := 1
	for j := open + 1; j < len(tokens); j++ {
		if tokens[j].MacroName != name {
			continue
		}
		switch tokens[j].Type {
		case TokenOpenTag:
			depth++
		case TokenCloseTag:
			depth--
			if depth == 0 {
				return j
			}
		}
	}
	return -1
}

// splitLines breaks items on newlines found in text items. Macro and
// verbatim items never split, whatever their content.
func splitLines(items []item) [][]item {
	lines := [][]item{nil}
	for _, it := range items {
		if !it.isText() {
			lines[len(lines)-1] = append(lines[len(lines)-1], it)
			continue
		}
		parts := strings.Split(it.text, "\n")
		for i, part := range parts {
			if i > 0 {
				lines = append(lines, nil)
			}
			part = strings.TrimSuffix(part, "\r")
			if part != "" {
				lines[len(lines)-1] = append(lines[len(lines)-1], item{text: part})
			}
		}
	}
	return lines
}

func isBlank(line []item) bool {
	for _, it := range line {
		if !it.isText() || strings.TrimSpace(it.text) != "" {
			return false
		}
	}
	return true
}

// paragraphs groups consecutive non-blank lines.
func paragraphs(lines [][]item) [][][]item {
	var groups [][][]item
	var current [][]item
	for _, line := range lines {
		if isBlank(line) {
			if current != nil {
				groups = append(groups, current)
				current = nil
			}
			continue
		}
		current = append(current, line)
	}
	if current != nil {
		groups = append(groups, current)
	}
	return groups
}

// buildGroup turns one group of lines into blocks.
func (p *parser) buildGroup(group [][]item) []block.Block {
	if len(group) == 1 {
		if only, ok := soleAtom(group[0]); ok {
			if only.call != nil {
				return []block.Block{newMacroBlock(*only.call, false)}
			}
			return []block.Block{block.NewVerbatim(*only.verbatim, false)}
		}
		if h := p.heading(group[0]); h != nil {
			return []block.Block{h}
		}
	}

	if list := p.list(group); list != nil {
		return []block.Block{list}
	}

	var children []block.Block
	for i, line := range group {
		if i > 0 {
			children = append(children, block.NewNewLine())
		}
		children = append(children, p.inline(trimLine(line))...)
	}
	return []block.Block{block.NewParagraph(children...)}
}

// soleAtom returns the only macro or verbatim item of a line made of
// nothing else but whitespace.
func soleAtom(line []item) (item, bool) {
	var found *item
	for i := range line {
		if line[i].isText() {
			if strings.TrimSpace(line[i].text) != "" {
				return item{}, false
			}
			continue
		}
		if found != nil {
			return item{}, false
		}
		found = &line[i]
	}
	if found == nil {
		return item{}, false
	}
	return *found, true
}

func (p *parser) heading(line []item) block.Block {
	if len(line) == 0 || !line[0].isText() {
		return nil
	}
	m := headingOpen.FindStringSubmatch(line[0].text)
	if m == nil {
		return nil
	}

	items := append([]item(nil), line...)
	items[0].text = items[0].text[len(m[0]):]
	if last := len(items) - 1; items[last].isText() {
		items[last].text = headingClose.ReplaceAllString(items[last].text, "")
	}
	return block.NewHeading(len(m[1]), p.inline(trimLine(items))...)
}

type listLine struct {
	ordered bool
	level   int
	items   []item
}

// list builds a list when every line of the group starts with a list
// prefix.
func (p *parser) list(group [][]item) block.Block {
	lines := make([]listLine, 0, len(group))
	for _, line := range group {
		if len(line) == 0 || !line[0].isText() {
			return nil
		}
		m := listPrefix.FindStringSubmatch(line[0].text)
		if m == nil {
			return nil
		}
		items := append([]item(nil), line...)
		items[0].text = items[0].text[len(m[0]):]

		ll := listLine{items: items, level: len(m[1])}
		if strings.HasSuffix(m[1], ".") {
			ll.ordered = true
			ll.level = len(m[1]) - 1
		}
		lines = append(lines, ll)
	}

	level := lines[0].level
	for _, l := range lines {
		level = min(level, l.level)
	}
	i := 0
	return p.buildList(lines, &i, level)
}

func (p *parser) buildList(lines []listLine, i *int, level int) *block.List {
	ordered := lines[*i].ordered
	var items []block.Block
	var current []block.Block
	flush := func() {
		if current != nil {
			items = append(items, block.NewListItem(current...))
			current = nil
		}
	}

	for *i < len(lines) {
		l := lines[*i]
		if l.level < level {
			break
		}
		if l.level > level && current != nil {
			current = append(current, p.buildList(lines, i, l.level))
			continue
		}
		flush()
		current = append([]block.Block{}, p.inline(trimLine(l.items))...)
		*i++
	}
	flush()
	return block.NewList(ordered, items...)
}

// trimLine drops whitespace at both ends of a line.
func trimLine(line []item) []item {
	out := append([]item(nil), line...)
	if len(out) > 0 && out[0].isText() {
		out[0].text = strings.TrimLeft(out[0].text, " \t")
	}
	if n := len(out); n > 0 && out[n-1].isText() {
		out[n-1].text = strings.TrimRight(out[n-1].text, " \t")
	}
	return out
}

// inline converts line items to inline blocks.
func (p *parser) inline(line []item) []block.Block {
	var out []block.Block
	for _, it := range line {
		switch {
		case it.call != nil:
			out = append(out, newMacroBlock(*it.call, true))
		case it.verbatim != nil:
			out = append(out, block.NewVerbatim(*it.verbatim, true))
		default:
			out = append(out, block.Words(it.text)...)
		}
	}
	return out
}

func newMacroBlock(call block.MacroCall, inline bool) *block.Macro {
	if call.HasContent {
		return block.NewMacroWithContent(call.ID, call.Params, call.Content, inline)
	}
	return block.NewMacro(call.ID, call.Params, inline)
}
