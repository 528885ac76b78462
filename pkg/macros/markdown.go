package macros

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"github.com/open-cli-collective/wikimacro/pkg/block"
	"github.com/open-cli-collective/wikimacro/pkg/macro"
)

// markdownParser is a goldmark parser configured for block conversion.
var markdownParser = goldmark.New(
	goldmark.WithExtensions(
		extension.Table,
		extension.Strikethrough,
	),
)

func executeMarkdown(_ map[string]string, content *string, _ *macro.Context) ([]block.Block, error) {
	if content == nil {
		return nil, nil
	}
	return markdownBlocks([]byte(*content)), nil
}

// markdownBlocks parses markdown into detached blocks.
func markdownBlocks(source []byte) []block.Block {
	if len(source) == 0 {
		return nil
	}
	doc := markdownParser.Parser().Parse(text.NewReader(source))
	c := &blockConverter{source: source}
	return c.convertChildren(doc)
}

// blockConverter holds state during AST conversion.
type blockConverter struct {
	source []byte
}

func (c *blockConverter) convertChildren(n ast.Node) []block.Block {
	var blocks []block.Block
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		if b := c.convertNode(child); b != nil {
			blocks = append(blocks, b)
		}
	}
	return blocks
}

func (c *blockConverter) convertNode(n ast.Node) block.Block {
	switch node := n.(type) {
	case *ast.Paragraph, *ast.TextBlock:
		content := c.convertInlineChildren(node)
		if len(content) == 0 {
			return nil
		}
		return block.NewParagraph(content...)
	case *ast.Heading:
		return block.NewHeading(node.Level, c.convertInlineChildren(node)...)
	case *ast.List:
		return block.NewList(node.IsOrdered(), c.convertChildren(node)...)
	case *ast.ListItem:
		return block.NewListItem(c.convertChildren(node)...)
	case *ast.FencedCodeBlock:
		params := map[string]string{"class": "code"}
		if lang := string(node.Language(c.source)); lang != "" {
			params["language"] = lang
		}
		return block.NewGroup(params, block.NewVerbatim(c.lines(node), false))
	case *ast.CodeBlock:
		return block.NewGroup(map[string]string{"class": "code"}, block.NewVerbatim(c.lines(node), false))
	case *ast.Blockquote:
		return block.NewGroup(map[string]string{"class": "quote"}, c.convertChildren(node)...)
	case *ast.ThematicBreak:
		return block.NewGroup(map[string]string{"class": "rule"})
	case *extast.Table:
		return c.convertTable(node)
	default:
		return nil
	}
}

// lines joins the raw lines of a code block, without the final newline.
func (c *blockConverter) lines(n ast.Node) string {
	var code strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		code.Write(line.Value(c.source))
	}
	return strings.TrimSuffix(code.String(), "\n")
}

// convertTable maps rows to groups of cell paragraphs.
func (c *blockConverter) convertTable(n *extast.Table) block.Block {
	var rows []block.Block
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		class := "row"
		if _, ok := child.(*extast.TableHeader); ok {
			class = "header"
		}
		var cells []block.Block
		for cell := child.FirstChild(); cell != nil; cell = cell.NextSibling() {
			cells = append(cells, block.NewParagraph(c.convertInlineChildren(cell)...))
		}
		rows = append(rows, block.NewGroup(map[string]string{"class": class}, cells...))
	}
	return block.NewGroup(map[string]string{"class": "table"}, rows...)
}

func (c *blockConverter) convertInlineChildren(n ast.Node) []block.Block {
	var blocks []block.Block
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		blocks = append(blocks, c.convertInlineNode(child)...)
	}
	return blocks
}

// convertInlineNode converts an inline node. Formatting such as emphasis
// or links has no block equivalent and only its text is kept.
func (c *blockConverter) convertInlineNode(n ast.Node) []block.Block {
	switch node := n.(type) {
	case *ast.Text:
		out := block.Words(string(node.Segment.Value(c.source)))
		if node.SoftLineBreak() || node.HardLineBreak() {
			out = append(out, block.NewNewLine())
		}
		return out

	case *ast.String:
		return block.Words(string(node.Value))

	case *ast.CodeSpan:
		var sb strings.Builder
		for child := node.FirstChild(); child != nil; child = child.NextSibling() {
			if t, ok := child.(*ast.Text); ok {
				sb.Write(t.Segment.Value(c.source))
			}
		}
		return []block.Block{block.NewVerbatim(sb.String(), true)}

	case *ast.AutoLink:
		return []block.Block{block.NewWord(string(node.URL(c.source)))}

	case *ast.RawHTML:
		return nil

	default:
		return c.convertInlineChildren(n)
	}
}
