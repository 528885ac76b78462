package wiki

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-cli-collective/wikimacro/pkg/block"
	"github.com/open-cli-collective/wikimacro/pkg/render"
)

func events(t *testing.T, input string) string {
	t.Helper()
	result := Parse(input)
	var buf bytes.Buffer
	require.NoError(t, render.Render(&buf, render.FormatEvent, result.Document, render.Options{}))
	return buf.String()
}

func lines(l ...string) string {
	return strings.Join(l, "\n")
}

func TestParse_Empty(t *testing.T) {
	result := Parse("")
	assert.Empty(t, result.Document.Children())
	assert.Empty(t, result.Warnings)

	result = Parse("\n\n  \n")
	assert.Empty(t, result.Document.Children())
}

func TestParse_Paragraphs(t *testing.T) {
	expected := lines(
		"beginDocument",
		"beginParagraph",
		"onWord [hello]",
		"onSpace",
		"onWord [world]",
		"onNewLine",
		"onWord [again]",
		"endParagraph",
		"beginParagraph",
		"onWord [second]",
		"endParagraph",
		"endDocument",
	)
	assert.Equal(t, expected, events(t, "hello   world\nagain\n\n\nsecond\n"))
}

func TestParse_StandaloneMacro(t *testing.T) {
	expected := lines(
		"beginDocument",
		"onMacroStandalone [testsimplemacro] []",
		"endDocument",
	)
	assert.Equal(t, expected, events(t, "{{testsimplemacro/}}"))
	assert.Equal(t, expected, events(t, "  {{testsimplemacro/}}  \n"))
}

func TestParse_InlineMacro(t *testing.T) {
	expected := lines(
		"beginDocument",
		"beginParagraph",
		"onWord [a]",
		"onSpace",
		"onMacroInline [testcontentmacro] [] [x]",
		"onSpace",
		"onWord [b]",
		"endParagraph",
		"endDocument",
	)
	assert.Equal(t, expected, events(t, "a {{testcontentmacro}}x{{/testcontentmacro}} b"))
}

func TestParse_TwoMacrosOnALineAreInline(t *testing.T) {
	doc := Parse("{{a/}}{{b/}}").Document
	macros := block.Collect[*block.Macro](doc, true)
	require.Len(t, macros, 2)
	for _, m := range macros {
		assert.True(t, m.Inline)
	}
}

func TestParse_MacroContentIsRaw(t *testing.T) {
	input := "{{info title=\"T\"}}\nline 1\n\n{{code}}x{{/code}}\n{{/info}}"
	doc := Parse(input).Document

	children := doc.Children()
	require.Len(t, children, 1)
	m, ok := children[0].(*block.Macro)
	require.True(t, ok)
	assert.Equal(t, "info", m.ID)
	assert.Equal(t, map[string]string{"title": "T"}, m.Params)
	assert.True(t, m.HasContent)
	assert.Equal(t, "\nline 1\n\n{{code}}x{{/code}}\n", m.Content)
	assert.False(t, m.Inline)
}

func TestParse_NestedSameNameMacros(t *testing.T) {
	doc := Parse("{{m}}a{{m}}b{{/m}}c{{/m}}").Document
	m := block.Collect[*block.Macro](doc, true)
	require.Len(t, m, 1)
	assert.Equal(t, "a{{m}}b{{/m}}c", m[0].Content)
}

func TestParse_UnclosedOpenTagHasNoContent(t *testing.T) {
	doc := Parse("{{info}}").Document
	m := block.Collect[*block.Macro](doc, true)
	require.Len(t, m, 1)
	assert.False(t, m[0].HasContent)
}

func TestParse_OrphanCloseTag(t *testing.T) {
	result := Parse("text {{/info}}")
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "orphan close tag")

	words := block.Collect[*block.Word](result.Document, true)
	require.Len(t, words, 2)
	assert.Equal(t, "{{/info}}", words[1].Text)
}

func TestParse_Headings(t *testing.T) {
	tests := []struct {
		input string
		level int
		text  string
	}{
		{"= Title =", 1, "Title"},
		{"== Sub ==", 2, "Sub"},
		{"=== Deep", 3, "Deep"},
		{"======= Capped =======", 6, "= Capped"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			doc := Parse(tt.input).Document
			children := doc.Children()
			require.Len(t, children, 1)
			h, ok := children[0].(*block.Heading)
			require.True(t, ok)
			assert.Equal(t, tt.level, h.Level)

			var text []string
			for _, w := range block.Collect[*block.Word](h, true) {
				text = append(text, w.Text)
			}
			assert.Equal(t, tt.text, strings.Join(text, " "))
		})
	}
}

func TestParse_HeadingWithInlineMacro(t *testing.T) {
	expected := lines(
		"beginDocument",
		"beginHeading [2]",
		"onWord [Count]",
		"onSpace",
		"onMacroInline [counter] []",
		"endHeading [2]",
		"endDocument",
	)
	assert.Equal(t, expected, events(t, "== Count {{counter/}} =="))
}

func TestParse_Lists(t *testing.T) {
	expected := lines(
		"beginDocument",
		"beginList [BULLETED]",
		"beginListItem",
		"onWord [a]",
		"endListItem",
		"beginListItem",
		"onWord [b]",
		"beginList [BULLETED]",
		"beginListItem",
		"onWord [c]",
		"endListItem",
		"endList [BULLETED]",
		"endListItem",
		"beginListItem",
		"onWord [d]",
		"endListItem",
		"endList [BULLETED]",
		"endDocument",
	)
	assert.Equal(t, expected, events(t, "* a\n* b\n** c\n* d"))
}

func TestParse_OrderedList(t *testing.T) {
	doc := Parse("1. one\n1. two").Document
	children := doc.Children()
	require.Len(t, children, 1)
	l, ok := children[0].(*block.List)
	require.True(t, ok)
	assert.True(t, l.Ordered)
	assert.Len(t, l.Children(), 2)
}

func TestParse_MixedLinesAreParagraph(t *testing.T) {
	doc := Parse("* a\nplain").Document
	children := doc.Children()
	require.Len(t, children, 1)
	assert.Equal(t, block.KindParagraph, children[0].Kind())
}

func TestParse_Verbatim(t *testing.T) {
	expected := lines(
		"beginDocument",
		"onVerbatimStandalone [a {{info}} b]",
		"beginParagraph",
		"onWord [x]",
		"onSpace",
		"onVerbatimInline [y]",
		"endParagraph",
		"endDocument",
	)
	assert.Equal(t, expected, events(t, "{{{a {{info}} b}}}\n\nx {{{y}}}"))
}

func TestParseBlocks_Detached(t *testing.T) {
	blocks, warnings := ParseBlocks("a\n\n{{b/}}")
	assert.Empty(t, warnings)
	require.Len(t, blocks, 2)
	for _, b := range blocks {
		assert.Nil(t, b.Parent())
	}
}
