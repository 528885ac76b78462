package render

import (
	"bytes"
	"encoding/xml"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-cli-collective/wikimacro/pkg/block"
)

func sampleDocument() *block.Document {
	return block.NewDocument(
		block.NewHeading(1, block.NewWord("Title")),
		block.NewMacroMarker(
			block.MacroCall{ID: "info", Params: map[string]string{"title": "Hi"}, Content: "body", HasContent: true},
			block.NewGroup(map[string]string{"class": "box infomessage"},
				block.NewParagraph(block.NewWord("body")))),
		block.NewParagraph(
			block.NewWord("a"), block.NewSpace(),
			block.NewMacro("missing", nil, true)),
	)
}

func renderEvents(t *testing.T, b block.Block) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, FormatEvent, b, Options{}))
	return buf.String()
}

func TestEventRenderer(t *testing.T) {
	expected := strings.Join([]string{
		"beginDocument",
		"beginHeading [1]",
		"onWord [Title]",
		"endHeading [1]",
		"beginMacroMarkerStandalone [info] [title=Hi] [body]",
		"beginGroup [class=box infomessage]",
		"beginParagraph",
		"onWord [body]",
		"endParagraph",
		"endGroup [class=box infomessage]",
		"endMacroMarkerStandalone [info] [title=Hi] [body]",
		"beginParagraph",
		"onWord [a]",
		"onSpace",
		"onMacroInline [missing] []",
		"endParagraph",
		"endDocument",
	}, "\n")

	assert.Equal(t, expected, renderEvents(t, sampleDocument()))
}

func TestEventRenderer_ParamsAreSorted(t *testing.T) {
	doc := block.NewDocument(block.NewMacro("m", map[string]string{"b": "2", "a": "1"}, false))
	assert.Equal(t, "beginDocument\nonMacroStandalone [m] [a=1|b=2]\nendDocument", renderEvents(t, doc))
}

func TestEventRenderer_ListsAndVerbatim(t *testing.T) {
	doc := block.NewDocument(
		block.NewList(true, block.NewListItem(block.NewWord("one"))),
		block.NewVerbatim("x < y", false),
		block.NewParagraph(block.NewWord("l1"), block.NewNewLine(), block.NewVerbatim("v", true)),
	)

	out := renderEvents(t, doc)
	assert.Contains(t, out, "beginList [NUMBERED]\nbeginListItem\nonWord [one]\nendListItem\nendList [NUMBERED]")
	assert.Contains(t, out, "onVerbatimStandalone [x < y]")
	assert.Contains(t, out, "onNewLine\nonVerbatimInline [v]")
}

func TestXHTMLRenderer(t *testing.T) {
	html := ToXHTML(sampleDocument())

	assert.Contains(t, html, "<h1>Title</h1>")
	assert.Contains(t, html, `<div class="box infomessage"><p>body</p></div>`)
	assert.Contains(t, html, `<p>a <macro name="missing" inline="true"></macro></p>`)
	assert.NotContains(t, html, `name="info"`)
}

func TestXHTMLRenderer_UnresolvedMacroBody(t *testing.T) {
	doc := block.NewDocument(block.NewMacroWithContent("code",
		map[string]string{"title": "A & B <test>"}, "x < 1", false))

	html := ToXHTML(doc)
	assert.Contains(t, html, `<parameter name="title">A &amp; B &lt;test&gt;</parameter>`)
	assert.Contains(t, html, `<body><![CDATA[x < 1]]></body>`)
}

func TestXHTMLRenderer_CDATATerminatorInBody(t *testing.T) {
	doc := block.NewDocument(block.NewMacroWithContent("code", nil, "a]]>b<x", false))

	html := ToXHTML(doc)
	assert.Equal(t, `<macro name="code"><body><![CDATA[a]]]]><![CDATA[>b<x]]></body></macro>`, html)

	var parsed struct {
		Body string `xml:"body"`
	}
	require.NoError(t, xml.Unmarshal([]byte(html), &parsed))
	assert.Equal(t, "a]]>b<x", parsed.Body)
}

func TestXHTMLRenderer_Escapes(t *testing.T) {
	doc := block.NewDocument(block.NewParagraph(block.NewWord(`<b>&"`)))
	assert.Equal(t, "<p>&lt;b&gt;&amp;&quot;</p>", ToXHTML(doc))
}

func TestWikiRenderer(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, FormatWiki, sampleDocument(), Options{}))

	expected := "= Title =\n\n(% class=\"box infomessage\" %)(((\nbody\n)))\n\na {{missing/}}"
	assert.Equal(t, expected, buf.String())
}

func TestWikiRenderer_PreserveMacros(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, FormatWiki, sampleDocument(), Options{PreserveMacros: true}))

	out := buf.String()
	assert.Contains(t, out, "{{info title=Hi}}body{{/info}}")
	assert.NotContains(t, out, "(((")
}

func TestWikiRenderer_StandaloneMarkerWithInlineChildren(t *testing.T) {
	doc := block.NewDocument(
		block.NewParagraph(block.NewWord("a")),
		block.NewMacroMarker(block.MacroCall{ID: "word"},
			block.NewWord("x"), block.NewSpace(), block.NewVerbatim("y", true)),
		block.NewMacroMarker(block.MacroCall{ID: "empty"}),
		block.NewParagraph(block.NewWord("b"),
			block.NewMacroMarker(block.MacroCall{ID: "inline", Inline: true}, block.NewWord("c"))),
	)

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, FormatWiki, doc, Options{}))
	assert.Equal(t, "a\n\nx {{{y}}}\n\nbc", buf.String())
}

func TestWikiRenderer_Lists(t *testing.T) {
	doc := block.NewDocument(block.NewList(false,
		block.NewListItem(block.NewWord("a")),
		block.NewListItem(block.NewWord("b"),
			block.NewList(true, block.NewListItem(block.NewWord("c")))),
	))

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, FormatWiki, doc, Options{}))
	assert.Equal(t, "* a\n* b\n11. c", buf.String())
}

func TestRenderMacroCall(t *testing.T) {
	tests := []struct {
		name string
		call block.MacroCall
		want string
	}{
		{"self closing", block.MacroCall{ID: "toc"}, "{{toc/}}"},
		{"params sorted", block.MacroCall{ID: "toc", Params: map[string]string{"minLevel": "1", "maxLevel": "3"}}, "{{toc maxLevel=3 minLevel=1/}}"},
		{"quoted value", block.MacroCall{ID: "info", Params: map[string]string{"title": "Hello World"}}, `{{info title="Hello World"/}}`},
		{"escaped quote", block.MacroCall{ID: "info", Params: map[string]string{"title": `say "hi"`}}, `{{info title="say \"hi\""/}}`},
		{"with content", block.MacroCall{ID: "code", Content: "x", HasContent: true}, "{{code}}x{{/code}}"},
		{"empty content", block.MacroCall{ID: "code", HasContent: true}, "{{code}}{{/code}}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RenderMacroCall(tt.call))
		})
	}
}

func TestToMarkdown(t *testing.T) {
	doc := block.NewDocument(
		block.NewHeading(1, block.NewWord("Title")),
		block.NewParagraph(block.NewWord("hello"), block.NewSpace(), block.NewWord("world")),
	)

	md, err := ToMarkdown(doc)
	require.NoError(t, err)
	assert.Contains(t, md, "# Title")
	assert.Contains(t, md, "hello world")

	empty, err := ToMarkdown(block.NewDocument())
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestParseFormat(t *testing.T) {
	for _, f := range Formats() {
		got, err := ParseFormat(f)
		require.NoError(t, err)
		assert.Equal(t, Format(f), got)
	}

	_, err := ParseFormat("pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid render format")

	var buf bytes.Buffer
	assert.Error(t, Render(&buf, Format("pdf"), block.NewDocument(), Options{}))
}
