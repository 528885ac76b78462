package render

import (
	"sort"
	"strconv"
	"strings"

	"github.com/open-cli-collective/wikimacro/pkg/block"
)

// XHTMLRenderer renders a tree as XHTML. Markers are transparent: only the
// content a macro produced shows. A macro that was never executed is kept
// as a <macro> element so that it stays visible in the output.
type XHTMLRenderer struct {
	sb strings.Builder
}

func NewXHTMLRenderer() *XHTMLRenderer { return &XHTMLRenderer{} }

// String returns everything rendered so far.
func (r *XHTMLRenderer) String() string { return r.sb.String() }

func (r *XHTMLRenderer) BeginDocument()  {}
func (r *XHTMLRenderer) EndDocument()    {}
func (r *XHTMLRenderer) BeginParagraph() { r.sb.WriteString("<p>") }
func (r *XHTMLRenderer) EndParagraph()   { r.sb.WriteString("</p>") }

func (r *XHTMLRenderer) BeginHeading(level int) {
	r.sb.WriteString("<h" + strconv.Itoa(clampLevel(level)) + ">")
}

func (r *XHTMLRenderer) EndHeading(level int) {
	r.sb.WriteString("</h" + strconv.Itoa(clampLevel(level)) + ">")
}

func (r *XHTMLRenderer) BeginGroup(params map[string]string) {
	r.sb.WriteString("<div")
	keys := sortedKeys(params)
	for _, k := range keys {
		r.sb.WriteString(" ")
		r.sb.WriteString(k)
		r.sb.WriteString(`="`)
		r.sb.WriteString(escapeXML(params[k]))
		r.sb.WriteString(`"`)
	}
	r.sb.WriteString(">")
}

func (r *XHTMLRenderer) EndGroup(map[string]string) { r.sb.WriteString("</div>") }

func (r *XHTMLRenderer) BeginList(ordered bool) {
	if ordered {
		r.sb.WriteString("<ol>")
		return
	}
	r.sb.WriteString("<ul>")
}

func (r *XHTMLRenderer) EndList(ordered bool) {
	if ordered {
		r.sb.WriteString("</ol>")
		return
	}
	r.sb.WriteString("</ul>")
}

func (r *XHTMLRenderer) BeginListItem() { r.sb.WriteString("<li>") }
func (r *XHTMLRenderer) EndListItem()   { r.sb.WriteString("</li>") }

func (r *XHTMLRenderer) BeginMacroMarker(block.MacroCall) {}
func (r *XHTMLRenderer) EndMacroMarker(block.MacroCall)   {}

// OnMacro writes an unexecuted macro with its parameters and raw content.
func (r *XHTMLRenderer) OnMacro(call block.MacroCall) {
	r.sb.WriteString(`<macro name="`)
	r.sb.WriteString(escapeXML(call.ID))
	r.sb.WriteString(`"`)
	if call.Inline {
		r.sb.WriteString(` inline="true"`)
	}
	r.sb.WriteString(">")

	for _, key := range sortedKeys(call.Params) {
		r.sb.WriteString(`<parameter name="`)
		r.sb.WriteString(escapeXML(key))
		r.sb.WriteString(`">`)
		r.sb.WriteString(escapeXML(call.Params[key]))
		r.sb.WriteString(`</parameter>`)
	}

	if call.HasContent {
		r.sb.WriteString(`<body><![CDATA[`)
		// A CDATA section cannot hold its own terminator; split it across two.
		r.sb.WriteString(strings.ReplaceAll(call.Content, "]]>", "]]]]><![CDATA[>"))
		r.sb.WriteString(`]]></body>`)
	}

	r.sb.WriteString(`</macro>`)
}

func (r *XHTMLRenderer) OnVerbatim(text string, inline bool) {
	if inline {
		r.sb.WriteString("<code>" + escapeXML(text) + "</code>")
		return
	}
	r.sb.WriteString("<pre>" + escapeXML(text) + "</pre>")
}

func (r *XHTMLRenderer) OnWord(text string) { r.sb.WriteString(escapeXML(text)) }
func (r *XHTMLRenderer) OnSpace()           { r.sb.WriteString(" ") }
func (r *XHTMLRenderer) OnNewLine()         { r.sb.WriteString("<br/>") }

// escapeXML escapes special XML characters in a string.
func escapeXML(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, "\"", "&quot;")
	return s
}

func clampLevel(level int) int {
	return min(max(level, 1), 6)
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
