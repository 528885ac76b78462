// Package render turns a block tree into text.
//
// Renderers are Listeners: Traverse walks the tree and reports one event
// per block. A marker produces a begin/end pair around its children, while
// a macro that was never executed produces a single macro event.
package render

import (
	"github.com/open-cli-collective/wikimacro/pkg/block"
)

// Listener receives the events of a tree walk.
type Listener interface {
	BeginDocument()
	EndDocument()
	BeginParagraph()
	EndParagraph()
	BeginHeading(level int)
	EndHeading(level int)
	BeginGroup(params map[string]string)
	EndGroup(params map[string]string)
	BeginList(ordered bool)
	EndList(ordered bool)
	BeginListItem()
	EndListItem()
	BeginMacroMarker(call block.MacroCall)
	EndMacroMarker(call block.MacroCall)
	OnMacro(call block.MacroCall)
	OnVerbatim(text string, inline bool)
	OnWord(text string)
	OnSpace()
	OnNewLine()
}

// Traverse emits the events of b and its descendants to l.
func Traverse(b block.Block, l Listener) {
	switch n := b.(type) {
	case *block.Document:
		l.BeginDocument()
		traverseChildren(n, l)
		l.EndDocument()
	case *block.Paragraph:
		l.BeginParagraph()
		traverseChildren(n, l)
		l.EndParagraph()
	case *block.Heading:
		l.BeginHeading(n.Level)
		traverseChildren(n, l)
		l.EndHeading(n.Level)
	case *block.Group:
		l.BeginGroup(n.Params)
		traverseChildren(n, l)
		l.EndGroup(n.Params)
	case *block.List:
		l.BeginList(n.Ordered)
		traverseChildren(n, l)
		l.EndList(n.Ordered)
	case *block.ListItem:
		l.BeginListItem()
		traverseChildren(n, l)
		l.EndListItem()
	case *block.MacroMarker:
		l.BeginMacroMarker(n.MacroCall)
		traverseChildren(n, l)
		l.EndMacroMarker(n.MacroCall)
	case *block.Macro:
		l.OnMacro(n.MacroCall)
	case *block.Verbatim:
		l.OnVerbatim(n.Text, n.Inline)
	case *block.Word:
		l.OnWord(n.Text)
	case *block.Space:
		l.OnSpace()
	case *block.NewLine:
		l.OnNewLine()
	}
}

func traverseChildren(b block.Block, l Listener) {
	for _, c := range b.Children() {
		Traverse(c, l)
	}
}
