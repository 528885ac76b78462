package block

import "maps"

// Document is the root of a parsed page.
type Document struct{ node }

func NewDocument(children ...Block) *Document {
	b := &Document{}
	b.init(b, children)
	return b
}

func (*Document) Kind() Kind { return KindDocument }

// Paragraph groups inline content.
type Paragraph struct{ node }

func NewParagraph(children ...Block) *Paragraph {
	b := &Paragraph{}
	b.init(b, children)
	return b
}

func (*Paragraph) Kind() Kind { return KindParagraph }

// Heading is a section title of level 1 to 6.
type Heading struct {
	node
	Level int
}

func NewHeading(level int, children ...Block) *Heading {
	b := &Heading{Level: level}
	b.init(b, children)
	return b
}

func (*Heading) Kind() Kind { return KindHeading }

// Group is a generic container carrying presentation parameters, used by
// panel-like macros.
type Group struct {
	node
	Params map[string]string
}

func NewGroup(params map[string]string, children ...Block) *Group {
	b := &Group{Params: maps.Clone(params)}
	b.init(b, children)
	return b
}

func (*Group) Kind() Kind { return KindGroup }

// List holds ListItem children.
type List struct {
	node
	Ordered bool
}

func NewList(ordered bool, items ...Block) *List {
	b := &List{Ordered: ordered}
	b.init(b, items)
	return b
}

func (*List) Kind() Kind { return KindList }

type ListItem struct{ node }

func NewListItem(children ...Block) *ListItem {
	b := &ListItem{}
	b.init(b, children)
	return b
}

func (*ListItem) Kind() Kind { return KindListItem }

// Verbatim is text that is never interpreted.
type Verbatim struct {
	node
	Text   string
	Inline bool
}

func NewVerbatim(text string, inline bool) *Verbatim {
	b := &Verbatim{Text: text, Inline: inline}
	b.init(b, nil)
	return b
}

func (*Verbatim) Kind() Kind { return KindVerbatim }

type Word struct {
	node
	Text string
}

func NewWord(text string) *Word {
	b := &Word{Text: text}
	b.init(b, nil)
	return b
}

func (*Word) Kind() Kind { return KindWord }

type Space struct{ node }

func NewSpace() *Space {
	b := &Space{}
	b.init(b, nil)
	return b
}

func (*Space) Kind() Kind { return KindSpace }

type NewLine struct{ node }

func NewNewLine() *NewLine {
	b := &NewLine{}
	b.init(b, nil)
	return b
}

func (*NewLine) Kind() Kind { return KindNewLine }

// MacroCall describes one macro invocation as written in the source.
type MacroCall struct {
	ID     string
	Params map[string]string
	// Content is meaningful only when HasContent is set; a macro written
	// in self-closing form has no content at all.
	Content    string
	HasContent bool
	Inline     bool
}

// Macro is an unexpanded macro invocation. It has no children and is never
// mutated; the engine replaces it wholesale.
type Macro struct {
	node
	MacroCall
}

// NewMacro creates a macro block without content.
func NewMacro(id string, params map[string]string, inline bool) *Macro {
	return newMacro(MacroCall{ID: id, Params: params, Inline: inline})
}

// NewMacroWithContent creates a macro block with content.
func NewMacroWithContent(id string, params map[string]string, content string, inline bool) *Macro {
	return newMacro(MacroCall{ID: id, Params: params, Content: content, HasContent: true, Inline: inline})
}

func newMacro(call MacroCall) *Macro {
	if call.Params == nil {
		call.Params = map[string]string{}
	} else {
		call.Params = maps.Clone(call.Params)
	}
	b := &Macro{MacroCall: call}
	b.init(b, nil)
	return b
}

func (*Macro) Kind() Kind { return KindMacro }

// MacroMarker wraps the output of one executed macro and keeps the call
// that produced it.
type MacroMarker struct {
	node
	MacroCall
}

func NewMacroMarker(call MacroCall, children ...Block) *MacroMarker {
	call.Params = maps.Clone(call.Params)
	if call.Params == nil {
		call.Params = map[string]string{}
	}
	b := &MacroMarker{MacroCall: call}
	b.init(b, children)
	return b
}

func (*MacroMarker) Kind() Kind { return KindMacroMarker }

// Words splits text into Word blocks separated by one Space per run of
// blanks. Leading and trailing blanks also yield a Space.
func Words(text string) []Block {
	var out []Block
	start := -1
	inSpace := false
	for i, r := range text {
		if r == ' ' || r == '\t' {
			if start >= 0 {
				out = append(out, NewWord(text[start:i]))
				start = -1
			}
			if !inSpace {
				out = append(out, NewSpace())
				inSpace = true
			}
			continue
		}
		inSpace = false
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		out = append(out, NewWord(text[start:]))
	}
	return out
}
