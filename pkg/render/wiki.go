package render

import (
	"strings"

	"github.com/open-cli-collective/wikimacro/pkg/block"
)

// WikiRenderer renders a tree back to wiki syntax.
//
// Unexecuted macros are always written as macro calls. Markers are
// transparent unless PreserveMacros is set, in which case the call that
// produced them is written instead of their content.
type WikiRenderer struct {
	PreserveMacros bool

	sb       strings.Builder
	blocks   []int // block-level elements written per open container
	lists    []int // items written per open list
	ordered  []bool
	suppress int
	// markers records, per open marker, whether its output has started a
	// block. A standalone marker whose children are inline still needs one.
	markers []bool
}

func NewWikiRenderer(preserveMacros bool) *WikiRenderer {
	return &WikiRenderer{PreserveMacros: preserveMacros}
}

// String returns everything rendered so far.
func (r *WikiRenderer) String() string { return r.sb.String() }

// startBlock separates consecutive block-level elements by a blank line.
func (r *WikiRenderer) startBlock() {
	if len(r.blocks) == 0 {
		return
	}
	top := len(r.blocks) - 1
	if r.blocks[top] > 0 {
		r.sb.WriteString("\n\n")
	}
	r.blocks[top]++
	if n := len(r.markers); n > 0 {
		r.markers[n-1] = true
	}
}

// startInline opens a block for inline output placed directly in a
// standalone marker.
func (r *WikiRenderer) startInline() {
	if n := len(r.markers); n > 0 && !r.markers[n-1] {
		r.startBlock()
	}
}

func (r *WikiRenderer) push() { r.blocks = append(r.blocks, 0) }

func (r *WikiRenderer) pop() {
	if len(r.blocks) > 0 {
		r.blocks = r.blocks[:len(r.blocks)-1]
	}
}

func (r *WikiRenderer) BeginDocument() {
	if r.suppress > 0 {
		return
	}
	r.push()
}

func (r *WikiRenderer) EndDocument() {
	if r.suppress > 0 {
		return
	}
	r.pop()
}

func (r *WikiRenderer) BeginParagraph() {
	if r.suppress > 0 {
		return
	}
	r.startBlock()
}

func (r *WikiRenderer) EndParagraph() {}

func (r *WikiRenderer) BeginHeading(level int) {
	if r.suppress > 0 {
		return
	}
	r.startBlock()
	r.sb.WriteString(strings.Repeat("=", clampLevel(level)) + " ")
}

func (r *WikiRenderer) EndHeading(level int) {
	if r.suppress > 0 {
		return
	}
	r.sb.WriteString(" " + strings.Repeat("=", clampLevel(level)))
}

func (r *WikiRenderer) BeginGroup(params map[string]string) {
	if r.suppress > 0 {
		return
	}
	r.startBlock()
	if len(params) > 0 {
		r.sb.WriteString("(%")
		for _, k := range sortedKeys(params) {
			r.sb.WriteString(" " + k + "=" + quoteParam(params[k], true))
		}
		r.sb.WriteString(" %)")
	}
	r.sb.WriteString("(((\n")
	r.push()
}

func (r *WikiRenderer) EndGroup(map[string]string) {
	if r.suppress > 0 {
		return
	}
	r.pop()
	r.sb.WriteString("\n)))")
}

func (r *WikiRenderer) BeginList(ordered bool) {
	if r.suppress > 0 {
		return
	}
	if len(r.lists) == 0 {
		r.startBlock()
	}
	r.lists = append(r.lists, 0)
	r.ordered = append(r.ordered, ordered)
}

func (r *WikiRenderer) EndList(bool) {
	if r.suppress > 0 {
		return
	}
	r.lists = r.lists[:len(r.lists)-1]
	r.ordered = r.ordered[:len(r.ordered)-1]
}

func (r *WikiRenderer) BeginListItem() {
	if r.suppress > 0 || len(r.lists) == 0 {
		return
	}
	top := len(r.lists) - 1
	if r.lists[top] > 0 || top > 0 {
		r.sb.WriteString("\n")
	}
	r.lists[top]++
	if r.ordered[top] {
		r.sb.WriteString(strings.Repeat("1", len(r.lists)) + ". ")
	} else {
		r.sb.WriteString(strings.Repeat("*", len(r.lists)) + " ")
	}
}

func (r *WikiRenderer) EndListItem() {}

func (r *WikiRenderer) BeginMacroMarker(call block.MacroCall) {
	if r.suppress > 0 {
		r.suppress++
		return
	}
	if !r.PreserveMacros {
		if call.Inline {
			r.startInline()
		}
		r.markers = append(r.markers, call.Inline)
		return
	}
	r.OnMacro(call)
	r.suppress++
}

func (r *WikiRenderer) EndMacroMarker(block.MacroCall) {
	if r.suppress > 0 {
		r.suppress--
		return
	}
	r.markers = r.markers[:len(r.markers)-1]
}

func (r *WikiRenderer) OnMacro(call block.MacroCall) {
	if r.suppress > 0 {
		return
	}
	if call.Inline {
		r.startInline()
	} else {
		r.startBlock()
	}
	r.sb.WriteString(RenderMacroCall(call))
}

func (r *WikiRenderer) OnVerbatim(text string, inline bool) {
	if r.suppress > 0 {
		return
	}
	if inline {
		r.startInline()
	} else {
		r.startBlock()
	}
	r.sb.WriteString("{{{" + text + "}}}")
}

func (r *WikiRenderer) OnWord(text string) {
	if r.suppress > 0 {
		return
	}
	r.startInline()
	r.sb.WriteString(text)
}

func (r *WikiRenderer) OnSpace() {
	if r.suppress > 0 {
		return
	}
	r.startInline()
	r.sb.WriteString(" ")
}

func (r *WikiRenderer) OnNewLine() {
	if r.suppress > 0 {
		return
	}
	r.startInline()
	r.sb.WriteString("\n")
}

// RenderMacroCall writes a macro call in wiki syntax: {{id k=v/}} without
// content, {{id k=v}}content{{/id}} with content.
func RenderMacroCall(call block.MacroCall) string {
	var sb strings.Builder
	sb.WriteString("{{")
	sb.WriteString(call.ID)

	// Parameters (sorted for consistent output)
	for _, key := range sortedKeys(call.Params) {
		sb.WriteString(" ")
		sb.WriteString(key)
		sb.WriteString("=")
		sb.WriteString(quoteParam(call.Params[key], false))
	}

	if !call.HasContent {
		sb.WriteString("/}}")
		return sb.String()
	}

	sb.WriteString("}}")
	sb.WriteString(call.Content)
	sb.WriteString("{{/")
	sb.WriteString(call.ID)
	sb.WriteString("}}")
	return sb.String()
}

// quoteParam quotes a parameter value when it would not survive unquoted.
func quoteParam(value string, always bool) string {
	if !always && value != "" && !strings.ContainsAny(value, " \t\n\"'}/") {
		return value
	}
	return `"` + strings.ReplaceAll(value, `"`, `\"`) + `"`
}
