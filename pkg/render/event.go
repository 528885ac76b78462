package render

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/open-cli-collective/wikimacro/pkg/block"
)

// EventRenderer prints one line per event. Its output is the reference
// used to check what a transformation produced.
//
//	beginDocument
//	beginMacroMarkerStandalone [info] [title=Hi] [body]
//	onWord [body]
//	endMacroMarkerStandalone [info] [title=Hi] [body]
//	endDocument
type EventRenderer struct {
	w       io.Writer
	started bool
	err     error
}

// NewEventRenderer writes events to w.
func NewEventRenderer(w io.Writer) *EventRenderer {
	return &EventRenderer{w: w}
}

// Err returns the first write error, if any.
func (r *EventRenderer) Err() error { return r.err }

func (r *EventRenderer) print(format string, args ...any) {
	if r.err != nil {
		return
	}
	if r.started {
		_, r.err = io.WriteString(r.w, "\n")
	}
	r.started = true
	if r.err == nil {
		_, r.err = fmt.Fprintf(r.w, format, args...)
	}
}

func (r *EventRenderer) BeginDocument()  { r.print("beginDocument") }
func (r *EventRenderer) EndDocument()    { r.print("endDocument") }
func (r *EventRenderer) BeginParagraph() { r.print("beginParagraph") }
func (r *EventRenderer) EndParagraph()   { r.print("endParagraph") }

func (r *EventRenderer) BeginHeading(level int) { r.print("beginHeading [%d]", level) }
func (r *EventRenderer) EndHeading(level int)   { r.print("endHeading [%d]", level) }

func (r *EventRenderer) BeginGroup(params map[string]string) {
	r.print("beginGroup [%s]", serializeParams(params))
}

func (r *EventRenderer) EndGroup(params map[string]string) {
	r.print("endGroup [%s]", serializeParams(params))
}

func (r *EventRenderer) BeginList(ordered bool) { r.print("beginList [%s]", listStyle(ordered)) }
func (r *EventRenderer) EndList(ordered bool)   { r.print("endList [%s]", listStyle(ordered)) }
func (r *EventRenderer) BeginListItem()         { r.print("beginListItem") }
func (r *EventRenderer) EndListItem()           { r.print("endListItem") }

func (r *EventRenderer) BeginMacroMarker(call block.MacroCall) {
	r.print("beginMacroMarker%s%s", mode(call.Inline), describeCall(call))
}

func (r *EventRenderer) EndMacroMarker(call block.MacroCall) {
	r.print("endMacroMarker%s%s", mode(call.Inline), describeCall(call))
}

func (r *EventRenderer) OnMacro(call block.MacroCall) {
	r.print("onMacro%s%s", mode(call.Inline), describeCall(call))
}

func (r *EventRenderer) OnVerbatim(text string, inline bool) {
	r.print("onVerbatim%s [%s]", mode(inline), text)
}

func (r *EventRenderer) OnWord(text string) { r.print("onWord [%s]", text) }
func (r *EventRenderer) OnSpace()           { r.print("onSpace") }
func (r *EventRenderer) OnNewLine()         { r.print("onNewLine") }

func mode(inline bool) string {
	if inline {
		return "Inline"
	}
	return "Standalone"
}

func listStyle(ordered bool) string {
	if ordered {
		return "NUMBERED"
	}
	return "BULLETED"
}

// describeCall formats " [id] [params]" followed by " [content]" when the
// call has content.
func describeCall(call block.MacroCall) string {
	s := " [" + call.ID + "] [" + serializeParams(call.Params) + "]"
	if call.HasContent {
		s += " [" + call.Content + "]"
	}
	return s
}

// serializeParams renders parameters as key=value pairs sorted by key and
// separated by '|'.
func serializeParams(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+params[k])
	}
	return strings.Join(parts, "|")
}
