// Package syntax names the markup dialects a document can be written in.
//
// The macro engine never interprets a Syntax; it hands it to macros, which
// may use it to pick dialect-specific behavior.
package syntax

import (
	"fmt"
	"strings"
)

// Type is the family of a syntax, e.g. "xwiki" or "markdown".
type Type string

const (
	TypeXWiki    Type = "xwiki"
	TypeMarkdown Type = "markdown"
	TypeXHTML    Type = "xhtml"
	TypeEvent    Type = "event"
)

// Syntax is a syntax family at a given version.
type Syntax struct {
	Type    Type
	Version string
}

var (
	XWiki20    = Syntax{Type: TypeXWiki, Version: "2.0"}
	Markdown10 = Syntax{Type: TypeMarkdown, Version: "1.0"}
	XHTML10    = Syntax{Type: TypeXHTML, Version: "1.0"}
	Event10    = Syntax{Type: TypeEvent, Version: "1.0"}
)

// String returns the identifier form "type/version".
func (s Syntax) String() string {
	return string(s.Type) + "/" + s.Version
}

// IsZero reports whether s is the zero Syntax.
func (s Syntax) IsZero() bool {
	return s.Type == "" && s.Version == ""
}

// Parse reads an identifier of the form "type/version".
func Parse(id string) (Syntax, error) {
	typ, version, ok := strings.Cut(strings.TrimSpace(id), "/")
	if !ok || typ == "" || version == "" {
		return Syntax{}, fmt.Errorf("invalid syntax %q: expected type/version", id)
	}
	return Syntax{Type: Type(strings.ToLower(typ)), Version: version}, nil
}
