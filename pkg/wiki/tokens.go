// tokens.go defines token types for macro tag scanning.
package wiki

// TokenType represents token types for {{macro}}...{{/macro}} syntax.
type TokenType int

const (
	TokenText      TokenType = iota // plain text between macro tags
	TokenOpenTag                    // {{macro}} or {{macro params}}
	TokenCloseTag                   // {{/macro}}
	TokenSelfClose                  // {{macro/}} (no content)
	TokenVerbatim                   // {{{text}}}
)

// Token represents a single token from macro tag scanning.
type Token struct {
	Type       TokenType
	MacroName  string            // set for OpenTag, CloseTag, SelfClose (case preserved)
	Parameters map[string]string // set for OpenTag, SelfClose
	Text       string            // text for Text and Verbatim tokens; full tag text otherwise
	Position   int               // byte offset in original input
	End        int               // byte offset just past the token
}
