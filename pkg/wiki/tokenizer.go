// tokenizer.go implements tokenization for {{macro}}...{{/macro}} syntax.
package wiki

import (
	"errors"
	"strings"
	"unicode"
)

// Tokenize scans input for macro tags and returns a token stream.
// Recognized forms:
//   - {{macro}} or {{macro params}} - open tag
//   - {{/macro}} - close tag
//   - {{macro/}} or {{macro params/}} - self-closing (no content)
//   - {{{text}}} - verbatim text
//
// Text between tags is returned as TokenText tokens. A "{{" that does not
// start a valid tag is kept as text.
func Tokenize(input string) []Token {
	var tokens []Token
	pos := 0
	textStart := 0

	for pos < len(input) {
		if !strings.HasPrefix(input[pos:], "{{") {
			pos++
			continue
		}

		var token Token
		var err error
		if strings.HasPrefix(input[pos:], "{{{") {
			token, err = parseVerbatim(input, pos)
		} else {
			token, err = parseTag(input, pos)
		}
		if err != nil {
			// Not a valid macro tag - treat '{' as text
			pos++
			continue
		}

		// Emit any accumulated text before this tag
		if pos > textStart {
			tokens = append(tokens, Token{
				Type:     TokenText,
				Text:     input[textStart:pos],
				Position: textStart,
				End:      pos,
			})
		}
		tokens = append(tokens, token)
		pos = token.End
		textStart = pos
	}

	if textStart < len(input) {
		tokens = append(tokens, Token{
			Type:     TokenText,
			Text:     input[textStart:],
			Position: textStart,
			End:      len(input),
		})
	}

	return tokens
}

// parseVerbatim reads {{{text}}} starting at pos.
func parseVerbatim(input string, pos int) (Token, error) {
	end := strings.Index(input[pos+3:], "}}}")
	if end < 0 {
		return Token{}, errors.New("unclosed verbatim")
	}
	textEnd := pos + 3 + end
	return Token{Type: TokenVerbatim, Text: input[pos+3 : textEnd], Position: pos, End: textEnd + 3}, nil
}

// parseTag attempts to parse a macro tag starting at pos.
func parseTag(input string, pos int) (Token, error) {
	start := pos
	pos += 2 // skip "{{"

	isCloseTag := false
	if pos < len(input) && input[pos] == '/' {
		isCloseTag = true
		pos++
	}

	nameStart := pos
	for pos < len(input) && isValidMacroNameChar(rune(input[pos])) {
		pos++
	}
	if pos == nameStart {
		return Token{}, errors.New("empty macro name")
	}
	name := input[nameStart:pos]

	if isCloseTag {
		if !strings.HasPrefix(input[pos:], "}}") {
			return Token{}, errors.New("unclosed close tag")
		}
		pos += 2
		return Token{Type: TokenCloseTag, MacroName: name, Text: input[start:pos], Position: start, End: pos}, nil
	}

	// The name must be followed by whitespace, '/' or '}}'
	if pos < len(input) && !unicode.IsSpace(rune(input[pos])) && input[pos] != '/' && input[pos] != '}' {
		return Token{}, errors.New("invalid character after macro name")
	}

	params, pos, selfClose, err := parseParameters(input, pos)
	if err != nil {
		return Token{}, err
	}

	typ := TokenOpenTag
	if selfClose {
		typ = TokenSelfClose
	}
	return Token{Type: typ, MacroName: name, Parameters: params, Text: input[start:pos], Position: start, End: pos}, nil
}

// parseParameters parses key=value parameters until "}}" or "/}}".
// Returns the parameters, the position after the tag, and whether the tag
// was self-closing.
func parseParameters(input string, pos int) (map[string]string, int, bool, error) {
	params := make(map[string]string)

	for pos < len(input) {
		for pos < len(input) && unicode.IsSpace(rune(input[pos])) {
			pos++
		}

		if strings.HasPrefix(input[pos:], "}}") {
			return params, pos + 2, false, nil
		}
		if strings.HasPrefix(input[pos:], "/}}") {
			return params, pos + 3, true, nil
		}

		keyStart := pos
		for pos < len(input) && isValidParamKeyChar(rune(input[pos])) {
			pos++
		}
		if pos == keyStart {
			return nil, pos, false, errors.New("expected parameter key or '}}'")
		}
		key := input[keyStart:pos]

		if pos >= len(input) || input[pos] != '=' {
			// Key without value - treat as boolean true
			params[key] = "true"
			continue
		}
		pos++ // skip '='

		value, newPos, err := parseParamValue(input, pos)
		if err != nil {
			return nil, pos, false, err
		}
		params[key] = value
		pos = newPos
	}

	return nil, pos, false, errors.New("unclosed macro tag")
}

// parseParamValue parses a parameter value, handling quoted strings.
// Escaped quotes (\' or \") are unescaped in the returned value.
func parseParamValue(input string, pos int) (string, int, error) {
	if pos >= len(input) {
		return "", pos, errors.New("unexpected end of input")
	}

	if input[pos] == '"' || input[pos] == '\'' {
		quoteChar := input[pos]
		pos++
		valueStart := pos
		var value strings.Builder

		for pos < len(input) {
			if input[pos] == quoteChar {
				value.WriteString(input[valueStart:pos])
				return value.String(), pos + 1, nil
			}
			if input[pos] == '\\' && pos+1 < len(input) && input[pos+1] == quoteChar {
				value.WriteString(input[valueStart:pos])
				value.WriteByte(quoteChar)
				pos += 2
				valueStart = pos
				continue
			}
			pos++
		}
		return "", pos, errors.New("unclosed quoted value")
	}

	// Unquoted value - read until space, '/' or '}'
	valueStart := pos
	for pos < len(input) && !unicode.IsSpace(rune(input[pos])) && input[pos] != '}' && input[pos] != '/' {
		pos++
	}
	return input[valueStart:pos], pos, nil
}

// isValidMacroNameChar returns true if r is valid in a macro name.
func isValidMacroNameChar(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' || r == '.'
}

// isValidParamKeyChar returns true if r is valid in a parameter key.
func isValidParamKeyChar(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_'
}
