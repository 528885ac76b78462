package render

import (
	"fmt"
	"io"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"

	"github.com/open-cli-collective/wikimacro/pkg/block"
)

// Format selects a renderer.
type Format string

const (
	FormatEvent    Format = "event"
	FormatXHTML    Format = "xhtml"
	FormatWiki     Format = "wiki"
	FormatMarkdown Format = "markdown"
)

// Formats returns the supported output formats.
func Formats() []string {
	return []string{string(FormatEvent), string(FormatXHTML), string(FormatWiki), string(FormatMarkdown)}
}

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	for _, f := range Formats() {
		if s == f {
			return Format(s), nil
		}
	}
	return "", fmt.Errorf("invalid render format %q: must be one of %s", s, strings.Join(Formats(), ", "))
}

// Options tunes rendering.
type Options struct {
	// PreserveMacros renders markers as the macro call that produced them.
	// Only the wiki format honors it.
	PreserveMacros bool
}

// Render writes b to w in format f.
func Render(w io.Writer, f Format, b block.Block, opts Options) error {
	switch f {
	case FormatEvent:
		r := NewEventRenderer(w)
		Traverse(b, r)
		return r.Err()
	case FormatXHTML:
		_, err := io.WriteString(w, ToXHTML(b))
		return err
	case FormatWiki:
		r := NewWikiRenderer(opts.PreserveMacros)
		Traverse(b, r)
		_, err := io.WriteString(w, r.String())
		return err
	case FormatMarkdown:
		md, err := ToMarkdown(b)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, md)
		return err
	default:
		return fmt.Errorf("invalid render format %q", f)
	}
}

// ToXHTML renders b as XHTML.
func ToXHTML(b block.Block) string {
	r := NewXHTMLRenderer()
	Traverse(b, r)
	return r.String()
}

// ToMarkdown renders b as XHTML and converts the result to markdown.
func ToMarkdown(b block.Block) (string, error) {
	html := ToXHTML(b)
	if html == "" {
		return "", nil
	}

	markdown, err := htmltomarkdown.ConvertString(html)
	if err != nil {
		return "", fmt.Errorf("failed to convert to markdown: %w", err)
	}
	return strings.TrimSpace(markdown), nil
}
