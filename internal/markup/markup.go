// Package markup writes cross references, anchors, links and inline
// formatting in the output document's lightweight markup language.
package markup

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Syntax names.
const (
	NameAsciiDoc = "asciidoc"
	NameMarkdown = "markdown"
)

// ErrUnknownSyntax indicates an unsupported markup name or file extension.
var ErrUnknownSyntax = errors.New("unknown markup syntax")

// Syntax writes markup constructs for one language.
type Syntax interface {
	Name() string
	// XRef links text to the anchor named key.
	XRef(key, text string) string
	// Anchor declares key as a link target.
	Anchor(key string) string
	// Link writes an external hyperlink.
	Link(url, text string) string
	// IconLink writes a hyperlink whose label is text followed by icon
	// markup. Only text is escaped.
	IconLink(url, text, icon string) string
	// Literal protects s from markup interpretation.
	Literal(s string) string
	// ListItem writes one unordered list item.
	ListItem(text string) string
	// Superscript raises s.
	Superscript(s string) string
	// Image writes an inline image of the given size in pixels.
	Image(url, alt string, width, height int) string
	// FromHTML converts an HTML fragment to inline markup.
	FromHTML(fragment string) (string, error)
}

// ForName returns the syntax registered under name.
func ForName(name string) (Syntax, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case NameAsciiDoc, "adoc":
		return AsciiDoc{}, nil
	case NameMarkdown, "md":
		return Markdown{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSyntax, name)
	}
}

// ForPath picks a syntax from a file extension.
func ForPath(path string) (Syntax, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".adoc", ".asciidoc", ".asc":
		return AsciiDoc{}, nil
	case ".md", ".markdown":
		return Markdown{}, nil
	default:
		return nil, fmt.Errorf("%w: extension %q", ErrUnknownSyntax, filepath.Ext(path))
	}
}
