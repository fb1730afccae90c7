package adocbib

import (
	"io"

	"golang.org/x/text/language"

	"github.com/alnah/go-adocbib/internal/bib"
	"github.com/alnah/go-adocbib/internal/style"
)

// Renderer produces citation and bibliography text for a key as HTML
// fragments. Errors wrap ErrKeyAbsent when the renderer has no entry for
// key and ErrRenderFailure when rendering a known entry failed.
type Renderer interface {
	RenderCitation(key string) (string, error)
	RenderBibliography(key string) (string, error)
}

// Entry is one bibliography record.
type Entry = bib.Entry

// Bibliography is an immutable, key-indexed set of entries.
type Bibliography = bib.Store

// NewBibliography builds a bibliography from entries. Later duplicates
// replace earlier ones.
func NewBibliography(entries ...*Entry) *Bibliography {
	return bib.NewStore(entries...)
}

// ParseBibliography reads a BibTeX database.
func ParseBibliography(r io.Reader) (*Bibliography, error) {
	return bib.Parse(r)
}

// LoadBibliography reads and parses a BibTeX file.
func LoadBibliography(path string) (*Bibliography, error) {
	return bib.Load(path)
}

// Style is a parsed citation style.
type Style = style.Style

// NewStyleRenderer returns the built-in template renderer for s over
// lookup.
func NewStyleRenderer(s *Style, lookup Lookuper, locale language.Tag) Renderer {
	return style.NewRenderer(s, lookup, locale)
}

// Compile-time interface implementation checks.
var (
	_ Renderer = (*style.Renderer)(nil)
	_ Lookuper = (*bib.Store)(nil)
)
