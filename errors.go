package adocbib

import (
	"errors"

	"github.com/alnah/go-adocbib/internal/bib"
	"github.com/alnah/go-adocbib/internal/style"
)

// Sentinel errors for library operations.
var (
	// ErrUnknownKey indicates a cited key has no bibliography entry.
	// It is fatal only in strict mode.
	ErrUnknownKey = errors.New("unknown citation key")

	// ErrKeyAbsent indicates the renderer has no entry for the key.
	ErrKeyAbsent = style.ErrKeyAbsent

	// ErrRenderFailure indicates the renderer failed for a key it knows.
	ErrRenderFailure = style.ErrRender

	// ErrMissingBibliography indicates a bibliography is configured but no
	// file could be resolved.
	ErrMissingBibliography = errors.New("bibliography file not found")

	// ErrBibliographyParse indicates the bibliography file is not valid BibTeX.
	ErrBibliographyParse = bib.ErrParse

	ErrEmptyDocument   = errors.New("document content cannot be empty")
	ErrHTMLUnsupported = errors.New("HTML output requires a Markdown document")

	// Registry state errors.
	ErrRegistryOpen      = errors.New("citation registry not finalized")
	ErrRegistryFinalized = errors.New("citation registry already finalized")

	// Configuration errors.
	ErrInvalidLocale = errors.New("invalid locale")
	ErrInvalidOrder  = errors.New("invalid citation order")
	ErrStyleNotFound = style.ErrStyleNotFound
)
