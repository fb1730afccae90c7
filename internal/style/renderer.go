package style

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"golang.org/x/text/language"

	"github.com/alnah/go-adocbib/internal/bib"
)

// Lookuper finds bibliography entries by key.
type Lookuper interface {
	Lookup(key string) (*bib.Entry, bool)
}

// Renderer renders citation and bibliography text for one style, locale
// and bibliography. It holds no mutable state.
type Renderer struct {
	style *Style
	store Lookuper
	terms Terms
}

// NewRenderer binds a style to a bibliography and locale.
func NewRenderer(s *Style, store Lookuper, locale language.Tag) *Renderer {
	return &Renderer{
		style: s,
		store: store,
		terms: s.TermsFor(locale),
	}
}

// Style returns the renderer's style.
func (r *Renderer) Style() *Style {
	return r.style
}

// RenderCitation renders the in-text citation for key as an HTML fragment.
func (r *Renderer) RenderCitation(key string) (string, error) {
	entry, ok := r.store.Lookup(key)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrKeyAbsent, key)
	}
	return r.execute(r.style.citationTemplate(entry.Type), entry)
}

// RenderBibliography renders the bibliography entry for key as an HTML
// fragment.
func (r *Renderer) RenderBibliography(key string) (string, error) {
	entry, ok := r.store.Lookup(key)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrKeyAbsent, key)
	}
	return r.execute(r.style.bibliographyTemplate(entry.Type), entry)
}

func (r *Renderer) execute(tmpl *template.Template, entry *bib.Entry) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, r.entryData(entry)); err != nil {
		return "", fmt.Errorf("%w: %q: %v", ErrRender, entry.Key, err)
	}

	out := tidy(buf.String())
	if out == "" {
		return "", fmt.Errorf("%w: %q: empty output", ErrRender, entry.Key)
	}
	return out, nil
}

// entryData is the value templates execute against.
type entryData struct {
	Key     string
	Type    string
	Names   string // creators in bibliography form
	Short   string // creators in citation form, title when there are none
	Editors string // editors when authors are present
	EdTerm  string // ed. or eds.
	Year    string // year or the no-date term
	Title   string
	Terms   Terms

	entry *bib.Entry
}

// F returns a field value without grouping braces.
func (d entryData) F(name string) string {
	return d.entry.Text(name)
}

func (r *Renderer) entryData(e *bib.Entry) entryData {
	creators := e.Creators()

	d := entryData{
		Key:   e.Key,
		Type:  e.Type,
		Names: r.style.formatNames(creators, r.terms),
		Short: r.style.shortNames(creators, r.terms),
		Year:  e.Year(),
		Title: e.Text(bib.FieldTitle),
		Terms: r.terms,
		entry: e,
	}
	if d.Year == "" {
		d.Year = r.terms.NoDate
	}
	if d.Short == "" {
		d.Short = d.Title
	}

	if e.Has(bib.FieldAuthor) {
		if editors := e.Editors(); len(editors) > 0 {
			d.Editors = r.style.formatNames(editors, r.terms)
			d.EdTerm = r.terms.Editor
			if len(editors) > 1 {
				d.EdTerm = r.terms.Editors
			}
		}
	}
	return d
}

// tidyReplacer repairs punctuation left by empty template fields.
var tidyReplacer = strings.NewReplacer(
	" ,", ",",
	" .", ".",
	",,", ",",
	",.", ".",
	"( ", "(",
	" )", ")",
)

func tidy(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	for {
		next := tidyReplacer.Replace(s)
		if next == s {
			break
		}
		s = next
	}
	return strings.TrimSpace(s)
}
