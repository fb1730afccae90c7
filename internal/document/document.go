package document

import (
	"strings"
)

// Dialect selects the block syntax rules.
type Dialect int

const (
	AsciiDoc Dialect = iota
	Markdown
)

// Kind classifies a line.
type Kind int

const (
	KindVerbatim Kind = iota
	KindParagraph
	KindListItem
	KindTableRow
	KindTitle
	KindBibliography
)

// Segment is a run of text within a line. Only prose segments may be
// rewritten.
type Segment struct {
	Text  string
	Prose bool
	Line  int // 1-based source line
}

// Line is one source line split into segments.
type Line struct {
	Kind     Kind
	Segments []*Segment
}

// Text reassembles the line.
func (l *Line) Text() string {
	var b strings.Builder
	for _, s := range l.Segments {
		b.WriteString(s.Text)
	}
	return b.String()
}

// Placeholder marks where a bibliography list is inserted.
type Placeholder struct {
	Target string // bibliography file argument, may be empty
	Style  string
	Locale string
	Line   int

	source  string
	content string
	filled  bool
}

// Fill sets the text that replaces the macro line.
func (p *Placeholder) Fill(content string) {
	p.content = content
	p.filled = true
}

// Document is a parsed source text.
type Document struct {
	lines        []*Line
	placeholders []*Placeholder
	attrs        map[string]string
	title        string
	eol          string
	finalEOL     bool
}

// Lines returns the document's lines.
func (d *Document) Lines() []*Line {
	return d.lines
}

// Prose returns every prose segment in document order.
func (d *Document) Prose() []*Segment {
	var out []*Segment
	for _, l := range d.lines {
		for _, s := range l.Segments {
			if s.Prose {
				out = append(out, s)
			}
		}
	}
	return out
}

// Bibliographies returns the bibliography placeholders in document order.
func (d *Document) Bibliographies() []*Placeholder {
	return d.placeholders
}

// Attribute returns a document attribute set by an attribute entry.
func (d *Document) Attribute(name string) (string, bool) {
	v, ok := d.attrs[name]
	return v, ok
}

// Attributes returns a copy of all attribute entries.
func (d *Document) Attributes() map[string]string {
	out := make(map[string]string, len(d.attrs))
	for k, v := range d.attrs {
		out[k] = v
	}
	return out
}

// Title returns the document title, if any.
func (d *Document) Title() string {
	return d.title
}

// Blank reports whether the document has no non-whitespace content.
func (d *Document) Blank() bool {
	for _, l := range d.lines {
		if strings.TrimSpace(l.Text()) != "" {
			return false
		}
	}
	return true
}

// Render reassembles the document with modified segments and filled
// placeholders.
func (d *Document) Render() string {
	var b strings.Builder
	pi := 0
	for i, l := range d.lines {
		if i > 0 {
			b.WriteString(d.eol)
		}
		if l.Kind == KindBibliography {
			p := d.placeholders[pi]
			pi++
			if p.filled {
				b.WriteString(strings.ReplaceAll(p.content, "\n", d.eol))
			} else {
				b.WriteString(p.source)
			}
			continue
		}
		b.WriteString(l.Text())
	}
	if d.finalEOL {
		b.WriteString(d.eol)
	}
	return b.String()
}
