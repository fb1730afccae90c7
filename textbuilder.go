package adocbib

import (
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/alnah/go-adocbib/internal/bib"
	"github.com/alnah/go-adocbib/internal/logfields"
	"github.com/alnah/go-adocbib/internal/macro"
	"github.com/alnah/go-adocbib/internal/markup"
)

// DefaultCitationTemplate wraps numeric citations in square brackets.
const DefaultCitationTemplate = "[$id]"

// citationTemplatePattern splits a template like "[$id]" into its opening
// and closing brackets. Both must be non-empty.
var citationTemplatePattern = regexp.MustCompile(`^(.+?)\$id(.+)$`)

// nbsp separates page abbreviations from page numbers.
const nbsp = "\u00a0"

// Annotation link targets.
const (
	scholarURL = "https://scholar.google.com/scholar?cluster="
	arxivURL   = "https://arxiv.org/abs/"
)

// textBuilder writes citation text and bibliography items against a
// finalized registry.
type textBuilder struct {
	renderer   Renderer
	lookup     Lookuper
	registry   *Registry
	syntax     markup.Syntax
	logger     *slog.Logger
	numeric    bool
	chicago    bool
	links      bool
	strict     bool
	ob, cb     string
	shortField string
}

// parseCitationTemplate returns the brackets of tmpl. ok is false when tmpl
// has no text on both sides of $id.
func parseCitationTemplate(tmpl string) (ob, cb string, ok bool) {
	m := citationTemplatePattern.FindStringSubmatch(tmpl)
	if m == nil {
		return "[", "]", false
	}
	return m[1], m[2], true
}

// citation builds the replacement text for one citation macro.
func (b *textBuilder) citation(c macro.Citation) (string, error) {
	var ob, cb, sep string
	switch {
	case b.numeric:
		ob, cb, sep = b.syntax.Literal(b.ob), b.syntax.Literal(b.cb), ","
	case c.Type == macro.TypeCitep:
		ob, cb, sep = "(", ")", ";"
	default:
		sep = ";"
	}

	parts := make([]string, 0, len(c.Items))
	for _, item := range c.Items {
		text, err := b.itemText(item)
		if err != nil {
			return "", err
		}
		if b.links {
			text = b.syntax.XRef(item.Key, text)
		}
		parts = append(parts, text)
	}

	if b.numeric && !b.links {
		parts = combineConsecutive(parts)
	}
	body := strings.Join(parts, sep+" ")

	pretext := c.Pretext
	if pretext != "" {
		pretext += " "
	}

	switch {
	case b.numeric:
		return pretext + ob + body + cb, nil
	case c.Type == macro.TypeCite:
		return ob + pretext + body + cb, nil
	default:
		return pretext + body, nil
	}
}

// itemText resolves the text of one cited key, falling back to the raw key.
func (b *textBuilder) itemText(item macro.Item) (string, error) {
	entry, ok := b.lookup.Lookup(item.Key)
	if !ok {
		if b.strict {
			return "", fmt.Errorf("%w: %q", ErrUnknownKey, item.Key)
		}
		b.logger.Warn("unknown citation key", logfields.CitationKey(item.Key))
		return item.Key, nil
	}

	if b.numeric {
		n, err := b.registry.Index(item.Key)
		if err != nil {
			b.logger.Warn("citation key missing from registry",
				logfields.CitationKey(item.Key), logfields.Error(err))
			return item.Key, nil
		}
		return strconv.Itoa(n) + b.locator(item.Locator), nil
	}

	if short := entry.Text(b.shortField); short != "" {
		return "[" + short + "]" + b.locator(item.Locator), nil
	}

	text, err := b.renderer.RenderCitation(item.Key)
	if err != nil {
		return b.renderFailed(item.Key, err)
	}
	text = strings.Replace(text, "(", "", 1)
	text = strings.Replace(text, ")", "", 1)
	text, err = b.syntax.FromHTML(text)
	if err != nil {
		return b.renderFailed(item.Key, err)
	}
	return text + b.locator(item.Locator), nil
}

// renderFailed degrades a failed render to the raw key. An absent key is
// fatal in strict mode.
func (b *textBuilder) renderFailed(key string, err error) (string, error) {
	if b.strict && errors.Is(err, ErrKeyAbsent) {
		return "", fmt.Errorf("%w: %q: %v", ErrUnknownKey, key, err)
	}
	b.logger.Warn("failed to render citation", logfields.CitationKey(key), logfields.Error(err))
	return key, nil
}

// locator formats a page locator. Author-date styles separate it with a
// comma; chicago styles keep it verbatim.
func (b *textBuilder) locator(loc string) string {
	if loc == "" {
		return ""
	}

	var s strings.Builder
	if !b.numeric {
		s.WriteByte(',')
	}
	s.WriteByte(' ')
	switch {
	case b.chicago:
		s.WriteString(loc)
	case isDigits(loc):
		s.WriteString("p." + nbsp + loc)
	default:
		s.WriteString("pp." + nbsp + loc)
	}
	return s.String()
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// label writes the bracketed token that introduces a bibliography item.
func (b *textBuilder) label(key string, index int, entry *Entry) string {
	switch {
	case b.numeric && index > 0:
		return b.ob + strconv.Itoa(index) + b.cb
	case entry != nil && entry.Text(b.shortField) != "":
		return b.ob + entry.Text(b.shortField) + b.cb
	default:
		return b.ob + key + b.cb
	}
}

// bibliographyItem builds one list item for the key at the 1-based index.
func (b *textBuilder) bibliographyItem(key string, index int) string {
	var s strings.Builder
	if b.links {
		s.WriteString(b.syntax.Anchor(key))
	}

	entry, _ := b.lookup.Lookup(key)
	s.WriteString(b.label(key, index, entry))
	s.WriteByte(' ')

	if entry == nil {
		b.logger.Warn("unknown bibliography key", logfields.CitationKey(key))
		s.WriteString(key)
		return b.syntax.ListItem(s.String())
	}

	text, err := b.renderBibliography(key)
	if err != nil {
		b.logger.Warn("failed to render bibliography entry", logfields.CitationKey(key), logfields.Error(err))
		s.WriteString(key)
		return b.syntax.ListItem(s.String())
	}
	s.WriteString(text)
	s.WriteString(b.annotations(entry))
	return b.syntax.ListItem(s.String())
}

// bibitem renders the full bibliography text for key in place, without a
// label.
func (b *textBuilder) bibitem(key string) string {
	entry, ok := b.lookup.Lookup(key)
	if !ok {
		b.logger.Warn("unknown bibitem key", logfields.CitationKey(key))
		return key
	}

	text, err := b.renderBibliography(key)
	if err != nil {
		b.logger.Warn("failed to render bibitem", logfields.CitationKey(key), logfields.Error(err))
		text = key
	}
	return text + b.annotations(entry)
}

// biblink cross references the bibliography item of key.
func (b *textBuilder) biblink(key string) string {
	entry, ok := b.lookup.Lookup(key)
	if !ok {
		b.logger.Warn("unknown biblink key", logfields.CitationKey(key))
	}

	index := 0
	if b.numeric {
		if n, err := b.registry.Index(key); err == nil {
			index = n
		}
	}
	return b.syntax.XRef(key, b.label(key, index, entry))
}

func (b *textBuilder) renderBibliography(key string) (string, error) {
	text, err := b.renderer.RenderBibliography(key)
	if err != nil {
		return "", err
	}
	return b.syntax.FromHTML(text)
}

// annotations appends the note, Google Scholar and arXiv fields when the
// entry has them.
func (b *textBuilder) annotations(entry *Entry) string {
	var s strings.Builder
	if note := entry.Text(bib.FieldNote); note != "" {
		s.WriteString(" " + note + ".")
	}
	if id := entry.Text(bib.FieldScholarCluster); id != "" {
		s.WriteString(" " + b.syntax.Link(scholarURL+id, "[scholar]"))
	}
	if id := entry.Text(bib.FieldArxiv); id != "" {
		s.WriteString(" " + b.syntax.Link(arxivURL+id, "[arXiv]"))
	}
	return s.String()
}
