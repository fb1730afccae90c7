package adocbib

import (
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/text/language"

	"github.com/alnah/go-adocbib/internal/bib"
	"github.com/alnah/go-adocbib/internal/logfields"
	"github.com/alnah/go-adocbib/internal/macro"
	"github.com/alnah/go-adocbib/internal/markup"
)

// ProcessorConfig configures a Processor. The zero value selects
// author-date citations in appearance order, AsciiDoc output, no links and
// the default citation template.
type ProcessorConfig struct {
	// Style is the style name. Chicago styles keep locators verbatim.
	Style string
	// Numeric writes citations as bibliography numbers.
	Numeric bool
	// Locale drives upper-casing of sort keys. Defaults to en-US.
	Locale language.Tag
	Order  Order
	// Links cross references citations to their bibliography items.
	Links bool
	// Strict turns unknown keys into ErrUnknownKey.
	Strict bool
	// CitationTemplate is "<open>$id<close>", default "[$id]".
	CitationTemplate string
	// ShortNameField names the entry field used as a citation label.
	// Defaults to "refname".
	ShortNameField string
	// Syntax is the output markup, "asciidoc" (default) or "markdown".
	Syntax string
	Logger *slog.Logger
}

// Processor runs the citation passes for one document: scan every prose
// line, finalize once, then replace every prose line and build the
// bibliography list. A Processor is not safe for concurrent use.
type Processor struct {
	registry *Registry
	order    Order
	lookup   Lookuper
	builder  textBuilder
}

// NewProcessor creates a processor reading entries from lookup and
// rendering them with renderer.
func NewProcessor(lookup Lookuper, renderer Renderer, cfg ProcessorConfig) (*Processor, error) {
	syntaxName := cfg.Syntax
	if syntaxName == "" {
		syntaxName = markup.NameAsciiDoc
	}
	syntax, err := markup.ForName(syntaxName)
	if err != nil {
		return nil, err
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	locale := cfg.Locale
	if locale == language.Und {
		locale = language.AmericanEnglish
	}

	order := cfg.Order
	if order == "" {
		order = OrderAppearance
	}

	tmpl := cfg.CitationTemplate
	if tmpl == "" {
		tmpl = DefaultCitationTemplate
	}
	ob, cb, ok := parseCitationTemplate(tmpl)
	if !ok {
		logger.Warn("citation template must look like <open>$id<close>, using [$id]",
			slog.String("template", tmpl))
	}

	shortField := strings.ToLower(strings.TrimSpace(cfg.ShortNameField))
	if shortField == "" {
		shortField = bib.FieldRefName
	}

	registry := NewRegistry(locale)
	return &Processor{
		registry: registry,
		order:    order,
		lookup:   lookup,
		builder: textBuilder{
			renderer:   renderer,
			lookup:     lookup,
			registry:   registry,
			syntax:     syntax,
			logger:     logger,
			numeric:    cfg.Numeric,
			chicago:    strings.Contains(strings.ToLower(cfg.Style), "chicago"),
			links:      cfg.Links,
			strict:     cfg.Strict,
			ob:         ob,
			cb:         cb,
			shortField: shortField,
		},
	}, nil
}

// ScanCitations records the keys of every citation macro in line.
func (p *Processor) ScanCitations(line string) error {
	for _, c := range macro.ScanCitations(line) {
		if err := p.registry.Record(c.Keys()...); err != nil {
			return err
		}
	}
	return nil
}

// Finalize freezes the citation list. It must run after every line has
// been scanned and before any replacement.
func (p *Processor) Finalize() error {
	if err := p.registry.Finalize(p.order, p.lookup); err != nil {
		return err
	}
	p.builder.logger.Debug("citations finalized",
		logfields.Count(p.registry.Len()), slog.String("order", string(p.order)))
	return nil
}

// Registry returns the processor's citation registry.
func (p *Processor) Registry() *Registry {
	return p.registry
}

// ReplaceCitations replaces every citation macro in line with its citation
// text. In strict mode an unknown key aborts with ErrUnknownKey.
func (p *Processor) ReplaceCitations(line string) (string, error) {
	if !p.registry.Finalized() {
		return "", ErrRegistryOpen
	}

	matches := macro.ScanCitations(line)
	if len(matches) == 0 {
		return line, nil
	}

	var b strings.Builder
	last := 0
	for _, c := range matches {
		text, err := p.builder.citation(c)
		if err != nil {
			return "", fmt.Errorf("%s: %w", c.Text, err)
		}
		b.WriteString(line[last:c.Start])
		b.WriteString(text)
		last = c.End
	}
	b.WriteString(line[last:])
	return b.String(), nil
}

// ReplaceBibitems replaces every bibitem macro in line with the full
// bibliography text of its key.
func (p *Processor) ReplaceBibitems(line string) string {
	return replaceKeyed(line, macro.ScanBibitems(line), p.builder.bibitem)
}

// ReplaceBiblinks replaces every biblink macro in line with a cross
// reference to the bibliography item of its key.
func (p *Processor) ReplaceBiblinks(line string) string {
	return replaceKeyed(line, macro.ScanBiblinks(line), p.builder.biblink)
}

// Replace applies every replacement to line: citations, then bibitems,
// then biblinks.
func (p *Processor) Replace(line string) (string, error) {
	out, err := p.ReplaceCitations(line)
	if err != nil {
		return "", err
	}
	out = p.ReplaceBibitems(out)
	return p.ReplaceBiblinks(out), nil
}

// BibliographyList returns one list item per finalized key, in registry
// order.
func (p *Processor) BibliographyList() ([]string, error) {
	if !p.registry.Finalized() {
		return nil, ErrRegistryOpen
	}

	keys := p.registry.Keys()
	items := make([]string, len(keys))
	for i, key := range keys {
		items[i] = p.builder.bibliographyItem(key, i+1)
	}
	return items, nil
}

func replaceKeyed(line string, matches []macro.Keyed, text func(key string) string) string {
	if len(matches) == 0 {
		return line
	}

	var b strings.Builder
	last := 0
	for _, m := range matches {
		b.WriteString(line[last:m.Start])
		b.WriteString(text(m.Key))
		last = m.End
	}
	b.WriteString(line[last:])
	return b.String()
}
