package adocbib

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-adocbib/internal/bib"
	"github.com/alnah/go-adocbib/internal/document"
	"github.com/alnah/go-adocbib/internal/logfields"
	"github.com/alnah/go-adocbib/internal/markup"
	"github.com/alnah/go-adocbib/internal/pipeline"
	"github.com/alnah/go-adocbib/internal/style"
)

// Converter expands citations, bibliographies and inline macros in
// documents. Create with NewConverter and call Convert once per document.
// A Converter is safe for concurrent use: styles and parsed bibliography
// files are shared, everything else is per call.
type Converter struct {
	cfg           converterConfig
	styles        *style.Resolver
	bibs          *bibCache
	htmlConverter pipeline.HTMLConverter
}

// NewConverter creates a Converter. Returns an error if the style directory
// is unusable or a configured setting is invalid.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg: converterConfig{
			links:          true,
			inlineMacros:   true,
			searchPaths:    defaultSearchPaths,
			highlightStyle: pipeline.DefaultHighlightStyle,
		},
		bibs:          newBibCache(),
		htmlConverter: pipeline.NewGoldmarkConverter(),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.cfg.logger == nil {
		c.cfg.logger = slog.Default()
	}
	if err := c.cfg.defaults.Validate(); err != nil {
		return nil, err
	}
	if err := c.cfg.overrides.Validate(); err != nil {
		return nil, err
	}

	styles, err := style.NewResolver(c.cfg.styleDir)
	if err != nil {
		return nil, fmt.Errorf("loading styles: %w", err)
	}
	c.styles = styles

	return c, nil
}

// Styles lists the available style names, custom ones included.
func (c *Converter) Styles() ([]string, error) {
	return c.styles.ListStyles()
}

// Style returns the parsed style name.
func (c *Converter) Style(name string) (*Style, error) {
	return c.styles.Style(name)
}

// Convert runs the citation passes over one document and, when requested,
// renders it to HTML. A document that configures no bibliography is
// returned with its citations untouched.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) Convert(ctx context.Context, input Input) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	start := time.Now()
	if input.Content == "" {
		return nil, ErrEmptyDocument
	}

	syntax, err := c.syntaxFor(input)
	if err != nil {
		return nil, err
	}
	dialect := document.AsciiDoc
	if syntax.Name() == markup.NameMarkdown {
		dialect = document.Markdown
	}
	if input.HTML && dialect != document.Markdown {
		return nil, ErrHTMLUnsupported
	}

	logger := c.cfg.logger
	if input.Path != "" {
		logger = logger.With(logfields.File(input.Path))
	}

	doc := document.Parse(input.Content, dialect)
	res := &Result{}

	settings := c.settingsFor(doc)
	if configured(settings, doc) {
		if err := c.processCitations(ctx, doc, settings, input, syntax, logger, res); err != nil {
			return nil, err
		}
	} else {
		logger.Debug("no bibliography configured, citations left unchanged")
	}

	if c.cfg.inlineMacros {
		expander := pipeline.NewInlineExpander(syntax, logger)
		for _, seg := range doc.Prose() {
			seg.Text = expander.Expand(seg.Text)
		}
	}
	res.Text = doc.Render()

	if input.HTML {
		if err := c.renderHTML(ctx, doc, input, res); err != nil {
			return nil, err
		}
	}

	logger.Debug("document converted",
		logfields.Count(len(res.Citations)),
		logfields.DurationMS(float64(time.Since(start).Microseconds())/1000))
	return res, nil
}

// syntaxFor picks the output markup from the input's explicit syntax, then
// its path, defaulting to AsciiDoc.
func (c *Converter) syntaxFor(input Input) (markup.Syntax, error) {
	if input.Syntax != "" {
		return markup.ForName(input.Syntax)
	}
	if input.Path != "" {
		return markup.ForPath(input.Path)
	}
	return markup.AsciiDoc{}, nil
}

// settingsFor layers defaults, bibliography:: macro arguments, header
// attributes and overrides, lowest first.
func (c *Converter) settingsFor(doc *document.Document) Settings {
	s := c.cfg.defaults

	var macroArgs Settings
	for _, p := range doc.Bibliographies() {
		if macroArgs.Bibliography == "" {
			macroArgs.Bibliography = p.Target
		}
		if macroArgs.Style == "" {
			macroArgs.Style = p.Style
		}
		if macroArgs.Locale == "" {
			macroArgs.Locale = p.Locale
		}
	}
	s = s.merge(macroArgs)
	s = s.merge(attributeSettings(doc))
	return s.merge(c.cfg.overrides)
}

// attributeSettings reads the bibtex-* header attributes. Any order other
// than "appearance", including an empty value, sorts alphabetically and
// only "true" enables strict mode.
func attributeSettings(doc *document.Document) Settings {
	var s Settings
	if v, ok := doc.Attribute(AttrFile); ok {
		s.Bibliography = v
	}
	if v, ok := doc.Attribute(AttrStyle); ok {
		s.Style = v
	}
	if v, ok := doc.Attribute(AttrLocale); ok {
		s.Locale = v
	}
	if v, ok := doc.Attribute(AttrOrder); ok {
		s.Order = string(OrderAlphabetical)
		if strings.EqualFold(strings.TrimSpace(v), string(OrderAppearance)) {
			s.Order = string(OrderAppearance)
		}
	}
	if v, ok := doc.Attribute(AttrThrow); ok {
		strict := strings.EqualFold(strings.TrimSpace(v), "true")
		s.Strict = &strict
	}
	if v, ok := doc.Attribute(AttrCitationTemplate); ok {
		s.CitationTemplate = v
	}
	return s
}

// configured reports whether the document asks for citation processing,
// either through a bibliography setting or a bibliography:: macro.
func configured(s Settings, doc *document.Document) bool {
	return s.Bibliography != "" || len(doc.Bibliographies()) > 0
}

func (c *Converter) processCitations(ctx context.Context, doc *document.Document, s Settings, input Input, syntax markup.Syntax, logger *slog.Logger, res *Result) error {
	if err := s.Validate(); err != nil {
		return err
	}

	store, path, err := c.loadBibliography(s.Bibliography, input.Path)
	if err != nil {
		return err
	}

	styleName := s.Style
	if styleName == "" {
		styleName = DefaultStyle
	}
	st, err := c.styles.Style(styleName)
	if err != nil {
		return fmt.Errorf("loading style %q: %w", styleName, err)
	}

	localeName := s.Locale
	if localeName == "" {
		localeName = DefaultLocale
	}
	locale, err := parseLocale(localeName)
	if err != nil {
		return err
	}

	order, err := ParseOrder(s.Order)
	if err != nil {
		return err
	}

	logger = logger.With(logfields.Style(styleName), logfields.Locale(localeName))
	proc, err := NewProcessor(store, NewStyleRenderer(st, store, locale), ProcessorConfig{
		Style:            styleName,
		Numeric:          st.Numeric(),
		Locale:           locale,
		Order:            order,
		Links:            c.cfg.links,
		Strict:           s.Strict != nil && *s.Strict,
		CitationTemplate: s.CitationTemplate,
		ShortNameField:   c.cfg.shortNameField,
		Syntax:           syntax.Name(),
		Logger:           logger,
	})
	if err != nil {
		return err
	}

	prose := doc.Prose()

	// First pass: collect every cited key.
	for _, seg := range prose {
		if err := proc.ScanCitations(seg.Text); err != nil {
			return err
		}
	}
	if err := proc.Finalize(); err != nil {
		return err
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}

	// Second pass: rewrite the same segments.
	for _, seg := range prose {
		text, err := proc.Replace(seg.Text)
		if err != nil {
			return fmt.Errorf("line %d: %w", seg.Line, err)
		}
		seg.Text = text
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}

	// Third pass: fill bibliography placeholders.
	items, err := proc.BibliographyList()
	if err != nil {
		return err
	}
	list := strings.Join(items, "\n")
	for _, p := range doc.Bibliographies() {
		p.Fill(list)
	}

	res.Citations = proc.Registry().Keys()
	res.Bibliography = path
	res.Style = styleName
	logger.Debug("citations processed", logfields.Count(len(res.Citations)), logfields.Stage("citations"))
	return nil
}

// loadBibliography resolves name against the document directory, then the
// search paths, and parses the file through the cache.
func (c *Converter) loadBibliography(name, docPath string) (*bib.Store, string, error) {
	dirs := make([]string, 0, len(c.cfg.searchPaths)+1)
	if docPath != "" {
		dirs = append(dirs, filepath.Dir(docPath))
	} else {
		dirs = append(dirs, ".")
	}
	dirs = append(dirs, c.cfg.searchPaths...)

	path, err := bib.Resolve(name, dirs...)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrMissingBibliography, err)
	}

	store, err := c.bibs.load(path)
	if err != nil {
		if errors.Is(err, bib.ErrNotFound) {
			return nil, "", fmt.Errorf("%w: %v", ErrMissingBibliography, err)
		}
		return nil, "", err
	}
	return store, path, nil
}

// renderHTML converts the rewritten Markdown to a standalone HTML page and
// measures its reading time.
func (c *Converter) renderHTML(ctx context.Context, doc *document.Document, input Input, res *Result) error {
	title := doc.Title()
	if title == "" && input.Path != "" {
		title = strings.TrimSuffix(filepath.Base(input.Path), filepath.Ext(input.Path))
	}

	htmlContent, err := c.htmlConverter.ToHTML(ctx, res.Text, title)
	if err != nil {
		return fmt.Errorf("converting to HTML: %w", err)
	}

	css, err := pipeline.HighlightCSS(c.cfg.highlightStyle)
	if err != nil {
		return fmt.Errorf("building highlight CSS: %w", err)
	}
	htmlContent = pipeline.InjectCSS(htmlContent, css)

	if input.Path != "" && input.OutputDir != "" {
		htmlContent, err = pipeline.RelocateRelativePaths(htmlContent, filepath.Dir(input.Path), input.OutputDir)
		if err != nil {
			return fmt.Errorf("rewriting relative paths: %w", err)
		}
	}
	htmlContent = pipeline.UndoReplacements(htmlContent)

	minutes, err := pipeline.ReadingTime(htmlContent)
	if err != nil {
		return fmt.Errorf("estimating reading time: %w", err)
	}

	res.HTML = htmlContent
	res.ReadingTime = minutes
	return nil
}
