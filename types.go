package adocbib

import (
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/text/language"

	"github.com/alnah/go-adocbib/internal/style"
)

// Defaults applied when neither options nor the document set a value.
const (
	DefaultStyle  = style.DefaultName
	DefaultLocale = "en-US"
)

// Document attributes read from the header. They override the
// bibliography:: macro arguments and are overridden by WithOverrides.
const (
	AttrFile             = "bibtex-file"
	AttrStyle            = "bibtex-style"
	AttrLocale           = "bibtex-locale"
	AttrOrder            = "bibtex-order"
	AttrThrow            = "bibtex-throw"
	AttrCitationTemplate = "bibtex-citation-template"
)

// Input contains conversion parameters.
type Input struct {
	Content string // document text (required)
	Path    string // source path, selects the syntax and anchors bibliography lookup
	Syntax  string // "asciidoc" or "markdown", overrides detection from Path
	HTML    bool   // also render HTML; Markdown only

	// OutputDir is where HTML is written; relative links are rewritten to
	// stay valid from there. Empty keeps them unchanged.
	OutputDir string
}

// Result is the outcome of a conversion.
type Result struct {
	Text         string   // rewritten document
	HTML         string   // set when Input.HTML is true
	ReadingTime  int      // minutes, set with HTML
	Citations    []string // finalized keys in bibliography order
	Bibliography string   // bibliography file used, empty when passed through
	Style        string   // style name used
}

// Settings are the citation settings of one document. Empty fields and a
// nil Strict mean "not set" so layers can be merged.
type Settings struct {
	Bibliography     string
	Style            string
	Locale           string
	Order            string
	Strict           *bool
	CitationTemplate string
}

// merge returns s with the set fields of o applied.
func (s Settings) merge(o Settings) Settings {
	if o.Bibliography != "" {
		s.Bibliography = o.Bibliography
	}
	if o.Style != "" {
		s.Style = o.Style
	}
	if o.Locale != "" {
		s.Locale = o.Locale
	}
	if o.Order != "" {
		s.Order = o.Order
	}
	if o.Strict != nil {
		v := *o.Strict
		s.Strict = &v
	}
	if o.CitationTemplate != "" {
		s.CitationTemplate = o.CitationTemplate
	}
	return s
}

// Validate checks the fields that have a closed set of values.
func (s Settings) Validate() error {
	if s.Locale != "" {
		if _, err := parseLocale(s.Locale); err != nil {
			return err
		}
	}
	if _, err := ParseOrder(s.Order); err != nil {
		return err
	}
	if s.Style != "" {
		if err := style.ValidateName(s.Style); err != nil {
			return err
		}
	}
	return nil
}

func parseLocale(s string) (language.Tag, error) {
	tag, err := language.Parse(strings.TrimSpace(s))
	if err != nil {
		return language.Und, fmt.Errorf("%w: %q: %v", ErrInvalidLocale, s, err)
	}
	return tag, nil
}

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	defaults       Settings
	overrides      Settings
	links          bool
	inlineMacros   bool
	shortNameField string
	styleDir       string
	searchPaths    []string
	highlightStyle string
	logger         *slog.Logger
}

// defaultSearchPaths are tried after the document directory when a
// bibliography name is not an existing file.
var defaultSearchPaths = []string{"source"}

// WithDefaults sets the lowest-precedence settings, typically from a config
// file. Document attributes and macro arguments override them.
func WithDefaults(s Settings) Option {
	return func(c *Converter) {
		c.cfg.defaults = c.cfg.defaults.merge(s)
	}
}

// WithOverrides sets settings that win over the document, typically from
// environment variables and command-line flags.
func WithOverrides(s Settings) Option {
	return func(c *Converter) {
		c.cfg.overrides = c.cfg.overrides.merge(s)
	}
}

// WithStyle sets the default citation style.
func WithStyle(name string) Option {
	return WithDefaults(Settings{Style: name})
}

// WithLocale sets the default locale, a BCP 47 tag.
func WithLocale(tag string) Option {
	return WithDefaults(Settings{Locale: tag})
}

// WithOrder sets the default citation order.
func WithOrder(order Order) Option {
	return WithDefaults(Settings{Order: string(order)})
}

// WithStrict makes unknown citation keys fatal by default.
func WithStrict(strict bool) Option {
	return WithDefaults(Settings{Strict: &strict})
}

// WithCitationTemplate sets the default numeric citation template.
func WithCitationTemplate(tmpl string) Option {
	return WithDefaults(Settings{CitationTemplate: tmpl})
}

// WithBibliography sets the default bibliography file or glob.
func WithBibliography(path string) Option {
	return WithDefaults(Settings{Bibliography: path})
}

// WithLinks toggles cross references between citations and bibliography
// items. Enabled by default.
func WithLinks(enabled bool) Option {
	return func(c *Converter) {
		c.cfg.links = enabled
	}
}

// WithInlineMacros toggles the github:, man: and sidenote: macros.
// Enabled by default.
func WithInlineMacros(enabled bool) Option {
	return func(c *Converter) {
		c.cfg.inlineMacros = enabled
	}
}

// WithShortNameField names the entry field used as a citation label.
func WithShortNameField(field string) Option {
	return func(c *Converter) {
		c.cfg.shortNameField = field
	}
}

// WithStyleDir adds a directory of custom YAML styles, searched before the
// built-in ones.
func WithStyleDir(dir string) Option {
	return func(c *Converter) {
		c.cfg.styleDir = dir
	}
}

// WithSearchPaths sets the directories searched for bibliography files
// after the document directory. Defaults to "source".
func WithSearchPaths(dirs ...string) Option {
	return func(c *Converter) {
		c.cfg.searchPaths = append([]string(nil), dirs...)
	}
}

// WithHighlightStyle sets the chroma style used for code in HTML output.
func WithHighlightStyle(name string) Option {
	return func(c *Converter) {
		c.cfg.highlightStyle = name
	}
}

// WithLogger sets the logger for degraded citations and progress.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Converter) {
		c.cfg.logger = logger
	}
}
