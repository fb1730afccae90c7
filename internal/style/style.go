package style

import (
	"fmt"
	"html/template"
	"sort"

	"golang.org/x/text/language"

	"github.com/alnah/go-adocbib/internal/yamlutil"
)

// Style formats.
const (
	FormatNumeric    = "numeric"
	FormatAuthorDate = "author-date"
)

// defaultTemplate is the fallback entry type in template maps.
const defaultTemplate = "default"

// Style is a parsed style definition. It is immutable after Parse.
type Style struct {
	Name         string            `yaml:"name"`
	Title        string            `yaml:"title"`
	Format       string            `yaml:"format"`
	Names        NameOptions       `yaml:"names"`
	Terms        map[string]Terms  `yaml:"terms"`
	Citation     map[string]string `yaml:"citation"`
	Bibliography map[string]string `yaml:"bibliography"`

	citation     map[string]*template.Template
	bibliography map[string]*template.Template
	termTags     []language.Tag
	termSets     []Terms
	matcher      language.Matcher
}

// NameOptions controls how creator lists are written.
type NameOptions struct {
	Form         string `yaml:"form"`       // given-first or family-first
	FirstForm    string `yaml:"first-form"` // overrides Form for the first name
	Initials     bool   `yaml:"initials"`
	And          string `yaml:"and"` // text, symbol or none
	SerialComma  bool   `yaml:"serial-comma"`
	EtAlMin      int    `yaml:"et-al-min"`
	EtAlUseFirst int    `yaml:"et-al-use-first"`
	CiteEtAlMin  int    `yaml:"cite-et-al-min"`
}

// Name forms.
const (
	FormGivenFirst  = "given-first"
	FormFamilyFirst = "family-first"
)

// Parse decodes and compiles a YAML style definition.
func Parse(data []byte) (*Style, error) {
	var s Style
	if err := yamlutil.UnmarshalStrict(data, &s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidStyle, err)
	}
	if err := s.compile(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Numeric reports whether citations are written as bibliography numbers.
func (s *Style) Numeric() bool {
	return s.Format == FormatNumeric
}

// TermsFor returns the term set best matching locale.
func (s *Style) TermsFor(locale language.Tag) Terms {
	_, index, _ := s.matcher.Match(locale)
	return s.termSets[index]
}

func (s *Style) compile() error {
	switch s.Format {
	case "":
		s.Format = FormatAuthorDate
	case FormatNumeric, FormatAuthorDate:
	default:
		return fmt.Errorf("%w: unknown format %q", ErrInvalidStyle, s.Format)
	}

	switch s.Names.Form {
	case "":
		s.Names.Form = FormGivenFirst
	case FormGivenFirst, FormFamilyFirst:
	default:
		return fmt.Errorf("%w: unknown name form %q", ErrInvalidStyle, s.Names.Form)
	}
	switch s.Names.FirstForm {
	case "", FormGivenFirst, FormFamilyFirst:
	default:
		return fmt.Errorf("%w: unknown name form %q", ErrInvalidStyle, s.Names.FirstForm)
	}
	switch s.Names.And {
	case "":
		s.Names.And = AndText
	case AndText, AndSymbol, AndNone:
	default:
		return fmt.Errorf("%w: unknown and mode %q", ErrInvalidStyle, s.Names.And)
	}
	if s.Names.EtAlUseFirst <= 0 {
		s.Names.EtAlUseFirst = 1
	}
	if s.Names.CiteEtAlMin <= 0 {
		s.Names.CiteEtAlMin = 3
	}

	var err error
	if s.citation, err = compileTemplates("citation", s.Citation); err != nil {
		return err
	}
	if s.bibliography, err = compileTemplates("bibliography", s.Bibliography); err != nil {
		return err
	}

	s.compileTerms()
	return nil
}

func compileTemplates(kind string, sources map[string]string) (map[string]*template.Template, error) {
	if _, ok := sources[defaultTemplate]; !ok {
		return nil, fmt.Errorf("%w: %s has no %q template", ErrInvalidStyle, kind, defaultTemplate)
	}

	compiled := make(map[string]*template.Template, len(sources))
	for entryType, src := range sources {
		tmpl, err := template.New(kind + "/" + entryType).Option("missingkey=zero").Parse(src)
		if err != nil {
			return nil, fmt.Errorf("%w: %s/%s: %v", ErrInvalidStyle, kind, entryType, err)
		}
		compiled[entryType] = tmpl
	}
	return compiled, nil
}

// compileTerms merges the style's terms over the built-in ones and builds a
// matcher with English first, so unmatched locales fall back to it.
func (s *Style) compileTerms() {
	merged := make(map[string]Terms, len(builtinTerms)+len(s.Terms))
	for tag, t := range builtinTerms {
		merged[tag] = t
	}
	for tag, t := range s.Terms {
		base, ok := merged[tag]
		if !ok {
			base = builtinTerms["en"]
		}
		merged[tag] = base.merge(t)
	}

	tags := make([]string, 0, len(merged))
	for tag := range merged {
		if tag != "en" {
			tags = append(tags, tag)
		}
	}
	sort.Strings(tags)
	tags = append([]string{"en"}, tags...)

	s.termTags = make([]language.Tag, 0, len(tags))
	s.termSets = make([]Terms, 0, len(tags))
	for _, tag := range tags {
		parsed, err := language.Parse(tag)
		if err != nil {
			continue
		}
		s.termTags = append(s.termTags, parsed)
		s.termSets = append(s.termSets, merged[tag])
	}
	s.matcher = language.NewMatcher(s.termTags)
}

func (s *Style) citationTemplate(entryType string) *template.Template {
	if t, ok := s.citation[entryType]; ok {
		return t
	}
	return s.citation[defaultTemplate]
}

func (s *Style) bibliographyTemplate(entryType string) *template.Template {
	if t, ok := s.bibliography[entryType]; ok {
		return t
	}
	return s.bibliography[defaultTemplate]
}
