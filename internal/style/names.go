package style

import (
	"strings"

	"github.com/alnah/go-adocbib/internal/bib"
)

// formatNames writes a creator list for the bibliography.
func (s *Style) formatNames(names []bib.Name, terms Terms) string {
	if len(names) == 0 {
		return ""
	}

	opts := s.Names
	etAl := opts.EtAlMin > 0 && len(names) >= opts.EtAlMin
	if etAl {
		names = names[:min(opts.EtAlUseFirst, len(names))]
	}

	parts := make([]string, len(names))
	for i, n := range names {
		form := opts.Form
		if i == 0 && opts.FirstForm != "" {
			form = opts.FirstForm
		}
		parts[i] = formatName(n, form, opts.Initials)
	}

	if etAl {
		return strings.Join(parts, ", ") + " " + terms.EtAl
	}
	return s.joinNames(parts, terms)
}

// shortNames writes the family names used in author-date citations.
func (s *Style) shortNames(names []bib.Name, terms Terms) string {
	switch {
	case len(names) == 0:
		return ""
	case len(names) >= s.Names.CiteEtAlMin:
		return bib.StripBraces(names[0].Family()) + " " + terms.EtAl
	}

	parts := make([]string, len(names))
	for i, n := range names {
		parts[i] = bib.StripBraces(n.Family())
	}
	return s.joinNames(parts, terms)
}

func (s *Style) joinNames(parts []string, terms Terms) string {
	and := terms.And
	switch s.Names.And {
	case AndSymbol:
		and = "&"
	case AndNone:
		and = ""
	}

	switch len(parts) {
	case 0:
		return ""
	case 1:
		return parts[0]
	}

	head := strings.Join(parts[:len(parts)-1], ", ")
	last := parts[len(parts)-1]
	if and == "" {
		return head + ", " + last
	}
	if len(parts) > 2 && s.Names.SerialComma {
		head += ","
	}
	return head + " " + and + " " + last
}

// formatName writes one name. Jr parts follow the given names.
func formatName(n bib.Name, form string, initials bool) string {
	given := n.First
	if initials {
		given = n.Initials()
	}
	given = bib.StripBraces(given)
	family := bib.StripBraces(n.Family())
	jr := bib.StripBraces(n.Jr)

	if given == "" {
		if jr != "" {
			return family + ", " + jr
		}
		return family
	}

	if form == FormFamilyFirst {
		if jr != "" {
			return family + ", " + given + ", " + jr
		}
		return family + ", " + given
	}

	if jr != "" {
		return given + " " + family + ", " + jr
	}
	return given + " " + family
}
