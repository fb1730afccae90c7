package bib

import (
	"strings"
	"unicode"
)

// Name is a personal name split into BibTeX parts.
type Name struct {
	First string
	Von   string
	Last  string
	Jr    string
}

// Family returns the von and last parts together, e.g. "van Rossum".
func (n Name) Family() string {
	if n.Von == "" {
		return n.Last
	}
	return n.Von + " " + n.Last
}

// Initials returns the first names reduced to initials, e.g. "D. E.".
func (n Name) Initials() string {
	words := splitTopLevel(n.First, ' ')
	parts := make([]string, 0, len(words))
	for _, w := range words {
		w = StripBraces(w)
		if w == "" {
			continue
		}
		// hyphenated first names keep the hyphen: Jean-Paul -> J.-P.
		hyphenated := strings.Split(w, "-")
		for i, h := range hyphenated {
			r := []rune(h)
			if len(r) > 0 {
				hyphenated[i] = string(r[0]) + "."
			}
		}
		parts = append(parts, strings.Join(hyphenated, "-"))
	}
	return strings.Join(parts, " ")
}

// ParseNames splits a BibTeX name list on top-level "and".
func ParseNames(s string) []Name {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	var names []Name
	for _, raw := range splitAnd(s) {
		if raw = strings.TrimSpace(raw); raw != "" {
			names = append(names, parseName(raw))
		}
	}
	return names
}

// ArrangeChicago formats names surname first: "Last, First".
func ArrangeChicago(names []Name) []string {
	out := make([]string, len(names))
	for i, n := range names {
		switch {
		case n.First == "" && n.Jr == "":
			out[i] = n.Family()
		case n.Jr == "":
			out[i] = n.Family() + ", " + n.First
		default:
			out[i] = n.Family() + ", " + n.Jr + ", " + n.First
		}
	}
	return out
}

// parseName handles the three BibTeX forms:
// "First von Last", "von Last, First" and "von Last, Jr, First".
func parseName(raw string) Name {
	parts := splitTopLevel(raw, ',')
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	switch len(parts) {
	case 1:
		words := splitTopLevel(parts[0], ' ')
		if len(words) == 1 {
			return Name{Last: words[0]}
		}
		// von part: lower-case words before the last one, after at least one first name
		last := len(words) - 1
		vonStart := last
		for vonStart > 1 && isLowerWord(words[vonStart-1]) {
			vonStart--
		}
		return Name{
			First: strings.Join(words[:vonStart], " "),
			Von:   strings.Join(words[vonStart:last], " "),
			Last:  words[last],
		}
	case 2:
		von, last := splitVonLast(parts[0])
		return Name{First: parts[1], Von: von, Last: last}
	default:
		von, last := splitVonLast(parts[0])
		return Name{First: strings.Join(parts[2:], ", "), Von: von, Last: last, Jr: parts[1]}
	}
}

// splitVonLast separates leading lower-case words from the last name.
func splitVonLast(s string) (von, last string) {
	words := splitTopLevel(s, ' ')
	i := 0
	for i < len(words)-1 && isLowerWord(words[i]) {
		i++
	}
	return strings.Join(words[:i], " "), strings.Join(words[i:], " ")
}

func isLowerWord(w string) bool {
	for _, r := range w {
		if r == '{' {
			return false
		}
		return unicode.IsLower(r)
	}
	return false
}

// splitAnd splits on the word "and" outside braces.
func splitAnd(s string) []string {
	words := splitTopLevel(s, ' ')
	var (
		names   []string
		current []string
	)
	for _, w := range words {
		if strings.EqualFold(w, "and") {
			names = append(names, strings.Join(current, " "))
			current = nil
			continue
		}
		current = append(current, w)
	}
	return append(names, strings.Join(current, " "))
}

// splitTopLevel splits s on sep outside braces, dropping empty fields when
// sep is a space.
func splitTopLevel(s string, sep rune) []string {
	var (
		fields []string
		depth  int
		start  int
	)
	for i, r := range s {
		switch {
		case r == '{':
			depth++
		case r == '}':
			if depth > 0 {
				depth--
			}
		case depth == 0 && (r == sep || (sep == ' ' && unicode.IsSpace(r))):
			fields = append(fields, s[start:i])
			start = i + len(string(r))
		}
	}
	fields = append(fields, s[start:])

	if sep != ' ' {
		return fields
	}
	nonEmpty := fields[:0]
	for _, f := range fields {
		if f != "" {
			nonEmpty = append(nonEmpty, f)
		}
	}
	return nonEmpty
}
