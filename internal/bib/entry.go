// Package bib loads BibTeX bibliographies and exposes their entries by key.
package bib

import (
	"sort"
	"strings"
)

// Well-known field names.
const (
	FieldAuthor         = "author"
	FieldEditor         = "editor"
	FieldYear           = "year"
	FieldTitle          = "title"
	FieldNote           = "note"
	FieldScholarCluster = "scholarcluster"
	FieldArxiv          = "arxiv"
	FieldRefName        = "refname" // default short-name field
)

// Entry is one bibliography record. Field names are lower case and values
// keep their BibTeX grouping braces.
type Entry struct {
	Key    string
	Type   string
	Fields map[string]string
}

// Field returns the value of a field and whether it is present and non-empty.
func (e *Entry) Field(name string) (string, bool) {
	if e == nil || e.Fields == nil {
		return "", false
	}
	v, ok := e.Fields[strings.ToLower(name)]
	if !ok || strings.TrimSpace(v) == "" {
		return "", false
	}
	return v, true
}

// Has reports whether the field is present and non-empty.
func (e *Entry) Has(name string) bool {
	_, ok := e.Field(name)
	return ok
}

// Text returns a field value with grouping braces removed.
func (e *Entry) Text(name string) string {
	v, _ := e.Field(name)
	return StripBraces(v)
}

// Year returns the publication year, or "" if absent.
func (e *Entry) Year() string {
	return e.Text(FieldYear)
}

// Creators returns the parsed authors, falling back to editors.
func (e *Entry) Creators() []Name {
	if v, ok := e.Field(FieldAuthor); ok {
		return ParseNames(v)
	}
	if v, ok := e.Field(FieldEditor); ok {
		return ParseNames(v)
	}
	return nil
}

// Editors returns the parsed editors.
func (e *Entry) Editors() []Name {
	v, _ := e.Field(FieldEditor)
	return ParseNames(v)
}

// FieldNames returns the entry's field names in sorted order.
func (e *Entry) FieldNames() []string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// StripBraces removes BibTeX grouping braces.
func StripBraces(s string) string {
	return strings.NewReplacer("{", "", "}", "").Replace(s)
}

// SortKey builds the composite key used to order entries by creator and year:
// creator names arranged "Last, First", upper-cased with braces removed,
// followed by the year when present. upper is applied to every name.
func SortKey(e *Entry, upper func(string) string) []string {
	names := ArrangeChicago(e.Creators())
	key := make([]string, 0, len(names)+1)
	for _, n := range names {
		key = append(key, upper(StripBraces(n)))
	}
	if year := e.Year(); year != "" {
		key = append(key, year)
	}
	return key
}
