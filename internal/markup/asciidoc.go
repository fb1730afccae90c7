package markup

import (
	"strconv"
	"strings"
)

// AsciiDoc writes AsciiDoc markup.
type AsciiDoc struct{}

func (AsciiDoc) Name() string { return NameAsciiDoc }

// XRef writes <<key,text>>. Commas in text are encoded so the label is not
// split into attributes.
func (AsciiDoc) XRef(key, text string) string {
	return "<<" + key + "," + strings.ReplaceAll(text, ",", "&#44;") + ">>"
}

func (AsciiDoc) Anchor(key string) string {
	return "[[" + key + "]]"
}

func (a AsciiDoc) Link(url, text string) string {
	return a.IconLink(url, text, "")
}

func (AsciiDoc) IconLink(url, text, icon string) string {
	return url + "[" + strings.ReplaceAll(text, "]", `\]`) + icon + "]"
}

// Literal wraps s in an inline passthrough.
func (AsciiDoc) Literal(s string) string {
	if s == "" {
		return ""
	}
	return "+" + s + "+"
}

func (AsciiDoc) ListItem(text string) string {
	return "- " + text
}

func (AsciiDoc) Superscript(s string) string {
	return "^" + s + "^"
}

func (AsciiDoc) Image(url, alt string, width, height int) string {
	return "image:" + url + "[" + alt + "," + strconv.Itoa(width) + "," + strconv.Itoa(height) + "]"
}

var asciidocTags = map[string]string{
	"i":      "_",
	"em":     "_",
	"b":      "*",
	"strong": "*",
	"sup":    "^",
	"sub":    "~",
	"code":   "`",
}

// FromHTML maps italics to _, bold to * and drops other tags.
// BibTeX grouping braces left in the text are removed.
func (AsciiDoc) FromHTML(fragment string) (string, error) {
	out, err := convertHTML(fragment, asciidocTags)
	if err != nil {
		return "", err
	}
	return strings.NewReplacer("{", "", "}", "").Replace(out), nil
}

// Compile-time interface check.
var _ Syntax = AsciiDoc{}
