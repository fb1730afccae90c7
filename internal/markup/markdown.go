package markup

import (
	"html"
	"strconv"
	"strings"
)

// Markdown writes CommonMark with inline HTML where Markdown has no syntax.
type Markdown struct{}

func (Markdown) Name() string { return NameMarkdown }

var linkTextEscaper = strings.NewReplacer("[", `\[`, "]", `\]`)

func (Markdown) XRef(key, text string) string {
	return "[" + linkTextEscaper.Replace(text) + "](#" + key + ")"
}

func (Markdown) Anchor(key string) string {
	return `<a id="` + html.EscapeString(key) + `"></a>`
}

func (m Markdown) Link(url, text string) string {
	return m.IconLink(url, text, "")
}

func (Markdown) IconLink(url, text, icon string) string {
	return "[" + linkTextEscaper.Replace(text) + icon + "](" + url + ")"
}

// Literal backslash-escapes ASCII punctuation.
func (Markdown) Literal(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r < 0x80 && strings.ContainsRune("\\`*_{}[]()#+-.!<>|~", r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (Markdown) ListItem(text string) string {
	return "- " + text
}

func (Markdown) Superscript(s string) string {
	return "<sup>" + s + "</sup>"
}

func (Markdown) Image(url, alt string, width, height int) string {
	return `<img src="` + html.EscapeString(url) + `" alt="` + html.EscapeString(alt) +
		`" width="` + strconv.Itoa(width) + `" height="` + strconv.Itoa(height) + `">`
}

var markdownTags = map[string]string{
	"i":      "*",
	"em":     "*",
	"b":      "**",
	"strong": "**",
	"code":   "`",
}

// FromHTML maps italics to * and bold to ** and drops other tags.
func (Markdown) FromHTML(fragment string) (string, error) {
	out, err := convertHTML(fragment, markdownTags)
	if err != nil {
		return "", err
	}
	return strings.NewReplacer("{", "", "}", "").Replace(out), nil
}

// Compile-time interface check.
var _ Syntax = Markdown{}
