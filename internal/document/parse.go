package document

import (
	"regexp"
	"strings"
)

// Precompiled line patterns.
var (
	// :name: value attribute entries; unset entries (:name!:) are skipped
	attributeEntry = regexp.MustCompile(`^:([A-Za-z0-9_][A-Za-z0-9_-]*):(?:\s+(.*))?$`)

	// bibliography::refs.bib[ieee,en-US]
	bibliographyMacro = regexp.MustCompile(`^bibliography::(\S*)\[(.*)\]\s*$`)

	// other block macros such as image::x.png[] and include::a.adoc[]
	blockMacro = regexp.MustCompile(`^[A-Za-z][\w-]*::\S*\[.*\]\s*$`)

	// [source,go], [[anchor]], [#id.role]
	blockAttribute = regexp.MustCompile(`^\[\[?[^\[\]]*\]\]?\s*$`)

	// [literal], [listing], [source,go], [pass]: the next paragraph is verbatim
	verbatimStyle = regexp.MustCompile(`^\[(?:literal|listing|source|pass)(?:[,#.%][^\]]*)?\]\s*$`)

	adocSection = regexp.MustCompile(`^(={1,6}|#{1,6})\s+`)
	adocTitle   = regexp.MustCompile(`^\.[^.\s]`)
	adocList    = regexp.MustCompile(`^\s*(?:[*\-]+|\.+|\d+\.|<\d+>)\s+`)
	adocTerm    = regexp.MustCompile(`^(.+?)(::|;;|:::)(\s+|$)`)

	mdHeading = regexp.MustCompile(`^\s{0,3}#{1,6}\s+`)
	mdList    = regexp.MustCompile(`^\s*(?:[*+\-]|\d+[.)])\s+(?:\[[ xX]\]\s+)?`)
	mdQuote   = regexp.MustCompile(`^\s{0,3}(?:>\s?)+`)
	mdFence   = regexp.MustCompile("^\\s{0,3}(`{3,}|~{3,})")
)

// Parse splits text into lines according to dialect.
func Parse(text string, dialect Dialect) *Document {
	d := &Document{
		attrs: make(map[string]string),
		eol:   "\n",
	}
	if strings.Contains(text, "\r\n") {
		d.eol = "\r\n"
		text = strings.ReplaceAll(text, "\r\n", "\n")
	}
	if strings.HasSuffix(text, "\n") {
		d.finalEOL = true
		text = strings.TrimSuffix(text, "\n")
	}
	if text == "" && !d.finalEOL {
		return d
	}

	p := &parser{doc: d, dialect: dialect, blockStart: true}
	for i, raw := range strings.Split(text, "\n") {
		d.lines = append(d.lines, p.line(raw, i+1))
	}
	return d
}

type parser struct {
	doc     *Document
	dialect Dialect

	fence   string // open verbatim delimiter, "" outside blocks
	table   bool   // inside |=== (AsciiDoc)
	inBody  bool   // past the first non-blank line
	inFront bool   // inside Markdown --- front matter

	blockStart   bool // the line may open a new block
	literal      bool // inside a literal paragraph, until a blank line (AsciiDoc)
	verbatimNext bool // a verbatim style applies to the next paragraph (AsciiDoc)
	indented     bool // inside an indented code block (Markdown)
	inList       bool // indented lines continue list items (Markdown)
}

func (p *parser) line(raw string, n int) *Line {
	verbatim := func() *Line {
		return &Line{Kind: KindVerbatim, Segments: []*Segment{{Text: raw, Line: n}}}
	}
	prose := func(kind Kind, prefix, text string) *Line {
		l := &Line{Kind: kind}
		if prefix != "" {
			l.Segments = append(l.Segments, &Segment{Text: prefix, Line: n})
		}
		l.Segments = append(l.Segments, &Segment{Text: text, Prose: true, Line: n})
		return l
	}

	trimmed := strings.TrimSpace(raw)
	first := !p.inBody && trimmed != ""
	if trimmed != "" {
		p.inBody = true
	}
	start := p.blockStart
	p.blockStart = false

	if p.fence != "" {
		if p.closesFence(trimmed) {
			p.fence = ""
			p.blockStart = true
		}
		return verbatim()
	}
	if p.inFront {
		if trimmed == "---" {
			p.inFront = false
			p.blockStart = true
		}
		return verbatim()
	}
	if p.literal {
		if trimmed == "" {
			p.literal = false
			p.blockStart = true
		}
		return verbatim()
	}
	if p.indented {
		if trimmed == "" || indentWidth(raw) >= 4 {
			p.blockStart = true
			return verbatim()
		}
		p.indented = false
	}

	if trimmed == "" {
		p.blockStart = true
		return verbatim()
	}
	if p.dialect == Markdown && first && trimmed == "---" {
		p.inFront = true
		return verbatim()
	}
	if fence := p.opensFence(raw, trimmed); fence != "" {
		p.fence = fence
		p.verbatimNext = false
		return verbatim()
	}
	if start && p.opensIndentedBlock(raw) {
		return verbatim()
	}

	if m := bibliographyMacro.FindStringSubmatch(trimmed); m != nil {
		ph := &Placeholder{Target: m[1], Line: n, source: raw}
		ph.Style, ph.Locale = parseMacroArgs(m[2])
		p.doc.placeholders = append(p.doc.placeholders, ph)
		p.blockStart = true
		return &Line{Kind: KindBibliography, Segments: []*Segment{{Text: raw, Line: n}}}
	}

	if p.dialect == Markdown {
		return p.markdownLine(raw, n, prose, verbatim)
	}
	return p.asciidocLine(raw, trimmed, n, first, prose, verbatim)
}

type proseFunc func(kind Kind, prefix, text string) *Line

func (p *parser) asciidocLine(raw, trimmed string, n int, first bool, prose proseFunc, verbatim func() *Line) *Line {
	if trimmed == "|===" || trimmed == ",===" || trimmed == ":===" {
		p.table = !p.table
		p.verbatimNext = false
		p.blockStart = true
		return verbatim()
	}
	if strings.HasPrefix(trimmed, "//") {
		p.blockStart = true
		return verbatim()
	}
	if m := attributeEntry.FindStringSubmatch(raw); m != nil {
		p.doc.attrs[m[1]] = strings.TrimSpace(m[2])
		p.blockStart = true
		return verbatim()
	}
	if blockAttribute.MatchString(trimmed) {
		if verbatimStyle.MatchString(trimmed) {
			p.verbatimNext = true
		}
		p.blockStart = true
		return verbatim()
	}
	if blockMacro.MatchString(trimmed) {
		p.verbatimNext = false
		p.blockStart = true
		return verbatim()
	}

	if p.table && strings.Contains(raw, "|") {
		return tableRow(raw, n)
	}

	if loc := adocSection.FindStringIndex(raw); loc != nil {
		if first && strings.HasPrefix(raw, "= ") {
			p.doc.title = strings.TrimSpace(raw[loc[1]:])
		}
		p.verbatimNext = false
		p.blockStart = true
		return prose(KindTitle, raw[:loc[1]], raw[loc[1]:])
	}
	if adocTitle.MatchString(raw) {
		p.blockStart = true
		return prose(KindTitle, ".", raw[1:])
	}
	if p.verbatimNext {
		p.verbatimNext = false
		p.literal = true
		return verbatim()
	}
	if loc := adocList.FindStringIndex(raw); loc != nil {
		return prose(KindListItem, raw[:loc[1]], raw[loc[1]:])
	}
	if loc := adocTerm.FindStringSubmatchIndex(raw); loc != nil && !strings.Contains(raw[:loc[3]], "[") {
		// term:: description; both halves are prose
		return &Line{Kind: KindListItem, Segments: []*Segment{
			{Text: raw[:loc[3]], Prose: true, Line: n},
			{Text: raw[loc[3]:loc[1]], Line: n},
			{Text: raw[loc[1]:], Prose: true, Line: n},
		}}
	}
	return prose(KindParagraph, "", raw)
}

func (p *parser) markdownLine(raw string, n int, prose proseFunc, verbatim func() *Line) *Line {
	if strings.HasPrefix(strings.TrimSpace(raw), "<!--") {
		return verbatim()
	}
	if strings.HasPrefix(strings.TrimSpace(raw), "|") {
		return tableRow(raw, n)
	}

	if loc := mdHeading.FindStringIndex(raw); loc != nil {
		if p.doc.title == "" && strings.HasPrefix(strings.TrimSpace(raw), "# ") {
			p.doc.title = strings.TrimSpace(raw[loc[1]:])
		}
		p.inList = false
		p.blockStart = true
		return prose(KindTitle, raw[:loc[1]], raw[loc[1]:])
	}
	prefix := ""
	if loc := mdQuote.FindStringIndex(raw); loc != nil {
		prefix = raw[:loc[1]]
	}
	if loc := mdList.FindStringIndex(raw[len(prefix):]); loc != nil {
		end := len(prefix) + loc[1]
		p.inList = true
		return prose(KindListItem, raw[:end], raw[end:])
	}
	if indentWidth(raw) == 0 {
		p.inList = false
	}
	return prose(KindParagraph, prefix, raw[len(prefix):])
}

// opensIndentedBlock reports whether a line at the start of a block opens
// verbatim content: an AsciiDoc literal paragraph or a Markdown indented
// code block. List items and table cells keep their indentation.
func (p *parser) opensIndentedBlock(raw string) bool {
	if p.dialect == Markdown {
		if p.inList || indentWidth(raw) < 4 {
			return false
		}
		p.indented = true
		return true
	}
	if p.table || indentWidth(raw) == 0 || adocList.MatchString(raw) {
		return false
	}
	p.literal = true
	p.verbatimNext = false
	return true
}

// indentWidth returns the leading whitespace width, counting a tab as four
// columns.
func indentWidth(raw string) int {
	w := 0
	for _, r := range raw {
		switch r {
		case ' ':
			w++
		case '\t':
			w += 4
		default:
			return w
		}
	}
	return w
}

// opensFence returns the delimiter that opens a verbatim block on this line.
func (p *parser) opensFence(raw, trimmed string) string {
	if p.dialect == Markdown {
		if m := mdFence.FindStringSubmatch(raw); m != nil {
			return m[1]
		}
		return ""
	}

	// ----, ...., ++++, ////, ```: four or more of one character, or a
	// three-backtick fence
	if trimmed == "```" || strings.HasPrefix(trimmed, "```") && !strings.Contains(trimmed[3:], "`") {
		return "```"
	}
	if len(trimmed) < 4 {
		return ""
	}
	switch trimmed[0] {
	case '-', '.', '+', '/':
		if strings.Count(trimmed, trimmed[:1]) == len(trimmed) {
			return trimmed
		}
	}
	return ""
}

// closesFence reports whether trimmed closes the open block.
func (p *parser) closesFence(trimmed string) bool {
	if p.dialect == Markdown {
		ch := p.fence[:1]
		return len(trimmed) >= len(p.fence) && strings.Count(trimmed, ch) == len(trimmed)
	}
	return trimmed == p.fence
}

// tableRow splits a table line on cell separators. Separators and cell
// specifiers such as 2+ stay verbatim.
func tableRow(raw string, n int) *Line {
	l := &Line{Kind: KindTableRow}
	start := 0
	for i := 0; i < len(raw); i++ {
		if raw[i] != '|' || (i > 0 && raw[i-1] == '\\') {
			continue
		}
		if start < i {
			l.Segments = append(l.Segments, &Segment{Text: raw[start:i], Prose: true, Line: n})
		}
		l.Segments = append(l.Segments, &Segment{Text: "|", Line: n})
		start = i + 1
	}
	if start < len(raw) {
		l.Segments = append(l.Segments, &Segment{Text: raw[start:], Prose: true, Line: n})
	}
	return l
}

// parseMacroArgs reads [style,locale] positionally or as style=, locale=.
func parseMacroArgs(args string) (style, locale string) {
	positional := 0
	for _, arg := range strings.Split(args, ",") {
		arg = strings.TrimSpace(arg)
		if arg == "" {
			positional++
			continue
		}
		if name, value, ok := strings.Cut(arg, "="); ok {
			value = strings.Trim(strings.TrimSpace(value), `"'`)
			switch strings.TrimSpace(name) {
			case "style":
				style = value
			case "locale":
				locale = value
			}
			continue
		}
		switch positional {
		case 0:
			style = arg
		case 1:
			locale = arg
		}
		positional++
	}
	return style, locale
}
