package macro

import "strings"

// Citation macro types.
const (
	TypeCite   = "cite"
	TypeCitep  = "citep"
	TypeCitenp = "citenp"
)

// citationPrefix is the common prefix of all citation macro names.
const citationPrefix = "cite"

// Item is a single cited key with an optional locator.
type Item struct {
	Key     string
	Locator string // page or range, without the surrounding parentheses
}

// Citation is a parsed citation macro.
type Citation struct {
	Text    string // full macro text as it appears in the line
	Type    string // TypeCite, TypeCitep or TypeCitenp
	Pretext string
	Items   []Item
	Start   int // byte offset of Text in the line
	End     int // byte offset just past Text
}

// Keys returns the cited keys in declared order.
func (c Citation) Keys() []string {
	keys := make([]string, len(c.Items))
	for i, item := range c.Items {
		keys[i] = item.Key
	}
	return keys
}

// ScanCitations returns all citation macros in line, left to right.
func ScanCitations(line string) []Citation {
	var result []Citation

	pos := 0
	for pos < len(line) {
		idx := strings.Index(line[pos:], citationPrefix)
		if idx < 0 {
			break
		}
		start := pos + idx

		if c, ok := parseCitation(line, start); ok {
			result = append(result, c)
			pos = c.End
			continue
		}
		pos = start + len(citationPrefix)
	}

	return result
}

// parseCitation tries to parse a citation macro beginning at start.
func parseCitation(line string, start int) (Citation, bool) {
	if !atWordBoundary(line, start) {
		return Citation{}, false
	}

	s := &cursor{line: line, pos: start + len(citationPrefix)}

	var typ string
	switch {
	case s.consume("np:"):
		typ = TypeCitenp
	case s.consume("p:"):
		typ = TypeCitep
	case s.consume(":"):
		typ = TypeCite
	default:
		return Citation{}, false
	}

	pretext, ok := s.until('[', ']')
	if !ok {
		return Citation{}, false
	}
	s.pos++ // '['

	items, ok := parseItems(s)
	if !ok {
		return Citation{}, false
	}

	return Citation{
		Text:    line[start:s.pos],
		Type:    typ,
		Pretext: pretext,
		Items:   items,
		Start:   start,
		End:     s.pos,
	}, true
}

// parseItems parses "key(loc), key, ...]" and leaves the cursor after ']'.
func parseItems(s *cursor) ([]Item, bool) {
	var items []Item
	for {
		s.skipSpaces()

		key := s.takeWhile(isKeyChar)
		if key == "" {
			return nil, false
		}

		var locator string
		if s.peek() == '(' {
			loc, ok := s.balancedParens()
			if !ok {
				return nil, false
			}
			locator = loc
		}
		items = append(items, Item{Key: key, Locator: locator})

		s.skipSpaces()
		switch s.peek() {
		case ',':
			s.pos++
		case ']':
			s.pos++
			return items, true
		default:
			return nil, false
		}
	}
}

// isKeyChar reports whether b may appear in a citation key.
func isKeyChar(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', ',', '(', ')', '[', ']':
		return false
	}
	return true
}
