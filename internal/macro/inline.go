package macro

import "strings"

// Inline is a generic name:target[attrs] macro, e.g. github:yuin/goldmark[].
type Inline struct {
	Name   string
	Text   string
	Target string
	Attrs  string // raw text between the brackets
	Start  int
	End    int
}

// ScanInline returns all inline macros whose name is one of names,
// left to right. Double-colon block macros (name::target[]) never match.
func ScanInline(line string, names ...string) []Inline {
	if len(names) == 0 {
		return nil
	}

	var result []Inline
	pos := 0
	for pos < len(line) {
		idx := strings.IndexByte(line[pos:], ':')
		if idx < 0 {
			break
		}
		colon := pos + idx

		if m, ok := parseInline(line, colon, names); ok {
			result = append(result, m)
			pos = m.End
			continue
		}
		pos = colon + 1
	}

	return result
}

// parseInline tries each name ending at colon.
func parseInline(line string, colon int, names []string) (Inline, bool) {
	for _, name := range names {
		start := colon - len(name)
		if start < 0 || line[start:colon] != name || !atWordBoundary(line, start) {
			continue
		}

		s := &cursor{line: line, pos: colon + 1}
		target := s.takeWhile(func(b byte) bool {
			return b != '[' && b != ']' && b != ' ' && b != '\t' && b != ':'
		})
		if target == "" || !s.consume("[") {
			return Inline{}, false
		}
		attrs, ok := s.until(']', '[')
		if !ok {
			return Inline{}, false
		}
		s.pos++ // ']'

		return Inline{
			Name:   name,
			Text:   line[start:s.pos],
			Target: target,
			Attrs:  attrs,
			Start:  start,
			End:    s.pos,
		}, true
	}
	return Inline{}, false
}
