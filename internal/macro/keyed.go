package macro

import "strings"

// Key macro names.
const (
	NameBibitem = "bibitem"
	NameBiblink = "biblink"
)

// Keyed is a macro of the form name:arg[key], such as bibitem:[knuth84].
type Keyed struct {
	Name  string
	Text  string
	Arg   string // optional word argument between ':' and '['
	Key   string
	Start int
	End   int
}

// ScanBibitems returns all bibitem macros in line.
func ScanBibitems(line string) []Keyed {
	return ScanKeyed(line, NameBibitem)
}

// ScanBiblinks returns all biblink macros in line.
func ScanBiblinks(line string) []Keyed {
	return ScanKeyed(line, NameBiblink)
}

// ScanKeyed returns all name:arg[key] macros in line, left to right.
func ScanKeyed(line, name string) []Keyed {
	if name == "" {
		return nil
	}

	var result []Keyed
	prefix := name + ":"

	pos := 0
	for pos < len(line) {
		idx := strings.Index(line[pos:], prefix)
		if idx < 0 {
			break
		}
		start := pos + idx

		if m, ok := parseKeyed(line, start, name); ok {
			result = append(result, m)
			pos = m.End
			continue
		}
		pos = start + len(prefix)
	}

	return result
}

func parseKeyed(line string, start int, name string) (Keyed, bool) {
	if !atWordBoundary(line, start) {
		return Keyed{}, false
	}

	s := &cursor{line: line, pos: start + len(name) + 1}
	arg := s.takeWhile(isWordChar)
	if !s.consume("[") {
		return Keyed{}, false
	}

	key := s.takeWhile(func(b byte) bool {
		return b != ']' && b != ' ' && b != '\t'
	})
	if key == "" || !s.consume("]") {
		return Keyed{}, false
	}

	return Keyed{
		Name:  name,
		Text:  line[start:s.pos],
		Arg:   arg,
		Key:   key,
		Start: start,
		End:   s.pos,
	}, true
}
