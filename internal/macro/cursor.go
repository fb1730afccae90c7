package macro

import "strings"

// cursor walks a line byte by byte.
type cursor struct {
	line string
	pos  int
}

func (c *cursor) peek() byte {
	if c.pos >= len(c.line) {
		return 0
	}
	return c.line[c.pos]
}

// consume advances past prefix if the line continues with it.
func (c *cursor) consume(prefix string) bool {
	if strings.HasPrefix(c.line[c.pos:], prefix) {
		c.pos += len(prefix)
		return true
	}
	return false
}

func (c *cursor) skipSpaces() {
	for c.pos < len(c.line) && (c.line[c.pos] == ' ' || c.line[c.pos] == '\t') {
		c.pos++
	}
}

// takeWhile consumes bytes while accept returns true.
func (c *cursor) takeWhile(accept func(byte) bool) string {
	start := c.pos
	for c.pos < len(c.line) && accept(c.line[c.pos]) {
		c.pos++
	}
	return c.line[start:c.pos]
}

// until consumes text up to (not including) stop. It fails if the line ends
// first or if a forbidden byte is met.
func (c *cursor) until(stop, forbidden byte) (string, bool) {
	start := c.pos
	for c.pos < len(c.line) {
		switch c.line[c.pos] {
		case stop:
			return c.line[start:c.pos], true
		case forbidden:
			return "", false
		}
		c.pos++
	}
	return "", false
}

// balancedParens consumes "(...)" with nested parentheses and returns the
// inner text. The cursor must be on '('.
func (c *cursor) balancedParens() (string, bool) {
	start := c.pos + 1
	depth := 0
	for c.pos < len(c.line) {
		switch c.line[c.pos] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				inner := c.line[start:c.pos]
				c.pos++
				return inner, true
			}
		case ']':
			return "", false
		}
		c.pos++
	}
	return "", false
}

// atWordBoundary reports whether a macro name may start at pos.
func atWordBoundary(line string, pos int) bool {
	return pos == 0 || !isWordChar(line[pos-1])
}

func isWordChar(b byte) bool {
	return b == '_' ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9')
}
