package markup

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// convertHTML walks fragment's tokens, replacing mapped start and end tags
// with their markup delimiter and keeping unescaped text.
func convertHTML(fragment string, delimiters map[string]string) (string, error) {
	if !strings.ContainsAny(fragment, "<&") {
		return fragment, nil
	}

	var b strings.Builder
	z := html.NewTokenizer(strings.NewReader(fragment))
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			if err := z.Err(); !errors.Is(err, io.EOF) {
				return "", fmt.Errorf("converting HTML fragment: %w", err)
			}
			return b.String(), nil
		case html.TextToken:
			b.WriteString(z.Token().Data)
		case html.StartTagToken, html.EndTagToken:
			name, _ := z.TagName()
			b.WriteString(delimiters[string(name)])
		case html.SelfClosingTagToken:
			if name, _ := z.TagName(); string(name) == "br" {
				b.WriteByte(' ')
			}
		}
	}
}
