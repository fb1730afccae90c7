package pipeline

import (
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

// WordsPerMinute is the reading speed used by ReadingTime.
const WordsPerMinute = 200

var (
	// the first bibliography and table of contents are not read
	skipFirst = []cascadia.Matcher{
		cascadia.MustCompile("div.bibliography"),
		cascadia.MustCompile("div.toc"),
	}
	skipAll = cascadia.MustCompile("table, script, style")
)

// ReadingTime estimates whole minutes to read an HTML page, rounded down.
func ReadingTime(htmlContent string) (int, error) {
	words, err := CountWords(htmlContent)
	if err != nil {
		return 0, err
	}
	return words / WordsPerMinute, nil
}

// CountWords counts whitespace-separated words in the readable text of an
// HTML page.
func CountWords(htmlContent string) (int, error) {
	doc, _, err := parseHTML(htmlContent)
	if err != nil {
		return 0, err
	}

	for _, sel := range skipFirst {
		if n := cascadia.Query(doc, sel); n != nil {
			removeNode(n)
		}
	}
	for _, n := range cascadia.QueryAll(doc, skipAll) {
		removeNode(n)
	}

	var b strings.Builder
	collectText(doc, &b)
	return len(strings.Fields(b.String())), nil
}

func removeNode(n *html.Node) {
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

func collectText(n *html.Node, b *strings.Builder) {
	if n.Type == html.TextNode {
		b.WriteString(n.Data)
		b.WriteByte(' ')
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, b)
	}
}
