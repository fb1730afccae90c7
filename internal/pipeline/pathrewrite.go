package pipeline

import (
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// RelocateRelativePaths rewrites relative img[src] and a[href] paths, which
// are relative to sourceDir, so they resolve from outputDir instead.
// Returns htmlContent unchanged when either directory is empty or both are
// the same.
//
// URLs, anchors and absolute paths are left alone.
func RelocateRelativePaths(htmlContent, sourceDir, outputDir string) (string, error) {
	if sourceDir == "" || outputDir == "" {
		return htmlContent, nil
	}

	absSource, err := filepath.Abs(sourceDir)
	if err != nil {
		return "", err
	}
	absOutput, err := filepath.Abs(outputDir)
	if err != nil {
		return "", err
	}
	if absSource == absOutput {
		return htmlContent, nil
	}

	doc, isFragment, err := parseHTML(htmlContent)
	if err != nil {
		return "", err
	}
	relocateNode(doc, absSource, absOutput)
	return renderHTML(doc, isFragment)
}

// parseHTML parses a full document or a fragment. Fragments are wrapped in
// a document node so traversal is uniform.
func parseHTML(content string) (*html.Node, bool, error) {
	trimmed := strings.ToLower(strings.TrimSpace(content))

	if strings.HasPrefix(trimmed, "<!doctype") || strings.HasPrefix(trimmed, "<html") {
		doc, err := html.Parse(strings.NewReader(content))
		return doc, false, err
	}

	body := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Body,
		Data:     "body",
	}
	nodes, err := html.ParseFragment(strings.NewReader(content), body)
	if err != nil {
		return nil, true, err
	}

	container := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		container.AppendChild(n)
	}
	return container, true, nil
}

// renderHTML renders a parsed tree; fragments render their children only.
func renderHTML(doc *html.Node, isFragment bool) (string, error) {
	var buf strings.Builder

	if isFragment {
		for c := doc.FirstChild; c != nil; c = c.NextSibling {
			if err := html.Render(&buf, c); err != nil {
				return "", err
			}
		}
		return buf.String(), nil
	}

	if err := html.Render(&buf, doc); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func relocateNode(n *html.Node, sourceDir, outputDir string) {
	if n.Type == html.ElementNode {
		switch n.Data {
		case "img":
			relocateAttr(n, "src", sourceDir, outputDir)
		case "a":
			relocateAttr(n, "href", sourceDir, outputDir)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		relocateNode(c, sourceDir, outputDir)
	}
}

func relocateAttr(n *html.Node, attrName, sourceDir, outputDir string) {
	for i, attr := range n.Attr {
		if attr.Key != attrName || !isRelativePath(attr.Val) {
			continue
		}

		// keep #fragment and ?query suffixes
		path, suffix := attr.Val, ""
		if idx := strings.IndexAny(path, "#?"); idx >= 0 {
			path, suffix = path[:idx], path[idx:]
		}

		target := filepath.Join(sourceDir, filepath.FromSlash(path))
		rel, err := filepath.Rel(outputDir, target)
		if err != nil {
			continue
		}
		n.Attr[i].Val = filepath.ToSlash(rel) + suffix
	}
}

// isRelativePath reports whether path is a relative file reference.
func isRelativePath(path string) bool {
	if path == "" || strings.HasPrefix(path, "#") || strings.HasPrefix(path, "//") {
		return false
	}
	if i := strings.Index(path, ":"); i > 0 && !strings.ContainsAny(path[:i], "/\\") {
		// scheme such as https:, mailto:, data: or a Windows drive letter
		return false
	}
	return !filepath.IsAbs(path) && !strings.HasPrefix(path, "/")
}
