package pipeline

// Notes:
// - Tests RelocateRelativePaths through its public API with Unix-style
//   directories; Windows drive letters are covered by isRelativePath.

import (
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestRelocateRelativePaths
// ---------------------------------------------------------------------------

func TestRelocateRelativePaths(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		html      string
		sourceDir string
		outputDir string
		want      string
	}{
		{
			name:      "image moved one level deeper",
			html:      `<img src="images/logo.png"/>`,
			sourceDir: "/docs",
			outputDir: "/docs/out",
			want:      `src="../images/logo.png"`,
		},
		{
			name:      "dot slash link to sibling tree",
			html:      `<a href="./other.md#part">x</a>`,
			sourceDir: "/docs/guide",
			outputDir: "/site/guide",
			want:      `href="../../docs/guide/other.md#part"`,
		},
		{
			name:      "same directory unchanged",
			html:      `<img src="./logo.png">`,
			sourceDir: "/docs",
			outputDir: "/docs",
			want:      `src="./logo.png"`,
		},
		{
			name:      "empty output dir unchanged",
			html:      `<img src="./logo.png">`,
			sourceDir: "/docs",
			outputDir: "",
			want:      `src="./logo.png"`,
		},
		{
			name:      "anchor unchanged",
			html:      `<a href="#knuth84">[1]</a>`,
			sourceDir: "/docs",
			outputDir: "/out",
			want:      `href="#knuth84"`,
		},
		{
			name:      "external URL unchanged",
			html:      `<a href="https://github.com/yuin/goldmark">x</a>`,
			sourceDir: "/docs",
			outputDir: "/out",
			want:      `href="https://github.com/yuin/goldmark"`,
		},
		{
			name:      "absolute path unchanged",
			html:      `<img src="/abs/logo.png">`,
			sourceDir: "/docs",
			outputDir: "/out",
			want:      `src="/abs/logo.png"`,
		},
		{
			name:      "script not rewritten",
			html:      `<script src="./app.js"></script>`,
			sourceDir: "/docs",
			outputDir: "/out",
			want:      `src="./app.js"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := RelocateRelativePaths(tt.html, tt.sourceDir, tt.outputDir)
			if err != nil {
				t.Fatalf("RelocateRelativePaths() error = %v", err)
			}
			if !strings.Contains(got, tt.want) {
				t.Errorf("RelocateRelativePaths() = %q, want to contain %q", got, tt.want)
			}
		})
	}
}

func TestRelocateRelativePaths_FullDocument(t *testing.T) {
	t.Parallel()

	doc := "<!DOCTYPE html><html><head><title>t</title></head><body><img src=\"a.png\"></body></html>"
	got, err := RelocateRelativePaths(doc, "/docs", "/docs/html")
	if err != nil {
		t.Fatalf("RelocateRelativePaths() error = %v", err)
	}
	if !strings.HasPrefix(got, "<!DOCTYPE html>") {
		t.Errorf("full document lost its doctype: %q", got)
	}
	if !strings.Contains(got, `src="../a.png"`) {
		t.Errorf("image not relocated: %q", got)
	}
}

func TestIsRelativePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want bool
	}{
		{"images/a.png", true},
		{"./a.png", true},
		{"../shared/a.png", true},
		{"", false},
		{"#top", false},
		{"//cdn.example.com/a.png", false},
		{"mailto:someone@example.com", false},
		{"data:image/png;base64,AAA", false},
		{`C:\docs\a.png`, false},
		{"/abs/a.png", false},
	}

	for _, tt := range tests {
		if got := isRelativePath(tt.path); got != tt.want {
			t.Errorf("isRelativePath(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}
