package markup

import (
	"errors"
	"testing"
)

// ---------------------------------------------------------------------------
// TestForName / TestForPath
// ---------------------------------------------------------------------------

func TestForName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"asciidoc", NameAsciiDoc, false},
		{"ADOC", NameAsciiDoc, false},
		{" markdown ", NameMarkdown, false},
		{"md", NameMarkdown, false},
		{"rst", "", true},
	}

	for _, tt := range tests {
		got, err := ForName(tt.input)
		if tt.wantErr {
			if !errors.Is(err, ErrUnknownSyntax) {
				t.Errorf("ForName(%q) error = %v, want ErrUnknownSyntax", tt.input, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ForName(%q) unexpected error: %v", tt.input, err)
			continue
		}
		if got.Name() != tt.want {
			t.Errorf("ForName(%q).Name() = %q, want %q", tt.input, got.Name(), tt.want)
		}
	}
}

func TestForPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path    string
		want    string
		wantErr bool
	}{
		{"doc/paper.adoc", NameAsciiDoc, false},
		{"paper.ASC", NameAsciiDoc, false},
		{"notes.asciidoc", NameAsciiDoc, false},
		{"README.md", NameMarkdown, false},
		{"post.markdown", NameMarkdown, false},
		{"refs.bib", "", true},
	}

	for _, tt := range tests {
		got, err := ForPath(tt.path)
		if tt.wantErr {
			if !errors.Is(err, ErrUnknownSyntax) {
				t.Errorf("ForPath(%q) error = %v, want ErrUnknownSyntax", tt.path, err)
			}
			continue
		}
		if err != nil || got.Name() != tt.want {
			t.Errorf("ForPath(%q) = %v, %v; want %q", tt.path, got, err, tt.want)
		}
	}
}

// ---------------------------------------------------------------------------
// TestAsciiDoc / TestMarkdown - Constructs
// ---------------------------------------------------------------------------

func TestSyntaxConstructs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"adoc xref escapes commas", AsciiDoc{}.XRef("knuth84", "Knuth, 1984"), "<<knuth84,Knuth&#44; 1984>>"},
		{"adoc anchor", AsciiDoc{}.Anchor("knuth84"), "[[knuth84]]"},
		{"adoc link escapes bracket", AsciiDoc{}.Link("https://arxiv.org/abs/1", "[arXiv]"), `https://arxiv.org/abs/1[[arXiv\]]`},
		{"adoc icon link escapes only text", AsciiDoc{}.IconLink("https://github.com/a/b", "x]y", "image:g.ico[GitHub,14,14]"), `https://github.com/a/b[x\]yimage:g.ico[GitHub,14,14]]`},
		{"adoc literal", AsciiDoc{}.Literal("["), "+[+"},
		{"adoc empty literal", AsciiDoc{}.Literal(""), ""},
		{"adoc list item", AsciiDoc{}.ListItem("x"), "- x"},
		{"adoc superscript", AsciiDoc{}.Superscript("[1]"), "^[1]^"},
		{"adoc image", AsciiDoc{}.Image("https://github.com/favicon.ico", "GitHub", 14, 14), "image:https://github.com/favicon.ico[GitHub,14,14]"},
		{"md xref", Markdown{}.XRef("knuth84", "[1]"), `[\[1\]](#knuth84)`},
		{"md anchor", Markdown{}.Anchor("a&b"), `<a id="a&amp;b"></a>`},
		{"md link", Markdown{}.Link("https://arxiv.org/abs/1", "[arXiv]"), `[\[arXiv\]](https://arxiv.org/abs/1)`},
		{"md icon link escapes only text", Markdown{}.IconLink("https://github.com/a/b", "[b]", "![GitHub](g.ico)"), `[\[b\]![GitHub](g.ico)](https://github.com/a/b)`},
		{"md literal", Markdown{}.Literal("[é]"), `\[é\]`},
		{"md superscript", Markdown{}.Superscript("[1]"), "<sup>[1]</sup>"},
		{"md image", Markdown{}.Image("x.ico", "Linux", 14, 14), `<img src="x.ico" alt="Linux" width="14" height="14">`},
	}

	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s: got %q, want %q", tt.name, tt.got, tt.want)
		}
	}
}

// ---------------------------------------------------------------------------
// TestFromHTML
// ---------------------------------------------------------------------------

func TestFromHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		syntax Syntax
		input  string
		want   string
	}{
		{"plain text unchanged", AsciiDoc{}, "Knuth 1984", "Knuth 1984"},
		{"adoc italics and bold", AsciiDoc{}, "<i>TUGboat</i>, <b>15</b>", "_TUGboat_, *15*"},
		{"adoc span dropped and entity decoded", AsciiDoc{}, `<span class="x">Lamport &amp; Pfenning</span>`, "Lamport & Pfenning"},
		{"adoc braces removed", AsciiDoc{}, "The {TeX}book", "The TeXbook"},
		{"md italics and bold", Markdown{}, "<em>A</em> <strong>B</strong>", "*A* **B**"},
		{"md unknown tags dropped", Markdown{}, "<div><p>x</p></div>", "x"},
		{"md curly quotes kept", Markdown{}, "“LaTeX,” <i>TUGboat</i>", "“LaTeX,” *TUGboat*"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := tt.syntax.FromHTML(tt.input)
			if err != nil {
				t.Fatalf("FromHTML(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("FromHTML(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
