package adocbib

// Notes:
// - A stub renderer returns fixed HTML per key so expected strings do not
//   depend on the built-in styles; processorFor runs the scan and finalize
//   passes over the given lines.
// - Numeric brackets are AsciiDoc passthroughs ("+[+" ... "+]+").
// - Locators use a no-break space between "p."/"pp." and the value.

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type stubRenderer struct {
	citations    map[string]string
	bibliography map[string]string
	broken       map[string]bool
}

func (r stubRenderer) RenderCitation(key string) (string, error) {
	return r.render(r.citations, key)
}

func (r stubRenderer) RenderBibliography(key string) (string, error) {
	return r.render(r.bibliography, key)
}

func (r stubRenderer) render(texts map[string]string, key string) (string, error) {
	if r.broken[key] {
		return "", fmt.Errorf("%w: %q: template exploded", ErrRenderFailure, key)
	}
	text, ok := texts[key]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrKeyAbsent, key)
	}
	return text, nil
}

func testBibliography() *Bibliography {
	return NewBibliography(
		&Entry{Key: "a", Type: "book", Fields: map[string]string{"author": "Zed Alpha", "year": "2001"}},
		&Entry{Key: "b", Type: "book", Fields: map[string]string{"author": "Ann Beta", "year": "1999"}},
		&Entry{Key: "c", Type: "book", Fields: map[string]string{"author": "Carl Gamma", "year": "2010"}},
		&Entry{Key: "short", Type: "misc", Fields: map[string]string{"author": "Sam Short", "refname": "SN"}},
		&Entry{Key: "noted", Type: "misc", Fields: map[string]string{
			"author":         "Nora Noted",
			"note":           "Preprint",
			"scholarcluster": "123",
			"arxiv":          "2101.00001",
		}},
		&Entry{Key: "broken", Type: "misc", Fields: map[string]string{"author": "Bo Broken"}},
		&Entry{Key: "hidden", Type: "misc", Fields: map[string]string{"author": "Hi Dden"}},
	)
}

func testRenderer() stubRenderer {
	return stubRenderer{
		citations: map[string]string{
			"a":      "(Alpha 2001)",
			"b":      "(Beta 1999)",
			"c":      "(Gamma 2010)",
			"noted":  "(Noted n.d.)",
			"broken": "(Broken)",
		},
		bibliography: map[string]string{
			"a":      "Zed Alpha. 2001. <i>Alpha Book</i>.",
			"b":      "Ann Beta. 1999. <i>Beta Book</i>.",
			"c":      "Carl Gamma. 2010. <i>Gamma Book</i>.",
			"short":  "Sam Short. <i>Shorts</i>.",
			"noted":  "Nora Noted. <i>Notes</i>.",
			"broken": "Bo Broken.",
		},
		broken: map[string]bool{"broken": true},
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// processorFor creates a processor and runs the scan and finalize passes.
func processorFor(t *testing.T, cfg ProcessorConfig, lines ...string) *Processor {
	t.Helper()

	cfg.Logger = discardLogger()
	p, err := NewProcessor(testBibliography(), testRenderer(), cfg)
	if err != nil {
		t.Fatalf("NewProcessor() error = %v", err)
	}
	for _, line := range lines {
		if err := p.ScanCitations(line); err != nil {
			t.Fatalf("ScanCitations(%q) error = %v", line, err)
		}
	}
	if err := p.Finalize(); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}
	return p
}

// ---------------------------------------------------------------------------
// TestProcessor_ReplaceCitations
// ---------------------------------------------------------------------------

func TestProcessor_ReplaceCitations(t *testing.T) {
	t.Parallel()

	numeric := ProcessorConfig{Numeric: true}

	tests := []struct {
		name string
		cfg  ProcessorConfig
		scan []string // lines scanned before finalize; defaults to line
		line string
		want string
	}{
		{
			name: "no macros is identity",
			cfg:  numeric,
			line: "Plain text with [brackets] and cite without colon.",
			want: "Plain text with [brackets] and cite without colon.",
		},
		{
			name: "numeric consecutive collapse",
			cfg:  numeric,
			line: "See cite:[a, b, c].",
			want: "See +[+1-3+]+.",
		},
		{
			name: "numeric non-consecutive",
			scan: []string{"cite:[a,b,c]"},
			cfg:  numeric,
			line: "See cite:[a,c].",
			want: "See +[+1, 3+]+.",
		},
		{
			name: "numeric two consecutive stay listed",
			cfg:  numeric,
			line: "cite:[a,b]",
			want: "+[+1, 2+]+",
		},
		{
			name: "numeric custom template",
			cfg:  ProcessorConfig{Numeric: true, CitationTemplate: "{$id}"},
			line: "cite:[a]",
			want: "+{+1+}+",
		},
		{
			name: "numeric invalid template falls back to brackets",
			cfg:  ProcessorConfig{Numeric: true, CitationTemplate: "$id"},
			line: "cite:[a]",
			want: "+[+1+]+",
		},
		{
			name: "numeric locator without comma",
			cfg:  numeric,
			line: "cite:[a(5)]",
			want: "+[+1 p.\u00a05+]+",
		},
		{
			name: "numeric pretext outside brackets",
			cfg:  numeric,
			line: "citep:see[a]",
			want: "see +[+1+]+",
		},
		{
			name: "numeric links",
			cfg:  ProcessorConfig{Numeric: true, Links: true},
			line: "cite:[a,b,c]",
			want: "+[+<<a,1>>, <<b,2>>, <<c,3>>+]+",
		},
		{
			name: "author-date strips renderer parentheses",
			line: "As cite:[a] shows.",
			want: "As Alpha 2001 shows.",
		},
		{
			name: "author-date separator is semicolon",
			line: "cite:[a,b]",
			want: "Alpha 2001; Beta 1999",
		},
		{
			name: "page locator",
			line: "cite:[a(5)]",
			want: "Alpha 2001, p.\u00a05",
		},
		{
			name: "page range locator",
			line: "citenp:[a(5-9)]",
			want: "Alpha 2001, pp.\u00a05-9",
		},
		{
			name: "chicago locator verbatim",
			cfg:  ProcessorConfig{Style: "chicago-author-date"},
			line: "cite:[a(5-9)]",
			want: "Alpha 2001, 5-9",
		},
		{
			name: "cite pretext inside brackets",
			line: "cite:see[a]",
			want: "see Alpha 2001",
		},
		{
			name: "citep pretext before body",
			line: "citep:e.g.[a]",
			want: "e.g. Alpha 2001",
		},
		{
			name: "short name field",
			line: "cite:[short(3)]",
			want: "[SN], p.\u00a03",
		},
		{
			name: "custom short name field",
			cfg:  ProcessorConfig{ShortNameField: "year"},
			line: "cite:[a]",
			want: "[2001]",
		},
		{
			name: "links escape commas",
			cfg:  ProcessorConfig{Links: true},
			line: "cite:[a(5)]",
			want: "<<a,Alpha 2001&#44; p.\u00a05>>",
		},
		{
			name: "unknown key degrades and processing continues",
			line: "cite:[zzz] then cite:[a]",
			want: "zzz then Alpha 2001",
		},
		{
			name: "unknown key in numeric style",
			cfg:  numeric,
			line: "cite:[zzz,a]",
			want: "+[+zzz, 2+]+",
		},
		{
			name: "render failure degrades to key",
			line: "cite:[broken,a]",
			want: "broken; Alpha 2001",
		},
		{
			name: "renderer without the key degrades to key",
			line: "cite:[hidden]",
			want: "hidden",
		},
		{
			name: "markdown links",
			cfg:  ProcessorConfig{Numeric: true, Links: true, Syntax: "markdown"},
			line: "cite:[a]",
			want: `\[[1](#a)\]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			scan := tt.scan
			if scan == nil {
				scan = []string{tt.line}
			}
			p := processorFor(t, tt.cfg, scan...)

			got, err := p.ReplaceCitations(tt.line)
			if err != nil {
				t.Fatalf("ReplaceCitations() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ReplaceCitations(%q) = %q, want %q", tt.line, got, tt.want)
			}
		})
	}
}

func TestProcessor_Strict(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		line    string
		wantErr bool
	}{
		{"unknown key aborts", "cite:[a] and cite:[zzz]", true},
		{"renderer without the key aborts", "cite:[hidden]", true},
		{"render failure still degrades", "cite:[broken]", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := processorFor(t, ProcessorConfig{Strict: true}, tt.line)
			got, err := p.ReplaceCitations(tt.line)
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("ReplaceCitations() error = %v", err)
				}
				return
			}
			if !errors.Is(err, ErrUnknownKey) {
				t.Fatalf("ReplaceCitations() error = %v, want ErrUnknownKey", err)
			}
			if got != "" {
				t.Errorf("ReplaceCitations() output = %q, want none", got)
			}
		})
	}
}

func TestProcessor_ReplaceBeforeFinalize(t *testing.T) {
	t.Parallel()

	p, err := NewProcessor(testBibliography(), testRenderer(), ProcessorConfig{Logger: discardLogger()})
	if err != nil {
		t.Fatalf("NewProcessor() error = %v", err)
	}

	if _, err := p.ReplaceCitations("cite:[a]"); !errors.Is(err, ErrRegistryOpen) {
		t.Errorf("ReplaceCitations() error = %v, want ErrRegistryOpen", err)
	}
	if _, err := p.BibliographyList(); !errors.Is(err, ErrRegistryOpen) {
		t.Errorf("BibliographyList() error = %v, want ErrRegistryOpen", err)
	}
}

func TestNewProcessor_UnknownSyntax(t *testing.T) {
	t.Parallel()

	_, err := NewProcessor(testBibliography(), testRenderer(), ProcessorConfig{Syntax: "rst"})
	if err == nil {
		t.Fatal("NewProcessor() expected error for unknown syntax")
	}
}

// ---------------------------------------------------------------------------
// TestProcessor_BibliographyList
// ---------------------------------------------------------------------------

func TestProcessor_BibliographyList(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  ProcessorConfig
		line string
		want []string
	}{
		{
			name: "numeric labels use index",
			cfg:  ProcessorConfig{Numeric: true},
			line: "cite:[b,a]",
			want: []string{
				"- [1] Ann Beta. 1999. _Beta Book_.",
				"- [2] Zed Alpha. 2001. _Alpha Book_.",
			},
		},
		{
			name: "numeric alphabetical order",
			cfg:  ProcessorConfig{Numeric: true, Order: OrderAlphabetical},
			line: "cite:[b,a]",
			want: []string{
				"- [1] Zed Alpha. 2001. _Alpha Book_.",
				"- [2] Ann Beta. 1999. _Beta Book_.",
			},
		},
		{
			name: "links add anchors",
			cfg:  ProcessorConfig{Numeric: true, Links: true, CitationTemplate: "($id)"},
			line: "cite:[a]",
			want: []string{"- [[a]](1) Zed Alpha. 2001. _Alpha Book_."},
		},
		{
			name: "author-date labels use key or short name",
			line: "cite:[a,short]",
			want: []string{
				"- [a] Zed Alpha. 2001. _Alpha Book_.",
				"- [SN] Sam Short. _Shorts_.",
			},
		},
		{
			name: "annotations in order",
			line: "cite:[noted]",
			want: []string{
				"- [noted] Nora Noted. _Notes_. Preprint. " +
					`https://scholar.google.com/scholar?cluster=123[[scholar\]] ` +
					`https://arxiv.org/abs/2101.00001[[arXiv\]]`,
			},
		},
		{
			name: "unknown and failed keys stop after the label",
			cfg:  ProcessorConfig{Numeric: true},
			line: "cite:[zzz,broken]",
			want: []string{
				"- [1] zzz",
				"- [2] broken",
			},
		},
		{
			name: "markdown anchors",
			cfg:  ProcessorConfig{Links: true, Syntax: "markdown"},
			line: "cite:[a]",
			want: []string{`- <a id="a"></a>[a] Zed Alpha. 2001. *Alpha Book*.`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := processorFor(t, tt.cfg, tt.line)
			got, err := p.BibliographyList()
			if err != nil {
				t.Fatalf("BibliographyList() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("BibliographyList() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestProcessor_Bibitems - bibitem: and biblink: macros
// ---------------------------------------------------------------------------

func TestProcessor_ReplaceBibitems(t *testing.T) {
	t.Parallel()

	p := processorFor(t, ProcessorConfig{})

	tests := []struct {
		line string
		want string
	}{
		{"bibitem:[a]", "Zed Alpha. 2001. _Alpha Book_."},
		{"Read bibitem:[noted] now.", "Read Nora Noted. _Notes_. Preprint. " +
			`https://scholar.google.com/scholar?cluster=123[[scholar\]] ` +
			`https://arxiv.org/abs/2101.00001[[arXiv\]] now.`},
		{"bibitem:[zzz] and bibitem:[broken]", "zzz and broken"},
		{"no macro", "no macro"},
	}

	for _, tt := range tests {
		if got := p.ReplaceBibitems(tt.line); got != tt.want {
			t.Errorf("ReplaceBibitems(%q) = %q, want %q", tt.line, got, tt.want)
		}
	}
}

func TestProcessor_ReplaceBiblinks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  ProcessorConfig
		line string
		want string
	}{
		{"numeric uses index", ProcessorConfig{Numeric: true}, "biblink:[b]", "<<b,[2]>>"},
		{"author-date uses key", ProcessorConfig{}, "biblink:[a]", "<<a,[a]>>"},
		{"short name", ProcessorConfig{}, "biblink:[short]", "<<short,[SN]>>"},
		{"uncited key in numeric style", ProcessorConfig{Numeric: true}, "biblink:[c]", "<<c,[c]>>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := processorFor(t, tt.cfg, "cite:[a,b,short]")
			if got := p.ReplaceBiblinks(tt.line); got != tt.want {
				t.Errorf("ReplaceBiblinks(%q) = %q, want %q", tt.line, got, tt.want)
			}
		})
	}
}

func TestProcessor_Replace(t *testing.T) {
	t.Parallel()

	line := "cite:[a] bibitem:[b] biblink:[a]"
	p := processorFor(t, ProcessorConfig{Numeric: true, Links: true}, line)

	got, err := p.Replace(line)
	if err != nil {
		t.Fatalf("Replace() error = %v", err)
	}
	want := "+[+<<a,1>>+]+ Ann Beta. 1999. _Beta Book_. <<a,[1]>>"
	if got != want {
		t.Errorf("Replace() = %q, want %q", got, want)
	}
	if strings.Contains(got, "cite:") {
		t.Errorf("Replace() left a macro behind: %q", got)
	}
}
