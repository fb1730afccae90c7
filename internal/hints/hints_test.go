package hints

import (
	"strings"
	"testing"
)

func TestForConfigNotFound(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		paths       []string
		contains    string
		notContains string
	}{
		{
			name:        "empty paths",
			paths:       []string{},
			contains:    "--config",
			notContains: "create",
		},
		{
			name:     "with user config path",
			paths:    []string{"./work.yaml", "/home/ada/.config/go-adocbib/work.yaml"},
			contains: "create /home/ada/.config/go-adocbib/work.yaml",
		},
		{
			name:        "local paths only",
			paths:       []string{"work.yaml", "work.yml"},
			contains:    "--config",
			notContains: "create",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			hint := ForConfigNotFound(tt.paths)
			if !strings.Contains(hint, tt.contains) {
				t.Errorf("expected hint to contain %q, got %q", tt.contains, hint)
			}
			if tt.notContains != "" && strings.Contains(hint, tt.notContains) {
				t.Errorf("hint %q should not contain %q", hint, tt.notContains)
			}
		})
	}
}

func TestForStyleNotFound(t *testing.T) {
	t.Parallel()

	if hint := ForStyleNotFound(nil); hint != "" {
		t.Errorf("expected empty hint, got %q", hint)
	}
	hint := ForStyleNotFound([]string{"apa", "ieee"})
	if !strings.Contains(hint, "available: apa, ieee") {
		t.Errorf("expected style list, got %q", hint)
	}
}

func TestForBibliographyNotFound(t *testing.T) {
	t.Parallel()

	hint := ForBibliographyNotFound([]string{"source", "refs"})
	if !strings.Contains(hint, "--bibtex-file") {
		t.Errorf("expected flag mention, got %q", hint)
	}
	if !strings.Contains(hint, "source, refs") {
		t.Errorf("expected search paths, got %q", hint)
	}
	if strings.Contains(ForBibliographyNotFound(nil), "searched") {
		t.Error("empty search paths should not be listed")
	}
}

func TestFormat_Consistency(t *testing.T) {
	t.Parallel()

	// All hints should start with newline, spaces, and "hint:"
	hints := []string{
		ForConfigNotFound(nil),
		ForOutputDirectory(),
		ForStyleNotFound([]string{"ieee"}),
		ForBibliographyNotFound(nil),
		ForUnknownKey(),
		ForHTMLUnsupported(),
	}

	for _, h := range hints {
		if !strings.HasPrefix(h, "\n  hint: ") {
			t.Errorf("hint format inconsistent: %q", h)
		}
	}
}

func TestFormat_Empty(t *testing.T) {
	t.Parallel()

	if got := format(""); got != "" {
		t.Errorf("format(\"\") = %q, want empty", got)
	}
}
