// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"path/filepath"
	"strings"
)

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in the user config directory.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	// Suggest the first path under the user config directory.
	for _, p := range searchedPaths {
		if strings.Contains(filepath.ToSlash(p), "/go-adocbib/") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForStyleNotFound returns hints for style not found errors.
func ForStyleNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// ForBibliographyNotFound returns hints for an unresolved bibliography file.
func ForBibliographyNotFound(searchPaths []string) string {
	hint := "set :bibtex-file: or pass --bibtex-file"
	if len(searchPaths) > 0 {
		hint += "; also searched: " + strings.Join(searchPaths, ", ")
	}
	return format(hint)
}

// ForUnknownKey returns hints for a citation key missing from the
// bibliography in strict mode.
func ForUnknownKey() string {
	return format("check the key spelling, or drop --strict / :bibtex-throw: to keep the raw key")
}

// ForHTMLUnsupported returns hints for --html on a non-Markdown input.
func ForHTMLUnsupported() string {
	return format("--html applies to .md and .markdown files only")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}
