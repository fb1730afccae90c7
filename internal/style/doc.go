// Package style renders bibliography entries with YAML style definitions.
//
// # Loader Architecture
//
//	Loader (interface)
//	    │
//	    ├── EmbeddedLoader    - built-in styles compiled into the binary
//	    ├── FilesystemLoader  - {basePath}/{name}.yaml on disk
//	    └── Resolver          - custom-first, embedded fallback on not-found
//
// Resolver also caches parsed styles, keyed on the definition's content so
// an edited file is parsed again. A parsed Style is immutable and may be
// shared between goroutines.
//
// # Style Files
//
// A style names its format (numeric or author-date), how creator names are
// written, optional locale terms, and html/template strings per entry type:
//
//	name: apa
//	format: author-date
//	names:
//	  form: family-first
//	  initials: true
//	  and: symbol
//	citation:
//	  default: '({{.Short}}, {{.Year}})'
//	bibliography:
//	  default: '{{.Names}} ({{.Year}}). <i>{{.Title}}</i>.'
//
// Templates produce HTML fragments; callers convert them to their markup.
//
// # Security
//
// Style names are validated to prevent path traversal. FilesystemLoader
// resolves symlinks and verifies paths stay within basePath.
package style
