// Package pipeline holds the stages around citation processing:
//   - inline macro expansion (github:, man:, sidenote:)
//   - Markdown to HTML conversion via Goldmark, with chroma highlighting
//   - stylesheet injection and relative path relocation for HTML output
//   - HTML post-processing that restores ASCII arrows
//   - reading time estimation
//
// Citation and bibliography expansion is handled by the root adocbib
// package; these stages run before or after it.
package pipeline
