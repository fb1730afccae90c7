// Package adocbib expands BibTeX citations in AsciiDoc and Markdown
// documents.
//
// # Quick Start
//
// Create a converter and convert a document that names its bibliography:
//
//	conv, err := adocbib.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := conv.Convert(ctx, adocbib.Input{
//	    Path:    "post.adoc",
//	    Content: "As shown in cite:[knuth84(15)].\n\nbibliography::refs.bib[ieee]\n",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("post.out.adoc", []byte(result.Text), 0644)
//
// # Macros
//
// Citation macros are cite:[key], citep:[key] and citenp:[key]. Text before
// the bracket is kept as pretext and each key may carry a page locator in
// parentheses: cite:see[knuth84(15), lamport94(1-9)].
//
// bibitem:[key] inserts the full bibliography text of a key in place and
// biblink:[key] links to its bibliography item. A bibliography::file[style,
// locale] block macro marks where the bibliography list is written.
//
// github:owner/repo[text], man:page[section] and sidenote:ref[] /
// sidenote:def[] are expanded as plain links and superscripts.
//
// # Conversion Passes
//
// Citations are processed in strictly sequential passes per document:
//
//  1. Scan every prose line and record cited keys
//  2. Finalize the registry: deduplicate, then sort unless in appearance order
//  3. Replace every citation, bibitem and biblink macro
//  4. Write the bibliography list at each bibliography:: placeholder
//
// Verbatim blocks, comments and code are never rewritten.
//
// # Configuration
//
// Settings are layered, lowest first: WithDefaults (and the WithStyle,
// WithLocale, ... shorthands), bibliography:: macro arguments, the
// document's :bibtex-file:, :bibtex-style:, :bibtex-locale:,
// :bibtex-order:, :bibtex-throw: and :bibtex-citation-template: attributes,
// then WithOverrides.
//
//	conv, err := adocbib.NewConverter(
//	    adocbib.WithStyle("ieee"),
//	    adocbib.WithOrder(adocbib.OrderAlphabetical),
//	    adocbib.WithStyleDir("/path/to/styles"),
//	)
//
// A document with no bibliography setting and no bibliography:: macro is
// returned with its citations untouched.
//
// # Styles
//
// Citation styles are YAML files with html/template citation and
// bibliography templates per entry type. Built-in styles are
// association-for-computing-machinery (the default), ieee, apa and
// chicago-author-date. Files in the WithStyleDir directory take precedence.
//
// # Low-level API
//
// NewProcessor exposes the passes directly for callers that walk documents
// themselves and bring their own Renderer.
package adocbib
