// Package document splits AsciiDoc and Markdown sources into lines and
// exposes the prose parts that may contain inline macros.
//
// Prose parts are paragraph lines, list item text, table cells, section
// titles and block titles. Delimited verbatim blocks, comments, attribute
// entries, block attribute lines and block macros are kept verbatim.
// Lines holding a bibliography::<file>[<style>,<locale>] macro become
// placeholders whose content is filled in after citations are processed.
//
// Rendering a document without modifications reproduces its source.
package document
