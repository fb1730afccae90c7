// Package macro scans single lines of text for inline macros.
//
// Three grammars are recognized:
//
//	cite:<pretext>[key1(locator), key2, ...]     citation macros (cite, citep, citenp)
//	bibitem:<arg>[key]                           key macros (bibitem, biblink)
//	github:owner/repo[text]                      generic inline macros
//
// Scanning never fails: text that does not follow a grammar is simply not
// matched. All scanners return matches left to right with their byte
// offsets, so that line[m.Start:m.End] == m.Text for every match m.
//
// The scanners are explicit finite scans over the line rather than regular
// expressions, which keeps bracket and parenthesis matching well defined:
// keys stop at whitespace, commas, parentheses and brackets, and locators
// may contain balanced parentheses.
package macro
