package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: adocbib <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  render       Resolve citations and write the bibliography")
	fmt.Fprintln(w, "  watch        Re-render documents when they or their sources change")
	fmt.Fprintln(w, "  postprocess  Restore ASCII arrows in rendered HTML")
	fmt.Fprintln(w, "  styles       List available citation styles")
	fmt.Fprintln(w, "  doctor       Check configuration, styles and bibliography")
	fmt.Fprintln(w, "  version      Show version information")
	fmt.Fprintln(w, "  help         Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "A document path given without a command is rendered.")
	fmt.Fprintln(w, "Run 'adocbib help <command>' for details on a specific command.")
}

// printRenderFlags prints the flags shared by render and watch.
func printRenderFlags(w io.Writer) {
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>          Output file or directory (\"-\" = stdout)")
	fmt.Fprintln(w, "  -c, --config <name>          Config file name or path")
	fmt.Fprintln(w, "      --env-file <path>        Load ADOCBIB_* variables from a dotenv file")
	fmt.Fprintln(w, "  -w, --workers <n>            Parallel workers (0 = auto)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Bibliography:")
	fmt.Fprintln(w, "  -b, --bibtex-file <path>     Bibliography file or glob")
	fmt.Fprintln(w, "      --order <s>              Order: appearance, alphabetical")
	fmt.Fprintln(w, "      --strict                 Fail on unknown citation keys")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Style:")
	fmt.Fprintln(w, "  -s, --style <name>           Citation style (see 'adocbib styles')")
	fmt.Fprintln(w, "      --style-dir <path>       Directory of custom YAML styles")
	fmt.Fprintln(w, "      --locale <tag>           Citation locale, e.g. en-US")
	fmt.Fprintln(w, "      --citation-template <s>  Numeric template, e.g. \"[$id]\"")
	fmt.Fprintln(w, "      --short-name-field <s>   Entry field used as label")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Macros:")
	fmt.Fprintln(w, "      --no-links               Plain text citations, no cross references")
	fmt.Fprintln(w, "      --no-inline-macros       Leave github:, man: and sidenote: as is")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Mode:")
	fmt.Fprintln(w, "      --format <s>             Input markup: asciidoc, markdown")
	fmt.Fprintln(w, "      --html                   Also write HTML (Markdown inputs)")
	fmt.Fprintln(w, "      --highlight-style <s>    Chroma style for HTML code blocks")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet                  Only show errors")
	fmt.Fprintln(w, "  -v, --verbose                Show debug logs and timing")
}

// printRenderUsage prints usage for the render command.
func printRenderUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: adocbib render <input> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Replace citation macros and bibliography blocks.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Document or directory (optional if config has input.defaultDir)")
	fmt.Fprintln(w)
	printRenderFlags(w)
}

// printWatchUsage prints usage for the watch command.
func printWatchUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: adocbib watch <input> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render, then render again whenever a document or .bib file changes.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Document or directory (optional if config has input.defaultDir)")
	fmt.Fprintln(w)
	printRenderFlags(w)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Watch:")
	fmt.Fprintln(w, "      --debounce <d>           Quiet period before re-rendering (default 300ms)")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	w := env.Stdout
	switch args[0] {
	case "render":
		printRenderUsage(w)
	case "watch":
		printWatchUsage(w)
	case "postprocess":
		fmt.Fprintln(w, "Usage: adocbib postprocess <file.html>...")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Restore ->, =>, <= and <- in rendered HTML and report reading time.")
	case "styles":
		fmt.Fprintln(w, "Usage: adocbib styles [--style-dir <path>]")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "List built-in citation styles and those found in the style directory.")
	case "doctor":
		fmt.Fprintln(w, "Usage: adocbib doctor [flags]")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Check configuration, styles and bibliography.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "  -c, --config <name>          Config file name or path")
		fmt.Fprintln(w, "  -b, --bibtex-file <path>     Bibliography to parse")
		fmt.Fprintln(w, "      --style-dir <path>       Directory of custom YAML styles")
		fmt.Fprintln(w, "      --json                   Machine-readable output")
	case "version":
		fmt.Fprintln(w, "Usage: adocbib version")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Show version information.")
	case "help":
		fmt.Fprintln(w, "Usage: adocbib help [command]")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
