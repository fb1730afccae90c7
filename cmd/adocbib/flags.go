package main

import (
	"io"
	"os"
	"time"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	envFile string
	quiet   bool
	verbose bool
}

// citationFlags holds flags that override citation settings.
type citationFlags struct {
	bibtexFile       string
	style            string
	locale           string
	order            string
	strict           bool
	citationTemplate string
	shortNameField   string
	styleDir         string
	noLinks          bool
	noInline         bool
}

// outputFlags holds output mode flags.
type outputFlags struct {
	format    string // asciidoc, markdown (empty = by extension)
	html      bool   // Also write HTML for Markdown inputs
	highlight string // Chroma style for HTML code blocks
}

// renderFlags holds all flags for the render and watch commands.
type renderFlags struct {
	common     commonFlags
	output     string
	workers    int
	citation   citationFlags
	outputMode outputFlags
	debounce   time.Duration // watch only

	// set records which flags were given, so zero values can override
	// the environment and config.
	set map[string]bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.StringVar(&f.envFile, "env-file", "", "load ADOCBIB_* variables from a dotenv file")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug logs and timing")
}

// addCitationFlags adds citation setting flags to a FlagSet.
func addCitationFlags(fs *flag.FlagSet, f *citationFlags) {
	fs.StringVarP(&f.bibtexFile, "bibtex-file", "b", "", "bibliography file or glob")
	fs.StringVarP(&f.style, "style", "s", "", "citation style name")
	fs.StringVar(&f.locale, "locale", "", "citation locale (BCP 47)")
	fs.StringVar(&f.order, "order", "", "bibliography order: appearance, alphabetical")
	fs.BoolVar(&f.strict, "strict", false, "fail on unknown citation keys")
	fs.StringVar(&f.citationTemplate, "citation-template", "", "numeric citation template, e.g. \"[$id]\"")
	fs.StringVar(&f.shortNameField, "short-name-field", "", "entry field used as citation label")
	fs.StringVar(&f.styleDir, "style-dir", "", "directory of custom YAML styles")
	fs.BoolVar(&f.noLinks, "no-links", false, "write citations without cross references")
	fs.BoolVar(&f.noInline, "no-inline-macros", false, "leave github:, man: and sidenote: macros as is")
}

// addOutputFlags adds output mode flags to a FlagSet.
func addOutputFlags(fs *flag.FlagSet, f *outputFlags) {
	fs.StringVar(&f.format, "format", "", "input markup: asciidoc, markdown (default: by extension)")
	fs.BoolVar(&f.html, "html", false, "also write HTML (Markdown inputs only)")
	fs.StringVar(&f.highlight, "highlight-style", "", "chroma style for HTML code blocks")
}

// newRenderFlagSet builds the flag set shared by render and watch.
func newRenderFlagSet(name string, f *renderFlags, usage func(io.Writer)) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)

	// I/O flags
	fs.StringVarP(&f.output, "output", "o", "", "output file or directory (\"-\" = stdout)")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")

	// Flag groups
	addCommonFlags(fs, &f.common)
	addCitationFlags(fs, &f.citation)
	addOutputFlags(fs, &f.outputMode)

	fs.Usage = func() { usage(os.Stderr) }
	return fs
}

// parseRenderFlags parses render command flags and returns positional args.
func parseRenderFlags(args []string) (*renderFlags, []string, error) {
	f := &renderFlags{}
	fs := newRenderFlagSet("render", f, printRenderUsage)

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	f.set = changedFlags(fs)
	return f, fs.Args(), nil
}

// parseWatchFlags parses watch command flags and returns positional args.
func parseWatchFlags(args []string) (*renderFlags, []string, error) {
	f := &renderFlags{}
	fs := newRenderFlagSet("watch", f, printWatchUsage)
	fs.DurationVar(&f.debounce, "debounce", defaultDebounce, "quiet period before re-rendering")

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	f.set = changedFlags(fs)
	return f, fs.Args(), nil
}

// changedFlags collects the names of flags given on the command line.
func changedFlags(fs *flag.FlagSet) map[string]bool {
	set := make(map[string]bool)
	fs.Visit(func(fl *flag.Flag) { set[fl.Name] = true })
	return set
}
