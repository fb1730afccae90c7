package main

import (
	"errors"
	"fmt"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-adocbib/internal/fileutil"
	"github.com/alnah/go-adocbib/internal/pipeline"
)

// ErrNotHTML indicates a postprocess input is not an HTML file.
var ErrNotHTML = errors.New("file must have an .html extension")

// runPostprocessCmd implements "adocbib postprocess": arrows that the
// AsciiDoc replacements turned into entities are restored in place, and the
// reading time is reported.
func runPostprocessCmd(args []string, env *Environment) error {
	var quiet bool
	fs := flag.NewFlagSet("postprocess", flag.ContinueOnError)
	fs.BoolVarP(&quiet, "quiet", "q", false, "only show errors")
	fs.SetOutput(env.Stderr)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return fmt.Errorf("%w: %v", ErrInvalidFlags, err)
	}

	paths := fs.Args()
	if len(paths) == 0 {
		return fmt.Errorf("%w: postprocess needs at least one HTML file", ErrNoInput)
	}

	var errs []error
	for _, path := range paths {
		minutes, err := postprocessFile(path)
		if err != nil {
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", path, err)
			errs = append(errs, err)
			continue
		}
		if !quiet {
			fmt.Fprintf(env.Stdout, "%s: %d min read\n", path, minutes)
		}
	}
	return errors.Join(errs...)
}

// postprocessFile rewrites one HTML file and returns its reading time.
func postprocessFile(path string) (int, error) {
	if !fileutil.HasExtension(path, ".html", ".htm") {
		return 0, fmt.Errorf("%w: %s", ErrNotHTML, path)
	}

	info, err := os.Stat(path)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrReadDocument, err)
	}
	content, err := os.ReadFile(path) // #nosec G304 -- user-provided path
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrReadDocument, err)
	}

	restored := pipeline.UndoReplacements(string(content))
	if restored != string(content) {
		if err := fileutil.WriteFileAtomic(path, []byte(restored), info.Mode().Perm()); err != nil {
			return 0, fmt.Errorf("%w: %w", ErrWriteOutput, err)
		}
	}

	minutes, err := pipeline.ReadingTime(restored)
	if err != nil {
		return 0, fmt.Errorf("counting words: %w", err)
	}
	return minutes, nil
}
