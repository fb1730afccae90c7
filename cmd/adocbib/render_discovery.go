package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-adocbib"
	"github.com/alnah/go-adocbib/internal/fileutil"
)

// Sentinel errors for file discovery.
var (
	ErrInvalidExtension   = errors.New("file must have an AsciiDoc or Markdown extension")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
)

// Document extensions accepted as input.
var (
	asciidocExtensions = []string{".adoc", ".asciidoc", ".asc"}
	markdownExtensions = []string{".md", ".markdown"}
	documentExtensions = append(append([]string{}, asciidocExtensions...), markdownExtensions...)
)

// outputInfix marks rendered files written next to their source.
const outputInfix = ".out"

// FileToConvert represents a single file to process.
type FileToConvert struct {
	InputPath  string
	OutputPath string
}

// discoverFiles finds all documents to convert. Rendered outputs and
// hidden directories are skipped.
func discoverFiles(inputPath, output string) ([]FileToConvert, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		if err := validateDocumentExtension(inputPath); err != nil {
			return nil, err
		}
		outPath := resolveOutputPath(inputPath, output, "")
		return []FileToConvert{{InputPath: inputPath, OutputPath: outPath}}, nil
	}

	var files []FileToConvert
	err = filepath.WalkDir(inputPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		if d.IsDir() {
			if path != inputPath && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !isDocumentPath(path) || isRenderedOutput(path) {
			return nil
		}
		outPath := resolveOutputPath(path, output, inputPath)
		files = append(files, FileToConvert{InputPath: path, OutputPath: outPath})
		return nil
	})

	return files, err
}

// resolveOutputPath determines the output path for a document. Without an
// output it is "<name>.out<ext>" next to the source. A directory output
// mirrors the input tree and keeps file names.
func resolveOutputPath(inputPath, output, baseInputDir string) string {
	ext := filepath.Ext(inputPath)
	base := strings.TrimSuffix(filepath.Base(inputPath), ext)
	beside := filepath.Join(filepath.Dir(inputPath), base+outputInfix+ext)

	if output == "" {
		return beside
	}

	// A single input with a document-like output names the file itself.
	if baseInputDir == "" && isDocumentPath(output) {
		return output
	}

	target := filepath.Join(output, base+ext)
	if baseInputDir != "" {
		if relPath, err := filepath.Rel(baseInputDir, inputPath); err == nil {
			target = filepath.Join(output, relPath)
		}
	}

	if samePath(target, inputPath) {
		return beside
	}
	return target
}

// samePath reports whether a and b name the same location.
func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}

// htmlOutputPath returns "<name>.html" beside the text output.
func htmlOutputPath(inputPath, outputPath string) string {
	base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	return filepath.Join(filepath.Dir(outputPath), base+".html")
}

// validateDocumentExtension checks that the file is AsciiDoc or Markdown.
func validateDocumentExtension(path string) error {
	if !isDocumentPath(path) {
		return fmt.Errorf("%w: got %q", ErrInvalidExtension, filepath.Ext(path))
	}
	return nil
}

func isDocumentPath(path string) bool {
	return fileutil.HasExtension(path, documentExtensions...)
}

func isMarkdownPath(path string) bool {
	return fileutil.HasExtension(path, markdownExtensions...)
}

// isRenderedOutput reports whether path is a "<name>.out<ext>" file.
func isRenderedOutput(path string) bool {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return strings.HasSuffix(stem, outputInfix)
}

// looksLikeDocument reports whether a bare argument is a document path.
func looksLikeDocument(arg string) bool {
	return isDocumentPath(arg)
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > adocbib.MaxWorkers {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, adocbib.MaxWorkers)
	}
	return nil
}
